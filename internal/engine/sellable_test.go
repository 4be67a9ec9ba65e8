package engine

import (
	"testing"
	"time"

	"github.com/iliyamo/hotel-reservation-engine/internal/model"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t.UTC()
}

// Walks one room type through a season: a three-night booking, a
// maintenance block, an attempted oversell, then the block release and
// the cancellation returning everything to the pool.
func TestSellableDerivation(t *testing.T) {
	now := time.Date(2026, 5, 30, 12, 0, 0, 0, time.UTC)
	capacity := 10

	booking := model.Booking{
		RoomsRequested: 3,
		Status:         model.BookingConfirmed,
		CheckIn:        date("2026-06-01"),
		CheckOut:       date("2026-06-03"), // nights 06-01 and 06-02
	}
	block := model.RoomBlock{
		RoomsBlocked: 5,
		Status:       model.BlockActive,
		BlockDate:    date("2026-06-01"),
	}

	bookings := []model.Booking{booking}
	blocks := []model.RoomBlock{block}

	cases := []struct {
		day  string
		want int
	}{
		{"2026-06-01", 2},  // 10 - 3 booked - 5 blocked
		{"2026-06-02", 7},  // block is single-date, booking still overlaps
		{"2026-06-03", 10}, // check_out is exclusive
	}
	for _, tc := range cases {
		got := sellableOn(date(tc.day), capacity, bookings, blocks, now)
		if got != tc.want {
			t.Errorf("sellable on %s = %d, want %d", tc.day, got, tc.want)
		}
	}

	// A request for 3 rooms on 06-01 must not fit (2 sellable).
	if got := sellableOn(date("2026-06-01"), capacity, bookings, blocks, now); got >= 3 {
		t.Errorf("expected fewer than 3 sellable on 2026-06-01, got %d", got)
	}

	// Releasing the block restores its rooms.
	blocks[0].Status = model.BlockReleased
	if got := sellableOn(date("2026-06-01"), capacity, bookings, blocks, now); got != 7 {
		t.Errorf("after release: sellable = %d, want 7", got)
	}

	// Cancelling the booking restores full capacity; cancelled
	// bookings are filtered out before the arithmetic runs, mirroring
	// the status filter in the overlap query.
	if got := sellableOn(date("2026-06-01"), capacity, nil, blocks, now); got != capacity {
		t.Errorf("after cancel: sellable = %d, want %d", got, capacity)
	}
}

func TestSellableIgnoresLapsedBlocks(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	lapsed := model.RoomBlock{
		RoomsBlocked: 4,
		Status:       model.BlockActive, // sweep has not run yet
		BlockDate:    date("2026-06-02"),
		ExpiresAt:    &past,
	}
	live := model.RoomBlock{
		RoomsBlocked: 2,
		Status:       model.BlockActive,
		BlockDate:    date("2026-06-02"),
		ExpiresAt:    &future,
	}

	got := sellableOn(date("2026-06-02"), 10, nil, []model.RoomBlock{lapsed, live}, now)
	if got != 8 {
		t.Errorf("sellable = %d, want 8 (lapsed block must not count)", got)
	}
}

func TestSellableOnlyCountsOccupyingStatuses(t *testing.T) {
	now := time.Now().UTC()
	day := date("2026-07-10")
	mk := func(status string) model.Booking {
		return model.Booking{
			RoomsRequested: 2,
			Status:         status,
			CheckIn:        day,
			CheckOut:       day.AddDate(0, 0, 1),
		}
	}
	// The repository never hands cancelled/completed rows to the
	// arithmetic, but Overlaps itself must not care about status.
	bookings := []model.Booking{mk(model.BookingConfirmed), mk(model.BookingCheckedIn)}
	if got := sellableOn(day, 10, bookings, nil, now); got != 6 {
		t.Errorf("sellable = %d, want 6", got)
	}
}

func TestBookingOverlaps(t *testing.T) {
	b := model.Booking{CheckIn: date("2026-06-01"), CheckOut: date("2026-06-03")}
	cases := []struct {
		day  string
		want bool
	}{
		{"2026-05-31", false},
		{"2026-06-01", true},
		{"2026-06-02", true},
		{"2026-06-03", false}, // exclusive check-out
	}
	for _, tc := range cases {
		if got := b.Overlaps(date(tc.day)); got != tc.want {
			t.Errorf("Overlaps(%s) = %v, want %v", tc.day, got, tc.want)
		}
	}
}

func TestBlockActiveAt(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Minute)
	future := now.Add(time.Minute)

	cases := []struct {
		name  string
		block model.RoomBlock
		want  bool
	}{
		{"active no expiry", model.RoomBlock{Status: model.BlockActive}, true},
		{"active future expiry", model.RoomBlock{Status: model.BlockActive, ExpiresAt: &future}, true},
		{"active lapsed expiry", model.RoomBlock{Status: model.BlockActive, ExpiresAt: &past}, false},
		{"released", model.RoomBlock{Status: model.BlockReleased}, false},
		{"expired", model.RoomBlock{Status: model.BlockExpired}, false},
	}
	for _, tc := range cases {
		if got := tc.block.ActiveAt(now); got != tc.want {
			t.Errorf("%s: ActiveAt = %v, want %v", tc.name, got, tc.want)
		}
	}
}
