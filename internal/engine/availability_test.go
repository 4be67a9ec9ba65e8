package engine

import (
	"testing"
	"time"

	"github.com/iliyamo/hotel-reservation-engine/internal/model"
)

func TestDeriveDayBreakdown(t *testing.T) {
	now := time.Now().UTC()
	rec := model.InventoryRecord{
		StayDate:          date("2026-06-01"),
		Capacity:          10,
		CurrentPriceCents: 12500,
	}
	bookings := []model.Booking{
		{RoomsRequested: 3, CheckIn: date("2026-06-01"), CheckOut: date("2026-06-03")},
		{RoomsRequested: 1, CheckIn: date("2026-05-28"), CheckOut: date("2026-06-02")},
		{RoomsRequested: 2, CheckIn: date("2026-06-02"), CheckOut: date("2026-06-05")}, // arrives later
	}
	blocks := []model.RoomBlock{
		{RoomsBlocked: 2, Status: model.BlockActive, BlockDate: date("2026-06-01")},
		{RoomsBlocked: 5, Status: model.BlockActive, BlockDate: date("2026-06-02")}, // other date
	}

	day := deriveDay(rec, bookings, blocks, now)
	if day.Booked != 4 {
		t.Errorf("Booked = %d, want 4", day.Booked)
	}
	if day.Blocked != 2 {
		t.Errorf("Blocked = %d, want 2", day.Blocked)
	}
	if day.Sellable != 4 {
		t.Errorf("Sellable = %d, want 4", day.Sellable)
	}
	if day.PriceCents != 12500 {
		t.Errorf("PriceCents = %d, want 12500", day.PriceCents)
	}
	if day.Capacity-day.Booked-day.Blocked != day.Sellable {
		t.Errorf("sellable identity violated: %+v", day)
	}
}

func TestDeriveDayNeverHidesOversell(t *testing.T) {
	// If capacity was lowered out-of-band the derived number may go
	// negative; the report must show it rather than clamp it.
	rec := model.InventoryRecord{StayDate: date("2026-06-01"), Capacity: 1}
	bookings := []model.Booking{
		{RoomsRequested: 3, CheckIn: date("2026-06-01"), CheckOut: date("2026-06-02")},
	}
	day := deriveDay(rec, bookings, nil, time.Now().UTC())
	if day.Sellable != -2 {
		t.Errorf("Sellable = %d, want -2", day.Sellable)
	}
}
