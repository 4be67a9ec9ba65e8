package engine

import (
	"testing"
)

// Occupancy measures how much of the seeded capacity was unavailable
// for sale, so a room withheld for maintenance counts the same as a
// sold one.
func TestSummarizeOccupancy(t *testing.T) {
	first, last := date("2026-06-01"), date("2026-06-02")
	rows := []ReportRow{
		// Day one: 10 rooms, 4 sold, 2 blocked.
		{RoomTypeID: "p_deluxe", Day: DayAvailability{Capacity: 10, Booked: 4, Blocked: 2, Sellable: 4}},
		// Day two: 10 rooms, 3 sold, nothing blocked.
		{RoomTypeID: "p_deluxe", Day: DayAvailability{Capacity: 10, Booked: 3, Blocked: 0, Sellable: 7}},
	}

	s := summarizeOccupancy("p", first, last, rows)
	if s.CapacityNights != 20 {
		t.Errorf("CapacityNights = %d, want 20", s.CapacityNights)
	}
	// 6 occupied on day one (blocks included), 3 on day two.
	if s.OccupiedNights != 9 {
		t.Errorf("OccupiedNights = %d, want 9", s.OccupiedNights)
	}
	if want := 9.0 / 20.0; s.Rate != want {
		t.Errorf("Rate = %v, want %v", s.Rate, want)
	}
}

func TestSummarizeOccupancyEdges(t *testing.T) {
	if s := summarizeOccupancy("p", date("2026-06-01"), date("2026-06-01"), nil); s.Rate != 0 {
		t.Errorf("empty window: Rate = %v, want 0", s.Rate)
	}

	// An oversold window must still report at most 100%.
	rows := []ReportRow{
		{Day: DayAvailability{Capacity: 2, Booked: 3, Sellable: -1}},
	}
	if s := summarizeOccupancy("p", date("2026-06-01"), date("2026-06-01"), rows); s.Rate != 1 {
		t.Errorf("oversold: Rate = %v, want 1", s.Rate)
	}
}
