package engine

import (
	"time"

	"github.com/iliyamo/hotel-reservation-engine/internal/model"
)

// sellableOn computes the number of rooms that can still be sold on a
// single stay date:
//
//	capacity − Σ rooms of CONFIRMED/CHECKED_IN bookings occupying the date
//	         − Σ rooms of blocks active at instant now on the date
//
// The function is pure arithmetic over rows the caller has already
// loaded (and, for writes, locked), so the availability check and the
// subsequent insert always agree on the same snapshot.  Expired blocks
// are excluded here via ActiveAt regardless of their stored status.
func sellableOn(date time.Time, capacity int, bookings []model.Booking, blocks []model.RoomBlock, now time.Time) int {
	sold := 0
	for i := range bookings {
		if bookings[i].Overlaps(date) {
			sold += bookings[i].RoomsRequested
		}
	}
	blocked := 0
	for i := range blocks {
		if blocks[i].BlockDate.Equal(date) && blocks[i].ActiveAt(now) {
			blocked += blocks[i].RoomsBlocked
		}
	}
	return capacity - sold - blocked
}
