package engine

import (
	"context"
	"database/sql"
	"time"

	"github.com/iliyamo/hotel-reservation-engine/internal/model"
)

// DayAvailability is the derived availability of one room type on one
// stay date.
type DayAvailability struct {
	Date       time.Time
	Capacity   int
	Booked     int
	Blocked    int
	Sellable   int
	PriceCents int64
}

// Sellable derives per-date availability for an inclusive range.  The
// reads run in a read-only transaction so the capacity, booking and
// block rows come from one consistent snapshot; no locks are taken and
// nothing is written.  Dates without a ledger row are omitted from the
// result.
func (e *Engine) Sellable(ctx context.Context, propertyID, roomTypeID string, first, last time.Time) ([]DayAvailability, error) {
	if err := validateInclusiveRange(first, last); err != nil {
		return nil, err
	}
	if _, err := e.RoomTypes.Get(ctx, propertyID, roomTypeID); err != nil {
		return nil, wrapRepoErr(err)
	}

	tx, err := e.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, mapSQLError(err)
	}
	defer tx.Rollback()

	recs, err := e.Inventory.RangeTx(ctx, tx, propertyID, roomTypeID, first, last)
	if err != nil {
		return nil, mapSQLError(err)
	}
	bookings, err := e.Bookings.OverlappingTx(ctx, tx, propertyID, roomTypeID, first, last)
	if err != nil {
		return nil, mapSQLError(err)
	}
	blocks, err := e.Blocks.ActiveOnDatesTx(ctx, tx, propertyID, roomTypeID, first, last)
	if err != nil {
		return nil, mapSQLError(err)
	}

	now := time.Now().UTC()
	out := make([]DayAvailability, 0, len(recs))
	for _, rec := range recs {
		out = append(out, deriveDay(rec, bookings, blocks, now))
	}
	return out, nil
}

// CheckStay reports whether rooms can still be sold on every night of
// a half-open stay, returning the per-night breakdown.  This is the
// read-only preview of the check ConfirmBooking performs under lock;
// a positive answer can still lose the race to a concurrent writer.
func (e *Engine) CheckStay(ctx context.Context, propertyID, roomTypeID string, checkIn, checkOut time.Time, rooms int) (bool, []DayAvailability, error) {
	if err := validateStay(checkIn, checkOut); err != nil {
		return false, nil, err
	}
	days, err := e.Sellable(ctx, propertyID, roomTypeID, checkIn, checkOut.AddDate(0, 0, -1))
	if err != nil {
		return false, nil, err
	}
	if len(days) < nightsBetween(checkIn, checkOut) {
		// At least one night has no ledger row, so the stay cannot be sold.
		return false, days, nil
	}
	ok := true
	for _, d := range days {
		if d.Sellable < rooms {
			ok = false
			break
		}
	}
	return ok, days, nil
}

func deriveDay(rec model.InventoryRecord, bookings []model.Booking, blocks []model.RoomBlock, now time.Time) DayAvailability {
	booked := 0
	for i := range bookings {
		if bookings[i].Overlaps(rec.StayDate) {
			booked += bookings[i].RoomsRequested
		}
	}
	blocked := 0
	for i := range blocks {
		if blocks[i].BlockDate.Equal(rec.StayDate) && blocks[i].ActiveAt(now) {
			blocked += blocks[i].RoomsBlocked
		}
	}
	return DayAvailability{
		Date:       rec.StayDate,
		Capacity:   rec.Capacity,
		Booked:     booked,
		Blocked:    blocked,
		Sellable:   rec.Capacity - booked - blocked,
		PriceCents: rec.CurrentPriceCents,
	}
}
