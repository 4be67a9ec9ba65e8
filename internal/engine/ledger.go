package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/iliyamo/hotel-reservation-engine/internal/model"
)

// SeedInput describes an inventory seeding request over an inclusive
// date range.  Capacity and PriceCents are optional; when nil they
// default to the room type's total_rooms and base_price_cents.
type SeedInput struct {
	PropertyID string
	RoomTypeID string
	StartDate  time.Time
	EndDate    time.Time // inclusive
	Capacity   *int
	PriceCents *int64
}

// SeedInventory creates or refreshes one ledger row per date in the
// inclusive range.  Re-seeding is idempotent: existing rows keep their
// identity and take the new capacity and price.  Returns the number of
// dates seeded.
func (e *Engine) SeedInventory(ctx context.Context, in SeedInput) (int, error) {
	if err := validateInclusiveRange(in.StartDate, in.EndDate); err != nil {
		return 0, err
	}
	rt, err := e.RoomTypes.Get(ctx, in.PropertyID, in.RoomTypeID)
	if err != nil {
		return 0, wrapRepoErr(err)
	}
	capacity := rt.TotalRooms
	if in.Capacity != nil {
		capacity = *in.Capacity
	}
	if capacity < 0 {
		return 0, fmt.Errorf("%w: capacity cannot be negative", ErrInvalidInput)
	}
	price := rt.BasePriceCents
	if in.PriceCents != nil {
		price = *in.PriceCents
	}
	if price < 0 {
		return 0, fmt.Errorf("%w: price cannot be negative", ErrInvalidInput)
	}
	dates := inclusiveDates(in.StartDate, in.EndDate)
	if err := e.Inventory.SeedRange(ctx, in.PropertyID, in.RoomTypeID, dates, capacity, price); err != nil {
		return 0, mapSQLError(err)
	}
	return len(dates), nil
}

// UpdatePricing overwrites the nightly rate for every seeded date in
// the inclusive range and returns how many ledger rows changed.
// Bookings already confirmed keep the price they were sold at.
func (e *Engine) UpdatePricing(ctx context.Context, propertyID, roomTypeID string, first, last time.Time, priceCents int64) (int64, error) {
	if err := validateInclusiveRange(first, last); err != nil {
		return 0, err
	}
	if priceCents < 0 {
		return 0, fmt.Errorf("%w: price cannot be negative", ErrInvalidInput)
	}
	if _, err := e.RoomTypes.Get(ctx, propertyID, roomTypeID); err != nil {
		return 0, wrapRepoErr(err)
	}
	n, err := e.Inventory.UpdatePricingRange(ctx, propertyID, roomTypeID, first, last, priceCents)
	if err != nil {
		return 0, mapSQLError(err)
	}
	return n, nil
}

// AdjustCapacity shifts the capacity of one stay date by a signed
// delta.  Deltas commute: two operators correcting the same date
// concurrently both land, each applied against the row the lock
// exposes.  The transaction locks the ledger row and recounts
// committed demand, so capacity can never drop below what is already
// sold or blocked; that case fails with ErrConflict, and a delta that
// would take capacity negative fails with ErrInvalidInput.
func (e *Engine) AdjustCapacity(ctx context.Context, propertyID, roomTypeID string, date time.Time, delta int) (model.InventoryRecord, error) {
	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		return model.InventoryRecord{}, mapSQLError(err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	recs, err := e.Inventory.LockRangeTx(ctx, tx, propertyID, roomTypeID, date, date)
	if err != nil {
		return model.InventoryRecord{}, mapSQLError(err)
	}
	if len(recs) == 0 {
		return model.InventoryRecord{}, fmt.Errorf("%w: no inventory on %s", ErrNotFound, date.Format(dateLayout))
	}
	rec := recs[0]

	bookings, err := e.Bookings.OverlappingTx(ctx, tx, propertyID, roomTypeID, date, date)
	if err != nil {
		return model.InventoryRecord{}, mapSQLError(err)
	}
	blocks, err := e.Blocks.ActiveOnDatesTx(ctx, tx, propertyID, roomTypeID, date, date)
	if err != nil {
		return model.InventoryRecord{}, mapSQLError(err)
	}
	now := time.Now().UTC()
	committedDemand := rec.Capacity - sellableOn(date, rec.Capacity, bookings, blocks, now)
	capacity, err := applyCapacityDelta(rec.Capacity, delta, committedDemand)
	if err != nil {
		return model.InventoryRecord{}, err
	}

	if err := e.Inventory.AdjustCapacityTx(ctx, tx, rec.InventoryID, capacity); err != nil {
		return model.InventoryRecord{}, mapSQLError(err)
	}
	if err := tx.Commit(); err != nil {
		return model.InventoryRecord{}, mapSQLError(err)
	}
	committed = true
	rec.Capacity = capacity
	return rec, nil
}

// applyCapacityDelta resolves the new capacity for a date given what
// is already committed there.
func applyCapacityDelta(current, delta, committedDemand int) (int, error) {
	next := current + delta
	if next < 0 {
		return 0, fmt.Errorf("%w: delta %d would take capacity %d below zero", ErrInvalidInput, delta, current)
	}
	if next < committedDemand {
		return 0, fmt.Errorf("%w: capacity %d is below committed demand %d", ErrConflict, next, committedDemand)
	}
	return next, nil
}

// InventoryRange returns the raw ledger rows for an inclusive range,
// without availability arithmetic.  Missing dates are absent.
func (e *Engine) InventoryRange(ctx context.Context, propertyID, roomTypeID string, first, last time.Time) ([]model.InventoryRecord, error) {
	if err := validateInclusiveRange(first, last); err != nil {
		return nil, err
	}
	recs, err := e.Inventory.Range(ctx, propertyID, roomTypeID, first, last)
	if err != nil {
		return nil, mapSQLError(err)
	}
	return recs, nil
}
