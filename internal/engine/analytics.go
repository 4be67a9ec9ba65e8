package engine

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/iliyamo/hotel-reservation-engine/internal/model"
	"github.com/iliyamo/hotel-reservation-engine/internal/repository"
)

// ReportRow is one room type's derived availability on one date, as
// rendered in the inventory report.
type ReportRow struct {
	RoomTypeID string
	RoomName   string
	Day        DayAvailability
}

// InventoryReport derives the full availability picture of a property
// over an inclusive range: one row per active room type per seeded
// date, computed inside a single read-only transaction so all rows
// reflect the same snapshot.
func (e *Engine) InventoryReport(ctx context.Context, propertyID string, first, last time.Time) ([]ReportRow, error) {
	if err := validateInclusiveRange(first, last); err != nil {
		return nil, err
	}
	types, err := e.RoomTypes.ListByProperty(ctx, propertyID, true)
	if err != nil {
		return nil, wrapRepoErr(err)
	}

	tx, err := e.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, mapSQLError(err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	out := make([]ReportRow, 0)
	for _, rt := range types {
		recs, err := e.Inventory.RangeTx(ctx, tx, propertyID, rt.RoomTypeID, first, last)
		if err != nil {
			return nil, mapSQLError(err)
		}
		if len(recs) == 0 {
			continue
		}
		bookings, err := e.Bookings.OverlappingTx(ctx, tx, propertyID, rt.RoomTypeID, first, last)
		if err != nil {
			return nil, mapSQLError(err)
		}
		blocks, err := e.Blocks.ActiveOnDatesTx(ctx, tx, propertyID, rt.RoomTypeID, first, last)
		if err != nil {
			return nil, mapSQLError(err)
		}
		for _, rec := range recs {
			out = append(out, ReportRow{
				RoomTypeID: rt.RoomTypeID,
				RoomName:   rt.RoomName,
				Day:        deriveDay(rec, bookings, blocks, now),
			})
		}
	}
	return out, nil
}

// OccupancySummary aggregates occupied room nights against seeded
// capacity over a reporting window.  A night is occupied when it is
// not sellable, so maintenance and allotment blocks count toward
// occupancy the same way sold rooms do.
type OccupancySummary struct {
	PropertyID     string
	StartDate      time.Time
	EndDate        time.Time
	OccupiedNights int64
	CapacityNights int64
	// Rate is OccupiedNights / CapacityNights, capped at 1.0; zero when
	// nothing was seeded.
	Rate float64
}

// OccupancyRate computes the property's occupancy over an inclusive
// range from the same derived rows the inventory report uses.
func (e *Engine) OccupancyRate(ctx context.Context, propertyID string, first, last time.Time) (OccupancySummary, error) {
	rows, err := e.InventoryReport(ctx, propertyID, first, last)
	if err != nil {
		return OccupancySummary{}, err
	}
	return summarizeOccupancy(propertyID, first, last, rows), nil
}

func summarizeOccupancy(propertyID string, first, last time.Time, rows []ReportRow) OccupancySummary {
	s := OccupancySummary{PropertyID: propertyID, StartDate: first, EndDate: last}
	for _, row := range rows {
		s.OccupiedNights += int64(row.Day.Capacity - row.Day.Sellable)
		s.CapacityNights += int64(row.Day.Capacity)
	}
	if s.CapacityNights > 0 {
		s.Rate = float64(s.OccupiedNights) / float64(s.CapacityNights)
		if s.Rate > 1 {
			s.Rate = 1
		}
	}
	return s
}

// RoomTypePerformance totals bookings, room nights and revenue per
// room type for stays overlapping the inclusive range, ordered by
// revenue descending.
func (e *Engine) RoomTypePerformance(ctx context.Context, propertyID string, first, last time.Time) ([]repository.RevenueRow, error) {
	if err := validateInclusiveRange(first, last); err != nil {
		return nil, err
	}
	rows, err := e.Bookings.RevenueByRoomType(ctx, propertyID, first, last)
	if err != nil {
		return nil, mapSQLError(err)
	}
	return rows, nil
}

// RealTimeAvailability is the single-date convenience lookup used by
// front-desk tooling: the derived day plus the room type's identity.
func (e *Engine) RealTimeAvailability(ctx context.Context, propertyID, roomTypeID string, date time.Time) (model.RoomType, DayAvailability, error) {
	rt, err := e.RoomTypes.Get(ctx, propertyID, roomTypeID)
	if err != nil {
		return model.RoomType{}, DayAvailability{}, wrapRepoErr(err)
	}
	days, err := e.Sellable(ctx, propertyID, roomTypeID, date, date)
	if err != nil {
		return model.RoomType{}, DayAvailability{}, err
	}
	if len(days) == 0 {
		return model.RoomType{}, DayAvailability{}, fmt.Errorf("%w: no inventory on %s",
			ErrNotFound, date.Format(dateLayout))
	}
	return rt, days[0], nil
}
