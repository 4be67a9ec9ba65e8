package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/iliyamo/hotel-reservation-engine/internal/model"
)

// InventoryRepo manages the per-date inventory ledger.  Each row pins
// the capacity and the current nightly price of one room type on one
// stay date.  Rows are created by seeding and are the unit of locking
// for every write that consumes availability.
type InventoryRepo struct {
	db *sql.DB
}

// NewInventoryRepo returns a new InventoryRepo bound to the given database.
func NewInventoryRepo(db *sql.DB) *InventoryRepo { return &InventoryRepo{db: db} }

const inventoryColumns = `inventory_id, property_id, room_type_id, stay_date,
       capacity, current_price_cents, created_at, updated_at`

func scanInventory(row interface{ Scan(...interface{}) error }) (model.InventoryRecord, error) {
	var rec model.InventoryRecord
	err := row.Scan(&rec.InventoryID, &rec.PropertyID, &rec.RoomTypeID, &rec.StayDate,
		&rec.Capacity, &rec.CurrentPriceCents, &rec.CreatedAt, &rec.UpdatedAt)
	return rec, err
}

// SeedRange upserts one ledger row per date.  Existing rows keep their
// identity but take the new capacity and price, so re-seeding a season
// is idempotent.  All dates are inserted in a single statement.
func (r *InventoryRepo) SeedRange(ctx context.Context, propertyID, roomTypeID string, dates []time.Time, capacity int, priceCents int64) error {
	if len(dates) == 0 {
		return nil
	}
	var sb strings.Builder
	sb.WriteString(`INSERT INTO room_inventory
	               (property_id, room_type_id, stay_date, capacity, current_price_cents)
	               VALUES `)
	args := make([]interface{}, 0, len(dates)*5)
	for i, d := range dates {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("(?, ?, ?, ?, ?)")
		args = append(args, propertyID, roomTypeID, d.Format("2006-01-02"), capacity, priceCents)
	}
	sb.WriteString(` ON DUPLICATE KEY UPDATE
	                capacity = VALUES(capacity),
	                current_price_cents = VALUES(current_price_cents)`)
	_, err := r.db.ExecContext(ctx, sb.String(), args...)
	return err
}

// Range returns the ledger rows for [first, last] inclusive, ordered
// by stay date.  Missing dates are simply absent from the result; the
// engine decides whether a gap is an error.
func (r *InventoryRepo) Range(ctx context.Context, propertyID, roomTypeID string, first, last time.Time) ([]model.InventoryRecord, error) {
	const q = `SELECT ` + inventoryColumns + ` FROM room_inventory
	           WHERE property_id = ? AND room_type_id = ?
	             AND stay_date BETWEEN ? AND ?
	           ORDER BY stay_date`
	rows, err := r.db.QueryContext(ctx, q, propertyID, roomTypeID,
		first.Format("2006-01-02"), last.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectInventory(rows)
}

// RangeTx behaves like Range but runs inside the caller's transaction,
// so read-only snapshot reports see a consistent ledger.
func (r *InventoryRepo) RangeTx(ctx context.Context, tx *sql.Tx, propertyID, roomTypeID string, first, last time.Time) ([]model.InventoryRecord, error) {
	const q = `SELECT ` + inventoryColumns + ` FROM room_inventory
	           WHERE property_id = ? AND room_type_id = ?
	             AND stay_date BETWEEN ? AND ?
	           ORDER BY stay_date`
	rows, err := tx.QueryContext(ctx, q, propertyID, roomTypeID,
		first.Format("2006-01-02"), last.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectInventory(rows)
}

// LockRangeTx selects the ledger rows for [first, last] inclusive with
// FOR UPDATE, ordered by stay date.  Every writer that consumes
// availability locks through this method, so competing writers always
// acquire row locks in the same order and cannot deadlock on the
// ledger alone.
func (r *InventoryRepo) LockRangeTx(ctx context.Context, tx *sql.Tx, propertyID, roomTypeID string, first, last time.Time) ([]model.InventoryRecord, error) {
	const q = `SELECT ` + inventoryColumns + ` FROM room_inventory
	           WHERE property_id = ? AND room_type_id = ?
	             AND stay_date BETWEEN ? AND ?
	           ORDER BY stay_date
	           FOR UPDATE`
	rows, err := tx.QueryContext(ctx, q, propertyID, roomTypeID,
		first.Format("2006-01-02"), last.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectInventory(rows)
}

// UpdatePricingRange overwrites current_price_cents for every ledger
// row in [first, last] inclusive and returns the number of rows
// touched.
func (r *InventoryRepo) UpdatePricingRange(ctx context.Context, propertyID, roomTypeID string, first, last time.Time, priceCents int64) (int64, error) {
	const q = `UPDATE room_inventory SET current_price_cents = ?
	           WHERE property_id = ? AND room_type_id = ?
	             AND stay_date BETWEEN ? AND ?`
	res, err := r.db.ExecContext(ctx, q, priceCents, propertyID, roomTypeID,
		first.Format("2006-01-02"), last.Format("2006-01-02"))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// AdjustCapacityTx sets the capacity of a single ledger row.  It runs
// in the caller's transaction because lowering capacity must be
// checked against the demand already booked on that date, and the
// check and the write have to see the same locked state.
func (r *InventoryRepo) AdjustCapacityTx(ctx context.Context, tx *sql.Tx, inventoryID uint64, capacity int) error {
	const q = `UPDATE room_inventory SET capacity = ? WHERE inventory_id = ?`
	_, err := tx.ExecContext(ctx, q, capacity, inventoryID)
	return err
}

func collectInventory(rows *sql.Rows) ([]model.InventoryRecord, error) {
	out := make([]model.InventoryRecord, 0)
	for rows.Next() {
		rec, err := scanInventory(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
