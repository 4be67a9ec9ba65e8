package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/hotel-reservation-engine/internal/model"
)

// BlockRepo provides persistence for room blocks.  Blocks share the
// ledger locking discipline with bookings: creation happens inside an
// engine-owned transaction that already holds the inventory row lock
// for the block date.
type BlockRepo struct {
	db *sql.DB
}

// NewBlockRepo returns a new BlockRepo bound to the given database.
func NewBlockRepo(db *sql.DB) *BlockRepo { return &BlockRepo{db: db} }

const blockColumns = `block_id, block_reference, property_id, room_type_id, block_date,
       rooms_blocked, block_type, block_reason, blocked_by, status, expires_at,
       notes, created_at, updated_at`

func scanBlock(row interface{ Scan(...interface{}) error }) (model.RoomBlock, error) {
	var b model.RoomBlock
	var reason, blockedBy, notes sql.NullString
	var expiresAt sql.NullTime
	err := row.Scan(&b.BlockID, &b.Reference, &b.PropertyID, &b.RoomTypeID, &b.BlockDate,
		&b.RoomsBlocked, &b.BlockType, &reason, &blockedBy, &b.Status, &expiresAt,
		&notes, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return b, err
	}
	b.BlockReason = reason.String
	b.BlockedBy = blockedBy.String
	b.Notes = notes.String
	if expiresAt.Valid {
		t := expiresAt.Time
		b.ExpiresAt = &t
	}
	return b, nil
}

// CreateTx inserts a block inside the caller's transaction and fills
// in the generated id.  Duplicate references propagate as the raw
// MySQL error for the engine's idempotency handling.
func (r *BlockRepo) CreateTx(ctx context.Context, tx *sql.Tx, b *model.RoomBlock) error {
	const q = `INSERT INTO room_blocks
	           (block_reference, property_id, room_type_id, block_date, rooms_blocked,
	            block_type, block_reason, blocked_by, status, expires_at, notes)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	var expires interface{}
	if b.ExpiresAt != nil {
		expires = b.ExpiresAt.UTC()
	}
	res, err := tx.ExecContext(ctx, q,
		b.Reference, b.PropertyID, b.RoomTypeID, b.BlockDate.Format("2006-01-02"),
		b.RoomsBlocked, b.BlockType, nullIfEmpty(b.BlockReason), nullIfEmpty(b.BlockedBy),
		b.Status, expires, nullIfEmpty(b.Notes))
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.BlockID = uint64(id)
	return nil
}

// ActiveOnDatesTx returns blocks with status ACTIVE whose block date
// falls in [first, last], inside the caller's transaction.  Expiry is
// deliberately not filtered here: the engine applies ActiveAt(now) in
// code so availability never depends on the sweep having run.
func (r *BlockRepo) ActiveOnDatesTx(ctx context.Context, tx *sql.Tx, propertyID, roomTypeID string, first, last time.Time) ([]model.RoomBlock, error) {
	const q = `SELECT ` + blockColumns + ` FROM room_blocks
	           WHERE property_id = ? AND room_type_id = ?
	             AND status = ?
	             AND block_date BETWEEN ? AND ?
	           ORDER BY block_date`
	rows, err := tx.QueryContext(ctx, q, propertyID, roomTypeID, model.BlockActive,
		first.Format("2006-01-02"), last.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBlocks(rows)
}

// GetByReference returns the block with the given reference or
// ErrBlockNotFound.
func (r *BlockRepo) GetByReference(ctx context.Context, reference string) (model.RoomBlock, error) {
	const q = `SELECT ` + blockColumns + ` FROM room_blocks WHERE block_reference = ?`
	b, err := scanBlock(r.db.QueryRowContext(ctx, q, reference))
	if errors.Is(err, sql.ErrNoRows) {
		return b, ErrBlockNotFound
	}
	return b, err
}

// GetByReferenceTx locks and returns the block row FOR UPDATE so a
// release cannot race with the expiry sweep or another release.
func (r *BlockRepo) GetByReferenceTx(ctx context.Context, tx *sql.Tx, reference string) (model.RoomBlock, error) {
	const q = `SELECT ` + blockColumns + ` FROM room_blocks
	           WHERE block_reference = ? FOR UPDATE`
	b, err := scanBlock(tx.QueryRowContext(ctx, q, reference))
	if errors.Is(err, sql.ErrNoRows) {
		return b, ErrBlockNotFound
	}
	return b, err
}

// UpdateStatusTx persists a block status change.
func (r *BlockRepo) UpdateStatusTx(ctx context.Context, tx *sql.Tx, blockID uint64, status string) error {
	const q = `UPDATE room_blocks SET status = ? WHERE block_id = ?`
	_, err := tx.ExecContext(ctx, q, status, blockID)
	return err
}

// SweepExpired marks every ACTIVE block whose expiry has passed as
// EXPIRED and returns the number of rows flipped.  The sweep is purely
// housekeeping; availability already ignores expired blocks.
func (r *BlockRepo) SweepExpired(ctx context.Context, now time.Time) (int64, error) {
	const q = `UPDATE room_blocks SET status = ?
	           WHERE status = ? AND expires_at IS NOT NULL AND expires_at <= ?`
	res, err := r.db.ExecContext(ctx, q, model.BlockExpired, model.BlockActive, now.UTC())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// BlockFilter narrows List results.  Zero values mean "no filter".
type BlockFilter struct {
	PropertyID string
	RoomTypeID string
	Status     string
	DateFrom   time.Time
	DateTo     time.Time
	Limit      int
	Offset     int
}

// List returns blocks matching the filter ordered by block date.
func (r *BlockRepo) List(ctx context.Context, f BlockFilter) ([]model.RoomBlock, error) {
	q := `SELECT ` + blockColumns + ` FROM room_blocks WHERE 1=1`
	args := make([]interface{}, 0, 8)
	if f.PropertyID != "" {
		q += ` AND property_id = ?`
		args = append(args, f.PropertyID)
	}
	if f.RoomTypeID != "" {
		q += ` AND room_type_id = ?`
		args = append(args, f.RoomTypeID)
	}
	if f.Status != "" {
		q += ` AND status = ?`
		args = append(args, f.Status)
	}
	if !f.DateFrom.IsZero() {
		q += ` AND block_date >= ?`
		args = append(args, f.DateFrom.Format("2006-01-02"))
	}
	if !f.DateTo.IsZero() {
		q += ` AND block_date <= ?`
		args = append(args, f.DateTo.Format("2006-01-02"))
	}
	q += ` ORDER BY block_date`
	limit := f.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	q += ` LIMIT ? OFFSET ?`
	args = append(args, limit, f.Offset)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBlocks(rows)
}

func collectBlocks(rows *sql.Rows) ([]model.RoomBlock, error) {
	out := make([]model.RoomBlock, 0)
	for rows.Next() {
		b, err := scanBlock(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
