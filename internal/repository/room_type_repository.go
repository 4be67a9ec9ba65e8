package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/hotel-reservation-engine/internal/model"
)

// RoomTypeRepo provides CRUD operations for room types.  Room types
// are identified by a string primary key derived from the property id
// and the room name, matching the onboarding convention used by the
// rest of the platform.  Deletion is always soft (is_active flag).
type RoomTypeRepo struct {
	db *sql.DB
}

// NewRoomTypeRepo returns a new RoomTypeRepo bound to the given database.
func NewRoomTypeRepo(db *sql.DB) *RoomTypeRepo { return &RoomTypeRepo{db: db} }

const roomTypeColumns = `room_type_id, property_id, room_name, bed_type, view_type,
       max_occupancy, base_price_cents, total_rooms, is_active, created_at, updated_at`

func scanRoomType(row interface{ Scan(...interface{}) error }) (model.RoomType, error) {
	var rt model.RoomType
	var bedType, viewType sql.NullString
	err := row.Scan(&rt.RoomTypeID, &rt.PropertyID, &rt.RoomName, &bedType, &viewType,
		&rt.MaxOccupancy, &rt.BasePriceCents, &rt.TotalRooms, &rt.IsActive,
		&rt.CreatedAt, &rt.UpdatedAt)
	if err != nil {
		return rt, err
	}
	rt.BedType = bedType.String
	rt.ViewType = viewType.String
	return rt, nil
}

// Create inserts a new room type row.  The caller supplies the
// pre-built room_type_id.  A duplicate id or a duplicate
// (property, room_name) pair surfaces as ErrConflict.
func (r *RoomTypeRepo) Create(ctx context.Context, rt *model.RoomType) error {
	const q = `INSERT INTO room_types
	           (room_type_id, property_id, room_name, bed_type, view_type,
	            max_occupancy, base_price_cents, total_rooms, is_active)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, TRUE)`
	_, err := r.db.ExecContext(ctx, q,
		rt.RoomTypeID, rt.PropertyID, rt.RoomName, nullIfEmpty(rt.BedType), nullIfEmpty(rt.ViewType),
		rt.MaxOccupancy, rt.BasePriceCents, rt.TotalRooms)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrConflict
		}
		return err
	}
	return nil
}

// Get returns a room type by its (property, room type) identity,
// whether active or not.  ErrRoomTypeNotFound is returned when the
// row does not exist.
func (r *RoomTypeRepo) Get(ctx context.Context, propertyID, roomTypeID string) (model.RoomType, error) {
	const q = `SELECT ` + roomTypeColumns + ` FROM room_types
	           WHERE property_id = ? AND room_type_id = ?`
	rt, err := scanRoomType(r.db.QueryRowContext(ctx, q, propertyID, roomTypeID))
	if errors.Is(err, sql.ErrNoRows) {
		return rt, ErrRoomTypeNotFound
	}
	return rt, err
}

// ListByProperty returns room types for a property ordered by name.
// When activeOnly is true, soft-deleted types are excluded.
func (r *RoomTypeRepo) ListByProperty(ctx context.Context, propertyID string, activeOnly bool) ([]model.RoomType, error) {
	q := `SELECT ` + roomTypeColumns + ` FROM room_types WHERE property_id = ?`
	if activeOnly {
		q += ` AND is_active = TRUE`
	}
	q += ` ORDER BY room_name`
	rows, err := r.db.QueryContext(ctx, q, propertyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.RoomType, 0)
	for rows.Next() {
		rt, err := scanRoomType(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rt)
	}
	return out, rows.Err()
}

// Update applies non-nil fields of the patch to an existing room type.
// It returns ErrRoomTypeNotFound when no row matched.
func (r *RoomTypeRepo) Update(ctx context.Context, propertyID, roomTypeID string, patch RoomTypePatch) error {
	sets := make([]string, 0, 6)
	args := make([]interface{}, 0, 8)
	if patch.RoomName != nil {
		sets = append(sets, "room_name = ?")
		args = append(args, *patch.RoomName)
	}
	if patch.BedType != nil {
		sets = append(sets, "bed_type = ?")
		args = append(args, *patch.BedType)
	}
	if patch.ViewType != nil {
		sets = append(sets, "view_type = ?")
		args = append(args, *patch.ViewType)
	}
	if patch.MaxOccupancy != nil {
		sets = append(sets, "max_occupancy = ?")
		args = append(args, *patch.MaxOccupancy)
	}
	if patch.BasePriceCents != nil {
		sets = append(sets, "base_price_cents = ?")
		args = append(args, *patch.BasePriceCents)
	}
	if patch.TotalRooms != nil {
		sets = append(sets, "total_rooms = ?")
		args = append(args, *patch.TotalRooms)
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, propertyID, roomTypeID)
	q := `UPDATE room_types SET ` + strings.Join(sets, ", ") +
		` WHERE property_id = ? AND room_type_id = ?`
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrConflict
		}
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// Either the row is missing or the patch was a no-op; confirm existence.
		if _, gerr := r.Get(ctx, propertyID, roomTypeID); gerr != nil {
			return gerr
		}
	}
	return nil
}

// RoomTypePatch carries optional field updates for a room type.  Nil
// pointers leave the corresponding column untouched.
type RoomTypePatch struct {
	RoomName       *string
	BedType        *string
	ViewType       *string
	MaxOccupancy   *int
	BasePriceCents *int64
	TotalRooms     *int
}

// Deactivate flips is_active to false.  The caller is responsible for
// verifying that no active bookings reference the room type before
// calling; the check lives in the engine so it can share a transaction
// with the update when needed.
func (r *RoomTypeRepo) Deactivate(ctx context.Context, propertyID, roomTypeID string) error {
	const q = `UPDATE room_types SET is_active = FALSE
	           WHERE property_id = ? AND room_type_id = ? AND is_active = TRUE`
	res, err := r.db.ExecContext(ctx, q, propertyID, roomTypeID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		if _, gerr := r.Get(ctx, propertyID, roomTypeID); gerr != nil {
			return gerr
		}
		// Row exists but was already inactive; deactivation is idempotent.
	}
	return nil
}

func nullIfEmpty(s string) interface{} {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return s
}
