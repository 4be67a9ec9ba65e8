package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/iliyamo/hotel-reservation-engine/internal/model"
)

// BookingRepo provides persistence for bookings.  All creation paths
// run through transactions owned by the engine so that the
// availability check and the insert observe the same locked ledger
// state.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

const bookingColumns = `booking_id, booking_reference, property_id, room_type_id,
       guest_name, guest_email, guest_phone, check_in, check_out,
       rooms_requested, total_price_cents, status, payment_status, notes,
       created_at, updated_at`

func scanBooking(row interface{ Scan(...interface{}) error }) (model.Booking, error) {
	var b model.Booking
	var email, phone, notes sql.NullString
	err := row.Scan(&b.BookingID, &b.Reference, &b.PropertyID, &b.RoomTypeID,
		&b.GuestName, &email, &phone, &b.CheckIn, &b.CheckOut,
		&b.RoomsRequested, &b.TotalPriceCents, &b.Status, &b.PaymentStatus, &notes,
		&b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return b, err
	}
	b.GuestEmail = email.String
	b.GuestPhone = phone.String
	b.Notes = notes.String
	return b, nil
}

// CreateTx inserts a booking inside the caller's transaction and fills
// in the generated id.  A duplicate reference propagates as the raw
// MySQL error so the engine can resolve it idempotently after rollback.
func (r *BookingRepo) CreateTx(ctx context.Context, tx *sql.Tx, b *model.Booking) error {
	const q = `INSERT INTO bookings
	           (booking_reference, property_id, room_type_id, guest_name, guest_email,
	            guest_phone, check_in, check_out, rooms_requested, total_price_cents,
	            status, payment_status, notes)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q,
		b.Reference, b.PropertyID, b.RoomTypeID, b.GuestName, nullIfEmpty(b.GuestEmail),
		nullIfEmpty(b.GuestPhone), b.CheckIn.Format("2006-01-02"), b.CheckOut.Format("2006-01-02"),
		b.RoomsRequested, b.TotalPriceCents, b.Status, b.PaymentStatus, nullIfEmpty(b.Notes))
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.BookingID = uint64(id)
	return nil
}

// OverlappingTx returns the bookings of a room type that occupy any
// night in [first, last] and still consume inventory, i.e. status
// CONFIRMED or CHECKED_IN.  With check_out exclusive, a booking
// overlaps the window exactly when check_in <= last AND check_out >
// first.  Runs inside the caller's transaction so the counts match
// the locked ledger rows.
func (r *BookingRepo) OverlappingTx(ctx context.Context, tx *sql.Tx, propertyID, roomTypeID string, first, last time.Time) ([]model.Booking, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings
	           WHERE property_id = ? AND room_type_id = ?
	             AND status IN (?, ?)
	             AND check_in <= ? AND check_out > ?
	           ORDER BY check_in`
	rows, err := tx.QueryContext(ctx, q, propertyID, roomTypeID,
		model.BookingConfirmed, model.BookingCheckedIn,
		last.Format("2006-01-02"), first.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBookings(rows)
}

// GetByReference returns the booking with the given reference or
// ErrBookingNotFound.
func (r *BookingRepo) GetByReference(ctx context.Context, reference string) (model.Booking, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings WHERE booking_reference = ?`
	b, err := scanBooking(r.db.QueryRowContext(ctx, q, reference))
	if errors.Is(err, sql.ErrNoRows) {
		return b, ErrBookingNotFound
	}
	return b, err
}

// GetByReferenceTx is GetByReference inside the caller's transaction,
// with the row locked FOR UPDATE so a status transition cannot race
// with another writer on the same booking.
func (r *BookingRepo) GetByReferenceTx(ctx context.Context, tx *sql.Tx, reference string) (model.Booking, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings
	           WHERE booking_reference = ? FOR UPDATE`
	b, err := scanBooking(tx.QueryRowContext(ctx, q, reference))
	if errors.Is(err, sql.ErrNoRows) {
		return b, ErrBookingNotFound
	}
	return b, err
}

// UpdateStatusTx persists a status change, optionally the payment
// status, and appends to notes when note is non-empty.
func (r *BookingRepo) UpdateStatusTx(ctx context.Context, tx *sql.Tx, bookingID uint64, status string, paymentStatus, note string) error {
	sets := []string{"status = ?"}
	args := []interface{}{status}
	if paymentStatus != "" {
		sets = append(sets, "payment_status = ?")
		args = append(args, paymentStatus)
	}
	if note != "" {
		sets = append(sets, "notes = CONCAT_WS('\n', notes, ?)")
		args = append(args, note)
	}
	args = append(args, bookingID)
	q := `UPDATE bookings SET ` + strings.Join(sets, ", ") + ` WHERE booking_id = ?`
	_, err := tx.ExecContext(ctx, q, args...)
	return err
}

// BookingFilter narrows List results.  Zero values mean "no filter".
type BookingFilter struct {
	PropertyID string
	RoomTypeID string
	Status     string
	// DateFrom/DateTo, when both set, keep bookings whose stay
	// overlaps [DateFrom, DateTo].
	DateFrom time.Time
	DateTo   time.Time
	Limit    int
	Offset   int
}

// List returns bookings matching the filter, newest first.
func (r *BookingRepo) List(ctx context.Context, f BookingFilter) ([]model.Booking, error) {
	q := `SELECT ` + bookingColumns + ` FROM bookings WHERE 1=1`
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
	if !f.DateFrom.IsZero() && !f.DateTo.IsZero() {
		q += ` AND check_in <= ? AND check_out > ?`
		args = append(args, f.DateTo.Format("2006-01-02"), f.DateFrom.Format("2006-01-02"))
	}
	q += ` ORDER BY created_at DESC`
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
	return collectBookings(rows)
}

// RevenueRow aggregates booking revenue per room type.
type RevenueRow struct {
	RoomTypeID   string
	RoomName     string
	Bookings     int
	RoomNights   int64
	RevenueCents int64
}

// RevenueByRoomType totals revenue-bearing bookings (CONFIRMED,
// CHECKED_IN, COMPLETED) per room type for bookings whose stay
// overlaps [first, last], sorted by revenue descending.
func (r *BookingRepo) RevenueByRoomType(ctx context.Context, propertyID string, first, last time.Time) ([]RevenueRow, error) {
	const q = `SELECT b.room_type_id, rt.room_name,
	                  COUNT(*) AS bookings,
	                  COALESCE(SUM(DATEDIFF(b.check_out, b.check_in) * b.rooms_requested), 0) AS room_nights,
	                  COALESCE(SUM(b.total_price_cents), 0) AS revenue_cents
	           FROM bookings b
	           JOIN room_types rt ON rt.room_type_id = b.room_type_id
	           WHERE b.property_id = ?
	             AND b.status IN (?, ?, ?)
	             AND b.check_in <= ? AND b.check_out > ?
	           GROUP BY b.room_type_id, rt.room_name
	           ORDER BY revenue_cents DESC`
	rows, err := r.db.QueryContext(ctx, q, propertyID,
		model.BookingConfirmed, model.BookingCheckedIn, model.BookingCompleted,
		last.Format("2006-01-02"), first.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]RevenueRow, 0)
	for rows.Next() {
		var row RevenueRow
		if err := rows.Scan(&row.RoomTypeID, &row.RoomName, &row.Bookings, &row.RoomNights, &row.RevenueCents); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// CountActiveForRoomType reports how many CONFIRMED or CHECKED_IN
// bookings still reference the room type.  Used to guard deactivation.
func (r *BookingRepo) CountActiveForRoomType(ctx context.Context, roomTypeID string) (int, error) {
	const q = `SELECT COUNT(*) FROM bookings
	           WHERE room_type_id = ? AND status IN (?, ?)`
	var n int
	err := r.db.QueryRowContext(ctx, q, roomTypeID,
		model.BookingConfirmed, model.BookingCheckedIn).Scan(&n)
	return n, err
}

func collectBookings(rows *sql.Rows) ([]model.Booking, error) {
	out := make([]model.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
