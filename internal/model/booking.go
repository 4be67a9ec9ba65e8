package model

import "time"

// Booking status values.  The lifecycle is
// PENDING → CONFIRMED → {CHECKED_IN → COMPLETED, CANCELLED}; a
// CONFIRMED or CHECKED_IN booking may also be cancelled directly.
// CANCELLED and COMPLETED are terminal.
const (
	BookingPending   = "PENDING"
	BookingConfirmed = "CONFIRMED"
	BookingCheckedIn = "CHECKED_IN"
	BookingCancelled = "CANCELLED"
	BookingCompleted = "COMPLETED"
)

// Payment status values tracked alongside the booking status.
const (
	PaymentPending  = "PENDING"
	PaymentPaid     = "PAID"
	PaymentRefunded = "REFUNDED"
)

// Booking records a guest reservation for one room type over a stay
// range.  CheckOut is exclusive: a booking occupies every night d with
// CheckIn <= d < CheckOut.  Only status transitions mutate a booking
// after creation; inventory rows are never touched, because sellable
// counts are derived from the set of CONFIRMED/CHECKED_IN bookings.
//
// Fields:
//  BookingID       – primary key identifier.
//  Reference       – unique, client-suppliable idempotency reference.
//  PropertyID      – hotel property.
//  RoomTypeID      – room type booked.
//  GuestName       – primary guest's full name.
//  GuestEmail      – contact email (optional).
//  GuestPhone      – contact phone (optional).
//  CheckIn         – first night of the stay.
//  CheckOut        – day of departure (exclusive).
//  RoomsRequested  – number of rooms of this type reserved.
//  TotalPriceCents – sum of the per-date rate over the stay, times rooms.
//  Status          – booking lifecycle status.
//  PaymentStatus   – payment lifecycle status.
//  Notes           – free-form audit trail (cancellation reasons etc.).
//  CreatedAt       – timestamp of creation.
//  UpdatedAt       – timestamp of last update.
type Booking struct {
	BookingID       uint64    // bookings.booking_id
	Reference       string    // bookings.booking_reference
	PropertyID      string    // bookings.property_id
	RoomTypeID      string    // bookings.room_type_id
	GuestName       string    // bookings.guest_name
	GuestEmail      string    // bookings.guest_email
	GuestPhone      string    // bookings.guest_phone
	CheckIn         time.Time // bookings.check_in
	CheckOut        time.Time // bookings.check_out (exclusive)
	RoomsRequested  int       // bookings.rooms_requested
	TotalPriceCents int64     // bookings.total_price_cents
	Status          string    // bookings.status
	PaymentStatus   string    // bookings.payment_status
	Notes           string    // bookings.notes
	CreatedAt       time.Time // bookings.created_at
	UpdatedAt       time.Time // bookings.updated_at
}

// Overlaps reports whether the booking occupies the night of d, i.e.
// CheckIn <= d < CheckOut.
func (b *Booking) Overlaps(d time.Time) bool {
	return !d.Before(b.CheckIn) && d.Before(b.CheckOut)
}
