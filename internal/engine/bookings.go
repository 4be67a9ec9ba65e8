package engine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/iliyamo/hotel-reservation-engine/internal/model"
	"github.com/iliyamo/hotel-reservation-engine/internal/repository"
)

// BookingInput carries the fields required to confirm a booking.
// Reference is optional: when the client supplies one it acts as an
// idempotency key, otherwise the engine generates a fresh one.
type BookingInput struct {
	Reference  string
	PropertyID string
	RoomTypeID string
	GuestName  string
	GuestEmail string
	GuestPhone string
	CheckIn    time.Time
	CheckOut   time.Time // exclusive
	Rooms      int
	Notes      string
}

// ConfirmBooking atomically checks availability over the whole stay
// and inserts a CONFIRMED booking.  One transaction does all the work:
//
//  1. Lock the ledger rows for every night of the stay (FOR UPDATE,
//     ordered by date so concurrent writers cannot deadlock).
//  2. Load overlapping CONFIRMED/CHECKED_IN bookings and ACTIVE blocks
//     in the same transaction.
//  3. For each night, verify sellable >= rooms requested.  The first
//     failing night aborts with InsufficientInventoryError.
//  4. Price the stay as Σ current_price_cents per night × rooms and
//     insert the booking.
//
// Because every writer locks the same rows in the same order, two
// concurrent requests for the last remaining rooms serialize: one
// commits, the other recounts against the committed state and fails
// cleanly.  Lock timeouts and deadlocks surface as ErrBusy.
//
// A duplicate reference means the booking was already confirmed by an
// earlier attempt; the existing booking is returned unchanged.
func (e *Engine) ConfirmBooking(ctx context.Context, in BookingInput) (model.Booking, error) {
	if strings.TrimSpace(in.GuestName) == "" {
		return model.Booking{}, fmt.Errorf("%w: guest_name is required", ErrInvalidInput)
	}
	if in.Rooms <= 0 {
		return model.Booking{}, fmt.Errorf("%w: rooms must be positive", ErrInvalidInput)
	}
	if err := validateStay(in.CheckIn, in.CheckOut); err != nil {
		return model.Booking{}, err
	}
	rt, err := e.RoomTypes.Get(ctx, in.PropertyID, in.RoomTypeID)
	if err != nil {
		return model.Booking{}, wrapRepoErr(err)
	}
	if err := ensureSellableRoomType(rt); err != nil {
		return model.Booking{}, err
	}

	now := time.Now().UTC()
	ref := strings.TrimSpace(in.Reference)
	if ref == "" {
		var err error
		if ref, err = NewBookingReference(now); err != nil {
			return model.Booking{}, err
		}
	}

	// Nights are [check_in, check_out); the last locked ledger row is
	// check_out - 1 day.
	firstNight := in.CheckIn
	lastNight := in.CheckOut.AddDate(0, 0, -1)

	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Booking{}, mapSQLError(err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	recs, err := e.Inventory.LockRangeTx(ctx, tx, in.PropertyID, in.RoomTypeID, firstNight, lastNight)
	if err != nil {
		return model.Booking{}, mapSQLError(err)
	}
	byDate := make(map[string]model.InventoryRecord, len(recs))
	for _, rec := range recs {
		byDate[rec.StayDate.Format(dateLayout)] = rec
	}

	bookings, err := e.Bookings.OverlappingTx(ctx, tx, in.PropertyID, in.RoomTypeID, firstNight, lastNight)
	if err != nil {
		return model.Booking{}, mapSQLError(err)
	}
	blocks, err := e.Blocks.ActiveOnDatesTx(ctx, tx, in.PropertyID, in.RoomTypeID, firstNight, lastNight)
	if err != nil {
		return model.Booking{}, mapSQLError(err)
	}

	var total int64
	for _, night := range stayDates(in.CheckIn, in.CheckOut) {
		rec, ok := byDate[night.Format(dateLayout)]
		if !ok {
			return model.Booking{}, fmt.Errorf("%w: no inventory on %s",
				ErrNotFound, night.Format(dateLayout))
		}
		sellable := sellableOn(night, rec.Capacity, bookings, blocks, now)
		if sellable < in.Rooms {
			return model.Booking{}, &InsufficientInventoryError{
				Date:      night,
				Requested: in.Rooms,
				Sellable:  sellable,
			}
		}
		total += rec.CurrentPriceCents * int64(in.Rooms)
	}

	b := model.Booking{
		Reference:       ref,
		PropertyID:      in.PropertyID,
		RoomTypeID:      in.RoomTypeID,
		GuestName:       strings.TrimSpace(in.GuestName),
		GuestEmail:      strings.TrimSpace(in.GuestEmail),
		GuestPhone:      strings.TrimSpace(in.GuestPhone),
		CheckIn:         in.CheckIn,
		CheckOut:        in.CheckOut,
		RoomsRequested:  in.Rooms,
		TotalPriceCents: total,
		Status:          model.BookingConfirmed,
		PaymentStatus:   model.PaymentPending,
		Notes:           in.Notes,
	}
	if err := e.Bookings.CreateTx(ctx, tx, &b); err != nil {
		if isDuplicateRef(err) {
			// The reference was used before; the booking created by
			// the earlier attempt is the idempotent answer.
			_ = tx.Rollback()
			existing, gerr := e.Bookings.GetByReference(ctx, ref)
			if gerr != nil {
				return model.Booking{}, wrapRepoErr(gerr)
			}
			return existing, nil
		}
		return model.Booking{}, mapSQLError(err)
	}
	if err := tx.Commit(); err != nil {
		return model.Booking{}, mapSQLError(err)
	}
	committed = true
	return e.Bookings.GetByReference(ctx, ref)
}

// GetBooking returns the booking with the given reference.
func (e *Engine) GetBooking(ctx context.Context, reference string) (model.Booking, error) {
	b, err := e.Bookings.GetByReference(ctx, reference)
	return b, wrapRepoErr(err)
}

// ListBookings returns bookings matching the filter.
func (e *Engine) ListBookings(ctx context.Context, f repository.BookingFilter) ([]model.Booking, error) {
	if !f.DateFrom.IsZero() && !f.DateTo.IsZero() {
		if err := validateInclusiveRange(f.DateFrom, f.DateTo); err != nil {
			return nil, err
		}
	}
	out, err := e.Bookings.List(ctx, f)
	return out, mapSQLError(err)
}

// CancelBooking cancels a non-terminal booking, which immediately
// returns its rooms to the sellable pool for every affected night
// (availability is derived, so no counter needs restoring).  When the
// booking was PAID the payment flips to REFUNDED.  Cancelling an
// already-cancelled booking fails with ErrAlreadyCancelled;
// COMPLETED bookings cannot be cancelled.
func (e *Engine) CancelBooking(ctx context.Context, reference, reason string) (model.Booking, error) {
	return e.transitionBooking(ctx, reference, model.BookingCancelled, "", reason)
}

// UpdateBookingStatus applies a lifecycle transition (check-in,
// completion, confirmation of a PENDING booking).  Illegal moves fail
// with ErrInvalidTransition.  PaymentStatus is optional: when empty
// the payment record is untouched, otherwise it is set alongside the
// transition (marking a booking PAID on check-in, say).
func (e *Engine) UpdateBookingStatus(ctx context.Context, reference, status, paymentStatus string) (model.Booking, error) {
	if !validStatus(status) {
		return model.Booking{}, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, status)
	}
	if paymentStatus != "" && !validPaymentStatus(paymentStatus) {
		return model.Booking{}, fmt.Errorf("%w: unknown payment status %q", ErrInvalidInput, paymentStatus)
	}
	return e.transitionBooking(ctx, reference, status, paymentStatus, "")
}

func (e *Engine) transitionBooking(ctx context.Context, reference, target, payment, reason string) (model.Booking, error) {
	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Booking{}, mapSQLError(err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	b, err := e.Bookings.GetByReferenceTx(ctx, tx, reference)
	if err != nil {
		return model.Booking{}, wrapRepoErr(err)
	}
	if target == model.BookingCancelled && b.Status == model.BookingCancelled {
		return model.Booking{}, fmt.Errorf("%w: %s", ErrAlreadyCancelled, reference)
	}
	if !validTransition(b.Status, target) {
		return model.Booking{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, b.Status, target)
	}

	if payment == "" && target == model.BookingCancelled && b.PaymentStatus == model.PaymentPaid {
		payment = model.PaymentRefunded
	}
	note := ""
	if reason != "" {
		note = fmt.Sprintf("[%s] %s", time.Now().UTC().Format(time.RFC3339), reason)
	}
	if err := e.Bookings.UpdateStatusTx(ctx, tx, b.BookingID, target, payment, note); err != nil {
		return model.Booking{}, mapSQLError(err)
	}
	if err := tx.Commit(); err != nil {
		return model.Booking{}, mapSQLError(err)
	}
	committed = true
	return e.Bookings.GetByReference(ctx, reference)
}

// transitions is the booking lifecycle: PENDING may confirm or cancel,
// CONFIRMED may check in or cancel, CHECKED_IN may complete or cancel.
// CANCELLED and COMPLETED are terminal.
var transitions = map[string][]string{
	model.BookingPending:   {model.BookingConfirmed, model.BookingCancelled},
	model.BookingConfirmed: {model.BookingCheckedIn, model.BookingCancelled},
	model.BookingCheckedIn: {model.BookingCompleted, model.BookingCancelled},
}

func validTransition(from, to string) bool {
	for _, t := range transitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

func validStatus(s string) bool {
	switch s {
	case model.BookingPending, model.BookingConfirmed, model.BookingCheckedIn,
		model.BookingCancelled, model.BookingCompleted:
		return true
	}
	return false
}

func validPaymentStatus(s string) bool {
	switch s {
	case model.PaymentPending, model.PaymentPaid, model.PaymentRefunded:
		return true
	}
	return false
}
