package engine

import (
	"testing"

	"github.com/iliyamo/hotel-reservation-engine/internal/model"
)

// The tests here cover the pure lifecycle rules.  The transactional
// paths (confirm and cancel round trips, and N writers racing for the
// last room with only one winning) need real MySQL row locks and live
// in the integration suite, not this package.

func TestValidTransition(t *testing.T) {
	allowed := []struct{ from, to string }{
		{model.BookingPending, model.BookingConfirmed},
		{model.BookingPending, model.BookingCancelled},
		{model.BookingConfirmed, model.BookingCheckedIn},
		{model.BookingConfirmed, model.BookingCancelled},
		{model.BookingCheckedIn, model.BookingCompleted},
		{model.BookingCheckedIn, model.BookingCancelled},
	}
	for _, tc := range allowed {
		if !validTransition(tc.from, tc.to) {
			t.Errorf("transition %s -> %s should be allowed", tc.from, tc.to)
		}
	}

	forbidden := []struct{ from, to string }{
		{model.BookingPending, model.BookingCheckedIn},
		{model.BookingPending, model.BookingCompleted},
		{model.BookingConfirmed, model.BookingCompleted},
		{model.BookingConfirmed, model.BookingPending},
		{model.BookingCheckedIn, model.BookingConfirmed},
		{model.BookingCancelled, model.BookingConfirmed},
		{model.BookingCancelled, model.BookingCancelled},
		{model.BookingCompleted, model.BookingCancelled},
		{model.BookingCompleted, model.BookingCheckedIn},
	}
	for _, tc := range forbidden {
		if validTransition(tc.from, tc.to) {
			t.Errorf("transition %s -> %s should be rejected", tc.from, tc.to)
		}
	}
}

func TestTerminalStatesHaveNoExits(t *testing.T) {
	for _, terminal := range []string{model.BookingCancelled, model.BookingCompleted} {
		if exits, ok := transitions[terminal]; ok && len(exits) > 0 {
			t.Errorf("%s must be terminal, has exits %v", terminal, exits)
		}
	}
}

func TestValidStatus(t *testing.T) {
	for _, s := range []string{
		model.BookingPending, model.BookingConfirmed, model.BookingCheckedIn,
		model.BookingCancelled, model.BookingCompleted,
	} {
		if !validStatus(s) {
			t.Errorf("validStatus(%s) = false", s)
		}
	}
	for _, s := range []string{"", "confirmed", "BOOKED", "UNKNOWN"} {
		if validStatus(s) {
			t.Errorf("validStatus(%q) = true", s)
		}
	}
}

func TestValidPaymentStatus(t *testing.T) {
	for _, s := range []string{model.PaymentPending, model.PaymentPaid, model.PaymentRefunded} {
		if !validPaymentStatus(s) {
			t.Errorf("validPaymentStatus(%s) = false", s)
		}
	}
	for _, s := range []string{"", "paid", "CHARGED", "VOID"} {
		if validPaymentStatus(s) {
			t.Errorf("validPaymentStatus(%q) = true", s)
		}
	}
}
