// Package engine implements the reservation core: room type catalog,
// per-date inventory ledger, bookings, blocks, availability derivation
// and reporting.  Every write that consumes availability runs as a
// single database transaction that locks the relevant ledger rows,
// recounts demand and only then inserts.  Availability itself is never
// stored; it is recomputed from capacity, overlapping bookings and
// active blocks on every read.
package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
)

// Sentinel errors returned by engine operations.  Handlers map these
// onto HTTP statuses; callers embedding the engine elsewhere can test
// them with errors.Is.
var (
	// ErrNotFound wraps the repository not-found sentinels into a
	// single engine-level identity.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput marks request validation failures: malformed
	// dates, inverted ranges, non-positive quantities.
	ErrInvalidInput = errors.New("invalid input")

	// ErrBusy is returned when the database reported lock contention
	// (lock wait timeout or deadlock).  The operation made no change
	// and is safe to retry.
	ErrBusy = errors.New("temporarily busy, retry")

	// ErrConflict marks state conflicts such as deactivating a room
	// type that still has active bookings.
	ErrConflict = errors.New("conflict")

	// ErrAlreadyCancelled is returned when cancelling a booking that
	// is already in CANCELLED state.
	ErrAlreadyCancelled = errors.New("booking already cancelled")

	// ErrAlreadyReleased is returned when releasing a block that is
	// no longer ACTIVE.
	ErrAlreadyReleased = errors.New("block already released or expired")

	// ErrInvalidTransition is returned when a requested booking
	// status change is not permitted by the lifecycle.
	ErrInvalidTransition = errors.New("invalid status transition")
)

// InsufficientInventoryError reports that a booking or block could not
// be satisfied, naming the first date on which the requested rooms
// exceeded the sellable count.
type InsufficientInventoryError struct {
	Date      time.Time
	Requested int
	Sellable  int
}

func (e *InsufficientInventoryError) Error() string {
	return fmt.Sprintf("insufficient inventory on %s: requested %d, sellable %d",
		e.Date.Format(dateLayout), e.Requested, e.Sellable)
}

// mapSQLError classifies driver errors that carry retry semantics.
// MySQL 1205 is a lock wait timeout, 1213 a deadlock victim; both mean
// the transaction was rolled back without effect and the caller may
// retry, so they surface as ErrBusy.  Everything else passes through.
func mapSQLError(err error) error {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		switch me.Number {
		case 1205, 1213:
			return fmt.Errorf("%w: %v", ErrBusy, err)
		}
	}
	return err
}

// isDuplicateRef reports whether err is a unique key violation, which
// on the bookings and room_blocks tables can only mean the reference
// was already used.
func isDuplicateRef(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}
