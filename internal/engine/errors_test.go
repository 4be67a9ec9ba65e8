package engine

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/go-sql-driver/mysql"
)

func TestMapSQLError(t *testing.T) {
	lockWait := &mysql.MySQLError{Number: 1205, Message: "Lock wait timeout exceeded"}
	if !errors.Is(mapSQLError(lockWait), ErrBusy) {
		t.Errorf("1205 should map to ErrBusy")
	}
	deadlock := &mysql.MySQLError{Number: 1213, Message: "Deadlock found"}
	if !errors.Is(mapSQLError(deadlock), ErrBusy) {
		t.Errorf("1213 should map to ErrBusy")
	}

	// Wrapped driver errors must still be classified.
	wrapped := fmt.Errorf("confirm booking: %w", deadlock)
	if !errors.Is(mapSQLError(wrapped), ErrBusy) {
		t.Errorf("wrapped 1213 should map to ErrBusy")
	}

	dup := &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}
	if errors.Is(mapSQLError(dup), ErrBusy) {
		t.Errorf("1062 must not map to ErrBusy")
	}
	if !isDuplicateRef(dup) {
		t.Errorf("isDuplicateRef(1062) = false")
	}
	if isDuplicateRef(lockWait) {
		t.Errorf("isDuplicateRef(1205) = true")
	}

	plain := errors.New("boom")
	if mapSQLError(plain) != plain {
		t.Errorf("unrelated errors must pass through unchanged")
	}
}

func TestInsufficientInventoryError(t *testing.T) {
	err := &InsufficientInventoryError{
		Date:      time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		Requested: 3,
		Sellable:  2,
	}
	msg := err.Error()
	if !strings.Contains(msg, "2026-06-01") {
		t.Errorf("error message %q must name the failing date", msg)
	}
	if !strings.Contains(msg, "requested 3") || !strings.Contains(msg, "sellable 2") {
		t.Errorf("error message %q must carry the counts", msg)
	}

	// errors.As must find the typed error through wrapping.
	wrapped := fmt.Errorf("confirm: %w", err)
	var target *InsufficientInventoryError
	if !errors.As(wrapped, &target) {
		t.Errorf("errors.As failed on wrapped InsufficientInventoryError")
	}
}
