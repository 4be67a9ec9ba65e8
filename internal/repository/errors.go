// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as the
// engine and handlers to distinguish between different failure
// scenarios without string matching. For example, ErrRoomTypeNotFound
// indicates that a referenced room type does not exist, while
// ErrConflict signals that an operation cannot proceed because of
// existing dependent records (e.g. deactivating a room type that still
// has confirmed bookings).
package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// ErrRoomTypeNotFound is returned when a room type lookup by
// (property, room type) finds no row.
var ErrRoomTypeNotFound = errors.New("room type not found")

// ErrBookingNotFound is returned when no booking exists for the
// requested reference.
var ErrBookingNotFound = errors.New("booking not found")

// ErrBlockNotFound is returned when no room block exists for the
// requested reference.
var ErrBlockNotFound = errors.New("block not found")

// ErrConflict is returned when an update cannot be performed because
// of conflicting state, such as deactivating a room type that still
// carries active bookings. Handlers should translate this into an
// HTTP 409 response.
var ErrConflict = errors.New("conflict")

// isDuplicateKey reports whether err is a MySQL duplicate key
// violation (error 1062), which the schema raises for duplicate
// references and duplicate (property, room_name) pairs.
func isDuplicateKey(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}
