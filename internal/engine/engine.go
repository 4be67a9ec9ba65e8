package engine

import (
	"database/sql"
	"errors"

	"github.com/iliyamo/hotel-reservation-engine/internal/repository"
)

// Engine ties the repositories together and owns every multi-statement
// transaction.  Repositories never begin transactions themselves;
// methods suffixed Tx expect the Engine to pass one in.
type Engine struct {
	db        *sql.DB
	RoomTypes *repository.RoomTypeRepo
	Inventory *repository.InventoryRepo
	Bookings  *repository.BookingRepo
	Blocks    *repository.BlockRepo
}

// New wires an Engine over the shared database handle.
func New(db *sql.DB) *Engine {
	return &Engine{
		db:        db,
		RoomTypes: repository.NewRoomTypeRepo(db),
		Inventory: repository.NewInventoryRepo(db),
		Bookings:  repository.NewBookingRepo(db),
		Blocks:    repository.NewBlockRepo(db),
	}
}

// wrapRepoErr lifts repository sentinels into the engine error
// taxonomy so handlers only deal with one vocabulary.
func wrapRepoErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrRoomTypeNotFound),
		errors.Is(err, repository.ErrBookingNotFound),
		errors.Is(err, repository.ErrBlockNotFound):
		return errors.Join(ErrNotFound, err)
	case errors.Is(err, repository.ErrConflict):
		return errors.Join(ErrConflict, err)
	default:
		return mapSQLError(err)
	}
}
