package engine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/iliyamo/hotel-reservation-engine/internal/model"
	"github.com/iliyamo/hotel-reservation-engine/internal/repository"
)

// BlockInput carries the fields required to withhold rooms from sale
// on a single date.  Reference is optional and acts as an idempotency
// key when supplied.  ExpiresAt, when set, makes the block lapse
// automatically at that instant.
type BlockInput struct {
	Reference  string
	PropertyID string
	RoomTypeID string
	Date       time.Time
	Rooms      int
	BlockType  string
	Reason     string
	BlockedBy  string
	ExpiresAt  *time.Time
	Notes      string
}

// CreateBlock withholds rooms on one date.  It follows the same
// transactional discipline as ConfirmBooking: lock the ledger row,
// recount demand including other active blocks, verify the withheld
// rooms still fit, insert.  A block cannot push sellable below zero.
func (e *Engine) CreateBlock(ctx context.Context, in BlockInput) (model.RoomBlock, error) {
	if in.Rooms <= 0 {
		return model.RoomBlock{}, fmt.Errorf("%w: rooms must be positive", ErrInvalidInput)
	}
	if !validBlockType(in.BlockType) {
		return model.RoomBlock{}, fmt.Errorf("%w: unknown block type %q", ErrInvalidInput, in.BlockType)
	}
	now := time.Now().UTC()
	if in.ExpiresAt != nil && !in.ExpiresAt.After(now) {
		return model.RoomBlock{}, fmt.Errorf("%w: expires_at must be in the future", ErrInvalidInput)
	}
	rt, err := e.RoomTypes.Get(ctx, in.PropertyID, in.RoomTypeID)
	if err != nil {
		return model.RoomBlock{}, wrapRepoErr(err)
	}
	if err := ensureSellableRoomType(rt); err != nil {
		return model.RoomBlock{}, err
	}

	ref := strings.TrimSpace(in.Reference)
	if ref == "" {
		var err error
		if ref, err = NewBlockReference(now); err != nil {
			return model.RoomBlock{}, err
		}
	}

	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		return model.RoomBlock{}, mapSQLError(err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	recs, err := e.Inventory.LockRangeTx(ctx, tx, in.PropertyID, in.RoomTypeID, in.Date, in.Date)
	if err != nil {
		return model.RoomBlock{}, mapSQLError(err)
	}
	if len(recs) == 0 {
		return model.RoomBlock{}, fmt.Errorf("%w: no inventory on %s",
			ErrNotFound, in.Date.Format(dateLayout))
	}
	rec := recs[0]

	bookings, err := e.Bookings.OverlappingTx(ctx, tx, in.PropertyID, in.RoomTypeID, in.Date, in.Date)
	if err != nil {
		return model.RoomBlock{}, mapSQLError(err)
	}
	blocks, err := e.Blocks.ActiveOnDatesTx(ctx, tx, in.PropertyID, in.RoomTypeID, in.Date, in.Date)
	if err != nil {
		return model.RoomBlock{}, mapSQLError(err)
	}
	sellable := sellableOn(in.Date, rec.Capacity, bookings, blocks, now)
	if sellable < in.Rooms {
		return model.RoomBlock{}, &InsufficientInventoryError{
			Date:      in.Date,
			Requested: in.Rooms,
			Sellable:  sellable,
		}
	}

	b := model.RoomBlock{
		Reference:    ref,
		PropertyID:   in.PropertyID,
		RoomTypeID:   in.RoomTypeID,
		BlockDate:    in.Date,
		RoomsBlocked: in.Rooms,
		BlockType:    in.BlockType,
		BlockReason:  strings.TrimSpace(in.Reason),
		BlockedBy:    strings.TrimSpace(in.BlockedBy),
		Status:       model.BlockActive,
		ExpiresAt:    in.ExpiresAt,
		Notes:        in.Notes,
	}
	if err := e.Blocks.CreateTx(ctx, tx, &b); err != nil {
		if isDuplicateRef(err) {
			_ = tx.Rollback()
			existing, gerr := e.Blocks.GetByReference(ctx, ref)
			if gerr != nil {
				return model.RoomBlock{}, wrapRepoErr(gerr)
			}
			return existing, nil
		}
		return model.RoomBlock{}, mapSQLError(err)
	}
	if err := tx.Commit(); err != nil {
		return model.RoomBlock{}, mapSQLError(err)
	}
	committed = true
	return e.Blocks.GetByReference(ctx, ref)
}

// GetBlock returns the block with the given reference.
func (e *Engine) GetBlock(ctx context.Context, reference string) (model.RoomBlock, error) {
	b, err := e.Blocks.GetByReference(ctx, reference)
	return b, wrapRepoErr(err)
}

// ListBlocks returns blocks matching the filter.
func (e *Engine) ListBlocks(ctx context.Context, f repository.BlockFilter) ([]model.RoomBlock, error) {
	out, err := e.Blocks.List(ctx, f)
	return out, mapSQLError(err)
}

// ReleaseBlock returns an ACTIVE block's rooms to the sellable pool.
// Releasing a block that is already RELEASED or EXPIRED fails with
// ErrAlreadyReleased; release is not idempotent because a repeated
// release usually means two operators raced on the same block.
func (e *Engine) ReleaseBlock(ctx context.Context, reference string) (model.RoomBlock, error) {
	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		return model.RoomBlock{}, mapSQLError(err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	b, err := e.Blocks.GetByReferenceTx(ctx, tx, reference)
	if err != nil {
		return model.RoomBlock{}, wrapRepoErr(err)
	}
	if !b.ActiveAt(time.Now().UTC()) {
		state := b.Status
		if state == model.BlockActive {
			// Status not yet swept but the expiry has passed.
			state = model.BlockExpired
		}
		return model.RoomBlock{}, fmt.Errorf("%w: %s is %s", ErrAlreadyReleased, reference, state)
	}
	if err := e.Blocks.UpdateStatusTx(ctx, tx, b.BlockID, model.BlockReleased); err != nil {
		return model.RoomBlock{}, mapSQLError(err)
	}
	if err := tx.Commit(); err != nil {
		return model.RoomBlock{}, mapSQLError(err)
	}
	committed = true
	return e.Blocks.GetByReference(ctx, reference)
}

// SweepExpiredBlocks flips lapsed ACTIVE blocks to EXPIRED and returns
// how many were swept.  The sweep is pure housekeeping for reporting
// queries; availability ignores lapsed blocks whether or not the sweep
// has run.
func (e *Engine) SweepExpiredBlocks(ctx context.Context) (int64, error) {
	n, err := e.Blocks.SweepExpired(ctx, time.Now().UTC())
	if err != nil {
		return 0, mapSQLError(err)
	}
	return n, nil
}

func validBlockType(t string) bool {
	switch t {
	case model.BlockMaintenance, model.BlockAllotment, model.BlockEvent, model.BlockOther:
		return true
	}
	return false
}
