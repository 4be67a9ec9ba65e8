package model

import "time"

// RoomBlock status values.  ACTIVE blocks reduce sellable counts;
// RELEASED and EXPIRED blocks do not.  A block past its ExpiresAt is
// ignored by availability even while its stored status is still
// ACTIVE, so correctness never depends on the expiry sweep having run.
const (
	BlockActive   = "ACTIVE"
	BlockReleased = "RELEASED"
	BlockExpired  = "EXPIRED"
)

// Block type values describing why rooms were withheld from sale.
const (
	BlockMaintenance = "MAINTENANCE"
	BlockAllotment   = "ALLOTMENT"
	BlockEvent       = "EVENT"
	BlockOther       = "OTHER"
)

// RoomBlock withholds rooms from sale for a single date without a
// guest attached (maintenance, tour-operator allotments, events).
// Blocks are single-date by design: a multi-day closure is a series
// of blocks, each independently releasable.
//
// Fields:
//  BlockID      – primary key identifier.
//  Reference    – unique block reference (BLK...).
//  PropertyID   – hotel property.
//  RoomTypeID   – room type being withheld.
//  BlockDate    – the calendar date the block applies to.
//  RoomsBlocked – number of rooms withheld.
//  BlockType    – category of block (MAINTENANCE, ALLOTMENT, ...).
//  BlockReason  – human-readable justification.
//  BlockedBy    – who created the block.
//  Status       – ACTIVE, RELEASED or EXPIRED.
//  ExpiresAt    – optional automatic expiry; nil means no expiry.
//  Notes        – free-form audit trail.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type RoomBlock struct {
	BlockID      uint64     // room_blocks.block_id
	Reference    string     // room_blocks.block_reference
	PropertyID   string     // room_blocks.property_id
	RoomTypeID   string     // room_blocks.room_type_id
	BlockDate    time.Time  // room_blocks.block_date
	RoomsBlocked int        // room_blocks.rooms_blocked
	BlockType    string     // room_blocks.block_type
	BlockReason  string     // room_blocks.block_reason
	BlockedBy    string     // room_blocks.blocked_by
	Status       string     // room_blocks.status
	ExpiresAt    *time.Time // room_blocks.expires_at (nullable)
	Notes        string     // room_blocks.notes
	CreatedAt    time.Time  // room_blocks.created_at
	UpdatedAt    time.Time  // room_blocks.updated_at
}

// ActiveAt reports whether the block withholds rooms at instant now:
// status must be ACTIVE and any expiry must lie in the future.
func (b *RoomBlock) ActiveAt(now time.Time) bool {
	if b.Status != BlockActive {
		return false
	}
	if b.ExpiresAt != nil && !b.ExpiresAt.After(now) {
		return false
	}
	return true
}
