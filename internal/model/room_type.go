package model

import "time"

// RoomType describes a sellable category of rooms within a hotel
// property.  Capacity (TotalRooms) is the configured number of
// physical rooms of this type; per-date capacity corrections live in
// room_inventory and never mutate this record.
//
// Fields:
//  RoomTypeID      – primary key, unique across all properties.
//  PropertyID      – hotel property that owns this room type.
//  RoomName        – display name, unique within the property.
//  BedType         – bed configuration (King, Queen, Twin, ...).
//  ViewType        – view from the room (Sea, Pool, City, ...).
//  MaxOccupancy    – maximum number of guests per room.
//  BasePriceCents  – default nightly rate in cents.
//  TotalRooms      – configured capacity for this type.
//  IsActive        – soft-delete flag; inactive types are not bookable.
//  CreatedAt       – timestamp of creation.
//  UpdatedAt       – timestamp of last update.
type RoomType struct {
	RoomTypeID     string    // room_types.room_type_id
	PropertyID     string    // room_types.property_id
	RoomName       string    // room_types.room_name
	BedType        string    // room_types.bed_type
	ViewType       string    // room_types.view_type
	MaxOccupancy   int       // room_types.max_occupancy
	BasePriceCents int64     // room_types.base_price_cents
	TotalRooms     int       // room_types.total_rooms
	IsActive       bool      // room_types.is_active
	CreatedAt      time.Time // room_types.created_at
	UpdatedAt      time.Time // room_types.updated_at
}
