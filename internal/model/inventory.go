package model

import "time"

// InventoryRecord stores capacity and pricing for one room type on one
// calendar date.  There is exactly one record per (property, room type,
// date).  Capacity normally mirrors RoomType.TotalRooms but can be
// adjusted independently (a wing closed for renovation, extra rooms
// opened for a peak weekend).  Booking and block operations never write
// this table; sellable counts are derived at read time.
//
// Fields:
//  InventoryID       – primary key identifier.
//  PropertyID        – hotel property.
//  RoomTypeID        – room type this record prices.
//  StayDate          – the calendar date (UTC, midnight).
//  Capacity          – rooms available for sale on this date before
//                      subtracting bookings and blocks.
//  CurrentPriceCents – nightly rate in cents for this date.
//  CreatedAt         – timestamp of creation.
//  UpdatedAt         – timestamp of last update.
type InventoryRecord struct {
	InventoryID       uint64    // room_inventory.inventory_id
	PropertyID        string    // room_inventory.property_id
	RoomTypeID        string    // room_inventory.room_type_id
	StayDate          time.Time // room_inventory.stay_date
	Capacity          int       // room_inventory.capacity
	CurrentPriceCents int64     // room_inventory.current_price_cents
	CreatedAt         time.Time // room_inventory.created_at
	UpdatedAt         time.Time // room_inventory.updated_at
}
