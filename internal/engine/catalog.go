package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/iliyamo/hotel-reservation-engine/internal/model"
	"github.com/iliyamo/hotel-reservation-engine/internal/repository"
)

// RoomTypeInput carries the fields required to register a room type.
type RoomTypeInput struct {
	PropertyID     string
	RoomName       string
	BedType        string
	ViewType       string
	MaxOccupancy   int
	BasePriceCents int64
	TotalRooms     int
}

// CreateRoomType registers a new room type under a property.  The
// room type id is a readable slug of the property id and room name,
// e.g. "grand-plaza_deluxe-king".  A duplicate name within a property
// is a validation failure: the caller picked a name already in use.
func (e *Engine) CreateRoomType(ctx context.Context, in RoomTypeInput) (model.RoomType, error) {
	if strings.TrimSpace(in.PropertyID) == "" || strings.TrimSpace(in.RoomName) == "" {
		return model.RoomType{}, fmt.Errorf("%w: property_id and room_name are required", ErrInvalidInput)
	}
	if in.MaxOccupancy <= 0 {
		return model.RoomType{}, fmt.Errorf("%w: max_occupancy must be positive", ErrInvalidInput)
	}
	if in.BasePriceCents < 0 {
		return model.RoomType{}, fmt.Errorf("%w: base_price_cents cannot be negative", ErrInvalidInput)
	}
	if in.TotalRooms <= 0 {
		return model.RoomType{}, fmt.Errorf("%w: total_rooms must be positive", ErrInvalidInput)
	}
	rt := model.RoomType{
		RoomTypeID:     roomTypeID(in.PropertyID, in.RoomName),
		PropertyID:     strings.TrimSpace(in.PropertyID),
		RoomName:       strings.TrimSpace(in.RoomName),
		BedType:        strings.TrimSpace(in.BedType),
		ViewType:       strings.TrimSpace(in.ViewType),
		MaxOccupancy:   in.MaxOccupancy,
		BasePriceCents: in.BasePriceCents,
		TotalRooms:     in.TotalRooms,
		IsActive:       true,
	}
	if err := e.RoomTypes.Create(ctx, &rt); err != nil {
		return model.RoomType{}, mapCatalogCreateErr(err, rt.RoomName)
	}
	return e.RoomTypes.Get(ctx, rt.PropertyID, rt.RoomTypeID)
}

// mapCatalogCreateErr turns the duplicate-name key violation into
// ErrInvalidInput; everything else follows the usual repo mapping.
func mapCatalogCreateErr(err error, roomName string) error {
	if errors.Is(err, repository.ErrConflict) {
		return fmt.Errorf("%w: room name %q already registered for this property", ErrInvalidInput, roomName)
	}
	return wrapRepoErr(err)
}

// ensureSellableRoomType rejects demand writes (bookings, blocks)
// against a deactivated room type.  Reads and historical lookups still
// resolve inactive types; only new demand is refused.
func ensureSellableRoomType(rt model.RoomType) error {
	if !rt.IsActive {
		return fmt.Errorf("%w: room type %s is inactive", ErrConflict, rt.RoomTypeID)
	}
	return nil
}

// GetRoomType returns one room type, active or not.
func (e *Engine) GetRoomType(ctx context.Context, propertyID, roomTypeID string) (model.RoomType, error) {
	rt, err := e.RoomTypes.Get(ctx, propertyID, roomTypeID)
	return rt, wrapRepoErr(err)
}

// ListRoomTypes returns a property's room types, optionally restricted
// to active ones.
func (e *Engine) ListRoomTypes(ctx context.Context, propertyID string, activeOnly bool) ([]model.RoomType, error) {
	out, err := e.RoomTypes.ListByProperty(ctx, propertyID, activeOnly)
	return out, wrapRepoErr(err)
}

// UpdateRoomType patches mutable attributes of a room type.  The id
// never changes, even when the name does.
func (e *Engine) UpdateRoomType(ctx context.Context, propertyID, roomTypeID string, patch repository.RoomTypePatch) (model.RoomType, error) {
	if patch.MaxOccupancy != nil && *patch.MaxOccupancy <= 0 {
		return model.RoomType{}, fmt.Errorf("%w: max_occupancy must be positive", ErrInvalidInput)
	}
	if patch.BasePriceCents != nil && *patch.BasePriceCents < 0 {
		return model.RoomType{}, fmt.Errorf("%w: base_price_cents cannot be negative", ErrInvalidInput)
	}
	if patch.TotalRooms != nil && *patch.TotalRooms <= 0 {
		return model.RoomType{}, fmt.Errorf("%w: total_rooms must be positive", ErrInvalidInput)
	}
	if err := e.RoomTypes.Update(ctx, propertyID, roomTypeID, patch); err != nil {
		return model.RoomType{}, wrapRepoErr(err)
	}
	rt, err := e.RoomTypes.Get(ctx, propertyID, roomTypeID)
	return rt, wrapRepoErr(err)
}

// DeactivateRoomType soft-deletes a room type.  The type must carry no
// CONFIRMED or CHECKED_IN bookings; historical bookings keep their
// reference to the inactive type.
func (e *Engine) DeactivateRoomType(ctx context.Context, propertyID, roomTypeID string) error {
	if _, err := e.RoomTypes.Get(ctx, propertyID, roomTypeID); err != nil {
		return wrapRepoErr(err)
	}
	n, err := e.Bookings.CountActiveForRoomType(ctx, roomTypeID)
	if err != nil {
		return mapSQLError(err)
	}
	if n > 0 {
		return fmt.Errorf("%w: room type has %d active bookings", ErrConflict, n)
	}
	return wrapRepoErr(e.RoomTypes.Deactivate(ctx, propertyID, roomTypeID))
}

// roomTypeID builds the readable identifier property_room-slug.  Noise
// words that add no meaning ("room", "suite", "the", ...) are dropped
// from the slug.
func roomTypeID(propertyID, roomName string) string {
	return strings.TrimSpace(propertyID) + "_" + slugify(roomName)
}

var slugNoise = map[string]bool{
	"room": true, "suite": true, "view": true,
	"the": true, "a": true, "an": true, "with": true,
}

func slugify(s string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			sb.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			sb.WriteByte('-')
		case r == '&':
			sb.WriteString("and")
		}
	}
	parts := make([]string, 0, 4)
	for _, p := range strings.Split(sb.String(), "-") {
		if p != "" && !slugNoise[p] {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return strings.Trim(sb.String(), "-")
	}
	return strings.Join(parts, "-")
}
