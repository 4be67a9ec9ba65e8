package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-reservation-engine/internal/engine"
	"github.com/iliyamo/hotel-reservation-engine/internal/model"
	"github.com/iliyamo/hotel-reservation-engine/internal/repository"
)

// RoomTypeHandler exposes the catalog endpoints.  Creation, update and
// deactivation are MANAGER-only; listing and reads are open to any
// authenticated staff member (the router enforces this).
type RoomTypeHandler struct {
	Engine *engine.Engine
}

func NewRoomTypeHandler(e *engine.Engine) *RoomTypeHandler { return &RoomTypeHandler{Engine: e} }

type createRoomTypeReq struct {
	RoomName       string `json:"room_name"`
	BedType        string `json:"bed_type"`
	ViewType       string `json:"view_type"`
	MaxOccupancy   int    `json:"max_occupancy"`
	BasePriceCents int64  `json:"base_price_cents"`
	TotalRooms     int    `json:"total_rooms"`
}

type updateRoomTypeReq struct {
	RoomName       *string `json:"room_name"`
	BedType        *string `json:"bed_type"`
	ViewType       *string `json:"view_type"`
	MaxOccupancy   *int    `json:"max_occupancy"`
	BasePriceCents *int64  `json:"base_price_cents"`
	TotalRooms     *int    `json:"total_rooms"`
}

type roomTypeResp struct {
	RoomTypeID     string `json:"room_type_id"`
	PropertyID     string `json:"property_id"`
	RoomName       string `json:"room_name"`
	BedType        string `json:"bed_type,omitempty"`
	ViewType       string `json:"view_type,omitempty"`
	MaxOccupancy   int    `json:"max_occupancy"`
	BasePriceCents int64  `json:"base_price_cents"`
	TotalRooms     int    `json:"total_rooms"`
	IsActive       bool   `json:"is_active"`
}

func toRoomTypeResp(rt model.RoomType) roomTypeResp {
	return roomTypeResp{
		RoomTypeID:     rt.RoomTypeID,
		PropertyID:     rt.PropertyID,
		RoomName:       rt.RoomName,
		BedType:        rt.BedType,
		ViewType:       rt.ViewType,
		MaxOccupancy:   rt.MaxOccupancy,
		BasePriceCents: rt.BasePriceCents,
		TotalRooms:     rt.TotalRooms,
		IsActive:       rt.IsActive,
	}
}

// Create handles POST /v1/properties/:property_id/room-types.
func (h *RoomTypeHandler) Create(c echo.Context) error {
	var req createRoomTypeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rt, err := h.Engine.CreateRoomType(ctx, engine.RoomTypeInput{
		PropertyID:     c.Param("property_id"),
		RoomName:       req.RoomName,
		BedType:        req.BedType,
		ViewType:       req.ViewType,
		MaxOccupancy:   req.MaxOccupancy,
		BasePriceCents: req.BasePriceCents,
		TotalRooms:     req.TotalRooms,
	})
	if err != nil {
		return writeEngineError(c, err)
	}
	return c.JSON(http.StatusCreated, toRoomTypeResp(rt))
}

// List handles GET /v1/properties/:property_id/room-types.  Only
// active types are returned unless ?active=false asks for the full
// catalog (staff tooling showing deactivated types).
func (h *RoomTypeHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	activeOnly := c.QueryParam("active") != "false"
	types, err := h.Engine.ListRoomTypes(ctx, c.Param("property_id"), activeOnly)
	if err != nil {
		return writeEngineError(c, err)
	}
	out := make([]roomTypeResp, 0, len(types))
	for _, rt := range types {
		out = append(out, toRoomTypeResp(rt))
	}
	return c.JSON(http.StatusOK, echo.Map{"room_types": out})
}

// Get handles GET /v1/properties/:property_id/room-types/:room_type_id.
func (h *RoomTypeHandler) Get(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rt, err := h.Engine.GetRoomType(ctx, c.Param("property_id"), c.Param("room_type_id"))
	if err != nil {
		return writeEngineError(c, err)
	}
	return c.JSON(http.StatusOK, toRoomTypeResp(rt))
}

// Update handles PATCH /v1/properties/:property_id/room-types/:room_type_id.
func (h *RoomTypeHandler) Update(c echo.Context) error {
	var req updateRoomTypeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rt, err := h.Engine.UpdateRoomType(ctx, c.Param("property_id"), c.Param("room_type_id"),
		repository.RoomTypePatch{
			RoomName:       req.RoomName,
			BedType:        req.BedType,
			ViewType:       req.ViewType,
			MaxOccupancy:   req.MaxOccupancy,
			BasePriceCents: req.BasePriceCents,
			TotalRooms:     req.TotalRooms,
		})
	if err != nil {
		return writeEngineError(c, err)
	}
	return c.JSON(http.StatusOK, toRoomTypeResp(rt))
}

// Deactivate handles DELETE /v1/properties/:property_id/room-types/:room_type_id.
// Soft delete only; the row survives for historical bookings.
func (h *RoomTypeHandler) Deactivate(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Engine.DeactivateRoomType(ctx, c.Param("property_id"), c.Param("room_type_id")); err != nil {
		return writeEngineError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
