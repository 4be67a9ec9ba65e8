package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-reservation-engine/internal/engine"
)

// InventoryHandler exposes the per-date ledger endpoints: seeding,
// pricing and capacity adjustments.  All of them are MANAGER-only.
type InventoryHandler struct {
	Engine *engine.Engine
}

func NewInventoryHandler(e *engine.Engine) *InventoryHandler { return &InventoryHandler{Engine: e} }

type seedInventoryReq struct {
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"` // inclusive
	Capacity   *int   `json:"capacity"`
	PriceCents *int64 `json:"price_cents"`
}

type updatePricingReq struct {
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"` // inclusive
	PriceCents int64  `json:"price_cents"`
}

type adjustCapacityReq struct {
	Date string `json:"date"`
	// Delta is signed: +2 adds two rooms to the date, -1 takes one
	// out of service.
	Delta int `json:"delta"`
}

// Seed handles POST /v1/properties/:property_id/room-types/:room_type_id/inventory.
func (h *InventoryHandler) Seed(c echo.Context) error {
	var req seedInventoryReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	start, err := engine.ParseDate(req.StartDate)
	if err != nil {
		return writeEngineError(c, err)
	}
	end, err := engine.ParseDate(req.EndDate)
	if err != nil {
		return writeEngineError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	n, err := h.Engine.SeedInventory(ctx, engine.SeedInput{
		PropertyID: c.Param("property_id"),
		RoomTypeID: c.Param("room_type_id"),
		StartDate:  start,
		EndDate:    end,
		Capacity:   req.Capacity,
		PriceCents: req.PriceCents,
	})
	if err != nil {
		return writeEngineError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"dates_seeded": n})
}

// UpdatePricing handles PUT /v1/properties/:property_id/room-types/:room_type_id/pricing.
func (h *InventoryHandler) UpdatePricing(c echo.Context) error {
	var req updatePricingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	start, err := engine.ParseDate(req.StartDate)
	if err != nil {
		return writeEngineError(c, err)
	}
	end, err := engine.ParseDate(req.EndDate)
	if err != nil {
		return writeEngineError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	n, err := h.Engine.UpdatePricing(ctx, c.Param("property_id"), c.Param("room_type_id"),
		start, end, req.PriceCents)
	if err != nil {
		return writeEngineError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"dates_updated": n})
}

// AdjustCapacity handles PUT /v1/properties/:property_id/room-types/:room_type_id/capacity.
func (h *InventoryHandler) AdjustCapacity(c echo.Context) error {
	var req adjustCapacityReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	date, err := engine.ParseDate(req.Date)
	if err != nil {
		return writeEngineError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rec, err := h.Engine.AdjustCapacity(ctx, c.Param("property_id"), c.Param("room_type_id"),
		date, req.Delta)
	if err != nil {
		return writeEngineError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"stay_date":           rec.StayDate.Format("2006-01-02"),
		"capacity":            rec.Capacity,
		"current_price_cents": rec.CurrentPriceCents,
	})
}

// List handles GET /v1/properties/:property_id/room-types/:room_type_id/inventory
// with ?start_date=...&end_date=... (inclusive).
func (h *InventoryHandler) List(c echo.Context) error {
	start, err := engine.ParseDate(c.QueryParam("start_date"))
	if err != nil {
		return writeEngineError(c, err)
	}
	end, err := engine.ParseDate(c.QueryParam("end_date"))
	if err != nil {
		return writeEngineError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	recs, err := h.Engine.InventoryRange(ctx, c.Param("property_id"), c.Param("room_type_id"), start, end)
	if err != nil {
		return writeEngineError(c, err)
	}
	type row struct {
		StayDate   string `json:"stay_date"`
		Capacity   int    `json:"capacity"`
		PriceCents int64  `json:"price_cents"`
	}
	out := make([]row, 0, len(recs))
	for _, r := range recs {
		out = append(out, row{
			StayDate:   r.StayDate.Format("2006-01-02"),
			Capacity:   r.Capacity,
			PriceCents: r.CurrentPriceCents,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"inventory": out})
}
