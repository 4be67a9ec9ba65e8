package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-reservation-engine/internal/engine"
)

// AnalyticsHandler exposes the reporting endpoints.
type AnalyticsHandler struct {
	Engine *engine.Engine
}

func NewAnalyticsHandler(e *engine.Engine) *AnalyticsHandler { return &AnalyticsHandler{Engine: e} }

func (h *AnalyticsHandler) rangeParams(c echo.Context) (start, end time.Time, err error) {
	start, err = engine.ParseDate(c.QueryParam("start_date"))
	if err != nil {
		return
	}
	end, err = engine.ParseDate(c.QueryParam("end_date"))
	return
}

// InventoryReport handles GET /v1/properties/:property_id/reports/inventory
// with ?start_date=...&end_date=... (inclusive).
func (h *AnalyticsHandler) InventoryReport(c echo.Context) error {
	start, end, err := h.rangeParams(c)
	if err != nil {
		return writeEngineError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	rows, err := h.Engine.InventoryReport(ctx, c.Param("property_id"), start, end)
	if err != nil {
		return writeEngineError(c, err)
	}
	type reportRow struct {
		RoomTypeID string  `json:"room_type_id"`
		RoomName   string  `json:"room_name"`
		Day        dayResp `json:"day"`
	}
	out := make([]reportRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, reportRow{
			RoomTypeID: r.RoomTypeID,
			RoomName:   r.RoomName,
			Day:        toDayResp(r.Day),
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"report": out})
}

// Occupancy handles GET /v1/properties/:property_id/reports/occupancy.
func (h *AnalyticsHandler) Occupancy(c echo.Context) error {
	start, end, err := h.rangeParams(c)
	if err != nil {
		return writeEngineError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	s, err := h.Engine.OccupancyRate(ctx, c.Param("property_id"), start, end)
	if err != nil {
		return writeEngineError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"property_id":     s.PropertyID,
		"start_date":      s.StartDate.Format("2006-01-02"),
		"end_date":        s.EndDate.Format("2006-01-02"),
		"occupied_nights": s.OccupiedNights,
		"capacity_nights": s.CapacityNights,
		"occupancy_rate":  s.Rate,
	})
}

// Performance handles GET /v1/properties/:property_id/reports/performance,
// revenue per room type sorted descending.
func (h *AnalyticsHandler) Performance(c echo.Context) error {
	start, end, err := h.rangeParams(c)
	if err != nil {
		return writeEngineError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	rows, err := h.Engine.RoomTypePerformance(ctx, c.Param("property_id"), start, end)
	if err != nil {
		return writeEngineError(c, err)
	}
	type perfRow struct {
		RoomTypeID   string `json:"room_type_id"`
		RoomName     string `json:"room_name"`
		Bookings     int    `json:"bookings"`
		RoomNights   int64  `json:"room_nights"`
		RevenueCents int64  `json:"revenue_cents"`
	}
	out := make([]perfRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, perfRow{
			RoomTypeID:   r.RoomTypeID,
			RoomName:     r.RoomName,
			Bookings:     r.Bookings,
			RoomNights:   r.RoomNights,
			RevenueCents: r.RevenueCents,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"performance": out})
}
