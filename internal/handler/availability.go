package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-reservation-engine/internal/engine"
)

// AvailabilityHandler exposes the derived availability endpoints.
// These are the public, unauthenticated surface of the engine: booking
// sites poll them heavily, which is why the router puts them behind
// the response cache and the rate limiter.
type AvailabilityHandler struct {
	Engine *engine.Engine
}

func NewAvailabilityHandler(e *engine.Engine) *AvailabilityHandler {
	return &AvailabilityHandler{Engine: e}
}

type dayResp struct {
	Date       string `json:"date"`
	Capacity   int    `json:"capacity"`
	Booked     int    `json:"booked"`
	Blocked    int    `json:"blocked"`
	Sellable   int    `json:"sellable"`
	PriceCents int64  `json:"price_cents"`
}

func toDayResp(d engine.DayAvailability) dayResp {
	return dayResp{
		Date:       d.Date.Format("2006-01-02"),
		Capacity:   d.Capacity,
		Booked:     d.Booked,
		Blocked:    d.Blocked,
		Sellable:   d.Sellable,
		PriceCents: d.PriceCents,
	}
}

// Range handles GET /v1/properties/:property_id/room-types/:room_type_id/availability
// with ?start_date=...&end_date=... (inclusive).
func (h *AvailabilityHandler) Range(c echo.Context) error {
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

	days, err := h.Engine.Sellable(ctx, c.Param("property_id"), c.Param("room_type_id"), start, end)
	if err != nil {
		return writeEngineError(c, err)
	}
	out := make([]dayResp, 0, len(days))
	for _, d := range days {
		out = append(out, toDayResp(d))
	}
	return c.JSON(http.StatusOK, echo.Map{"availability": out})
}

// CheckStay handles GET /v1/properties/:property_id/room-types/:room_type_id/availability/check
// with ?check_in=...&check_out=...&rooms=N.  The answer is advisory:
// only ConfirmBooking decides under lock.
func (h *AvailabilityHandler) CheckStay(c echo.Context) error {
	checkIn, err := engine.ParseDate(c.QueryParam("check_in"))
	if err != nil {
		return writeEngineError(c, err)
	}
	checkOut, err := engine.ParseDate(c.QueryParam("check_out"))
	if err != nil {
		return writeEngineError(c, err)
	}
	rooms := atoiDefault(c.QueryParam("rooms"), 1)
	if rooms <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "rooms must be positive"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	ok, days, err := h.Engine.CheckStay(ctx, c.Param("property_id"), c.Param("room_type_id"),
		checkIn, checkOut, rooms)
	if err != nil {
		return writeEngineError(c, err)
	}
	out := make([]dayResp, 0, len(days))
	for _, d := range days {
		out = append(out, toDayResp(d))
	}
	return c.JSON(http.StatusOK, echo.Map{
		"available": ok,
		"rooms":     rooms,
		"nights":    out,
	})
}

// RealTime handles GET /v1/properties/:property_id/room-types/:room_type_id/availability/today
// with ?date=... (defaults to today UTC).  Front-desk single-date lookup.
func (h *AvailabilityHandler) RealTime(c echo.Context) error {
	var date time.Time
	if v := c.QueryParam("date"); v != "" {
		d, err := engine.ParseDate(v)
		if err != nil {
			return writeEngineError(c, err)
		}
		date = d
	} else {
		now := time.Now().UTC()
		date = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rt, day, err := h.Engine.RealTimeAvailability(ctx, c.Param("property_id"), c.Param("room_type_id"), date)
	if err != nil {
		return writeEngineError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"room_type_id": rt.RoomTypeID,
		"room_name":    rt.RoomName,
		"availability": toDayResp(day),
	})
}
