package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-reservation-engine/internal/engine"
)

// writeEngineError translates an engine error into a JSON response.
// The mapping is the one vocabulary every handler in this package
// shares:
//
//	ErrInvalidInput        -> 400
//	ErrNotFound            -> 404
//	InsufficientInventory  -> 409 (with the failing date)
//	ErrConflict            -> 409
//	ErrAlreadyCancelled    -> 409
//	ErrAlreadyReleased     -> 409
//	ErrInvalidTransition   -> 422
//	ErrBusy                -> 503 (safe to retry)
//	anything else          -> 500
func writeEngineError(c echo.Context, err error) error {
	var insufficient *engine.InsufficientInventoryError
	switch {
	case errors.Is(err, engine.ErrInvalidInput):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, engine.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.As(err, &insufficient):
		return c.JSON(http.StatusConflict, echo.Map{
			"error":     "insufficient inventory",
			"date":      insufficient.Date.Format("2006-01-02"),
			"requested": insufficient.Requested,
			"sellable":  insufficient.Sellable,
		})
	case errors.Is(err, engine.ErrAlreadyCancelled),
		errors.Is(err, engine.ErrAlreadyReleased),
		errors.Is(err, engine.ErrConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	case errors.Is(err, engine.ErrInvalidTransition):
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
	case errors.Is(err, engine.ErrBusy):
		c.Response().Header().Set("Retry-After", "1")
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "busy, retry"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
}

// atoiDefault parses an optional numeric query parameter.
func atoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
