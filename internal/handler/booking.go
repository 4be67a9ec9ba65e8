package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-reservation-engine/internal/engine"
	"github.com/iliyamo/hotel-reservation-engine/internal/model"
	q "github.com/iliyamo/hotel-reservation-engine/internal/queue"
	"github.com/iliyamo/hotel-reservation-engine/internal/repository"
	publisher "github.com/iliyamo/hotel-reservation-engine/internal/service"
)

// BookingHandler exposes the reservation endpoints.  Confirmation and
// cancellation publish events to the broker after commit; publishing
// is best-effort and never fails the request.
type BookingHandler struct {
	Engine *engine.Engine
}

func NewBookingHandler(e *engine.Engine) *BookingHandler { return &BookingHandler{Engine: e} }

type confirmBookingReq struct {
	Reference  string `json:"reference"` // optional idempotency key
	RoomTypeID string `json:"room_type_id"`
	GuestName  string `json:"guest_name"`
	GuestEmail string `json:"guest_email"`
	GuestPhone string `json:"guest_phone"`
	CheckIn    string `json:"check_in"`
	CheckOut   string `json:"check_out"` // exclusive
	Rooms      int    `json:"rooms"`
	Notes      string `json:"notes"`
}

type cancelBookingReq struct {
	Reason string `json:"reason"`
}

type updateStatusReq struct {
	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"` // optional
}

type bookingResp struct {
	Reference       string `json:"reference"`
	PropertyID      string `json:"property_id"`
	RoomTypeID      string `json:"room_type_id"`
	GuestName       string `json:"guest_name"`
	GuestEmail      string `json:"guest_email,omitempty"`
	GuestPhone      string `json:"guest_phone,omitempty"`
	CheckIn         string `json:"check_in"`
	CheckOut        string `json:"check_out"`
	Rooms           int    `json:"rooms"`
	TotalPriceCents int64  `json:"total_price_cents"`
	Status          string `json:"status"`
	PaymentStatus   string `json:"payment_status"`
	Notes           string `json:"notes,omitempty"`
	CreatedAt       string `json:"created_at"`
}

func toBookingResp(b model.Booking) bookingResp {
	return bookingResp{
		Reference:       b.Reference,
		PropertyID:      b.PropertyID,
		RoomTypeID:      b.RoomTypeID,
		GuestName:       b.GuestName,
		GuestEmail:      b.GuestEmail,
		GuestPhone:      b.GuestPhone,
		CheckIn:         b.CheckIn.Format("2006-01-02"),
		CheckOut:        b.CheckOut.Format("2006-01-02"),
		Rooms:           b.RoomsRequested,
		TotalPriceCents: b.TotalPriceCents,
		Status:          b.Status,
		PaymentStatus:   b.PaymentStatus,
		Notes:           b.Notes,
		CreatedAt:       b.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// Confirm handles POST /v1/properties/:property_id/bookings.
func (h *BookingHandler) Confirm(c echo.Context) error {
	var req confirmBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	checkIn, err := engine.ParseDate(req.CheckIn)
	if err != nil {
		return writeEngineError(c, err)
	}
	checkOut, err := engine.ParseDate(req.CheckOut)
	if err != nil {
		return writeEngineError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	b, err := h.Engine.ConfirmBooking(ctx, engine.BookingInput{
		Reference:  req.Reference,
		PropertyID: c.Param("property_id"),
		RoomTypeID: req.RoomTypeID,
		GuestName:  req.GuestName,
		GuestEmail: req.GuestEmail,
		GuestPhone: req.GuestPhone,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Rooms:      req.Rooms,
		Notes:      req.Notes,
	})
	if err != nil {
		return writeEngineError(c, err)
	}

	// Best-effort event after commit.  Ignore errors: the booking is
	// already durable.
	roomName := ""
	if rt, rerr := h.Engine.GetRoomType(ctx, b.PropertyID, b.RoomTypeID); rerr == nil {
		roomName = rt.RoomName
	}
	_ = publisher.PublishBookingConfirmed(ctx, q.BookingConfirmedEvent{
		BookingReference: b.Reference,
		PropertyID:       b.PropertyID,
		RoomTypeID:       b.RoomTypeID,
		RoomName:         roomName,
		GuestName:        b.GuestName,
		CheckIn:          b.CheckIn.Format("2006-01-02"),
		CheckOut:         b.CheckOut.Format("2006-01-02"),
		Rooms:            b.RoomsRequested,
		TotalPriceCents:  b.TotalPriceCents,
		ConfirmedAt:      time.Now().UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusCreated, toBookingResp(b))
}

// Get handles GET /v1/bookings/:reference.
func (h *BookingHandler) Get(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	b, err := h.Engine.GetBooking(ctx, c.Param("reference"))
	if err != nil {
		return writeEngineError(c, err)
	}
	return c.JSON(http.StatusOK, toBookingResp(b))
}

// List handles GET /v1/properties/:property_id/bookings with optional
// ?room_type_id=&status=&date_from=&date_to=&limit=&offset= filters.
func (h *BookingHandler) List(c echo.Context) error {
	f := repository.BookingFilter{
		PropertyID: c.Param("property_id"),
		RoomTypeID: c.QueryParam("room_type_id"),
		Status:     c.QueryParam("status"),
		Limit:      atoiDefault(c.QueryParam("limit"), 50),
		Offset:     atoiDefault(c.QueryParam("offset"), 0),
	}
	if from := c.QueryParam("date_from"); from != "" {
		d, err := engine.ParseDate(from)
		if err != nil {
			return writeEngineError(c, err)
		}
		f.DateFrom = d
	}
	if to := c.QueryParam("date_to"); to != "" {
		d, err := engine.ParseDate(to)
		if err != nil {
			return writeEngineError(c, err)
		}
		f.DateTo = d
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	bookings, err := h.Engine.ListBookings(ctx, f)
	if err != nil {
		return writeEngineError(c, err)
	}
	out := make([]bookingResp, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, toBookingResp(b))
	}
	return c.JSON(http.StatusOK, echo.Map{"bookings": out})
}

// Cancel handles POST /v1/bookings/:reference/cancel.
func (h *BookingHandler) Cancel(c echo.Context) error {
	var req cancelBookingReq
	_ = c.Bind(&req) // reason is optional

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	b, err := h.Engine.CancelBooking(ctx, c.Param("reference"), req.Reason)
	if err != nil {
		return writeEngineError(c, err)
	}

	refund := int64(0)
	if b.PaymentStatus == model.PaymentRefunded {
		refund = b.TotalPriceCents
	}
	_ = publisher.PublishBookingCancelled(ctx, q.BookingCancelledEvent{
		BookingReference: b.Reference,
		PropertyID:       b.PropertyID,
		RoomTypeID:       b.RoomTypeID,
		CheckIn:          b.CheckIn.Format("2006-01-02"),
		CheckOut:         b.CheckOut.Format("2006-01-02"),
		Rooms:            b.RoomsRequested,
		RefundCents:      refund,
		Reason:           req.Reason,
		CancelledAt:      time.Now().UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusOK, toBookingResp(b))
}

// UpdateStatus handles PUT /v1/bookings/:reference/status for check-in
// and completion transitions.
func (h *BookingHandler) UpdateStatus(c echo.Context) error {
	var req updateStatusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	b, err := h.Engine.UpdateBookingStatus(ctx, c.Param("reference"), req.Status, req.PaymentStatus)
	if err != nil {
		return writeEngineError(c, err)
	}
	return c.JSON(http.StatusOK, toBookingResp(b))
}
