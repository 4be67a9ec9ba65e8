// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingConfirmedEvent is published when a booking is successfully
// confirmed.  It carries enough information for downstream consumers
// to log, notify or feed analytics without querying the primary
// database.
type BookingConfirmedEvent struct {
	BookingReference string `json:"booking_reference"`
	PropertyID       string `json:"property_id"`
	RoomTypeID       string `json:"room_type_id"`
	RoomName         string `json:"room_name"`
	GuestName        string `json:"guest_name"`
	CheckIn          string `json:"check_in"`
	CheckOut         string `json:"check_out"`
	Rooms            int    `json:"rooms"`
	TotalPriceCents  int64  `json:"total_price_cents"`
	ConfirmedAt      string `json:"confirmed_at"`
}

// BookingCancelledEvent is published when a booking is cancelled and
// its rooms return to the sellable pool.
type BookingCancelledEvent struct {
	BookingReference string `json:"booking_reference"`
	PropertyID       string `json:"property_id"`
	RoomTypeID       string `json:"room_type_id"`
	CheckIn          string `json:"check_in"`
	CheckOut         string `json:"check_out"`
	Rooms            int    `json:"rooms"`
	RefundCents      int64  `json:"refund_cents"`
	Reason           string `json:"reason"`
	CancelledAt      string `json:"cancelled_at"`
}
