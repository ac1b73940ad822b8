// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingConfirmedEvent is published when a booking is successfully confirmed.
// It carries enough information for downstream consumers to log, notify, or
// trigger analytics without querying the primary database.
type BookingConfirmedEvent struct {
	BookingID       uint64 `json:"booking_id"`
	UserID          uint64 `json:"user_id"`
	ResourceKind    string `json:"resource_kind"`
	ResourceID      uint64 `json:"resource_id"`
	ResourceName    string `json:"resource_name"`
	StartDate       string `json:"start_date"`
	EndDate         string `json:"end_date"`
	PartySize       int    `json:"party_size"`
	TotalPriceCents int64  `json:"total_price_cents"`
	ConfirmedAt     string `json:"confirmed_at"`
}
