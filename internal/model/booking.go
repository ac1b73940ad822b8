package model

import "time"

// BookingStatus enumerates the lifecycle states of a booking.  A booking
// is created in PENDING_PAYMENT, moves to CONFIRMED when payment is
// acknowledged and ends in CANCELLED.  CANCELLED is terminal: no
// further transitions are permitted from it.
type BookingStatus string

const (
    StatusPendingPayment BookingStatus = "PENDING_PAYMENT" // created, awaiting payment
    StatusConfirmed      BookingStatus = "CONFIRMED"       // payment acknowledged
    StatusCancelled      BookingStatus = "CANCELLED"       // terminal
)

// Valid reports whether s is one of the known booking statuses.
func (s BookingStatus) Valid() bool {
    switch s {
    case StatusPendingPayment, StatusConfirmed, StatusCancelled:
        return true
    }
    return false
}

// CanTransitionTo reports whether the state machine permits moving from
// s to next.  Allowed edges:
//
//  PENDING_PAYMENT -> CONFIRMED
//  PENDING_PAYMENT -> CANCELLED
//  CONFIRMED       -> CANCELLED
//
// Everything else, including repeated cancellation, is rejected.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
    switch s {
    case StatusPendingPayment:
        return next == StatusConfirmed || next == StatusCancelled
    case StatusConfirmed:
        return next == StatusCancelled
    }
    return false
}

// Blocks reports whether a booking in this status still occupies its
// date range.  Cancelled bookings release the range; everything else
// counts toward the no-overlap invariant.
func (s BookingStatus) Blocks() bool {
    return s == StatusPendingPayment || s == StatusConfirmed
}

// Booking records a reservation of a single resource (hotel room, tour
// package or transport vehicle) for a half-open date range
// [StartDate, EndDate).  One row in the `bookings` table.  Bookings are
// never deleted; cancellation flips Status so history and audit trails
// survive and the freed range reopens without a deletion race.
//
// Fields:
//  ID              – primary key identifier, assigned by the DB.
//  UserID          – user who made the booking; immutable.
//  ResourceKind    – which catalog the resource lives in; immutable.
//  ResourceID      – the booked hotel/tour/transport; immutable.
//  StartDate       – first reserved day (inclusive), date-only, UTC.
//  EndDate         – day after the last reserved day (exclusive).
//  PartySize       – guests or passengers, >= 1.
//  TotalPriceCents – price computed once at creation; never recomputed.
//  Status          – lifecycle state, see BookingStatus.
//  CreatedAt       – creation timestamp.
//  UpdatedAt       – last update timestamp.
type Booking struct {
    ID              uint64        `json:"id"`                // bookings.id
    UserID          uint64        `json:"user_id"`           // bookings.user_id
    ResourceKind    ResourceKind  `json:"resource_kind"`     // bookings.resource_kind
    ResourceID      uint64        `json:"resource_id"`       // bookings.resource_id
    StartDate       time.Time     `json:"start_date"`        // bookings.start_date (DATE)
    EndDate         time.Time     `json:"end_date"`          // bookings.end_date (DATE)
    PartySize       int           `json:"party_size"`        // bookings.party_size
    TotalPriceCents int64         `json:"total_price_cents"` // bookings.total_price_cents
    Status          BookingStatus `json:"status"`            // bookings.status
    CreatedAt       time.Time     `json:"created_at"`        // bookings.created_at
    UpdatedAt       time.Time     `json:"updated_at"`        // bookings.updated_at
}
