// Package booking implements the reservation core: date-range arithmetic,
// price calculation and the booking lifecycle engine.  It owns the one
// invariant the whole service exists to protect: for a given resource, no
// two bookings that still block their range (PENDING_PAYMENT or
// CONFIRMED) may overlap under the half-open interval test.  This file
// defines the sentinel errors the engine reports; handlers translate
// them into HTTP status codes with errors.Is.
package booking

import (
    "errors"
    "fmt"
)

// ErrInvalidInput is returned when a request fails validation before any
// storage is touched: malformed or inverted dates, a start date in the
// past, a non-positive party size, or a party larger than the resource's
// capacity.  Handlers should translate this into an HTTP 400 response.
var ErrInvalidInput = errors.New("invalid input")

// ErrUnavailable is returned when the availability check finds a
// blocking booking whose date range intersects the requested one.
// Handlers should translate this into an HTTP 409 response.
var ErrUnavailable = errors.New("resource unavailable")

// ErrInvalidTransition is returned when a status change is requested
// from a state that does not permit it, e.g. confirming a cancelled
// booking or cancelling twice.  Handlers should translate this into an
// HTTP 409 response.
var ErrInvalidTransition = errors.New("invalid status transition")

// ErrResourceNotFound is returned when the referenced hotel, tour or
// transport does not exist in its catalog (or is inactive).  Maps to 404.
var ErrResourceNotFound = errors.New("resource not found")

// ErrBookingNotFound is returned when a booking lookup by ID finds no
// row.  Maps to 404.
var ErrBookingNotFound = errors.New("booking not found")

// ErrForbidden is returned when the acting user is neither the booking's
// owner nor an administrator.  Maps to 403.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when a concurrent writer won a race the
// storage layer detected, e.g. a guarded status update matching zero
// rows because another request transitioned the booking first.  The
// client should re-read and retry.  Maps to 409.
var ErrConflict = errors.New("conflict")

// wrapInvalid attaches a human-readable reason to ErrInvalidInput while
// keeping errors.Is(err, ErrInvalidInput) true.
func wrapInvalid(format string, args ...any) error {
    return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
