package booking

import (
    "context"

    "github.com/tripavia/travel-booking/internal/model"
)

// Sort selects the ordering of booking list results.
type Sort string

const (
    SortCreated   Sort = "created"    // newest first (default)
    SortStartDate Sort = "start_date" // soonest stay first
    SortPrice     Sort = "price"      // cheapest first
)

// ValidSort reports whether s is a supported sort key.  The empty
// string is accepted and means SortCreated.
func ValidSort(s Sort) bool {
    switch s {
    case "", SortCreated, SortStartDate, SortPrice:
        return true
    }
    return false
}

// ListOptions narrows and orders ListByUser results.  A nil Status
// returns bookings in every state.
type ListOptions struct {
    Status *model.BookingStatus
    Sort   Sort
}

// Store abstracts booking persistence so the engine can be exercised
// against MySQL in production and an in-memory fake in tests.
// Implementations must return the package sentinels where documented so
// callers can classify failures with errors.Is.
type Store interface {
    // Resource loads one catalog row by kind and ID.  Returns
    // ErrResourceNotFound when no such row exists.
    Resource(ctx context.Context, kind model.ResourceKind, id uint64) (*model.Resource, error)

    // OverlapExists reports whether any booking on the resource whose
    // status still blocks its range (PENDING_PAYMENT or CONFIRMED)
    // intersects rng under the half-open test.  Cancelled bookings are
    // ignored, which is what frees a cancelled range for rebooking.
    OverlapExists(ctx context.Context, kind model.ResourceKind, resourceID uint64, rng DateRange) (bool, error)

    // Insert persists a new booking and fills in its generated ID and
    // timestamps.
    Insert(ctx context.Context, b *model.Booking) error

    // Get loads one booking by ID.  Returns ErrBookingNotFound when no
    // row exists.
    Get(ctx context.Context, id uint64) (*model.Booking, error)

    // UpdateStatus transitions a booking from one status to another
    // with a guarded write (WHERE id = ? AND status = ?).  Returns
    // ErrConflict when the row was not in `from` anymore, i.e. a
    // concurrent request transitioned it first.
    UpdateStatus(ctx context.Context, id uint64, from, to model.BookingStatus) error

    // ListByUser returns a user's bookings per the given options.
    ListByUser(ctx context.Context, userID uint64, opt ListOptions) ([]model.Booking, error)

    // ListByResource returns every booking ever taken on a resource,
    // newest first.  Used by the admin back-office.
    ListByResource(ctx context.Context, kind model.ResourceKind, resourceID uint64) ([]model.Booking, error)
}

// CreateRequest carries the validated-on-entry fields of a booking
// request as bound from the HTTP body.
type CreateRequest struct {
    UserID     uint64
    Kind       model.ResourceKind
    ResourceID uint64
    Range      DateRange
    PartySize  int
}

// Engine is the booking lifecycle manager.  It owns validation, the
// availability check, price computation and all status transitions.
// Creation for a single resource is serialized through ResourceLocks so
// the check-then-insert sequence cannot interleave with a concurrent
// request for the same resource; different resources proceed in
// parallel.  Everything else relies on the store's guarded writes.
type Engine struct {
    store Store
    locks *ResourceLocks
}

// NewEngine constructs an Engine.  The store must be non-nil.
func NewEngine(store Store) *Engine {
    if store == nil {
        panic("nil store passed to NewEngine")
    }
    return &Engine{store: store, locks: NewResourceLocks()}
}

// CheckAvailability reports whether rng is free on the given resource.
// Read-only: it takes no lock, so a true result is advisory and Create
// re-checks under the resource mutex.  Returns ErrResourceNotFound when
// the resource does not exist or is inactive.
func (e *Engine) CheckAvailability(ctx context.Context, kind model.ResourceKind, resourceID uint64, rng DateRange) (bool, error) {
    if !kind.Valid() || resourceID == 0 {
        return false, ErrInvalidInput
    }
    res, err := e.store.Resource(ctx, kind, resourceID)
    if err != nil {
        return false, err
    }
    if !res.IsActive {
        return false, ErrResourceNotFound
    }
    overlap, err := e.store.OverlapExists(ctx, kind, resourceID, rng)
    if err != nil {
        return false, err
    }
    return !overlap, nil
}

// Create runs the whole booking creation sequence: validate, load the
// resource, check availability, compute the price and persist in
// PENDING_PAYMENT.  The resource's mutex is held from before the
// availability check until after the insert.  On any failure no row is
// left behind.
func (e *Engine) Create(ctx context.Context, req CreateRequest) (*model.Booking, error) {
    if err := validateCreate(req); err != nil {
        return nil, err
    }

    mu := e.locks.Acquire(req.Kind, req.ResourceID)
    mu.Lock()
    defer mu.Unlock()

    res, err := e.store.Resource(ctx, req.Kind, req.ResourceID)
    if err != nil {
        return nil, err
    }
    if !res.IsActive {
        return nil, ErrResourceNotFound
    }
    if req.PartySize > res.Capacity {
        return nil, wrapInvalid("party size %d exceeds capacity %d", req.PartySize, res.Capacity)
    }

    overlap, err := e.store.OverlapExists(ctx, req.Kind, req.ResourceID, req.Range)
    if err != nil {
        return nil, err
    }
    if overlap {
        return nil, ErrUnavailable
    }

    total, err := ComputeTotalCents(res.UnitRateCents, req.Range, req.PartySize)
    if err != nil {
        return nil, err
    }

    b := &model.Booking{
        UserID:          req.UserID,
        ResourceKind:    req.Kind,
        ResourceID:      req.ResourceID,
        StartDate:       req.Range.Start,
        EndDate:         req.Range.End,
        PartySize:       req.PartySize,
        TotalPriceCents: total,
        Status:          model.StatusPendingPayment,
    }
    if err := e.store.Insert(ctx, b); err != nil {
        return nil, err
    }
    return b, nil
}

// Confirm transitions a booking from PENDING_PAYMENT to CONFIRMED on
// behalf of its owner or an admin.  Any other starting status yields
// ErrInvalidTransition; losing a transition race yields ErrConflict.
func (e *Engine) Confirm(ctx context.Context, bookingID, actorID uint64, actorRole string) (*model.Booking, error) {
    return e.transition(ctx, bookingID, actorID, actorRole, model.StatusConfirmed)
}

// Cancel transitions a booking to CANCELLED from PENDING_PAYMENT or
// CONFIRMED.  Cancelling an already-cancelled booking is an explicit
// ErrInvalidTransition, not an idempotent success; callers that want
// retry semantics re-read the booking first.
func (e *Engine) Cancel(ctx context.Context, bookingID, actorID uint64, actorRole string) (*model.Booking, error) {
    return e.transition(ctx, bookingID, actorID, actorRole, model.StatusCancelled)
}

func (e *Engine) transition(ctx context.Context, bookingID, actorID uint64, actorRole string, to model.BookingStatus) (*model.Booking, error) {
    if bookingID == 0 {
        return nil, ErrInvalidInput
    }
    b, err := e.store.Get(ctx, bookingID)
    if err != nil {
        return nil, err
    }
    if b.UserID != actorID && actorRole != model.RoleAdmin {
        return nil, ErrForbidden
    }
    if !b.Status.CanTransitionTo(to) {
        return nil, ErrInvalidTransition
    }
    if err := e.store.UpdateStatus(ctx, bookingID, b.Status, to); err != nil {
        return nil, err
    }
    b.Status = to
    return b, nil
}

// Get returns one booking, enforcing that the actor owns it or is an
// admin.
func (e *Engine) Get(ctx context.Context, bookingID, actorID uint64, actorRole string) (*model.Booking, error) {
    if bookingID == 0 {
        return nil, ErrInvalidInput
    }
    b, err := e.store.Get(ctx, bookingID)
    if err != nil {
        return nil, err
    }
    if b.UserID != actorID && actorRole != model.RoleAdmin {
        return nil, ErrForbidden
    }
    return b, nil
}

// ListByUser returns the user's own bookings, filtered and sorted per
// opt.  The result is a finite snapshot, not a live view.
func (e *Engine) ListByUser(ctx context.Context, userID uint64, opt ListOptions) ([]model.Booking, error) {
    if opt.Status != nil && !opt.Status.Valid() {
        return nil, wrapInvalid("unknown status %q", *opt.Status)
    }
    if !ValidSort(opt.Sort) {
        return nil, wrapInvalid("unknown sort %q", opt.Sort)
    }
    return e.store.ListByUser(ctx, userID, opt)
}

// ListByResource returns every booking on a resource for the admin
// back-office, newest first.
func (e *Engine) ListByResource(ctx context.Context, kind model.ResourceKind, resourceID uint64) ([]model.Booking, error) {
    if !kind.Valid() || resourceID == 0 {
        return nil, ErrInvalidInput
    }
    if _, err := e.store.Resource(ctx, kind, resourceID); err != nil {
        return nil, err
    }
    return e.store.ListByResource(ctx, kind, resourceID)
}

// validateCreate rejects malformed requests before any storage access.
func validateCreate(req CreateRequest) error {
    if req.UserID == 0 || req.ResourceID == 0 {
        return ErrInvalidInput
    }
    if !req.Kind.Valid() {
        return wrapInvalid("unknown resource kind %q", req.Kind)
    }
    if req.PartySize < 1 {
        return wrapInvalid("party size must be at least 1")
    }
    if !req.Range.End.After(req.Range.Start) {
        return wrapInvalid("end date must be after start date")
    }
    if req.Range.Start.Before(Today()) {
        return wrapInvalid("start date is in the past")
    }
    return nil
}
