package repository

import (
    "context"
    "database/sql"
    "errors"

    "github.com/tripavia/travel-booking/internal/booking"
    "github.com/tripavia/travel-booking/internal/model"
)

// BookingRepo provides persistence for the bookings table.  One generic
// table serves all three resource kinds; rows are tagged with
// resource_kind so the overlap query and the admin listings stay a
// single statement.  Rows are never deleted, cancellation only flips
// status, so the table doubles as the audit trail.
type BookingRepo struct {
    db *sql.DB
}

// NewBookingRepo returns a BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// bookingColumns is the canonical select list shared by every query
// that scans a full booking row.
const bookingColumns = `id, user_id, resource_kind, resource_id, start_date, end_date, party_size, total_price_cents, status, created_at, updated_at`

func scanBooking(row interface{ Scan(...any) error }) (*model.Booking, error) {
    var b model.Booking
    err := row.Scan(
        &b.ID, &b.UserID, &b.ResourceKind, &b.ResourceID,
        &b.StartDate, &b.EndDate, &b.PartySize, &b.TotalPriceCents,
        &b.Status, &b.CreatedAt, &b.UpdatedAt,
    )
    if err != nil {
        return nil, err
    }
    return &b, nil
}

// Insert persists a new booking and reads the row back so the generated
// ID and DB-assigned timestamps are populated on the given struct.
// Dates are stored as DATE columns in the YYYY-MM-DD wire format.
func (r *BookingRepo) Insert(ctx context.Context, b *model.Booking) error {
    const q = `INSERT INTO bookings (user_id, resource_kind, resource_id, start_date, end_date, party_size, total_price_cents, status)
               VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
    res, err := r.db.ExecContext(ctx, q,
        b.UserID, string(b.ResourceKind), b.ResourceID,
        b.StartDate.Format(booking.DateLayout), b.EndDate.Format(booking.DateLayout),
        b.PartySize, b.TotalPriceCents, string(b.Status),
    )
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    b.ID = uint64(id)
    // Query back the full row to populate timestamps and defaults.
    const sel = `SELECT ` + bookingColumns + ` FROM bookings WHERE id = ?`
    got, err := scanBooking(r.db.QueryRowContext(ctx, sel, b.ID))
    if err != nil {
        return err
    }
    *b = *got
    return nil
}

// Get loads one booking by ID.  Returns booking.ErrBookingNotFound when
// no row exists.
func (r *BookingRepo) Get(ctx context.Context, id uint64) (*model.Booking, error) {
    const q = `SELECT ` + bookingColumns + ` FROM bookings WHERE id = ?`
    b, err := scanBooking(r.db.QueryRowContext(ctx, q, id))
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, booking.ErrBookingNotFound
        }
        return nil, err
    }
    return b, nil
}

// OverlapExists reports whether any blocking booking (PENDING_PAYMENT
// or CONFIRMED) on the resource intersects rng.  The half-open test
// [a1,a2) ∩ [b1,b2) ≠ ∅ ⇔ a1 < b2 AND b1 < a2 translates directly to
// start_date < rng.End AND end_date > rng.Start, so adjacent bookings
// sharing an endpoint never count as a conflict.
func (r *BookingRepo) OverlapExists(ctx context.Context, kind model.ResourceKind, resourceID uint64, rng booking.DateRange) (bool, error) {
    const q = `SELECT EXISTS(
                   SELECT 1 FROM bookings
                   WHERE resource_kind = ? AND resource_id = ?
                     AND status IN ('PENDING_PAYMENT', 'CONFIRMED')
                     AND start_date < ? AND end_date > ?
               )`
    var exists bool
    err := r.db.QueryRowContext(ctx, q,
        string(kind), resourceID,
        rng.End.Format(booking.DateLayout), rng.Start.Format(booking.DateLayout),
    ).Scan(&exists)
    if err != nil {
        return false, err
    }
    return exists, nil
}

// UpdateStatus performs a guarded status transition: the UPDATE only
// matches while the row is still in `from`.  Zero affected rows means a
// concurrent request transitioned the booking first (or the ID is
// stale) and surfaces as booking.ErrConflict so the caller re-reads.
func (r *BookingRepo) UpdateStatus(ctx context.Context, id uint64, from, to model.BookingStatus) error {
    const q = `UPDATE bookings SET status = ?, updated_at = UTC_TIMESTAMP() WHERE id = ? AND status = ?`
    res, err := r.db.ExecContext(ctx, q, string(to), id, string(from))
    if err != nil {
        return err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if n == 0 {
        return booking.ErrConflict
    }
    return nil
}

// ListByUser returns the user's bookings per the given options.  The
// status filter and sort key were validated by the engine; the sort
// switch below intentionally lists every ORDER BY clause verbatim
// instead of splicing user input into SQL.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64, opt booking.ListOptions) ([]model.Booking, error) {
    q := `SELECT ` + bookingColumns + ` FROM bookings WHERE user_id = ?`
    args := []any{userID}
    if opt.Status != nil {
        q += ` AND status = ?`
        args = append(args, string(*opt.Status))
    }
    switch opt.Sort {
    case booking.SortStartDate:
        q += ` ORDER BY start_date ASC, id ASC`
    case booking.SortPrice:
        q += ` ORDER BY total_price_cents ASC, id ASC`
    default: // booking.SortCreated
        q += ` ORDER BY created_at DESC, id DESC`
    }
    return r.queryBookings(ctx, q, args...)
}

// ListByResource returns every booking ever taken on one resource,
// newest first, for the admin back-office.
func (r *BookingRepo) ListByResource(ctx context.Context, kind model.ResourceKind, resourceID uint64) ([]model.Booking, error) {
    const q = `SELECT ` + bookingColumns + ` FROM bookings
               WHERE resource_kind = ? AND resource_id = ?
               ORDER BY created_at DESC, id DESC`
    return r.queryBookings(ctx, q, string(kind), resourceID)
}

func (r *BookingRepo) queryBookings(ctx context.Context, q string, args ...any) ([]model.Booking, error) {
    rows, err := r.db.QueryContext(ctx, q, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.Booking, 0)
    for rows.Next() {
        b, err := scanBooking(rows)
        if err != nil {
            return nil, err
        }
        out = append(out, *b)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}

// Store adapts the concrete repositories to the booking engine's Store
// interface so the engine never sees *sql.DB directly.
type Store struct {
    Resources *ResourceRepo
    Bookings  *BookingRepo
}

// NewStore bundles the repositories the engine needs.  Both must be
// non-nil.
func NewStore(resources *ResourceRepo, bookings *BookingRepo) *Store {
    if resources == nil || bookings == nil {
        panic("nil repository passed to NewStore")
    }
    return &Store{Resources: resources, Bookings: bookings}
}

func (s *Store) Resource(ctx context.Context, kind model.ResourceKind, id uint64) (*model.Resource, error) {
    return s.Resources.Get(ctx, kind, id)
}

func (s *Store) OverlapExists(ctx context.Context, kind model.ResourceKind, resourceID uint64, rng booking.DateRange) (bool, error) {
    return s.Bookings.OverlapExists(ctx, kind, resourceID, rng)
}

func (s *Store) Insert(ctx context.Context, b *model.Booking) error {
    return s.Bookings.Insert(ctx, b)
}

func (s *Store) Get(ctx context.Context, id uint64) (*model.Booking, error) {
    return s.Bookings.Get(ctx, id)
}

func (s *Store) UpdateStatus(ctx context.Context, id uint64, from, to model.BookingStatus) error {
    return s.Bookings.UpdateStatus(ctx, id, from, to)
}

func (s *Store) ListByUser(ctx context.Context, userID uint64, opt booking.ListOptions) ([]model.Booking, error) {
    return s.Bookings.ListByUser(ctx, userID, opt)
}

func (s *Store) ListByResource(ctx context.Context, kind model.ResourceKind, resourceID uint64) ([]model.Booking, error) {
    return s.Bookings.ListByResource(ctx, kind, resourceID)
}
