// Package repository contains the data access layer.  Each repository
// wraps a *sql.DB and exposes typed methods over one concern: users,
// refresh tokens, the bookable-resource catalogs and the bookings table.
// All timestamps are stored and compared in UTC.
package repository

import (
    "context"      // context for controlling query lifetime
    "database/sql" // sql provides DB abstraction
    "errors"       // errors for sentinel comparisons

    "github.com/tripavia/travel-booking/internal/booking"
    "github.com/tripavia/travel-booking/internal/model"
)

// ResourceRepo reads the three catalog tables (hotels, tour_packages,
// transport_vehicles).  The catalogs are owned by the back-office; this
// service only ever reads them, so the repo has no write methods.
type ResourceRepo struct {
    db *sql.DB
}

// NewResourceRepo constructs a ResourceRepo with the given DB handle.
func NewResourceRepo(db *sql.DB) *ResourceRepo {
    return &ResourceRepo{db: db}
}

// catalogTable maps a resource kind to the table it is stored in.  The
// kind is validated before being spliced into SQL; only these three
// constants ever reach a query string.
func catalogTable(kind model.ResourceKind) (string, error) {
    switch kind {
    case model.KindHotel:
        return "hotels", nil
    case model.KindTour:
        return "tour_packages", nil
    case model.KindTransport:
        return "transport_vehicles", nil
    }
    return "", booking.ErrInvalidInput
}

// Get loads one catalog row by kind and ID.  Inactive rows are returned
// as-is; the booking engine decides whether they are bookable.  Returns
// booking.ErrResourceNotFound when no row exists.
func (r *ResourceRepo) Get(ctx context.Context, kind model.ResourceKind, id uint64) (*model.Resource, error) {
    table, err := catalogTable(kind)
    if err != nil {
        return nil, err
    }
    q := `SELECT id, name, unit_rate_cents, capacity, is_active, created_at FROM ` + table + ` WHERE id = ?`
    res := model.Resource{Kind: kind}
    err = r.db.QueryRowContext(ctx, q, id).Scan(
        &res.ID, &res.Name, &res.UnitRateCents, &res.Capacity, &res.IsActive, &res.CreatedAt,
    )
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, booking.ErrResourceNotFound
        }
        return nil, err
    }
    return &res, nil
}

// ListActive returns all active rows of one catalog for public
// browsing, ordered by ID for stable pagination-free output.
func (r *ResourceRepo) ListActive(ctx context.Context, kind model.ResourceKind) ([]model.Resource, error) {
    table, err := catalogTable(kind)
    if err != nil {
        return nil, err
    }
    q := `SELECT id, name, unit_rate_cents, capacity, is_active, created_at FROM ` + table + ` WHERE is_active = 1 ORDER BY id`
    rows, err := r.db.QueryContext(ctx, q)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.Resource, 0)
    for rows.Next() {
        res := model.Resource{Kind: kind}
        if err := rows.Scan(&res.ID, &res.Name, &res.UnitRateCents, &res.Capacity, &res.IsActive, &res.CreatedAt); err != nil {
            return nil, err
        }
        out = append(out, res)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}
