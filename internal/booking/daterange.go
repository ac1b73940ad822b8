package booking

import (
    "fmt"
    "time"
)

// DateLayout is the wire format for booking dates.  Bookings have
// date-only granularity; all dates are normalized to midnight UTC.
const DateLayout = "2006-01-02"

// DateRange is a half-open interval [Start, End) of calendar days.
// Start is the first reserved day, End the day after the last reserved
// day, so back-to-back bookings sharing an endpoint never conflict.
type DateRange struct {
    Start time.Time // inclusive, midnight UTC
    End   time.Time // exclusive, midnight UTC
}

// ParseDate parses a YYYY-MM-DD string into a midnight-UTC time.
func ParseDate(s string) (time.Time, error) {
    t, err := time.Parse(DateLayout, s)
    if err != nil {
        return time.Time{}, fmt.Errorf("%w: bad date %q", ErrInvalidInput, s)
    }
    return t.UTC(), nil
}

// NewDateRange builds a DateRange from two timestamps.  Both are
// truncated to their UTC calendar day.  The range must be non-empty
// (end strictly after start) or ErrInvalidInput is returned, which also
// rejects equal dates: a zero-night booking reserves nothing.
func NewDateRange(start, end time.Time) (DateRange, error) {
    if start.IsZero() || end.IsZero() {
        return DateRange{}, fmt.Errorf("%w: missing date", ErrInvalidInput)
    }
    s := DateOnly(start)
    e := DateOnly(end)
    if !e.After(s) {
        return DateRange{}, fmt.Errorf("%w: end date must be after start date", ErrInvalidInput)
    }
    return DateRange{Start: s, End: e}, nil
}

// ParseDateRange is a convenience wrapper around ParseDate and
// NewDateRange for the two query/body fields handlers receive.
func ParseDateRange(startStr, endStr string) (DateRange, error) {
    start, err := ParseDate(startStr)
    if err != nil {
        return DateRange{}, err
    }
    end, err := ParseDate(endStr)
    if err != nil {
        return DateRange{}, err
    }
    return NewDateRange(start, end)
}

// Overlaps reports whether two half-open ranges intersect:
// [a1,a2) and [b1,b2) overlap iff a1 < b2 && b1 < a2.  Ranges that
// merely touch (one's End equals the other's Start) do not overlap.
func (r DateRange) Overlaps(o DateRange) bool {
    return r.Start.Before(o.End) && o.Start.Before(r.End)
}

// Nights returns the number of reserved days in the range.  For hotels
// this is nights, for tours and transport it is days; either way it is
// End minus Start in whole days and is >= 1 for any valid range.
func (r DateRange) Nights() int {
    return int(r.End.Sub(r.Start).Hours() / 24)
}

// DateOnly truncates t to midnight UTC of its calendar day.
func DateOnly(t time.Time) time.Time {
    y, m, d := t.UTC().Date()
    return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today returns the current calendar day at midnight UTC.  Kept as a
// variable so tests can pin the clock.
var Today = func() time.Time {
    return DateOnly(time.Now())
}
