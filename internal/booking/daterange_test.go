package booking

import (
    "errors"
    "testing"
    "time"
)

func mustDate(t *testing.T, s string) time.Time {
    t.Helper()
    d, err := ParseDate(s)
    if err != nil {
        t.Fatalf("ParseDate(%q): %v", s, err)
    }
    return d
}

func mustRange(t *testing.T, start, end string) DateRange {
    t.Helper()
    r, err := ParseDateRange(start, end)
    if err != nil {
        t.Fatalf("ParseDateRange(%q, %q): %v", start, end, err)
    }
    return r
}

func TestParseDate(t *testing.T) {
    d := mustDate(t, "2026-01-07")
    if d.Hour() != 0 || d.Location() != time.UTC {
        t.Fatalf("expected midnight UTC, got %v", d)
    }
    if _, err := ParseDate("07/01/2026"); !errors.Is(err, ErrInvalidInput) {
        t.Fatalf("expected ErrInvalidInput for bad format, got %v", err)
    }
    if _, err := ParseDate(""); !errors.Is(err, ErrInvalidInput) {
        t.Fatalf("expected ErrInvalidInput for empty string, got %v", err)
    }
}

func TestNewDateRange_Invalid(t *testing.T) {
    start := mustDate(t, "2026-01-07")

    // equal dates reserve nothing
    if _, err := NewDateRange(start, start); !errors.Is(err, ErrInvalidInput) {
        t.Fatalf("expected ErrInvalidInput for equal dates, got %v", err)
    }
    // inverted dates
    end := mustDate(t, "2026-01-05")
    if _, err := NewDateRange(start, end); !errors.Is(err, ErrInvalidInput) {
        t.Fatalf("expected ErrInvalidInput for inverted dates, got %v", err)
    }
    // zero values
    if _, err := NewDateRange(time.Time{}, start); !errors.Is(err, ErrInvalidInput) {
        t.Fatalf("expected ErrInvalidInput for zero start, got %v", err)
    }
}

func TestNewDateRange_TruncatesToDay(t *testing.T) {
    start := time.Date(2026, 1, 5, 15, 30, 0, 0, time.UTC)
    end := time.Date(2026, 1, 7, 9, 0, 0, 0, time.UTC)
    r, err := NewDateRange(start, end)
    if err != nil {
        t.Fatalf("unexpected error: %v", err)
    }
    if !r.Start.Equal(mustDate(t, "2026-01-05")) || !r.End.Equal(mustDate(t, "2026-01-07")) {
        t.Fatalf("expected range truncated to calendar days, got %v", r)
    }
}

func TestOverlaps(t *testing.T) {
    base := mustRange(t, "2026-01-05", "2026-01-07")
    cases := []struct {
        name  string
        other DateRange
        want  bool
    }{
        {"identical range", mustRange(t, "2026-01-05", "2026-01-07"), true},
        {"contained", mustRange(t, "2026-01-05", "2026-01-06"), true},
        {"containing", mustRange(t, "2026-01-04", "2026-01-08"), true},
        {"overlaps tail", mustRange(t, "2026-01-06", "2026-01-09"), true},
        {"overlaps head", mustRange(t, "2026-01-03", "2026-01-06"), true},
        {"adjacent after", mustRange(t, "2026-01-07", "2026-01-09"), false},
        {"adjacent before", mustRange(t, "2026-01-03", "2026-01-05"), false},
        {"disjoint", mustRange(t, "2026-02-01", "2026-02-03"), false},
    }
    for _, tc := range cases {
        if got := base.Overlaps(tc.other); got != tc.want {
            t.Errorf("%s: Overlaps=%v, want %v", tc.name, got, tc.want)
        }
        // the overlap test is symmetric
        if got := tc.other.Overlaps(base); got != tc.want {
            t.Errorf("%s (reversed): Overlaps=%v, want %v", tc.name, got, tc.want)
        }
    }
}

func TestNights(t *testing.T) {
    if n := mustRange(t, "2026-01-07", "2026-01-08").Nights(); n != 1 {
        t.Fatalf("one-night range: got %d nights", n)
    }
    if n := mustRange(t, "2026-01-05", "2026-01-12").Nights(); n != 7 {
        t.Fatalf("week range: got %d nights", n)
    }
}
