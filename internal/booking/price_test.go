package booking

import (
    "errors"
    "testing"
)

func TestComputeTotalCents(t *testing.T) {
    cases := []struct {
        name  string
        rate  int64
        start string
        end   string
        party int
        want  int64
    }{
        {"one night two guests", 5000, "2026-01-07", "2026-01-08", 2, 10000},
        {"two nights one guest", 5000, "2026-01-05", "2026-01-07", 1, 10000},
        {"week for four", 12500, "2026-01-05", "2026-01-12", 4, 350000},
        {"free resource", 0, "2026-01-05", "2026-01-07", 3, 0},
    }
    for _, tc := range cases {
        rng := mustRange(t, tc.start, tc.end)
        got, err := ComputeTotalCents(tc.rate, rng, tc.party)
        if err != nil {
            t.Errorf("%s: unexpected error: %v", tc.name, err)
            continue
        }
        if got != tc.want {
            t.Errorf("%s: got %d cents, want %d", tc.name, got, tc.want)
        }
    }
}

func TestComputeTotalCents_Deterministic(t *testing.T) {
    rng := mustRange(t, "2026-01-07", "2026-01-08")
    first, err := ComputeTotalCents(5000, rng, 2)
    if err != nil {
        t.Fatalf("unexpected error: %v", err)
    }
    for i := 0; i < 10; i++ {
        again, err := ComputeTotalCents(5000, rng, 2)
        if err != nil || again != first {
            t.Fatalf("run %d: got %d, %v; want %d, nil", i, again, err, first)
        }
    }
}

func TestComputeTotalCents_Invalid(t *testing.T) {
    rng := mustRange(t, "2026-01-05", "2026-01-07")
    if _, err := ComputeTotalCents(-1, rng, 2); !errors.Is(err, ErrInvalidInput) {
        t.Fatalf("negative rate: got %v", err)
    }
    if _, err := ComputeTotalCents(5000, rng, 0); !errors.Is(err, ErrInvalidInput) {
        t.Fatalf("zero party: got %v", err)
    }
    // an unvalidated empty range must not price to zero silently
    if _, err := ComputeTotalCents(5000, DateRange{}, 2); !errors.Is(err, ErrInvalidInput) {
        t.Fatalf("empty range: got %v", err)
    }
}
