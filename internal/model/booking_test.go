package model

import "testing"

func TestBookingStatusTransitions(t *testing.T) {
    cases := []struct {
        from, to BookingStatus
        want     bool
    }{
        {StatusPendingPayment, StatusConfirmed, true},
        {StatusPendingPayment, StatusCancelled, true},
        {StatusConfirmed, StatusCancelled, true},
        {StatusConfirmed, StatusPendingPayment, false},
        {StatusCancelled, StatusPendingPayment, false},
        {StatusCancelled, StatusConfirmed, false},
        {StatusCancelled, StatusCancelled, false},
        {StatusPendingPayment, StatusPendingPayment, false},
        {StatusConfirmed, StatusConfirmed, false},
    }
    for _, tc := range cases {
        if got := tc.from.CanTransitionTo(tc.to); got != tc.want {
            t.Errorf("%s -> %s: got %v, want %v", tc.from, tc.to, got, tc.want)
        }
    }
}

func TestBookingStatusBlocks(t *testing.T) {
    if !StatusPendingPayment.Blocks() || !StatusConfirmed.Blocks() {
        t.Fatal("pending and confirmed bookings must block their range")
    }
    if StatusCancelled.Blocks() {
        t.Fatal("cancelled bookings must release their range")
    }
}

func TestParseResourceKind(t *testing.T) {
    for _, s := range []string{"hotel", "hotels", "HOTEL"} {
        if k, ok := ParseResourceKind(s); !ok || k != KindHotel {
            t.Errorf("ParseResourceKind(%q) = %v, %v", s, k, ok)
        }
    }
    if _, ok := ParseResourceKind("cruise"); ok {
        t.Error("expected cruise to be rejected")
    }
}
