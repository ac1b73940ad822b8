package handler

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/tripavia/travel-booking/internal/booking"
)

func newEchoContext(t *testing.T) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestRespondBookingErr_StatusMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{booking.ErrInvalidInput, http.StatusBadRequest},
		{fmt.Errorf("%w: start date is in the past", booking.ErrInvalidInput), http.StatusBadRequest},
		{booking.ErrResourceNotFound, http.StatusNotFound},
		{booking.ErrBookingNotFound, http.StatusNotFound},
		{booking.ErrUnavailable, http.StatusConflict},
		{booking.ErrInvalidTransition, http.StatusConflict},
		{booking.ErrConflict, http.StatusConflict},
		{booking.ErrForbidden, http.StatusForbidden},
		{fmt.Errorf("driver: bad connection"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		c, rec := newEchoContext(t)
		if err := respondBookingErr(c, tc.err); err != nil {
			t.Fatalf("respondBookingErr(%v) returned error: %v", tc.err, err)
		}
		if rec.Code != tc.want {
			t.Errorf("respondBookingErr(%v) wrote status %d, want %d", tc.err, rec.Code, tc.want)
		}
	}
}

func TestGetUserID_ClaimTypes(t *testing.T) {
	cases := []struct {
		val  interface{}
		want uint64
		ok   bool
	}{
		{float64(42), 42, true}, // JWT numbers decode as float64
		{uint64(7), 7, true},
		{"19", 19, true},
		{"not-a-number", 0, false},
		{nil, 0, false},
	}
	for _, tc := range cases {
		c, _ := newEchoContext(t)
		if tc.val != nil {
			c.Set("user_id", tc.val)
		}
		got, err := getUserID(c)
		if tc.ok && (err != nil || got != tc.want) {
			t.Errorf("getUserID(%v) = %d, %v; want %d", tc.val, got, err, tc.want)
		}
		if !tc.ok && err == nil {
			t.Errorf("getUserID(%v) succeeded, want error", tc.val)
		}
	}
}
