package handler

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tripavia/travel-booking/internal/booking"
	"github.com/tripavia/travel-booking/internal/model"
	"github.com/tripavia/travel-booking/internal/queue"
	"github.com/tripavia/travel-booking/internal/repository"
	queue_publisher "github.com/tripavia/travel-booking/internal/service"
)

// BookingHandler serves the authenticated booking lifecycle: create,
// list, inspect, confirm and cancel.  All methods assume the JWT and
// role middleware already ran; the engine re-checks ownership so a
// forged ID in the path cannot touch someone else's booking.
type BookingHandler struct {
	Engine    *booking.Engine
	Resources *repository.ResourceRepo
}

// NewBookingHandler constructs a BookingHandler.  Both dependencies
// must be non-nil.
func NewBookingHandler(engine *booking.Engine, resources *repository.ResourceRepo) *BookingHandler {
	if engine == nil || resources == nil {
		panic("nil dependency passed to NewBookingHandler")
	}
	return &BookingHandler{Engine: engine, Resources: resources}
}

// ----- DTOs -----

type createBookingReq struct {
	ResourceKind string `json:"resource_kind"` // hotel | tour | transport
	ResourceID   uint64 `json:"resource_id"`   // catalog row ID
	StartDate    string `json:"start_date"`    // YYYY-MM-DD
	EndDate      string `json:"end_date"`      // YYYY-MM-DD
	PartySize    int    `json:"party_size"`    // guests or passengers
}

// bookingView is the wire shape of a booking.  Dates go out as plain
// YYYY-MM-DD strings; timestamps stay RFC 3339.
type bookingView struct {
	ID              uint64    `json:"id"`
	UserID          uint64    `json:"user_id"`
	ResourceKind    string    `json:"resource_kind"`
	ResourceID      uint64    `json:"resource_id"`
	StartDate       string    `json:"start_date"`
	EndDate         string    `json:"end_date"`
	PartySize       int       `json:"party_size"`
	TotalPriceCents int64     `json:"total_price_cents"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func toBookingView(b *model.Booking) bookingView {
	return bookingView{
		ID:              b.ID,
		UserID:          b.UserID,
		ResourceKind:    string(b.ResourceKind),
		ResourceID:      b.ResourceID,
		StartDate:       b.StartDate.Format(booking.DateLayout),
		EndDate:         b.EndDate.Format(booking.DateLayout),
		PartySize:       b.PartySize,
		TotalPriceCents: b.TotalPriceCents,
		Status:          string(b.Status),
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

func toBookingViews(in []model.Booking) []bookingView {
	out := make([]bookingView, 0, len(in))
	for i := range in {
		out = append(out, toBookingView(&in[i]))
	}
	return out
}

// Create handles POST /v1/bookings.  The booking is created in
// PENDING_PAYMENT with its total price fixed at creation time.
func (h *BookingHandler) Create(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	kind, ok := model.ParseResourceKind(req.ResourceKind)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown resource kind"})
	}
	rng, err := booking.ParseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return respondBookingErr(c, err)
	}

	b, err := h.Engine.Create(c.Request().Context(), booking.CreateRequest{
		UserID:     userID,
		Kind:       kind,
		ResourceID: req.ResourceID,
		Range:      rng,
		PartySize:  req.PartySize,
	})
	if err != nil {
		return respondBookingErr(c, err)
	}
	return c.JSON(http.StatusCreated, toBookingView(b))
}

// List handles GET /v1/bookings?status=&sort=.  Only the caller's own
// bookings are returned.
func (h *BookingHandler) List(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var opt booking.ListOptions
	if s := strings.TrimSpace(c.QueryParam("status")); s != "" {
		st := model.BookingStatus(strings.ToUpper(s))
		opt.Status = &st
	}
	opt.Sort = booking.Sort(strings.ToLower(strings.TrimSpace(c.QueryParam("sort"))))

	items, err := h.Engine.ListByUser(c.Request().Context(), userID, opt)
	if err != nil {
		return respondBookingErr(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": toBookingViews(items)})
}

// Get handles GET /v1/bookings/:id.
func (h *BookingHandler) Get(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	b, err := h.Engine.Get(c.Request().Context(), id, userID, getRole(c))
	if err != nil {
		return respondBookingErr(c, err)
	}
	return c.JSON(http.StatusOK, toBookingView(b))
}

// Confirm handles POST /v1/bookings/:id/confirm.  On success a
// BookingConfirmedEvent is published to RabbitMQ; publish failures are
// logged and ignored so the confirmation itself stands.
func (h *BookingHandler) Confirm(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	b, err := h.Engine.Confirm(c.Request().Context(), id, userID, getRole(c))
	if err != nil {
		return respondBookingErr(c, err)
	}

	h.publishConfirmed(b)

	return c.JSON(http.StatusOK, toBookingView(b))
}

// Cancel handles POST /v1/bookings/:id/cancel.  Cancelling frees the
// date range immediately; cancelling an already cancelled booking is
// rejected with 409.
func (h *BookingHandler) Cancel(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	b, err := h.Engine.Cancel(c.Request().Context(), id, userID, getRole(c))
	if err != nil {
		return respondBookingErr(c, err)
	}
	return c.JSON(http.StatusOK, toBookingView(b))
}

// publishConfirmed builds and publishes the confirmation event in the
// background.  The resource name is looked up best-effort; an empty
// name is acceptable in the event.
func (h *BookingHandler) publishConfirmed(b *model.Booking) {
	ev := queue.BookingConfirmedEvent{
		BookingID:       b.ID,
		UserID:          b.UserID,
		ResourceKind:    string(b.ResourceKind),
		ResourceID:      b.ResourceID,
		StartDate:       b.StartDate.Format(booking.DateLayout),
		EndDate:         b.EndDate.Format(booking.DateLayout),
		PartySize:       b.PartySize,
		TotalPriceCents: b.TotalPriceCents,
		ConfirmedAt:     time.Now().UTC().Format(time.RFC3339),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if res, err := h.Resources.Get(ctx, b.ResourceKind, b.ResourceID); err == nil {
			ev.ResourceName = res.Name
		}
		if err := queue_publisher.PublishBookingConfirmed(ctx, ev); err != nil {
			log.Printf("booking %d: publish confirmed event failed: %v", b.ID, err)
		}
	}()
}
