package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tripavia/travel-booking/internal/booking"
	"github.com/tripavia/travel-booking/internal/model"
	"github.com/tripavia/travel-booking/internal/repository"
)

// PublicHandler serves unauthenticated catalog browsing and the
// advisory availability check.  Responses are sanitized views of the
// catalog tables; internal flags like is_active never leave the server
// (inactive rows are simply absent).
type PublicHandler struct {
	Resources *repository.ResourceRepo
	Engine    *booking.Engine
}

// NewPublicHandler constructs a PublicHandler.  Both dependencies must
// be non-nil.
func NewPublicHandler(resources *repository.ResourceRepo, engine *booking.Engine) *PublicHandler {
	if resources == nil || engine == nil {
		panic("nil dependency passed to NewPublicHandler")
	}
	return &PublicHandler{Resources: resources, Engine: engine}
}

// resourceView is the public shape of a catalog row.
type resourceView struct {
	ID            uint64 `json:"id"`
	Kind          string `json:"kind"`
	Name          string `json:"name"`
	UnitRateCents int64  `json:"unit_rate_cents"`
	Capacity      int    `json:"capacity"`
}

func toResourceViews(in []model.Resource) []resourceView {
	out := make([]resourceView, 0, len(in))
	for _, r := range in {
		out = append(out, resourceView{
			ID:            r.ID,
			Kind:          string(r.Kind),
			Name:          r.Name,
			UnitRateCents: r.UnitRateCents,
			Capacity:      r.Capacity,
		})
	}
	return out
}

// ListHotels handles GET /v1/hotels.
func (h *PublicHandler) ListHotels(c echo.Context) error {
	return h.listKind(c, model.KindHotel)
}

// ListTours handles GET /v1/tours.
func (h *PublicHandler) ListTours(c echo.Context) error {
	return h.listKind(c, model.KindTour)
}

// ListTransports handles GET /v1/transports.
func (h *PublicHandler) ListTransports(c echo.Context) error {
	return h.listKind(c, model.KindTransport)
}

func (h *PublicHandler) listKind(c echo.Context, kind model.ResourceKind) error {
	items, err := h.Resources.ListActive(c.Request().Context(), kind)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": toResourceViews(items)})
}

// CheckAvailability handles GET /v1/:kind/:id/availability?start=YYYY-MM-DD&end=YYYY-MM-DD.
// The answer is advisory: booking creation re-checks under the resource
// lock, so a true here can still lose to a concurrent request.
func (h *PublicHandler) CheckAvailability(c echo.Context) error {
	kind, ok := parseKindParam(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown resource kind"})
	}
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	rng, err := booking.ParseDateRange(c.QueryParam("start"), c.QueryParam("end"))
	if err != nil {
		return respondBookingErr(c, err)
	}

	available, err := h.Engine.CheckAvailability(c.Request().Context(), kind, id, rng)
	if err != nil {
		return respondBookingErr(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"kind":      string(kind),
		"id":        id,
		"start":     rng.Start.Format(booking.DateLayout),
		"end":       rng.End.Format(booking.DateLayout),
		"available": available,
	})
}
