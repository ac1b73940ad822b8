package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tripavia/travel-booking/internal/booking"
)

// AdminHandler serves the back-office views over bookings.  Routes using
// it sit behind the ADMIN role middleware.
type AdminHandler struct {
	Engine *booking.Engine
}

// NewAdminHandler constructs an AdminHandler.  The engine must be
// non-nil.
func NewAdminHandler(engine *booking.Engine) *AdminHandler {
	if engine == nil {
		panic("nil engine passed to NewAdminHandler")
	}
	return &AdminHandler{Engine: engine}
}

// ListResourceBookings handles
// GET /v1/admin/resources/:kind/:id/bookings.  It returns every booking
// ever taken on one resource, cancelled ones included, newest first.
func (h *AdminHandler) ListResourceBookings(c echo.Context) error {
	kind, ok := parseKindParam(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown resource kind"})
	}
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	items, err := h.Engine.ListByResource(c.Request().Context(), kind, id)
	if err != nil {
		return respondBookingErr(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"kind":  string(kind),
		"id":    id,
		"items": toBookingViews(items),
	})
}
