package router

import (
	"github.com/labstack/echo/v4"

	"github.com/tripavia/travel-booking/internal/handler"
	"github.com/tripavia/travel-booking/internal/middleware"
)

// RegisterAdmin registers the back-office endpoints under /v1/admin.
// All routes require a valid JWT with the ADMIN role.
func RegisterAdmin(e *echo.Echo, h *handler.AdminHandler, jwtSecret string) {
	g := e.Group(
		"/v1/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("ADMIN"),
	)
	g.GET("/resources/:kind/:id/bookings", h.ListResourceBookings)
}
