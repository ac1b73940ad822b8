package router

import (
	"github.com/labstack/echo/v4"

	"github.com/tripavia/travel-booking/internal/handler"
	"github.com/tripavia/travel-booking/internal/middleware"
)

// RegisterBookings registers the booking lifecycle endpoints under /v1.
// All routes require a valid JWT; both customers and admins may call
// them (the engine enforces per-booking ownership, admins pass).
func RegisterBookings(e *echo.Echo, h *handler.BookingHandler, jwtSecret string) {
	g := e.Group(
		"/v1/bookings",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("CUSTOMER", "ADMIN"),
	)
	g.POST("", h.Create)
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.POST("/:id/confirm", h.Confirm)
	g.POST("/:id/cancel", h.Cancel)
}
