// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/venue-booking-bot/internal/handler"
	"github.com/iliyamo/venue-booking-bot/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication on
// the provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterBooking registers the booking engine's entry points under /v1.
// Every route requires the gateway's bearer token; the GatewayAuth
// middleware verifies it against gatewaySecret and injects the holder
// identity for the handlers.
func RegisterBooking(e *echo.Echo, h *handler.BookingHandler, gatewaySecret string) {
	g := e.Group("/v1")
	g.Use(middleware.GatewayAuth(gatewaySecret))

	// Conversational booking flow: one endpoint per state transition.
	g.POST("/actions/locale", h.SelectLocale)
	g.POST("/actions/start", h.StartBooking)
	g.POST("/actions/date", h.SelectDate)
	g.POST("/actions/slot", h.SelectSlot)
	g.POST("/actions/party-size", h.SelectPartySize)

	// Upcoming bookings and the cancellation sub-flow.
	g.GET("/bookings", h.ListBookings)
	g.POST("/bookings/:id/cancel", h.RequestCancel)
	g.POST("/bookings/:id/cancel/confirm", h.ConfirmCancel)
	g.POST("/bookings/cancel/deny", h.DenyCancel)
}
