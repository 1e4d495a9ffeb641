// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-room-booking/internal/handler"
)

// RegisterRoutes registers routes that belong to no feature group.
// Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterGuest registers the guest-facing endpoints under /hotel.
// cacheMW, when non-nil, is applied to the room listing so repeated
// catalogue reads are served from the response cache.
func RegisterGuest(e *echo.Echo, h *handler.GuestHandler, cacheMW echo.MiddlewareFunc) {
	g := e.Group("/hotel")
	g.POST("/users", h.CreateUser)
	if cacheMW != nil {
		g.GET("/rooms", h.ListRooms, cacheMW)
	} else {
		g.GET("/rooms", h.ListRooms)
	}
	g.POST("/reserved-rooms", h.BookRoom)
}

// RegisterAdmin registers the administrative endpoints under
// /hotel/admin: room CRUD, the reservation listing and the on-demand
// expiry sweep.
func RegisterAdmin(e *echo.Echo, h *handler.AdminHandler) {
	g := e.Group("/hotel/admin")
	g.POST("/rooms", h.CreateRoom)
	g.PUT("/rooms/:id", h.UpdateRoom)
	g.DELETE("/rooms/:id", h.DeleteRoom)
	g.GET("/reserved-rooms", h.ListReservations)
	g.POST("/reservations/expire", h.ExpireReservations)
}
