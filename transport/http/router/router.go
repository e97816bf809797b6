package router

import (
	"hotel/internal/handlers/auth"
	"hotel/internal/handlers/availability"
	"hotel/internal/handlers/booking"
	"hotel/internal/handlers/report"
	"hotel/internal/handlers/room"
	"hotel/internal/handlers/roomtype"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Auth         auth.Handler
	RoomType     roomtype.Handler
	Availability availability.Handler
	Room         room.Handler
	Booking      booking.Handler
	Report       report.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

// SetupRoutes mounts every domain under /v1. Availability registers
// /rooms/status before the rooms subrouter claims the /rooms prefix.
func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.RoomType.Router(routerGroup)
		r.DomainHandlers.Availability.Router(routerGroup)
		r.DomainHandlers.Room.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Report.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
