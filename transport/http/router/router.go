package router

import (
	"salon/internal/handlers/booking"
	"salon/internal/handlers/catalog"
	"salon/internal/handlers/schedule"
	"salon/internal/handlers/staff"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Catalog  catalog.Handler
	Staff    staff.Handler
	Schedule schedule.Handler
	Booking  booking.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Catalog.Router(routerGroup)
		r.DomainHandlers.Staff.Router(routerGroup)
		r.DomainHandlers.Schedule.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
