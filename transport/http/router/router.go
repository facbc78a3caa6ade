package router

import (
	"trs/internal/handlers/auth"
	"trs/internal/handlers/calendar"
	"trs/internal/handlers/reservation"
	"trs/internal/handlers/schedule"
	"trs/internal/handlers/settings"
	"trs/internal/handlers/table"
	"trs/transport/http/middleware"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Auth        auth.Handler
	Calendar    calendar.Handler
	Schedule    schedule.Handler
	Table       table.Handler
	Reservation reservation.Handler
	Settings    settings.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	AuthMiddleware middleware.Auth
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.Calendar.Router(routerGroup)
		r.DomainHandlers.Schedule.Router(routerGroup)
		r.DomainHandlers.Table.Router(routerGroup)
		r.DomainHandlers.Reservation.Router(routerGroup)

		routerGroup.Group(func(protected chi.Router) {
			protected.Use(r.AuthMiddleware.Authenticate)
			protected.Use(r.AuthMiddleware.RequireAdmin)

			r.DomainHandlers.Auth.ProtectedRouter(protected)
			r.DomainHandlers.Calendar.ProtectedRouter(protected)
			r.DomainHandlers.Reservation.ProtectedRouter(protected)
			r.DomainHandlers.Settings.ProtectedRouter(protected)
		})
	})
}

func New(domainHandlers DomainHandlers, authMiddleware middleware.Auth) Router {
	return Router{
		DomainHandlers: domainHandlers,
		AuthMiddleware: authMiddleware,
	}
}
