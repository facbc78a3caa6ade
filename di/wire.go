//go:build wireinject
// +build wireinject

package di

import (
	"trs/config"
	"trs/infras/jwt"
	"trs/infras/kafka"
	"trs/infras/otel"
	"trs/infras/postgres"
	"trs/infras/redis"
	"trs/internal/domains/settings"
	calendarHandler "trs/internal/handlers/calendar"
	"trs/shared/cache"
	"trs/transport/http"
	"trs/transport/http/middleware"
	"trs/transport/http/router"

	calendarRepository "trs/internal/domains/calendar/repository"
	calendarService "trs/internal/domains/calendar/service"

	"github.com/google/wire"

	authService "trs/internal/domains/auth/service"
	reservationRepository "trs/internal/domains/reservation/repository"
	reservationService "trs/internal/domains/reservation/service"
	scheduleRepository "trs/internal/domains/schedule/repository"
	scheduleService "trs/internal/domains/schedule/service"
	tableRepository "trs/internal/domains/table/repository"
	tableService "trs/internal/domains/table/service"
	userRepository "trs/internal/domains/user/repository"
	authHandler "trs/internal/handlers/auth"
	reservationHandler "trs/internal/handlers/reservation"
	scheduleHandler "trs/internal/handlers/schedule"
	settingsHandler "trs/internal/handlers/settings"
	tableHandler "trs/internal/handlers/table"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	settings.NewProvider,
)

var calendarDomain = wire.NewSet(
	calendarRepository.New,
	calendarService.New,
)

var scheduleDomain = wire.NewSet(
	scheduleRepository.New,
	scheduleService.New,
)

var tableDomain = wire.NewSet(
	tableRepository.New,
	tableService.New,
)

var reservationDomain = wire.NewSet(
	reservationRepository.New,
	reservationService.New,
)

var authDomain = wire.NewSet(
	userRepository.New,
	authService.New,
)

var domains = wire.NewSet(
	calendarDomain,
	scheduleDomain,
	tableDomain,
	reservationDomain,
	authDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	calendarHandler.New,
	scheduleHandler.New,
	tableHandler.New,
	reservationHandler.New,
	settingsHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
