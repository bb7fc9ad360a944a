//go:build wireinject
// +build wireinject

package di

import (
	"salon/config"
	"salon/infras/jwt"
	"salon/infras/kafka"
	"salon/infras/otel"
	"salon/infras/postgres"
	"salon/infras/redis"
	"salon/infras/s3"
	"salon/permissions"
	"salon/shared/cache"
	"salon/transport/http"
	"salon/transport/http/middleware"
	"salon/transport/http/router"

	bookingRepository "salon/internal/domains/booking/repository"
	bookingService "salon/internal/domains/booking/service"
	catalogRepository "salon/internal/domains/catalog/repository"
	catalogService "salon/internal/domains/catalog/service"
	scheduleRepository "salon/internal/domains/schedule/repository"
	scheduleService "salon/internal/domains/schedule/service"
	staffRepository "salon/internal/domains/staff/repository"
	staffService "salon/internal/domains/staff/service"

	bookingHandler "salon/internal/handlers/booking"
	catalogHandler "salon/internal/handlers/catalog"
	scheduleHandler "salon/internal/handlers/schedule"
	staffHandler "salon/internal/handlers/staff"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	postgres.NewPool,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	s3.New,
	provideBookingMetrics,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var catalogDomain = wire.NewSet(
	catalogRepository.New,
	catalogService.New,
)

var staffDomain = wire.NewSet(
	staffRepository.New,
	staffService.New,
)

var scheduleDomain = wire.NewSet(
	scheduleRepository.New,
	scheduleService.New,
)

var bookingDomain = wire.NewSet(
	provideLedger,
	provideManager,
	provideAvailability,
	bookingRepository.New,
	bookingService.New,
)

var domains = wire.NewSet(
	catalogDomain,
	staffDomain,
	scheduleDomain,
	bookingDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	catalogHandler.New,
	staffHandler.New,
	scheduleHandler.New,
	bookingHandler.New,
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
		provideHTTP,
	)

	return &http.HTTP{}
}
