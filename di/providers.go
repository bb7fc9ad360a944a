package di

import (
	"context"
	"salon/config"
	"salon/infras/kafka"
	"salon/infras/metrics"
	"salon/infras/otel"
	"salon/infras/postgres"
	availabilityService "salon/internal/domains/availability/service"
	catalogService "salon/internal/domains/catalog/service"
	reservationRepository "salon/internal/domains/reservation/repository"
	reservationService "salon/internal/domains/reservation/service"
	scheduleService "salon/internal/domains/schedule/service"
	staffService "salon/internal/domains/staff/service"
	"salon/transport/http"
	"salon/transport/http/middleware"
	"salon/transport/http/router"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	goRedis "github.com/redis/go-redis/v9"
)

func provideBookingMetrics() *metrics.BookingMetrics {
	return metrics.NewBookingMetrics(prometheus.DefaultRegisterer)
}

func provideLedger(pool *pgxpool.Pool, otel otel.Otel) reservationRepository.Ledger {
	return reservationRepository.New(pool, otel)
}

func provideAvailability(
	catalog catalogService.Catalog,
	staff staffService.Directory,
	schedule scheduleService.Schedule,
	ledger reservationRepository.Ledger,
	cfg *config.Config,
	bookingMetrics *metrics.BookingMetrics,
	otel otel.Otel,
) availabilityService.Availability {
	return availabilityService.New(catalog, staff, schedule, ledger, cfg, bookingMetrics, otel)
}

func provideManager(
	ledger reservationRepository.Ledger,
	catalog catalogService.Catalog,
	staff staffService.Directory,
	schedule scheduleService.Schedule,
	cfg *config.Config,
	bookingMetrics *metrics.BookingMetrics,
	otel otel.Otel,
) reservationService.Manager {
	return reservationService.New(ledger, catalog, staff, schedule, cfg, bookingMetrics, otel)
}

// provideHTTP closes the connections the server owns once it has drained.
func provideHTTP(
	cfg *config.Config,
	r router.Router,
	app middleware.AppMiddleware,
	authRole middleware.AuthRole,
	otel otel.Otel,
	kafkaClient kafka.Client,
	pool *pgxpool.Pool,
	db *postgres.Connection,
	redisClient *goRedis.Client,
) *http.HTTP {
	server := http.New(cfg, r, app, authRole)

	server.OnShutdown(func(context.Context) error {
		return kafkaClient.Close()
	})
	server.OnShutdown(func(context.Context) error {
		pool.Close()
		db.Close()

		return redisClient.Close()
	})
	server.OnShutdown(otel.Shutdown)

	return server
}
