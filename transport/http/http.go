package http

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"salon/config"
	"salon/shared/constant"
	"salon/transport/http/middleware"
	"salon/transport/http/response"
	"salon/transport/http/router"
	"syscall"
	"time"

	// registers the swagger document
	_ "salon/docs"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	httpSwagger "github.com/swaggo/http-swagger"
)

type ServerState int

const (
	ServerStateReady ServerState = iota + 1
	ServerStateInGracePeriod
	ServerStateInCleanupPeriod
)

const readHeaderTimeout = 10 * time.Second

type HTTP struct {
	Config     *config.Config
	Router     router.Router
	App        middleware.AppMiddleware
	AuthRole   middleware.AuthRole
	State      ServerState
	mux        *chi.Mux
	server     *http.Server
	shutdownFn []func(context.Context) error
}

func New(cfg *config.Config, r router.Router, app middleware.AppMiddleware, authRole middleware.AuthRole) *HTTP {
	return &HTTP{
		Config:   cfg,
		Router:   r,
		App:      app,
		AuthRole: authRole,
	}
}

// OnShutdown registers fn to run during the cleanup period, after the listener stops.
func (h *HTTP) OnShutdown(fn func(context.Context) error) {
	h.shutdownFn = append(h.shutdownFn, fn)
}

func (h *HTTP) Serve() {
	h.setup()

	h.server = &http.Server{
		Addr:              net.JoinHostPort(h.Config.Server.Host, h.Config.Server.Port),
		Handler:           h.mux,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	log.Info().Str("port", h.Config.Server.Port).Msg("Starting up HTTP server.")

	if err := h.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("Failed to start HTTP server")
	}
}

// Handler builds the routes without listening, for tests and embedding.
func (h *HTTP) Handler() http.Handler {
	h.setupRoutes()
	h.State = ServerStateReady

	return h.mux
}

func (h *HTTP) setup() {
	h.setupRoutes()
	h.setupGracefulShutdown()
	h.State = ServerStateReady
}

func (h *HTTP) setupRoutes() {
	h.mux = chi.NewRouter()

	h.mux.Use(chiMiddleware.RequestID)
	h.mux.Use(chiMiddleware.RealIP)
	h.mux.Use(chiMiddleware.Recoverer)

	if h.Config.App.CORS.Enable {
		h.mux.Use(cors.Handler(cors.Options{
			AllowedOrigins:   h.Config.App.CORS.AllowedOrigins,
			AllowedMethods:   h.Config.App.CORS.AllowedMethods,
			AllowedHeaders:   h.Config.App.CORS.AllowedHeaders,
			AllowCredentials: h.Config.App.CORS.AllowCredentials,
			MaxAge:           h.Config.App.CORS.MaxAgeSeconds,
		}))
	}

	h.mux.Get("/health", h.health)

	if h.Config.Metrics.Enable {
		h.mux.Handle("/metrics", promhttp.Handler())
	}

	if h.Config.Server.Env != constant.ServerEnvProduction {
		h.mux.Get("/swagger/*", httpSwagger.WrapHandler)
	}

	h.mux.Group(func(r chi.Router) {
		r.Use(h.App.Tracing)
		r.Use(h.App.RateLimit())
		r.Use(h.AuthRole.APIKey)
		r.Use(h.AuthRole.Auth)
		r.Use(h.AuthRole.RBAC)

		h.Router.SetupRoutes(r)
	})
}

func (h *HTTP) health(w http.ResponseWriter, _ *http.Request) {
	switch h.State {
	case ServerStateReady:
		response.WithMessage(w, http.StatusOK, "OK")
	case ServerStateInGracePeriod, ServerStateInCleanupPeriod:
		response.WithPreparingShutdown(w)
	default:
		response.WithUnhealthy(w)
	}
}

func (h *HTTP) setupGracefulShutdown() {
	serverStateCh := make(chan os.Signal, 1)

	signal.Notify(serverStateCh, os.Interrupt, syscall.SIGTERM)

	go h.respondToSigterm(serverStateCh)
}

func (h *HTTP) respondToSigterm(done chan os.Signal) {
	<-done

	defer os.Exit(0)

	shutdownConfig := h.Config.Server.Shutdown

	if h.Config.Server.Env == constant.ServerEnvDevelopment {
		log.Warn().Msg("Received SIGTERM. Shutting down now.")

		shutdownConfig.GracePeriodSeconds = 0
	} else {
		log.Info().Msg("Received SIGTERM.")
	}

	log.Info().Int64("seconds", shutdownConfig.GracePeriodSeconds).Msg("Entering grace period.")

	h.State = ServerStateInGracePeriod

	time.Sleep(time.Duration(shutdownConfig.GracePeriodSeconds) * time.Second)

	log.Info().Int64("seconds", shutdownConfig.CleanupPeriodSeconds).Msg("Entering cleanup period.")

	h.State = ServerStateInCleanupPeriod

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(shutdownConfig.CleanupPeriodSeconds)*time.Second+time.Second)
	defer cancel()

	if h.server != nil {
		if err := h.server.Shutdown(ctx); err != nil {
			log.Error().Err(err).Msg("HTTP server did not drain in time")
		}
	}

	for _, fn := range h.shutdownFn {
		if err := fn(ctx); err != nil {
			log.Error().Err(err).Msg("Cleanup step failed")
		}
	}

	log.Info().Msg("Cleaning up completed. Shutting down now.")
}
