package main

import (
	"os"
	"salon/config"
	"salon/di"
	"salon/helper"
	"salon/shared/logger"

	"github.com/rs/zerolog/log"
)

// @title Salon Booking API
// @version 1.0
// @description Service catalog, staff schedules, slot availability and reservations for a salon.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	logger.UseStructuredOutput(cfg, os.Stdout)

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to run database migrations")
		}
	}

	http := di.InitializeService()
	http.Serve()
}
