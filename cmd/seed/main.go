package main

import (
	"context"
	"flag"
	"salon/config"
	"salon/helper"
	"salon/infras/otel"
	"salon/infras/postgres"
	catalogRepository "salon/internal/domains/catalog/repository"
	scheduleRepository "salon/internal/domains/schedule/repository"
	staffRepository "salon/internal/domains/staff/repository"
	"salon/shared/logger"

	"github.com/rs/zerolog/log"
)

func main() {
	path := flag.String("f", "fixtures/salon.yaml", "seed fixture path")
	flag.Parse()

	cfg := config.Get()

	logger.InitLogger()
	logger.SetLogLevel(cfg)

	fixture, err := helper.LoadFixture(*path)
	if err != nil {
		log.Fatal().Err(err).Str("path", *path).Msg("Failed to load seed fixture")
	}

	db := postgres.New(cfg)
	defer db.Close()

	tracer := otel.New(cfg)

	seeder := helper.Seeder{
		Catalog:  catalogRepository.New(db, tracer),
		Staff:    staffRepository.New(db, tracer),
		Schedule: scheduleRepository.New(db, tracer),
	}

	if err := seeder.Seed(context.Background(), fixture); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed database")
	}

	log.Info().Int("services", len(fixture.Services)).Int("staff", len(fixture.Staff)).Msg("Seeding completed")
}
