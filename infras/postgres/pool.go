package postgres

import (
	"context"
	"salon/config"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

const (
	poolMinConns        = 1
	poolMaxConnLifetime = 30 * time.Minute
	poolMaxConnIdleTime = 5 * time.Minute
)

// NewPool opens the pgx pool on the primary. The reservation ledger needs it for
// advisory locks and row locks inside explicit transactions.
func NewPool(config *config.Config) *pgxpool.Pool {
	e := writeEndpoint(*config)

	poolConfig, err := pgxpool.ParseConfig(e.DSN())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to parse postgres pool config")
	}

	poolConfig.MaxConns = config.DB.Postgres.MaxConns
	poolConfig.MinConns = poolMinConns
	poolConfig.MaxConnLifetime = poolMaxConnLifetime
	poolConfig.MaxConnIdleTime = poolMaxConnIdleTime

	for retry := range config.DB.Postgres.MaxRetry {
		pool, err := connectPool(poolConfig)
		if err == nil {
			log.Info().
				Str("host", e.host).
				Str("dbName", e.dbName).
				Int32("maxConns", poolConfig.MaxConns).
				Msg("Connected to database pool")

			return pool
		}

		log.Error().
			Err(err).
			Str("host", e.host).
			Str("dbName", e.dbName).
			Int("attempt", retry+1).
			Msg("Failed connecting to database pool, retrying")

		time.Sleep(time.Duration(config.DB.Postgres.RetryWaitTime) * time.Second)
	}

	log.Fatal().Msg("Could not connect to database pool")

	return nil
}

func connectPool(poolConfig *pgxpool.Config) (*pgxpool.Pool, error) {
	ctx := context.Background()

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()

		return nil, err //nolint:wrapcheck
	}

	return pool, nil
}
