package redis

import (
	"context"
	"net"
	"salon/config"
	"time"

	goRedis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const pingTimeout = 5 * time.Second

// New connects to the primary Redis used for read-model caching and rate limiting.
// The process exits when the server cannot be reached at startup.
func New(config *config.Config) *goRedis.Client {
	primary := config.Cache.Redis.Primary
	addr := net.JoinHostPort(primary.Host, primary.Port)

	client := goRedis.NewClient(&goRedis.Options{
		Addr:       addr,
		Password:   primary.Password,
		DB:         primary.DB,
		ClientName: config.App.Name,
	})

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatal().Err(err).Str("addr", addr).Msg("Failed to connect to Redis")
	}

	log.Info().Str("addr", addr).Int("db", primary.DB).Msg("Connected to Redis")

	return client
}
