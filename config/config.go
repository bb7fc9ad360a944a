package config

import (
	"fmt"
	"sync"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Server struct {
		Env      string `envconfig:"ENV"`
		LogLevel string `envconfig:"LOG_LEVEL"`
		Port     string `envconfig:"PORT"`
		Host     string `envconfig:"HOST"`
		Shutdown struct {
			CleanupPeriodSeconds int64 `envconfig:"CLEANUP_PERIOD_SECONDS" default:"5"`
			GracePeriodSeconds   int64 `envconfig:"GRACE_PERIOD_SECONDS" default:"10"`
		} `envconfig:"SHUTDOWN"`
	} `envconfig:"SERVER"`

	App struct {
		Name     string `envconfig:"APP_NAME"`
		Timezone string `envconfig:"TIMEZONE"`
		CORS     struct {
			AllowCredentials bool     `envconfig:"ALLOW_CREDENTIALS"`
			AllowedHeaders   []string `envconfig:"ALLOWED_HEADERS"`
			AllowedMethods   []string `envconfig:"ALLOWED_METHODS"`
			AllowedOrigins   []string `envconfig:"ALLOWED_ORIGINS"`
			Enable           bool     `envconfig:"ENABLE"`
			MaxAgeSeconds    int      `envconfig:"MAX_AGE_SECONDS"`
		} `envconfig:"CORS"`
		RateLimiter struct {
			Enable        bool `envconfig:"ENABLE"`
			MaxRequests   int  `envconfig:"MAX_REQUESTS"`
			WindowSeconds int  `envconfig:"WINDOW_SECONDS"`
		} `envconfig:"RATE_LIMITER"`
		APIKey string `envconfig:"API_KEY"`
	} `envconfig:"APP"`

	Booking struct {
		SlotGranularityMinutes int `envconfig:"SLOT_GRANULARITY_MINUTES" default:"30"`
	} `envconfig:"BOOKING"`

	Cache struct {
		Redis struct {
			Primary struct {
				Host     string `envconfig:"HOST"`
				Port     string `envconfig:"PORT" default:"6379"`
				Password string `envconfig:"PASSWORD"`
				DB       int    `envconfig:"DB"`
			} `envconfig:"PRIMARY"`
		} `envconfig:"REDIS"`
		TTL int `envconfig:"TTL" default:"300"`
	} `envconfig:"CACHE"`

	JWT struct {
		AccessSecret    string `envconfig:"ACCESS_SECRET"`
		AccessExpireMin int    `envconfig:"ACCESS_EXPIRE_MIN"`
	} `envconfig:"JWT"`

	DB struct {
		Postgres struct {
			MaxRetry       int    `envconfig:"MAX_RETRY"`
			RetryWaitTime  int    `envconfig:"RETRY_WAIT_TIME"`
			MigrationTable string `envconfig:"MIGRATION_TABLE"`
			AutoMigrate    bool   `envconfig:"AUTO_MIGRATE"`
			Prefix         string `envconfig:"PREFIX"`
			MaxConns       int32  `envconfig:"MAX_CONNS" default:"10"`
			Read           struct {
				Host     string `envconfig:"HOST"`
				Port     string `envconfig:"PORT"`
				Username string `envconfig:"USER"`
				Password string `envconfig:"PASSWORD"`
				Name     string `envconfig:"NAME"`
				Timezone string `envconfig:"TIMEZONE"`
				SSLMode  string `envconfig:"SSL_MODE"`
			} `envconfig:"READ"`
			Write struct {
				Host     string `envconfig:"HOST"`
				Port     string `envconfig:"PORT"`
				Username string `envconfig:"USER"`
				Password string `envconfig:"PASSWORD"`
				Name     string `envconfig:"NAME"`
				Timezone string `envconfig:"TIMEZONE"`
				SSLMode  string `envconfig:"SSL_MODE"`
			} `envconfig:"WRITE"`
		} `envconfig:"POSTGRES"`
	} `envconfig:"DB"`

	Kafka struct {
		Enable        bool     `envconfig:"ENABLE"`
		Brokers       []string `envconfig:"BROKERS"`
		ConsumerGroup string   `envconfig:"CONSUMER_GROUP"`
		Topic         string   `envconfig:"TOPIC" default:"salon.booking.events"`
		SASL          struct {
			Username string `envconfig:"USERNAME"`
			Password string `envconfig:"PASSWORD"`
		} `envconfig:"SASL"`
	} `envconfig:"KAFKA"`

	Metrics struct {
		Enable bool `envconfig:"ENABLE" default:"true"`
	} `envconfig:"METRICS"`

	External struct {
		Otel struct {
			Endpoint string `envconfig:"ENDPOINT"`
		} `envconfig:"OTEL"`
		S3 struct {
			Enable          bool   `envconfig:"ENABLE"`
			APIEndpoint     string `envconfig:"API_ENDPOINT"`
			AccessKeyID     string `envconfig:"ACCESS_KEY_ID"`
			SecretAccessKey string `envconfig:"SECRET_ACCESS_KEY"`
			BucketName      string `envconfig:"BUCKET_NAME"`
			PublicDomain    string `envconfig:"PUBLIC_DOMAIN"`
			Region          string `envconfig:"REGION" default:"auto"`
			MaxPhotoSizeMB  int64  `envconfig:"MAX_PHOTO_SIZE_MB" default:"5"`
		} `envconfig:"S3"`
	}
}

var (
	conf    Config
	once    sync.Once
	initErr error
)

// Init loads .env when present and then decodes the environment into the shared Config.
// It runs once; later calls return the first result.
func Init() error {
	once.Do(func() {
		if err := godotenv.Load(".env"); err != nil {
			log.Warn().Err(err).Msg("No .env file loaded, using the process environment")
		} else {
			log.Info().Msg("Loaded variables from .env file into environment")
		}

		if err := envconfig.Process("", &conf); err != nil {
			initErr = fmt.Errorf("process environment: %w", err)

			return
		}

		log.Info().Str("env", conf.Server.Env).Msg("Service configuration initialized")
	})

	return initErr
}

func Get() *Config {
	if err := Init(); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize configuration")
	}

	return &conf
}
