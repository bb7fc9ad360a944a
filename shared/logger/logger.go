package logger

import (
	"io"
	"os"
	"salon/config"
	"salon/shared/constant"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogger installs a human readable console logger at trace level. SetLogLevel narrows it once
// the configuration is loaded.
func InitLogger() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	log.Trace().Msg("Zerolog initialized.")
}

// UseStructuredOutput switches the global logger to JSON lines outside development.
func UseStructuredOutput(config *config.Config, out io.Writer) {
	switch config.Server.Env {
	case "", constant.ServerEnvDevelopment:
		return
	}

	log.Logger = zerolog.New(out).With().Timestamp().Str("app", config.App.Name).Logger()
}

// ErrorWithStack logs err with the stack of the caller attached.
func ErrorWithStack(err error) {
	log.Error().Msgf("%+v", errors.WithStack(err))
}

// SetLogLevel applies SERVER_LOG_LEVEL. Unknown or empty values keep trace.
func SetLogLevel(config *config.Config) {
	level, err := zerolog.ParseLevel(config.Server.LogLevel)
	if err != nil || config.Server.LogLevel == "" {
		level = zerolog.TraceLevel
	}

	log.Trace().Str("loglevel", level.String()).Str("configured", config.Server.LogLevel).Msg("Applying log level.")
	zerolog.SetGlobalLevel(level)
}
