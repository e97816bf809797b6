package logger

import (
	"io"
	"os"
	"time"

	"hotel/config"
	"hotel/shared/constant"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogger installs the global zerolog logger: JSON lines in production,
// a console writer everywhere else.
func InitLogger(cfg *config.Config) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	var output io.Writer = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	if cfg != nil && cfg.Server.Env == constant.ServerEnvProduction {
		output = os.Stdout
	}

	log.Logger = zerolog.New(output).With().Timestamp().Str("service", serviceName(cfg)).Logger()

	SetLogLevel(cfg)
}

func serviceName(cfg *config.Config) string {
	if cfg == nil || cfg.App.Name == "" {
		return "hotel"
	}

	return cfg.App.Name
}

// ErrorWithStack logs err together with the stack of the caller.
func ErrorWithStack(err error) {
	log.Error().Msgf("%+v", errors.WithStack(err))
}

// SetLogLevel applies SERVER_LOG_LEVEL, defaulting to info.
func SetLogLevel(cfg *config.Config) {
	level := zerolog.InfoLevel

	if cfg != nil && cfg.Server.LogLevel != "" {
		parsed, err := zerolog.ParseLevel(cfg.Server.LogLevel)
		if err != nil {
			log.Warn().Str("loglevel", cfg.Server.LogLevel).Msg("Unknown log level, using info")
		} else {
			level = parsed
		}
	}

	zerolog.SetGlobalLevel(level)
}
