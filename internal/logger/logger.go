// Package logger configures the application's structured logging.
//
// It uses zerolog for the main logger and provides the adapters needed
// to route pgx SQL trace output through zerolog as well.
package logger

import (
	"os"

	"github.com/avaagri/farmcrm/internal/config"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"
)

// New builds the process logger from config.
//
// Format "console" writes human-friendly output to stderr, anything
// else writes JSON. Unknown levels fall back to info.
func New(cfg *config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if cfg.Logging.Format == "console" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		logger = zerolog.New(os.Stderr)
	}

	return logger.Level(level).With().
		Timestamp().
		Str("service", "farmcrm").
		Str("env", cfg.Primary.Env).
		Logger()
}

// NewPgxLogger derives a logger for pgx trace output.
//
// SQL tracing is noisy, so the pgx logger is tagged and kept at the
// same threshold as the app logger rather than a fixed debug level.
func NewPgxLogger(base zerolog.Logger) zerolog.Logger {
	return base.With().Str("component", "pgx").Logger()
}

// PgxTraceLogLevel converts a zerolog level into the pgx tracelog level
// that produces a comparable amount of output.
func PgxTraceLogLevel(level zerolog.Level) tracelog.LogLevel {
	switch level {
	case zerolog.TraceLevel:
		return tracelog.LogLevelTrace
	case zerolog.DebugLevel:
		return tracelog.LogLevelDebug
	case zerolog.InfoLevel:
		return tracelog.LogLevelInfo
	case zerolog.WarnLevel:
		return tracelog.LogLevelWarn
	case zerolog.ErrorLevel, zerolog.FatalLevel, zerolog.PanicLevel:
		return tracelog.LogLevelError
	default:
		return tracelog.LogLevelNone
	}
}
