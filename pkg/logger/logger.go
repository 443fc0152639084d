package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New returns the service logger: human readable console output at debug
// level in dev, JSON at info level elsewhere. A nil w means stdout.
func New(env string, w io.Writer) zerolog.Logger {
	if w == nil {
		w = os.Stdout
	}
	zerolog.TimeFieldFormat = time.RFC3339
	if env == "dev" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
		return zerolog.New(w).With().Timestamp().Str("service", "vaccine-api").Logger().Level(zerolog.DebugLevel)
	}
	return zerolog.New(w).With().Timestamp().Str("service", "vaccine-api").Logger().Level(zerolog.InfoLevel)
}
