// Package logging builds the service-tagged zerolog loggers used by
// the demo binaries.
package logging

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New returns a stdout logger tagged with the service name. Levels
// that fail to parse fall back to info.
func New(service, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	zerolog.TimeFieldFormat = time.RFC3339Nano
	return zerolog.New(os.Stdout).
		Level(lvl).
		With().
		Timestamp().
		Str("service", service).
		Logger()
}
