/*
logger.go - Process-wide zerolog setup

PURPOSE:
  Configures the global zerolog level and output once at startup and
  returns the root logger that components derive their own from with
  .With().Str("component", ...).

OUTPUT:
  pretty=false: JSON lines on stderr, Unix timestamps
  pretty=true:  zerolog.ConsoleWriter for local development

SEE ALSO:
  - config/config.go: LOG_LEVEL, LOG_PRETTY
  - api/server.go: Per-request logger via hlog
*/
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup configures the global logger and returns it. An unknown level
// falls back to info.
func Setup(level string, pretty bool) zerolog.Logger {
	return SetupWriter(os.Stderr, level, pretty)
}

// SetupWriter is Setup with an explicit destination.
func SetupWriter(w io.Writer, level string, pretty bool) zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(ParseLevel(level))

	if pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	log.Logger = zerolog.New(w).With().Timestamp().Logger()
	return log.Logger
}

func ParseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}
