package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Initialize sets up the global logger. Pretty output is meant for a
// terminal; otherwise one JSON object is written per line.
func Initialize(level string, pretty bool) error {
	return InitializeWithWriter(os.Stdout, level, pretty)
}

func InitializeWithWriter(out io.Writer, level string, pretty bool) error {
	parsedLevel, err := ParseLevel(level)
	if err != nil {
		return err
	}

	if pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}
	log.Logger = zerolog.New(out).With().Timestamp().Logger()
	zerolog.SetGlobalLevel(parsedLevel)
	return nil
}

// ParseLevel accepts zerolog level names; empty means info.
func ParseLevel(level string) (zerolog.Level, error) {
	trimmed := strings.ToLower(strings.TrimSpace(level))
	if trimmed == "" {
		return zerolog.InfoLevel, nil
	}
	return zerolog.ParseLevel(trimmed)
}

// Get returns the global logger
func Get() *zerolog.Logger {
	return &log.Logger
}
