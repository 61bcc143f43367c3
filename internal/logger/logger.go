// Package logger configures the application-wide zerolog logger.
//
// Every subsystem logs through a child logger tagged with a "component"
// field (manager, tree, ui, chemio, ...) so log output can be filtered
// per subsystem.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

var root zerolog.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
	Level(zerolog.InfoLevel).
	With().
	Timestamp().
	Logger()

// Setup replaces the root logger. level is one of debug, info, warn,
// error. When json is true the raw JSON stream is written instead of the
// console format.
func Setup(level string, json bool, out io.Writer) error {
	lvl, err := ParseLevel(level)
	if err != nil {
		return err
	}

	if out == nil {
		out = os.Stderr
	}
	if !json {
		out = zerolog.ConsoleWriter{Out: out}
	}

	root = zerolog.New(out).Level(lvl).With().Timestamp().Logger()
	return nil
}

// ParseLevel maps a level name to a zerolog level.
func ParseLevel(level string) (zerolog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel, nil
	case "", "info":
		return zerolog.InfoLevel, nil
	case "warn", "warning":
		return zerolog.WarnLevel, nil
	case "error":
		return zerolog.ErrorLevel, nil
	default:
		return zerolog.NoLevel, fmt.Errorf("invalid log level: %s (valid: debug, info, warn, error)", level)
	}
}

// For returns a child logger tagged with the given component name.
func For(component string) zerolog.Logger {
	return root.With().Str("component", component).Logger()
}
