// Package logging builds the zerolog loggers used by the CLI
package logging

import (
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// Config controls logger construction
type Config struct {
	Level   string // zerolog level name, "info" when empty
	Debug   bool   // Forces debug level
	Console bool   // Human readable output even when not on a terminal
	JSON    bool   // JSON output even on a terminal
	Output  io.Writer
}

// New returns a logger writing to Config.Output (stderr by default).
// Output is human readable on a terminal and JSON otherwise.
func New(config Config) (zerolog.Logger, error) {
	level := zerolog.InfoLevel
	if config.Debug {
		level = zerolog.DebugLevel
	} else if config.Level != "" {
		var err error
		level, err = zerolog.ParseLevel(config.Level)
		if err != nil {
			return zerolog.Nop(), err
		}
	}

	output := config.Output
	if output == nil {
		output = os.Stderr
	}

	if !config.JSON && (config.Console || isTerminal(output)) {
		output = zerolog.ConsoleWriter{Out: output, TimeFormat: time.Kitchen}
	}

	return zerolog.New(output).Level(level).With().Timestamp().Logger(), nil
}

// WithComponent returns a child logger tagged with component
func WithComponent(logger zerolog.Logger, component string) zerolog.Logger {
	return logger.With().Str("component", component).Logger()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
