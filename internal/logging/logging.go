// Package logging builds the zerolog loggers handed to every component.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Options selects the output format and verbosity.
type Options struct {
	Level string
	// Console switches from JSON lines to the human readable writer.
	Console bool
	// Out defaults to os.Stderr.
	Out io.Writer
	// File, if set, receives an uncoloured copy of every line.
	File io.Writer
}

// ParseLevel maps trace, debug, info, warn and error to zerolog levels. An
// empty string means info.
func ParseLevel(s string) (zerolog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return zerolog.InfoLevel, nil
	case "warning":
		return zerolog.WarnLevel, nil
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return zerolog.InfoLevel, fmt.Errorf("parse log level %q: %w", s, err)
	}
	return lvl, nil
}

// New builds a logger from opts. An unknown level falls back to info and is
// reported on the returned logger.
func New(opts Options) zerolog.Logger {
	out := opts.Out
	if out == nil {
		out = os.Stderr
	}

	var w io.Writer = out
	if opts.Console {
		w = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}
	if opts.File != nil {
		w = zerolog.MultiLevelWriter(w, zerolog.ConsoleWriter{
			Out:        opts.File,
			TimeFormat: time.RFC3339,
			NoColor:    true,
		})
	}

	lvl, err := ParseLevel(opts.Level)
	logger := zerolog.New(w).Level(lvl).With().Timestamp().Logger()
	if err != nil {
		logger.Warn().Err(err).Msg("Falling back to info level")
	}
	return logger
}

// Component tags a logger with the subsystem it belongs to.
func Component(l zerolog.Logger, name string) zerolog.Logger {
	return l.With().Str("component", name).Logger()
}
