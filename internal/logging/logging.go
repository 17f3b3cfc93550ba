// Package logging builds the structured logger shared by the binaries.
package logging

import (
	"io"
	"log/slog"
	"os"
)

// Options selects the handler and the attributes stamped on every record.
type Options struct {
	Debug   bool
	JSON    bool
	Service string
	Version string
	// Writer defaults to os.Stderr so command output on stdout stays clean.
	Writer io.Writer
}

// Setup returns a text (or JSON) slog logger at info (or debug) level.
func Setup(opts Options) *slog.Logger {
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}
	level := slog.LevelInfo
	if opts.Debug {
		level = slog.LevelDebug
	}
	hopts := &slog.HandlerOptions{Level: level}

	var log *slog.Logger
	if opts.JSON {
		log = slog.New(slog.NewJSONHandler(w, hopts))
	} else {
		log = slog.New(slog.NewTextHandler(w, hopts))
	}
	if opts.Service != "" {
		log = log.With("service", opts.Service)
	}
	if opts.Version != "" {
		log = log.With("version", opts.Version)
	}
	return log
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }
