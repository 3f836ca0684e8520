/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package logging configures the process-wide slog logger.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// EnvLogLevel is the environment variable consulted for the log level.
const EnvLogLevel = "LOG_LEVEL"

// Options controls logger construction.
type Options struct {
	// Name is attached to every record as the "module" attribute.
	Name string

	// Version is attached to every record as the "version" attribute.
	Version string

	// Level is a level name (debug, info, warn, error). Empty falls back
	// to LOG_LEVEL, then info.
	Level string

	// JSON selects the JSON handler instead of the text handler.
	JSON bool

	// Output receives log records. Defaults to stderr.
	Output io.Writer
}

// ParseLevel converts a level name to a slog.Level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New returns a logger built from opts.
func New(opts Options) *slog.Logger {
	level := opts.Level
	if level == "" {
		level = os.Getenv(EnvLogLevel)
	}

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	handlerOpts := &slog.HandlerOptions{Level: ParseLevel(level)}
	var handler slog.Handler
	if opts.JSON {
		handler = slog.NewJSONHandler(out, handlerOpts)
	} else {
		handler = slog.NewTextHandler(out, handlerOpts)
	}

	logger := slog.New(handler)
	if opts.Name != "" {
		logger = logger.With("module", opts.Name)
	}
	if opts.Version != "" {
		logger = logger.With("version", opts.Version)
	}
	return logger
}

// SetDefault builds a logger from opts and installs it as the slog default.
func SetDefault(opts Options) {
	slog.SetDefault(New(opts))
}
