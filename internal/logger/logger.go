// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logger configures the process-wide slog logger. Diagnostic
// output goes to stderr so it never mixes with progress on stdout.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Config holds logger configuration.
type Config struct {
	Verbose bool
	Format  string // text or json
}

// New builds a logger writing to w. Verbose enables debug records.
func New(w io.Writer, cfg Config) (*slog.Logger, error) {
	level := slog.LevelWarn
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	switch strings.ToLower(cfg.Format) {
	case "", "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("unknown log format %q: use text or json", cfg.Format)
	}
}

// Init installs a logger built by New as the slog default.
func Init(w io.Writer, cfg Config) error {
	l, err := New(w, cfg)
	if err != nil {
		return err
	}
	slog.SetDefault(l)
	return nil
}
