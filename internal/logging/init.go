// Package logging wires slog for the CLI and the demo TUI: text or JSON
// handlers, stderr/file/none sinks, and lumberjack rotation for the file
// sink.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

type InitOptions struct {
	App     string
	Version string
}

// Init installs the default slog logger from cfg layered over defaults and
// env overrides. The returned close func flushes the file sink.
func Init(cfg Config, opts InitOptions) (func() error, error) {
	if opts.App == "" {
		opts.App = "marquee"
	}

	merged := DefaultConfig().Merge(cfg).WithEnv()
	normalized, err := merged.Normalize()
	if err != nil {
		return nil, err
	}

	logger, closeFn, err := buildLogger(normalized, opts)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(logger)
	return closeFn, nil
}

func buildLogger(cfg Config, opts InitOptions) (*slog.Logger, func() error, error) {
	sink := SinkStderr
	if cfg.Sink != nil {
		sink = Sink(*cfg.Sink)
	}
	format := FormatText
	if cfg.Format != nil {
		format = Format(*cfg.Format)
	}
	addSource := cfg.AddSource != nil && *cfg.AddSource

	writer, closeFn, err := resolveWriter(cfg, sink)
	if err != nil {
		return nil, nil, err
	}

	handlerOpts := &slog.HandlerOptions{Level: parseLevel(cfg.Level), AddSource: addSource}
	var handler slog.Handler
	switch format {
	case FormatJSON:
		handler = slog.NewJSONHandler(writer, handlerOpts)
	default:
		handler = slog.NewTextHandler(writer, handlerOpts)
	}

	logger := slog.New(handler).With(
		slog.String("app", opts.App),
		slog.String("version", opts.Version),
	)
	return logger, closeFn, nil
}

func parseLevel(value *string) slog.Leveler {
	if value == nil {
		return slog.LevelInfo
	}
	switch strings.ToLower(strings.TrimSpace(*value)) {
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

func resolveWriter(cfg Config, sink Sink) (io.Writer, func() error, error) {
	switch sink {
	case SinkNone:
		return io.Discard, func() error { return nil }, nil
	case SinkStderr:
		return os.Stderr, func() error { return nil }, nil
	case SinkFile:
		path := ""
		if cfg.File != nil {
			path = strings.TrimSpace(*cfg.File)
		}
		if path == "" {
			dir, err := os.UserCacheDir()
			if err != nil {
				return nil, nil, err
			}
			path = filepath.Join(dir, "marquee", "marquee.log")
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return nil, nil, err
		}
		rot := &lumberjack.Logger{
			Filename:   path,
			MaxSize:    derefInt(cfg.MaxSizeMB, 20),
			MaxBackups: derefInt(cfg.MaxBackups, 5),
			MaxAge:     derefInt(cfg.MaxAgeDays, 7),
		}
		return rot, rot.Close, nil
	default:
		return nil, nil, fmt.Errorf("logging: unknown sink %q", sink)
	}
}

func derefInt(v *int, fallback int) int {
	if v == nil {
		return fallback
	}
	return *v
}
