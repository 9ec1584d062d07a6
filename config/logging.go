package config

import (
	"io"
	"log/slog"
)

// InitLogger installs the process-wide slog default per the LogConfig.
// Callers choose the destination: the server logs to stdout, the CLIs
// pass stderr so result and status output keep stdout to themselves.
func InitLogger(cfg LogConfig, w io.Writer) {
	slog.SetDefault(slog.New(newHandler(cfg, w)))
}

func newHandler(cfg LogConfig, w io.Writer) slog.Handler {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "json" {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}
