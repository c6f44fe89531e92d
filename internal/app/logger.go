package app

import (
	"io"
	"log/slog"
	"strings"

	"github.com/heartmarshall/bizops-backend/internal/config"
)

// NewLogger builds the process logger and installs it as slog's default.
// Every record carries the component (server, opsctl) and build version so
// lines from the API and the operator CLI can be told apart in one stream.
// Format "json" selects the JSON handler, anything else the text handler.
// Source locations are added at debug level only.
func NewLogger(cfg config.LogConfig, w io.Writer, component string) *slog.Logger {
	level := parseLevel(cfg.Level)
	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level <= slog.LevelDebug,
	}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	logger := slog.New(handler).With(
		slog.String("component", component),
		slog.String("version", Version),
	)
	slog.SetDefault(logger)
	return logger
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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
