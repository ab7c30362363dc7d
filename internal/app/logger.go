package app

import (
	"io"
	"log/slog"
)

// newLogger creates a logger writing to w. It does not touch the global
// logger, so every App is isolated. Unknown levels fall back to warn.
func newLogger(levelStr, formatStr string, w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "error":
		level = slog.LevelError
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if formatStr == "json" {
		handler = slog.NewJSONHandler(w, handlerOpts)
	} else {
		handler = slog.NewTextHandler(w, handlerOpts)
	}
	return slog.New(handler)
}
