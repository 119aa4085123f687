package logger

import (
	"io"
	"log/slog"
	"os"
)

// New returns the process logger: JSON in production, text in development.
func New(development bool) *slog.Logger {
	return newLogger(os.Stdout, development)
}

func newLogger(w io.Writer, development bool) *slog.Logger {
	if development {
		return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))
}
