// Package logging builds the process slog.Logger and an HTTP request logger.
package logging

import (
	"io"
	"log/slog"
)

// New returns a JSON logger at info level for production and a text logger
// at debug level for everything else.
func New(env string, w io.Writer) *slog.Logger {
	var handler slog.Handler
	if env == "production" {
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})
	} else {
		handler = slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	return slog.New(handler)
}
