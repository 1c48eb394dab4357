// Package logging builds the process logger.
package logging

import (
	"io"
	"log/slog"
)

// New returns a text logger on w that drops records below level.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
