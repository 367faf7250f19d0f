package logging

import (
	"io"
	"log/slog"
)

// NewConsoleHandlerForTest exposes the console handler with a fixed level.
func NewConsoleHandlerForTest(w io.Writer, level slog.Level) slog.Handler {
	lv := new(slog.LevelVar)
	lv.Set(level)
	return newConsoleHandler(w, lv, false)
}
