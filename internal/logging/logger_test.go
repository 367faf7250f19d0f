package logging_test

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"kinescope/internal/logging"
)

func TestConsoleHandlerOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(logging.NewConsoleHandlerForTest(&buf, slog.LevelDebug))
	logger = logging.NewComponentLogger(logger, "render")

	logger.Info("frame rendered", logging.Args(
		logging.Float64(logging.FieldFrameTime, 0.5),
		logging.String("session", "abc"),
	)...)

	line := buf.String()
	if !strings.Contains(line, " INFO render: frame rendered") {
		t.Fatalf("unexpected log line: %q", line)
	}
	if !strings.Contains(line, "frame_time=0.5") {
		t.Fatalf("missing frame time attribute: %q", line)
	}
	if !strings.Contains(line, "session=abc") {
		t.Fatalf("missing session attribute: %q", line)
	}
}

func TestConsoleHandlerQuotesValues(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(logging.NewConsoleHandlerForTest(&buf, slog.LevelDebug))

	logger.Warn("cache miss", logging.String("reason", "dirty range"))

	if got := buf.String(); !strings.Contains(got, `reason="dirty range"`) {
		t.Fatalf("value with spaces should be quoted: %q", got)
	}
}

func TestConsoleHandlerLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(logging.NewConsoleHandlerForTest(&buf, slog.LevelWarn))

	logger.Debug("suppressed")
	logger.Info("also suppressed")
	logger.Error("kept")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 || !strings.Contains(lines[0], "ERROR") {
		t.Fatalf("expected a single error line, got %q", buf.String())
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected an error for unsupported format")
	}
}

func TestNewNopDiscards(t *testing.T) {
	logger := logging.NewNop()
	logger.Error("dropped")
	if logger.Enabled(context.Background(), slog.LevelError) {
		t.Fatal("nop logger should report disabled")
	}
}
