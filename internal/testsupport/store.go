package testsupport

import (
	"context"
	"path/filepath"
	"testing"

	"kinescope/internal/config"
	"kinescope/internal/recording"
)

// MustOpenRecording opens a recording.Store in the config's recordings
// directory and registers cleanup.
func MustOpenRecording(t testing.TB, cfg *config.Config) *recording.Store {
	t.Helper()

	store, err := recording.Open(filepath.Join(cfg.Paths.RecordingsDir, "test.db"))
	if err != nil {
		t.Fatalf("recording.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// SeedSession writes standard session metadata for tests: 1920x1080 at 60 fps.
func SeedSession(t testing.TB, store *recording.Store, duration float64) {
	t.Helper()

	err := store.SetSession(context.Background(), recording.Session{
		Title:     "test recording",
		Width:     1920,
		Height:    1080,
		NativeFPS: 60,
		Duration:  duration,
	})
	if err != nil {
		t.Fatalf("store.SetSession: %v", err)
	}
}

// SeedMouseLine inserts samples tracing a straight line from (x0,y0) to
// (x1,y1) in capture pixels over [start, end] at the given sample rate.
func SeedMouseLine(t testing.TB, store *recording.Store, start, end float64, x0, y0, x1, y1 float64, rate int) {
	t.Helper()

	if rate <= 0 || end <= start {
		t.Fatalf("bad mouse line: rate=%d start=%v end=%v", rate, start, end)
	}
	step := 1.0 / float64(rate)
	var samples []recording.MouseSample
	for at := start; at <= end+step/2; at += step {
		progress := (at - start) / (end - start)
		if progress > 1 {
			progress = 1
		}
		samples = append(samples, recording.MouseSample{
			Time: at,
			X:    x0 + (x1-x0)*progress,
			Y:    y0 + (y1-y0)*progress,
		})
	}
	if err := store.AddMouseSamples(context.Background(), samples); err != nil {
		t.Fatalf("store.AddMouseSamples: %v", err)
	}
}
