package recording_test

import (
	"context"
	"testing"

	"kinescope/internal/recording"
	"kinescope/internal/testsupport"
)

func TestOpenCreatesSchema(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenRecording(t, cfg)

	ctx := context.Background()
	counts, err := store.Counts(ctx)
	if err != nil {
		t.Fatalf("Counts failed: %v", err)
	}
	if counts.MouseSamples != 0 || counts.Clicks != 0 || counts.Keys != 0 {
		t.Fatalf("expected empty recording, got %+v", counts)
	}

	session, err := store.Session(ctx)
	if err != nil {
		t.Fatalf("Session failed: %v", err)
	}
	if session != nil {
		t.Fatalf("expected no session row, got %+v", session)
	}
}

func TestSessionRoundTrip(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenRecording(t, cfg)

	ctx := context.Background()
	want := recording.Session{
		Title:     "demo",
		Width:     2560,
		Height:    1440,
		NativeFPS: 30,
		Duration:  12.5,
	}
	if err := store.SetSession(ctx, want); err != nil {
		t.Fatalf("SetSession failed: %v", err)
	}

	got, err := store.Session(ctx)
	if err != nil {
		t.Fatalf("Session failed: %v", err)
	}
	if got == nil {
		t.Fatal("expected session row")
	}
	if got.Title != want.Title || got.Width != want.Width || got.Height != want.Height {
		t.Fatalf("unexpected session: %+v", got)
	}
	if got.CreatedAt == "" {
		t.Fatal("expected created_at to be stamped")
	}

	// A second write replaces the row rather than adding one.
	want.Duration = 20
	if err := store.SetSession(ctx, want); err != nil {
		t.Fatalf("SetSession replace failed: %v", err)
	}
	got, err = store.Session(ctx)
	if err != nil {
		t.Fatalf("Session after replace failed: %v", err)
	}
	if got.Duration != 20 {
		t.Fatalf("expected replaced duration, got %v", got.Duration)
	}
}

func TestEventBatchesRoundTrip(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenRecording(t, cfg)

	ctx := context.Background()
	samples := []recording.MouseSample{
		{Time: 0.2, X: 20, Y: 30},
		{Time: 0.0, X: 10, Y: 10},
		{Time: 0.1, X: 15, Y: 20},
	}
	if err := store.AddMouseSamples(ctx, samples); err != nil {
		t.Fatalf("AddMouseSamples failed: %v", err)
	}
	clicks := []recording.Click{{Time: 1.0, Duration: 0.1, Button: 0}}
	if err := store.AddClicks(ctx, clicks); err != nil {
		t.Fatalf("AddClicks failed: %v", err)
	}
	keys := []recording.Key{
		{Time: 2.0, Key: "s", Modifiers: []string{"cmd"}},
		{Time: 2.3, Key: "space"},
	}
	if err := store.AddKeys(ctx, keys); err != nil {
		t.Fatalf("AddKeys failed: %v", err)
	}

	gotSamples, err := store.MouseSamples(ctx)
	if err != nil {
		t.Fatalf("MouseSamples failed: %v", err)
	}
	if len(gotSamples) != 3 {
		t.Fatalf("expected 3 samples, got %d", len(gotSamples))
	}
	for i := 1; i < len(gotSamples); i++ {
		if gotSamples[i].Time < gotSamples[i-1].Time {
			t.Fatalf("samples not ordered by time: %+v", gotSamples)
		}
	}

	gotKeys, err := store.Keys(ctx)
	if err != nil {
		t.Fatalf("Keys failed: %v", err)
	}
	if len(gotKeys) != 2 {
		t.Fatalf("expected 2 keys, got %d", len(gotKeys))
	}
	if len(gotKeys[0].Modifiers) != 1 || gotKeys[0].Modifiers[0] != "cmd" {
		t.Fatalf("modifiers did not survive round trip: %+v", gotKeys[0])
	}
	if gotKeys[1].Modifiers != nil && len(gotKeys[1].Modifiers) != 0 {
		t.Fatalf("expected no modifiers, got %+v", gotKeys[1])
	}

	counts, err := store.Counts(ctx)
	if err != nil {
		t.Fatalf("Counts failed: %v", err)
	}
	if counts.MouseSamples != 3 || counts.Clicks != 1 || counts.Keys != 2 {
		t.Fatalf("unexpected counts: %+v", counts)
	}
}

func TestReopenKeepsData(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenRecording(t, cfg)

	ctx := context.Background()
	if err := store.AddClicks(ctx, []recording.Click{{Time: 0.5, Duration: 0.05, Button: 1}}); err != nil {
		t.Fatalf("AddClicks failed: %v", err)
	}
	path := store.Path()
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened, err := recording.Open(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer reopened.Close()

	clicks, err := reopened.Clicks(ctx)
	if err != nil {
		t.Fatalf("Clicks failed: %v", err)
	}
	if len(clicks) != 1 || clicks[0].Button != 1 {
		t.Fatalf("unexpected clicks after reopen: %+v", clicks)
	}
}
