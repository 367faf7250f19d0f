package render_test

import (
	"context"
	"image"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"kinescope/internal/evaluate"
	"kinescope/internal/previewcache"
	"kinescope/internal/render"
	"kinescope/internal/source"
	"kinescope/internal/testsupport"
)

// countingExtractor wraps a RandomAccess source and counts extractions.
type countingExtractor struct {
	inner source.RandomAccess
	calls atomic.Int64
}

func (e *countingExtractor) ExtractFrame(ctx context.Context, at float64) (image.Image, error) {
	e.calls.Add(1)
	return e.inner.ExtractFrame(ctx, at)
}

func (e *countingExtractor) CancelAll() {
	e.inner.CancelAll()
}

// gatedCompositor blocks each render until released, so tests can hold the
// worker busy deterministically.
type gatedCompositor struct {
	inner   render.Compositor
	gate    chan struct{}
	renders atomic.Int64
}

func (c *gatedCompositor) Render(src image.Image, state evaluate.FrameState, reuse previewcache.RenderTarget) previewcache.RenderTarget {
	if c.gate != nil {
		<-c.gate
	}
	c.renders.Add(1)
	return c.inner.Render(src, state, reuse)
}

func newTestEvaluator(t *testing.T) *evaluate.Evaluator {
	t.Helper()
	tl := testsupport.LinearTimeline(t, 0, 10, testsupport.Target(1, 0.5, 0.5), testsupport.Target(2, 0.5, 0.5))
	return evaluate.New(tl, nil, nil, nil, evaluate.DefaultOptions())
}

func newCoordinator(t *testing.T, opts render.Options) *render.Coordinator {
	t.Helper()
	if opts.Sequential == nil {
		opts.Sequential = source.NewSynthetic(10, 30, 8, 8)
	}
	if opts.RandomAccess == nil {
		opts.RandomAccess = source.NewSynthetic(10, 30, 8, 8)
	}
	if opts.Evaluator == nil {
		opts.Evaluator = newTestEvaluator(t)
	}
	if opts.Compositor == nil {
		opts.Compositor = render.PassthroughCompositor{}
	}
	if opts.CacheEntries == 0 {
		opts.CacheEntries = 16
	}
	c, err := render.New(opts)
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}
	t.Cleanup(c.Close)
	return c
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func TestPlaybackDeliversFrames(t *testing.T) {
	c := newCoordinator(t, render.Options{})

	var (
		mu      sync.Mutex
		results []render.Result
	)
	deliver := func(r render.Result) {
		mu.Lock()
		results = append(results, r)
		mu.Unlock()
	}

	times := []float64{0, 1.0 / 60, 2.0 / 60}
	for _, at := range times {
		c.RequestPlaybackFrame(at, deliver)
		waitFor(t, "playback delivery", func() bool {
			mu.Lock()
			defer mu.Unlock()
			return len(results) > 0 && results[len(results)-1].Time == at
		})
	}

	mu.Lock()
	defer mu.Unlock()
	if len(results) != len(times) {
		t.Fatalf("expected %d deliveries, got %d", len(times), len(results))
	}
	for i, r := range results {
		if r.Time != times[i] {
			t.Fatalf("delivery %d stamped %v, want %v", i, r.Time, times[i])
		}
		if r.Target == nil {
			t.Fatalf("delivery %d has no target", i)
		}
	}
	if r := results[1]; r.State.Transform.Zoom <= 1 {
		t.Fatalf("expected zoom animation in state, got %+v", r.State.Transform)
	}
}

func TestPlaybackDropsTicksWhileBusy(t *testing.T) {
	comp := &gatedCompositor{inner: render.PassthroughCompositor{}, gate: make(chan struct{})}
	c := newCoordinator(t, render.Options{Compositor: comp})

	delivered := make(chan render.Result, 8)
	deliver := func(r render.Result) { delivered <- r }

	c.RequestPlaybackFrame(0, deliver)
	// The worker is parked inside the compositor; these ticks must drop.
	c.RequestPlaybackFrame(1.0/60, deliver)
	c.RequestPlaybackFrame(2.0/60, deliver)

	comp.gate <- struct{}{}
	<-delivered

	stats := c.Stats()
	if stats.DroppedTicks != 2 {
		t.Fatalf("expected 2 dropped ticks, got %d", stats.DroppedTicks)
	}
	if stats.Delivered != 1 {
		t.Fatalf("expected 1 delivery, got %d", stats.Delivered)
	}
}

func TestScrubHitsCacheOnRevisit(t *testing.T) {
	extractor := &countingExtractor{inner: source.NewSynthetic(10, 30, 8, 8)}
	c := newCoordinator(t, render.Options{RandomAccess: extractor})

	delivered := make(chan render.Result, 8)
	deliver := func(r render.Result) { delivered <- r }

	c.RequestScrubFrame(1.5, deliver)
	<-delivered
	if got := extractor.calls.Load(); got != 1 {
		t.Fatalf("expected 1 extraction, got %d", got)
	}

	c.RequestScrubFrame(1.5, deliver)
	<-delivered
	if got := extractor.calls.Load(); got != 1 {
		t.Fatalf("revisit should hit cache, extractions = %d", got)
	}

	stats := c.CacheStats()
	if stats.Hits != 1 || stats.Misses != 1 {
		t.Fatalf("unexpected cache stats: %+v", stats)
	}
}

func TestScrubCoalescesToLatest(t *testing.T) {
	comp := &gatedCompositor{inner: render.PassthroughCompositor{}, gate: make(chan struct{})}
	extractor := &countingExtractor{inner: source.NewSynthetic(10, 30, 8, 8)}
	c := newCoordinator(t, render.Options{Compositor: comp, RandomAccess: extractor})

	var (
		mu    sync.Mutex
		times []float64
	)
	deliver := func(r render.Result) {
		mu.Lock()
		times = append(times, r.Time)
		mu.Unlock()
	}

	c.RequestScrubFrame(1.0, deliver)
	waitFor(t, "first extraction", func() bool { return extractor.calls.Load() == 1 })
	// Burst while the first render is parked in the compositor.
	for _, at := range []float64{1.1, 1.2, 1.3, 1.4} {
		c.RequestScrubFrame(at, deliver)
	}
	comp.gate <- struct{}{} // finish 1.0 (stale, dropped)
	comp.gate <- struct{}{} // finish 1.4

	waitFor(t, "latest delivery", func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(times) == 1 && times[0] == 1.4
	})
	if got := extractor.calls.Load(); got != 2 {
		t.Fatalf("intermediate times should never render, extractions = %d", got)
	}
}

func TestSeekDropsInFlightPlayback(t *testing.T) {
	comp := &gatedCompositor{inner: render.PassthroughCompositor{}, gate: make(chan struct{})}
	c := newCoordinator(t, render.Options{Compositor: comp})

	delivered := make(chan render.Result, 8)
	c.RequestPlaybackFrame(0.5, func(r render.Result) { delivered <- r })

	seekDone := make(chan error, 1)
	c.Seek(5.0, func(err error) { seekDone <- err })

	comp.gate <- struct{}{}
	if err := <-seekDone; err != nil {
		t.Fatalf("seek failed: %v", err)
	}

	select {
	case r := <-delivered:
		t.Fatalf("stale playback frame delivered: %+v", r)
	case <-time.After(50 * time.Millisecond):
	}
	if got := c.Stats().Delivered; got != 0 {
		t.Fatalf("expected no deliveries, got %d", got)
	}
}

func TestInvalidateForcesReRender(t *testing.T) {
	extractor := &countingExtractor{inner: source.NewSynthetic(10, 30, 8, 8)}
	c := newCoordinator(t, render.Options{RandomAccess: extractor})

	delivered := make(chan render.Result, 8)
	deliver := func(r render.Result) { delivered <- r }

	c.RequestScrubFrame(2.0, deliver)
	<-delivered

	c.InvalidateCache(1.5, 2.5)
	c.ClearDirtyRanges()

	c.RequestScrubFrame(2.0, deliver)
	<-delivered
	if got := extractor.calls.Load(); got != 2 {
		t.Fatalf("invalidated key should re-extract, extractions = %d", got)
	}
}

func TestPlaybackRecyclesDisplacedTargets(t *testing.T) {
	c := newCoordinator(t, render.Options{CacheEntries: 2})

	delivered := make(chan render.Result, 16)
	deliver := func(r render.Result) { delivered <- r }

	// 6 distinct keys through a 2-entry cache: 4 evictions recycle targets,
	// so later renders reuse pooled buffers instead of allocating.
	for i := 0; i < 6; i++ {
		c.RequestPlaybackFrame(float64(i)*0.5, deliver)
		<-delivered
	}

	stats := c.Stats()
	if stats.PoolReused == 0 {
		t.Fatalf("expected pooled targets to be reused: %+v", stats)
	}
	if stats.PoolAllocated > 3 {
		t.Fatalf("allocations should be bounded by live targets, got %d", stats.PoolAllocated)
	}
}

// allocatingCompositor ignores the reuse target and always returns a fresh
// one, the way a compositor does on a type or size mismatch.
type allocatingCompositor struct{}

func (allocatingCompositor) Render(src image.Image, _ evaluate.FrameState, _ previewcache.RenderTarget) previewcache.RenderTarget {
	b := src.Bounds()
	return &render.ImageTarget{Img: image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))}
}

func TestPlaybackReleasesUnusedPoolTarget(t *testing.T) {
	c := newCoordinator(t, render.Options{Compositor: allocatingCompositor{}})

	deliver := func(render.Result) {}
	for i := 0; i < 4; i++ {
		at := float64(i) * 0.5
		want := uint64(i + 1)
		// Re-request on dropped ticks so each time eventually renders.
		waitFor(t, "playback delivery", func() bool {
			if c.Stats().Delivered >= want {
				return true
			}
			c.RequestPlaybackFrame(at, deliver)
			return false
		})
	}

	// The compositor never uses the pooled buffer, so the same one must cycle
	// through every render instead of leaking on each tick.
	stats := c.Stats()
	if stats.PoolAllocated != 1 {
		t.Fatalf("expected a single pool allocation, got %d", stats.PoolAllocated)
	}
	if stats.PoolReused < 3 {
		t.Fatalf("expected the pooled buffer to cycle, reused = %d", stats.PoolReused)
	}
}

func TestUpdateEvaluatorTakesEffect(t *testing.T) {
	c := newCoordinator(t, render.Options{})

	delivered := make(chan render.Result, 4)
	deliver := func(r render.Result) { delivered <- r }

	c.RequestScrubFrame(5.0, deliver)
	first := <-delivered

	flat := testsupport.LinearTimeline(t, 0, 10, testsupport.Target(1, 0.5, 0.5), testsupport.Target(1, 0.5, 0.5))
	c.UpdateEvaluator(evaluate.New(flat, nil, nil, nil, evaluate.DefaultOptions()))
	c.InvalidateCache(0, 10)
	c.ClearDirtyRanges()

	c.RequestScrubFrame(5.0, deliver)
	second := <-delivered

	if first.State.Transform.Zoom <= 1 {
		t.Fatalf("expected animated zoom before swap, got %+v", first.State.Transform)
	}
	if second.State.Transform.Zoom != 1 {
		t.Fatalf("expected identity zoom after swap, got %+v", second.State.Transform)
	}
}
