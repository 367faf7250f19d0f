package render

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"kinescope/internal/evaluate"
	"kinescope/internal/logging"
	"kinescope/internal/previewcache"
	"kinescope/internal/scrub"
	"kinescope/internal/source"
)

// jobQueueSize bounds the worker channel. Producers are bounded (one playback
// render, one scrub render, seeks), so the queue cannot grow without limit.
const jobQueueSize = 64

// Result is one finished render handed to a delivery callback.
type Result struct {
	Time   float64
	State  evaluate.FrameState
	Target previewcache.RenderTarget
}

// DeliverFunc receives finished frames on the worker goroutine. The target is
// only valid for the duration of the call; consumers copy or upload before
// returning.
type DeliverFunc func(Result)

// Options configures a Coordinator.
type Options struct {
	Sequential       source.Sequential
	RandomAccess     source.RandomAccess
	Evaluator        *evaluate.Evaluator
	Compositor       Compositor
	CacheEntries     int
	QuantizationRate float64
	Logger           *slog.Logger
	// AllocTarget builds a fresh render target when the pool has none of the
	// right size. Defaults to NewImageTarget.
	AllocTarget func(width, height int) previewcache.RenderTarget
}

// Coordinator owns the render worker and routes playback and scrub requests
// through it.
type Coordinator struct {
	mu         sync.Mutex
	evaluator  *evaluate.Evaluator
	compositor Compositor
	generation uint64
	closed     bool

	scrubDeliver DeliverFunc

	reader    *source.CFRReader
	extractor source.RandomAccess
	scrubber  *scrub.Controller
	cache     *previewcache.Cache
	pool      *previewcache.TargetPool
	quantRate float64

	logger    *slog.Logger
	sessionID string

	ctx    context.Context
	cancel context.CancelFunc

	jobs       chan func()
	quit       chan struct{}
	workerDone chan struct{}
	closeOnce  sync.Once

	playbackBusy atomic.Bool
	delivered    atomic.Uint64
	droppedTicks atomic.Uint64
}

// Stats is a snapshot of coordinator counters.
type Stats struct {
	Delivered     uint64
	DroppedTicks  uint64
	Cache         previewcache.Stats
	PoolReused    uint64
	PoolAllocated uint64
}

// New builds and starts a coordinator. Close releases its worker and sources.
func New(opts Options) (*Coordinator, error) {
	if opts.Sequential == nil {
		return nil, errors.New("render: sequential source is required")
	}
	if opts.RandomAccess == nil {
		return nil, errors.New("render: random-access source is required")
	}
	if opts.Evaluator == nil {
		return nil, errors.New("render: evaluator is required")
	}
	if opts.Compositor == nil {
		return nil, errors.New("render: compositor is required")
	}
	if opts.CacheEntries <= 0 {
		return nil, errors.New("render: cache capacity must be positive")
	}
	if opts.QuantizationRate <= 0 {
		opts.QuantizationRate = previewcache.DefaultQuantizationRate
	}
	alloc := opts.AllocTarget
	if alloc == nil {
		alloc = func(width, height int) previewcache.RenderTarget {
			return NewImageTarget(width, height)
		}
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	sessionID := uuid.NewString()
	logger = logging.NewComponentLogger(logger, "render").With(
		logging.String(logging.FieldSessionID, sessionID))

	ctx, cancel := context.WithCancel(context.Background())
	c := &Coordinator{
		evaluator:  opts.Evaluator,
		compositor: opts.Compositor,
		reader:     source.NewCFRReader(opts.Sequential, logger),
		extractor:  opts.RandomAccess,
		cache:      previewcache.New(opts.CacheEntries),
		pool:       previewcache.NewTargetPool(alloc),
		quantRate:  opts.QuantizationRate,
		logger:     logger,
		sessionID:  sessionID,
		ctx:        ctx,
		cancel:     cancel,
		jobs:       make(chan func(), jobQueueSize),
		quit:       make(chan struct{}),
		workerDone: make(chan struct{}),
	}
	c.scrubber = scrub.NewController(c.dispatchScrub)

	go c.worker()
	logger.Debug("render coordinator started")
	return c, nil
}

// SessionID returns the correlation identifier stamped on this coordinator's logs.
func (c *Coordinator) SessionID() string {
	return c.sessionID
}

func (c *Coordinator) worker() {
	defer close(c.workerDone)
	for {
		select {
		case <-c.quit:
			return
		case job := <-c.jobs:
			job()
		}
	}
}

func (c *Coordinator) enqueue(job func()) bool {
	c.mu.Lock()
	closed := c.closed
	c.mu.Unlock()
	if closed {
		return false
	}
	select {
	case c.jobs <- job:
		return true
	default:
		c.logger.Warn("render queue full, dropping job")
		return false
	}
}

func (c *Coordinator) snapshot() (*evaluate.Evaluator, Compositor, uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.evaluator, c.compositor, c.generation
}

// RequestPlaybackFrame asks for the frame at the given playback time. If the
// worker is still rendering the previous tick the request is dropped: during
// playback the next tick supersedes a late frame.
func (c *Coordinator) RequestPlaybackFrame(at float64, deliver DeliverFunc) {
	if c.playbackBusy.Swap(true) {
		c.droppedTicks.Add(1)
		return
	}
	_, _, generation := c.snapshot()
	ok := c.enqueue(func() {
		defer c.playbackBusy.Store(false)
		c.runPlayback(at, generation, deliver)
	})
	if !ok {
		c.playbackBusy.Store(false)
	}
}

func (c *Coordinator) runPlayback(at float64, generation uint64, deliver DeliverFunc) {
	frame := c.reader.FrameAt(at)
	if frame == nil {
		return
	}

	evaluator, compositor, _ := c.snapshot()
	state := evaluator.Evaluate(at)

	bounds := frame.Image.Bounds()
	reuse := c.pool.Acquire(bounds.Dx(), bounds.Dy())
	target := compositor.Render(frame.Image, state, reuse)
	if target != reuse {
		// The compositor substituted its own target; the pooled one is free.
		c.pool.Release(reuse)
	}

	if _, _, current := c.snapshot(); current != generation {
		// A seek superseded this tick; the frame content is stale.
		c.pool.Release(target)
		return
	}

	if deliver != nil {
		deliver(Result{Time: at, State: state, Target: target})
	}
	c.delivered.Add(1)

	// Store unconditionally: even when a dirty range suppresses the insert,
	// Store hands back a target to recycle, so no buffer leaks.
	displaced := c.cache.Store(previewcache.Quantize(at, c.quantRate), target)
	c.pool.ReleaseAll(displaced)
}

// RequestScrubFrame asks for the frame at a paused-scrub position. Requests
// coalesce: while a render is in flight only the most recent time survives.
func (c *Coordinator) RequestScrubFrame(at float64, deliver DeliverFunc) {
	c.mu.Lock()
	c.scrubDeliver = deliver
	c.mu.Unlock()
	c.scrubber.Scrub(at)
}

func (c *Coordinator) dispatchScrub(at float64, scrubGeneration uint64) {
	ok := c.enqueue(func() {
		c.runScrub(at, scrubGeneration)
	})
	if !ok {
		c.scrubber.Finish(scrubGeneration)
	}
}

func (c *Coordinator) runScrub(at float64, scrubGeneration uint64) {
	key := previewcache.Quantize(at, c.quantRate)
	evaluator, compositor, generation := c.snapshot()

	if target, ok := c.cache.Lookup(key); ok {
		if c.scrubber.Finish(scrubGeneration) {
			c.deliverScrub(Result{Time: at, State: evaluator.Evaluate(at), Target: target})
		}
		return
	}

	img, err := c.extractor.ExtractFrame(c.ctx, at)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			c.logger.Warn("scrub extraction failed", logging.Args(
				logging.Float64(logging.FieldFrameTime, at),
				logging.Error(fmt.Errorf("%w: %w", source.ErrExtractionFailed, err)),
			)...)
		}
		c.scrubber.Finish(scrubGeneration)
		return
	}

	state := evaluator.Evaluate(at)
	bounds := img.Bounds()
	reuse := c.pool.Acquire(bounds.Dx(), bounds.Dy())
	target := compositor.Render(img, state, reuse)
	if target != reuse {
		c.pool.Release(reuse)
	}

	_, _, currentGeneration := c.snapshot()
	deliverable := c.scrubber.Finish(scrubGeneration) && currentGeneration == generation
	if deliverable {
		c.deliverScrub(Result{Time: at, State: state, Target: target})
	}

	displaced := c.cache.Store(key, target)
	c.pool.ReleaseAll(displaced)
}

func (c *Coordinator) deliverScrub(result Result) {
	c.mu.Lock()
	deliver := c.scrubDeliver
	c.mu.Unlock()
	if deliver != nil {
		deliver(result)
	}
	c.delivered.Add(1)
	c.logger.Debug("scrub frame delivered", logging.Args(
		logging.Float64(logging.FieldFrameTime, result.Time),
		logging.Int64(logging.FieldCacheKey, previewcache.Quantize(result.Time, c.quantRate)),
	)...)
}

// Seek invalidates in-flight work and repositions the sequential reader
// asynchronously. Repositioning errors surface through completion, which runs
// on the worker goroutine and may be nil.
func (c *Coordinator) Seek(to float64, completion func(error)) {
	c.mu.Lock()
	c.generation++
	c.mu.Unlock()

	c.scrubber.Cancel()
	c.extractor.CancelAll()

	ok := c.enqueue(func() {
		err := c.reader.Seek(to)
		if err != nil {
			c.logger.Error("seek failed", logging.Args(
				logging.Float64(logging.FieldFrameTime, to),
				logging.Error(err),
			)...)
		}
		if completion != nil {
			completion(err)
		}
	})
	if !ok && completion != nil {
		completion(errors.New("render: coordinator closed"))
	}
}

// InvalidateCache marks the time span [lo, hi] stale after a timeline edit.
// Affected cached frames are dropped and recycled; re-renders of the span stay
// suppressed until ClearDirtyRanges.
func (c *Coordinator) InvalidateCache(lo, hi float64) {
	displaced := c.cache.Invalidate(
		previewcache.Quantize(lo, c.quantRate),
		previewcache.Quantize(hi, c.quantRate),
	)
	c.pool.ReleaseAll(displaced)
}

// ClearDirtyRanges re-enables caching for previously invalidated spans, once
// a re-render of those spans has been scheduled.
func (c *Coordinator) ClearDirtyRanges() {
	c.cache.ClearDirtyRanges()
}

// UpdateEvaluator swaps the frame evaluator. In-flight renders keep the old
// one; the next request sees the new one.
func (c *Coordinator) UpdateEvaluator(evaluator *evaluate.Evaluator) {
	if evaluator == nil {
		return
	}
	c.mu.Lock()
	c.evaluator = evaluator
	c.mu.Unlock()
}

// UpdateCompositor swaps the compositor.
func (c *Coordinator) UpdateCompositor(compositor Compositor) {
	if compositor == nil {
		return
	}
	c.mu.Lock()
	c.compositor = compositor
	c.mu.Unlock()
}

// CacheStats returns preview cache counters.
func (c *Coordinator) CacheStats() previewcache.Stats {
	return c.cache.Stats()
}

// Stats returns a snapshot of render counters.
func (c *Coordinator) Stats() Stats {
	reused, allocated := c.pool.Counters()
	return Stats{
		Delivered:     c.delivered.Load(),
		DroppedTicks:  c.droppedTicks.Load(),
		Cache:         c.cache.Stats(),
		PoolReused:    reused,
		PoolAllocated: allocated,
	}
}

// Close stops the worker and releases the sources. It is safe to call more
// than once.
func (c *Coordinator) Close() {
	c.closeOnce.Do(func() {
		c.mu.Lock()
		c.closed = true
		c.mu.Unlock()

		c.cancel()
		c.scrubber.Cancel()
		close(c.quit)
		<-c.workerDone

		c.reader.Stop()
		c.extractor.CancelAll()
		c.logger.Debug("render coordinator stopped")
	})
}
