// Package scrub coalesces bursty scrub requests so at most one render is in
// flight and the most recently requested time is always the one that lands.
package scrub

import "sync"

// RenderFunc performs one scrub render. Implementations must call Finish with
// the same generation when the render completes, on whatever goroutine
// finished the work.
type RenderFunc func(at float64, generation uint64)

// Controller serializes scrub renders with latest-wins coalescing. Stale
// results, superseded before completion, are detected by generation and
// dropped by the caller; the controller guarantees ordering and the in-flight
// bound.
type Controller struct {
	mu          sync.Mutex
	render      RenderFunc
	pendingTime float64
	hasPending  bool
	isRendering bool
	generation  uint64
}

// NewController builds a controller around the given render function.
func NewController(render RenderFunc) *Controller {
	return &Controller{render: render}
}

// Scrub requests a render at the given time. If a render is already in
// flight the request replaces any queued one; otherwise it dispatches
// immediately.
func (c *Controller) Scrub(at float64) {
	c.mu.Lock()
	c.generation++
	c.pendingTime = at
	c.hasPending = true
	if c.isRendering {
		c.mu.Unlock()
		return
	}
	at, generation := c.takePendingLocked()
	c.mu.Unlock()

	c.render(at, generation)
}

// Finish reports completion of the render dispatched with the given
// generation. It returns true when the result is still current and should be
// delivered. If a newer scrub arrived meanwhile, the next render dispatches
// before Finish returns.
func (c *Controller) Finish(generation uint64) bool {
	c.mu.Lock()
	current := generation == c.generation
	c.isRendering = false
	if !c.hasPending {
		c.mu.Unlock()
		return current
	}
	at, nextGeneration := c.takePendingLocked()
	c.mu.Unlock()

	c.render(at, nextGeneration)
	return current
}

// Cancel invalidates any in-flight render and clears the queued request.
func (c *Controller) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation++
	c.hasPending = false
}

// Generation returns the current generation counter, compared by callers at
// side-effecting checkpoints.
func (c *Controller) Generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation
}

func (c *Controller) takePendingLocked() (float64, uint64) {
	at := c.pendingTime
	c.hasPending = false
	c.isRendering = true
	return at, c.generation
}
