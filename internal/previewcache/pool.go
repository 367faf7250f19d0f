package previewcache

import "sync"

// TargetPool recycles render targets by capacity class (width x height).
// Acquire prefers a pooled target of the right class over allocating.
type TargetPool struct {
	mu      sync.Mutex
	classes map[[2]int][]RenderTarget
	alloc   func(width, height int) RenderTarget

	reused    uint64
	allocated uint64
}

// NewTargetPool builds a pool around the given allocator.
func NewTargetPool(alloc func(width, height int) RenderTarget) *TargetPool {
	return &TargetPool{
		classes: make(map[[2]int][]RenderTarget),
		alloc:   alloc,
	}
}

// Acquire returns a target of the requested size, recycled when possible.
func (p *TargetPool) Acquire(width, height int) RenderTarget {
	key := [2]int{width, height}

	p.mu.Lock()
	if targets := p.classes[key]; len(targets) > 0 {
		target := targets[len(targets)-1]
		p.classes[key] = targets[:len(targets)-1]
		p.reused++
		p.mu.Unlock()
		return target
	}
	p.allocated++
	p.mu.Unlock()

	return p.alloc(width, height)
}

// Release returns a target to its capacity class. Nil targets are ignored.
func (p *TargetPool) Release(target RenderTarget) {
	if target == nil {
		return
	}
	width, height := target.Size()
	key := [2]int{width, height}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.classes[key] = append(p.classes[key], target)
}

// ReleaseAll returns every target in the slice to the pool.
func (p *TargetPool) ReleaseAll(targets []RenderTarget) {
	for _, target := range targets {
		p.Release(target)
	}
}

// Counters reports how many acquisitions were served from the pool versus
// freshly allocated.
func (p *TargetPool) Counters() (reused, allocated uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.reused, p.allocated
}
