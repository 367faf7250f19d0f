package previewcache

import (
	"container/list"
	"sort"
	"sync"
)

// RenderTarget is whatever the compositor draws into; the cache never looks
// inside it.
type RenderTarget interface {
	// Size returns the pixel dimensions, which the pool uses as the
	// capacity class for recycling.
	Size() (width, height int)
}

// Stats is a snapshot of cache counters.
type Stats struct {
	Size             int
	MaxSize          int
	Hits             uint64
	Misses           uint64
	Evictions        uint64
	SuppressedStores uint64
	DirtyRanges      int
}

type entry struct {
	key    int64
	target RenderTarget
}

// keyRange is a closed interval of quantized keys known stale.
type keyRange struct {
	lo, hi int64
}

// Cache is a bounded LRU keyed by quantized time with interval invalidation.
// A single mutex guards the whole structure; playback and scrub workers share
// one instance.
type Cache struct {
	mu      sync.Mutex
	maxSize int

	order   *list.List // front = most recently used
	entries map[int64]*list.Element

	dirty []keyRange

	hits             uint64
	misses           uint64
	evictions        uint64
	suppressedStores uint64
}

// New builds a cache bounded to maxSize entries; maxSize below 1 is raised
// to 1.
func New(maxSize int) *Cache {
	if maxSize < 1 {
		maxSize = 1
	}
	return &Cache{
		maxSize: maxSize,
		order:   list.New(),
		entries: make(map[int64]*list.Element),
	}
}

// Lookup returns the cached target for the key and marks it most recently
// used. Keys inside a dirty range never hit.
func (c *Cache) Lookup(key int64) (RenderTarget, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.isDirtyLocked(key) {
		c.misses++
		return nil, false
	}
	el, ok := c.entries[key]
	if !ok {
		c.misses++
		return nil, false
	}
	c.order.MoveToFront(el)
	c.hits++
	return el.Value.(*entry).target, true
}

// IsCached reports whether the key would hit, without touching LRU order.
func (c *Cache) IsCached(key int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.isDirtyLocked(key) {
		return false
	}
	_, ok := c.entries[key]
	return ok
}

// Store inserts the target under the key and returns any displaced targets:
// the previous occupant of the key and/or the LRU eviction. Callers recycle
// the returned targets through the pool. This holds even when the store
// itself is suppressed by a dirty range, in which case the stored target is
// returned for recycling instead.
func (c *Cache) Store(key int64, target RenderTarget) (displaced []RenderTarget) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.isDirtyLocked(key) {
		// Serving this entry later would show stale visuals; drop it but
		// hand the buffer back.
		c.suppressedStores++
		return []RenderTarget{target}
	}

	if el, ok := c.entries[key]; ok {
		prev := el.Value.(*entry)
		displaced = append(displaced, prev.target)
		prev.target = target
		c.order.MoveToFront(el)
		return displaced
	}

	el := c.order.PushFront(&entry{key: key, target: target})
	c.entries[key] = el

	for c.order.Len() > c.maxSize {
		oldest := c.order.Back()
		if oldest == nil {
			break
		}
		victim := oldest.Value.(*entry)
		c.order.Remove(oldest)
		delete(c.entries, victim.key)
		displaced = append(displaced, victim.target)
		c.evictions++
	}
	return displaced
}

// Invalidate marks the closed key interval [lo, hi] dirty and removes any
// cached entries inside it, returning their targets for recycling. Until
// ClearDirtyRanges is called, lookups and stores in the interval are
// suppressed.
func (c *Cache) Invalidate(lo, hi int64) (displaced []RenderTarget) {
	if hi < lo {
		lo, hi = hi, lo
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.dirty = append(c.dirty, keyRange{lo: lo, hi: hi})
	c.mergeDirtyLocked()

	for key, el := range c.entries {
		if key >= lo && key <= hi {
			displaced = append(displaced, el.Value.(*entry).target)
			c.order.Remove(el)
			delete(c.entries, key)
		}
	}
	return displaced
}

// ClearDirtyRanges closes all dirty windows, typically once a re-render of
// the invalidated span has been scheduled.
func (c *Cache) ClearDirtyRanges() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dirty = nil
}

// Purge drops every entry, returning the targets for recycling.
func (c *Cache) Purge() (displaced []RenderTarget) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key, el := range c.entries {
		displaced = append(displaced, el.Value.(*entry).target)
		delete(c.entries, key)
	}
	c.order.Init()
	return displaced
}

// Stats returns a snapshot of the counters.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{
		Size:             c.order.Len(),
		MaxSize:          c.maxSize,
		Hits:             c.hits,
		Misses:           c.misses,
		Evictions:        c.evictions,
		SuppressedStores: c.suppressedStores,
		DirtyRanges:      len(c.dirty),
	}
}

// isDirtyLocked binary-searches the sorted, merged ranges.
func (c *Cache) isDirtyLocked(key int64) bool {
	i := sort.Search(len(c.dirty), func(i int) bool { return c.dirty[i].hi >= key })
	return i < len(c.dirty) && c.dirty[i].lo <= key
}

// mergeDirtyLocked sorts by lower bound and coalesces overlapping or touching
// intervals so lookup stays logarithmic.
func (c *Cache) mergeDirtyLocked() {
	if len(c.dirty) < 2 {
		return
	}
	sort.Slice(c.dirty, func(i, j int) bool { return c.dirty[i].lo < c.dirty[j].lo })
	merged := c.dirty[:1]
	for _, r := range c.dirty[1:] {
		last := &merged[len(merged)-1]
		if r.lo <= last.hi+1 {
			if r.hi > last.hi {
				last.hi = r.hi
			}
			continue
		}
		merged = append(merged, r)
	}
	c.dirty = merged
}
