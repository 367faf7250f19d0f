// Package previewcache keeps rendered preview frames bounded in memory.
//
// The cache maps quantized integer time keys to opaque render targets with
// strict LRU eviction, interval invalidation ("dirty ranges"), and a
// recycling pool so evicted targets are reused instead of reallocated. The
// key/LRU/dirty-range bookkeeping is pure integer work, deliberately separate
// from the pool of reusable pixel buffers.
package previewcache
