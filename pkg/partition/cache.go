package partition

import (
	"container/list"
	"sync"
)

// CanonicalCache is a bounded LRU cache of canonical membership forms,
// keyed by the raw labeling. Parallel resolution sweeps hit the same
// labelings repeatedly; the explicit cache keeps the eviction policy under
// our control instead of relying on unbounded memoization.
type CanonicalCache struct {
	maxSize int
	cache   map[string]*canonicalEntry
	lru     *list.List
	mu      sync.Mutex
	hits    uint64
	misses  uint64
}

type canonicalEntry struct {
	key     string
	value   Membership
	element *list.Element
}

// NewCanonicalCache creates an LRU cache holding at most maxSize entries.
func NewCanonicalCache(maxSize int) *CanonicalCache {
	if maxSize <= 0 {
		maxSize = 1
	}
	return &CanonicalCache{
		maxSize: maxSize,
		cache:   make(map[string]*canonicalEntry),
		lru:     list.New(),
	}
}

// Canonical returns the canonical form of m, computing and caching it on a
// miss.
func (cc *CanonicalCache) Canonical(m Membership) Membership {
	key := Key(m)

	cc.mu.Lock()
	defer cc.mu.Unlock()

	if entry, ok := cc.cache[key]; ok {
		cc.lru.MoveToFront(entry.element)
		cc.hits++
		return entry.value
	}
	cc.misses++

	value := Canonical(m)
	entry := &canonicalEntry{key: key, value: value}
	entry.element = cc.lru.PushFront(entry)
	cc.cache[key] = entry

	if cc.lru.Len() > cc.maxSize {
		oldest := cc.lru.Back()
		if oldest != nil {
			cc.lru.Remove(oldest)
			delete(cc.cache, oldest.Value.(*canonicalEntry).key)
		}
	}
	return value
}

// Len returns the current number of cached entries.
func (cc *CanonicalCache) Len() int {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.lru.Len()
}

// Stats returns cache hit and miss counts.
func (cc *CanonicalCache) Stats() (hits, misses uint64) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.hits, cc.misses
}
