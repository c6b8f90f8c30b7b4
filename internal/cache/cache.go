// Package cache memoizes computation results in a bounded LRU keyed by the
// request that produced them.
package cache

import (
	"fmt"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Key identifies a computation: the mode, the numeric backend, the seed and
// the mode argument (position, target or count).
type Key struct {
	Mode     string
	Numeric  string
	Seed     string
	Argument string
}

// String renders the key as "mode/numeric/seed/argument".
func (k Key) String() string {
	return fmt.Sprintf("%s/%s/%s/%s", k.Mode, k.Numeric, k.Seed, k.Argument)
}

// Stats reports cache activity.
type Stats struct {
	Size   int
	Hits   uint64
	Misses uint64
}

// HitRate returns the fraction of lookups that were hits.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// Cache is a concurrency-safe LRU of results. A Cache built with a
// non-positive size is disabled: Get always misses and Add does nothing.
type Cache[V any] struct {
	lru    *lru.Cache[Key, V]
	hits   atomic.Uint64
	misses atomic.Uint64
}

// New returns a cache holding at most size entries.
func New[V any](size int) (*Cache[V], error) {
	c := &Cache[V]{}
	if size <= 0 {
		return c, nil
	}
	l, err := lru.New[Key, V](size)
	if err != nil {
		return nil, fmt.Errorf("creating result cache: %w", err)
	}
	c.lru = l
	return c, nil
}

// Enabled reports whether the cache stores anything.
func (c *Cache[V]) Enabled() bool { return c.lru != nil }

// Get returns the value stored under k.
func (c *Cache[V]) Get(k Key) (V, bool) {
	if c.lru == nil {
		c.misses.Add(1)
		var zero V
		return zero, false
	}
	v, ok := c.lru.Get(k)
	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return v, ok
}

// Add stores v under k and reports whether an older entry was evicted.
func (c *Cache[V]) Add(k Key, v V) bool {
	if c.lru == nil {
		return false
	}
	return c.lru.Add(k, v)
}

// Purge removes every entry. The counters are kept.
func (c *Cache[V]) Purge() {
	if c.lru != nil {
		c.lru.Purge()
	}
}

// Stats returns the current size and counters.
func (c *Cache[V]) Stats() Stats {
	s := Stats{Hits: c.hits.Load(), Misses: c.misses.Load()}
	if c.lru != nil {
		s.Size = c.lru.Len()
	}
	return s
}
