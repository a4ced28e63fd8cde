// Package querycache coordinates reads and writes against the REST API: keyed
// entries with per-query staleness, coalescing of concurrent fetches, polling,
// and mutation effects applied only when a mutation succeeds.
package querycache

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

// Policy is declared per query. A zero StaleTime means every read re-fetches.
// PollInterval only matters to Watch.
type Policy struct {
	StaleTime    time.Duration
	PollInterval time.Duration
}

type entry struct {
	key         Key
	value       any
	fetchedAt   time.Time
	invalidated bool
}

// flight is a fetch in progress. It may store its result only while it is still
// the registered flight for its key and the cache has not been cleared since it
// started.
type flight struct {
	key   Key
	epoch uint64
}

// Cache is safe for concurrent use.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]*entry
	pending map[string]*flight
	epoch   uint64
	group   singleflight.Group
	now     func() time.Time
	log     zerolog.Logger
}

type Option func(*Cache)

func WithNowTime(now func() time.Time) Option {
	return func(c *Cache) {
		c.now = now
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(c *Cache) {
		c.log = l
	}
}

func New(opts ...Option) *Cache {
	c := &Cache{
		entries: make(map[string]*entry),
		pending: make(map[string]*flight),
		now:     time.Now,
		log:     log.Logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetData writes value under key as freshly fetched. A fetch already in flight
// for the key will not overwrite it.
func (c *Cache) SetData(key Key, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setLocked(key, value)
}

// Invalidate marks every entry under prefix stale and detaches in-flight fetches
// under it, so the next read goes to the network. It returns the number of
// entries marked.
func (c *Cache) Invalidate(prefix Key) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.invalidateLocked(prefix)
}

// Remove drops every entry under prefix.
func (c *Cache) Remove(prefix Key) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for id, e := range c.entries {
		if e.key.HasPrefix(prefix) {
			delete(c.entries, id)
			n++
		}
	}
	c.detachLocked(prefix)
	return n
}

// Clear drops every entry. Fetches started before the call never store their
// results.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for id := range c.pending {
		c.group.Forget(id)
	}
	c.entries = make(map[string]*entry)
	c.pending = make(map[string]*flight)
	c.epoch++
	c.log.Debug().Uint64("epoch", c.epoch).Msg("cache cleared")
}

// Apply performs an effect atomically: clear, then invalidations, then direct
// updates, so a value written by the effect is never marked stale by it.
func (c *Cache) Apply(e Effect) {
	if e.ClearAll {
		c.Clear()
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, prefix := range e.Invalidates {
		c.invalidateLocked(prefix)
	}
	for _, u := range e.Updates {
		c.setLocked(u.Key, u.Value)
	}
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Fresh reports whether a read of key under policy would be served from memory.
func (c *Cache) Fresh(key Key, policy Policy) bool {
	_, ok := c.lookup(key, policy)
	return ok
}

func (c *Cache) lookup(key Key, policy Policy) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key.id()]
	if !ok || e.invalidated {
		return nil, false
	}
	if c.now().Sub(e.fetchedAt) >= policy.StaleTime {
		return nil, false
	}
	return e.value, true
}

func (c *Cache) begin(key Key) *flight {
	c.mu.Lock()
	defer c.mu.Unlock()
	f := &flight{key: key, epoch: c.epoch}
	c.pending[key.id()] = f
	return f
}

func (c *Cache) finish(f *flight, value any, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := f.key.id()
	current := c.pending[id] == f && c.epoch == f.epoch
	if current {
		delete(c.pending, id)
	}
	if err != nil {
		return
	}
	if !current {
		c.log.Debug().Stringer("key", f.key).Msg("discarding superseded fetch")
		return
	}
	c.entries[id] = &entry{key: f.key, value: value, fetchedAt: c.now()}
}

func (c *Cache) setLocked(key Key, value any) {
	c.detachLocked(key)
	c.entries[key.id()] = &entry{key: key, value: value, fetchedAt: c.now()}
}

func (c *Cache) invalidateLocked(prefix Key) int {
	n := 0
	for _, e := range c.entries {
		if e.key.HasPrefix(prefix) && !e.invalidated {
			e.invalidated = true
			n++
		}
	}
	c.detachLocked(prefix)
	return n
}

func (c *Cache) detachLocked(prefix Key) {
	for id, f := range c.pending {
		if f.key.HasPrefix(prefix) {
			delete(c.pending, id)
			c.group.Forget(id)
		}
	}
}
