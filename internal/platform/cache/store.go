package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"
)

var ErrNilLoader = errors.New("cache: nil loader")

// Loader fills a missing key. Returned errors are never stored.
type Loader[V any] func(ctx context.Context) (V, error)

// Stats is a snapshot of store counters.
type Stats struct {
	Hits      uint64
	Misses    uint64
	Loads     uint64
	Evictions uint64
	Size      int
}

type slot[V any] struct {
	value    V
	deadline time.Time
}

func (s slot[V]) expired(now time.Time) bool {
	return !s.deadline.IsZero() && !now.Before(s.deadline)
}

// Store is a typed in-process TTL cache. Misses on the same key collapse into one load.
type Store[V any] struct {
	mu    sync.RWMutex
	slots map[string]slot[V]
	ttl   time.Duration
	clock func() time.Time
	group singleflight.Group
	// gen moves on every Delete or Clear; loads that straddle a bump are not stored.
	gen uint64

	hits, misses, loads, evictions atomic.Uint64
}

// NewStore builds a store. A non-positive ttl means entries live until removed.
func NewStore[V any](ttl time.Duration) *Store[V] {
	return &Store[V]{
		slots: map[string]slot[V]{},
		ttl:   ttl,
		clock: time.Now,
	}
}

func (s *Store[V]) Get(_ context.Context, key string) (V, bool) {
	var zero V
	if key == "" {
		return zero, false
	}

	s.mu.RLock()
	sl, ok := s.slots[key]
	s.mu.RUnlock()

	switch {
	case !ok:
		s.misses.Add(1)
		return zero, false
	case sl.expired(s.clock()):
		s.evict(key, sl.deadline)
		s.misses.Add(1)
		return zero, false
	}
	s.hits.Add(1)
	return sl.value, true
}

func (s *Store[V]) Set(_ context.Context, key string, value V) {
	if key == "" {
		return
	}
	sl := s.newSlot(value)

	s.mu.Lock()
	s.slots[key] = sl
	s.mu.Unlock()
}

func (s *Store[V]) newSlot(value V) slot[V] {
	sl := slot[V]{value: value}
	if s.ttl > 0 {
		sl.deadline = s.clock().Add(s.ttl)
	}
	return sl
}

// setAt stores value unless the store was invalidated after gen was read.
func (s *Store[V]) setAt(key string, value V, gen uint64) bool {
	sl := s.newSlot(value)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		return false
	}
	s.slots[key] = sl
	return true
}

func (s *Store[V]) generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.gen
}

// Delete removes keys. Callers arriving after it start a fresh load instead of joining one in flight.
func (s *Store[V]) Delete(_ context.Context, keys ...string) {
	s.mu.Lock()
	s.gen++
	for _, key := range keys {
		delete(s.slots, key)
	}
	s.mu.Unlock()

	for _, key := range keys {
		s.group.Forget(key)
	}
}

func (s *Store[V]) Clear() {
	s.mu.Lock()
	s.gen++
	clear(s.slots)
	s.mu.Unlock()
}

func (s *Store[V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.slots)
}

func (s *Store[V]) Stats() Stats {
	return Stats{
		Hits:      s.hits.Load(),
		Misses:    s.misses.Load(),
		Loads:     s.loads.Load(),
		Evictions: s.evictions.Load(),
		Size:      s.Len(),
	}
}

// GetOrLoad serves key from the cache, or runs load once for all concurrent callers of the key.
// An empty key bypasses the cache.
func (s *Store[V]) GetOrLoad(ctx context.Context, key string, load Loader[V]) (V, error) {
	var zero V
	if load == nil {
		return zero, ErrNilLoader
	}
	if key == "" {
		return load(ctx)
	}
	if v, ok := s.Get(ctx, key); ok {
		return v, nil
	}

	shared, err, _ := s.group.Do(key, func() (any, error) {
		// another caller may have filled the slot between Get and Do
		s.mu.RLock()
		sl, ok := s.slots[key]
		s.mu.RUnlock()
		if ok && !sl.expired(s.clock()) {
			return sl.value, nil
		}

		gen := s.generation()
		s.loads.Add(1)
		v, err := load(ctx)
		if err != nil {
			return nil, err
		}
		s.setAt(key, v, gen)
		return v, nil
	})
	if err != nil {
		return zero, err
	}
	return shared.(V), nil
}

// evict drops key only if it still holds the slot that was seen expiring.
func (s *Store[V]) evict(key string, deadline time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cur, ok := s.slots[key]; ok && cur.deadline.Equal(deadline) {
		delete(s.slots, key)
		s.evictions.Add(1)
	}
}
