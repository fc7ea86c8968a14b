package cache

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"sync"
	"time"
)

// SelfPopulating wraps a Cache and fills misses through a Loader.
//
// For a given key the loader runs at most once at a time, and, unless the
// entry is removed or evicted, at most once ever. Loads for all keys are
// serialized by one exclusive section per instance, and the loader runs
// inside it: while a slow loader runs, every other Get on this instance
// waits, hits included. Running the loader outside the section would break
// the at-most-once guarantee.
type SelfPopulating[K comparable, V any] struct {
	c    *Cache[K, V]
	load Loader[K, V]

	// Read side: fast-path lookups. Write side: loads, Remove, Clear.
	mu sync.RWMutex
}

// NewSelfPopulating wraps c. It fails with ErrInvalidArgument if c or load is nil.
func NewSelfPopulating[K comparable, V any](c *Cache[K, V], load Loader[K, V]) (*SelfPopulating[K, V], error) {
	if c == nil {
		return nil, fmt.Errorf("%w: nil cache", ErrInvalidArgument)
	}
	if load == nil {
		return nil, fmt.Errorf("%w: cache %q: nil loader", ErrInvalidArgument, c.name)
	}
	return &SelfPopulating[K, V]{c: c, load: load}, nil
}

// Get returns the value for k, computing and storing it on a miss.
//
// A loader error is returned unchanged and nothing is cached; the next Get
// tries again. A nil result yields ErrInvariantViolation and nothing is
// cached. If storing the value evicts an entry and Options.OnEvict fails,
// the computed value is returned together with that error (the value is
// cached).
func (s *SelfPopulating[K, V]) Get(ctx context.Context, k K) (V, error) {
	// fast path
	s.mu.RLock()
	v, ok := s.c.Get(k)
	s.mu.RUnlock()
	if ok {
		return v, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// double-check: another goroutine may have loaded k while we waited
	if v, ok := s.c.lookup(k); ok {
		return v, nil
	}

	start := time.Now()
	v, err := s.load(ctx, k)
	d := time.Since(start)
	s.c.opt.Metrics.Load(d, err)
	if err != nil {
		s.c.log.Debug("load failed", slog.Any("key", k), slog.Duration("took", d), slog.Any("error", err))
		var zero V
		return zero, err
	}
	if isNil(v) {
		var zero V
		return zero, fmt.Errorf("%w: cache %q: loader returned nil for key %v", ErrInvariantViolation, s.c.name, k)
	}
	s.c.log.Debug("loaded value", slog.Any("key", k), slog.Duration("took", d))

	s.c.mu.Lock()
	defer s.c.mu.Unlock()
	return v, s.c.putLocked(k, v)
}

// Peek is a counted lookup that never loads.
func (s *SelfPopulating[K, V]) Peek(k K) (V, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.c.Get(k)
}

// Remove deletes k so that the next Get reloads it.
func (s *SelfPopulating[K, V]) Remove(k K) Change {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.c.Remove(k)
}

// Clear drops every entry so that subsequent Gets reload.
func (s *SelfPopulating[K, V]) Clear() Change {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.c.Clear()
}

// Name returns the wrapped cache's name.
func (s *SelfPopulating[K, V]) Name() string { return s.c.Name() }

// Len returns the number of resident entries.
func (s *SelfPopulating[K, V]) Len() int { return s.c.Len() }

// Stats returns the wrapped cache's statistics.
func (s *SelfPopulating[K, V]) Stats() Stats { return s.c.Stats() }

// Cache returns the wrapped cache. Writing to it directly bypasses the
// exclusive section.
func (s *SelfPopulating[K, V]) Cache() *Cache[K, V] { return s.c }

// isNil reports whether v holds no value: a nil interface, pointer, map,
// slice, func or channel.
func isNil[V any](v V) bool {
	rv := reflect.ValueOf(any(v))
	if !rv.IsValid() {
		return true
	}
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface, reflect.UnsafePointer:
		return rv.IsNil()
	default:
		return false
	}
}
