package cache

import "github.com/IvanBrykalov/popcache/boundedmap"

// store is the map behind a Cache. get may reorder entries, so the
// caller must hold the write lock when mutatesOnGet reports true.
type store[K comparable, V any] interface {
	get(k K) (V, bool)
	put(k K, v V) error
	remove(k K) bool
	clear() int
	contains(k K) bool
	len() int
	capacity() int
	mutatesOnGet() bool
}

// plainStore is the unbounded variant.
type plainStore[K comparable, V any] map[K]V

func (s plainStore[K, V]) get(k K) (V, bool) {
	v, ok := s[k]
	return v, ok
}

func (s plainStore[K, V]) put(k K, v V) error {
	s[k] = v
	return nil
}

func (s plainStore[K, V]) remove(k K) bool {
	if _, ok := s[k]; !ok {
		return false
	}
	delete(s, k)
	return true
}

func (s plainStore[K, V]) clear() int {
	n := len(s)
	clear(s)
	return n
}

func (s plainStore[K, V]) contains(k K) bool {
	_, ok := s[k]
	return ok
}

func (s plainStore[K, V]) len() int           { return len(s) }
func (s plainStore[K, V]) capacity() int      { return 0 }
func (s plainStore[K, V]) mutatesOnGet() bool { return false }

// boundedStore adapts boundedmap.Map.
type boundedStore[K comparable, V any] struct {
	m *boundedmap.Map[K, V]
}

func (s boundedStore[K, V]) get(k K) (V, bool)  { return s.m.Get(k) }
func (s boundedStore[K, V]) put(k K, v V) error { return s.m.Put(k, v) }
func (s boundedStore[K, V]) remove(k K) bool    { return s.m.Remove(k) }
func (s boundedStore[K, V]) clear() int         { return s.m.Clear() }
func (s boundedStore[K, V]) contains(k K) bool  { return s.m.Contains(k) }
func (s boundedStore[K, V]) len() int           { return s.m.Len() }
func (s boundedStore[K, V]) capacity() int      { return s.m.Cap() }
func (s boundedStore[K, V]) mutatesOnGet() bool { return true }
