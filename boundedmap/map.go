// Package boundedmap provides a fixed-capacity map that evicts its least
// recently used entry when a new key would overflow it.
//
// A Map is not safe for concurrent use. It is meant to be owned by one
// component (such as cache.Cache) that serializes access with its own lock.
// Note that Get mutates recency order, so it needs exclusive access too.
package boundedmap

import (
	"fmt"

	"github.com/IvanBrykalov/popcache/policy"
	"github.com/IvanBrykalov/popcache/policy/lru"
)

// EvictFunc is called synchronously when an entry is evicted to make room
// for a new key. It is not called for Remove or Clear.
type EvictFunc[K comparable, V any] func(k K, v V) error

// Options configures a Map.
type Options[K comparable, V any] struct {
	// Capacity is the maximum number of entries. Must be > 0.
	Capacity int

	// Policy picks the eviction victim; nil => LRU.
	Policy policy.Policy[K, V]

	// OnEvict is optional.
	OnEvict EvictFunc[K, V]
}

// Map is a bounded key/value map with an intrusive MRU↔LRU list.
// All operations are O(1) expected, except Clear and Keys.
type Map[K comparable, V any] struct {
	m    map[K]*node[K, V]
	head *node[K, V] // MRU
	tail *node[K, V] // LRU
	len  int
	cap  int

	pol     policy.Recency[K, V]
	onEvict EvictFunc[K, V]
}

// New constructs a Map. It fails with ErrInvalidArgument if
// opt.Capacity <= 0.
func New[K comparable, V any](opt Options[K, V]) (*Map[K, V], error) {
	if opt.Capacity <= 0 {
		return nil, fmt.Errorf("%w: capacity must be > 0, got %d", ErrInvalidArgument, opt.Capacity)
	}
	if opt.Policy == nil {
		opt.Policy = lru.New[K, V]()
	}
	bm := &Map[K, V]{
		m:       make(map[K]*node[K, V], opt.Capacity),
		cap:     opt.Capacity,
		onEvict: opt.OnEvict,
	}
	bm.pol = opt.Policy.Bind(mapHooks[K, V]{m: bm})
	return bm, nil
}

// Put inserts or updates k→v and marks k as most recently used.
//
// If k is new and the map is full, the policy victim is evicted first.
// The eviction hook runs after the new entry is in place; its error is
// returned as is and the map stays in the post-eviction state.
func (bm *Map[K, V]) Put(k K, v V) error {
	if n, ok := bm.m[k]; ok {
		n.val = v
		bm.pol.OnUpdate(n)
		return nil
	}

	var victim *node[K, V]
	if bm.len >= bm.cap {
		victim = bm.pol.Victim().(*node[K, V])
		bm.unlink(victim)
	}

	n := &node[K, V]{key: k, val: v}
	bm.m[k] = n
	bm.pol.OnAdd(n)

	if victim != nil && bm.onEvict != nil {
		return bm.onEvict(victim.key, victim.val)
	}
	return nil
}

// Get returns the value for k and promotes it on hit.
func (bm *Map[K, V]) Get(k K) (V, bool) {
	n, ok := bm.m[k]
	if !ok {
		var zero V
		return zero, false
	}
	bm.pol.OnGet(n)
	return n.val, true
}

// Peek returns the value for k without touching recency.
func (bm *Map[K, V]) Peek(k K) (V, bool) {
	n, ok := bm.m[k]
	if !ok {
		var zero V
		return zero, false
	}
	return n.val, true
}

// Contains reports whether k is present, without touching recency.
func (bm *Map[K, V]) Contains(k K) bool {
	_, ok := bm.m[k]
	return ok
}

// Remove deletes k if present. The eviction hook is not called.
func (bm *Map[K, V]) Remove(k K) bool {
	n, ok := bm.m[k]
	if !ok {
		return false
	}
	bm.unlink(n)
	return true
}

// Clear removes every entry without calling the eviction hook and
// returns how many entries were dropped.
func (bm *Map[K, V]) Clear() int {
	removed := bm.len
	for n := bm.tail; n != nil; {
		prev := n.prev
		bm.unlink(n)
		n = prev
	}
	return removed
}

// Len returns the number of resident entries.
func (bm *Map[K, V]) Len() int { return bm.len }

// Cap returns the fixed capacity.
func (bm *Map[K, V]) Cap() int { return bm.cap }

// Keys returns the resident keys ordered from least to most recently used.
func (bm *Map[K, V]) Keys() []K {
	keys := make([]K, 0, bm.len)
	for n := bm.tail; n != nil; n = n.prev {
		keys = append(keys, n.key)
	}
	return keys
}

// -------------------- list internals --------------------

// unlink notifies the policy, detaches n from the list and drops it from the index.
func (bm *Map[K, V]) unlink(n *node[K, V]) {
	bm.pol.OnRemove(n)
	bm.detach(n)
	delete(bm.m, n.key)
}

// insertFront links n at MRU in O(1).
func (bm *Map[K, V]) insertFront(n *node[K, V]) {
	n.prev = nil
	n.next = bm.head
	if bm.head != nil {
		bm.head.prev = n
	}
	bm.head = n
	if bm.tail == nil {
		bm.tail = n
	}
	bm.len++
}

// moveToFront promotes n to MRU in O(1).
func (bm *Map[K, V]) moveToFront(n *node[K, V]) {
	if n == bm.head {
		return
	}
	if n.prev != nil {
		n.prev.next = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	}
	if bm.tail == n {
		bm.tail = n.prev
	}
	n.prev = nil
	n.next = bm.head
	if bm.head != nil {
		bm.head.prev = n
	}
	bm.head = n
	if bm.tail == nil {
		bm.tail = n
	}
}

// detach removes n from the list in O(1).
func (bm *Map[K, V]) detach(n *node[K, V]) {
	if n.prev != nil {
		n.prev.next = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	}
	if bm.head == n {
		bm.head = n.next
	}
	if bm.tail == n {
		bm.tail = n.prev
	}
	n.prev, n.next = nil, nil
	bm.len--
}

// -------------------- policy hooks --------------------

// mapHooks adapts the list operations to policy.Hooks.
type mapHooks[K comparable, V any] struct{ m *Map[K, V] }

func (h mapHooks[K, V]) MoveToFront(x policy.Node[K, V]) { h.m.moveToFront(x.(*node[K, V])) }
func (h mapHooks[K, V]) PushFront(x policy.Node[K, V])   { h.m.insertFront(x.(*node[K, V])) }
func (h mapHooks[K, V]) Len() int                        { return h.m.len }

// Back returns nil (not a typed nil) on an empty list.
func (h mapHooks[K, V]) Back() policy.Node[K, V] {
	if h.m.tail == nil {
		return nil
	}
	return h.m.tail
}
