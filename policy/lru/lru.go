// Package lru implements the least-recently-used recency policy.
package lru

import "github.com/IvanBrykalov/popcache/policy"

// lru promotes on every use and evicts from the tail of the map's list.
type lru[K comparable, V any] struct {
	h policy.Hooks[K, V]
}

type lruPolicy[K comparable, V any] struct{}

// New returns a Policy factory that binds LRU instances to maps.
func New[K comparable, V any]() policy.Policy[K, V] { return lruPolicy[K, V]{} }

// Bind implements policy.Policy.
func (lruPolicy[K, V]) Bind(h policy.Hooks[K, V]) policy.Recency[K, V] {
	return &lru[K, V]{h: h}
}

// OnAdd links the new entry at MRU.
func (p *lru[K, V]) OnAdd(n policy.Node[K, V]) { p.h.PushFront(n) }

// OnGet promotes the entry to MRU.
func (p *lru[K, V]) OnGet(n policy.Node[K, V]) { p.h.MoveToFront(n) }

// OnUpdate promotes the entry to MRU (overwrites count as recent use).
func (p *lru[K, V]) OnUpdate(n policy.Node[K, V]) { p.h.MoveToFront(n) }

// OnRemove keeps no state for pure LRU.
func (p *lru[K, V]) OnRemove(_ policy.Node[K, V]) {}

// Victim is the tail of the list: the entry touched longest ago.
func (p *lru[K, V]) Victim() policy.Node[K, V] { return p.h.Back() }
