// Package twoq implements a 2Q recency policy for bounded maps.
package twoq

import (
	"container/list"

	"github.com/IvanBrykalov/popcache/policy"
)

// twoQ keeps first-time entries in a probation queue (A1in) and promotes
// them to the main queue (Am) on their second use. When the map is full,
// probation entries are given up first, so one-off scans cannot flush
// entries that are used repeatedly.
//
// Ghost queue A1out remembers keys recently dropped from probation; a key
// that comes back while still remembered skips probation.
//
// Am ordering is the map's own MRU/LRU list, driven through hooks.
type twoQ[K comparable, V any] struct {
	h policy.Hooks[K, V]

	capIn    int
	capGhost int

	// A1in: MRU at Front() -> LRU at Back()
	inList *list.List
	inIdx  map[policy.Node[K, V]]*list.Element

	// A1out: keys only, MRU at Front() -> LRU at Back()
	ghostList *list.List
	ghostIdx  map[K]*list.Element
}

// New constructs a 2Q policy factory.
// Common choices: capIn ≈ 25% of the map capacity, capGhost ≈ 50% of it.
func New[K comparable, V any](capIn, capGhost int) policy.Policy[K, V] {
	if capIn < 1 {
		capIn = 1
	}
	if capGhost < 1 {
		capGhost = 1
	}
	return twoQPolicy[K, V]{capIn: capIn, capGhost: capGhost}
}

type twoQPolicy[K comparable, V any] struct {
	capIn    int
	capGhost int
}

// Bind implements policy.Policy.
func (p twoQPolicy[K, V]) Bind(h policy.Hooks[K, V]) policy.Recency[K, V] {
	return &twoQ[K, V]{
		h:         h,
		capIn:     p.capIn,
		capGhost:  p.capGhost,
		inList:    list.New(),
		inIdx:     make(map[policy.Node[K, V]]*list.Element),
		ghostList: list.New(),
		ghostIdx:  make(map[K]*list.Element),
	}
}

// OnAdd links the node at MRU. Remembered keys go straight to Am,
// everything else starts in probation.
func (q *twoQ[K, V]) OnAdd(n policy.Node[K, V]) {
	q.h.PushFront(n)

	k := n.Key()
	if ge, ok := q.ghostIdx[k]; ok {
		q.ghostList.Remove(ge)
		delete(q.ghostIdx, k)
		return
	}
	q.inIdx[n] = q.inList.PushFront(n)
}

// OnGet promotes a probation node into Am and moves it to MRU.
func (q *twoQ[K, V]) OnGet(n policy.Node[K, V]) {
	if el, ok := q.inIdx[n]; ok {
		q.inList.Remove(el)
		delete(q.inIdx, n)
	}
	q.h.MoveToFront(n)
}

// OnUpdate follows OnGet.
func (q *twoQ[K, V]) OnUpdate(n policy.Node[K, V]) { q.OnGet(n) }

// OnRemove forgets the node. Probation nodes leave their key in A1out;
// nodes leaving Am do not.
func (q *twoQ[K, V]) OnRemove(n policy.Node[K, V]) {
	el, ok := q.inIdx[n]
	if !ok {
		return
	}
	q.inList.Remove(el)
	delete(q.inIdx, n)

	k := n.Key()
	if old := q.ghostIdx[k]; old != nil {
		q.ghostList.Remove(old)
	}
	q.ghostIdx[k] = q.ghostList.PushFront(k)

	for q.ghostList.Len() > q.capGhost {
		tail := q.ghostList.Back()
		if tail == nil {
			break
		}
		delete(q.ghostIdx, tail.Value.(K))
		q.ghostList.Remove(tail)
	}
}

// Victim is the oldest probation node once probation is full,
// otherwise the LRU node of the whole map.
func (q *twoQ[K, V]) Victim() policy.Node[K, V] {
	if q.inList.Len() >= q.capIn {
		if el := q.inList.Back(); el != nil {
			return el.Value.(policy.Node[K, V])
		}
	}
	return q.h.Back()
}
