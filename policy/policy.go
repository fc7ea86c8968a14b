// Package policy defines how a bounded map orders its entries and which
// entry it gives up when a new key arrives at full capacity.
package policy

// Node is the minimal contract an entry must satisfy for a policy.
// It provides read-only access to the key and a pointer to the value.
type Node[K comparable, V any] interface {
	Key() K
	Value() *V
}

// Hooks expose O(1) operations on the owning map's intrusive MRU/LRU list.
// Implementations are provided by the map.
//
// Concurrency: hook calls happen while the map's owner holds its lock.
// Hooks manage only the list; the map owns the key->node index.
type Hooks[K comparable, V any] interface {
	// MoveToFront promotes the node to MRU.
	MoveToFront(Node[K, V])
	// PushFront links a new node at MRU.
	PushFront(Node[K, V])
	// Back returns the current LRU node (or nil if empty).
	Back() Node[K, V]
	// Len returns the number of linked nodes.
	Len() int
}

// Recency is a map-local policy instance bound to the map's hooks.
//
// Semantics:
//   - OnAdd links a new node (usually at MRU).
//   - OnGet/OnUpdate record a use of an existing node.
//   - OnRemove notifies the policy that the node is about to be unlinked,
//     either by explicit removal or eviction. The map does the unlinking.
//   - Victim names the node to evict when a new key arrives at full
//     capacity. It is only called when Len() > 0.
type Recency[K comparable, V any] interface {
	OnAdd(Node[K, V])
	OnGet(Node[K, V])
	OnUpdate(Node[K, V])
	OnRemove(Node[K, V])
	Victim() Node[K, V]
}

// Policy is a factory that binds a Recency instance to a particular map.
type Policy[K comparable, V any] interface {
	Bind(Hooks[K, V]) Recency[K, V]
}
