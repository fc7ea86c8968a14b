package boundedmap

// node is an intrusive doubly linked list element owned by a Map.
type node[K comparable, V any] struct {
	key K
	val V

	// head is MRU, tail is LRU.
	prev *node[K, V]
	next *node[K, V]
}

// Key returns the node key (part of policy.Node).
func (n *node[K, V]) Key() K { return n.key }

// Value returns a pointer to the stored value (part of policy.Node).
// Only valid while the owner of the Map holds its lock.
func (n *node[K, V]) Value() *V { return &n.val }
