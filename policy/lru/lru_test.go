package lru

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IvanBrykalov/popcache/policy"
)

// --- test doubles ---

type testNode[K comparable, V any] struct {
	k K
	v V
}

func (n *testNode[K, V]) Key() K    { return n.k }
func (n *testNode[K, V]) Value() *V { return &n.v }

type mockHooks[K comparable, V any] struct {
	pushFrontCnt   int
	moveToFrontCnt int

	lastPush policy.Node[K, V]
	lastMove policy.Node[K, V]

	backVal policy.Node[K, V]
}

func (h *mockHooks[K, V]) MoveToFront(n policy.Node[K, V]) { h.moveToFrontCnt++; h.lastMove = n }
func (h *mockHooks[K, V]) PushFront(n policy.Node[K, V])   { h.pushFrontCnt++; h.lastPush = n }
func (h *mockHooks[K, V]) Back() policy.Node[K, V]         { return h.backVal }
func (h *mockHooks[K, V]) Len() int                        { return h.pushFrontCnt }

// --- tests ---

func TestLRU_OnAdd_PushFront(t *testing.T) {
	t.Parallel()

	h := &mockHooks[string, int]{}
	p := New[string, int]().Bind(h)

	n := &testNode[string, int]{k: "k1", v: 1}
	p.OnAdd(n)

	assert.Equal(t, 1, h.pushFrontCnt)
	assert.Same(t, n, h.lastPush)
	assert.Zero(t, h.moveToFrontCnt, "OnAdd must not call MoveToFront")
}

func TestLRU_OnGetAndUpdate_MoveToFront(t *testing.T) {
	t.Parallel()

	h := &mockHooks[string, int]{}
	p := New[string, int]().Bind(h)

	n := &testNode[string, int]{k: "k2", v: 2}
	p.OnGet(n)
	p.OnUpdate(n)

	assert.Equal(t, 2, h.moveToFrontCnt)
	assert.Same(t, n, h.lastMove)
	assert.Zero(t, h.pushFrontCnt)
}

func TestLRU_OnRemove_NoOp(t *testing.T) {
	t.Parallel()

	h := &mockHooks[string, int]{}
	p := New[string, int]().Bind(h)

	p.OnRemove(&testNode[string, int]{k: "k4", v: 4})

	assert.Zero(t, h.pushFrontCnt)
	assert.Zero(t, h.moveToFrontCnt)
}

// The victim is whatever the map reports as its tail.
func TestLRU_Victim_IsBack(t *testing.T) {
	t.Parallel()

	tail := &testNode[string, int]{k: "old", v: 0}
	h := &mockHooks[string, int]{backVal: tail}
	p := New[string, int]().Bind(h)

	require.Same(t, tail, p.Victim())
}
