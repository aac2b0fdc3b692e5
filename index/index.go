// Package index provides a balanced binary search tree that maps
// totally ordered keys to entities.
//
// The tree is an AVL tree whose nodes live in an arena and reference
// each other by integer handles. Every node also stores the size of
// its subtree which makes rank and select queries logarithmic.
package index

import (
	"cmp"
	"errors"
	"fmt"
	"iter"
)

var (
	ErrDuplicateKey = errors.New("duplicate key")
	ErrKeyNotFound  = errors.New("key not found")
	ErrKeyCollision = errors.New("merged indexes share a key")
)

// Handle of the absent node
const none = -1

type node[K, V any] struct {
	key   K
	value V

	left, right int

	height int
	size   int
}

// An Entry is a key and the entity that is stored under it.
type Entry[K, V any] struct {
	Key   K
	Value V
}

// An Index is a self-balancing search tree from keys of type K to
// values of type V.
//
// The zero value is not usable, create an Index with [New] or [NewFunc].
type Index[K, V any] struct {
	nodes []node[K, V]
	free  []int
	root  int

	compare func(a, b K) int
}

// Creates an empty Index for a naturally ordered key type
func New[K cmp.Ordered, V any]() *Index[K, V] {
	return NewFunc[K, V](cmp.Compare[K])
}

// Creates an empty Index that orders its keys with the given
// comparison function.
//
// compare has to return a negative number when a < b, zero when
// a == b and a positive number when a > b.
func NewFunc[K, V any](compare func(a, b K) int) *Index[K, V] {
	return &Index[K, V]{root: none, compare: compare}
}

// Returns the number of keys in the index
func (t *Index[K, V]) Len() int {
	return t.size(t.root)
}

// Returns the height of the tree. An empty index has height 0.
func (t *Index[K, V]) Height() int {
	return t.height(t.root)
}

// Inserts the value under the given key.
//
// Errors with [ErrDuplicateKey] when the key is already present.
func (t *Index[K, V]) Insert(key K, value V) error {
	if _, ok := t.lookup(key); ok {
		return fmt.Errorf("%w: %v", ErrDuplicateKey, key)
	}
	t.root = t.insert(t.root, key, value)
	return nil
}

// Removes the key and its value.
//
// Errors with [ErrKeyNotFound] when the key is not present.
func (t *Index[K, V]) Remove(key K) error {
	if _, ok := t.lookup(key); !ok {
		return fmt.Errorf("%w: %v", ErrKeyNotFound, key)
	}
	t.root = t.remove(t.root, key)
	return nil
}

// Returns the value stored under the key.
//
// Errors with [ErrKeyNotFound] when the key is not present.
func (t *Index[K, V]) Find(key K) (V, error) {
	n, ok := t.lookup(key)
	if !ok {
		var zero V
		return zero, fmt.Errorf("%w: %v", ErrKeyNotFound, key)
	}
	return t.nodes[n].value, nil
}

// Returns the value stored under the key and whether it exists
func (t *Index[K, V]) Get(key K) (V, bool) {
	n, ok := t.lookup(key)
	if !ok {
		var zero V
		return zero, false
	}
	return t.nodes[n].value, true
}

func (t *Index[K, V]) Contains(key K) bool {
	_, ok := t.lookup(key)
	return ok
}

// Returns the entry with the greatest key that is less than the
// given key. The key itself does not need to be in the index.
func (t *Index[K, V]) Predecessor(key K) (K, V, bool) {
	best := none
	n := t.root
	for n != none {
		if t.compare(t.nodes[n].key, key) < 0 {
			best = n
			n = t.nodes[n].right
		} else {
			n = t.nodes[n].left
		}
	}
	return t.entry(best)
}

// Returns the entry with the least key that is greater than the
// given key. The key itself does not need to be in the index.
func (t *Index[K, V]) Successor(key K) (K, V, bool) {
	best := none
	n := t.root
	for n != none {
		if t.compare(t.nodes[n].key, key) > 0 {
			best = n
			n = t.nodes[n].left
		} else {
			n = t.nodes[n].right
		}
	}
	return t.entry(best)
}

// Returns the entry with the least key
func (t *Index[K, V]) Min() (K, V, bool) {
	n := t.root
	if n == none {
		return t.entry(none)
	}
	for t.nodes[n].left != none {
		n = t.nodes[n].left
	}
	return t.entry(n)
}

// Returns the entry with the greatest key
func (t *Index[K, V]) Max() (K, V, bool) {
	n := t.root
	if n == none {
		return t.entry(none)
	}
	for t.nodes[n].right != none {
		n = t.nodes[n].right
	}
	return t.entry(n)
}

// Returns the entry with the least key in the inclusive
// range [low, high].
//
// Subtrees that are entirely outside of the range are
// never visited.
func (t *Index[K, V]) MinInRange(low, high K) (K, V, bool) {
	best := none
	n := t.root
	for n != none {
		key := t.nodes[n].key
		switch {
		case t.compare(key, low) < 0:
			n = t.nodes[n].right
		case t.compare(key, high) > 0:
			n = t.nodes[n].left
		default:
			best = n
			n = t.nodes[n].left
		}
	}
	return t.entry(best)
}

// Returns the number of keys that are strictly less than the given key
func (t *Index[K, V]) Rank(key K) int {
	rank := 0
	n := t.root
	for n != none {
		if t.compare(key, t.nodes[n].key) <= 0 {
			n = t.nodes[n].left
		} else {
			rank += t.size(t.nodes[n].left) + 1
			n = t.nodes[n].right
		}
	}
	return rank
}

// Returns the entry at the 0-based position i of the ascending key order
func (t *Index[K, V]) Select(i int) (K, V, bool) {
	if i < 0 || i >= t.Len() {
		return t.entry(none)
	}
	n := t.root
	for {
		leftSize := t.size(t.nodes[n].left)
		switch {
		case i < leftSize:
			n = t.nodes[n].left
		case i == leftSize:
			return t.entry(n)
		default:
			i -= leftSize + 1
			n = t.nodes[n].right
		}
	}
}

// Returns all entries in ascending key order
func (t *Index[K, V]) Linearize() []Entry[K, V] {
	entries := make([]Entry[K, V], 0, t.Len())
	stack := make([]int, 0, t.Height())
	n := t.root
	for n != none || len(stack) > 0 {
		for n != none {
			stack = append(stack, n)
			n = t.nodes[n].left
		}
		n = stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		entries = append(entries, Entry[K, V]{t.nodes[n].key, t.nodes[n].value})
		n = t.nodes[n].right
	}
	return entries
}

// An iterator over all entries in ascending key order.
// The index must not be modified during the iteration.
func (t *Index[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		t.walk(t.root, yield)
	}
}

func (t *Index[K, V]) walk(n int, yield func(K, V) bool) bool {
	if n == none {
		return true
	}
	return t.walk(t.nodes[n].left, yield) &&
		yield(t.nodes[n].key, t.nodes[n].value) &&
		t.walk(t.nodes[n].right, yield)
}

// Merges two indexes with disjoint key sets into a new index.
//
// Both indexes are linearized, merged into one ascending sequence
// and the result is built bottom up in linear time. The inputs are
// not modified. The comparison function of a is used for the result.
//
// Errors with [ErrKeyCollision] when a key is present in both indexes.
func Merge[K, V any](a, b *Index[K, V]) (*Index[K, V], error) {
	left := a.Linearize()
	right := b.Linearize()

	merged := make([]Entry[K, V], 0, len(left)+len(right))
	i, j := 0, 0
	for i < len(left) && j < len(right) {
		c := a.compare(left[i].Key, right[j].Key)
		switch {
		case c < 0:
			merged = append(merged, left[i])
			i += 1
		case c > 0:
			merged = append(merged, right[j])
			j += 1
		default:
			return nil, fmt.Errorf("%w: %v", ErrKeyCollision, left[i].Key)
		}
	}
	merged = append(merged, left[i:]...)
	merged = append(merged, right[j:]...)

	return fromSorted(a.compare, merged), nil
}

// Builds a balanced index from strictly ascending entries
func fromSorted[K, V any](compare func(a, b K) int, entries []Entry[K, V]) *Index[K, V] {
	t := NewFunc[K, V](compare)
	t.nodes = make([]node[K, V], 0, len(entries))
	t.root = t.build(entries)
	return t
}

// Builds the subtree of the entries around their midpoint
func (t *Index[K, V]) build(entries []Entry[K, V]) int {
	if len(entries) == 0 {
		return none
	}
	mid := len(entries) / 2
	left := t.build(entries[:mid])
	n := t.alloc(entries[mid].Key, entries[mid].Value)
	right := t.build(entries[mid+1:])
	t.nodes[n].left = left
	t.nodes[n].right = right
	t.pull(n)
	return n
}

func (t *Index[K, V]) lookup(key K) (int, bool) {
	n := t.root
	for n != none {
		c := t.compare(key, t.nodes[n].key)
		switch {
		case c < 0:
			n = t.nodes[n].left
		case c > 0:
			n = t.nodes[n].right
		default:
			return n, true
		}
	}
	return none, false
}

func (t *Index[K, V]) entry(n int) (K, V, bool) {
	if n == none {
		var key K
		var value V
		return key, value, false
	}
	return t.nodes[n].key, t.nodes[n].value, true
}

func (t *Index[K, V]) insert(n int, key K, value V) int {
	if n == none {
		return t.alloc(key, value)
	}

	// The arena may grow during the recursion so the
	// node is addressed again after the call
	if t.compare(key, t.nodes[n].key) < 0 {
		child := t.insert(t.nodes[n].left, key, value)
		t.nodes[n].left = child
	} else {
		child := t.insert(t.nodes[n].right, key, value)
		t.nodes[n].right = child
	}

	return t.rebalance(n)
}

func (t *Index[K, V]) remove(n int, key K) int {
	c := t.compare(key, t.nodes[n].key)
	switch {
	case c < 0:
		child := t.remove(t.nodes[n].left, key)
		t.nodes[n].left = child
	case c > 0:
		child := t.remove(t.nodes[n].right, key)
		t.nodes[n].right = child
	default:
		left, right := t.nodes[n].left, t.nodes[n].right
		if left == none || right == none {
			t.release(n)
			if left == none {
				return right
			}
			return left
		}

		// Replace with the in-order successor
		s := right
		for t.nodes[s].left != none {
			s = t.nodes[s].left
		}
		t.nodes[n].key = t.nodes[s].key
		t.nodes[n].value = t.nodes[s].value
		child := t.removeMin(right)
		t.nodes[n].right = child
	}

	return t.rebalance(n)
}

func (t *Index[K, V]) removeMin(n int) int {
	if t.nodes[n].left == none {
		right := t.nodes[n].right
		t.release(n)
		return right
	}
	child := t.removeMin(t.nodes[n].left)
	t.nodes[n].left = child
	return t.rebalance(n)
}

func (t *Index[K, V]) alloc(key K, value V) int {
	fresh := node[K, V]{
		key:    key,
		value:  value,
		left:   none,
		right:  none,
		height: 1,
		size:   1,
	}

	if len(t.free) > 0 {
		n := t.free[len(t.free)-1]
		t.free = t.free[:len(t.free)-1]
		t.nodes[n] = fresh
		return n
	}

	t.nodes = append(t.nodes, fresh)
	return len(t.nodes) - 1
}

func (t *Index[K, V]) release(n int) {
	// Drop the key and value references
	t.nodes[n] = node[K, V]{left: none, right: none}
	t.free = append(t.free, n)
}

func (t *Index[K, V]) height(n int) int {
	if n == none {
		return 0
	}
	return t.nodes[n].height
}

func (t *Index[K, V]) size(n int) int {
	if n == none {
		return 0
	}
	return t.nodes[n].size
}

func (t *Index[K, V]) balanceFactor(n int) int {
	return t.height(t.nodes[n].left) - t.height(t.nodes[n].right)
}

// Recalculates height and subtree size after the children changed
func (t *Index[K, V]) pull(n int) {
	left, right := t.nodes[n].left, t.nodes[n].right
	t.nodes[n].height = 1 + max(t.height(left), t.height(right))
	t.nodes[n].size = 1 + t.size(left) + t.size(right)
}

func (t *Index[K, V]) rotateRight(n int) int {
	l := t.nodes[n].left
	t.nodes[n].left = t.nodes[l].right
	t.nodes[l].right = n
	t.pull(n)
	t.pull(l)
	return l
}

func (t *Index[K, V]) rotateLeft(n int) int {
	r := t.nodes[n].right
	t.nodes[n].right = t.nodes[r].left
	t.nodes[r].left = n
	t.pull(n)
	t.pull(r)
	return r
}

// Restores the balance of the subtree at n and returns the
// handle of its new root.
func (t *Index[K, V]) rebalance(n int) int {
	t.pull(n)
	balance := t.balanceFactor(n)

	if balance > 1 {
		left := t.nodes[n].left
		if t.balanceFactor(left) < 0 {
			t.nodes[n].left = t.rotateLeft(left)
		}
		return t.rotateRight(n)
	}

	if balance < -1 {
		right := t.nodes[n].right
		if t.balanceFactor(right) > 0 {
			t.nodes[n].right = t.rotateRight(right)
		}
		return t.rotateLeft(n)
	}

	return n
}
