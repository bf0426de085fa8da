package bst

import (
	"cmp"
	"iter"
)

// Entry is a key/value pair yielded by an in-order traversal.
type Entry[K, V any] struct {
	Key   K
	Value V
}

// node is a single tree node. Each child is owned by exactly one parent.
type node[K, V any] struct {
	key   K
	value V
	left  *node[K, V]
	right *node[K, V]
}

// Tree is an unbalanced binary search tree mapping unique keys to values.
type Tree[K, V any] struct {
	root    *node[K, V]
	compare func(a, b K) int
	size    int
}

// New returns an empty tree ordered by cmp.Compare.
func New[K cmp.Ordered, V any]() *Tree[K, V] {
	return &Tree[K, V]{compare: cmp.Compare[K]}
}

// NewFunc returns an empty tree ordered by compare, which must return a
// negative number when a < b, zero when a == b and a positive number when
// a > b. A panic raised by compare is not recovered.
func NewFunc[K, V any](compare func(a, b K) int) *Tree[K, V] {
	if compare == nil {
		panic("bst: nil compare function")
	}
	return &Tree[K, V]{compare: compare}
}

// Insert associates value with key. If key is already present its value is
// overwritten and no node is added.
func (t *Tree[K, V]) Insert(key K, value V) {
	if t.root == nil {
		t.root = &node[K, V]{key: key, value: value}
		t.size++
		return
	}

	cur := t.root
	for {
		switch c := t.compare(key, cur.key); {
		case c < 0:
			if cur.left == nil {
				cur.left = &node[K, V]{key: key, value: value}
				t.size++
				return
			}
			cur = cur.left
		case c > 0:
			if cur.right == nil {
				cur.right = &node[K, V]{key: key, value: value}
				t.size++
				return
			}
			cur = cur.right
		default:
			cur.value = value
			return
		}
	}
}

// Search returns the value stored under key. The boolean is false, and the
// value is the zero value, when key is absent.
func (t *Tree[K, V]) Search(key K) (V, bool) {
	cur := t.root
	for cur != nil {
		switch c := t.compare(key, cur.key); {
		case c < 0:
			cur = cur.left
		case c > 0:
			cur = cur.right
		default:
			return cur.value, true
		}
	}
	var zero V
	return zero, false
}

// Len returns the number of distinct keys in the tree.
func (t *Tree[K, V]) Len() int {
	return t.size
}

// InOrder returns every entry in ascending key order.
func (t *Tree[K, V]) InOrder() []Entry[K, V] {
	result := make([]Entry[K, V], 0, t.size)
	t.walk(func(n *node[K, V]) bool {
		result = append(result, Entry[K, V]{Key: n.key, Value: n.value})
		return true
	})
	return result
}

// All returns a lazy ascending iterator over the tree. Each call to the
// returned sequence starts a fresh traversal.
func (t *Tree[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		t.walk(func(n *node[K, V]) bool {
			return yield(n.key, n.value)
		})
	}
}

// Height returns the number of nodes on the longest root-to-leaf path.
func (t *Tree[K, V]) Height() int {
	if t.root == nil {
		return 0
	}

	type frame struct {
		n     *node[K, V]
		depth int
	}

	height := 0
	stack := []frame{{t.root, 1}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if f.depth > height {
			height = f.depth
		}
		if f.n.left != nil {
			stack = append(stack, frame{f.n.left, f.depth + 1})
		}
		if f.n.right != nil {
			stack = append(stack, frame{f.n.right, f.depth + 1})
		}
	}
	return height
}

// walk visits nodes left, self, right using an explicit stack and stops as
// soon as visit returns false.
func (t *Tree[K, V]) walk(visit func(*node[K, V]) bool) {
	var stack []*node[K, V]
	cur := t.root
	for cur != nil || len(stack) > 0 {
		for cur != nil {
			stack = append(stack, cur)
			cur = cur.left
		}
		cur = stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !visit(cur) {
			return
		}
		cur = cur.right
	}
}
