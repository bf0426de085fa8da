package bst

import (
	"cmp"
	"sync"
)

// Synced guards a Tree with one exclusive lock. Every operation holds the lock
// for its full duration, including traversal.
type Synced[K, V any] struct {
	mu   sync.Mutex
	tree *Tree[K, V]
}

// NewSynced returns an empty synchronized tree ordered by cmp.Compare.
func NewSynced[K cmp.Ordered, V any]() *Synced[K, V] {
	return &Synced[K, V]{tree: New[K, V]()}
}

// Insert associates value with key, overwriting any previous value.
func (s *Synced[K, V]) Insert(key K, value V) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tree.Insert(key, value)
}

// Upsert inserts value under key and reports whether key was already present.
func (s *Synced[K, V]) Upsert(key K, value V) (replaced bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	before := s.tree.Len()
	s.tree.Insert(key, value)
	return s.tree.Len() == before
}

// Search returns the value stored under key.
func (s *Synced[K, V]) Search(key K) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tree.Search(key)
}

// InOrder returns a copy of every entry in ascending key order.
func (s *Synced[K, V]) InOrder() []Entry[K, V] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tree.InOrder()
}

// Len returns the number of distinct keys.
func (s *Synced[K, V]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tree.Len()
}

// Height returns the current depth of the underlying tree.
func (s *Synced[K, V]) Height() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tree.Height()
}
