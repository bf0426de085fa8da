// Package bst implements the ordered title store used to deduplicate scraped
// books before they are written to the database.
//
// The store is an unbalanced binary search tree:
//   - Keys are unique. Inserting an existing key replaces its value in place.
//   - Traversal yields entries in strictly ascending key order.
//   - There is no delete and no rebalancing. Shape depends only on insertion
//     order, so already-sorted input degrades to a linked list of depth n.
//
// Tree is not safe for concurrent use. Synced wraps a Tree with a single mutex
// for callers that read while a producer is still inserting.
package bst
