// Package btree implements an in-memory B-tree over int32 keys.
//
// Nodes live in an append-only arena and refer to each other by Handle, the
// node's position in the arena. Insertion descends recursively to a leaf;
// a node whose key count reaches the order splits into a left sibling, a
// right sibling and a one-key parent, and the parent handle travels back up
// to the caller, which absorbs it. When the root itself splits the new
// parent becomes the root, so the tree only grows from the top and every
// leaf stays at the same depth.
//
// Layout of an overflowing leaf with order 4 and keys [10 20 30 40]:
//
//	mid = 2
//	left   [10 20 30]   (the median stays in the left leaf)
//	parent [30]
//	right  [40]
//
// Slots superseded by a split are never freed. Stats reports how many arena
// slots are still reachable.
//
// Structural checks run after every mutation and panic with an assertion
// failure; they signal a bug in the tree, never bad input.
//
// A Tree is not safe for concurrent use.
package btree
