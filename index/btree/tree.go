package btree

import (
	"slices"

	"github.com/cockroachdb/errors"
)

// MinOrder is the smallest supported order. Below it a leaf split could
// leave the left sibling over capacity.
const MinOrder = 3

// Tree is an arena-backed B-tree of int32 keys.
type Tree struct {
	order int
	arena arena
	root  Handle

	keys       int
	height     int
	splits     int
	rootSplits int
}

// New returns an empty tree whose internal nodes have at most order
// children. It panics if order is below MinOrder.
func New(order int) *Tree {
	if order < MinOrder {
		panic(errors.AssertionFailedf("btree: order %d below minimum %d", order, MinOrder))
	}
	return &Tree{
		order: order,
		arena: newArena(),
		root:  InvalidHandle,
	}
}

// Order returns the tree's order.
func (t *Tree) Order() int { return t.order }

// Root returns the root handle, or InvalidHandle for an empty tree.
func (t *Tree) Root() Handle { return t.root }

// Node returns a copy of the node stored at h. It panics if h is out of range.
func (t *Tree) Node(h Handle) Node {
	n := t.arena.node(h)
	cp := Node{Leaf: n.Leaf, order: n.order}
	cp.Keys = slices.Clone(n.Keys)
	if !n.Leaf {
		cp.Children = slices.Clone(n.Children)
	}
	return cp
}

// ─── Search ───────────────────────────────────────────────────────────────────

// Search reports whether key has been inserted.
func (t *Tree) Search(key int32) bool {
	if t.root == InvalidHandle {
		return false
	}
	h := t.root
	for {
		n := t.arena.node(h)
		if n.Leaf {
			_, found := slices.BinarySearch(n.Keys, key)
			return found
		}
		h = n.Children[lowerBound(n.Keys, key)]
	}
}

// ─── Insert ───────────────────────────────────────────────────────────────────

// Insert adds key to the tree. Duplicates are stored again next to the
// existing copies.
func (t *Tree) Insert(key int32) {
	t.keys++

	if t.root == InvalidHandle {
		leaf := newLeaf(t.order)
		leaf.Keys = append(leaf.Keys, key)
		h := t.arena.alloc(leaf)
		t.mustCheck(h)
		t.root = h
		t.height = 1
		return
	}

	if parent, grew := t.insertRec(t.root, key); grew {
		t.root = parent
		t.height++
		t.rootSplits++
	}
}

// insertRec inserts key into the subtree rooted at h. If the node at h
// overflowed it returns the handle of the one-key parent produced by the
// split and true; h itself is then unreachable.
func (t *Tree) insertRec(h Handle, key int32) (Handle, bool) {
	n := t.arena.node(h)
	idx := upperBound(n.Keys, key)

	if n.Leaf {
		n.Keys = slices.Insert(n.Keys, idx, key)
	} else {
		res, didSplit := t.insertRec(n.Children[idx], key)
		if !didSplit {
			return InvalidHandle, false
		}
		p := t.arena.node(res)
		sep, left, right := p.Keys[0], p.Children[0], p.Children[1]

		// The recursive call may have grown the arena.
		n = t.arena.node(h)
		n.Keys = slices.Insert(n.Keys, idx, sep)
		n.Children[idx] = left
		n.Children = slices.Insert(n.Children, idx+1, right)
	}

	if !n.overflows() {
		t.mustCheck(h)
		return InvalidHandle, false
	}
	return t.splitNode(h), true
}

// splitNode splits the overflowing node at h and allocates the three
// resulting nodes. The returned parent has children [left, right].
func (t *Tree) splitNode(h Handle) Handle {
	left, parent, right := split(t.order, t.arena.node(h))

	lh := t.arena.alloc(left)
	rh := t.arena.alloc(right)
	ph := t.arena.alloc(parent)

	p := t.arena.node(ph)
	p.Children = append(p.Children, lh, rh)

	t.mustCheck(lh)
	t.mustCheck(rh)
	t.mustCheck(ph)
	t.splits++
	return ph
}

func (t *Tree) mustCheck(h Handle) {
	if err := t.arena.node(h).check(h); err != nil {
		panic(err)
	}
}
