// Package classic is a pointer-based B-tree with preemptive splitting:
// full children are split on the way down, so insertion never has to walk
// back up. It serves as the textbook baseline for the arena tree.
package classic

import (
	"slices"

	"github.com/ashsingh21/naive-btree/index"
)

var _ index.Set = (*BTree)(nil)

type Node struct {
	Leaf     bool
	Keys     []int32
	Children []*Node
}

// BTree with minimum degree T: every node holds at most 2T-1 keys.
type BTree struct {
	T    int
	Root *Node
}

func New(t int) *BTree {
	if t < 2 {
		t = 2
	}
	return &BTree{T: t, Root: &Node{Leaf: true}}
}

func (bt *BTree) Search(key int32) bool {
	x := bt.Root
	for {
		i, found := slices.BinarySearch(x.Keys, key)
		if found {
			return true
		}
		if x.Leaf {
			return false
		}
		x = x.Children[i]
	}
}

// Insert stores key, keeping duplicates.
func (bt *BTree) Insert(key int32) {
	root := bt.Root
	if len(root.Keys) == 2*bt.T-1 {
		newRoot := &Node{Children: []*Node{root}}
		bt.splitChild(newRoot, 0)
		bt.Root = newRoot
	}
	bt.insertNonFull(bt.Root, key)
}

func (bt *BTree) insertNonFull(x *Node, k int32) {
	for !x.Leaf {
		i := 0
		for i < len(x.Keys) && k >= x.Keys[i] {
			i++
		}
		if len(x.Children[i].Keys) == 2*bt.T-1 {
			bt.splitChild(x, i)
			if k >= x.Keys[i] {
				i++
			}
		}
		x = x.Children[i]
	}
	idx := 0
	for idx < len(x.Keys) && x.Keys[idx] <= k {
		idx++
	}
	x.Keys = slices.Insert(x.Keys, idx, k)
}

// splitChild moves the upper half of x.Children[i] into a new sibling and
// lifts its median into x.
func (bt *BTree) splitChild(x *Node, i int) {
	t := bt.T
	y := x.Children[i]
	z := &Node{Leaf: y.Leaf}
	z.Keys = append(z.Keys, y.Keys[t:]...)
	if !y.Leaf {
		z.Children = append(z.Children, y.Children[t:]...)
	}

	mid := y.Keys[t-1]
	y.Keys = y.Keys[:t-1:t-1]
	if !y.Leaf {
		y.Children = y.Children[:t:t]
	}

	x.Keys = slices.Insert(x.Keys, i, mid)
	x.Children = slices.Insert(x.Children, i+1, z)
}

// Height returns the number of levels, counting the root.
func (bt *BTree) Height() int {
	h := 1
	for x := bt.Root; !x.Leaf; x = x.Children[0] {
		h++
	}
	return h
}
