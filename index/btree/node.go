package btree

import "github.com/cockroachdb/errors"

// Handle identifies a node by its position in the arena.
type Handle int

// InvalidHandle marks an absent node, e.g. the root of an empty tree.
const InvalidHandle Handle = -1

// Node is a single tree node. Leaves have nil Children; internal nodes hold
// one more child than keys.
type Node struct {
	Leaf     bool
	Keys     []int32
	Children []Handle
	order    int
}

// Keys get one slot of headroom above order-1 so the transient overflow
// before a split does not reallocate.
func newLeaf(order int) Node {
	return Node{
		Leaf:  true,
		Keys:  make([]int32, 0, order),
		order: order,
	}
}

func newInternal(order int) Node {
	return Node{
		Keys:     make([]int32, 0, order),
		Children: make([]Handle, 0, order+1),
		order:    order,
	}
}

// Order returns the maximum number of children the node may have.
func (n *Node) Order() int { return n.order }

func (n *Node) overflows() bool { return len(n.Keys) >= n.order }

// check validates the node's shape. It does not look at key order or at
// other nodes; see Tree.Check for that.
func (n *Node) check(h Handle) error {
	if len(n.Keys) > n.order-1 {
		return errors.AssertionFailedf("node %d: %d keys exceeds order %d", h, len(n.Keys), n.order)
	}
	if n.Leaf {
		if n.Children != nil {
			return errors.AssertionFailedf("node %d: leaf has %d children", h, len(n.Children))
		}
		return nil
	}
	if len(n.Children) != len(n.Keys)+1 {
		return errors.AssertionFailedf("node %d: internal node has %d keys but %d children (keys %v, children %v)",
			h, len(n.Keys), len(n.Children), n.Keys, n.Children)
	}
	return nil
}

// lowerBound returns the number of keys strictly less than key.
func lowerBound(keys []int32, key int32) int {
	lo, hi := 0, len(keys)
	for lo < hi {
		m := int(uint(lo+hi) >> 1)
		if keys[m] < key {
			lo = m + 1
		} else {
			hi = m
		}
	}
	return lo
}

// upperBound returns the number of keys less than or equal to key.
func upperBound(keys []int32, key int32) int {
	lo, hi := 0, len(keys)
	for lo < hi {
		m := int(uint(lo+hi) >> 1)
		if keys[m] <= key {
			lo = m + 1
		} else {
			hi = m
		}
	}
	return lo
}
