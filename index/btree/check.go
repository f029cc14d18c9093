package btree

import (
	"github.com/cockroachdb/errors"
)

// Check walks every node reachable from the root and verifies the shape of
// each node, ascending keys, separator bounds and equal leaf depth. Unlike
// the checks run during Insert it reports the first violation as an error
// instead of panicking.
func (t *Tree) Check() error {
	if t.root == InvalidHandle {
		if t.height != 0 {
			return errors.AssertionFailedf("empty tree reports height %d", t.height)
		}
		return nil
	}
	c := checker{t: t, seen: make(map[Handle]struct{}), leafDepth: -1}
	if err := c.walk(t.root, 1, bound{}, bound{}); err != nil {
		return err
	}
	if c.leafDepth != t.height {
		return errors.AssertionFailedf("leaves at depth %d but tree height is %d", c.leafDepth, t.height)
	}
	return nil
}

type bound struct {
	key int32
	set bool
}

type checker struct {
	t         *Tree
	seen      map[Handle]struct{}
	leafDepth int
}

// Separators bound their children inclusively on both sides: a leaf split
// leaves the median in the left child, and duplicates of a separator are
// routed to the right one.
func (c *checker) walk(h Handle, depth int, lo, hi bound) error {
	if h < 0 || int(h) >= c.t.arena.len() {
		return errors.AssertionFailedf("handle %d out of range [0, %d)", h, c.t.arena.len())
	}
	if _, ok := c.seen[h]; ok {
		return errors.AssertionFailedf("node %d reachable more than once", h)
	}
	c.seen[h] = struct{}{}

	n := c.t.arena.node(h)
	if err := n.check(h); err != nil {
		return err
	}
	if n.order != c.t.order {
		return errors.AssertionFailedf("node %d: order %d differs from tree order %d", h, n.order, c.t.order)
	}
	if len(n.Keys) == 0 {
		return errors.AssertionFailedf("node %d: no keys", h)
	}
	for i, k := range n.Keys {
		if i > 0 && n.Keys[i-1] > k {
			return errors.AssertionFailedf("node %d: keys out of order at %d: %v", h, i, n.Keys)
		}
		if lo.set && k < lo.key {
			return errors.AssertionFailedf("node %d: key %d below separator %d", h, k, lo.key)
		}
		if hi.set && k > hi.key {
			return errors.AssertionFailedf("node %d: key %d above separator %d", h, k, hi.key)
		}
	}

	if n.Leaf {
		if c.leafDepth == -1 {
			c.leafDepth = depth
		} else if c.leafDepth != depth {
			return errors.AssertionFailedf("leaf %d at depth %d, expected %d", h, depth, c.leafDepth)
		}
		return nil
	}

	for i, child := range n.Children {
		clo, chi := lo, hi
		if i > 0 {
			clo = bound{key: n.Keys[i-1], set: true}
		}
		if i < len(n.Keys) {
			chi = bound{key: n.Keys[i], set: true}
		}
		if err := c.walk(child, depth+1, clo, chi); err != nil {
			return errors.Wrapf(err, "child %d of node %d", i, h)
		}
	}
	return nil
}
