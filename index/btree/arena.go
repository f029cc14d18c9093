package btree

import "github.com/cockroachdb/errors"

const initialArenaCap = 1000

// arena is the append-only node store. Pointers returned by node are only
// valid until the next alloc, which may move the backing array.
type arena struct {
	nodes []Node
}

func newArena() arena {
	return arena{nodes: make([]Node, 0, initialArenaCap)}
}

func (a *arena) alloc(n Node) Handle {
	a.nodes = append(a.nodes, n)
	return Handle(len(a.nodes) - 1)
}

func (a *arena) node(h Handle) *Node {
	if h < 0 || int(h) >= len(a.nodes) {
		panic(errors.AssertionFailedf("handle %d out of range [0, %d)", h, len(a.nodes)))
	}
	return &a.nodes[h]
}

func (a *arena) len() int { return len(a.nodes) }
