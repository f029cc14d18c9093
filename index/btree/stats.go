package btree

// Stats describes the size and shape of a tree.
type Stats struct {
	Keys       int // insert calls, duplicates included
	Height     int // levels from root to leaf; 0 when empty
	Splits     int // node splits, root splits included
	RootSplits int
	Slots      int // arena length
	Live       int // nodes reachable from the root
}

// Leaked returns the number of arena slots no longer reachable from the root.
func (s Stats) Leaked() int { return s.Slots - s.Live }

// Stats returns current statistics. Live is computed by walking the tree.
func (t *Tree) Stats() Stats {
	s := Stats{
		Keys:       t.keys,
		Height:     t.height,
		Splits:     t.splits,
		RootSplits: t.rootSplits,
		Slots:      t.arena.len(),
	}
	if t.root != InvalidHandle {
		t.visit(t.root, 0, func(Handle, *Node, int) { s.Live++ })
	}
	return s
}

// visit calls fn for every node under h in depth-first pre-order.
func (t *Tree) visit(h Handle, depth int, fn func(Handle, *Node, int)) {
	n := t.arena.node(h)
	fn(h, n, depth)
	for _, c := range n.Children {
		t.visit(c, depth+1, fn)
	}
}

// Ascend calls fn for every stored key in ascending order until fn returns
// false. Separator copies held by internal nodes are not visited.
func (t *Tree) Ascend(fn func(key int32) bool) {
	if t.root == InvalidHandle {
		return
	}
	t.ascend(t.root, fn)
}

func (t *Tree) ascend(h Handle, fn func(int32) bool) bool {
	n := t.arena.node(h)
	if n.Leaf {
		for _, k := range n.Keys {
			if !fn(k) {
				return false
			}
		}
		return true
	}
	for _, c := range n.Children {
		if !t.ascend(c, fn) {
			return false
		}
	}
	return true
}
