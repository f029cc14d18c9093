package btree

import (
	"fmt"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
)

// String renders the tree one level per line, e.g.
//
//	[2]
//	[1 2] [3]
func (t *Tree) String() string {
	if t.root == InvalidHandle {
		return "(empty)"
	}
	var sb strings.Builder
	level := []Handle{t.root}
	for len(level) > 0 {
		var next []Handle
		for i, h := range level {
			if i > 0 {
				sb.WriteByte(' ')
			}
			n := t.arena.node(h)
			fmt.Fprintf(&sb, "%v", n.Keys)
			next = append(next, n.Children...)
		}
		sb.WriteByte('\n')
		level = next
	}
	return sb.String()
}

// WriteDOT writes the reachable part of the tree as a Graphviz digraph.
// Each node is labelled with its handle so arena leaks can be traced.
func (t *Tree) WriteDOT(w io.Writer) error {
	var sb strings.Builder
	sb.WriteString("digraph BTree {\n")
	sb.WriteString("  graph [ranksep=0.8, nodesep=0.5, rankdir=TB];\n")
	sb.WriteString("  node [shape=record, fontname=\"Helvetica\", fontsize=10];\n")
	sb.WriteString("  edge [arrowsize=0.8, color=\"#444444\"];\n")

	if t.root != InvalidHandle {
		t.visit(t.root, 0, func(h Handle, n *Node, _ int) {
			kind, color := "internal", "#DAE8FC"
			if n.Leaf {
				kind, color = "leaf", "#D5E8D4"
			}
			fields := make([]string, 0, 2*len(n.Keys)+1)
			for i, k := range n.Keys {
				if !n.Leaf {
					fields = append(fields, fmt.Sprintf("<f%d>", i))
				}
				fields = append(fields, fmt.Sprintf("%d", k))
			}
			if !n.Leaf {
				fields = append(fields, fmt.Sprintf("<f%d>", len(n.Keys)))
			}
			fmt.Fprintf(&sb, "  n%d [label=\"{#%d %s|{%s}}\", style=filled, fillcolor=\"%s\"];\n",
				h, h, kind, strings.Join(fields, "|"), color)
			for i, c := range n.Children {
				fmt.Fprintf(&sb, "  n%d:f%d -> n%d;\n", h, i, c)
			}
		})
	}

	sb.WriteString("}\n")
	if _, err := io.WriteString(w, sb.String()); err != nil {
		return errors.Wrap(err, "btree: write dot")
	}
	return nil
}
