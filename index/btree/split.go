package btree

// split divides an overflowing node around mid = len(keys)/2. It only copies
// node contents; the caller allocates the results and attaches left and
// right to parent.
//
// A leaf keeps the median in left as well as promoting it. An internal node
// hands the median to parent only, since left must keep one more child than
// keys.
func split(order int, n *Node) (left, parent, right Node) {
	mid := len(n.Keys) / 2

	parent = newInternal(order)
	parent.Keys = append(parent.Keys, n.Keys[mid])

	if n.Leaf {
		left = newLeaf(order)
		left.Keys = append(left.Keys, n.Keys[:mid+1]...)

		right = newLeaf(order)
		right.Keys = append(right.Keys, n.Keys[mid+1:]...)
		return left, parent, right
	}

	left = newInternal(order)
	left.Keys = append(left.Keys, n.Keys[:mid]...)
	left.Children = append(left.Children, n.Children[:mid+1]...)

	right = newInternal(order)
	right.Keys = append(right.Keys, n.Keys[mid+1:]...)
	right.Children = append(right.Children, n.Children[mid+1:]...)
	return left, parent, right
}
