package treeview

// NodeAtOffset locates the node whose vertical span contains target, an
// offset on the virtual axis built by layout. The lookup binary-searches
// each sibling level, using the next sibling's position as the implicit
// upper bound of a candidate's window (the last sibling uses its own
// position plus length), and recurses into a candidate's children when the
// target lies inside the window but outside the candidate's own span.
//
// Spans are half-open: an offset equal to a row's end belongs to the next
// row, so hit-testing at a shared edge is deterministic. Returns nil only
// when the tree is empty or target lies outside the total indexed extent.
// Cost is O(log n) per tree level.
func (t *Tree[T]) NodeAtOffset(target int) *Node[T] {
	return nodeAtOffset(t.roots, target)
}

func nodeAtOffset[T any](nodes []*Node[T], target int) *Node[T] {
	if len(nodes) == 0 {
		return nil
	}
	lower, upper := 0, len(nodes)-1
	mid := 0
	for lower <= upper {
		mid = (lower + upper) / 2
		sp := nodes[mid].span
		next := sp.Pos + sp.Len
		if mid < len(nodes)-1 {
			next = nodes[mid+1].span.Pos
		}
		if target < sp.Pos {
			upper = mid - 1
		} else if target >= next {
			lower = mid + 1
		} else {
			break
		}
	}
	sp := nodes[mid].span
	if sp.Pos <= target && target < sp.Pos+sp.Len {
		return nodes[mid]
	}
	if nodes[mid].hasChildren() {
		return nodeAtOffset(nodes[mid].children, target)
	}
	return nil
}
