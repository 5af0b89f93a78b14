// Package treeview implements the logic core of a virtualized hierarchical
// tree/table control: a mutable collapsible tree model, a cumulative
// vertical-offset index over its rows with binary-search lookup, per-column
// sorting applied to every sibling group, and a viewport controller that
// walks only the visible rows for drawing, hit-testing, selection, keyboard
// navigation, and drag-drop target resolution.
//
// The engine is unit-agnostic and single-threaded. It draws through the
// Painter interface and never talks to a display directly; hosts supply a
// painter, a theme, and event records, and receive notifications through
// callback fields on View.
package treeview

// Visit is a visitor's verdict during a depth-first walk.
type Visit int

const (
	// Continue descends into the current node's children as normal.
	Continue Visit = iota

	// SkipSubtree abandons the current node's children and resumes at its
	// next sibling.
	SkipSubtree

	// Stop ends the traversal of the entire tree immediately, unwinding
	// through every recursion level.
	Stop
)

// Visitor inspects one node and steers the walk.
type Visitor[T any] func(n *Node[T]) Visit

// Tree is the model: it owns the ordered root nodes and, through them, every
// node in the structure. All structural changes go through Append, Insert,
// Remove, and Clear so that parent indices, depths, and the position index
// stay consistent; never splice child slices directly.
type Tree[T any] struct {
	roots []*Node[T]
	size  int
	rev   uint64
}

// NewTree returns an empty model.
func NewTree[T any]() *Tree[T] {
	return &Tree[T]{}
}

// Roots returns the ordered root sequence. The slice is owned by the tree.
func (t *Tree[T]) Roots() []*Node[T] { return t.roots }

// Len returns the total number of nodes in the tree.
func (t *Tree[T]) Len() int { return t.size }

// Append adds node as the last child of parent, or as the last root when
// parent is nil. A nil node is a no-op. The node must be detached.
func (t *Tree[T]) Append(parent, node *Node[T]) *Node[T] {
	if node == nil {
		return nil
	}
	if parent == nil {
		return t.Insert(nil, len(t.roots), node)
	}
	return t.Insert(parent, len(parent.children), node)
}

// Insert adds node as the index-th child of parent, or of the root sequence
// when parent is nil, shifting later siblings one place down. The index is
// clamped to the valid range. A nil node is a no-op. Returns the inserted
// node.
func (t *Tree[T]) Insert(parent *Node[T], index int, node *Node[T]) *Node[T] {
	if node == nil {
		return nil
	}
	siblings := &t.roots
	depth := 1
	if parent != nil {
		siblings = &parent.children
		depth = parent.depth + 1
	}
	if index < 0 {
		index = 0
	} else if index > len(*siblings) {
		index = len(*siblings)
	}
	*siblings = append(*siblings, nil)
	copy((*siblings)[index+1:], (*siblings)[index:])
	(*siblings)[index] = node

	node.parent = parent
	for i := index; i < len(*siblings); i++ {
		(*siblings)[i].parentIndex = i
	}
	node.setDepth(depth)
	t.size += countNodes(node)
	t.rev++
	t.Reindex()
	return node
}

// Remove detaches node from its parent (or the roots), shifting later
// siblings' indices down. Ownership of the detached subtree transfers to the
// caller; its depths are renumbered from 1 so it stays consistent if
// reinserted. A nil node is a no-op returning nil.
func (t *Tree[T]) Remove(node *Node[T]) *Node[T] {
	if node == nil {
		return nil
	}
	siblings := &t.roots
	if node.parent != nil {
		siblings = &node.parent.children
	}
	i := node.parentIndex
	if i < 0 || i >= len(*siblings) || (*siblings)[i] != node {
		return node
	}
	*siblings = append((*siblings)[:i], (*siblings)[i+1:]...)
	for ; i < len(*siblings); i++ {
		(*siblings)[i].parentIndex = i
	}
	node.parent = nil
	node.parentIndex = -1
	node.setDepth(1)
	t.size -= countNodes(node)
	t.rev++
	t.Reindex()
	return node
}

// Clear releases every root subtree. All nodes, their cells, and their
// backing data become garbage once the caller drops its own references.
func (t *Tree[T]) Clear() {
	t.roots = nil
	t.size = 0
	t.rev++
}

// Walk visits every node depth-first in pre-order, children in sequence
// order. It is the sole whole-tree scan primitive; index rebuilds, sorting,
// find, and range selection are all built on it.
func (t *Tree[T]) Walk(fn Visitor[T]) {
	walkNodes(t.roots, fn)
}

// Descend walks the subtree rooted at node, visiting node first. A nil node
// is a no-op.
func (t *Tree[T]) Descend(node *Node[T], fn Visitor[T]) {
	if node == nil {
		return
	}
	descend(node, fn)
}

func walkNodes[T any](nodes []*Node[T], fn Visitor[T]) Visit {
	for _, n := range nodes {
		if descend(n, fn) == Stop {
			return Stop
		}
	}
	return Continue
}

func descend[T any](n *Node[T], fn Visitor[T]) Visit {
	switch fn(n) {
	case Stop:
		return Stop
	case SkipSubtree:
		return Continue
	}
	return walkNodes(n.children, fn)
}

// Find returns the first node in traversal order satisfying pred, or nil.
func (t *Tree[T]) Find(pred func(*Node[T]) bool) *Node[T] {
	var found *Node[T]
	t.Walk(func(n *Node[T]) Visit {
		if pred(n) {
			found = n
			return Stop
		}
		return Continue
	})
	return found
}

// NodeAt returns the index-th node in traversal order, or nil when the index
// is out of range. The lookup is a linear counting walk, not accelerated by
// the position index.
func (t *Tree[T]) NodeAt(index int) *Node[T] {
	if index < 0 {
		return nil
	}
	var found *Node[T]
	i := 0
	t.Walk(func(n *Node[T]) Visit {
		if i == index {
			found = n
			return Stop
		}
		i++
		return Continue
	})
	return found
}

// Reindex rebuilds the position index: one full traversal assigns every
// node's span position from a running total advanced by the node's span
// length. Nodes hidden under a collapsed ancestor carry zero lengths (set
// during layout), so the running total simply does not advance across them.
// Returns the total indexed extent.
func (t *Tree[T]) Reindex() int {
	pos := 0
	t.Walk(func(n *Node[T]) Visit {
		n.span.Pos = pos
		pos += n.span.Len
		return Continue
	})
	return pos
}

func countNodes[T any](n *Node[T]) int {
	count := 1
	for _, c := range n.children {
		count += countNodes(c)
	}
	return count
}
