package treeview

// Node is a single row of the model. A node owns its children, its cells,
// and its backing datum; detaching a node from the tree transfers that whole
// subtree to the caller. The backing datum is what comparators sort on and
// can differ entirely from what the cells display.
type Node[T any] struct {
	cells       []Cell
	data        *T
	parent      *Node[T]
	parentIndex int
	children    []*Node[T]
	collapsed   bool
	depth       int
	span        Span
	rowHeight   int
}

// NewNode returns a detached node carrying the given cells. data may be nil
// for rows that only display.
func NewNode[T any](data *T, cells ...Cell) *Node[T] {
	return &Node[T]{cells: cells, data: data, parentIndex: -1}
}

// Cells returns the node's per-column payloads.
func (n *Node[T]) Cells() []Cell { return n.cells }

// SetCells replaces the node's per-column payloads. The arity must match the
// view's column count by the next layout.
func (n *Node[T]) SetCells(cells ...Cell) { n.cells = cells }

// Data returns the backing datum, or nil.
func (n *Node[T]) Data() *T { return n.data }

// Parent returns the parent node, or nil for roots and detached nodes.
func (n *Node[T]) Parent() *Node[T] { return n.parent }

// Index returns the node's position within its parent's (or the tree's root)
// child sequence, or -1 while detached.
func (n *Node[T]) Index() int { return n.parentIndex }

// Children returns the node's child sequence in order. The slice is owned by
// the node; mutate it only through Tree operations.
func (n *Node[T]) Children() []*Node[T] { return n.children }

// Collapsed reports whether the node's subtree is excluded from the visible
// walk.
func (n *Node[T]) Collapsed() bool { return n.collapsed }

// Depth returns the node's depth, 1 for roots.
func (n *Node[T]) Depth() int { return n.depth }

// Span returns the node's cached position and extent on the virtual axis.
// Spans are valid after the owning view's layout has run.
func (n *Node[T]) Span() Span { return n.span }

func (n *Node[T]) hasChildren() bool { return len(n.children) > 0 }

// setDepth assigns d to the node and renumbers its whole subtree in child
// order.
func (n *Node[T]) setDepth(d int) {
	if n.depth == d {
		return
	}
	n.depth = d
	for _, c := range n.children {
		c.setDepth(d + 1)
	}
}
