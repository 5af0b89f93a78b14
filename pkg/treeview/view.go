package treeview

// Mode is the scrolling strategy of a view.
type Mode uint8

const (
	// ModeScroll lets the view manage its own scrollbar pair; content
	// scrolls within the viewport.
	ModeScroll Mode = iota

	// ModeUnroll stretches the view to its full content height and leaves
	// scrolling to the surrounding layout. Collapse and expand propagate a
	// resize request through OnResize.
	ModeUnroll
)

// GridLines selects which grid lines get drawn between rows and columns.
type GridLines uint8

const (
	GridNone GridLines = iota
	GridHorizontal
	GridVertical
	GridBoth
)

func (g GridLines) horizontal() bool { return g == GridHorizontal || g == GridBoth }

func (g GridLines) vertical() bool { return g == GridVertical || g == GridBoth }

const (
	defaultIndent = 24
	minIndent     = 2
	gridLineWidth = 1
)

// View is the viewport controller: it owns the scroll, selection, hover,
// cursor, and drag state for one tree and turns the position index into the
// minimal visible-row walk for drawing and hit-testing. A view holds only
// weak references into the model; removing a node through the view or
// replacing the tree clears every reference into the detached subtree.
//
// All methods must be called from a single goroutine. Notification fields
// are optional; nil callbacks are skipped.
type View[T any] struct {
	tree    *Tree[T]
	columns []*Column[T]
	theme   Theme

	mode          Mode
	grid          GridLines
	indent        int
	table         bool
	headersHidden bool
	autoSize      bool

	area    Rect
	virtual Size
	headerH int
	widths  []int
	stale   bool
	treeRev uint64

	vbar Scrollbar
	hbar Scrollbar

	hovered   *Node[T]
	cursor    *Node[T]
	pressed   *Node[T]
	collapser *Node[T]
	selection []*Node[T]

	lastSort  *Column[T]
	resizing  int
	headerHit int
	resizeX   int
	dragging  bool
	dragPos   Point
	drop      DropTarget[T]
	dropAllow DropZone

	// OnHover fires when the pointer moves onto a different row; nil when
	// it leaves all rows.
	OnHover func(*Node[T])
	// OnActivate fires on double-click.
	OnActivate func(*Node[T])
	// OnSelect and OnDeselect fire once per node entering or leaving the
	// selection.
	OnSelect   func(*Node[T])
	OnDeselect func(*Node[T])
	// OnCollapse and OnExpand fire when a node's subtree is hidden or
	// revealed.
	OnCollapse func(*Node[T])
	OnExpand   func(*Node[T])
	// OnDrop fires when a drag releases over a resolved drop target.
	OnDrop func(DropTarget[T])
	// OnResize fires in ModeUnroll when the content size changes, so the
	// surrounding layout can re-measure the view.
	OnResize func(Size)
}

// NewView returns a view over the given columns with no tree attached.
// Attach one with SetTree before drawing or size negotiation.
func NewView[T any](columns ...*Column[T]) *View[T] {
	return &View[T]{
		columns:   columns,
		theme:     DefaultPalette(),
		indent:    defaultIndent,
		dropAllow: DropAll,
		resizing:  -1,
		headerHit: -1,
		vbar:      &BasicScrollbar{},
		hbar:      &BasicScrollbar{},
		widths:    make([]int, len(columns)),
		stale:     true,
	}
}

// SetTree replaces the model. The previous tree is released and every piece
// of transient state tied to it is reset: hover, cursor, selection, pending
// drag, and the active sort. Columns auto-size to the new content on the
// next layout.
func (v *View[T]) SetTree(t *Tree[T]) {
	v.tree = t
	v.resetTransient()
	v.autoSize = true
	if t != nil {
		v.treeRev = t.rev
	}
	v.markStale()
}

// Tree returns the attached model, or nil.
func (v *View[T]) Tree() *Tree[T] { return v.tree }

// Clear empties the attached model and resets all transient state. A view
// without a tree is left untouched.
func (v *View[T]) Clear() {
	if v.tree == nil {
		return
	}
	v.tree.Clear()
	v.resetTransient()
	v.markStale()
}

func (v *View[T]) resetTransient() {
	v.hovered = nil
	v.cursor = nil
	v.pressed = nil
	v.collapser = nil
	v.selection = nil
	v.dragging = false
	v.drop = DropTarget[T]{}
	v.resizing = -1
	v.headerHit = -1
	if v.lastSort != nil {
		v.lastSort.state = Unsorted
		v.lastSort = nil
	}
}

// Remove detaches node from the model and hands the subtree back to the
// caller. Any view reference into the detached subtree (hover, cursor,
// pressed node, collapse highlight, drop target, selection entries) is
// cleared before the method returns; selection entries additionally notify
// OnDeselect.
func (v *View[T]) Remove(node *Node[T]) *Node[T] {
	if node == nil || v.tree == nil {
		return nil
	}
	detached := v.tree.Remove(node)
	descend(detached, func(n *Node[T]) Visit {
		v.forgetNode(n)
		return Continue
	})
	v.markStale()
	return detached
}

func (v *View[T]) forgetNode(n *Node[T]) {
	if v.hovered == n {
		v.hovered = nil
	}
	if v.cursor == n {
		v.cursor = nil
	}
	if v.pressed == n {
		v.pressed = nil
	}
	if v.collapser == n {
		v.collapser = nil
	}
	if v.drop.Node == n {
		v.drop = DropTarget[T]{}
	}
	if i := v.selectionIndex(n); i >= 0 {
		v.selection = append(v.selection[:i], v.selection[i+1:]...)
		v.notifyDeselect(n)
	}
}

// Columns returns the view's columns in display order.
func (v *View[T]) Columns() []*Column[T] { return v.columns }

// ColumnAt returns the index-th column, or nil when out of range.
func (v *View[T]) ColumnAt(index int) *Column[T] {
	if index < 0 || index >= len(v.columns) {
		return nil
	}
	return v.columns[index]
}

// SetTheme replaces the view's chrome colors. A nil theme keeps the current
// one.
func (v *View[T]) SetTheme(theme Theme) {
	if theme != nil {
		v.theme = theme
	}
}

// SetMode switches between self-scrolling and caller-driven sizing.
func (v *View[T]) SetMode(m Mode) {
	v.mode = m
	v.markStale()
}

// Mode returns the current scrolling mode.
func (v *View[T]) Mode() Mode { return v.mode }

// SetGridLines selects which grid lines are drawn. Horizontal lines add one
// unit to every row's height.
func (v *View[T]) SetGridLines(g GridLines) {
	v.grid = g
	v.markStale()
}

// GridLines returns the current grid line mode.
func (v *View[T]) GridLines() GridLines { return v.grid }

// SetIndent adjusts the per-depth indent width. The default suits pixel
// painters; terminal hosts typically want 2 or 3. Values below 2 are
// rejected.
func (v *View[T]) SetIndent(w int) {
	if w < minIndent {
		return
	}
	v.indent = w
	v.markStale()
}

// Indent returns the per-depth indent width.
func (v *View[T]) Indent() int { return v.indent }

// SetTableMode switches the flat table rendering: no indent, no tree lines,
// no collapse markers.
func (v *View[T]) SetTableMode(table bool) {
	v.table = table
	v.markStale()
}

// IsTable reports whether table mode is active.
func (v *View[T]) IsTable() bool { return v.table }

// HideColumnHeaders removes the header row from layout and drawing.
func (v *View[T]) HideColumnHeaders() {
	v.headersHidden = true
	v.markStale()
}

// ShowColumnHeaders restores the header row.
func (v *View[T]) ShowColumnHeaders() {
	v.headersHidden = false
	v.markStale()
}

// ColumnHeadersHidden reports whether the header row is suppressed.
func (v *View[T]) ColumnHeadersHidden() bool { return v.headersHidden }

// AutoSizeColumns widens every column to its content on each layout until
// the user resizes a column by hand. Auto-sizing never narrows a column.
func (v *View[T]) AutoSizeColumns() {
	v.autoSize = true
	v.markStale()
}

// SetDropAllow restricts which drop zones a drag may resolve to.
func (v *View[T]) SetDropAllow(allow DropZone) { v.dropAllow = allow }

// DropAllowed returns the active drop-zone mask.
func (v *View[T]) DropAllowed() DropZone { return v.dropAllow }

// SetScrollbars replaces the scrollbar pair the view consults and drives.
// Nil arguments keep the current bars.
func (v *View[T]) SetScrollbars(vertical, horizontal Scrollbar) {
	if vertical != nil {
		v.vbar = vertical
	}
	if horizontal != nil {
		v.hbar = horizontal
	}
}

// VerticalScrollbar returns the vertical scrollbar the view drives.
func (v *View[T]) VerticalScrollbar() Scrollbar { return v.vbar }

// HorizontalScrollbar returns the horizontal scrollbar the view drives.
func (v *View[T]) HorizontalScrollbar() Scrollbar { return v.hbar }

// Hovered returns the row under the pointer, or nil.
func (v *View[T]) Hovered() *Node[T] { return v.hovered }

// Cursor returns the keyboard cursor row, or nil.
func (v *View[T]) Cursor() *Node[T] { return v.cursor }

// Selected returns the selected nodes in insertion order.
func (v *View[T]) Selected() []*Node[T] {
	out := make([]*Node[T], len(v.selection))
	copy(out, v.selection)
	return out
}

// IsSelected reports whether node is in the selection.
func (v *View[T]) IsSelected(node *Node[T]) bool { return v.selectionIndex(node) >= 0 }

func (v *View[T]) selectionIndex(node *Node[T]) int {
	for i, n := range v.selection {
		if n == node {
			return i
		}
	}
	return -1
}

// Select makes node the sole selection and moves the keyboard cursor to it.
// Previously selected nodes notify OnDeselect; node itself notifies OnSelect
// even when it was already selected. A nil node is a no-op.
func (v *View[T]) Select(node *Node[T]) {
	if node == nil {
		return
	}
	if i := v.selectionIndex(node); i >= 0 {
		v.selection = append(v.selection[:i], v.selection[i+1:]...)
	}
	v.DeselectAll()
	v.selection = append(v.selection, node)
	v.cursor = node
	v.notifySelect(node)
}

// SelectAt selects the index-th node in traversal order. Out-of-range
// indices are a no-op.
func (v *View[T]) SelectAt(index int) {
	if v.tree == nil {
		return
	}
	v.Select(v.tree.NodeAt(index))
}

// Multiselect toggles node's membership in the selection without touching
// the rest. The cursor follows additions. A nil node is a no-op.
func (v *View[T]) Multiselect(node *Node[T]) {
	if node == nil {
		return
	}
	if i := v.selectionIndex(node); i >= 0 {
		v.selection = append(v.selection[:i], v.selection[i+1:]...)
		v.notifyDeselect(node)
		return
	}
	v.selection = append(v.selection, node)
	v.cursor = node
	v.notifySelect(node)
}

// MultiselectAt toggles the index-th node in traversal order. Out-of-range
// indices are a no-op.
func (v *View[T]) MultiselectAt(index int) {
	if v.tree == nil {
		return
	}
	v.Multiselect(v.tree.NodeAt(index))
}

// forceMultiselect adds node to the selection if absent, never removing.
func (v *View[T]) forceMultiselect(node *Node[T]) {
	if node == nil || v.selectionIndex(node) >= 0 {
		return
	}
	v.selection = append(v.selection, node)
	v.cursor = node
	v.notifySelect(node)
}

// Deselect removes node from the selection if present.
func (v *View[T]) Deselect(node *Node[T]) {
	if i := v.selectionIndex(node); i >= 0 {
		v.notifyDeselect(node)
		v.selection = append(v.selection[:i], v.selection[i+1:]...)
	}
}

// DeselectAll empties the selection, notifying OnDeselect per node.
func (v *View[T]) DeselectAll() {
	if len(v.selection) == 0 {
		return
	}
	for _, n := range v.selection {
		v.notifyDeselect(n)
	}
	v.selection = v.selection[:0]
}

// selectRange force-adds every node between anchor and node in traversal
// order, inclusive, regardless of depth. The anchor is the first selected
// node in insertion order.
func (v *View[T]) selectRange(node *Node[T]) {
	anchor := v.selection[0]
	if anchor == node {
		v.forceMultiselect(node)
		return
	}
	var begin, end *Node[T]
	v.tree.Walk(func(n *Node[T]) Visit {
		if begin == nil {
			switch n {
			case node:
				begin, end = node, anchor
			case anchor:
				begin, end = anchor, node
			default:
				return Continue
			}
			v.forceMultiselect(n)
			return Continue
		}
		v.forceMultiselect(n)
		if n == end {
			return Stop
		}
		return Continue
	})
}

// Collapse hides node's subtree. Nodes without children are a no-op.
func (v *View[T]) Collapse(node *Node[T]) {
	if node == nil || !node.hasChildren() {
		return
	}
	node.collapsed = true
	v.notify(v.OnCollapse, node)
	v.markStale()
}

// Expand reveals node's subtree. Nodes without children are a no-op.
func (v *View[T]) Expand(node *Node[T]) {
	if node == nil || !node.hasChildren() {
		return
	}
	node.collapsed = false
	v.notify(v.OnExpand, node)
	v.markStale()
}

// CollapseSubtree collapses node and every descendant with children. No
// per-node notifications fire.
func (v *View[T]) CollapseSubtree(node *Node[T]) { v.setCollapsedSubtree(node, true) }

// ExpandSubtree expands node and every descendant with children. No
// per-node notifications fire.
func (v *View[T]) ExpandSubtree(node *Node[T]) { v.setCollapsedSubtree(node, false) }

func (v *View[T]) setCollapsedSubtree(node *Node[T], collapsed bool) {
	if node == nil {
		return
	}
	descend(node, func(n *Node[T]) Visit {
		if n.hasChildren() {
			n.collapsed = collapsed
		}
		return Continue
	})
	v.markStale()
}

// CollapseAll collapses every node with children.
func (v *View[T]) CollapseAll() { v.setCollapsedAll(true) }

// ExpandAll expands every node with children.
func (v *View[T]) ExpandAll() { v.setCollapsedAll(false) }

func (v *View[T]) setCollapsedAll(collapsed bool) {
	if v.tree == nil {
		return
	}
	v.tree.Walk(func(n *Node[T]) Visit {
		if n.hasChildren() {
			n.collapsed = collapsed
		}
		return Continue
	})
	v.markStale()
}

func (v *View[T]) markStale() { v.stale = true }

func (v *View[T]) notify(fn func(*Node[T]), n *Node[T]) {
	if fn != nil {
		fn(n)
	}
}

func (v *View[T]) notifySelect(n *Node[T]) { v.notify(v.OnSelect, n) }

func (v *View[T]) notifyDeselect(n *Node[T]) { v.notify(v.OnDeselect, n) }
