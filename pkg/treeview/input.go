package treeview

// Key identifies a navigation key handled by the view.
type Key uint8

const (
	KeyUp Key = iota
	KeyDown
	KeyLeft
	KeyRight
)

// KeyEvent is a host-translated key press.
type KeyEvent struct {
	Key Key
}

// MouseKind classifies a pointer event.
type MouseKind uint8

const (
	MousePress MouseKind = iota
	MouseRelease
	MouseMove
	MouseLeave
)

// MouseEvent is a host-translated pointer event in view coordinates.
// Double marks the press half of a double click; Ctrl and Shift carry the
// modifier state at the time of the event.
type MouseEvent struct {
	Pos    Point
	Kind   MouseKind
	Double bool
	Ctrl   bool
	Shift  bool
}

// DropZone is a bitmask of the places a drag may land.
type DropZone uint8

const (
	// DropRoot accepts drops on the view background, outside any row.
	DropRoot DropZone = 1 << iota
	// DropChild accepts drops onto a row, nesting under that node.
	DropChild
	// DropAbove accepts drops on the upper edge of a row.
	DropAbove
	// DropBelow accepts drops on the lower edge of a row.
	DropBelow

	DropNone DropZone = 0
	DropAll  DropZone = DropRoot | DropChild | DropAbove | DropBelow
)

// DropTarget names where an in-progress drag would land. A nil Node with
// zone DropRoot means the tree background; a zero target means nowhere.
type DropTarget[T any] struct {
	Node *Node[T]
	Zone DropZone
}

// Pointer motion beyond this Manhattan distance from the press point turns
// a held button into a drag.
const dragThreshold = 2

// HandleMouse feeds one pointer event through hover tracking, header
// interaction, selection, collapse toggling and drag-drop resolution.
// Events arriving before a tree is attached are ignored.
func (v *View[T]) HandleMouse(ev MouseEvent) {
	if v.tree == nil {
		return
	}
	v.ensureLayout()
	switch ev.Kind {
	case MousePress:
		v.mousePress(ev)
	case MouseMove:
		v.mouseMove(ev)
	case MouseRelease:
		v.mouseRelease(ev)
	case MouseLeave:
		v.mouseLeave()
	}
}

func (v *View[T]) mousePress(ev MouseEvent) {
	if !v.headersHidden && ev.Pos.Y >= v.area.Y && ev.Pos.Y < v.area.Y+v.headerH {
		v.headerPress(ev.Pos.X)
		return
	}
	n := v.nodeAtPoint(ev.Pos)
	if n == nil {
		return
	}
	if v.inCollapserBand(n, ev.Pos.X) {
		if n.collapsed {
			v.Expand(n)
		} else {
			v.Collapse(n)
		}
		return
	}
	if ev.Double {
		v.notify(v.OnActivate, n)
		return
	}
	v.pressed = n
	v.dragPos = ev.Pos
	switch {
	case ev.Shift && len(v.selection) > 0:
		v.selectRange(n)
	case ev.Ctrl:
		v.Multiselect(n)
	default:
		v.Select(n)
	}
}

func (v *View[T]) headerPress(x int) {
	i, edge := v.columnAt(x)
	if i < 0 {
		return
	}
	if edge {
		v.resizing = i
		v.resizeX = x
		return
	}
	v.headerHit = i
}

func (v *View[T]) mouseMove(ev MouseEvent) {
	if v.resizing >= 0 {
		v.resizeColumn(ev.Pos.X)
		return
	}
	if v.pressed != nil {
		if !v.dragging && manhattan(ev.Pos, v.dragPos) >= dragThreshold {
			v.dragging = true
		}
		if v.dragging {
			v.updateDropTarget(ev.Pos)
		}
		return
	}
	n := v.nodeAtPoint(ev.Pos)
	if n != v.hovered {
		v.hovered = n
		if v.OnHover != nil {
			v.OnHover(n)
		}
	}
	if n != nil && v.inCollapserBand(n, ev.Pos.X) {
		v.collapser = n
	} else {
		v.collapser = nil
	}
}

// resizeColumn drags the active column edge to x. The new width is taken
// from the displayed width, so grabbing the edge of an expanded column
// starts from where the edge actually is; the grab also pins the column
// against expansion and auto-sizing.
func (v *View[T]) resizeColumn(x int) {
	col := v.columns[v.resizing]
	dx := x - v.resizeX
	if dx == 0 {
		return
	}
	col.SetExpand(false)
	v.autoSize = false
	before := col.Width()
	col.SetWidth(v.widths[v.resizing] + dx)
	if col.Width() != before {
		v.resizeX = x
		v.markStale()
	}
}

func (v *View[T]) mouseRelease(ev MouseEvent) {
	if v.resizing >= 0 {
		v.resizing = -1
		return
	}
	if v.headerHit >= 0 {
		hit := v.headerHit
		v.headerHit = -1
		inHeader := ev.Pos.Y >= v.area.Y && ev.Pos.Y < v.bodyTop()
		if i, edge := v.columnAt(ev.Pos.X); inHeader && i == hit && !edge {
			v.toggleSort(v.columns[hit])
		}
		return
	}
	if v.dragging {
		target := v.drop
		v.dragging = false
		v.pressed = nil
		v.drop = DropTarget[T]{}
		if target.Zone != DropNone && v.OnDrop != nil {
			v.OnDrop(target)
		}
		return
	}
	v.pressed = nil
}

func (v *View[T]) mouseLeave() {
	if v.hovered != nil {
		v.hovered = nil
		if v.OnHover != nil {
			v.OnHover(nil)
		}
	}
	v.collapser = nil
	v.resizing = -1
	v.headerHit = -1
}

// updateDropTarget resolves the zone under the pointer during a drag,
// honoring the allow mask. Over a row the row height splits into quarters:
// the outer quarters map to above and below, the middle to child. When
// child is not allowed the halves map to above and below; when only child
// is allowed the whole row maps to child. Off-row space maps to the tree
// background when root drops are allowed.
func (v *View[T]) updateDropTarget(pt Point) {
	n := v.nodeAtPoint(pt)
	if n == nil {
		v.drop = DropTarget[T]{}
		if v.dropAllow&DropRoot != 0 {
			v.drop.Zone = DropRoot
		}
		return
	}
	rowY := v.bodyTop() + n.span.Pos - v.scrollY()
	zone := dropZoneFor(pt.Y-rowY, n.rowHeight, v.dropAllow)
	if zone == DropNone {
		v.drop = DropTarget[T]{}
		return
	}
	v.drop = DropTarget[T]{Node: n, Zone: zone}
}

func dropZoneFor(y, rowH int, allow DropZone) DropZone {
	above := allow&DropAbove != 0
	below := allow&DropBelow != 0
	child := allow&DropChild != 0
	switch {
	case child && !above && !below:
		return DropChild
	case !child && (above || below):
		if above && (!below || y < rowH/2) {
			return DropAbove
		}
		return DropBelow
	case child:
		quarter := rowH / 4
		if above && y < quarter {
			return DropAbove
		}
		if below && y >= rowH-quarter {
			return DropBelow
		}
		return DropChild
	}
	return DropNone
}

// nodeAtPoint maps a point in view coordinates to the row beneath it, or
// nil when the point is outside the header-free body or past the content.
func (v *View[T]) nodeAtPoint(pt Point) *Node[T] {
	top := v.bodyTop()
	if pt.Y < top || pt.Y >= v.area.Bottom() {
		return nil
	}
	x0 := v.area.X - v.scrollX()
	if pt.X < x0 || pt.X >= x0+v.contentWidth() {
		return nil
	}
	return v.tree.NodeAtOffset(pt.Y - top + v.scrollY())
}

func (v *View[T]) bodyTop() int {
	if v.headersHidden {
		return v.area.Y
	}
	return v.area.Y + v.headerH
}

func (v *View[T]) contentWidth() int {
	w := 0
	for _, cw := range v.widths {
		w += cw
	}
	return w
}

// columnAt maps an x coordinate to the header column beneath it. edge is
// true within the trailing resize hotzone of that column; columns too
// narrow to leave room for a sort click never report an edge.
func (v *View[T]) columnAt(x int) (index int, edge bool) {
	cx := v.area.X - v.scrollX()
	for i, w := range v.widths {
		if x >= cx && x < cx+w {
			return i, w >= 2*resizeHotzone && x >= cx+w-resizeHotzone
		}
		cx += w
	}
	return -1, false
}

// inCollapserBand reports whether x falls on the indent band holding the
// node's expand marker. Only branch nodes outside table mode have one.
func (v *View[T]) inCollapserBand(n *Node[T], x int) bool {
	if v.table || !n.hasChildren() {
		return false
	}
	base := v.area.X - v.scrollX() + (n.depth-1)*v.indent
	return x >= base && x < base+v.indent
}

func manhattan(a, b Point) int {
	dx := a.X - b.X
	if dx < 0 {
		dx = -dx
	}
	dy := a.Y - b.Y
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}
