package treeview

import "fmt"

// SetViewport tells the view how much space the host gives it, in units.
// Hosts call this on every resize; hit-testing and scrolling are relative to
// this area.
func (v *View[T]) SetViewport(w, h int) {
	if v.area.W == w && v.area.H == h {
		return
	}
	v.area.W, v.area.H = w, h
	v.markStale()
}

// Viewport returns the size last passed to SetViewport.
func (v *View[T]) Viewport() Size { return Size{W: v.area.W, H: v.area.H} }

// VirtualSize returns the full content size: the widest row layout and the
// summed heights of all visible rows, plus the header row unless hidden.
func (v *View[T]) VirtualSize() Size {
	v.ensureLayout()
	return v.virtual
}

// SizeHint negotiates the view's size with the surrounding layout: the
// viewport in ModeScroll, the full virtual size in ModeUnroll. Panics when
// no tree is attached.
func (v *View[T]) SizeHint() Size {
	v.ensureLayout()
	if v.mode == ModeScroll {
		return Size{W: v.area.W, H: v.area.H}
	}
	return v.virtual
}

func (v *View[T]) ensureLayout() {
	if !v.stale && v.tree != nil && v.treeRev == v.tree.rev {
		return
	}
	v.Layout()
}

// Layout recomputes the position index and the column widths. One traversal
// over all nodes measures every visible row (the tallest cell hint, plus one
// unit when horizontal grid lines are on), assigns spans from the running
// total, and gives rows hidden under a collapsed ancestor the current total
// with a zero length. Column auto-sizing and expand distribution run in the
// same pass.
//
// Layout is lazy: mutation and collapse mark the view stale, and drawing,
// size negotiation, and hit-testing re-run it on demand. Call it directly
// only to read fresh spans without drawing.
//
// Panics when no tree is attached or a node's cell count differs from the
// view's column count.
func (v *View[T]) Layout() {
	if v.tree == nil {
		panic("treeview: no tree attached; call SetTree first")
	}
	if len(v.widths) != len(v.columns) {
		v.widths = make([]int, len(v.columns))
	}

	headerH := 0
	if !v.headersHidden {
		for _, c := range v.columns {
			if c.title == nil {
				continue
			}
			if h := c.title.SizeHint().H; h > headerH {
				headerH = h
			}
		}
	}

	hGrid, vGrid := 0, 0
	if v.grid.horizontal() {
		hGrid = gridLineWidth
	}
	if v.grid.vertical() {
		vGrid = gridLineWidth
	}

	autoSize := v.autoSize || v.mode == ModeUnroll
	pos := 0
	collapsed := false
	collapsedDepth := -1
	v.tree.Walk(func(n *Node[T]) Visit {
		if n.depth <= collapsedDepth {
			collapsed = false
			collapsedDepth = -1
		}
		if !collapsed {
			if len(n.cells) != len(v.columns) {
				panic(fmt.Sprintf("treeview: node has %d cells for %d columns", len(n.cells), len(v.columns)))
			}
			rowH := 0
			for i, cell := range n.cells {
				s := cell.SizeHint()
				w := s.W
				if !v.table && i == 0 {
					w += n.depth * v.indent
				}
				if autoSize && w+vGrid > v.columns[i].Width() {
					v.columns[i].grow(w + vGrid)
				}
				if s.H > rowH {
					rowH = s.H
				}
			}
			rowH += hGrid
			n.rowHeight = rowH
			n.span = Span{Pos: pos, Len: rowH}
			pos += rowH
		} else {
			n.span = Span{Pos: pos, Len: 0}
		}
		if n.collapsed && !collapsed {
			collapsed = true
			collapsedDepth = n.depth
		}
		return Continue
	})

	baseW := 0
	for i, c := range v.columns {
		v.widths[i] = c.Width()
		baseW += v.widths[i]
	}
	v.distributeExpansion(baseW)
	totalW := 0
	for _, w := range v.widths {
		totalW += w
	}

	prev := v.virtual
	v.headerH = headerH
	v.virtual = Size{W: totalW, H: headerH + pos}
	v.updateScrollbars()
	v.stale = false
	v.treeRev = v.tree.rev

	if v.mode == ModeUnroll && v.virtual != prev && v.OnResize != nil {
		v.OnResize(v.virtual)
	}
}

// distributeExpansion spreads leftover viewport width across the columns
// marked Expand, one extra unit at a time for the remainder.
func (v *View[T]) distributeExpansion(baseW int) {
	leftover := v.area.W - baseW
	if leftover <= 0 {
		return
	}
	expandable := 0
	for _, c := range v.columns {
		if c.expand {
			expandable++
		}
	}
	if expandable == 0 {
		return
	}
	share := leftover / expandable
	remainder := leftover % expandable
	for i, c := range v.columns {
		if !c.expand {
			continue
		}
		extra := share
		if remainder > 0 {
			extra++
			remainder--
		}
		v.widths[i] += extra
	}
}

func (v *View[T]) updateScrollbars() {
	if v.mode == ModeUnroll {
		v.vbar.SetVisible(false)
		v.hbar.SetVisible(false)
		return
	}
	v.vbar.SetVisible(v.virtual.H > v.area.H)
	v.hbar.SetVisible(v.virtual.W > v.area.W)
}

// ScrollOffset returns the current scroll position in units.
func (v *View[T]) ScrollOffset() (x, y int) {
	return v.scrollX(), v.scrollY()
}

// ScrollTo scrolls the viewport so the virtual offset y aligns with the top
// of the row area. The offset is clamped to the scrollable range.
func (v *View[T]) ScrollTo(y int) {
	v.ensureLayout()
	v.setScrollY(y)
}

// ScrollBy scrolls vertically by delta units.
func (v *View[T]) ScrollBy(delta int) {
	v.ensureLayout()
	v.setScrollY(v.scrollY() + delta)
}

func (v *View[T]) scrollY() int {
	if v.mode == ModeUnroll || !v.vbar.Visible() {
		return 0
	}
	span := v.virtual.H - v.area.H
	if span <= 0 {
		return 0
	}
	return int(v.vbar.Value()*float64(span) + 0.5)
}

func (v *View[T]) setScrollY(y int) {
	span := v.virtual.H - v.area.H
	if span <= 0 {
		v.vbar.SetValue(0)
		return
	}
	v.vbar.SetValue(float64(y) / float64(span))
}

func (v *View[T]) scrollX() int {
	if v.mode == ModeUnroll || !v.hbar.Visible() {
		return 0
	}
	span := v.virtual.W - v.area.W
	if span <= 0 {
		return 0
	}
	return int(v.hbar.Value()*float64(span) + 0.5)
}
