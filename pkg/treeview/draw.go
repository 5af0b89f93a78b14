package treeview

// Draw renders the view into area. Only rows intersecting the painter's
// clip (or area, whichever is smaller) are visited: the walk binary-searches
// the position index for the first visible row, then follows visible
// traversal order, stepping over collapsed subtrees without entering them,
// until it runs past the bottom edge.
//
// Panics when no tree is attached.
func (v *View[T]) Draw(p Painter, area Rect) {
	if v.tree == nil {
		panic("treeview: no tree attached; call SetTree first")
	}
	if v.area.W != area.W || v.area.H != area.H {
		v.markStale()
	}
	v.area = area
	v.ensureLayout()

	oldClip := p.Clip()
	defer p.SetClip(oldClip)
	outer := oldClip.Intersect(area)
	if outer.Empty() {
		return
	}

	if bg := v.theme.RowColor(State{}); bg != nil {
		p.SetClip(outer)
		p.Fill(area, bg)
	}

	headerH := v.headerH
	if v.headersHidden {
		headerH = 0
	}
	scrollX, scrollY := v.scrollX(), v.scrollY()
	bodyTop := area.Y + headerH
	bodyClip := outer.Intersect(Rect{X: area.X, Y: bodyTop, W: area.W, H: area.Bottom() - bodyTop})
	rowsW := 0
	for _, w := range v.widths {
		rowsW += w
	}

	v.drawRows(p, area, bodyClip, bodyTop, rowsW, scrollX, scrollY)
	if v.grid.vertical() {
		v.drawColumnGrid(p, bodyClip, area.X-scrollX, bodyTop)
	}
	if !v.headersHidden {
		v.drawHeader(p, area, outer, scrollX)
	}
	if v.dragging && v.dropAllow != DropNone {
		v.drawDropHint(p, area, bodyClip, bodyTop, rowsW, scrollX, scrollY)
	}
}

func (v *View[T]) drawRows(p Painter, area, bodyClip Rect, bodyTop, rowsW, scrollX, scrollY int) {
	if bodyClip.Empty() {
		return
	}
	target := scrollY + bodyClip.Y - bodyTop
	if target < 0 {
		target = 0
	}
	node := v.tree.NodeAtOffset(target)
	for node != nil {
		y := bodyTop + node.span.Pos - scrollY
		if y >= bodyClip.Bottom() {
			break
		}
		v.drawRow(p, node, area, bodyClip, y, rowsW, scrollX)
		node = v.tree.nextVisible(node)
	}
}

func (v *View[T]) drawRow(p Painter, n *Node[T], area, bodyClip Rect, y, rowsW, scrollX int) {
	st := State{Selected: v.IsSelected(n), Hovered: v.hovered == n, Cursor: v.cursor == n}
	x := area.X - scrollX
	rowRect := Rect{X: x, Y: y, W: rowsW, H: n.rowHeight}

	if bg := v.theme.RowColor(st); bg != nil && (st.Selected || st.Hovered) {
		p.SetClip(bodyClip)
		p.Fill(rowRect, bg)
	}

	hGrid, vGrid := 0, 0
	if v.grid.horizontal() {
		hGrid = gridLineWidth
	}
	if v.grid.vertical() {
		vGrid = gridLineWidth
	}
	cellX := x
	for i, cell := range n.cells {
		colW := v.widths[i]
		r := Rect{X: cellX, Y: y, W: colW - vGrid, H: n.rowHeight - hGrid}
		if i == 0 && !v.table {
			ind := n.depth * v.indent
			r.X += ind
			r.W -= ind
		}
		if clip := r.Intersect(bodyClip); !clip.Empty() {
			p.SetClip(clip)
			cell.Draw(p, r, st)
		}
		cellX += colW
		if cellX >= bodyClip.Right() {
			break
		}
	}

	if v.grid.horizontal() {
		p.SetClip(bodyClip)
		gy := y + n.rowHeight - gridLineWidth
		p.Line(Point{X: x, Y: gy}, Point{X: x + rowsW - 1, Y: gy}, v.theme.GridColor())
	}
	if !v.table {
		v.drawTreeLines(p, n, bodyClip, x, y)
	}
	if st.Cursor {
		p.SetClip(bodyClip)
		p.DashedRect(Rect{X: area.X, Y: y, W: area.W, H: n.rowHeight - hGrid}, v.theme.CursorColor())
	}
}

// drawTreeLines renders the connector chrome in the first column's indent
// gutter: a stem slice for every ancestor level that continues below this
// row, the elbow joining this row to its parent's stem, and either the
// collapse marker or a leaf dot in the node's own band.
func (v *View[T]) drawTreeLines(p Painter, n *Node[T], bodyClip Rect, x, y int) {
	if len(v.widths) == 0 {
		return
	}
	clip := bodyClip.Intersect(Rect{X: x, Y: bodyClip.Y, W: v.widths[0], H: bodyClip.H})
	if clip.Empty() {
		return
	}
	p.SetClip(clip)

	lc := v.theme.TreeLineColor()
	rowH := n.rowHeight
	midY := y + rowH/2
	band := func(depth int) int { return x + (depth-1)*v.indent }
	center := func(depth int) int { return band(depth) + v.indent/2 }

	// Stem slices for enclosing groups whose next sibling lies below this
	// row. A group's stem runs at the center of its parent's band; root
	// groups draw none.
	for a := n.parent; a != nil; a = a.parent {
		if a.parent != nil && v.tree.nextSibling(a) != nil {
			cx := center(a.depth - 1)
			p.Line(Point{X: cx, Y: y}, Point{X: cx, Y: y + rowH - 1}, lc)
		}
	}

	if n.parent != nil {
		// Elbow: down the group stem to mid-row, then across into the
		// node's own band.
		cx := center(n.depth - 1)
		p.Line(Point{X: cx, Y: y}, Point{X: cx, Y: midY}, lc)
		if v.tree.nextSibling(n) != nil {
			p.Line(Point{X: cx, Y: midY}, Point{X: cx, Y: y + rowH - 1}, lc)
		}
		p.Line(Point{X: cx, Y: midY}, Point{X: center(n.depth), Y: midY}, lc)
	}
	if n.hasChildren() {
		if !n.collapsed {
			// Stub leading down toward the first child.
			cx := center(n.depth)
			p.Line(Point{X: cx, Y: midY}, Point{X: cx, Y: y + rowH - 1}, lc)
		}
		v.drawMarker(p, n, band(n.depth), y)
	} else {
		dot := max(1, v.indent/4)
		p.Fill(Rect{X: center(n.depth) - dot/2, Y: midY - dot/2, W: dot, H: dot}, v.theme.IndicatorColor(false))
	}
}

func (v *View[T]) drawMarker(p Painter, n *Node[T], bandX, y int) {
	r := Rect{X: bandX, Y: y, W: v.indent, H: n.rowHeight}
	p.Indicator(r, !n.collapsed, v.theme.IndicatorColor(v.collapser == n))
}

func (v *View[T]) drawColumnGrid(p Painter, bodyClip Rect, x, bodyTop int) {
	if bodyClip.Empty() {
		return
	}
	p.SetClip(bodyClip)
	bottom := min(bodyClip.Bottom(), bodyTop+v.virtual.H-v.headerH) - 1
	if bottom < bodyClip.Y {
		return
	}
	gc := v.theme.GridColor()
	for _, w := range v.widths {
		x += w
		p.Line(Point{X: x - gridLineWidth, Y: bodyClip.Y}, Point{X: x - gridLineWidth, Y: bottom}, gc)
	}
}

func (v *View[T]) drawHeader(p Painter, area, outer Rect, scrollX int) {
	headerRect := outer.Intersect(Rect{X: area.X, Y: area.Y, W: area.W, H: v.headerH})
	if headerRect.Empty() {
		return
	}
	bg, fg := v.theme.HeaderColor()
	p.SetClip(headerRect)
	if bg != nil {
		p.Fill(Rect{X: area.X, Y: area.Y, W: area.W, H: v.headerH}, bg)
	}
	x := area.X - scrollX
	for i, c := range v.columns {
		w := v.widths[i]
		r := Rect{X: x, Y: area.Y, W: w, H: v.headerH}
		if clip := r.Intersect(headerRect); !clip.Empty() {
			p.SetClip(clip)
			if c.title != nil {
				c.title.Draw(p, r, State{})
			}
			switch c.state {
			case Ascending:
				p.Text(Point{X: r.Right() - 2, Y: r.Y}, "^", fg)
			case Descending:
				p.Text(Point{X: r.Right() - 2, Y: r.Y}, "v", fg)
			}
			p.Line(Point{X: r.Right() - 1, Y: r.Y}, Point{X: r.Right() - 1, Y: r.Bottom() - 1}, v.theme.GridColor())
		}
		x += w
	}
	p.SetClip(headerRect)
	p.Line(Point{X: area.X, Y: area.Y + v.headerH - 1}, Point{X: area.Right() - 1, Y: area.Y + v.headerH - 1}, v.theme.GridColor())
}

func (v *View[T]) drawDropHint(p Painter, area, bodyClip Rect, bodyTop, rowsW, scrollX, scrollY int) {
	if bodyClip.Empty() {
		return
	}
	p.SetClip(bodyClip)
	dc := v.theme.DropColor()
	if v.drop.Node == nil {
		if v.drop.Zone == DropRoot {
			p.DashedRect(Rect{X: bodyClip.X, Y: bodyClip.Y, W: bodyClip.W, H: bodyClip.H}, dc)
		}
		return
	}
	n := v.drop.Node
	y := bodyTop + n.span.Pos - scrollY
	x := area.X - scrollX
	switch v.drop.Zone {
	case DropAbove:
		p.Line(Point{X: x, Y: y}, Point{X: x + rowsW - 1, Y: y}, dc)
	case DropBelow:
		by := y + n.rowHeight - 1
		p.Line(Point{X: x, Y: by}, Point{X: x + rowsW - 1, Y: by}, dc)
	case DropChild:
		p.DashedRect(Rect{X: x, Y: y, W: rowsW, H: n.rowHeight}, dc)
	}
}
