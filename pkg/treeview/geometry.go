package treeview

// Point is a position in view units. The engine is unit-agnostic: a unit is
// one terminal cell for the TUI painter and a scaled pixel for the image
// painters.
type Point struct {
	X, Y int
}

// Size is a width/height pair in view units.
type Size struct {
	W, H int
}

// Rect is an axis-aligned rectangle anchored at its top-left corner.
type Rect struct {
	X, Y, W, H int
}

// Right returns the first x coordinate past the rectangle.
func (r Rect) Right() int { return r.X + r.W }

// Bottom returns the first y coordinate past the rectangle.
func (r Rect) Bottom() int { return r.Y + r.H }

// Empty reports whether the rectangle covers no area.
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Contains reports whether p lies inside the rectangle.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.Right() && p.Y >= r.Y && p.Y < r.Bottom()
}

// Intersect returns the overlap of r and o. The result is empty when the
// rectangles do not overlap.
func (r Rect) Intersect(o Rect) Rect {
	x := max(r.X, o.X)
	y := max(r.Y, o.Y)
	right := min(r.Right(), o.Right())
	bottom := min(r.Bottom(), o.Bottom())
	if right < x {
		right = x
	}
	if bottom < y {
		bottom = y
	}
	return Rect{X: x, Y: y, W: right - x, H: bottom - y}
}

// Span is a node's cached location on the virtual vertical axis: Pos is the
// offset of the row's top edge and Len its height. Rows hidden under a
// collapsed ancestor keep the running Pos of the walk with a Len of zero, so
// positions stay monotonic over the whole tree.
type Span struct {
	Pos, Len int
}
