package treeview

// SortState is the sort condition of a single column.
type SortState uint8

const (
	Unsorted SortState = iota
	Ascending
	Descending
)

func (s SortState) String() string {
	switch s {
	case Ascending:
		return "ascending"
	case Descending:
		return "descending"
	default:
		return "unsorted"
	}
}

const (
	// defaultMinColumnWidth is the narrowest a column can be resized to.
	defaultMinColumnWidth = 16

	// resizeHotzone is how many units before a column's trailing edge the
	// header starts a resize drag instead of a sort click.
	resizeHotzone = 5
)

// Column describes one column of the view: its header cell, width, and an
// optional comparator that makes the column sortable. The comparator orders
// two rows by their backing data; rows without data sort first and the
// comparator is never invoked for them.
type Column[T any] struct {
	title    Cell
	less     func(a, b *T) bool
	width    int
	minWidth int
	custom   bool
	expand   bool
	state    SortState
}

// NewColumn returns a column headed by title. A nil less leaves the column
// unsortable; header clicks on it do nothing.
func NewColumn[T any](title Cell, less func(a, b *T) bool) *Column[T] {
	return &Column[T]{title: title, minWidth: defaultMinColumnWidth, less: less}
}

// Title returns the header cell.
func (c *Column[T]) Title() Cell { return c.title }

// Sortable reports whether the column carries a comparator.
func (c *Column[T]) Sortable() bool { return c.less != nil }

// SortState returns the column's current sort condition.
func (c *Column[T]) SortState() SortState { return c.state }

// Width returns the column's current width. Before the first layout this is
// the header's hinted width.
func (c *Column[T]) Width() int {
	if c.width > 0 {
		return c.width
	}
	if c.title != nil {
		return c.title.SizeHint().W
	}
	return 0
}

// SetWidth resizes the column. Widths below the minimum are rejected, not
// clamped. An explicitly set width sticks: auto-sizing will widen it for
// content but never narrow it back.
func (c *Column[T]) SetWidth(w int) {
	if w < c.minWidth {
		return
	}
	c.width = w
	c.custom = true
}

// MinWidth returns the narrowest width SetWidth accepts.
func (c *Column[T]) MinWidth() int { return c.minWidth }

// SetMinWidth adjusts the resize floor.
func (c *Column[T]) SetMinWidth(w int) { c.minWidth = w }

// Expand reports whether the column stretches to absorb leftover viewport
// width.
func (c *Column[T]) Expand() bool { return c.expand }

// SetExpand marks the column to absorb leftover viewport width. A manual
// resize turns this back off.
func (c *Column[T]) SetExpand(expand bool) { c.expand = expand }

// grow widens the column to w without marking it custom, used by layout
// auto-sizing. Never narrows.
func (c *Column[T]) grow(w int) {
	if w > c.Width() {
		c.width = w
	}
}
