package treeview

import (
	"image/color"

	"github.com/mattn/go-runewidth"
)

// State describes the visual condition of the row a cell belongs to when it
// is asked to draw itself. The view fills the row background before the cell
// draws, so most cells only need the flags to pick a contrasting foreground.
type State struct {
	Selected bool
	Hovered  bool
	Cursor   bool
}

// Cell is one column's payload of a row. SizeHint reports the content size
// used for row heights and column auto-sizing; Draw renders into r, already
// clipped to the cell's visible region.
type Cell interface {
	SizeHint() Size
	Draw(p Painter, r Rect, st State)
}

// TextCell is a single line of text. Width is measured with go-runewidth so
// wide runes count double, matching what terminal painters render.
type TextCell struct {
	Text string

	// Color overrides the painter's default foreground. Nil keeps the
	// default.
	Color color.Color

	// Pad is the number of blank units kept on each side of the text.
	Pad int
}

// NewTextCell returns a text cell with a single unit of padding.
func NewTextCell(text string) *TextCell {
	return &TextCell{Text: text, Pad: 1}
}

func (c *TextCell) SizeHint() Size {
	return Size{W: runewidth.StringWidth(c.Text) + 2*c.Pad, H: 1}
}

func (c *TextCell) Draw(p Painter, r Rect, st State) {
	if r.Empty() {
		return
	}
	text := c.Text
	if avail := r.W - 2*c.Pad; runewidth.StringWidth(text) > avail {
		text = runewidth.Truncate(text, avail, "…")
	}
	p.Text(Point{X: r.X + c.Pad, Y: r.Y}, text, c.Color)
}

// EmptyCell occupies no space and draws nothing. Useful to pad rows that
// have no value for a column.
type EmptyCell struct{}

func (EmptyCell) SizeHint() Size { return Size{} }

func (EmptyCell) Draw(Painter, Rect, State) {}
