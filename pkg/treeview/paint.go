package treeview

import "image/color"

// Painter is the drawing surface the view and its cells render to. The
// engine never touches pixels or terminal escapes directly; implementations
// live in pkg/ui (terminal grid) and pkg/export (PNG and SVG).
//
// All operations honor the current clip rectangle. A nil color means the
// painter's default foreground.
type Painter interface {
	// Clip returns the active clip rectangle.
	Clip() Rect
	// SetClip replaces the active clip rectangle.
	SetClip(r Rect)
	// Fill paints a solid rectangle.
	Fill(r Rect, c color.Color)
	// Line draws an axis-aligned line segment from a to b inclusive.
	Line(a, b Point, c color.Color)
	// DashedRect outlines a rectangle with a dashed stroke.
	DashedRect(r Rect, c color.Color)
	// Indicator draws a collapse/expand marker filling r, pointing down
	// when expanded and right when collapsed.
	Indicator(r Rect, expanded bool, c color.Color)
	// Text draws a single line of text with its top-left corner at pos.
	Text(pos Point, s string, c color.Color)
}

// Theme supplies the colors the view needs for its own chrome. The engine
// only invokes these lookups; it never inspects the returned colors. A nil
// result skips the corresponding paint, leaving the background untouched.
type Theme interface {
	// RowColor returns the background for a row in the given state.
	RowColor(st State) color.Color
	// HeaderColor returns the column header background and text colors.
	HeaderColor() (bg, fg color.Color)
	// GridColor returns the grid line color.
	GridColor() color.Color
	// TreeLineColor returns the color of the connector lines between
	// parents and children.
	TreeLineColor() color.Color
	// IndicatorColor returns the collapse/expand marker color, brighter
	// when the pointer hovers the marker's hotzone.
	IndicatorColor(hovered bool) color.Color
	// CursorColor returns the keyboard cursor outline color.
	CursorColor() color.Color
	// DropColor returns the drop-target overlay color.
	DropColor() color.Color
}

// Palette is a Theme backed by plain color fields. The zero value draws no
// chrome at all, which keeps recording painters quiet in tests.
type Palette struct {
	Row       color.Color
	RowSel    color.Color
	RowHover  color.Color
	HeaderBg  color.Color
	HeaderFg  color.Color
	Grid      color.Color
	TreeLine  color.Color
	Marker    color.Color
	MarkerHot color.Color
	Cursor    color.Color
	Drop      color.Color
}

// DefaultPalette returns a neutral grayscale theme that reads on both light
// and dark surfaces.
func DefaultPalette() *Palette {
	return &Palette{
		RowSel:    color.RGBA{R: 0x2f, G: 0x55, B: 0x8a, A: 0xff},
		RowHover:  color.RGBA{R: 0x3a, G: 0x3f, B: 0x4a, A: 0xff},
		HeaderBg:  color.RGBA{R: 0x20, G: 0x24, B: 0x2b, A: 0xff},
		HeaderFg:  color.RGBA{R: 0xd8, G: 0xdc, B: 0xe2, A: 0xff},
		Grid:      color.RGBA{R: 0x3c, G: 0x41, B: 0x4b, A: 0xff},
		TreeLine:  color.RGBA{R: 0x5c, G: 0x63, B: 0x70, A: 0xff},
		Marker:    color.RGBA{R: 0x9a, G: 0xa3, B: 0xb2, A: 0xff},
		MarkerHot: color.RGBA{R: 0xe8, G: 0xc4, B: 0x5e, A: 0xff},
		Cursor:    color.RGBA{R: 0xc8, G: 0xce, B: 0xd6, A: 0xff},
		Drop:      color.RGBA{R: 0x4f, G: 0x8a, B: 0x5a, A: 0xff},
	}
}

func (p *Palette) RowColor(st State) color.Color {
	switch {
	case st.Selected:
		return p.RowSel
	case st.Hovered:
		return p.RowHover
	default:
		return p.Row
	}
}

func (p *Palette) HeaderColor() (bg, fg color.Color) { return p.HeaderBg, p.HeaderFg }

func (p *Palette) GridColor() color.Color { return p.Grid }

func (p *Palette) TreeLineColor() color.Color { return p.TreeLine }

func (p *Palette) IndicatorColor(hovered bool) color.Color {
	if hovered {
		return p.MarkerHot
	}
	return p.Marker
}

func (p *Palette) CursorColor() color.Color { return p.Cursor }

func (p *Palette) DropColor() color.Color { return p.Drop }

// Scrollbar is the narrow contract between the view and whatever renders its
// scrollbars. Value is normalized to [0, 1] over the scrollable range.
type Scrollbar interface {
	Visible() bool
	SetVisible(v bool)
	Value() float64
	SetValue(v float64)
}

// BasicScrollbar is a plain value holder satisfying Scrollbar. It carries no
// geometry; rendering is the host's concern.
type BasicScrollbar struct {
	visible bool
	value   float64
}

func (s *BasicScrollbar) Visible() bool { return s.visible }

func (s *BasicScrollbar) SetVisible(v bool) { s.visible = v }

func (s *BasicScrollbar) Value() float64 { return s.value }

// SetValue clamps v to [0, 1].
func (s *BasicScrollbar) SetValue(v float64) {
	if v < 0 {
		v = 0
	} else if v > 1 {
		v = 1
	}
	s.value = v
}
