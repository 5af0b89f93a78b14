package ui

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/vanderheijden86/trellis/pkg/treeview"
)

// Directional stubs accumulated per cell while the engine draws its
// connector lines. The glyph for a cell is derived from the merged mask, so
// an elbow that later gains a continuation stroke upgrades from └ to ├
// without the engine knowing about box-drawing characters.
const (
	stubUp uint8 = 1 << iota
	stubDown
	stubLeft
	stubRight
)

func stubGlyph(s uint8) (rune, bool) {
	switch s {
	case stubUp, stubDown, stubUp | stubDown:
		return '│', true
	case stubLeft, stubRight, stubLeft | stubRight:
		return '─', true
	case stubUp | stubRight:
		return '└', true
	case stubUp | stubLeft:
		return '┘', true
	case stubDown | stubRight:
		return '┌', true
	case stubDown | stubLeft:
		return '┐', true
	case stubUp | stubDown | stubRight:
		return '├', true
	case stubUp | stubDown | stubLeft:
		return '┤', true
	case stubUp | stubLeft | stubRight:
		return '┴', true
	case stubDown | stubLeft | stubRight:
		return '┬', true
	case stubUp | stubDown | stubLeft | stubRight:
		return '┼', true
	}
	return 0, false
}

// wideTail marks the second column of a double-width rune so the renderer
// knows to emit nothing for it.
const wideTail = rune(-1)

type gridCell struct {
	r     rune
	fg    color.Color
	bg    color.Color
	stubs uint8
}

// cellPainter implements treeview.Painter on a terminal character grid. One
// view unit is one cell. Render turns the grid into styled lines through
// the theme's lipgloss renderer.
type cellPainter struct {
	w, h   int
	cells  []gridCell
	theme  Theme
	styles map[string]lipgloss.Style
	clip   treeview.Rect
}

func newCellPainter(theme Theme, w, h int) *cellPainter {
	p := &cellPainter{theme: theme, styles: make(map[string]lipgloss.Style)}
	p.Resize(w, h)
	return p
}

// Resize reallocates the grid and clears it.
func (p *cellPainter) Resize(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	p.w, p.h = w, h
	p.cells = make([]gridCell, w*h)
	p.Reset()
}

// Reset blanks the grid and widens the clip to the whole surface.
func (p *cellPainter) Reset() {
	for i := range p.cells {
		p.cells[i] = gridCell{r: ' '}
	}
	p.clip = treeview.Rect{W: p.w, H: p.h}
}

func (p *cellPainter) at(x, y int) *gridCell {
	return &p.cells[y*p.w+x]
}

func (p *cellPainter) inClip(x, y int) bool {
	return p.clip.Contains(treeview.Point{X: x, Y: y}) && x >= 0 && y >= 0 && x < p.w && y < p.h
}

func (p *cellPainter) Clip() treeview.Rect { return p.clip }

func (p *cellPainter) SetClip(r treeview.Rect) { p.clip = r }

func (p *cellPainter) Fill(r treeview.Rect, c color.Color) {
	if c == nil {
		return
	}
	if r.W == 1 && r.H == 1 {
		// Sub-cell fills are markers (the engine's leaf dot); a colored
		// bullet reads better than a solid block at character scale.
		if p.inClip(r.X, r.Y) {
			cell := p.at(r.X, r.Y)
			cell.r = '•'
			cell.fg = c
			cell.stubs = 0
		}
		return
	}
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			if !p.inClip(x, y) {
				continue
			}
			cell := p.at(x, y)
			cell.r = ' '
			cell.bg = c
			cell.fg = nil
			cell.stubs = 0
		}
	}
}

func (p *cellPainter) Line(a, b treeview.Point, c color.Color) {
	if a.X == b.X {
		y1, y2 := min(a.Y, b.Y), max(a.Y, b.Y)
		if y1 == y2 {
			// One-cell vertical segments arrive twice for rows whose stem
			// continues below: first the upper half, then the lower. Applying
			// up then down keeps └ distinct from ├ on single-height rows.
			s := stubUp
			if p.inClip(a.X, y1) && p.at(a.X, y1).stubs&stubUp != 0 {
				s = stubDown
			}
			p.mergeStub(a.X, y1, s, c)
			return
		}
		for y := y1; y <= y2; y++ {
			var s uint8
			if y > y1 {
				s |= stubUp
			}
			if y < y2 {
				s |= stubDown
			}
			p.mergeStub(a.X, y, s, c)
		}
		return
	}
	if a.Y != b.Y {
		return
	}
	x1, x2 := min(a.X, b.X), max(a.X, b.X)
	for x := x1; x <= x2; x++ {
		var s uint8
		if x > x1 {
			s |= stubLeft
		}
		if x < x2 {
			s |= stubRight
		}
		p.mergeStub(x, a.Y, s, c)
	}
}

func (p *cellPainter) mergeStub(x, y int, s uint8, c color.Color) {
	if !p.inClip(x, y) {
		return
	}
	cell := p.at(x, y)
	cell.stubs |= s
	if g, ok := stubGlyph(cell.stubs); ok {
		cell.r = g
	}
	if c != nil {
		cell.fg = c
	}
}

func (p *cellPainter) DashedRect(r treeview.Rect, c color.Color) {
	if r.Empty() {
		return
	}
	set := func(x, y int, g rune) {
		if !p.inClip(x, y) {
			return
		}
		cell := p.at(x, y)
		cell.r = g
		cell.stubs = 0
		if c != nil {
			cell.fg = c
		}
	}
	if r.H == 1 {
		// A full dashed outline would overwrite the row's text, so a
		// single-height rect renders as a tick at each end.
		set(r.X, r.Y, '┆')
		set(r.Right()-1, r.Y, '┆')
		return
	}
	for x := r.X + 1; x < r.Right()-1; x++ {
		set(x, r.Y, '┄')
		set(x, r.Bottom()-1, '┄')
	}
	for y := r.Y + 1; y < r.Bottom()-1; y++ {
		set(r.X, y, '┆')
		set(r.Right()-1, y, '┆')
	}
	set(r.X, r.Y, '╭')
	set(r.Right()-1, r.Y, '╮')
	set(r.X, r.Bottom()-1, '╰')
	set(r.Right()-1, r.Bottom()-1, '╯')
}

func (p *cellPainter) Indicator(r treeview.Rect, expanded bool, c color.Color) {
	if r.Empty() {
		return
	}
	g := '▸'
	if expanded {
		g = '▾'
	}
	x := r.X + r.W/2
	y := r.Y + r.H/2
	if !p.inClip(x, y) {
		return
	}
	cell := p.at(x, y)
	cell.r = g
	cell.stubs = 0
	if c != nil {
		cell.fg = c
	}
}

func (p *cellPainter) Text(pos treeview.Point, s string, c color.Color) {
	x := pos.X
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if p.inClip(x, pos.Y) {
			cell := p.at(x, pos.Y)
			// A double-width rune with its tail outside the clip would
			// spill a column, so it degrades to a space.
			if w == 2 && !p.inClip(x+1, pos.Y) {
				cell.r = ' '
			} else {
				cell.r = r
			}
			cell.fg = c
			cell.stubs = 0
		}
		if w == 2 && p.inClip(x+1, pos.Y) {
			cell := p.at(x+1, pos.Y)
			cell.r = wideTail
			cell.fg = c
			cell.stubs = 0
		}
		x += w
	}
}

// Render flattens the grid into styled terminal lines. Consecutive cells
// sharing colors are styled as one run to keep escape sequences short.
func (p *cellPainter) Render() string {
	var out strings.Builder
	var run strings.Builder
	for y := 0; y < p.h; y++ {
		if y > 0 {
			out.WriteByte('\n')
		}
		var runFg, runBg color.Color
		run.Reset()
		flush := func() {
			if run.Len() == 0 {
				return
			}
			out.WriteString(p.style(runFg, runBg).Render(run.String()))
			run.Reset()
		}
		for x := 0; x < p.w; x++ {
			cell := p.at(x, y)
			if cell.r == wideTail {
				continue
			}
			if !sameColor(cell.fg, runFg) || !sameColor(cell.bg, runBg) {
				flush()
				runFg, runBg = cell.fg, cell.bg
			}
			run.WriteRune(cell.r)
		}
		flush()
	}
	return out.String()
}

// RuneAt reads a single cell, for tests.
func (p *cellPainter) RuneAt(x, y int) rune {
	if x < 0 || y < 0 || x >= p.w || y >= p.h {
		return 0
	}
	r := p.at(x, y).r
	if r == wideTail {
		return 0
	}
	return r
}

// RowString reads one row as plain runes with no styling, for tests.
func (p *cellPainter) RowString(y int) string {
	if y < 0 || y >= p.h {
		return ""
	}
	var sb strings.Builder
	for x := 0; x < p.w; x++ {
		if r := p.at(x, y).r; r != wideTail {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

func (p *cellPainter) style(fg, bg color.Color) lipgloss.Style {
	key := cssHex(fg) + "/" + cssHex(bg)
	if st, ok := p.styles[key]; ok {
		return st
	}
	st := p.theme.Renderer.NewStyle()
	if fg != nil {
		st = st.Foreground(lipgloss.Color(cssHex(fg)))
	}
	if bg != nil {
		st = st.Background(lipgloss.Color(cssHex(bg)))
	}
	p.styles[key] = st
	return st
}

func sameColor(a, b color.Color) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ar, ag, ab, aa := a.RGBA()
	br, bg, bb, ba := b.RGBA()
	return ar == br && ag == bg && ab == bb && aa == ba
}

// cssHex renders a color as "#rrggbb" for lipgloss, empty for nil.
func cssHex(c color.Color) string {
	if c == nil {
		return ""
	}
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", uint8(r>>8), uint8(g>>8), uint8(b>>8))
}
