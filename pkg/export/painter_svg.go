package export

import (
	"fmt"
	"image/color"

	"github.com/ajstarks/svgo"

	"github.com/vanderheijden86/trellis/pkg/treeview"
)

// svgPainter implements treeview.Painter over an svgo canvas. Every SetClip
// emits a clipPath definition and opens a group bound to it, so overdraw
// behaves the same as on the raster backend. close must run before the
// canvas ends to balance the last group.
type svgPainter struct {
	canvas  *svg.SVG
	cw      int
	ch      int
	fg      color.Color
	clip    treeview.Rect
	clipSeq int
	grouped bool
}

func newSVGPainter(canvas *svg.SVG, cellW, cellH int, fg color.Color) *svgPainter {
	return &svgPainter{canvas: canvas, cw: cellW, ch: cellH, fg: fg}
}

func (p *svgPainter) color(c color.Color) color.Color {
	if c == nil {
		return p.fg
	}
	return c
}

func (p *svgPainter) Clip() treeview.Rect { return p.clip }

func (p *svgPainter) SetClip(r treeview.Rect) {
	p.clip = r
	if p.grouped {
		p.canvas.Gend()
	}
	p.clipSeq++
	id := fmt.Sprintf("clip%d", p.clipSeq)
	p.canvas.ClipPath(fmt.Sprintf(`id="%s"`, id))
	p.canvas.Rect(r.X*p.cw, r.Y*p.ch, r.W*p.cw, r.H*p.ch)
	p.canvas.ClipEnd()
	p.canvas.Group(fmt.Sprintf(`clip-path="url(#%s)"`, id))
	p.grouped = true
}

// close ends the group opened by the last SetClip.
func (p *svgPainter) close() {
	if p.grouped {
		p.canvas.Gend()
		p.grouped = false
	}
}

func (p *svgPainter) Fill(r treeview.Rect, c color.Color) {
	if r.Empty() {
		return
	}
	p.canvas.Rect(r.X*p.cw, r.Y*p.ch, r.W*p.cw, r.H*p.ch, fmt.Sprintf("fill:%s", css(p.color(c))))
}

func (p *svgPainter) Line(a, b treeview.Point, c color.Color) {
	style := fmt.Sprintf("stroke:%s;stroke-width:1", css(p.color(c)))
	if a.Y == b.Y {
		y := a.Y*p.ch + p.ch/2
		p.canvas.Line(min(a.X, b.X)*p.cw, y, (max(a.X, b.X)+1)*p.cw, y, style)
	} else {
		x := a.X*p.cw + p.cw/2
		p.canvas.Line(x, min(a.Y, b.Y)*p.ch, x, (max(a.Y, b.Y)+1)*p.ch, style)
	}
}

func (p *svgPainter) DashedRect(r treeview.Rect, c color.Color) {
	if r.Empty() {
		return
	}
	p.canvas.Rect(r.X*p.cw, r.Y*p.ch, r.W*p.cw, r.H*p.ch,
		fmt.Sprintf("fill:none;stroke:%s;stroke-width:1;stroke-dasharray:4,3", css(p.color(c))))
}

func (p *svgPainter) Indicator(r treeview.Rect, expanded bool, c color.Color) {
	if r.Empty() {
		return
	}
	x := r.X * p.cw
	y := r.Y * p.ch
	w := r.W * p.cw
	h := r.H * p.ch
	ix := w / 5
	iy := h / 4
	var xs, ys []int
	if expanded {
		xs = []int{x + ix, x + w - ix, x + w/2}
		ys = []int{y + iy, y + iy, y + h - iy}
	} else {
		xs = []int{x + ix, x + w - ix, x + ix}
		ys = []int{y + iy, y + h/2, y + h - iy}
	}
	p.canvas.Polygon(xs, ys, fmt.Sprintf("fill:%s", css(p.color(c))))
}

func (p *svgPainter) Text(pos treeview.Point, s string, c color.Color) {
	if s == "" {
		return
	}
	p.canvas.Text(pos.X*p.cw+1, pos.Y*p.ch+p.ch/2, s,
		fmt.Sprintf("fill:%s;font-size:13px;font-family:monospace;dominant-baseline:central", css(p.color(c))))
}
