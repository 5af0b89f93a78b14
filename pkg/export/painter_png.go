package export

import (
	"image/color"

	"git.sr.ht/~sbinet/gg"

	"github.com/vanderheijden86/trellis/pkg/treeview"
)

// pngPainter implements treeview.Painter over a gg raster context. One view
// unit maps to a cellW x cellH pixel block, so a layout computed in terminal
// cells keeps its proportions in the exported image.
type pngPainter struct {
	dc   *gg.Context
	cw   float64
	ch   float64
	fg   color.Color
	clip treeview.Rect
}

func newPNGPainter(dc *gg.Context, cellW, cellH int, fg color.Color) *pngPainter {
	return &pngPainter{dc: dc, cw: float64(cellW), ch: float64(cellH), fg: fg}
}

func (p *pngPainter) color(c color.Color) color.Color {
	if c == nil {
		return p.fg
	}
	return c
}

func (p *pngPainter) Clip() treeview.Rect { return p.clip }

func (p *pngPainter) SetClip(r treeview.Rect) {
	p.clip = r
	p.dc.ResetClip()
	p.dc.DrawRectangle(float64(r.X)*p.cw, float64(r.Y)*p.ch, float64(r.W)*p.cw, float64(r.H)*p.ch)
	p.dc.Clip()
}

func (p *pngPainter) Fill(r treeview.Rect, c color.Color) {
	if r.Empty() {
		return
	}
	p.dc.SetColor(p.color(c))
	p.dc.DrawRectangle(float64(r.X)*p.cw, float64(r.Y)*p.ch, float64(r.W)*p.cw, float64(r.H)*p.ch)
	p.dc.Fill()
}

func (p *pngPainter) Line(a, b treeview.Point, c color.Color) {
	p.dc.SetColor(p.color(c))
	p.dc.SetLineWidth(1)
	if a.Y == b.Y {
		y := (float64(a.Y) + 0.5) * p.ch
		p.dc.DrawLine(float64(min(a.X, b.X))*p.cw, y, float64(max(a.X, b.X)+1)*p.cw, y)
	} else {
		x := (float64(a.X) + 0.5) * p.cw
		p.dc.DrawLine(x, float64(min(a.Y, b.Y))*p.ch, x, float64(max(a.Y, b.Y)+1)*p.ch)
	}
	p.dc.Stroke()
}

func (p *pngPainter) DashedRect(r treeview.Rect, c color.Color) {
	if r.Empty() {
		return
	}
	p.dc.SetColor(p.color(c))
	p.dc.SetLineWidth(1)
	p.dc.SetDash(4, 3)
	// Half-pixel inset keeps the 1px stroke on whole pixels.
	p.dc.DrawRectangle(float64(r.X)*p.cw+0.5, float64(r.Y)*p.ch+0.5, float64(r.W)*p.cw-1, float64(r.H)*p.ch-1)
	p.dc.Stroke()
	p.dc.SetDash()
}

func (p *pngPainter) Indicator(r treeview.Rect, expanded bool, c color.Color) {
	if r.Empty() {
		return
	}
	x := float64(r.X) * p.cw
	y := float64(r.Y) * p.ch
	w := float64(r.W) * p.cw
	h := float64(r.H) * p.ch
	ix := w * 0.2
	iy := h * 0.25
	p.dc.SetColor(p.color(c))
	p.dc.NewSubPath()
	if expanded {
		p.dc.MoveTo(x+ix, y+iy)
		p.dc.LineTo(x+w-ix, y+iy)
		p.dc.LineTo(x+w/2, y+h-iy)
	} else {
		p.dc.MoveTo(x+ix, y+iy)
		p.dc.LineTo(x+w-ix, y+h/2)
		p.dc.LineTo(x+ix, y+h-iy)
	}
	p.dc.ClosePath()
	p.dc.Fill()
}

func (p *pngPainter) Text(pos treeview.Point, s string, c color.Color) {
	if s == "" {
		return
	}
	p.dc.SetColor(p.color(c))
	p.dc.DrawStringAnchored(s, float64(pos.X)*p.cw+1, (float64(pos.Y)+0.5)*p.ch, 0, 0.5)
}
