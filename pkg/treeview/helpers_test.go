package treeview_test

import (
	"image/color"

	"github.com/vanderheijden86/trellis/pkg/treeview"
)

// fixedCell hints a fixed size and draws nothing, so tests control row
// heights and column widths exactly.
type fixedCell struct {
	w, h int
}

func (c fixedCell) SizeHint() treeview.Size { return treeview.Size{W: c.w, H: c.h} }

func (c fixedCell) Draw(treeview.Painter, treeview.Rect, treeview.State) {}

// addRows appends one node per label under parent (nil for roots), each
// carrying a single fixed-size cell of the given height.
func addRows(tr *treeview.Tree[string], parent *treeview.Node[string], h int, labels ...string) []*treeview.Node[string] {
	out := make([]*treeview.Node[string], 0, len(labels))
	for _, label := range labels {
		label := label
		n := treeview.NewNode(&label, fixedCell{w: len(label), h: h})
		tr.Append(parent, n)
		out = append(out, n)
	}
	return out
}

func label(n *treeview.Node[string]) string {
	if n == nil || n.Data() == nil {
		return "<nil>"
	}
	return *n.Data()
}

func labels(nodes []*treeview.Node[string]) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = label(n)
	}
	return out
}

// visibleLabels reads the visible row sequence by hopping the position
// index: each row's end offset is the next row's start. Spans must be fresh,
// so callers run Layout first.
func visibleLabels(tr *treeview.Tree[string]) []string {
	var out []string
	off := 0
	for {
		n := tr.NodeAtOffset(off)
		if n == nil {
			return out
		}
		out = append(out, label(n))
		off = n.Span().Pos + n.Span().Len
	}
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// paintOp is one recorded painter call.
type paintOp struct {
	kind string
	rect treeview.Rect
	a, b treeview.Point
	text string
	col  color.Color
}

// recordingPainter captures draw calls so tests can assert on what the view
// painted without a real surface.
type recordingPainter struct {
	clip treeview.Rect
	ops  []paintOp
}

func newRecordingPainter(w, h int) *recordingPainter {
	return &recordingPainter{clip: treeview.Rect{W: w, H: h}}
}

func (p *recordingPainter) Clip() treeview.Rect { return p.clip }

func (p *recordingPainter) SetClip(r treeview.Rect) { p.clip = r }

func (p *recordingPainter) Fill(r treeview.Rect, c color.Color) {
	p.ops = append(p.ops, paintOp{kind: "fill", rect: r, col: c})
}

func (p *recordingPainter) Line(a, b treeview.Point, c color.Color) {
	p.ops = append(p.ops, paintOp{kind: "line", a: a, b: b, col: c})
}

func (p *recordingPainter) DashedRect(r treeview.Rect, c color.Color) {
	p.ops = append(p.ops, paintOp{kind: "dashed", rect: r, col: c})
}

func (p *recordingPainter) Indicator(r treeview.Rect, expanded bool, c color.Color) {
	kind := "indicator-collapsed"
	if expanded {
		kind = "indicator-expanded"
	}
	p.ops = append(p.ops, paintOp{kind: kind, rect: r, col: c})
}

func (p *recordingPainter) Text(pos treeview.Point, s string, c color.Color) {
	p.ops = append(p.ops, paintOp{kind: "text", a: pos, text: s, col: c})
}

func (p *recordingPainter) count(kind string) int {
	n := 0
	for _, op := range p.ops {
		if op.kind == kind {
			n++
		}
	}
	return n
}

func (p *recordingPainter) texts() []string {
	var out []string
	for _, op := range p.ops {
		if op.kind == "text" {
			out = append(out, op.text)
		}
	}
	return out
}

func (p *recordingPainter) reset() {
	p.ops = p.ops[:0]
}
