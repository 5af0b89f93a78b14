package treeview_test

import (
	"fmt"
	"testing"

	"github.com/vanderheijden86/trellis/pkg/treeview"
)

// addTextRows appends one text row per label so draws are observable as
// text ops in the recording painter.
func addTextRows(tr *treeview.Tree[string], parent *treeview.Node[string], labels ...string) []*treeview.Node[string] {
	out := make([]*treeview.Node[string], 0, len(labels))
	for _, l := range labels {
		l := l
		n := treeview.NewNode(&l, &treeview.TextCell{Text: l})
		tr.Append(parent, n)
		out = append(out, n)
	}
	return out
}

func textView(tr *treeview.Tree[string], w, h int) *treeview.View[string] {
	v := treeview.NewView(treeview.NewColumn[string](fixedCell{w: 3, h: 1}, nil))
	v.SetTree(tr)
	v.SetViewport(w, h)
	v.HideColumnHeaders()
	v.SetIndent(2)
	v.SetTableMode(true)
	return v
}

// Only rows inside the viewport are visited: a hundred-row tree draws
// exactly the ten rows the window shows.
func TestDrawVisitsOnlyVisibleRows(t *testing.T) {
	tr := treeview.NewTree[string]()
	var names []string
	for i := 0; i < 100; i++ {
		names = append(names, fmt.Sprintf("r%d", i))
	}
	addTextRows(tr, nil, names...)
	v := textView(tr, 20, 10)

	p := newRecordingPainter(20, 10)
	v.Draw(p, treeview.Rect{W: 20, H: 10})

	got := p.texts()
	if len(got) != 10 {
		t.Fatalf("drew %d rows, want 10: %v", len(got), got)
	}
	if got[0] != "r0" || got[9] != "r9" {
		t.Errorf("drawn rows %v, want r0..r9", got)
	}
}

// After scrolling, the walk starts at the first row under the window, found
// through the position index rather than by scanning from the top.
func TestDrawStartsAtScrollOffset(t *testing.T) {
	tr := treeview.NewTree[string]()
	var names []string
	for i := 0; i < 100; i++ {
		names = append(names, fmt.Sprintf("r%d", i))
	}
	addTextRows(tr, nil, names...)
	v := textView(tr, 20, 10)
	v.ScrollTo(45)

	p := newRecordingPainter(20, 10)
	v.Draw(p, treeview.Rect{W: 20, H: 10})

	got := p.texts()
	if len(got) != 10 || got[0] != "r45" || got[9] != "r54" {
		t.Errorf("drawn rows %v, want r45..r54", got)
	}
}

func TestDrawSkipsCollapsedSubtrees(t *testing.T) {
	tr := treeview.NewTree[string]()
	roots := addTextRows(tr, nil, "a", "b")
	addTextRows(tr, roots[0], "a1", "a2")
	v := textView(tr, 20, 10)
	v.Collapse(roots[0])

	p := newRecordingPainter(20, 10)
	v.Draw(p, treeview.Rect{W: 20, H: 10})

	if got := p.texts(); !equalStrings(got, []string{"a", "b"}) {
		t.Errorf("drawn rows %v, want [a b]", got)
	}
}

// A clip narrower than the viewport trims the walk further: rows wholly
// outside the painter's clip are never visited.
func TestDrawHonorsPainterClip(t *testing.T) {
	tr := treeview.NewTree[string]()
	var names []string
	for i := 0; i < 20; i++ {
		names = append(names, fmt.Sprintf("r%d", i))
	}
	addTextRows(tr, nil, names...)
	v := textView(tr, 20, 20)

	p := newRecordingPainter(20, 20)
	p.SetClip(treeview.Rect{X: 0, Y: 5, W: 20, H: 3})
	v.Draw(p, treeview.Rect{W: 20, H: 20})

	if got := p.texts(); !equalStrings(got, []string{"r5", "r6", "r7"}) {
		t.Errorf("drawn rows %v, want r5..r7", got)
	}
}

func TestDrawRestoresPainterClip(t *testing.T) {
	tr := treeview.NewTree[string]()
	addTextRows(tr, nil, "a")
	v := textView(tr, 20, 10)

	p := newRecordingPainter(20, 10)
	before := p.Clip()
	v.Draw(p, treeview.Rect{W: 20, H: 10})

	if p.Clip() != before {
		t.Errorf("clip = %+v after Draw, want the original %+v", p.Clip(), before)
	}
}

func TestDrawHeaderTitlesAndSortMarker(t *testing.T) {
	tr := treeview.NewTree[string]()
	addTextRows(tr, nil, "b", "a")
	col := treeview.NewColumn[string](&treeview.TextCell{Text: "Name"}, func(a, b *string) bool { return *a < *b })
	v := treeview.NewView(col)
	v.SetTree(tr)
	v.SetViewport(30, 10)
	v.SetTableMode(true)
	v.SortBy(0, treeview.Ascending)

	p := newRecordingPainter(30, 10)
	v.Draw(p, treeview.Rect{W: 30, H: 10})

	texts := p.texts()
	hasTitle, hasMarker := false, false
	for _, s := range texts {
		if s == "Name" {
			hasTitle = true
		}
		if s == "^" {
			hasMarker = true
		}
	}
	if !hasTitle || !hasMarker {
		t.Errorf("header texts = %v, want the title and an ascending marker", texts)
	}

	v.SortBy(0, treeview.Descending)
	p.reset()
	v.Draw(p, treeview.Rect{W: 30, H: 10})
	hasMarker = false
	for _, s := range p.texts() {
		if s == "v" {
			hasMarker = true
		}
	}
	if !hasMarker {
		t.Errorf("no descending marker after toggling: %v", p.texts())
	}
}

// The selected row gets its fill and the cursor row its dashed outline.
func TestDrawSelectionAndCursor(t *testing.T) {
	tr := treeview.NewTree[string]()
	rows := addTextRows(tr, nil, "r0", "r1", "r2")
	v := textView(tr, 20, 10)
	pal := treeview.DefaultPalette()
	v.SetTheme(pal)
	v.Select(rows[2])

	p := newRecordingPainter(20, 10)
	v.Draw(p, treeview.Rect{W: 20, H: 10})

	filled, outlined := false, false
	for _, op := range p.ops {
		if op.kind == "fill" && op.col == pal.RowSel && op.rect.Y == 2 {
			filled = true
		}
		if op.kind == "dashed" && op.col == pal.Cursor && op.rect.Y == 2 {
			outlined = true
		}
	}
	if !filled {
		t.Errorf("selected row fill missing")
	}
	if !outlined {
		t.Errorf("cursor outline missing")
	}
}

func TestDrawHorizontalGridLines(t *testing.T) {
	tr := treeview.NewTree[string]()
	addTextRows(tr, nil, "r0", "r1", "r2")
	v := textView(tr, 20, 10)
	v.SetGridLines(treeview.GridHorizontal)

	p := newRecordingPainter(20, 10)
	v.Draw(p, treeview.Rect{W: 20, H: 10})

	// One separator under each of the three rows.
	if got := p.count("line"); got != 3 {
		t.Errorf("drew %d grid lines, want 3", got)
	}
}

func TestDrawVerticalGridLines(t *testing.T) {
	tr := treeview.NewTree[string]()
	s0, s1 := "x", "y"
	n0 := treeview.NewNode(&s0, &treeview.TextCell{Text: s0}, &treeview.TextCell{Text: "1"})
	n1 := treeview.NewNode(&s1, &treeview.TextCell{Text: s1}, &treeview.TextCell{Text: "2"})
	tr.Append(nil, n0)
	tr.Append(nil, n1)
	v := treeview.NewView(
		treeview.NewColumn[string](fixedCell{w: 5, h: 1}, nil),
		treeview.NewColumn[string](fixedCell{w: 5, h: 1}, nil),
	)
	v.SetTree(tr)
	v.SetViewport(20, 10)
	v.HideColumnHeaders()
	v.SetTableMode(true)
	v.SetGridLines(treeview.GridVertical)

	p := newRecordingPainter(20, 10)
	v.Draw(p, treeview.Rect{W: 20, H: 10})

	// One separator per column edge.
	if got := p.count("line"); got != 2 {
		t.Errorf("drew %d column lines, want 2", got)
	}
}

// Branch rows carry a collapse marker, leaves a dot; collapsing flips the
// marker direction.
func TestDrawTreeChrome(t *testing.T) {
	tr := treeview.NewTree[string]()
	roots := addTextRows(tr, nil, "a", "b")
	addTextRows(tr, roots[0], "a1")
	v := treeview.NewView(treeview.NewColumn[string](fixedCell{w: 3, h: 1}, nil))
	v.SetTree(tr)
	v.SetViewport(30, 10)
	v.HideColumnHeaders()
	v.SetIndent(4)

	p := newRecordingPainter(30, 10)
	v.Draw(p, treeview.Rect{W: 30, H: 10})

	if got := p.count("indicator-expanded"); got != 1 {
		t.Errorf("expanded markers = %d, want 1", got)
	}
	if p.count("line") == 0 {
		t.Errorf("no connector lines for an expanded branch")
	}

	v.Collapse(roots[0])
	p.reset()
	v.Draw(p, treeview.Rect{W: 30, H: 10})
	if got := p.count("indicator-collapsed"); got != 1 {
		t.Errorf("collapsed markers = %d, want 1", got)
	}
	if got := p.count("indicator-expanded"); got != 0 {
		t.Errorf("expanded markers = %d after collapse, want 0", got)
	}
}

// During a drag the resolved zone paints its overlay on the target row.
func TestDrawDropHint(t *testing.T) {
	tr := treeview.NewTree[string]()
	addRows(tr, nil, 8, "aa", "bb")
	v := indexView(tr)
	v.SetViewport(40, 20)

	v.HandleMouse(press(3, 1))
	v.HandleMouse(move(3, 12)) // middle of bb: child zone

	p := newRecordingPainter(40, 20)
	v.Draw(p, treeview.Rect{W: 40, H: 20})

	hinted := false
	for _, op := range p.ops {
		if op.kind == "dashed" && op.rect.Y == 8 && op.rect.H == 8 {
			hinted = true
		}
	}
	if !hinted {
		t.Errorf("no child-zone overlay on the target row")
	}

	v.HandleMouse(move(3, 9)) // top quarter: above zone
	p.reset()
	v.Draw(p, treeview.Rect{W: 40, H: 20})
	edged := false
	for _, op := range p.ops {
		if op.kind == "line" && op.a.Y == 8 && op.b.Y == 8 {
			edged = true
		}
	}
	if !edged {
		t.Errorf("no above-zone edge line on the target row")
	}
}
