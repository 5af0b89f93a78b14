package treeview_test

import (
	"testing"

	"github.com/vanderheijden86/trellis/pkg/treeview"
)

// Positions are monotonic over the full traversal order: every node starts
// where the previous one ended, hidden rows contributing zero length.
func TestLayoutPositionsAreMonotonic(t *testing.T) {
	tr := treeview.NewTree[string]()
	roots := addRows(tr, nil, 3, "a", "b", "c")
	kids := addRows(tr, roots[0], 2, "a1", "a2")
	addRows(tr, kids[0], 4, "a1x")
	addRows(tr, roots[2], 5, "c1")
	v := indexView(tr)
	v.Collapse(kids[0])
	v.Layout()

	next := 0
	tr.Walk(func(n *treeview.Node[string]) treeview.Visit {
		sp := n.Span()
		if sp.Pos != next {
			t.Errorf("node %q: Pos = %d, want %d", label(n), sp.Pos, next)
		}
		next = sp.Pos + sp.Len
		return treeview.Continue
	})
	if got := v.VirtualSize().H; got != next {
		t.Errorf("VirtualSize().H = %d, want the walk total %d", got, next)
	}
}

// Collapsing a branch folds its rows out of the index: the subtree keeps
// the running position with zero length, later rows slide up, and the
// visible walk steps straight from the branch to its next sibling.
func TestCollapseFoldsSubtreeOut(t *testing.T) {
	tr := treeview.NewTree[string]()
	roots := addRows(tr, nil, 10, "A", "B")
	kids := addRows(tr, roots[0], 10, "A1", "A2")
	v := indexView(tr)

	if got := visibleLabels(tr); !equalStrings(got, []string{"A", "A1", "A2", "B"}) {
		t.Fatalf("visible rows = %v, want [A A1 A2 B]", got)
	}
	if sp := roots[1].Span(); sp.Pos != 30 || sp.Len != 10 {
		t.Fatalf("B span = %+v, want {30 10}", sp)
	}

	v.Collapse(roots[0])
	v.Layout()

	if got := visibleLabels(tr); !equalStrings(got, []string{"A", "B"}) {
		t.Errorf("visible rows = %v, want [A B]", got)
	}
	if sp := roots[1].Span(); sp.Pos != 10 || sp.Len != 10 {
		t.Errorf("B span = %+v, want {10 10}", sp)
	}
	for _, k := range kids {
		if sp := k.Span(); sp.Pos != 10 || sp.Len != 0 {
			t.Errorf("hidden %q span = %+v, want {10 0}", label(k), sp)
		}
	}
	if got := v.VirtualSize().H; got != 20 {
		t.Errorf("VirtualSize().H = %d, want 20", got)
	}
}

// Expanding again restores the exact spans from before the collapse.
func TestCollapseExpandRoundTrip(t *testing.T) {
	tr := treeview.NewTree[string]()
	roots := addRows(tr, nil, 7, "a", "b")
	kids := addRows(tr, roots[0], 3, "a1", "a2")
	addRows(tr, kids[1], 2, "a2x")
	v := indexView(tr)

	before := map[string]treeview.Span{}
	tr.Walk(func(n *treeview.Node[string]) treeview.Visit {
		before[label(n)] = n.Span()
		return treeview.Continue
	})

	v.Collapse(roots[0])
	v.Layout()
	v.Expand(roots[0])
	v.Layout()

	tr.Walk(func(n *treeview.Node[string]) treeview.Visit {
		if got := n.Span(); got != before[label(n)] {
			t.Errorf("node %q: span %+v after round trip, want %+v", label(n), got, before[label(n)])
		}
		return treeview.Continue
	})
}

// Horizontal grid lines add one unit to every row; without them a row is
// exactly its tallest cell hint.
func TestRowHeightGridAllowance(t *testing.T) {
	tr := treeview.NewTree[string]()
	addRows(tr, nil, 10, "a", "b")
	v := indexView(tr)

	if sp := tr.Roots()[0].Span(); sp.Len != 10 {
		t.Errorf("row length = %d without grid lines, want 10", sp.Len)
	}

	v.SetGridLines(treeview.GridHorizontal)
	v.Layout()
	if sp := tr.Roots()[0].Span(); sp.Len != 11 {
		t.Errorf("row length = %d with horizontal grid lines, want 11", sp.Len)
	}

	v.SetGridLines(treeview.GridVertical)
	v.Layout()
	if sp := tr.Roots()[0].Span(); sp.Len != 10 {
		t.Errorf("row length = %d with only vertical lines, want 10", sp.Len)
	}
}

func TestRowHeightIsTallestCell(t *testing.T) {
	tr := treeview.NewTree[string]()
	short := "s"
	n := treeview.NewNode(&short, fixedCell{w: 2, h: 1}, fixedCell{w: 2, h: 6})
	tr.Append(nil, n)
	v := treeview.NewView(
		treeview.NewColumn[string](fixedCell{w: 3, h: 1}, nil),
		treeview.NewColumn[string](fixedCell{w: 3, h: 1}, nil),
	)
	v.SetTree(tr)
	v.SetViewport(40, 40)
	v.HideColumnHeaders()
	v.Layout()

	if sp := n.Span(); sp.Len != 6 {
		t.Errorf("row length = %d, want the tallest cell 6", sp.Len)
	}
}

// Column auto-sizing keeps tracking content until the user resizes by
// hand: wider rows widen the column, shorter rows never narrow it.
func TestAutoSizeTracksContent(t *testing.T) {
	tr := treeview.NewTree[string]()
	addRows(tr, nil, 1, "abc")
	// Table mode from the start: width is pure content, no indent share.
	v := treeview.NewView(treeview.NewColumn[string](fixedCell{w: 3, h: 1}, nil))
	v.SetTableMode(true)
	v.SetTree(tr)
	v.SetViewport(40, 40)
	v.HideColumnHeaders()
	v.Layout()
	if got := v.ColumnAt(0).Width(); got != 3 {
		t.Fatalf("Width() = %d for 3-wide content, want 3", got)
	}

	addRows(tr, nil, 1, "abcdefgh")
	v.Layout()
	if got := v.ColumnAt(0).Width(); got != 8 {
		t.Errorf("Width() = %d after wider row, want 8", got)
	}

	v.Remove(tr.Roots()[1])
	v.Layout()
	if got := v.ColumnAt(0).Width(); got != 8 {
		t.Errorf("Width() = %d after removing the wide row, want still 8", got)
	}
}

// Outside table mode the first column absorbs the depth indent, so nested
// rows fit beside their tree lines.
func TestFirstColumnIncludesIndent(t *testing.T) {
	tr := treeview.NewTree[string]()
	roots := addRows(tr, nil, 1, "aa")
	addRows(tr, roots[0], 1, "bb")
	v := indexView(tr) // indent 2

	// Depth 2 content: 2 wide + 2*2 indent = 6.
	if got := v.ColumnAt(0).Width(); got != 6 {
		t.Errorf("Width() = %d, want 6 (content plus depth indent)", got)
	}
}

func TestExpandColumnsAbsorbLeftover(t *testing.T) {
	tr := treeview.NewTree[string]()
	addRows(tr, nil, 1, "a")
	fixed := treeview.NewColumn[string](fixedCell{w: 10, h: 1}, nil)
	first := treeview.NewColumn[string](fixedCell{w: 10, h: 1}, nil)
	second := treeview.NewColumn[string](fixedCell{w: 10, h: 1}, nil)
	first.SetExpand(true)
	second.SetExpand(true)
	v := treeview.NewView(fixed, first, second)
	tr.Roots()[0].SetCells(fixedCell{w: 1, h: 1}, fixedCell{w: 1, h: 1}, fixedCell{w: 1, h: 1})
	v.SetTree(tr)
	v.SetViewport(37, 20)
	v.HideColumnHeaders()
	v.SetTableMode(true)
	v.Layout()

	// Base widths 10+10+10 leave 7 over: shares of 4 and 3.
	if got := v.VirtualSize().W; got != 37 {
		t.Errorf("VirtualSize().W = %d, want the viewport width 37", got)
	}
}

func TestVirtualSizeIncludesHeader(t *testing.T) {
	tr := treeview.NewTree[string]()
	addRows(tr, nil, 5, "a", "b")
	v := treeview.NewView(treeview.NewColumn[string](fixedCell{w: 6, h: 2}, nil))
	v.SetTree(tr)
	v.SetViewport(40, 40)
	v.Layout()

	if got := v.VirtualSize().H; got != 12 {
		t.Errorf("VirtualSize().H = %d with a 2-high header, want 12", got)
	}

	v.HideColumnHeaders()
	v.Layout()
	if got := v.VirtualSize().H; got != 10 {
		t.Errorf("VirtualSize().H = %d with headers hidden, want 10", got)
	}
}

// In unroll mode the view reports its full content size, hides both
// scrollbars, and announces content size changes through OnResize.
func TestUnrollModeReportsContentSize(t *testing.T) {
	tr := treeview.NewTree[string]()
	roots := addRows(tr, nil, 4, "a", "b")
	addRows(tr, roots[0], 4, "a1")
	v := indexView(tr)
	v.SetMode(treeview.ModeUnroll)
	var sizes []treeview.Size
	v.OnResize = func(s treeview.Size) { sizes = append(sizes, s) }

	if got := v.SizeHint().H; got != 12 {
		t.Errorf("SizeHint().H = %d, want 12", got)
	}
	if v.VerticalScrollbar().Visible() || v.HorizontalScrollbar().Visible() {
		t.Errorf("scrollbars visible in unroll mode")
	}

	v.Collapse(roots[0])
	v.Layout()
	if got := v.SizeHint().H; got != 8 {
		t.Errorf("SizeHint().H = %d after collapse, want 8", got)
	}
	if len(sizes) == 0 || sizes[len(sizes)-1].H != 8 {
		t.Errorf("OnResize sizes = %v, want a final height of 8", sizes)
	}
}

func TestScrollClampsToRange(t *testing.T) {
	tr := treeview.NewTree[string]()
	names := make([]string, 20)
	for i := range names {
		names[i] = "r"
	}
	addRows(tr, nil, 1, names...)
	v := indexView(tr)
	v.SetViewport(40, 5)

	v.ScrollTo(7)
	if _, y := v.ScrollOffset(); y != 7 {
		t.Errorf("ScrollOffset() y = %d after ScrollTo(7), want 7", y)
	}

	v.ScrollTo(999)
	if _, y := v.ScrollOffset(); y != 15 {
		t.Errorf("ScrollOffset() y = %d past the end, want the max 15", y)
	}

	v.ScrollTo(-9)
	if _, y := v.ScrollOffset(); y != 0 {
		t.Errorf("ScrollOffset() y = %d before the start, want 0", y)
	}

	v.ScrollBy(3)
	v.ScrollBy(4)
	if _, y := v.ScrollOffset(); y != 7 {
		t.Errorf("ScrollOffset() y = %d after two ScrollBy calls, want 7", y)
	}
}

// EnsureVisible scrolls just far enough: down to expose a row below the
// window, up to expose one above, and not at all for rows already shown.
func TestEnsureVisibleScrollsMinimally(t *testing.T) {
	tr := treeview.NewTree[string]()
	names := make([]string, 20)
	for i := range names {
		names[i] = "r"
	}
	rows := addRows(tr, nil, 1, names...)
	v := indexView(tr)
	v.SetViewport(40, 5)
	v.Layout()

	v.EnsureVisible(rows[10])
	if _, y := v.ScrollOffset(); y != 6 {
		t.Errorf("scroll y = %d after EnsureVisible(row 10), want 6", y)
	}

	v.EnsureVisible(rows[10])
	if _, y := v.ScrollOffset(); y != 6 {
		t.Errorf("scroll y = %d after re-ensuring a visible row, want 6", y)
	}

	v.EnsureVisible(rows[2])
	if _, y := v.ScrollOffset(); y != 2 {
		t.Errorf("scroll y = %d after EnsureVisible(row 2), want 2", y)
	}

	v.EnsureVisible(nil)
	if _, y := v.ScrollOffset(); y != 2 {
		t.Errorf("scroll y = %d after EnsureVisible(nil), want 2", y)
	}
}

func TestSizeHintFollowsMode(t *testing.T) {
	tr := treeview.NewTree[string]()
	addRows(tr, nil, 1, "a", "b", "c")
	v := indexView(tr)
	v.SetViewport(30, 2)

	if got := v.SizeHint(); got.H != 2 {
		t.Errorf("scroll-mode SizeHint().H = %d, want the viewport 2", got.H)
	}

	v.SetMode(treeview.ModeUnroll)
	if got := v.SizeHint(); got.H != 3 {
		t.Errorf("unroll-mode SizeHint().H = %d, want the content 3", got.H)
	}
}

func TestSetIndentRejectsTinyValues(t *testing.T) {
	v := treeview.NewView(treeview.NewColumn[string](fixedCell{w: 3, h: 1}, nil))

	v.SetIndent(3)
	if got := v.Indent(); got != 3 {
		t.Errorf("Indent() = %d, want 3", got)
	}
	v.SetIndent(1)
	if got := v.Indent(); got != 3 {
		t.Errorf("Indent() = %d after rejected value, want 3", got)
	}
}

func TestLayoutPanicsWithoutTree(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("Layout without a tree did not panic")
		}
	}()
	v := treeview.NewView(treeview.NewColumn[string](fixedCell{w: 3, h: 1}, nil))
	v.Layout()
}

func TestDrawPanicsWithoutTree(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("Draw without a tree did not panic")
		}
	}()
	v := treeview.NewView(treeview.NewColumn[string](fixedCell{w: 3, h: 1}, nil))
	v.Draw(newRecordingPainter(10, 10), treeview.Rect{W: 10, H: 10})
}

func TestLayoutPanicsOnCellArityMismatch(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("Layout with mismatched cell count did not panic")
		}
	}()
	tr := treeview.NewTree[string]()
	s := "lopsided"
	tr.Append(nil, treeview.NewNode(&s, fixedCell{w: 1, h: 1}, fixedCell{w: 1, h: 1}))
	v := treeview.NewView(treeview.NewColumn[string](fixedCell{w: 3, h: 1}, nil))
	v.SetTree(tr)
	v.Layout()
}
