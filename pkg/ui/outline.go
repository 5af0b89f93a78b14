package ui

import (
	"fmt"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"github.com/vanderheijden86/trellis/pkg/debug"
	"github.com/vanderheijden86/trellis/pkg/model"
	"github.com/vanderheijden86/trellis/pkg/treeview"
)

// OutlineColumns returns the outline's column set in display order. The
// first column is the tree column; every column is sortable on its entry
// field.
func OutlineColumns() []*treeview.Column[model.Entry] {
	return []*treeview.Column[model.Entry]{
		treeview.NewColumn[model.Entry](treeview.NewTextCell("Title"),
			func(a, b *model.Entry) bool { return a.Title < b.Title }),
		treeview.NewColumn[model.Entry](treeview.NewTextCell("Kind"),
			func(a, b *model.Entry) bool { return kindRank(a.Kind) < kindRank(b.Kind) }),
		treeview.NewColumn[model.Entry](treeview.NewTextCell("Status"),
			func(a, b *model.Entry) bool { return statusRank(a.Status) < statusRank(b.Status) }),
		treeview.NewColumn[model.Entry](treeview.NewTextCell("Pri"),
			func(a, b *model.Entry) bool { return a.Priority < b.Priority }),
		treeview.NewColumn[model.Entry](treeview.NewTextCell("Size"),
			func(a, b *model.Entry) bool { return a.Size < b.Size }),
		treeview.NewColumn[model.Entry](treeview.NewTextCell("Updated"),
			func(a, b *model.Entry) bool { return a.Updated.Before(b.Updated) }),
	}
}

func kindRank(k model.Kind) int {
	switch k {
	case model.KindGroup:
		return 0
	case model.KindTask:
		return 1
	case model.KindNote:
		return 2
	case model.KindLink:
		return 3
	default:
		return 4
	}
}

func statusRank(s model.Status) int {
	switch s {
	case model.StatusActive:
		return 0
	case model.StatusBlocked:
		return 1
	case model.StatusTodo:
		return 2
	case model.StatusDone:
		return 3
	default:
		return 4
	}
}

// entryCells builds the row cells matching OutlineColumns order.
func entryCells(e *model.Entry, t Theme) []treeview.Cell {
	kindBadge, kindColor := t.GetKindBadge(string(e.Kind))
	status := string(e.Status)
	return []treeview.Cell{
		&treeview.TextCell{Text: e.Title, Pad: 1},
		&treeview.TextCell{Text: kindBadge, Color: t.Resolve(kindColor), Pad: 1},
		&treeview.TextCell{Text: StatusGlyph(status) + " " + status, Color: t.Resolve(t.GetStatusColor(status)), Pad: 1},
		&treeview.TextCell{Text: fmt.Sprintf("P%d", e.Priority), Pad: 1},
		&treeview.TextCell{Text: FormatSize(e.Size), Pad: 1},
		&treeview.TextCell{Text: FormatTimeRel(e.Updated), Color: t.Resolve(t.Muted), Pad: 1},
	}
}

// BuildTree assembles flat entries into a tree, keeping input order among
// siblings. An entry becomes a root when it has no parent, names a parent
// that is not in the set, or is its own parent. Parent cycles are broken by
// promoting the earliest member of each cycle to a root.
func BuildTree(entries []model.Entry, theme Theme) (*treeview.Tree[model.Entry], map[string]*treeview.Node[model.Entry]) {
	tr := treeview.NewTree[model.Entry]()
	nodeByID := make(map[string]*treeview.Node[model.Entry], len(entries))
	if len(entries) == 0 {
		return tr, nodeByID
	}

	byID := make(map[string]*model.Entry, len(entries))
	for i := range entries {
		byID[entries[i].ID] = &entries[i]
	}
	cut := cyclicParents(entries, byID)

	childrenOf := make(map[string][]*model.Entry, len(entries))
	var roots []*model.Entry
	for i := range entries {
		e := &entries[i]
		pid := e.ParentID
		if pid == "" || pid == e.ID || byID[pid] == nil || cut[e.ID] {
			roots = append(roots, e)
			continue
		}
		childrenOf[pid] = append(childrenOf[pid], e)
	}

	var add func(parent *treeview.Node[model.Entry], e *model.Entry)
	add = func(parent *treeview.Node[model.Entry], e *model.Entry) {
		n := treeview.NewNode(e, entryCells(e, theme)...)
		tr.Append(parent, n)
		nodeByID[e.ID] = n
		for _, c := range childrenOf[e.ID] {
			add(n, c)
		}
	}
	for _, r := range roots {
		add(nil, r)
	}
	return tr, nodeByID
}

// cyclicParents finds parent-link cycles and returns the set of entry IDs
// whose parent link must be severed. Parent links give every node at most
// one incoming edge, so each strongly connected component with more than
// one member is a single simple cycle and one severed link breaks it.
func cyclicParents(entries []model.Entry, byID map[string]*model.Entry) map[string]bool {
	g := simple.NewDirectedGraph()
	idToNode := make(map[string]int64, len(entries))
	nodeToID := make(map[int64]string, len(entries))
	order := make(map[string]int, len(entries))
	for i := range entries {
		e := &entries[i]
		if _, ok := idToNode[e.ID]; ok {
			continue
		}
		n := g.NewNode()
		g.AddNode(n)
		idToNode[e.ID] = n.ID()
		nodeToID[n.ID()] = e.ID
		order[e.ID] = i
	}

	edges := 0
	for i := range entries {
		e := &entries[i]
		if e.ParentID == "" || e.ParentID == e.ID || byID[e.ParentID] == nil {
			continue
		}
		g.SetEdge(g.NewEdge(g.Node(idToNode[e.ParentID]), g.Node(idToNode[e.ID])))
		edges++
	}
	if edges == 0 {
		return nil
	}

	var cut map[string]bool
	for _, scc := range topo.TarjanSCC(g) {
		if len(scc) < 2 {
			continue
		}
		first := ""
		for _, gn := range scc {
			id := nodeToID[gn.ID()]
			if first == "" || order[id] < order[first] {
				first = id
			}
		}
		if cut == nil {
			cut = make(map[string]bool)
		}
		cut[first] = true
		debug.Log("outline: parent cycle through %d entries, promoting %s to root", len(scc), first)
	}
	return cut
}

// NewOutlineView builds a ready view over the entries: all columns, tree
// chrome on the title column, two-cell indent, and the theme's palette.
func NewOutlineView(entries []model.Entry, theme Theme) (*treeview.View[model.Entry], map[string]*treeview.Node[model.Entry]) {
	tr, nodeByID := BuildTree(entries, theme)
	v := treeview.NewView(OutlineColumns()...)
	v.SetTree(tr)
	v.SetTheme(theme.Palette())
	v.SetIndent(2)
	return v, nodeByID
}
