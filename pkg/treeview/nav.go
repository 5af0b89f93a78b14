package treeview

// nextSibling returns the node after n in its sibling group, or nil at the
// end of the group.
func (t *Tree[T]) nextSibling(n *Node[T]) *Node[T] {
	if n.parentIndex < 0 {
		return nil
	}
	siblings := t.roots
	if n.parent != nil {
		siblings = n.parent.children
	}
	if n.parentIndex+1 < len(siblings) {
		return siblings[n.parentIndex+1]
	}
	return nil
}

// nextVisible returns the node after n in visible traversal order: the first
// child when n is expanded, otherwise the next sibling of n or of the
// nearest ancestor that has one. Collapsed subtrees are stepped over without
// visiting them.
func (t *Tree[T]) nextVisible(n *Node[T]) *Node[T] {
	if n.hasChildren() && !n.collapsed {
		return n.children[0]
	}
	for n != nil {
		if sib := t.nextSibling(n); sib != nil {
			return sib
		}
		n = n.parent
	}
	return nil
}

// prevVisible returns the node before n in visible traversal order: the
// parent when n is the first of its group, otherwise the deepest visible
// descendant of the previous sibling. Returns nil at the first root.
func (t *Tree[T]) prevVisible(n *Node[T]) *Node[T] {
	if n.parentIndex < 0 {
		return nil
	}
	if n.parentIndex == 0 {
		return n.parent
	}
	siblings := t.roots
	if n.parent != nil {
		siblings = n.parent.children
	}
	return deepestVisible(siblings[n.parentIndex-1])
}

// deepestVisible descends along last children while subtrees are expanded.
func deepestVisible[T any](n *Node[T]) *Node[T] {
	for n.hasChildren() && !n.collapsed {
		n = n.children[len(n.children)-1]
	}
	return n
}

// HandleKey applies one keyboard step: up and down move the cursor through
// the visible traversal order and select the reached node, left and right
// collapse and expand the cursor node. Without a cursor, up and down seed it
// at the first root. A view without a tree ignores keys.
func (v *View[T]) HandleKey(ev KeyEvent) {
	if v.tree == nil {
		return
	}
	switch ev.Key {
	case KeyUp:
		v.focusStep(v.tree.prevVisible)
	case KeyDown:
		v.focusStep(v.tree.nextVisible)
	case KeyLeft:
		v.Collapse(v.cursor)
	case KeyRight:
		v.Expand(v.cursor)
	}
}

func (v *View[T]) focusStep(step func(*Node[T]) *Node[T]) {
	if v.cursor == nil {
		if len(v.tree.roots) == 0 {
			return
		}
		v.cursor = v.tree.roots[0]
		v.EnsureVisible(v.cursor)
		return
	}
	if next := step(v.cursor); next != nil {
		v.Select(next)
		v.EnsureVisible(next)
	}
}

// EnsureVisible scrolls the viewport just far enough to bring node's row
// fully into view. Rows hidden under a collapsed ancestor stay hidden; the
// method only scrolls, it never expands. No-op in ModeUnroll and for nil
// nodes.
func (v *View[T]) EnsureVisible(node *Node[T]) {
	if node == nil || v.tree == nil || v.mode == ModeUnroll {
		return
	}
	v.ensureLayout()
	bodyH := v.area.H - v.headerH
	if bodyH <= 0 {
		return
	}
	scroll := v.scrollY()
	top, bottom := node.span.Pos, node.span.Pos+node.span.Len
	if top < scroll {
		scroll = top
	} else if bottom > scroll+bodyH {
		scroll = bottom - bodyH
	}
	v.setScrollY(scroll)
}
