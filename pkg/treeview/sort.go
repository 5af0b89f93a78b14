package treeview

import "sort"

// SortBy applies the given sort state to the index-th column. Out-of-range
// indices, unsortable columns, and views without a tree are no-ops.
// Activating a column clears the previously sorted column's state.
//
// Descending order is always derived by reversing the ascending order, so
// the comparator is only ever invoked in the ascending direction; toggling
// an ascending column to descending re-invokes it zero times.
func (v *View[T]) SortBy(index int, state SortState) {
	c := v.ColumnAt(index)
	if c == nil || !c.Sortable() || v.tree == nil {
		return
	}
	v.applySort(c, state)
}

// toggleSort advances a column through the Unsorted, Ascending, Descending
// cycle in response to a header click.
func (v *View[T]) toggleSort(c *Column[T]) {
	if c == nil || !c.Sortable() || v.tree == nil {
		return
	}
	switch c.state {
	case Ascending:
		v.applySort(c, Descending)
	default:
		v.applySort(c, Ascending)
	}
}

func (v *View[T]) applySort(c *Column[T], state SortState) {
	if state == Unsorted {
		c.state = Unsorted
		if v.lastSort == c {
			v.lastSort = nil
		}
		return
	}
	if v.lastSort != nil && v.lastSort != c {
		v.lastSort.state = Unsorted
	}
	switch state {
	case Ascending:
		v.sortGroupsAscending(c)
	case Descending:
		if c.state == Ascending {
			v.reverseGroups()
		} else {
			v.sortGroupsAscending(c)
			v.reverseGroups()
		}
	}
	c.state = state
	v.lastSort = c
	v.markStale()
}

// sortGroupsAscending stable-sorts the root sequence and every child
// sequence independently, then renumbers each affected group. Rows without
// backing data order first; the comparator never sees a nil.
func (v *View[T]) sortGroupsAscending(c *Column[T]) {
	less := func(a, b *Node[T]) bool {
		if a.data == nil || b.data == nil {
			return a.data == nil && b.data != nil
		}
		return c.less(a.data, b.data)
	}
	v.eachSiblingGroup(func(group []*Node[T]) {
		sort.SliceStable(group, func(i, j int) bool { return less(group[i], group[j]) })
		renumber(group)
	})
}

// reverseGroups flips the order of every sibling group in place.
func (v *View[T]) reverseGroups() {
	v.eachSiblingGroup(func(group []*Node[T]) {
		for i, j := 0, len(group)-1; i < j; i, j = i+1, j-1 {
			group[i], group[j] = group[j], group[i]
		}
		renumber(group)
	})
}

// eachSiblingGroup applies fn to the root sequence and to every non-empty
// child sequence reached by traversal. fn reorders in place; the walk picks
// up the new order when it descends.
func (v *View[T]) eachSiblingGroup(fn func(group []*Node[T])) {
	fn(v.tree.roots)
	v.tree.Walk(func(n *Node[T]) Visit {
		if !n.hasChildren() {
			return SkipSubtree
		}
		fn(n.children)
		return Continue
	})
}

func renumber[T any](group []*Node[T]) {
	for i, n := range group {
		n.parentIndex = i
	}
}
