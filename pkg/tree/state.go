package tree

import (
	"cmp"

	"github.com/vanderheijden86/bwtree/pkg/debug"
)

// State is the long-lived interaction state of a tree view: open paths, the
// selected path and the scroll offset. It is keyed on paths only, so a
// freshly rebuilt Forest picks up where the previous one left off. The
// payload type parameter only ties State to the Forest type it navigates.
//
// State is not safe for concurrent use. The render/input loop that owns it
// must serialize every call.
//
// Every operation is total: at the edges of the tree, with an empty forest or
// with a path that does not exist, it does nothing or clamps.
type State[ID cmp.Ordered, T any] struct {
	open     PathSet[ID]
	selected Path[ID]
	offset   int
	height   int
}

// NewState returns an empty state: nothing open, nothing selected, offset 0.
func NewState[ID cmp.Ordered, T any]() *State[ID, T] {
	return &State[ID, T]{}
}

// SetHeight sets the viewport height in rows, as given by the host layout.
func (s *State[ID, T]) SetHeight(height int) {
	s.height = max(height, 0)
}

// Height returns the viewport height.
func (s *State[ID, T]) Height() int { return s.height }

// Offset returns the index of the first drawn row.
func (s *State[ID, T]) Offset() int { return s.offset }

// Selected returns a copy of the selected path, nil if nothing is selected.
func (s *State[ID, T]) Selected() Path[ID] { return s.selected.Clone() }

// IsSelected reports whether p is the selected path.
func (s *State[ID, T]) IsSelected(p Path[ID]) bool {
	return s.selected != nil && s.selected.Equal(p)
}

// IsOpen reports whether p is in the open-set. Its row may still be hidden
// by a closed ancestor.
func (s *State[ID, T]) IsOpen(p Path[ID]) bool { return s.open.Contains(p) }

// OpenPaths returns the open-set in sorted order.
func (s *State[ID, T]) OpenPaths() []Path[ID] { return s.open.Paths() }

// Flatten lists the rows of f visible under the current open-set.
func (s *State[ID, T]) Flatten(f *Forest[ID, T]) []Row[ID, T] {
	return Flatten(f, &s.open)
}

// Toggle opens a closed node or closes an open one. Closing leaves the open
// entries of descendants alone, so reopening restores them as they were.
// Paths that are not nodes with children in f are ignored.
func (s *State[ID, T]) Toggle(f *Forest[ID, T], p Path[ID]) {
	if !isBranch(f, p) {
		return
	}
	if s.open.Remove(p) {
		debug.Log("tree: closed %s", p)
		return
	}
	s.open.Add(p.Clone())
	debug.Log("tree: opened %s", p)
}

// Open adds p to the open-set if it is a node with children in f.
func (s *State[ID, T]) Open(f *Forest[ID, T], p Path[ID]) {
	if isBranch(f, p) && s.open.Add(p.Clone()) {
		debug.Log("tree: opened %s", p)
	}
}

// Close removes p from the open-set.
func (s *State[ID, T]) Close(p Path[ID]) {
	if s.open.Remove(p) {
		debug.Log("tree: closed %s", p)
	}
}

// OpenAll opens every node with children in f.
func (s *State[ID, T]) OpenAll(f *Forest[ID, T]) {
	added := 0
	f.Walk(func(p Path[ID], n *Node[ID, T]) bool {
		if len(n.children) > 0 && s.open.Add(p) {
			added++
		}
		return true
	})
	debug.Log("tree: open all, %d newly opened", added)
}

// CloseAll empties the open-set, selects the first root and scrolls to top.
func (s *State[ID, T]) CloseAll(f *Forest[ID, T]) {
	s.open.Clear()
	s.selected = nil
	if roots := f.Roots(); len(roots) > 0 {
		s.selected = NewPath(roots[0].id)
	}
	s.offset = 0
	debug.Log("tree: close all")
}

// Select sets the selection without checking that p exists. A path missing
// from the current forest simply highlights nothing.
func (s *State[ID, T]) Select(p Path[ID]) {
	if len(p) == 0 {
		s.selected = nil
		return
	}
	s.selected = p.Clone()
}

// Deselect clears the selection.
func (s *State[ID, T]) Deselect() {
	s.selected = nil
}

// SelectNext moves to the next visible row and stays put on the last one.
// With no selection, or one that is not visible, it selects the first row.
func (s *State[ID, T]) SelectNext(f *Forest[ID, T]) {
	s.selectRelative(f, 1)
}

// SelectPrevious moves to the previous visible row and stays put on the
// first one. With no visible selection it selects the first row.
func (s *State[ID, T]) SelectPrevious(f *Forest[ID, T]) {
	s.selectRelative(f, -1)
}

func (s *State[ID, T]) selectRelative(f *Forest[ID, T], delta int) {
	rows := s.Flatten(f)
	if len(rows) == 0 {
		s.selected = nil
		return
	}
	i := IndexOf(rows, s.selected)
	if i < 0 {
		s.selected = rows[0].Path
		return
	}
	next := min(max(i+delta, 0), len(rows)-1)
	s.selected = rows[next].Path
}

// SelectFirst selects the first visible row.
func (s *State[ID, T]) SelectFirst(f *Forest[ID, T]) {
	rows := s.Flatten(f)
	if len(rows) == 0 {
		s.selected = nil
		return
	}
	s.selected = rows[0].Path
}

// SelectLast selects the last visible row.
func (s *State[ID, T]) SelectLast(f *Forest[ID, T]) {
	rows := s.Flatten(f)
	if len(rows) == 0 {
		s.selected = nil
		return
	}
	s.selected = rows[len(rows)-1].Path
}

// SelectParent selects the parent of the current selection. Nothing happens
// at root depth or without a selection.
func (s *State[ID, T]) SelectParent() {
	if len(s.selected) <= 1 {
		return
	}
	s.selected = s.selected.Parent()
}

// KeyLeft closes the selected node if it is open, otherwise selects its
// parent.
func (s *State[ID, T]) KeyLeft(f *Forest[ID, T]) {
	if s.selected == nil {
		return
	}
	if s.open.Contains(s.selected) && isBranch(f, s.selected) {
		s.Close(s.selected)
		return
	}
	s.SelectParent()
}

// KeyRight opens the selected node.
func (s *State[ID, T]) KeyRight(f *Forest[ID, T]) {
	if s.selected == nil {
		return
	}
	s.Open(f, s.selected)
}

// ScrollDown moves the viewport n rows down without touching the selection.
// The offset never passes the last full window.
func (s *State[ID, T]) ScrollDown(f *Forest[ID, T], n int) {
	s.scrollBy(f, n)
}

// ScrollUp moves the viewport n rows up, stopping at the top.
func (s *State[ID, T]) ScrollUp(f *Forest[ID, T], n int) {
	s.scrollBy(f, -n)
}

func (s *State[ID, T]) scrollBy(f *Forest[ID, T], n int) {
	visible := len(s.Flatten(f))
	maxOffset := max(0, visible-s.height)
	s.offset = min(max(s.offset+n, 0), maxOffset)
}

// Render flattens f and resolves the window for the current height, storing
// the corrected offset. Call it once per frame, after any mutation, so the
// selected row is always on screen.
//
// A state with no selection selects the first row of a non-empty forest.
func (s *State[ID, T]) Render(f *Forest[ID, T]) Window[ID, T] {
	rows := s.Flatten(f)
	if s.selected == nil && len(rows) > 0 {
		s.selected = rows[0].Path
	}
	w := Resolve(rows, s.selected, s.offset, s.height)
	debug.LogIf(w.Offset != s.offset, "tree: offset %d -> %d", s.offset, w.Offset)
	s.offset = w.Offset
	return w
}

func isBranch[ID cmp.Ordered, T any](f *Forest[ID, T], p Path[ID]) bool {
	n := f.Find(p)
	return n != nil && len(n.children) > 0
}
