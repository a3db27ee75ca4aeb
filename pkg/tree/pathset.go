package tree

import (
	"cmp"
	"slices"
)

// PathSet is a set of paths stored as a trie, one level per identifier.
// Slices cannot be map keys, and walking the trie next to the forest lets
// Flatten answer "is this open?" without rebuilding keys. The zero value is
// an empty set.
type PathSet[ID cmp.Ordered] struct {
	root pathNode[ID]
	size int
}

type pathNode[ID cmp.Ordered] struct {
	member bool
	next   map[ID]*pathNode[ID]
}

func (n *pathNode[ID]) child(id ID) *pathNode[ID] {
	if n == nil || n.next == nil {
		return nil
	}
	return n.next[id]
}

// Add inserts p and reports whether it was new. The empty path is ignored.
func (s *PathSet[ID]) Add(p Path[ID]) bool {
	if len(p) == 0 {
		return false
	}
	n := &s.root
	for _, id := range p {
		if n.next == nil {
			n.next = make(map[ID]*pathNode[ID])
		}
		c, ok := n.next[id]
		if !ok {
			c = &pathNode[ID]{}
			n.next[id] = c
		}
		n = c
	}
	if n.member {
		return false
	}
	n.member = true
	s.size++
	return true
}

// Remove deletes p and reports whether it was present. Deeper paths stay.
func (s *PathSet[ID]) Remove(p Path[ID]) bool {
	if len(p) == 0 {
		return false
	}
	removed := remove(&s.root, p)
	if removed {
		s.size--
	}
	return removed
}

func remove[ID cmp.Ordered](n *pathNode[ID], p Path[ID]) bool {
	c := n.child(p[0])
	if c == nil {
		return false
	}
	var removed bool
	if len(p) == 1 {
		removed = c.member
		c.member = false
	} else {
		removed = remove(c, p[1:])
	}
	// Prune branches that no longer lead to a member.
	if !c.member && len(c.next) == 0 {
		delete(n.next, p[0])
	}
	return removed
}

// Contains reports whether p is in the set.
func (s *PathSet[ID]) Contains(p Path[ID]) bool {
	if len(p) == 0 {
		return false
	}
	n := &s.root
	for _, id := range p {
		if n = n.child(id); n == nil {
			return false
		}
	}
	return n.member
}

// Len returns the number of paths in the set.
func (s *PathSet[ID]) Len() int { return s.size }

// Clear empties the set.
func (s *PathSet[ID]) Clear() {
	s.root = pathNode[ID]{}
	s.size = 0
}

// Paths returns every member, sorted with Path.Compare.
func (s *PathSet[ID]) Paths() []Path[ID] {
	out := make([]Path[ID], 0, s.size)
	var walk func(prefix Path[ID], n *pathNode[ID])
	walk = func(prefix Path[ID], n *pathNode[ID]) {
		for id, c := range n.next {
			p := prefix.Child(id)
			if c.member {
				out = append(out, p)
			}
			walk(p, c)
		}
	}
	walk(nil, &s.root)
	slices.SortFunc(out, Path[ID].Compare)
	return out
}
