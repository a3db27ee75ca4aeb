package tree

import (
	"cmp"
	"slices"
)

// Forest is the ordered set of root nodes for one render cycle. Build a new
// one whenever the underlying data changes; it is read-only once built.
type Forest[ID cmp.Ordered, T any] struct {
	roots []*Node[ID, T]
}

// NewForest validates root-level uniqueness and keeps a copy of roots.
func NewForest[ID cmp.Ordered, T any](roots ...*Node[ID, T]) (*Forest[ID, T], error) {
	if dup, ok := firstDuplicate(roots); ok {
		return nil, &DuplicateIdentifierError{ID: dup}
	}
	return &Forest[ID, T]{roots: slices.Clone(roots)}, nil
}

// Roots returns the top-level nodes in order.
func (f *Forest[ID, T]) Roots() []*Node[ID, T] {
	if f == nil {
		return nil
	}
	return f.roots
}

// Len returns the number of roots.
func (f *Forest[ID, T]) Len() int {
	if f == nil {
		return 0
	}
	return len(f.roots)
}

// Find resolves a path to its node, or nil if the path is not in the forest.
func (f *Forest[ID, T]) Find(path Path[ID]) *Node[ID, T] {
	if f == nil || len(path) == 0 {
		return nil
	}
	level := f.roots
	var found *Node[ID, T]
	for _, id := range path {
		found = nil
		for _, n := range level {
			if n.id == id {
				found = n
				break
			}
		}
		if found == nil {
			return nil
		}
		level = found.children
	}
	return found
}

// Walk visits every node in pre-order, open or not. Returning false from fn
// skips that node's children.
func (f *Forest[ID, T]) Walk(fn func(path Path[ID], n *Node[ID, T]) bool) {
	if f == nil {
		return
	}
	var walk func(prefix Path[ID], nodes []*Node[ID, T])
	walk = func(prefix Path[ID], nodes []*Node[ID, T]) {
		for _, n := range nodes {
			p := prefix.Child(n.id)
			if fn(p, n) {
				walk(p, n.children)
			}
		}
	}
	walk(nil, f.roots)
}

// Count returns the total number of nodes.
func (f *Forest[ID, T]) Count() int {
	total := 0
	f.Walk(func(Path[ID], *Node[ID, T]) bool {
		total++
		return true
	})
	return total
}
