// Package tree is the state machine behind a terminal tree view.
//
// A Forest is rebuilt by the caller on every render from its own data.
// A State lives for the whole session and remembers which nodes are open,
// which node is selected and how far the view is scrolled. State never holds
// node pointers; everything is keyed on Path values so it survives rebuilds.
//
// Typical render cycle:
//
//	forest, err := tree.NewForest(roots...)
//	if err != nil {
//	    return err // duplicate sibling identifiers
//	}
//	window := state.Render(forest)
//	for _, row := range window.Rows {
//	    // draw row.Depth, row.HasChildren, row.IsOpen, row.Node.Payload()
//	}
package tree

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// Path addresses a node by the identifiers from its root down to itself.
// The empty path addresses nothing.
type Path[ID cmp.Ordered] []ID

// NewPath builds a path from identifiers.
func NewPath[ID cmp.Ordered](ids ...ID) Path[ID] {
	return Path[ID](slices.Clone(ids))
}

// Equal reports structural equality.
func (p Path[ID]) Equal(other Path[ID]) bool {
	return slices.Equal(p, other)
}

// Compare orders paths lexicographically by identifier. A path sorts before
// its descendants.
func (p Path[ID]) Compare(other Path[ID]) int {
	return slices.Compare(p, other)
}

// IsAncestorOf reports whether p is a strict prefix of other.
func (p Path[ID]) IsAncestorOf(other Path[ID]) bool {
	if len(p) >= len(other) {
		return false
	}
	return slices.Equal(p, other[:len(p)])
}

// Depth is zero for roots. The empty path has depth -1.
func (p Path[ID]) Depth() int {
	return len(p) - 1
}

// Parent returns the path of the immediate ancestor, or nil for a root.
func (p Path[ID]) Parent() Path[ID] {
	if len(p) <= 1 {
		return nil
	}
	return slices.Clone(p[:len(p)-1])
}

// Child returns a new path one level below p.
func (p Path[ID]) Child(id ID) Path[ID] {
	out := make(Path[ID], len(p), len(p)+1)
	copy(out, p)
	return append(out, id)
}

// Last returns the node's own identifier.
func (p Path[ID]) Last() (ID, bool) {
	var zero ID
	if len(p) == 0 {
		return zero, false
	}
	return p[len(p)-1], true
}

// Clone returns a copy that does not share storage with p.
func (p Path[ID]) Clone() Path[ID] {
	if p == nil {
		return nil
	}
	return slices.Clone(p)
}

// String renders the path as "a/b/c".
func (p Path[ID]) String() string {
	parts := make([]string, len(p))
	for i, id := range p {
		parts[i] = fmt.Sprint(id)
	}
	return strings.Join(parts, "/")
}
