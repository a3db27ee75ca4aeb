package tree

import (
	"cmp"
	"slices"
)

// Node is one item of a Forest. Its identifier must be unique among its
// siblings but may repeat under other parents, the way a file name is unique
// within its directory only.
//
// The payload is whatever the caller wants to draw; the engine never looks
// at it.
type Node[ID cmp.Ordered, T any] struct {
	id       ID
	payload  T
	children []*Node[ID, T]
}

// NewLeaf creates a node without children.
func NewLeaf[ID cmp.Ordered, T any](id ID, payload T) *Node[ID, T] {
	return &Node[ID, T]{id: id, payload: payload}
}

// NewNode creates a node with children. It fails with a
// *DuplicateIdentifierError when two children share an identifier. Children
// were validated when they were built, so the check does not recurse. The
// node keeps its own copy of children.
func NewNode[ID cmp.Ordered, T any](id ID, payload T, children ...*Node[ID, T]) (*Node[ID, T], error) {
	if dup, ok := firstDuplicate(children); ok {
		return nil, &DuplicateIdentifierError{ID: dup, Parent: id}
	}
	return &Node[ID, T]{
		id:       id,
		payload:  payload,
		children: slices.Clone(children),
	}, nil
}

// AddChild appends a child, failing if its identifier is already taken.
func (n *Node[ID, T]) AddChild(child *Node[ID, T]) error {
	for _, existing := range n.children {
		if existing.id == child.id {
			return &DuplicateIdentifierError{ID: child.id, Parent: n.id}
		}
	}
	n.children = append(n.children, child)
	return nil
}

// ID returns the node's identifier.
func (n *Node[ID, T]) ID() ID { return n.id }

// Payload returns the caller-supplied display data.
func (n *Node[ID, T]) Payload() T { return n.payload }

// Children returns the ordered children. The slice must not be modified.
func (n *Node[ID, T]) Children() []*Node[ID, T] { return n.children }

// Child returns the child at index, or nil when out of range.
func (n *Node[ID, T]) Child(index int) *Node[ID, T] {
	if index < 0 || index >= len(n.children) {
		return nil
	}
	return n.children[index]
}

// IsLeaf reports whether the node has no children.
func (n *Node[ID, T]) IsLeaf() bool { return len(n.children) == 0 }

// firstDuplicate does a single pass with a transient set.
func firstDuplicate[ID cmp.Ordered, T any](nodes []*Node[ID, T]) (ID, bool) {
	var zero ID
	if len(nodes) < 2 {
		return zero, false
	}
	seen := make(map[ID]struct{}, len(nodes))
	for _, n := range nodes {
		if _, ok := seen[n.id]; ok {
			return n.id, true
		}
		seen[n.id] = struct{}{}
	}
	return zero, false
}
