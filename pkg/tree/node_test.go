package tree

import (
	"errors"
	"testing"
)

func TestNewNodeRejectsDuplicateChildren(t *testing.T) {
	a := NewLeaf("same", "text")
	b := NewLeaf("same", "other text")

	_, err := NewNode("root", "Root", a, b)
	if err == nil {
		t.Fatal("expected error for duplicate children")
	}
	if !errors.Is(err, ErrDuplicateIdentifier) {
		t.Errorf("expected ErrDuplicateIdentifier, got %v", err)
	}
	var dupErr *DuplicateIdentifierError
	if !errors.As(err, &dupErr) {
		t.Fatalf("expected *DuplicateIdentifierError, got %T", err)
	}
	if dupErr.ID != "same" || dupErr.Parent != "root" {
		t.Errorf("expected same under root, got %v under %v", dupErr.ID, dupErr.Parent)
	}
}

func TestNewNodeAllowsSameIDUnderDifferentParents(t *testing.T) {
	x, err := NewNode("x", "", NewLeaf("main", ""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	y, err := NewNode("y", "", NewLeaf("main", ""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := NewForest(x, y); err != nil {
		t.Errorf("expected success, got %v", err)
	}
}

func TestNewNodeDoesNotRecurse(t *testing.T) {
	// Grandchildren share an identifier with a child: different parents.
	d, err := NewNode("d", "", NewLeaf("c", ""), NewLeaf("e", ""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := NewNode("b", "", NewLeaf("c", ""), d); err != nil {
		t.Errorf("expected success, got %v", err)
	}
}

func TestAddChild(t *testing.T) {
	root, err := NewNode("root", "Root", NewLeaf("a", ""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := root.AddChild(NewLeaf("b", "")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(root.Children()) != 2 {
		t.Errorf("expected 2 children, got %d", len(root.Children()))
	}

	err = root.AddChild(NewLeaf("a", ""))
	if !errors.Is(err, ErrDuplicateIdentifier) {
		t.Errorf("expected ErrDuplicateIdentifier, got %v", err)
	}
	if len(root.Children()) != 2 {
		t.Errorf("failed AddChild must not append, got %d children", len(root.Children()))
	}
}

func TestNewNodeCopiesChildren(t *testing.T) {
	kids := make([]*Node[string, string], 0, 4)
	kids = append(kids, NewLeaf("a", ""), NewLeaf("b", ""))

	x, err := NewNode("x", "", kids...)
	if err != nil {
		t.Fatal(err)
	}
	y, err := NewNode("y", "", kids...)
	if err != nil {
		t.Fatal(err)
	}
	if err := x.AddChild(NewLeaf("c", "")); err != nil {
		t.Fatal(err)
	}
	if err := y.AddChild(NewLeaf("d", "")); err != nil {
		t.Fatal(err)
	}

	if got := x.Child(2).ID(); got != "c" {
		t.Errorf("expected x's last child c, got %s", got)
	}
	if got := y.Child(2).ID(); got != "d" {
		t.Errorf("expected y's last child d, got %s", got)
	}

	kids[0] = NewLeaf("b", "")
	if got := x.Child(0).ID(); got != "a" {
		t.Errorf("expected caller's slice edits to be ignored, got first child %s", got)
	}
}

func TestNewForestCopiesRoots(t *testing.T) {
	roots := []*Node[string, string]{NewLeaf("a", ""), NewLeaf("b", "")}
	f, err := NewForest(roots...)
	if err != nil {
		t.Fatal(err)
	}
	roots[1] = NewLeaf("a", "")
	if got := f.Roots()[1].ID(); got != "b" {
		t.Errorf("expected forest roots to be unaffected, got %s", got)
	}
}

func TestNodeAccessors(t *testing.T) {
	n, _ := NewNode(7, "seven", NewLeaf(1, "one"))
	if n.ID() != 7 || n.Payload() != "seven" {
		t.Errorf("unexpected node %v/%v", n.ID(), n.Payload())
	}
	if n.IsLeaf() {
		t.Error("expected non-leaf")
	}
	if c := n.Child(0); c == nil || c.ID() != 1 {
		t.Errorf("expected child 1, got %v", c)
	}
	if n.Child(1) != nil || n.Child(-1) != nil {
		t.Error("expected nil for out-of-range child")
	}
}

func TestNewForestRejectsDuplicateRoots(t *testing.T) {
	_, err := NewForest(NewLeaf("same", ""), NewLeaf("same", ""))
	var dupErr *DuplicateIdentifierError
	if !errors.As(err, &dupErr) {
		t.Fatalf("expected *DuplicateIdentifierError, got %v", err)
	}
	if dupErr.Parent != nil {
		t.Errorf("expected root-level error, got parent %v", dupErr.Parent)
	}
}

func TestEmptyForest(t *testing.T) {
	f, err := NewForest[string, string]()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Len() != 0 || f.Count() != 0 {
		t.Errorf("expected empty forest, got %d roots", f.Len())
	}
	if f.Find(NewPath("a")) != nil {
		t.Error("expected Find to miss on empty forest")
	}
}

func TestForestFind(t *testing.T) {
	d, _ := NewNode("d", "Delta", NewLeaf("e", "Echo"))
	b, _ := NewNode("b", "Bravo", NewLeaf("c", "Charlie"), d)
	f, err := NewForest(NewLeaf("a", "Alfa"), b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if n := f.Find(NewPath("b", "d", "e")); n == nil || n.Payload() != "Echo" {
		t.Errorf("expected Echo, got %v", n)
	}
	if n := f.Find(NewPath("b", "e")); n != nil {
		t.Errorf("expected miss for b/e, got %v", n.Payload())
	}
	if n := f.Find(nil); n != nil {
		t.Error("expected miss for empty path")
	}
	if f.Count() != 5 {
		t.Errorf("expected 5 nodes, got %d", f.Count())
	}
}
