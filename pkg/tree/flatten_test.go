package tree_test

import (
	"testing"

	"github.com/vanderheijden86/bwtree/pkg/testutil"
	"github.com/vanderheijden86/bwtree/pkg/tree"
)

func openSet(paths ...tree.Path[string]) *tree.PathSet[string] {
	var s tree.PathSet[string]
	for _, p := range paths {
		s.Add(p)
	}
	return &s
}

func TestFlattenNothingOpenIsTopLevel(t *testing.T) {
	rows := tree.Flatten(testutil.Example(), openSet())
	testutil.AssertRowIDs(t, rows, "a", "b", "h")
}

func TestFlattenNilOpenSet(t *testing.T) {
	rows := tree.Flatten(testutil.Example(), nil)
	testutil.AssertRowIDs(t, rows, "a", "b", "h")
}

func TestFlattenWrongOpenIsOnlyTopLevel(t *testing.T) {
	// a is a leaf and b/d is hidden behind the closed b.
	rows := tree.Flatten(testutil.Example(), openSet(tree.NewPath("a"), tree.NewPath("b", "d")))
	testutil.AssertRowIDs(t, rows, "a", "b", "h")
	if rows[0].IsOpen {
		t.Error("a leaf is never reported open")
	}
}

func TestFlattenOneOpen(t *testing.T) {
	rows := tree.Flatten(testutil.Example(), openSet(tree.NewPath("b")))
	testutil.AssertRowIDs(t, rows, "a", "b", "c", "d", "g", "h")
}

func TestFlattenAllOpen(t *testing.T) {
	rows := tree.Flatten(testutil.Example(), openSet(tree.NewPath("b"), tree.NewPath("b", "d")))
	testutil.AssertRowIDs(t, rows, "a", "b", "c", "d", "e", "f", "g", "h")
	testutil.AssertRowDepths(t, rows, 0, 0, 1, 1, 2, 2, 1, 0)
}

func TestFlattenRowHints(t *testing.T) {
	rows := tree.Flatten(testutil.Example(), openSet(tree.NewPath("b")))

	b := rows[1]
	if !b.HasChildren || !b.IsOpen {
		t.Errorf("expected b open with children, got has=%v open=%v", b.HasChildren, b.IsOpen)
	}
	d := rows[3]
	if !d.HasChildren || d.IsOpen {
		t.Errorf("expected d closed with children, got has=%v open=%v", d.HasChildren, d.IsOpen)
	}
	if rows[2].HasChildren {
		t.Error("expected c to be a leaf")
	}
	if !d.Path.Equal(tree.NewPath("b", "d")) {
		t.Errorf("expected path b/d, got %s", d.Path)
	}
	if d.Node.Payload() != "Delta" {
		t.Errorf("expected payload Delta, got %s", d.Node.Payload())
	}
}

func TestFlattenEmptyForest(t *testing.T) {
	f, _ := tree.NewForest[string, string]()
	if rows := tree.Flatten(f, openSet()); len(rows) != 0 {
		t.Errorf("expected no rows, got %d", len(rows))
	}
}

func TestFlattenKeepsSiblingOrder(t *testing.T) {
	f := testutil.MustForest(testutil.N("z"), testutil.N("m"), testutil.N("a"))
	testutil.AssertRowIDs(t, tree.Flatten(f, nil), "z", "m", "a")
}

func TestFlattenSameIDUnderDifferentParents(t *testing.T) {
	f := testutil.MustForest(
		testutil.N("x", testutil.N("main")),
		testutil.N("y", testutil.N("main")),
	)
	rows := tree.Flatten(f, openSet(tree.NewPath("y")))
	testutil.AssertRowIDs(t, rows, "x", "y", "main")
	if !rows[2].Path.Equal(tree.NewPath("y", "main")) {
		t.Errorf("expected y/main, got %s", rows[2].Path)
	}
}

func TestIndexOf(t *testing.T) {
	rows := tree.Flatten(testutil.Example(), openSet(tree.NewPath("b")))
	if i := tree.IndexOf(rows, tree.NewPath("b", "g")); i != 4 {
		t.Errorf("expected index 4, got %d", i)
	}
	if i := tree.IndexOf(rows, tree.NewPath("b", "d", "e")); i != -1 {
		t.Errorf("expected hidden row to be -1, got %d", i)
	}
	if i := tree.IndexOf(rows, nil); i != -1 {
		t.Errorf("expected -1 for nil path, got %d", i)
	}
}
