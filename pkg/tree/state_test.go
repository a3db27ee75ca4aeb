package tree_test

import (
	"testing"

	"github.com/vanderheijden86/bwtree/pkg/testutil"
	"github.com/vanderheijden86/bwtree/pkg/tree"
)

func p(ids ...string) tree.Path[string] { return tree.NewPath(ids...) }

func newExampleState(height int) (*tree.State[string, string], *tree.Forest[string, string]) {
	s := tree.NewState[string, string]()
	s.SetHeight(height)
	return s, testutil.Example()
}

func TestNewStateIsEmpty(t *testing.T) {
	s := tree.NewState[string, string]()
	if s.Selected() != nil || s.Offset() != 0 || len(s.OpenPaths()) != 0 {
		t.Errorf("expected empty state, got selected=%s offset=%d open=%v", s.Selected(), s.Offset(), s.OpenPaths())
	}
}

// TestScenario walks the reference forest through open, collapse and scroll.
func TestScenario(t *testing.T) {
	s, f := newExampleState(3)
	s.Toggle(f, p("b"))
	s.Toggle(f, p("b", "d"))

	rows := s.Flatten(f)
	testutil.AssertRowIDs(t, rows, "a", "b", "c", "d", "e", "f", "g", "h")
	testutil.AssertRowDepths(t, rows, 0, 0, 1, 1, 2, 2, 1, 0)

	s.Select(p("b", "d", "e"))
	w := s.Render(f)
	if w.SelectedIndex != 4 {
		t.Errorf("expected selected index 4, got %d", w.SelectedIndex)
	}
	if s.Offset() != 2 {
		t.Errorf("expected offset 2, got %d", s.Offset())
	}
	testutil.AssertRowIDs(t, w.Rows, "c", "d", "e")

	s.Toggle(f, p("b"))
	testutil.AssertRowIDs(t, s.Flatten(f), "a", "b", "h")
}

func TestToggleCollapseKeepsDeeperOpen(t *testing.T) {
	s, f := newExampleState(10)
	s.Toggle(f, p("b"))
	s.Toggle(f, p("b", "d"))
	before := testutil.RowIDs(s.Flatten(f))

	s.Toggle(f, p("b"))
	if s.IsOpen(p("b")) {
		t.Error("expected b closed")
	}
	if !s.IsOpen(p("b", "d")) {
		t.Error("expected b/d to stay in the open-set")
	}

	s.Toggle(f, p("b"))
	testutil.AssertRowIDs(t, s.Flatten(f), before...)
}

func TestToggleIgnoresLeavesAndMissingPaths(t *testing.T) {
	s, f := newExampleState(10)
	s.Toggle(f, p("a"))
	s.Toggle(f, p("nope"))
	s.Toggle(f, p("b", "c"))
	s.Toggle(f, nil)

	if n := len(s.OpenPaths()); n != 0 {
		t.Errorf("expected nothing opened, got %v", s.OpenPaths())
	}
}

func TestOpenAndClose(t *testing.T) {
	s, f := newExampleState(10)
	s.Open(f, p("b"))
	s.Open(f, p("b"))
	s.Open(f, p("a"))
	if got := len(s.OpenPaths()); got != 1 {
		t.Errorf("expected 1 open path, got %d", got)
	}
	s.Close(p("b"))
	if s.IsOpen(p("b")) {
		t.Error("expected b closed")
	}
	s.Close(p("b"))
}

func TestOpenAll(t *testing.T) {
	s, f := newExampleState(10)
	s.OpenAll(f)
	testutil.AssertRowIDs(t, s.Flatten(f), "a", "b", "c", "d", "e", "f", "g", "h")

	s.OpenAll(f)
	if got := len(s.OpenPaths()); got != 2 {
		t.Errorf("expected OpenAll to be idempotent with 2 paths, got %d", got)
	}
}

func TestCloseAll(t *testing.T) {
	s, f := newExampleState(3)
	s.OpenAll(f)
	s.Select(p("b", "g"))
	s.Render(f)
	if s.Offset() == 0 {
		t.Fatal("expected non-zero offset before CloseAll")
	}

	s.CloseAll(f)
	if len(s.OpenPaths()) != 0 {
		t.Errorf("expected empty open-set, got %v", s.OpenPaths())
	}
	testutil.AssertSelected(t, s, "a")
	if s.Offset() != 0 {
		t.Errorf("expected offset 0, got %d", s.Offset())
	}
}

func TestCloseAllEmptyForest(t *testing.T) {
	s := tree.NewState[string, string]()
	f, _ := tree.NewForest[string, string]()
	s.Select(p("x"))
	s.CloseAll(f)
	testutil.AssertSelected(t, s)
}

func TestSelectIsUnchecked(t *testing.T) {
	s, f := newExampleState(3)
	s.Select(p("does", "not", "exist"))
	testutil.AssertSelected(t, s, "does", "not", "exist")

	w := s.Render(f)
	if w.SelectedIndex != -1 {
		t.Errorf("expected no highlighted row, got %d", w.SelectedIndex)
	}
}

func TestSelectNextPrevious(t *testing.T) {
	s, f := newExampleState(10)
	s.Toggle(f, p("b"))

	s.SelectNext(f)
	testutil.AssertSelected(t, s, "a")
	s.SelectNext(f)
	testutil.AssertSelected(t, s, "b")
	s.SelectNext(f)
	testutil.AssertSelected(t, s, "b", "c")
	s.SelectPrevious(f)
	testutil.AssertSelected(t, s, "b")
}

func TestSelectNextPinsAtLast(t *testing.T) {
	s, f := newExampleState(10)
	s.SelectLast(f)
	testutil.AssertSelected(t, s, "h")
	s.SelectNext(f)
	testutil.AssertSelected(t, s, "h")
}

func TestSelectPreviousPinsAtFirst(t *testing.T) {
	s, f := newExampleState(10)
	s.SelectFirst(f)
	testutil.AssertSelected(t, s, "a")
	s.SelectPrevious(f)
	testutil.AssertSelected(t, s, "a")
}

func TestSelectRelativeFromHiddenSelection(t *testing.T) {
	s, f := newExampleState(10)
	s.OpenAll(f)
	s.Select(p("b", "d", "f"))
	s.Toggle(f, p("b"))

	// f is hidden now; both directions restart at the first row.
	s.SelectNext(f)
	testutil.AssertSelected(t, s, "a")

	s.Select(p("gone"))
	s.SelectPrevious(f)
	testutil.AssertSelected(t, s, "a")
}

func TestSelectOnEmptyForest(t *testing.T) {
	s := tree.NewState[string, string]()
	f, _ := tree.NewForest[string, string]()
	s.SelectNext(f)
	s.SelectPrevious(f)
	s.SelectFirst(f)
	s.SelectLast(f)
	testutil.AssertSelected(t, s)
	if w := s.Render(f); len(w.Rows) != 0 || s.Offset() != 0 {
		t.Errorf("expected empty window, got %d rows offset %d", len(w.Rows), s.Offset())
	}
}

func TestSelectParent(t *testing.T) {
	s, _ := newExampleState(10)
	s.Select(p("b", "d", "e"))
	s.SelectParent()
	testutil.AssertSelected(t, s, "b", "d")
	s.SelectParent()
	testutil.AssertSelected(t, s, "b")
	s.SelectParent()
	testutil.AssertSelected(t, s, "b")

	s.Deselect()
	s.SelectParent()
	testutil.AssertSelected(t, s)
}

func TestKeyLeftRight(t *testing.T) {
	s, f := newExampleState(10)
	s.Select(p("b"))
	s.KeyRight(f)
	if !s.IsOpen(p("b")) {
		t.Fatal("expected KeyRight to open b")
	}
	s.SelectNext(f)
	testutil.AssertSelected(t, s, "b", "c")

	s.KeyLeft(f)
	testutil.AssertSelected(t, s, "b")
	s.KeyLeft(f)
	if s.IsOpen(p("b")) {
		t.Error("expected KeyLeft to close b")
	}
	testutil.AssertSelected(t, s, "b")
}

func TestScrollClamps(t *testing.T) {
	s, f := newExampleState(3)
	s.OpenAll(f) // 8 rows, max offset 5

	s.ScrollDown(f, 2)
	if s.Offset() != 2 {
		t.Errorf("expected offset 2, got %d", s.Offset())
	}
	s.ScrollDown(f, 100)
	if s.Offset() != 5 {
		t.Errorf("expected offset clamped to 5, got %d", s.Offset())
	}
	s.ScrollUp(f, 1)
	if s.Offset() != 4 {
		t.Errorf("expected offset 4, got %d", s.Offset())
	}
	s.ScrollUp(f, 100)
	if s.Offset() != 0 {
		t.Errorf("expected offset clamped to 0, got %d", s.Offset())
	}
}

func TestScrollDoesNotMoveSelection(t *testing.T) {
	s, f := newExampleState(3)
	s.OpenAll(f)
	s.Select(p("b", "c"))
	s.ScrollDown(f, 3)
	testutil.AssertSelected(t, s, "b", "c")
}

func TestScrollShortList(t *testing.T) {
	s, f := newExampleState(10)
	s.ScrollDown(f, 4)
	if s.Offset() != 0 {
		t.Errorf("expected offset 0 when everything fits, got %d", s.Offset())
	}
}

func TestRenderResyncsAfterScroll(t *testing.T) {
	s, f := newExampleState(3)
	s.OpenAll(f)
	s.Select(p("a"))
	s.ScrollDown(f, 5)

	w := s.Render(f)
	testutil.AssertSelectionVisible(t, w)
	if s.Offset() != 0 {
		t.Errorf("expected offset back at 0, got %d", s.Offset())
	}
}

func TestRenderClampsAfterCollapse(t *testing.T) {
	s, f := newExampleState(3)
	s.OpenAll(f)
	s.Select(p("h"))
	s.Render(f)
	if s.Offset() != 5 {
		t.Fatalf("expected offset 5, got %d", s.Offset())
	}

	s.Toggle(f, p("b"))
	w := s.Render(f)
	if s.Offset() != 0 {
		t.Errorf("expected offset clamped to 0, got %d", s.Offset())
	}
	testutil.AssertRowIDs(t, w.Rows, "a", "b", "h")
}

func TestRenderSelectsFirstRowWhenUnset(t *testing.T) {
	s, f := newExampleState(3)
	s.Render(f)
	testutil.AssertSelected(t, s, "a")
}

func TestStateSurvivesRebuild(t *testing.T) {
	s, f := newExampleState(10)
	s.Toggle(f, p("b"))
	s.Select(p("b", "g"))

	// Same shape, new node instances, extra sibling.
	specs := append(testutil.ExampleSpecs(), testutil.N("i"))
	rebuilt := testutil.MustForest(specs...)

	w := s.Render(rebuilt)
	testutil.AssertRowIDs(t, w.Rows, "a", "b", "c", "d", "g", "h", "i")
	if w.SelectedIndex != 4 {
		t.Errorf("expected g at index 4, got %d", w.SelectedIndex)
	}
}

func TestStaleOpenPathsAreHarmless(t *testing.T) {
	s, f := newExampleState(10)
	s.OpenAll(f)

	smaller := testutil.MustForest(testutil.N("a"), testutil.N("h"))
	testutil.AssertRowIDs(t, s.Flatten(smaller), "a", "h")
	testutil.AssertRowIDs(t, s.Flatten(f), "a", "b", "c", "d", "e", "f", "g", "h")
}
