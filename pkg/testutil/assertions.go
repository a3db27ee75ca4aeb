package testutil

import (
	"slices"
	"testing"

	"github.com/vanderheijden86/bwtree/pkg/tree"
)

// RowIDs returns the last identifier of each row's path.
func RowIDs[T any](rows []tree.Row[string, T]) []string {
	ids := make([]string, len(rows))
	for i, r := range rows {
		ids[i], _ = r.Path.Last()
	}
	return ids
}

// RowDepths returns the depth of each row.
func RowDepths[T any](rows []tree.Row[string, T]) []int {
	depths := make([]int, len(rows))
	for i, r := range rows {
		depths[i] = r.Depth
	}
	return depths
}

// AssertRowIDs verifies the visible rows, by their own identifiers.
func AssertRowIDs[T any](t *testing.T, rows []tree.Row[string, T], expected ...string) {
	t.Helper()
	if got := RowIDs(rows); !slices.Equal(got, expected) {
		t.Errorf("expected rows %v, got %v", expected, got)
	}
}

// AssertRowDepths verifies the depth of each visible row.
func AssertRowDepths[T any](t *testing.T, rows []tree.Row[string, T], expected ...int) {
	t.Helper()
	if got := RowDepths(rows); !slices.Equal(got, expected) {
		t.Errorf("expected depths %v, got %v", expected, got)
	}
}

// AssertSelected verifies the selected path.
func AssertSelected[T any](t *testing.T, s *tree.State[string, T], expected ...string) {
	t.Helper()
	got := s.Selected()
	if len(expected) == 0 {
		if got != nil {
			t.Errorf("expected no selection, got %s", got)
		}
		return
	}
	if !got.Equal(tree.NewPath(expected...)) {
		t.Errorf("expected selection %v, got %s", expected, got)
	}
}

// AssertSelectionVisible verifies the window shows the selected row, unless
// nothing selected is visible at all.
func AssertSelectionVisible[T any](t *testing.T, w tree.Window[string, T]) {
	t.Helper()
	if w.SelectedIndex < 0 || w.End == w.Start {
		return
	}
	if !w.Contains(w.SelectedIndex) {
		t.Errorf("selected index %d outside window [%d, %d)", w.SelectedIndex, w.Start, w.End)
	}
}
