package tree

import (
	"cmp"

	"github.com/vanderheijden86/bwtree/pkg/metrics"
)

// Window is the slice of rows that fits the viewport.
type Window[ID cmp.Ordered, T any] struct {
	Rows          []Row[ID, T] // all[Start:End]
	Start, End    int
	Offset        int // corrected offset, equal to Start
	SelectedIndex int // index into the full row list, -1 if nothing visible is selected
	Total         int // number of visible rows before windowing
}

// Contains reports whether index i of the full row list is inside the window.
func (w Window[ID, T]) Contains(i int) bool {
	return i >= w.Start && i < w.End
}

// Resolve picks the rows to draw for a viewport of height rows.
//
// A stale offset (the list shrank, e.g. after a collapse) is clamped down to
// the last full window. If the selected row is then outside the window the
// offset moves just far enough to show it: to the selected index when it is
// above, or so the selected row is the last line when it is below.
func Resolve[ID cmp.Ordered, T any](rows []Row[ID, T], selected Path[ID], offset, height int) Window[ID, T] {
	defer metrics.Timer(metrics.Resolve)()

	total := len(rows)
	w := Window[ID, T]{
		Offset:        offset,
		SelectedIndex: IndexOf(rows, selected),
		Total:         total,
	}
	if height <= 0 || total == 0 {
		if total == 0 {
			w.Offset = 0
		}
		return w
	}

	maxOffset := max(0, total-height)
	offset = min(max(offset, 0), maxOffset)

	if i := w.SelectedIndex; i >= 0 {
		if i < offset {
			offset = i
		} else if i >= offset+height {
			offset = i - height + 1
		}
		offset = min(max(offset, 0), maxOffset)
	}

	w.Offset = offset
	w.Start = offset
	w.End = min(total, offset+height)
	w.Rows = rows[w.Start:w.End]
	return w
}
