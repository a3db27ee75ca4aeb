package datasource

import (
	"fmt"
	"slices"
	"strings"

	"github.com/vanderheijden86/bwtree/pkg/loader"
	"github.com/vanderheijden86/bwtree/pkg/tree"
)

// ForestDiff represents differences between two loads of the same sources
type ForestDiff struct {
	// Added contains paths present in the new forest only
	Added []string
	// Removed contains paths present in the old forest only
	Removed []string
	// Changed contains paths whose label or description differ
	Changed []string
	// CountOld is the number of nodes in the old forest
	CountOld int
	// CountNew is the number of nodes in the new forest
	CountNew int
}

// HasChanges returns true if the forests differ
func (d ForestDiff) HasChanges() bool {
	return len(d.Added) > 0 || len(d.Removed) > 0 || len(d.Changed) > 0
}

// Short returns a compact "+a -r ~c" form for status lines.
func (d ForestDiff) Short() string {
	if !d.HasChanges() {
		return "no changes"
	}
	return fmt.Sprintf("+%d -%d ~%d", len(d.Added), len(d.Removed), len(d.Changed))
}

// Summary returns a human-readable summary of the differences
func (d ForestDiff) Summary() string {
	if !d.HasChanges() {
		return fmt.Sprintf("Forests match (%d nodes each)", d.CountNew)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Forest changed (%d -> %d nodes):\n", d.CountOld, d.CountNew)
	section := func(verb string, paths []string) {
		if len(paths) == 0 {
			return
		}
		fmt.Fprintf(&sb, "  - %d %s\n", len(paths), verb)
		if len(paths) <= 5 {
			for _, p := range paths {
				fmt.Fprintf(&sb, "    - %s\n", p)
			}
		}
	}
	section("added", d.Added)
	section("removed", d.Removed)
	section("changed", d.Changed)
	return sb.String()
}

// DiffForests compares two forests by path. Either may be nil.
func DiffForests(old, cur *loader.Forest) ForestDiff {
	before := entriesByPath(old)
	after := entriesByPath(cur)
	diff := ForestDiff{CountOld: len(before), CountNew: len(after)}

	for p, e := range before {
		n, ok := after[p]
		switch {
		case !ok:
			diff.Removed = append(diff.Removed, p)
		case n != e:
			diff.Changed = append(diff.Changed, p)
		}
	}
	for p := range after {
		if _, ok := before[p]; !ok {
			diff.Added = append(diff.Added, p)
		}
	}

	slices.Sort(diff.Added)
	slices.Sort(diff.Removed)
	slices.Sort(diff.Changed)
	return diff
}

// entriesByPath ignores Source so moving a subtree between files is not a change.
func entriesByPath(f *loader.Forest) map[string]loader.Entry {
	m := make(map[string]loader.Entry)
	if f == nil {
		return m
	}
	f.Walk(func(p tree.Path[string], n *tree.Node[string, loader.Entry]) bool {
		e := n.Payload()
		e.Source = ""
		m[p.String()] = e
		return true
	})
	return m
}
