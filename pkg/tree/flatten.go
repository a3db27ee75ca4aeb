package tree

import (
	"cmp"

	"github.com/vanderheijden86/bwtree/pkg/metrics"
)

// Row is one visible line after flattening. Rows are rebuilt every render
// and point into the Forest they came from.
type Row[ID cmp.Ordered, T any] struct {
	Path        Path[ID]
	Depth       int // 0 = root, no indentation
	HasChildren bool
	IsOpen      bool // only ever true when HasChildren is
	Node        *Node[ID, T]
}

// Flatten lists the visible nodes depth-first, parents before children, in
// sibling order. A node's children are listed only when its path is in open.
// Collapsed subtrees are never entered, so the cost follows the number of
// visible rows rather than the size of the forest.
func Flatten[ID cmp.Ordered, T any](f *Forest[ID, T], open *PathSet[ID]) []Row[ID, T] {
	defer metrics.Timer(metrics.Flatten)()

	if f.Len() == 0 {
		return nil
	}
	var trie *pathNode[ID]
	if open != nil {
		trie = &open.root
	}
	rows := make([]Row[ID, T], 0, len(f.roots))
	return appendVisible(rows, f.roots, nil, trie)
}

// appendVisible walks the open-set trie alongside the forest so each lookup
// is a single map access.
func appendVisible[ID cmp.Ordered, T any](rows []Row[ID, T], nodes []*Node[ID, T], prefix Path[ID], open *pathNode[ID]) []Row[ID, T] {
	for _, n := range nodes {
		path := prefix.Child(n.id)
		sub := open.child(n.id)
		hasChildren := len(n.children) > 0
		isOpen := hasChildren && sub != nil && sub.member

		rows = append(rows, Row[ID, T]{
			Path:        path,
			Depth:       len(path) - 1,
			HasChildren: hasChildren,
			IsOpen:      isOpen,
			Node:        n,
		})
		if isOpen {
			rows = appendVisible(rows, n.children, path, sub)
		}
	}
	return rows
}

// IndexOf returns the index of the row whose path equals p, or -1.
func IndexOf[ID cmp.Ordered, T any](rows []Row[ID, T], p Path[ID]) int {
	if len(p) == 0 {
		return -1
	}
	for i := range rows {
		if rows[i].Path.Equal(p) {
			return i
		}
	}
	return -1
}
