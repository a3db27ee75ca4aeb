// Package analysis computes shape statistics of a loaded forest.
package analysis

import (
	"cmp"
	"slices"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/traverse"
	"gonum.org/v1/gonum/stat"

	"github.com/vanderheijden86/bwtree/pkg/tree"
)

// ForestStats summarises the shape of a forest.
type ForestStats struct {
	Nodes    int `json:"nodes"`
	Roots    int `json:"roots"`
	Leaves   int `json:"leaves"`
	Branches int `json:"branches"`
	Edges    int `json:"edges"`
	MaxDepth int `json:"max_depth"` // 0 = only roots

	MeanDepth       float64 `json:"mean_depth"`
	MeanBranching   float64 `json:"mean_branching"` // children per branch node
	StdDevBranching float64 `json:"stddev_branching"`

	// Largest subtrees by number of descendants, biggest first.
	Largest []SubtreeSize `json:"largest,omitempty"`
}

// SubtreeSize is the number of descendants below a path.
type SubtreeSize struct {
	Path        string `json:"path"`
	Descendants int    `json:"descendants"`
}

// DefaultTopN is the number of largest subtrees reported.
const DefaultTopN = 5

// Analyze loads f into a directed graph, one edge per parent/child pair,
// and computes its statistics from graph walks. topN limits the
// largest-subtree list; 0 uses DefaultTopN.
func Analyze[ID cmp.Ordered, T any](f *tree.Forest[ID, T], topN int) ForestStats {
	if topN <= 0 {
		topN = DefaultTopN
	}

	g := simple.NewDirectedGraph()
	graphIDs := make(map[*tree.Node[ID, T]]int64)
	var roots []graph.Node
	var branches []branchNode // pre-order, so ties keep forest order

	f.Walk(func(p tree.Path[ID], n *tree.Node[ID, T]) bool {
		gn := g.NewNode()
		g.AddNode(gn)
		graphIDs[n] = gn.ID()
		if parent := p.Parent(); parent != nil {
			g.SetEdge(g.NewEdge(g.Node(graphIDs[f.Find(parent)]), gn))
		} else {
			roots = append(roots, gn)
		}
		if !n.IsLeaf() {
			branches = append(branches, branchNode{path: p.String(), id: gn.ID()})
		}
		return true
	})

	stats := ForestStats{
		Nodes: g.Nodes().Len(),
		Roots: len(roots),
		Edges: g.Edges().Len(),
	}

	var depths []float64
	var bf traverse.BreadthFirst
	for _, r := range roots {
		bf.Walk(g, r, func(_ graph.Node, d int) bool {
			depths = append(depths, float64(d))
			stats.MaxDepth = max(stats.MaxDepth, d)
			return false
		})
	}

	var branching []float64
	subtrees := make([]SubtreeSize, 0, len(branches))
	var df traverse.DepthFirst
	for _, b := range branches {
		branching = append(branching, float64(g.From(b.id).Len()))
		reached := 0
		df.Walk(g, g.Node(b.id), func(graph.Node) bool {
			reached++
			return false
		})
		df.Reset()
		subtrees = append(subtrees, SubtreeSize{Path: b.path, Descendants: reached - 1})
	}
	stats.Branches = len(branches)
	stats.Leaves = stats.Nodes - stats.Branches

	if len(depths) > 0 {
		stats.MeanDepth = stat.Mean(depths, nil)
	}
	if len(branching) > 0 {
		stats.MeanBranching, stats.StdDevBranching = stat.MeanStdDev(branching, nil)
		if len(branching) == 1 {
			stats.StdDevBranching = 0
		}
	}

	slices.SortStableFunc(subtrees, func(a, b SubtreeSize) int {
		return cmp.Compare(b.Descendants, a.Descendants)
	})
	if len(subtrees) > topN {
		subtrees = subtrees[:topN]
	}
	stats.Largest = subtrees
	return stats
}

type branchNode struct {
	path string
	id   int64
}
