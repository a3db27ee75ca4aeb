// Package testutil provides forest fixtures and assertions for tests.
// All generators produce deterministic output for reproducible tests.
package testutil

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/vanderheijden86/bwtree/pkg/tree"
)

// Spec describes a node declaratively. Payloads are derived from the
// identifier when the forest is built.
type Spec struct {
	ID       string
	Label    string
	Children []Spec
}

// N is shorthand for a Spec.
func N(id string, children ...Spec) Spec {
	return Spec{ID: id, Children: children}
}

// Build turns specs into nodes. Empty labels default to the identifier.
func Build(specs ...Spec) ([]*tree.Node[string, string], error) {
	nodes := make([]*tree.Node[string, string], 0, len(specs))
	for _, s := range specs {
		label := s.Label
		if label == "" {
			label = s.ID
		}
		if len(s.Children) == 0 {
			nodes = append(nodes, tree.NewLeaf(s.ID, label))
			continue
		}
		children, err := Build(s.Children...)
		if err != nil {
			return nil, err
		}
		n, err := tree.NewNode(s.ID, label, children...)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

// MustForest builds a forest and panics on invalid fixtures.
func MustForest(specs ...Spec) *tree.Forest[string, string] {
	nodes, err := Build(specs...)
	if err != nil {
		panic(fmt.Sprintf("testutil: invalid fixture: %v", err))
	}
	f, err := tree.NewForest(nodes...)
	if err != nil {
		panic(fmt.Sprintf("testutil: invalid fixture: %v", err))
	}
	return f
}

// ExampleSpecs is the small reference forest used throughout the tests:
//
//	a
//	b
//	├── c
//	├── d
//	│   ├── e
//	│   └── f
//	└── g
//	h
func ExampleSpecs() []Spec {
	return []Spec{
		{ID: "a", Label: "Alfa"},
		{ID: "b", Label: "Bravo", Children: []Spec{
			{ID: "c", Label: "Charlie"},
			{ID: "d", Label: "Delta", Children: []Spec{
				{ID: "e", Label: "Echo"},
				{ID: "f", Label: "Foxtrot"},
			}},
			{ID: "g", Label: "Golf"},
		}},
		{ID: "h", Label: "Hotel"},
	}
}

// Example builds ExampleSpecs.
func Example() *tree.Forest[string, string] {
	return MustForest(ExampleSpecs()...)
}

// NATOSpecs is the larger forest used by benchmarks: 26 nodes, four branches.
func NATOSpecs() []Spec {
	leaves := func(ids ...string) []Spec {
		out := make([]Spec, len(ids))
		for i, id := range ids {
			out[i] = Spec{ID: id}
		}
		return out
	}
	return []Spec{
		{ID: "Alfa"},
		{ID: "Bravo", Children: []Spec{
			{ID: "Charlie"},
			{ID: "Delta", Children: leaves("Echo", "Foxtrot")},
			{ID: "Golf"},
		}},
		{ID: "Hotel"},
		{ID: "India", Children: leaves("Juliet", "Kilo", "Lima", "Mike", "November")},
		{ID: "Oscar"},
		{ID: "Papa", Children: append(
			leaves("Quebec", "Romeo", "Sierra", "Tango", "Uniform"),
			Spec{ID: "Victor", Children: leaves("Whiskey", "Xray", "Yankee")},
		)},
		{ID: "Zulu"},
	}
}

// GeneratorConfig controls forest generation.
type GeneratorConfig struct {
	Seed        int64  // Random seed for determinism (0 = use current time)
	IDPrefix    string // Prefix for identifiers (default: "n")
	MaxChildren int    // Upper bound on children per node for Random (default 4)
	MaxDepth    int    // Upper bound on depth for Random (default 4)
}

// DefaultConfig returns a config suitable for most tests.
func DefaultConfig() GeneratorConfig {
	return GeneratorConfig{
		Seed:        42,
		IDPrefix:    "n",
		MaxChildren: 4,
		MaxDepth:    4,
	}
}

// Generator creates forests with various shapes.
type Generator struct {
	cfg     GeneratorConfig
	rng     *rand.Rand
	counter int
}

// New creates a Generator with the given config.
func New(cfg GeneratorConfig) *Generator {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if cfg.IDPrefix == "" {
		cfg.IDPrefix = "n"
	}
	if cfg.MaxChildren <= 0 {
		cfg.MaxChildren = 4
	}
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = 4
	}
	return &Generator{
		cfg: cfg,
		rng: rand.New(rand.NewSource(seed)),
	}
}

// NewDefault creates a Generator with default config.
func NewDefault() *Generator {
	return New(DefaultConfig())
}

func (g *Generator) nextID() string {
	id := fmt.Sprintf("%s%d", g.cfg.IDPrefix, g.counter)
	g.counter++
	return id
}

// Chain creates a single root with one child per level: depth+1 nodes.
func (g *Generator) Chain(depth int) []Spec {
	root := Spec{ID: g.nextID()}
	cur := &root
	for i := 0; i < depth; i++ {
		cur.Children = []Spec{{ID: g.nextID()}}
		cur = &cur.Children[0]
	}
	return []Spec{root}
}

// Wide creates n leaf roots.
func (g *Generator) Wide(n int) []Spec {
	out := make([]Spec, n)
	for i := range out {
		out[i] = Spec{ID: g.nextID()}
	}
	return out
}

// Balanced creates breadth roots, each node having breadth children down to
// depth levels below the roots.
func (g *Generator) Balanced(depth, breadth int) []Spec {
	var level func(d int) []Spec
	level = func(d int) []Spec {
		out := make([]Spec, breadth)
		for i := range out {
			out[i] = Spec{ID: g.nextID()}
			if d < depth {
				out[i].Children = level(d + 1)
			}
		}
		return out
	}
	return level(0)
}

// Random creates up to roots root nodes with random fan-out bounded by the
// config. Identifiers are drawn from a small alphabet so the same identifier
// often appears under different parents.
func (g *Generator) Random(roots int) []Spec {
	var level func(n, d int) []Spec
	level = func(n, d int) []Spec {
		ids := g.rng.Perm(26)[:n]
		out := make([]Spec, n)
		for i, v := range ids {
			out[i] = Spec{ID: string(rune('a' + v))}
			if d < g.cfg.MaxDepth && g.rng.Intn(2) == 0 {
				out[i].Children = level(1+g.rng.Intn(g.cfg.MaxChildren), d+1)
			}
		}
		return out
	}
	return level(min(max(roots, 1), 26), 0)
}

// Paths lists the path of every node in specs, pre-order.
func Paths(specs []Spec) []tree.Path[string] {
	var out []tree.Path[string]
	var walk func(prefix tree.Path[string], specs []Spec)
	walk = func(prefix tree.Path[string], specs []Spec) {
		for _, s := range specs {
			p := prefix.Child(s.ID)
			out = append(out, p)
			walk(p, s.Children)
		}
	}
	walk(nil, specs)
	return out
}
