package tree_test

import (
	"testing"

	"github.com/vanderheijden86/bwtree/pkg/testutil"
	"github.com/vanderheijden86/bwtree/pkg/tree"
)

func BenchmarkInit(b *testing.B) {
	specs := testutil.NATOSpecs()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		nodes, err := testutil.Build(specs...)
		if err != nil {
			b.Fatal(err)
		}
		if _, err := tree.NewForest(nodes...); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkRender(b *testing.B) {
	f := testutil.MustForest(testutil.NATOSpecs()...)
	s := tree.NewState[string, string]()
	s.SetHeight(10)
	s.Toggle(f, tree.NewPath("Papa"))
	s.Toggle(f, tree.NewPath("Papa", "Victor"))
	s.Select(tree.NewPath("Papa", "Victor", "Yankee"))

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		s.Render(f)
	}
}

func BenchmarkFlattenLarge(b *testing.B) {
	specs := testutil.NewDefault().Balanced(4, 6)
	f := testutil.MustForest(specs...)
	s := tree.NewState[string, string]()
	s.OpenAll(f)

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		s.Flatten(f)
	}
}

func BenchmarkFlattenMostlyClosed(b *testing.B) {
	specs := testutil.NewDefault().Balanced(4, 6)
	f := testutil.MustForest(specs...)
	s := tree.NewState[string, string]()
	s.Toggle(f, tree.NewPath(specs[0].ID))

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		s.Flatten(f)
	}
}
