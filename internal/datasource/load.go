package datasource

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/vanderheijden86/bwtree/pkg/debug"
	"github.com/vanderheijden86/bwtree/pkg/loader"
	"github.com/vanderheijden86/bwtree/pkg/metrics"
	"github.com/vanderheijden86/bwtree/pkg/tree"
)

// LoadFromSource reads the root nodes of a single source, dispatching to the
// appropriate reader based on source type.
func LoadFromSource(ctx context.Context, source DataSource, opts loader.ParseOptions) ([]*tree.Node[string, loader.Entry], error) {
	switch source.Type {
	case SourceTypeSQLite:
		reader, err := NewSQLiteReader(source)
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite source %s: %w", source.Path, err)
		}
		defer reader.Close()

		records, err := reader.LoadRecords(ctx)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", source.Path, err)
		}
		nodes, err := loader.BuildAdjacency(records, source.Path, opts)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", source.Path, err)
		}
		return nodes, nil

	case SourceTypeDocument:
		return loader.LoadFile(source.Path, opts)

	default:
		return nil, fmt.Errorf("unknown source type: %s", source.Type)
	}
}

// Load reads all sources concurrently and joins their roots, in source
// order, into one forest.
func Load(ctx context.Context, sources []DataSource, opts loader.ParseOptions) (*loader.Forest, error) {
	defer metrics.Timer(metrics.ForestLoad)()

	results := make([][]*tree.Node[string, loader.Entry], len(sources))
	g, ctx := errgroup.WithContext(ctx)
	for i, src := range sources {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			nodes, err := LoadFromSource(ctx, src, opts)
			if err != nil {
				return err
			}
			results[i] = nodes
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var roots []*tree.Node[string, loader.Entry]
	for i, nodes := range results {
		debug.Log("datasource: %s: %d roots", sources[i], len(nodes))
		roots = append(roots, nodes...)
	}
	f, err := tree.NewForest(roots...)
	if err != nil {
		return nil, fmt.Errorf("merging %d sources: %w", len(sources), err)
	}
	return f, nil
}
