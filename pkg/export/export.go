// Package export writes a loaded forest to Markdown, SQLite, SVG or PNG.
//
// Markdown and the image formats show the rows visible in a tree state, the
// way the TUI would list them. SQLite always receives the whole forest as an
// adjacency list that internal/datasource can read back.
package export

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vanderheijden86/bwtree/pkg/loader"
	"github.com/vanderheijden86/bwtree/pkg/metrics"
	"github.com/vanderheijden86/bwtree/pkg/tree"
)

// Format is an export file format.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatSQLite   Format = "sqlite"
	FormatSVG      Format = "svg"
	FormatPNG      Format = "png"
)

// Formats lists the supported formats in menu order.
var Formats = []Format{FormatMarkdown, FormatSQLite, FormatSVG, FormatPNG}

// ErrUnsupportedFormat is returned for unknown formats or file extensions.
var ErrUnsupportedFormat = errors.New("unsupported export format")

// FormatFromPath infers the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return FormatMarkdown, nil
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite, nil
	case ".svg":
		return FormatSVG, nil
	case ".png":
		return FormatPNG, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
}

// DefaultPath suggests an output file name for a format.
func DefaultPath(format Format) string {
	switch format {
	case FormatSQLite:
		return "tree.db"
	case FormatSVG:
		return "tree.svg"
	case FormatPNG:
		return "tree.png"
	default:
		return "tree.md"
	}
}

// Options control an export.
type Options struct {
	Path    string // Output path
	Format  Format // If empty, inferred from Path
	Title   string
	OpenAll bool // Export every node instead of the rows visible in the state
}

// Export writes f in the requested format. The state is only read; OpenAll
// works on a copy.
func Export(ctx context.Context, f *loader.Forest, s *tree.State[string, loader.Entry], opts Options) error {
	defer metrics.Timer(metrics.Export)()

	if opts.Path == "" {
		return fmt.Errorf("output path is required")
	}
	format := opts.Format
	if format == "" {
		var err error
		if format, err = FormatFromPath(opts.Path); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(filepath.Dir(opts.Path), 0o755); err != nil {
		return fmt.Errorf("create parent dir: %w", err)
	}

	switch format {
	case FormatSQLite:
		return WriteSQLite(ctx, opts.Path, f)
	case FormatMarkdown:
		file, err := os.Create(opts.Path)
		if err != nil {
			return err
		}
		defer file.Close()
		if err := WriteMarkdown(file, opts.Title, visibleRows(f, s, opts.OpenAll)); err != nil {
			return err
		}
		return file.Close()
	case FormatSVG:
		file, err := os.Create(opts.Path)
		if err != nil {
			return err
		}
		defer file.Close()
		WriteSVG(file, opts.Title, visibleRows(f, s, opts.OpenAll))
		return file.Close()
	case FormatPNG:
		return SavePNG(opts.Path, opts.Title, visibleRows(f, s, opts.OpenAll))
	}
	return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

func visibleRows(f *loader.Forest, s *tree.State[string, loader.Entry], openAll bool) []tree.Row[string, loader.Entry] {
	if openAll || s == nil {
		all := tree.NewState[string, loader.Entry]()
		if openAll {
			all.OpenAll(f)
		}
		return all.Flatten(f)
	}
	return s.Flatten(f)
}

func rowLabel(row tree.Row[string, loader.Entry]) string {
	id, _ := row.Path.Last()
	return row.Node.Payload().Title(id)
}
