// Package loader reads forests from YAML, JSON and JSONL files.
//
// Nested documents (.yaml, .yml, .json) describe the tree directly through
// children lists. JSONL files (.jsonl) hold one adjacency record per line,
// each naming its parent. Every loaded node carries an Entry payload.
package loader

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vanderheijden86/bwtree/pkg/tree"
)

// Format identifies a forest file format.
type Format int

const (
	FormatUnknown Format = iota
	FormatYAML
	FormatJSON
	FormatJSONL
)

func (f Format) String() string {
	switch f {
	case FormatYAML:
		return "yaml"
	case FormatJSON:
		return "json"
	case FormatJSONL:
		return "jsonl"
	default:
		return "unknown"
	}
}

// DetectFormat picks the format from the file extension.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".json":
		return FormatJSON
	case ".jsonl", ".ndjson":
		return FormatJSONL
	default:
		return FormatUnknown
	}
}

// Forest is the concrete forest type produced by this package.
type Forest = tree.Forest[string, Entry]

// Parse decodes data in the given format into root nodes.
func Parse(data []byte, format Format, source string, opts ParseOptions) ([]*tree.Node[string, Entry], error) {
	switch format {
	case FormatYAML:
		doc, err := ParseYAML(data)
		if err != nil {
			return nil, err
		}
		return doc.Nodes(source)
	case FormatJSON:
		doc, err := ParseJSON(data)
		if err != nil {
			return nil, err
		}
		return doc.Nodes(source)
	case FormatJSONL:
		records, err := ParseRecords(bytes.NewReader(data), opts)
		if err != nil {
			return nil, err
		}
		return BuildAdjacency(records, source, opts)
	default:
		return nil, fmt.Errorf("unsupported format for %s", source)
	}
}

// LoadFile reads the root nodes of a single file.
func LoadFile(path string, opts ParseOptions) ([]*tree.Node[string, Entry], error) {
	format := DetectFormat(path)
	if format == FormatUnknown {
		return nil, fmt.Errorf("unsupported file extension %q for %s", filepath.Ext(path), path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read forest file: %w", err)
	}
	nodes, err := Parse(data, format, path, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return nodes, nil
}
