// Package datasource resolves the -source arguments of bwtree into forest
// sources: YAML, JSON or JSONL documents handled by pkg/loader, and SQLite
// databases holding an adjacency-list table.
package datasource

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/vanderheijden86/bwtree/pkg/loader"
)

// SourceType identifies the type of data source
type SourceType string

const (
	// SourceTypeSQLite is a SQLite database with a nodes table
	SourceTypeSQLite SourceType = "sqlite"
	// SourceTypeDocument is a YAML, JSON or JSONL file
	SourceTypeDocument SourceType = "document"
)

// DataSource represents one place a forest is read from
type DataSource struct {
	// Type identifies the source type
	Type SourceType `json:"type"`
	// Path is the absolute path to the source file
	Path string `json:"path"`
	// ModTime is the last modification time of the source
	ModTime time.Time `json:"mod_time"`
	// Size is the file size in bytes
	Size int64 `json:"size"`
}

// String returns a human-readable description of the source
func (s DataSource) String() string {
	return fmt.Sprintf("%s (%s, mod=%s, %d bytes)",
		s.Path, s.Type, s.ModTime.Format(time.RFC3339), s.Size)
}

// IsSQLitePath reports whether path names a SQLite database by extension.
func IsSQLitePath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return true
	default:
		return false
	}
}

// Detect stats path and classifies it.
func Detect(path string) (DataSource, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return DataSource{}, fmt.Errorf("resolving %s: %w", path, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return DataSource{}, fmt.Errorf("cannot stat source: %w", err)
	}
	if info.IsDir() {
		return DataSource{}, fmt.Errorf("source %s is a directory", abs)
	}

	src := DataSource{Path: abs, ModTime: info.ModTime(), Size: info.Size()}
	switch {
	case IsSQLitePath(abs):
		src.Type = SourceTypeSQLite
	case loader.DetectFormat(abs) != loader.FormatUnknown:
		src.Type = SourceTypeDocument
	default:
		return DataSource{}, fmt.Errorf("unsupported source %s: expected .yaml, .yml, .json, .jsonl or .db", abs)
	}
	return src, nil
}

// DetectAll classifies every path, failing on the first bad one.
func DetectAll(paths []string) ([]DataSource, error) {
	sources := make([]DataSource, 0, len(paths))
	for _, p := range paths {
		src, err := Detect(p)
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}
	return sources, nil
}

// Paths returns the path of every source.
func Paths(sources []DataSource) []string {
	out := make([]string, len(sources))
	for i, s := range sources {
		out[i] = s.Path
	}
	return out
}
