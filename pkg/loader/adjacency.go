package loader

import (
	"bufio"
	"cmp"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/goccy/go-json"

	"github.com/vanderheijden86/bwtree/pkg/tree"
)

// ErrDuplicateRecord is returned when two adjacency records share an id.
var ErrDuplicateRecord = errors.New("duplicate record id")

// Record is one row of an adjacency list: a node naming its parent.
// An empty Parent makes the record a root.
type Record struct {
	ID          string `json:"id"`
	Parent      string `json:"parent,omitempty"`
	Label       string `json:"label,omitempty"`
	Description string `json:"description,omitempty"`
	Position    int    `json:"position,omitempty"` // Sibling order; ties keep input order
}

// DefaultMaxBufferSize is the default buffer size for the line reader (1MB).
const DefaultMaxBufferSize = 1024 * 1024

// ParseOptions configures the behavior of ParseRecords and BuildAdjacency.
type ParseOptions struct {
	// WarningHandler is called with warning messages (e.g., malformed JSON).
	// If nil, warnings are printed to os.Stderr.
	WarningHandler func(string)

	// BufferSize sets the maximum line size (in bytes) to read at once.
	// Lines longer than this are skipped with a warning.
	// If 0, uses DefaultMaxBufferSize.
	BufferSize int
}

func (o ParseOptions) warn() func(string) {
	if o.WarningHandler != nil {
		return o.WarningHandler
	}
	return func(msg string) {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", msg)
	}
}

// ParseRecords reads JSONL adjacency records, one object per line.
// Malformed lines and records without an id are skipped with a warning.
func ParseRecords(r io.Reader, opts ParseOptions) ([]Record, error) {
	maxCapacity := opts.BufferSize
	if maxCapacity <= 0 {
		maxCapacity = DefaultMaxBufferSize
	}
	reader := bufio.NewReaderSize(r, maxCapacity)
	warn := opts.warn()

	var records []Record
	lineNum := 0
	for {
		lineNum++
		line, isPrefix, err := reader.ReadLine()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("error reading records at line %d: %w", lineNum, err)
		}

		if isPrefix {
			// Line too long. Discard the rest of the line.
			warn(fmt.Sprintf("skipping line %d: line too long (exceeds %d bytes)", lineNum, maxCapacity))
			for isPrefix {
				_, isPrefix, err = reader.ReadLine()
				if err == io.EOF {
					break
				}
				if err != nil {
					return nil, fmt.Errorf("error skipping long line at line %d: %w", lineNum, err)
				}
			}
			continue
		}

		if lineNum == 1 {
			line = stripBOM(line)
		}
		if len(line) == 0 {
			continue
		}

		var rec Record
		if err := json.Unmarshal(line, &rec); err != nil {
			warn(fmt.Sprintf("skipping malformed JSON on line %d: %v", lineNum, err))
			continue
		}
		if rec.ID == "" {
			warn(fmt.Sprintf("skipping record on line %d: %v", lineNum, ErrMissingID))
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

// BuildAdjacency assembles records into root nodes. Records whose parent is
// unknown, and records only reachable through a cycle, are dropped with a
// warning. Identifiers must be unique across the whole list because parents
// are referenced by id.
func BuildAdjacency(records []Record, source string, opts ParseOptions) ([]*tree.Node[string, Entry], error) {
	warn := opts.warn()

	byID := make(map[string]int, len(records))
	for i, r := range records {
		if _, ok := byID[r.ID]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateRecord, r.ID)
		}
		byID[r.ID] = i
	}

	children := make(map[string][]int)
	var roots []int
	for i, r := range records {
		switch {
		case r.Parent == "":
			roots = append(roots, i)
		case r.Parent == r.ID:
			warn(fmt.Sprintf("dropping %s: record is its own parent", r.ID))
		default:
			if _, ok := byID[r.Parent]; !ok {
				warn(fmt.Sprintf("dropping %s: unknown parent %s", r.ID, r.Parent))
				continue
			}
			children[r.Parent] = append(children[r.Parent], i)
		}
	}

	byPosition := func(a, b int) int { return cmp.Compare(records[a].Position, records[b].Position) }
	reached := 0
	var build func(idx []int) ([]*tree.Node[string, Entry], error)
	build = func(idx []int) ([]*tree.Node[string, Entry], error) {
		slices.SortStableFunc(idx, byPosition)
		nodes := make([]*tree.Node[string, Entry], 0, len(idx))
		for _, i := range idx {
			reached++
			r := records[i]
			entry := Entry{Label: r.Label, Description: r.Description, Source: source}
			kids, err := build(children[r.ID])
			if err != nil {
				return nil, err
			}
			if len(kids) == 0 {
				nodes = append(nodes, tree.NewLeaf(r.ID, entry))
				continue
			}
			n, err := tree.NewNode(r.ID, entry, kids...)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, n)
		}
		return nodes, nil
	}

	nodes, err := build(roots)
	if err != nil {
		return nil, err
	}
	if dropped := len(records) - reached; dropped > 0 {
		warn(fmt.Sprintf("%d record(s) not reachable from a root", dropped))
	}
	return nodes, nil
}
