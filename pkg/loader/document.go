package loader

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/vanderheijden86/bwtree/pkg/tree"
)

// ErrMissingID is returned for items without an identifier.
var ErrMissingID = errors.New("item has no id")

// Entry is the payload carried by every loaded node.
type Entry struct {
	Label       string `json:"label,omitempty" yaml:"label,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"` // Markdown
	Source      string `json:"-" yaml:"-"`                                          // File or database the entry came from
}

// Title returns the label, or id when the label is empty.
func (e Entry) Title(id string) string {
	if e.Label != "" {
		return e.Label
	}
	return id
}

// Item is one node of a nested forest document.
type Item struct {
	ID          string `json:"id" yaml:"id"`
	Label       string `json:"label,omitempty" yaml:"label,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Children    []Item `json:"children,omitempty" yaml:"children,omitempty"`
}

// Document is the top level of a YAML or JSON forest file:
//
//	title: Fleet
//	items:
//	  - id: a
//	    label: Alfa
//	  - id: b
//	    children:
//	      - id: c
//
// A bare list of items is accepted as well.
type Document struct {
	Title string `json:"title,omitempty" yaml:"title,omitempty"`
	Items []Item `json:"items" yaml:"items"`
}

// ParseYAML decodes a YAML forest document.
func ParseYAML(data []byte) (Document, error) {
	var doc Document
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return doc, fmt.Errorf("parsing yaml: %w", err)
	}
	if len(node.Content) == 0 {
		return doc, nil
	}
	root := node.Content[0]
	if root.Kind == yaml.SequenceNode {
		if err := root.Decode(&doc.Items); err != nil {
			return doc, fmt.Errorf("parsing yaml: %w", err)
		}
		return doc, nil
	}
	if err := root.Decode(&doc); err != nil {
		return doc, fmt.Errorf("parsing yaml: %w", err)
	}
	return doc, nil
}

// ParseJSON decodes a JSON forest document.
func ParseJSON(data []byte) (Document, error) {
	var doc Document
	data = bytes.TrimSpace(stripBOM(data))
	if len(data) == 0 {
		return doc, nil
	}
	if data[0] == '[' {
		if err := json.Unmarshal(data, &doc.Items); err != nil {
			return doc, fmt.Errorf("parsing json: %w", err)
		}
		return doc, nil
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return doc, fmt.Errorf("parsing json: %w", err)
	}
	return doc, nil
}

// Nodes converts the document items into tree nodes. Sibling identifiers
// must be distinct; the error names the offending parent path.
func (d Document) Nodes(source string) ([]*tree.Node[string, Entry], error) {
	return buildItems(d.Items, nil, source)
}

func buildItems(items []Item, parent tree.Path[string], source string) ([]*tree.Node[string, Entry], error) {
	nodes := make([]*tree.Node[string, Entry], 0, len(items))
	for i, it := range items {
		if it.ID == "" {
			if len(parent) == 0 {
				return nil, fmt.Errorf("item %d at root level: %w", i, ErrMissingID)
			}
			return nil, fmt.Errorf("item %d under %s: %w", i, parent, ErrMissingID)
		}
		entry := Entry{Label: it.Label, Description: it.Description, Source: source}
		if len(it.Children) == 0 {
			nodes = append(nodes, tree.NewLeaf(it.ID, entry))
			continue
		}
		path := parent.Child(it.ID)
		children, err := buildItems(it.Children, path, source)
		if err != nil {
			return nil, err
		}
		n, err := tree.NewNode(it.ID, entry, children...)
		if err != nil {
			return nil, fmt.Errorf("building %s: %w", path, err)
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

// stripBOM removes the UTF-8 Byte Order Mark if present
func stripBOM(b []byte) []byte {
	if bytes.HasPrefix(b, []byte{0xEF, 0xBB, 0xBF}) {
		return b[3:]
	}
	return b
}
