package ui

import (
	"cmp"
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"github.com/vanderheijden86/bwtree/pkg/config"
	"github.com/vanderheijden86/bwtree/pkg/tree"
)

// TreeOptions are the visual choices of the tree renderer.
type TreeOptions struct {
	IndentWidth     int
	HighlightSymbol string
	OpenSymbol      string
	ClosedSymbol    string
	LeafSymbol      string
	Connectors      bool // Draw ├── └── │ instead of plain indentation
	Width           int  // 0 = no truncation
	ShowPosition    bool // Append "Page X/Y (a-b of n)" when scrolling is possible
}

// OptionsFromConfig maps the tree section of the config file.
func OptionsFromConfig(cfg config.TreeConfig) TreeOptions {
	return TreeOptions{
		IndentWidth:     cfg.IndentWidth,
		HighlightSymbol: cfg.HighlightSymbol,
		OpenSymbol:      cfg.OpenSymbol,
		ClosedSymbol:    cfg.ClosedSymbol,
		LeafSymbol:      cfg.LeafSymbol,
		Connectors:      cfg.Connectors,
		ShowPosition:    true,
	}
}

// DefaultTreeOptions returns the options of the default config.
func DefaultTreeOptions() TreeOptions {
	return OptionsFromConfig(config.DefaultConfig().Tree)
}

// LabelFunc returns the text shown for a row.
type LabelFunc[ID cmp.Ordered, T any] func(row tree.Row[ID, T]) string

// Renderer draws a resolved window of rows. It only reads the window and the
// forest; all state changes go through tree.State.
type Renderer[ID cmp.Ordered, T any] struct {
	theme Theme
	opts  TreeOptions
	label LabelFunc[ID, T]
}

// NewRenderer creates a renderer. A nil label prints the row identifier.
func NewRenderer[ID cmp.Ordered, T any](theme Theme, opts TreeOptions, label LabelFunc[ID, T]) *Renderer[ID, T] {
	if label == nil {
		label = func(row tree.Row[ID, T]) string {
			id, _ := row.Path.Last()
			return fmt.Sprint(id)
		}
	}
	return &Renderer[ID, T]{theme: theme, opts: opts, label: label}
}

// SetWidth sets the width rows are truncated to.
func (r *Renderer[ID, T]) SetWidth(width int) {
	r.opts.Width = max(width, 0)
}

// Options returns the renderer options.
func (r *Renderer[ID, T]) Options() TreeOptions { return r.opts }

// View renders the window, followed by the position indicator when the
// list is longer than the viewport.
func (r *Renderer[ID, T]) View(f *tree.Forest[ID, T], w tree.Window[ID, T]) string {
	if w.Total == 0 {
		return r.theme.Indicator.Render("No items to display.")
	}
	var sb strings.Builder
	for i, line := range r.Lines(f, w) {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(line)
	}
	if r.opts.ShowPosition && len(w.Rows) > 0 && w.Total > len(w.Rows) {
		sb.WriteString("\n")
		sb.WriteString(r.theme.Indicator.Render(PositionIndicator(w)))
	}
	return sb.String()
}

// Lines renders one line per row of the window.
func (r *Renderer[ID, T]) Lines(f *tree.Forest[ID, T], w tree.Window[ID, T]) []string {
	lines := make([]string, len(w.Rows))
	for i, row := range w.Rows {
		lines[i] = r.renderRow(f, row, w.Start+i == w.SelectedIndex, w.SelectedIndex >= 0)
	}
	return lines
}

// renderRow lays out [highlight column][indent or connectors][symbol][label].
// The highlight column exists only while a visible row is selected; other
// rows get blank padding of the same width so labels stay aligned.
func (r *Renderer[ID, T]) renderRow(f *tree.Forest[ID, T], row tree.Row[ID, T], selected, highlightColumn bool) string {
	var mark string
	if highlightColumn {
		if selected {
			mark = r.opts.HighlightSymbol
		} else {
			mark = strings.Repeat(" ", runewidth.StringWidth(r.opts.HighlightSymbol))
		}
	}

	var indent string
	if r.opts.Connectors {
		indent = connectorPrefix(f, row.Path)
	} else {
		indent = strings.Repeat(" ", row.Depth*max(r.opts.IndentWidth, 0))
	}

	symbol := r.opts.LeafSymbol
	if row.HasChildren {
		symbol = r.opts.ClosedSymbol
		if row.IsOpen {
			symbol = r.opts.OpenSymbol
		}
	}

	label := r.label(row)
	if r.opts.Width > 0 {
		used := runewidth.StringWidth(mark) + runewidth.StringWidth(indent) + runewidth.StringWidth(symbol)
		label = runewidth.Truncate(label, max(r.opts.Width-used, 0), "…")
	}

	var line string
	if selected {
		line = r.theme.Selected.Render(mark + indent + symbol + label)
	} else {
		line = mark + r.theme.Connector.Render(indent) + r.theme.Symbol.Render(symbol) + r.theme.Base.Render(label)
	}
	if r.opts.Width > 0 {
		// Styles may add padding or borders; never exceed the width.
		line = ansi.Truncate(line, r.opts.Width, "")
	}
	return line
}

// connectorPrefix draws the guide lines for a row: one column per ancestor
// below the root, then the branch into the row itself. Roots get none.
func connectorPrefix[ID cmp.Ordered, T any](f *tree.Forest[ID, T], p tree.Path[ID]) string {
	if len(p) <= 1 {
		return ""
	}
	var sb strings.Builder
	for depth := 1; depth < len(p)-1; depth++ {
		if isLastSibling(f, p[:depth+1]) {
			sb.WriteString("    ")
		} else {
			sb.WriteString("│   ")
		}
	}
	if isLastSibling(f, p) {
		sb.WriteString("└── ")
	} else {
		sb.WriteString("├── ")
	}
	return sb.String()
}

func isLastSibling[ID cmp.Ordered, T any](f *tree.Forest[ID, T], p tree.Path[ID]) bool {
	siblings := f.Roots()
	if parent := p.Parent(); parent != nil {
		n := f.Find(parent)
		if n == nil {
			return true
		}
		siblings = n.Children()
	}
	id, ok := p.Last()
	return !ok || len(siblings) == 0 || siblings[len(siblings)-1].ID() == id
}

// PositionIndicator formats "Page X/Y (a-b of n)" with 1-indexed rows.
func PositionIndicator[ID cmp.Ordered, T any](w tree.Window[ID, T]) string {
	pageSize := max(len(w.Rows), 1)
	totalPages := max((w.Total+pageSize-1)/pageSize, 1)
	currentPage := min(w.Offset/pageSize+1, totalPages)
	return fmt.Sprintf(" Page %d/%d (%d-%d of %d)", currentPage, totalPages, w.Start+1, w.End, w.Total)
}
