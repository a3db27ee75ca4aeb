package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// MinDetailPaneWidth hides the detail pane on narrow terminals.
const MinDetailPaneWidth = 40

// detailRenderer renders markdown descriptions. The glamour renderer is
// rebuilt only when the wrap width changes.
type detailRenderer struct {
	width    int
	renderer *glamour.TermRenderer
	cache    map[string]string
}

func newDetailRenderer() *detailRenderer {
	return &detailRenderer{cache: make(map[string]string)}
}

// Render returns md rendered for width columns. Rendering errors fall back
// to the raw text.
func (d *detailRenderer) Render(md string, width int) string {
	md = strings.TrimSpace(md)
	if md == "" {
		return ""
	}
	width = max(width, 20)
	if d.renderer == nil || d.width != width {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return md
		}
		d.renderer = r
		d.width = width
		clear(d.cache)
	}
	if out, ok := d.cache[md]; ok {
		return out
	}
	out, err := d.renderer.Render(md)
	if err != nil {
		return md
	}
	out = strings.TrimRight(out, "\n")
	d.cache[md] = out
	return out
}
