package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/bwtree/pkg/config"
	"github.com/vanderheijden86/bwtree/pkg/loader"
	"github.com/vanderheijden86/bwtree/pkg/tree"
	"github.com/vanderheijden86/bwtree/pkg/ui"
)

// printTree writes the visible rows without styling or highlight column.
// cfg.Tree.Height limits the number of rows; 0 prints all of them.
func printTree(w io.Writer, f *loader.Forest, s *entryState, cfg config.Config) error {
	rows := s.Flatten(f)
	height := len(rows)
	if cfg.Tree.Height > 0 {
		height = min(height, cfg.Tree.Height)
	}
	win := tree.Resolve(rows, nil, 0, height)

	opts := ui.OptionsFromConfig(cfg.Tree)
	opts.ShowPosition = false
	r := ui.NewRenderer(ui.PlainTheme(lipgloss.NewRenderer(w)), opts, entryLabel)
	for _, line := range r.Lines(f, win) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
