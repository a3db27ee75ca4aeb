package main

import (
	"log"
	"os"
	"path/filepath"

	"github.com/vanderheijden86/bwtree/pkg/loader"
	"github.com/vanderheijden86/bwtree/pkg/tree"
)

// loadState restores the tree state saved by a previous run. A missing file
// is a first run; a corrupted or unsupported one is ignored with a warning.
func loadState(path string) *entryState {
	data, err := os.ReadFile(path)
	if err != nil {
		return tree.NewState[string, loader.Entry]()
	}
	s, err := tree.UnmarshalState[string, loader.Entry](data)
	if err != nil {
		log.Printf("warning: invalid tree state file, using defaults: %v", err)
		return tree.NewState[string, loader.Entry]()
	}
	return s
}

// saveState writes the tree state for the next run. Failures only warn.
func saveState(path string, s *entryState) {
	data, err := tree.MarshalState(s)
	if err != nil {
		log.Printf("warning: failed to marshal tree state: %v", err)
		return
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Printf("warning: failed to create state directory %s: %v", dir, err)
		return
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		log.Printf("warning: failed to write tree state to %s: %v", path, err)
		return
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		log.Printf("warning: failed to write tree state to %s: %v", path, err)
	}
}
