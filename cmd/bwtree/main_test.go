package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vanderheijden86/bwtree/internal/datasource"
	"github.com/vanderheijden86/bwtree/pkg/loader"
	"github.com/vanderheijden86/bwtree/pkg/tree"
)

const fleetYAML = `title: Fleet
items:
  - id: a
    label: Alfa
  - id: b
    label: Bravo
    children:
      - id: c
        label: Charlie
      - id: d
  - id: h
    label: Hotel
`

type testEnv struct {
	dir   string
	tree  string
	state string
	cfg   string
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	dir := t.TempDir()
	env := testEnv{
		dir:   dir,
		tree:  filepath.Join(dir, "fleet.yaml"),
		state: filepath.Join(dir, "state", "tree-state.json"),
		cfg:   filepath.Join(dir, "missing-config.yaml"),
	}
	if err := os.WriteFile(env.tree, []byte(fleetYAML), 0644); err != nil {
		t.Fatal(err)
	}
	return env
}

func (e testEnv) run(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	base := []string{"-config", e.cfg, "-state", e.state}
	code := run(append(base, args...), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRunVersion(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"-version"}, &stdout, &stderr); code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if !strings.HasPrefix(stdout.String(), "bwtree ") {
		t.Errorf("unexpected version output %q", stdout.String())
	}
}

func TestRunNoArgs(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run(nil, &stdout, &stderr); code != 2 {
		t.Errorf("expected exit 2, got %d", code)
	}
	if !strings.Contains(stderr.String(), "Usage: bwtree") {
		t.Errorf("expected usage, got %q", stderr.String())
	}
}

func TestRunBadFlag(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"-nope"}, &stdout, &stderr); code != 2 {
		t.Errorf("expected exit 2, got %d", code)
	}
}

func TestRunPrintCollapsed(t *testing.T) {
	env := newTestEnv(t)
	code, out, errOut := env.run(t, "-print", env.tree)
	if code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", code, errOut)
	}
	want := "  Alfa\n▶ Bravo\n  Hotel\n"
	if out != want {
		t.Errorf("expected\n%q\ngot\n%q", want, out)
	}
}

func TestRunPrintOpenAllConnectors(t *testing.T) {
	env := newTestEnv(t)
	code, out, errOut := env.run(t, "-open-all", "-connectors", env.tree)
	if code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", code, errOut)
	}
	want := "  Alfa\n▼ Bravo\n├──   Charlie\n└──   d\n  Hotel\n"
	if out != want {
		t.Errorf("expected\n%q\ngot\n%q", want, out)
	}
}

func TestRunPrintHeight(t *testing.T) {
	env := newTestEnv(t)
	_, out, _ := env.run(t, "-open-all", "-height", "2", env.tree)
	if got := strings.Count(out, "\n"); got != 2 {
		t.Errorf("expected 2 lines, got %d: %q", got, out)
	}
}

func TestRunUsesSavedState(t *testing.T) {
	env := newTestEnv(t)

	s := tree.NewState[string, loader.Entry]()
	s.Select(tree.NewPath("b"))
	src, err := datasource.Detect(env.tree)
	if err != nil {
		t.Fatal(err)
	}
	f, err := datasource.Load(t.Context(), []datasource.DataSource{src}, loader.ParseOptions{})
	if err != nil {
		t.Fatal(err)
	}
	s.Open(f, tree.NewPath("b"))
	saveState(env.state, s)

	_, out, _ := env.run(t, env.tree)
	if !strings.Contains(out, "Charlie") {
		t.Errorf("expected saved open state to show children, got %q", out)
	}

	_, out, _ = env.run(t, "-no-state", env.tree)
	if strings.Contains(out, "Charlie") {
		t.Errorf("expected -no-state to ignore saved state, got %q", out)
	}
}

func TestRunMissingFile(t *testing.T) {
	env := newTestEnv(t)
	code, _, errOut := env.run(t, filepath.Join(env.dir, "nope.yaml"))
	if code != 1 {
		t.Errorf("expected exit 1, got %d", code)
	}
	if errOut == "" {
		t.Error("expected error output")
	}
}

func TestRunInvalidConfig(t *testing.T) {
	env := newTestEnv(t)
	if err := os.WriteFile(env.cfg, []byte("tree:\n  indent_width: -1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if code, _, _ := env.run(t, env.tree); code != 1 {
		t.Errorf("expected exit 1 for invalid config, got %d", code)
	}
}

func TestRunMetrics(t *testing.T) {
	env := newTestEnv(t)
	_, _, errOut := env.run(t, "-metrics", env.tree)
	if !strings.Contains(errOut, `"name"`) {
		t.Errorf("expected metrics JSON on stderr, got %q", errOut)
	}
}

func TestStateRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "tree-state.json")
	s := tree.NewState[string, loader.Entry]()
	s.Select(tree.NewPath("b", "c"))
	saveState(path, s)

	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("expected temp file to be renamed")
	}
	got := loadState(path)
	if !got.Selected().Equal(tree.NewPath("b", "c")) {
		t.Errorf("expected selection b/c, got %v", got.Selected())
	}
}

func TestLoadStateCorrupted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tree-state.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	s := loadState(path)
	if s.Selected() != nil || len(s.OpenPaths()) != 0 {
		t.Error("expected fresh state for corrupted file")
	}
}

func TestLoadStateMissing(t *testing.T) {
	s := loadState(filepath.Join(t.TempDir(), "none.json"))
	if s == nil {
		t.Fatal("expected a fresh state")
	}
}

func TestRunStats(t *testing.T) {
	env := newTestEnv(t)
	code, out, errOut := env.run(t, "-stats", env.tree)
	if code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", code, errOut)
	}
	if !strings.Contains(out, `"nodes": 5`) || !strings.Contains(out, `"max_depth": 1`) {
		t.Errorf("unexpected stats %s", out)
	}
}

func TestRunExport(t *testing.T) {
	env := newTestEnv(t)
	out := filepath.Join(env.dir, "fleet.md")
	code, stdout, errOut := env.run(t, "-export", out, "-open-all", env.tree)
	if code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", code, errOut)
	}
	if !strings.Contains(stdout, "Exported to") {
		t.Errorf("unexpected output %q", stdout)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "**Charlie** `b/c`") {
		t.Errorf("unexpected markdown:\n%s", data)
	}
}

func TestRunExportUnsupported(t *testing.T) {
	env := newTestEnv(t)
	if code, _, _ := env.run(t, "-export", filepath.Join(env.dir, "x.txt"), env.tree); code != 1 {
		t.Errorf("expected exit 1, got %d", code)
	}
}
