package ui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/bwtree/pkg/testutil"
	"github.com/vanderheijden86/bwtree/pkg/tree"
)

type fakeClipboard struct {
	got string
	err error
}

func (c *fakeClipboard) write(s string) error {
	if c.err != nil {
		return c.err
	}
	c.got = s
	return nil
}

func newTestModel(t *testing.T, cb *fakeClipboard) Model[string, string] {
	t.Helper()
	opts := Options[string, string]{
		Title:      "test",
		Theme:      PlainTheme(lipgloss.NewRenderer(nil)),
		Tree:       testOptions(),
		ScrollStep: 1,
		Label:      payloadLabel,
		Description: func(row tree.Row[string, string]) string {
			return "**" + row.Node.Payload() + "** details"
		},
	}
	if cb != nil {
		opts.Clipboard = cb.write
	}
	m := NewModel(testutil.Example(), nil, opts)
	return update(t, m, tea.WindowSizeMsg{Width: 100, Height: 12})
}

func update(t *testing.T, m Model[string, string], msg tea.Msg) Model[string, string] {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model[string, string])
	if !ok {
		t.Fatalf("expected Model, got %T", next)
	}
	return out
}

func press(t *testing.T, m Model[string, string], keys ...string) Model[string, string] {
	t.Helper()
	for _, k := range keys {
		m = update(t, m, runes(k))
	}
	return m
}

func TestModelWindowSize(t *testing.T) {
	m := newTestModel(t, nil)
	// 12 lines minus header, one-line help footer and indicator line
	if got := m.State().Height(); got != 9 {
		t.Errorf("expected viewport height 9, got %d", got)
	}
}

func TestModelNavigation(t *testing.T) {
	m := newTestModel(t, nil)
	m = press(t, m, "j", "j", "l", "j")
	testutil.AssertSelected(t, m.State(), "b", "c")

	m = press(t, m, "h")
	testutil.AssertSelected(t, m.State(), "b")
	m = press(t, m, "h")
	if m.State().IsOpen(tree.NewPath("b")) {
		t.Error("expected b to be closed")
	}
}

func TestModelViewSelectsFirstRow(t *testing.T) {
	m := newTestModel(t, nil)
	view := m.View()
	if !strings.Contains(view, ">>   Alfa") {
		t.Errorf("expected first row highlighted, got:\n%s", view)
	}
	if !strings.Contains(view, "test") || !strings.Contains(view, "8 nodes") {
		t.Errorf("expected header, got:\n%s", view)
	}
	testutil.AssertSelected(t, m.State(), "a")
}

func TestModelCopy(t *testing.T) {
	cb := &fakeClipboard{}
	m := newTestModel(t, cb)
	m = press(t, m, "j", "j", "l", "j", "y")

	if cb.got != "b/c" {
		t.Errorf("expected b/c on the clipboard, got %q", cb.got)
	}
	msg, isErr := m.Status()
	if isErr || !strings.Contains(msg, "Copied b/c") {
		t.Errorf("unexpected status %q (error=%v)", msg, isErr)
	}

	m = press(t, m, "j")
	if msg, _ := m.Status(); msg != "" {
		t.Errorf("expected navigation to clear status, got %q", msg)
	}
}

func TestModelCopyError(t *testing.T) {
	cb := &fakeClipboard{err: errors.New("no clipboard")}
	m := newTestModel(t, cb)
	m = press(t, m, "j", "y")

	msg, isErr := m.Status()
	if !isErr || !strings.Contains(msg, "no clipboard") {
		t.Errorf("expected clipboard error status, got %q", msg)
	}
}

func TestModelCopyWithoutSelection(t *testing.T) {
	cb := &fakeClipboard{}
	m := newTestModel(t, cb)
	m = press(t, m, "y")
	if cb.got != "" {
		t.Errorf("expected nothing copied, got %q", cb.got)
	}
}

func TestModelForestMsg(t *testing.T) {
	m := newTestModel(t, nil)
	m = press(t, m, "j", "j", "l")

	reloaded := testutil.MustForest(testutil.N("b", testutil.N("x")))
	m = update(t, m, ForestMsg[string, string]{Forest: reloaded, Source: "tree.yaml"})

	if m.Forest() != reloaded {
		t.Error("expected forest to be replaced")
	}
	if msg, _ := m.Status(); msg != "Reloaded 2 nodes from tree.yaml" {
		t.Errorf("unexpected status %q", msg)
	}
	// b stays open and selected across the reload
	testutil.AssertRowIDs(t, m.State().Flatten(m.Forest()), "b", "x")
	testutil.AssertSelected(t, m.State(), "b")

	m = update(t, m, ForestMsg[string, string]{})
	if m.Forest() != reloaded {
		t.Error("nil forest should be ignored")
	}
}

func TestModelErrMsg(t *testing.T) {
	m := newTestModel(t, nil)
	m = update(t, m, ErrMsg{Err: errors.New("boom")})
	msg, isErr := m.Status()
	if !isErr || !strings.Contains(msg, "boom") {
		t.Errorf("expected error status, got %q", msg)
	}
}

func TestModelHelpToggleResizes(t *testing.T) {
	m := newTestModel(t, nil)
	before := m.State().Height()
	m = press(t, m, "?")
	if after := m.State().Height(); after >= before {
		t.Errorf("expected full help to shrink the viewport, %d -> %d", before, after)
	}
	m = press(t, m, "?")
	if m.State().Height() != before {
		t.Errorf("expected height %d after closing help, got %d", before, m.State().Height())
	}
}

func TestModelDetailPane(t *testing.T) {
	m := newTestModel(t, nil)
	m = press(t, m, "j", "j", "d")
	if !m.detailVisible() {
		t.Fatal("expected detail pane to be visible")
	}
	if view := m.View(); !strings.Contains(view, "details") {
		t.Errorf("expected description in view, got:\n%s", view)
	}

	m = update(t, m, tea.WindowSizeMsg{Width: 60, Height: 12})
	if m.detailVisible() {
		t.Error("expected detail pane hidden on a narrow terminal")
	}
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(t, nil)
	_, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestModelInit(t *testing.T) {
	if cmd := newTestModel(t, nil).Init(); cmd != nil {
		t.Error("expected no initial command")
	}
}
