package ui

import (
	"cmp"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/bwtree/pkg/debug"
	"github.com/vanderheijden86/bwtree/pkg/metrics"
	"github.com/vanderheijden86/bwtree/pkg/tree"
)

// Default size before the first WindowSizeMsg arrives.
const (
	defaultWidth  = 80
	defaultHeight = 24
)

// ForestMsg replaces the forest, e.g. after the source files changed. The
// tree state is kept; paths that no longer exist are ignored.
type ForestMsg[ID cmp.Ordered, T any] struct {
	Forest *tree.Forest[ID, T]
	Source string
}

// ErrMsg reports a background failure in the status line.
type ErrMsg struct {
	Err error
}

// Options configure a Model.
type Options[ID cmp.Ordered, T any] struct {
	Title      string
	Theme      Theme
	Tree       TreeOptions
	Keys       KeyMap
	ScrollStep int
	Height     int // Fixed viewport rows; 0 follows the terminal
	Label      LabelFunc[ID, T]

	// Description returns markdown for the detail pane. Nil disables it.
	Description func(row tree.Row[ID, T]) string

	// Clipboard writes the copied path. Defaults to the system clipboard.
	Clipboard func(string) error
}

// Model is the bubbletea model of the tree view. All navigation is delegated
// to the tree.State; the model only lays out the screen.
type Model[ID cmp.Ordered, T any] struct {
	forest   *tree.Forest[ID, T]
	state    *tree.State[ID, T]
	renderer *Renderer[ID, T]
	detail   *detailRenderer
	help     help.Model

	theme       Theme
	keys        KeyMap
	title       string
	scrollStep  int
	maxRows     int
	description func(row tree.Row[ID, T]) string
	copyFn      func(string) error

	width, height int
	showDetail    bool

	statusMsg     string
	statusIsError bool
}

// NewModel creates the tree view. A nil state starts fresh.
func NewModel[ID cmp.Ordered, T any](f *tree.Forest[ID, T], s *tree.State[ID, T], opts Options[ID, T]) Model[ID, T] {
	if f == nil {
		f, _ = tree.NewForest[ID, T]()
	}
	if s == nil {
		s = tree.NewState[ID, T]()
	}
	if len(opts.Keys.Quit.Keys()) == 0 {
		opts.Keys = DefaultKeyMap
	}
	if opts.Clipboard == nil {
		opts.Clipboard = clipboard.WriteAll
	}

	m := Model[ID, T]{
		forest:      f,
		state:       s,
		renderer:    NewRenderer(opts.Theme, opts.Tree, opts.Label),
		detail:      newDetailRenderer(),
		help:        help.New(),
		theme:       opts.Theme,
		keys:        opts.Keys,
		title:       opts.Title,
		scrollStep:  max(opts.ScrollStep, 1),
		maxRows:     max(opts.Height, 0),
		description: opts.Description,
		copyFn:      opts.Clipboard,
		width:       defaultWidth,
		height:      defaultHeight,
	}
	m.resize()
	return m
}

// State returns the tree state, for persisting it on exit.
func (m Model[ID, T]) State() *tree.State[ID, T] { return m.state }

// Forest returns the forest currently shown.
func (m Model[ID, T]) Forest() *tree.Forest[ID, T] { return m.forest }

// Status returns the status line text and whether it reports an error.
func (m Model[ID, T]) Status() (string, bool) { return m.statusMsg, m.statusIsError }

func (m Model[ID, T]) Init() tea.Cmd {
	return nil
}

func (m Model[ID, T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil

	case ForestMsg[ID, T]:
		if msg.Forest == nil {
			return m, nil
		}
		m.forest = msg.Forest
		m.statusMsg = fmt.Sprintf("Reloaded %d nodes", m.forest.Count())
		if msg.Source != "" {
			m.statusMsg += " from " + msg.Source
		}
		m.statusIsError = false
		debug.Log("ui: %s", m.statusMsg)
		return m, nil

	case ErrMsg:
		m.statusMsg = fmt.Sprintf("Reload error: %v", msg.Err)
		m.statusIsError = true
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model[ID, T]) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resize()
		return m, nil
	case key.Matches(msg, m.keys.Detail):
		if m.description != nil {
			m.showDetail = !m.showDetail
			m.resize()
		}
		return m, nil
	case key.Matches(msg, m.keys.Copy):
		m.copySelected()
		return m, nil
	}

	in := m.keys.Decode(msg, m.state.Height(), m.scrollStep)
	if Apply(m.state, m.forest, in) {
		m.statusMsg = ""
		m.statusIsError = false
	}
	return m, nil
}

func (m *Model[ID, T]) copySelected() {
	sel := m.state.Selected()
	if sel == nil {
		return
	}
	if err := m.copyFn(sel.String()); err != nil {
		m.statusMsg = fmt.Sprintf("Clipboard error: %v", err)
		m.statusIsError = true
		return
	}
	m.statusMsg = fmt.Sprintf("Copied %s to clipboard", sel)
	m.statusIsError = false
}

// detailVisible reports whether the detail pane fits next to the tree.
func (m Model[ID, T]) detailVisible() bool {
	return m.showDetail && m.description != nil && m.width >= 2*MinDetailPaneWidth
}

func (m Model[ID, T]) treeWidth() int {
	if m.detailVisible() {
		return m.width * 6 / 10
	}
	return m.width
}

// resize recomputes the viewport height: the screen minus the header, the
// footer and one line reserved for the position indicator.
func (m *Model[ID, T]) resize() {
	m.help.Width = m.width
	footer := lipgloss.Height(m.help.View(m.keys))
	rows := max(m.height-1-footer-1, 1)
	if m.maxRows > 0 {
		rows = min(rows, m.maxRows)
	}
	m.state.SetHeight(rows)
	m.renderer.SetWidth(m.treeWidth())
}

func (m Model[ID, T]) View() string {
	defer metrics.Timer(metrics.UIRender)()

	w := m.state.Render(m.forest)
	body := m.renderer.View(m.forest, w)

	if m.detailVisible() {
		body = lipgloss.JoinHorizontal(lipgloss.Top,
			lipgloss.NewStyle().Width(m.treeWidth()).Render(body),
			m.detailView(w),
		)
	}

	var sb strings.Builder
	sb.WriteString(m.headerView())
	sb.WriteString("\n")
	sb.WriteString(body)
	sb.WriteString("\n")
	sb.WriteString(m.footerView())
	return sb.String()
}

func (m Model[ID, T]) headerView() string {
	title := m.title
	if title == "" {
		title = "bwtree"
	}
	return m.theme.Header.Render(title) + m.theme.Indicator.Render(fmt.Sprintf(" %d nodes", m.forest.Count()))
}

func (m Model[ID, T]) footerView() string {
	if m.statusMsg != "" {
		style := m.theme.Indicator
		if m.statusIsError {
			style = style.Foreground(lipgloss.Color("#FF5555"))
		}
		return style.Render(m.statusMsg)
	}
	return m.help.View(m.keys)
}

func (m Model[ID, T]) detailView(w tree.Window[ID, T]) string {
	width := m.width - m.treeWidth() - 4 // border and padding
	content := "Nothing selected."
	if i := w.SelectedIndex; i >= w.Start && i < w.End {
		row := w.Rows[i-w.Start]
		if md := m.description(row); md != "" {
			content = m.detail.Render(md, width)
		} else {
			content = "No description."
		}
	}
	return m.theme.Detail.Width(width).MaxHeight(m.state.Height() + 2).Render(content)
}
