package ui

import (
	"cmp"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vanderheijden86/bwtree/pkg/tree"
)

// IntentKind is a navigation action decoded from a key press.
type IntentKind int

const (
	IntentNone IntentKind = iota
	IntentUp
	IntentDown
	IntentTop
	IntentBottom
	IntentPageUp
	IntentPageDown
	IntentScrollUp
	IntentScrollDown
	IntentLeft
	IntentRight
	IntentToggle
	IntentParent
	IntentOpenAll
	IntentCloseAll
	IntentDeselect
)

var intentNames = map[IntentKind]string{
	IntentNone:       "none",
	IntentUp:         "up",
	IntentDown:       "down",
	IntentTop:        "top",
	IntentBottom:     "bottom",
	IntentPageUp:     "page-up",
	IntentPageDown:   "page-down",
	IntentScrollUp:   "scroll-up",
	IntentScrollDown: "scroll-down",
	IntentLeft:       "left",
	IntentRight:      "right",
	IntentToggle:     "toggle",
	IntentParent:     "parent",
	IntentOpenAll:    "open-all",
	IntentCloseAll:   "close-all",
	IntentDeselect:   "deselect",
}

func (k IntentKind) String() string {
	if s, ok := intentNames[k]; ok {
		return s
	}
	return "unknown"
}

// Intent is a state change requested by the user. N is the repeat count for
// page and scroll intents.
type Intent struct {
	Kind IntentKind
	N    int
}

// Decode maps a key press to an intent. page is the number of rows a page
// moves, step the number of rows a scroll moves.
func (k KeyMap) Decode(msg tea.KeyMsg, page, step int) Intent {
	page = max(page, 1)
	step = max(step, 1)
	switch {
	case key.Matches(msg, k.Up):
		return Intent{Kind: IntentUp}
	case key.Matches(msg, k.Down):
		return Intent{Kind: IntentDown}
	case key.Matches(msg, k.Top):
		return Intent{Kind: IntentTop}
	case key.Matches(msg, k.Bottom):
		return Intent{Kind: IntentBottom}
	case key.Matches(msg, k.PageUp):
		return Intent{Kind: IntentPageUp, N: page}
	case key.Matches(msg, k.PageDown):
		return Intent{Kind: IntentPageDown, N: page}
	case key.Matches(msg, k.ScrollUp):
		return Intent{Kind: IntentScrollUp, N: step}
	case key.Matches(msg, k.ScrollDown):
		return Intent{Kind: IntentScrollDown, N: step}
	case key.Matches(msg, k.Left):
		return Intent{Kind: IntentLeft}
	case key.Matches(msg, k.Right):
		return Intent{Kind: IntentRight}
	case key.Matches(msg, k.Toggle):
		return Intent{Kind: IntentToggle}
	case key.Matches(msg, k.Parent):
		return Intent{Kind: IntentParent}
	case key.Matches(msg, k.OpenAll):
		return Intent{Kind: IntentOpenAll}
	case key.Matches(msg, k.CloseAll):
		return Intent{Kind: IntentCloseAll}
	case key.Matches(msg, k.Deselect):
		return Intent{Kind: IntentDeselect}
	}
	return Intent{}
}

// Apply performs the intent on s. It reports whether the intent was
// recognised; the state itself decides whether anything changes.
func Apply[ID cmp.Ordered, T any](s *tree.State[ID, T], f *tree.Forest[ID, T], in Intent) bool {
	switch in.Kind {
	case IntentUp:
		s.SelectPrevious(f)
	case IntentDown:
		s.SelectNext(f)
	case IntentTop:
		s.SelectFirst(f)
	case IntentBottom:
		s.SelectLast(f)
	case IntentPageUp:
		for range max(in.N, 1) {
			s.SelectPrevious(f)
		}
	case IntentPageDown:
		for range max(in.N, 1) {
			s.SelectNext(f)
		}
	case IntentScrollUp:
		s.ScrollUp(f, max(in.N, 1))
	case IntentScrollDown:
		s.ScrollDown(f, max(in.N, 1))
	case IntentLeft:
		s.KeyLeft(f)
	case IntentRight:
		s.KeyRight(f)
	case IntentToggle:
		if sel := s.Selected(); sel != nil {
			s.Toggle(f, sel)
		}
	case IntentParent:
		s.SelectParent()
	case IntentOpenAll:
		s.OpenAll(f)
	case IntentCloseAll:
		s.CloseAll(f)
	case IntentDeselect:
		s.Deselect()
	default:
		return false
	}
	return true
}
