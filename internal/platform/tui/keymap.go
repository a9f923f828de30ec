package tui

import (
	"unicode"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-physlab/internal/core"
)

// KeyMapper translates Bubble Tea key messages to session key codes.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to a key code.
// Returns core.KeyNone for unbound keys and isQuit for Ctrl+C.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (k core.Key, isQuit bool) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return core.KeyNone, true
	case tea.KeyEsc:
		return core.KeyEscape, false
	case tea.KeySpace:
		return core.KeyRune(' '), false
	case tea.KeyRunes:
		if len(msg.Runes) == 1 && !msg.Alt {
			return core.KeyRune(unicode.ToLower(msg.Runes[0])), false
		}
	}
	if n, ok := functionKeys[msg.Type]; ok {
		return core.FunctionKey(n), false
	}
	return core.KeyNone, false
}

var functionKeys = map[tea.KeyType]int{
	tea.KeyF1: 1, tea.KeyF2: 2, tea.KeyF3: 3, tea.KeyF4: 4,
	tea.KeyF5: 5, tea.KeyF6: 6, tea.KeyF7: 7, tea.KeyF8: 8,
	tea.KeyF9: 9, tea.KeyF10: 10, tea.KeyF11: 11, tea.KeyF12: 12,
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionRuns
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionRuns
	}

	return MenuActionNone
}

// SimKeyMap describes the simulation controls for the help footer.
// Input itself goes through KeyMapper so held keys can be latched.
type SimKeyMap struct {
	Fly      key.Binding
	Climb    key.Binding
	Look     key.Binding
	Push     key.Binding
	Select   key.Binding
	Pause    key.Binding
	Shadows  key.Binding
	Mode     key.Binding
	Reset    key.Binding
	Snapshot key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k SimKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Fly, k.Climb, k.Push, k.Select, k.Pause, k.Mode, k.Reset, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k SimKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Fly, k.Climb, k.Look},
		{k.Push, k.Select},
		{k.Pause, k.Shadows, k.Mode},
		{k.Reset, k.Snapshot, k.Quit},
	}
}

// DefaultSimKeyMap returns the bindings of the simulation controls.
func DefaultSimKeyMap() SimKeyMap {
	return SimKeyMap{
		Fly: key.NewBinding(
			key.WithKeys("w", "s", "a", "d"),
			key.WithHelp("wasd", "fly"),
		),
		Climb: key.NewBinding(
			key.WithKeys("q", "z"),
			key.WithHelp("q/z", "up/down"),
		),
		Look: key.NewBinding(
			key.WithHelp("drag", "look"),
		),
		Push: key.NewBinding(
			key.WithKeys("i", "k", "j", "l", "u", "m"),
			key.WithHelp("ijklum", "push"),
		),
		Select: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "select"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
		Shadows: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "shadows"),
		),
		Mode: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "mode"),
		),
		Reset: key.NewBinding(
			key.WithKeys("f10"),
			key.WithHelp("F10", "reset"),
		),
		Snapshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("C-s", "snapshot"),
		),
		Quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "quit"),
		),
	}
}
