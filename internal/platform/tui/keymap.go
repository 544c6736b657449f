package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/flappy-quiz/internal/core"
)

// KeyMap defines the key bindings of the game screen and the notes editor.
type KeyMap struct {
	Jump       key.Binding
	Answers    [4]key.Binding
	SwitchTab  key.Binding
	Notes      key.Binding
	Scores     key.Binding
	Trivia     key.Binding
	Generate   key.Binding
	LoadFile   key.Binding
	Screenshot key.Binding
	Back       key.Binding
	Help       key.Binding
	Quit       key.Binding
	ForceQuit  key.Binding
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Jump: key.NewBinding(
			key.WithKeys(" ", "space", "up", "w"),
			key.WithHelp("space", "flap"),
		),
		Answers: [4]key.Binding{
			key.NewBinding(key.WithKeys("1", "a"), key.WithHelp("1-4", "answer")),
			key.NewBinding(key.WithKeys("2", "b")),
			key.NewBinding(key.WithKeys("3", "c")),
			key.NewBinding(key.WithKeys("4", "d")),
		},
		SwitchTab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "play"),
		),
		Notes: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "notes"),
		),
		Scores: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "scores"),
		),
		Trivia: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "trivia"),
		),
		Generate: key.NewBinding(
			key.WithKeys("ctrl+g"),
			key.WithHelp("ctrl+g", "generate"),
		),
		LoadFile: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("ctrl+o", "load file"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// Action translates a key on the game screen to a game action.
// Keys that only affect the UI map to core.ActionNone.
func (k KeyMap) Action(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit
	case key.Matches(msg, k.Back):
		return core.ActionBack
	case key.Matches(msg, k.Jump):
		return core.ActionJump
	}
	for i, b := range k.Answers {
		if key.Matches(msg, b) {
			return core.AnswerAction(i)
		}
	}
	return core.ActionNone
}

// bindingHelp adapts a fixed set of bindings to help.KeyMap.
type bindingHelp struct {
	short []key.Binding
	full  [][]key.Binding
}

func (b bindingHelp) ShortHelp() []key.Binding  { return b.short }
func (b bindingHelp) FullHelp() [][]key.Binding { return b.full }

// PlayHelp returns the bindings shown under the playfield.
func (k KeyMap) PlayHelp() help.KeyMap {
	return bindingHelp{
		short: []key.Binding{k.Jump, k.Answers[0], k.Notes, k.Scores, k.Help, k.Quit},
		full: [][]key.Binding{
			{k.Jump, k.Answers[0]},
			{k.Notes, k.Scores, k.Trivia},
			{k.Screenshot, k.Help, k.Quit},
		},
	}
}

// NotesHelp returns the bindings shown under the notes editor.
func (k KeyMap) NotesHelp() help.KeyMap {
	return bindingHelp{
		short: []key.Binding{k.Generate, k.LoadFile, k.Trivia, k.SwitchTab, k.ForceQuit},
		full: [][]key.Binding{
			{k.Generate, k.LoadFile, k.Trivia},
			{k.SwitchTab, k.Back, k.ForceQuit},
		},
	}
}
