package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/flappy-quiz/internal/questiongen"
	"github.com/vovakirdan/flappy-quiz/internal/quiz"
	"github.com/vovakirdan/flappy-quiz/internal/registry"
)

const triviaNotes = questiongen.TriviaNotes

// generatedMsg carries the result of a generation started by startGeneration.
type generatedMsg struct {
	name      string
	questions []quiz.Question
	err       error
}

// notesLoadedMsg carries notes read from a file.
type notesLoadedMsg struct {
	path  string
	notes string
	err   error
}

func generateCmd(src registry.Source, name, notes string, count int) tea.Cmd {
	return func() tea.Msg {
		qs, err := src.Generate(context.Background(), notes, count)
		return generatedMsg{name: name, questions: qs, err: err}
	}
}

func loadNotesCmd(path string) tea.Cmd {
	return func() tea.Msg {
		notes, err := questiongen.ReadNotes(path)
		return notesLoadedMsg{path: path, notes: notes, err: err}
	}
}

// openNotes switches to the notes tab and focuses the editor.
func (m Model) openNotes() (tea.Model, tea.Cmd) {
	m.tab = TabNotes
	m.pathActive = false
	m.path.Blur()
	return m, m.notes.Focus()
}

// closeNotes returns to the play tab.
func (m Model) closeNotes() (tea.Model, tea.Cmd) {
	m.tab = TabPlay
	m.pathActive = false
	m.path.Blur()
	m.notes.Blur()
	return m, nil
}

// handleNotesKey processes keyboard input on the notes tab.
func (m Model) handleNotesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m.quit()
	}

	var cmd tea.Cmd
	if m.pathActive {
		switch msg.Type {
		case tea.KeyEsc:
			m.pathActive = false
			m.path.Blur()
			return m, m.notes.Focus()
		case tea.KeyEnter:
			path := strings.TrimSpace(m.path.Value())
			if path == "" {
				return m, nil
			}
			m.pathActive = false
			m.path.Blur()
			m.status = "Reading " + path + "..."
			return m, tea.Batch(m.notes.Focus(), loadNotesCmd(path))
		}
		m.path, cmd = m.path.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.SwitchTab), key.Matches(msg, m.keys.Back):
		return m.closeNotes()
	case key.Matches(msg, m.keys.Generate):
		notes := m.notes.Value()
		if strings.TrimSpace(notes) == "" {
			m.status = "Paste some notes first, or press ctrl+t for trivia."
			return m, nil
		}
		return m.startGeneration(notes, firstLine(notes))
	case key.Matches(msg, m.keys.Trivia):
		return m.startGeneration(triviaNotes, "Random trivia")
	case key.Matches(msg, m.keys.LoadFile):
		m.pathActive = true
		m.notes.Blur()
		return m, m.path.Focus()
	}

	if m.generating {
		return m, nil
	}
	m.notes, cmd = m.notes.Update(msg)
	return m, cmd
}

// startGeneration runs the question source in the background.
func (m Model) startGeneration(notes, name string) (tea.Model, tea.Cmd) {
	if m.generating {
		return m, nil
	}
	if m.opts.Source == nil {
		m.status = "No question source configured."
		return m, nil
	}
	m.generating = true
	m.status = "Reading your notes and writing questions..."
	return m, tea.Batch(
		m.spinner.Tick,
		generateCmd(m.opts.Source, name, notes, m.opts.Config.Generator.Count),
	)
}

func (m Model) handleGenerated(msg generatedMsg) (tea.Model, tea.Cmd) {
	m.generating = false
	if msg.err != nil {
		m.opts.Logger.Error("question generation failed", "error", msg.err)
		m.status = "Could not process notes. Please try again."
		return m, nil
	}
	qs := quiz.Valid(msg.questions)
	if len(qs) == 0 {
		m.status = "Could not process notes. Please try again."
		return m, nil
	}

	m.game.SetQuestions(qs)
	if m.opts.Store != nil {
		if _, err := m.opts.Store.SaveQuestionSet(msg.name, m.opts.SourceName, qs); err != nil {
			m.opts.Logger.Warn("could not save question set", "error", err)
		}
	}
	m.opts.Logger.Info("questions loaded", "count", len(qs), "source", m.opts.SourceName)
	m.status = fmt.Sprintf("Loaded %d questions. Press space to fly!", len(qs))
	return m.closeNotes()
}

func (m Model) handleNotesLoaded(msg notesLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.status = "Could not read " + msg.path + ": " + msg.err.Error()
		return m, nil
	}
	m.notes.SetValue(msg.notes)
	m.status = fmt.Sprintf("Loaded %s. Press ctrl+g to generate questions.", msg.path)
	return m, nil
}

// firstLine names a question set after the start of its notes.
func firstLine(notes string) string {
	line := strings.TrimSpace(notes)
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = strings.TrimSpace(line[:i])
	}
	if r := []rune(line); len(r) > 40 {
		line = string(r[:40])
	}
	if line == "" {
		return "Notes " + time.Now().Format("Jan 02 15:04")
	}
	return line
}
