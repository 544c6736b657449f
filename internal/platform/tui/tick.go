// Package tui provides the Bubble Tea front end for Flappy Quiz.
// It handles the terminal UI loop, input mapping, and game orchestration.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/flappy-quiz/internal/quiz"
)

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// QuizTimerMsg fires when an answer's feedback delay has elapsed.
type QuizTimerMsg struct {
	Token uint64
}

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// quizTimerCmd schedules the resolution of a selected answer.
func quizTimerCmd(p quiz.Pending) tea.Cmd {
	return tea.Tick(p.Delay, func(time.Time) tea.Msg {
		return QuizTimerMsg{Token: p.Token}
	})
}
