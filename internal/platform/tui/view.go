package tui

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/flappy-quiz/internal/core"
	"github.com/vovakirdan/flappy-quiz/internal/games/flappy"
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	activeTabStyle = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.Color(core.Hex(core.ColorWhite))).
			Background(lipgloss.Color(core.Hex(core.ColorBlack))).
			Padding(0, 1)
	tabStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	boxStyle    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true)
	numberStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true)
	questionText = lipgloss.NewStyle().Bold(true)
	optionStyle  = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("250")).
			Padding(0, 1)
	correctOption = optionStyle.
			Foreground(lipgloss.Color(core.Hex(core.ColorWhite))).
			Background(lipgloss.Color(core.Hex(core.ColorCorrect))).
			BorderForeground(lipgloss.Color(core.Hex(core.ColorCorrect)))
	wrongOption = optionStyle.
			Foreground(lipgloss.Color(core.Hex(core.ColorWhite))).
			Background(lipgloss.Color(core.Hex(core.ColorWrong))).
			BorderForeground(lipgloss.Color(core.Hex(core.ColorWrong)))
	fadedOption = optionStyle.
			Foreground(lipgloss.Color("243")).
			BorderForeground(lipgloss.Color("238"))
)

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.showScores {
		return m.scores.View()
	}

	var body string
	if m.tab == TabNotes {
		body = m.notesView()
	} else {
		body = m.playView()
	}

	var b strings.Builder
	b.WriteString(m.headerView())
	b.WriteString("\n")
	b.WriteString(body)
	b.WriteString("\n")
	b.WriteString(statusStyle.Render(m.status))
	b.WriteString("\n")
	if m.tab == TabNotes {
		b.WriteString(helpStyle.Render(m.help.View(m.keys.NotesHelp())))
	} else {
		b.WriteString(helpStyle.Render(m.help.View(m.keys.PlayHelp())))
	}
	return b.String()
}

// headerView renders the title, the tabs, the score and the player.
func (m Model) headerView() string {
	play, notes := tabStyle.Render("PLAY"), tabStyle.Render("NOTES")
	if m.tab == TabNotes {
		notes = activeTabStyle.Render("NOTES")
	} else {
		play = activeTabStyle.Render("PLAY")
	}

	current, _ := m.game.Score()
	right := fmt.Sprintf("Score %d  Best %d", current, m.best())
	if m.user != nil {
		right = m.user.Name + "  " + right
	}

	left := titleStyle.Render("Flappy Quiz") + "  " + play + notes
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return left
	}
	return left + strings.Repeat(" ", gap) + right
}

// playView renders the playfield and the side panel.
func (m Model) playView() string {
	snap := m.game.Snapshot()

	// Without a side panel the question takes over the playfield.
	if !m.panel && snap.State == flappy.StateQuiz {
		return lipgloss.Place(m.width, m.screen.Height(), lipgloss.Center, lipgloss.Center,
			m.quizView(core.Min(m.width, 48)))
	}

	m.down.ToScreen(m.renderer.Draw(snap), m.screen)
	m.overlay(snap)
	field := renderScreen(m.screen, m.styles)
	if !m.panel {
		return field
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, field, " ", m.panelView(snap))
}

// overlay draws the banner and the running score over the playfield.
func (m Model) overlay(snap flappy.Snapshot) {
	a := m.area
	if a.W == 0 || a.H == 0 {
		return
	}
	switch snap.State {
	case flappy.StateMenu:
		m.centerLabel(" TAP TO JUMP ", a.Y+a.H*2/5, core.ColorBlack, core.ColorWhite)
	case flappy.StatePlaying:
		m.centerLabel(fmt.Sprintf(" %d ", snap.Score), a.Y+a.H/8, core.ColorWhite, core.ColorOutline)
	}
}

func (m Model) centerLabel(text string, y int, fg, bg color.RGBA) {
	w := len([]rune(text))
	x := m.area.X + (m.area.W-w)/2
	for i, r := range text {
		m.screen.Set(x+i, y, core.Cell{Rune: r, FG: fg, BG: bg})
	}
}

// panelView renders the score boxes and the state-dependent prompt.
func (m Model) panelView(snap flappy.Snapshot) string {
	inner := sidePanelWidth - 4
	current, _ := m.game.Score()

	score := boxStyle.Width(inner/2 - 1).Render(
		labelStyle.Render("SCORE") + "\n" + numberStyle.Render(fmt.Sprint(current)))
	best := boxStyle.Width(inner/2 - 1).Render(
		labelStyle.Render("BEST") + "\n" + numberStyle.Render(fmt.Sprint(m.best())))
	scores := lipgloss.JoinHorizontal(lipgloss.Top, score, best)

	deck := "No notes loaded"
	if n := len(m.game.Questions()); n > 0 {
		deck = fmt.Sprintf("%d questions loaded", n)
	}
	if m.opts.Audio.Enabled() {
		deck += "  ♪ sound on"
	}

	var prompt string
	switch snap.State {
	case flappy.StateMenu:
		prompt = "Press space or click the\nplayfield to flap."
	case flappy.StatePlaying:
		prompt = "Don't crash!\nA crash costs you a question."
	case flappy.StateQuiz:
		prompt = m.quizView(sidePanelWidth)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		scores,
		statusStyle.Render(deck),
		"",
		prompt,
	)
}

// quizView renders the open question with answer feedback, or the prompt to
// load notes when there is none.
func (m Model) quizView(width int) string {
	inner := width - 4
	if m.game.NeedsContent() {
		return boxStyle.Width(inner).Render(
			questionText.Render("No Notes Loaded!") + "\n\n" +
				"Press n to upload notes\nor ctrl+t for trivia.")
	}
	s := m.game.Session()
	if s == nil {
		return ""
	}

	q := s.Question()
	selected, hasSelected := s.Selected()
	feedback := s.ShowingFeedback()

	parts := []string{questionText.Width(inner).Render(q.Text), ""}
	for i, opt := range q.Options {
		label := fmt.Sprintf("%d. %s", i+1, opt)
		style := optionStyle
		if feedback {
			switch {
			case q.IsCorrect(i):
				style, label = correctOption, label+" ✓"
			case hasSelected && i == selected:
				style, label = wrongOption, label+" ✗"
			default:
				style = fadedOption
			}
		}
		parts = append(parts, style.Width(inner-2).Render(label))
	}
	return boxStyle.Width(width - 2).Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

// notesView renders the notes editor.
func (m Model) notesView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Upload Notes"))
	b.WriteString("\n")
	b.WriteString(statusStyle.Render("Questions are generated from whatever you paste below."))
	b.WriteString("\n\n")
	b.WriteString(m.notes.View())
	b.WriteString("\n")
	switch {
	case m.pathActive:
		b.WriteString(m.path.View())
	case m.generating:
		b.WriteString(m.spinner.View() + " Generating questions...")
	default:
		b.WriteString(statusStyle.Render(fmt.Sprintf("%d characters", len([]rune(m.notes.Value())))))
	}
	return b.String()
}
