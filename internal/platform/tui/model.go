package tui

import (
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/flappy-quiz/internal/audio"
	"github.com/vovakirdan/flappy-quiz/internal/config"
	"github.com/vovakirdan/flappy-quiz/internal/core"
	"github.com/vovakirdan/flappy-quiz/internal/games/flappy"
	"github.com/vovakirdan/flappy-quiz/internal/quiz"
	"github.com/vovakirdan/flappy-quiz/internal/registry"
	"github.com/vovakirdan/flappy-quiz/internal/render"
	"github.com/vovakirdan/flappy-quiz/internal/storage"
)

// Layout constants
const (
	headerRows      = 1
	footerRows      = 2 // status + help
	sidePanelWidth  = 34
	minPlayfieldCol = 30
)

// Tab selects the main view.
type Tab int

const (
	TabPlay Tab = iota
	TabNotes
)

// Options configures the app model.
type Options struct {
	Config  config.Config
	Runtime core.RuntimeConfig
	Store   *storage.Store
	Audio   *audio.Player
	// Source generates questions from notes; SourceName labels saved sets.
	Source     registry.Source
	SourceName string
	Questions  []quiz.Question
	// User is the signed-in player, nil when anonymous.
	User   *storage.User
	Logger *log.Logger
	// ScreenshotDir defaults to ~/.flappyquiz/screenshots.
	ScreenshotDir string
}

// Model is the Bubble Tea model for the game and its notes editor.
type Model struct {
	opts     Options
	game     *flappy.Game
	renderer *render.Renderer
	down     *render.Downsampler
	screen   *core.Screen
	styles   styleCache
	area     core.Rect // playfield cells within screen
	input    core.InputFrame
	keys     KeyMap
	help     help.Model

	notes      textarea.Model
	path       textinput.Model
	pathActive bool
	spinner    spinner.Model
	generating bool

	scores     ScoreboardModel
	showScores bool

	user     *storage.User
	tab      Tab
	status   string
	width    int
	height   int
	panel    bool
	quitting bool
}

// NewModel creates the app model. The game starts in the menu.
func NewModel(opts Options) Model {
	if opts.Runtime.TickRate <= 0 {
		opts.Runtime.TickRate = 60
	}
	// Use time-based seed if not specified
	if opts.Runtime.Seed == 0 {
		opts.Runtime.Seed = time.Now().UnixNano()
	}
	if opts.Audio == nil {
		opts.Audio = audio.NewPlayer(config.AudioConfig{})
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	game := flappy.New(flappy.TuningFromConfig(opts.Config), quiz.Delays{
		Correct:   opts.Config.Quiz.CorrectDelay,
		Incorrect: opts.Config.Quiz.IncorrectDelay,
	}, opts.Questions)
	game.Reset(opts.Runtime)

	ta := textarea.New()
	ta.Placeholder = "Paste your lecture notes, summaries or textbook excerpts here..."
	ta.ShowLineNumbers = false
	ta.CharLimit = opts.Config.Generator.MaxNoteChars

	ti := textinput.New()
	ti.Prompt = "File: "
	ti.Placeholder = "notes.md, notes.txt or notes.json"

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	h := help.New()
	h.ShowAll = false

	var user *storage.User
	if opts.User != nil {
		u := *opts.User
		user = &u
	}

	m := Model{
		opts:     opts,
		game:     game,
		renderer: render.New(render.Options{Seed: opts.Runtime.Seed}),
		down:     &render.Downsampler{},
		screen:   core.NewScreen(0, 0),
		styles:   make(styleCache),
		input:    core.NewInputFrame(),
		keys:     DefaultKeyMap(),
		help:     h,
		notes:    ta,
		path:     ti,
		spinner:  sp,
		user:     user,
	}
	m.layout(opts.Runtime.ScreenW, opts.Runtime.ScreenH)
	if len(opts.Questions) == 0 {
		m.status = "No notes loaded. Press n to add notes or ctrl+t for trivia."
	}
	return m
}

// Game returns the running game.
func (m Model) Game() *flappy.Game {
	return m.game
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.opts.Runtime.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.showScores {
			return m.updateScoreboard(msg)
		}
		if m.tab == TabNotes {
			return m.handleNotesKey(msg)
		}
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()

	case QuizTimerMsg:
		m.handleEvents(m.game.Resolve(msg.Token))
		return m, nil

	case generatedMsg:
		return m.handleGenerated(msg)

	case notesLoadedMsg:
		return m.handleNotesLoaded(msg)

	case spinner.TickMsg:
		if !m.generating {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if m.tab == TabNotes && !m.pathActive {
		var cmd tea.Cmd
		m.notes, cmd = m.notes.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKey processes keyboard input on the play tab.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, m.keys.Notes):
		return m.openNotes()
	case key.Matches(msg, m.keys.Scores):
		if m.game.State() == flappy.StateMenu {
			m.scores = NewScoreboardModel(m.opts.Store, m.game.ID(), m.width, m.height)
			m.showScores = true
		}
		return m, nil
	case key.Matches(msg, m.keys.Trivia):
		return m.startGeneration(triviaNotes, "Random trivia")
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	if a := m.keys.Action(msg); a != core.ActionNone && a != core.ActionBack {
		m.input.Set(a)
	}
	return m, nil
}

// handleMouse maps a press on the playfield to a flap.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.tab != TabPlay || m.showScores {
		return m, nil
	}
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	t := m.game.Tuning()
	if _, _, ok := render.CellToPlayfield(m.area, msg.X, msg.Y-headerRows, int(t.Width), int(t.Height)); ok {
		m.input.Set(core.ActionJump)
	}
	return m, nil
}

func (m Model) updateScoreboard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	next, cmd := m.scores.Update(msg)
	if sb, ok := next.(ScoreboardModel); ok {
		m.scores = sb
	}
	if m.scores.IsQuitting() {
		return m.quit()
	}
	if m.scores.IsGoingBack() {
		m.showScores = false
		return m, nil
	}
	return m, cmd
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.layout(msg.Width, msg.Height)
	if m.showScores {
		next, _ := m.scores.Update(msg)
		if sb, ok := next.(ScoreboardModel); ok {
			m.scores = sb
		}
	}
	return m, nil
}

// layout sizes the screen buffer, the side panel and the notes editor.
func (m *Model) layout(width, height int) {
	m.width, m.height = width, height
	m.opts.Runtime.ScreenW, m.opts.Runtime.ScreenH = width, height

	rows := core.Max(0, height-headerRows-footerRows)
	cols := width
	m.panel = width-sidePanelWidth-1 >= minPlayfieldCol
	if m.panel {
		cols = width - sidePanelWidth - 1
	}
	m.screen.Resize(core.Max(0, cols), rows)

	t := m.game.Tuning()
	m.area = render.PlayfieldRect(int(t.Width), int(t.Height), m.screen.Width(), m.screen.Height())

	m.notes.SetWidth(core.Max(10, width-4))
	m.notes.SetHeight(core.Max(3, rows-6))
	m.path.Width = core.Max(10, width-12)
	m.help.Width = width
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.quitting {
		return m, nil
	}
	// The world only advances while it is on screen.
	if m.tab != TabPlay || m.showScores {
		m.input.Clear()
		return m, tickCmd(m.opts.Runtime.TickRate)
	}

	res := m.game.Step(m.input)
	m.input.Clear()
	m.handleEvents(res.Events)

	cmds := []tea.Cmd{tickCmd(m.opts.Runtime.TickRate)}
	if res.Pending != nil {
		cmds = append(cmds, quizTimerCmd(*res.Pending))
	}
	return m, tea.Batch(cmds...)
}

// handleEvents plays cues, persists finished runs and updates the status line.
func (m *Model) handleEvents(events []flappy.Event) {
	for _, ev := range events {
		if c, ok := cueFor(ev.Kind); ok {
			m.opts.Audio.Play(c)
		}

		switch ev.Kind {
		case flappy.EventRunStart:
			m.status = ""
		case flappy.EventCrash:
			m.opts.Logger.Debug("run finished", "score", ev.Score)
			m.saveRun(ev.Score)
			if m.game.NeedsContent() {
				m.status = "Crashed! Load some notes to earn another flight."
			} else {
				m.status = "Crashed! Answer correctly to fly again."
			}
		case flappy.EventCorrect:
			m.status = "Correct! Press space to fly."
		case flappy.EventIncorrect:
			m.status = "Wrong answer. Try this one."
		}
	}
}

// saveRun records a finished run. Empty runs are not recorded.
func (m *Model) saveRun(score int) {
	if m.opts.Store == nil || score <= 0 {
		return
	}
	player := ""
	if m.user != nil {
		player = m.user.Name
	}
	if _, err := m.opts.Store.SaveScore(m.game.ID(), player, score); err != nil {
		m.opts.Logger.Warn("could not save score", "error", err)
	}
	if m.user != nil {
		u, err := m.opts.Store.UpdateUserHighScore(m.user.ID, score)
		if err != nil {
			m.opts.Logger.Warn("could not update high score", "user", m.user.Name, "error", err)
			return
		}
		m.user = &u
	}
}

func cueFor(k flappy.EventKind) (audio.Cue, bool) {
	switch k {
	case flappy.EventFlap:
		return audio.CueFlap, true
	case flappy.EventScore:
		return audio.CueScore, true
	case flappy.EventCrash:
		return audio.CueCrash, true
	case flappy.EventCorrect:
		return audio.CueCorrect, true
	case flappy.EventIncorrect:
		return audio.CueWrong, true
	default:
		return 0, false
	}
}

// best returns the best score to display, including the player's record.
func (m Model) best() int {
	_, best := m.game.Score()
	if m.user != nil && m.user.HighScore > best {
		best = m.user.HighScore
	}
	return best
}

// quit stops the tick chain and tears down any open question.
func (m Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.game.Reset(core.RuntimeConfig{})
	return m, tea.Quit
}

// saveScreenshot writes the current frame, with labels, as a PNG.
func (m *Model) saveScreenshot() {
	dir := m.opts.ScreenshotDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			m.status = "Screenshot failed: no home directory"
			return
		}
		dir = filepath.Join(home, ".flappyquiz", "screenshots")
	}
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.png", m.game.ID(), timestamp))

	img := render.New(render.Options{Seed: m.opts.Runtime.Seed, Labels: true}).Draw(m.game.Snapshot())
	f, err := os.Create(path)
	if err != nil {
		m.status = "Screenshot failed: " + err.Error()
		return
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		m.status = "Screenshot failed: " + err.Error()
		return
	}
	m.status = "Saved " + path
}

// Run starts the Bubble Tea program with the given options.
func Run(opts Options) error {
	p := tea.NewProgram(
		NewModel(opts),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := p.Run()
	return err
}
