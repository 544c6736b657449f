package main

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/flappy-quiz/internal/config"
	"github.com/vovakirdan/flappy-quiz/internal/core"
	"github.com/vovakirdan/flappy-quiz/internal/games/flappy"
	"github.com/vovakirdan/flappy-quiz/internal/questiongen"
	"github.com/vovakirdan/flappy-quiz/internal/quiz"
	"github.com/vovakirdan/flappy-quiz/internal/render"
)

var (
	flagSimFrames   int
	flagSimRealtime bool
	flagSimPNG      string
	flagSimWrong    bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a headless autopilot game",
	Long: `Play the game without a terminal UI. An autopilot flaps through the
pipes and answers every question, and gameplay events are logged.

By default frames run back to back; --realtime paces them at --fps.

Examples:
  flappyquiz simulate
  flappyquiz simulate --frames 3000 --seed 42 --log-level debug
  flappyquiz simulate --realtime --png last-frame.png`,
	Args:          cobra.NoArgs,
	RunE:          runSimulate,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	simulateCmd.Flags().IntVar(&flagSimFrames, "frames", 600, "Number of frames to simulate")
	simulateCmd.Flags().BoolVar(&flagSimRealtime, "realtime", false, "Pace frames at --fps")
	simulateCmd.Flags().StringVar(&flagSimPNG, "png", "", "Save the last frame as a PNG")
	simulateCmd.Flags().BoolVar(&flagSimWrong, "wrong-first", false, "Answer each question wrong once before getting it right")
}

// SimResult summarizes a headless run.
type SimResult struct {
	Frames  uint64
	Runs    int
	Best    int
	Correct int
	Wrong   int
	Last    flappy.Snapshot
}

// simulation drives a game with the autopilot, resolving quiz timers after
// their delay in frames.
type simulation struct {
	game       *flappy.Game
	pilot      flappy.Autopilot
	tickRate   int
	wrongFirst bool
	logger     *log.Logger

	due      map[uint64]uint64 // token -> frame
	answered map[string]bool   // question IDs answered wrong once
	result   SimResult
	input    core.InputFrame
}

func newSimulation(cfg config.Config, tickRate int, seed int64, logger *log.Logger) *simulation {
	game := flappy.New(flappy.TuningFromConfig(cfg), quiz.Delays{
		Correct:   cfg.Quiz.CorrectDelay,
		Incorrect: cfg.Quiz.IncorrectDelay,
	}, questiongen.FallbackQuestions())
	game.Reset(core.RuntimeConfig{Seed: seed})

	return &simulation{
		game:     game,
		pilot:    flappy.DefaultAutopilot(),
		tickRate: tickRate,
		logger:   logger,
		due:      make(map[uint64]uint64),
		answered: make(map[string]bool),
		input:    core.NewInputFrame(),
	}
}

// frame runs one simulation frame and fires any quiz timers now due.
func (s *simulation) frame(n uint64) {
	s.input.Clear()
	snap := s.game.Snapshot()

	if s.pilot.ShouldFlap(snap) {
		s.input.Set(core.ActionJump)
	}
	if sess := s.game.Session(); sess != nil && !sess.ShowingFeedback() {
		q := sess.Question()
		pick := q.CorrectIndex
		if s.wrongFirst && !s.answered[q.ID] {
			pick = (q.CorrectIndex + 1) % len(q.Options)
			s.answered[q.ID] = true
		}
		s.input.Set(core.AnswerAction(pick))
	}

	res := s.game.Step(s.input)
	s.record(n, res.Events)
	if res.Pending != nil {
		s.due[res.Pending.Token] = n + s.delayFrames(res.Pending.Delay)
	}

	for token, at := range s.due {
		if at <= n {
			delete(s.due, token)
			s.record(n, s.game.Resolve(token))
		}
	}

	s.result.Frames = n
	s.result.Last = res.Snapshot
}

func (s *simulation) delayFrames(d time.Duration) uint64 {
	return uint64(d * time.Duration(s.tickRate) / time.Second)
}

func (s *simulation) record(frame uint64, events []flappy.Event) {
	for _, ev := range events {
		switch ev.Kind {
		case flappy.EventRunStart:
			s.result.Runs++
		case flappy.EventCrash:
			s.result.Best = max(s.result.Best, ev.Score)
		case flappy.EventCorrect:
			s.result.Correct++
		case flappy.EventIncorrect:
			s.result.Wrong++
		}
		if ev.Kind == flappy.EventFlap {
			s.logger.Debug("event", "frame", frame, "kind", ev.Kind, "score", ev.Score)
			continue
		}
		s.logger.Info("event", "frame", frame, "kind", ev.Kind, "score", ev.Score)
	}
}

func runSimulate(_ *cobra.Command, _ []string) error {
	cfg := mustLoadConfig()
	logger, closeLog := newLogger(false)
	defer closeLog()

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	sim := newSimulation(cfg, flagFPS, seed, logger)
	sim.wrongFirst = flagSimWrong

	var sched core.Scheduler = core.Immediate{MaxFrames: uint64(flagSimFrames)}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if flagSimRealtime {
		sched = core.NewFixedStep(flagFPS)
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(flagSimFrames)*time.Second/time.Duration(sim.tickRate)+time.Second)
		defer cancel()
	}

	frames := uint64(flagSimFrames)
	err := sched.Run(ctx, func(n uint64) bool {
		sim.frame(n)
		return n < frames
	})
	if err != nil && ctx.Err() == nil {
		return err
	}

	r := sim.result
	current, best := sim.game.Score()
	fmt.Printf("Frames: %d  Runs: %d  Score: %d  Best: %d  Correct: %d  Wrong: %d  State: %s\n",
		r.Frames, r.Runs, current, max(best, r.Best), r.Correct, r.Wrong, r.Last.State)

	if flagSimPNG != "" {
		img := render.New(render.Options{Seed: seed, Labels: true}).Draw(r.Last)
		if err := writePNG(flagSimPNG, img); err != nil {
			return err
		}
		fmt.Printf("Saved %s\n", flagSimPNG)
	}
	return nil
}

// writePNG encodes img to path, returning the close error if encoding succeeded.
func writePNG(path string, img image.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return png.Encode(f, img)
}
