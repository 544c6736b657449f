package flappy

import (
	"math"
	"math/rand"
	"testing"

	"github.com/vovakirdan/flappy-quiz/internal/core"
	"github.com/vovakirdan/flappy-quiz/internal/quiz"
)

func testQuestions() []quiz.Question {
	return []quiz.Question{
		{ID: "q1", Text: "One?", Options: []string{"a", "b", "c", "d"}, CorrectIndex: 0},
		{ID: "q2", Text: "Two?", Options: []string{"a", "b", "c", "d"}, CorrectIndex: 1},
		{ID: "q3", Text: "Three?", Options: []string{"a", "b", "c", "d"}, CorrectIndex: 2},
	}
}

func jump() core.InputFrame {
	in := core.NewInputFrame()
	in.Set(core.ActionJump)
	return in
}

func answer(i int) core.InputFrame {
	in := core.NewInputFrame()
	in.Set(core.AnswerAction(i))
	return in
}

// crashGame starts a run and lets the bird fall to the ground.
func crashGame(t *testing.T, g *Game) []Event {
	t.Helper()
	var events []Event
	g.Step(jump())
	for i := 0; i < 600 && g.State() == StatePlaying; i++ {
		events = append(events, g.Step(core.NewInputFrame()).Events...)
	}
	if g.State() != StateQuiz {
		t.Fatalf("expected Quiz after falling, got %v", g.State())
	}
	return events
}

func hasEvent(events []Event, kind EventKind) bool {
	for _, e := range events {
		if e.Kind == kind {
			return true
		}
	}
	return false
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestBirdFallsByGravity(t *testing.T) {
	tn := DefaultTuning()
	b := Bird{Y: 100, Velocity: 0}

	b.fall(tn)
	if !approx(b.Velocity, 0.4) || !approx(b.Y, 100.4) {
		t.Errorf("after one frame: y=%v v=%v, want 100.4/0.4", b.Y, b.Velocity)
	}
	b.fall(tn)
	if !approx(b.Velocity, 0.8) {
		t.Errorf("velocity = %v, want 0.8", b.Velocity)
	}
}

func TestBirdRotation(t *testing.T) {
	tn := DefaultTuning()
	b := Bird{Y: 100}

	b.flap(tn)
	b.fall(tn)
	if b.Rotation != tn.RotationUp {
		t.Errorf("rising rotation = %v, want %v", b.Rotation, tn.RotationUp)
	}

	b.Velocity = 1
	for i := 0; i < 200; i++ {
		b.fall(tn)
		if b.Rotation > tn.RotationMax {
			t.Fatalf("rotation %v exceeds max %v", b.Rotation, tn.RotationMax)
		}
	}
	if b.Rotation != tn.RotationMax {
		t.Errorf("rotation = %v, want clamp at %v", b.Rotation, tn.RotationMax)
	}
}

func TestFlapReplacesVelocity(t *testing.T) {
	tn := DefaultTuning()
	b := Bird{Velocity: 9}
	b.flap(tn)
	if b.Velocity != JumpStrength {
		t.Errorf("velocity = %v, want %v", b.Velocity, JumpStrength)
	}
}

func TestPipeHits(t *testing.T) {
	tn := DefaultTuning()
	p := Pipe{X: 140, TopHeight: 90}

	tests := []struct {
		name  string
		birdY float64
		want  bool
	}{
		{"inside gap", 100, false},
		{"clips top segment", 80, true},
		{"clips bottom segment", 175, true},
		{"above playfield", -100, true},
		{"touching top segment", 84, false},
		{"touching bottom segment", 172, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hb := Bird{Y: tt.birdY}.Hitbox(tn)
			if got := p.Hits(hb, tn); got != tt.want {
				t.Errorf("Hits() = %v, want %v (hitbox %+v)", got, tt.want, hb)
			}
		})
	}
}

func TestPipeHitsRequiresHorizontalOverlap(t *testing.T) {
	tn := DefaultTuning()
	hb := Bird{Y: 0}.Hitbox(tn) // x span [149,171]

	far := Pipe{X: 200, TopHeight: 300}
	if far.Hits(hb, tn) {
		t.Error("pipe right of the bird should not hit")
	}
	touching := Pipe{X: 171, TopHeight: 300}
	if touching.Hits(hb, tn) {
		t.Error("touching edges should not hit")
	}
}

func TestSpawnHeightsWithinBand(t *testing.T) {
	tn := DefaultTuning()
	pf := NewPipeField(tn, rand.New(rand.NewSource(7)))

	for i := 0; i < 500; i++ {
		p := pf.Spawn()
		if p.TopHeight < MinPipeHeight || p.TopHeight > tn.MaxPipeHeight() {
			t.Fatalf("top height %v outside [%v, %v]", p.TopHeight, MinPipeHeight, tn.MaxPipeHeight())
		}
		if p.TopHeight != float64(int(p.TopHeight)) {
			t.Fatalf("top height %v is not whole", p.TopHeight)
		}
		if p.X != GameWidth {
			t.Fatalf("spawn x = %v, want %v", p.X, GameWidth)
		}
	}
}

func TestLoopIdleOutsidePlaying(t *testing.T) {
	l := NewLoop(DefaultTuning(), 1, nil)
	before := l.Snapshot(StateMenu)

	for _, st := range []State{StateMenu, StateQuiz, StateGameOver} {
		snap := l.Tick(st)
		if snap.BirdY != before.BirdY || snap.FrameCount != 0 {
			t.Errorf("state %v advanced the world", st)
		}
	}
}

func TestLoopSpawnsEverySeventyFrames(t *testing.T) {
	tn := DefaultTuning()
	l := NewLoop(tn, 1, nil)

	for i := 1; i <= 140; i++ {
		l.world.Bird.Y = 200 // keep clear of the ground
		l.world.Bird.Velocity = 0
		l.Tick(StatePlaying)
		want := i / PipeSpawnRate
		if got := l.world.Pipes.Len(); got != want {
			t.Fatalf("frame %d: %d pipes, want %d", i, got, want)
		}
	}
}

func TestLoopScoresOncePerPipe(t *testing.T) {
	tn := DefaultTuning()
	var totals []int
	l := NewLoop(tn, 1, ListenerFuncs{Score: func(n int) { totals = append(totals, n) }})

	l.world.Pipes.pipes = append(l.world.Pipes.pipes, Pipe{X: 100, TopHeight: 10})
	// Right edge 152 drops below the bird's left edge (143) on the fourth frame.
	for i := 0; i < 10; i++ {
		l.world.Bird.Velocity = 0
		l.world.Bird.Y = 200
		l.Tick(StatePlaying)
	}

	if len(totals) != 1 || totals[0] != 1 {
		t.Fatalf("score events = %v, want [1]", totals)
	}
	if !l.world.Pipes.pipes[0].Passed {
		t.Error("pipe should be marked passed")
	}
}

func TestLoopRemovesOffscreenPipes(t *testing.T) {
	tn := DefaultTuning()
	l := NewLoop(tn, 1, nil)
	l.world.Pipes.pipes = append(l.world.Pipes.pipes, Pipe{X: -50, TopHeight: 100, Passed: true})

	l.world.Bird.Y = 200
	l.Tick(StatePlaying)
	if l.world.Pipes.Len() != 0 {
		t.Errorf("pipe at x=-53 should be removed, have %d", l.world.Pipes.Len())
	}
}

func TestLoopGroundCrashClamps(t *testing.T) {
	tn := DefaultTuning()
	crashes := 0
	l := NewLoop(tn, 1, ListenerFuncs{Crash: func() { crashes++ }})

	l.world.Bird.Y = tn.GroundY() - tn.BirdSize - 0.1
	l.world.Bird.Velocity = 5
	l.Tick(StatePlaying)

	if crashes != 1 {
		t.Errorf("crashes = %d, want 1", crashes)
	}
	if got, want := l.world.Bird.Y, tn.GroundY()-tn.BirdSize; got != want {
		t.Errorf("bird y = %v, want clamp at %v", got, want)
	}
}

func TestLoopResetFromListenerIsDeferred(t *testing.T) {
	tn := DefaultTuning()
	var l *Loop
	l = NewLoop(tn, 1, ListenerFuncs{Crash: func() { l.Reset() }})
	l.world.Bird.Y = tn.GroundY()

	l.Tick(StatePlaying)
	if l.world.Bird.Y != tn.StartY() || l.world.FrameCount != 0 {
		t.Errorf("world not reset after frame: y=%v frame=%d", l.world.Bird.Y, l.world.FrameCount)
	}
}

func TestScoreTracker(t *testing.T) {
	s := NewScoreTracker()
	s.Update(3)
	s.Update(5)
	s.Update(0)
	s.Update(2)

	if s.Current() != 2 {
		t.Errorf("Current() = %d, want 2", s.Current())
	}
	if s.Best() != 5 {
		t.Errorf("Best() = %d, want 5", s.Best())
	}
}

func TestGroundOffset(t *testing.T) {
	tn := DefaultTuning()
	tests := []struct {
		frame int
		want  float64
	}{
		{0, 0},
		{1, 3},
		{5, 15},
		{6, 0},
		{7, 3},
	}
	for _, tt := range tests {
		if got := tn.GroundOffset(tt.frame); got != tt.want {
			t.Errorf("GroundOffset(%d) = %v, want %v", tt.frame, got, tt.want)
		}
	}
}

func TestGameDeterminism(t *testing.T) {
	run := func() (Snapshot, int) {
		g := New(DefaultTuning(), quiz.DefaultDelays(), testQuestions())
		g.Reset(core.RuntimeConfig{Seed: 12345})
		ap := DefaultAutopilot()

		var snap Snapshot
		for i := 0; i < 400; i++ {
			in := core.NewInputFrame()
			if ap.ShouldFlap(g.Snapshot()) {
				in.Set(core.ActionJump)
			}
			snap = g.Step(in).Snapshot
		}
		cur, _ := g.Score()
		return snap, cur
	}

	s1, c1 := run()
	s2, c2 := run()
	if c1 != c2 || s1.BirdY != s2.BirdY || s1.FrameCount != s2.FrameCount || len(s1.Pipes) != len(s2.Pipes) {
		t.Errorf("runs diverged: %+v vs %+v", s1, s2)
	}
}

func TestAutopilotClearsPipes(t *testing.T) {
	g := New(DefaultTuning(), quiz.DefaultDelays(), testQuestions())
	g.Reset(core.RuntimeConfig{Seed: 99})
	ap := DefaultAutopilot()

	for i := 0; i < 400; i++ {
		in := core.NewInputFrame()
		if ap.ShouldFlap(g.Snapshot()) {
			in.Set(core.ActionJump)
		}
		g.Step(in)
	}
	if cur, _ := g.Score(); cur < 1 {
		t.Errorf("autopilot scored %d in 400 frames (state %v)", cur, g.State())
	}
}

func TestMenuJumpStartsRunWithFlap(t *testing.T) {
	g := New(DefaultTuning(), quiz.DefaultDelays(), testQuestions())

	res := g.Step(jump())
	if g.State() != StatePlaying {
		t.Fatalf("state = %v, want Playing", g.State())
	}
	// Flap then one gravity step.
	if got, want := res.Snapshot.Velocity, JumpStrength+Gravity; !approx(got, want) {
		t.Errorf("velocity = %v, want %v", got, want)
	}
	if !hasEvent(res.Events, EventRunStart) || !hasEvent(res.Events, EventFlap) {
		t.Errorf("events = %v, want run_start and flap", res.Events)
	}
}

func TestCrashOpensQuiz(t *testing.T) {
	g := New(DefaultTuning(), quiz.DefaultDelays(), testQuestions())
	events := crashGame(t, g)

	if !hasEvent(events, EventCrash) {
		t.Error("missing crash event")
	}
	s := g.Session()
	if s == nil {
		t.Fatal("no quiz session after crash")
	}
	if s.Question().ID != "q1" {
		t.Errorf("question = %s, want q1", s.Question().ID)
	}
}

func TestQuizFreezesWorld(t *testing.T) {
	g := New(DefaultTuning(), quiz.DefaultDelays(), testQuestions())
	crashGame(t, g)

	before := g.Snapshot()
	for i := 0; i < 30; i++ {
		g.Step(jump())
	}
	after := g.Snapshot()
	if before.BirdY != after.BirdY || before.FrameCount != after.FrameCount {
		t.Error("world advanced during quiz")
	}
	if g.State() != StateQuiz {
		t.Errorf("jump changed state to %v", g.State())
	}
}

func TestCorrectAnswerReturnsToMenu(t *testing.T) {
	g := New(DefaultTuning(), quiz.DefaultDelays(), testQuestions())
	crashGame(t, g)

	res := g.Step(answer(0))
	if res.Pending == nil || !res.Pending.Correct {
		t.Fatalf("pending = %+v, want correct resolution", res.Pending)
	}
	if res.Pending.Delay != quiz.DefaultCorrectDelay {
		t.Errorf("delay = %v, want %v", res.Pending.Delay, quiz.DefaultCorrectDelay)
	}
	if g.State() != StateQuiz {
		t.Fatal("state changed before the delay elapsed")
	}

	events := g.Resolve(res.Pending.Token)
	if g.State() != StateMenu {
		t.Fatalf("state = %v, want Menu", g.State())
	}
	if !hasEvent(events, EventCorrect) {
		t.Error("missing correct event")
	}
	if g.machine.Pool().Index() != 1 {
		t.Errorf("pool index = %d, want 1", g.machine.Pool().Index())
	}
	snap := g.Snapshot()
	if snap.BirdY != DefaultTuning().StartY() || len(snap.Pipes) != 0 || snap.Score != 0 {
		t.Errorf("world not reset on menu: %+v", snap)
	}
	if g.Session() != nil {
		t.Error("session should be closed")
	}
}

// flyThenCrash lets the autopilot fly for up to frames, then lets the bird
// fall into the ground. It returns the snapshot at the crash.
func flyThenCrash(t *testing.T, g *Game, frames int) Snapshot {
	t.Helper()
	g.Reset(core.RuntimeConfig{Seed: 99})
	ap := DefaultAutopilot()
	for i := 0; i < frames && g.State() != StateQuiz; i++ {
		in := core.NewInputFrame()
		if ap.ShouldFlap(g.Snapshot()) {
			in.Set(core.ActionJump)
		}
		g.Step(in)
	}
	for i := 0; i < 600 && g.State() == StatePlaying; i++ {
		g.Step(core.NewInputFrame())
	}
	if g.State() != StateQuiz {
		t.Fatalf("expected Quiz after falling, got %v", g.State())
	}
	return g.Snapshot()
}

func checkMenuReset(t *testing.T, g *Game) {
	t.Helper()
	tn := DefaultTuning()
	snap := g.Snapshot()
	cur, _ := g.Score()

	if snap.State != StateMenu {
		t.Errorf("state = %v, want Menu", snap.State)
	}
	if snap.FrameCount != 0 {
		t.Errorf("frame = %d, want 0", snap.FrameCount)
	}
	if snap.BirdY != tn.StartY() {
		t.Errorf("bird y = %v, want %v", snap.BirdY, tn.StartY())
	}
	if snap.Velocity != 0 {
		t.Errorf("velocity = %v, want 0", snap.Velocity)
	}
	if snap.Rotation != 0 {
		t.Errorf("rotation = %v, want 0", snap.Rotation)
	}
	if len(snap.Pipes) != 0 {
		t.Errorf("pipes = %d, want 0", len(snap.Pipes))
	}
	if snap.Score != 0 || cur != 0 {
		t.Errorf("score = %d, tracker current = %d, want 0", snap.Score, cur)
	}
}

func TestMenuEntryResetsEveryField(t *testing.T) {
	tests := []struct {
		name  string
		enter func(t *testing.T, g *Game)
	}{
		{"correct answer", func(t *testing.T, g *Game) {
			res := g.Step(answer(0))
			if res.Pending == nil {
				t.Fatal("answer not accepted")
			}
			g.Resolve(res.Pending.Token)
		}},
		{"restart", func(_ *testing.T, g *Game) {
			g.Reset(core.RuntimeConfig{})
		}},
		{"new questions", func(_ *testing.T, g *Game) {
			g.SetQuestions(testQuestions()[1:])
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New(DefaultTuning(), quiz.DefaultDelays(), testQuestions())
			crash := flyThenCrash(t, g, 400)
			cur, _ := g.Score()

			if crash.FrameCount == 0 || crash.Velocity == 0 || crash.Rotation == 0 || len(crash.Pipes) == 0 || cur == 0 {
				t.Fatalf("crash state too close to a fresh world: %+v (current %d)", crash, cur)
			}

			tt.enter(t, g)
			checkMenuReset(t, g)
			if _, best := g.Score(); best < cur {
				t.Errorf("best = %d, want at least %d", best, cur)
			}
		})
	}
}

func TestIncorrectAnswerShowsNextQuestion(t *testing.T) {
	g := New(DefaultTuning(), quiz.DefaultDelays(), testQuestions())
	crashGame(t, g)

	res := g.Step(answer(3))
	if res.Pending == nil || res.Pending.Correct {
		t.Fatalf("pending = %+v, want incorrect resolution", res.Pending)
	}
	if res.Pending.Delay != quiz.DefaultIncorrectDelay {
		t.Errorf("delay = %v, want %v", res.Pending.Delay, quiz.DefaultIncorrectDelay)
	}

	events := g.Resolve(res.Pending.Token)
	if !hasEvent(events, EventIncorrect) {
		t.Error("missing incorrect event")
	}
	if g.State() != StateQuiz {
		t.Fatalf("state = %v, want Quiz", g.State())
	}
	s := g.Session()
	if s == nil || s.Question().ID != "q2" {
		t.Fatalf("next question not shown: %+v", s)
	}
	if _, ok := s.Selected(); ok {
		t.Error("selection should be cleared on the next question")
	}
}

func TestSecondSelectionIgnored(t *testing.T) {
	g := New(DefaultTuning(), quiz.DefaultDelays(), testQuestions())
	crashGame(t, g)

	first := g.Step(answer(1))
	second := g.Step(answer(0))
	if first.Pending == nil {
		t.Fatal("first selection not accepted")
	}
	if second.Pending != nil {
		t.Error("second selection during feedback should be ignored")
	}
}

func TestStaleTimerAfterNewQuestions(t *testing.T) {
	g := New(DefaultTuning(), quiz.DefaultDelays(), testQuestions())
	crashGame(t, g)

	res := g.Step(answer(0))
	g.SetQuestions(testQuestions()[1:])
	if g.State() != StateMenu {
		t.Fatalf("state = %v, want Menu", g.State())
	}

	if events := g.Resolve(res.Pending.Token); len(events) != 0 {
		t.Errorf("stale timer produced %v", events)
	}
	if g.machine.Pool().Index() != 0 {
		t.Errorf("pool index = %d, want 0", g.machine.Pool().Index())
	}
}

func TestEmptyPoolNeedsContent(t *testing.T) {
	g := New(DefaultTuning(), quiz.DefaultDelays(), nil)
	crashGame(t, g)

	if !g.NeedsContent() {
		t.Error("NeedsContent() = false, want true")
	}
	if g.Session() != nil {
		t.Error("no session expected without questions")
	}
	if res := g.Step(answer(0)); res.Pending != nil {
		t.Error("answers should be ignored without a question")
	}

	g.SetQuestions(testQuestions())
	if g.State() != StateMenu || g.NeedsContent() {
		t.Errorf("loading questions should return to menu, state %v", g.State())
	}
}

func TestPoolWrapsAfterLastQuestion(t *testing.T) {
	g := New(DefaultTuning(), quiz.DefaultDelays(), testQuestions()[:1])

	for round := 0; round < 3; round++ {
		crashGame(t, g)
		if q := g.Session().Question(); q.ID != "q1" {
			t.Fatalf("round %d: question %s, want q1", round, q.ID)
		}
		res := g.Step(answer(0))
		g.Resolve(res.Pending.Token)
		if g.State() != StateMenu {
			t.Fatalf("round %d: state %v", round, g.State())
		}
	}
}

func TestBestSurvivesNewRun(t *testing.T) {
	g := New(DefaultTuning(), quiz.DefaultDelays(), testQuestions())
	g.score.Update(7)
	g.Step(jump())

	cur, best := g.Score()
	if cur != 0 || best != 7 {
		t.Errorf("Score() = %d/%d, want 0/7", cur, best)
	}
}

func TestMachineCrashIgnoredOutsidePlaying(t *testing.T) {
	tn := DefaultTuning()
	m := NewMachine(NewLoop(tn, 1, nil), NewScoreTracker(), quiz.NewPool(testQuestions()))

	if m.Crash() {
		t.Error("crash in Menu should be ignored")
	}
	m.Jump()
	if !m.Crash() {
		t.Error("crash while playing should transition")
	}
	if m.Crash() {
		t.Error("second crash should be ignored")
	}
	if m.State() != StateQuiz {
		t.Errorf("state = %v, want Quiz", m.State())
	}
}

func TestStateString(t *testing.T) {
	tests := []struct {
		s    State
		want string
	}{
		{StateMenu, "Menu"},
		{StatePlaying, "Playing"},
		{StateGameOver, "GameOver"},
		{StateQuiz, "Quiz"},
		{State(42), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.s, got, tt.want)
		}
	}
}

func TestTuningFromDefaultsMatchesConstants(t *testing.T) {
	tn := DefaultTuning()
	if tn.BirdX() != 143 {
		t.Errorf("BirdX() = %v, want 143", tn.BirdX())
	}
	if tn.GroundY() != 368 {
		t.Errorf("GroundY() = %v, want 368", tn.GroundY())
	}
	if tn.MaxPipeHeight() != 208 {
		t.Errorf("MaxPipeHeight() = %v, want 208", tn.MaxPipeHeight())
	}
}
