package engine

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vovakirdan/tui-breach/internal/core"
	"github.com/vovakirdan/tui-breach/internal/platform/term"
)

// stubScene records calls and hands off to next after handoffAfter updates.
type stubScene struct {
	name         string
	next         Scene
	handoffAfter int
	quitOnKey    bool

	updates   int
	keys      []core.Key
	opacities []float64
	ready     bool
}

func (s *stubScene) Name() string { return s.name }

func (s *stubScene) HandleInput(key core.Key, state *core.GameState) {
	s.keys = append(s.keys, key)
	if s.quitOnKey {
		state.Stop()
	}
}

func (s *stubScene) Update(*core.GameState) {
	s.updates++
	if s.next != nil && s.updates >= s.handoffAfter {
		s.ready = true
	}
}

func (s *stubScene) Render(dst Canvas, opacity float64) {
	s.opacities = append(s.opacities, opacity)
	dst.DrawText(0, 0, s.name, core.ColorWhite)
}

func (s *stubScene) Next() Scene {
	if s.ready {
		return s.next
	}
	return nil
}

// scriptedInput returns queued keys, one per call, and advances the clock
// by the timeout when empty.
type scriptedInput struct {
	keys  []core.Key
	clock *core.ManualClock
	polls int
}

func (in *scriptedInput) NextKey(timeout time.Duration) (core.Key, bool) {
	in.polls++
	if len(in.keys) > 0 {
		k := in.keys[0]
		in.keys = in.keys[1:]
		return k, true
	}
	if in.clock != nil {
		in.clock.Advance(timeout)
	}
	return core.Key{}, false
}

func newTestController(t *testing.T, initial Scene, keys ...core.Key) (*Controller, *core.ManualClock, *bytes.Buffer) {
	t.Helper()

	clock := core.NewManualClock(time.Unix(1000, 0))
	var out bytes.Buffer
	r := term.NewRenderer(&out, 20, 3, clock)
	r.SetTransitionSteps(5)

	state := core.NewGameState("tester", clock.Now())
	c := New(r, &scriptedInput{keys: keys, clock: clock}, state, initial, Options{
		FPS:                50,
		PollTimeout:        time.Millisecond,
		TransitionDuration: 100 * time.Millisecond,
		Clock:              clock,
	})
	return c, clock, &out
}

func TestControllerTransition(t *testing.T) {
	b := &stubScene{name: "b"}
	a := &stubScene{name: "a", next: b, handoffAfter: 1}
	c, _, _ := newTestController(t, a)

	if !c.Tick() {
		t.Fatal("Tick() returned false on first tick")
	}

	if c.Current() != b {
		t.Fatalf("active scene = %v, want b", sceneName(c.Current()))
	}
	if c.State().Location != "b" {
		t.Errorf("Location = %q, want %q", c.State().Location, "b")
	}
	if c.Transitions() != 1 {
		t.Errorf("Transitions() = %d, want 1", c.Transitions())
	}

	// a: one normal frame at 1, then 5 fade steps.
	if len(a.opacities) != 6 {
		t.Fatalf("a rendered %d times, want 6", len(a.opacities))
	}
	if a.opacities[0] != 1 {
		t.Errorf("a normal frame opacity = %v, want 1", a.opacities[0])
	}
	if len(b.opacities) != 5 {
		t.Fatalf("b rendered %d times, want 5", len(b.opacities))
	}
	for i := 0; i < 5; i++ {
		from, to := a.opacities[i+1], b.opacities[i]
		if sum := from + to; sum < 0.999999 || sum > 1.000001 {
			t.Errorf("step %d: opacities %v + %v = %v, want 1", i, from, to, sum)
		}
		if to <= 0 {
			t.Errorf("step %d: incoming opacity %v, want > 0", i, to)
		}
	}
	if last := b.opacities[4]; last != 1 {
		t.Errorf("final incoming opacity = %v, want 1", last)
	}
}

func TestControllerTransitionHappensOnce(t *testing.T) {
	b := &stubScene{name: "b"}
	a := &stubScene{name: "a", next: b, handoffAfter: 2}
	c, _, _ := newTestController(t, a)

	for i := 0; i < 5; i++ {
		c.Tick()
	}

	if c.Transitions() != 1 {
		t.Errorf("Transitions() = %d, want 1", c.Transitions())
	}
	if a.updates != 2 {
		t.Errorf("a updated %d times, want 2", a.updates)
	}
	if b.updates != 3 {
		t.Errorf("b updated %d times, want 3", b.updates)
	}
}

func TestControllerInputDispatch(t *testing.T) {
	a := &stubScene{name: "a"}
	c, _, _ := newTestController(t, a, core.RuneKey('x'), core.RuneKey('y'))

	for i := 0; i < 4; i++ {
		c.Tick()
	}

	if len(a.keys) != 2 {
		t.Fatalf("got %d keys, want 2", len(a.keys))
	}
	if a.keys[0] != core.RuneKey('x') || a.keys[1] != core.RuneKey('y') {
		t.Errorf("keys = %v, want [x y]", a.keys)
	}
	if a.updates != 4 {
		t.Errorf("updates = %d, want 4 (once per tick)", a.updates)
	}
}

func TestControllerStopsOnQuit(t *testing.T) {
	a := &stubScene{name: "a", quitOnKey: true}
	c, _, _ := newTestController(t, a, core.RuneKey('q'))

	if err := c.Run(context.Background()); err != nil {
		t.Fatalf("Run() = %v", err)
	}
	if c.Ticks() != 1 {
		t.Errorf("Ticks() = %d, want 1", c.Ticks())
	}
	if c.Tick() {
		t.Error("Tick() after quit returned true")
	}
}

func TestControllerStopsOnNilScene(t *testing.T) {
	clock := core.NewManualClock(time.Unix(0, 0))
	r := term.NewRenderer(&bytes.Buffer{}, 10, 2, clock)
	c := New(r, &scriptedInput{}, core.NewGameState("x", clock.Now()), nil, Options{Clock: clock})

	if c.Running() {
		t.Error("Running() with nil scene")
	}
	if err := c.Run(context.Background()); err != nil {
		t.Errorf("Run() = %v", err)
	}
	if c.Ticks() != 0 {
		t.Errorf("Ticks() = %d, want 0", c.Ticks())
	}
}

func TestControllerRunCancelled(t *testing.T) {
	a := &stubScene{name: "a"}
	c, _, _ := newTestController(t, a)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := c.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Run() = %v, want context.Canceled", err)
	}
	if c.Ticks() != 1 {
		t.Errorf("Ticks() = %d, want 1", c.Ticks())
	}
}

func TestControllerFramePacing(t *testing.T) {
	a := &stubScene{name: "a"}
	c, clock, _ := newTestController(t, a)

	for i := 0; i < 10; i++ {
		c.Tick()
	}

	// 50 fps is 20ms per frame; each tick spent 1ms polling.
	slept, n := clock.Slept()
	if n != 10 || slept != 190*time.Millisecond {
		t.Errorf("slept %v in %d calls, want 190ms in 10", slept, n)
	}
	if got := c.State().Metrics.Elapsed; got != 181*time.Millisecond {
		t.Errorf("Elapsed = %v, want 181ms", got)
	}
}

func TestControllerOverrunDoesNotSleep(t *testing.T) {
	slow := &slowScene{}
	c, clock, _ := newTestController(t, slow)
	slow.clock = clock

	c.Tick()

	if _, n := clock.Slept(); n != 0 {
		t.Errorf("slept %d times after overrun, want 0", n)
	}
}

type slowScene struct {
	clock *core.ManualClock
}

func (s *slowScene) HandleInput(core.Key, *core.GameState) {}
func (s *slowScene) Update(*core.GameState)                { s.clock.Advance(50 * time.Millisecond) }
func (s *slowScene) Render(Canvas, float64)                {}
func (s *slowScene) Next() Scene                           { return nil }

func TestFaded(t *testing.T) {
	tests := []struct {
		name    string
		opacity float64
		want    core.Cell
	}{
		{"invisible", 0, core.Cell{Rune: ' ', Color: core.ColorDefault}},
		{"negative", -0.5, core.Cell{Rune: ' ', Color: core.ColorDefault}},
		{"faint", 0.2, core.Cell{Rune: 'x', Color: core.ColorDarkGray}},
		{"half", 0.5, core.Cell{Rune: 'x', Color: core.ColorBrightCyan.Dim()}},
		{"full", 1, core.Cell{Rune: 'x', Color: core.ColorBrightCyan}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scr := core.NewScreen(3, 3)
			dst := Faded(scr, tt.opacity)

			dst.DrawText(0, 0, "x", core.ColorBrightCyan)
			if got := scr.GetCell(0, 0); got != tt.want {
				t.Errorf("cell = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestFadedInvisibleDrawsNothing(t *testing.T) {
	scr := core.NewScreen(10, 5)
	dst := Faded(scr, 0)

	dst.DrawText(0, 0, "hello", core.ColorRed)
	dst.DrawTextCentered(1, "hi", core.ColorRed)
	dst.DrawBox(0, 0, 10, 5, "t", core.ColorRed)
	dst.DrawProgressBar(0, 2, 10, 0.5, core.ColorGreen, core.ColorRed)

	blank := core.NewScreen(10, 5)
	if scr.String() != blank.String() {
		t.Errorf("opacity 0 drew:\n%s", scr.String())
	}
	if w, h := dst.Size(); w != 10 || h != 5 {
		t.Errorf("Size() = %dx%d, want 10x5", w, h)
	}
}

func TestFadedFullIsIdentity(t *testing.T) {
	scr := core.NewScreen(2, 2)
	if Faded(scr, 1) != Canvas(scr) {
		t.Error("Faded(dst, 1) did not return dst")
	}
}
