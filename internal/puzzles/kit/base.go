package kit

import (
	"fmt"
	"time"

	"github.com/vovakirdan/tui-breach/internal/core"
	"github.com/vovakirdan/tui-breach/internal/engine"
)

// Linger is how long the result banner stays up before the hand-off.
// Any key skips it.
const Linger = 1500 * time.Millisecond

// Base implements the countdown and the win/loss protocol. Puzzles embed it,
// call Begin from HandleInput and Update, and call Solve or Fail once.
type Base struct {
	Env   *Env
	Spec  Spec
	Title string

	baseLimit time.Duration
	limit     time.Duration
	started   bool
	start     time.Time

	outcome Outcome
	reason  string
	endedAt time.Time
	skip    bool
	next    engine.Scene
}

// NewBase creates the shared puzzle state with a base time limit. In a
// mission the limit shrinks with difficulty when the puzzle starts.
func NewBase(env *Env, spec Spec, title string, limit time.Duration) Base {
	return Base{
		Env:       env,
		Spec:      spec,
		Title:     title,
		baseLimit: limit,
		limit:     limit,
	}
}

// Name implements engine.Named.
func (b *Base) Name() string {
	return b.Spec.ID
}

// Begin starts the countdown on first use and resolves the end of the
// puzzle. It returns true while the puzzle accepts moves.
func (b *Base) Begin(state *core.GameState) bool {
	now := b.Env.Clock.Now()
	if !b.started {
		b.started = true
		b.start = now
		if b.Spec.Mode == ModeMission {
			b.limit = b.Env.Difficulty.TimeLimit(b.baseLimit, len(state.Completed))
		}
	}

	if b.next != nil {
		return false
	}
	if b.outcome != Pending {
		if b.skip || now.Sub(b.endedAt) >= Linger {
			b.handOff()
		}
		return false
	}
	if now.Sub(b.start) >= b.limit {
		b.Fail(state, "time expired")
		return false
	}
	return true
}

// HandleCommon processes keys every puzzle shares. It returns true when
// the key was consumed and the puzzle should ignore it.
func (b *Base) HandleCommon(key core.Key, state *core.GameState) bool {
	if key.Code == core.KeyCtrlC {
		state.Stop()
		return true
	}
	if !b.Begin(state) {
		if b.outcome != Pending {
			b.skip = true
		}
		return true
	}
	switch key.Action() {
	case core.ActionBack, core.ActionQuit:
		b.Fail(state, "aborted")
		return true
	}
	return false
}

// Solve records a win. Only the first Solve or Fail counts.
func (b *Base) Solve(state *core.GameState) {
	if b.outcome != Pending {
		return
	}
	b.finish(Solved, "")

	if b.Spec.Mode == ModePractice {
		state.AddSkill(b.Spec.Skill, 1)
		state.Metrics.PuzzlesSolved++
		return
	}
	state.RecordSolved(b.Spec.ID, b.Spec.Skill, b.Spec.Reward)
}

// Fail records a loss. In a mission it raises the alert.
func (b *Base) Fail(state *core.GameState, reason string) {
	if b.outcome != Pending {
		return
	}
	b.finish(Failed, reason)

	if b.Spec.Mode == ModePractice {
		state.RecordFailure(0)
		return
	}
	alert := b.Env.Difficulty.Alert(b.Env.Settings.Mission.AlertPerFailure, len(state.Completed))
	state.RecordFailure(alert)
}

func (b *Base) finish(o Outcome, reason string) {
	b.outcome = o
	b.reason = reason
	b.endedAt = b.Env.Clock.Now()
	if b.Env.Runs != nil {
		b.Env.Runs.PuzzleFinished(b.Spec.Mode, b.result())
	}
}

func (b *Base) result() Result {
	return Result{
		ID:      b.Spec.ID,
		Outcome: b.outcome,
		Reason:  b.reason,
		Elapsed: b.endedAt.Sub(b.start),
	}
}

func (b *Base) handOff() {
	if b.Spec.Then == nil {
		return
	}
	b.next = b.Spec.Then(b.result())
}

// Next implements engine.Scene.
func (b *Base) Next() engine.Scene {
	return b.next
}

// Outcome returns the current outcome.
func (b *Base) Outcome() Outcome {
	return b.outcome
}

// Reason returns why the puzzle failed, if it did.
func (b *Base) Reason() string {
	return b.reason
}

// Limit returns the time limit in effect.
func (b *Base) Limit() time.Duration {
	return b.limit
}

// Elapsed returns the time spent, frozen once the puzzle has ended.
func (b *Base) Elapsed() time.Duration {
	if !b.started {
		return 0
	}
	if b.outcome != Pending {
		return b.endedAt.Sub(b.start)
	}
	return b.Env.Clock.Now().Sub(b.start)
}

// Remaining returns the time left, never negative.
func (b *Base) Remaining() time.Duration {
	if r := b.limit - b.Elapsed(); r > 0 {
		return r
	}
	return 0
}

// RenderChrome draws the frame, countdown bar, help line and, once the
// puzzle has ended, the result banner.
func (b *Base) RenderChrome(dst engine.Canvas, help string) {
	w, h := dst.Size()
	dst.DrawBox(0, 0, w, h, b.Title, core.ColorCyan)

	remaining := b.Remaining()
	frac := 1.0
	if b.limit > 0 {
		frac = float64(remaining) / float64(b.limit)
	}
	barColor := core.ColorGreen
	switch {
	case frac < 0.25:
		barColor = core.ColorRed
	case frac < 0.5:
		barColor = core.ColorYellow
	}

	clock := fmt.Sprintf(" T-%02d:%02d ", int(remaining.Minutes()), int(remaining.Seconds())%60)
	dst.DrawText(w-len(clock)-2, 0, clock, barColor)
	dst.DrawProgressBar(2, h-3, w-4, frac, barColor, core.ColorDarkGray)
	dst.DrawTextCentered(h-2, help+"  esc abort", core.ColorGray)

	switch b.outcome {
	case Solved:
		dst.DrawTextCentered(h-5, "[ ACCESS GRANTED ]", core.ColorBrightGreen)
	case Failed:
		dst.DrawTextCentered(h-5, "[ ACCESS DENIED: "+b.reason+" ]", core.ColorBrightRed)
	}
}

// Origin returns the top-left corner that centers a w x h block inside dst,
// leaving the chrome rows free.
func Origin(dst engine.Canvas, w, h int) (int, int) {
	sw, sh := dst.Size()
	return (sw - w) / 2, core.Max((sh-h)/2-1, 2)
}
