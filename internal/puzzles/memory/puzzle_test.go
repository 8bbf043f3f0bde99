package memory

import (
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/tui-breach/internal/config"
	"github.com/vovakirdan/tui-breach/internal/core"
	"github.com/vovakirdan/tui-breach/internal/engine"
	"github.com/vovakirdan/tui-breach/internal/puzzles/kit"
)

func newTestPuzzle(t *testing.T, seed int64) (*Puzzle, *core.GameState, *core.ManualClock) {
	t.Helper()

	clock := core.NewManualClock(time.Unix(0, 0))
	env := kit.NewEnv(config.Default(), clock, seed)
	spec := kit.Spec{ID: "memory", Skill: core.SkillMemory, Reward: "replay-token", Mode: kit.ModeMission}
	p := New(env, spec)
	state := core.NewGameState("t", clock.Now())
	p.Update(state)
	return p, state, clock
}

func sorted(s string) string {
	r := []rune(s)
	sort.Slice(r, func(i, j int) bool { return r[i] < r[j] })
	return string(r)
}

func TestShuffleIsDifferentPermutation(t *testing.T) {
	for seed := int64(1); seed <= 50; seed++ {
		p, _, _ := newTestPuzzle(t, seed)

		if p.Current() == p.Original() {
			t.Fatalf("seed %d: shuffled copy equals the original %q", seed, p.Original())
		}
		if sorted(p.Current()) != sorted(p.Original()) {
			t.Fatalf("seed %d: %q is not a permutation of %q", seed, p.Current(), p.Original())
		}
		if n := len([]rune(p.Original())); n != config.Default().Puzzles.Memory.Length {
			t.Fatalf("seed %d: length %d", seed, n)
		}
	}
}

func TestSequenceDistinct(t *testing.T) {
	env := kit.NewEnv(config.Default(), core.NewManualClock(time.Unix(0, 0)), 3)
	seq := Sequence(env, 9)

	seen := make(map[rune]bool)
	for _, r := range seq {
		if seen[r] {
			t.Fatalf("Sequence() repeats %q in %q", r, string(seq))
		}
		seen[r] = true
	}
}

func TestPreviewEndsByTime(t *testing.T) {
	p, state, clock := newTestPuzzle(t, 1)

	if p.Phase() != PhasePreview {
		t.Fatal("puzzle did not start in preview")
	}
	clock.Advance(config.Default().Puzzles.Memory.Preview - time.Millisecond)
	p.Update(state)
	if p.Phase() != PhasePreview {
		t.Fatal("preview ended early")
	}
	clock.Advance(time.Millisecond)
	p.Update(state)
	if p.Phase() != PhaseReorder {
		t.Error("preview did not end after its duration")
	}
}

func TestPreviewSkip(t *testing.T) {
	p, state, _ := newTestPuzzle(t, 1)

	p.HandleInput(core.CodeKey(core.KeyEnter), state)
	if p.Phase() != PhaseReorder {
		t.Error("enter did not skip the preview")
	}
	if p.Outcome() != kit.Pending {
		t.Error("skipping the preview submitted the answer")
	}
}

// solve swaps elements into place the way a player would.
func solve(p *Puzzle, state *core.GameState) {
	cursor := 0
	moveTo := func(target int) {
		for cursor != target {
			p.HandleInput(core.CodeKey(core.KeyRight), state)
			cursor = (cursor + 1) % len(p.current)
		}
	}

	want := []rune(p.Original())
	for i := range want {
		cur := []rune(p.Current())
		if cur[i] == want[i] {
			continue
		}
		j := i + 1
		for cur[j] != want[i] {
			j++
		}
		moveTo(i)
		p.HandleInput(core.RuneKey(' '), state)
		moveTo(j)
		p.HandleInput(core.RuneKey(' '), state)
	}
	p.HandleInput(core.CodeKey(core.KeyEnter), state)
}

func TestPuzzleSolve(t *testing.T) {
	p, state, _ := newTestPuzzle(t, 11)
	p.HandleInput(core.CodeKey(core.KeyEnter), state)

	solve(p, state)

	if p.Current() != p.Original() {
		t.Fatalf("Current() = %q, want %q", p.Current(), p.Original())
	}
	if p.Outcome() != kit.Solved {
		t.Fatalf("Outcome() = %v, want solved", p.Outcome())
	}
	if !state.IsCompleted("memory") || state.Skills[core.SkillMemory] != 1 {
		t.Error("win not recorded")
	}
}

func TestPickSameCellCancels(t *testing.T) {
	p, state, _ := newTestPuzzle(t, 5)
	p.HandleInput(core.CodeKey(core.KeyEnter), state)
	before := p.Current()

	p.HandleInput(core.RuneKey(' '), state)
	p.HandleInput(core.RuneKey(' '), state)

	if p.Current() != before {
		t.Errorf("Current() = %q, want unchanged %q", p.Current(), before)
	}
	if p.picked != -1 {
		t.Errorf("picked = %d, want -1", p.picked)
	}
}

func TestWrongSubmissions(t *testing.T) {
	p, state, _ := newTestPuzzle(t, 5)
	p.HandleInput(core.CodeKey(core.KeyEnter), state)

	for i := 0; i < MaxWrong; i++ {
		if p.Outcome() != kit.Pending {
			t.Fatalf("ended after %d submissions", i)
		}
		p.HandleInput(core.CodeKey(core.KeyEnter), state)
	}

	if p.Outcome() != kit.Failed || p.Reason() != "trace complete" {
		t.Errorf("outcome = %v (%q)", p.Outcome(), p.Reason())
	}
	if state.Metrics.FailedAttempts != 1 {
		t.Errorf("FailedAttempts = %d, want 1", state.Metrics.FailedAttempts)
	}
}

func TestRenderPhases(t *testing.T) {
	p, state, _ := newTestPuzzle(t, 2)

	scr := core.NewScreen(80, 24)
	p.Render(scr, 1)
	if !strings.Contains(scr.String(), "wipe in") {
		t.Error("preview not rendered")
	}

	p.HandleInput(core.CodeKey(core.KeyEnter), state)
	scr = core.NewScreen(80, 24)
	p.Render(scr, 1)
	out := scr.String()
	if !strings.Contains(out, "RESTORE") || strings.Contains(out, "wipe in") {
		t.Error("reorder phase not rendered")
	}

	var _ engine.Scene = p
}
