// Package memory implements the reorder puzzle: memorize a sequence of
// codes, then restore the shuffled copy by swapping pairs.
package memory

import (
	"strings"
	"time"

	"github.com/vovakirdan/tui-breach/internal/core"
	"github.com/vovakirdan/tui-breach/internal/engine"
	"github.com/vovakirdan/tui-breach/internal/puzzles/kit"
	"github.com/vovakirdan/tui-breach/internal/registry"
)

// MaxWrong is the number of wrong submissions before the trace completes.
const MaxWrong = 3

// alphabet holds the symbols sequences are drawn from.
const alphabet = "ABCDEFHJKLMNPRTX"

func init() {
	registry.Register(registry.Info{
		ID:     "memory",
		Title:  "Buffer Replay",
		Skill:  core.SkillMemory,
		Reward: "replay-token",
		Blurb:  "Memorize the buffer, then restore its order.",
	}, func(env *kit.Env, spec kit.Spec) engine.Scene {
		return New(env, spec)
	})
}

// Phase is the stage of the puzzle.
type Phase int

const (
	PhasePreview Phase = iota
	PhaseReorder
)

// Puzzle is the reorder scene.
type Puzzle struct {
	kit.Base

	original []rune
	current  []rune
	phase    Phase
	cursor   int
	picked   int // -1 when nothing is picked
	wrong    int
}

// New generates a sequence and a shuffled copy that differs from it.
func New(env *kit.Env, spec kit.Spec) *Puzzle {
	cfg := env.Settings.Puzzles.Memory
	original := Sequence(env, cfg.Length)

	return &Puzzle{
		Base:     kit.NewBase(env, spec, "BUFFER REPLAY", cfg.TimeLimit),
		original: original,
		current:  Shuffle(env, original),
		picked:   -1,
	}
}

// Sequence returns n distinct symbols.
func Sequence(env *kit.Env, n int) []rune {
	pool := []rune(alphabet)
	env.Rand.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	return append([]rune(nil), pool[:core.Min(n, len(pool))]...)
}

// Shuffle returns a permutation of seq that differs from it whenever seq has
// more than one element.
func Shuffle(env *kit.Env, seq []rune) []rune {
	out := append([]rune(nil), seq...)
	if len(out) < 2 {
		return out
	}
	for equal(out, seq) {
		env.Rand.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	}
	return out
}

func equal(a, b []rune) bool {
	return string(a) == string(b)
}

// Phase returns the current stage.
func (p *Puzzle) Phase() Phase {
	return p.phase
}

// Original returns the sequence to restore.
func (p *Puzzle) Original() string {
	return string(p.original)
}

// Current returns the player's arrangement.
func (p *Puzzle) Current() string {
	return string(p.current)
}

// HandleInput skips the preview, moves the cursor, picks and swaps.
func (p *Puzzle) HandleInput(key core.Key, state *core.GameState) {
	if p.HandleCommon(key, state) {
		return
	}

	if p.phase == PhasePreview {
		if key.Action() == core.ActionConfirm {
			p.phase = PhaseReorder
		}
		return
	}

	switch key.Action() {
	case core.ActionLeft:
		p.cursor = core.Wrap(p.cursor-1, len(p.current))
	case core.ActionRight:
		p.cursor = core.Wrap(p.cursor+1, len(p.current))
	case core.ActionToggle:
		p.pick()
	case core.ActionConfirm:
		p.submit(state)
	}
}

func (p *Puzzle) pick() {
	switch {
	case p.picked < 0:
		p.picked = p.cursor
	case p.picked == p.cursor:
		p.picked = -1
	default:
		p.current[p.picked], p.current[p.cursor] = p.current[p.cursor], p.current[p.picked]
		p.picked = -1
	}
}

func (p *Puzzle) submit(state *core.GameState) {
	if equal(p.current, p.original) {
		p.Solve(state)
		return
	}
	p.wrong++
	if p.wrong >= MaxWrong {
		p.Fail(state, "trace complete")
	}
}

// Update ends the preview once its time is up.
func (p *Puzzle) Update(state *core.GameState) {
	if !p.Begin(state) {
		return
	}
	if p.phase == PhasePreview && p.Elapsed() >= p.Env.Settings.Puzzles.Memory.Preview {
		p.phase = PhaseReorder
	}
}

// Render shows the sequence during the preview and the working copy after.
func (p *Puzzle) Render(dst engine.Canvas, opacity float64) {
	if p.phase == PhasePreview {
		p.RenderChrome(dst, "memorize  enter ready")
	} else {
		p.RenderChrome(dst, "arrows move  space pick/swap  enter submit")
	}

	n := len(p.current)
	x, y := kit.Origin(dst, n*4, 5)

	if p.phase == PhasePreview {
		left := p.Env.Settings.Puzzles.Memory.Preview - p.Elapsed()
		dst.DrawText(x, y, "BUFFER", core.ColorGray)
		p.drawCells(dst, x, y+2, p.original, core.ColorBrightCyan, false)
		dst.DrawText(x, y+4, "wipe in "+left.Round(100*time.Millisecond).String(), core.ColorYellow)
		return
	}

	dst.DrawText(x, y, "RESTORE", core.ColorGray)
	p.drawCells(dst, x, y+2, p.current, core.ColorWhite, opacity >= 1)
	if p.wrong > 0 {
		marks := strings.Repeat("x", p.wrong) + strings.Repeat(".", MaxWrong-p.wrong)
		dst.DrawText(x, y+4, "mismatch "+marks, core.ColorRed)
	}
}

func (p *Puzzle) drawCells(dst engine.Canvas, x, y int, seq []rune, c core.Color, cursor bool) {
	for i, r := range seq {
		color := c
		label := " " + string(r) + " "
		if cursor && i == p.picked {
			color = core.ColorBrightMagenta
		}
		if cursor && i == p.cursor {
			label = "[" + string(r) + "]"
			if i != p.picked {
				color = core.ColorBrightYellow
			}
		}
		dst.DrawText(x+i*4, y, label, color)
	}
}
