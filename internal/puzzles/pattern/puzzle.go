// Package pattern implements the interference puzzle: every cell cycles
// through a set of glyphs at its own rate, and the player locks each one
// while it shows its target glyph.
package pattern

import (
	"strings"
	"time"

	"github.com/vovakirdan/tui-breach/internal/core"
	"github.com/vovakirdan/tui-breach/internal/engine"
	"github.com/vovakirdan/tui-breach/internal/puzzles/kit"
	"github.com/vovakirdan/tui-breach/internal/registry"
)

// MaxMisses is the number of mistimed locks before the signal is lost.
const MaxMisses = 3

func init() {
	registry.Register(registry.Info{
		ID:     "pattern",
		Title:  "Signal Lock",
		Skill:  core.SkillPattern,
		Reward: "carrier-tap",
		Blurb:  "Lock each channel while it shows its target glyph.",
	}, func(env *kit.Env, spec kit.Spec) engine.Scene {
		return New(env, spec)
	})
}

// Cell is one cycling channel.
type Cell struct {
	Target int           // Index into the glyph set
	Offset int           // Glyph shown at time zero
	Period time.Duration // Time each glyph stays up
	Locked bool
}

// GlyphAt returns the glyph index the cell shows after elapsed.
// Locked cells always show their target.
func (c Cell) GlyphAt(elapsed time.Duration, glyphs int) int {
	if c.Locked {
		return c.Target
	}
	step := int(elapsed / c.Period)
	return (c.Offset + step) % glyphs
}

// Puzzle is the pattern scene.
type Puzzle struct {
	kit.Base

	glyphs []rune
	cells  []Cell
	cursor int
	misses int
}

// New generates cells with random targets, phases and rates.
func New(env *kit.Env, spec kit.Spec) *Puzzle {
	cfg := env.Settings.Puzzles.Pattern
	glyphs := []rune(cfg.Glyphs)

	cells := make([]Cell, cfg.Cells)
	for i := range cells {
		cells[i] = Cell{
			Target: env.Rand.Intn(len(glyphs)),
			Offset: env.Rand.Intn(len(glyphs)),
			// 1x, 1.5x or 2x the base cycle
			Period: cfg.Cycle + time.Duration(env.Rand.Intn(3))*cfg.Cycle/2,
		}
	}

	return &Puzzle{
		Base:   kit.NewBase(env, spec, "SIGNAL LOCK", cfg.TimeLimit),
		glyphs: glyphs,
		cells:  cells,
	}
}

// Cells returns a copy of the cells.
func (p *Puzzle) Cells() []Cell {
	return append([]Cell(nil), p.cells...)
}

// Showing returns the glyph index cell i currently shows.
func (p *Puzzle) Showing(i int) int {
	return p.cells[i].GlyphAt(p.Elapsed(), len(p.glyphs))
}

// HandleInput moves between channels and locks the selected one.
func (p *Puzzle) HandleInput(key core.Key, state *core.GameState) {
	if p.HandleCommon(key, state) {
		return
	}

	if d, ok := key.Digit(); ok {
		if d >= 1 && d <= len(p.cells) {
			p.cursor = d - 1
			p.lock(state)
		}
		return
	}

	switch key.Action() {
	case core.ActionLeft:
		p.cursor = core.Wrap(p.cursor-1, len(p.cells))
	case core.ActionRight:
		p.cursor = core.Wrap(p.cursor+1, len(p.cells))
	case core.ActionToggle, core.ActionConfirm:
		p.lock(state)
	}
}

func (p *Puzzle) lock(state *core.GameState) {
	cell := &p.cells[p.cursor]
	if cell.Locked {
		return
	}

	if p.Showing(p.cursor) != cell.Target {
		p.misses++
		if p.misses >= MaxMisses {
			p.Fail(state, "signal lost")
		}
		return
	}

	cell.Locked = true
	for _, c := range p.cells {
		if !c.Locked {
			return
		}
	}
	p.Solve(state)
}

// Update advances the countdown; the cycling itself is derived from
// elapsed time at render and lock time.
func (p *Puzzle) Update(state *core.GameState) {
	p.Begin(state)
}

// Render draws target and live glyph rows.
func (p *Puzzle) Render(dst engine.Canvas, opacity float64) {
	p.RenderChrome(dst, "arrows select  space lock")

	n := len(p.cells)
	x, y := kit.Origin(dst, n*4+8, 6)

	dst.DrawText(x, y, "TARGET", core.ColorGray)
	dst.DrawText(x, y+2, "LIVE", core.ColorGray)

	for i, c := range p.cells {
		cx := x + 8 + i*4
		dst.DrawText(cx+1, y, string(p.glyphs[c.Target]), core.ColorMagenta)

		color := core.ColorWhite
		if c.Locked {
			color = core.ColorBrightGreen
		}
		label := " " + string(p.glyphs[p.Showing(i)]) + " "
		if i == p.cursor && opacity >= 1 {
			label = "[" + string(p.glyphs[p.Showing(i)]) + "]"
			if !c.Locked {
				color = core.ColorBrightYellow
			}
		}
		dst.DrawText(cx, y+2, label, color)
	}

	if p.misses > 0 {
		marks := strings.Repeat("x", p.misses) + strings.Repeat(".", MaxMisses-p.misses)
		dst.DrawText(x, y+4, "misfire "+marks, core.ColorRed)
	}
}
