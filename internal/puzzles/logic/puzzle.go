// Package logic implements the gate-graph puzzle: set the switches so the
// circuit output goes high, then submit.
package logic

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-breach/internal/core"
	"github.com/vovakirdan/tui-breach/internal/engine"
	"github.com/vovakirdan/tui-breach/internal/puzzles/kit"
	"github.com/vovakirdan/tui-breach/internal/registry"
)

// MaxWrong is the number of wrong submissions before lockout.
const MaxWrong = 3

func init() {
	registry.Register(registry.Info{
		ID:     "logic",
		Title:  "Gate Bypass",
		Skill:  core.SkillLogic,
		Reward: "bypass-key",
		Blurb:  "Set the switches so the circuit output reads 1.",
	}, func(env *kit.Env, spec kit.Spec) engine.Scene {
		return New(env, spec)
	})
}

// Puzzle is the gate-graph scene.
type Puzzle struct {
	kit.Base

	circuit  Circuit
	switches []bool
	cursor   int
	wrong    int
}

// New generates a circuit from the logic settings.
func New(env *kit.Env, spec kit.Spec) *Puzzle {
	cfg := env.Settings.Puzzles.Logic
	circuit, _ := Generate(env.Rand, cfg.Inputs, cfg.Gates)

	return &Puzzle{
		Base:     kit.NewBase(env, spec, "GATE BYPASS", cfg.TimeLimit),
		circuit:  circuit,
		switches: make([]bool, cfg.Inputs),
	}
}

// Circuit returns the generated circuit.
func (p *Puzzle) Circuit() Circuit {
	return p.circuit
}

// Switches returns a copy of the current switch positions.
func (p *Puzzle) Switches() []bool {
	return append([]bool(nil), p.switches...)
}

// HandleInput toggles switches and submits.
func (p *Puzzle) HandleInput(key core.Key, state *core.GameState) {
	if p.HandleCommon(key, state) {
		return
	}

	if d, ok := key.Digit(); ok {
		if d >= 1 && d <= len(p.switches) {
			p.cursor = d - 1
			p.toggle()
		}
		return
	}

	switch key.Action() {
	case core.ActionLeft:
		p.cursor = core.Wrap(p.cursor-1, len(p.switches))
	case core.ActionRight:
		p.cursor = core.Wrap(p.cursor+1, len(p.switches))
	case core.ActionToggle:
		p.toggle()
	case core.ActionConfirm:
		p.submit(state)
	}
}

func (p *Puzzle) toggle() {
	p.switches[p.cursor] = !p.switches[p.cursor]
}

func (p *Puzzle) submit(state *core.GameState) {
	if p.circuit.Eval(p.switches) {
		p.Solve(state)
		return
	}
	p.wrong++
	if p.wrong >= MaxWrong {
		p.Fail(state, "lockout")
	}
}

// Update advances the countdown.
func (p *Puzzle) Update(state *core.GameState) {
	p.Begin(state)
}

// Render draws the switches and the gate list. The output value is not
// shown; the player has to work it out.
func (p *Puzzle) Render(dst engine.Canvas, opacity float64) {
	p.RenderChrome(dst, "1-9/space toggle  enter submit")

	lines := p.circuit.Describe()
	width := len(p.switches) * 6
	for _, l := range lines {
		width = core.Max(width, len(l))
	}
	x, y := kit.Origin(dst, width, len(lines)+5)

	for i, on := range p.switches {
		label := fmt.Sprintf("S%d:%d", i+1, btoi(on))
		color := core.ColorWhite
		if on {
			color = core.ColorBrightGreen
		}
		if i == p.cursor && opacity >= 1 {
			label = "[" + label + "]"
			color = core.ColorBrightYellow
		} else {
			label = " " + label + " "
		}
		dst.DrawText(x+i*6, y, label, color)
	}

	for i, l := range lines {
		dst.DrawText(x, y+2+i, l, core.ColorCyan)
	}
	dst.DrawText(x, y+3+len(lines), "OUT = "+p.circuit.SignalName(p.circuit.Inputs+len(lines)-1), core.ColorMagenta)

	if p.wrong > 0 {
		marks := strings.Repeat("x", p.wrong) + strings.Repeat(".", MaxWrong-p.wrong)
		dst.DrawText(x, y+4+len(lines), "rejected "+marks, core.ColorRed)
	}
}

func btoi(b bool) int {
	if b {
		return 1
	}
	return 0
}
