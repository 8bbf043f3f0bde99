// Package routing implements the packet routing puzzle: steer a packet
// through a firewall grid to the exit within a move budget.
package routing

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-breach/internal/core"
	"github.com/vovakirdan/tui-breach/internal/engine"
	"github.com/vovakirdan/tui-breach/internal/puzzles/kit"
	"github.com/vovakirdan/tui-breach/internal/registry"
)

// MaxHits is the number of firewall contacts before the packet is traced.
const MaxHits = 3

func init() {
	registry.Register(registry.Info{
		ID:     "routing",
		Title:  "Packet Run",
		Skill:  core.SkillRouting,
		Reward: "route-map",
		Blurb:  "Steer the packet to the exit without touching firewalls.",
	}, func(env *kit.Env, spec kit.Spec) engine.Scene {
		return New(env, spec)
	})
}

// Puzzle is the routing scene.
type Puzzle struct {
	kit.Base

	grid   *Grid
	packet Point
	moves  int
	budget int
	hits   int
	trail  map[Point]bool
}

// New generates a grid from the routing settings.
func New(env *kit.Env, spec kit.Spec) *Puzzle {
	cfg := env.Settings.Puzzles.Routing
	grid := Generate(env.Rand, cfg.Width, cfg.Height, cfg.Firewalls, cfg.MoveBudget)

	return &Puzzle{
		Base:   kit.NewBase(env, spec, "PACKET RUN", cfg.TimeLimit),
		grid:   grid,
		packet: grid.Start,
		budget: cfg.MoveBudget,
		trail:  map[Point]bool{grid.Start: true},
	}
}

// Grid returns the firewall map.
func (p *Puzzle) Grid() *Grid {
	return p.grid
}

// Packet returns the packet position.
func (p *Puzzle) Packet() Point {
	return p.packet
}

// MovesLeft returns the remaining move budget.
func (p *Puzzle) MovesLeft() int {
	return p.budget - p.moves
}

// HandleInput moves the packet.
func (p *Puzzle) HandleInput(key core.Key, state *core.GameState) {
	if p.HandleCommon(key, state) {
		return
	}

	var d Point
	switch key.Action() {
	case core.ActionUp:
		d = Point{0, -1}
	case core.ActionDown:
		d = Point{0, 1}
	case core.ActionLeft:
		d = Point{-1, 0}
	case core.ActionRight:
		d = Point{1, 0}
	default:
		return
	}
	p.move(d, state)
}

func (p *Puzzle) move(d Point, state *core.GameState) {
	next := Point{p.packet.X + d.X, p.packet.Y + d.Y}
	if !p.grid.InBounds(next) {
		return
	}

	p.moves++
	if p.grid.Wall(next) {
		p.hits++
		if p.hits >= MaxHits {
			p.Fail(state, "traced")
			return
		}
	} else {
		p.packet = next
		p.trail[next] = true
		if next == p.grid.Exit {
			p.Solve(state)
			return
		}
	}

	if p.moves >= p.budget {
		p.Fail(state, "out of moves")
	}
}

// Update advances the countdown.
func (p *Puzzle) Update(state *core.GameState) {
	p.Begin(state)
}

// Render draws the grid with two columns per cell.
func (p *Puzzle) Render(dst engine.Canvas, opacity float64) {
	p.RenderChrome(dst, "arrows/wasd move")

	g := p.grid
	x, y := kit.Origin(dst, g.Width*2+2, g.Height+4)

	dst.DrawBox(x, y, g.Width*2+2, g.Height+2, "", core.ColorBlue)
	for gy := 0; gy < g.Height; gy++ {
		var row strings.Builder
		for gx := 0; gx < g.Width; gx++ {
			pt := Point{gx, gy}
			switch {
			case g.Wall(pt):
				row.WriteString("##")
			case p.trail[pt] && opacity >= 1:
				row.WriteString(" .")
			default:
				row.WriteString("  ")
			}
		}
		dst.DrawText(x+1, y+1+gy, row.String(), core.ColorRed)
	}

	dst.DrawText(x+1+g.Exit.X*2, y+1+g.Exit.Y, "<>", core.ColorBrightGreen)
	dst.DrawText(x+1+p.packet.X*2, y+1+p.packet.Y, "@@", core.ColorBrightCyan)

	status := fmt.Sprintf("moves %d/%d  hits %d/%d", p.moves, p.budget, p.hits, MaxHits)
	dst.DrawText(x, y+g.Height+2, status, core.ColorGray)
}
