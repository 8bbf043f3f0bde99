package scenes

import (
	"fmt"
	"strings"
	"time"

	"github.com/vovakirdan/tui-breach/internal/core"
	"github.com/vovakirdan/tui-breach/internal/engine"
	"github.com/vovakirdan/tui-breach/internal/puzzles/kit"
)

// Status shows the operator profile: skills, inventory and metrics.
// Any key returns to the menu.
type Status struct {
	handoff
	env *kit.Env

	// Snapshot taken in Update so Render never reads GameState.
	player    string
	skills    map[core.Skill]int
	inventory []string
	metrics   core.Metrics
	alert     float64
}

// NewStatus creates the status screen.
func NewStatus(env *kit.Env) *Status {
	return &Status{env: env, skills: make(map[core.Skill]int)}
}

// Name implements engine.Named.
func (s *Status) Name() string { return "status" }

// HandleInput returns to the menu.
func (s *Status) HandleInput(key core.Key, state *core.GameState) {
	if key.Code == core.KeyCtrlC {
		state.Stop()
		return
	}
	s.to(NewMenu(s.env))
}

// Update snapshots the session state.
func (s *Status) Update(state *core.GameState) {
	s.player = state.Player
	for _, k := range core.Skills {
		s.skills[k] = state.Skills[k]
	}
	s.inventory = append(s.inventory[:0], state.Inventory...)
	s.metrics = state.Metrics
	s.alert = state.Alert
}

// Render draws the profile.
func (s *Status) Render(dst engine.Canvas, _ float64) {
	w, h := drawFrame(dst, "OPERATOR STATUS")
	x := core.Max(w/2-18, 2)
	y := core.Max(h/2-7, 2)

	dst.DrawText(x, y, "handle  "+s.player, core.ColorGreen)

	for i, k := range core.Skills {
		dst.DrawText(x, y+2+i, fmt.Sprintf("%-8s %2d", k, s.skills[k]), core.ColorWhite)
		dst.DrawProgressBar(x+12, y+2+i, 20, float64(s.skills[k])/10, core.ColorCyan, core.ColorDarkGray)
	}

	inv := "empty"
	if len(s.inventory) > 0 {
		inv = strings.Join(s.inventory, ", ")
	}
	row := y + 3 + len(core.Skills)
	dst.DrawText(x, row, "kit     "+inv, core.ColorYellow)
	dst.DrawText(x, row+2, fmt.Sprintf("solved  %d   failed %d", s.metrics.PuzzlesSolved, s.metrics.FailedAttempts), core.ColorWhite)
	dst.DrawText(x, row+3, "uptime  "+s.metrics.Elapsed.Round(time.Second).String(), core.ColorWhite)
	dst.DrawText(x, row+4, "alert", core.ColorWhite)
	dst.DrawProgressBar(x+8, row+4, 24, s.alert, alertColor(s.alert), core.ColorDarkGray)

	dst.DrawTextCentered(h-2, "any key to return", core.ColorGray)
}

func alertColor(alert float64) core.Color {
	switch {
	case alert >= 0.75:
		return core.ColorBrightRed
	case alert >= 0.4:
		return core.ColorOrange
	default:
		return core.ColorGreen
	}
}
