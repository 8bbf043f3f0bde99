package scenes

import (
	"fmt"
	"strings"
	"time"

	"github.com/vovakirdan/tui-breach/internal/core"
	"github.com/vovakirdan/tui-breach/internal/engine"
	"github.com/vovakirdan/tui-breach/internal/puzzles/kit"
)

// Debrief closes a mission run with a summary. The run is reported to the
// environment's observer once, on the first update.
type Debrief struct {
	handoff
	env      *kit.Env
	outcome  string
	reported bool

	completed []string
	metrics   core.Metrics
	alert     float64
	inventory []string
}

// NewDebrief creates the summary screen for a finished run.
func NewDebrief(env *kit.Env, outcome string) *Debrief {
	return &Debrief{env: env, outcome: outcome}
}

// Name implements engine.Named.
func (s *Debrief) Name() string { return "debrief" }

// Outcome returns how the run ended.
func (s *Debrief) Outcome() string {
	return s.outcome
}

// HandleInput returns to the menu on confirm or back.
func (s *Debrief) HandleInput(key core.Key, state *core.GameState) {
	switch key.Action() {
	case core.ActionConfirm, core.ActionBack, core.ActionToggle:
		s.to(NewMenu(s.env))
	case core.ActionQuit:
		state.Stop()
	}
}

// Update reports the run and snapshots the summary.
func (s *Debrief) Update(state *core.GameState) {
	if !s.reported {
		s.reported = true
		s.env.EndRun(s.outcome, state)
	}
	s.completed = state.CompletedIDs()
	s.metrics = state.Metrics
	s.alert = state.Alert
	s.inventory = append(s.inventory[:0], state.Inventory...)
}

// Render draws the summary.
func (s *Debrief) Render(dst engine.Canvas, _ float64) {
	w, h := drawFrame(dst, "DEBRIEF")
	y := core.Max(h/2-5, 2)

	headline, color := "[ SYSTEM BREACHED ]", core.ColorBrightGreen
	if s.outcome == OutcomeDetected {
		headline, color = "[ TRACE COMPLETE: DETECTED ]", core.ColorBrightRed
	}
	dst.DrawTextCentered(y, headline, color)

	x := core.Max(w/2-18, 2)
	nodes := "none"
	if len(s.completed) > 0 {
		nodes = strings.Join(s.completed, ", ")
	}
	dst.DrawText(x, y+2, "nodes    "+nodes, core.ColorWhite)
	dst.DrawText(x, y+3, fmt.Sprintf("solved   %d", s.metrics.PuzzlesSolved), core.ColorWhite)
	dst.DrawText(x, y+4, fmt.Sprintf("failed   %d", s.metrics.FailedAttempts), core.ColorWhite)
	dst.DrawText(x, y+5, fmt.Sprintf("alert    %3.0f%%", s.alert*100), alertColor(s.alert))
	dst.DrawText(x, y+6, "time     "+s.metrics.Elapsed.Round(time.Second).String(), core.ColorWhite)
	if len(s.inventory) > 0 {
		dst.DrawText(x, y+7, "kit      "+strings.Join(s.inventory, ", "), core.ColorYellow)
	}

	dst.DrawTextCentered(h-2, "enter to continue", core.ColorGray)
}
