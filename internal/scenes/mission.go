package scenes

import (
	"fmt"

	"github.com/vovakirdan/tui-breach/internal/core"
	"github.com/vovakirdan/tui-breach/internal/engine"
	"github.com/vovakirdan/tui-breach/internal/puzzles/kit"
	"github.com/vovakirdan/tui-breach/internal/registry"
)

// Run outcomes reported to the debrief.
const (
	OutcomeBreached = "breached"
	OutcomeDetected = "detected"
)

// Mission is the run hub. It walks the configured puzzle order, starting
// the first one not yet completed, and ends the run when every puzzle is
// done or the alert level maxes out.
type Mission struct {
	handoff
	env   *kit.Env
	order []registry.Info
	last  *kit.Result

	// Snapshot taken in Update.
	done  map[string]bool
	alert float64
	next  int
}

// NewMission creates the hub for the current run.
func NewMission(env *kit.Env) *Mission {
	m := &Mission{env: env, done: make(map[string]bool)}
	for _, id := range env.Settings.Mission.Order {
		if info, ok := registry.Lookup(id); ok {
			m.order = append(m.order, info)
		}
	}
	return m
}

func missionAfter(env *kit.Env, r kit.Result) *Mission {
	m := NewMission(env)
	m.last = &r
	return m
}

// Name implements engine.Named.
func (s *Mission) Name() string { return "mission" }

// HandleInput starts the next puzzle or leaves the run.
func (s *Mission) HandleInput(key core.Key, state *core.GameState) {
	if s.leaving() {
		return
	}

	switch key.Action() {
	case core.ActionConfirm, core.ActionToggle:
		s.launch(state)
	case core.ActionBack:
		s.to(NewMenu(s.env))
	case core.ActionQuit:
		state.Stop()
	}
}

func (s *Mission) launch(state *core.GameState) {
	id := s.pending(state)
	if id == "" {
		return
	}
	env := s.env
	scene, err := registry.Create(id, env, kit.ModeMission, func(r kit.Result) engine.Scene {
		return missionAfter(env, r)
	})
	if err != nil {
		return
	}
	s.to(scene)
}

// pending returns the first puzzle in order that is not completed.
func (s *Mission) pending(state *core.GameState) string {
	for _, info := range s.order {
		if !state.IsCompleted(info.ID) {
			return info.ID
		}
	}
	return ""
}

// Update ends the run on detection or when nothing is left.
func (s *Mission) Update(state *core.GameState) {
	if s.leaving() {
		return
	}

	s.alert = state.Alert
	s.next = -1
	for i, info := range s.order {
		s.done[info.ID] = state.IsCompleted(info.ID)
		if s.next < 0 && !s.done[info.ID] {
			s.next = i
		}
	}

	switch {
	case state.Detected():
		s.to(NewDebrief(s.env, OutcomeDetected))
	case s.next < 0:
		s.to(NewDebrief(s.env, OutcomeBreached))
	}
}

func (s *Mission) completed() int {
	n := 0
	for _, info := range s.order {
		if s.done[info.ID] {
			n++
		}
	}
	return n
}

// Render draws the target list, progress and alert meter.
func (s *Mission) Render(dst engine.Canvas, opacity float64) {
	w, h := drawFrame(dst, "MISSION")
	x := core.Max(w/2-20, 2)
	y := core.Max(h/2-len(s.order)-3, 2)

	for i, info := range s.order {
		mark, color := "[ ]", core.ColorWhite
		switch {
		case s.done[info.ID]:
			mark, color = "[x]", core.ColorGreen
		case i == s.next:
			mark, color = "[>]", core.ColorBrightYellow
			if opacity < 1 {
				color = core.ColorYellow
			}
		}
		dst.DrawText(x, y+i, fmt.Sprintf("%s %-16s %s", mark, info.Title, info.Skill), color)
	}

	row := y + len(s.order) + 1
	total := len(s.order)
	progress := 0.0
	if total > 0 {
		progress = float64(s.completed()) / float64(total)
	}
	dst.DrawText(x, row, fmt.Sprintf("nodes %d/%d", s.completed(), total), core.ColorWhite)
	dst.DrawProgressBar(x+12, row, 28, progress, core.ColorCyan, core.ColorDarkGray)
	dst.DrawText(x, row+1, "alert", core.ColorWhite)
	dst.DrawProgressBar(x+12, row+1, 28, s.alert, alertColor(s.alert), core.ColorDarkGray)

	if s.last != nil {
		msg := fmt.Sprintf("%s: %s", s.last.ID, s.last.Outcome)
		color := core.ColorGreen
		if s.last.Outcome == kit.Failed {
			color = core.ColorRed
			if s.last.Reason != "" {
				msg += " (" + s.last.Reason + ")"
			}
		}
		dst.DrawTextCentered(row+3, msg, color)
	}

	dst.DrawTextCentered(h-2, "enter next node  esc menu", core.ColorGray)
}
