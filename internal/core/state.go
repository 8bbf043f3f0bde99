package core

import (
	"sort"
	"time"
)

// Skill identifies one of the skill counters a run accumulates.
type Skill string

const (
	SkillLogic   Skill = "logic"
	SkillMemory  Skill = "memory"
	SkillPattern Skill = "pattern"
	SkillRouting Skill = "routing"
)

// Skills lists every skill kind in display order.
var Skills = []Skill{SkillLogic, SkillMemory, SkillPattern, SkillRouting}

// Metrics aggregates run-wide counters.
type Metrics struct {
	Elapsed        time.Duration
	PuzzlesSolved  int
	FailedAttempts int
}

// GameState is the single mutable record shared by every scene of a session.
// It is created once at startup and passed by pointer into every scene call;
// scenes mutate fields but never replace it.
type GameState struct {
	Running   bool
	Player    string
	StartedAt time.Time
	Location  string

	Skills    map[Skill]int
	Inventory []string
	Completed map[string]bool

	// Alert is the detection level in [0, 1].
	Alert   float64
	Metrics Metrics
}

// NewGameState creates a running session state.
func NewGameState(player string, startedAt time.Time) *GameState {
	return &GameState{
		Running:   true,
		Player:    player,
		StartedAt: startedAt,
		Location:  "intro",
		Skills:    make(map[Skill]int),
		Completed: make(map[string]bool),
	}
}

// Stop clears the run flag; the loop exits after the current tick.
func (s *GameState) Stop() {
	s.Running = false
}

// AddSkill increases a skill counter.
func (s *GameState) AddSkill(k Skill, n int) {
	if s.Skills == nil {
		s.Skills = make(map[Skill]int)
	}
	s.Skills[k] += n
}

// AddItem appends an item to the inventory unless already held.
func (s *GameState) AddItem(item string) {
	if s.HasItem(item) {
		return
	}
	s.Inventory = append(s.Inventory, item)
}

// HasItem reports whether the inventory holds item.
func (s *GameState) HasItem(item string) bool {
	for _, it := range s.Inventory {
		if it == item {
			return true
		}
	}
	return false
}

// MarkCompleted records a completed challenge.
func (s *GameState) MarkCompleted(id string) {
	if s.Completed == nil {
		s.Completed = make(map[string]bool)
	}
	s.Completed[id] = true
}

// IsCompleted reports whether the challenge was completed.
func (s *GameState) IsCompleted(id string) bool {
	return s.Completed[id]
}

// CompletedIDs returns the completed challenge IDs, sorted.
func (s *GameState) CompletedIDs() []string {
	ids := make([]string, 0, len(s.Completed))
	for id, done := range s.Completed {
		if done {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// RaiseAlert adds delta to the detection level, clamped to [0, 1].
func (s *GameState) RaiseAlert(delta float64) {
	s.Alert = ClampF(s.Alert+delta, 0, 1)
}

// Detected reports whether the detection level is maxed out.
func (s *GameState) Detected() bool {
	return s.Alert >= 1
}

// RecordSolved registers a solved puzzle.
func (s *GameState) RecordSolved(id string, skill Skill, reward string) {
	s.Metrics.PuzzlesSolved++
	s.AddSkill(skill, 1)
	s.MarkCompleted(id)
	if reward != "" {
		s.AddItem(reward)
	}
}

// RecordFailure registers a failed attempt and raises the alert.
func (s *GameState) RecordFailure(alert float64) {
	s.Metrics.FailedAttempts++
	s.RaiseAlert(alert)
}

// Attempted reports whether the run touched any puzzle.
func (s *GameState) Attempted() bool {
	return s.Metrics.PuzzlesSolved+s.Metrics.FailedAttempts > 0
}

// ResetRun clears run progress while keeping the session alive.
// Skills and inventory persist across runs within a session.
func (s *GameState) ResetRun() {
	s.Completed = make(map[string]bool)
	s.Alert = 0
}
