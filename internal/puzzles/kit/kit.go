// Package kit holds what every puzzle scene shares: the environment it is
// built with, the countdown, result bookkeeping against GameState and the
// common screen chrome.
package kit

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-breach/internal/config"
	"github.com/vovakirdan/tui-breach/internal/core"
	"github.com/vovakirdan/tui-breach/internal/engine"
)

// Env is the shared environment scenes and puzzles are built with.
type Env struct {
	Clock      core.Clock
	Rand       *rand.Rand
	Settings   config.Settings
	Difficulty *config.DifficultyManager

	// Runs is told about mission runs and finished puzzles. May be nil.
	Runs RunObserver
}

// RunObserver is notified about mission runs and finished puzzles,
// e.g. to persist them. RunStarted sees the state before run progress is
// reset.
type RunObserver interface {
	RunStarted(state *core.GameState)
	RunEnded(outcome string, state *core.GameState)
	PuzzleFinished(mode Mode, r Result)
}

// StartRun notifies the observer and resets run progress.
func (e *Env) StartRun(state *core.GameState) {
	if e.Runs != nil {
		e.Runs.RunStarted(state)
	}
	state.ResetRun()
}

// EndRun notifies the observer that the current run is over.
func (e *Env) EndRun(outcome string, state *core.GameState) {
	if e.Runs != nil {
		e.Runs.RunEnded(outcome, state)
	}
}

// NewEnv creates an environment. A zero seed picks one from the clock.
func NewEnv(settings config.Settings, clock core.Clock, seed int64) *Env {
	if clock == nil {
		clock = core.SystemClock{}
	}
	if seed == 0 {
		seed = clock.Now().UnixNano()
	}
	return &Env{
		Clock:      clock,
		Rand:       rand.New(rand.NewSource(seed)),
		Settings:   settings,
		Difficulty: config.NewDifficultyManager(settings.Difficulty),
	}
}

// Mode says whether a puzzle counts towards the mission.
type Mode int

const (
	ModeMission Mode = iota
	ModePractice
)

func (m Mode) String() string {
	if m == ModePractice {
		return "practice"
	}
	return "mission"
}

// Outcome is how a puzzle ended.
type Outcome int

const (
	Pending Outcome = iota
	Solved
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Solved:
		return "solved"
	case Failed:
		return "failed"
	default:
		return "pending"
	}
}

// Result is handed to the continuation when a puzzle ends.
type Result struct {
	ID      string
	Outcome Outcome
	Reason  string
	Elapsed time.Duration
}

// Then builds the scene that follows a finished puzzle.
type Then func(Result) engine.Scene

// Spec describes a puzzle instance to a factory.
type Spec struct {
	ID     string
	Skill  core.Skill
	Reward string
	Mode   Mode
	Then   Then
}
