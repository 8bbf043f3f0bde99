package main

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-breach/internal/core"
	"github.com/vovakirdan/tui-breach/internal/puzzles/kit"
	"github.com/vovakirdan/tui-breach/internal/storage"
)

// runStore is the part of the store the game writes to.
type runStore interface {
	SaveRun(r storage.RunRecord) (int64, error)
	SaveAttempt(a storage.Attempt) (int64, error)
}

// runTracker persists mission runs and puzzle attempts as the session
// reports them. Storage errors are logged and never stop the game.
type runTracker struct {
	store  runStore
	log    *log.Logger
	handle string
	clock  core.Clock

	open      bool
	startedAt time.Time
	solved    int
	failed    int
}

func newRunTracker(store runStore, logger *log.Logger, handle string, clock core.Clock) *runTracker {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &runTracker{store: store, log: logger, handle: handle, clock: clock}
}

// RunStarted implements kit.RunObserver. A run still open is the one
// being abandoned; state still holds its progress.
func (t *runTracker) RunStarted(state *core.GameState) {
	t.Finish(state)
	t.open = true
	t.startedAt = t.clock.Now()
	t.solved, t.failed = 0, 0
	t.log.Info("run start", "handle", t.handle)
}

// RunEnded implements kit.RunObserver.
func (t *runTracker) RunEnded(outcome string, state *core.GameState) {
	if !t.open {
		return
	}
	t.save(outcome, state)
}

// PuzzleFinished implements kit.RunObserver. Only mission puzzles count
// towards the open run; practice is saved as an attempt alone.
func (t *runTracker) PuzzleFinished(mode kit.Mode, r kit.Result) {
	if t.open && mode == kit.ModeMission {
		switch r.Outcome {
		case kit.Solved:
			t.solved++
		case kit.Failed:
			t.failed++
		}
	}

	t.log.Info("puzzle finished", "puzzle", r.ID, "mode", mode, "outcome", r.Outcome,
		"reason", r.Reason, "elapsed", r.Elapsed.Round(time.Millisecond))
	if t.store == nil {
		return
	}
	_, err := t.store.SaveAttempt(storage.Attempt{
		PuzzleID:  r.ID,
		Mode:      mode.String(),
		Outcome:   r.Outcome.String(),
		Reason:    r.Reason,
		Elapsed:   r.Elapsed,
		CreatedAt: t.clock.Now(),
	})
	if err != nil {
		t.log.Warn("cannot save attempt", "err", err)
	}
}

// Finish records a run left open when the session ends, if it got
// anywhere.
func (t *runTracker) Finish(state *core.GameState) {
	if !t.open {
		return
	}
	if len(state.CompletedIDs()) == 0 && t.solved == 0 && t.failed == 0 {
		t.open = false
		return
	}
	t.save("aborted", state)
}

func (t *runTracker) record(outcome string, state *core.GameState) storage.RunRecord {
	now := t.clock.Now()
	return storage.RunRecord{
		Handle:    t.handle,
		Outcome:   outcome,
		Solved:    t.solved,
		Failed:    t.failed,
		Alert:     state.Alert,
		Completed: state.CompletedIDs(),
		Duration:  now.Sub(t.startedAt),
		CreatedAt: now,
	}
}

func (t *runTracker) save(outcome string, state *core.GameState) {
	t.open = false
	rec := t.record(outcome, state)
	t.log.Info("run end", "outcome", outcome, "solved", rec.Solved, "failed", rec.Failed,
		"alert", rec.Alert, "duration", rec.Duration.Round(time.Second))
	if t.store == nil {
		return
	}
	if _, err := t.store.SaveRun(rec); err != nil {
		t.log.Warn("cannot save run", "err", err)
	}
}

var _ kit.RunObserver = (*runTracker)(nil)
