package engine

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-breach/internal/core"
)

// Default loop parameters.
const (
	DefaultFPS                = 60
	DefaultPollTimeout        = 10 * time.Millisecond
	DefaultTransitionDuration = 400 * time.Millisecond
)

// Options configures a Controller. Zero values select the defaults.
type Options struct {
	FPS                int
	PollTimeout        time.Duration
	TransitionDuration time.Duration
	Clock              core.Clock
	Logger             *log.Logger
}

// Controller runs the game loop on the calling goroutine.
//
// Each tick reads at most one key, dispatches it, updates and renders the
// active scene, performs a cross-fade if the scene asked for a successor,
// then sleeps the rest of the frame budget. An overrun tick proceeds
// immediately; frames are never skipped or caught up.
type Controller struct {
	display Display
	input   Input
	state   *core.GameState
	current Scene

	clock  core.Clock
	logger *log.Logger
	frame  time.Duration
	poll   time.Duration
	fade   time.Duration

	ticks       int
	transitions int
}

// New creates a controller with initial as the active scene.
func New(display Display, input Input, state *core.GameState, initial Scene, opts Options) *Controller {
	if opts.FPS <= 0 {
		opts.FPS = DefaultFPS
	}
	if opts.PollTimeout <= 0 {
		opts.PollTimeout = DefaultPollTimeout
	}
	if opts.TransitionDuration < 0 {
		opts.TransitionDuration = 0
	}
	if opts.Clock == nil {
		opts.Clock = core.SystemClock{}
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	c := &Controller{
		display: display,
		input:   input,
		state:   state,
		clock:   opts.Clock,
		logger:  opts.Logger,
		frame:   time.Second / time.Duration(opts.FPS),
		poll:    opts.PollTimeout,
		fade:    opts.TransitionDuration,
	}
	c.activate(initial)
	return c
}

// Current returns the active scene, or nil once the loop has lost it.
func (c *Controller) Current() Scene {
	return c.current
}

// State returns the shared session state.
func (c *Controller) State() *core.GameState {
	return c.state
}

// Ticks returns the number of completed ticks.
func (c *Controller) Ticks() int {
	return c.ticks
}

// Transitions returns the number of completed scene hand-offs.
func (c *Controller) Transitions() int {
	return c.transitions
}

// Running reports whether another tick would do work.
func (c *Controller) Running() bool {
	return c.current != nil && c.state.Running
}

// Tick runs one iteration of the loop. It returns false without doing any
// work when the loop has stopped.
func (c *Controller) Tick() bool {
	if !c.Running() {
		return false
	}
	start := c.clock.Now()

	if key, ok := c.input.NextKey(c.poll); ok {
		c.current.HandleInput(key, c.state)
	}
	c.current.Update(c.state)

	c.display.BeginFrame()
	c.current.Render(c.display, 1)
	c.display.EndFrame()

	if next := c.current.Next(); next != nil {
		c.transition(next)
	}

	c.state.Metrics.Elapsed = c.clock.Now().Sub(c.state.StartedAt)
	c.ticks++

	if rest := c.frame - c.clock.Now().Sub(start); rest > 0 {
		c.clock.Sleep(rest)
	}
	return true
}

// Run ticks until the session stops or ctx is cancelled. Cancellation is
// checked between ticks.
func (c *Controller) Run(ctx context.Context) error {
	c.logger.Info("loop started", "scene", sceneName(c.current), "frame", c.frame)

	for c.Tick() {
		if err := ctx.Err(); err != nil {
			c.logger.Info("loop cancelled", "ticks", c.ticks)
			return err
		}
	}

	c.logger.Info("loop stopped",
		"reason", c.stopReason(),
		"ticks", c.ticks,
		"elapsed", c.state.Metrics.Elapsed.Round(time.Millisecond),
	)
	return nil
}

// transition cross-fades from the active scene to next, then makes next
// active. The outgoing scene is drawn first so the incoming one wins any
// shared cells.
func (c *Controller) transition(next Scene) {
	from := c.current
	c.logger.Debug("scene transition", "from", sceneName(from), "to", sceneName(next))

	c.display.Transition(c.fade, func(progress float64) {
		from.Render(Faded(c.display, 1-progress), 1-progress)
		next.Render(Faded(c.display, progress), progress)
	})

	c.transitions++
	c.activate(next)
}

func (c *Controller) activate(s Scene) {
	c.current = s
	if n, ok := s.(Named); ok {
		c.state.Location = n.Name()
	}
}

func (c *Controller) stopReason() string {
	if c.current == nil {
		return "no scene"
	}
	if !c.state.Running {
		return "quit"
	}
	return "running"
}

func sceneName(s Scene) string {
	if s == nil {
		return "<nil>"
	}
	if n, ok := s.(Named); ok {
		return n.Name()
	}
	return fmt.Sprintf("%T", s)
}
