package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-breach/internal/config"
	"github.com/vovakirdan/tui-breach/internal/core"
	"github.com/vovakirdan/tui-breach/internal/engine"
	"github.com/vovakirdan/tui-breach/internal/platform/term"
	"github.com/vovakirdan/tui-breach/internal/puzzles/kit"
	"github.com/vovakirdan/tui-breach/internal/registry"
	"github.com/vovakirdan/tui-breach/internal/scenes"
	"github.com/vovakirdan/tui-breach/internal/storage"
)

const defaultHandle = "anonymous"

var (
	flagPuzzle string
	flagHandle string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a session",
	Long: `Start a BREACH session: intro, main menu, missions and practice.

Controls:
  Arrows/WASD  - Move, select
  Space        - Toggle, swap, lock
  Enter        - Confirm, submit
  Esc/B        - Back, abort a puzzle
  Q/Ctrl+C     - Quit

Difficulty options (omit to use the config file's difficulty section):
  easy   - Start at the lowest level, progresses to max
  normal - Start at 30%, progresses to max
  hard   - Start at 70%, progresses to max
  fixed  - No progression, stays at the config's initial level

Examples:
  breach play
  breach play --handle zero
  breach play --puzzle logic --seed 7
  breach play --difficulty hard --config ./my-breach.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagPuzzle, "puzzle", "", "Play a single puzzle by ID")
	playCmd.Flags().StringVar(&flagHandle, "handle", "", "Operator handle (prompted when empty)")
}

// resolveSettings loads the config, applies the difficulty preset and the
// fps override, and checks the result against the registered puzzles.
func resolveSettings(path, difficulty string, fps int, fpsSet bool) (config.Settings, error) {
	settings, err := config.Load(path)
	if err != nil {
		return settings, err
	}

	preset, err := config.ParsePreset(difficulty)
	if err != nil {
		return settings, err
	}
	config.ApplyPreset(&settings, preset)

	if fpsSet {
		settings.Loop.FPS = fps
	}

	if err := settings.Validate(); err != nil {
		return settings, err
	}

	for _, id := range settings.Mission.Order {
		if !registry.Exists(id) {
			return settings, fmt.Errorf("config: mission order: unknown puzzle %q: %w", id, config.ErrInvalid)
		}
	}

	return settings, nil
}

// expandHome replaces a leading ~ with the home directory.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

// openLogger opens the session log. The screen belongs to the renderer,
// so logs never go to stdout or stderr while playing.
func openLogger(path string, debug bool) (*log.Logger, io.Closer, error) {
	if path == "" {
		return log.New(io.Discard), io.NopCloser(nil), nil
	}

	path = expandHome(path)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("log: cannot create directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("log: cannot open %s: %w", path, err)
	}

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "breach",
	})
	if debug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger, f, nil
}

// askHandle prompts for the operator handle on a terminal.
func askHandle(input *term.InputSource) string {
	if !input.IsTerminal() {
		return defaultHandle
	}
	line, err := input.ReadLine("operator handle: ", true)
	if err != nil {
		return defaultHandle
	}
	if line = strings.TrimSpace(line); line == "" {
		return defaultHandle
	}
	return line
}

// guardSession installs the interrupt handler, then asks for the handle.
// The prompt runs in cooked mode, where ^C is a real SIGINT.
func guardSession(r *term.Restorer, exit func(code int), ask func() string) (string, func()) {
	stop := term.HandleInterrupts(r, exit)
	return ask(), stop
}

func runPlay(cmd *cobra.Command, args []string) error {
	settings, err := resolveSettings(flagConfig, flagDifficulty, flagFPS, cmd.Flags().Changed("fps"))
	if err != nil {
		return err
	}
	if flagPuzzle != "" && !registry.Exists(flagPuzzle) {
		return fmt.Errorf("unknown puzzle %q (run 'breach list' to see available puzzles)", flagPuzzle)
	}

	logger, logFile, err := openLogger(flagLogPath, flagDebug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		logger, logFile = log.New(io.Discard), io.NopCloser(nil)
	}
	defer logFile.Close()

	// Open run history; the game still works without it.
	var runs runStore
	if store, err := storage.Open(flagDBPath); err != nil {
		logger.Warn("run history disabled", "err", err)
	} else {
		defer store.Close()
		runs = store
	}

	clock := core.SystemClock{}
	env := kit.NewEnv(settings, clock, flagSeed)

	input, err := term.NewInputSource(os.Stdin)
	if err != nil {
		return err
	}
	defer input.Close()

	restorer = input.Restorer(os.Stdout)
	handle, stopInterrupts := guardSession(restorer, nil, func() string {
		if flagHandle != "" {
			return flagHandle
		}
		return askHandle(input)
	})
	defer stopInterrupts()

	state := core.NewGameState(handle, clock.Now())
	tracker := newRunTracker(runs, logger, handle, clock)
	env.Runs = tracker

	var initial engine.Scene
	if flagPuzzle != "" {
		initial, err = registry.Create(flagPuzzle, env, kit.ModePractice, func(kit.Result) engine.Scene {
			state.Stop()
			return nil
		})
		if err != nil {
			return err
		}
	} else {
		initial = scenes.NewIntro(env)
	}

	renderer := term.NewTerminalRenderer(os.Stdout, clock)
	renderer.SetTransitionSteps(settings.Loop.TransitionSteps)
	renderer.ClearScreen()
	renderer.HideCursor()

	ctrl := engine.New(renderer, input, state, initial, engine.Options{
		FPS:                settings.Loop.FPS,
		PollTimeout:        settings.Loop.InputTimeout,
		TransitionDuration: settings.Loop.Transition,
		Clock:              clock,
		Logger:             logger,
	})

	logger.Info("session start", "handle", handle, "seed", flagSeed, "difficulty", flagDifficulty)
	runErr := ctrl.Run(context.Background())

	renderer.ResetTerminal()
	input.Close()
	tracker.Finish(state)

	fmt.Printf("Session over, %s. Solved %d, failed %d, played %s.\n",
		handle, state.Metrics.PuzzlesSolved, state.Metrics.FailedAttempts,
		state.Metrics.Elapsed.Round(time.Second))

	return runErr
}
