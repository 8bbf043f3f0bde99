// breach is a terminal hacking game: a chain of timed puzzles played in a
// raw-mode terminal, with cross-faded scenes and a persistent run history.
//
// Usage:
//
//	breach play              - Start a session (intro, menu, missions)
//	breach play --puzzle id  - Play a single puzzle
//	breach list              - List available puzzles
//	breach history           - Browse recorded runs
//	breach history clear     - Delete recorded runs
//
// Global flags:
//
//	--fps <rate>         - Set frame rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible puzzles
//	--db <path>          - Set database path (default: ~/.breach/runs.db)
//	--config <path>      - Use a custom config YAML
//	--difficulty <name>  - Difficulty preset: easy, normal, hard, fixed
//	--log <path>         - Log file (default: ~/.breach/breach.log)
//	--debug              - Log at debug level
package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-breach/internal/config"
	"github.com/vovakirdan/tui-breach/internal/platform/term"

	// Import puzzles to register them
	_ "github.com/vovakirdan/tui-breach/internal/puzzles/logic"
	_ "github.com/vovakirdan/tui-breach/internal/puzzles/memory"
	_ "github.com/vovakirdan/tui-breach/internal/puzzles/pattern"
	_ "github.com/vovakirdan/tui-breach/internal/puzzles/routing"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogPath    string
	flagDebug      bool
)

// restorer is set while the game owns the terminal.
var restorer *term.Restorer

func main() {
	defer func() {
		if r := recover(); r != nil {
			restorer.Restore()
			fmt.Fprintf(os.Stderr, "breach: panic: %v\n\n%s", r, debug.Stack())
			os.Exit(1)
		}
	}()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "breach",
	Short: "BREACH - a terminal intrusion puzzle game",
	Long: `BREACH is a terminal game about breaking into a system one node at a
time. Each node is a timed puzzle; failures raise the alert level, and a
maxed-out alert ends the run.

Available commands:
  play     - Start a session
  list     - Show all puzzles
  history  - Browse recorded runs

Examples:
  breach play
  breach play --handle zero --difficulty hard
  breach play --puzzle routing --seed 42
  breach history --plain`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Frame rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", config.DataPath("runs.db"), "Path to run history database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogPath, "log", config.DataPath("breach.log"), "Log file path (empty disables logging)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Log at debug level")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(historyCmd)
}
