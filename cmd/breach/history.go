package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	bterm "github.com/vovakirdan/tui-breach/internal/platform/term"
	"github.com/vovakirdan/tui-breach/internal/platform/tui"
	"github.com/vovakirdan/tui-breach/internal/storage"
)

var (
	flagPlain bool
	flagLimit int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse recorded runs",
	Long: `Browse recorded mission runs and per-puzzle statistics.

The interactive browser needs a terminal; with --plain, or when stdout is
not a terminal, the most recent runs are printed instead.

Examples:
  breach history
  breach history --plain --limit 5
  breach history clear`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all recorded runs",
	Args:  cobra.NoArgs,
	RunE:  runHistoryClear,
}

func init() {
	historyCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print runs instead of opening the browser")
	historyCmd.Flags().IntVar(&flagLimit, "limit", 20, "Number of runs to print with --plain")
	historyCmd.AddCommand(historyClearCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening run history: %w", err)
	}
	defer store.Close()

	if flagPlain || !term.IsTerminal(int(os.Stdout.Fd())) {
		runs, err := store.RecentRuns(flagLimit)
		if err != nil {
			return err
		}
		stats, err := store.RunStats()
		if err != nil {
			return err
		}
		tui.WritePlainHistory(cmd.OutOrStdout(), runs, stats)
		return nil
	}

	width, height := bterm.Size(int(os.Stdout.Fd()))
	return tui.RunHistory(store, width, height)
}

func runHistoryClear(cmd *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening run history: %w", err)
	}
	defer store.Close()

	if err := store.ClearRuns(); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Run history cleared.")
	return nil
}
