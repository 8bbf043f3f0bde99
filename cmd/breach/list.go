package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-breach/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available puzzles",
	Long:  `Shows every puzzle registered in the game with the skill it trains.`,
	Args:  cobra.NoArgs,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	puzzles := registry.List()
	out := cmd.OutOrStdout()

	if len(puzzles) == 0 {
		fmt.Fprintln(out, "No puzzles available.")
		return
	}

	fmt.Fprintln(out, "Available puzzles:")
	fmt.Fprintln(out)

	// Calculate column widths
	maxIDLen, maxTitleLen := 2, 5 // "ID", "Title" headers
	for _, p := range puzzles {
		maxIDLen = max(maxIDLen, len(p.ID))
		maxTitleLen = max(maxTitleLen, len(p.Title))
	}

	fmt.Fprintf(out, "  %-*s  %-*s  %-8s  %s\n", maxIDLen, "ID", maxTitleLen, "Title", "Skill", "Task")
	fmt.Fprintf(out, "  %-*s  %-*s  %-8s  %s\n", maxIDLen, "--", maxTitleLen, "-----", "-----", "----")

	for _, p := range puzzles {
		fmt.Fprintf(out, "  %-*s  %-*s  %-8s  %s\n", maxIDLen, p.ID, maxTitleLen, p.Title, p.Skill, p.Blurb)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Run 'breach play --puzzle <id>' to practice one.")
}
