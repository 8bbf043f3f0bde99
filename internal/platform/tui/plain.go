package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-breach/internal/storage"
)

var outcomeStyles = map[string]lipgloss.Style{
	"breached": lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
	"detected": lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	"aborted":  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

// WritePlainHistory prints runs and the aggregate stats as a plain listing,
// for non-interactive output.
func WritePlainHistory(w io.Writer, runs []storage.RunRecord, stats *storage.Stats) {
	header := lipgloss.NewStyle().Bold(true)

	fmt.Fprintln(w, header.Render("Run History"))
	fmt.Fprintln(w)

	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded yet.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Run 'breach play' to start one.")
		return
	}

	fmt.Fprintf(w, "  %-16s  %-10s  %-8s  %-5s  %-5s  %s\n", "Date", "Handle", "Outcome", "Nodes", "Alert", "Time")
	fmt.Fprintf(w, "  %-16s  %-10s  %-8s  %-5s  %-5s  %s\n", "----", "------", "-------", "-----", "-----", "----")

	for _, r := range runs {
		outcome := fmt.Sprintf("%-8s", r.Outcome)
		if style, ok := outcomeStyles[r.Outcome]; ok {
			outcome = style.Render(outcome)
		}
		fmt.Fprintf(w, "  %-16s  %-10s  %s  %-5d  %4.0f%%  %s\n",
			r.CreatedAt.Local().Format("2006-01-02 15:04"),
			truncate(r.Handle, 10),
			outcome,
			len(r.Completed),
			r.Alert*100,
			formatDuration(r.Duration),
		)
	}

	if stats == nil {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Runs: %d  breached %d  detected %d  aborted %d\n",
		stats.Runs, stats.Breached, stats.Detected, stats.Aborted)
	if stats.BestTime > 0 {
		fmt.Fprintf(w, "Fastest breach: %s\n", formatDuration(stats.BestTime))
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return strings.TrimSpace(s[:n-1]) + "."
}
