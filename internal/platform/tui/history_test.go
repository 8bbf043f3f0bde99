package tui

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-breach/internal/storage"
)

type fakeSource struct {
	recent []storage.RunRecord
	best   []storage.RunRecord
	stats  map[string]*storage.PuzzleStats
	err    error
}

func (f *fakeSource) RecentRuns(int) ([]storage.RunRecord, error) { return f.recent, f.err }
func (f *fakeSource) BestRuns(int) ([]storage.RunRecord, error)   { return f.best, f.err }
func (f *fakeSource) AllPuzzleStats() (map[string]*storage.PuzzleStats, error) {
	return f.stats, f.err
}

func sampleSource() *fakeSource {
	at := time.Date(2026, 6, 1, 20, 0, 0, 0, time.UTC)
	return &fakeSource{
		recent: []storage.RunRecord{
			{Handle: "zero", Outcome: "detected", Alert: 1, CreatedAt: at},
			{Handle: "zero", Outcome: "breached", Completed: []string{"logic", "memory"}, Duration: 95 * time.Second, CreatedAt: at.Add(-time.Hour)},
		},
		best: []storage.RunRecord{
			{Handle: "zero", Outcome: "breached", Duration: 95 * time.Second, CreatedAt: at.Add(-time.Hour)},
		},
		stats: map[string]*storage.PuzzleStats{
			"logic":  {PuzzleID: "logic", Attempts: 3, Solved: 1, BestTime: 14 * time.Second, LastPlayed: at},
			"legacy": {PuzzleID: "legacy", Attempts: 1},
		},
	}
}

func TestHistoryViewsCycle(t *testing.T) {
	m := NewHistoryModel(sampleSource(), 100, 30)
	if m.CurrentView() != ViewRecent {
		t.Fatalf("initial view = %v, want %v", m.CurrentView(), ViewRecent)
	}
	if len(m.Rows()) != 2 {
		t.Errorf("recent rows = %d, want 2", len(m.Rows()))
	}

	tab := tea.KeyMsg{Type: tea.KeyTab}
	steps := []struct {
		want View
		rows int
	}{
		{ViewBest, 1},
		{ViewPuzzles, 2},
		{ViewRecent, 2},
	}
	for _, s := range steps {
		next, _ := m.Update(tab)
		m = next.(HistoryModel)
		if m.CurrentView() != s.want {
			t.Errorf("view = %v, want %v", m.CurrentView(), s.want)
		}
		if len(m.Rows()) != s.rows {
			t.Errorf("%v rows = %d, want %d", s.want, len(m.Rows()), s.rows)
		}
	}

	back, _ := m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	if back.(HistoryModel).CurrentView() != ViewPuzzles {
		t.Errorf("shift+tab view = %v, want %v", back.(HistoryModel).CurrentView(), ViewPuzzles)
	}
}

func TestHistoryQuit(t *testing.T) {
	m := NewHistoryModel(sampleSource(), 100, 30)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("quit key returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit key did not return tea.Quit")
	}
	if next.(HistoryModel).View() != "" {
		t.Error("View() should be empty after quitting")
	}
}

func TestHistoryViewContent(t *testing.T) {
	tests := []struct {
		name   string
		source HistorySource
		width  int
		want   string
	}{
		{"wide", sampleSource(), 120, "Views"},
		{"narrow", sampleSource(), 60, "RUN HISTORY"},
		{"empty", &fakeSource{}, 100, "No runs recorded yet."},
		{"error", &fakeSource{err: errors.New("disk on fire")}, 100, "disk on fire"},
		{"no store", nil, 100, "No runs recorded yet."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewHistoryModel(tt.source, tt.width, 30)
			if got := m.View(); !strings.Contains(got, tt.want) {
				t.Errorf("View() does not contain %q:\n%s", tt.want, got)
			}
		})
	}
}

func TestPuzzleRowsKeepsUnregistered(t *testing.T) {
	rows := PuzzleRows(sampleSource().stats)
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}

	var legacy bool
	for _, r := range rows {
		if r[0] == "legacy" {
			legacy = true
			if r[3] != "-" {
				t.Errorf("best time for unsolved puzzle = %q, want -", r[3])
			}
		}
	}
	if !legacy {
		t.Error("unregistered puzzle missing from rows")
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "0:00"},
		{59 * time.Second, "0:59"},
		{95 * time.Second, "1:35"},
		{12*time.Minute + 400*time.Millisecond, "12:00"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.in); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestWritePlainHistory(t *testing.T) {
	src := sampleSource()

	var buf bytes.Buffer
	WritePlainHistory(&buf, src.recent, &storage.Stats{Runs: 2, Breached: 1, Detected: 1, BestTime: 95 * time.Second})
	out := buf.String()

	for _, want := range []string{"Run History", "zero", "breached", "detected", "1:35", "Runs: 2"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	WritePlainHistory(&buf, nil, nil)
	if !strings.Contains(buf.String(), "No runs recorded yet.") {
		t.Errorf("empty output = %q", buf.String())
	}
}
