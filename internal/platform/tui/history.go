// Package tui holds the Bubble Tea screens that run outside the game loop.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-breach/internal/registry"
	"github.com/vovakirdan/tui-breach/internal/storage"
)

// History layout constants
const (
	minWidthForSidebar = 80  // Minimum width to show the view list sidebar
	sidebarWidth       = 20  // Width of view list sidebar
	maxRows            = 100 // Max rows to load per view
)

// HistorySource is the part of the store the browser reads.
type HistorySource interface {
	RecentRuns(limit int) ([]storage.RunRecord, error)
	BestRuns(limit int) ([]storage.RunRecord, error)
	AllPuzzleStats() (map[string]*storage.PuzzleStats, error)
}

// View identifies one history table.
type View int

const (
	ViewRecent View = iota
	ViewBest
	ViewPuzzles
	viewCount
)

func (v View) String() string {
	switch v {
	case ViewBest:
		return "Fastest Breaches"
	case ViewPuzzles:
		return "Puzzles"
	default:
		return "Recent Runs"
	}
}

// HistoryKeyMap defines the key bindings for the history browser.
type HistoryKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextView key.Binding
	PrevView key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextView, k.PrevView, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextView, k.PrevView},
		{k.Quit},
	}
}

// DefaultHistoryKeyMap returns default key bindings.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextView: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next view"),
		),
		PrevView: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev view"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q/esc", "quit"),
		),
	}
}

// HistoryModel is the Bubble Tea model for the run history browser.
type HistoryModel struct {
	source      HistorySource
	view        View
	rows        []table.Row
	loadErr     error
	table       table.Model
	help        help.Model
	keys        HistoryKeyMap
	width       int
	height      int
	quitting    bool
	showSidebar bool
}

// NewHistoryModel creates a new history model.
func NewHistoryModel(source HistorySource, width, height int) HistoryModel {
	h := help.New()
	h.ShowAll = false

	m := HistoryModel{
		source:      source,
		keys:        DefaultHistoryKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}

	m.table = m.createTable()
	m.load()

	return m
}

func (m *HistoryModel) columns() []table.Column {
	if m.view == ViewPuzzles {
		return []table.Column{
			{Title: "Puzzle", Width: 16},
			{Title: "Tries", Width: 6},
			{Title: "Solved", Width: 7},
			{Title: "Best", Width: 8},
			{Title: "Last", Width: 13},
		}
	}
	return []table.Column{
		{Title: "Date", Width: 13},
		{Title: "Handle", Width: 10},
		{Title: "Outcome", Width: 9},
		{Title: "Nodes", Width: 6},
		{Title: "Alert", Width: 6},
		{Title: "Time", Width: 8},
	}
}

// createTable creates a new table with the columns of the current view.
func (m *HistoryModel) createTable() table.Model {
	height := m.height - 8 // Leave room for header, help, and margins
	if height < 3 {
		height = 3
	}

	t := table.New(
		table.WithColumns(m.columns()),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("22")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load fetches the rows for the current view.
func (m *HistoryModel) load() {
	m.rows, m.loadErr = nil, nil
	if m.source != nil {
		switch m.view {
		case ViewRecent:
			runs, err := m.source.RecentRuns(maxRows)
			m.rows, m.loadErr = RunRows(runs), err
		case ViewBest:
			runs, err := m.source.BestRuns(maxRows)
			m.rows, m.loadErr = RunRows(runs), err
		case ViewPuzzles:
			stats, err := m.source.AllPuzzleStats()
			m.rows, m.loadErr = PuzzleRows(stats), err
		}
	}

	// Columns must match before rows are set.
	m.table = m.createTable()
	m.table.SetRows(m.rows)
	m.table.GotoTop()
}

// RunRows formats runs as table rows.
func RunRows(runs []storage.RunRecord) []table.Row {
	rows := make([]table.Row, len(runs))
	for i, r := range runs {
		rows[i] = table.Row{
			r.CreatedAt.Local().Format("Jan 02 15:04"),
			r.Handle,
			r.Outcome,
			fmt.Sprintf("%d", len(r.Completed)),
			fmt.Sprintf("%.0f%%", r.Alert*100),
			formatDuration(r.Duration),
		}
	}
	return rows
}

// PuzzleRows formats per-puzzle statistics as table rows, in registry order.
func PuzzleRows(stats map[string]*storage.PuzzleStats) []table.Row {
	var rows []table.Row
	seen := make(map[string]bool)
	add := func(id, title string) {
		ps, ok := stats[id]
		if !ok || seen[id] {
			return
		}
		seen[id] = true
		best := "-"
		if ps.BestTime > 0 {
			best = formatDuration(ps.BestTime)
		}
		rows = append(rows, table.Row{
			title,
			fmt.Sprintf("%d", ps.Attempts),
			fmt.Sprintf("%d", ps.Solved),
			best,
			ps.LastPlayed.Local().Format("Jan 02 15:04"),
		})
	}

	for _, info := range registry.List() {
		add(info.ID, info.Title)
	}
	// Puzzles no longer registered still show up under their ID.
	for id := range stats {
		add(id, id)
	}
	return rows
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history browser.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextView):
			m.view = (m.view + 1) % viewCount
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.PrevView):
			m.view = (m.view + viewCount - 1) % viewCount
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.table.SetRows(m.rows)
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// CurrentView returns the table being shown.
func (m HistoryModel) CurrentView() View {
	return m.view
}

// Rows returns the loaded rows of the current view.
func (m HistoryModel) Rows() []table.Row {
	return m.rows
}

// View renders the history browser.
func (m HistoryModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("46")).
		MarginBottom(1)

	b.WriteString(titleStyle.Render(centerText("RUN HISTORY - "+m.view.String(), m.width)))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderWideLayout renders the table with a sidebar listing the views.
func (m HistoryModel) renderWideLayout() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Views\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for v := View(0); v < viewCount; v++ {
		cursor := "  "
		style := lipgloss.NewStyle()
		if v == m.view {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("46"))
		}
		sidebar.WriteString(style.Render(cursor + v.String()))
		sidebar.WriteString("\n")
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	return lipgloss.JoinHorizontal(lipgloss.Top,
		sidebarStyle.Render(sidebar.String()), "  ", tableStyle.Render(m.renderTableContent()))
}

// renderNarrowLayout renders view tabs above the table.
func (m HistoryModel) renderNarrowLayout() string {
	var b strings.Builder

	tabStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("22")).
		Padding(0, 1)

	tabs := make([]string, 0, viewCount)
	for v := View(0); v < viewCount; v++ {
		if v == m.view {
			tabs = append(tabs, activeTabStyle.Render(v.String()))
		} else {
			tabs = append(tabs, tabStyle.Render(" "+v.String()+" "))
		}
	}

	tabLine := strings.Join(tabs, " ")
	if lipgloss.Width(tabLine) > m.width-4 {
		tabLine = fmt.Sprintf("< %s >", m.view)
	}
	b.WriteString(centerText(tabLine, m.width))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	b.WriteString(centerText(tableStyle.Render(m.renderTableContent()), m.width))

	return b.String()
}

// renderTableContent renders the table or an empty/error message.
func (m HistoryModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	if m.loadErr != nil {
		return emptyStyle.Foreground(lipgloss.Color("9")).Render("Cannot load history:\n" + m.loadErr.Error())
	}
	if len(m.rows) == 0 {
		return emptyStyle.Render("No runs recorded yet.\nStart one with 'breach play'.")
	}

	return m.table.View()
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// RunHistory runs the history browser until the user quits.
func RunHistory(source HistorySource, width, height int) error {
	p := tea.NewProgram(
		NewHistoryModel(source, width, height),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
