package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/vovakirdan/tui-physlab/internal/storage"
)

// Runs board layout constants
const (
	minWidthForPlot = 100 // Minimum width to show the trace beside the table
	plotHeight      = 10  // Rows of the height trace
	maxRuns         = 100 // Max runs to load
)

// RunsKeyMap defines the key bindings for the runs board.
type RunsKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Actor  key.Binding
	Delete key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k RunsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Actor, k.Delete, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k RunsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Actor},
		{k.Delete, k.Back, k.Quit},
	}
}

// DefaultRunsKeyMap returns default key bindings.
func DefaultRunsKeyMap() RunsKeyMap {
	return RunsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "prev run"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "next run"),
		),
		Actor: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next actor"),
		),
		Delete: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "delete run"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// RunsModel is the Bubble Tea model for browsing recorded runs.
type RunsModel struct {
	store     *storage.Store
	runs      []storage.Run
	actors    []string // actors of the selected run
	actor     int      // index into actors
	trace     []float64
	err       error
	table     table.Model
	help      help.Model
	keys      RunsKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewRunsModel creates a new runs board.
func NewRunsModel(store *storage.Store, width, height int) RunsModel {
	h := help.New()
	h.ShowAll = false

	m := RunsModel{
		store:  store,
		keys:   DefaultRunsKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.loadRuns()
	return m
}

// createTable creates a new table with appropriate columns.
func (m *RunsModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Run", Width: 6},
		{Title: "Scene", Width: 10},
		{Title: "Step", Width: 9},
		{Title: "Frames", Width: 8},
		{Title: "Started", Width: 14},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(tableHeight(m.height-8)), // Leave room for header, help, and margins
	)

	// Table styles
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// tableHeight clamps a table height to something drawable.
func tableHeight(h int) int {
	if h < 3 {
		return 3
	}
	return h
}

// loadRuns reloads the run list and the trace of the selected run.
func (m *RunsModel) loadRuns() {
	m.runs = nil
	if m.store != nil {
		runs, err := m.store.ListRuns(maxRuns)
		m.err = err
		m.runs = runs
	}

	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", r.ID),
			r.Preset,
			r.Timestep,
			fmt.Sprintf("%d", r.Frames),
			r.StartedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) {
		m.table.GotoTop()
	}
	m.loadActors()
}

// selectedRun returns the run under the cursor.
func (m RunsModel) selectedRun() *storage.Run {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.runs) {
		return nil
	}
	return &m.runs[i]
}

// loadActors loads the actor list of the selected run and its first trace.
func (m *RunsModel) loadActors() {
	m.actors, m.actor = nil, 0
	if run := m.selectedRun(); run != nil && m.store != nil {
		actors, err := m.store.Actors(run.ID)
		if err != nil {
			m.err = err
		}
		m.actors = actors
	}
	m.loadTrace()
}

// loadTrace loads the height trace of the selected actor.
func (m *RunsModel) loadTrace() {
	m.trace = nil
	run := m.selectedRun()
	if run == nil || m.store == nil || len(m.actors) == 0 {
		return
	}
	samples, err := m.store.Samples(run.ID, m.actors[m.actor])
	if err != nil {
		m.err = err
		return
	}
	m.trace = Heights(samples)
}

// Init initializes the runs board.
func (m RunsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the runs board.
func (m RunsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Actor):
			if len(m.actors) > 0 {
				m.actor = (m.actor + 1) % len(m.actors)
				m.loadTrace()
			}
			return m, nil

		case key.Matches(msg, m.keys.Delete):
			if run := m.selectedRun(); run != nil && m.store != nil {
				m.err = m.store.DeleteRun(run.ID)
				m.loadRuns()
			}
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			// Pass to table for scrolling
			m.table, cmd = m.table.Update(msg)
			m.loadActors()
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		cursor := m.table.Cursor()
		m.table = m.createTable()
		m.loadRuns()
		m.table.SetCursor(cursor)
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the runs board.
func (m RunsModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)
	b.WriteString(titleStyle.Render(centerText("RECORDED RUNS", m.width)))
	b.WriteString("\n\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	tableBox := boxStyle.Render(m.renderTableContent())
	plotBox := boxStyle.Render(m.renderTrace())
	if m.width >= minWidthForPlot {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tableBox, "  ", plotBox))
	} else {
		b.WriteString(lipgloss.JoinVertical(lipgloss.Left, tableBox, plotBox))
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Render(m.err.Error()))
	}

	// Help bar
	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderTableContent renders the table or empty message.
func (m RunsModel) renderTableContent() string {
	if len(m.runs) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No runs recorded yet.\nStart physlab with --record to keep one.")
	}

	return m.table.View()
}

// renderTrace renders the height trace of the selected actor.
func (m RunsModel) renderTrace() string {
	if len(m.actors) == 0 {
		return "no samples"
	}
	caption := fmt.Sprintf("%s height", m.actors[m.actor])
	return TracePlot(m.trace, 40, plotHeight, caption)
}

// IsGoingBack returns true if user wants to go back to menu.
func (m RunsModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m RunsModel) IsQuitting() bool {
	return m.quitting
}

// Heights extracts the y coordinate of each sample.
func Heights(samples []storage.Sample) []float64 {
	ys := make([]float64, len(samples))
	for i, s := range samples {
		ys[i] = s.Position.Y()
	}
	return ys
}

// TracePlot draws data as an ASCII line chart.
func TracePlot(data []float64, width, height int, caption string) string {
	if len(data) < 2 {
		return caption + ": not enough samples"
	}
	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)
}

// RunRunsBoard runs the runs board.
// Returns true if user wants to go back to menu, false if quitting.
func RunRunsBoard(store *storage.Store, width, height int) (goBack bool, err error) {
	model := NewRunsModel(store, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(RunsModel)
	if !ok {
		return false, nil
	}

	return m.IsGoingBack(), nil
}
