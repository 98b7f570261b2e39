package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-lander/internal/storage"
)

// Flight log layout constants
const (
	maxFlights    = 100 // Max flights to load
	tableChrome   = 9   // Rows taken by title, totals, borders and help
	minTableRows  = 3
	timeLayoutLog = "Jan 02 15:04"
)

// FlightLogKeyMap defines the key bindings for the flight log.
type FlightLogKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Open   key.Binding
	Back   key.Binding
	Quit   key.Binding
	Toggle key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k FlightLogKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Open, k.Back, k.Toggle}
}

// FullHelp returns key bindings for the full help view.
func (k FlightLogKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Open},
		{k.Back, k.Quit, k.Toggle},
	}
}

// DefaultFlightLogKeyMap returns default key bindings.
func DefaultFlightLogKeyMap() FlightLogKeyMap {
	return FlightLogKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "events"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more"),
		),
	}
}

// FlightLogModel is the Bubble Tea model for browsing recorded flights.
// It shows the recent flights and, on enter, the events of one flight.
type FlightLogModel struct {
	store     *storage.Store
	totals    storage.Totals
	flights   []storage.Flight
	events    []storage.FlightEvent
	openID    int64 // Flight whose events are shown; 0 in the list view
	table     table.Model
	help      help.Model
	keys      FlightLogKeyMap
	width     int
	height    int
	err       error
	quitting  bool
	goingBack bool
}

// NewFlightLogModel creates a flight log model and loads the recent flights.
func NewFlightLogModel(store *storage.Store, width, height int) FlightLogModel {
	h := help.New()
	h.Width = width

	m := FlightLogModel{
		store:  store,
		keys:   DefaultFlightLogKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
	m.loadFlights()
	return m
}

func tableStyles() table.Styles {
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
	return s
}

func (m *FlightLogModel) tableHeight() int {
	return max(m.height-tableChrome, minTableRows)
}

// loadFlights switches to the list view.
func (m *FlightLogModel) loadFlights() {
	m.openID = 0
	m.events = nil
	m.err = nil
	if m.store != nil {
		if t, err := m.store.Totals(); err == nil {
			m.totals = t
		}
		m.flights, m.err = m.store.RecentFlights(maxFlights)
	}

	rows := make([]table.Row, len(m.flights))
	for i, f := range m.flights {
		ended := "in flight"
		if f.Finished() {
			ended = f.EndedAt.Format(timeLayoutLog)
		}
		rows[i] = table.Row{
			strconv.FormatInt(f.ID, 10),
			f.StartedAt.Format(timeLayoutLog),
			ended,
			displayDifficulty(f.Difficulty),
			strconv.Itoa(f.Landings),
			strconv.Itoa(f.Crashes),
			strconv.Itoa(f.Resets),
			strconv.Itoa(f.MaxLevel),
		}
	}

	m.table = table.New(
		table.WithColumns([]table.Column{
			{Title: "#", Width: 5},
			{Title: "Started", Width: 13},
			{Title: "Ended", Width: 13},
			{Title: "Mode", Width: 7},
			{Title: "Landed", Width: 7},
			{Title: "Crashed", Width: 8},
			{Title: "Resets", Width: 7},
			{Title: "Level", Width: 6},
		}),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(m.tableHeight()),
		table.WithStyles(tableStyles()),
	)
}

// openFlight switches to the events of the selected flight.
func (m *FlightLogModel) openFlight() {
	i := m.table.Cursor()
	if m.store == nil || i < 0 || i >= len(m.flights) {
		return
	}
	id := m.flights[i].ID
	events, err := m.store.FlightEvents(id)
	if err != nil {
		m.err = err
		return
	}
	m.openID = id
	m.events = events

	rows := make([]table.Row, len(events))
	for i, ev := range events {
		rows[i] = table.Row{
			strconv.FormatInt(ev.Tick, 10),
			ev.Kind,
			strconv.Itoa(ev.Level),
			strconv.Itoa(ev.Lives),
			strconv.Itoa(ev.Fuel),
		}
	}

	m.table = table.New(
		table.WithColumns([]table.Column{
			{Title: "Tick", Width: 8},
			{Title: "Event", Width: 10},
			{Title: "Level", Width: 6},
			{Title: "Lives", Width: 6},
			{Title: "Fuel", Width: 6},
		}),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(m.tableHeight()),
		table.WithStyles(tableStyles()),
	)
}

func displayDifficulty(d string) string {
	if d == "" {
		return "normal"
	}
	return d
}

// Init initializes the flight log model.
func (m FlightLogModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the flight log.
func (m FlightLogModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			if m.openID != 0 {
				m.loadFlights()
				return m, nil
			}
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Open):
			if m.openID == 0 {
				m.openFlight()
			}
			return m, nil

		case key.Matches(msg, m.keys.Toggle):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table.SetHeight(m.tableHeight())
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the flight log.
func (m FlightLogModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	var b strings.Builder

	title := "FLIGHT LOG"
	if m.openID != 0 {
		title = fmt.Sprintf("FLIGHT #%d", m.openID)
	}
	b.WriteString(centerText(title, m.width, titleStyle))
	b.WriteString("\n")

	summary := fmt.Sprintf("%d flights  %d landings  %d crashes  deepest level %d",
		m.totals.Flights, m.totals.Landings, m.totals.Crashes, m.totals.MaxLevel)
	if !m.totals.LastFlew.IsZero() {
		summary += "  last flew " + m.totals.LastFlew.Format(timeLayoutLog)
	}
	b.WriteString(centerText(summary, m.width, dimStyle))
	b.WriteString("\n\n")

	b.WriteString(centerText(boxStyle.Render(m.content()), m.width, lipgloss.NewStyle()))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Render(m.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString(dimStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// content renders the table or an empty message.
func (m FlightLogModel) content() string {
	empty := ""
	switch {
	case m.openID != 0 && len(m.events) == 0:
		empty = "Nothing happened on this flight."
	case m.openID == 0 && len(m.flights) == 0:
		empty = "No flights recorded yet.\nLaunch one from the menu!"
	}
	if empty != "" {
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4).
			Render(empty)
	}
	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m FlightLogModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m FlightLogModel) IsQuitting() bool {
	return m.quitting
}

// RunFlightLog runs the flight log screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunFlightLog(store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewFlightLogModel(store, width, height), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(FlightLogModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
