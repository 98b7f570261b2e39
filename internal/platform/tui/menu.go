package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-lander/internal/core"
	"github.com/vovakirdan/tui-lander/internal/storage"
)

// MenuChoice is what the player picked on the start screen.
type MenuChoice int

const (
	ChoiceNone MenuChoice = iota
	ChoicePlay
	ChoiceFlightLog
	ChoiceQuit
)

// MenuItem represents a selectable entry in the menu.
type MenuItem struct {
	Title  string
	Choice MenuChoice
}

// MenuModel is the Bubble Tea model for the start screen.
type MenuModel struct {
	items     []MenuItem
	cursor    int
	width     int
	height    int
	summary   string // One-line flight log summary, empty without a store
	config    core.RuntimeConfig
	keyMapper *KeyMapper
	quitting  bool
	selected  MenuChoice
}

// NewMenuModel creates a new menu model.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	items := []MenuItem{
		{Title: "Launch", Choice: ChoicePlay},
		{Title: "Flight Log", Choice: ChoiceFlightLog},
		{Title: "Quit", Choice: ChoiceQuit},
	}
	if store == nil {
		items = []MenuItem{items[0], items[2]}
	}

	return MenuModel{
		items:     items,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		summary:   flightSummary(store),
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
}

// flightSummary describes the flight log totals in one line.
func flightSummary(store *storage.Store) string {
	if store == nil {
		return ""
	}
	t, err := store.Totals()
	if err != nil || t.Flights == 0 {
		return "No flights logged yet"
	}
	return fmt.Sprintf("%d flights  %d landings  deepest level %d", t.Flights, t.Landings, t.MaxLevel)
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		m.selected = ChoiceQuit
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		m.selected = m.items[m.cursor].Choice
		if m.selected == ChoiceQuit {
			m.quitting = true
		}
		return m, tea.Quit
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	activeStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("208"))

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("  L U N A R   L A N D E R  ", m.width, titleStyle))
	b.WriteString("\n\n")
	if m.summary != "" {
		b.WriteString(centerText(m.summary, m.width, dimStyle))
		b.WriteString("\n\n")
	}

	for i, item := range m.items {
		if i == m.cursor {
			b.WriteString(centerText("> "+item.Title+" <", m.width, activeStyle))
		} else {
			b.WriteString(centerText(item.Title, m.width, lipgloss.NewStyle()))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Up/Down: Navigate  |  Enter: Select  |  Q: Quit", m.width, dimStyle))
	b.WriteString("\n\n")
	b.WriteString(centerText("W/Up/Space: thrust   A/Left D/Right: rotate   P: pause   R: restart", m.width, dimStyle))
	b.WriteString("\n")
	b.WriteString(centerText("Mouse: left third rotates left, right third rotates right, middle thrusts", m.width, dimStyle))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the player's choice, or ChoiceNone.
func (m MenuModel) Selected() MenuChoice {
	return m.selected
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers styled text within the given width.
func centerText(text string, width int, style lipgloss.Style) string {
	rendered := style.Render(text)
	w := lipgloss.Width(rendered)
	if w >= width {
		return rendered
	}
	return strings.Repeat(" ", (width-w)/2) + rendered
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Choice MenuChoice
	Config core.RuntimeConfig
}

// RunMenu runs the start screen and returns the selection.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig) (MenuResult, error) {
	p := tea.NewProgram(NewMenuModel(store, cfg), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return MenuResult{Choice: ChoiceQuit, Config: cfg}, err
	}

	m, ok := final.(MenuModel)
	if !ok || m.Selected() == ChoiceNone {
		return MenuResult{Choice: ChoiceQuit, Config: cfg}, nil
	}
	return MenuResult{Choice: m.Selected(), Config: m.Config()}, nil
}
