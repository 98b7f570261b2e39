package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-lander/internal/core"
	"github.com/vovakirdan/tui-lander/internal/registry"
	"github.com/vovakirdan/tui-lander/internal/storage"
)

// Options configures a play session.
type Options struct {
	Store      *storage.Store // Flight log; nil disables recording
	Logger     *log.Logger
	Hold       time.Duration // Key hold window; 0 uses 150ms
	Difficulty string        // Recorded with the flight
}

// Model is the Bubble Tea model for flying the lander.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	latch      *HoldLatch
	pointer    *core.PointerDecoder
	inputFrame core.InputFrame
	gameState  core.GameState
	flightID   int64
	ticks      *int64 // Shared across model copies; read when the flight is closed
	quitting   bool
	now        func() time.Time
}

// NewModel creates a new Bubble Tea model for the given game.
// If a store is given, a flight is opened immediately.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) Model {
	if opts.Hold <= 0 {
		opts.Hold = 150 * time.Millisecond
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	m := Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      opts.Store,
		logger:     opts.Logger,
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		latch:      NewHoldLatch(opts.Hold),
		pointer:    &core.PointerDecoder{},
		inputFrame: core.NewInputFrame(),
		ticks:      new(int64),
		now:        time.Now,
	}

	if m.store != nil {
		id, err := m.store.StartFlight(game.ID(), opts.Difficulty)
		if err != nil {
			m.logger.Warn("flight log unavailable", "err", err)
		} else {
			m.flightID = id
		}
	}

	// Reset here rather than in Init: Init has a value receiver.
	m.game.Reset(m.config)
	m.gameState = m.game.State()

	return m
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		m.finishFlight()
		return m, tea.Quit
	}

	switch {
	case action == core.ActionNone:
	case isHeld(action):
		m.latch.Press(action, m.now())
	default:
		m.inputFrame.Set(action)
	}

	return m, nil
}

// handleMouse feeds mouse events through the pointer decoder, which treats
// the screen like a touch surface split into thirds.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	ev := core.PointerEvent{X: float64(msg.X), Width: float64(m.config.ScreenW)}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonRight || msg.Button == tea.MouseButtonMiddle {
			// A second button acts like a second finger
			ev.Down, ev.Count = true, 2
		} else {
			ev.Down, ev.Count = true, 1
		}
	case tea.MouseActionMotion:
		if msg.Button == tea.MouseButtonNone {
			return m, nil
		}
		ev.Down, ev.Count = true, 1
	case tea.MouseActionRelease:
		ev.Down, ev.Count = false, 0
	default:
		return m, nil
	}

	m.pointer.Handle(ev)
	return m, nil
}

// handleResize processes window resize events.
// The lander scales its world to the screen, so no reset is needed.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	m.latch.Apply(&m.inputFrame, m.now())
	m.pointer.Intents().Apply(&m.inputFrame)

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	*m.ticks++

	for _, ev := range result.Events {
		m.recordEvent(ev)
	}

	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate)
}

// recordEvent logs an event and appends it to the flight log.
func (m Model) recordEvent(ev core.GameEvent) {
	m.logger.Info(ev.Kind, "level", ev.Level, "lives", ev.Lives, "fuel", ev.Fuel, "tick", ev.Tick)

	if m.store == nil || m.flightID == 0 {
		return
	}
	err := m.store.RecordEvent(storage.FlightEvent{
		FlightID: m.flightID,
		Tick:     int64(ev.Tick),
		Kind:     ev.Kind,
		Level:    ev.Level,
		Lives:    ev.Lives,
		Fuel:     ev.Fuel,
	})
	if err != nil {
		m.logger.Warn("cannot record flight event", "err", err)
	}
}

// finishFlight closes the flight in the log.
func (m Model) finishFlight() {
	if m.store == nil || m.flightID == 0 {
		return
	}
	if err := m.store.FinishFlight(m.flightID, *m.ticks); err != nil {
		m.logger.Warn("cannot close flight", "err", err)
	}
}

// FlightID returns the flight being recorded, or 0.
func (m Model) FlightID() int64 {
	return m.flightID
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.screen.Clear()
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".arcade", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("cannot save screenshot", "err", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.screen.Clear()
	m.game.Render(m.screen)

	return RenderScreen(m.screen)
}

// Run starts the Bubble Tea program with the given game.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) error {
	model := NewModel(game, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	final, err := p.Run()
	if m, ok := final.(Model); ok && !m.quitting {
		// Program ended without a quit key (e.g. killed); still close the flight.
		m.finishFlight()
	}
	return err
}
