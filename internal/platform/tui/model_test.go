package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-lander/internal/core"
	"github.com/vovakirdan/tui-lander/internal/storage"
)

// fakeGame records the intents it was stepped with and emits queued events.
type fakeGame struct {
	resets  int
	steps   []core.Intents
	pending []core.GameEvent
}

func (g *fakeGame) ID() string { return "fake" }
func (g *fakeGame) Title() string { return "Fake" }
func (g *fakeGame) Reset(core.RuntimeConfig) { g.resets++ }
func (g *fakeGame) State() core.GameState { return core.GameState{} }
func (g *fakeGame) Render(dst *core.Screen) { dst.DrawText(0, 0, "FAKE") }

func (g *fakeGame) Step(in core.InputFrame) core.StepResult {
	g.steps = append(g.steps, core.IntentsFrom(in))
	ev := g.pending
	g.pending = nil
	return core.StepResult{Events: ev}
}

func (g *fakeGame) last() core.Intents {
	return g.steps[len(g.steps)-1]
}

func openTestStore(t *testing.T) *storage.Store {
	t.Helper()
	s, err := storage.Open(filepath.Join(t.TempDir(), "flights.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newTestModel(t *testing.T, store *storage.Store) (Model, *fakeGame, *clock) {
	t.Helper()
	g := &fakeGame{}
	c := &clock{t: time.Unix(5000, 0)}
	m := NewModel(g, core.RuntimeConfig{ScreenW: 90, ScreenH: 30, TickRate: 60}, Options{
		Store:      store,
		Hold:       150 * time.Millisecond,
		Difficulty: "hard",
	})
	m.now = c.now
	return m, g, c
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm
}

func TestNewModelResetsAndOpensFlight(t *testing.T) {
	store := openTestStore(t)
	m, g, _ := newTestModel(t, store)

	if g.resets != 1 {
		t.Errorf("resets = %d, want 1", g.resets)
	}
	if m.FlightID() == 0 {
		t.Fatal("expected a flight to be opened")
	}
	f, err := store.Flight(m.FlightID())
	if err != nil || f == nil {
		t.Fatalf("Flight: %v %v", f, err)
	}
	if f.GameID != "fake" || f.Difficulty != "hard" {
		t.Errorf("flight = %+v", f)
	}
}

func TestHeldKeyLatchesAcrossTicks(t *testing.T) {
	m, g, c := newTestModel(t, nil)

	m = update(t, m, runeKey("w"))
	m = update(t, m, TickMsg(c.t))
	if !g.last().Thrust {
		t.Fatal("thrust should be active on the first tick")
	}

	c.t = c.t.Add(100 * time.Millisecond)
	m = update(t, m, TickMsg(c.t))
	if !g.last().Thrust {
		t.Error("thrust should stay latched between key repeats")
	}

	c.t = c.t.Add(100 * time.Millisecond)
	update(t, m, TickMsg(c.t))
	if g.last().Thrust {
		t.Error("thrust should drop after the hold window")
	}
}

func TestMouseThirdsDriveIntents(t *testing.T) {
	m, g, c := newTestModel(t, nil)

	m = update(t, m, tea.MouseMsg{X: 5, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = update(t, m, TickMsg(c.t))
	if in := g.last(); !in.RotateLeft || in.Thrust || in.RotateRight {
		t.Errorf("left third press = %+v, want rotate left only", in)
	}

	m = update(t, m, tea.MouseMsg{X: 5, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	m = update(t, m, tea.MouseMsg{X: 80, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = update(t, m, TickMsg(c.t))
	if in := g.last(); !in.RotateRight || in.RotateLeft {
		t.Errorf("right third press = %+v, want rotate right only", in)
	}

	m = update(t, m, tea.MouseMsg{X: 80, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	m = update(t, m, tea.MouseMsg{X: 5, Action: tea.MouseActionPress, Button: tea.MouseButtonRight})
	m = update(t, m, TickMsg(c.t))
	if in := g.last(); !in.Thrust {
		t.Errorf("second button = %+v, want thrust", in)
	}

	m = update(t, m, tea.MouseMsg{X: 5, Action: tea.MouseActionRelease})
	update(t, m, TickMsg(c.t))
	if in := g.last(); in != (core.Intents{}) {
		t.Errorf("after release = %+v, want none", in)
	}
}

func TestEventsRecordedAndFlightFinished(t *testing.T) {
	store := openTestStore(t)
	m, g, c := newTestModel(t, store)

	g.pending = []core.GameEvent{{Kind: "landed", Level: 2, Lives: 3, Fuel: 40, Tick: 1}}
	m = update(t, m, TickMsg(c.t))
	m = update(t, m, TickMsg(c.t))

	next, cmd := m.Update(runeKey("q"))
	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if v := next.(Model).View(); v != "" {
		t.Errorf("View after quit = %q, want empty", v)
	}

	events, err := store.FlightEvents(m.FlightID())
	if err != nil {
		t.Fatalf("FlightEvents: %v", err)
	}
	if len(events) != 1 || events[0].Kind != "landed" || events[0].Level != 2 {
		t.Fatalf("events = %+v", events)
	}

	f, err := store.Flight(m.FlightID())
	if err != nil || f == nil {
		t.Fatalf("Flight: %v %v", f, err)
	}
	if !f.Finished() {
		t.Error("flight should be finished after quit")
	}
	if f.Ticks != 2 {
		t.Errorf("Ticks = %d, want 2", f.Ticks)
	}
	if f.Landings != 1 || f.MaxLevel != 2 {
		t.Errorf("flight counters = %+v", f)
	}
}

func TestResizeKeepsGame(t *testing.T) {
	m, g, _ := newTestModel(t, nil)

	m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	if g.resets != 1 {
		t.Errorf("resize should not reset, resets = %d", g.resets)
	}
	if m.screen.Width() != 120 || m.screen.Height() != 40 {
		t.Errorf("screen = %dx%d", m.screen.Width(), m.screen.Height())
	}
	if !strings.Contains(m.View(), "FAKE") {
		t.Error("View should contain the rendered game")
	}
}
