// Package lander implements the lunar lander: a single craft with rotation and
// thrust flying through static levels under gravity.
//
// The simulation (Advance, Detect, Session.Apply, Simulator.Tick) is pure and
// deterministic given its inputs. Game adapts it to the registry.Game
// interface for the terminal platform.
package lander

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-lander/internal/config"
	"github.com/vovakirdan/tui-lander/internal/core"
	"github.com/vovakirdan/tui-lander/internal/registry"
)

// configPath stores the custom config path set via CLI
var configPath string

// levelsPath stores the custom level catalog path set via CLI
var levelsPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// logger receives simulation events; it discards output until SetLogger is called.
var logger = log.New(io.Discard)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetLevelsPath sets a YAML level catalog to play instead of the builtin one.
func SetLevelsPath(path string) {
	levelsPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown values clear it.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil {
		p = ""
	}
	difficultyPreset = p
}

// SetLogger sets the logger used by games created afterwards.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// LoadSimulator builds a simulator from a config file, difficulty preset and
// level catalog. Empty paths select the defaults.
func LoadSimulator(cfgPath, levels string, preset config.DifficultyPreset, l *log.Logger) (*Simulator, config.LanderConfig, error) {
	cfg, err := config.LoadLander(cfgPath)
	if err != nil {
		return nil, config.LanderConfig{}, err
	}
	if preset != "" {
		config.ApplyLanderPreset(&cfg, preset)
	}
	cat, err := LoadCatalog(levels)
	if err != nil {
		return nil, config.LanderConfig{}, err
	}
	return NewSimulator(cat, cfg, l), cfg, nil
}

// Game adapts the simulator to the platform's fixed-tick loop.
type Game struct {
	sim     *Simulator
	session Session
	snap    Snapshot

	runtime core.RuntimeConfig
	tick    time.Duration // Synthetic clock step per Step call
	clock   time.Duration
	paused  bool
}

// New creates a new lander game instance.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "lander"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Lunar Lander"
}

// Reset loads configuration and levels and starts a new flight.
// Config or catalog errors fall back to the builtin defaults.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	sim, _, err := LoadSimulator(configPath, levelsPath, difficultyPreset, logger)
	if err != nil {
		logger.Warn("using builtin configuration", "err", err)
		sim = NewSimulator(BuiltinCatalog(), config.DefaultLanderConfig(), logger)
	}
	g.sim = sim

	rate := runtime.TickRate
	if rate <= 0 {
		rate = 60
	}
	g.tick = time.Second / time.Duration(rate)
	g.clock = 0
	g.paused = false
	g.session = sim.NewSession()
	g.snap = sim.Snapshot(g.session)

	logger.Info("flight started", "levels", sim.Catalog().Len(), "lives", g.session.Lives, "preset", string(difficultyPreset))
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.sim == nil {
		g.Reset(g.runtime)
	}

	if in.Has(core.ActionRestart) {
		g.Reset(g.runtime)
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.clock += g.tick
	g.session, g.snap = g.sim.Tick(g.session, core.IntentsFrom(in), g.clock)

	result := core.StepResult{State: g.State()}
	if g.snap.Outcome != OutcomeNone {
		result.Events = []core.GameEvent{{
			Kind:  g.snap.Outcome.String(),
			Level: g.snap.LevelNumber,
			Lives: g.snap.Lives,
			Fuel:  g.snap.FuelDisplay,
			Tick:  g.snap.Tick,
		}}
	}
	return result
}

// Snapshot returns the view produced by the most recent tick.
func (g *Game) Snapshot() Snapshot {
	return g.snap
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	if g.sim == nil {
		return
	}
	DrawSnapshot(dst, g.snap)

	if g.paused {
		drawCenteredBox(dst, "PAUSED", "Press P to resume")
	}
}

// drawCenteredBox draws a box with title and subtitle in the center.
func drawCenteredBox(dst *core.Screen, title, subtitle string) {
	boxW := core.Max(len(title), len(subtitle)) + 6
	boxH := 5
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ', core.ColorDefault)
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	dst.DrawTextColored(boxX+(boxW-len(title))/2, boxY+1, title, core.ColorBrightWhite)
	dst.DrawText(boxX+(boxW-len(subtitle))/2, boxY+3, subtitle)
}

// State returns the current game state.
// Score counts landings; the lander has no terminal state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.session.Landings,
		GameOver: false,
		Paused:   g.paused,
	}
}

// Register the game on package initialization
func init() {
	registry.Register("lander", func() registry.Game {
		return New()
	})
}
