package lander

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-lander/internal/config"
	"github.com/vovakirdan/tui-lander/internal/core"
)

// Simulator drives sessions tick by tick. It holds only read-only
// collaborators, so one Simulator may serve any number of sessions.
type Simulator struct {
	catalog    *Catalog
	physics    Physics
	gameplay   Gameplay
	craftHalf  core.Vec2
	fallbackDT float64
	maxDT      float64
	logger     *log.Logger
}

// NewSimulator creates a simulator over a catalog and configuration.
// A nil logger discards output.
func NewSimulator(cat *Catalog, cfg config.LanderConfig, logger *log.Logger) *Simulator {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Simulator{
		catalog:    cat,
		physics:    PhysicsFrom(cfg),
		gameplay:   GameplayFrom(cfg),
		craftHalf:  core.V(cfg.Craft.Width/2, cfg.Craft.Height/2),
		fallbackDT: cfg.Physics.FallbackDT,
		maxDT:      cfg.Physics.MaxFrameDelta,
		logger:     logger,
	}
}

// Catalog returns the simulator's level catalog.
func (sim *Simulator) Catalog() *Catalog {
	return sim.catalog
}

// CraftHalfExtents returns half the craft's body size.
func (sim *Simulator) CraftHalfExtents() core.Vec2 {
	return sim.craftHalf
}

// NewSession starts a fresh play-through.
func (sim *Simulator) NewSession() Session {
	return NewSession(sim.catalog, sim.gameplay)
}

// frameDelta derives dt from the previous timestamp stored in the session.
func (sim *Simulator) frameDelta(s Session, now time.Duration) float64 {
	if !s.clockSeen {
		return sim.fallbackDT
	}
	dt := (now - s.lastNow).Seconds()
	if sim.maxDT > 0 && dt > sim.maxDT {
		dt = sim.maxDT
	}
	return dt
}

// Tick integrates one frame at time now, classifies the contact, applies the
// state machine and returns the new session with a render snapshot.
func (sim *Simulator) Tick(s Session, in core.Intents, now time.Duration) (Session, Snapshot) {
	dt := sim.frameDelta(s, now)
	s.lastNow = now
	s.clockSeen = true

	lvl := sim.catalog.at(s.LevelIndex)
	thrusting := in.Thrust && s.Craft.Fuel > 0

	s.Craft = Advance(s.Craft, lvl.Gravity, in, dt, sim.physics)

	bounds := sim.catalog.Bounds(s.LevelIndex).Expand(sim.gameplay.BoundsMargin)
	contact := Detect(s.Craft.Position, sim.craftHalf, s.Craft.Rotation, *lvl, s.FuelPacks, bounds)

	prevLevel := s.LevelIndex
	var outcome Outcome
	s, outcome = s.Apply(contact, sim.catalog, sim.gameplay)
	s.Tick++

	if contact.Kind != ContactNone {
		sim.logger.Debug("contact", "tick", s.Tick, "kind", contact, "level", prevLevel+1)
	}
	switch outcome {
	case OutcomeCrash:
		sim.logger.Info("crashed", "level", s.LevelIndex+1, "lives", s.Lives)
	case OutcomeReset:
		sim.logger.Info("out of lives, restarting", "tick", s.Tick)
	case OutcomeLanded:
		sim.logger.Info("landed", "from", prevLevel+1, "to", s.LevelIndex+1, "fuel", int(s.Craft.Fuel))
	case OutcomeRefuel:
		sim.logger.Debug("refueled", "pack", contact.PackID, "fuel", int(s.Craft.Fuel))
	}

	return s, sim.snapshot(s, thrusting, contact, outcome)
}
