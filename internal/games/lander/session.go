package lander

import (
	"math"
	"time"

	"github.com/vovakirdan/tui-lander/internal/config"
)

// Outcome describes what the state machine did with a contact.
type Outcome int

const (
	OutcomeNone   Outcome = iota
	OutcomeCrash          // Lost a life, level reloaded
	OutcomeReset          // Out of lives, back to level 1
	OutcomeLanded         // Reached the pad, next level loaded
	OutcomeRefuel         // Collected a fuel pack
)

// String returns the outcome's name.
func (o Outcome) String() string {
	switch o {
	case OutcomeNone:
		return "none"
	case OutcomeCrash:
		return "crash"
	case OutcomeReset:
		return "reset"
	case OutcomeLanded:
		return "landed"
	case OutcomeRefuel:
		return "refuel"
	default:
		return "unknown"
	}
}

// Gameplay holds the rules of the lives and fuel state machine.
type Gameplay struct {
	Lives          int
	MaxFuel        float64
	FuelPackAmount float64
	BoundsMargin   float64
}

// GameplayFrom extracts gameplay rules from a configuration.
func GameplayFrom(cfg config.LanderConfig) Gameplay {
	return Gameplay{
		Lives:          cfg.Gameplay.Lives,
		MaxFuel:        cfg.Gameplay.MaxFuel,
		FuelPackAmount: cfg.Gameplay.FuelPackAmount,
		BoundsMargin:   cfg.Gameplay.BoundsMargin,
	}
}

// DefaultGameplay returns the stock rules: 3 lives, 100 fuel, packs worth 30.
func DefaultGameplay() Gameplay {
	return GameplayFrom(config.DefaultLanderConfig())
}

// Session is the complete mutable state of a play-through.
// It is a value; every transition returns a new Session.
type Session struct {
	LevelIndex int
	Lives      int
	Craft      Craft
	FuelPacks  PackSet
	Tick       uint64
	Landings   int

	lastNow   time.Duration
	clockSeen bool
}

// NewSession starts a play-through at level 0 with full lives and fuel.
func NewSession(cat *Catalog, g Gameplay) Session {
	s := Session{
		LevelIndex: 0,
		Lives:      g.Lives,
	}
	return s.reload(cat, g.MaxFuel)
}

// reload respawns the craft at the current level's start with the given fuel
// and restores every fuel pack. Lives are untouched.
func (s Session) reload(cat *Catalog, fuel float64) Session {
	lvl := cat.at(s.LevelIndex)
	s.Craft = Craft{
		Position: lvl.StartPosition,
		Rotation: lvl.StartRotation,
		Fuel:     fuel,
		Alive:    true,
	}
	s.FuelPacks = FullPackSet(len(lvl.FuelPacks))
	return s
}

// Apply advances the state machine by one classified contact.
func (s Session) Apply(c Contact, cat *Catalog, g Gameplay) (Session, Outcome) {
	switch c.Kind {
	case ContactWall:
		s.Lives--
		if s.Lives < 0 {
			s.LevelIndex = 0
			s.Lives = g.Lives
			s.Landings = 0
			return s.reload(cat, g.MaxFuel), OutcomeReset
		}
		return s.reload(cat, s.Craft.Fuel), OutcomeCrash

	case ContactLandingPad:
		s.LevelIndex = (s.LevelIndex + 1) % cat.Len()
		s.Landings++
		return s.reload(cat, s.Craft.Fuel), OutcomeLanded

	case ContactFuelPack:
		if !s.FuelPacks.Has(c.PackID) {
			return s, OutcomeNone
		}
		s.Craft.Fuel = math.Min(g.MaxFuel, s.Craft.Fuel+g.FuelPackAmount)
		s.FuelPacks = s.FuelPacks.Without(c.PackID)
		return s, OutcomeRefuel
	}
	return s, OutcomeNone
}
