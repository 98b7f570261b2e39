package lander

import (
	"fmt"

	"github.com/vovakirdan/tui-lander/internal/core"
)

// Snapshot is a read-only view of a session after a tick, for renderers and
// telemetry. Slices are owned by the snapshot.
type Snapshot struct {
	Tick        uint64
	Position    core.Vec2
	Velocity    core.Vec2
	Rotation    float64
	CraftHalf   core.Vec2
	Fuel        float64
	FuelDisplay int
	Lives       int
	LevelIndex  int
	LevelNumber int // 1-based
	LevelName   string
	Landings    int
	Walls       []core.Box
	Pad         core.Box
	FuelPacks   []core.Box // Present packs only
	Bounds      core.Box
	Thrusting   bool
	Contact     Contact
	Outcome     Outcome
}

// HUD returns the status line shown above the playfield.
func (s Snapshot) HUD() string {
	return fmt.Sprintf("Fuel: %d  Lives: %d  Level: %d", s.FuelDisplay, s.Lives, s.LevelNumber)
}

// Heading returns the unit vector the craft's nose points along.
func (s Snapshot) Heading() core.Vec2 {
	return Craft{Rotation: s.Rotation}.Heading()
}

// Snapshot builds a view of s without advancing it.
func (sim *Simulator) Snapshot(s Session) Snapshot {
	return sim.snapshot(s, false, Contact{}, OutcomeNone)
}

func (sim *Simulator) snapshot(s Session, thrusting bool, c Contact, o Outcome) Snapshot {
	lvl := sim.catalog.at(s.LevelIndex)

	packs := make([]core.Box, 0, len(lvl.FuelPacks))
	for id, p := range lvl.FuelPacks {
		if s.FuelPacks.Has(id) {
			packs = append(packs, p)
		}
	}

	return Snapshot{
		Tick:        s.Tick,
		Position:    s.Craft.Position,
		Velocity:    s.Craft.Velocity,
		Rotation:    s.Craft.Rotation,
		CraftHalf:   sim.craftHalf,
		Fuel:        s.Craft.Fuel,
		FuelDisplay: int(s.Craft.Fuel),
		Lives:       s.Lives,
		LevelIndex:  s.LevelIndex,
		LevelNumber: s.LevelIndex + 1,
		LevelName:   lvl.Name,
		Landings:    s.Landings,
		Walls:       append([]core.Box(nil), lvl.Walls...),
		Pad:         lvl.LandingPad,
		FuelPacks:   packs,
		Bounds:      sim.catalog.Bounds(s.LevelIndex),
		Thrusting:   thrusting,
		Contact:     c,
		Outcome:     o,
	}
}
