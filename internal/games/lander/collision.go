package lander

import (
	"fmt"

	"github.com/vovakirdan/tui-lander/internal/core"
)

// ContactKind classifies what the craft touched this tick.
type ContactKind int

const (
	ContactNone ContactKind = iota
	ContactWall
	ContactLandingPad
	ContactFuelPack
)

// String returns the kind's name.
func (k ContactKind) String() string {
	switch k {
	case ContactNone:
		return "none"
	case ContactWall:
		return "wall"
	case ContactLandingPad:
		return "landing_pad"
	case ContactFuelPack:
		return "fuel_pack"
	default:
		return "unknown"
	}
}

// Contact is the single classified contact of a tick.
// PackID is meaningful only for ContactFuelPack.
type Contact struct {
	Kind   ContactKind
	PackID int
}

func (c Contact) String() string {
	if c.Kind == ContactFuelPack {
		return fmt.Sprintf("fuel_pack#%d", c.PackID)
	}
	return c.Kind.String()
}

// PackSet records which fuel packs of the current level are still present.
// Bit i is set while pack i is available. Values are never mutated in place.
type PackSet uint64

// FullPackSet returns a set with packs 0..n-1 present.
func FullPackSet(n int) PackSet {
	if n >= MaxFuelPacks {
		return PackSet(^uint64(0))
	}
	return PackSet(uint64(1)<<uint(n) - 1)
}

// Has reports whether pack id is present.
func (s PackSet) Has(id int) bool {
	if id < 0 || id >= MaxFuelPacks {
		return false
	}
	return s&(1<<uint(id)) != 0
}

// Without returns a copy of the set with pack id removed.
func (s PackSet) Without(id int) PackSet {
	if id < 0 || id >= MaxFuelPacks {
		return s
	}
	return s &^ (1 << uint(id))
}

// Count returns the number of present packs.
func (s PackSet) Count() int {
	n := 0
	for v := uint64(s); v != 0; v &= v - 1 {
		n++
	}
	return n
}

// CraftBox returns the axis-aligned box bounding a craft body with half
// extents half rotated to rotation.
func CraftBox(pos, half core.Vec2, rotation float64) core.Box {
	return core.BoxAround(pos, core.RotatedHalfExtents(half, rotation))
}

// Detect classifies the craft's contact with the level.
//
// Walls win over the landing pad, which wins over fuel packs; among fuel
// packs the lowest id wins. Only packs present in packs are considered.
// A craft entirely outside bounds counts as a wall hit. An empty bounds box
// disables that check.
func Detect(pos, half core.Vec2, rotation float64, lvl Level, packs PackSet, bounds core.Box) Contact {
	body := CraftBox(pos, half, rotation)

	for _, w := range lvl.Walls {
		if body.Intersects(w) {
			return Contact{Kind: ContactWall}
		}
	}
	if !bounds.Empty() && !body.Intersects(bounds) {
		return Contact{Kind: ContactWall}
	}

	if body.Intersects(lvl.LandingPad) {
		return Contact{Kind: ContactLandingPad}
	}

	for id, p := range lvl.FuelPacks {
		if packs.Has(id) && body.Intersects(p) {
			return Contact{Kind: ContactFuelPack, PackID: id}
		}
	}

	return Contact{Kind: ContactNone}
}
