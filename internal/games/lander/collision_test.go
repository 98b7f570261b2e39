package lander

import (
	"math"
	"testing"

	"github.com/vovakirdan/tui-lander/internal/core"
)

var craftHalf = core.V(12, 16)

func TestDetectBuiltinLevel(t *testing.T) {
	lvl := BuiltinLevels()[0]
	all := FullPackSet(len(lvl.FuelPacks))

	tests := []struct {
		name     string
		pos      core.Vec2
		rotation float64
		packs    PackSet
		want     Contact
	}{
		{"open air", core.V(50, 100), 0, all, Contact{Kind: ContactNone}},
		{"left wall", core.V(25, 100), 0, all, Contact{Kind: ContactWall}},
		{"touching wall edge", core.V(32, 100), 0, all, Contact{Kind: ContactNone}},
		{"rotated body reaches wall", core.V(34, 100), math.Pi / 2, all, Contact{Kind: ContactWall}},
		{"upright body clears wall", core.V(34, 100), 0, all, Contact{Kind: ContactNone}},
		{"landing pad", core.V(100, 30), 0, all, Contact{Kind: ContactLandingPad}},
		{"fuel pack", core.V(118, 148), 0, all, Contact{Kind: ContactFuelPack, PackID: 0}},
		{"collected fuel pack", core.V(118, 148), 0, all.Without(0), Contact{Kind: ContactNone}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Detect(tt.pos, craftHalf, tt.rotation, lvl, tt.packs, core.Box{})
			if got != tt.want {
				t.Errorf("Detect() = %v, expected %v", got, tt.want)
			}
		})
	}
}

func TestDetectPriority(t *testing.T) {
	overlap := core.NewBox(90, 90, 20, 20)
	pos := core.V(100, 100)

	tests := []struct {
		name string
		lvl  Level
		want ContactKind
	}{
		{
			name: "wall over pad and pack",
			lvl:  Level{Walls: []core.Box{overlap}, LandingPad: overlap, FuelPacks: []core.Box{overlap}},
			want: ContactWall,
		},
		{
			name: "pad over pack",
			lvl:  Level{LandingPad: overlap, FuelPacks: []core.Box{overlap}},
			want: ContactLandingPad,
		},
		{
			name: "pack alone",
			lvl:  Level{LandingPad: core.NewBox(0, 0, 1, 1), FuelPacks: []core.Box{overlap}},
			want: ContactFuelPack,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			packs := FullPackSet(len(tt.lvl.FuelPacks))
			got := Detect(pos, craftHalf, 0, tt.lvl, packs, core.Box{})
			if got.Kind != tt.want {
				t.Errorf("Detect() = %v, expected %v", got.Kind, tt.want)
			}
		})
	}
}

func TestDetectLowestPackWins(t *testing.T) {
	lvl := Level{
		LandingPad: core.NewBox(0, 0, 1, 1),
		FuelPacks: []core.Box{
			core.NewBox(500, 500, 10, 10), // far away
			core.NewBox(95, 95, 10, 10),
			core.NewBox(100, 100, 10, 10),
		},
	}
	pos := core.V(100, 100)

	got := Detect(pos, craftHalf, 0, lvl, FullPackSet(3), core.Box{})
	if got.Kind != ContactFuelPack || got.PackID != 1 {
		t.Errorf("Detect() = %v, expected fuel_pack#1", got)
	}

	got = Detect(pos, craftHalf, 0, lvl, FullPackSet(3).Without(1), core.Box{})
	if got.Kind != ContactFuelPack || got.PackID != 2 {
		t.Errorf("Detect() with pack 1 gone = %v, expected fuel_pack#2", got)
	}
}

func TestDetectOutOfBounds(t *testing.T) {
	cat := BuiltinCatalog()
	lvl := cat.Level(0)
	bounds := cat.Bounds(0).Expand(120)

	tests := []struct {
		name string
		pos  core.Vec2
		want ContactKind
	}{
		{"inside", core.V(100, 100), ContactNone},
		{"inside margin", core.V(100, -50), ContactNone},
		{"fell below", core.V(100, -500), ContactWall},
		{"drifted right", core.V(900, 100), ContactWall},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Detect(tt.pos, craftHalf, 0, lvl, FullPackSet(1), bounds)
			if got.Kind != tt.want {
				t.Errorf("Detect() = %v, expected %v", got.Kind, tt.want)
			}
		})
	}

	// An empty bounds box disables the check
	if got := Detect(core.V(100, -500), craftHalf, 0, lvl, FullPackSet(1), core.Box{}); got.Kind != ContactNone {
		t.Errorf("Detect() without bounds = %v, expected none", got.Kind)
	}
}

func TestDetectDoesNotMutateLevel(t *testing.T) {
	lvl := BuiltinLevels()[0]
	before := lvl.clone()
	packs := FullPackSet(1)

	Detect(core.V(118, 148), craftHalf, 0, lvl, packs, core.Box{})

	if packs != FullPackSet(1) {
		t.Error("Detect() changed pack set")
	}
	if len(lvl.FuelPacks) != len(before.FuelPacks) || lvl.FuelPacks[0] != before.FuelPacks[0] {
		t.Error("Detect() changed level fuel packs")
	}
}

func TestPackSet(t *testing.T) {
	s := FullPackSet(3)
	if s.Count() != 3 {
		t.Errorf("Count() = %d, expected 3", s.Count())
	}
	for id := range 3 {
		if !s.Has(id) {
			t.Errorf("Has(%d) = false, expected true", id)
		}
	}
	if s.Has(3) || s.Has(-1) || s.Has(MaxFuelPacks) {
		t.Error("Has() reported a pack outside the set")
	}

	without := s.Without(1)
	if without.Has(1) || without.Count() != 2 {
		t.Errorf("Without(1) = %b", without)
	}
	if !s.Has(1) {
		t.Error("Without() mutated the receiver")
	}

	if FullPackSet(MaxFuelPacks).Count() != MaxFuelPacks {
		t.Error("FullPackSet(MaxFuelPacks) should hold every pack")
	}
	if FullPackSet(0) != 0 {
		t.Error("FullPackSet(0) should be empty")
	}
}
