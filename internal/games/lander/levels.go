package lander

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-lander/internal/core"
)

// MaxFuelPacks is the most fuel packs a single level may hold.
// Pack presence is tracked in a 64-bit set.
const MaxFuelPacks = 64

// Level is one static playfield. It never changes during play.
type Level struct {
	Name          string
	Gravity       core.Vec2 // In gravity units; scaled by Physics.GravityScale
	Walls         []core.Box
	LandingPad    core.Box
	FuelPacks     []core.Box
	StartPosition core.Vec2
	StartRotation float64
}

// Bounds returns the smallest box containing all of the level's geometry
// and its start position.
func (l Level) Bounds() core.Box {
	var b core.Box
	for _, w := range l.Walls {
		b = b.Union(w)
	}
	b = b.Union(l.LandingPad)
	for _, p := range l.FuelPacks {
		b = b.Union(p)
	}
	return b.Union(core.NewBox(l.StartPosition.X, l.StartPosition.Y, 0, 0).Expand(0.5))
}

func (l Level) clone() Level {
	c := l
	c.Walls = append([]core.Box(nil), l.Walls...)
	c.FuelPacks = append([]core.Box(nil), l.FuelPacks...)
	return c
}

// Catalog is an ordered, read-only list of levels.
type Catalog struct {
	levels []Level
	bounds []core.Box
}

// NewCatalog validates the levels and builds a catalog from copies of them.
func NewCatalog(levels []Level) (*Catalog, error) {
	if len(levels) == 0 {
		return nil, ValidationError{Code: "EMPTY_CATALOG", Message: "catalog needs at least one level"}
	}
	c := &Catalog{
		levels: make([]Level, len(levels)),
		bounds: make([]core.Box, len(levels)),
	}
	for i, l := range levels {
		if err := validateLevel(i, l); err != nil {
			return nil, err
		}
		c.levels[i] = l.clone()
		c.bounds[i] = l.Bounds()
	}
	return c, nil
}

// Len returns the number of levels.
func (c *Catalog) Len() int {
	return len(c.levels)
}

// Level returns a copy of level i.
func (c *Catalog) Level(i int) Level {
	return c.levels[i].clone()
}

// Bounds returns the precomputed bounds of level i.
func (c *Catalog) Bounds(i int) core.Box {
	return c.bounds[i]
}

// at returns the stored level without copying. Callers must not modify it.
func (c *Catalog) at(i int) *Level {
	return &c.levels[i]
}

// Levels returns copies of all levels in order.
func (c *Catalog) Levels() []Level {
	out := make([]Level, len(c.levels))
	for i := range c.levels {
		out[i] = c.levels[i].clone()
	}
	return out
}

// BuiltinLevels returns the two stock levels.
func BuiltinLevels() []Level {
	return []Level{
		{
			Name:    "Shaft",
			Gravity: core.V(0, -1.4),
			Walls: []core.Box{
				core.NewBox(0, 0, 20, 200),
				core.NewBox(180, 0, 20, 200),
			},
			LandingPad:    core.NewBox(80, 10, 60, 10),
			FuelPacks:     []core.Box{core.NewBox(110, 140, 16, 16)},
			StartPosition: core.V(100, 160),
			StartRotation: math.Pi / 2,
		},
		{
			Name:    "Crosswind",
			Gravity: core.V(0.4, -1.6),
			Walls: []core.Box{
				core.NewBox(0, 0, 20, 260),
				core.NewBox(200, 40, 20, 220),
				core.NewBox(80, 80, 80, 20),
			},
			LandingPad:    core.NewBox(30, 30, 50, 10),
			FuelPacks:     []core.Box{core.NewBox(150, 180, 16, 16)},
			StartPosition: core.V(140, 220),
			StartRotation: math.Pi / 2,
		},
	}
}

// BuiltinCatalog returns the stock catalog.
func BuiltinCatalog() *Catalog {
	c, err := NewCatalog(BuiltinLevels())
	if err != nil {
		panic(fmt.Sprintf("lander: builtin catalog is invalid: %v", err))
	}
	return c
}

// ValidationError contains details about a rejected level definition.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func validateLevel(i int, l Level) error {
	if l.LandingPad.Empty() {
		return ValidationError{
			Code:    "EMPTY_PAD",
			Message: fmt.Sprintf("level %d: landing pad must have positive size", i),
		}
	}
	for j, w := range l.Walls {
		if w.Empty() {
			return ValidationError{
				Code:    "EMPTY_WALL",
				Message: fmt.Sprintf("level %d: wall %d must have positive size", i, j),
			}
		}
	}
	if len(l.FuelPacks) > MaxFuelPacks {
		return ValidationError{
			Code:    "TOO_MANY_PACKS",
			Message: fmt.Sprintf("level %d: %d fuel packs, at most %d allowed", i, len(l.FuelPacks), MaxFuelPacks),
		}
	}
	for j, p := range l.FuelPacks {
		if p.Empty() {
			return ValidationError{
				Code:    "EMPTY_PACK",
				Message: fmt.Sprintf("level %d: fuel pack %d must have positive size", i, j),
			}
		}
	}
	for _, v := range []float64{l.Gravity.X, l.Gravity.Y, l.StartPosition.X, l.StartPosition.Y, l.StartRotation} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return ValidationError{
				Code:    "NOT_FINITE",
				Message: fmt.Sprintf("level %d: gravity, start position and rotation must be finite", i),
			}
		}
	}
	return nil
}

// File formats. Boxes and vectors use lowercase keys in both YAML and JSON.

type catalogFile struct {
	Levels []levelFile `yaml:"levels" json:"levels"`
}

type levelFile struct {
	Name          string    `yaml:"name" json:"name"`
	Gravity       vecFile   `yaml:"gravity" json:"gravity"`
	Walls         []boxFile `yaml:"walls" json:"walls"`
	LandingPad    boxFile   `yaml:"landing_pad" json:"landing_pad"`
	FuelPacks     []boxFile `yaml:"fuel_packs" json:"fuel_packs"`
	StartPosition vecFile   `yaml:"start_position" json:"start_position"`
	StartRotation float64   `yaml:"start_rotation" json:"start_rotation"`
}

type vecFile struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
}

type boxFile struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
	W float64 `yaml:"w" json:"w"`
	H float64 `yaml:"h" json:"h"`
}

func toBoxFiles(bs []core.Box) []boxFile {
	out := make([]boxFile, len(bs))
	for i, b := range bs {
		out[i] = boxFile{X: b.X, Y: b.Y, W: b.W, H: b.H}
	}
	return out
}

func fromBoxFiles(bs []boxFile) []core.Box {
	out := make([]core.Box, len(bs))
	for i, b := range bs {
		out[i] = core.NewBox(b.X, b.Y, b.W, b.H)
	}
	return out
}

func (c *Catalog) toFile() catalogFile {
	f := catalogFile{Levels: make([]levelFile, len(c.levels))}
	for i, l := range c.levels {
		f.Levels[i] = levelFile{
			Name:          l.Name,
			Gravity:       vecFile{X: l.Gravity.X, Y: l.Gravity.Y},
			Walls:         toBoxFiles(l.Walls),
			LandingPad:    boxFile{X: l.LandingPad.X, Y: l.LandingPad.Y, W: l.LandingPad.W, H: l.LandingPad.H},
			FuelPacks:     toBoxFiles(l.FuelPacks),
			StartPosition: vecFile{X: l.StartPosition.X, Y: l.StartPosition.Y},
			StartRotation: l.StartRotation,
		}
	}
	return f
}

func (f catalogFile) toLevels() []Level {
	levels := make([]Level, len(f.Levels))
	for i, lf := range f.Levels {
		levels[i] = Level{
			Name:          lf.Name,
			Gravity:       core.V(lf.Gravity.X, lf.Gravity.Y),
			Walls:         fromBoxFiles(lf.Walls),
			LandingPad:    core.NewBox(lf.LandingPad.X, lf.LandingPad.Y, lf.LandingPad.W, lf.LandingPad.H),
			FuelPacks:     fromBoxFiles(lf.FuelPacks),
			StartPosition: core.V(lf.StartPosition.X, lf.StartPosition.Y),
			StartRotation: lf.StartRotation,
		}
	}
	return levels
}

// ParseCatalogYAML decodes and validates a catalog from YAML.
func ParseCatalogYAML(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("lander: parsing catalog: %w", err)
	}
	return NewCatalog(f.toLevels())
}

// LoadCatalog reads a YAML catalog file. An empty path yields the builtin catalog.
func LoadCatalog(path string) (*Catalog, error) {
	if path == "" {
		return BuiltinCatalog(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("lander: reading catalog %s: %w", path, err)
	}
	cat, err := ParseCatalogYAML(data)
	if err != nil {
		return nil, fmt.Errorf("lander: loading %s: %w", path, err)
	}
	return cat, nil
}

// EncodeYAML encodes the catalog in the same format LoadCatalog reads.
func (c *Catalog) EncodeYAML() ([]byte, error) {
	return yaml.Marshal(c.toFile())
}

// EncodeJSON encodes the catalog as indented JSON.
func (c *Catalog) EncodeJSON() ([]byte, error) {
	return json.MarshalIndent(c.toFile(), "", "  ")
}
