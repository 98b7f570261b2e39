package lander

import (
	"math"

	"github.com/vovakirdan/tui-lander/internal/core"
)

// Visual characters for rendering
const (
	WallChar  = '█'
	PadChar   = '▀'
	FuelChar  = '▣'
	FlameChar = '*'
)

// headingGlyphs are indexed by octant, counter-clockwise from +x.
var headingGlyphs = [8]rune{'→', '↗', '↑', '↖', '←', '↙', '↓', '↘'}

// cellAspect is how many times taller a terminal cell is than it is wide.
const cellAspect = 2.0

// viewport maps world coordinates (y up) onto a screen area (y down),
// preserving the world's aspect ratio.
type viewport struct {
	world core.Box
	area  core.Rect
	unit  float64 // World units per column; a row spans unit*cellAspect
	padX  int
	padY  int
}

func newViewport(world core.Box, area core.Rect) viewport {
	v := viewport{world: world, area: area, unit: 1}
	if area.W <= 0 || area.H <= 0 || world.Empty() {
		return v
	}
	v.unit = math.Max(world.W/float64(area.W), world.H/(float64(area.H)*cellAspect))
	usedW := int(math.Ceil(world.W / v.unit))
	usedH := int(math.Ceil(world.H / (v.unit * cellAspect)))
	v.padX = core.Max(0, (area.W-usedW)/2)
	v.padY = core.Max(0, (area.H-usedH)/2)
	return v
}

// col converts a world x to a screen column.
func (v viewport) col(x float64) int {
	return v.area.X + v.padX + int(math.Floor((x-v.world.X)/v.unit))
}

// row converts a world y to a screen row.
func (v viewport) row(y float64) int {
	return v.area.Bottom() - 1 - v.padY - int(math.Floor((y-v.world.Y)/(v.unit*cellAspect)))
}

// cell converts a world point to a screen cell.
func (v viewport) cell(p core.Vec2) (int, int) {
	return v.col(p.X), v.row(p.Y)
}

// rect converts a world box to the screen cells it covers. Every non-empty
// box covers at least one cell.
func (v viewport) rect(b core.Box) core.Rect {
	x0 := v.col(b.X)
	x1 := v.area.X + v.padX + int(math.Ceil((b.MaxX()-v.world.X)/v.unit))
	// The top edge itself belongs to the band above.
	top := v.row(math.Nextafter(b.MaxY(), math.Inf(-1)))
	bottom := v.row(b.Y)
	r := core.NewRect(x0, top, x1-x0, bottom-top+1)
	if r.W < 1 {
		r.W = 1
	}
	if r.H < 1 {
		r.H = 1
	}
	return r
}

// clip restricts r to the viewport's screen area.
func (v viewport) clip(r core.Rect) core.Rect {
	x0 := core.Max(r.X, v.area.X)
	y0 := core.Max(r.Y, v.area.Y)
	x1 := min(r.Right(), v.area.Right())
	y1 := min(r.Bottom(), v.area.Bottom())
	if x1 <= x0 || y1 <= y0 {
		return core.Rect{}
	}
	return core.NewRect(x0, y0, x1-x0, y1-y0)
}

// headingGlyph picks the arrow closest to direction d.
func headingGlyph(d core.Vec2) rune {
	a := math.Atan2(d.Y, d.X)
	octant := int(math.Round(a/(math.Pi/4))) % 8
	if octant < 0 {
		octant += 8
	}
	return headingGlyphs[octant]
}

// DrawSnapshot renders a snapshot into dst: the HUD on row 0 and the
// playfield below it.
func DrawSnapshot(dst *core.Screen, snap Snapshot) {
	dst.DrawTextColored(1, 0, snap.HUD(), core.ColorYellow)
	if snap.LevelName != "" {
		name := snap.LevelName
		dst.DrawTextColored(dst.Width()-len([]rune(name))-1, 0, name, core.ColorGray)
	}

	area := core.NewRect(0, 1, dst.Width(), dst.Height()-1)
	if area.W <= 0 || area.H <= 0 {
		return
	}
	vp := newViewport(snap.Bounds.Expand(4), area)

	fill := func(b core.Box, ch rune, c core.Color) {
		if r := vp.clip(vp.rect(b)); r.W > 0 {
			dst.DrawRect(r, ch, c)
		}
	}

	for _, w := range snap.Walls {
		fill(w, WallChar, core.ColorGray)
	}
	fill(snap.Pad, PadChar, core.ColorGreen)
	for _, p := range snap.FuelPacks {
		fill(p, FuelChar, core.ColorOrange)
	}

	heading := snap.Heading()
	x, y := vp.cell(snap.Position)
	dst.SetColored(x, y, headingGlyph(heading), core.ColorBrightWhite)

	if snap.Thrusting {
		tail := core.V(snap.Position.X-heading.X*snap.CraftHalf.Y*2, snap.Position.Y-heading.Y*snap.CraftHalf.Y*2)
		fx, fy := vp.cell(tail)
		if fx == x && fy == y {
			fx -= int(math.Round(heading.X))
			fy += int(math.Round(heading.Y))
		}
		dst.SetColored(fx, fy, FlameChar, core.ColorOrange)
	}
}
