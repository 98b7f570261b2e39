// Package core provides fundamental types and utilities for the lander.
// It contains no Bubble Tea dependency so that the simulation stays pure and
// testable; world math is built on gonum's r2 vectors.
package core

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Vec2 is a point or direction in world space.
type Vec2 = r2.Vec

// V builds a Vec2.
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Box is an axis-aligned rectangle in world space.
// (X, Y) is the bottom-left corner; Y grows upward.
type Box struct {
	X, Y float64
	W, H float64
}

// NewBox creates a box from its bottom-left corner and size.
func NewBox(x, y, w, h float64) Box {
	return Box{X: x, Y: y, W: w, H: h}
}

// BoxAround creates a box centered on c with the given half extents.
func BoxAround(c, half Vec2) Box {
	return Box{X: c.X - half.X, Y: c.Y - half.Y, W: 2 * half.X, H: 2 * half.Y}
}

// MaxX returns the x-coordinate of the right edge.
func (b Box) MaxX() float64 {
	return b.X + b.W
}

// MaxY returns the y-coordinate of the top edge.
func (b Box) MaxY() float64 {
	return b.Y + b.H
}

// Center returns the midpoint of the box.
func (b Box) Center() Vec2 {
	return V(b.X+b.W/2, b.Y+b.H/2)
}

// Empty reports whether the box has no area.
func (b Box) Empty() bool {
	return b.W <= 0 || b.H <= 0
}

// Intersects reports whether two boxes overlap.
// Boxes that only share an edge do not intersect.
func (b Box) Intersects(o Box) bool {
	if b.X >= o.MaxX() || o.X >= b.MaxX() {
		return false
	}
	if b.Y >= o.MaxY() || o.Y >= b.MaxY() {
		return false
	}
	return true
}

// Union returns the smallest box containing both boxes.
// An empty receiver is ignored.
func (b Box) Union(o Box) Box {
	if b.Empty() {
		return o
	}
	minX := math.Min(b.X, o.X)
	minY := math.Min(b.Y, o.Y)
	maxX := math.Max(b.MaxX(), o.MaxX())
	maxY := math.Max(b.MaxY(), o.MaxY())
	return Box{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// Expand grows the box by m on every side.
func (b Box) Expand(m float64) Box {
	return Box{X: b.X - m, Y: b.Y - m, W: b.W + 2*m, H: b.H + 2*m}
}

// RotatedHalfExtents returns the half extents of the axis-aligned box that
// bounds a rectangle with half extents half rotated by angle radians.
func RotatedHalfExtents(half Vec2, angle float64) Vec2 {
	c := math.Abs(math.Cos(angle))
	s := math.Abs(math.Sin(angle))
	return V(c*half.X+s*half.Y, s*half.X+c*half.Y)
}

// Rect is an axis-aligned rectangle in screen cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
