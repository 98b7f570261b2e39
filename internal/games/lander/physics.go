package lander

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/vovakirdan/tui-lander/internal/config"
	"github.com/vovakirdan/tui-lander/internal/core"
)

// Craft is the player's ship.
type Craft struct {
	Position        core.Vec2
	Velocity        core.Vec2
	Rotation        float64 // Radians; the nose points along Rotation + π/2
	AngularVelocity float64
	Fuel            float64
	Alive           bool
}

// Heading returns the unit vector the engine pushes along.
func (c Craft) Heading() core.Vec2 {
	a := c.Rotation + math.Pi/2
	return core.V(math.Cos(a), math.Sin(a))
}

// Physics holds the integrator constants.
type Physics struct {
	ThrustForce    float64
	Mass           float64
	GravityScale   float64
	RotationSpeed  float64
	FuelBurnRate   float64
	LinearDamping  float64
	AngularDamping float64
	MaxFuel        float64
}

// PhysicsFrom extracts integrator constants from a configuration.
func PhysicsFrom(cfg config.LanderConfig) Physics {
	return Physics{
		ThrustForce:    cfg.Physics.ThrustForce,
		Mass:           cfg.Physics.Mass,
		GravityScale:   cfg.Physics.GravityScale,
		RotationSpeed:  cfg.Physics.RotationSpeed,
		FuelBurnRate:   cfg.Physics.FuelBurnRate,
		LinearDamping:  cfg.Physics.LinearDamping,
		AngularDamping: cfg.Physics.AngularDamping,
		MaxFuel:        cfg.Gameplay.MaxFuel,
	}
}

// DefaultPhysics returns the stock integrator constants.
func DefaultPhysics() Physics {
	return PhysicsFrom(config.DefaultLanderConfig())
}

// Advance integrates the craft forward by dt seconds.
//
// Thrust is applied along the heading at the start of the step and only while
// fuel remains. Rotation intents turn the craft directly rather than through
// torque, so they take effect in the same step. Velocity uses semi-implicit
// Euler with exponential damping. A non-positive dt returns c unchanged.
func Advance(c Craft, gravity core.Vec2, in core.Intents, dt float64, p Physics) Craft {
	if dt <= 0 {
		return c
	}

	acc := r2.Scale(p.GravityScale, gravity)
	if in.Thrust && c.Fuel > 0 {
		acc = r2.Add(acc, r2.Scale(p.ThrustForce/p.Mass, c.Heading()))
		c.Fuel = core.ClampF(c.Fuel-p.FuelBurnRate*dt, 0, p.MaxFuel)
	}

	if in.RotateLeft {
		c.Rotation += p.RotationSpeed * dt
	}
	if in.RotateRight {
		c.Rotation -= p.RotationSpeed * dt
	}

	c.Velocity = r2.Scale(math.Exp(-p.LinearDamping*dt), r2.Add(c.Velocity, r2.Scale(dt, acc)))
	c.Position = r2.Add(c.Position, r2.Scale(dt, c.Velocity))

	c.AngularVelocity *= math.Exp(-p.AngularDamping * dt)
	c.Rotation += c.AngularVelocity * dt

	return c
}
