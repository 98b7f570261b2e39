// Package config provides YAML-based configuration loading and difficulty
// presets for the lander.
package config

import "fmt"

// LanderConfig contains all tunables for the lander simulation.
type LanderConfig struct {
	Physics  LanderPhysics  `yaml:"physics"`
	Craft    LanderCraft    `yaml:"craft"`
	Gameplay LanderGameplay `yaml:"gameplay"`
	Input    LanderInput    `yaml:"input"`
}

// LanderPhysics defines integrator parameters.
// Damping factors are exponential decay rates per second.
type LanderPhysics struct {
	ThrustForce    float64 `yaml:"thrust_force"`
	Mass           float64 `yaml:"mass"`
	GravityScale   float64 `yaml:"gravity_scale"`  // World units/s² per unit of level gravity
	RotationSpeed  float64 `yaml:"rotation_speed"` // Radians per second
	FuelBurnRate   float64 `yaml:"fuel_burn_rate"` // Fuel units per second of thrust
	LinearDamping  float64 `yaml:"linear_damping"`
	AngularDamping float64 `yaml:"angular_damping"`
	FallbackDT     float64 `yaml:"fallback_dt"`     // dt used on the first tick
	MaxFrameDelta  float64 `yaml:"max_frame_delta"` // Upper bound on dt; 0 disables
}

// LanderCraft defines the craft's body size in world units.
type LanderCraft struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// LanderGameplay defines the rules of the lives/fuel state machine.
type LanderGameplay struct {
	Lives          int     `yaml:"lives"`
	MaxFuel        float64 `yaml:"max_fuel"`
	FuelPackAmount float64 `yaml:"fuel_pack_amount"`
	BoundsMargin   float64 `yaml:"bounds_margin"` // Distance past level geometry that counts as lost
}

// LanderInput defines how terminal key presses become held intents.
type LanderInput struct {
	HoldMillis int `yaml:"hold_ms"`
}

// Validate checks that the configuration can drive the simulation.
func (c LanderConfig) Validate() error {
	switch {
	case c.Physics.Mass <= 0:
		return fmt.Errorf("config: physics.mass must be positive, got %v", c.Physics.Mass)
	case c.Physics.FallbackDT <= 0:
		return fmt.Errorf("config: physics.fallback_dt must be positive, got %v", c.Physics.FallbackDT)
	case c.Physics.MaxFrameDelta < 0:
		return fmt.Errorf("config: physics.max_frame_delta must not be negative, got %v", c.Physics.MaxFrameDelta)
	case c.Physics.LinearDamping < 0 || c.Physics.AngularDamping < 0:
		return fmt.Errorf("config: damping must not be negative")
	case c.Physics.FuelBurnRate < 0:
		return fmt.Errorf("config: physics.fuel_burn_rate must not be negative, got %v", c.Physics.FuelBurnRate)
	case c.Craft.Width <= 0 || c.Craft.Height <= 0:
		return fmt.Errorf("config: craft size must be positive, got %vx%v", c.Craft.Width, c.Craft.Height)
	case c.Gameplay.Lives < 0:
		return fmt.Errorf("config: gameplay.lives must not be negative, got %d", c.Gameplay.Lives)
	case c.Gameplay.MaxFuel <= 0:
		return fmt.Errorf("config: gameplay.max_fuel must be positive, got %v", c.Gameplay.MaxFuel)
	case c.Input.HoldMillis < 0:
		return fmt.Errorf("config: input.hold_ms must not be negative, got %d", c.Input.HoldMillis)
	}
	return nil
}
