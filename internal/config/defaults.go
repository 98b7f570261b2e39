package config

import (
	_ "embed"
)

//go:embed defaults/lander.yaml
var defaultLanderYAML []byte

// DefaultLanderConfig returns the built-in lander configuration.
// It mirrors defaults/lander.yaml and backs it up if the embed cannot be parsed.
func DefaultLanderConfig() LanderConfig {
	return LanderConfig{
		Physics: LanderPhysics{
			ThrustForce:    28,
			Mass:           0.5,
			GravityScale:   20,
			RotationSpeed:  2.5,
			FuelBurnRate:   16,
			LinearDamping:  0.3,
			AngularDamping: 0.8,
			FallbackDT:     1.0 / 60.0,
			MaxFrameDelta:  0.1,
		},
		Craft: LanderCraft{
			Width:  24,
			Height: 32,
		},
		Gameplay: LanderGameplay{
			Lives:          3,
			MaxFuel:        100,
			FuelPackAmount: 30,
			BoundsMargin:   120,
		},
		Input: LanderInput{
			HoldMillis: 150,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultLanderYAML
}
