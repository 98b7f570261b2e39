package config

import "fmt"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset converts a CLI value into a preset.
// An empty string means "no preset" and is not an error.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(s) {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard:
		return DifficultyPreset(s), nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", s)
	}
}

// presetScale holds multipliers applied to the engine by a preset.
type presetScale struct {
	thrust float64
	burn   float64
}

func scaleForPreset(preset DifficultyPreset) presetScale {
	switch preset {
	case DifficultyEasy:
		return presetScale{thrust: 1.2, burn: 0.6}
	case DifficultyHard:
		return presetScale{thrust: 0.85, burn: 1.4}
	default:
		return presetScale{thrust: 1, burn: 1}
	}
}

// ApplyLanderPreset modifies the config based on a difficulty preset.
// Only engine feel changes; lives and fuel rules stay as configured.
func ApplyLanderPreset(cfg *LanderConfig, preset DifficultyPreset) {
	s := scaleForPreset(preset)
	cfg.Physics.ThrustForce *= s.thrust
	cfg.Physics.FuelBurnRate *= s.burn
}
