package lander

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-lander/internal/core"
)

// ScriptStep holds a set of intents for a number of ticks.
type ScriptStep struct {
	Ticks  int  `yaml:"ticks"`
	Thrust bool `yaml:"thrust"`
	Left   bool `yaml:"left"`
	Right  bool `yaml:"right"`
}

// Script is a scripted pilot for headless runs. Steps run in order; after the
// last step the craft coasts with no intents unless Loop is set.
type Script struct {
	TickRate int          `yaml:"tick_rate"` // Ticks per second; 0 means 60
	Loop     bool         `yaml:"loop"`
	Steps    []ScriptStep `yaml:"steps"`
}

// ParseScript decodes a YAML pilot script.
func ParseScript(data []byte) (Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Script{}, fmt.Errorf("lander: parsing script: %w", err)
	}
	for i, st := range s.Steps {
		if st.Ticks <= 0 {
			return Script{}, fmt.Errorf("lander: script step %d: ticks must be positive", i)
		}
	}
	if s.TickRate < 0 {
		return Script{}, fmt.Errorf("lander: script tick_rate must not be negative")
	}
	return s, nil
}

// LoadScript reads a YAML pilot script. An empty path yields an idle script.
func LoadScript(path string) (Script, error) {
	if path == "" {
		return Script{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Script{}, fmt.Errorf("lander: reading script %s: %w", path, err)
	}
	return ParseScript(data)
}

func (s Script) length() int {
	n := 0
	for _, st := range s.Steps {
		n += st.Ticks
	}
	return n
}

// IntentsAt returns the intents for the zero-based tick i.
func (s Script) IntentsAt(i int) core.Intents {
	total := s.length()
	if total == 0 {
		return core.Intents{}
	}
	if i >= total {
		if !s.Loop {
			return core.Intents{}
		}
		i %= total
	}
	for _, st := range s.Steps {
		if i < st.Ticks {
			return core.Intents{Thrust: st.Thrust, RotateLeft: st.Left, RotateRight: st.Right}
		}
		i -= st.Ticks
	}
	return core.Intents{}
}

// Step returns the synthetic clock increment per tick.
func (s Script) Step() time.Duration {
	rate := s.TickRate
	if rate <= 0 {
		rate = 60
	}
	return time.Second / time.Duration(rate)
}

// Run drives a fresh session for ticks ticks, calling fn after each one.
// fn may stop the run early by returning false. Run returns the final session.
func (sim *Simulator) Run(script Script, ticks int, fn func(in core.Intents, now time.Duration, snap Snapshot) bool) Session {
	s := sim.NewSession()
	step := script.Step()
	for i := range ticks {
		in := script.IntentsAt(i)
		now := time.Duration(i) * step
		var snap Snapshot
		s, snap = sim.Tick(s, in, now)
		if fn != nil && !fn(in, now, snap) {
			break
		}
	}
	return s
}
