package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows the simulation to work with intents rather than raw input.
type Action int

const (
	ActionNone        Action = iota
	ActionThrust             // W, Up, Space - fire the main engine
	ActionRotateLeft         // A, Left - rotate counter-clockwise
	ActionRotateRight        // D, Right - rotate clockwise
	ActionConfirm            // Enter - confirm selection in menu
	ActionBack               // B, Escape - go back to menu
	ActionRestart            // R - restart the flight from level 1
	ActionQuit               // Q, Ctrl+C - exit
	ActionPause              // P - pause/unpause
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionThrust:
		return "Thrust"
	case ActionRotateLeft:
		return "RotateLeft"
	case ActionRotateRight:
		return "RotateRight"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// InputFrame represents the input state during one simulation tick.
// It contains all actions that were active during this frame.
type InputFrame struct {
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as active for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action is active this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

// Intents are the three control flags the simulation consumes per tick.
// They are a read-only snapshot for the duration of one tick.
type Intents struct {
	Thrust      bool
	RotateLeft  bool
	RotateRight bool
}

// IntentsFrom extracts the control intents from an input frame.
func IntentsFrom(f InputFrame) Intents {
	return Intents{
		Thrust:      f.Has(ActionThrust),
		RotateLeft:  f.Has(ActionRotateLeft),
		RotateRight: f.Has(ActionRotateRight),
	}
}

// Apply marks the active intents on an input frame.
func (in Intents) Apply(f *InputFrame) {
	if in.Thrust {
		f.Set(ActionThrust)
	}
	if in.RotateLeft {
		f.Set(ActionRotateLeft)
	}
	if in.RotateRight {
		f.Set(ActionRotateRight)
	}
}
