package core

// Screen partition for pointer input: the left third rotates left, the right
// third rotates right, the middle thrusts.
const (
	PointerLeftZone  = 0.33
	PointerRightZone = 0.66
)

// PointerEvent is one press/drag/release from a touch screen or mouse.
type PointerEvent struct {
	X     float64 // Horizontal position of the primary pointer
	Width float64 // Width of the input surface
	Down  bool    // Pressed or dragging (false on release/cancel)
	Count int     // Pointers active in this event, including the primary one
}

// PointerDecoder turns pointer events into held intents.
// The zero value has no intents set.
type PointerDecoder struct {
	intents Intents
}

// Handle updates the held intents from a pointer event.
// Two or more pointers always drive the thrust; a single pointer is routed
// by horizontal screen third. A release with no pointers left clears everything.
func (d *PointerDecoder) Handle(ev PointerEvent) {
	if ev.Count >= 2 {
		d.intents.Thrust = ev.Down
	} else {
		switch {
		case ev.X < ev.Width*PointerLeftZone:
			d.intents.RotateLeft = ev.Down
		case ev.X > ev.Width*PointerRightZone:
			d.intents.RotateRight = ev.Down
		default:
			d.intents.Thrust = ev.Down
		}
	}

	if !ev.Down && ev.Count == 0 {
		d.intents = Intents{}
	}
}

// Intents returns the currently held intents.
func (d *PointerDecoder) Intents() Intents {
	return d.intents
}

// Reset drops all held intents.
func (d *PointerDecoder) Reset() {
	d.intents = Intents{}
}
