package core

import "testing"

func TestPointerDecoderThirds(t *testing.T) {
	tests := []struct {
		name     string
		x        float64
		expected Intents
	}{
		{"left third rotates left", 10, Intents{RotateLeft: true}},
		{"right third rotates right", 90, Intents{RotateRight: true}},
		{"middle thrusts", 50, Intents{Thrust: true}},
		{"just right of left zone", 34, Intents{Thrust: true}},
		{"just left of right zone", 65, Intents{Thrust: true}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var d PointerDecoder
			d.Handle(PointerEvent{X: tc.x, Width: 100, Down: true, Count: 1})
			if got := d.Intents(); got != tc.expected {
				t.Errorf("Intents() = %+v, expected %+v", got, tc.expected)
			}
		})
	}
}

func TestPointerDecoderMultiTouchThrusts(t *testing.T) {
	var d PointerDecoder

	// Primary pointer in the left third, but two pointers down means thrust.
	d.Handle(PointerEvent{X: 5, Width: 100, Down: true, Count: 2})
	if got := d.Intents(); got != (Intents{Thrust: true}) {
		t.Errorf("multi-touch Intents() = %+v, expected thrust only", got)
	}

	// Lifting one of two pointers releases thrust but not other intents.
	d.Handle(PointerEvent{X: 90, Width: 100, Down: true, Count: 1})
	d.Handle(PointerEvent{X: 5, Width: 100, Down: false, Count: 2})
	if got := d.Intents(); got != (Intents{RotateRight: true}) {
		t.Errorf("after partial release Intents() = %+v, expected rotate right", got)
	}
}

func TestPointerDecoderReleaseClears(t *testing.T) {
	var d PointerDecoder
	d.Handle(PointerEvent{X: 10, Width: 100, Down: true, Count: 1})
	d.Handle(PointerEvent{X: 50, Width: 100, Down: true, Count: 1})

	// Release in the right third with no pointers left clears all intents,
	// including the ones held from other zones.
	d.Handle(PointerEvent{X: 90, Width: 100, Down: false, Count: 0})
	if got := d.Intents(); got != (Intents{}) {
		t.Errorf("Intents() after full release = %+v, expected none", got)
	}
}

func TestIntentsRoundTripThroughFrame(t *testing.T) {
	in := Intents{Thrust: true, RotateRight: true}
	f := NewInputFrame()
	in.Apply(&f)

	if got := IntentsFrom(f); got != in {
		t.Errorf("IntentsFrom() = %+v, expected %+v", got, in)
	}

	f.Clear()
	if got := IntentsFrom(f); got != (Intents{}) {
		t.Errorf("IntentsFrom() after Clear = %+v, expected none", got)
	}
}

func TestActionString(t *testing.T) {
	if ActionThrust.String() != "Thrust" {
		t.Errorf("ActionThrust.String() = %q", ActionThrust.String())
	}
	if Action(99).String() != "Unknown" {
		t.Errorf("unknown action should stringify as Unknown")
	}
}
