package lander

import (
	"math"
	"testing"

	"github.com/vovakirdan/tui-lander/internal/core"
)

const eps = 1e-9

func approx(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func TestAdvanceNonPositiveDT(t *testing.T) {
	c := Craft{Position: core.V(10, 20), Velocity: core.V(1, 2), Rotation: 0.3, AngularVelocity: 1, Fuel: 50, Alive: true}
	in := core.Intents{Thrust: true, RotateLeft: true}

	for _, dt := range []float64{0, -0.016} {
		got := Advance(c, core.V(0, -1.4), in, dt, DefaultPhysics())
		if got != c {
			t.Errorf("Advance(dt=%v) changed craft: %+v", dt, got)
		}
	}
}

func TestAdvanceFreeFall(t *testing.T) {
	p := DefaultPhysics()
	dt := 1.0 / 60.0
	c := Craft{Position: core.V(100, 160), Fuel: 100}

	got := Advance(c, core.V(0, -1.4), core.Intents{}, dt, p)

	wantVY := (0 + -1.4*p.GravityScale*dt) * math.Exp(-p.LinearDamping*dt)
	if !approx(got.Velocity.Y, wantVY) {
		t.Errorf("vy = %v, expected %v", got.Velocity.Y, wantVY)
	}
	if !approx(got.Position.Y, 160+wantVY*dt) {
		t.Errorf("y = %v, expected %v", got.Position.Y, 160+wantVY*dt)
	}
	if got.Velocity.X != 0 || got.Position.X != 100 {
		t.Errorf("vertical gravity moved craft sideways: %+v", got)
	}
	if got.Fuel != 100 {
		t.Errorf("fuel = %v without thrust, expected 100", got.Fuel)
	}
}

func TestAdvanceThrustDirection(t *testing.T) {
	p := DefaultPhysics()
	dt := 0.1

	tests := []struct {
		name     string
		rotation float64
		wantX    float64 // sign of resulting vx
		wantY    float64 // sign of resulting vy
	}{
		{"nose up", 0, 0, 1},
		{"nose left", math.Pi / 2, -1, 0},
		{"nose down", math.Pi, 0, -1},
		{"nose right", -math.Pi / 2, 1, 0},
	}

	sign := func(v float64) float64 {
		if math.Abs(v) < 1e-6 {
			return 0
		}
		return math.Copysign(1, v)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Craft{Rotation: tt.rotation, Fuel: 100}
			got := Advance(c, core.V(0, 0), core.Intents{Thrust: true}, dt, p)
			if sign(got.Velocity.X) != tt.wantX || sign(got.Velocity.Y) != tt.wantY {
				t.Errorf("velocity = %+v, expected signs (%v, %v)", got.Velocity, tt.wantX, tt.wantY)
			}
			speed := math.Hypot(got.Velocity.X, got.Velocity.Y)
			want := p.ThrustForce / p.Mass * dt * math.Exp(-p.LinearDamping*dt)
			if math.Abs(speed-want) > 1e-6 {
				t.Errorf("speed = %v, expected %v", speed, want)
			}
		})
	}
}

func TestAdvanceFuelBurn(t *testing.T) {
	p := DefaultPhysics()

	tests := []struct {
		name     string
		fuel     float64
		thrust   bool
		dt       float64
		wantFuel float64
		wantPush bool
	}{
		{"burns at rate", 100, true, 0.5, 100 - p.FuelBurnRate*0.5, true},
		{"clamps at zero", 0.1, true, 0.1, 0, true},
		{"empty tank has no thrust", 0, true, 0.1, 0, false},
		{"no thrust no burn", 40, false, 0.1, 40, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Craft{Fuel: tt.fuel}
			got := Advance(c, core.V(0, 0), core.Intents{Thrust: tt.thrust}, tt.dt, p)
			if !approx(got.Fuel, tt.wantFuel) {
				t.Errorf("fuel = %v, expected %v", got.Fuel, tt.wantFuel)
			}
			pushed := got.Velocity.Y > 0
			if pushed != tt.wantPush {
				t.Errorf("pushed = %v, expected %v", pushed, tt.wantPush)
			}
			if got.Fuel < 0 || got.Fuel > p.MaxFuel {
				t.Errorf("fuel %v outside [0, %v]", got.Fuel, p.MaxFuel)
			}
		})
	}
}

func TestAdvanceRotation(t *testing.T) {
	p := DefaultPhysics()
	dt := 0.2

	tests := []struct {
		name string
		in   core.Intents
		want float64
	}{
		{"left", core.Intents{RotateLeft: true}, 1 + p.RotationSpeed*dt},
		{"right", core.Intents{RotateRight: true}, 1 - p.RotationSpeed*dt},
		{"both cancel", core.Intents{RotateLeft: true, RotateRight: true}, 1},
		{"none", core.Intents{}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Advance(Craft{Rotation: 1}, core.V(0, 0), tt.in, dt, p)
			if !approx(got.Rotation, tt.want) {
				t.Errorf("rotation = %v, expected %v", got.Rotation, tt.want)
			}
		})
	}
}

func TestAdvanceDamping(t *testing.T) {
	p := DefaultPhysics()
	dt := 0.25
	c := Craft{Velocity: core.V(10, 0), AngularVelocity: 2}

	got := Advance(c, core.V(0, 0), core.Intents{}, dt, p)

	if want := 10 * math.Exp(-p.LinearDamping*dt); !approx(got.Velocity.X, want) {
		t.Errorf("vx = %v, expected %v", got.Velocity.X, want)
	}
	wantW := 2 * math.Exp(-p.AngularDamping*dt)
	if !approx(got.AngularVelocity, wantW) {
		t.Errorf("angular velocity = %v, expected %v", got.AngularVelocity, wantW)
	}
	if !approx(got.Rotation, wantW*dt) {
		t.Errorf("rotation = %v, expected %v", got.Rotation, wantW*dt)
	}
}

func TestAdvanceDeterminism(t *testing.T) {
	p := DefaultPhysics()
	run := func() Craft {
		c := Craft{Position: core.V(140, 220), Rotation: math.Pi / 2, Fuel: 100}
		for i := range 300 {
			in := core.Intents{Thrust: i%3 == 0, RotateLeft: i%7 < 2, RotateRight: i%11 == 0}
			c = Advance(c, core.V(0.4, -1.6), in, 1.0/60.0, p)
		}
		return c
	}

	a, b := run(), run()
	if a != b {
		t.Errorf("identical inputs diverged: %+v vs %+v", a, b)
	}
}
