package physics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

const (
	// ReferenceHz is the frame rate at which Friction is specified.
	ReferenceHz = 60.0

	DefaultMass        = 1.0
	DefaultFriction    = 0.95
	DefaultRestSpeed   = 5.0
	DefaultRestitution = 0.6
)

// State is a body's physical state.
type State struct {
	Position r2.Vec
	Velocity r2.Vec
	Mass     float64
	Friction float64
}

// Bounds confines a body's position to [Min, Max] on each axis. Min == Max
// pins that axis.
type Bounds struct {
	Min, Max r2.Vec
}

// Body is a point mass pushed by impulses and slowed by friction.
// Body is not safe for concurrent use.
type Body struct {
	State
	Bounds      *Bounds // nil leaves the body unconfined
	RestSpeed   float64
	Restitution float64
}

func NewBody(mass, friction float64) *Body {
	if !(mass > 0) {
		mass = DefaultMass
	}
	if !(friction > 0 && friction <= 1) {
		friction = DefaultFriction
	}
	return &Body{
		State:       State{Mass: mass, Friction: friction},
		RestSpeed:   DefaultRestSpeed,
		Restitution: DefaultRestitution,
	}
}

// ApplyImpulse changes the velocity by impulse/mass.
func (b *Body) ApplyImpulse(impulse r2.Vec) {
	b.Velocity = r2.Add(b.Velocity, r2.Scale(1/b.Mass, impulse))
}

// Resting reports whether the body has no velocity.
func (b *Body) Resting() bool { return b.Velocity == r2.Vec{} }

// Step integrates the body over dt seconds and reports whether it came to rest.
//
// Friction is applied as Friction^(dt*ReferenceHz), so decay per second does not
// depend on the frame rate.
func (b *Body) Step(dt float64) bool {
	if b.Resting() {
		return true
	}
	if dt > 0 {
		b.Position = r2.Add(b.Position, r2.Scale(dt, b.Velocity))
		b.Velocity = r2.Scale(math.Pow(b.Friction, dt*ReferenceHz), b.Velocity)
		b.confine()
	}
	if r2.Norm(b.Velocity) < b.RestSpeed {
		b.Velocity = r2.Vec{}
		return true
	}
	return false
}

func (b *Body) confine() {
	bb := b.Bounds
	if bb == nil {
		return
	}
	if b.Position.X < bb.Min.X {
		b.Position.X = bb.Min.X
		b.Velocity.X = math.Abs(b.Velocity.X) * b.Restitution
	} else if b.Position.X > bb.Max.X {
		b.Position.X = bb.Max.X
		b.Velocity.X = -math.Abs(b.Velocity.X) * b.Restitution
	}
	if b.Position.Y < bb.Min.Y {
		b.Position.Y = bb.Min.Y
		b.Velocity.Y = math.Abs(b.Velocity.Y) * b.Restitution
	} else if b.Position.Y > bb.Max.Y {
		b.Position.Y = bb.Max.Y
		b.Velocity.Y = -math.Abs(b.Velocity.Y) * b.Restitution
	}
}

// Snapshot returns a copy of the body's state.
func (b *Body) Snapshot() State { return b.State }
