package game

import (
	"math"

	"EvasiveDelete/internal/motion"
	"EvasiveDelete/internal/physics"

	"gonum.org/v1/gonum/spatial/r2"
)

// Button is the evasive confirm button. Its body position is the offset from the
// slot the page laid it out in.
type Button struct {
	Body   *physics.Body
	params ButtonParams
}

func NewButton(p ButtonParams) *Button {
	body := physics.NewBody(p.Mass, p.Friction)
	body.RestSpeed = p.RestSpeed
	body.Restitution = p.Restitution
	body.Bounds = &physics.Bounds{
		Min: r2.Vec{X: -p.RangeX, Y: -p.RangeY},
		Max: r2.Vec{X: p.RangeX, Y: p.RangeY},
	}
	return &Button{Body: body, params: p}
}

// Hit pushes the button away from a pointer collision and returns the impulse used.
func (b *Button) Hit(c motion.Collision, rect motion.Rect) r2.Vec {
	impulse := r2.Scale(b.params.ImpulseScale, c.Velocity.Vec())
	mag := r2.Norm(impulse)

	dir := r2.Unit(impulse)
	if !(mag > 0) || math.IsInf(mag, 0) || math.IsNaN(dir.X) || math.IsNaN(dir.Y) {
		mag = 0
		dir = awayFrom(c.HitPoint, rect)
	}
	mag = clamp(mag, b.params.MinImpulse, b.params.MaxImpulse)
	impulse = r2.Scale(mag, dir)

	b.Body.ApplyImpulse(impulse)
	return impulse
}

// awayFrom points from the hit point through the button centre.
func awayFrom(hit motion.Point, rect motion.Rect) r2.Vec {
	d := r2.Vec{X: rect.Width/2 - hit.X, Y: rect.Height/2 - hit.Y}
	if n := r2.Norm(d); n == 0 || math.IsNaN(n) || math.IsInf(n, 0) {
		return r2.Vec{X: 0, Y: -1}
	}
	return r2.Unit(d)
}

func (b *Button) Offset() r2.Vec { return b.Body.Position }

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
