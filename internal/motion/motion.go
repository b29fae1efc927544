// Package motion turns recent pointer samples into velocity and collision data.
package motion

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// DefaultSampleSize is the number of trailing samples used by EstimateVelocity.
const DefaultSampleSize = 5

// Sample is one observed pointer location. Time is in milliseconds.
type Sample struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Time float64 `json:"t"`
}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Velocity is expressed in units per second. Angle is in degrees within (-180, 180],
// 0 pointing towards +X and 90 towards +Y (down on screen).
type Velocity struct {
	VX    float64 `json:"vx"`
	VY    float64 `json:"vy"`
	Speed float64 `json:"speed"`
	Angle float64 `json:"angle"`
}

// IsZero reports whether v is the "no data" velocity.
func (v Velocity) IsZero() bool { return v == Velocity{} }

// Vec returns the (VX, VY) component pair.
func (v Velocity) Vec() r2.Vec { return r2.Vec{X: v.VX, Y: v.VY} }

type Rect struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// RectFromBounds builds a Rect from its top-left corner and size.
func RectFromBounds(left, top, width, height float64) Rect {
	return Rect{
		Left:   left,
		Top:    top,
		Right:  left + width,
		Bottom: top + height,
		Width:  width,
		Height: height,
	}
}

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Left && p.X <= r.Right && p.Y >= r.Top && p.Y <= r.Bottom
}

// Collision describes a pointer entering a target. HitPoint is relative to the
// target's top-left corner and is not clamped to the target.
type Collision struct {
	Velocity Velocity `json:"velocity"`
	HitPoint Point    `json:"hitPoint"`
}

// EstimateVelocity estimates velocity over the last DefaultSampleSize samples.
func EstimateVelocity(history []Sample) Velocity {
	return EstimateVelocityN(history, DefaultSampleSize)
}

// EstimateVelocityN estimates the pointer velocity from the first and last of the
// trailing sampleSize samples. Intermediate samples are ignored: this is a secant
// estimate, not an average. A non-positive sampleSize falls back to
// DefaultSampleSize.
//
// Fewer than two usable samples, or a zero time span between the two reference
// samples, yield the zero Velocity.
func EstimateVelocityN(history []Sample, sampleSize int) Velocity {
	if len(history) < 2 {
		return Velocity{}
	}
	if sampleSize <= 0 {
		sampleSize = DefaultSampleSize
	}
	recent := history
	if len(recent) > sampleSize {
		recent = recent[len(recent)-sampleSize:]
	}
	if len(recent) < 2 {
		return Velocity{}
	}

	first := recent[0]
	last := recent[len(recent)-1]
	elapsed := (last.Time - first.Time) / 1000
	if elapsed == 0 {
		return Velocity{}
	}

	d := r2.Sub(r2.Vec{X: last.X, Y: last.Y}, r2.Vec{X: first.X, Y: first.Y})
	v := r2.Vec{X: d.X / elapsed, Y: d.Y / elapsed}
	return Velocity{
		VX:    v.X,
		VY:    v.Y,
		Speed: r2.Norm(v),
		Angle: angleDegrees(v.Y, v.X),
	}
}

// EstimateCollision combines the pointer velocity with the entry point relative to rect.
func EstimateCollision(history []Sample, pointer Point, rect Rect) Collision {
	return Collision{
		Velocity: EstimateVelocity(history),
		HitPoint: Point{
			X: pointer.X - rect.Left,
			Y: pointer.Y - rect.Top,
		},
	}
}

func angleDegrees(y, x float64) float64 {
	deg := math.Atan2(y, x) * (180 / math.Pi)
	if deg <= -180 {
		deg += 360
	}
	return deg
}
