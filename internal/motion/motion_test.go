package motion

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func line(x0, y0, dx, dy, t0, dt float64, n int) []Sample {
	out := make([]Sample, n)
	for i := range out {
		f := float64(i)
		out[i] = Sample{X: x0 + f*dx, Y: y0 + f*dy, Time: t0 + f*dt}
	}
	return out
}

func TestEstimateVelocityInsufficientData(t *testing.T) {
	cases := map[string][]Sample{
		"nil":    nil,
		"empty":  {},
		"single": {{X: 100, Y: 100, Time: 1000}},
	}
	for name, history := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, Velocity{}, EstimateVelocity(history))
		})
	}
}

func TestEstimateVelocityWindowOfOne(t *testing.T) {
	history := line(0, 0, 10, 0, 0, 10, 4)
	v := EstimateVelocityN(history, 1)
	assert.True(t, v.IsZero(), "window of one sample should give zero velocity, got %+v", v)
}

func TestEstimateVelocityZeroElapsed(t *testing.T) {
	history := []Sample{
		{X: 100, Y: 100, Time: 1000},
		{X: 110, Y: 110, Time: 1000},
	}
	assert.Equal(t, Velocity{}, EstimateVelocity(history))
}

func TestEstimateVelocityHorizontal(t *testing.T) {
	history := []Sample{
		{X: 100, Y: 200, Time: 1000},
		{X: 110, Y: 200, Time: 1010},
		{X: 120, Y: 200, Time: 1020},
		{X: 130, Y: 200, Time: 1030},
		{X: 140, Y: 200, Time: 1040},
	}
	v := EstimateVelocity(history)

	require.InDelta(t, 1000, v.VX, 0.5)
	assert.Equal(t, 0.0, v.VY)
	assert.InDelta(t, 1000, v.Speed, 0.5)
	assert.Equal(t, v.VX, v.Speed)
	assert.Equal(t, 0.0, v.Angle)
}

func TestEstimateVelocityVertical(t *testing.T) {
	v := EstimateVelocity(line(200, 100, 0, 10, 1000, 10, 5))

	assert.Equal(t, 0.0, v.VX)
	assert.InDelta(t, 1000, v.VY, 0.5)
	assert.Equal(t, v.VY, v.Speed)
	assert.InDelta(t, 90, v.Angle, 1e-9)
}

func TestEstimateVelocityDiagonal(t *testing.T) {
	v := EstimateVelocity(line(100, 100, 10, 10, 1000, 10, 5))

	assert.InDelta(t, 1000, v.VX, 0.5)
	assert.InDelta(t, 1000, v.VY, 0.5)
	assert.InDelta(t, 1414, v.Speed, 0.5)
	assert.InDelta(t, v.VX*math.Sqrt2, v.Speed, 1e-9)
	assert.InDelta(t, 45, v.Angle, 1e-9)
}

func TestEstimateVelocityUpLeft(t *testing.T) {
	v := EstimateVelocity(line(140, 140, -10, -10, 1000, 10, 5))

	assert.InDelta(t, -1000, v.VX, 0.5)
	assert.InDelta(t, -1000, v.VY, 0.5)
	assert.InDelta(t, 1414, v.Speed, 0.5)
	assert.InDelta(t, -135, v.Angle, 1e-9)
}

func TestEstimateVelocityLeftIsPositive180(t *testing.T) {
	v := EstimateVelocity(line(140, 0, -10, 0, 0, 10, 3))
	assert.Equal(t, 180.0, v.Angle)

	// A negative zero VY must not flip the angle to -180.
	back := []Sample{{X: 0, Y: 0, Time: 10}, {X: 10, Y: 0, Time: 0}}
	v = EstimateVelocity(back)
	require.Less(t, v.VX, 0.0)
	assert.Equal(t, 180.0, v.Angle)
}

func TestEstimateVelocitySampleSize(t *testing.T) {
	history := []Sample{
		{X: 100, Y: 100, Time: 1000},
		{X: 105, Y: 100, Time: 1005},
		{X: 110, Y: 100, Time: 1010},
		{X: 140, Y: 100, Time: 1020},
		{X: 170, Y: 100, Time: 1030},
	}

	assert.InDelta(t, 3000, EstimateVelocityN(history, 2).VX, 0.5)
	assert.InDelta(t, 2333, EstimateVelocityN(history, 5).VX, 0.5)
	assert.Equal(t, EstimateVelocityN(history, 5), EstimateVelocityN(history, 50))
	assert.Equal(t, EstimateVelocity(history), EstimateVelocityN(history, 0))
	assert.Equal(t, EstimateVelocity(history), EstimateVelocityN(history, -3))
}

func TestEstimateVelocityIgnoresIntermediateSamples(t *testing.T) {
	straight := line(0, 0, 10, 0, 0, 10, 5)
	wobbly := append([]Sample(nil), straight...)
	wobbly[1].Y = 300
	wobbly[2].X = -50
	wobbly[3].Time = 12

	assert.Equal(t, EstimateVelocity(straight), EstimateVelocity(wobbly))
}

func TestEstimateVelocityDoesNotMutateInput(t *testing.T) {
	history := line(0, 0, 3, 4, 0, 16, 8)
	before := append([]Sample(nil), history...)
	_ = EstimateVelocityN(history, 3)
	assert.Equal(t, before, history)
}

func TestEstimateCollision(t *testing.T) {
	history := line(100, 100, 10, 10, 1000, 10, 5)
	rect := Rect{Left: 200, Top: 200, Right: 300, Bottom: 260, Width: 100, Height: 60}

	c := EstimateCollision(history, Point{X: 250, Y: 250}, rect)

	assert.InDelta(t, 1000, c.Velocity.VX, 0.5)
	assert.InDelta(t, 1000, c.Velocity.VY, 0.5)
	assert.InDelta(t, 1414, c.Velocity.Speed, 0.5)
	assert.InDelta(t, 45, c.Velocity.Angle, 1e-9)
	assert.Equal(t, Point{X: 50, Y: 50}, c.HitPoint)
}

func TestEstimateCollisionRealisticEntry(t *testing.T) {
	history := line(100, 200, 20, 0, 950, 10, 6)
	rect := RectFromBounds(150, 180, 100, 40)

	c := EstimateCollision(history, Point{X: 200, Y: 200}, rect)

	assert.Greater(t, c.Velocity.Speed, 0.0)
	assert.Greater(t, c.Velocity.VX, 0.0)
	assert.Equal(t, Point{X: 50, Y: 20}, c.HitPoint)
}

func TestEstimateCollisionHitPointUnclamped(t *testing.T) {
	rect := RectFromBounds(200, 200, 100, 60)

	c := EstimateCollision(nil, Point{X: 150, Y: 400}, rect)

	assert.True(t, c.Velocity.IsZero())
	assert.Equal(t, Point{X: -50, Y: 200}, c.HitPoint)
	assert.False(t, rect.Contains(Point{X: 150, Y: 400}))
}

func TestRectContains(t *testing.T) {
	r := RectFromBounds(10, 20, 30, 40)
	require.Equal(t, Rect{Left: 10, Top: 20, Right: 40, Bottom: 60, Width: 30, Height: 40}, r)

	assert.True(t, r.Contains(Point{X: 10, Y: 20}))
	assert.True(t, r.Contains(Point{X: 40, Y: 60}))
	assert.True(t, r.Contains(Point{X: 25, Y: 30}))
	assert.False(t, r.Contains(Point{X: 9.9, Y: 30}))
	assert.False(t, r.Contains(Point{X: 25, Y: 60.1}))
}
