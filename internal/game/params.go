package game

import (
	"time"

	"EvasiveDelete/internal/motion"
)

// ButtonParams tunes how the confirm button reacts to the pointer.
type ButtonParams struct {
	Mass         float64 // heavier buttons take less velocity from the same hit
	Friction     float64 // per-frame velocity factor at 60 Hz, in (0, 1]
	ImpulseScale float64 // fraction of pointer velocity transferred on entry
	MinImpulse   float64 // impulse magnitude floor, px/s
	MaxImpulse   float64 // impulse magnitude cap, px/s
	RestSpeed    float64 // below this speed the button stops
	RangeX       float64 // max horizontal offset from the resting slot
	RangeY       float64 // max vertical offset from the resting slot
	Restitution  float64 // velocity kept when bouncing off the range edge
	SampleSize   int     // trailing samples used for the velocity estimate
	RetentionMS  float64 // pointer history window
}

func DefaultButtonParams() ButtonParams {
	return SanitizeButtonParams(ButtonParams{
		Mass:         ButtonMass,
		Friction:     ButtonFriction,
		ImpulseScale: ImpulseScale,
		MinImpulse:   MinImpulse,
		MaxImpulse:   MaxImpulse,
		RestSpeed:    ButtonRestSpeed,
		RangeX:       ButtonRangeX,
		RangeY:       ButtonRangeY,
		Restitution:  ButtonBounce,
		SampleSize:   motion.DefaultSampleSize,
		RetentionMS:  PointerRetention,
	})
}

// SanitizeButtonParams replaces out-of-range values with defaults.
func SanitizeButtonParams(p ButtonParams) ButtonParams {
	if !(p.Mass > 0) {
		p.Mass = ButtonMass
	}
	if !(p.Friction > 0 && p.Friction <= 1) {
		p.Friction = ButtonFriction
	}
	if !(p.ImpulseScale >= 0) {
		p.ImpulseScale = ImpulseScale
	}
	if !(p.MaxImpulse > 0) {
		p.MaxImpulse = MaxImpulse
	}
	if !(p.MinImpulse >= 0) {
		p.MinImpulse = MinImpulse
	}
	if p.MinImpulse > p.MaxImpulse {
		p.MinImpulse = p.MaxImpulse
	}
	if !(p.RestSpeed >= 0) {
		p.RestSpeed = ButtonRestSpeed
	}
	if !(p.RangeX >= 0) {
		p.RangeX = ButtonRangeX
	}
	if !(p.RangeY >= 0) {
		p.RangeY = ButtonRangeY
	}
	if !(p.Restitution >= 0 && p.Restitution <= 1) {
		p.Restitution = ButtonBounce
	}
	if p.SampleSize < 2 {
		p.SampleSize = motion.DefaultSampleSize
	}
	if !(p.RetentionMS > 0) {
		p.RetentionMS = PointerRetention
	}
	return p
}

// Retention returns the pointer history window as a duration.
func (p ButtonParams) Retention() time.Duration {
	return time.Duration(p.RetentionMS * float64(time.Millisecond))
}
