package server

import (
	"encoding/json"
	"math"

	"EvasiveDelete/internal/game"
	"EvasiveDelete/internal/motion"
)

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type outboundMessage struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

type pointerMoveDTO struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	T float64 `json:"t"` // client clock, ms
}

// rectDTO mirrors DOMRect; Right and Bottom are derived when omitted.
type rectDTO struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type pointerEnterDTO struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Rect rectDTO `json:"rect"`
}

type vecDTO struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type welcomeDTO struct {
	Room       string  `json:"room"`
	RangeX     float64 `json:"rangeX"`
	RangeY     float64 `json:"rangeY"`
	SampleSize int     `json:"sampleSize"`
}

type stateDTO struct {
	Offset   vecDTO `json:"offset"`
	Velocity vecDTO `json:"velocity"`
	Moving   bool   `json:"moving"`
	Hits     int    `json:"hits"`
	Confirms int    `json:"confirms"`
}

type velocityDTO struct {
	VX    float64 `json:"vx"`
	VY    float64 `json:"vy"`
	Speed float64 `json:"speed"`
	Angle float64 `json:"angle"`
}

type collisionDTO struct {
	Velocity velocityDTO `json:"velocity"`
	HitPoint vecDTO      `json:"hitPoint"`
}

type confirmedDTO struct {
	Message string `json:"message"`
}

func (r rectDTO) toRect() motion.Rect {
	return motion.RectFromBounds(r.Left, r.Top, r.Width, r.Height)
}

// jsonFloat maps values JSON cannot carry to 0.
func jsonFloat(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func vec(x, y float64) vecDTO { return vecDTO{X: jsonFloat(x), Y: jsonFloat(y)} }

func stateToDTO(st game.ButtonState) stateDTO {
	return stateDTO{
		Offset:   vec(st.Offset.X, st.Offset.Y),
		Velocity: vec(st.Velocity.X, st.Velocity.Y),
		Moving:   st.Moving,
		Hits:     st.Hits,
		Confirms: st.Confirms,
	}
}

func collisionToDTO(c motion.Collision) collisionDTO {
	return collisionDTO{
		Velocity: velocityDTO{
			VX:    jsonFloat(c.Velocity.VX),
			VY:    jsonFloat(c.Velocity.VY),
			Speed: jsonFloat(c.Velocity.Speed),
			Angle: jsonFloat(c.Velocity.Angle),
		},
		HitPoint: vec(c.HitPoint.X, c.HitPoint.Y),
	}
}
