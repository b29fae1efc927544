package game

const (
	FrameHz          = 60.0 // scheduler refresh rate
	UpdateRateHz     = 30.0 // per-client WS state pushes
	RoomIdleSeconds  = 60.0 // empty rooms older than this are dropped
	ButtonRangeX     = 320.0
	ButtonRangeY     = 160.0
	ButtonMass       = 1.0
	ButtonFriction   = 0.92
	ButtonRestSpeed  = 5.0
	ButtonBounce     = 0.6
	ImpulseScale     = 0.8
	MinImpulse       = 600.0 // px/s applied even when the pointer barely moves
	MaxImpulse       = 4000.0
	PointerRetention = 150.0 // ms
)

// ConfirmMessage is what the page says when someone finally lands a click.
const ConfirmMessage = "Your account has been... just kidding! This is a parody. Your account is safe!"
