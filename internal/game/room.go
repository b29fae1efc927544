package game

import (
	"log"
	"math"
	"sync"
	"time"

	"EvasiveDelete/internal/motion"
	"EvasiveDelete/internal/physics"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/spatial/r2"
)

// ButtonState is what a client needs to draw the button.
type ButtonState struct {
	Offset   r2.Vec
	Velocity r2.Vec
	Moving   bool
	Hits     int
	Confirms int
}

// Room is one open deletion page.
type Room struct {
	ID       string
	Params   ButtonParams
	Tracker  *motion.Tracker
	Button   *Button
	Hits     int
	Confirms int
	Conns    int
	LastSeen time.Time
	Mu       sync.Mutex

	sched *physics.Scheduler
}

func newRoom(id string, p ButtonParams, sched *physics.Scheduler) *Room {
	return &Room{
		ID:       id,
		Params:   p,
		Tracker:  motion.NewTracker(p.Retention()),
		Button:   NewButton(p),
		LastSeen: time.Now(),
		sched:    sched,
	}
}

// RecordPointer adds a pointer sample to the room's history. Samples that are
// not finite, or older than the newest one, are dropped and false is returned.
func (r *Room) RecordPointer(s motion.Sample) bool {
	if !finite(s.X) || !finite(s.Y) || !finite(s.Time) {
		return false
	}
	return r.Tracker.Record(s)
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// PointerEnter handles the pointer entering the button: it estimates the
// collision from recent pointer history, knocks the button away and schedules
// it for per-frame updates until it settles.
func (r *Room) PointerEnter(pointer motion.Point, rect motion.Rect) motion.Collision {
	history := r.Tracker.Snapshot()
	c := motion.EstimateCollision(history, pointer, rect)
	if r.Params.SampleSize != motion.DefaultSampleSize {
		c.Velocity = motion.EstimateVelocityN(history, r.Params.SampleSize)
	}

	r.Mu.Lock()
	defer r.Mu.Unlock()
	r.Button.Hit(c, rect)
	r.Hits++
	if r.sched != nil {
		r.sched.Register(r.ID, r)
	}

	log.Printf("room %s: button hit! velocity %.0f px/s, direction %.0f°, hit position (%.0f, %.0f)",
		r.ID, c.Velocity.Speed, c.Velocity.Angle, c.HitPoint.X, c.HitPoint.Y)
	return c
}

// Tick advances the button by one frame and drops it from the scheduler once it rests.
func (r *Room) Tick(dt float64) {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	if r.Button.Body.Step(dt) && r.sched != nil {
		r.sched.Unregister(r.ID)
	}
}

// Confirm records a successful click on the button.
func (r *Room) Confirm() string {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	r.Confirms++
	log.Printf("room %s: confirm clicked after %d evasions", r.ID, r.Hits)
	return ConfirmMessage
}

func (r *Room) Snapshot() ButtonState {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	return r.snapshotLocked()
}

func (r *Room) snapshotLocked() ButtonState {
	st := r.Button.Body.Snapshot()
	return ButtonState{
		Offset:   st.Position,
		Velocity: st.Velocity,
		Moving:   !r.Button.Body.Resting(),
		Hits:     r.Hits,
		Confirms: r.Confirms,
	}
}

// Hub owns every open room and the scheduler that animates their buttons.
type Hub struct {
	Rooms  map[string]*Room
	Params ButtonParams
	Sched  *physics.Scheduler
	Mu     sync.Mutex
}

func NewHub(p ButtonParams, sched *physics.Scheduler) *Hub {
	return &Hub{
		Rooms:  map[string]*Room{},
		Params: SanitizeButtonParams(p),
		Sched:  sched,
	}
}

// NewRoomID returns an id for a page that did not bring its own.
func NewRoomID() string { return uuid.NewString() }

func (h *Hub) GetRoom(id string) *Room {
	h.Mu.Lock()
	defer h.Mu.Unlock()
	return h.getRoomLocked(id)
}

func (h *Hub) getRoomLocked(id string) *Room {
	r, ok := h.Rooms[id]
	if !ok {
		r = newRoom(id, h.Params, h.Sched)
		h.Rooms[id] = r
	}
	return r
}

// Join returns the room for id and counts a new connection to it. The count is
// taken under the hub lock so CleanupEmptyRooms cannot drop the room in between.
func (h *Hub) Join(id string) *Room {
	h.Mu.Lock()
	defer h.Mu.Unlock()
	r := h.getRoomLocked(id)
	r.Mu.Lock()
	r.Conns++
	r.LastSeen = time.Now()
	r.Mu.Unlock()
	return r
}

func (h *Hub) Leave(r *Room) {
	r.Mu.Lock()
	if r.Conns > 0 {
		r.Conns--
	}
	r.LastSeen = time.Now()
	r.Mu.Unlock()
}

func (h *Hub) RoomCount() int {
	h.Mu.Lock()
	defer h.Mu.Unlock()
	return len(h.Rooms)
}

// CleanupEmptyRooms drops rooms without connections that have been idle for
// longer than idle, and returns how many were removed.
func (h *Hub) CleanupEmptyRooms(idle time.Duration) int {
	h.Mu.Lock()
	defer h.Mu.Unlock()
	now := time.Now()
	removed := 0
	for id, r := range h.Rooms {
		r.Mu.Lock()
		stale := r.Conns == 0 && now.Sub(r.LastSeen) >= idle
		if stale && h.Sched != nil {
			h.Sched.Unregister(id)
		}
		r.Mu.Unlock()
		if stale {
			delete(h.Rooms, id)
			removed++
		}
	}
	return removed
}
