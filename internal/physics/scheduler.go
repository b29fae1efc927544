// Package physics drives per-frame updates and simple impulse bodies.
package physics

//go:generate go tool mockgen -source=scheduler.go -destination=mock_tickable_test.go -package=physics

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrNoFrameSource is reported by Scheduler.Err when updates are registered but
// there is no frame source to drive them.
var ErrNoFrameSource = errors.New("physics: no frame source available")

// Tickable is advanced once per frame by a Scheduler. dt is the elapsed time
// since the previous frame, in seconds.
type Tickable interface {
	Tick(dt float64)
}

// TickFunc adapts a function to Tickable.
type TickFunc func(dt float64)

func (f TickFunc) Tick(dt float64) { f(dt) }

type entry struct {
	id string
	t  Tickable
}

// Scheduler invokes registered Tickables once per frame. It starts requesting
// frames when the first entry is registered and stops when the last one is
// removed.
//
// Entries run in registration order over a snapshot taken when the frame
// begins, so registrations made from inside a Tick only take effect on the
// next frame. Tick is never called with the scheduler's lock held.
type Scheduler struct {
	clock Clock

	mu      sync.Mutex
	frames  FrameSource
	entries []entry
	index   map[string]int

	running bool
	last    time.Time
	pending FrameID
	seq     uint64 // tags the outstanding frame request
	waiting bool
	ticks   uint64
	warned  bool
}

func NewScheduler(clock Clock, frames FrameSource) *Scheduler {
	if clock == nil {
		clock = SystemClock
	}
	return &Scheduler{
		clock:  clock,
		frames: frames,
		index:  make(map[string]int),
	}
}

// Register adds t under id, replacing any entry already registered under that id.
// A replaced entry keeps its position in the update order.
func (s *Scheduler) Register(id string, t Tickable) {
	if t == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if i, ok := s.index[id]; ok {
		s.entries[i].t = t
	} else {
		s.index[id] = len(s.entries)
		s.entries = append(s.entries, entry{id: id, t: t})
	}
	s.startLocked()
}

func (s *Scheduler) RegisterFunc(id string, fn func(dt float64)) {
	if fn == nil {
		return
	}
	s.Register(id, TickFunc(fn))
}

// Add registers t under a freshly minted id and returns it.
func (s *Scheduler) Add(t Tickable) string {
	id := uuid.NewString()
	s.Register(id, t)
	return id
}

// Unregister removes the entry for id. Unknown ids are ignored.
func (s *Scheduler) Unregister(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.index[id]
	if !ok {
		return
	}
	delete(s.index, id)
	s.entries = append(s.entries[:i:i], s.entries[i+1:]...)
	for j := i; j < len(s.entries); j++ {
		s.index[s.entries[j].id] = j
	}
	if len(s.entries) == 0 {
		s.stopLocked()
		s.warned = false
	}
}

// SetFrameSource installs a frame source, starting the scheduler if entries are
// waiting for one.
func (s *Scheduler) SetFrameSource(frames FrameSource) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		s.stopLocked()
	}
	s.frames = frames
	s.warned = false
	if len(s.entries) > 0 {
		s.startLocked()
	}
}

func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *Scheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Has reports whether id is registered.
func (s *Scheduler) Has(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.index[id]
	return ok
}

// Frames returns the number of frames processed so far.
func (s *Scheduler) Frames() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ticks
}

// Err reports why registered entries are not being updated, if they are not.
func (s *Scheduler) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.entries) > 0 && s.frames == nil {
		return ErrNoFrameSource
	}
	return nil
}

func (s *Scheduler) startLocked() {
	if s.running {
		return
	}
	if s.frames == nil {
		if !s.warned {
			Logf("physics: %v; %d update(s) dormant", ErrNoFrameSource, len(s.entries))
			s.warned = true
		}
		return
	}
	s.running = true
	s.last = s.clock.Now()
	s.requestLocked()
}

func (s *Scheduler) stopLocked() {
	s.running = false
	if s.waiting && s.frames != nil {
		s.frames.CancelFrame(s.pending)
	}
	s.waiting = false
	s.pending = 0
	s.last = time.Time{}
}

func (s *Scheduler) requestLocked() {
	s.seq++
	seq := s.seq
	s.waiting = true
	s.pending = s.frames.RequestFrame(func(now time.Time) { s.frame(seq, now) })
}

func (s *Scheduler) frame(seq uint64, now time.Time) {
	s.mu.Lock()
	if !s.running || !s.waiting || seq != s.seq {
		s.mu.Unlock()
		return
	}
	s.waiting = false
	dt := now.Sub(s.last).Seconds()
	s.last = now
	s.ticks++
	batch := make([]Tickable, len(s.entries))
	for i, e := range s.entries {
		batch[i] = e.t
	}
	s.mu.Unlock()

	for _, t := range batch {
		t.Tick(dt)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// A Tick may have stopped the scheduler, or stopped and restarted it with a
	// fresh frame already requested.
	if s.running && !s.waiting {
		s.requestLocked()
	}
}
