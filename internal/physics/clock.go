package physics

import (
	"log"
	"sync"
	"time"
)

// Logf is the package diagnostic logger. Tests may replace it.
var Logf = log.Printf

// Clock provides the current time.
type Clock interface {
	Now() time.Time
}

// SystemClock is the default Clock implementation using the standard library.
var SystemClock Clock = systemClock{}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// FrameID identifies a requested frame so it can be cancelled.
type FrameID uint64

// FrameSource is the host's display-refresh primitive: RequestFrame arranges for
// fn to be called once with the frame timestamp, CancelFrame withdraws a request
// that has not fired yet.
type FrameSource interface {
	RequestFrame(fn func(now time.Time)) FrameID
	CancelFrame(id FrameID)
}

// DefaultFrameHz is the refresh rate used by NewTimerFrames when hz is not positive.
const DefaultFrameHz = 60.0

// TimerFrames delivers frames on a fixed interval using timers.
type TimerFrames struct {
	interval time.Duration
	clock    Clock

	mu     sync.Mutex
	next   FrameID
	timers map[FrameID]*time.Timer
}

func NewTimerFrames(hz float64, clock Clock) *TimerFrames {
	if !(hz > 0) {
		hz = DefaultFrameHz
	}
	if clock == nil {
		clock = SystemClock
	}
	return &TimerFrames{
		interval: time.Duration(float64(time.Second) / hz),
		clock:    clock,
		timers:   make(map[FrameID]*time.Timer),
	}
}

func (f *TimerFrames) Interval() time.Duration { return f.interval }

func (f *TimerFrames) RequestFrame(fn func(now time.Time)) FrameID {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.next++
	id := f.next
	f.timers[id] = time.AfterFunc(f.interval, func() {
		f.mu.Lock()
		_, live := f.timers[id]
		delete(f.timers, id)
		f.mu.Unlock()
		if live {
			fn(f.clock.Now())
		}
	})
	return id
}

func (f *TimerFrames) CancelFrame(id FrameID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if t, ok := f.timers[id]; ok {
		t.Stop()
		delete(f.timers, id)
	}
}

// Pending returns the number of frames requested but not yet delivered.
func (f *TimerFrames) Pending() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.timers)
}
