package motion

import (
	"sync/atomic"
	"time"
)

// DefaultRetention is how long a sample stays in a Tracker's history.
const DefaultRetention = 150 * time.Millisecond

type history struct {
	samples []Sample
}

// Tracker keeps the pointer samples recorded within the retention window.
//
// Every Record publishes a fresh history view; views already returned by
// Snapshot are never modified afterwards, so readers need no locking.
type Tracker struct {
	window float64 // milliseconds
	cur    atomic.Pointer[history]
}

func NewTracker(window time.Duration) *Tracker {
	if window <= 0 {
		window = DefaultRetention
	}
	t := &Tracker{window: float64(window) / float64(time.Millisecond)}
	t.cur.Store(&history{})
	return t
}

// Record appends s and evicts samples that fell out of the window relative to s.
// A sample older than the newest one recorded is dropped, so the history stays
// ordered by time. It reports whether s was kept.
func (t *Tracker) Record(s Sample) bool {
	for {
		old := t.cur.Load()
		if n := len(old.samples); n > 0 && s.Time < old.samples[n-1].Time {
			return false
		}
		next := &history{samples: retain(old.samples, s, t.window)}
		if t.cur.CompareAndSwap(old, next) {
			return true
		}
	}
}

func retain(prev []Sample, s Sample, window float64) []Sample {
	out := make([]Sample, 0, len(prev)+1)
	for _, p := range prev {
		if s.Time-p.Time < window {
			out = append(out, p)
		}
	}
	return append(out, s)
}

// Snapshot returns the current history, oldest first. Callers must not modify it.
func (t *Tracker) Snapshot() []Sample {
	return t.cur.Load().samples
}

func (t *Tracker) Len() int { return len(t.cur.Load().samples) }

func (t *Tracker) Reset() { t.cur.Store(&history{}) }

// Window returns the retention window.
func (t *Tracker) Window() time.Duration {
	return time.Duration(t.window * float64(time.Millisecond))
}
