package motion

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestTrackerEvictsOutsideWindow(t *testing.T) {
	tr := NewTracker(150 * time.Millisecond)
	for _, ts := range []float64{1000, 1050, 1100, 1149, 1150, 1200} {
		tr.Record(Sample{X: ts, Y: 0, Time: ts})
	}

	want := []Sample{
		{X: 1100, Time: 1100},
		{X: 1149, Time: 1149},
		{X: 1150, Time: 1150},
		{X: 1200, Time: 1200},
	}
	if diff := cmp.Diff(want, tr.Snapshot()); diff != "" {
		t.Errorf("snapshot mismatch (-want +got):\n%s", diff)
	}
}

func TestTrackerDropsOutOfOrderSamples(t *testing.T) {
	tr := NewTracker(150 * time.Millisecond)
	if !tr.Record(Sample{X: 1, Time: 1000}) || !tr.Record(Sample{X: 2, Time: 1010}) {
		t.Fatalf("in-order samples should be kept")
	}
	if tr.Record(Sample{X: 99, Time: 1005}) {
		t.Errorf("sample older than the newest should be dropped")
	}
	if !tr.Record(Sample{X: 3, Time: 1010}) {
		t.Errorf("sample with an equal timestamp should be kept")
	}

	want := []Sample{{X: 1, Time: 1000}, {X: 2, Time: 1010}, {X: 3, Time: 1010}}
	if diff := cmp.Diff(want, tr.Snapshot()); diff != "" {
		t.Errorf("snapshot mismatch (-want +got):\n%s", diff)
	}
}

func TestTrackerSnapshotIsStable(t *testing.T) {
	tr := NewTracker(0)
	if tr.Window() != DefaultRetention {
		t.Fatalf("expected default retention %v, got %v", DefaultRetention, tr.Window())
	}

	tr.Record(Sample{X: 1, Time: 0})
	tr.Record(Sample{X: 2, Time: 10})
	snap := tr.Snapshot()
	before := append([]Sample(nil), snap...)

	tr.Record(Sample{X: 3, Time: 400})
	if diff := cmp.Diff(before, snap); diff != "" {
		t.Errorf("earlier snapshot changed after Record (-want +got):\n%s", diff)
	}
	if tr.Len() != 1 {
		t.Errorf("expected only the newest sample to survive, got %d", tr.Len())
	}

	tr.Reset()
	if tr.Len() != 0 || len(tr.Snapshot()) != 0 {
		t.Errorf("expected empty tracker after Reset")
	}
}

func TestTrackerFeedsEstimator(t *testing.T) {
	tr := NewTracker(DefaultRetention)
	for i := 0; i < 20; i++ {
		f := float64(i)
		tr.Record(Sample{X: 100 + 10*f, Y: 200, Time: 1000 + 10*f})
	}
	if tr.Len() != 15 {
		t.Fatalf("expected 15 samples inside 150ms at 10ms spacing, got %d", tr.Len())
	}
	v := EstimateVelocity(tr.Snapshot())
	if v.VX < 999 || v.VX > 1001 || v.VY != 0 {
		t.Errorf("unexpected velocity %+v", v)
	}
}

func TestTrackerConcurrentRecord(t *testing.T) {
	tr := NewTracker(time.Hour)
	var kept atomic.Int64
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				if tr.Record(Sample{X: float64(g), Time: float64(i)}) {
					kept.Add(1)
				}
				_ = EstimateVelocity(tr.Snapshot())
			}
		}(g)
	}
	wg.Wait()

	got := tr.Snapshot()
	if int64(len(got)) != kept.Load() {
		t.Errorf("expected %d kept samples, got %d", kept.Load(), len(got))
	}
	if len(got) < 100 {
		t.Errorf("expected at least one full run of samples, got %d", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].Time < got[i-1].Time {
			t.Fatalf("history out of order at %d: %v after %v", i, got[i].Time, got[i-1].Time)
		}
	}
}
