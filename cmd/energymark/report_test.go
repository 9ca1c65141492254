package main

import (
	"testing"
	"time"

	"github.com/energybench/energysignal"
)

func markerAt(marker string, iteration uint64, raised bool, at time.Time) energysignal.MarkerEvent {
	return energysignal.MarkerEvent{
		Marker:    marker,
		Iteration: iteration,
		Raised:    raised,
		UnixNano:  at.UnixNano(),
	}
}

func TestReconstructWindows(t *testing.T) {
	base := time.Unix(1000, 0)
	events := []energysignal.MarkerEvent{
		markerAt(energysignal.MarkerBegin, 1, true, base),
		markerAt(energysignal.MarkerEnd, 1, true, base.Add(2*time.Second)),
		markerAt(energysignal.MarkerBegin, 2, true, base.Add(3*time.Second)),
		markerAt(energysignal.MarkerEnd, 2, true, base.Add(5*time.Second)),
		markerAt(energysignal.MarkerBegin, 3, false, base.Add(6*time.Second)),
		markerAt(energysignal.MarkerEnd, 3, false, base.Add(7*time.Second)),
	}

	windows, suppressed := reconstructWindows(events)
	if len(windows) != 2 {
		t.Fatalf("reconstructed %d windows, want 2", len(windows))
	}
	if suppressed != 2 {
		t.Errorf("suppressed = %d, want 2", suppressed)
	}
	for i, w := range windows {
		if !w.haveBegin || !w.haveEnd {
			t.Errorf("window %d incomplete: %+v", i, w)
		}
		if got := w.End.Sub(w.Begin); got != 2*time.Second {
			t.Errorf("window %d duration = %v, want 2s", i, got)
		}
	}
	if windows[0].Iteration != 1 || windows[1].Iteration != 2 {
		t.Errorf("window order = %d,%d, want 1,2", windows[0].Iteration, windows[1].Iteration)
	}
}

func TestReconstructWindowsUnpaired(t *testing.T) {
	base := time.Unix(1000, 0)
	events := []energysignal.MarkerEvent{
		markerAt(energysignal.MarkerBegin, 1, true, base),
		// workload died before StopSignal
	}

	windows, suppressed := reconstructWindows(events)
	if len(windows) != 1 {
		t.Fatalf("reconstructed %d windows, want 1", len(windows))
	}
	if suppressed != 0 {
		t.Errorf("suppressed = %d, want 0", suppressed)
	}
	if !windows[0].haveBegin || windows[0].haveEnd {
		t.Errorf("window = %+v, want begin without end", windows[0])
	}
}

func TestReconstructWindowsEmpty(t *testing.T) {
	windows, suppressed := reconstructWindows(nil)
	if len(windows) != 0 || suppressed != 0 {
		t.Errorf("got %d windows, %d suppressed from empty trace, want 0/0", len(windows), suppressed)
	}
}
