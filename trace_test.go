//go:build !windows

package energysignal

import (
	"bytes"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// resetTrace rewinds the lazily-initialized trace state between tests.
func resetTrace(t *testing.T, path string) {
	t.Helper()
	t.Setenv(EnvTrace, path)
	if path == "" {
		os.Unsetenv(EnvTrace)
	}
	traceMu.Lock()
	defer traceMu.Unlock()
	traceOnce = sync.Once{}
	traceEnc = nil
}

func TestTraceRecordsMarkerDecisions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "markers.trace")
	resetTrace(t, path)
	t.Cleanup(func() {
		traceMu.Lock()
		defer traceMu.Unlock()
		traceOnce = sync.Once{}
		traceEnc = nil
	})
	resetMarkers(t, "2")

	StartSignal()
	StopSignal()
	StartSignal()
	StopSignal()
	StartSignal() // suppressed, still recorded
	StopSignal()  // no-op, still recorded

	events, err := ReadTraceFile(path)
	if err != nil {
		t.Fatalf("ReadTraceFile: %v", err)
	}
	want := []MarkerEvent{
		{Marker: MarkerBegin, Iteration: 1, Raised: true},
		{Marker: MarkerEnd, Iteration: 1, Raised: true},
		{Marker: MarkerBegin, Iteration: 2, Raised: true},
		{Marker: MarkerEnd, Iteration: 2, Raised: true},
		{Marker: MarkerBegin, Iteration: 3, Raised: false},
		{Marker: MarkerEnd, Iteration: 3, Raised: false},
	}
	if len(events) != len(want) {
		t.Fatalf("decoded %d events, want %d", len(events), len(want))
	}
	var prev int64
	for i, ev := range events {
		if ev.Marker != want[i].Marker || ev.Iteration != want[i].Iteration || ev.Raised != want[i].Raised {
			t.Errorf("event %d = {%s %d %v}, want {%s %d %v}",
				i, ev.Marker, ev.Iteration, ev.Raised,
				want[i].Marker, want[i].Iteration, want[i].Raised)
		}
		if ev.UnixNano < prev {
			t.Errorf("event %d timestamp went backwards: %d < %d", i, ev.UnixNano, prev)
		}
		prev = ev.UnixNano
	}
}

func TestTraceDisabledByDefault(t *testing.T) {
	resetTrace(t, "")
	resetMarkers(t, "1")

	// Must not panic or create files; recording is a no-op when disabled.
	StartSignal()
	StopSignal()
}

func TestReadTraceTruncated(t *testing.T) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	for i := uint64(1); i <= 2; i++ {
		ev := MarkerEvent{Marker: MarkerBegin, Iteration: i, Raised: true, UnixNano: time.Now().UnixNano()}
		if err := enc.Encode(ev); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}

	// Cut into the middle of the second event: the first must still decode,
	// and the cut must surface as an error rather than silent EOF.
	cut := buf.Bytes()[:buf.Len()-3]
	events, err := ReadTrace(bytes.NewReader(cut))
	if err == nil {
		t.Fatal("expected an error decoding a truncated trace")
	}
	if len(events) != 1 {
		t.Fatalf("decoded %d events from truncated trace, want 1", len(events))
	}
	if events[0].Iteration != 1 {
		t.Errorf("surviving event iteration = %d, want 1", events[0].Iteration)
	}
}

func TestMarkerEventTime(t *testing.T) {
	now := time.Now()
	ev := MarkerEvent{UnixNano: now.UnixNano()}
	if !ev.Time().Equal(now) {
		t.Errorf("Time() = %v, want %v", ev.Time(), now)
	}
}
