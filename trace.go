package energysignal

import (
	"errors"
	"io"
	"os"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// EnvTrace is the environment variable naming the marker trace file. When
// set, every marker decision is appended to the file as a MessagePack
// stream of MarkerEvent records. Unset disables tracing.
const EnvTrace = "ENERGY_SIGNAL_TRACE"

// Marker kinds recorded in a trace.
const (
	MarkerBegin = "begin"
	MarkerEnd   = "end"
)

// MarkerEvent is one record in a marker trace. Suppressed markers are
// recorded too (Raised false) so the harness can tell "loop ran past the
// budget" apart from "loop stopped early" when aligning its samples.
type MarkerEvent struct {
	// Marker is MarkerBegin or MarkerEnd.
	Marker string `msgpack:"marker"`

	// Iteration is the 1-based iteration the event belongs to.
	Iteration uint64 `msgpack:"iteration"`

	// Raised reports whether the signal was actually delivered.
	Raised bool `msgpack:"raised"`

	// UnixNano is the wall-clock time of the marker decision.
	UnixNano int64 `msgpack:"unix_nano"`
}

// Time returns the event timestamp as a time.Time.
func (e MarkerEvent) Time() time.Time {
	return time.Unix(0, e.UnixNano)
}

var (
	traceOnce sync.Once
	traceMu   sync.Mutex
	traceEnc  *msgpack.Encoder
)

// traceEncoder lazily opens the trace file the first time a marker is
// recorded. A nil return means tracing is disabled, either by configuration
// or because the file could not be opened; tracing is an observability aid
// and must never break the marker protocol.
func traceEncoder() *msgpack.Encoder {
	traceOnce.Do(func() {
		path := os.Getenv(EnvTrace)
		if path == "" {
			return
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			logger.Warn().Err(err).Str("path", path).Msg("cannot open marker trace, tracing disabled")
			return
		}
		// Writes go straight to the file descriptor, so every event is
		// durable as soon as Encode returns.
		traceEnc = msgpack.NewEncoder(f)
	})
	return traceEnc
}

func recordMarker(marker string, iteration uint64, raised bool) {
	enc := traceEncoder()
	if enc == nil {
		return
	}
	ev := MarkerEvent{
		Marker:    marker,
		Iteration: iteration,
		Raised:    raised,
		UnixNano:  time.Now().UnixNano(),
	}
	traceMu.Lock()
	defer traceMu.Unlock()
	if err := enc.Encode(ev); err != nil {
		logger.Warn().Err(err).Msg("failed to record marker event")
	}
}

// ReadTrace decodes a marker trace stream until EOF. Events already decoded
// are returned alongside any mid-stream error, so a trace truncated by the
// instrumented process dying is still usable up to the cut.
func ReadTrace(r io.Reader) ([]MarkerEvent, error) {
	dec := msgpack.NewDecoder(r)
	var events []MarkerEvent
	for {
		var ev MarkerEvent
		err := dec.Decode(&ev)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return events, nil
			}
			return events, err
		}
		events = append(events, ev)
	}
}

// ReadTraceFile decodes the marker trace at path.
func ReadTraceFile(path string) ([]MarkerEvent, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadTrace(f)
}
