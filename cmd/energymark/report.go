package main

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/energybench/energysignal"
)

// iterationWindow is one reconstructed measurement window: the span between
// a raised begin marker and its matching end marker.
type iterationWindow struct {
	Iteration uint64
	Begin     time.Time
	End       time.Time
	haveBegin bool
	haveEnd   bool
}

// reconstructWindows pairs raised begin/end events by iteration number and
// returns the windows in first-seen order, plus the count of suppressed
// markers (events beyond the budget).
func reconstructWindows(events []energysignal.MarkerEvent) (windows []*iterationWindow, suppressed int) {
	byIter := make(map[uint64]*iterationWindow)
	for _, ev := range events {
		if !ev.Raised {
			suppressed++
			continue
		}
		w := byIter[ev.Iteration]
		if w == nil {
			w = &iterationWindow{Iteration: ev.Iteration}
			byIter[ev.Iteration] = w
			windows = append(windows, w)
		}
		switch ev.Marker {
		case energysignal.MarkerBegin:
			w.Begin = ev.Time()
			w.haveBegin = true
		case energysignal.MarkerEnd:
			w.End = ev.Time()
			w.haveEnd = true
		}
	}
	return windows, suppressed
}

// summarizeTrace reads the marker trace recorded by the workload and logs
// one line per iteration window. A truncated trace is summarized up to the
// cut with a warning.
func summarizeTrace(log zerolog.Logger, path string) error {
	events, err := energysignal.ReadTraceFile(path)
	if err != nil {
		if len(events) == 0 {
			return err
		}
		log.Warn().Err(err).Msg("marker trace truncated, summarizing what decoded")
	}

	windows, suppressed := reconstructWindows(events)
	for _, w := range windows {
		if w.haveBegin && w.haveEnd {
			log.Info().Uint64("iteration", w.Iteration).
				Time("begin", w.Begin).Time("end", w.End).
				Dur("duration", w.End.Sub(w.Begin)).
				Msg("iteration window")
			continue
		}
		log.Warn().Uint64("iteration", w.Iteration).
			Bool("have_begin", w.haveBegin).Bool("have_end", w.haveEnd).
			Msg("unpaired marker")
	}
	if suppressed > 0 {
		log.Info().Int("suppressed", suppressed).Msg("markers suppressed beyond the budget")
	}
	return nil
}
