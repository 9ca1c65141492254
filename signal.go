package energysignal

import (
	"os"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"
)

// EnvIterations is the environment variable holding the iteration budget:
// the maximum number of begin markers the external observer expects to see.
// Unset or unparsable values fall back to DefaultIterations.
const EnvIterations = "ITERATIONS"

// DefaultIterations is the iteration budget used when EnvIterations is
// unset or unparsable.
const DefaultIterations = 1

var (
	// iterCount is the process-wide iteration counter. It is incremented
	// exactly once per StartSignal call and never reset.
	iterCount atomic.Uint64

	// handlerOnce latches the one-time signal disposition installation.
	handlerOnce sync.Once

	// budgetOnce latches the one-time budget read; the budget is immutable
	// for the process lifetime afterwards, even if the environment changes.
	budgetOnce sync.Once
	budget     uint64

	logger = zerolog.Nop()
)

// SetLogger installs a logger for debug tracing of marker decisions.
// The default logger discards everything. Fatal conditions (a failed raise)
// bypass this logger and always abort the process.
func SetLogger(l zerolog.Logger) {
	logger = l
}

func iterationBudget() uint64 {
	budgetOnce.Do(func() {
		budget = DefaultIterations
		raw, ok := os.LookupEnv(EnvIterations)
		if !ok {
			return
		}
		n, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			logger.Debug().Str("value", raw).Err(err).
				Msgf("unparsable %s, using default of %d", EnvIterations, DefaultIterations)
			return
		}
		budget = n
	})
	return budget
}

// StartSignal marks the beginning of a measured iteration. It atomically
// claims the next iteration slot and, if the slot is within the configured
// budget, raises the begin marker (SIGUSR1) to the current process and
// returns 1. Once the budget is exhausted the marker is suppressed and
// StartSignal returns 0; the counter still advances.
//
// Safe for concurrent use: each caller observes a unique slot, so at most
// budget callers in total ever see a return value of 1.
func StartSignal() int32 {
	installHandlers()

	curr := iterCount.Add(1) - 1
	if curr < iterationBudget() {
		raiseBegin()
		recordMarker(MarkerBegin, curr+1, true)
		logger.Debug().Uint64("iteration", curr+1).Msg("begin marker raised")
		return 1
	}
	recordMarker(MarkerBegin, curr+1, false)
	logger.Debug().Uint64("iteration", curr+1).Msg("begin marker suppressed")
	return 0
}

// StopSignal marks the end of a measured iteration. It raises the end
// marker (SIGUSR2) to the current process if at least one start has
// occurred and the iteration count is still within the budget; otherwise
// it does nothing. Calling StopSignal before any StartSignal, or after the
// budget is exhausted, is a silent no-op rather than an error.
func StopSignal() {
	installHandlers()

	curr := iterCount.Load()
	if curr > 0 && curr <= iterationBudget() {
		raiseEnd()
		recordMarker(MarkerEnd, curr, true)
		logger.Debug().Uint64("iteration", curr).Msg("end marker raised")
		return
	}
	recordMarker(MarkerEnd, curr, false)
}
