//go:build !windows

package energysignal

import (
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/rs/zerolog/log"
	"golang.org/x/sys/unix"
)

// The two marker signals. SIGUSR1 and SIGUSR2 are conventionally reserved
// for user-defined purposes; the observer attaches its own listener for
// them before the instrumented process starts iterating.
const (
	sigBegin = unix.SIGUSR1
	sigEnd   = unix.SIGUSR2
)

var (
	markerCh = make(chan os.Signal, 4)
	raiseMu  sync.Mutex
)

// installHandlers installs no-op dispositions for both marker signals,
// exactly once per process. Without a registered handler the default
// disposition for SIGUSR1/SIGUSR2 would terminate the process on the first
// raise. Callers returning from this function are guaranteed to see the
// installation completed, whichever goroutine performed it.
func installHandlers() {
	handlerOnce.Do(func() {
		signal.Notify(markerCh, syscall.SIGUSR1, syscall.SIGUSR2)
	})
}

func raiseBegin() { raise(sigBegin) }
func raiseEnd()   { raise(sigEnd) }

// raise delivers sig to the current process and consumes the resulting
// notification before returning. Waiting for delivery is what keeps every
// marker distinct: a raise that returned while its signal was still pending
// would coalesce with the next raise of the same signal, and the observer
// would see fewer markers than the budget allows. The mutex serializes
// concurrent raisers for the same reason.
//
// Self-directed delivery is not expected to fail; if it does, the process
// is in a state no further marker call can fix, so the failure is fatal
// rather than surfaced to the caller.
func raise(sig unix.Signal) {
	raiseMu.Lock()
	defer raiseMu.Unlock()

	if err := unix.Kill(unix.Getpid(), sig); err != nil {
		log.Fatal().Err(err).Stringer("signal", sig).Msg("failed to raise marker signal")
	}
	for delivered := range markerCh {
		if delivered == sig {
			return
		}
		// A marker signal sent by another process; discard and keep
		// waiting for our own.
	}
}
