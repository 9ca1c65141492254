// Package energysignal marks measured iterations of work for an external
// energy profiler by raising OS-level signals from the instrumented process.
//
// The package maintains a process-wide iteration counter and a configured
// iteration budget. Each StartSignal call claims the next iteration slot;
// while slots remain within the budget, a "begin" marker (SIGUSR1) is raised
// to the process itself. StopSignal raises the matching "end" marker
// (SIGUSR2) while the most recent start is still within budget. An external
// observer (e.g. an energy measurement tool watching this process) uses the
// two signals to bound its measurement windows; this package performs no
// measurement itself.
//
// # Usage
//
// Wrap each measured iteration in a start/stop pair:
//
//	for i := 0; i < iterations; i++ {
//		energysignal.StartSignal()
//		workload()
//		energysignal.StopSignal()
//	}
//
// The iteration budget is read once from the ITERATIONS environment variable
// (default 1). A caller may loop more times than the budget allows; markers
// beyond the budget are suppressed so the observer never sees more begin
// markers than it is configured to expect.
//
// # Signal handling
//
// Before the first marker is raised, the package installs no-op dispositions
// for both signals so that raising them does not terminate the process (the
// default disposition for SIGUSR1/SIGUSR2 is termination). Installation
// happens exactly once per process regardless of how many goroutines call
// StartSignal or StopSignal concurrently. The observer is expected to have
// attached its own listener before the process starts iterating; this
// package does not coordinate that ordering.
//
// # Marker trace
//
// When the ENERGY_SIGNAL_TRACE environment variable names a file, every
// marker decision (raised or suppressed) is appended to it as a MessagePack
// stream of MarkerEvent records. The energy-bench harness uses the trace to
// align its measurement samples with iteration boundaries after the run.
//
// # Platform support
//
// Markers are raised on Unix platforms. On Windows, where SIGUSR1 and
// SIGUSR2 do not exist, the counter and decision logic behave identically
// but no signal is raised.
package energysignal
