//go:build windows

package energysignal

// SIGUSR1 and SIGUSR2 do not exist on Windows, so no marker can be raised
// there. The counter and decision logic still run so that a portable caller
// sees the same return values; only the raise itself is a no-op. An observer
// on Windows has nothing to listen for.

func installHandlers() {}

func raiseBegin() {}
func raiseEnd()   {}
