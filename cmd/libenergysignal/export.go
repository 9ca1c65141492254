//go:build cgo

package main

/*
#include <stdint.h>
*/
import "C"

import (
	"github.com/energybench/energysignal"
)

// start_signal marks the beginning of a measured iteration. Returns 1 if
// the begin marker was raised, 0 if it was suppressed because the iteration
// budget is exhausted.
//
//export start_signal
func start_signal() C.int32_t {
	return C.int32_t(energysignal.StartSignal())
}

// stop_signal marks the end of a measured iteration.
//
//export stop_signal
func stop_signal() {
	energysignal.StopSignal()
}
