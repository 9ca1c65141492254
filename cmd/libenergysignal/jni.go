//go:build linux && (amd64 || 386) && cgo

package main

/*
#include <stdint.h>
*/
import "C"

import (
	"unsafe"

	"github.com/energybench/energysignal"
)

// JNI bindings for a Java class named EnergySignal:
//
//	public class EnergySignal {
//	    public static native int startSignal();
//	    public static native void stopSignal();
//	}
//
// The JNIEnv and jclass parameters are opaque: the bridge never touches the
// JVM, so no JNI headers are required.

//export Java_EnergySignal_startSignal
func Java_EnergySignal_startSignal(env unsafe.Pointer, class unsafe.Pointer) C.int32_t {
	_, _ = env, class
	return C.int32_t(energysignal.StartSignal())
}

//export Java_EnergySignal_stopSignal
func Java_EnergySignal_stopSignal(env unsafe.Pointer, class unsafe.Pointer) {
	_, _ = env, class
	energysignal.StopSignal()
}
