// Command libenergysignal builds the C-callable marker library used to
// instrument workloads written in other languages. Build it as a shared
// library:
//
//	go build -buildmode=c-shared -o libenergysignal.so ./cmd/libenergysignal
//
// The library exposes two functions with C linkage, start_signal and
// stop_signal, plus JNI bindings for a Java class named EnergySignal on
// Linux x86/x86_64. All of them forward directly to the energysignal
// package and add no logic of their own.
package main

// main is never called; the entry points are the exported C symbols.
func main() {}
