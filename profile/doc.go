// Package profile provides optional runtime profiling for the slip
// interpreter.
//
// # Overview
//
// This package integrates [github.com/pkg/profile] to provide runtime profiling
// capabilities with conditional compilation support. Profiling is optional and
// must be enabled at build time using the "pprof" build tag.
//
// When built with profiling disabled (default), all operations are no-ops with
// zero runtime overhead.
//
// # Available Profiling Modes
//
// The following profiling modes are supported when built with the pprof tag:
//
//   - allocs:    Memory allocation profiling (all allocations)
//   - block:     Block (synchronization) profiling
//   - clock:     Wall-clock profiling
//   - cpu:       CPU profiling
//   - goroutine: Goroutine profiling
//   - heap:      Heap memory profiling (live allocations)
//   - mem:       General memory profiling
//   - mutex:     Mutex contention profiling
//   - thread:    Thread creation profiling
//   - trace:     Execution trace profiling
//
// Use [Modes] to retrieve the list of supported modes programmatically.
//
// # Command-Line Usage
//
// The slip command supports profiling through command-line flags when built
// with the pprof tag:
//
//	# Profile the evaluator while running a script
//	./slip --pprof-mode cpu run fib.slip
//
//	# Heap profiling with custom output directory
//	./slip --pprof-mode heap --pprof-dir ./profiles run fib.slip
//
// The default output directory is:
//
//	$XDG_CACHE_HOME/slip/pprof   (Linux/Unix)
//	~/Library/Caches/slip/pprof  (macOS)
//	%LocalAppData%\slip\pprof    (Windows)
//
// # Analyzing Profile Data
//
// Use the go tool pprof command to analyze profile data:
//
//	go tool pprof ./slip /tmp/profiles/cpu.pprof
//	go tool pprof -http=: /tmp/profiles/cpu.pprof
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
