// Package cli contains the command line interface for slip.
//
// # Usage
//
// The CLI provides logging and profiling configuration alongside the
// interpreter commands:
//
//	slip run script.slip
//	slip --log-level=debug run script.slip
//	slip repl
//	slip ast script.slip
//	slip tokens script.slip
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-time-layout: Set timestamp format (RFC3339, RFC3339Nano, etc.)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Enable colorized pretty printing
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o slip .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default:
//     ~/.cache/slip/pprof)
//
// # Examples
//
//	# Debug logging with CPU profiling
//	slip --log-level=debug --pprof-mode=cpu run fib.slip
//
//	# Dump the syntax tree of a script read from stdin
//	slip ast -
package cli
