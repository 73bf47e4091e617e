package lang

import (
	"io"

	"github.com/ardnew/slip/log"
)

// Option applies a configuration option to an [Interp].
type Option func(*Interp)

// WithOutput sets the writer that the print builtin writes to.
// If a nil writer is provided, [io.Discard] is used instead.
func WithOutput(w io.Writer) Option {
	return func(in *Interp) {
		if w == nil {
			w = io.Discard
		}

		in.out = w
	}
}

// WithLogger sets the structured logger used for trace-level evaluation
// events. The zero logger discards everything.
func WithLogger(logger log.Logger) Option {
	return func(in *Interp) {
		in.logger = logger
	}
}

// WithMaxLoopIterations bounds each while loop to at most n iterations so
// runaway loops fail predictably instead of hanging. Zero disables the
// guard.
func WithMaxLoopIterations(n int) Option {
	return func(in *Interp) {
		in.maxLoopIter = n
	}
}

// WithMaxCallDepth bounds function call nesting so runaway recursion fails
// with a diagnosable error instead of exhausting the host stack. Zero
// disables the guard.
func WithMaxCallDepth(n int) Option {
	return func(in *Interp) {
		in.maxCallDepth = n
	}
}
