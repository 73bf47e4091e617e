package log

import "io"

// Option applies a configuration option to a logger config.
type Option func(config) config

// apply applies multiple options to a config.
func apply(c config, opts ...Option) config {
	for _, opt := range opts {
		c = opt(c)
	}

	return c
}

// WithDefaults returns a functional option that sets the default
// configuration: [DefaultLevel], [DefaultFormat], [DefaultTimeLayout],
// caller info disabled, and pretty printing enabled.
func WithDefaults(w io.Writer) Option {
	return func(c config) config {
		if w == nil {
			w = io.Discard
		}

		c.output = w
		c.timeLayout = DefaultTimeLayout
		c.level = DefaultLevel
		c.format = DefaultFormat
		c.caller = DefaultCaller
		c.pretty = DefaultPretty

		return c
	}
}

// WithOutput returns a functional option that sets the output [io.Writer]
// for log messages. If a nil writer is provided, [io.Discard] is used
// instead.
func WithOutput(w io.Writer) Option {
	return func(c config) config {
		if w == nil {
			w = io.Discard
		}

		c.output = w

		return c
	}
}

// WithLevel returns a functional option that sets the minimum log level.
func WithLevel(level Level) Option {
	return func(c config) config {
		c.level = level

		return c
	}
}

// WithFormat returns a functional option that sets the output format.
func WithFormat(format Format) Option {
	return func(c config) config {
		c.format = format

		return c
	}
}

// WithTimeLayout returns a functional option that sets the timestamp
// layout. Symbolic names from the time package (e.g. "RFC3339") are
// resolved; an empty layout suppresses timestamps entirely.
func WithTimeLayout(layout string) Option {
	return func(c config) config {
		c.timeLayout = resolveTimeLayout(layout)

		return c
	}
}

// WithCaller returns a functional option that toggles caller information
// in log output.
func WithCaller(enabled bool) Option {
	return func(c config) config {
		c.caller = enabled

		return c
	}
}

// WithPretty returns a functional option that toggles colorized pretty
// printing of text output.
func WithPretty(enabled bool) Option {
	return func(c config) config {
		c.pretty = enabled

		return c
	}
}
