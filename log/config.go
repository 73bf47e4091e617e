package log

import (
	"io"
	"log/slog"
	"strings"
	"time"
)

// Level represents the severity of a log message.
type Level slog.Level

const levelTraceMask = -8

const (
	LevelTrace Level = Level(levelTraceMask)
	LevelDebug Level = Level(slog.LevelDebug)
	LevelInfo  Level = Level(slog.LevelInfo)
	LevelWarn  Level = Level(slog.LevelWarn)
	LevelError Level = Level(slog.LevelError)
)

// DefaultLevel is the default log level.
const DefaultLevel = LevelInfo

// String returns the lowercase name of the level.
func (l Level) String() string {
	switch l {
	case LevelTrace:
		return "trace"
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return slog.Level(l).String()
	}
}

// ParseLevel parses a string representation of a log level.
// Valid level strings are "trace", "debug", "info", "warn", and "error";
// unrecognized input yields [DefaultLevel].
func ParseLevel(s string) Level {
	// Check for "trace" explicitly since slog.Level.UnmarshalText doesn't
	// recognize it
	if strings.EqualFold(s, "trace") {
		return LevelTrace
	}

	l := new(slog.Level)

	err := l.UnmarshalText([]byte(s))
	if err != nil {
		return DefaultLevel
	}

	return Level(*l)
}

// Format represents the output format for log messages.
type Format int

const (
	FormatText Format = iota
	FormatJSON
)

// DefaultFormat is the default log message format.
const DefaultFormat = FormatText

// String returns the lowercase name of the format.
func (f Format) String() string {
	if f == FormatJSON {
		return "json"
	}

	return "text"
}

// ParseFormat parses a string representation of a log format.
// Valid format strings are "json" and "text".
func ParseFormat(s string) Format {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON
	case "text":
		return FormatText
	default:
		return DefaultFormat
	}
}

// DefaultTimeLayout is the default used when no valid time layout is
// provided.
const DefaultTimeLayout = time.RFC3339

// DefaultCaller is the default setting for including caller information in
// log output.
const DefaultCaller = false

// DefaultPretty is the default setting for colorized pretty printing.
const DefaultPretty = true

// config holds the configuration options for a Logger.
type config struct {
	output     io.Writer
	timeLayout string
	level      Level
	format     Format
	caller     bool
	pretty     bool
}

// handler creates a slog.Handler based on the current configuration.
func (c config) handler() slog.Handler {
	opts := &slog.HandlerOptions{
		AddSource: c.caller,
		Level:     slog.Level(c.level),
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				if t, ok := a.Value.Any().(time.Time); ok {
					if c.timeLayout == "" {
						return slog.Attr{}
					}

					a.Value = slog.StringValue(t.Format(c.timeLayout))
				}
			}

			// Replace level with custom string representation to show
			// "TRACE" instead of "DEBUG-4".
			if a.Key == slog.LevelKey {
				if level, ok := a.Value.Any().(slog.Level); ok {
					a.Value = slog.StringValue(
						strings.ToUpper(Level(level).String()),
					)
				}
			}

			return a
		},
	}

	if c.pretty && c.format == FormatText {
		return newPrettyHandler(c.output, opts)
	}

	if c.format == FormatJSON {
		return slog.NewJSONHandler(c.output, opts)
	}

	return slog.NewTextHandler(c.output, opts)
}
