package log

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"
)

// Logger provides a simplified structured logging interface over
// [log/slog]. The zero Logger silently discards every message, so types
// may embed one without requiring configuration.
type Logger struct {
	*slog.Logger

	config
}

// Make creates a new [Logger] that writes to the specified writer.
// The default configuration is [DefaultFormat], [DefaultLevel],
// [DefaultTimeLayout], and caller info disabled.
//
// Optional configuration can be applied using functional options like
// [WithFormat], [WithLevel], [WithTimeLayout], [WithCaller], and
// [WithPretty].
func Make(w io.Writer, opts ...Option) Logger {
	cfg := apply(apply(config{}, WithDefaults(w)), opts...)

	return Logger{
		config: cfg,
		Logger: slog.New(cfg.handler()),
	}
}

// Wrap returns a new [Logger] based on the current logger with the
// provided configuration options applied on top of its existing
// configuration.
func (l Logger) Wrap(opts ...Option) Logger {
	cfg := apply(l.config, opts...)

	return Logger{
		config: cfg,
		Logger: slog.New(cfg.handler()),
	}
}

// With returns a new [Logger] that includes the given attributes in each
// log message.
func (l Logger) With(attrs ...slog.Attr) Logger {
	if l.Logger == nil {
		return l
	}

	return Logger{
		config: l.config,
		Logger: slog.New(l.Logger.Handler().WithAttrs(attrs)),
	}
}

// Level returns the current minimum log level.
func (l Logger) Level() Level {
	if l.Logger == nil {
		return DefaultLevel
	}

	return l.level
}

// TraceContext logs a message at Trace level with the provided context.
func (l Logger) TraceContext(
	ctx context.Context,
	msg string,
	attrs ...slog.Attr,
) {
	l.logContext(ctx, LevelTrace, msg, attrs...)
}

// Trace logs a message at Trace level.
func (l Logger) Trace(msg string, attrs ...slog.Attr) {
	l.TraceContext(context.Background(), msg, attrs...)
}

// DebugContext logs a message at Debug level with the provided context.
func (l Logger) DebugContext(
	ctx context.Context,
	msg string,
	attrs ...slog.Attr,
) {
	l.logContext(ctx, LevelDebug, msg, attrs...)
}

// Debug logs a message at Debug level.
func (l Logger) Debug(msg string, attrs ...slog.Attr) {
	l.DebugContext(context.Background(), msg, attrs...)
}

// InfoContext logs a message at Info level with the provided context.
func (l Logger) InfoContext(
	ctx context.Context,
	msg string,
	attrs ...slog.Attr,
) {
	l.logContext(ctx, LevelInfo, msg, attrs...)
}

// Info logs a message at Info level.
func (l Logger) Info(msg string, attrs ...slog.Attr) {
	l.InfoContext(context.Background(), msg, attrs...)
}

// WarnContext logs a message at Warn level with the provided context.
func (l Logger) WarnContext(
	ctx context.Context,
	msg string,
	attrs ...slog.Attr,
) {
	l.logContext(ctx, LevelWarn, msg, attrs...)
}

// Warn logs a message at Warn level.
func (l Logger) Warn(msg string, attrs ...slog.Attr) {
	l.WarnContext(context.Background(), msg, attrs...)
}

// ErrorContext logs a message at Error level with the provided context.
func (l Logger) ErrorContext(
	ctx context.Context,
	msg string,
	attrs ...slog.Attr,
) {
	l.logContext(ctx, LevelError, msg, attrs...)
}

// Error logs a message at Error level.
func (l Logger) Error(msg string, attrs ...slog.Attr) {
	l.ErrorContext(context.Background(), msg, attrs...)
}

// logContext writes a log message at the specified level with the provided
// context. Zero value loggers silently discard the message.
func (l Logger) logContext(
	ctx context.Context,
	level Level,
	msg string,
	attrs ...slog.Attr,
) {
	if l.Logger == nil {
		return
	}

	l.Logger.LogAttrs(ctx, slog.Level(level), msg, attrs...)
}

// Package-level default logger, reconfigurable via [Config].
//
//nolint:gochecknoglobals
var (
	defaultMutex  sync.RWMutex
	defaultLogger = Make(os.Stderr)
)

// Config reconfigures the package-level default logger.
func Config(opts ...Option) {
	defaultMutex.Lock()
	defer defaultMutex.Unlock()

	defaultLogger = defaultLogger.Wrap(opts...)
}

// Default returns the package-level default logger.
func Default() Logger {
	defaultMutex.RLock()
	defer defaultMutex.RUnlock()

	return defaultLogger
}

// Trace logs a message at Trace level using the default logger.
func Trace(msg string, attrs ...slog.Attr) { Default().Trace(msg, attrs...) }

// Debug logs a message at Debug level using the default logger.
func Debug(msg string, attrs ...slog.Attr) { Default().Debug(msg, attrs...) }

// Info logs a message at Info level using the default logger.
func Info(msg string, attrs ...slog.Attr) { Default().Info(msg, attrs...) }

// Warn logs a message at Warn level using the default logger.
func Warn(msg string, attrs ...slog.Attr) { Default().Warn(msg, attrs...) }

// Error logs a message at Error level using the default logger.
func Error(msg string, attrs ...slog.Attr) { Default().Error(msg, attrs...) }

// TraceContext logs a message at Trace level using the default logger.
func TraceContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	Default().TraceContext(ctx, msg, attrs...)
}

// DebugContext logs a message at Debug level using the default logger.
func DebugContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	Default().DebugContext(ctx, msg, attrs...)
}

// InfoContext logs a message at Info level using the default logger.
func InfoContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	Default().InfoContext(ctx, msg, attrs...)
}

// WarnContext logs a message at Warn level using the default logger.
func WarnContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	Default().WarnContext(ctx, msg, attrs...)
}

// ErrorContext logs a message at Error level using the default logger.
func ErrorContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	Default().ErrorContext(ctx, msg, attrs...)
}

// resolveTimeLayout maps symbolic layout names to time package layouts.
// Unrecognized input is assumed to already be a layout string.
func resolveTimeLayout(layout string) string {
	switch layout {
	case "RFC3339":
		return time.RFC3339
	case "RFC3339Nano":
		return time.RFC3339Nano
	case "RFC1123":
		return time.RFC1123
	case "Kitchen":
		return time.Kitchen
	case "Stamp":
		return time.Stamp
	case "DateTime":
		return time.DateTime
	case "TimeOnly":
		return time.TimeOnly
	case "none", "":
		return ""
	default:
		return layout
	}
}
