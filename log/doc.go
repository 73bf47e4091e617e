// Package log provides a simplified structured logging interface over
// [log/slog], with a Trace level below Debug, selectable text/JSON output,
// optional colorized pretty printing, and a reconfigurable package-level
// default logger.
//
// The zero [Logger] discards everything, so components may carry a Logger
// field without requiring callers to configure one.
package log
