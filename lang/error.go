package lang

import (
	"errors"
	"log/slog"
	"strings"
)

// The three error categories of the core. Every error produced by
// [Tokenize], [Parse], and the evaluator wraps exactly one of these, so
// collaborators can classify failures with errors.Is.
var (
	ErrLex     = NewError("lex error")
	ErrParse   = NewError("parse error")
	ErrRuntime = NewError("runtime error")
)

// Predefined errors (sentinel values).
var (
	ErrUnknownChar        = ErrLex.Extend("unknown character")
	ErrUnterminatedString = ErrLex.Extend("unterminated string literal")
	ErrUnterminatedChar   = ErrLex.Extend("unterminated character literal")
	ErrMalformedNumber    = ErrLex.Extend("malformed number literal")

	ErrUnexpectedToken = ErrParse.Extend("unexpected token")
	ErrUnexpectedEOF   = ErrParse.Extend("unexpected end of input")

	ErrUndefinedName    = ErrRuntime.Extend("undefined name")
	ErrNotCallable      = ErrRuntime.Extend("not a callable value")
	ErrArityMismatch    = ErrRuntime.Extend("wrong number of arguments")
	ErrTypeMismatch     = ErrRuntime.Extend("wrong operand type")
	ErrDivisionByZero   = ErrRuntime.Extend("division by zero")
	ErrIndexOutOfBounds = ErrRuntime.Extend("array index out of bounds")
	ErrLoopLimit        = ErrRuntime.Extend("loop iteration limit exceeded")
	ErrCallDepth        = ErrRuntime.Extend("call depth limit exceeded")
	ErrReadInput        = NewError("failed to read input")
)

// Error represents an error with optional structured logging attributes.
// It implements both error and slog.LogValuer interfaces.
type Error struct {
	msg   string
	base  *Error      // Sentinel this error derives from (for errors.Is)
	err   error       // Wrapped error (for errors.Unwrap)
	attrs []slog.Attr // Attributes for structured logging
}

// NewError creates a new Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// WrapError wraps a standard error into an Error.
func WrapError(err error) *Error {
	ee := &Error{}
	if errors.As(err, &ee) {
		return ee
	}

	return &Error{err: err}
}

// Extend derives a more specific sentinel from e. The derived error still
// matches e under errors.Is.
func (e *Error) Extend(msg string) *Error {
	return &Error{msg: msg, base: e}
}

// Error implements the error interface. Attribute values are appended in
// parentheses so CLI output carries the same detail as structured logs.
func (e *Error) Error() string {
	part := make([]string, 0, 2)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	msg := strings.Join(part, ": ")

	if len(e.attrs) > 0 {
		detail := make([]string, 0, len(e.attrs))
		for _, a := range e.attrs {
			detail = append(detail, a.Key+"="+a.Value.String())
		}

		msg += " (" + strings.Join(detail, ", ") + ")"
	}

	return msg
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is this error or one of the sentinels it was
// derived from.
func (e *Error) Is(target error) bool {
	for s := e; s != nil; s = s.base {
		if error(s) == target {
			return true
		}
	}

	return false
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+2)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		msg:   e.msg,
		base:  e,
		err:   err,
		attrs: e.attrs, // Share attrs
	}
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	return &Error{
		msg:   e.msg,
		base:  e,
		err:   e.err,
		attrs: newAttrs,
	}
}
