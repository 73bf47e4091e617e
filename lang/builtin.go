package lang

import (
	"log/slog"
	"math"
	"strconv"
	"strings"
)

// NewRootEnv constructs the root scope for one program run, pre-populated
// with the built-in constants and functions. It is built once per run and
// passed into the evaluator; there is no process-wide singleton.
func NewRootEnv() *Env {
	env := NewEnv(nil)

	env.Define("pi", Float(math.Pi))

	for _, fn := range []Builtin{
		{Name: "print", Fn: builtinPrint},
		{Name: "str", Fn: builtinStr},
		{Name: "int", Fn: builtinInt},
		{Name: "float", Fn: builtinFloat},
		{Name: "len", Fn: builtinLen},
	} {
		env.Define(fn.Name, fn)
	}

	return env
}

// builtinPrint writes the concatenation of its stringified arguments, with
// no separator, followed by a newline. This is the evaluator's only
// externally observable side effect channel.
func builtinPrint(in *Interp, args []Value) (Value, error) {
	var b strings.Builder

	for _, arg := range args {
		b.WriteString(arg.String())
	}

	b.WriteByte('\n')

	if _, err := in.out.Write([]byte(b.String())); err != nil {
		return nil, ErrRuntime.Wrap(err).
			With(slog.String("builtin", "print"))
	}

	return Int(0), nil
}

func builtinStr(_ *Interp, args []Value) (Value, error) {
	if err := checkArity("str", len(args), 1); err != nil {
		return nil, err
	}

	return Str(args[0].String()), nil
}

func builtinInt(_ *Interp, args []Value) (Value, error) {
	if err := checkArity("int", len(args), 1); err != nil {
		return nil, err
	}

	switch v := args[0].(type) {
	case Int:
		return v, nil

	case Float:
		return Int(v), nil

	case Char:
		return Int(v), nil

	case Bool:
		if v {
			return Int(1), nil
		}

		return Int(0), nil

	case Str:
		n, err := strconv.ParseInt(string(v), 0, 64)
		if err != nil {
			return nil, ErrTypeMismatch.Wrap(err).
				With(
					slog.String("builtin", "int"),
					slog.String("operand", string(v)),
				)
		}

		return Int(n), nil
	}

	return nil, ErrTypeMismatch.
		With(
			slog.String("builtin", "int"),
			slog.String("operand", args[0].Type().String()),
		)
}

func builtinFloat(_ *Interp, args []Value) (Value, error) {
	if err := checkArity("float", len(args), 1); err != nil {
		return nil, err
	}

	switch v := args[0].(type) {
	case Float:
		return v, nil

	case Int:
		return Float(v), nil

	case Str:
		f, err := strconv.ParseFloat(string(v), 64)
		if err != nil {
			return nil, ErrTypeMismatch.Wrap(err).
				With(
					slog.String("builtin", "float"),
					slog.String("operand", string(v)),
				)
		}

		return Float(f), nil
	}

	return nil, ErrTypeMismatch.
		With(
			slog.String("builtin", "float"),
			slog.String("operand", args[0].Type().String()),
		)
}

func builtinLen(_ *Interp, args []Value) (Value, error) {
	if err := checkArity("len", len(args), 1); err != nil {
		return nil, err
	}

	switch v := args[0].(type) {
	case Str:
		return Int(len(v)), nil

	case *Array:
		return Int(len(v.Elements)), nil
	}

	return nil, ErrTypeMismatch.
		With(
			slog.String("builtin", "len"),
			slog.String("operand", args[0].Type().String()),
		)
}

func checkArity(name string, actual, expected int) error {
	if actual == expected {
		return nil
	}

	return ErrArityMismatch.
		With(
			slog.String("function", name),
			slog.Int("expected", expected),
			slog.Int("actual", actual),
		)
}
