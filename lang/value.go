package lang

import (
	"strconv"
	"strings"
)

// ValueType identifies the runtime type of a value, primarily for operator
// type checks and error messages.
type ValueType int

const (
	TypeInt ValueType = iota
	TypeFloat
	TypeBool
	TypeChar
	TypeString
	TypeArray
	TypeFunction
)

// String returns a string representation of the value type.
func (vt ValueType) String() string {
	switch vt {
	case TypeInt:
		return "Int"
	case TypeFloat:
		return "Float"
	case TypeBool:
		return "Bool"
	case TypeChar:
		return "Char"
	case TypeString:
		return "String"
	case TypeArray:
		return "Array"
	case TypeFunction:
		return "Function"
	default:
		return "Unknown"
	}
}

// Value is a runtime value produced by evaluation. Variables and callables
// share this representation: an [Env] binding may hold either.
type Value interface {
	Type() ValueType

	// String renders the value the way the print and str builtins do.
	String() string
}

// Int is a 64-bit signed integer value.
type Int int64

func (Int) Type() ValueType { return TypeInt }

func (v Int) String() string { return strconv.FormatInt(int64(v), 10) }

// Float is a 64-bit floating-point value.
type Float float64

func (Float) Type() ValueType { return TypeFloat }

func (v Float) String() string {
	return strconv.FormatFloat(float64(v), 'g', -1, 64)
}

// Bool is a boolean value.
type Bool bool

func (Bool) Type() ValueType { return TypeBool }

func (v Bool) String() string { return strconv.FormatBool(bool(v)) }

// Char is a single code point. It displays as its character, not its code.
type Char rune

func (Char) Type() ValueType { return TypeChar }

func (v Char) String() string { return string(rune(v)) }

// Str is a string value.
type Str string

func (Str) Type() ValueType { return TypeString }

func (v Str) String() string { return string(v) }

// Array is an ordered, mutable, index-addressable container. Arrays are
// shared by reference: binding one to a second variable aliases the same
// backing elements, so mutation through either is visible through both.
type Array struct {
	Elements []Value
}

func (*Array) Type() ValueType { return TypeArray }

func (v *Array) String() string {
	elems := make([]string, len(v.Elements))
	for i, e := range v.Elements {
		elems[i] = e.String()
	}

	return "[" + strings.Join(elems, ", ") + "]"
}

// Function is a callable value: either a [Builtin] implemented natively or
// a [UserFunc] declared in user source.
type Function interface {
	Value

	// FuncName returns the name the function was declared or registered
	// under, for error messages.
	FuncName() string
}

// Builtin is a function implemented by the interpreter itself and
// pre-registered in the root scope.
type Builtin struct {
	Name string
	Fn   func(in *Interp, args []Value) (Value, error)
}

func (Builtin) Type() ValueType { return TypeFunction }

func (v Builtin) String() string { return "<builtin " + v.Name + ">" }

func (v Builtin) FuncName() string { return v.Name }

// UserFunc is a function declared in user source. Env is the scope in which
// the declaration was evaluated: calling the function pushes a child of
// this captured scope, not of the caller's scope. The captured scope stays
// alive as long as the function value does.
type UserFunc struct {
	Name   string
	Params []string
	Body   []Node
	Env    *Env
}

func (*UserFunc) Type() ValueType { return TypeFunction }

func (v *UserFunc) String() string { return "<fn " + v.Name + ">" }

func (v *UserFunc) FuncName() string { return v.Name }
