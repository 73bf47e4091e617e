package lang

import (
	"errors"
	"io"
	"log/slog"
	"os"

	"github.com/ardnew/slip/log"
)

// Default limits for the evaluation guards. Either limit may be raised,
// lowered, or disabled (0) with [WithMaxLoopIterations] and
// [WithMaxCallDepth].
const (
	DefaultMaxLoopIterations = 1000
	DefaultMaxCallDepth      = 1000
)

// Interp is the tree-walking evaluator. It is single-threaded and
// synchronous: one Interp must not be shared by concurrent evaluations.
type Interp struct {
	out          io.Writer
	logger       log.Logger
	maxLoopIter  int
	maxCallDepth int
	depth        int
}

// NewInterp creates an evaluator with the default guards, writing print
// output to stdout. Optional configuration can be applied using functional
// options like [WithOutput], [WithLogger], [WithMaxLoopIterations], and
// [WithMaxCallDepth].
func NewInterp(opts ...Option) *Interp {
	in := &Interp{
		out:          os.Stdout,
		maxLoopIter:  DefaultMaxLoopIterations,
		maxCallDepth: DefaultMaxCallDepth,
	}

	for _, opt := range opts {
		opt(in)
	}

	return in
}

// returnSignal propagates a return value outward through statement lists
// until the nearest enclosing function call (or the top level) intercepts
// it. It travels the error path but is not a failure.
type returnSignal struct {
	value Value
}

func (returnSignal) Error() string { return "return" }

// Run evaluates each top-level statement in order against env. The program
// result is the value of the first top-level return, or 0 if none is ever
// reached. Errors wrap [ErrRuntime].
func (in *Interp) Run(prog *Program, env *Env) (Value, error) {
	in.logger.Trace(
		"run program",
		slog.Int("statements", len(prog.Statements)),
	)

	in.depth = 0

	for _, stmt := range prog.Statements {
		_, err := in.Eval(stmt, env)
		if err != nil {
			ret := returnSignal{}
			if errors.As(err, &ret) {
				return ret.value, nil
			}

			return nil, err
		}
	}

	return Int(0), nil
}

// Interactive evaluates each statement of prog against env and returns the
// value of the last statement, or the value of the first return reached.
// Declarations persist in env across calls, which suits a read-eval-print
// session.
func (in *Interp) Interactive(prog *Program, env *Env) (Value, error) {
	in.depth = 0

	result := Value(Int(0))

	for _, stmt := range prog.Statements {
		v, err := in.Eval(stmt, env)
		if err != nil {
			ret := returnSignal{}
			if errors.As(err, &ret) {
				return ret.value, nil
			}

			return nil, err
		}

		result = v
	}

	return result, nil
}

// Eval evaluates a single node against env, dispatching on the node's
// variant. The AST variant set is closed, so the switch is exhaustive.
func (in *Interp) Eval(node Node, env *Env) (Value, error) {
	switch n := node.(type) {
	case NumberNode:
		return Int(n.Value), nil

	case FloatNode:
		return Float(n.Value), nil

	case BoolNode:
		return Bool(n.Value), nil

	case CharNode:
		return Char(n.Code), nil

	case StringNode:
		return Str(n.Value), nil

	case IdentifierNode:
		return env.Lookup(n.Name)

	case UnaryOpNode:
		return in.evalUnary(n, env)

	case BinaryOpNode:
		return in.evalBinary(n, env)

	case ArrayNode:
		return in.evalArrayLiteral(n, env)

	case ArrayAccessNode:
		return in.evalArrayAccess(n, env)

	case ArrayAssignmentNode:
		return in.evalArrayAssignment(n, env)

	case FunctionCallNode:
		return in.evalCall(n, env)

	case FunctionDeclNode:
		fn := &UserFunc{
			Name:   n.Name,
			Params: n.Params,
			Body:   n.Body,
			Env:    env, // the closure captures its defining scope
		}
		env.Define(n.Name, fn)

		return fn, nil

	case VariableDeclNode:
		value, err := in.Eval(n.Value, env)
		if err != nil {
			return nil, err
		}

		env.Define(n.Name, value)

		return value, nil

	case VariableAssignNode:
		value, err := in.Eval(n.Value, env)
		if err != nil {
			return nil, err
		}

		if err := env.Assign(n.Name, value); err != nil {
			return nil, err
		}

		return value, nil

	case ReturnNode:
		value, err := in.Eval(n.Value, env)
		if err != nil {
			return nil, err
		}

		return nil, returnSignal{value: value}

	case IfNode:
		return in.evalIf(n, env)

	case WhileNode:
		return in.evalWhile(n, env)
	}

	return nil, ErrRuntime.
		With(slog.String("node", string(node.Kind())))
}

func (in *Interp) evalUnary(n UnaryOpNode, env *Env) (Value, error) {
	operand, err := in.Eval(n.Operand, env)
	if err != nil {
		return nil, err
	}

	switch n.Op {
	case KindPlus:
		switch operand.Type() {
		case TypeInt, TypeFloat:
			return operand, nil
		}

	case KindMinus:
		switch v := operand.(type) {
		case Int:
			return -v, nil
		case Float:
			return -v, nil
		}
	}

	return nil, ErrTypeMismatch.
		With(
			slog.String("op", kindNames[n.Op]),
			slog.String("operand", operand.Type().String()),
		)
}

func (in *Interp) evalBinary(n BinaryOpNode, env *Env) (Value, error) {
	switch n.Op {
	case KindPlusAssign, KindMinusAssign:
		return in.evalCompoundAssign(n, env)

	case KindAnd, KindOr:
		return in.evalLogical(n, env)
	}

	left, err := in.Eval(n.Left, env)
	if err != nil {
		return nil, err
	}

	right, err := in.Eval(n.Right, env)
	if err != nil {
		return nil, err
	}

	switch n.Op {
	case KindPlus, KindMinus, KindStar, KindSlash, KindPercent:
		return evalArithmetic(n.Op, left, right)

	case KindEqual, KindNotEqual,
		KindLess, KindGreater, KindLessEqual, KindGreaterEqual:
		return evalComparison(n.Op, left, right)

	case KindBitAnd, KindBitOr, KindBitXor, KindShiftL, KindShiftR:
		return evalBitwise(n.Op, left, right)
	}

	return nil, ErrTypeMismatch.
		With(slog.String("op", kindNames[n.Op]))
}

// evalCompoundAssign handles += and -=: the left side must be an
// identifier, the new value is computed from its current binding, and
// assignment walks the scope chain like any other assignment.
func (in *Interp) evalCompoundAssign(n BinaryOpNode, env *Env) (Value, error) {
	ident, ok := n.Left.(IdentifierNode)
	if !ok {
		return nil, ErrTypeMismatch.
			With(
				slog.String("op", kindNames[n.Op]),
				slog.String("issue", "left side must be an identifier"),
			)
	}

	current, err := env.Lookup(ident.Name)
	if err != nil {
		return nil, err
	}

	right, err := in.Eval(n.Right, env)
	if err != nil {
		return nil, err
	}

	op := KindPlus
	if n.Op == KindMinusAssign {
		op = KindMinus
	}

	value, err := evalArithmetic(op, current, right)
	if err != nil {
		return nil, err
	}

	if err := env.Assign(ident.Name, value); err != nil {
		return nil, err
	}

	return value, nil
}

// evalLogical short-circuits: the right operand is evaluated only if the
// left does not already determine the result.
func (in *Interp) evalLogical(n BinaryOpNode, env *Env) (Value, error) {
	left, err := in.Eval(n.Left, env)
	if err != nil {
		return nil, err
	}

	lb, ok := left.(Bool)
	if !ok {
		return nil, ErrTypeMismatch.
			With(
				slog.String("op", kindNames[n.Op]),
				slog.String("operand", left.Type().String()),
			)
	}

	if n.Op == KindAnd && !bool(lb) {
		return Bool(false), nil
	}

	if n.Op == KindOr && bool(lb) {
		return Bool(true), nil
	}

	right, err := in.Eval(n.Right, env)
	if err != nil {
		return nil, err
	}

	rb, ok := right.(Bool)
	if !ok {
		return nil, ErrTypeMismatch.
			With(
				slog.String("op", kindNames[n.Op]),
				slog.String("operand", right.Type().String()),
			)
	}

	return rb, nil
}

func (in *Interp) evalArrayLiteral(n ArrayNode, env *Env) (Value, error) {
	elems := make([]Value, len(n.Elements))

	for i, expr := range n.Elements {
		value, err := in.Eval(expr, env)
		if err != nil {
			return nil, err
		}

		elems[i] = value
	}

	return &Array{Elements: elems}, nil
}

func (in *Interp) evalArrayAccess(n ArrayAccessNode, env *Env) (Value, error) {
	array, index, err := in.evalArrayIndex(n.Array, n.Index, env)
	if err != nil {
		return nil, err
	}

	return array.Elements[index], nil
}

func (in *Interp) evalArrayAssignment(
	n ArrayAssignmentNode,
	env *Env,
) (Value, error) {
	array, index, err := in.evalArrayIndex(n.Array, n.Index, env)
	if err != nil {
		return nil, err
	}

	value, err := in.Eval(n.Value, env)
	if err != nil {
		return nil, err
	}

	// Arrays are shared by reference: this mutation is visible through
	// every alias of the array.
	array.Elements[index] = value

	return value, nil
}

// evalArrayIndex evaluates the receiver and index expressions and checks
// that the receiver is an array and the index an integer in [0, length).
func (in *Interp) evalArrayIndex(
	arrayExpr, indexExpr Node,
	env *Env,
) (*Array, int, error) {
	receiver, err := in.Eval(arrayExpr, env)
	if err != nil {
		return nil, 0, err
	}

	array, ok := receiver.(*Array)
	if !ok {
		return nil, 0, ErrTypeMismatch.
			With(
				slog.String("op", "index"),
				slog.String("operand", receiver.Type().String()),
			)
	}

	index, err := in.Eval(indexExpr, env)
	if err != nil {
		return nil, 0, err
	}

	i, ok := index.(Int)
	if !ok {
		return nil, 0, ErrTypeMismatch.
			With(
				slog.String("op", "index"),
				slog.String("operand", index.Type().String()),
			)
	}

	if i < 0 || int(i) >= len(array.Elements) {
		return nil, 0, ErrIndexOutOfBounds.
			With(
				slog.Int64("index", int64(i)),
				slog.Int("length", len(array.Elements)),
			)
	}

	return array, int(i), nil
}

func (in *Interp) evalCall(n FunctionCallNode, env *Env) (Value, error) {
	callee, err := env.Lookup(n.Name)
	if err != nil {
		return nil, err
	}

	// The callee must be callable before any argument is evaluated, so a
	// bad call site never runs argument side effects.
	switch callee.(type) {
	case Builtin, *UserFunc:
	default:
		return nil, ErrNotCallable.
			With(
				slog.String("name", n.Name),
				slog.String("type", callee.Type().String()),
			)
	}

	args := make([]Value, len(n.Args))

	for i, expr := range n.Args {
		value, err := in.Eval(expr, env)
		if err != nil {
			return nil, err
		}

		args[i] = value
	}

	if fn, ok := callee.(Builtin); ok {
		return fn.Fn(in, args)
	}

	return in.callUser(callee.(*UserFunc), args)
}

// callUser invokes a user-defined function: a fresh child scope of the
// function's captured environment (not of the caller's), parameters bound
// positionally, body statements evaluated in order. A return statement
// short-circuits; otherwise the call yields the last evaluated statement's
// value, or 0 for an empty body.
func (in *Interp) callUser(fn *UserFunc, args []Value) (Value, error) {
	if len(args) != len(fn.Params) {
		return nil, ErrArityMismatch.
			With(
				slog.String("function", fn.Name),
				slog.Int("expected", len(fn.Params)),
				slog.Int("actual", len(args)),
			)
	}

	if in.maxCallDepth > 0 && in.depth >= in.maxCallDepth {
		return nil, ErrCallDepth.
			With(
				slog.String("function", fn.Name),
				slog.Int("limit", in.maxCallDepth),
			)
	}

	in.depth++
	defer func() { in.depth-- }()

	in.logger.Trace(
		"call function",
		slog.String("function", fn.Name),
		slog.Int("args", len(args)),
		slog.Int("depth", in.depth),
	)

	scope := NewEnv(fn.Env)
	for i, param := range fn.Params {
		scope.Define(param, args[i])
	}

	result := Value(Int(0))

	for _, stmt := range fn.Body {
		value, err := in.Eval(stmt, scope)
		if err != nil {
			ret := returnSignal{}
			if errors.As(err, &ret) {
				return ret.value, nil
			}

			return nil, err
		}

		result = value
	}

	return result, nil
}

func (in *Interp) evalIf(n IfNode, env *Env) (Value, error) {
	cond, err := in.Eval(n.Cond, env)
	if err != nil {
		return nil, err
	}

	truthy, err := isTruthy(cond)
	if err != nil {
		return nil, err
	}

	body := n.Body
	if !truthy {
		body = n.Else
	}

	// Each branch executes in a fresh child scope; a return inside the
	// branch propagates out through the error path.
	scope := NewEnv(env)

	for _, stmt := range body {
		if _, err := in.Eval(stmt, scope); err != nil {
			return nil, err
		}
	}

	return Int(0), nil
}

func (in *Interp) evalWhile(n WhileNode, env *Env) (Value, error) {
	iterations := 0

	for {
		cond, err := in.Eval(n.Cond, env)
		if err != nil {
			return nil, err
		}

		truthy, err := isTruthy(cond)
		if err != nil {
			return nil, err
		}

		if !truthy {
			return Int(0), nil
		}

		if in.maxLoopIter > 0 && iterations >= in.maxLoopIter {
			return nil, ErrLoopLimit.
				With(slog.Int("limit", in.maxLoopIter))
		}

		iterations++

		// A fresh scope per iteration keeps declarations inside the body
		// from leaking across iterations.
		scope := NewEnv(env)

		for _, stmt := range n.Body {
			if _, err := in.Eval(stmt, scope); err != nil {
				return nil, err
			}
		}
	}
}

// isTruthy reports the boolean interpretation of a condition value:
// booleans as themselves, numbers as non-zero. Other types are not valid
// conditions.
func isTruthy(v Value) (bool, error) {
	switch v := v.(type) {
	case Bool:
		return bool(v), nil
	case Int:
		return v != 0, nil
	case Float:
		return v != 0, nil
	}

	return false, ErrTypeMismatch.
		With(
			slog.String("op", "condition"),
			slog.String("operand", v.Type().String()),
		)
}

// evalArithmetic applies + - * / % to two numeric operands, promoting to
// float when either operand is a float. Integer division truncates; a zero
// right operand for / or % fails.
func evalArithmetic(op Kind, left, right Value) (Value, error) {
	li, lInt := left.(Int)
	ri, rInt := right.(Int)

	if lInt && rInt {
		switch op {
		case KindPlus:
			return li + ri, nil
		case KindMinus:
			return li - ri, nil
		case KindStar:
			return li * ri, nil
		case KindSlash:
			if ri == 0 {
				return nil, ErrDivisionByZero.
					With(slog.Int64("left", int64(li)))
			}

			return li / ri, nil
		case KindPercent:
			if ri == 0 {
				return nil, ErrDivisionByZero.
					With(slog.Int64("left", int64(li)))
			}

			return li % ri, nil
		}
	}

	lf, lOK := toFloat(left)
	rf, rOK := toFloat(right)

	if !lOK || !rOK {
		return nil, ErrTypeMismatch.
			With(
				slog.String("op", kindNames[op]),
				slog.String("left", left.Type().String()),
				slog.String("right", right.Type().String()),
			)
	}

	switch op {
	case KindPlus:
		return Float(lf + rf), nil
	case KindMinus:
		return Float(lf - rf), nil
	case KindStar:
		return Float(lf * rf), nil
	case KindSlash:
		if rf == 0 {
			return nil, ErrDivisionByZero.
				With(slog.Float64("left", lf))
		}

		return Float(lf / rf), nil
	case KindPercent:
		if rf == 0 {
			return nil, ErrDivisionByZero.
				With(slog.Float64("left", lf))
		}

		return nil, ErrTypeMismatch.
			With(
				slog.String("op", kindNames[op]),
				slog.String("issue", "modulo requires integer operands"),
			)
	}

	return nil, ErrTypeMismatch.
		With(slog.String("op", kindNames[op]))
}

// evalComparison applies the comparison operators. Equality is defined for
// any same-type pair and for mixed numeric pairs; ordering is defined for
// numbers and strings.
func evalComparison(op Kind, left, right Value) (Value, error) {
	// Numeric pairs compare by value with float promotion.
	lf, lNum := toFloat(left)
	rf, rNum := toFloat(right)

	if lNum && rNum {
		switch op {
		case KindEqual:
			return Bool(lf == rf), nil
		case KindNotEqual:
			return Bool(lf != rf), nil
		case KindLess:
			return Bool(lf < rf), nil
		case KindGreater:
			return Bool(lf > rf), nil
		case KindLessEqual:
			return Bool(lf <= rf), nil
		case KindGreaterEqual:
			return Bool(lf >= rf), nil
		}
	}

	if ls, ok := left.(Str); ok {
		if rs, ok := right.(Str); ok {
			switch op {
			case KindEqual:
				return Bool(ls == rs), nil
			case KindNotEqual:
				return Bool(ls != rs), nil
			case KindLess:
				return Bool(ls < rs), nil
			case KindGreater:
				return Bool(ls > rs), nil
			case KindLessEqual:
				return Bool(ls <= rs), nil
			case KindGreaterEqual:
				return Bool(ls >= rs), nil
			}
		}
	}

	// Equality (only) extends to all remaining pairs. Values of differing
	// types are unequal rather than a type error. Arrays and functions
	// compare by identity, not contents; Builtin holds a func field, so
	// it never goes through interface comparison.
	if op == KindEqual || op == KindNotEqual {
		eq := false

		if left.Type() == right.Type() {
			switch l := left.(type) {
			case Builtin:
				r, ok := right.(Builtin)
				eq = ok && l.Name == r.Name

			default:
				eq = left == right
			}
		}

		if op == KindNotEqual {
			eq = !eq
		}

		return Bool(eq), nil
	}

	return nil, ErrTypeMismatch.
		With(
			slog.String("op", kindNames[op]),
			slog.String("left", left.Type().String()),
			slog.String("right", right.Type().String()),
		)
}

// evalBitwise applies | ^ & << >> to integer operands.
func evalBitwise(op Kind, left, right Value) (Value, error) {
	li, lOK := left.(Int)
	ri, rOK := right.(Int)

	if !lOK || !rOK {
		return nil, ErrTypeMismatch.
			With(
				slog.String("op", kindNames[op]),
				slog.String("left", left.Type().String()),
				slog.String("right", right.Type().String()),
			)
	}

	switch op {
	case KindBitAnd:
		return li & ri, nil
	case KindBitOr:
		return li | ri, nil
	case KindBitXor:
		return li ^ ri, nil
	case KindShiftL, KindShiftR:
		if ri < 0 {
			return nil, ErrTypeMismatch.
				With(
					slog.String("op", kindNames[op]),
					slog.String("issue", "negative shift count"),
				)
		}

		if op == KindShiftL {
			return li << uint64(ri), nil
		}

		return li >> uint64(ri), nil
	}

	return nil, ErrTypeMismatch.
		With(slog.String("op", kindNames[op]))
}

// toFloat converts a numeric value to float64, reporting whether the value
// was numeric.
func toFloat(v Value) (float64, bool) {
	switch v := v.(type) {
	case Int:
		return float64(v), true
	case Float:
		return float64(v), true
	}

	return 0, false
}
