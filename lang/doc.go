// Package lang implements the slip scripting language: a lexer producing a
// flat token sequence, a recursive-descent parser with precedence climbing
// building an immutable AST, and a tree-walking evaluator with lexical
// scoping, first-class functions, arrays, and control flow.
//
// # Pipeline
//
// Source text flows through three entry points, each failing fast with a
// classified error:
//
//	tokens, err := lang.Tokenize(source)   // []Token   | ErrLex
//	prog, err := lang.Parse(tokens)        // *Program  | ErrParse
//	in := lang.NewInterp()
//	result, err := in.Run(prog, lang.NewRootEnv()) // Value | ErrRuntime
//
// # Grammar
//
// Informal EBNF:
//
//	Program     → Statement* EOF
//	Statement   → 'fn' Name '(' Params? ')' Block
//	            | 'if' '(' Expr ')' Body ('else' Body)?
//	            | 'while' '(' Expr ')' Body
//	            | 'return' Expr
//	            | 'var' Name '=' Expr
//	            | Name '=' Expr
//	            | Name 'at' Expr '=' Expr
//	            | Expr
//	Body        → Block | Statement
//	Block       → '{' Statement* '}'
//	Expr        → binary expression over the precedence table
//	Primary     → literal | Name | Name '(' Args? ')' | Name '[' Expr ']'
//	            | '(' Expr ')' | '[' Args? ']'
//
// Precedence, lowest first: compound assignment and logical (&& ||),
// equality and relational, additive, multiplicative and modulo, bitwise.
// Unary + and - bind tighter than all binary operators.
//
// # Scoping
//
// An [Env] is one lexical nesting level: declarations write to the
// immediate scope, lookups and assignments walk parent links. Function
// values capture their defining scope (closures), so a function declared in
// scope A and called from scope B sees A's bindings for free variables.
//
// # Evaluation guards
//
// The evaluator bounds while-loop iterations and call depth so runaway
// programs fail with a diagnosable error instead of hanging or exhausting
// the host stack. Both limits are configurable per [Interp].
package lang
