package lang

import (
	"maps"
	"slices"
)

// Kind classifies a lexical token.
type Kind int

const (
	// KindNumber is an integer literal (decimal, hexadecimal, or binary).
	KindNumber Kind = iota

	// KindFloat is a floating-point literal with exactly one decimal point.
	KindFloat

	// KindBool is a boolean literal keyword.
	KindBool

	// KindString is a double-quoted string literal.
	KindString

	// KindChar is a single-quoted character literal.
	KindChar

	// KindIdentifier is a user-defined name.
	KindIdentifier

	// KindKeyword is a reserved word from keywordTable.
	KindKeyword

	// Arithmetic operators.
	KindPlus    // +
	KindMinus   // -
	KindStar    // *
	KindSlash   // /
	KindPercent // %

	// Comparison operators.
	KindEqual        // ==
	KindNotEqual     // !=
	KindLess         // <
	KindGreater      // >
	KindLessEqual    // <=
	KindGreaterEqual // >=

	// Logical operators.
	KindAnd // &&
	KindOr  // ||

	// Bitwise operators.
	KindBitAnd // &
	KindBitOr  // |
	KindBitXor // ^
	KindShiftL // <<
	KindShiftR // >>

	// Assignment operators.
	KindAssign      // =
	KindPlusAssign  // +=
	KindMinusAssign // -=

	// Delimiters.
	KindLParen   // (
	KindRParen   // )
	KindLBrace   // {
	KindRBrace   // }
	KindLBracket // [
	KindRBracket // ]
	KindComma    // ,
)

// String returns a human-readable name for the token kind.
func (k Kind) String() string {
	name, ok := kindNames[k]
	if !ok {
		return "Unknown"
	}

	return name
}

//nolint:gochecknoglobals
var kindNames = map[Kind]string{
	KindNumber:       "Number",
	KindFloat:        "Float",
	KindBool:         "Bool",
	KindString:       "String",
	KindChar:         "Char",
	KindIdentifier:   "Identifier",
	KindKeyword:      "Keyword",
	KindPlus:         "Plus",
	KindMinus:        "Minus",
	KindStar:         "Star",
	KindSlash:        "Slash",
	KindPercent:      "Percent",
	KindEqual:        "Equal",
	KindNotEqual:     "NotEqual",
	KindLess:         "Less",
	KindGreater:      "Greater",
	KindLessEqual:    "LessEqual",
	KindGreaterEqual: "GreaterEqual",
	KindAnd:          "And",
	KindOr:           "Or",
	KindBitAnd:       "BitAnd",
	KindBitOr:        "BitOr",
	KindBitXor:       "BitXor",
	KindShiftL:       "ShiftL",
	KindShiftR:       "ShiftR",
	KindAssign:       "Assign",
	KindPlusAssign:   "PlusAssign",
	KindMinusAssign:  "MinusAssign",
	KindLParen:       "LParen",
	KindRParen:       "RParen",
	KindLBrace:       "LBrace",
	KindRBrace:       "RBrace",
	KindLBracket:     "LBracket",
	KindRBracket:     "RBracket",
	KindComma:        "Comma",
}

// Token is a classified lexical unit produced by [Tokenize].
// Tokens are immutable and carry no position information; errors reference
// the token literal itself.
type Token struct {
	Kind    Kind
	Literal string
}

// String formats the token as "Kind(literal)" for error messages and the
// tokens debug command.
func (t Token) String() string {
	return t.Kind.String() + "(" + t.Literal + ")"
}

// Reserved words of the language. Boolean literals are classified separately
// so the parser never needs to distinguish them from control keywords.
//
//nolint:gochecknoglobals
var (
	keywordTable = map[string]struct{}{
		"return": {},
		"fn":     {},
		"var":    {},
		"if":     {},
		"else":   {},
		"while":  {},
		"at":     {},
	}

	boolTable = map[string]string{
		"true":  "true",
		"True":  "true",
		"false": "false",
		"False": "false",
	}
)

// Keywords returns the reserved words of the language, including the
// canonical boolean literals, in sorted order.
func Keywords() []string {
	words := slices.Collect(maps.Keys(keywordTable))
	words = append(words, "true", "false")
	slices.Sort(words)

	return words
}

// Single-character symbols. Two-character operators are matched greedily by
// the lexer before consulting this table.
//
//nolint:gochecknoglobals
var symbolTable = map[byte]Kind{
	'+': KindPlus,
	'-': KindMinus,
	'*': KindStar,
	'/': KindSlash,
	'%': KindPercent,
	'<': KindLess,
	'>': KindGreater,
	'=': KindAssign,
	'&': KindBitAnd,
	'|': KindBitOr,
	'^': KindBitXor,
	'(': KindLParen,
	')': KindRParen,
	'{': KindLBrace,
	'}': KindRBrace,
	'[': KindLBracket,
	']': KindRBracket,
	',': KindComma,
}

// Two-character operators, matched before single-character symbols.
//
//nolint:gochecknoglobals
var digraphTable = map[string]Kind{
	"==": KindEqual,
	"!=": KindNotEqual,
	">=": KindGreaterEqual,
	"<=": KindLessEqual,
	"&&": KindAnd,
	"||": KindOr,
	"+=": KindPlusAssign,
	"-=": KindMinusAssign,
	"<<": KindShiftL,
	">>": KindShiftR,
}
