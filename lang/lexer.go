package lang

import (
	"log/slog"
	"strings"
)

// Tokenize converts source text into an ordered sequence of tokens.
// It fails with an error wrapping [ErrLex] on the first malformed literal or
// unrecognized character.
func Tokenize(source string) ([]Token, error) {
	lex := &lexer{src: source}

	return lex.run()
}

// lexer scans source text one byte at a time. Identifiers and numbers are
// ASCII; string and char literals pass arbitrary bytes through unmodified.
type lexer struct {
	src    string
	pos    int
	tokens []Token
}

func (l *lexer) run() ([]Token, error) {
	for l.pos < len(l.src) {
		c := l.src[l.pos]

		switch {
		case isSpace(c):
			l.pos++

		case c == '#' || l.hasPrefix("//"):
			l.skipLineComment()

		case isAlpha(c):
			l.lexWord()

		case isDigit(c):
			if err := l.lexNumber(); err != nil {
				return nil, err
			}

		case c == '"':
			if err := l.lexString(); err != nil {
				return nil, err
			}

		case c == '\'':
			if err := l.lexChar(); err != nil {
				return nil, err
			}

		default:
			if !l.lexOperator() {
				return nil, ErrUnknownChar.
					With(slog.String("char", string(c)))
			}
		}
	}

	return l.tokens, nil
}

func (l *lexer) hasPrefix(s string) bool {
	return strings.HasPrefix(l.src[l.pos:], s)
}

func (l *lexer) emit(kind Kind, literal string) {
	l.tokens = append(l.tokens, Token{Kind: kind, Literal: literal})
}

// skipLineComment consumes through the end of the current line.
// Both '#' and "//" introduce line comments.
func (l *lexer) skipLineComment() {
	for l.pos < len(l.src) && l.src[l.pos] != '\n' {
		l.pos++
	}
}

// lexWord scans an identifier and classifies it against the keyword and
// boolean literal tables.
func (l *lexer) lexWord() {
	start := l.pos
	for l.pos < len(l.src) && isWordChar(l.src[l.pos]) {
		l.pos++
	}

	word := l.src[start:l.pos]

	if lit, ok := boolTable[word]; ok {
		l.emit(KindBool, lit)

		return
	}

	if _, ok := keywordTable[word]; ok {
		l.emit(KindKeyword, word)

		return
	}

	l.emit(KindIdentifier, word)
}

// lexNumber scans an integer or float literal. A leading "0x" or "0b"
// switches to hexadecimal or binary digits; otherwise the literal is a
// maximal run of decimal digits with at most one decimal point.
func (l *lexer) lexNumber() error {
	if l.hasPrefix("0x") || l.hasPrefix("0b") {
		return l.lexPrefixedNumber()
	}

	start := l.pos
	points := 0

	for l.pos < len(l.src) {
		c := l.src[l.pos]

		if c == '.' {
			points++
			if points > 1 {
				return ErrMalformedNumber.
					With(
						slog.String("literal", l.src[start:l.pos+1]),
						slog.String("issue", "multiple decimal points"),
					)
			}

			l.pos++

			continue
		}

		if !isDigit(c) {
			break
		}

		l.pos++
	}

	literal := l.src[start:l.pos]

	if strings.HasSuffix(literal, ".") {
		return ErrMalformedNumber.
			With(
				slog.String("literal", literal),
				slog.String("issue", "trailing decimal point"),
			)
	}

	if points > 0 {
		l.emit(KindFloat, literal)
	} else {
		l.emit(KindNumber, literal)
	}

	return nil
}

// lexPrefixedNumber scans the alphanumeric run following a "0x" or "0b"
// prefix. Digit validity is checked later by the parser's strconv call; the
// lexer only delimits the run.
func (l *lexer) lexPrefixedNumber() error {
	start := l.pos
	l.pos += 2 // consume "0x"/"0b"

	for l.pos < len(l.src) && isWordChar(l.src[l.pos]) {
		l.pos++
	}

	literal := l.src[start:l.pos]
	if len(literal) == 2 {
		return ErrMalformedNumber.
			With(
				slog.String("literal", literal),
				slog.String("issue", "missing digits after base prefix"),
			)
	}

	l.emit(KindNumber, literal)

	return nil
}

// lexString scans a double-quoted string literal. No escape processing is
// performed; the literal is everything between the quotes.
func (l *lexer) lexString() error {
	l.pos++ // opening quote
	start := l.pos

	for l.pos < len(l.src) && l.src[l.pos] != '"' {
		l.pos++
	}

	if l.pos >= len(l.src) {
		return ErrUnterminatedString.
			With(slog.String("literal", l.src[start:]))
	}

	l.emit(KindString, l.src[start:l.pos])
	l.pos++ // closing quote

	return nil
}

// lexChar scans a single-quoted character literal: one character, or a
// two-character backslash escape.
func (l *lexer) lexChar() error {
	l.pos++ // opening quote
	start := l.pos

	if l.pos < len(l.src) && l.src[l.pos] == '\\' {
		l.pos++ // escape introducer
	}

	if l.pos < len(l.src) {
		l.pos++ // the character itself
	}

	if l.pos >= len(l.src) || l.src[l.pos] != '\'' {
		return ErrUnterminatedChar.
			With(slog.String("literal", l.src[start:min(l.pos, len(l.src))]))
	}

	literal := l.src[start:l.pos]
	l.pos++ // closing quote

	if decodeCharLiteral(literal) < 0 {
		return ErrUnterminatedChar.
			With(
				slog.String("literal", literal),
				slog.String("issue", "invalid character literal"),
			)
	}

	l.emit(KindChar, literal)

	return nil
}

// lexOperator matches two-character operators greedily before falling back
// to single-character symbols. It reports whether a match was found.
func (l *lexer) lexOperator() bool {
	if l.pos+1 < len(l.src) {
		pair := l.src[l.pos : l.pos+2]
		if kind, ok := digraphTable[pair]; ok {
			l.emit(kind, pair)
			l.pos += 2

			return true
		}
	}

	if kind, ok := symbolTable[l.src[l.pos]]; ok {
		l.emit(kind, string(l.src[l.pos]))
		l.pos++

		return true
	}

	return false
}

// decodeCharLiteral converts the body of a character literal to its code
// point, or -1 if the literal is invalid.
func decodeCharLiteral(literal string) rune {
	runes := []rune(literal)

	switch {
	case len(runes) == 1 && runes[0] != '\\':
		return runes[0]

	case len(runes) == 2 && runes[0] == '\\':
		switch runes[1] {
		case 'n':
			return '\n'
		case 't':
			return '\t'
		case 'r':
			return '\r'
		case '0':
			return 0
		case '\\':
			return '\\'
		case '\'':
			return '\''
		}
	}

	return -1
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isWordChar(c byte) bool {
	return isAlpha(c) || isDigit(c) || c == '_'
}
