package lang

import (
	"log/slog"
	"strconv"
	"strings"
)

// Binary operator precedence, lowest first. Unary +/- bind tighter than all
// binary operators. The right operand of a binary expression is parsed at
// precedence+1, which yields left associativity.
//
//nolint:gochecknoglobals
var binaryPrecedence = map[Kind]int{
	KindPlusAssign:  0,
	KindMinusAssign: 0,
	KindOr:          0,
	KindAnd:         0,

	KindEqual:        1,
	KindNotEqual:     1,
	KindLess:         1,
	KindGreater:      1,
	KindLessEqual:    1,
	KindGreaterEqual: 1,

	KindPlus:  2,
	KindMinus: 2,

	KindStar:    3,
	KindSlash:   3,
	KindPercent: 3,

	KindBitOr:  4,
	KindBitXor: 4,
	KindBitAnd: 4,
	KindShiftL: 4,
	KindShiftR: 4,
}

// Parse consumes a token sequence and builds the program AST.
// The parser is fail-fast: the first error wrapping [ErrParse] aborts with
// no recovery.
func Parse(tokens []Token) (*Program, error) {
	p := &parser{tokens: tokens}

	prog := &Program{}

	for !p.exhausted() {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}

		prog.Statements = append(prog.Statements, stmt)
	}

	return prog, nil
}

// ParseString tokenizes and parses source text in one step.
func ParseString(source string) (*Program, error) {
	tokens, err := Tokenize(source)
	if err != nil {
		return nil, err
	}

	return Parse(tokens)
}

type parser struct {
	tokens []Token
	pos    int
}

func (p *parser) exhausted() bool { return p.pos >= len(p.tokens) }

// current returns the token at the cursor without consuming it.
// Past the end of input it returns a zero token and false.
func (p *parser) current() (Token, bool) {
	if p.exhausted() {
		return Token{}, false
	}

	return p.tokens[p.pos], true
}

// peek returns the token one past the cursor without consuming it.
func (p *parser) peek() (Token, bool) {
	if p.pos+1 >= len(p.tokens) {
		return Token{}, false
	}

	return p.tokens[p.pos+1], true
}

func (p *parser) eat() Token {
	tok, _ := p.current()
	p.pos++

	return tok
}

// expect consumes and returns the current token if it matches the given
// kind (and literal, when provided). Otherwise it fails with the expected
// and actual token descriptions.
func (p *parser) expect(kind Kind, literal ...string) (Token, error) {
	want := kind.String()
	if len(literal) > 0 {
		want += "(" + literal[0] + ")"
	}

	tok, ok := p.current()
	if !ok {
		return Token{}, ErrUnexpectedEOF.
			With(slog.String("expected", want))
	}

	if tok.Kind != kind || (len(literal) > 0 && tok.Literal != literal[0]) {
		return Token{}, ErrUnexpectedToken.
			With(
				slog.String("expected", want),
				slog.String("actual", tok.String()),
			)
	}

	return p.eat(), nil
}

// accept consumes the current token and reports true if it matches;
// otherwise it leaves the cursor alone.
func (p *parser) accept(kind Kind, literal ...string) bool {
	tok, ok := p.current()
	if !ok || tok.Kind != kind {
		return false
	}

	if len(literal) > 0 && tok.Literal != literal[0] {
		return false
	}

	p.eat()

	return true
}

// Statement dispatch by leading keyword or token shape.
func (p *parser) parseStatement() (Node, error) {
	tok, ok := p.current()
	if !ok {
		return nil, ErrUnexpectedEOF.
			With(slog.String("expected", "statement"))
	}

	if tok.Kind == KindKeyword {
		switch tok.Literal {
		case "fn":
			p.eat()

			return p.parseFunctionDecl()

		case "if":
			p.eat()

			return p.parseIf()

		case "while":
			p.eat()

			return p.parseWhile()

		case "return":
			p.eat()

			value, err := p.parseExpression()
			if err != nil {
				return nil, err
			}

			return ReturnNode{Value: value}, nil

		case "var":
			p.eat()

			return p.parseVariableDecl()
		}
	}

	if tok.Kind == KindIdentifier {
		// One-token lookahead distinguishes assignment and array element
		// assignment from a bare expression statement.
		if next, ok := p.peek(); ok {
			switch {
			case next.Kind == KindAssign:
				p.eat()
				p.eat()

				value, err := p.parseExpression()
				if err != nil {
					return nil, err
				}

				return VariableAssignNode{Name: tok.Literal, Value: value}, nil

			case next.Kind == KindKeyword && next.Literal == "at":
				return p.parseArrayAssignment(tok.Literal)
			}
		}
	}

	return p.parseExpression()
}

func (p *parser) parseVariableDecl() (Node, error) {
	name, err := p.expect(KindIdentifier)
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(KindAssign); err != nil {
		return nil, err
	}

	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	return VariableDeclNode{Name: name.Literal, Value: value}, nil
}

// parseArrayAssignment parses "NAME at INDEX = VALUE" with the cursor still
// on NAME.
func (p *parser) parseArrayAssignment(name string) (Node, error) {
	p.eat() // NAME

	if _, err := p.expect(KindKeyword, "at"); err != nil {
		return nil, err
	}

	index, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(KindAssign); err != nil {
		return nil, err
	}

	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	return ArrayAssignmentNode{
		Array: IdentifierNode{Name: name},
		Index: index,
		Value: value,
	}, nil
}

func (p *parser) parseFunctionDecl() (Node, error) {
	name, err := p.expect(KindIdentifier)
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(KindLParen); err != nil {
		return nil, err
	}

	var params []string

	for !p.accept(KindRParen) {
		param, err := p.expect(KindIdentifier)
		if err != nil {
			return nil, err
		}

		params = append(params, param.Literal)

		if !p.accept(KindComma) {
			if _, err := p.expect(KindRParen); err != nil {
				return nil, err
			}

			break
		}
	}

	body, err := p.parseBracedBody()
	if err != nil {
		return nil, err
	}

	return FunctionDeclNode{Name: name.Literal, Params: params, Body: body}, nil
}

func (p *parser) parseIf() (Node, error) {
	cond, err := p.parseCondition()
	if err != nil {
		return nil, err
	}

	body, err := p.parseBody()
	if err != nil {
		return nil, err
	}

	var elseBody []Node

	if p.accept(KindKeyword, "else") {
		elseBody, err = p.parseBody()
		if err != nil {
			return nil, err
		}
	}

	return IfNode{Cond: cond, Body: body, Else: elseBody}, nil
}

func (p *parser) parseWhile() (Node, error) {
	cond, err := p.parseCondition()
	if err != nil {
		return nil, err
	}

	body, err := p.parseBody()
	if err != nil {
		return nil, err
	}

	return WhileNode{Cond: cond, Body: body}, nil
}

func (p *parser) parseCondition() (Node, error) {
	if _, err := p.expect(KindLParen); err != nil {
		return nil, err
	}

	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(KindRParen); err != nil {
		return nil, err
	}

	return cond, nil
}

// parseBody parses a braced statement list, or a single statement when the
// braces are omitted.
func (p *parser) parseBody() ([]Node, error) {
	if tok, ok := p.current(); ok && tok.Kind == KindLBrace {
		return p.parseBracedBody()
	}

	stmt, err := p.parseStatement()
	if err != nil {
		return nil, err
	}

	return []Node{stmt}, nil
}

func (p *parser) parseBracedBody() ([]Node, error) {
	if _, err := p.expect(KindLBrace); err != nil {
		return nil, err
	}

	body := []Node{}

	for {
		tok, ok := p.current()
		if !ok {
			return nil, ErrUnexpectedEOF.
				With(slog.String("expected", KindRBrace.String()))
		}

		if tok.Kind == KindRBrace {
			p.eat()

			return body, nil
		}

		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}

		body = append(body, stmt)
	}
}

func (p *parser) parseExpression() (Node, error) {
	return p.parseBinary(0)
}

// parseBinary implements precedence climbing over binaryPrecedence.
func (p *parser) parseBinary(minPrec int) (Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for {
		tok, ok := p.current()
		if !ok {
			return left, nil
		}

		prec, isBinary := binaryPrecedence[tok.Kind]
		if !isBinary || prec < minPrec {
			return left, nil
		}

		p.eat()

		right, err := p.parseBinary(prec + 1)
		if err != nil {
			return nil, err
		}

		left = BinaryOpNode{Left: left, Op: tok.Kind, Right: right}
	}
}

func (p *parser) parseUnary() (Node, error) {
	tok, ok := p.current()
	if ok && (tok.Kind == KindPlus || tok.Kind == KindMinus) {
		p.eat()

		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}

		return UnaryOpNode{Op: tok.Kind, Operand: operand}, nil
	}

	return p.parsePrimary()
}

func (p *parser) parsePrimary() (Node, error) {
	tok, ok := p.current()
	if !ok {
		return nil, ErrUnexpectedEOF.
			With(slog.String("expected", "expression"))
	}

	switch tok.Kind {
	case KindNumber:
		p.eat()

		return parseNumberLiteral(tok.Literal)

	case KindFloat:
		p.eat()

		value, err := strconv.ParseFloat(tok.Literal, 64)
		if err != nil {
			return nil, ErrMalformedNumber.Wrap(err).
				With(slog.String("literal", tok.Literal))
		}

		return FloatNode{Value: value}, nil

	case KindBool:
		p.eat()

		return BoolNode{Value: tok.Literal == "true"}, nil

	case KindChar:
		p.eat()

		return CharNode{Code: decodeCharLiteral(tok.Literal)}, nil

	case KindString:
		p.eat()

		return StringNode{Value: tok.Literal}, nil

	case KindIdentifier:
		return p.parseIdentifierExpr()

	case KindLParen:
		p.eat()

		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}

		if _, err := p.expect(KindRParen); err != nil {
			return nil, err
		}

		return expr, nil

	case KindLBracket:
		return p.parseArrayLiteral()
	}

	return nil, ErrUnexpectedToken.
		With(
			slog.String("expected", "expression"),
			slog.String("actual", tok.String()),
		)
}

// parseIdentifierExpr parses a bare identifier, a call, or an index
// expression, depending on the token following the name.
func (p *parser) parseIdentifierExpr() (Node, error) {
	name := p.eat().Literal

	tok, ok := p.current()
	if !ok {
		return IdentifierNode{Name: name}, nil
	}

	switch tok.Kind {
	case KindLParen:
		p.eat()

		args, err := p.parseExpressionList(KindRParen)
		if err != nil {
			return nil, err
		}

		return FunctionCallNode{Name: name, Args: args}, nil

	case KindLBracket:
		p.eat()

		index, err := p.parseExpression()
		if err != nil {
			return nil, err
		}

		if _, err := p.expect(KindRBracket); err != nil {
			return nil, err
		}

		return ArrayAccessNode{
			Array: IdentifierNode{Name: name},
			Index: index,
		}, nil
	}

	return IdentifierNode{Name: name}, nil
}

func (p *parser) parseArrayLiteral() (Node, error) {
	p.eat() // [

	elements, err := p.parseExpressionList(KindRBracket)
	if err != nil {
		return nil, err
	}

	return ArrayNode{Elements: elements}, nil
}

// parseExpressionList parses a comma-separated expression list terminated by
// the given closing delimiter, consuming the delimiter.
func (p *parser) parseExpressionList(closing Kind) ([]Node, error) {
	var list []Node

	if p.accept(closing) {
		return list, nil
	}

	for {
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}

		list = append(list, expr)

		if p.accept(KindComma) {
			continue
		}

		if _, err := p.expect(closing); err != nil {
			return nil, err
		}

		return list, nil
	}
}

// parseNumberLiteral converts an integer literal, honoring the 0x and 0b
// base prefixes recognized by the lexer.
func parseNumberLiteral(literal string) (Node, error) {
	base := 10
	digits := literal

	switch {
	case strings.HasPrefix(literal, "0x"):
		base, digits = 16, literal[2:]

	case strings.HasPrefix(literal, "0b"):
		base, digits = 2, literal[2:]
	}

	value, err := strconv.ParseInt(digits, base, 64)
	if err != nil {
		return nil, ErrMalformedNumber.Wrap(err).
			With(slog.String("literal", literal))
	}

	return NumberNode{Value: value}, nil
}
