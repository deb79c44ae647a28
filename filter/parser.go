package filter

import (
	"errors"
	"fmt"
	"strings"
)

// Condition is a compiled where or on clause. The zero value and conditions
// parsed from blank text always evaluate true.
type Condition struct {
	raw  string
	root Expr
}

// Parse compiles condition text into a Condition. Blank text compiles to a
// condition that is always true. Malformed text, such as a dangling operand,
// unbalanced parentheses or an unterminated string, is an error.
func Parse(condition string) (*Condition, error) {
	if len(condition) > MaxConditionLength {
		return nil, ErrConditionTooLong
	}
	c := &Condition{raw: condition}
	if strings.TrimSpace(condition) == "" {
		return c, nil
	}

	tokens := Tokenize(condition)
	if len(tokens) > MaxTokens {
		return nil, ErrTooManyTokens
	}

	p := NewParser(tokens)
	root, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if tok := p.current(); tok.Type != TokenEOF {
		if tok.Type == TokenError {
			return nil, fmt.Errorf("invalid token in condition: %s", tok.Value)
		}
		return nil, fmt.Errorf("unexpected %q after condition", tok.Value)
	}
	c.root = root
	return c, nil
}

// Eval evaluates the condition against a row.
func (c *Condition) Eval(row Row) (bool, error) {
	if c == nil || c.root == nil {
		return true, nil
	}
	return c.root.Eval(row)
}

// Evaluate parses and evaluates a condition against a single row. Callers
// filtering many rows should Parse once and reuse the Condition instead.
func Evaluate(row Row, condition string) (bool, error) {
	cond, err := Parse(condition)
	if err != nil {
		return false, err
	}
	return cond.Eval(row)
}

// String returns the original condition text.
func (c *Condition) String() string {
	return c.raw
}

// Parser builds an expression tree from condition tokens. OR binds loosest,
// then AND, then comparisons and bare atoms; parentheses group.
type Parser struct {
	tokens []Token
	pos    int
	depth  ExpressionDepthCounter
}

// NewParser creates a parser over the given tokens.
func NewParser(tokens []Token) *Parser {
	return &Parser{tokens: tokens}
}

func (p *Parser) current() Token {
	if p.pos >= len(p.tokens) {
		return Token{Type: TokenEOF}
	}
	return p.tokens[p.pos]
}

func (p *Parser) advance() {
	if p.pos < len(p.tokens) {
		p.pos++
	}
}

func (p *Parser) expect(t TokenType) error {
	if tok := p.current(); tok.Type != t {
		return fmt.Errorf("expected %v, got %q", t, tok.Value)
	}
	p.advance()
	return nil
}

func (p *Parser) parseOr() (Expr, error) {
	if err := p.depth.Enter(); err != nil {
		return nil, err
	}
	defer p.depth.Exit()

	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.current().Type == TokenOr {
		p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Left: left, Operator: TokenOr, Right: right}
	}
	return left, nil
}

func (p *Parser) parseAnd() (Expr, error) {
	if err := p.depth.Enter(); err != nil {
		return nil, err
	}
	defer p.depth.Exit()

	left, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	for p.current().Type == TokenAnd {
		p.advance()
		right, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Left: left, Operator: TokenAnd, Right: right}
	}
	return left, nil
}

// parseAtom parses a parenthesized group, a comparison, or a bare digit run.
func (p *Parser) parseAtom() (Expr, error) {
	tok := p.current()
	switch tok.Type {
	case TokenLeftParen:
		p.advance()
		expr, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if err := p.expect(TokenRightParen); err != nil {
			return nil, err
		}
		return expr, nil

	case TokenNumber, TokenString, TokenIdent:
		left := operandFromToken(tok)
		p.advance()

		op := p.current()
		switch op.Type {
		case TokenEqual, TokenLess, TokenGreater:
			p.advance()
			rtok := p.current()
			switch rtok.Type {
			case TokenNumber, TokenString, TokenIdent:
				p.advance()
				return &CompareExpr{Op: op.Type, Left: left, Right: operandFromToken(rtok)}, nil
			default:
				return nil, fmt.Errorf("expected operand after %q, got %q", op.Value, rtok.Value)
			}
		default:
			if tok.Type == TokenNumber && isDigitRun(tok.Value) {
				return &Literal{Value: tok.Value == "1"}, nil
			}
			return nil, fmt.Errorf("dangling operand %q", tok.Value)
		}

	case TokenEOF:
		return nil, errors.New("unexpected end of condition")
	case TokenError:
		return nil, fmt.Errorf("invalid token in condition: %s", tok.Value)
	default:
		return nil, fmt.Errorf("unexpected %q in condition", tok.Value)
	}
}

func operandFromToken(tok Token) Operand {
	return Operand{Text: tok.Value, Quoted: tok.Type == TokenString}
}

func isDigitRun(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
