package filter

import (
	"errors"
	"fmt"
	"strconv"
)

// TokenType identifies the type of a lexical token.
type TokenType int

const (
	// Keywords
	TokenSelect TokenType = iota
	TokenFrom
	TokenJoin
	TokenOn
	TokenWhere
	TokenOrder
	TokenBy
	TokenAs
	TokenAsc
	TokenDesc
	TokenAnd
	TokenOr
	TokenInsert
	TokenInto
	TokenValues

	// Operators
	TokenEqual   // =
	TokenLess    // <
	TokenGreater // >
	TokenStar    // *

	// Literals
	TokenString // quoted string
	TokenNumber // numeric text
	TokenIdent  // identifier such as a field or table name

	// Delimiters
	TokenComma
	TokenLeftParen
	TokenRightParen

	// Special
	TokenEOF
	TokenError
)

// Token is a single lexical token with its byte offset in the input.
type Token struct {
	Type  TokenType
	Value string
	Pos   int
}

// Row is the record view a condition is evaluated against.
type Row interface {
	// Get returns the value of the named field and whether it is present.
	Get(name string) (string, bool)
}

// ErrInvalidComparisonOperand is returned when an ordered comparison
// resolves a side that is not integer text.
var ErrInvalidComparisonOperand = errors.New("invalid comparison operand")

const nullText = "null"

// Expr is a node of a compiled condition.
type Expr interface {
	// Eval evaluates the node against a row.
	Eval(row Row) (bool, error)
}

// Literal is a bare truth atom. Only the digit run "1" is true.
type Literal struct {
	Value bool
}

func (l *Literal) Eval(row Row) (bool, error) {
	return l.Value, nil
}

// BinaryExpr combines two subexpressions with AND or OR. Both sides are
// always evaluated, so an error on either side surfaces regardless of the
// other side's value.
type BinaryExpr struct {
	Left     Expr
	Operator TokenType
	Right    Expr
}

func (b *BinaryExpr) Eval(row Row) (bool, error) {
	left, err := b.Left.Eval(row)
	if err != nil {
		return false, err
	}
	right, err := b.Right.Eval(row)
	if err != nil {
		return false, err
	}
	switch b.Operator {
	case TokenAnd:
		return left && right, nil
	case TokenOr:
		return left || right, nil
	default:
		return false, fmt.Errorf("unsupported logical operator %q", b.Operator)
	}
}

// Operand is one side of a comparison before resolution.
type Operand struct {
	Text   string
	Quoted bool
}

// CompareExpr compares two operands with =, < or >.
type CompareExpr struct {
	Op    TokenType
	Left  Operand
	Right Operand
}

func (c *CompareExpr) Eval(row Row) (bool, error) {
	left := resolveOperand(c.Left, row)
	right := resolveOperand(c.Right, row)
	switch c.Op {
	case TokenEqual:
		return left == right, nil
	case TokenLess, TokenGreater:
		ln, err := strconv.Atoi(left)
		if err != nil {
			return false, fmt.Errorf("%w: %q", ErrInvalidComparisonOperand, left)
		}
		rn, err := strconv.Atoi(right)
		if err != nil {
			return false, fmt.Errorf("%w: %q", ErrInvalidComparisonOperand, right)
		}
		if c.Op == TokenLess {
			return ln < rn, nil
		}
		return ln > rn, nil
	default:
		return false, fmt.Errorf("unsupported comparison operator %q", c.Op)
	}
}

// resolveOperand turns an operand into its comparison text. Quoted and
// numeric literals stand for themselves; anything else is a field lookup
// that falls back to the text "null" when the field is absent.
func resolveOperand(op Operand, row Row) string {
	if op.Quoted || IsNumber(op.Text) {
		return op.Text
	}
	if value, ok := row.Get(op.Text); ok {
		return value
	}
	return nullText
}

// String returns a readable name for the token type, used in error messages.
func (t TokenType) String() string {
	switch t {
	case TokenSelect:
		return "SELECT"
	case TokenFrom:
		return "FROM"
	case TokenJoin:
		return "JOIN"
	case TokenOn:
		return "ON"
	case TokenWhere:
		return "WHERE"
	case TokenOrder:
		return "ORDER"
	case TokenBy:
		return "BY"
	case TokenAs:
		return "AS"
	case TokenAsc:
		return "ASC"
	case TokenDesc:
		return "DESC"
	case TokenAnd:
		return "AND"
	case TokenOr:
		return "OR"
	case TokenInsert:
		return "INSERT"
	case TokenInto:
		return "INTO"
	case TokenValues:
		return "VALUES"
	case TokenEqual:
		return "="
	case TokenLess:
		return "<"
	case TokenGreater:
		return ">"
	case TokenStar:
		return "*"
	case TokenString:
		return "string"
	case TokenNumber:
		return "number"
	case TokenIdent:
		return "identifier"
	case TokenComma:
		return ","
	case TokenLeftParen:
		return "("
	case TokenRightParen:
		return ")"
	case TokenEOF:
		return "end of input"
	case TokenError:
		return "invalid token"
	default:
		return "unknown"
	}
}
