package filter

import "errors"

// Guard rails for untrusted condition text. They bound the work a single
// Parse call can do; well-formed conditions never get near them.
const (
	// MaxConditionLength is the maximum length of a condition string in bytes.
	MaxConditionLength = 1_000_000

	// MaxTokens is the maximum number of tokens in a single condition.
	MaxTokens = 10_000

	// MaxExpressionDepth is the maximum nesting depth of parenthesized
	// expressions.
	MaxExpressionDepth = 100
)

var (
	// ErrConditionTooLong is returned when a condition exceeds MaxConditionLength.
	ErrConditionTooLong = errors.New("condition exceeds maximum length")

	// ErrTooManyTokens is returned when a condition exceeds MaxTokens.
	ErrTooManyTokens = errors.New("condition has too many tokens")

	// ErrExpressionTooDeep is returned when expression nesting exceeds
	// MaxExpressionDepth.
	ErrExpressionTooDeep = errors.New("expression nesting too deep")
)

// ExpressionDepthCounter tracks recursion depth during parsing.
type ExpressionDepthCounter struct {
	depth int
}

// Enter increments the depth and reports whether the limit was exceeded.
func (c *ExpressionDepthCounter) Enter() error {
	c.depth++
	if c.depth > MaxExpressionDepth {
		return ErrExpressionTooDeep
	}
	return nil
}

// Exit decrements the depth.
func (c *ExpressionDepthCounter) Exit() {
	c.depth--
}
