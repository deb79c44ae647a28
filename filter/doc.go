// Package filter implements the boolean condition language used by where
// and on clauses, plus the shared tokenizer the statement parser builds on.
//
// A condition is a string such as
//
//	s.age < 13 AND (cd.name = "Maths" OR 1)
//
// evaluated against a single row. Precedence, highest to lowest:
// parenthesized groups, AND, OR. Comparisons (=, < and >) and bare digit
// runs are the atoms; a bare digit run is true only when it is exactly "1".
// AND and OR are case-insensitive.
//
// Each comparison side resolves independently: a quoted literal stands for
// its content verbatim, numeric text stands for itself, and anything else is
// a field lookup that falls back to the literal text "null" when the field
// is absent. "=" compares the resolved texts byte for byte; "<" and ">"
// parse both sides as integers and fail with ErrInvalidComparisonOperand
// when either side is not integer text.
//
// Conditions compile once via Parse into an expression tree and are then
// evaluated per row:
//
//	cond, err := filter.Parse(`name = "alice" OR age > 30`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	ok, err := cond.Eval(row)
package filter
