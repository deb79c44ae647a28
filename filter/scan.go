package filter

import "regexp"

// numberPattern matches numeric text: optional surrounding whitespace, an
// optional minus, any digits, an optional single dot and at least one
// trailing digit.
var numberPattern = regexp.MustCompile(`^\s*-?\d*\.?\d+\s*$`)

// IsNumber reports whether s is numeric text. Numeric operands stand for
// themselves in comparisons instead of being looked up as fields.
func IsNumber(s string) bool {
	return numberPattern.MatchString(s)
}

// referencePattern matches a field name compared against a quoted or
// digit-run literal. Names are runs free of digits, whitespace, parentheses
// and operator characters; the operator must be surrounded by whitespace.
var referencePattern = regexp.MustCompile(`([^()\d\s<=>]+)\s+[<=>]\s+(?:["']\S*["']|\d+)`)

// ReferencedFields returns the names that look like field references in the
// expression's simple comparisons. It is a shallow textual scan, not a
// parse: only "name op literal" shapes are recognized, never name-to-name
// comparisons, and names containing digits are invisible to it. Callers use
// it to decide whether a filter is satisfiable against a schema at all, so
// under-reporting names errs toward applying the filter.
func ReferencedFields(expr string) []string {
	var names []string
	for _, m := range referencePattern.FindAllStringSubmatch(expr, -1) {
		names = append(names, m[1])
	}
	return names
}
