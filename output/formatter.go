package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/vegasq/relq/table"
)

// Formatter defines the interface for result formatters.
//
// Implementers must provide Format to write a relation in the target
// format and SetOutput to change the output destination.
type Formatter interface {
	// Format writes the relation in the formatter's specific format
	Format(rel *table.Relation) error

	// SetOutput changes the output writer
	SetOutput(w io.Writer)
}

// New returns a formatter for the named format. An empty name selects the
// table format.
func New(format string, w io.Writer) (Formatter, error) {
	switch strings.ToLower(format) {
	case "", "table":
		return NewTableFormatter(w), nil
	case "json", "jsonl":
		return NewJSONFormatter(w), nil
	case "csv":
		return NewCSVFormatter(w), nil
	default:
		return nil, fmt.Errorf("unsupported output format %q", format)
	}
}

// rowValues collects a row's values in schema order, with absent fields
// rendered as "null".
func rowValues(rec *table.Record, fields []string) []string {
	values := make([]string, len(fields))
	for i, name := range fields {
		if value, ok := rec.Get(name); ok {
			values[i] = value
		} else {
			values[i] = "null"
		}
	}
	return values
}
