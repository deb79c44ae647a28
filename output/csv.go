package output

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/vegasq/relq/table"
)

// CSVFormatter outputs a relation as CSV through encoding/csv, so values
// holding commas or quotes are quoted properly. This is the export
// format; the naive comma-joined rendering lives on Relation.CSV.
type CSVFormatter struct {
	writer io.Writer
}

// NewCSVFormatter creates a new CSV formatter
func NewCSVFormatter(w io.Writer) *CSVFormatter {
	return &CSVFormatter{writer: w}
}

// SetOutput sets the output writer
func (c *CSVFormatter) SetOutput(w io.Writer) {
	c.writer = w
}

// Format writes the schema as a header row and then every row in schema
// order, rendering absent fields as "null".
func (c *CSVFormatter) Format(rel *table.Relation) error {
	csvWriter := csv.NewWriter(c.writer)
	fields := rel.Fields()
	if len(fields) == 0 {
		return nil
	}

	if err := csvWriter.Write(fields); err != nil {
		return err
	}
	for i := 0; i < rel.RowCount(); i++ {
		if err := csvWriter.Write(rowValues(rel.Row(i), fields)); err != nil {
			return err
		}
	}

	csvWriter.Flush()
	if err := csvWriter.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV writer: %w", err)
	}
	return nil
}
