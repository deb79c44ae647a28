package output

import (
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/vegasq/relq/table"
)

// TableFormatter outputs a relation as a bordered terminal table.
type TableFormatter struct {
	writer io.Writer
}

// NewTableFormatter creates a new terminal table formatter
func NewTableFormatter(w io.Writer) *TableFormatter {
	return &TableFormatter{writer: w}
}

// SetOutput sets the output writer
func (t *TableFormatter) SetOutput(w io.Writer) {
	t.writer = w
}

// Format renders the relation with schema names as the header row and
// absent fields shown as "null". A relation with no schema renders
// nothing.
func (t *TableFormatter) Format(rel *table.Relation) error {
	fields := rel.Fields()
	if len(fields) == 0 {
		return nil
	}

	tw := tablewriter.NewWriter(t.writer)
	tw.SetHeader(fields)
	tw.SetAutoFormatHeaders(false)
	tw.SetAutoWrapText(false)
	for i := 0; i < rel.RowCount(); i++ {
		tw.Append(rowValues(rel.Row(i), fields))
	}
	tw.Render()
	return nil
}
