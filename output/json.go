package output

import (
	"encoding/json"
	"io"

	"github.com/vegasq/relq/table"
)

// JSONFormatter outputs a relation as JSON Lines, one object per row with
// keys in schema order. Absent fields encode as JSON null.
type JSONFormatter struct {
	writer io.Writer
}

// NewJSONFormatter creates a new JSON Lines formatter
func NewJSONFormatter(w io.Writer) *JSONFormatter {
	return &JSONFormatter{writer: w}
}

// SetOutput sets the output writer
func (j *JSONFormatter) SetOutput(w io.Writer) {
	j.writer = w
}

// Format writes the relation as JSON Lines. The encoding is built by hand
// because encoding/json sorts map keys, and rows must keep schema order.
func (j *JSONFormatter) Format(rel *table.Relation) error {
	fields := rel.Fields()
	for i := 0; i < rel.RowCount(); i++ {
		rec := rel.Row(i)
		line := make([]byte, 0, 64)
		line = append(line, '{')
		for k, name := range fields {
			if k > 0 {
				line = append(line, ',')
			}
			line = appendJSONString(line, name)
			line = append(line, ':')
			if value, ok := rec.Get(name); ok {
				line = appendJSONString(line, value)
			} else {
				line = append(line, "null"...)
			}
		}
		line = append(line, '}', '\n')
		if _, err := j.writer.Write(line); err != nil {
			return err
		}
	}
	return nil
}

// appendJSONString appends the JSON encoding of s. Marshaling a plain
// string cannot fail.
func appendJSONString(buf []byte, s string) []byte {
	data, _ := json.Marshal(s)
	return append(buf, data...)
}
