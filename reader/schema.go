package reader

import (
	"fmt"
	"os"

	"github.com/parquet-go/parquet-go"

	"github.com/vegasq/relq/table"
)

// Describe reports a table file's column layout as a relation with the
// fields "field", "type" and "nullable" and one row per column, ready to
// feed any output formatter.
//
// Parquet files report their declared column types and repetition. CSV
// and JSON files carry engine text where any field may be absent, so
// their columns all report STRING and nullable true.
func Describe(path, format string) (*table.Relation, error) {
	switch f := tableFormat(path, format); f {
	case "csv":
		rel, err := ReadCSVFile(path)
		if err != nil {
			return nil, err
		}
		return describeFields(rel.Fields()), nil
	case "json", "jsonl", "ndjson":
		rel, err := ReadJSONFile(path)
		if err != nil {
			return nil, err
		}
		return describeFields(rel.Fields()), nil
	case "parquet":
		return describeParquet(path)
	default:
		return nil, fmt.Errorf("unsupported table format %q for %s", f, path)
	}
}

// describeFields builds a description relation for text columns.
func describeFields(fields []string) *table.Relation {
	out := table.NewRelation("field", "type", "nullable")
	for _, name := range fields {
		rec := table.NewRecord()
		rec.Set("field", name)
		rec.Set("type", "STRING")
		rec.Set("nullable", "true")
		out.AddRow(rec)
	}
	return out
}

// describeParquet reads only the file footer and describes the top-level
// schema fields in declaration order.
func describeParquet(path string) (*table.Relation, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	stat, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	pqFile, err := parquet.OpenFile(file, stat.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}

	out := table.NewRelation("field", "type", "nullable")
	for _, field := range pqFile.Schema().Fields() {
		rec := table.NewRecord()
		rec.Set("field", field.Name())
		rec.Set("type", parquetFieldType(field))
		rec.Set("nullable", fmt.Sprintf("%t", field.Optional()))
		out.AddRow(rec)
	}
	return out, nil
}

// parquetFieldType maps a parquet field to a readable type name, checking
// the logical type before falling back to the physical type. Nested
// groups report as GROUP; the loader renders their values to text
// wholesale instead of flattening them, so their leaves are not listed.
func parquetFieldType(field parquet.Field) string {
	if field.Type() == nil || len(field.Fields()) > 0 {
		return "GROUP"
	}

	if logical := field.Type().LogicalType(); logical != nil {
		switch name := logical.String(); name {
		case "STRING", "UTF8":
			return "STRING"
		case "ENUM", "UUID", "DATE", "TIME", "TIMESTAMP", "DECIMAL", "JSON", "BSON":
			return name
		}
	}

	switch field.Type().Kind() {
	case parquet.Boolean:
		return "BOOLEAN"
	case parquet.Int32:
		return "INT32"
	case parquet.Int64:
		return "INT64"
	case parquet.Int96:
		return "INT96"
	case parquet.Float:
		return "FLOAT32"
	case parquet.Double:
		return "FLOAT64"
	case parquet.ByteArray:
		return "BYTE_ARRAY"
	case parquet.FixedLenByteArray:
		return "FIXED_LEN_BYTE_ARRAY"
	default:
		return "UNKNOWN"
	}
}
