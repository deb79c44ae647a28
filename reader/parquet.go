package reader

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/parquet-go/parquet-go"

	"github.com/vegasq/relq/table"
)

// ReadParquetFile loads a parquet file as a relation. The schema's
// top-level field names become the relation's fields in declaration
// order; every row's column values are rendered to text, with nil values
// leaving the field absent. The whole file is loaded into memory.
func ReadParquetFile(path string) (*table.Relation, error) {
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

	rel := table.NewRelation()
	for _, field := range pqFile.Schema().Fields() {
		rel.AddField(field.Name())
	}

	pr := parquet.NewReader(pqFile)
	defer func() { _ = pr.Close() }()

	for {
		row := make(map[string]interface{})
		if err := pr.Read(&row); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to read row: %w", err)
		}
		rec := table.NewRecord()
		for name, value := range row {
			if value == nil {
				continue
			}
			rec.Set(name, valueText(value))
		}
		rel.AddRow(rec)
	}
	return rel, nil
}

// valueText renders a parquet column value as table text.
func valueText(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case []byte:
		return string(val)
	case int, int8, int16, int32, int64:
		return fmt.Sprintf("%d", val)
	case uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", val)
	case float32, float64:
		return fmt.Sprintf("%g", val)
	case bool:
		return fmt.Sprintf("%t", val)
	default:
		return fmt.Sprintf("%v", val)
	}
}
