package reader

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/vegasq/relq/table"
)

// ReadTableFile loads a table from a file, dispatching on the explicit
// format or, when format is empty, on the file extension.
func ReadTableFile(path, format string) (*table.Relation, error) {
	switch f := tableFormat(path, format); f {
	case "csv":
		return ReadCSVFile(path)
	case "json", "jsonl", "ndjson":
		return ReadJSONFile(path)
	case "parquet":
		return ReadParquetFile(path)
	default:
		return nil, fmt.Errorf("unsupported table format %q for %s", f, path)
	}
}

// tableFormat resolves the format name for a file: the explicit format
// when given, the file extension otherwise, lowercased either way.
func tableFormat(path, format string) string {
	if format == "" {
		format = strings.TrimPrefix(filepath.Ext(path), ".")
	}
	return strings.ToLower(format)
}

// TableName derives a catalog name from a file path: the base name
// without its extension.
func TableName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
