package reader

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/vegasq/relq/table"
)

// maxGlobFiles bounds how many files a single glob pattern may load.
const maxGlobFiles = 1000

// fileField is the field added to every row of a multi-file read, holding
// the path of the file the row came from.
const fileField = "_file"

// ReadTableFiles loads one relation from a path or glob pattern. A plain
// path reads as ReadTableFile does. A pattern containing glob wildcards
// expands to its matches in sorted order; each file's fields accrue into a
// shared schema and every row is tagged with a trailing "_file" field
// naming its source, so rows stay attributable after the merge. A pattern
// with no matches is an error.
func ReadTableFiles(pattern, format string) (*table.Relation, error) {
	if !strings.ContainsAny(pattern, "*?[]") {
		return ReadTableFile(pattern, format)
	}

	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid glob pattern: %w", err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no files match pattern: %s", pattern)
	}
	if len(matches) > maxGlobFiles {
		return nil, fmt.Errorf("glob pattern matched too many files (%d), maximum is %d", len(matches), maxGlobFiles)
	}

	out := table.NewRelation()
	for _, path := range matches {
		rel, err := ReadTableFile(path, format)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		for _, name := range rel.Fields() {
			out.AddField(name)
		}
		for i := 0; i < rel.RowCount(); i++ {
			rec := rel.Row(i).Clone()
			rec.Set(fileField, path)
			out.AddRow(rec)
		}
	}
	out.AddField(fileField)
	return out, nil
}
