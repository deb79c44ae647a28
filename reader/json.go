package reader

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/vegasq/relq/table"
)

// ReadJSONFile loads a JSON file as a relation. The file may hold a
// top-level array of objects, a single object, or JSON Lines. Each
// object's top-level keys become fields, accruing into the schema in
// first-seen order; values are rendered to their text form and a JSON
// null leaves the field absent.
func ReadJSONFile(path string) (*table.Relation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return parseJSON(string(data))
}

func parseJSON(text string) (*table.Relation, error) {
	rel := table.NewRelation()
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return rel, nil
	}

	if strings.HasPrefix(trimmed, "[") {
		if !gjson.Valid(trimmed) {
			return nil, errors.New("invalid JSON array")
		}
		for i, row := range gjson.Parse(trimmed).Array() {
			if !row.IsObject() {
				return nil, fmt.Errorf("row %d is not a JSON object", i)
			}
			addJSONRow(rel, row)
		}
		return rel, nil
	}

	// A single object may span multiple lines; JSON Lines never validates
	// as one document, so this cannot swallow a multi-row file.
	if gjson.Valid(trimmed) {
		row := gjson.Parse(trimmed)
		if row.IsObject() {
			addJSONRow(rel, row)
			return rel, nil
		}
		return nil, errors.New("top-level JSON value is not an object or array")
	}

	for n, line := range strings.Split(trimmed, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if !gjson.Valid(line) {
			return nil, fmt.Errorf("invalid JSON on line %d", n+1)
		}
		row := gjson.Parse(line)
		if !row.IsObject() {
			return nil, fmt.Errorf("line %d is not a JSON object", n+1)
		}
		addJSONRow(rel, row)
	}
	return rel, nil
}

func addJSONRow(rel *table.Relation, row gjson.Result) {
	rec := table.NewRecord()
	row.ForEach(func(key, value gjson.Result) bool {
		rel.AddField(key.String())
		if value.Type != gjson.Null {
			rec.Set(key.String(), value.String())
		}
		return true
	})
	rel.AddRow(rec)
}
