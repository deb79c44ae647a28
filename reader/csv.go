package reader

import (
	"fmt"
	"os"
	"strings"

	"github.com/vegasq/relq/table"
)

// ReadCSVFile loads a comma-separated file as a relation. The first line
// names the fields; every further line is split on commas and zipped
// against the schema positionally, so a short line leaves its trailing
// fields absent. There is no quote handling: values may not contain
// commas, which is the same contract Relation.CSV writes under.
func ReadCSVFile(path string) (*table.Relation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return parseCSV(string(data)), nil
}

func parseCSV(text string) *table.Relation {
	rel := table.NewRelation()

	lines := strings.Split(text, "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	if len(lines) == 0 {
		return rel
	}

	fields := strings.Split(strings.TrimRight(lines[0], "\r"), ",")
	for _, name := range fields {
		rel.AddField(name)
	}

	for _, line := range lines[1:] {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}
		values := strings.Split(line, ",")
		rec := table.NewRecord()
		for i, name := range fields {
			if i < len(values) {
				rec.Set(name, values[i])
			}
		}
		rel.AddRow(rec)
	}
	return rel
}

// WriteCSVFile writes the relation's CSV rendering to a file.
func WriteCSVFile(path string, rel *table.Relation) error {
	if err := os.WriteFile(path, []byte(rel.CSV()), 0o644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}
