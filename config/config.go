package config

import (
	"fmt"
	"regexp"
	"strings"
)

// Config is the workspace manifest: the tables to preload into the catalog
// and the default output format.
type Config struct {
	BaseDir string     `yaml:"-"` // directory containing the manifest, for resolving relative paths
	Format  string     `yaml:"format"`
	Tables  []TableRef `yaml:"tables"`
}

// TableRef names one table file in the workspace.
type TableRef struct {
	Name   string `yaml:"name"`   // catalog name; defaults to the file's base name
	Path   string `yaml:"path"`   // file path, relative paths resolve against the manifest
	Format string `yaml:"format"` // optional reader format; defaults to the file extension
}

// Defaults returns the configuration used when a field is not set in the
// manifest.
func Defaults() *Config {
	return &Config{
		Format: "table",
	}
}

var outputFormats = map[string]bool{
	"table": true,
	"json":  true,
	"jsonl": true,
	"csv":   true,
}

var tableFormats = map[string]bool{
	"csv":     true,
	"json":    true,
	"jsonl":   true,
	"ndjson":  true,
	"parquet": true,
}

// namePattern matches catalog names the statement lexer reads as a single
// identifier.
var namePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.\-]*$`)

// validate checks a normalized manifest for errors, collecting every
// problem before reporting. Load normalizes first, so every table with a
// path also carries a name.
func validate(cfg *Config) error {
	var errs []string

	if !outputFormats[cfg.Format] {
		errs = append(errs, fmt.Sprintf("invalid format: %q (must be table, jsonl or csv)", cfg.Format))
	}

	seen := make(map[string]int)
	for i, ref := range cfg.Tables {
		if ref.Path == "" {
			errs = append(errs, fmt.Sprintf("tables[%d]: path is required", i))
		}
		if ref.Format != "" && !tableFormats[strings.ToLower(ref.Format)] {
			errs = append(errs, fmt.Sprintf("tables[%d]: invalid table format %q", i, ref.Format))
		}
		if ref.Name == "" {
			continue
		}
		if !namePattern.MatchString(ref.Name) {
			errs = append(errs, fmt.Sprintf("tables[%d]: invalid name %q", i, ref.Name))
		}
		if j, dup := seen[ref.Name]; dup {
			errs = append(errs, fmt.Sprintf("tables[%d]: duplicate table name %q (also tables[%d])", i, ref.Name, j))
		} else {
			seen[ref.Name] = i
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
