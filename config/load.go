// Package config loads the workspace manifest: a YAML file naming the
// table files to preload and the default output format.
//
//	format: table
//	tables:
//	  - name: students
//	    path: testdata/students.csv
//	  - path: ${DATA_DIR:-data}/classes.parquet
//
// Values may reference environment variables as ${VAR} or ${VAR:-default}.
// Relative table paths resolve against the manifest's directory, and a
// table without a name takes its file's base name.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads a manifest with environment interpolation. getenv supplies
// variable values; pass os.Getenv outside tests.
func Load(path string, getenv func(string) string) (*Config, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config path: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	data = interpolateEnv(data, getenv)

	cfg := Defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.BaseDir = filepath.Dir(absPath)

	for i := range cfg.Tables {
		ref := &cfg.Tables[i]
		if ref.Path != "" && !filepath.IsAbs(ref.Path) {
			ref.Path = filepath.Join(cfg.BaseDir, ref.Path)
		}
		if ref.Name == "" && ref.Path != "" {
			ref.Name = deriveName(ref.Path)
		}
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// envPattern matches ${VAR} or ${VAR:-default}.
var envPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// interpolateEnv replaces ${VAR} and ${VAR:-default} patterns with
// environment values.
func interpolateEnv(data []byte, getenv func(string) string) []byte {
	return envPattern.ReplaceAllFunc(data, func(match []byte) []byte {
		parts := envPattern.FindSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		value := getenv(string(parts[1]))
		if value == "" && len(parts) >= 3 && len(parts[2]) > 0 {
			value = string(parts[2])
		}
		return []byte(value)
	})
}

// deriveName turns a table path into a catalog name: the base name without
// its extension.
func deriveName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
