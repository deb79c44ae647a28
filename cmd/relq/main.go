package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/vegasq/relq/config"
	"github.com/vegasq/relq/output"
	"github.com/vegasq/relq/query"
	"github.com/vegasq/relq/reader"
	"github.com/vegasq/relq/table"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// catalog maps table names to loaded relations, keeping load order for
// deterministic output.
type catalog struct {
	tables map[string]*table.Relation
	names  []string
	// describe arguments per table, kept for schema mode
	paths   map[string]string
	formats map[string]string
}

func newCatalog() *catalog {
	return &catalog{
		tables:  make(map[string]*table.Relation),
		paths:   make(map[string]string),
		formats: make(map[string]string),
	}
}

func (c *catalog) add(name, path, format string, rel *table.Relation) error {
	if _, dup := c.tables[name]; dup {
		return fmt.Errorf("duplicate table name %q (loaded from %s)", name, path)
	}
	c.tables[name] = rel
	c.names = append(c.names, name)
	c.paths[name] = path
	c.formats[name] = format
	return nil
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("relq", flag.ContinueOnError)
	fs.SetOutput(stderr)

	queryFlag := fs.String("q", "", "SQL statement (e.g., \"SELECT name FROM students WHERE age > 30\")")
	formatFlag := fs.String("f", "", "Output format: table, jsonl, csv (default from manifest, else table)")
	limitFlag := fs.Int("limit", 0, "Limit number of result rows (0 = unlimited)")
	configFlag := fs.String("c", "", "Workspace manifest to preload tables from")
	schemaFlag := fs.Bool("schema", false, "Show column layout instead of data")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: relq [options] <table-file> ...\n\n")
		fmt.Fprintf(stderr, "A tool to display and query CSV, JSON and parquet tables.\n")
		fmt.Fprintf(stderr, "Each file joins the catalog under its base name: data/students.csv is\n")
		fmt.Fprintf(stderr, "queried as \"students\". File arguments may be glob patterns.\n\n")
		fmt.Fprintf(stderr, "IMPORTANT: All flags must come BEFORE file arguments.\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  relq students.csv\n")
		fmt.Fprintf(stderr, "  relq -f csv students.parquet\n")
		fmt.Fprintf(stderr, "  relq -q \"SELECT name FROM students WHERE age < 13\" students.csv\n")
		fmt.Fprintf(stderr, "  relq -q \"SELECT s.name, c.name FROM students AS s JOIN classes AS c ON c.pk = s.class_fk\" students.csv classes.csv\n")
		fmt.Fprintf(stderr, "  relq --schema students.parquet\n")
		fmt.Fprintf(stderr, "  relq -c relq.yaml -q \"SELECT * FROM students\"\n")
	}

	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *limitFlag < 0 {
		fmt.Fprintf(stderr, "Error: -limit must be non-negative, got %d\n", *limitFlag)
		return 1
	}
	if *schemaFlag && *queryFlag != "" {
		fmt.Fprintf(stderr, "Error: --schema and -q cannot be used together\n")
		return 1
	}

	format := *formatFlag
	cat := newCatalog()

	if *configFlag != "" {
		cfg, err := config.Load(*configFlag, os.Getenv)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		if format == "" {
			format = cfg.Format
		}
		for _, ref := range cfg.Tables {
			rel, err := reader.ReadTableFile(ref.Path, ref.Format)
			if err != nil {
				fmt.Fprintf(stderr, "Error loading %s: %v\n", ref.Path, err)
				return 1
			}
			if err := cat.add(ref.Name, ref.Path, ref.Format, rel); err != nil {
				fmt.Fprintf(stderr, "Error: %v\n", err)
				return 1
			}
		}
	}

	for _, path := range fs.Args() {
		rel, err := reader.ReadTableFiles(path, "")
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				fmt.Fprintf(stderr, "Error: file '%s' not found\n", path)
				fmt.Fprintf(stderr, "Please check the file path and try again.\n")
			} else {
				fmt.Fprintf(stderr, "Error: %v\n", err)
			}
			return 1
		}
		if err := cat.add(reader.TableName(path), path, "", rel); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
	}

	formatter, err := output.New(format, stdout)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		fmt.Fprintf(stderr, "Supported formats: table, jsonl, csv\n")
		return 1
	}

	if *schemaFlag {
		if len(cat.names) == 0 {
			fmt.Fprintf(stderr, "Error: missing table file argument\n\n")
			fs.Usage()
			return 1
		}
		for _, name := range cat.names {
			if len(cat.names) > 1 {
				fmt.Fprintf(stdout, "# %s\n", name)
			}
			desc, err := reader.Describe(cat.paths[name], cat.formats[name])
			if err != nil {
				fmt.Fprintf(stderr, "Error describing %s: %v\n", name, err)
				return 1
			}
			if err := formatter.Format(desc); err != nil {
				fmt.Fprintf(stderr, "Error formatting output: %v\n", err)
				return 1
			}
		}
		return 0
	}

	if *queryFlag != "" {
		q, err := query.ParseStatement(*queryFlag, cat.tables)
		if err != nil {
			fmt.Fprintf(stderr, "Error parsing query: %v\n\n", err)
			fmt.Fprintf(stderr, "Query format: SELECT <columns> FROM <table> [JOIN <table> ON <condition>] [WHERE <condition>] [ORDER BY <field> ASC|DESC]\n")
			fmt.Fprintf(stderr, "Example: SELECT name FROM students WHERE age > 30\n")
			return 1
		}
		result, err := q.Execute()
		if err != nil {
			fmt.Fprintf(stderr, "Error executing query: %v\n", err)
			return 1
		}
		if *limitFlag > 0 {
			result = result.Limit(*limitFlag)
		}
		if err := formatter.Format(result); err != nil {
			fmt.Fprintf(stderr, "Error formatting output: %v\n", err)
			return 1
		}
		return 0
	}

	if len(cat.names) == 0 {
		fmt.Fprintf(stderr, "Error: missing table file argument\n\n")
		fs.Usage()
		return 1
	}
	for _, name := range cat.names {
		if len(cat.names) > 1 {
			fmt.Fprintf(stdout, "# %s\n", name)
		}
		rel := cat.tables[name]
		if *limitFlag > 0 {
			rel = rel.Limit(*limitFlag)
		}
		if err := formatter.Format(rel); err != nil {
			fmt.Fprintf(stderr, "Error formatting output: %v\n", err)
			return 1
		}
	}
	return 0
}
