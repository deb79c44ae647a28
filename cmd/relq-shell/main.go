/*
Package main is the entry point for the relq interactive shell.

The shell is a REPL over an in-memory table catalog: table files are
loaded with \load (or preloaded from command-line arguments and a
workspace manifest), statements typed at the prompt run against the
catalog, and results print in the session's output format.

Command types:

 1. Local commands (prefixed with \):
    - \load <path> [name]  : Load a table file or glob into the catalog
    - \tables              : List loaded tables
    - \schema <name>       : Show a table's fields
    - \format [fmt]        : Show or set the output format
    - \write <name> <path> : Save a table to a .csv or .jsonl file
    - \h or \help          : Display help information
    - \q or \quit          : Exit the shell

 2. Statements: SELECT and INSERT INTO statements, executed in memory
    against the loaded tables.

Example session:

	relq> \load students.csv
	loaded students (4 rows)
	relq> SELECT name FROM students WHERE age > 13
	+-------+
	| name  |
	+-------+
	| alice |
	+-------+
	relq> \q
*/
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/chzyer/readline"
	"golang.org/x/term"

	"github.com/vegasq/relq/config"
	"github.com/vegasq/relq/output"
	"github.com/vegasq/relq/query"
	"github.com/vegasq/relq/reader"
	"github.com/vegasq/relq/table"
)

// isTerminal returns true if stdin is a terminal.
func isTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// allCompletions contains all completable commands and keywords for tab
// completion.
var allCompletions = []string{
	// Local commands
	"\\load", "\\tables", "\\schema", "\\format", "\\write",
	"\\h", "\\help", "\\q", "\\quit",
	// Statement keywords
	"SELECT", "INSERT", "INTO", "VALUES",
	"FROM", "JOIN", "ON", "WHERE", "AND", "OR", "AS",
	"ORDER", "BY", "ASC", "DESC",
}

// getHistoryFilePath returns the path to the history file.
func getHistoryFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".relq_history")
}

// createCompleter creates a readline completer for tab completion.
func createCompleter() *readline.PrefixCompleter {
	items := make([]readline.PrefixCompleterInterface, 0, len(allCompletions))
	for _, cmd := range allCompletions {
		items = append(items, readline.PcItem(cmd))
	}
	return readline.NewPrefixCompleter(items...)
}

// createReadlineInstance creates a configured readline instance.
func createReadlineInstance() (*readline.Instance, error) {
	config := &readline.Config{
		Prompt:          "relq> ",
		HistoryFile:     getHistoryFilePath(),
		AutoComplete:    createCompleter(),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	}
	return readline.NewEx(config)
}

// filterInput filters input runes for readline.
func filterInput(r rune) (rune, bool) {
	switch r {
	case readline.CharCtrlZ:
		return r, false // Disable Ctrl+Z
	}
	return r, true
}

// session holds the shell's table catalog and output settings. Catalog
// order is kept so \tables lists tables as they were loaded.
type session struct {
	tables map[string]*table.Relation
	names  []string
	format string
	out    io.Writer
	errOut io.Writer
}

func newSession(out, errOut io.Writer) *session {
	return &session{
		tables: make(map[string]*table.Relation),
		format: "table",
		out:    out,
		errOut: errOut,
	}
}

// add puts a relation in the catalog. Loading under an existing name
// replaces the table and keeps its position in the listing.
func (s *session) add(name string, rel *table.Relation) {
	if _, ok := s.tables[name]; !ok {
		s.names = append(s.names, name)
	}
	s.tables[name] = rel
}

// load reads a table file or glob pattern into the catalog. An empty name
// derives the catalog name from the path.
func (s *session) load(path, name string) (string, error) {
	rel, err := reader.ReadTableFiles(path, "")
	if err != nil {
		return "", err
	}
	if name == "" {
		name = reader.TableName(path)
	}
	s.add(name, rel)
	return name, nil
}

// adoptNewTables picks up tables a statement created in the catalog (an
// INSERT INTO with a fresh target), so \tables and later statements see
// them. New names are appended in sorted order.
func (s *session) adoptNewTables() {
	known := make(map[string]bool, len(s.names))
	for _, name := range s.names {
		known[name] = true
	}
	var added []string
	for name := range s.tables {
		if !known[name] {
			added = append(added, name)
		}
	}
	sort.Strings(added)
	s.names = append(s.names, added...)
}

// print formats a relation to the session output in the session format.
func (s *session) print(rel *table.Relation) error {
	formatter, err := output.New(s.format, s.out)
	if err != nil {
		return err
	}
	return formatter.Format(rel)
}

// runStatement parses and executes one statement against the catalog and
// prints the result.
func (s *session) runStatement(stmt string) error {
	q, err := query.ParseStatement(stmt, s.tables)
	if err != nil {
		return err
	}
	s.adoptNewTables()
	result, err := q.Execute()
	if err != nil {
		return err
	}
	return s.print(result)
}

// write saves a table to a file, picking the format from the extension:
// .csv writes CSV, .json/.jsonl/.ndjson write JSON Lines.
func (s *session) write(name, path string) error {
	rel, ok := s.tables[name]
	if !ok {
		return fmt.Errorf("no table named %q", name)
	}

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	switch ext {
	case "", "csv", "json", "jsonl", "ndjson":
	default:
		return fmt.Errorf("unsupported write format %q (use .csv or .jsonl)", ext)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	var formatter output.Formatter
	if ext == "" || ext == "csv" {
		formatter = output.NewCSVFormatter(f)
	} else {
		formatter = output.NewJSONFormatter(f)
	}
	if err := formatter.Format(rel); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// dispatch handles one line of input. It returns true when the shell
// should exit.
func (s *session) dispatch(line string) bool {
	input := strings.TrimSpace(line)
	input = strings.TrimSuffix(input, ";")
	input = strings.TrimSpace(input)
	if input == "" {
		return false
	}

	if strings.HasPrefix(input, "\\") {
		return s.handleLocalCommand(input)
	}

	if err := s.runStatement(input); err != nil {
		fmt.Fprintf(s.errOut, "Error: %v\n", err)
	}
	return false
}

// handleLocalCommand runs a backslash command. It returns true when the
// shell should exit.
func (s *session) handleLocalCommand(input string) bool {
	parts := strings.Fields(input)
	switch parts[0] {
	case "\\q", "\\quit":
		return true

	case "\\h", "\\help":
		s.printHelp()

	case "\\load":
		if len(parts) < 2 || len(parts) > 3 {
			fmt.Fprintln(s.errOut, "usage: \\load <path> [name]")
			break
		}
		name := ""
		if len(parts) == 3 {
			name = parts[2]
		}
		loaded, err := s.load(parts[1], name)
		if err != nil {
			fmt.Fprintf(s.errOut, "Error: %v\n", err)
			break
		}
		fmt.Fprintf(s.out, "loaded %s (%d rows)\n", loaded, s.tables[loaded].RowCount())

	case "\\tables":
		if len(s.names) == 0 {
			fmt.Fprintln(s.out, "no tables loaded")
			break
		}
		for _, name := range s.names {
			rel := s.tables[name]
			fmt.Fprintf(s.out, "%s\t%d columns\t%d rows\n", name, rel.FieldCount(), rel.RowCount())
		}

	case "\\schema":
		if len(parts) != 2 {
			fmt.Fprintln(s.errOut, "usage: \\schema <name>")
			break
		}
		rel, ok := s.tables[parts[1]]
		if !ok {
			fmt.Fprintf(s.errOut, "Error: no table named %q\n", parts[1])
			break
		}
		for _, field := range rel.Fields() {
			fmt.Fprintln(s.out, field)
		}

	case "\\format":
		if len(parts) == 1 {
			fmt.Fprintf(s.out, "format: %s\n", s.format)
			break
		}
		if _, err := output.New(parts[1], io.Discard); err != nil {
			fmt.Fprintf(s.errOut, "Error: %v (formats: table, jsonl, csv)\n", err)
			break
		}
		s.format = strings.ToLower(parts[1])
		fmt.Fprintf(s.out, "format: %s\n", s.format)

	case "\\write":
		if len(parts) != 3 {
			fmt.Fprintln(s.errOut, "usage: \\write <name> <path>")
			break
		}
		if err := s.write(parts[1], parts[2]); err != nil {
			fmt.Fprintf(s.errOut, "Error: %v\n", err)
			break
		}
		fmt.Fprintf(s.out, "wrote %s to %s\n", parts[1], parts[2])

	default:
		fmt.Fprintf(s.errOut, "unknown command %s (try \\help)\n", parts[0])
	}
	return false
}

func (s *session) printHelp() {
	fmt.Fprintln(s.out, "Local commands:")
	fmt.Fprintln(s.out, "  \\load <path> [name]    Load a table file (or glob) into the catalog")
	fmt.Fprintln(s.out, "  \\tables                List loaded tables")
	fmt.Fprintln(s.out, "  \\schema <name>         Show a table's fields")
	fmt.Fprintln(s.out, "  \\format [fmt]          Show or set the output format: table, jsonl, csv")
	fmt.Fprintln(s.out, "  \\write <name> <path>   Save a table to a .csv or .jsonl file")
	fmt.Fprintln(s.out, "  \\h, \\help              Show this help")
	fmt.Fprintln(s.out, "  \\q, \\quit              Exit the shell")
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, "Anything else runs as a statement:")
	fmt.Fprintln(s.out, "  SELECT name FROM students WHERE age > 13")
	fmt.Fprintln(s.out, "  SELECT s.name, c.name FROM students AS s JOIN classes AS c ON c.pk = s.class_fk")
	fmt.Fprintln(s.out, "  INSERT INTO totals (label, value) VALUES (books, 12)")
}

// printUsage prints help for the command-line flags.
func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: relq-shell [options] [table-file ...]\n\n")
	fmt.Fprintf(os.Stderr, "An interactive shell for querying CSV, JSON and parquet tables.\n")
	fmt.Fprintf(os.Stderr, "Each file joins the catalog under its base name; arguments may be\n")
	fmt.Fprintf(os.Stderr, "glob patterns.\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nExamples:\n")
	fmt.Fprintf(os.Stderr, "  relq-shell students.csv classes.csv\n")
	fmt.Fprintf(os.Stderr, "  relq-shell -c relq.yaml\n")
	fmt.Fprintf(os.Stderr, "  relq-shell -e \"SELECT name FROM students\" students.csv\n")
}

func main() {
	configFlag := flag.String("c", "", "Workspace manifest to preload tables from")
	formatFlag := flag.String("f", "", "Output format: table, jsonl, csv (default from manifest, else table)")
	executeFlag := flag.String("e", "", "Execute a statement and exit")
	flag.Usage = printUsage
	flag.Parse()

	sess := newSession(os.Stdout, os.Stderr)

	if *formatFlag != "" {
		if _, err := output.New(*formatFlag, io.Discard); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			fmt.Fprintf(os.Stderr, "Supported formats: table, jsonl, csv\n")
			os.Exit(1)
		}
		sess.format = strings.ToLower(*formatFlag)
	}

	if *configFlag != "" {
		cfg, err := config.Load(*configFlag, os.Getenv)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if *formatFlag == "" && cfg.Format != "" {
			sess.format = cfg.Format
		}
		for _, ref := range cfg.Tables {
			rel, err := reader.ReadTableFile(ref.Path, ref.Format)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error loading %s: %v\n", ref.Path, err)
				os.Exit(1)
			}
			sess.add(ref.Name, rel)
		}
	}

	for _, path := range flag.Args() {
		if _, err := sess.load(path, ""); err != nil {
			fmt.Fprintf(os.Stderr, "Error loading %s: %v\n", path, err)
			os.Exit(1)
		}
	}

	// Execute-and-exit mode
	if *executeFlag != "" {
		if err := sess.runStatement(*executeFlag); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// If not running in a terminal (piped input), use simple REPL
	if !isTerminal() {
		runSimpleREPL(sess)
		return
	}

	fmt.Println("relq shell")
	if len(sess.names) > 0 {
		fmt.Printf("Loaded tables: %s\n", strings.Join(sess.names, ", "))
	}
	fmt.Println("Type \\h for help, \\q to quit, Tab for completion.")
	fmt.Println()

	rl, err := createReadlineInstance()
	if err != nil {
		// Fall back to simple scanner if readline fails
		fmt.Fprintf(os.Stderr, "advanced line editing unavailable: %v\n", err)
		runSimpleREPL(sess)
		return
	}
	defer func() { _ = rl.Close() }()

	for {
		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				fmt.Println("(use \\q to quit or Ctrl+D to exit)")
				continue
			}
			// io.EOF on Ctrl+D, anything else on a broken terminal
			break
		}
		if sess.dispatch(line) {
			break
		}
	}
}

// runSimpleREPL runs a scanner-based REPL without readline, for piped
// input or terminals where readline setup fails.
func runSimpleREPL(sess *session) {
	interactive := isTerminal()
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), query.MaxStatementLength)

	for {
		if interactive {
			fmt.Print("relq> ")
		}
		if !scanner.Scan() {
			break
		}
		if sess.dispatch(scanner.Text()) {
			break
		}
	}
}
