package query

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vegasq/relq/filter"
	"github.com/vegasq/relq/table"
)

// Statement guard rails, separate from the condition limits in filter:
// statements carry table and column lists on top of condition text.
const (
	// MaxStatementLength is the maximum statement length in bytes.
	MaxStatementLength = 1 << 20

	// MaxStatementTokens is the maximum number of tokens in a statement.
	MaxStatementTokens = 10_000
)

var (
	// ErrStatementTooLong is returned when a statement exceeds MaxStatementLength.
	ErrStatementTooLong = errors.New("statement too long")

	// ErrTooManyTokens is returned when a statement exceeds MaxStatementTokens.
	ErrTooManyTokens = errors.New("too many tokens in statement")

	// ErrUnknownTable is returned when FROM or JOIN names a table that is
	// not in the catalog.
	ErrUnknownTable = errors.New("unknown table")
)

// ParseStatement parses a SQL statement against a catalog of named tables
// and returns the configured query, ready to Execute. The grammar is
//
//	SELECT col[, col]* | *
//	FROM name [AS alias | alias]
//	(JOIN name [AS alias] [ON condition])*
//	[WHERE condition]
//	[ORDER BY field [ASC|DESC]]
//
//	INSERT INTO name (col[, col]*) [VALUES (v[, v]*)[, (v[, v]*)]*] [SELECT ...]
//
// Condition text is sliced verbatim from the statement, so the query
// carries exactly what was written. SELECT * registers no projection.
// An unknown INSERT INTO target is created empty in the catalog.
func ParseStatement(stmt string, tables map[string]*table.Relation) (*Query, error) {
	if len(stmt) > MaxStatementLength {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrStatementTooLong, len(stmt), MaxStatementLength)
	}
	if tables == nil {
		tables = make(map[string]*table.Relation)
	}

	tokens := filter.Tokenize(stmt)
	if len(tokens) > MaxStatementTokens {
		return nil, fmt.Errorf("%w: %d tokens (max %d)", ErrTooManyTokens, len(tokens), MaxStatementTokens)
	}
	if last := tokens[len(tokens)-1]; last.Type == filter.TokenError {
		return nil, fmt.Errorf("invalid character in statement: %s", last.Value)
	}

	p := &statementParser{stmt: stmt, tokens: tokens, tables: tables}
	q := New()

	var err error
	switch p.current().Type {
	case filter.TokenInsert:
		err = p.parseInsert(q)
	case filter.TokenSelect:
		err = p.parseSelect(q)
	case filter.TokenEOF:
		return nil, errors.New("empty statement")
	default:
		return nil, fmt.Errorf("statement must start with SELECT or INSERT INTO, got %q", p.current().Value)
	}
	if err != nil {
		return nil, err
	}

	if p.current().Type != filter.TokenEOF {
		return nil, fmt.Errorf("unexpected trailing tokens after statement: %s", p.current().Value)
	}
	return q, nil
}

// statementParser walks the token stream of one statement. Tokens keep
// their byte offsets, which lets condition spans be cut out of the
// original text instead of being rebuilt from tokens.
type statementParser struct {
	stmt   string
	tokens []filter.Token
	pos    int
	tables map[string]*table.Relation
}

func (p *statementParser) current() filter.Token {
	if p.pos >= len(p.tokens) {
		return filter.Token{Type: filter.TokenEOF, Pos: len(p.stmt)}
	}
	return p.tokens[p.pos]
}

func (p *statementParser) advance() {
	p.pos++
}

func (p *statementParser) expect(tt filter.TokenType) error {
	if p.current().Type != tt {
		return fmt.Errorf("expected %v, got %q", tt, p.current().Value)
	}
	p.advance()
	return nil
}

// parseSelect parses SELECT list, FROM, JOIN/ON clauses, WHERE and
// ORDER BY into the query.
func (p *statementParser) parseSelect(q *Query) error {
	p.advance()

	if p.current().Type == filter.TokenStar {
		p.advance()
	} else {
		columns, err := p.parseColumnList("select list")
		if err != nil {
			return err
		}
		q.Select(columns...)
	}

	if err := p.expect(filter.TokenFrom); err != nil {
		return fmt.Errorf("expected FROM after select list: %w", err)
	}
	rel, err := p.parseTableRef()
	if err != nil {
		return err
	}
	alias, err := p.parseAlias()
	if err != nil {
		return err
	}
	q.From(rel, alias)

	var ons []string
	for p.current().Type == filter.TokenJoin {
		p.advance()
		rel, err := p.parseTableRef()
		if err != nil {
			return err
		}
		alias, err := p.parseAlias()
		if err != nil {
			return err
		}
		q.Join(rel, alias)

		on := ""
		if p.current().Type == filter.TokenOn {
			p.advance()
			on, err = p.conditionSpan("ON")
			if err != nil {
				return err
			}
		}
		ons = append(ons, on)
	}
	// Trailing unconditioned joins need no ON entries; earlier gaps keep
	// an empty placeholder so each condition stays with its own join.
	for len(ons) > 0 && ons[len(ons)-1] == "" {
		ons = ons[:len(ons)-1]
	}
	for _, on := range ons {
		q.On(on)
	}

	if p.current().Type == filter.TokenWhere {
		p.advance()
		where, err := p.conditionSpan("WHERE")
		if err != nil {
			return err
		}
		q.Where(where)
	}

	if p.current().Type == filter.TokenOrder {
		p.advance()
		if err := p.expect(filter.TokenBy); err != nil {
			return fmt.Errorf("expected BY after ORDER: %w", err)
		}
		field := p.current()
		if field.Type != filter.TokenIdent {
			return fmt.Errorf("expected sort field after ORDER BY, got %q", field.Value)
		}
		p.advance()
		direction := "ASC"
		if p.current().Type == filter.TokenAsc || p.current().Type == filter.TokenDesc {
			direction = p.current().Value
			p.advance()
		}
		q.OrderBy(field.Value + " " + direction)
	}

	return nil
}

// parseInsert parses INSERT INTO with its column list, optional VALUES
// rows and optional trailing SELECT.
func (p *statementParser) parseInsert(q *Query) error {
	p.advance()
	if err := p.expect(filter.TokenInto); err != nil {
		return fmt.Errorf("expected INTO after INSERT: %w", err)
	}

	tok := p.current()
	if tok.Type != filter.TokenIdent && tok.Type != filter.TokenString {
		return fmt.Errorf("expected table name after INSERT INTO, got %q", tok.Value)
	}
	p.advance()

	if err := p.expect(filter.TokenLeftParen); err != nil {
		return fmt.Errorf("expected column list after INSERT INTO %s: %w", tok.Value, err)
	}
	columns, err := p.parseColumnList("insert column list")
	if err != nil {
		return err
	}
	if err := p.expect(filter.TokenRightParen); err != nil {
		return err
	}

	target, ok := p.tables[tok.Value]
	if !ok {
		// A new target adopts the declared columns as its schema; an
		// existing table keeps its own.
		target = table.NewRelation(columns...)
		p.tables[tok.Value] = target
	}
	q.InsertInto(target, columns...)

	if p.current().Type == filter.TokenValues {
		p.advance()
		values, err := p.parseValueRows(len(columns))
		if err != nil {
			return err
		}
		q.Values(values...)
	}

	if p.current().Type == filter.TokenSelect {
		return p.parseSelect(q)
	}
	return nil
}

// parseColumnList parses one or more comma-separated column names.
func (p *statementParser) parseColumnList(clause string) ([]string, error) {
	var columns []string
	for {
		tok := p.current()
		if tok.Type != filter.TokenIdent {
			return nil, fmt.Errorf("expected column name in %s, got %q", clause, tok.Value)
		}
		columns = append(columns, tok.Value)
		p.advance()
		if p.current().Type != filter.TokenComma {
			return columns, nil
		}
		p.advance()
	}
}

// parseValueRows parses parenthesized value rows and returns the values
// flattened row-major. Every row must match the insert column count.
func (p *statementParser) parseValueRows(width int) ([]string, error) {
	var values []string
	for {
		if err := p.expect(filter.TokenLeftParen); err != nil {
			return nil, fmt.Errorf("expected value row: %w", err)
		}
		n := 0
		for {
			tok := p.current()
			switch tok.Type {
			case filter.TokenNumber, filter.TokenString, filter.TokenIdent:
				values = append(values, tok.Value)
				n++
				p.advance()
			default:
				return nil, fmt.Errorf("expected value, got %q", tok.Value)
			}
			if p.current().Type != filter.TokenComma {
				break
			}
			p.advance()
		}
		if err := p.expect(filter.TokenRightParen); err != nil {
			return nil, err
		}
		if n != width {
			return nil, fmt.Errorf("value row has %d values, want %d", n, width)
		}
		if p.current().Type != filter.TokenComma {
			return values, nil
		}
		p.advance()
	}
}

// parseTableRef resolves a table name against the catalog.
func (p *statementParser) parseTableRef() (*table.Relation, error) {
	tok := p.current()
	if tok.Type != filter.TokenIdent && tok.Type != filter.TokenString {
		return nil, fmt.Errorf("expected table name, got %q", tok.Value)
	}
	p.advance()
	rel, ok := p.tables[tok.Value]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTable, tok.Value)
	}
	return rel, nil
}

// parseAlias parses an optional table alias, with or without AS.
func (p *statementParser) parseAlias() (string, error) {
	explicit := p.current().Type == filter.TokenAs
	if explicit {
		p.advance()
	}
	if p.current().Type == filter.TokenIdent {
		alias := p.current().Value
		p.advance()
		return alias, nil
	}
	if explicit {
		return "", fmt.Errorf("expected alias after AS, got %q", p.current().Value)
	}
	return "", nil
}

// statementKeyword reports whether a token type opens a statement clause,
// which ends a condition span.
func statementKeyword(tt filter.TokenType) bool {
	switch tt {
	case filter.TokenSelect, filter.TokenFrom, filter.TokenJoin, filter.TokenOn,
		filter.TokenWhere, filter.TokenOrder, filter.TokenInsert, filter.TokenInto,
		filter.TokenValues:
		return true
	}
	return false
}

// conditionSpan consumes tokens up to the next clause keyword and returns
// the covered statement text verbatim.
func (p *statementParser) conditionSpan(clause string) (string, error) {
	start := p.current().Pos
	for p.current().Type != filter.TokenEOF && !statementKeyword(p.current().Type) {
		p.advance()
	}
	span := strings.TrimSpace(p.stmt[start:p.current().Pos])
	if span == "" {
		return "", fmt.Errorf("expected condition after %s", clause)
	}
	return span, nil
}
