package query

import (
	"fmt"
	"strings"

	"github.com/vegasq/relq/table"
)

type joinClause struct {
	rel   *table.Relation
	alias string
}

// Query accumulates the clauses of one query through a fluent interface and
// runs them as a fixed pipeline on Execute. Clauses may be registered in any
// order; unset clauses are skipped. A Query carries its own staging
// relation, so builders are independent and single-use.
type Query struct {
	staging *table.Relation

	insertTarget  *table.Relation
	insertColumns []string
	insertValues  []string

	selectColumns []string
	selectSet     bool

	from      *table.Relation
	fromAlias string

	joins []joinClause
	ons   []string

	where   string
	orderBy string
}

// New creates an empty query.
func New() *Query {
	return &Query{staging: table.NewRelation()}
}

// InsertInto registers a relation that receives the query results, and the
// column list for literal rows. The columns join the staging schema
// immediately, so a following Values call splits against them.
func (q *Query) InsertInto(target *table.Relation, columns ...string) *Query {
	q.insertTarget = target
	q.insertColumns = columns
	for _, name := range columns {
		q.staging.AddField(name)
	}
	return q
}

// Values appends literal rows to the staging relation. The flat list is
// split row-major by the staging schema's current width; leftover values
// that do not fill a complete row are dropped. With no columns registered
// yet the call only records the values for String.
func (q *Query) Values(values ...string) *Query {
	q.insertValues = values
	fields := q.staging.Fields()
	if len(fields) == 0 {
		return q
	}
	for y := 0; y+len(fields) <= len(values); y += len(fields) {
		rec := table.NewRecord()
		for x, name := range fields {
			rec.Set(name, values[y+x])
		}
		q.staging.AddRow(rec)
	}
	return q
}

// Select registers the projection list. The named columns also join the
// staging schema, mirroring InsertInto.
func (q *Query) Select(columns ...string) *Query {
	q.selectColumns = columns
	q.selectSet = true
	for _, name := range columns {
		q.staging.AddField(name)
	}
	return q
}

// From registers the source relation and its alias.
func (q *Query) From(rel *table.Relation, alias string) *Query {
	q.from = rel
	q.fromAlias = alias
	return q
}

// Join registers a relation to join, in call order.
func (q *Query) Join(rel *table.Relation, alias string) *Query {
	q.joins = append(q.joins, joinClause{rel: rel, alias: alias})
	return q
}

// On attaches a join condition: the i-th On call belongs to the i-th Join
// call. Joins beyond the registered conditions run unconditioned.
func (q *Query) On(condition string) *Query {
	q.ons = append(q.ons, condition)
	return q
}

// Where registers the row filter applied at every insert and join stage.
func (q *Query) Where(condition string) *Query {
	q.where = condition
	return q
}

// OrderBy registers a sort clause of the form "<field> <direction>". The
// clause is split on its first space at execute time; a clause without a
// space does not sort.
func (q *Query) OrderBy(order string) *Query {
	q.orderBy = order
	return q
}

// Execute runs the pipeline: insert the from-relation into staging, fold in
// each join, project the select list, sort, then append the rows to the
// insert target. Every stage is skipped when its clause is unset. The
// staging relation is returned.
func (q *Query) Execute() (*table.Relation, error) {
	if q.from != nil {
		if err := q.staging.Insert(q.from, q.fromAlias, q.where); err != nil {
			return nil, err
		}
	}

	for i, join := range q.joins {
		var on string
		if i < len(q.ons) {
			on = q.ons[i]
		}
		joined, err := q.staging.Join("", join.rel, join.alias, q.where, on)
		if err != nil {
			return nil, err
		}
		q.staging = joined
	}

	if q.selectSet {
		q.staging = q.staging.Project(q.selectColumns...)
	}

	if field, direction, ok := splitOrder(q.orderBy); ok {
		if err := q.staging.Sort(field, direction); err != nil {
			return nil, err
		}
	}

	if q.insertTarget != nil {
		for i := 0; i < q.staging.RowCount(); i++ {
			q.insertTarget.AddRow(q.staging.Row(i).Clone())
		}
	}

	return q.staging, nil
}

// splitOrder splits an order-by clause on its first space.
func splitOrder(order string) (field, direction string, ok bool) {
	i := strings.Index(order, " ")
	if i < 0 {
		return "", "", false
	}
	return order[:i], order[i+1:], true
}

// String renders the query in SQL shape: INSERT INTO and VALUES blocks,
// then SELECT, FROM, JOIN/ON, WHERE and ORDER BY lines, each section
// omitted when unset. Relations have no names, so table positions render
// as "[anonymous table]".
func (q *Query) String() string {
	var b strings.Builder

	if q.insertTarget != nil {
		fmt.Fprintf(&b, "INSERT INTO [anonymous table] (%s)\n", strings.Join(q.insertColumns, ", "))
	}

	if len(q.insertValues) > 0 && len(q.insertColumns) > 0 {
		b.WriteString("VALUES (\n")
		width := len(q.insertColumns)
		for start := 0; start < len(q.insertValues); start += width {
			end := start + width
			if end > len(q.insertValues) {
				end = len(q.insertValues)
			}
			b.WriteString("    ")
			b.WriteString(strings.Join(q.insertValues[start:end], ", "))
			if end < len(q.insertValues) {
				b.WriteString(",")
			}
			b.WriteString("\n")
		}
		b.WriteString(")\n")
	}

	if q.selectSet {
		fmt.Fprintf(&b, "SELECT %s\n", strings.Join(q.selectColumns, ", "))
	}

	if q.from != nil {
		fmt.Fprintf(&b, "FROM [anonymous table] AS %q\n", q.fromAlias)
	}

	for i, join := range q.joins {
		fmt.Fprintf(&b, "JOIN [anonymous table] AS %q\n", join.alias)
		if i < len(q.ons) {
			fmt.Fprintf(&b, "    ON %s\n", q.ons[i])
		}
	}

	if q.where != "" {
		fmt.Fprintf(&b, "WHERE %s\n", q.where)
	}
	if q.orderBy != "" {
		fmt.Fprintf(&b, "ORDER BY %s\n", q.orderBy)
	}

	return b.String()
}
