package table

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/vegasq/relq/filter"
)

// ErrInconsistentColumnType is returned by Sort when the sort column mixes
// numeric and non-numeric values, or holds numeric text that is not an
// integer.
var ErrInconsistentColumnType = errors.New("inconsistent column type")

// Relation is a named-column, ordered-row table. The schema is an ordered,
// deduplicated list of field names; rows are Records appended in order and
// never removed individually.
type Relation struct {
	fields []string
	rows   []*Record
}

// NewRelation creates a relation with the given initial schema. Duplicate
// names collapse to their first occurrence.
func NewRelation(fields ...string) *Relation {
	r := &Relation{}
	for _, name := range fields {
		r.AddField(name)
	}
	return r
}

// AddField appends a field name to the schema unless it is already present.
func (r *Relation) AddField(name string) {
	if !r.hasField(name) {
		r.fields = append(r.fields, name)
	}
}

func (r *Relation) hasField(name string) bool {
	for _, f := range r.fields {
		if f == name {
			return true
		}
	}
	return false
}

// AddRow appends a record to the relation. The record is not validated
// against the schema; it may hold more or fewer fields than the schema
// lists.
func (r *Relation) AddRow(rec *Record) {
	r.rows = append(r.rows, rec)
}

// Row returns the record at the given row index.
func (r *Relation) Row(i int) *Record {
	return r.rows[i]
}

// RowCount returns the number of rows.
func (r *Relation) RowCount() int {
	return len(r.rows)
}

// FieldCount returns the number of schema fields.
func (r *Relation) FieldCount() int {
	return len(r.fields)
}

// Fields returns a copy of the schema in order.
func (r *Relation) Fields() []string {
	fields := make([]string, len(r.fields))
	copy(fields, r.fields)
	return fields
}

// Project returns a new relation whose schema is exactly the given fields in
// that order, with every row copied down to just those fields. Values are
// looked up by exact name; fields missing from a source row stay absent in
// the copy.
func (r *Relation) Project(fields ...string) *Relation {
	out := NewRelation(fields...)
	for _, row := range r.rows {
		rec := NewRecord()
		for _, name := range fields {
			if value, ok := row.Get(name); ok {
				rec.Set(name, value)
			}
		}
		out.AddRow(rec)
	}
	return out
}

// addAlias qualifies name with alias unless the name already carries an
// alias (contains a '.') or alias is empty.
func addAlias(name, alias string) string {
	if alias == "" || strings.Contains(name, ".") {
		return name
	}
	return alias + "." + name
}

// stripAlias drops everything through the first '.' in name; unqualified
// names pass through unchanged.
func stripAlias(name string) string {
	if i := strings.Index(name, "."); i >= 0 {
		return name[i+1:]
	}
	return name
}

// FieldsWithAlias returns the schema with every unqualified field prefixed
// by alias. Fields that already carry an alias are left unchanged, as is
// everything when alias is empty.
func (r *Relation) FieldsWithAlias(alias string) []string {
	fields := make([]string, len(r.fields))
	for i, name := range r.fields {
		fields[i] = addAlias(name, alias)
	}
	return fields
}

// FieldsWithoutAlias returns the schema with alias prefixes removed.
func (r *Relation) FieldsWithoutAlias() []string {
	fields := make([]string, len(r.fields))
	for i, name := range r.fields {
		fields[i] = stripAlias(name)
	}
	return fields
}

// satisfiesReferences reports whether every field referenced by the
// expression's comparisons is present in the schema. A clause that fails
// this check is not enforced at the current stage: it is treated as
// vacuously satisfied and enforced later, once a join has introduced the
// missing columns. The scan is shallow by contract (see
// filter.ReferencedFields).
func (r *Relation) satisfiesReferences(expr string) bool {
	for _, name := range filter.ReferencedFields(expr) {
		if !r.hasField(name) {
			return false
		}
	}
	return true
}

// Join performs a full nested-loop cross join with the right relation and
// returns a new relation. The result schema is the receiver's fields aliased
// with leftAlias followed by the right relation's fields aliased with
// rightAlias (an empty alias leaves names unchanged). Rows pair in row-major
// order: every right row for the first left row, then every right row for
// the second, and so on. Each merged row is kept only if both the where and
// on clauses pass the staged three-way check: clause empty, or referencing a
// field absent from the result schema, or evaluating true against the merged
// row.
func (r *Relation) Join(leftAlias string, right *Relation, rightAlias string, where, on string) (*Relation, error) {
	out := NewRelation(r.FieldsWithAlias(leftAlias)...)
	for _, name := range right.FieldsWithAlias(rightAlias) {
		out.AddField(name)
	}

	whereCond, err := filter.Parse(where)
	if err != nil {
		return nil, fmt.Errorf("where clause: %w", err)
	}
	onCond, err := filter.Parse(on)
	if err != nil {
		return nil, fmt.Errorf("on clause: %w", err)
	}

	applyWhere := out.satisfiesReferences(where)
	applyOn := out.satisfiesReferences(on)

	for _, left := range r.rows {
		for _, rightRow := range right.rows {
			merged := NewRecord()
			for name, value := range left.fields {
				merged.Set(addAlias(name, leftAlias), value)
			}
			for name, value := range rightRow.fields {
				merged.Set(addAlias(name, rightAlias), value)
			}

			if applyWhere {
				ok, err := whereCond.Eval(merged)
				if err != nil {
					return nil, fmt.Errorf("where clause: %w", err)
				}
				if !ok {
					continue
				}
			}
			if applyOn {
				ok, err := onCond.Eval(merged)
				if err != nil {
					return nil, fmt.Errorf("on clause: %w", err)
				}
				if !ok {
					continue
				}
			}
			out.AddRow(merged)
		}
	}
	return out, nil
}

// Insert copies rows from the source relation into the receiver, mutating it
// in place. Source fields are re-keyed under their aliased names: the value
// for aliased field i is looked up in the source row by the stripped name at
// the same position, so an unqualified source table inserts cleanly under a
// fresh alias. All aliased names join the receiver's schema. Each re-keyed
// row is appended only if the where clause passes the staged three-way check
// against the fully built row.
func (r *Relation) Insert(src *Relation, alias, where string) error {
	plain := src.FieldsWithoutAlias()
	aliased := src.FieldsWithAlias(alias)

	for _, name := range aliased {
		r.AddField(name)
	}

	cond, err := filter.Parse(where)
	if err != nil {
		return fmt.Errorf("where clause: %w", err)
	}
	apply := r.satisfiesReferences(where)

	for _, row := range src.rows {
		rec := NewRecord()
		for i, name := range aliased {
			if value, ok := row.Get(plain[i]); ok {
				rec.Set(name, value)
			}
		}
		if apply {
			ok, err := cond.Eval(rec)
			if err != nil {
				return fmt.Errorf("where clause: %w", err)
			}
			if !ok {
				continue
			}
		}
		r.rows = append(r.rows, rec)
	}
	return nil
}

// Sort stably orders rows by the named field. A direction equal to "desc"
// (any case) reverses the order; anything else sorts ascending. The column
// is scanned first, reading absent fields as "null": if every value is
// integer text the sort is numeric, if none is numeric the sort is a
// byte-wise string compare, and anything in between returns
// ErrInconsistentColumnType.
func (r *Relation) Sort(field, direction string) error {
	type sortRow struct {
		rec  *Record
		text string
		num  int
	}

	rows := make([]sortRow, len(r.rows))
	sawNumeric, sawText := false, false
	for i, rec := range r.rows {
		text := rec.value(field)
		rows[i] = sortRow{rec: rec, text: text}
		if !filter.IsNumber(text) {
			sawText = true
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(text))
		if err != nil {
			return fmt.Errorf("%w: field %q holds non-integer numeric value %q", ErrInconsistentColumnType, field, text)
		}
		rows[i].num = n
		sawNumeric = true
	}
	if sawNumeric && sawText {
		return fmt.Errorf("%w: field %q mixes numeric and non-numeric values", ErrInconsistentColumnType, field)
	}

	desc := strings.EqualFold(direction, "desc")
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if desc {
			a, b = b, a
		}
		if sawNumeric {
			return a.num < b.num
		}
		return a.text < b.text
	})
	for i := range rows {
		r.rows[i] = rows[i].rec
	}
	return nil
}

// Limit returns a new relation with the same schema and independent copies
// of the first n rows. When n is not positive or exceeds the row count, all
// rows are copied.
func (r *Relation) Limit(n int) *Relation {
	out := NewRelation(r.fields...)
	if n <= 0 || n > len(r.rows) {
		n = len(r.rows)
	}
	for _, rec := range r.rows[:n] {
		out.AddRow(rec.Clone())
	}
	return out
}

// String renders the relation for display: a header line of "[name]" cells
// joined by four spaces and trimmed, then one fixed-width line per row. Rows
// that render to nothing are skipped.
func (r *Relation) String() string {
	var header strings.Builder
	for _, name := range r.fields {
		header.WriteString("[")
		header.WriteString(name)
		header.WriteString("]    ")
	}

	var b strings.Builder
	b.WriteString(strings.TrimSpace(header.String()))
	b.WriteByte('\n')
	for _, rec := range r.rows {
		line := rec.Render(r.fields)
		if line == "" {
			continue
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}

// CSV renders the relation as comma-separated text: the schema names on the
// first line, then one line per row with absent fields rendered as "null".
// A relation with no schema renders as the empty string.
func (r *Relation) CSV() string {
	var b strings.Builder
	if len(r.fields) > 0 {
		b.WriteString(strings.Join(r.fields, ","))
		b.WriteByte('\n')
	}
	for _, rec := range r.rows {
		line := rec.CSVLine(r.fields)
		if line == "" {
			continue
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}

// Equal reports whether the two relations have the same field count and
// identical display renderings. Equality is schema-order- and
// alias-sensitive by contract: the same content under reordered or
// re-aliased columns is not equal.
func (r *Relation) Equal(other *Relation) bool {
	if other == nil {
		return false
	}
	if r.FieldCount() != other.FieldCount() {
		return false
	}
	return r.String() == other.String()
}
