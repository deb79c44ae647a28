// Package table implements the in-memory data model: loosely-typed rows
// (Record) grouped into named-column, ordered-row tables (Relation).
//
// A Relation owns an ordered, deduplicated list of field names (its schema)
// and an ordered sequence of Records. The schema drives display and CSV
// column order but does not constrain which fields a given Record holds; a
// field absent from a Record renders as the literal text "null" wherever it
// is printed or compared.
//
// Relations support the multi-table pipeline used by the query package:
// Insert re-keys and copies rows from a source table under an alias, Join
// performs a nested-loop cross join with staged where/on filtering, Project
// narrows and reorders columns, and Sort orders rows by a single column.
// Where/on clauses are condition strings evaluated per row by the filter
// package.
//
// Example:
//
//	left := table.NewRelation("pk", "name")
//	rec := table.NewRecord()
//	rec.Set("pk", "1")
//	rec.Set("name", "alice")
//	left.AddRow(rec)
//
//	joined, err := left.Join("a", right, "b", "", "b.fk = a.pk")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Print(joined)
package table
