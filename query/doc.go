// Package query builds and runs queries over in-memory relations.
//
// A Query is assembled through a fluent interface and executed as a fixed
// pipeline:
//   - INSERT INTO with literal VALUES rows
//   - SELECT with column projection
//   - FROM with table aliasing
//   - JOINs with ON conditions
//   - WHERE row filtering
//   - ORDER BY sorting
//
// Clauses may be registered in any order; Execute always runs them in
// pipeline order and skips the ones left unset.
//
// # Fluent Interface
//
// Build and run a query directly against relations:
//
//	result, err := query.New().
//	    Select("s.name", "c.name").
//	    From(students, "s").
//	    Join(classes, "c").
//	    On("c.pk = s.class_fk").
//	    Where("s.age < 13").
//	    OrderBy("c.name ASC").
//	    Execute()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result)
//
// # SQL Statements
//
// ParseStatement configures the same builder from SQL text and a catalog
// of named tables:
//
//	tables := map[string]*table.Relation{"students": students}
//
//	q, err := query.ParseStatement("SELECT name FROM students WHERE age < 13", tables)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := q.Execute()
//
// # Execution Model
//
// Execute stages rows in a private relation: the FROM table is inserted
// first, each JOIN widens the staging rows, the SELECT list projects
// columns, ORDER BY sorts, and an INSERT INTO target receives copies of
// the final rows. The WHERE condition is applied at the insert stage and
// again at every join stage, and a condition referencing columns a stage
// does not carry is skipped for that stage rather than failing.
package query
