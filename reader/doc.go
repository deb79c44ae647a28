// Package reader loads tables from files.
//
// Three formats are supported:
//   - CSV: the first line is the schema, each further line is zipped
//     against it positionally. The split is a plain comma split with no
//     quoting, matching the Relation.CSV rendering.
//   - JSON: a top-level array of objects, a single object, or JSON Lines.
//     Object keys become fields in first-seen order; null values leave
//     the field absent.
//   - Parquet: read via parquet-go, with column values rendered to text.
//
// # Basic Usage
//
// Load a table and derive its catalog name from the path:
//
//	rel, err := reader.ReadTableFile("data/students.csv", "")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	name := reader.TableName("data/students.csv") // "students"
//
// ReadTableFile dispatches on an explicit format name or, when the format
// is empty, on the file extension. WriteCSVFile writes a relation back out
// in its CSV rendering.
package reader
