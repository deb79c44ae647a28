// Package output provides formatters for writing relations to a stream.
//
// This package defines the Formatter interface and provides
// implementations for the supported formats. All formatters write the
// relation's rows in schema order and render absent fields as null in the
// way that fits the format.
//
// # Supported Formats
//
//   - table: bordered terminal table (the default)
//   - jsonl: one JSON object per line, keys in schema order
//   - csv: comma-separated values with proper quoting and a header row
//
// # Basic Usage
//
// Pick a formatter by name and write a relation:
//
//	formatter, err := output.New("jsonl", os.Stdout)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := formatter.Format(rel); err != nil {
//	    log.Fatal(err)
//	}
//
// # Writing to Different Destinations
//
// Change output destination dynamically:
//
//	file, err := os.Create("result.csv")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer file.Close()
//
//	formatter.SetOutput(file)
//	if err := formatter.Format(rel); err != nil {
//	    log.Fatal(err)
//	}
package output
