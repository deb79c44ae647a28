package table

import "strings"

// nullText is the rendered form of an absent field.
const nullText = "null"

// Record is one row of data: an unordered mapping from field name to string
// value. A field either holds exactly one value or is absent; absence is
// distinct from an empty string.
type Record struct {
	fields map[string]string
}

// NewRecord creates an empty record.
func NewRecord() *Record {
	return &Record{fields: make(map[string]string)}
}

// Get returns the value stored under the named field. The boolean is false
// when the field is absent. Lookup is exact; no case folding.
func (r *Record) Get(name string) (string, bool) {
	value, ok := r.fields[name]
	return value, ok
}

// Set stores value under the named field, overwriting any previous value.
// Fields are never removed once set.
func (r *Record) Set(name, value string) {
	r.fields[name] = value
}

// Len returns the number of fields present on the record.
func (r *Record) Len() int {
	return len(r.fields)
}

// value returns the stored value, or the literal "null" when absent.
func (r *Record) value(name string) string {
	if v, ok := r.fields[name]; ok {
		return v
	}
	return nullText
}

// Clone returns an independent copy of the record.
func (r *Record) Clone() *Record {
	rec := NewRecord()
	for name, value := range r.fields {
		rec.fields[name] = value
	}
	return rec
}

// Render returns the record as a fixed-width display line for the given
// ordered field list. Each value (absent fields render as "null") is
// followed by len(name)-len(value)+6 trailing spaces, so columns line up
// under headers of the form "[name]" separated by four spaces; the line is
// trimmed at the end.
func (r *Record) Render(fields []string) string {
	var b strings.Builder
	for _, name := range fields {
		value := r.value(name)
		b.WriteString(value)
		if pad := len(name) - len(value) + 6; pad > 0 {
			b.WriteString(strings.Repeat(" ", pad))
		}
	}
	return strings.TrimSpace(b.String())
}

// CSVLine returns the record's values for the given ordered field list,
// joined by commas. Absent fields render as "null". Values are written
// verbatim; there is no quoting or escaping of embedded commas.
func (r *Record) CSVLine(fields []string) string {
	values := make([]string, len(fields))
	for i, name := range fields {
		values[i] = r.value(name)
	}
	return strings.Join(values, ",")
}
