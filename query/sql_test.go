package query

import (
	"errors"
	"strings"
	"testing"

	"github.com/vegasq/relq/table"
)

func catalogFixture(t *testing.T) map[string]*table.Relation {
	t.Helper()
	return map[string]*table.Relation{
		"students":    studentsFixture(t),
		"memberships": membershipsFixture(t),
		"classes":     classesFixture(t),
	}
}

func TestParseStatement_Execute(t *testing.T) {
	tests := []struct {
		name string
		stmt string
		want string
	}{
		{
			name: "select star",
			stmt: "SELECT * FROM students",
			want: "pk,first_name,last_name,age\n" +
				"1,Alice,Smith,12\n" +
				"2,Bob,Jones,14\n" +
				"3,Carol,Reyes,11\n",
		},
		{
			name: "projection and filter",
			stmt: "SELECT last_name FROM students WHERE age > 12",
			want: "last_name\nJones\n",
		},
		{
			name: "bare alias",
			stmt: "SELECT * FROM students s WHERE s.age = 14",
			want: "s.pk,s.first_name,s.last_name,s.age\n2,Bob,Jones,14\n",
		},
		{
			name: "lowercase keywords",
			stmt: "select first_name from students where age = 11",
			want: "first_name\nCarol\n",
		},
		{
			name: "order by defaults ascending",
			stmt: "SELECT last_name FROM students ORDER BY last_name",
			want: "last_name\nJones\nReyes\nSmith\n",
		},
		{
			name: "order by descending",
			stmt: "SELECT first_name, age FROM students ORDER BY age DESC",
			want: "first_name,age\nBob,14\nAlice,12\nCarol,11\n",
		},
		{
			name: "join without on is a cross join",
			stmt: "SELECT * FROM students s JOIN classes c",
			want: "s.pk,s.first_name,s.last_name,s.age,c.pk,c.name\n" +
				"1,Alice,Smith,12,1,Maths\n" +
				"1,Alice,Smith,12,2,Art\n" +
				"2,Bob,Jones,14,1,Maths\n" +
				"2,Bob,Jones,14,2,Art\n" +
				"3,Carol,Reyes,11,1,Maths\n" +
				"3,Carol,Reyes,11,2,Art\n",
		},
		{
			name: "joins filter and sort",
			stmt: "SELECT s.pk, s.first_name, s.last_name, s.age, cd.name " +
				"FROM students AS s " +
				"JOIN memberships AS cm ON cm.student_fk = s.pk " +
				"JOIN classes AS cd ON cd.pk = cm.definition_class_fk " +
				"WHERE s.age < 13 " +
				"ORDER BY cd.name ASC",
			want: "s.pk,s.first_name,s.last_name,s.age,cd.name\n" +
				"1,Alice,Smith,12,Art\n" +
				"3,Carol,Reyes,11,Art\n" +
				"1,Alice,Smith,12,Maths\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := ParseStatement(tt.stmt, catalogFixture(t))
			if err != nil {
				t.Fatalf("ParseStatement() error = %v", err)
			}
			result, err := q.Execute()
			if err != nil {
				t.Fatalf("Execute() error = %v", err)
			}
			if got := result.CSV(); got != tt.want {
				t.Errorf("result CSV = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseStatement_ConditionTextKeptVerbatim(t *testing.T) {
	q, err := ParseStatement("SELECT * FROM students s WHERE s.age   <   13 ORDER BY s.age DESC", catalogFixture(t))
	if err != nil {
		t.Fatalf("ParseStatement() error = %v", err)
	}
	want := "FROM [anonymous table] AS \"s\"\n" +
		"WHERE s.age   <   13\n" +
		"ORDER BY s.age DESC\n"
	if got := q.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestParseStatement_InsertValues(t *testing.T) {
	tables := catalogFixture(t)
	q, err := ParseStatement("INSERT INTO scores (name, points) VALUES (Ada, 10), ('New York', 8)", tables)
	if err != nil {
		t.Fatalf("ParseStatement() error = %v", err)
	}

	target, ok := tables["scores"]
	if !ok {
		t.Fatal("target table was not created in the catalog")
	}

	if _, err := q.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	want := "name,points\nAda,10\nNew York,8\n"
	if got := target.CSV(); got != want {
		t.Errorf("target CSV = %q, want %q", got, want)
	}

	wantStr := "INSERT INTO [anonymous table] (name, points)\n" +
		"VALUES (\n" +
		"    Ada, 10,\n" +
		"    New York, 8\n" +
		")\n"
	if got := q.String(); got != wantStr {
		t.Errorf("String() = %q, want %q", got, wantStr)
	}
}

func TestParseStatement_InsertSelect(t *testing.T) {
	tables := catalogFixture(t)
	q, err := ParseStatement(
		"INSERT INTO honor_roll (s.first_name) SELECT s.first_name FROM students AS s WHERE s.age < 12",
		tables,
	)
	if err != nil {
		t.Fatalf("ParseStatement() error = %v", err)
	}
	if _, err := q.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	want := "s.first_name\nCarol\n"
	if got := tables["honor_roll"].CSV(); got != want {
		t.Errorf("target CSV = %q, want %q", got, want)
	}
}

func TestParseStatement_InsertKeepsExistingSchema(t *testing.T) {
	tables := map[string]*table.Relation{
		"log": table.NewRelation("ts", "msg"),
	}
	q, err := ParseStatement("INSERT INTO log (msg) VALUES (hello)", tables)
	if err != nil {
		t.Fatalf("ParseStatement() error = %v", err)
	}
	if _, err := q.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	want := "ts,msg\nnull,hello\n"
	if got := tables["log"].CSV(); got != want {
		t.Errorf("target CSV = %q, want %q", got, want)
	}
}

func TestParseStatement_OnPairsWithItsOwnJoin(t *testing.T) {
	tables := map[string]*table.Relation{
		"a": makeRelation(t, []string{"k"}, []string{"1"}),
		"b": makeRelation(t, []string{"v"}, []string{"x"}, []string{"y"}),
		"c": makeRelation(t, []string{"k"}, []string{"1"}, []string{"9"}),
	}
	q, err := ParseStatement("SELECT * FROM a t JOIN b u JOIN c v ON v.k = t.k", tables)
	if err != nil {
		t.Fatalf("ParseStatement() error = %v", err)
	}
	result, err := q.Execute()
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	want := "t.k,u.v,v.k\n1,x,1\n1,y,1\n"
	if got := result.CSV(); got != want {
		t.Errorf("result CSV = %q, want %q", got, want)
	}
}

func TestParseStatement_Errors(t *testing.T) {
	tests := []struct {
		name        string
		stmt        string
		wantErr     error
		errContains string
	}{
		{
			name:        "empty statement",
			stmt:        "   ",
			errContains: "empty statement",
		},
		{
			name:        "unknown leading keyword",
			stmt:        "FROM students",
			errContains: "must start with SELECT or INSERT INTO",
		},
		{
			name:        "missing select list",
			stmt:        "SELECT FROM students",
			errContains: "expected column name in select list",
		},
		{
			name:        "missing from",
			stmt:        "SELECT *",
			errContains: "expected FROM after select list",
		},
		{
			name:    "unknown from table",
			stmt:    "SELECT * FROM nope",
			wantErr: ErrUnknownTable,
		},
		{
			name:    "unknown join table",
			stmt:    "SELECT * FROM students JOIN nope",
			wantErr: ErrUnknownTable,
		},
		{
			name:        "empty where",
			stmt:        "SELECT * FROM students WHERE ORDER BY pk ASC",
			errContains: "expected condition after WHERE",
		},
		{
			name:        "order without by",
			stmt:        "SELECT * FROM students ORDER pk",
			errContains: "expected BY after ORDER",
		},
		{
			name:        "order by without field",
			stmt:        "SELECT * FROM students ORDER BY",
			errContains: "expected sort field after ORDER BY",
		},
		{
			name:        "as without alias",
			stmt:        "SELECT * FROM students AS",
			errContains: "expected alias after AS",
		},
		{
			name:        "invalid character",
			stmt:        "SELECT * FROM students; DROP TABLE students",
			errContains: "invalid character in statement",
		},
		{
			name:        "trailing tokens",
			stmt:        "SELECT * FROM students s surplus",
			errContains: "unexpected trailing tokens",
		},
		{
			name:        "insert without into",
			stmt:        "INSERT students (a) VALUES (1)",
			errContains: "expected INTO after INSERT",
		},
		{
			name:        "insert without column list",
			stmt:        "INSERT INTO scores a, b",
			errContains: "expected column list",
		},
		{
			name:        "short value row",
			stmt:        "INSERT INTO scores (a, b) VALUES (1)",
			errContains: "value row has 1 values, want 2",
		},
		{
			name:    "too many tokens",
			stmt:    "SELECT " + strings.Repeat("a ", MaxStatementTokens),
			wantErr: ErrTooManyTokens,
		},
		{
			name:    "statement too long",
			stmt:    "SELECT " + strings.Repeat("x", MaxStatementLength),
			wantErr: ErrStatementTooLong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseStatement(tt.stmt, catalogFixture(t))
			if err == nil {
				t.Fatalf("ParseStatement(%q) error = nil, want error", tt.stmt)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("ParseStatement(%q) error = %v, want %v", tt.stmt, err, tt.wantErr)
			}
			if tt.errContains != "" && !strings.Contains(err.Error(), tt.errContains) {
				t.Errorf("ParseStatement(%q) error = %v, want it to contain %q", tt.stmt, err, tt.errContains)
			}
		})
	}
}
