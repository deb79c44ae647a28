package reader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vegasq/relq/table"
)

// writeTempFile writes content to a file under a fresh temp dir and
// returns its path.
func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}
	return path
}

func TestReadCSVFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "basic round trip",
			content: "a,b\n1,2\n3,4\n",
			want:    "a,b\n1,2\n3,4\n",
		},
		{
			name:    "short line leaves fields absent",
			content: "a,b,c\n1,2\n",
			want:    "a,b,c\n1,2,null\n",
		},
		{
			name:    "long line drops extras",
			content: "a\n1,2\n",
			want:    "a\n1\n",
		},
		{
			name:    "crlf line endings",
			content: "a,b\r\n1,2\r\n",
			want:    "a,b\n1,2\n",
		},
		{
			name:    "blank lines skipped",
			content: "\n\na,b\n\n1,2\n",
			want:    "a,b\n1,2\n",
		},
		{
			name:    "empty values stay empty",
			content: "a,b\n,2\n",
			want:    "a,b\n,2\n",
		},
		{
			name:    "empty file",
			content: "",
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTempFile(t, "data.csv", tt.content)
			rel, err := ReadCSVFile(path)
			if err != nil {
				t.Fatalf("ReadCSVFile() error = %v", err)
			}
			if got := rel.CSV(); got != tt.want {
				t.Errorf("CSV() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReadCSVFile_Missing(t *testing.T) {
	if _, err := ReadCSVFile(filepath.Join(t.TempDir(), "nope.csv")); err == nil {
		t.Fatal("ReadCSVFile() error = nil, want error for missing file")
	}
}

func TestWriteCSVFile(t *testing.T) {
	rel := table.NewRelation("name", "age")
	rec := table.NewRecord()
	rec.Set("name", "alice")
	rec.Set("age", "30")
	rel.AddRow(rec)

	path := filepath.Join(t.TempDir(), "out.csv")
	if err := WriteCSVFile(path, rel); err != nil {
		t.Fatalf("WriteCSVFile() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read back file: %v", err)
	}
	if got, want := string(data), "name,age\nalice,30\n"; got != want {
		t.Errorf("file content = %q, want %q", got, want)
	}

	back, err := ReadCSVFile(path)
	if err != nil {
		t.Fatalf("ReadCSVFile() error = %v", err)
	}
	if !back.Equal(rel) {
		t.Errorf("round trip mismatch:\ngot:\n%s\nwant:\n%s", back, rel)
	}
}
