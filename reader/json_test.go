package reader

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestReadJSONFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "array of objects",
			content: `[{"name":"alice","age":30},{"name":"bob","city":"NYC"}]`,
			want:    "name,age,city\nalice,30,null\nbob,null,NYC\n",
		},
		{
			name:    "json lines",
			content: "{\"a\":1}\n{\"a\":2,\"b\":true}\n",
			want:    "a,b\n1,null\n2,true\n",
		},
		{
			name:    "single object across lines",
			content: "{\n  \"a\": \"x\"\n}",
			want:    "a\nx\n",
		},
		{
			name:    "null leaves field absent",
			content: `{"a":null,"b":1}`,
			want:    "a,b\nnull,1\n",
		},
		{
			name:    "number rendering",
			content: `{"n":1.5,"m":42}`,
			want:    "n,m\n1.5,42\n",
		},
		{
			name:    "blank lines between rows",
			content: "{\"a\":1}\n\n{\"a\":2}\n",
			want:    "a\n1\n2\n",
		},
		{
			name:    "empty file",
			content: "",
			want:    "",
		},
		{
			name:    "empty array",
			content: "[]",
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTempFile(t, "data.json", tt.content)
			rel, err := ReadJSONFile(path)
			if err != nil {
				t.Fatalf("ReadJSONFile() error = %v", err)
			}
			if got := rel.CSV(); got != tt.want {
				t.Errorf("CSV() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReadJSONFile_Errors(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		errContains string
	}{
		{
			name:        "scalar document",
			content:     "42",
			errContains: "not an object or array",
		},
		{
			name:        "array of scalars",
			content:     "[1,2]",
			errContains: "row 0 is not a JSON object",
		},
		{
			name:        "invalid array",
			content:     "[{]",
			errContains: "invalid JSON array",
		},
		{
			name:        "invalid line",
			content:     "not json\n",
			errContains: "invalid JSON on line 1",
		},
		{
			name:        "array line in json lines",
			content:     "{\"a\":1}\n[2]\n",
			errContains: "line 2 is not a JSON object",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTempFile(t, "data.json", tt.content)
			_, err := ReadJSONFile(path)
			if err == nil {
				t.Fatalf("ReadJSONFile() error = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.errContains) {
				t.Errorf("ReadJSONFile() error = %v, want it to contain %q", err, tt.errContains)
			}
		})
	}
}

func TestReadJSONFile_Missing(t *testing.T) {
	if _, err := ReadJSONFile(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("ReadJSONFile() error = nil, want error for missing file")
	}
}
