package discovery

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFiles(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range names {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte("SELECT 1;\n"), 0644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	return dir
}

func TestDiscover_FindsAndOrdersScripts(t *testing.T) {
	dir := writeFiles(t,
		"b_seed_data.sql",
		"a_users_schema.sql",
		"migrate.sql",
		"sub/patch.sql",
		"notes.txt",
	)

	files, err := Discover(dir)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	want := []string{
		"a_users_schema.sql",
		"b_seed_data.sql",
		"migrate.sql",
		filepath.Join("sub", "patch.sql"),
	}
	if len(files) != len(want) {
		t.Fatalf("got %d files, want %d", len(files), len(want))
	}
	for i, f := range files {
		if f.RelativePath != want[i] {
			t.Errorf("file[%d] = %s, want %s", i, f.RelativePath, want[i])
		}
	}
	if files[0].Type != FileTypeSchema || files[1].Type != FileTypeData {
		t.Errorf("ordering did not put schema/data first: %v, %v", files[0].Type, files[1].Type)
	}
}

func TestDiscover_SingleFile(t *testing.T) {
	dir := writeFiles(t, "one.sql")

	files, err := Discover(filepath.Join(dir, "one.sql"))
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if len(files) != 1 || files[0].RelativePath != "one.sql" {
		t.Fatalf("got %v", files)
	}
}

func TestDiscover_MissingPath(t *testing.T) {
	if _, err := Discover("/nonexistent/path/xyz"); err == nil {
		t.Fatal("expected error for missing path")
	}
}

func TestDiscover_NonSQLFile(t *testing.T) {
	dir := writeFiles(t, "readme.sql")
	badPath := filepath.Join(dir, "readme.md")
	if err := os.WriteFile(badPath, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Discover(badPath); err == nil {
		t.Fatal("expected error for non-SQL file")
	}
}

func TestClassifyFile(t *testing.T) {
	tests := []struct {
		name string
		want FileType
	}{
		{"users_schema.sql", FileTypeSchema},
		{"USERS_SCHEMA.SQL", FileTypeSchema},
		{"seed_data.sql", FileTypeData},
		{"migrate.sql", FileTypeScript},
		{"schema.sql", FileTypeScript}, // No underscore prefix match
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyFile(tt.name); got != tt.want {
				t.Errorf("ClassifyFile(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}
