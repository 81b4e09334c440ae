package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	s, err := New(filepath.Join(dir, "uploads"), filepath.Join(dir, "exports"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return s
}

func TestNew_CreatesDirectories(t *testing.T) {
	dir := t.TempDir()
	uploads := filepath.Join(dir, "up", "loads")
	exports := filepath.Join(dir, "exports")

	if _, err := New(uploads, exports); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, d := range []string{uploads, exports} {
		info, err := os.Stat(d)
		if err != nil {
			t.Fatalf("stat %q: %v", d, err)
		}
		if !info.IsDir() {
			t.Errorf("%q is not a directory", d)
		}
	}
}

func TestStore_SaveUpload(t *testing.T) {
	s := newTestStore(t)

	path, err := s.SaveUpload(strings.NewReader("statement body"), "January.PDF")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading upload back: %v", err)
	}
	if string(data) != "statement body" {
		t.Errorf("content: got %q, want %q", data, "statement body")
	}
	if got := filepath.Ext(path); got != ".pdf" {
		t.Errorf("extension: got %q, want %q", got, ".pdf")
	}

	// A second upload of the same file must land under a new name.
	other, err := s.SaveUpload(strings.NewReader("statement body"), "January.PDF")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if other == path {
		t.Errorf("repeated upload reused path %q", path)
	}
}

func TestStore_NewExportBase(t *testing.T) {
	s := newTestStore(t)

	base := s.NewExportBase("January Statement.pdf")
	if !strings.HasPrefix(base, "January-Statement-") {
		t.Errorf("base: got %q, want %q prefix", base, "January-Statement-")
	}

	if again := s.NewExportBase("January Statement.pdf"); again == base {
		t.Errorf("repeated export base %q not unique", base)
	}
}

func TestSanitizeBase(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain name", "statement.pdf", "statement"},
		{"spaces collapse", "my bank statement.pdf", "my-bank-statement"},
		{"directories stripped", "../../etc/passwd.pdf", "passwd"},
		{"nothing usable", "....", "statement"},
		{"unicode collapses", "état–janvier.pdf", "tat-janvier"},
		{"long names capped", strings.Repeat("a", 100) + ".pdf", strings.Repeat("a", 64)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sanitizeBase(tt.in); got != tt.want {
				t.Errorf("sanitizeBase(%q): got %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestStore_ResolveExport(t *testing.T) {
	s := newTestStore(t)

	base := s.NewExportBase("statement.pdf")
	path := s.ExportPath(base, "csv")
	if err := os.WriteFile(path, []byte("Date,Description\n"), 0o644); err != nil {
		t.Fatalf("seeding export: %v", err)
	}

	got, err := s.ResolveExport(base, "csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != path {
		t.Errorf("path: got %q, want %q", got, path)
	}
}

func TestStore_ResolveExport_RejectsUnsafeNames(t *testing.T) {
	s := newTestStore(t)

	names := []string{
		"",
		"../secret",
		"..",
		"a/b",
		"a\\b",
		"name.with.dots",
		"name with spaces",
	}
	for _, name := range names {
		if _, err := s.ResolveExport(name, "csv"); err == nil {
			t.Errorf("ResolveExport(%q) accepted an unsafe name", name)
		}
	}
}

func TestStore_ResolveExport_MissingFile(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.ResolveExport("never-written", "csv"); err == nil {
		t.Error("ResolveExport on a missing export returned nil error")
	}
}
