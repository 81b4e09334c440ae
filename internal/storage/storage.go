// Package storage manages the upload and export directories.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// exportNamePattern is the only shape of export name the store will
// resolve. It admits no path separators or dots, so a crafted name
// cannot reach outside the export directory.
var exportNamePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

var unsafeRunPattern = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// Store owns the upload and export directories and hands out
// collision-free file names inside them. Exported files are the only
// state that outlives a request.
type Store struct {
	uploadDir string
	exportDir string
}

// New creates both directories if they do not exist yet.
func New(uploadDir, exportDir string) (*Store, error) {
	for _, dir := range []string{uploadDir, exportDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create directory %q: %w", dir, err)
		}
	}
	return &Store{uploadDir: uploadDir, exportDir: exportDir}, nil
}

// SaveUpload streams an uploaded file into the upload directory under a
// random name and returns its path. The original name contributes only
// its extension.
func (s *Store) SaveUpload(r io.Reader, original string) (string, error) {
	name := uuid.New().String() + strings.ToLower(filepath.Ext(original))
	path := filepath.Join(s.uploadDir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write upload: %w", err)
	}
	return path, nil
}

// NewExportBase derives a fresh export base name from an uploaded file
// name: the sanitized stem plus a random suffix, so concurrent requests
// for the same file never overwrite each other's exports.
func (s *Store) NewExportBase(original string) string {
	return sanitizeBase(original) + "-" + uuid.New().String()
}

// ExportPath returns the path an export with the given base name and
// extension lives at.
func (s *Store) ExportPath(base, ext string) string {
	return filepath.Join(s.exportDir, base+"."+ext)
}

// ResolveExport maps a client-supplied export name to a path inside the
// export directory. Names that fail the pattern, or that no export
// exists for, return an error.
func (s *Store) ResolveExport(name, ext string) (string, error) {
	if !exportNamePattern.MatchString(name) {
		return "", fmt.Errorf("invalid export name %q", name)
	}
	path := filepath.Join(s.exportDir, name+"."+ext)
	if _, err := os.Stat(path); err != nil {
		return "", err
	}
	return path, nil
}

// sanitizeBase reduces an uploaded file name to a safe export stem:
// directory components and the extension go, every run of other
// characters collapses to a hyphen, and the result is capped at 64
// bytes. A name with nothing usable left becomes "statement".
func sanitizeBase(original string) string {
	base := filepath.Base(original)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = unsafeRunPattern.ReplaceAllString(base, "-")
	base = strings.Trim(base, "-")
	if base == "" {
		return "statement"
	}
	if len(base) > 64 {
		base = base[:64]
	}
	return base
}
