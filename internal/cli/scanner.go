package cli

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/delegen/delegen/internal/errors"
)

// DirectoryScanner handles recursive directory scanning for Go files
type DirectoryScanner struct{}

// NewDirectoryScanner creates a new directory scanner
func NewDirectoryScanner() *DirectoryScanner {
	return &DirectoryScanner{}
}

// ScanDirectories resolves the provided directory patterns to the set of
// directories containing Go source files. Supports Go-style patterns like
// "./..." for recursive scanning; a plain directory resolves to itself when
// it holds Go files.
func (s *DirectoryScanner) ScanDirectories(rootDirs []string) ([]string, error) {
	var found []string
	seen := make(map[string]bool)

	for _, rootDir := range rootDirs {
		recursive := false
		baseDir := rootDir

		// Handle Go-style recursive patterns like "./..."
		if strings.HasSuffix(rootDir, "/...") {
			recursive = true
			baseDir = strings.TrimSuffix(rootDir, "/...")
			if baseDir == "" {
				baseDir = "."
			}
		}

		cleanPath, err := filepath.Abs(baseDir)
		if err != nil {
			return nil, errors.Wrap(errors.FileSystemErrorCode, "failed to resolve path "+baseDir, err)
		}

		if !recursive {
			if s.hasGoFiles(cleanPath) && !seen[cleanPath] {
				seen[cleanPath] = true
				found = append(found, cleanPath)
			}
			continue
		}

		err = filepath.WalkDir(cleanPath, func(path string, entry fs.DirEntry, err error) error {
			if err != nil {
				// Skip directories that can't be accessed
				return nil
			}
			if !entry.IsDir() {
				return nil
			}
			name := entry.Name()
			if path != cleanPath && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") || name == "vendor" || name == "testdata") {
				return filepath.SkipDir
			}
			if s.hasGoFiles(path) && !seen[path] {
				seen[path] = true
				found = append(found, path)
			}
			return nil
		})
		if err != nil {
			return nil, errors.Wrap(errors.FileSystemErrorCode, "failed to scan "+cleanPath, err)
		}
	}

	return found, nil
}

// hasGoFiles reports whether a directory directly contains non-test,
// non-generated Go source files.
func (s *DirectoryScanner) hasGoFiles(dir string) bool {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".go") {
			continue
		}
		if strings.HasSuffix(name, "_test.go") || strings.HasPrefix(name, "autogen_") {
			continue
		}
		return true
	}
	return false
}
