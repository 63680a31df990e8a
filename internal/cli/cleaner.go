package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Cleaner handles cleaning up generated files
type Cleaner struct{}

// NewCleaner creates a new cleaner
func NewCleaner() *Cleaner {
	return &Cleaner{}
}

// CleanGeneratedFiles removes all autogen_*_delegate.go files from the
// specified directories and returns the paths it removed.
func (c *Cleaner) CleanGeneratedFiles(directories []string) ([]string, error) {
	var removedFiles []string

	for _, dir := range directories {
		err := c.cleanDirectory(dir, &removedFiles)
		if err != nil {
			return removedFiles, fmt.Errorf("failed to clean directory %s: %w", dir, err)
		}
	}

	return removedFiles, nil
}

// cleanDirectory recursively cleans a single directory
func (c *Cleaner) cleanDirectory(dir string, removedFiles *[]string) error {
	// Handle Go-style patterns like ./...
	if strings.HasSuffix(dir, "/...") {
		baseDir := strings.TrimSuffix(dir, "/...")
		if baseDir == "" {
			baseDir = "."
		}
		return c.cleanRecursively(baseDir, removedFiles)
	}

	// Clean specific directory
	return c.cleanSingleDirectory(dir, removedFiles)
}

// cleanRecursively cleans directories recursively
func (c *Cleaner) cleanRecursively(baseDir string, removedFiles *[]string) error {
	return filepath.Walk(baseDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			// Skip directories that don't exist or can't be accessed
			return nil
		}

		if info.IsDir() {
			// Errors in a single directory don't stop the sweep
			_ = c.cleanSingleDirectory(path, removedFiles)
		}

		return nil
	})
}

// cleanSingleDirectory cleans a single directory
func (c *Cleaner) cleanSingleDirectory(dir string, removedFiles *[]string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !isGeneratedFile(entry.Name()) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("failed to remove file %s: %w", path, err)
		}
		*removedFiles = append(*removedFiles, path)
	}

	return nil
}

// isGeneratedFile matches the file naming scheme of the emitter
func isGeneratedFile(name string) bool {
	return strings.HasPrefix(name, "autogen_") && strings.HasSuffix(name, "_delegate.go")
}
