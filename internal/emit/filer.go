package emit

import "os"

// Filer abstracts the write side of emission so rendering can be tested
// without touching the real filesystem.
type Filer interface {
	WriteFile(path string, data []byte) error
}

// OSFiler writes generated files to the local filesystem
type OSFiler struct{}

func (OSFiler) WriteFile(path string, data []byte) error {
	return os.WriteFile(path, data, 0644)
}
