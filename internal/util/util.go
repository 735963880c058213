// internal/util/util.go
package util

import (
	"os"
	"path/filepath"
)

// EnsureDir creates the parent directory of path when it has one.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

// WriteFile writes data to path with 0o644 permissions, creating parent
// directories as needed.
func WriteFile(path string, data []byte) error {
	if err := EnsureDir(path); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// CreateFile opens path for writing, truncating it and creating parent
// directories as needed.
func CreateFile(path string) (*os.File, error) {
	if err := EnsureDir(path); err != nil {
		return nil, err
	}
	return os.Create(path)
}
