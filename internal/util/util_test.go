// internal/util/util_test.go
package util

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "reports", "sample.txt")
	data := []byte("test payload")

	if err := WriteFile(path, data); err != nil {
		t.Fatalf("WriteFile returned error: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile error: %v", err)
	}
	if string(got) != string(data) {
		t.Fatalf("unexpected file contents: got %q want %q", got, data)
	}
}

func TestCreateFileTruncates(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out", "chart.png")
	if err := WriteFile(path, []byte("old contents")); err != nil {
		t.Fatalf("WriteFile returned error: %v", err)
	}

	f, err := CreateFile(path)
	if err != nil {
		t.Fatalf("CreateFile returned error: %v", err)
	}
	if _, err := f.WriteString("new"); err != nil {
		t.Fatalf("WriteString error: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile error: %v", err)
	}
	if string(got) != "new" {
		t.Fatalf("unexpected file contents: got %q want %q", got, "new")
	}
}

func TestEnsureDirWithoutParent(t *testing.T) {
	t.Parallel()

	if err := EnsureDir("chart.html"); err != nil {
		t.Fatalf("EnsureDir returned error: %v", err)
	}
}
