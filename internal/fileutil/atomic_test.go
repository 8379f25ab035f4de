package fileutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteAtomic(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "chart.txt")
	want := []byte("AA 85.3\nKK 82.1\n")

	if err := WriteAtomic(path, want, 0644); err != nil {
		t.Fatalf("WriteAtomic failed: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(got) != string(want) {
		t.Errorf("content = %q, want %q", got, want)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0644 {
		t.Errorf("permissions = %o, want %o", info.Mode().Perm(), 0644)
	}

	// No temp files left behind
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	for _, entry := range entries {
		if entry.Name() != "chart.txt" {
			t.Errorf("unexpected file left in directory: %s", entry.Name())
		}
	}
}

func TestWriteAtomicOverwrite(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "chart.txt")

	if err := WriteAtomic(path, []byte("old"), 0644); err != nil {
		t.Fatalf("initial write failed: %v", err)
	}
	if err := WriteAtomic(path, []byte("new contents"), 0600); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(got) != "new contents" {
		t.Errorf("content = %q, want %q", got, "new contents")
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("permissions = %o, want %o", info.Mode().Perm(), 0600)
	}
}

func TestWriteAtomicEmpty(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "empty.txt")

	if err := WriteAtomic(path, nil, 0644); err != nil {
		t.Fatalf("WriteAtomic failed: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("content = %q, want empty", got)
	}
}

func TestWriteAtomicMissingDir(t *testing.T) {
	t.Parallel()

	err := WriteAtomic("/nonexistent/dir/chart.txt", []byte("data"), 0644)
	if err == nil {
		t.Error("expected error writing into a missing directory")
	}
}
