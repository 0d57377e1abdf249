package fs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"textparser/internal/domain"
)

func writeTestFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestWalkerIncludes(t *testing.T) {
	tmpDir := t.TempDir()
	writeTestFile(t, tmpDir, "a.txt", "alpha")
	writeTestFile(t, tmpDir, "b.py", "import os")
	writeTestFile(t, tmpDir, "c.bin", "\x00\x01")

	w := NewWalker([]string{"**/*.txt", "**/*.py"}, nil)
	files, err := w.Walk(tmpDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(files) != 2 {
		t.Fatalf("expected 2 files, got %d", len(files))
	}
	seen := make(map[string]bool)
	for _, f := range files {
		seen[f.Rel] = true
	}
	if !seen["a.txt"] || !seen["b.py"] {
		t.Errorf("expected a.txt and b.py, got %v", seen)
	}
}

func TestWalkerExcludes(t *testing.T) {
	tmpDir := t.TempDir()
	writeTestFile(t, tmpDir, "keep.txt", "kept")
	writeTestFile(t, tmpDir, filepath.Join("skip", "drop.txt"), "dropped")

	w := NewWalker([]string{"**/*.txt"}, []string{"**/skip/**"})
	files, err := w.Walk(tmpDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(files) != 1 {
		t.Fatalf("expected 1 file, got %d", len(files))
	}
	if files[0].Rel != "keep.txt" {
		t.Errorf("expected keep.txt, got %s", files[0].Rel)
	}
}

func TestWalkerFileInfo(t *testing.T) {
	tmpDir := t.TempDir()
	writeTestFile(t, tmpDir, filepath.Join("sub", "inner.md"), "# heading")

	w := NewWalker(nil, nil)
	files, err := w.Walk(tmpDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(files) != 1 {
		t.Fatalf("expected 1 file, got %d", len(files))
	}
	f := files[0]
	if !filepath.IsAbs(f.Path) {
		t.Errorf("expected absolute path, got %s", f.Path)
	}
	if f.Rel != filepath.Join("sub", "inner.md") {
		t.Errorf("expected sub/inner.md, got %s", f.Rel)
	}
	if f.Size != int64(len("# heading")) {
		t.Errorf("expected size %d, got %d", len("# heading"), f.Size)
	}
	if f.ModTime == 0 {
		t.Error("expected non-zero mod time")
	}
}

func TestReadTextFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "doc.txt")
	if err := os.WriteFile(path, []byte("plain text"), 0644); err != nil {
		t.Fatal(err)
	}

	content, err := ReadTextFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if content != "plain text" {
		t.Errorf("expected %q, got %q", "plain text", content)
	}
}

func TestReadTextFileMissing(t *testing.T) {
	_, err := ReadTextFile(filepath.Join(t.TempDir(), "absent.txt"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestReadTextFileInvalidUTF8(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "bad.txt")
	if err := os.WriteFile(path, []byte{0xff, 0xfe, 0xfd}, 0644); err != nil {
		t.Fatal(err)
	}

	_, err := ReadTextFile(path)
	if !errors.Is(err, domain.ErrInvalidUTF8) {
		t.Fatalf("expected ErrInvalidUTF8, got %v", err)
	}
}
