package usecase

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"textparser/internal/domain"
)

func TestNewParserRejectsChunkSize(t *testing.T) {
	for _, size := range []int{0, -5} {
		_, err := NewParser(size, true)
		if !errors.Is(err, domain.ErrChunkSize) {
			t.Errorf("size %d: expected ErrChunkSize, got %v", size, err)
		}
	}
}

func TestParseEmpty(t *testing.T) {
	p, err := NewParser(100, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	chunks := p.Parse("")
	if len(chunks) != 0 {
		t.Errorf("expected no chunks for empty text, got %d", len(chunks))
	}
}

func TestParseSingleChunk(t *testing.T) {
	p, err := NewParser(100, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	text := "short text that fits in one chunk"
	chunks := p.Parse(text)
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0] != text {
		t.Errorf("expected chunk to equal input, got %q", chunks[0])
	}
}

func TestParseMatchesParseChunked(t *testing.T) {
	p, err := NewParser(40, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	text := "First sentence here. Second sentence there. Third one closes.\n\nNew paragraph with more words to split."
	plain := p.Parse(text)
	chunked := p.ParseChunked(text)

	if len(plain) != chunked.Len() {
		t.Fatalf("expected %d chunks from both forms, got %d", len(plain), chunked.Len())
	}
	for i, want := range plain {
		got, err := chunked.At(i)
		if err != nil {
			t.Fatalf("unexpected error at %d: %v", i, err)
		}
		if got != want {
			t.Errorf("chunk %d: expected %q, got %q", i, want, got)
		}
	}
	if chunked.Source() != "" {
		t.Errorf("expected empty source for in-memory parse, got %q", chunked.Source())
	}
}

func TestParseFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "doc.txt")
	content := "First paragraph with several words in it.\n\nSecond paragraph, also with words."
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	p, err := NewParser(50, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	chunks, err := p.ParseFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Join(chunks, "") != content {
		t.Error("expected chunks to reconstruct file content")
	}
}

func TestParseFileChunkedSource(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "doc.txt")
	if err := os.WriteFile(path, []byte("some text"), 0644); err != nil {
		t.Fatal(err)
	}

	p, err := NewParser(100, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ct, err := p.ParseFileChunked(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ct.Source() != path {
		t.Errorf("expected source %s, got %s", path, ct.Source())
	}
	if ct.TotalSize() != len("some text") {
		t.Errorf("expected total size %d, got %d", len("some text"), ct.TotalSize())
	}
}

func TestParseFileMissing(t *testing.T) {
	p, err := NewParser(100, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = p.ParseFile(filepath.Join(t.TempDir(), "absent.txt"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected wrapped os.ErrNotExist, got %v", err)
	}
}

func TestParseFileInvalidUTF8(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "binary.txt")
	if err := os.WriteFile(path, []byte{0xff, 0x00, 0x80}, 0644); err != nil {
		t.Fatal(err)
	}

	p, err := NewParser(100, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = p.ParseFile(path)
	if !errors.Is(err, domain.ErrInvalidUTF8) {
		t.Errorf("expected ErrInvalidUTF8, got %v", err)
	}
}

func TestParseFileCodeMode(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "script.py")

	body := strings.Repeat("    x = compute_value(x)\n", 5)
	content := "import things\n\ndef first():\n" + body + "def second():\n" + body + "class Third:\n" + body
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	p, err := NewParser(200, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	chunks, err := p.ParseFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i, chunk := range chunks[1:] {
		if !strings.HasPrefix(chunk, "def ") && !strings.HasPrefix(chunk, "class ") {
			t.Errorf("chunk %d: expected a definition at chunk start, got %q", i+1, firstLine(chunk))
		}
	}
}

func TestParserConcurrentUse(t *testing.T) {
	p, err := NewParser(30, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	text := strings.Repeat("A sentence for everyone. ", 20)
	want := p.Parse(text)

	var wg sync.WaitGroup
	results := make([][]string, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = p.Parse(text)
		}(i)
	}
	wg.Wait()

	for i, got := range results {
		if len(got) != len(want) {
			t.Errorf("goroutine %d: expected %d chunks, got %d", i, len(want), len(got))
			continue
		}
		for j := range got {
			if got[j] != want[j] {
				t.Errorf("goroutine %d: chunk %d differs", i, j)
			}
		}
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
