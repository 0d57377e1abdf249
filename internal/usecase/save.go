package usecase

import (
	"fmt"
	"os"
	"path/filepath"
)

// SaveChunks writes each chunk to {prefix}_{index} under dir, creating
// the directory if needed. Indices start at 0 and are zero padded to a
// width that is stable across the batch, so the files sort lexically.
// Returns the number of files written; on failure that count covers
// the files already on disk.
func SaveChunks(chunks []string, dir, prefix string) (int, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return 0, fmt.Errorf("failed to create output dir: %w", err)
	}

	width := indexWidth(len(chunks))
	written := 0
	for i, chunk := range chunks {
		name := fmt.Sprintf("%s_%0*d", prefix, width, i)
		if err := os.WriteFile(filepath.Join(dir, name), []byte(chunk), 0644); err != nil {
			return written, fmt.Errorf("failed to write %s: %w", name, err)
		}
		written++
	}
	return written, nil
}

// indexWidth is the zero padding width for n chunk indices, at least
// 3 digits.
func indexWidth(n int) int {
	width := 3
	for limit := 1000; n > limit; limit *= 10 {
		width++
	}
	return width
}
