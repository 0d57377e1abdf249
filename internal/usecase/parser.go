package usecase

import (
	"fmt"

	"textparser/internal/adapter/chunker"
	"textparser/internal/adapter/filekind"
	"textparser/internal/adapter/fs"
	"textparser/internal/domain"
)

// Parser is an immutable chunking configuration. A single instance is
// safe for concurrent use; each parse owns its own state.
type Parser struct {
	chunkSize         int
	respectParagraphs bool
}

// NewParser creates a parser that emits chunks of at most chunkSize
// characters. With respectParagraphs, paragraph boundaries are
// preferred over sentence boundaries when packing chunks.
func NewParser(chunkSize int, respectParagraphs bool) (*Parser, error) {
	if chunkSize <= 0 {
		return nil, fmt.Errorf("%w: %d", domain.ErrChunkSize, chunkSize)
	}
	return &Parser{
		chunkSize:         chunkSize,
		respectParagraphs: respectParagraphs,
	}, nil
}

// ChunkSize returns the configured maximum chunk length in characters.
func (p *Parser) ChunkSize() int {
	return p.chunkSize
}

// Parse splits text in plain-text mode and returns the chunks.
func (p *Parser) Parse(text string) []string {
	return p.ParseChunked(text).Strings()
}

// ParseChunked splits text in plain-text mode and returns the chunks
// as a view over the original string, avoiding per-chunk copies until
// individual chunks are requested.
func (p *Parser) ParseChunked(text string) *domain.ChunkedText {
	return p.parse(text, "", filekind.PlainText)
}

// ParseFile reads the file at path, verifies it is valid UTF-8,
// classifies it by extension and splits it in the matching mode.
func (p *Parser) ParseFile(path string) ([]string, error) {
	ct, err := p.ParseFileChunked(path)
	if err != nil {
		return nil, err
	}
	return ct.Strings(), nil
}

// ParseFileChunked is ParseFile returning the chunk view. Source on
// the result reports the file path.
func (p *Parser) ParseFileChunked(path string) (*domain.ChunkedText, error) {
	content, err := fs.ReadTextFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return p.parse(content, path, filekind.Classify(path)), nil
}

func (p *Parser) parse(text, source string, kind filekind.Kind) *domain.ChunkedText {
	sp := chunker.NewSplitter(p.chunkSize, p.respectParagraphs, kind)
	return domain.NewChunkedText(text, source, sp.Split(text))
}
