package domain

import "fmt"

type span struct {
	start int
	end   int
}

// ChunkedText is an immutable, ordered chunk container. It owns the
// document text once and keeps one (start, end) pair per chunk; chunk text
// is sliced out of the shared buffer on access instead of being copied up
// front. Built once, read-only afterwards, safe for concurrent readers.
type ChunkedText struct {
	text   string
	source string
	spans  []span
	size   int
}

// NewChunkedText wraps a completed split of text. source is the
// originating file path, or empty for in-memory text.
func NewChunkedText(text, source string, chunks []Chunk) *ChunkedText {
	ct := &ChunkedText{
		text:   text,
		source: source,
		spans:  make([]span, 0, len(chunks)),
	}
	for _, c := range chunks {
		ct.spans = append(ct.spans, span{start: c.Start, end: c.End})
		ct.size += c.End - c.Start
	}
	return ct
}

// Len reports the number of chunks.
func (c *ChunkedText) Len() int {
	return len(c.spans)
}

// At returns the chunk at index i. Negative indices count from the end,
// -1 being the last chunk. Indices outside [-Len, Len) fail with
// ErrOutOfRange.
func (c *ChunkedText) At(i int) (string, error) {
	idx := i
	if idx < 0 {
		idx += len(c.spans)
	}
	if idx < 0 || idx >= len(c.spans) {
		return "", fmt.Errorf("%w: %d with %d chunks", ErrOutOfRange, i, len(c.spans))
	}
	s := c.spans[idx]
	return c.text[s.start:s.end], nil
}

// Slice returns the chunks in [start, end). end is clamped into range and
// may exceed Len; start must resolve within [0, Len] or the call fails
// with ErrOutOfRange. An empty slice results when end <= start.
func (c *ChunkedText) Slice(start, end int) ([]string, error) {
	n := len(c.spans)

	s := start
	if s < 0 {
		s += n
	}
	if s < 0 || s > n {
		return nil, fmt.Errorf("%w: slice start %d with %d chunks", ErrOutOfRange, start, n)
	}

	e := end
	if e < 0 {
		e += n
	}
	if e < 0 {
		e = 0
	}
	if e > n {
		e = n
	}

	if e <= s {
		return []string{}, nil
	}

	out := make([]string, 0, e-s)
	for _, sp := range c.spans[s:e] {
		out = append(out, c.text[sp.start:sp.end])
	}
	return out, nil
}

// TotalSize reports the summed byte length of all spans, which equals the
// document's byte length for a full parse.
func (c *ChunkedText) TotalSize() int {
	return c.size
}

// Source reports the originating file path, empty for in-memory text.
func (c *ChunkedText) Source() string {
	return c.source
}

// Strings materializes every chunk in order.
func (c *ChunkedText) Strings() []string {
	out := make([]string, len(c.spans))
	for i, sp := range c.spans {
		out[i] = c.text[sp.start:sp.end]
	}
	return out
}

// Chunks materializes the chunk spans with their text views.
func (c *ChunkedText) Chunks() []Chunk {
	out := make([]Chunk, len(c.spans))
	for i, sp := range c.spans {
		out[i] = Chunk{Start: sp.start, End: sp.end, Text: c.text[sp.start:sp.end]}
	}
	return out
}

// Iter returns an independent iterator over chunk texts in construction
// order. Iterators never mutate the container, so any number may run
// concurrently.
func (c *ChunkedText) Iter() *ChunkIterator {
	return &ChunkIterator{ct: c}
}

// ChunkIterator walks a ChunkedText front to back.
type ChunkIterator struct {
	ct  *ChunkedText
	pos int
	cur string
}

// Next advances the iterator and reports whether a chunk is available.
func (it *ChunkIterator) Next() bool {
	if it.pos >= len(it.ct.spans) {
		return false
	}
	s := it.ct.spans[it.pos]
	it.cur = it.ct.text[s.start:s.end]
	it.pos++
	return true
}

// Text returns the chunk produced by the last call to Next.
func (it *ChunkIterator) Text() string {
	return it.cur
}

// Index returns the zero-based index of the chunk produced by the last
// call to Next.
func (it *ChunkIterator) Index() int {
	return it.pos - 1
}
