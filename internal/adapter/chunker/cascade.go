package chunker

import (
	"unicode/utf8"

	"textparser/internal/adapter/filekind"
	"textparser/internal/domain"
)

// Splitter cuts a document into ordered, non-overlapping chunks of at
// most chunkSize characters. Boundary-delimited units are packed
// greedily; a unit that alone exceeds the limit is re-split at the next
// weaker boundary level, down to a hard character wrap, so the limit is
// never exceeded. Splitters are immutable and safe to share.
type Splitter struct {
	chunkSize int
	levels    []detector
}

// NewSplitter builds a splitter for one parse mode. The detector cascade
// runs strongest level first: code or heading boundaries for classified
// files, then paragraphs unless respectParagraphs is off, then sentences.
func NewSplitter(chunkSize int, respectParagraphs bool, kind filekind.Kind) *Splitter {
	var levels []detector
	switch kind.Mode {
	case filekind.Code:
		levels = append(levels, newCodeDetector(kind.Lang))
	case filekind.Markdown:
		levels = append(levels, headingDetector{})
	}
	if respectParagraphs {
		levels = append(levels, paragraphDetector{})
	}
	levels = append(levels, sentenceDetector{})

	return &Splitter{
		chunkSize: chunkSize,
		levels:    levels,
	}
}

// Split chunks text. The returned chunks tile the input: concatenating
// their text in order reproduces text exactly, separators included.
// Empty input yields no chunks.
func (s *Splitter) Split(text string) []domain.Chunk {
	if text == "" {
		return nil
	}
	var chunks []domain.Chunk
	s.split(text, 0, s.levels, &chunks)
	return chunks
}

// Boundaries reports every candidate split point the configured cascade
// sees in text, level by level from strongest to weakest.
func (s *Splitter) Boundaries(text string) []domain.Boundary {
	var all []domain.Boundary
	for _, level := range s.levels {
		all = append(all, level.Boundaries(text)...)
	}
	return all
}

func (s *Splitter) split(text string, base int, levels []detector, out *[]domain.Chunk) {
	if utf8.RuneCountInString(text) <= s.chunkSize {
		*out = append(*out, chunkAt(text, base, 0, len(text)))
		return
	}
	if len(levels) == 0 {
		s.hardWrap(text, base, out)
		return
	}

	offsets := splitOffsets(levels[0].Boundaries(text), len(text))
	if len(offsets) == 0 {
		s.split(text, base, levels[1:], out)
		return
	}

	cuts := append(offsets, len(text))
	curStart := 0
	curLen := 0
	unitStart := 0

	for _, cut := range cuts {
		unit := text[unitStart:cut]
		unitLen := utf8.RuneCountInString(unit)

		switch {
		case unitLen > s.chunkSize:
			// The unit alone overflows: emit what is pending and
			// re-split the unit at the weaker levels.
			if curLen > 0 {
				*out = append(*out, chunkAt(text, base, curStart, unitStart))
			}
			s.split(unit, base+unitStart, levels[1:], out)
			curStart = cut
			curLen = 0
		case curLen > 0 && curLen+unitLen > s.chunkSize:
			*out = append(*out, chunkAt(text, base, curStart, unitStart))
			curStart = unitStart
			curLen = unitLen
		default:
			curLen += unitLen
		}
		unitStart = cut
	}

	if curLen > 0 {
		*out = append(*out, chunkAt(text, base, curStart, len(text)))
	}
}

// hardWrap emits fixed-width runs of chunkSize runes. Terminal fallback,
// reached only when no weaker boundary level produced a fitting unit.
func (s *Splitter) hardWrap(text string, base int, out *[]domain.Chunk) {
	start := 0
	count := 0
	for i := range text {
		if count == s.chunkSize {
			*out = append(*out, chunkAt(text, base, start, i))
			start = i
			count = 0
		}
		count++
	}
	if start < len(text) {
		*out = append(*out, chunkAt(text, base, start, len(text)))
	}
}

func chunkAt(text string, base, start, end int) domain.Chunk {
	return domain.Chunk{
		Start: base + start,
		End:   base + end,
		Text:  text[start:end],
	}
}

// splitOffsets strips boundary tags down to usable cut offsets: strictly
// increasing and inside (0, max).
func splitOffsets(bounds []domain.Boundary, max int) []int {
	offsets := make([]int, 0, len(bounds))
	last := 0
	for _, b := range bounds {
		if b.Offset <= last || b.Offset >= max {
			continue
		}
		offsets = append(offsets, b.Offset)
		last = b.Offset
	}
	return offsets
}
