package chunker

import (
	"unicode"
	"unicode/utf8"

	"textparser/internal/domain"
)

// detector finds every boundary of one strength class within text.
// Offsets are strictly increasing, never 0 or len(text), and sit after the
// separator run that produced them, so the separator stays with the
// preceding segment and split segments reassemble exactly.
type detector interface {
	Boundaries(text string) []domain.Boundary
}

type paragraphDetector struct{}

// Boundaries reports a paragraph boundary after every run of two or more
// consecutive newlines.
func (paragraphDetector) Boundaries(text string) []domain.Boundary {
	var bounds []domain.Boundary
	i := 0
	for i < len(text) {
		if text[i] != '\n' {
			i++
			continue
		}
		j := i
		for j < len(text) && text[j] == '\n' {
			j++
		}
		if j-i >= 2 && j < len(text) {
			bounds = append(bounds, domain.Boundary{Offset: j, Class: domain.BoundaryParagraph})
		}
		i = j
	}
	return bounds
}

type sentenceDetector struct{}

// Boundaries reports a sentence boundary after sentence-terminal
// punctuation followed by whitespace, at the offset past the whitespace
// run. Punctuation with no trailing whitespace (decimals, version
// strings) is not a boundary.
func (sentenceDetector) Boundaries(text string) []domain.Boundary {
	var bounds []domain.Boundary
	i := 0
	for i < len(text) {
		r, w := utf8.DecodeRuneInString(text[i:])
		if !isSentenceTerminal(r) {
			i += w
			continue
		}

		j := i + w
		for j < len(text) {
			r2, w2 := utf8.DecodeRuneInString(text[j:])
			if !isSentenceTerminal(r2) {
				break
			}
			j += w2
		}

		k := j
		for k < len(text) {
			r3, w3 := utf8.DecodeRuneInString(text[k:])
			if !unicode.IsSpace(r3) {
				break
			}
			k += w3
		}

		if k > j && k < len(text) {
			bounds = append(bounds, domain.Boundary{Offset: k, Class: domain.BoundarySentence})
		}
		if k > j {
			i = k
		} else {
			i = j
		}
	}
	return bounds
}

func isSentenceTerminal(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}
