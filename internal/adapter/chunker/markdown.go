package chunker

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"textparser/internal/domain"
)

type headingDetector struct{}

// Boundaries reports a boundary at the start of every top-level heading
// line. Headings come from goldmark's AST, so hash characters inside
// fenced code blocks are not mistaken for headings.
func (headingDetector) Boundaries(bodyText string) []domain.Boundary {
	src := []byte(bodyText)
	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(src))

	var bounds []domain.Boundary
	last := 0
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		heading, ok := n.(*ast.Heading)
		if !ok {
			continue
		}
		lines := heading.Lines()
		if lines.Len() == 0 {
			continue
		}

		off := lineStartBefore(bodyText, lines.At(0).Start)
		if off > 0 && off < len(bodyText) && off > last {
			bounds = append(bounds, domain.Boundary{Offset: off, Class: domain.BoundaryCodeBlock})
			last = off
		}
	}
	return bounds
}

// lineStartBefore rewinds a byte offset to the start of its line. Heading
// segments begin after the marker, so the boundary has to move back to
// cover it.
func lineStartBefore(text string, off int) int {
	if off > len(text) {
		off = len(text)
	}
	for off > 0 && text[off-1] != '\n' {
		off--
	}
	return off
}
