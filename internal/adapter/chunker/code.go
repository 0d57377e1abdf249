package chunker

import (
	"strings"

	"textparser/internal/domain"
)

// definitionKeywords lists, per language, the keywords that open a
// definition-like construct when they start a line. Matching is a
// heuristic over line starts, not a syntax tree; boundaries are only
// candidates for the packer.
var definitionKeywords = map[string][]string{
	"python":     {"async def", "def", "class"},
	"go":         {"func", "type"},
	"javascript": {"async function", "function", "class", "export", "const"},
	"typescript": {"async function", "function", "class", "export", "const", "interface", "enum"},
	"java":       {"public", "protected", "private", "class", "interface", "enum"},
	"c":          {"struct", "typedef", "enum", "union", "static"},
	"cpp":        {"struct", "typedef", "enum", "union", "static", "class", "template", "namespace"},
	"rust":       {"pub", "fn", "struct", "enum", "impl", "trait", "mod"},
	"ruby":       {"def", "class", "module"},
	"php":        {"function", "class", "interface", "trait"},
	"shell":      {"function"},
}

type codeDetector struct {
	keywords []string
}

func newCodeDetector(lang string) codeDetector {
	return codeDetector{keywords: definitionKeywords[lang]}
}

// Boundaries reports a code-block boundary at the start of every line that
// begins a definition-like construct, ignoring leading whitespace. A
// language without a keyword table yields no boundaries, which drops the
// cascade straight to the weaker levels.
func (d codeDetector) Boundaries(text string) []domain.Boundary {
	if len(d.keywords) == 0 {
		return nil
	}

	var bounds []domain.Boundary
	lineStart := 0
	for lineStart < len(text) {
		lineEnd := strings.IndexByte(text[lineStart:], '\n')
		next := len(text)
		if lineEnd >= 0 {
			lineEnd += lineStart
			next = lineEnd + 1
		} else {
			lineEnd = len(text)
		}

		if lineStart > 0 && d.startsDefinition(text[lineStart:lineEnd]) {
			bounds = append(bounds, domain.Boundary{Offset: lineStart, Class: domain.BoundaryCodeBlock})
		}
		lineStart = next
	}
	return bounds
}

func (d codeDetector) startsDefinition(line string) bool {
	trimmed := strings.TrimLeft(line, " \t")
	for _, kw := range d.keywords {
		if !strings.HasPrefix(trimmed, kw) {
			continue
		}
		rest := trimmed[len(kw):]
		if rest == "" || rest[0] == ' ' || rest[0] == '\t' || rest[0] == '(' {
			return true
		}
	}
	return false
}
