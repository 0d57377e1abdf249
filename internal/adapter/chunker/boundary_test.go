package chunker

import (
	"testing"

	"textparser/internal/domain"
)

func offsetsOf(bounds []domain.Boundary) []int {
	out := make([]int, 0, len(bounds))
	for _, b := range bounds {
		out = append(out, b.Offset)
	}
	return out
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestParagraphBoundaries(t *testing.T) {
	text := "first para\n\nsecond para\n\n\nthird para"

	got := offsetsOf(paragraphDetector{}.Boundaries(text))
	want := []int{12, 26}
	if !equalInts(got, want) {
		t.Errorf("expected offsets %v, got %v", want, got)
	}

	for _, off := range got {
		if text[off-1] != '\n' {
			t.Errorf("offset %d should sit right after the newline run", off)
		}
		if text[off] == '\n' {
			t.Errorf("offset %d should consume the whole newline run", off)
		}
	}
}

func TestParagraphBoundariesSingleNewline(t *testing.T) {
	got := paragraphDetector{}.Boundaries("line one\nline two\nline three")
	if len(got) != 0 {
		t.Errorf("single newlines are not paragraph boundaries, got %v", offsetsOf(got))
	}
}

func TestParagraphBoundariesTrailingRun(t *testing.T) {
	got := paragraphDetector{}.Boundaries("only para\n\n")
	if len(got) != 0 {
		t.Errorf("expected no boundary at end of text, got %v", offsetsOf(got))
	}
}

func TestSentenceBoundaries(t *testing.T) {
	text := "First one. Second two! Third three? Tail"

	bounds := sentenceDetector{}.Boundaries(text)
	got := offsetsOf(bounds)
	want := []int{11, 23, 36}
	if !equalInts(got, want) {
		t.Errorf("expected offsets %v, got %v", want, got)
	}

	for _, b := range bounds {
		if b.Class != domain.BoundarySentence {
			t.Errorf("expected sentence class, got %v", b.Class)
		}
	}
}

func TestSentenceBoundariesSkipDecimals(t *testing.T) {
	cases := []struct {
		name string
		text string
		want int
	}{
		{"decimal", "pi is 3.14159 rounded", 0},
		{"version", "use v1.2.3 here", 0},
		{"ellipsis", "well... maybe later", 1},
		{"stacked", "really?! yes", 1},
		{"no_trailing_space", "done.", 0},
		{"end_of_text", "over. ", 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := sentenceDetector{}.Boundaries(tc.text)
			if len(got) != tc.want {
				t.Errorf("expected %d boundaries, got %v", tc.want, offsetsOf(got))
			}
		})
	}
}

func TestCodeBoundariesPython(t *testing.T) {
	text := "import os\n\ndef first():\n    pass\n\nclass Thing:\n    def method(self):\n        pass\n"

	d := newCodeDetector("python")
	bounds := d.Boundaries(text)

	for _, b := range bounds {
		if b.Class != domain.BoundaryCodeBlock {
			t.Errorf("expected codeblock class, got %v", b.Class)
		}
		if b.Offset > 0 && text[b.Offset-1] != '\n' {
			t.Errorf("offset %d is not a line start", b.Offset)
		}
	}

	var starts []string
	for _, b := range bounds {
		end := b.Offset + 12
		if end > len(text) {
			end = len(text)
		}
		starts = append(starts, text[b.Offset:end])
	}
	if len(bounds) != 3 {
		t.Fatalf("expected boundaries before def, class and the indented method, got %d (%v)", len(bounds), starts)
	}
}

func TestCodeBoundariesGo(t *testing.T) {
	text := "package main\n\nfunc a() {}\n\ntype T struct{}\n\nfunc (t T) b() {}\n"

	got := newCodeDetector("go").Boundaries(text)
	if len(got) != 3 {
		t.Errorf("expected 3 boundaries, got %d at %v", len(got), offsetsOf(got))
	}
}

func TestCodeBoundariesKeywordNeedsSeparator(t *testing.T) {
	// "define" starts with "def" but is not a definition line.
	text := "x = 1\ndefine things here\ndef real():\n    pass\n"

	got := newCodeDetector("python").Boundaries(text)
	if len(got) != 1 {
		t.Fatalf("expected 1 boundary, got %d", len(got))
	}
	if text[got[0].Offset:got[0].Offset+3] != "def" {
		t.Errorf("boundary should sit before the def line, got offset %d", got[0].Offset)
	}
}

func TestCodeBoundariesFirstLine(t *testing.T) {
	got := newCodeDetector("python").Boundaries("def only():\n    pass\n")
	if len(got) != 0 {
		t.Errorf("a definition on the first line is not a split point, got %v", offsetsOf(got))
	}
}

func TestCodeBoundariesUnknownLanguage(t *testing.T) {
	got := newCodeDetector("fortran").Boundaries("def x():\n    pass\n")
	if got != nil {
		t.Errorf("expected no boundaries without a keyword table, got %v", offsetsOf(got))
	}
}
