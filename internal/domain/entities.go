package domain

import "time"

type BoundaryClass int

const (
	BoundaryHard BoundaryClass = iota
	BoundarySentence
	BoundaryParagraph
	BoundaryCodeBlock
)

func (c BoundaryClass) String() string {
	switch c {
	case BoundaryCodeBlock:
		return "codeblock"
	case BoundaryParagraph:
		return "paragraph"
	case BoundarySentence:
		return "sentence"
	default:
		return "hard"
	}
}

// Boundary is a candidate split offset within a document. Offsets sit
// after any separator run, so the separator stays with the preceding span.
type Boundary struct {
	Offset int
	Class  BoundaryClass
}

// Chunk is a contiguous byte span of a document. Text is a view over the
// original string: text[Start:End] == Text holds for every chunk.
type Chunk struct {
	Start int
	End   int
	Text  string
}

type Document struct {
	ID      string
	Path    string
	ModTime time.Time
	Size    int64
	Kind    string
	Chunks  int
}

type Stats struct {
	TotalDocs   int
	TotalChunks int
	TotalBytes  int64
	AvgChunkLen float64
}

// ChunkStats summarizes the character lengths of one chunk sequence.
type ChunkStats struct {
	Count int
	Total int
	Min   int
	Max   int
	Avg   float64
}
