package usecase

import (
	"unicode/utf8"

	"textparser/internal/adapter/filekind"
	"textparser/internal/domain"
)

// Summarize computes length statistics over a chunk list. Lengths are
// measured in characters.
func Summarize(chunks []string) domain.ChunkStats {
	stats := domain.ChunkStats{Count: len(chunks)}
	if len(chunks) == 0 {
		return stats
	}

	stats.Min = utf8.RuneCountInString(chunks[0])
	for _, chunk := range chunks {
		n := utf8.RuneCountInString(chunk)
		stats.Total += n
		if n < stats.Min {
			stats.Min = n
		}
		if n > stats.Max {
			stats.Max = n
		}
	}
	stats.Avg = float64(stats.Total) / float64(stats.Count)
	return stats
}

// Distribution splits text once per candidate chunk size and
// summarizes each outcome. The result aligns with sizes by index.
func Distribution(text string, sizes []int, respectParagraphs bool, kind filekind.Kind) ([]domain.ChunkStats, error) {
	out := make([]domain.ChunkStats, 0, len(sizes))
	for _, size := range sizes {
		p, err := NewParser(size, respectParagraphs)
		if err != nil {
			return nil, err
		}
		out = append(out, Summarize(p.parse(text, "", kind).Strings()))
	}
	return out, nil
}
