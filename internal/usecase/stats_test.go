package usecase

import (
	"errors"
	"strings"
	"testing"

	"textparser/internal/adapter/filekind"
	"textparser/internal/domain"
)

func TestSummarize(t *testing.T) {
	stats := Summarize([]string{"abcd", "ab", "abcdef"})

	if stats.Count != 3 {
		t.Errorf("expected count 3, got %d", stats.Count)
	}
	if stats.Total != 12 {
		t.Errorf("expected total 12, got %d", stats.Total)
	}
	if stats.Min != 2 {
		t.Errorf("expected min 2, got %d", stats.Min)
	}
	if stats.Max != 6 {
		t.Errorf("expected max 6, got %d", stats.Max)
	}
	if stats.Avg != 4.0 {
		t.Errorf("expected avg 4.0, got %f", stats.Avg)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	stats := Summarize(nil)
	if stats.Count != 0 || stats.Total != 0 || stats.Min != 0 || stats.Max != 0 || stats.Avg != 0 {
		t.Errorf("expected zero stats, got %+v", stats)
	}
}

func TestSummarizeCountsRunes(t *testing.T) {
	stats := Summarize([]string{"héllo"})
	if stats.Total != 5 {
		t.Errorf("expected 5 characters, got %d", stats.Total)
	}
}

func TestDistribution(t *testing.T) {
	text := strings.Repeat("A short sentence sits here. ", 15)

	dist, err := Distribution(text, []int{40, 10000}, true, filekind.PlainText)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(dist) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(dist))
	}
	if dist[0].Count <= dist[1].Count {
		t.Errorf("expected smaller chunk size to yield more chunks: %d vs %d", dist[0].Count, dist[1].Count)
	}
	if dist[1].Count != 1 {
		t.Errorf("expected one chunk at the large size, got %d", dist[1].Count)
	}
}

func TestDistributionUsesKind(t *testing.T) {
	text := "def alpha():\n    return 1\n\ndef beta():\n    return 2\n"

	dist, err := Distribution(text, []int{30}, false, filekind.Classify("snippet.py"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dist[0].Count != 2 {
		t.Errorf("expected 2 chunks split at the second definition, got %d", dist[0].Count)
	}
}

func TestDistributionRejectsBadSize(t *testing.T) {
	_, err := Distribution("text", []int{0}, true, filekind.PlainText)
	if !errors.Is(err, domain.ErrChunkSize) {
		t.Errorf("expected ErrChunkSize, got %v", err)
	}
}
