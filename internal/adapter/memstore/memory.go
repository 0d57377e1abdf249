package memstore

import (
	"fmt"
	"sort"
	"sync"

	"textparser/internal/domain"
)

// MemoryStore holds chunked documents in memory. It backs the wasm
// build, where neither the filesystem nor bbolt is available.
type MemoryStore struct {
	mu     sync.RWMutex
	docs   map[string]domain.Document
	chunks map[string][]domain.Chunk
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		docs:   make(map[string]domain.Document),
		chunks: make(map[string][]domain.Chunk),
	}
}

// PutDocument stores a document and its chunks, replacing any previous
// version under the same ID.
func (s *MemoryStore) PutDocument(doc domain.Document, chunks []domain.Chunk) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[doc.ID] = doc
	s.chunks[doc.ID] = chunks
	return nil
}

func (s *MemoryStore) GetDocument(id string) (domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[id]
	if !ok {
		return domain.Document{}, fmt.Errorf("document not found: %s", id)
	}
	return doc, nil
}

func (s *MemoryStore) GetChunks(id string) ([]domain.Chunk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	chunks, ok := s.chunks[id]
	if !ok {
		return nil, fmt.Errorf("document not found: %s", id)
	}
	return chunks, nil
}

func (s *MemoryStore) DeleteDocument(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, id)
	delete(s.chunks, id)
	return nil
}

// ListDocuments returns every stored document sorted by path.
func (s *MemoryStore) ListDocuments() ([]domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	docs := make([]domain.Document, 0, len(s.docs))
	for _, doc := range s.docs {
		docs = append(docs, doc)
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].Path < docs[j].Path })
	return docs, nil
}

// Stats aggregates totals over every stored document.
func (s *MemoryStore) Stats() (domain.Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := domain.Stats{TotalDocs: len(s.docs)}
	for id, chunks := range s.chunks {
		stats.TotalChunks += len(chunks)
		stats.TotalBytes += s.docs[id].Size
	}
	if stats.TotalChunks > 0 {
		stats.AvgChunkLen = float64(stats.TotalBytes) / float64(stats.TotalChunks)
	}
	return stats, nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs = make(map[string]domain.Document)
	s.chunks = make(map[string][]domain.Chunk)
	return nil
}
