package port

import "textparser/internal/domain"

type Splitter interface {
	Split(text string) []domain.Chunk
}
