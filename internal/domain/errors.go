package domain

import "errors"

// Errors surfaced by the parsing core. Filesystem failures are wrapped os
// errors and stay distinguishable through errors.Is.
var (
	// ErrChunkSize indicates a non-positive chunk size at construction.
	ErrChunkSize = errors.New("chunk size must be positive")

	// ErrOutOfRange indicates an invalid chunk index or slice start.
	ErrOutOfRange = errors.New("index out of range")

	// ErrInvalidUTF8 indicates file content that is not valid UTF-8.
	ErrInvalidUTF8 = errors.New("invalid UTF-8 content")
)
