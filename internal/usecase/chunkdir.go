package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"textparser/config"
	"textparser/internal/adapter/filekind"
	"textparser/internal/adapter/store"
	"textparser/internal/domain"
	"textparser/internal/port"
)

// ProgressFunc receives progress updates during a directory run.
type ProgressFunc func(processed, total int, currentFile string)

// ChunkDirUseCase chunks every selected file under a root directory
// and records per-file state in the manifest so unchanged files are
// skipped on later runs.
type ChunkDirUseCase struct {
	store  *store.ManifestStore
	walker port.FileWalker
	reader port.FileReader
	parser *Parser
	cfg    *config.Config
}

// NewChunkDirUseCase creates a new directory chunking use case.
func NewChunkDirUseCase(
	st *store.ManifestStore,
	walker port.FileWalker,
	reader port.FileReader,
	parser *Parser,
	cfg *config.Config,
) *ChunkDirUseCase {
	return &ChunkDirUseCase{
		store:  st,
		walker: walker,
		reader: reader,
		parser: parser,
		cfg:    cfg,
	}
}

// ChunkDirResult contains the results of a directory run.
type ChunkDirResult struct {
	FilesChunked  int
	FilesSkipped  int
	FilesFailed   int
	FilesDeleted  int
	ChunksWritten int
	Errors        []string
}

// Run walks root, chunks every selected file and writes the chunks to
// the configured output directory. Per-file failures are collected in
// the result; only walking, manifest access or a cancelled context
// abort the run.
func (u *ChunkDirUseCase) Run(ctx context.Context, root string, progress ProgressFunc) (*ChunkDirResult, error) {
	result := &ChunkDirResult{}

	files, err := u.walker.Walk(root)
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}

	existing, err := u.store.ListDocuments()
	if err != nil {
		return nil, fmt.Errorf("failed to list manifest entries: %w", err)
	}
	existingMap := make(map[string]domain.Document)
	for _, doc := range existing {
		existingMap[doc.Path] = doc
	}

	outDir := u.cfg.Output.Dir
	if !filepath.IsAbs(outDir) {
		outDir = filepath.Join(root, outDir)
	}

	total := len(files)
	var (
		mu        sync.Mutex
		processed int
	)
	seen := make(map[string]bool)

	report := func(file string) {
		processed++
		if progress != nil {
			progress(processed, total, file)
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	workers := u.cfg.Run.Workers
	if workers <= 0 {
		workers = 1
	}
	g.SetLimit(workers)

	for _, file := range files {
		seen[file.Rel] = true

		if u.cfg.Run.Incremental {
			if prev, ok := existingMap[file.Rel]; ok && prev.ModTime.Unix() >= file.ModTime && prev.Size == file.Size {
				mu.Lock()
				result.FilesSkipped++
				report(file.Rel)
				mu.Unlock()
				continue
			}
		}

		file := file
		prev, hadPrev := existingMap[file.Rel]
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			if hadPrev {
				u.removeStaleChunks(outDir, file.Rel, prev.Chunks)
			}
			written, doc, err := u.chunkFile(file, outDir)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.FilesFailed++
				result.ChunksWritten += written
				result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", file.Rel, err))
			} else {
				result.FilesChunked++
				result.ChunksWritten += written
				if err := u.store.PutDocument(doc); err != nil {
					result.Errors = append(result.Errors, fmt.Sprintf("%s: failed to update manifest: %v", file.Rel, err))
				}
			}
			report(file.Rel)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return result, err
	}

	// Drop manifest entries and chunk files for sources that no
	// longer exist.
	for rel, doc := range existingMap {
		if seen[rel] {
			continue
		}
		u.removeStaleChunks(outDir, rel, doc.Chunks)
		if err := u.store.DeleteDocument(doc.ID); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: failed to drop manifest entry: %v", rel, err))
		} else {
			result.FilesDeleted++
		}
	}

	if err := u.updateStats(); err != nil {
		return result, err
	}

	return result, nil
}

// chunkFile reads, splits and persists a single file. It returns the
// number of chunk files written even when persistence fails partway.
func (u *ChunkDirUseCase) chunkFile(file port.FileInfo, outDir string) (int, domain.Document, error) {
	content, err := u.reader.ReadFile(file.Path)
	if err != nil {
		return 0, domain.Document{}, fmt.Errorf("failed to read file: %w", err)
	}

	kind := filekind.Classify(file.Path)
	ct := u.parser.parse(content, file.Rel, kind)
	chunks := ct.Strings()

	dir, prefix := u.outputTarget(outDir, file.Rel)
	written, err := SaveChunks(chunks, dir, prefix)
	if err != nil {
		return written, domain.Document{}, fmt.Errorf("failed to save chunks: %w", err)
	}

	doc := domain.Document{
		ID:      generateDocID(file.Rel),
		Path:    file.Rel,
		ModTime: time.Unix(file.ModTime, 0),
		Size:    file.Size,
		Kind:    kind.String(),
		Chunks:  len(chunks),
	}
	return written, doc, nil
}

// outputTarget resolves the directory and file prefix for a source
// file. Flat output lands everything in outDir with the relative path
// flattened into the prefix; otherwise the source tree is mirrored.
func (u *ChunkDirUseCase) outputTarget(outDir, rel string) (string, string) {
	if u.cfg.Output.Flat {
		return outDir, flattenPrefix(rel)
	}
	base := strings.TrimSuffix(filepath.Base(rel), filepath.Ext(rel))
	return filepath.Join(outDir, filepath.Dir(rel)), sanitizePrefix(base)
}

// removeStaleChunks deletes the chunk files a previous run produced
// for rel. The old batch size fixes both the file count and the index
// padding width.
func (u *ChunkDirUseCase) removeStaleChunks(outDir, rel string, count int) {
	dir, prefix := u.outputTarget(outDir, rel)
	width := indexWidth(count)
	for i := 0; i < count; i++ {
		os.Remove(filepath.Join(dir, fmt.Sprintf("%s_%0*d", prefix, width, i)))
	}
}

// Reset drops every manifest entry along with the chunk files
// recorded for it, forcing the next run to start clean. Files written
// under a different output layout than the current config cannot be
// located and are left behind.
func (u *ChunkDirUseCase) Reset(root string) error {
	docs, err := u.store.ListDocuments()
	if err != nil {
		return fmt.Errorf("failed to list manifest entries: %w", err)
	}

	outDir := u.cfg.Output.Dir
	if !filepath.IsAbs(outDir) {
		outDir = filepath.Join(root, outDir)
	}
	for _, doc := range docs {
		u.removeStaleChunks(outDir, doc.Path, doc.Chunks)
	}
	return u.store.Clear()
}

func (u *ChunkDirUseCase) updateStats() error {
	docs, err := u.store.ListDocuments()
	if err != nil {
		return fmt.Errorf("failed to list manifest entries: %w", err)
	}

	stats := domain.Stats{TotalDocs: len(docs)}
	for _, doc := range docs {
		stats.TotalChunks += doc.Chunks
		stats.TotalBytes += doc.Size
	}
	if stats.TotalChunks > 0 {
		stats.AvgChunkLen = float64(stats.TotalBytes) / float64(stats.TotalChunks)
	}

	if err := u.store.UpdateStats(stats); err != nil {
		return fmt.Errorf("failed to update stats: %w", err)
	}
	return nil
}

// generateDocID creates a stable ID for a source file from its
// root-relative path.
func generateDocID(rel string) string {
	hash := sha256.Sum256([]byte(rel))
	return hex.EncodeToString(hash[:8])
}

// flattenPrefix turns a relative path into a single output prefix:
// separators and spaces become underscores, the extension is dropped.
func flattenPrefix(rel string) string {
	rel = strings.TrimSuffix(rel, filepath.Ext(rel))
	return sanitizePrefix(filepath.ToSlash(rel))
}

func sanitizePrefix(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '/', ' ':
			b.WriteRune('_')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
