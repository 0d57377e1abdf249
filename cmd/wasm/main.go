//go:build js && wasm

package main

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"syscall/js"
	"time"

	"textparser/internal/adapter/chunker"
	"textparser/internal/adapter/filekind"
	"textparser/internal/adapter/memstore"
	"textparser/internal/domain"
	"textparser/internal/port"
)

var (
	registry          *memstore.MemoryStore
	sp                port.Splitter
	size              int
	respectParagraphs bool
)

func init() {
	registry = memstore.NewMemoryStore()
	size = 500
	respectParagraphs = true
	sp = chunker.NewSplitter(size, respectParagraphs, filekind.PlainText)
}

func main() {
	c := make(chan struct{})

	js.Global().Set("textSplit", js.FuncOf(splitText))
	js.Global().Set("textIndex", js.FuncOf(indexContent))
	js.Global().Set("textStats", js.FuncOf(getStats))
	js.Global().Set("textClear", js.FuncOf(clearStore))
	js.Global().Set("textConfigure", js.FuncOf(configureParser))

	<-c
}

func splitText(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return makeError("usage: textSplit(content, [filename])")
	}

	content := args[0].String()
	kind := kindFor(args, 1)

	splitter := sp
	if kind != filekind.PlainText {
		splitter = chunker.NewSplitter(size, respectParagraphs, kind)
	}

	chunks := splitter.Split(content)
	out := make([]map[string]interface{}, 0, len(chunks))
	for i, c := range chunks {
		out = append(out, map[string]interface{}{
			"index": i,
			"start": c.Start,
			"end":   c.End,
			"text":  c.Text,
		})
	}

	return makeResult(map[string]interface{}{
		"mode":   kind.String(),
		"count":  len(chunks),
		"chunks": out,
	})
}

func indexContent(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return makeError("usage: textIndex(filename, content)")
	}

	filename := args[0].String()
	content := args[1].String()
	kind := filekind.Classify(filename)

	splitter := chunker.NewSplitter(size, respectParagraphs, kind)
	chunks := splitter.Split(content)

	doc := domain.Document{
		ID:      generateDocID(filename),
		Path:    filename,
		ModTime: time.Now(),
		Size:    int64(len(content)),
		Kind:    kind.String(),
		Chunks:  len(chunks),
	}
	if err := registry.PutDocument(doc, chunks); err != nil {
		return makeError("indexing failed: " + err.Error())
	}

	return makeResult(map[string]interface{}{
		"success":  true,
		"filename": filename,
		"mode":     kind.String(),
		"chunks":   len(chunks),
	})
}

func getStats(this js.Value, args []js.Value) interface{} {
	stats, _ := registry.Stats()
	docs, _ := registry.ListDocuments()

	files := make([]string, len(docs))
	for i, doc := range docs {
		files[i] = doc.Path
	}

	return makeResult(map[string]interface{}{
		"totalDocs":   stats.TotalDocs,
		"totalChunks": stats.TotalChunks,
		"totalBytes":  stats.TotalBytes,
		"avgChunkLen": stats.AvgChunkLen,
		"files":       files,
	})
}

func clearStore(this js.Value, args []js.Value) interface{} {
	registry.Clear()
	return makeResult(map[string]interface{}{
		"success": true,
	})
}

func configureParser(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return makeError("usage: textConfigure(chunkSize, [respectParagraphs])")
	}

	n := args[0].Int()
	if n <= 0 {
		return makeError("chunk size must be positive")
	}
	size = n
	if len(args) > 1 {
		respectParagraphs = args[1].Bool()
	}
	sp = chunker.NewSplitter(size, respectParagraphs, filekind.PlainText)

	return makeResult(map[string]interface{}{
		"success":           true,
		"chunkSize":         size,
		"respectParagraphs": respectParagraphs,
	})
}

func kindFor(args []js.Value, i int) filekind.Kind {
	if len(args) > i {
		return filekind.Classify(args[i].String())
	}
	return filekind.PlainText
}

func generateDocID(path string) string {
	hash := sha256.Sum256([]byte(path))
	return hex.EncodeToString(hash[:8])
}

func makeError(msg string) interface{} {
	result, _ := json.Marshal(map[string]interface{}{
		"error": msg,
	})
	return string(result)
}

func makeResult(data map[string]interface{}) interface{} {
	result, _ := json.Marshal(data)
	return string(result)
}
