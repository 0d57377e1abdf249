package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"textparser/internal/adapter/chunker"
	"textparser/internal/adapter/filekind"
	"textparser/internal/adapter/fs"
	"textparser/internal/domain"
)

var (
	showSize  int
	showLimit int
	showJSON  bool
)

var showCmd = &cobra.Command{
	Use:   "show <file>",
	Short: "Show chunk boundaries for a single file",
	Long: `Chunk one file and print every chunk with its offsets and a short preview.

Examples:
  textparser show README.md
  textparser show main.py --size 200
  textparser show notes.txt --limit 0
  textparser show doc.md --json`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().IntVar(&showSize, "size", 0, "chunk size in characters (default from config)")
	showCmd.Flags().IntVar(&showLimit, "limit", 10, "number of chunks to print (0 for all)")
	showCmd.Flags().BoolVar(&showJSON, "json", false, "output as JSON")
}

type chunkView struct {
	Index int    `json:"index"`
	Start int    `json:"start"`
	End   int    `json:"end"`
	Chars int    `json:"chars"`
	Text  string `json:"text"`
}

func runShow(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	path := args[0]

	size := cfg.Parser.ChunkSize
	if showSize > 0 {
		size = showSize
	}
	if size <= 0 {
		return fmt.Errorf("%w: %d", domain.ErrChunkSize, size)
	}

	content, err := fs.ReadTextFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	kind := filekind.Classify(path)
	sp := chunker.NewSplitter(size, cfg.Parser.RespectParagraphs, kind)
	ct := domain.NewChunkedText(content, path, sp.Split(content))

	if showJSON {
		views := make([]chunkView, 0, ct.Len())
		for i, c := range ct.Chunks() {
			views = append(views, chunkView{
				Index: i,
				Start: c.Start,
				End:   c.End,
				Chars: utf8.RuneCountInString(c.Text),
				Text:  c.Text,
			})
		}
		output, _ := json.MarshalIndent(views, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	fmt.Printf("%s: %s, %d chunks, %d bytes (size %d)\n", path, kind, ct.Len(), ct.TotalSize(), size)
	fmt.Printf("boundaries: %s\n\n", boundarySummary(sp.Boundaries(content)))

	shown := ct.Len()
	if showLimit > 0 && showLimit < shown {
		shown = showLimit
	}
	for i, c := range ct.Chunks()[:shown] {
		chars := utf8.RuneCountInString(c.Text)
		fmt.Printf("[%3d] %d-%d (%d chars)  %s\n", i, c.Start, c.End, chars, preview(c.Text, 60))
	}
	if shown < ct.Len() {
		fmt.Printf("... %d more chunks (use --limit 0 to show all)\n", ct.Len()-shown)
	}

	return nil
}

// boundarySummary counts candidate split points per class, strongest
// class first.
func boundarySummary(bounds []domain.Boundary) string {
	counts := make(map[domain.BoundaryClass]int)
	for _, b := range bounds {
		counts[b.Class]++
	}
	order := []domain.BoundaryClass{
		domain.BoundaryCodeBlock,
		domain.BoundaryParagraph,
		domain.BoundarySentence,
	}
	var parts []string
	for _, class := range order {
		if counts[class] > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", counts[class], class))
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, ", ")
}

// preview flattens whitespace and truncates to max runes for one-line
// display.
func preview(text string, max int) string {
	flat := strings.Join(strings.Fields(text), " ")
	runes := []rune(flat)
	if len(runes) > max {
		return string(runes[:max]) + "..."
	}
	return flat
}
