package cli

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"textparser/internal/adapter/filekind"
	"textparser/internal/adapter/fs"
	"textparser/internal/usecase"
)

var statsSizes string

var statsCmd = &cobra.Command{
	Use:   "stats <file>",
	Short: "Compare chunk distributions across candidate sizes",
	Long: `Chunk one file at several candidate sizes and print length statistics
for each, to help pick a chunk size.

Examples:
  textparser stats README.md
  textparser stats main.py --sizes 200,400,800`,
	Args: cobra.ExactArgs(1),
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().StringVar(&statsSizes, "sizes", "100,200,500,1000", "comma-separated chunk sizes to compare")
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	path := args[0]

	sizes, err := parseSizes(statsSizes)
	if err != nil {
		return err
	}

	content, err := fs.ReadTextFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	kind := filekind.Classify(path)
	dist, err := usecase.Distribution(content, sizes, cfg.Parser.RespectParagraphs, kind)
	if err != nil {
		return err
	}

	fmt.Printf("%s: %s, %d bytes (%d chars)\n\n", path, kind, len(content), utf8.RuneCountInString(content))
	fmt.Printf("%8s %8s %8s %8s %8s\n", "size", "chunks", "min", "max", "avg")
	for i, st := range dist {
		fmt.Printf("%8d %8d %8d %8d %8.1f\n", sizes[i], st.Count, st.Min, st.Max, st.Avg)
	}

	return nil
}

func parseSizes(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	sizes := make([]int, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid size %q in --sizes", part)
		}
		sizes = append(sizes, n)
	}
	return sizes, nil
}
