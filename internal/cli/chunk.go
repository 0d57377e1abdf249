package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"textparser/config"
	"textparser/internal/adapter/fs"
	"textparser/internal/adapter/store"
	"textparser/internal/usecase"
)

var (
	chunkSize    int
	chunkOut     string
	chunkPrefix  string
	chunkWorkers int
	chunkFlat    bool
	chunkForce   bool
)

var chunkCmd = &cobra.Command{
	Use:   "chunk [path]",
	Short: "Split a file or directory into chunk files",
	Long: `Split a file into chunk files named {prefix}_{index}, or walk a
directory and chunk every selected file into the output directory.
Directory runs keep a manifest in .textparser/ so unchanged files are
skipped on later runs.

Examples:
  textparser chunk story.txt --size 200 --prefix story
  textparser chunk .                    # Chunk current directory
  textparser chunk docs/ --workers 8 --force`,
	Args: cobra.MaximumNArgs(1),
	RunE: runChunk,
}

func init() {
	rootCmd.AddCommand(chunkCmd)
	chunkCmd.Flags().IntVar(&chunkSize, "size", 0, "maximum chunk length in characters (default from config)")
	chunkCmd.Flags().StringVarP(&chunkOut, "out", "o", "", "output directory (default from config)")
	chunkCmd.Flags().StringVar(&chunkPrefix, "prefix", "", "output file prefix (single file mode)")
	chunkCmd.Flags().IntVar(&chunkWorkers, "workers", 0, "concurrent workers for directory runs")
	chunkCmd.Flags().BoolVar(&chunkFlat, "flat", true, "flatten relative paths into chunk prefixes")
	chunkCmd.Flags().BoolVar(&chunkForce, "force", false, "re-chunk everything, ignoring the manifest")
}

func runChunk(cmd *cobra.Command, args []string) error {
	path := GetRootDir()
	if len(args) > 0 {
		var err error
		path, err = filepath.Abs(args[0])
		if err != nil {
			return fmt.Errorf("invalid path: %w", err)
		}
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("path does not exist: %w", err)
	}

	cfg := GetConfig()
	if chunkSize > 0 {
		cfg.Parser.ChunkSize = chunkSize
	}
	if chunkOut != "" {
		cfg.Output.Dir = chunkOut
	}
	if chunkWorkers > 0 {
		cfg.Run.Workers = chunkWorkers
	}
	if cmd.Flags().Changed("flat") {
		cfg.Output.Flat = chunkFlat
	}
	if chunkForce {
		cfg.Run.Incremental = false
	}

	parser, err := usecase.NewParser(cfg.Parser.ChunkSize, cfg.Parser.RespectParagraphs)
	if err != nil {
		return err
	}

	if info.IsDir() {
		return chunkDirectory(cmd, parser, path, cfg)
	}
	return chunkSingleFile(parser, path, cfg)
}

func chunkSingleFile(parser *usecase.Parser, path string, cfg *config.Config) error {
	ct, err := parser.ParseFileChunked(path)
	if err != nil {
		return err
	}

	prefix := chunkPrefix
	if prefix == "" {
		base := filepath.Base(path)
		prefix = strings.TrimSuffix(base, filepath.Ext(base))
	}

	chunks := ct.Strings()
	written, err := usecase.SaveChunks(chunks, cfg.Output.Dir, prefix)
	if err != nil {
		if written > 0 {
			logger.Warn("partial write before failure", "written", written)
		}
		return err
	}

	stats := usecase.Summarize(chunks)
	fmt.Printf("Wrote %d chunks to %s (prefix %s)\n", written, cfg.Output.Dir, prefix)
	if stats.Count > 0 {
		fmt.Printf("  Chunk length: min %d, max %d, avg %.1f chars\n", stats.Min, stats.Max, stats.Avg)
	}
	return nil
}

func chunkDirectory(cmd *cobra.Command, parser *usecase.Parser, path string, cfg *config.Config) error {
	st, rebuildReason, err := openManifest(path, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	walker := fs.NewWalker(cfg.Files.Includes, dirRunExcludes(cfg))
	chunkUC := usecase.NewChunkDirUseCase(st, walker, fs.TextReader{}, parser, cfg)

	if rebuildReason != "" {
		fmt.Printf("Full re-chunk required: %s\n", rebuildReason)
		if err := chunkUC.Reset(path); err != nil {
			return fmt.Errorf("failed to reset manifest: %w", err)
		}
	}

	fmt.Printf("Scanning %s...\n", path)

	// Create progress bar (initialized once the total is known)
	var bar *progressbar.ProgressBar
	var barMu sync.Mutex
	var startTime time.Time
	var initialized bool

	progressCallback := func(processed, total int, currentFile string) {
		barMu.Lock()
		defer barMu.Unlock()

		if !initialized {
			startTime = time.Now()
			bar = progressbar.NewOptions(total,
				progressbar.OptionEnableColorCodes(true),
				progressbar.OptionShowBytes(false),
				progressbar.OptionSetWidth(40),
				progressbar.OptionShowCount(),
				progressbar.OptionSetDescription("[cyan]Chunking[reset]"),
				progressbar.OptionSetTheme(progressbar.Theme{
					Saucer:        "[green]=[reset]",
					SaucerHead:    "[green]>[reset]",
					SaucerPadding: " ",
					BarStart:      "[",
					BarEnd:        "]",
				}),
				progressbar.OptionOnCompletion(func() {
					fmt.Println()
				}),
			)
			initialized = true
		}

		bar.Set(processed)

		if processed > 0 {
			elapsed := time.Since(startTime)
			rate := float64(processed) / elapsed.Seconds()
			remaining := total - processed
			if rate > 0 {
				eta := time.Duration(float64(remaining)/rate) * time.Second
				bar.Describe(fmt.Sprintf("[cyan]Chunking[reset] ETA: %s", formatDuration(eta)))
			}
		}
	}

	result, err := chunkUC.Run(cmd.Context(), path, progressCallback)
	if err != nil {
		return fmt.Errorf("chunking failed: %w", err)
	}

	// Record the config the run was made with
	if err := st.Migrate(cfg); err != nil {
		return fmt.Errorf("failed to update schema info: %w", err)
	}

	fmt.Printf("\nChunking complete:\n")
	fmt.Printf("  Files chunked:  %d\n", result.FilesChunked)
	fmt.Printf("  Files skipped:  %d (unchanged)\n", result.FilesSkipped)
	fmt.Printf("  Files failed:   %d\n", result.FilesFailed)
	fmt.Printf("  Files deleted:  %d (removed)\n", result.FilesDeleted)
	fmt.Printf("  Chunks written: %d\n", result.ChunksWritten)

	if len(result.Errors) > 0 {
		fmt.Printf("\nWarnings:\n")
		for _, e := range result.Errors {
			fmt.Printf("  - %s\n", e)
		}
	}

	fmt.Printf("\nChunks stored under: %s\n", cfg.Output.Dir)
	return nil
}

// openManifest opens the manifest for root and runs schema
// migrations. A non-empty reason in the second return value means the
// chunking configuration changed and the caller should reset before
// running.
func openManifest(root string, cfg *config.Config) (*store.ManifestStore, string, error) {
	if err := config.EnsureStateDir(root); err != nil {
		return nil, "", fmt.Errorf("failed to create .textparser directory: %w", err)
	}

	st, err := store.NewManifestStore(config.ManifestDBPath(root))
	if err != nil {
		return nil, "", fmt.Errorf("failed to open manifest: %w", err)
	}

	migration, err := st.CheckMigration(cfg)
	if err != nil {
		st.Close()
		return nil, "", fmt.Errorf("failed to check migration: %w", err)
	}

	if migration.NeedsRebuild {
		return st, migration.Reason, nil
	}
	if migration.NeedsMigration {
		if err := st.Migrate(cfg); err != nil {
			st.Close()
			return nil, "", fmt.Errorf("migration failed: %w", err)
		}
	}

	return st, "", nil
}

// dirRunExcludes keeps the output directory out of the walk when it
// sits inside the tree being chunked.
func dirRunExcludes(cfg *config.Config) []string {
	excludes := cfg.Files.Excludes
	if !filepath.IsAbs(cfg.Output.Dir) {
		pattern := filepath.ToSlash(filepath.Join(cfg.Output.Dir, "**"))
		excludes = append(append([]string{}, excludes...), pattern)
	}
	return excludes
}

// formatDuration formats a duration in a human-readable way.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return "<1s"
	}
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		m := int(d.Minutes())
		s := int(d.Seconds()) % 60
		return fmt.Sprintf("%dm%ds", m, s)
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	return fmt.Sprintf("%dh%dm", h, m)
}
