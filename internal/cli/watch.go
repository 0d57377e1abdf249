package cli

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"textparser/internal/adapter/fs"
	"textparser/internal/adapter/watch"
	"textparser/internal/usecase"
)

var watchWorkers int

var watchCmd = &cobra.Command{
	Use:   "watch [path]",
	Short: "Re-chunk a directory whenever files change",
	Long: `Chunk a directory, then keep watching it and re-chunk after every
settled burst of file changes. Stop with Ctrl-C.

Examples:
  textparser watch .
  textparser watch docs/ --workers 8`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().IntVar(&watchWorkers, "workers", 0, "concurrent workers per pass")
}

func runWatch(cmd *cobra.Command, args []string) error {
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
	if !info.IsDir() {
		return fmt.Errorf("not a directory: %s", path)
	}

	cfg := GetConfig()
	if watchWorkers > 0 {
		cfg.Run.Workers = watchWorkers
	}

	parser, err := usecase.NewParser(cfg.Parser.ChunkSize, cfg.Parser.RespectParagraphs)
	if err != nil {
		return err
	}

	st, rebuildReason, err := openManifest(path, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	walker := fs.NewWalker(cfg.Files.Includes, dirRunExcludes(cfg))
	chunkUC := usecase.NewChunkDirUseCase(st, walker, fs.TextReader{}, parser, cfg)

	if rebuildReason != "" {
		logger.Info("full re-chunk required", "reason", rebuildReason)
		if err := chunkUC.Reset(path); err != nil {
			return fmt.Errorf("failed to reset manifest: %w", err)
		}
	}

	// Record the config now; the loop below usually exits by signal.
	if err := st.Migrate(cfg); err != nil {
		return fmt.Errorf("failed to update schema info: %w", err)
	}

	var skip []string
	if !filepath.IsAbs(cfg.Output.Dir) {
		skip = append(skip, cfg.Output.Dir)
	}
	watcher, err := watch.NewWatcher(path, watch.DefaultDebounce, skip...)
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	onRun := func(result *usecase.ChunkDirResult, err error) {
		if err != nil {
			logger.Error("chunking pass failed", "error", err)
			return
		}
		if result.FilesChunked+result.FilesFailed+result.FilesDeleted == 0 {
			return
		}
		logger.Info("chunked",
			"files", result.FilesChunked,
			"skipped", result.FilesSkipped,
			"failed", result.FilesFailed,
			"deleted", result.FilesDeleted,
			"chunks", result.ChunksWritten,
		)
		for _, e := range result.Errors {
			logger.Warn(e)
		}
	}
	onError := func(err error) {
		logger.Warn("watcher error", "error", err)
	}

	watchUC := usecase.NewWatchUseCase(watcher, chunkUC, onRun, onError)

	logger.Info("watching for changes", "path", path, "output", cfg.Output.Dir)
	if err := watchUC.Watch(ctx, path); err != nil {
		return err
	}
	logger.Info("stopped")
	return nil
}
