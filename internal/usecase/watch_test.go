package usecase

import (
	"context"
	"testing"
	"time"

	"textparser/config"
	"textparser/internal/adapter/watch"
)

func TestWatchRechunksOnChange(t *testing.T) {
	root := t.TempDir()
	writeSource(t, root, "a.txt", "Initial words.")

	cfg := config.DefaultConfig()
	uc, _ := newDirUseCase(t, root, cfg)

	w, err := watch.NewWatcher(root, 50*time.Millisecond, cfg.Output.Dir)
	if err != nil {
		t.Fatalf("failed to create watcher: %v", err)
	}

	runs := make(chan *ChunkDirResult, 16)
	watchUC := NewWatchUseCase(w, uc, func(r *ChunkDirResult, err error) {
		if err == nil {
			runs <- r
		}
	}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		watchUC.Watch(ctx, root)
		close(done)
	}()

	select {
	case first := <-runs:
		if first.FilesChunked != 1 {
			t.Errorf("expected initial pass to chunk 1 file, got %d", first.FilesChunked)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("expected an initial pass")
	}

	writeSource(t, root, "b.txt", "More words arrive.")

	// The output directory appearing during the initial pass can fire
	// an all-skip pass first; wait for the one that picks up b.txt.
	deadline := time.After(3 * time.Second)
	for {
		select {
		case r := <-runs:
			if r.FilesChunked >= 1 {
				cancel()
				select {
				case <-done:
				case <-time.After(2 * time.Second):
					t.Fatal("expected watch loop to stop after cancel")
				}
				return
			}
		case <-deadline:
			t.Fatal("expected a pass chunking the new file")
		}
	}
}
