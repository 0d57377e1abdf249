package usecase

import (
	"context"

	"textparser/internal/adapter/watch"
)

// WatchUseCase re-runs the directory pipeline whenever the watched
// tree changes.
type WatchUseCase struct {
	watcher *watch.Watcher
	chunker *ChunkDirUseCase
	onRun   func(*ChunkDirResult, error)
	onError func(error)
}

// NewWatchUseCase creates a watch loop around an existing directory
// use case. onRun fires after every pass; onError receives watcher
// errors. Either callback may be nil.
func NewWatchUseCase(
	watcher *watch.Watcher,
	chunker *ChunkDirUseCase,
	onRun func(*ChunkDirResult, error),
	onError func(error),
) *WatchUseCase {
	return &WatchUseCase{
		watcher: watcher,
		chunker: chunker,
		onRun:   onRun,
		onError: onError,
	}
}

// Watch runs one initial pass, then re-chunks root after each settled
// burst of changes until ctx is cancelled.
func (u *WatchUseCase) Watch(ctx context.Context, root string) error {
	go u.watcher.Run(ctx)

	result, err := u.chunker.Run(ctx, root, nil)
	if u.onRun != nil {
		u.onRun(result, err)
	}

	errs := u.watcher.Errors()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-u.watcher.Changes():
			result, err := u.chunker.Run(ctx, root, nil)
			if u.onRun != nil {
				u.onRun(result, err)
			}
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			if u.onError != nil {
				u.onError(err)
			}
		}
	}
}
