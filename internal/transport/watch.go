package transport

import (
	"context"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/calc-sim/fxpad/internal/logging"
)

// EndpointWatcher recreates the FIFO when it is removed out from under a
// running server, so the next send does not pay the lazy creation retry.
// Best-effort: every failure is logged and the writer's own lazy creation
// remains the fallback.
type EndpointWatcher struct {
	writer   *Writer
	notifier *fsnotify.Watcher
	logger   logging.Logger
	stopOnce sync.Once
	done     chan struct{}
}

// NewEndpointWatcher creates a watcher for the writer's endpoint.
func NewEndpointWatcher(w *Writer, logger logging.Logger) (*EndpointWatcher, error) {
	notifier, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	return &EndpointWatcher{
		writer:   w,
		notifier: notifier,
		logger:   logger.WithComponent("watchdog"),
		done:     make(chan struct{}),
	}, nil
}

// Start watches the endpoint's directory until the context is cancelled or
// Stop is called. The directory is watched rather than the FIFO itself so
// removal events are still delivered after the inode is gone.
func (ew *EndpointWatcher) Start(ctx context.Context) error {
	dir := filepath.Dir(ew.writer.Path())
	if err := ew.notifier.Add(dir); err != nil {
		return err
	}

	go ew.run(ctx)
	return nil
}

func (ew *EndpointWatcher) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-ew.done:
			return
		case event, ok := <-ew.notifier.Events:
			if !ok {
				return
			}
			if event.Name != ew.writer.Path() {
				continue
			}
			if event.Op&(fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}

			ew.logger.Warn(ctx, nil, "endpoint removed, recreating", "path", event.Name)
			if err := ew.writer.ensureEndpoint(); err != nil {
				ew.logger.Error(ctx, err, "failed to recreate endpoint", "path", event.Name)
			}
		case err, ok := <-ew.notifier.Errors:
			if !ok {
				return
			}
			ew.logger.Warn(ctx, err, "watch error")
		}
	}
}

// Stop stops the watcher and releases the underlying notifier.
func (ew *EndpointWatcher) Stop() error {
	var err error
	ew.stopOnce.Do(func() {
		close(ew.done)
		err = ew.notifier.Close()
	})
	return err
}
