package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/nfrund/alphaprime/internal/events"
	"github.com/nfrund/alphaprime/internal/pubsub"
)

const reloadDebounce = 250 * time.Millisecond

// Watcher reloads a Service when files under its content directory change.
type Watcher struct {
	service   *Service
	dir       string
	publisher pubsub.Publisher

	mu      sync.Mutex
	watcher *fsnotify.Watcher
	active  bool
	done    chan struct{}
}

// NewWatcher creates a watcher for dir. publisher may be nil.
func NewWatcher(service *Service, dir string, publisher pubsub.Publisher) *Watcher {
	return &Watcher{service: service, dir: dir, publisher: publisher}
}

// Start begins monitoring the directory and its subdirectories. It returns
// immediately; events are handled until ctx is cancelled or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.active {
		slog.Debug("Content watcher already active")
		return nil
	}

	if _, err := os.Stat(w.dir); err != nil {
		return fmt.Errorf("content directory %q: %w", w.dir, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file system watcher: %w", err)
	}

	err = filepath.Walk(w.dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if err := watcher.Add(path); err != nil {
				return err
			}
			slog.Debug("Added directory to watcher", "path", path)
		}
		return nil
	})
	if err != nil {
		watcher.Close()
		return fmt.Errorf("failed to add directories to watcher: %w", err)
	}

	w.watcher = watcher
	w.active = true
	w.done = make(chan struct{})
	go w.watch(ctx, watcher, w.done)

	slog.Info("Watching content directory for changes", "directory", w.dir)
	return nil
}

// Stop closes the watcher and waits for its goroutine to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	watcher, done := w.watcher, w.done
	w.mu.Unlock()

	if watcher == nil {
		return
	}
	watcher.Close()
	<-done
}

func (w *Watcher) watch(ctx context.Context, watcher *fsnotify.Watcher, done chan struct{}) {
	defer func() {
		w.mu.Lock()
		w.watcher = nil
		w.active = false
		w.mu.Unlock()
		close(done)
		slog.Info("Content watcher stopped")
	}()

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			watcher.Close()
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !relevant(event) {
				continue
			}
			slog.Debug("Content file event", "event", event.Op.String(), "path", event.Name)
			if event.Op&fsnotify.Create == fsnotify.Create {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = watcher.Add(event.Name)
				}
			}
			if timer == nil {
				timer = time.NewTimer(reloadDebounce)
			} else {
				timer.Reset(reloadDebounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			w.reload(ctx)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			slog.Error("Content watcher error", "error", err)
		}
	}
}

func (w *Watcher) reload(ctx context.Context) {
	snap, err := w.service.Reload()
	if err != nil {
		slog.Error("Failed to reload content, keeping previous catalog", "error", err)
		return
	}
	slog.Info("Content reloaded", "courses", len(snap.Courses), "posts", len(snap.Posts), "career", len(snap.Career))

	if w.publisher == nil {
		return
	}
	err = pubsub.Publish(ctx, w.publisher, events.ContentReloaded, "", events.CatalogReloaded{
		Courses: len(snap.Courses),
		Posts:   len(snap.Posts),
		Career:  len(snap.Career),
		At:      w.service.LoadedAt(),
	})
	if err != nil {
		slog.Error("Failed to publish content reload", "error", err)
	}
}

func relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	switch filepath.Ext(event.Name) {
	case ".md", ".yaml", ".yml", "":
		return true
	}
	return false
}
