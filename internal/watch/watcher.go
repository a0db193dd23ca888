// Package watch imports attendance logs dropped into a directory.
package watch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"hrconsole/internal/attendance"
	"hrconsole/internal/export"
	"hrconsole/internal/logging"
)

// DefaultDebounce is how long a file must be quiet before it is imported.
const DefaultDebounce = 500 * time.Millisecond

// Handler processes one settled file.
type Handler func(ctx context.Context, path string) error

// Options configure a Watcher.
type Options struct {
	Dir      string
	Debounce time.Duration
	Batch    attendance.BatchOptions
	Handler  Handler
}

// Stats tracks watcher activity.
type Stats struct {
	FilesSeen     int
	FilesImported int
	FilesIgnored  int
	Errors        int
	LastEventTime time.Time
	LastEventPath string
	LastEventType string
}

// Watcher watches a drop folder for attendance log files.
type Watcher struct {
	mu          sync.RWMutex
	watcher     *fsnotify.Watcher
	dir         string
	allowed     []string
	handler     Handler
	debounceMap map[string]time.Time
	debounceDur time.Duration
	stopCh      chan struct{}
	doneCh      chan struct{}
	running     bool
	closed      bool

	stats Stats
}

// New creates a watcher for opts.Dir. Start must be called to begin watching.
func New(opts Options) (*Watcher, error) {
	if opts.Dir == "" {
		return nil, errors.New("watch directory is required")
	}
	if opts.Handler == nil {
		return nil, errors.New("watch handler is required")
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	return &Watcher{
		watcher:     fw,
		dir:         opts.Dir,
		allowed:     opts.Batch.AllowedExtensions,
		handler:     opts.Handler,
		debounceMap: make(map[string]time.Time),
		debounceDur: debounce,
		stopCh:      make(chan struct{}),
		doneCh:      make(chan struct{}),
	}, nil
}

// Dir returns the watched directory.
func (w *Watcher) Dir() string { return w.dir }

// Start begins watching. It does not block. A watcher that failed to start
// must still be released with Stop.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return nil
	}
	if w.closed {
		return errors.New("watcher is stopped")
	}

	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return fmt.Errorf("failed to create watch directory: %w", err)
	}
	if err := w.watcher.Add(w.dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.dir, err)
	}
	w.running = true
	logging.Watch("watching directory: %s", w.dir)

	go w.run(ctx)
	return nil
}

// Stop stops the event loop, if it was started, and closes the underlying
// fsnotify watcher. It is safe to call more than once.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.closed = true
	wasRunning := w.running
	w.running = false
	w.mu.Unlock()

	if wasRunning {
		close(w.stopCh)
		<-w.doneCh
	}

	if err := w.watcher.Close(); err != nil {
		logging.WatchError("error closing watcher: %v", err)
	}
	logging.Watch("watcher stopped")
}

// Stats returns a snapshot of the counters.
func (w *Watcher) Stats() Stats {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.stats
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	ticker := time.NewTicker(w.tickInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logging.Watch("context cancelled")
			return

		case <-w.stopCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logging.WatchError("watcher error: %v", err)
			w.mu.Lock()
			w.stats.Errors++
			w.mu.Unlock()

		case <-ticker.C:
			w.processSettled(ctx, time.Now())
		}
	}
}

func (w *Watcher) tickInterval() time.Duration {
	if d := w.debounceDur / 5; d > 10*time.Millisecond {
		return d
	}
	return 10 * time.Millisecond
}

// handleEvent records create and write events on allowed files.
func (w *Watcher) handleEvent(event fsnotify.Event) {
	var eventType string
	switch {
	case event.Op&fsnotify.Create != 0:
		eventType = "create"
	case event.Op&fsnotify.Write != 0:
		eventType = "modify"
	default:
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.accepts(event.Name) {
		w.stats.FilesIgnored++
		logging.WatchDebug("ignoring %s", event.Name)
		return
	}

	w.stats.LastEventTime = time.Now()
	w.stats.LastEventPath = event.Name
	w.stats.LastEventType = eventType
	if _, pending := w.debounceMap[event.Name]; !pending {
		w.stats.FilesSeen++
	}
	w.debounceMap[event.Name] = time.Now()
	logging.WatchDebug("%s event for %s", eventType, event.Name)
}

func (w *Watcher) accepts(path string) bool {
	return attendance.HasAllowedExtension(filepath.Base(path), w.allowed)
}

// processSettled runs the handler for every file quiet since before now-debounce.
func (w *Watcher) processSettled(ctx context.Context, now time.Time) {
	w.mu.Lock()
	var ready []string
	for path, at := range w.debounceMap {
		if now.Sub(at) >= w.debounceDur {
			ready = append(ready, path)
			delete(w.debounceMap, path)
		}
	}
	w.mu.Unlock()

	sort.Strings(ready)
	for _, path := range ready {
		if err := w.handler(ctx, path); err != nil {
			logging.WatchError("failed to import %s: %v", path, err)
			w.mu.Lock()
			w.stats.Errors++
			w.mu.Unlock()
			continue
		}
		w.mu.Lock()
		w.stats.FilesImported++
		w.mu.Unlock()
	}
}

// Importer is the default Handler: it imports one file and writes its CSV export.
type Importer struct {
	ExportDir string
	Batch     attendance.BatchOptions
	Now       func() time.Time
	// OnImport, when set, receives each successful batch and export path.
	OnImport func(b *attendance.Batch, exportPath string)
}

// Handle imports path and writes <stem>-attendance-<date>.csv into ExportDir.
func (im *Importer) Handle(ctx context.Context, path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			logging.WatchDebug("file gone before import: %s", path)
			return nil
		}
		return err
	}

	batch, err := attendance.LoadBatch(ctx, []attendance.Source{attendance.FileSource(path)}, im.Batch)
	if err != nil {
		return err
	}

	now := time.Now
	if im.Now != nil {
		now = im.Now
	}
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	out, err := export.WriteFileAs(im.ExportDir, stem+"-"+export.FileName(now()), batch.Records)
	if err != nil {
		return err
	}

	logging.Watch("%s: %s -> %s", filepath.Base(path), batch.Message(), out)
	if im.OnImport != nil {
		im.OnImport(batch, out)
	}
	return nil
}
