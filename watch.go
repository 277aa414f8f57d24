// FILE: lixenwraith/emuconfig/watch.go
package emuconfig

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	logging "github.com/ipfs/go-log/v2"
)

var watchLog = logging.Logger("emuconfig/watch")

const DefaultMaxWatchers = 100 // Prevent resource exhaustion

// Notifications sent to subscribers besides changed setting paths.
const (
	NotifyFileDeleted   = "file_deleted"
	NotifyReloadTimeout = "reload_timeout"
	NotifyReloadError   = "reload_error:"
)

// WatchOptions configures file watching behavior
type WatchOptions struct {
	// Debounce duration to avoid rapid reloads
	Debounce time.Duration

	// MaxWatchers limits concurrent subscriber channels
	MaxWatchers int

	// ReloadTimeout for file reload operations
	ReloadTimeout time.Duration
}

// DefaultWatchOptions returns sensible defaults for file watching
func DefaultWatchOptions() WatchOptions {
	return WatchOptions{
		Debounce:      DefaultDebounce,
		MaxWatchers:   DefaultMaxWatchers,
		ReloadTimeout: DefaultReloadTimeout,
	}
}

// Watcher reloads a syncer whenever its settings file changes and tells
// subscribers which setting paths changed.
type Watcher struct {
	mu               sync.RWMutex
	ctx              context.Context
	cancel           context.CancelFunc
	opts             WatchOptions
	syncer           *Syncer
	host             *FileHost
	fs               *fsnotify.Watcher
	watching         atomic.Bool
	reloadInProgress atomic.Bool
	watchers         map[int64]chan string // subscriber channels
	watcherID        atomic.Int64
	debounceTimer    *time.Timer
}

// NewWatcher creates a watcher for the file behind host. The syncer must read from host.
func NewWatcher(s *Syncer, host *FileHost, opts WatchOptions) (*Watcher, error) {
	if s == nil || host == nil {
		return nil, errors.New("watcher needs a syncer and a file host")
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.MaxWatchers <= 0 {
		opts.MaxWatchers = DefaultMaxWatchers
	}
	if opts.ReloadTimeout <= 0 {
		opts.ReloadTimeout = DefaultReloadTimeout
	}
	return &Watcher{
		opts:     opts,
		syncer:   s,
		host:     host,
		watchers: make(map[int64]chan string),
	}, nil
}

// Start begins watching until ctx is cancelled or Stop is called.
// The directory is watched so that atomic replacements by editors are seen.
func (w *Watcher) Start(ctx context.Context) error {
	if !w.watching.CompareAndSwap(false, true) {
		return errors.New("watcher already started")
	}

	fs, err := fsnotify.NewWatcher()
	if err != nil {
		w.watching.Store(false)
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := fs.Add(filepath.Dir(w.host.Path())); err != nil {
		fs.Close()
		w.watching.Store(false)
		return fmt.Errorf("failed to watch %s: %w", w.host.Path(), err)
	}

	w.mu.Lock()
	w.ctx, w.cancel = context.WithCancel(ctx)
	w.fs = fs
	w.mu.Unlock()

	go w.watchLoop()
	return nil
}

// Stop terminates the watcher and closes all subscriber channels.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if w.cancel != nil {
		w.cancel()
	}
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
		w.debounceTimer = nil
	}
	w.mu.Unlock()

	// Wait for watch loop to exit with timeout
	deadline := time.Now().Add(ShutdownTimeout)
	for w.watching.Load() && time.Now().Before(deadline) {
		time.Sleep(SpinWaitInterval)
	}
}

// IsWatching returns true while the watch loop runs
func (w *Watcher) IsWatching() bool {
	return w.watching.Load()
}

// WatcherCount returns the number of active subscriber channels
func (w *Watcher) WatcherCount() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.watchers)
}

// Subscribe returns a channel receiving changed setting paths and notifications.
// The channel is closed when the watcher stops.
func (w *Watcher) Subscribe() <-chan string {
	w.mu.Lock()
	defer w.mu.Unlock()

	// Check watcher limit
	if len(w.watchers) >= w.opts.MaxWatchers || w.ctx == nil || w.ctx.Err() != nil {
		ch := make(chan string)
		close(ch)
		return ch
	}

	// Create buffered channel to prevent blocking
	ch := make(chan string, 10)
	id := w.watcherID.Add(1)
	w.watchers[id] = ch

	ctx := w.ctx
	go func() {
		<-ctx.Done()
		w.mu.Lock()
		delete(w.watchers, id)
		close(ch)
		w.mu.Unlock()
	}()

	return ch
}

// watchLoop is the main file watching loop
func (w *Watcher) watchLoop() {
	defer w.watching.Store(false)
	defer w.fs.Close()

	target := filepath.Clean(w.host.Path())
	for {
		select {
		case <-w.ctx.Done():
			return
		case e, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(e.Name) != target {
				continue
			}
			watchLog.Debugw("settings file event", "op", e.Op.String(), "path", e.Name)
			switch {
			case e.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
				w.notifyWatchers(NotifyFileDeleted)
			case e.Op&(fsnotify.Create|fsnotify.Write) != 0:
				w.scheduleReload()
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			watchLog.Warnw("file watcher error", "error", err)
		}
	}
}

// scheduleReload debounces rapid changes into a single reload
func (w *Watcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.debounceTimer = time.AfterFunc(w.opts.Debounce, w.performReload)
}

// performReload re-reads the file, reloads the registry and notifies changed paths
func (w *Watcher) performReload() {
	// Prevent concurrent reloads
	if !w.reloadInProgress.CompareAndSwap(false, true) {
		return
	}
	defer w.reloadInProgress.Store(false)

	ctx, cancel := context.WithTimeout(w.ctx, w.opts.ReloadTimeout)
	defer cancel()

	values := w.syncer.Values()
	before := values.Snapshot()

	done := make(chan error, 1)
	go func() {
		if err := w.host.Refresh(); err != nil {
			done <- err
			return
		}
		w.syncer.Reload()
		done <- nil
	}()

	select {
	case err := <-done:
		if err != nil {
			watchLog.Warnw("settings reload failed", "path", w.host.Path(), "error", err)
			w.notifyWatchers(NotifyReloadError + err.Error())
			return
		}
		for _, path := range Diff(before, values.Snapshot()) {
			w.notifyWatchers(path)
		}
	case <-ctx.Done():
		w.notifyWatchers(NotifyReloadTimeout)
	}
}

// notifyWatchers sends change notification to all subscribers
func (w *Watcher) notifyWatchers(path string) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	for _, ch := range w.watchers {
		select {
		case ch <- path:
		default:
			// Channel full, skip
		}
	}
}
