package batch

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// EventType represents the type of job file event.
type EventType int

const (
	// Changed indicates the job file was created or written and has settled.
	Changed EventType = iota
	// Removed indicates the job file was removed or renamed away.
	Removed
)

// String returns the string representation of the event type.
func (e EventType) String() string {
	switch e {
	case Changed:
		return "changed"
	case Removed:
		return "removed"
	default:
		return "unknown"
	}
}

// Event reports a settled change to the watched file.
type Event struct {
	Type EventType
	Path string
}

// Watcher monitors a single job file. It watches the parent directory so
// editors that replace the file on save are still followed.
type Watcher struct {
	path   string
	logger *zap.Logger
	events chan Event

	watcher *fsnotify.Watcher

	debounceDelay time.Duration
	timer         *time.Timer
	timerMu       sync.Mutex

	stopCh    chan struct{}
	stoppedCh chan struct{}
	running   bool
	stopped   bool
	runningMu sync.Mutex
}

// NewWatcher creates a watcher for the job file at path.
func NewWatcher(path string, logger *zap.Logger) *Watcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = filepath.Clean(path)
	}
	return &Watcher{
		path:          abs,
		logger:        logger,
		events:        make(chan Event, 16),
		debounceDelay: 100 * time.Millisecond,
		stopCh:        make(chan struct{}),
		stoppedCh:     make(chan struct{}),
	}
}

// Start begins watching. Calling Start on a running watcher is a no-op.
func (w *Watcher) Start() error {
	w.runningMu.Lock()
	defer w.runningMu.Unlock()

	if w.running || w.stopped {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(w.path)); err != nil {
		watcher.Close()
		return err
	}
	w.watcher = watcher

	w.running = true
	go w.watchLoop()

	w.logger.Debug("watching job file", zap.String("path", w.path))
	return nil
}

// Stop terminates the watcher and closes the events channel. It is safe
// to call more than once and without a prior Start.
func (w *Watcher) Stop() {
	w.runningMu.Lock()
	if w.stopped {
		w.runningMu.Unlock()
		return
	}
	wasRunning := w.running
	w.running = false
	w.stopped = true
	w.runningMu.Unlock()

	if wasRunning {
		close(w.stopCh)
		<-w.stoppedCh
		w.watcher.Close()
	}

	w.timerMu.Lock()
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	close(w.events)
	w.timerMu.Unlock()
}

// Events returns the channel for receiving file events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

func (w *Watcher) watchLoop() {
	defer close(w.stoppedCh)

	for {
		select {
		case <-w.stopCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path || event.Op == fsnotify.Chmod {
				continue
			}
			w.debounce()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch error", zap.String("path", w.path), zap.Error(err))
		}
	}
}

// debounce collapses a burst of operations into one event fired after
// debounceDelay of quiet.
func (w *Watcher) debounce() {
	w.timerMu.Lock()
	defer w.timerMu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounceDelay, w.fire)
}

func (w *Watcher) fire() {
	w.timerMu.Lock()
	defer w.timerMu.Unlock()

	w.runningMu.Lock()
	stopped := w.stopped
	w.runningMu.Unlock()
	if stopped {
		return
	}

	w.timer = nil

	// The final state on disk decides: a remove followed by a create
	// (atomic save) is still a change.
	typ := Changed
	if _, err := os.Stat(w.path); err != nil {
		typ = Removed
	}

	select {
	case w.events <- Event{Type: typ, Path: w.path}:
	default:
		w.logger.Debug("dropping job file event", zap.Stringer("type", typ))
	}
}
