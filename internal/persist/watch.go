package persist

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/commons-systems/resurrect/internal/debug"
	"github.com/commons-systems/resurrect/internal/fsutil"
	"github.com/fsnotify/fsnotify"
)

// DirEvent reports that a saved-state file appeared, changed, or
// disappeared under a watched state type directory — so a host or
// script that edits the state directory directly (e.g. to sync it over
// git) sees the change reflected without restarting anything.
type DirEvent struct {
	Type   StateType
	Name   string // sanitized name, without extension
	Op     fsnotify.Op
	Error  error
}

// WatchOption configures a Watcher.
type WatchOption func(*watchConfig)

type watchConfig struct {
	debounce time.Duration
}

// WithWatchDebounce overrides the default debounce window between a
// filesystem event and its delivery on the channel, coalescing rapid
// writes (e.g. an editor's save-via-rename) into one DirEvent.
func WithWatchDebounce(d time.Duration) WatchOption {
	return func(c *watchConfig) { c.debounce = d }
}

// Watcher watches every <BaseDir>/<stateType> directory of a Store for
// externally added, changed, or removed *.json files.
type Watcher struct {
	fsw      *fsnotify.Watcher
	eventCh  chan DirEvent
	done     chan struct{}
	ready    chan struct{}
	debounce time.Duration

	mu      sync.Mutex
	started bool
}

// NewWatcher creates a Watcher over store's three state-type
// subdirectories, creating any that don't yet exist so fsnotify has
// something to attach to.
func NewWatcher(store *Store, opts ...WatchOption) (*Watcher, error) {
	cfg := &watchConfig{debounce: 50 * time.Millisecond}
	for _, opt := range opts {
		opt(cfg)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("persist: create fsnotify watcher: %w", err)
	}

	for _, t := range []StateType{TypeWorkspace, TypeWindow, TypeTab} {
		dir := store.dirFor(t)
		if err := ensureAndWatch(fsw, dir); err != nil {
			fsw.Close()
			return nil, err
		}
	}

	return &Watcher{
		fsw:      fsw,
		eventCh:  make(chan DirEvent, 16),
		done:     make(chan struct{}),
		ready:    make(chan struct{}),
		debounce: cfg.debounce,
	}, nil
}

func ensureAndWatch(fsw *fsnotify.Watcher, dir string) error {
	if err := fsutil.EnsureDir(dir); err != nil {
		return err
	}
	if err := fsw.Add(dir); err != nil {
		return fmt.Errorf("persist: watch directory %s: %w", dir, err)
	}
	return nil
}

// Start begins watching and returns the event channel. Safe to call
// only once; later calls return the same channel without starting a
// second goroutine.
func (w *Watcher) Start() <-chan DirEvent {
	w.mu.Lock()
	if w.started {
		w.mu.Unlock()
		return w.eventCh
	}
	w.started = true
	w.mu.Unlock()

	go w.watch()
	return w.eventCh
}

// Ready returns a channel closed once the watch goroutine is running.
func (w *Watcher) Ready() <-chan struct{} {
	return w.ready
}

func (w *Watcher) watch() {
	defer close(w.eventCh)

	select {
	case <-w.ready:
	default:
		close(w.ready)
	}

	timers := map[string]*time.Timer{}

	for {
		select {
		case <-w.done:
			for _, t := range timers {
				t.Stop()
			}
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			t, name, ok := classify(ev.Name)
			if !ok {
				continue
			}
			key := string(t) + "/" + name
			if existing, found := timers[key]; found {
				existing.Stop()
			}
			op := ev.Op
			timers[key] = time.AfterFunc(w.debounce, func() {
				debug.Log("PERSIST_WATCH type=%s name=%s op=%s", t, name, op)
				select {
				case w.eventCh <- DirEvent{Type: t, Name: name, Op: op}:
				case <-w.done:
				}
			})

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			select {
			case w.eventCh <- DirEvent{Error: err}:
			case <-w.done:
				return
			}
		}
	}
}

// classify maps a raw fsnotify path to its state type and sanitized
// name, ignoring non-JSON files (e.g. the atomic-write temp files,
// which always use the ".tmp-" prefix).
func classify(path string) (t StateType, name string, ok bool) {
	base := path
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		base = path[i+1:]
	}
	if !strings.HasSuffix(base, ".json") || strings.HasPrefix(base, ".tmp-") {
		return "", "", false
	}
	name = strings.TrimSuffix(base, ".json")

	for _, candidate := range []StateType{TypeWorkspace, TypeWindow, TypeTab} {
		if strings.Contains(path, "/"+string(candidate)+"/") {
			return candidate, name, true
		}
	}
	return "", "", false
}

// Close stops the watch goroutine and releases the underlying fsnotify
// watcher.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.started {
		select {
		case <-w.ready:
		default:
			close(w.ready)
		}
		return w.fsw.Close()
	}

	select {
	case <-w.done:
	default:
		close(w.done)
	}
	return w.fsw.Close()
}
