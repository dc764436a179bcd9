// Package events implements a small, namespaced, synchronous
// fire-and-forget publish-subscribe bus: the core's observable contract
// for hosts and user scripts.
//
// Broadcast iterates listeners and contains a misbehaving one rather
// than letting it abort delivery to the rest.
package events

import (
	"sync"

	"github.com/commons-systems/resurrect/internal/debug"
)

// Stable, namespaced event names published on the bus.
const (
	PeriodicSaveStart    = "state_manager.periodic_save.start"
	PeriodicSaveFinished = "state_manager.periodic_save.finished"

	LoadStateStart    = "state_manager.load_state.start"
	LoadStateFinished = "state_manager.load_state.finished"

	DeleteStateStart    = "state_manager.delete_state.start"
	DeleteStateFinished = "state_manager.delete_state.finished"

	WriteStateStart    = "file_io.write_state.start"
	WriteStateFinished = "file_io.write_state.finished"

	RestoreWorkspaceStart    = "workspace_state.restore_workspace.start"
	RestoreWorkspaceFinished = "workspace_state.restore_workspace.finished"

	RestoreWindowStart    = "window_state.restore_window.start"
	RestoreWindowFinished = "window_state.restore_window.finished"

	RestoreTabStart    = "tab_state.restore_tab.start"
	RestoreTabFinished = "tab_state.restore_tab.finished"

	Error = "error"
)

// Event is the payload delivered to every listener. OperationID
// correlates the start/finished/error events of a single restore or
// periodic-save batch and the error events of a single capture (see
// internal/orchestrator). Events published by persist.Store, and the
// non-spawnable-domain warnings raised while building a tab's pane tree
// during capture, carry an empty OperationID.
type Event struct {
	Name        string
	OperationID string
	Path        string // populated for persistence events
	Message     string // populated for Error events
}

// Listener receives published events.
type Listener func(Event)

// Bus is a namespaced publish-subscribe registry. The zero value is
// ready to use.
type Bus struct {
	mu        sync.RWMutex
	listeners map[string][]Listener
}

// NewBus returns a ready-to-use Bus.
func NewBus() *Bus {
	return &Bus{listeners: make(map[string][]Listener)}
}

// Subscribe registers fn to be called whenever name is published.
func (b *Bus) Subscribe(name string, fn Listener) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.listeners == nil {
		b.listeners = make(map[string][]Listener)
	}
	b.listeners[name] = append(b.listeners[name], fn)
}

// Publish emits event synchronously to every listener registered for
// event.Name. A listener panic is recovered and logged so one bad
// listener cannot poison a save or restore in progress.
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	fns := append([]Listener(nil), b.listeners[event.Name]...)
	b.mu.RUnlock()

	for _, fn := range fns {
		b.safeCall(fn, event)
	}
}

func (b *Bus) safeCall(fn Listener, event Event) {
	defer func() {
		if r := recover(); r != nil {
			debug.Log("EVENTS_LISTENER_PANIC event=%s recovered=%v", event.Name, r)
		}
	}()
	fn(event)
}
