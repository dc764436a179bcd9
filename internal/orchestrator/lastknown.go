package orchestrator

import (
	"github.com/commons-systems/resurrect/internal/events"
	"github.com/commons-systems/resurrect/internal/hostapi"
	"github.com/commons-systems/resurrect/internal/persist"
	"github.com/commons-systems/resurrect/internal/state"
)

// NewWithStore is New plus a current_state auto-load: if store's
// current_state file exists, names a workspace, and parses, that
// workspace is eagerly read (never restored onto the host) and exposed
// via LastKnownState. Any failure along the way leaves LastKnownState
// nil rather than surfacing an error — this is a best-effort
// convenience for callers like `resurrect inspect`, not a load path
// with its own error taxonomy.
func NewWithStore(root hostapi.MuxRoot, bus *events.Bus, store *persist.Store) *Orchestrator {
	o := New(root, bus)
	if store == nil {
		return o
	}

	name, kind, err := store.ReadCurrentState()
	if err != nil || kind != persist.TypeWorkspace {
		return o
	}

	var ws state.WorkspaceState
	if ok, _ := store.Read(persist.TypeWorkspace, name, &ws); ok {
		o.lastKnown = &ws
	}
	return o
}

// LastKnownState returns the workspace state recorded in current_state
// at construction time (via NewWithStore), or nil if none was loaded.
func (o *Orchestrator) LastKnownState() *state.WorkspaceState {
	return o.lastKnown
}
