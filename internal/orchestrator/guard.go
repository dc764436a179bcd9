package orchestrator

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/commons-systems/resurrect/internal/events"
	"github.com/commons-systems/resurrect/internal/persist"
	"github.com/google/uuid"
)

// PeriodicSaveOptions selects which levels (workspace, windows, tabs) a
// periodic save persists.
type PeriodicSaveOptions struct {
	SaveWorkspace bool
	SaveWindows   bool
	SaveTabs      bool
}

// PeriodicSaver runs a capture-and-persist batch under a single-flight
// guard: an atomic.Bool in place of a mutex-guarded flag, since the
// guard's entire state is one boolean and there is nothing else to
// protect under the same lock.
type PeriodicSaver struct {
	Orchestrator *Orchestrator
	Store        *persist.Store
	Bus          *events.Bus
	Options      PeriodicSaveOptions

	inProgress atomic.Bool
	pending    atomic.Bool
}

// NewPeriodicSaver returns a PeriodicSaver wired to o and store,
// publishing lifecycle events on bus.
func NewPeriodicSaver(o *Orchestrator, store *persist.Store, bus *events.Bus, opts PeriodicSaveOptions) *PeriodicSaver {
	return &PeriodicSaver{Orchestrator: o, Store: store, Bus: bus, Options: opts}
}

// Fire runs one periodic-save iteration: if a previous iteration is
// still in flight, it marks the pending flag and returns without saving
// (the caller's own timer-based scheduler is expected to call Fire
// again on its next tick; Pending reports whether a run was deferred
// this way so the scheduler can retry sooner).
func (p *PeriodicSaver) Fire(ctx context.Context) {
	if !p.inProgress.CompareAndSwap(false, true) {
		p.pending.Store(true)
		return
	}
	defer p.inProgress.Store(false)
	p.pending.Store(false)

	p.runBatch(ctx)
}

// Pending reports whether a Fire call was deferred because a previous
// batch was still running when it arrived.
func (p *PeriodicSaver) Pending() bool {
	return p.pending.Load()
}

func (p *PeriodicSaver) publish(name, opID string) {
	if p.Bus == nil {
		return
	}
	p.Bus.Publish(events.Event{Name: name, OperationID: opID})
}

func (p *PeriodicSaver) reportError(opID, msg string) {
	if p.Bus == nil {
		return
	}
	p.Bus.Publish(events.Event{Name: events.Error, OperationID: opID, Message: msg})
}

func (p *PeriodicSaver) runBatch(ctx context.Context) {
	opID := uuid.New().String()
	p.publish(events.PeriodicSaveStart, opID)
	defer p.publish(events.PeriodicSaveFinished, opID)

	ws, err := p.Orchestrator.CaptureWorkspace(ctx)
	if err != nil {
		p.reportError(opID, fmt.Sprintf("periodic_save: capture: %v", err))
		return
	}

	if p.Options.SaveWorkspace {
		if err := p.Store.Write(persist.TypeWorkspace, ws.Workspace, ws); err != nil {
			p.reportError(opID, fmt.Sprintf("periodic_save: write workspace %q: %v", ws.Workspace, err))
		}
	}

	for _, win := range ws.WindowStates {
		if p.Options.SaveWindows && win.Title != "" {
			if err := p.Store.Write(persist.TypeWindow, win.Title, win); err != nil {
				p.reportError(opID, fmt.Sprintf("periodic_save: write window %q: %v", win.Title, err))
			}
		}
		if !p.Options.SaveTabs {
			continue
		}
		for _, tab := range win.Tabs {
			if tab.Title == "" {
				continue
			}
			if err := p.Store.Write(persist.TypeTab, tab.Title, tab); err != nil {
				p.reportError(opID, fmt.Sprintf("periodic_save: write tab %q: %v", tab.Title, err))
			}
		}
	}

	if err := p.Store.WriteCurrentState(ws.Workspace, persist.TypeWorkspace); err != nil {
		p.reportError(opID, fmt.Sprintf("periodic_save: write current_state: %v", err))
	}
}
