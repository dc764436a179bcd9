// Package orchestrator coordinates capture and restore: it is the only
// package that talks to both internal/hostapi and internal/state,
// turning a live host tree into a WorkspaceState and back again.
package orchestrator

import (
	"context"
	"fmt"

	"github.com/commons-systems/resurrect/internal/events"
	"github.com/commons-systems/resurrect/internal/hostapi"
	"github.com/commons-systems/resurrect/internal/panetree"
	"github.com/commons-systems/resurrect/internal/state"
	"github.com/commons-systems/resurrect/internal/tmuxhost"
	"github.com/google/uuid"
)

// Orchestrator holds the collaborators capture and restore need: the
// live host root, the event bus, and the scrollback capture cap.
type Orchestrator struct {
	Root     hostapi.MuxRoot
	Bus      *events.Bus
	MaxLines int

	lastKnown *state.WorkspaceState
}

// New returns an Orchestrator with a default scrollback cap of 2000
// lines per pane.
func New(root hostapi.MuxRoot, bus *events.Bus) *Orchestrator {
	return &Orchestrator{Root: root, Bus: bus, MaxLines: 2000}
}

func (o *Orchestrator) publish(name, operationID string) {
	if o.Bus == nil {
		return
	}
	o.Bus.Publish(events.Event{Name: name, OperationID: operationID})
}

func (o *Orchestrator) reportError(operationID, message string) {
	if o.Bus == nil {
		return
	}
	o.Bus.Publish(events.Event{Name: events.Error, OperationID: operationID, Message: message})
}

// CaptureWorkspace reads the active workspace and every window attached
// to it, building a full WorkspaceState. Windows belonging to other
// workspaces are skipped. Capture itself has no dedicated start/finished
// event pair — the enclosing periodic save batch
// (internal/orchestrator/guard.go) is what emits
// state_manager.periodic_save.{start,finished}; capture only ever
// reports failures via the error event.
func (o *Orchestrator) CaptureWorkspace(ctx context.Context) (*state.WorkspaceState, error) {
	opID := uuid.New().String()

	workspace, err := o.Root.ActiveWorkspace(ctx)
	if err != nil {
		o.reportError(opID, fmt.Sprintf("capture: read active workspace: %v", err))
		return nil, err
	}

	windows, err := o.Root.AllWindows(ctx)
	if err != nil {
		o.reportError(opID, fmt.Sprintf("capture: list windows: %v", err))
		return nil, err
	}

	out := &state.WorkspaceState{Workspace: workspace}
	for _, win := range windows {
		if win.Workspace() != workspace {
			continue
		}
		ws, err := o.captureWindow(ctx, win)
		if err != nil {
			o.reportError(opID, fmt.Sprintf("capture: window %q: %v", win.Title(), err))
			continue
		}
		out.WindowStates = append(out.WindowStates, *ws)
	}

	return out, nil
}

func (o *Orchestrator) captureWindow(ctx context.Context, win hostapi.Window) (*state.WindowState, error) {
	cols, rows, pixelWidth, pixelHeight, err := activeTabSize(ctx, win)
	if err != nil {
		return nil, err
	}
	ws := &state.WindowState{
		Title: win.Title(),
		Size: state.WindowSize{
			Cols: cols, Rows: rows,
			PixelWidth: pixelWidth, PixelHeight: pixelHeight,
		},
	}

	tabs, err := win.TabsWithInfo(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tabs: %w", err)
	}
	for _, ti := range tabs {
		ts, err := o.captureTab(ctx, ti)
		if err != nil {
			return nil, fmt.Errorf("tab %q: %w", ti.Tab.Title(), err)
		}
		ws.Tabs = append(ws.Tabs, *ts)
	}
	return ws, nil
}

// activeTabSize reads the size of the window's active tab, since Window
// itself carries no geometry of its own (§4.2 puts Size on Tab).
func activeTabSize(ctx context.Context, win hostapi.Window) (cols, rows, pixelWidth, pixelHeight int, err error) {
	tab, err := win.ActiveTab(ctx)
	if err != nil {
		return 0, 0, 0, 0, fmt.Errorf("active tab: %w", err)
	}
	return tab.Size(ctx)
}

func (o *Orchestrator) captureTab(ctx context.Context, ti hostapi.TabInfo) (*state.TabState, error) {
	panes, err := ti.Tab.PanesWithInfo(ctx)
	if err != nil {
		return nil, fmt.Errorf("list panes: %w", err)
	}

	raw := make([]panetree.RawPane, 0, len(panes))
	isZoomed := false
	for _, p := range panes {
		dom, err := o.domainFor(ctx, p.Pane)
		if err != nil {
			return nil, fmt.Errorf("resolve domain: %w", err)
		}
		raw = append(raw, tmuxhost.Extract(ctx, p, dom, o.MaxLines))
		if p.IsZoomed {
			isZoomed = true
		}
	}

	root, warnings := panetree.Build(raw)
	for _, w := range warnings {
		o.reportError("", w)
	}

	ts := &state.TabState{
		Title:    ti.Tab.Title(),
		IsActive: ti.IsActive,
		IsZoomed: isZoomed,
	}
	if root != nil {
		ts.PaneTree = toStateNode(root)
	}
	return ts, nil
}

// domainFor resolves the hostapi.Domain for a pane's reported domain
// name, satisfying Extract's need for IsSpawnable/Name.
func (o *Orchestrator) domainFor(ctx context.Context, p hostapi.Pane) (hostapi.Domain, error) {
	return o.Root.GetDomain(ctx, p.DomainName())
}

// toStateNode converts a panetree.Node (the pure, dependency-free
// capture result) into a state.PaneNode (the serializable record), the
// one place the two recursive shapes are bridged.
func toStateNode(n *panetree.Node) state.PaneNode {
	out := state.PaneNode{
		Left: n.Left, Top: n.Top, Width: n.Width, Height: n.Height,
		Cwd: n.Cwd, Domain: n.Domain,
		Text:            n.Text,
		IsActive:        n.IsActive,
		IsZoomed:        n.IsZoomed,
		AltScreenActive: n.AltScreenActive,
	}
	if n.Process != nil {
		out.Process = &state.ProcessInfo{
			Name: n.Process.Name,
			Argv: n.Process.Argv,
			Exe:  n.Process.Exe,
			Cwd:  n.Process.Cwd,
		}
	}
	if n.Right != nil {
		right := toStateNode(n.Right)
		out.Right = &right
	}
	if n.Bottom != nil {
		bottom := toStateNode(n.Bottom)
		out.Bottom = &bottom
	}
	return out
}
