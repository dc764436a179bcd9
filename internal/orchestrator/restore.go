package orchestrator

import (
	"context"
	"fmt"
	"strings"

	"github.com/commons-systems/resurrect/internal/events"
	"github.com/commons-systems/resurrect/internal/hostapi"
	"github.com/commons-systems/resurrect/internal/panetree"
	"github.com/commons-systems/resurrect/internal/state"
	"github.com/google/uuid"
)

// RestoreOptions configures how a WorkspaceState is replayed onto a live
// host.
type RestoreOptions struct {
	SpawnInWorkspace bool
	ResizeWindow     bool
	// CloseOpenTabs and CloseOpenPanes are accepted for configuration-
	// surface parity with the rest of the options but are not actionable
	// here: the hostapi contract never exposes a close operation on Tab
	// or Pane, so there is nothing for the orchestrator to call. A host
	// implementation that needs this behavior performs it itself before
	// invoking RestoreWorkspace.
	CloseOpenTabs  bool
	CloseOpenPanes bool
	SizeMode       panetree.SizeMode
	RestoreText    bool

	// OnPaneRestore is invoked once per pane_tree node immediately after
	// its live Pane is spawned. A nil value falls back to
	// DefaultOnPaneRestore.
	OnPaneRestore func(ctx context.Context, node *state.PaneNode, live hostapi.Pane) error
}

func (o *Orchestrator) onPaneRestore(opts RestoreOptions) func(context.Context, *state.PaneNode, hostapi.Pane) error {
	if opts.OnPaneRestore != nil {
		return opts.OnPaneRestore
	}
	return DefaultOnPaneRestore
}

// DefaultOnPaneRestore relaunches the foreground process when the
// captured pane was showing an alt-screen program, otherwise reinjects
// scrollback text. It does nothing when neither is present.
func DefaultOnPaneRestore(ctx context.Context, node *state.PaneNode, live hostapi.Pane) error {
	if node.AltScreenActive && node.Process != nil {
		cmd := strings.Join(node.Process.Argv, " ") + "\r"
		return live.SendText(ctx, cmd)
	}
	if text := strings.TrimRight(node.Text, " \t\r\n"); text != "" {
		return live.InjectOutput(ctx, text)
	}
	return nil
}

// RestoreWorkspace replays a captured WorkspaceState onto the live
// host. A nil state or one with no window states is rejected with an
// error event and no host mutation.
func (o *Orchestrator) RestoreWorkspace(ctx context.Context, ws *state.WorkspaceState, opts RestoreOptions) error {
	opID := uuid.New().String()
	o.publish(events.RestoreWorkspaceStart, opID)
	defer o.publish(events.RestoreWorkspaceFinished, opID)

	if ws == nil || len(ws.WindowStates) == 0 {
		o.reportError(opID, "restore_workspace: state is nil or has no window_states")
		return fmt.Errorf("restore_workspace: %w", ErrInvalidState)
	}

	for i := range ws.WindowStates {
		if err := o.restoreWindow(ctx, &ws.WindowStates[i], opts, opID); err != nil {
			o.reportError(opID, fmt.Sprintf("restore_window %q: %v", ws.WindowStates[i].Title, err))
		}
	}

	if opts.SpawnInWorkspace {
		if err := o.Root.SetActiveWorkspace(ctx, ws.Workspace); err != nil {
			o.reportError(opID, fmt.Sprintf("set active workspace %q: %v", ws.Workspace, err))
			return err
		}
	}
	return nil
}

func (o *Orchestrator) restoreWindow(ctx context.Context, ws *state.WindowState, opts RestoreOptions, opID string) error {
	o.publish(events.RestoreWindowStart, opID)
	defer o.publish(events.RestoreWindowFinished, opID)

	spawnOpts := hostapi.SpawnOptions{}
	if opts.ResizeWindow {
		spawnOpts.Width = ws.Size.Cols
		spawnOpts.Height = ws.Size.Rows
	}
	firstTab, firstPane, win, err := o.Root.SpawnWindow(ctx, spawnOpts)
	if err != nil {
		return fmt.Errorf("spawn window: %w", err)
	}

	var windowActivePane hostapi.Pane

	for i := range ws.Tabs {
		tabState := &ws.Tabs[i]

		var tab hostapi.Tab
		var livePane hostapi.Pane
		if i == 0 {
			tab, livePane = firstTab, firstPane
		} else {
			tab, livePane, _, err = win.SpawnTab(ctx, hostapi.SpawnOptions{Cwd: tabState.PaneTree.Cwd})
			if err != nil {
				o.reportError(opID, fmt.Sprintf("spawn tab %q: %v", tabState.Title, err))
				continue
			}
		}

		tabActivePane, err := o.restoreTab(ctx, tab, livePane, tabState, opts, opID)
		if err != nil {
			o.reportError(opID, fmt.Sprintf("restore tab %q: %v", tabState.Title, err))
			continue
		}

		if tabState.IsActive {
			windowActivePane = tabActivePane
		}
	}

	if windowActivePane != nil {
		if err := windowActivePane.Activate(ctx); err != nil {
			return fmt.Errorf("activate pane: %w", err)
		}
	}
	return nil
}

// restoreTab anchors tab_state's pane tree to the tab's initial live
// pane, emits the planned splits in order, threads the resulting live
// Pane for each node back via SplitCommand.Node, and applies
// title/zoom. It returns the live pane flagged is_active (nil if none
// was).
func (o *Orchestrator) restoreTab(ctx context.Context, tab hostapi.Tab, rootLivePane hostapi.Pane, tabState *state.TabState, opts RestoreOptions, opID string) (hostapi.Pane, error) {
	o.publish(events.RestoreTabStart, opID)
	defer o.publish(events.RestoreTabFinished, opID)

	root := fromStateNode(&tabState.PaneTree)
	cmds := panetree.PlanSplits(root, panetree.PlanOptions{SizeMode: opts.SizeMode})

	live := map[*panetree.Node]hostapi.Pane{root: rootLivePane}
	onRestore := o.onPaneRestore(opts)

	var activePane hostapi.Pane
	if root.IsActive {
		activePane = rootLivePane
	}
	if err := runPaneRestore(ctx, onRestore, &tabState.PaneTree, rootLivePane, opts); err != nil {
		return nil, fmt.Errorf("restore root pane: %w", err)
	}

	parents := map[*panetree.Node]*panetree.Node{}
	for _, cmd := range cmds {
		parent := parentOf(root, cmd.Node, parents)
		parentLive, ok := live[parent]
		if !ok {
			return nil, fmt.Errorf("no live pane recorded for split parent")
		}

		splitOpts := hostapi.SplitOptions{
			Cwd: cmd.Cwd, Domain: cmd.Domain,
			HasSize: cmd.HasSize, Size: cmd.Size,
			Relative: opts.SizeMode == panetree.SizeRelative,
		}
		dir := hostapi.DirRight
		if cmd.Direction == panetree.DirBottom {
			dir = hostapi.DirBottom
		}
		childLive, err := parentLive.Split(ctx, dir, splitOpts)
		if err != nil {
			return nil, fmt.Errorf("split %s: %w", cmd.Direction, err)
		}
		live[cmd.Node] = childLive

		childState := stateNodeFor(tabState, cmd.Node, root)
		if err := runPaneRestore(ctx, onRestore, childState, childLive, opts); err != nil {
			return nil, fmt.Errorf("restore pane: %w", err)
		}
		if cmd.Node.IsActive {
			activePane = childLive
		}
	}

	if nodeHasZoom(root) {
		if err := tab.SetZoomed(ctx, true); err != nil {
			return nil, fmt.Errorf("set zoomed: %w", err)
		}
	}
	if err := tab.SetTitle(ctx, tabState.Title); err != nil {
		return nil, fmt.Errorf("set title: %w", err)
	}

	return activePane, nil
}

func runPaneRestore(ctx context.Context, onRestore func(context.Context, *state.PaneNode, hostapi.Pane) error, node *state.PaneNode, live hostapi.Pane, opts RestoreOptions) error {
	if !opts.RestoreText {
		return nil
	}
	return onRestore(ctx, node, live)
}

func nodeHasZoom(n *panetree.Node) bool {
	if n == nil {
		return false
	}
	if n.IsZoomed {
		return true
	}
	return nodeHasZoom(n.Right) || nodeHasZoom(n.Bottom)
}

// parentOf finds child's parent within root, memoizing results in
// parents since PlanSplits visits every node exactly once.
func parentOf(root, child *panetree.Node, parents map[*panetree.Node]*panetree.Node) *panetree.Node {
	if p, ok := parents[child]; ok {
		return p
	}
	var walk func(n *panetree.Node)
	walk = func(n *panetree.Node) {
		if n == nil {
			return
		}
		if n.Right != nil {
			parents[n.Right] = n
			walk(n.Right)
		}
		if n.Bottom != nil {
			parents[n.Bottom] = n
			walk(n.Bottom)
		}
	}
	walk(root)
	return parents[child]
}

// stateNodeFor walks the original state.PaneNode tree in lockstep with
// the panetree.Node built from it, to recover the state.PaneNode (with
// its Process/Text fields) matching a given panetree.Node.
func stateNodeFor(tabState *state.TabState, target *panetree.Node, root *panetree.Node) *state.PaneNode {
	var walk func(sn *state.PaneNode, pn *panetree.Node) *state.PaneNode
	walk = func(sn *state.PaneNode, pn *panetree.Node) *state.PaneNode {
		if pn == target {
			return sn
		}
		if pn.Right != nil && sn.Right != nil {
			if found := walk(sn.Right, pn.Right); found != nil {
				return found
			}
		}
		if pn.Bottom != nil && sn.Bottom != nil {
			if found := walk(sn.Bottom, pn.Bottom); found != nil {
				return found
			}
		}
		return nil
	}
	if found := walk(&tabState.PaneTree, root); found != nil {
		return found
	}
	return &tabState.PaneTree
}

// fromStateNode converts a state.PaneNode (the serializable record read
// back from disk) into a panetree.Node so PlanSplits can walk it.
func fromStateNode(sn *state.PaneNode) *panetree.Node {
	n := &panetree.Node{
		RawPane: panetree.RawPane{
			Left: sn.Left, Top: sn.Top, Width: sn.Width, Height: sn.Height,
			Cwd: sn.Cwd, Domain: sn.Domain,
			Text:            sn.Text,
			IsActive:        sn.IsActive,
			IsZoomed:        sn.IsZoomed,
			AltScreenActive: sn.AltScreenActive,
		},
	}
	if sn.Process != nil {
		n.Process = &panetree.ProcessInfo{
			Name: sn.Process.Name,
			Argv: sn.Process.Argv,
			Exe:  sn.Process.Exe,
			Cwd:  sn.Process.Cwd,
		}
	}
	if sn.Right != nil {
		n.Right = fromStateNode(sn.Right)
	}
	if sn.Bottom != nil {
		n.Bottom = fromStateNode(sn.Bottom)
	}
	return n
}
