package tmuxhost

import (
	"context"
	"fmt"
	"strings"

	"github.com/commons-systems/resurrect/internal/hostapi"
)

// window implements hostapi.Window against a tmux session.
type window struct {
	id       string // tmux session name
	executor CommandExecutor
}

func (w *window) Title() string { return w.id }

func (w *window) Workspace() string {
	// tmux has no session-grouping concept of its own, so the workspace
	// name is the session name, the same value Root.ActiveWorkspace
	// reports.
	return w.id
}

func (w *window) TabsWithInfo(ctx context.Context) ([]hostapi.TabInfo, error) {
	out, err := w.executor.ExecCommandOutput("tmux", "list-windows", "-t", w.id, "-F",
		"#{window_id}|#{window_active}")
	if err != nil {
		return nil, fmt.Errorf("tmuxhost: list-windows %s: %w", w.id, err)
	}
	var infos []hostapi.TabInfo
	for _, line := range strings.Split(strings.TrimSpace(string(out)), "\n") {
		if line == "" {
			continue
		}
		parts := strings.Split(line, "|")
		if len(parts) != 2 {
			continue
		}
		infos = append(infos, hostapi.TabInfo{
			Tab:      &tab{id: parts[0], executor: w.executor},
			IsActive: parts[1] == "1",
		})
	}
	return infos, nil
}

func (w *window) SpawnTab(ctx context.Context, opts hostapi.SpawnOptions) (hostapi.Tab, hostapi.Pane, hostapi.Window, error) {
	args := []string{"new-window", "-t", w.id, "-P", "-F", "#{window_id}"}
	if opts.Cwd != "" {
		args = append(args, "-c", opts.Cwd)
	}
	out, err := w.executor.ExecCommandOutput("tmux", args...)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("tmuxhost: new-window in %s: %w", w.id, err)
	}
	windowID := strings.TrimSpace(string(out))
	newTab := &tab{id: windowID, executor: w.executor}

	panes, err := newTab.PanesWithInfo(ctx)
	if err != nil || len(panes) == 0 {
		return newTab, nil, w, nil
	}
	return newTab, panes[0].Pane, w, nil
}

func (w *window) ActiveTab(ctx context.Context) (hostapi.Tab, error) {
	out, err := w.executor.ExecCommandOutput("tmux", "display-message", "-p", "-t", w.id, "#{window_id}")
	if err != nil {
		return nil, fmt.Errorf("tmuxhost: active tab for %s: %w", w.id, err)
	}
	return &tab{id: strings.TrimSpace(string(out)), executor: w.executor}, nil
}
