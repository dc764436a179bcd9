package tmuxhost

import (
	"context"
	"fmt"
	"strings"

	"github.com/commons-systems/resurrect/internal/hostapi"
)

// Root implements hostapi.MuxRoot against a live tmux server, reached
// through the TMUX environment variable's socket.
type Root struct {
	Executor CommandExecutor
}

// NewRoot returns a Root using the real tmux binary.
func NewRoot() *Root {
	return &Root{Executor: &RealCommandExecutor{}}
}

func (r *Root) ActiveWorkspace(ctx context.Context) (string, error) {
	out, err := r.Executor.ExecCommandOutput("tmux", "display-message", "-p", "#{session_name}")
	if err != nil {
		return "", fmt.Errorf("tmuxhost: active workspace: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}

func (r *Root) AllWindows(ctx context.Context) ([]hostapi.Window, error) {
	out, err := r.Executor.ExecCommandOutput("tmux", "list-sessions", "-F", "#{session_name}")
	if err != nil {
		return nil, fmt.Errorf("tmuxhost: list-sessions: %w", err)
	}
	var windows []hostapi.Window
	for _, line := range strings.Split(strings.TrimSpace(string(out)), "\n") {
		if line == "" {
			continue
		}
		windows = append(windows, &window{id: line, executor: r.Executor})
	}
	return windows, nil
}

func (r *Root) SpawnWindow(ctx context.Context, opts hostapi.SpawnOptions) (hostapi.Tab, hostapi.Pane, hostapi.Window, error) {
	args := []string{"new-session", "-d", "-P", "-F", "#{session_name}"}
	if opts.Cwd != "" {
		args = append(args, "-c", opts.Cwd)
	}
	if opts.Width > 0 && opts.Height > 0 {
		args = append(args, "-x", fmt.Sprint(opts.Width), "-y", fmt.Sprint(opts.Height))
	}
	out, err := r.Executor.ExecCommandOutput("tmux", args...)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("tmuxhost: new-session: %w", err)
	}
	sessionName := strings.TrimSpace(string(out))
	w := &window{id: sessionName, executor: r.Executor}

	activeTab, err := w.ActiveTab(ctx)
	if err != nil {
		return nil, nil, w, err
	}
	panes, err := activeTab.PanesWithInfo(ctx)
	if err != nil || len(panes) == 0 {
		return activeTab, nil, w, nil
	}
	return activeTab, panes[0].Pane, w, nil
}

func (r *Root) GetDomain(ctx context.Context, name string) (hostapi.Domain, error) {
	return domain{name: name, spawnable: name == "" || name == localDomainName}, nil
}

func (r *Root) SetActiveWorkspace(ctx context.Context, name string) error {
	_, err := r.Executor.ExecCommandOutput("tmux", "switch-client", "-t", name)
	if err != nil {
		return fmt.Errorf("tmuxhost: switch-client %s: %w", name, err)
	}
	return nil
}
