package tmuxhost

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/commons-systems/resurrect/internal/debug"
	"github.com/commons-systems/resurrect/internal/hostapi"
)

// pane implements hostapi.Pane against a live tmux server.
type pane struct {
	id       string
	executor CommandExecutor
}

func (p *pane) ID() int {
	n, _ := strconv.Atoi(strings.TrimPrefix(p.id, "%"))
	return n
}

func (p *pane) DomainName() string { return localDomainName }

func (p *pane) Cwd() (string, bool) {
	out, err := p.executor.ExecCommandOutput("tmux", "display-message", "-p", "-t", p.id, "#{pane_current_path}")
	if err != nil {
		debug.Log("TMUXHOST_PANE_CWD_ERROR pane=%s error=%v", p.id, err)
		return "", false
	}
	cwd := strings.TrimSpace(string(out))
	// Normalize a leading "/C:" style Windows-mingling prefix (WSL-style
	// interop paths) to a bare drive letter.
	if len(cwd) >= 4 && cwd[0] == '/' && cwd[2] == ':' {
		cwd = cwd[1:]
	}
	return cwd, cwd != ""
}

func (p *pane) IsAltScreenActive() bool {
	out, err := p.executor.ExecCommandOutput("tmux", "display-message", "-p", "-t", p.id, "#{alternate_on}")
	if err != nil {
		return false
	}
	return strings.TrimSpace(string(out)) == "1"
}

func (p *pane) ForegroundProcessInfo() (hostapi.ForegroundProcess, bool) {
	out, err := p.executor.ExecCommandOutput("tmux", "display-message", "-p", "-t", p.id, "#{pane_pid}")
	if err != nil {
		return hostapi.ForegroundProcess{}, false
	}
	panePID := strings.TrimSpace(string(out))
	if panePID == "" {
		return hostapi.ForegroundProcess{}, false
	}

	children, err := p.executor.ExecCommandOutput("pgrep", "-P", panePID)
	if err != nil {
		return hostapi.ForegroundProcess{}, false
	}
	childPID := strings.TrimSpace(strings.SplitN(string(children), "\n", 2)[0])
	if childPID == "" {
		return hostapi.ForegroundProcess{}, false
	}

	argsOut, err := p.executor.ExecCommandOutput("ps", "-o", "args=", "-p", childPID)
	if err != nil {
		return hostapi.ForegroundProcess{}, false
	}
	argv := strings.Fields(strings.TrimSpace(string(argsOut)))
	if len(argv) == 0 {
		return hostapi.ForegroundProcess{}, false
	}

	cwd, _ := p.Cwd()
	return hostapi.ForegroundProcess{
		Name: argv[0],
		Argv: argv,
		Exe:  argv[0],
		Cwd:  cwd,
	}, true
}

func (p *pane) Dimensions() hostapi.Dimensions {
	out, err := p.executor.ExecCommandOutput("tmux", "display-message", "-p", "-t", p.id,
		"#{history_size}|#{pane_width}|#{pane_height}")
	if err != nil {
		return hostapi.Dimensions{}
	}
	parts := strings.Split(strings.TrimSpace(string(out)), "|")
	if len(parts) != 3 {
		return hostapi.Dimensions{}
	}
	rows, _ := strconv.Atoi(parts[0])
	cols, _ := strconv.Atoi(parts[1])
	ph, _ := strconv.Atoi(parts[2])
	return hostapi.Dimensions{ScrollbackRows: rows, Cols: cols, Rows: ph}
}

func (p *pane) ScrollbackAsEscapes(ctx context.Context, maxRows int) (string, error) {
	out, err := p.executor.ExecCommandOutput("tmux", "capture-pane", "-e", "-p", "-t", p.id,
		"-S", fmt.Sprintf("-%d", maxRows))
	if err != nil {
		return "", fmt.Errorf("tmuxhost: capture-pane %s: %w", p.id, err)
	}
	return string(out), nil
}

func (p *pane) Split(ctx context.Context, dir hostapi.Direction, opts hostapi.SplitOptions) (hostapi.Pane, error) {
	args := []string{"split-window", "-t", p.id, "-P", "-F", "#{pane_id}"}
	if dir == hostapi.DirRight {
		args = append(args, "-h")
	} else {
		args = append(args, "-v")
	}
	if opts.Cwd != "" {
		args = append(args, "-c", opts.Cwd)
	}
	if opts.HasSize {
		if opts.Relative {
			// tmux's split-window -l accepts a percentage string for
			// relative sizing; opts.Size is a [0,1] proportion here, so
			// a plain int(opts.Size) would truncate to 0 for every
			// split under 100% of the axis.
			args = append(args, "-l", fmt.Sprintf("%d%%", int(opts.Size*100)))
		} else {
			args = append(args, "-l", strconv.Itoa(int(opts.Size)))
		}
	}
	out, err := p.executor.ExecCommandOutput("tmux", args...)
	if err != nil {
		return nil, fmt.Errorf("tmuxhost: split-window from %s: %w", p.id, err)
	}
	return &pane{id: strings.TrimSpace(string(out)), executor: p.executor}, nil
}

func (p *pane) SendText(ctx context.Context, text string) error {
	_, err := p.executor.ExecCommandOutput("tmux", "send-keys", "-t", p.id, "-l", text)
	if err != nil {
		return fmt.Errorf("tmuxhost: send-keys %s: %w", p.id, err)
	}
	_, err = p.executor.ExecCommandOutput("tmux", "send-keys", "-t", p.id, "Enter")
	return err
}

func (p *pane) InjectOutput(ctx context.Context, text string) error {
	// No native tmux primitive injects scrollback directly; piping
	// through send-keys -l reproduces the bytes in the pane's history
	// without invoking a shell or emulating a PTY.
	_, err := p.executor.ExecCommandOutput("tmux", "send-keys", "-t", p.id, "-l", text)
	if err != nil {
		return fmt.Errorf("tmuxhost: inject-output %s: %w", p.id, err)
	}
	return nil
}

func (p *pane) Activate(ctx context.Context) error {
	_, err := p.executor.ExecCommandOutput("tmux", "select-pane", "-t", p.id)
	if err != nil {
		return fmt.Errorf("tmuxhost: select-pane %s: %w", p.id, err)
	}
	return nil
}
