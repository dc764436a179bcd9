package tmuxhost

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/commons-systems/resurrect/internal/hostapi"
)

// tab implements hostapi.Tab against a tmux window (see types.go for the
// session/window/pane to Window/Tab/Pane mapping).
type tab struct {
	id       string // tmux window id, e.g. "@3"
	executor CommandExecutor
}

func (t *tab) Title() string {
	out, err := t.executor.ExecCommandOutput("tmux", "display-message", "-p", "-t", t.id, "#{window_name}")
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}

func (t *tab) SetTitle(ctx context.Context, title string) error {
	_, err := t.executor.ExecCommandOutput("tmux", "rename-window", "-t", t.id, title)
	if err != nil {
		return fmt.Errorf("tmuxhost: rename-window %s: %w", t.id, err)
	}
	return nil
}

func (t *tab) PanesWithInfo(ctx context.Context) ([]hostapi.PaneInfo, error) {
	out, err := t.executor.ExecCommandOutput("tmux", "list-panes", "-t", t.id, "-F", paneListFormat)
	if err != nil {
		return nil, fmt.Errorf("tmuxhost: list-panes %s: %w", t.id, err)
	}

	var infos []hostapi.PaneInfo
	for _, line := range strings.Split(strings.TrimSpace(string(out)), "\n") {
		if line == "" {
			continue
		}
		parts := strings.Split(line, "|")
		if len(parts) != 10 {
			continue
		}
		left, _ := strconv.Atoi(parts[0])
		top, _ := strconv.Atoi(parts[1])
		width, _ := strconv.Atoi(parts[2])
		height, _ := strconv.Atoi(parts[3])
		paneID := parts[4]
		isActive := parts[5] == "1"
		isZoomed := parts[6] == "1"

		infos = append(infos, hostapi.PaneInfo{
			Pane:     &pane{id: paneID, executor: t.executor},
			IsActive: isActive,
			IsZoomed: isZoomed,
			Left:     left,
			Top:      top,
			Width:    width,
			Height:   height,
		})
	}
	return infos, nil
}

func (t *tab) Size(ctx context.Context) (cols, rows, pixelWidth, pixelHeight int, err error) {
	out, execErr := t.executor.ExecCommandOutput("tmux", "display-message", "-p", "-t", t.id,
		"#{window_width}|#{window_height}")
	if execErr != nil {
		return 0, 0, 0, 0, fmt.Errorf("tmuxhost: window size %s: %w", t.id, execErr)
	}
	parts := strings.Split(strings.TrimSpace(string(out)), "|")
	if len(parts) != 2 {
		return 0, 0, 0, 0, fmt.Errorf("tmuxhost: malformed window size for %s", t.id)
	}
	cols, _ = strconv.Atoi(parts[0])
	rows, _ = strconv.Atoi(parts[1])
	// tmux reports cell dimensions only; pixel dimensions require the
	// client's reported cell size, which isn't exposed per-window, so
	// pixelWidth/pixelHeight are left zero (restore with resize_window
	// sizes windows from the cell dimensions).
	return cols, rows, 0, 0, nil
}

func (t *tab) SetZoomed(ctx context.Context, zoomed bool) error {
	args := []string{"resize-pane", "-t", t.id}
	if zoomed {
		args = append(args, "-Z")
	} else {
		args = append(args, "-Z") // toggle; tmux has no explicit unzoom flag besides the toggle
	}
	_, err := t.executor.ExecCommandOutput("tmux", args...)
	if err != nil {
		return fmt.Errorf("tmuxhost: set-zoomed %s: %w", t.id, err)
	}
	return nil
}
