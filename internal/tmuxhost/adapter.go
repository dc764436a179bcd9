package tmuxhost

import (
	"context"

	"github.com/commons-systems/resurrect/internal/debug"
	"github.com/commons-systems/resurrect/internal/hostapi"
	"github.com/commons-systems/resurrect/internal/panetree"
)

// Extract converts one host-reported PaneInfo into a RawPane, applying
// the domain/scrollback/process rules for a captured pane. This is the
// only place host operations are invoked to build a RawPane — the rest
// of the pane-tree engine never touches the host.
func Extract(ctx context.Context, info hostapi.PaneInfo, dom hostapi.Domain, maxLines int) panetree.RawPane {
	raw := panetree.RawPane{
		Left:        info.Left,
		Top:         info.Top,
		Width:       info.Width,
		Height:      info.Height,
		IsActive:    info.IsActive,
		IsZoomed:    info.IsZoomed,
		IsSpawnable: dom.IsSpawnable(),
		Domain:      dom.Name(),
	}
	if cwd, ok := info.Pane.Cwd(); ok {
		raw.Cwd = cwd
	}
	raw.AltScreenActive = info.Pane.IsAltScreenActive()

	remote := dom.Name() != "" && dom.Name() != localDomainName
	if remote || !dom.IsSpawnable() {
		// Scrollback cannot be reinjected into a remote or
		// non-spawnable domain on restore, so it is never captured.
		debug.Log("TMUXHOST_EXTRACT_SKIP_SCROLLBACK pane=%d domain=%s spawnable=%v",
			info.Pane.ID(), dom.Name(), dom.IsSpawnable())
		return raw
	}

	if raw.AltScreenActive {
		if proc, ok := info.Pane.ForegroundProcessInfo(); ok {
			raw.Process = &panetree.ProcessInfo{
				Name: proc.Name,
				Argv: proc.Argv,
				Exe:  proc.Exe,
				Cwd:  proc.Cwd,
			}
		}
		return raw
	}

	dims := info.Pane.Dimensions()
	maxRows := maxLines
	if dims.ScrollbackRows > 0 && dims.ScrollbackRows < maxRows {
		maxRows = dims.ScrollbackRows
	}
	text, err := info.Pane.ScrollbackAsEscapes(ctx, maxRows)
	if err != nil {
		debug.Log("TMUXHOST_EXTRACT_SCROLLBACK_ERROR pane=%d error=%v", info.Pane.ID(), err)
		return raw
	}
	raw.Text = text
	return raw
}
