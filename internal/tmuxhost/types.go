package tmuxhost

// Field layout used for `tmux list-panes -F` queries. tmux exposes no
// extra grouping above session/window/pane, so this module maps the
// spec's four-level hierarchy onto tmux's three levels as follows:
//
//	Workspace -> a tmux session name (so each workspace holds one Window)
//	Window    -> a tmux session (title = session name, holds ordered tabs)
//	Tab       -> a tmux window  (title = window name, holds the pane tree)
//	Pane      -> a tmux pane
const paneListFormat = "#{pane_left}|#{pane_top}|#{pane_width}|#{pane_height}|" +
	"#{pane_id}|#{pane_active}|#{window_zoomed_flag}|#{pane_current_path}|" +
	"#{pane_current_command}|#{alternate_on}"

const localDomainName = "local"

// domain implements hostapi.Domain for a single namespace name.
type domain struct {
	name      string
	spawnable bool
}

func (d domain) Name() string      { return d.name }
func (d domain) IsSpawnable() bool { return d.spawnable }
