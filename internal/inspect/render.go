// Package inspect implements the read-only layout-inspector TUI: a
// Bubble Tea program that renders the most recently captured pane tree
// for a saved workspace, refreshed on a timer. It never spawns panes or
// sends input anywhere — an interactive fuzzy selector for choosing
// which saved state to open is explicitly out of scope here.
package inspect

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/commons-systems/resurrect/internal/state"
)

// Box-drawing prefixes for a tree listing, identical in spirit to the
// teacher's internal/ui/tree.go.
const (
	branchPrefix = "├── "
	lastPrefix   = "└── "
	pipePrefix   = "│   "
	spacePrefix  = "    "
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	windowStyle   = lipgloss.NewStyle().Bold(true)
	activeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	zoomedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	warningStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
)

// Renderer turns a captured state.WorkspaceState into the text drawn
// into the program's terminal.
type Renderer struct {
	width, height int
}

// NewRenderer returns a Renderer sized for an initial width.
func NewRenderer(width int) *Renderer {
	return &Renderer{width: width, height: 24}
}

// SetWidth and SetHeight adjust the render area on a tea.WindowSizeMsg.
func (r *Renderer) SetWidth(w int)  { r.width = w }
func (r *Renderer) SetHeight(h int) { r.height = h }

// RenderHeader renders the title line shown above the tree.
func (r *Renderer) RenderHeader(name string, refreshedAt string) string {
	return headerStyle.Render(fmt.Sprintf("resurrect inspect — %s (refreshed %s)", name, refreshedAt))
}

// Render draws every window/tab in ws, truncated to the renderer's
// height so a long capture doesn't overflow the terminal.
func (r *Renderer) Render(ws *state.WorkspaceState) string {
	if ws == nil {
		return dimStyle.Render("no capture available")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "workspace %s\n", ws.Workspace)
	for wi, win := range ws.WindowStates {
		isLastWindow := wi == len(ws.WindowStates)-1
		prefix := branchPrefix
		if isLastWindow {
			prefix = lastPrefix
		}
		fmt.Fprintf(&b, "%s%s\n", prefix, windowStyle.Render(windowLabel(win)))

		childPrefix := pipePrefix
		if isLastWindow {
			childPrefix = spacePrefix
		}
		for ti, tab := range win.Tabs {
			isLastTab := ti == len(win.Tabs)-1
			r.renderTab(&b, tab, childPrefix, isLastTab)
		}
	}

	lines := strings.Split(strings.TrimRight(b.String(), "\n"), "\n")
	max := r.height - 2
	if max > 0 && len(lines) > max {
		lines = lines[:max]
	}
	return strings.Join(lines, "\n")
}

func windowLabel(win state.WindowState) string {
	return fmt.Sprintf("%s (%dx%d)", win.Title, win.Size.Cols, win.Size.Rows)
}

func (r *Renderer) renderTab(b *strings.Builder, tab state.TabState, prefix string, isLast bool) {
	marker := branchPrefix
	if isLast {
		marker = lastPrefix
	}
	label := tab.Title
	if tab.IsActive {
		label = activeStyle.Render(label + " *")
	}
	if tab.IsZoomed {
		label += " " + zoomedStyle.Render("[zoomed]")
	}
	fmt.Fprintf(b, "%s%stab %s\n", prefix, marker, label)

	childPrefix := prefix + pipePrefix
	if isLast {
		childPrefix = prefix + spacePrefix
	}
	renderPaneNode(b, &tab.PaneTree, childPrefix, true)
}

// renderPaneNode walks the binary split tree depth-first, always
// printing Right before Bottom. This is not necessarily the order in
// which panetree.PlanSplits emits the two splits, which puts Bottom
// first when the split-order rule says the bottom split came first.
func renderPaneNode(b *strings.Builder, n *state.PaneNode, prefix string, isRoot bool) {
	children := childList(n)

	label := paneLabel(n)
	if isRoot {
		fmt.Fprintf(b, "%s%s\n", prefix, label)
	}

	for i, c := range children {
		isLast := i == len(children)-1
		marker := branchPrefix
		if isLast {
			marker = lastPrefix
		}
		fmt.Fprintf(b, "%s%s%s\n", prefix, marker, paneLabel(c.node))

		childPrefix := prefix + pipePrefix
		if isLast {
			childPrefix = prefix + spacePrefix
		}
		renderPaneNode(b, c.node, childPrefix, false)
	}
}

type labeledChild struct {
	side string
	node *state.PaneNode
}

func childList(n *state.PaneNode) []labeledChild {
	var out []labeledChild
	if n.Right != nil {
		out = append(out, labeledChild{"right", n.Right})
	}
	if n.Bottom != nil {
		out = append(out, labeledChild{"bottom", n.Bottom})
	}
	return out
}

func paneLabel(n *state.PaneNode) string {
	loc := fmt.Sprintf("[%d,%d %dx%d]", n.Left, n.Top, n.Width, n.Height)
	cwd := n.Cwd
	if cwd == "" {
		cwd = "?"
	}
	label := fmt.Sprintf("%s %s", loc, cwd)
	if n.Process != nil && n.Process.Name != "" {
		label += " (" + n.Process.Name + ")"
	}
	if n.IsActive {
		label = activeStyle.Render(label + " *")
	}
	if n.IsZoomed {
		label += " " + zoomedStyle.Render("[zoomed]")
	}
	if n.AltScreenActive {
		label += " " + dimStyle.Render("[alt-screen]")
	}
	return label
}
