// Package hostapi declares the capability surface the core depends on
// from a terminal multiplexer host. It is the only boundary the rest of
// this module is allowed to reach the outside world through; every real
// implementation (internal/tmuxhost) and every test fake satisfies
// exactly this surface.
package hostapi

import "context"

// Domain is the host's routing namespace for a pane — the local machine
// or a remote session.
type Domain interface {
	Name() string
	IsSpawnable() bool
}

// PaneInfo is the static geometry/flag snapshot a Tab reports for each of
// its panes, independent of pane content.
type PaneInfo struct {
	Pane     Pane
	IsActive bool
	IsZoomed bool
	Left     int
	Top      int
	Width    int
	Height   int
}

// ForegroundProcess is the descriptor a Pane reports for whatever is
// currently running in its foreground. It carries no volatile fields
// (pid, ppid, children).
type ForegroundProcess struct {
	Name string
	Argv []string
	Exe  string
	Cwd  string
}

// Dimensions reports a pane's scrollback depth plus its visible size.
type Dimensions struct {
	ScrollbackRows int
	Cols           int
	Rows           int
}

// SplitOptions configures a Pane.Split call.
type SplitOptions struct {
	Cwd    string
	Domain string
	// HasSize and Size mirror panetree.SplitCommand: Size is either a
	// proportion or a cell count depending on which sizing mode the
	// restore options selected; HasSize is false when the host should
	// use its own default. Relative is true when Size is a [0,1]
	// proportion (panetree.SizeRelative) rather than a cell count
	// (panetree.SizeAbsolute), so an implementation can format the two
	// differently.
	HasSize  bool
	Size     float64
	Relative bool
}

// Direction is the axis of a split, matching panetree.Direction.
type Direction int

const (
	DirRight Direction = iota
	DirBottom
)

// Pane is a single rectangular terminal inside a tab.
type Pane interface {
	ID() int
	DomainName() string
	Cwd() (string, bool)
	IsAltScreenActive() bool
	ForegroundProcessInfo() (ForegroundProcess, bool)
	Dimensions() Dimensions
	ScrollbackAsEscapes(ctx context.Context, maxRows int) (string, error)
	Split(ctx context.Context, dir Direction, opts SplitOptions) (Pane, error)
	SendText(ctx context.Context, text string) error
	InjectOutput(ctx context.Context, text string) error
	Activate(ctx context.Context) error
}

// Tab is a container holding a tree of panes sharing one screen region.
type Tab interface {
	Title() string
	SetTitle(ctx context.Context, title string) error
	PanesWithInfo(ctx context.Context) ([]PaneInfo, error)
	Size(ctx context.Context) (cols, rows, pixelWidth, pixelHeight int, err error)
	SetZoomed(ctx context.Context, zoomed bool) error
}

// TabInfo pairs a Tab with whether it is the window's active tab.
type TabInfo struct {
	Tab      Tab
	IsActive bool
}

// SpawnOptions configures Window.SpawnTab and MuxRoot.SpawnWindow.
type SpawnOptions struct {
	Cwd    string
	Domain string
	Width  int
	Height int
}

// Window is a top-level container holding an ordered sequence of tabs.
type Window interface {
	Title() string
	Workspace() string
	TabsWithInfo(ctx context.Context) ([]TabInfo, error)
	SpawnTab(ctx context.Context, opts SpawnOptions) (Tab, Pane, Window, error)
	ActiveTab(ctx context.Context) (Tab, error)
}

// MuxRoot is the top of the host capability tree.
type MuxRoot interface {
	ActiveWorkspace(ctx context.Context) (string, error)
	AllWindows(ctx context.Context) ([]Window, error)
	SpawnWindow(ctx context.Context, opts SpawnOptions) (Tab, Pane, Window, error)
	GetDomain(ctx context.Context, name string) (Domain, error)
	SetActiveWorkspace(ctx context.Context, name string) error
}
