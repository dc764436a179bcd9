// Package faketmux is an in-memory hostapi.MuxRoot used by orchestrator
// and persistence tests: a hand-built fake that satisfies the real
// contract without shelling out to tmux.
package faketmux

import (
	"context"
	"fmt"

	"github.com/commons-systems/resurrect/internal/hostapi"
)

// PaneSpec seeds a fake pane's starting state.
type PaneSpec struct {
	Left, Top, Width, Height int
	Cwd                      string
	Domain                   string
	Spawnable                bool
	Text                     string
	Process                  *hostapi.ForegroundProcess
	IsActive, IsZoomed       bool
	AltScreenActive          bool
}

type Pane struct {
	id   int
	spec PaneSpec

	sentText     []string
	injected     []string
	activated    bool
	splits       []splitCall
}

type splitCall struct {
	dir  hostapi.Direction
	opts hostapi.SplitOptions
}

var nextID = 1

func newPane(spec PaneSpec) *Pane {
	p := &Pane{id: nextID, spec: spec}
	nextID++
	return p
}

func (p *Pane) ID() int            { return p.id }
func (p *Pane) DomainName() string { return p.spec.Domain }
func (p *Pane) Cwd() (string, bool) {
	return p.spec.Cwd, p.spec.Cwd != ""
}
func (p *Pane) IsAltScreenActive() bool { return p.spec.AltScreenActive }
func (p *Pane) ForegroundProcessInfo() (hostapi.ForegroundProcess, bool) {
	if p.spec.Process == nil {
		return hostapi.ForegroundProcess{}, false
	}
	return *p.spec.Process, true
}
func (p *Pane) Dimensions() hostapi.Dimensions {
	return hostapi.Dimensions{ScrollbackRows: 2000, Cols: p.spec.Width, Rows: p.spec.Height}
}
func (p *Pane) ScrollbackAsEscapes(ctx context.Context, maxRows int) (string, error) {
	return p.spec.Text, nil
}
func (p *Pane) Split(ctx context.Context, dir hostapi.Direction, opts hostapi.SplitOptions) (hostapi.Pane, error) {
	p.splits = append(p.splits, splitCall{dir, opts})
	child := newPane(PaneSpec{Cwd: opts.Cwd, Domain: opts.Domain, Spawnable: true})
	return child, nil
}
func (p *Pane) SendText(ctx context.Context, text string) error {
	p.sentText = append(p.sentText, text)
	return nil
}
func (p *Pane) InjectOutput(ctx context.Context, text string) error {
	p.injected = append(p.injected, text)
	return nil
}
func (p *Pane) Activate(ctx context.Context) error {
	p.activated = true
	return nil
}

// SentText, Injected, and Activated expose recorded calls for assertions.
func (p *Pane) SentText() []string  { return p.sentText }
func (p *Pane) Injected() []string  { return p.injected }
func (p *Pane) Activated() bool     { return p.activated }

// Tab is an in-memory hostapi.Tab.
type Tab struct {
	title   string
	panes   []*Pane
	zoomed  bool
}

// NewTab builds a Tab from a list of pane specs, preserving the order
// given (callers typically seed it in the layout they want Build to
// reconstruct).
func NewTab(title string, specs ...PaneSpec) *Tab {
	t := &Tab{title: title}
	for _, s := range specs {
		t.panes = append(t.panes, newPane(s))
	}
	return t
}

func (t *Tab) Title() string { return t.title }
func (t *Tab) SetTitle(ctx context.Context, title string) error {
	t.title = title
	return nil
}
func (t *Tab) PanesWithInfo(ctx context.Context) ([]hostapi.PaneInfo, error) {
	infos := make([]hostapi.PaneInfo, 0, len(t.panes))
	for _, p := range t.panes {
		infos = append(infos, hostapi.PaneInfo{
			Pane: p, IsActive: p.spec.IsActive, IsZoomed: p.spec.IsZoomed,
			Left: p.spec.Left, Top: p.spec.Top, Width: p.spec.Width, Height: p.spec.Height,
		})
	}
	return infos, nil
}
func (t *Tab) Size(ctx context.Context) (cols, rows, pixelWidth, pixelHeight int, err error) {
	return 160, 48, 1280, 720, nil
}
func (t *Tab) SetZoomed(ctx context.Context, zoomed bool) error {
	t.zoomed = zoomed
	return nil
}
func (t *Tab) IsZoomed() bool { return t.zoomed }

// AddPane appends a live pane produced by a split, so a test can assert
// on the tab's resulting pane count after a restore.
func (t *Tab) AddPane(p *Pane) { t.panes = append(t.panes, p) }

// PanesForTest exposes a tab's live panes for assertions.
func (t *Tab) PanesForTest() []*Pane { return t.panes }

// Window is an in-memory hostapi.Window.
type Window struct {
	title     string
	workspace string
	tabs      []*tabInfo
}

type tabInfo struct {
	tab      *Tab
	isActive bool
}

// NewWindow builds a Window with the given tabs, the first one active by
// default.
func NewWindow(title, workspace string, tabs ...*Tab) *Window {
	w := &Window{title: title, workspace: workspace}
	for i, t := range tabs {
		w.tabs = append(w.tabs, &tabInfo{tab: t, isActive: i == 0})
	}
	return w
}

func (w *Window) Title() string     { return w.title }
func (w *Window) Workspace() string { return w.workspace }
func (w *Window) TabsWithInfo(ctx context.Context) ([]hostapi.TabInfo, error) {
	infos := make([]hostapi.TabInfo, 0, len(w.tabs))
	for _, ti := range w.tabs {
		infos = append(infos, hostapi.TabInfo{Tab: ti.tab, IsActive: ti.isActive})
	}
	return infos, nil
}
func (w *Window) SpawnTab(ctx context.Context, opts hostapi.SpawnOptions) (hostapi.Tab, hostapi.Pane, hostapi.Window, error) {
	p := newPane(PaneSpec{Cwd: opts.Cwd, Domain: opts.Domain, Spawnable: true, IsActive: true})
	t := &Tab{title: "", panes: []*Pane{p}}
	w.tabs = append(w.tabs, &tabInfo{tab: t})
	return t, p, w, nil
}
// TabCountForTest exposes how many tabs a window currently holds,
// including any spawned during restore.
func (w *Window) TabCountForTest() int { return len(w.tabs) }

func (w *Window) ActiveTab(ctx context.Context) (hostapi.Tab, error) {
	for _, ti := range w.tabs {
		if ti.isActive {
			return ti.tab, nil
		}
	}
	if len(w.tabs) > 0 {
		return w.tabs[0].tab, nil
	}
	return nil, fmt.Errorf("faketmux: window %s has no tabs", w.title)
}

// Root is an in-memory hostapi.MuxRoot.
type Root struct {
	Workspace      string
	Windows        []*Window
	Spawned        []*Window
	ActiveWorkspaceSet string
}

func (r *Root) ActiveWorkspace(ctx context.Context) (string, error) { return r.Workspace, nil }
func (r *Root) AllWindows(ctx context.Context) ([]hostapi.Window, error) {
	hs := make([]hostapi.Window, len(r.Windows))
	for i, w := range r.Windows {
		hs[i] = w
	}
	return hs, nil
}
func (r *Root) SpawnWindow(ctx context.Context, opts hostapi.SpawnOptions) (hostapi.Tab, hostapi.Pane, hostapi.Window, error) {
	p := newPane(PaneSpec{Cwd: opts.Cwd, Domain: opts.Domain, Spawnable: true, IsActive: true})
	t := &Tab{panes: []*Pane{p}}
	w := &Window{title: fmt.Sprintf("window-%d", len(r.Windows)+1), workspace: opts.Domain}
	w.tabs = []*tabInfo{{tab: t, isActive: true}}
	r.Windows = append(r.Windows, w)
	r.Spawned = append(r.Spawned, w)
	return t, p, w, nil
}
func (r *Root) GetDomain(ctx context.Context, name string) (hostapi.Domain, error) {
	return fakeDomain{name: name, spawnable: name == "" || name == "local"}, nil
}
func (r *Root) SetActiveWorkspace(ctx context.Context, name string) error {
	r.ActiveWorkspaceSet = name
	return nil
}

type fakeDomain struct {
	name      string
	spawnable bool
}

func (d fakeDomain) Name() string      { return d.name }
func (d fakeDomain) IsSpawnable() bool { return d.spawnable }
