package inspect

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/commons-systems/resurrect/internal/persist"
	"github.com/commons-systems/resurrect/internal/state"
)

// refreshInterval is how often the model reloads the saved state from
// disk. Short, since inspection is typically a short-lived foreground
// session rather than something left running in the background.
const refreshInterval = 2 * time.Second

type tickMsg time.Time

type refreshMsg struct {
	ws  *state.WorkspaceState
	ok  bool
	err error
}

// Model is the Bubble Tea model backing `resurrect inspect`. It only
// ever reads from the store — it never calls into hostapi, so it
// cannot spawn panes or otherwise mutate a live session.
type Model struct {
	store *persist.Store
	name  string

	renderer *Renderer
	ws       *state.WorkspaceState
	lastLoad time.Time
	loadErr  error
	notFound bool

	width, height int
}

// NewModel returns a Model that reads the named workspace state from
// store on each refresh tick.
func NewModel(store *persist.Store, name string) Model {
	return Model{
		store:    store,
		name:     name,
		renderer: NewRenderer(80),
		width:    80,
		height:   24,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(loadCmd(m.store, m.name), tickCmd())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.renderer.SetWidth(msg.Width)
		m.renderer.SetHeight(msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			return m, tea.Quit
		}
		if msg.String() == "q" {
			return m, tea.Quit
		}
		return m, nil

	case refreshMsg:
		if msg.err != nil {
			m.loadErr = msg.err
			return m, nil
		}
		m.loadErr = nil
		m.notFound = !msg.ok
		if msg.ok {
			m.ws = msg.ws
			m.lastLoad = time.Now()
		}
		return m, nil

	case tickMsg:
		return m, tea.Batch(loadCmd(m.store, m.name), tickCmd())
	}
	return m, nil
}

func (m Model) View() string {
	header := m.renderer.RenderHeader(m.name, m.lastLoad.Format("15:04:05"))

	if m.loadErr != nil {
		return header + "\n\n" + warningStyle.Render("load failed: "+m.loadErr.Error())
	}
	if m.notFound && m.ws == nil {
		return header + "\n\n" + dimStyle.Render("no saved state named "+m.name)
	}

	return header + "\n\n" + m.renderer.Render(m.ws) + "\n\n" + dimStyle.Render("q to quit")
}

func loadCmd(store *persist.Store, name string) tea.Cmd {
	return func() tea.Msg {
		var ws state.WorkspaceState
		ok, err := store.Read(persist.TypeWorkspace, name, &ws)
		if err != nil {
			return refreshMsg{err: err}
		}
		if !ok {
			return refreshMsg{ok: false}
		}
		return refreshMsg{ws: &ws, ok: true}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
