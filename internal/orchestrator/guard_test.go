package orchestrator

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/commons-systems/resurrect/internal/events"
	"github.com/commons-systems/resurrect/internal/faketmux"
	"github.com/commons-systems/resurrect/internal/persist"
)

func TestPeriodicSaverWritesConfiguredLevels(t *testing.T) {
	tab := faketmux.NewTab("editor", faketmux.PaneSpec{Left: 0, Top: 0, Width: 80, Height: 24, Cwd: "/a", Domain: "local", Spawnable: true})
	win := faketmux.NewWindow("main", "office", tab)
	root := &faketmux.Root{Workspace: "office", Windows: []*faketmux.Window{win}}

	o := New(root, events.NewBus())
	store := persist.NewStore(t.TempDir(), nil)
	saver := NewPeriodicSaver(o, store, events.NewBus(), PeriodicSaveOptions{SaveWorkspace: true, SaveWindows: true, SaveTabs: true})

	saver.Fire(context.Background())

	names, err := store.List(persist.TypeWorkspace)
	if err != nil || len(names) != 1 || names[0] != "office" {
		t.Errorf("workspace saves = %v, err=%v", names, err)
	}
	names, err = store.List(persist.TypeWindow)
	if err != nil || len(names) != 1 || names[0] != "main" {
		t.Errorf("window saves = %v, err=%v", names, err)
	}
	names, err = store.List(persist.TypeTab)
	if err != nil || len(names) != 1 || names[0] != "editor" {
		t.Errorf("tab saves = %v, err=%v", names, err)
	}

	name, kind, err := store.ReadCurrentState()
	if err != nil || name != "office" || kind != persist.TypeWorkspace {
		t.Errorf("current_state = (%q, %q), err=%v", name, kind, err)
	}
}

func TestPeriodicSaverSkipsUntitledWindowsAndTabs(t *testing.T) {
	tab := faketmux.NewTab("", faketmux.PaneSpec{Left: 0, Top: 0, Width: 80, Height: 24, Domain: "local", Spawnable: true})
	win := faketmux.NewWindow("", "office", tab)
	root := &faketmux.Root{Workspace: "office", Windows: []*faketmux.Window{win}}

	o := New(root, events.NewBus())
	store := persist.NewStore(t.TempDir(), nil)
	saver := NewPeriodicSaver(o, store, events.NewBus(), PeriodicSaveOptions{SaveWorkspace: true, SaveWindows: true, SaveTabs: true})

	saver.Fire(context.Background())

	if names, _ := store.List(persist.TypeWindow); len(names) != 0 {
		t.Errorf("window saves = %v, want none for untitled window", names)
	}
	if names, _ := store.List(persist.TypeTab); len(names) != 0 {
		t.Errorf("tab saves = %v, want none for untitled tab", names)
	}
}

func TestPeriodicSaverSingleFlight(t *testing.T) {
	tab := faketmux.NewTab("editor", faketmux.PaneSpec{Left: 0, Top: 0, Width: 80, Height: 24, Domain: "local", Spawnable: true})
	win := faketmux.NewWindow("main", "office", tab)
	root := &faketmux.Root{Workspace: "office", Windows: []*faketmux.Window{win}}

	o := New(root, events.NewBus())
	store := persist.NewStore(t.TempDir(), nil)
	saver := NewPeriodicSaver(o, store, events.NewBus(), PeriodicSaveOptions{SaveWorkspace: true})

	saver.inProgress.Store(true)
	saver.Fire(context.Background())

	if !saver.Pending() {
		t.Error("expected Fire to mark pending when a save is already in progress")
	}
	names, _ := store.List(persist.TypeWorkspace)
	if len(names) != 0 {
		t.Errorf("expected no write while a save is in progress, got %v", names)
	}

	saver.inProgress.Store(false)
	saver.Fire(context.Background())
	if saver.Pending() {
		t.Error("expected Pending to clear after a successful Fire")
	}
	names, _ = store.List(persist.TypeWorkspace)
	if len(names) != 1 {
		t.Errorf("expected exactly one write after Fire succeeds, got %v", names)
	}
}

func TestPeriodicSaverConcurrentFireIsSingleFlight(t *testing.T) {
	tab := faketmux.NewTab("editor", faketmux.PaneSpec{Left: 0, Top: 0, Width: 80, Height: 24, Domain: "local", Spawnable: true})
	win := faketmux.NewWindow("main", "office", tab)
	root := &faketmux.Root{Workspace: "office", Windows: []*faketmux.Window{win}}

	o := New(root, events.NewBus())
	store := persist.NewStore(t.TempDir(), nil)
	bus := events.NewBus()
	var active, maxActive atomic.Int32
	bus.Subscribe(events.PeriodicSaveStart, func(events.Event) {
		n := active.Add(1)
		for {
			m := maxActive.Load()
			if n <= m || maxActive.CompareAndSwap(m, n) {
				break
			}
		}
	})
	bus.Subscribe(events.PeriodicSaveFinished, func(events.Event) { active.Add(-1) })
	saver := NewPeriodicSaver(o, store, bus, PeriodicSaveOptions{SaveWorkspace: true})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			saver.Fire(context.Background())
		}()
	}
	wg.Wait()

	if got := maxActive.Load(); got != 1 {
		t.Errorf("max overlapping batches = %d, want 1", got)
	}
}
