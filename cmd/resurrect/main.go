// Command resurrect captures and restores tmux layouts: a session's
// windows, tabs, and pane splits, each pane's working directory and
// foreground process or scrollback text.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/commons-systems/resurrect/internal/config"
	"github.com/commons-systems/resurrect/internal/debug"
	"github.com/commons-systems/resurrect/internal/events"
	"github.com/commons-systems/resurrect/internal/inspect"
	"github.com/commons-systems/resurrect/internal/orchestrator"
	"github.com/commons-systems/resurrect/internal/panetree"
	"github.com/commons-systems/resurrect/internal/persist"
	"github.com/commons-systems/resurrect/internal/state"
	"github.com/commons-systems/resurrect/internal/tmuxhost"
)

func defaultStateDir() string {
	if dir := os.Getenv("RESURRECT_STATE_DIR"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".resurrect"
	}
	return home + "/.local/share/resurrect"
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "capture":
		runCapture(os.Args[2:])
	case "restore":
		runRestore(os.Args[2:])
	case "list":
		runList(os.Args[2:])
	case "inspect":
		runInspect(os.Args[2:])
	case "delete":
		runDelete(os.Args[2:])
	case "prune":
		runPrune(os.Args[2:])
	case "-h", "--help", "help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "resurrect: unknown subcommand %q\n", os.Args[1])
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: resurrect <subcommand> [options]

Subcommands:
  capture              Capture the active tmux workspace and save it
  restore <name>        Restore a previously saved workspace by name
  list <type>           List saved states (type is workspace, window, or tab)
  inspect [name]        Open a read-only layout viewer (defaults to current_state)
  delete <type> <name>  Delete a saved state
  prune <type> <keep>   Keep only the N most recently saved states of a type
`)
}

func newStore(stateDir string, bus *events.Bus) *persist.Store {
	return persist.NewStore(stateDir, bus)
}

func runCapture(args []string) {
	fs := flag.NewFlagSet("capture", flag.ExitOnError)
	stateDir := fs.String("state-dir", defaultStateDir(), "base directory for saved state")
	fs.Parse(args)

	bus := events.NewBus()
	bus.Subscribe(events.Error, func(e events.Event) {
		fmt.Fprintf(os.Stderr, "resurrect: %s\n", e.Message)
	})

	o := orchestrator.New(tmuxhost.NewRoot(), bus)
	ws, err := o.CaptureWorkspace(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "resurrect: capture failed: %v\n", err)
		os.Exit(1)
	}

	store := newStore(*stateDir, bus)
	if err := store.Write(persist.TypeWorkspace, ws.Workspace, ws); err != nil {
		fmt.Fprintf(os.Stderr, "resurrect: save failed: %v\n", err)
		os.Exit(1)
	}
	if err := store.WriteCurrentState(ws.Workspace, persist.TypeWorkspace); err != nil {
		fmt.Fprintf(os.Stderr, "resurrect: save failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("captured workspace %q (%d windows)\n", ws.Workspace, len(ws.WindowStates))
}

func runRestore(args []string) {
	fs := flag.NewFlagSet("restore", flag.ExitOnError)
	stateDir := fs.String("state-dir", defaultStateDir(), "base directory for saved state")
	spawnInWorkspace := fs.Bool("spawn-in-workspace", true, "make the saved workspace active after restoring (windows are spawned without a workspace name)")
	resizeWindow := fs.Bool("resize-window", false, "resize windows to the saved cell dimensions (cols x rows)")
	restoreText := fs.Bool("restore-text", true, "reinject scrollback text / relaunch foreground processes")
	absolute := fs.Bool("absolute", false, "use cell-count split sizes instead of proportional sizes")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "resurrect: restore requires a saved workspace name")
		os.Exit(1)
	}
	name := fs.Arg(0)

	bus := events.NewBus()
	bus.Subscribe(events.Error, func(e events.Event) {
		fmt.Fprintf(os.Stderr, "resurrect: %s\n", e.Message)
	})

	store := newStore(*stateDir, bus)
	cfg := config.Default(*stateDir)
	cfg.SpawnInWorkspace = *spawnInWorkspace
	cfg.ResizeWindow = *resizeWindow
	cfg.RestoreText = *restoreText
	if *absolute {
		cfg.SizeMode = panetree.SizeAbsolute
	}

	var wsState state.WorkspaceState
	ok, err := store.Read(persist.TypeWorkspace, name, &wsState)
	if err != nil {
		fmt.Fprintf(os.Stderr, "resurrect: load failed: %v\n", err)
		os.Exit(1)
	}
	if !ok {
		fmt.Fprintf(os.Stderr, "resurrect: no saved workspace named %q\n", name)
		os.Exit(1)
	}

	o := orchestrator.New(tmuxhost.NewRoot(), bus)
	if err := o.RestoreWorkspace(context.Background(), &wsState, cfg.RestoreOptions()); err != nil {
		fmt.Fprintf(os.Stderr, "resurrect: restore failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("restored workspace %q\n", name)
}

func runList(args []string) {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	stateDir := fs.String("state-dir", defaultStateDir(), "base directory for saved state")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "resurrect: list requires a state type (workspace, window, or tab)")
		os.Exit(1)
	}
	t, err := parseStateType(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "resurrect: %v\n", err)
		os.Exit(1)
	}

	store := newStore(*stateDir, nil)
	names, err := store.List(t)
	if err != nil {
		fmt.Fprintf(os.Stderr, "resurrect: list failed: %v\n", err)
		os.Exit(1)
	}
	for _, n := range names {
		fmt.Println(n)
	}
}

func runInspect(args []string) {
	fs := flag.NewFlagSet("inspect", flag.ExitOnError)
	stateDir := fs.String("state-dir", defaultStateDir(), "base directory for saved state")
	fs.Parse(args)

	store := newStore(*stateDir, nil)

	var name string
	if fs.NArg() >= 1 {
		name = fs.Arg(0)
	} else if last := orchestrator.NewWithStore(tmuxhost.NewRoot(), nil, store).LastKnownState(); last != nil {
		name = last.Workspace
	} else {
		fmt.Fprintln(os.Stderr, "resurrect: inspect requires a saved workspace name (no current_state to fall back to)")
		os.Exit(1)
	}

	p := tea.NewProgram(inspect.NewModel(store, name))
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "resurrect: inspect failed: %v\n", err)
		os.Exit(1)
	}
}

func runDelete(args []string) {
	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	stateDir := fs.String("state-dir", defaultStateDir(), "base directory for saved state")
	fs.Parse(args)

	if fs.NArg() < 2 {
		fmt.Fprintln(os.Stderr, "resurrect: delete requires a state type and name")
		os.Exit(1)
	}
	t, err := parseStateType(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "resurrect: %v\n", err)
		os.Exit(1)
	}

	store := newStore(*stateDir, nil)
	if err := store.Delete(t, fs.Arg(1)); err != nil {
		fmt.Fprintf(os.Stderr, "resurrect: delete failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("deleted %s %q\n", fs.Arg(0), fs.Arg(1))
}

func runPrune(args []string) {
	fs := flag.NewFlagSet("prune", flag.ExitOnError)
	stateDir := fs.String("state-dir", defaultStateDir(), "base directory for saved state")
	fs.Parse(args)

	if fs.NArg() < 2 {
		fmt.Fprintln(os.Stderr, "resurrect: prune requires a state type and a keep count")
		os.Exit(1)
	}
	t, err := parseStateType(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "resurrect: %v\n", err)
		os.Exit(1)
	}
	keep, err := strconv.Atoi(fs.Arg(1))
	if err != nil {
		fmt.Fprintf(os.Stderr, "resurrect: invalid keep count %q\n", fs.Arg(1))
		os.Exit(1)
	}

	store := newStore(*stateDir, nil)
	deleted, err := store.Prune(t, keep)
	if err != nil {
		fmt.Fprintf(os.Stderr, "resurrect: prune failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("pruned %d %s state(s)\n", len(deleted), fs.Arg(0))
}

func parseStateType(raw string) (persist.StateType, error) {
	switch persist.StateType(raw) {
	case persist.TypeWorkspace, persist.TypeWindow, persist.TypeTab:
		return persist.StateType(raw), nil
	default:
		return "", fmt.Errorf("unknown state type %q (want workspace, window, or tab)", raw)
	}
}

func init() {
	debug.Log("RESURRECT_MAIN started pid=%d at=%s", os.Getpid(), time.Now().Format(time.RFC3339))
}
