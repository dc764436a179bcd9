package tmuxhost

import (
	"context"
	"strings"
	"testing"

	"github.com/commons-systems/resurrect/internal/hostapi"
)

// recordingExecutor records every command it was asked to run and
// returns a fixed pane id for split-window invocations, the only
// output Split actually consumes.
type recordingExecutor struct {
	calls [][]string
}

func (r *recordingExecutor) ExecCommand(name string, args ...string) ([]byte, error) {
	return r.ExecCommandOutput(name, args...)
}

func (r *recordingExecutor) ExecCommandOutput(name string, args ...string) ([]byte, error) {
	r.calls = append(r.calls, append([]string{name}, args...))
	return []byte("%42"), nil
}

func (r *recordingExecutor) lastSplitArgs() []string {
	for i := len(r.calls) - 1; i >= 0; i-- {
		if len(r.calls[i]) > 1 && r.calls[i][1] == "split-window" {
			return r.calls[i]
		}
	}
	return nil
}

func TestSplitRelativeSizeIsPercentage(t *testing.T) {
	exec := &recordingExecutor{}
	p := &pane{id: "%1", executor: exec}

	_, err := p.Split(context.Background(), hostapi.DirRight, hostapi.SplitOptions{
		HasSize: true, Size: 0.25, Relative: true,
	})
	if err != nil {
		t.Fatalf("Split: %v", err)
	}

	args := exec.lastSplitArgs()
	if args == nil {
		t.Fatal("no split-window call recorded")
	}
	if !containsArgPair(args, "-l", "25%") {
		t.Errorf("split-window args = %v, want -l 25%%", args)
	}
}

func TestSplitAbsoluteSizeIsCellCount(t *testing.T) {
	exec := &recordingExecutor{}
	p := &pane{id: "%1", executor: exec}

	_, err := p.Split(context.Background(), hostapi.DirBottom, hostapi.SplitOptions{
		HasSize: true, Size: 24, Relative: false,
	})
	if err != nil {
		t.Fatalf("Split: %v", err)
	}

	args := exec.lastSplitArgs()
	if args == nil {
		t.Fatal("no split-window call recorded")
	}
	if !containsArgPair(args, "-l", "24") {
		t.Errorf("split-window args = %v, want -l 24", args)
	}
}

func containsArgPair(args []string, flag, value string) bool {
	for i, a := range args {
		if a == flag && i+1 < len(args) && args[i+1] == value {
			return true
		}
	}
	return false
}

func TestSplitNoSizeOmitsFlag(t *testing.T) {
	exec := &recordingExecutor{}
	p := &pane{id: "%1", executor: exec}

	if _, err := p.Split(context.Background(), hostapi.DirRight, hostapi.SplitOptions{}); err != nil {
		t.Fatalf("Split: %v", err)
	}

	args := exec.lastSplitArgs()
	if args == nil {
		t.Fatal("no split-window call recorded")
	}
	if strings.Contains(strings.Join(args, " "), "-l ") {
		t.Errorf("split-window args = %v, want no -l flag", args)
	}
}
