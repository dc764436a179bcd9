package panetree

import "testing"

func TestBuildEmpty(t *testing.T) {
	root, warnings := Build(nil)
	if root != nil {
		t.Errorf("Build(nil) root = %+v, want nil", root)
	}
	if len(warnings) != 0 {
		t.Errorf("Build(nil) warnings = %v, want none", warnings)
	}
}

func TestBuildThreeWayHorizontal(t *testing.T) {
	panes := []RawPane{
		{Left: 0, Top: 0, Width: 53, Height: 48, Cwd: "a", IsSpawnable: true},
		{Left: 54, Top: 0, Width: 53, Height: 48, Cwd: "b", IsSpawnable: true},
		{Left: 108, Top: 0, Width: 53, Height: 48, Cwd: "c", IsSpawnable: true},
	}
	root, warnings := Build(panes)
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if root == nil || root.Cwd != "a" {
		t.Fatalf("root = %+v, want cwd a", root)
	}
	if root.Bottom != nil {
		t.Fatalf("root has unexpected bottom child")
	}
	if root.Right == nil || root.Right.Cwd != "b" {
		t.Fatalf("root.Right = %+v, want cwd b", root.Right)
	}
	if root.Right.Bottom != nil {
		t.Fatalf("root.Right has unexpected bottom child")
	}
	if root.Right.Right == nil || root.Right.Right.Cwd != "c" {
		t.Fatalf("root.Right.Right = %+v, want cwd c", root.Right.Right)
	}
}

func TestBuildIDELayout(t *testing.T) {
	panes := []RawPane{
		{Left: 0, Top: 0, Width: 100, Height: 48, Cwd: "editor"},
		{Left: 101, Top: 0, Width: 60, Height: 24, Cwd: "top-right"},
		{Left: 101, Top: 25, Width: 60, Height: 24, Cwd: "bottom-right"},
	}
	root, _ := Build(panes)
	if root == nil || root.Cwd != "editor" {
		t.Fatalf("root = %+v, want cwd editor", root)
	}
	if root.Bottom != nil {
		t.Fatalf("root should have no bottom child")
	}
	if root.Right == nil || root.Right.Cwd != "top-right" {
		t.Fatalf("root.Right = %+v, want cwd top-right", root.Right)
	}
	if root.Right.Bottom == nil || root.Right.Bottom.Cwd != "bottom-right" {
		t.Fatalf("root.Right.Bottom = %+v, want cwd bottom-right", root.Right.Bottom)
	}
	if root.Right.Right != nil {
		t.Fatalf("root.Right should have no right child")
	}
}

func TestBuildNonSpawnableDomainWarning(t *testing.T) {
	panes := []RawPane{
		{Left: 0, Top: 0, Width: 80, Height: 24, Domain: "remote1", IsSpawnable: false},
		{Left: 81, Top: 0, Width: 80, Height: 24, Domain: "local", IsSpawnable: true},
	}
	root, warnings := Build(panes)
	if len(warnings) != 1 {
		t.Fatalf("warnings = %v, want exactly 1", warnings)
	}
	if warnings[0] != "Domain remote1 is not spawnable" {
		t.Errorf("warning = %q", warnings[0])
	}
	if root.Domain != "" {
		t.Errorf("root.Domain = %q, want cleared to empty", root.Domain)
	}
}

// invariantCheck walks the tree and verifies the geometric invariants of
// spec §3.
func invariantCheck(t *testing.T, n *Node) {
	t.Helper()
	if n == nil {
		return
	}
	if n.Right != nil {
		if n.Right.Left != n.Left+n.Width+1 {
			t.Errorf("right child left offset: got %d, want %d", n.Right.Left, n.Left+n.Width+1)
		}
		invariantCheck(t, n.Right)
	}
	if n.Bottom != nil {
		if n.Bottom.Top != n.Top+n.Height+1 {
			t.Errorf("bottom child top offset: got %d, want %d", n.Bottom.Top, n.Top+n.Height+1)
		}
		invariantCheck(t, n.Bottom)
	}
}

func TestBuildInvariants(t *testing.T) {
	layouts := [][]RawPane{
		{
			{Left: 0, Top: 0, Width: 80, Height: 24},
			{Left: 81, Top: 0, Width: 80, Height: 48},
			{Left: 0, Top: 25, Width: 80, Height: 24},
		},
		{
			{Left: 0, Top: 0, Width: 100, Height: 48},
			{Left: 101, Top: 0, Width: 60, Height: 24},
			{Left: 101, Top: 25, Width: 60, Height: 24},
		},
	}
	for _, l := range layouts {
		root, _ := Build(l)
		if root.Left != 0 || root.Top != 0 {
			t.Errorf("root origin = (%d,%d), want (0,0)", root.Left, root.Top)
		}
		invariantCheck(t, root)
	}
}
