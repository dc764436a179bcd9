package panetree

import "testing"

func TestPlanSplitsNil(t *testing.T) {
	if cmds := PlanSplits(nil, PlanOptions{}); cmds != nil {
		t.Errorf("PlanSplits(nil) = %v, want nil", cmds)
	}
}

func TestPlanSplitsRightFirstScenario(t *testing.T) {
	// root (0,0,80,24) right child (81,0,80,48) bottom child (0,25,80,24)
	root := &Node{
		RawPane: RawPane{Left: 0, Top: 0, Width: 80, Height: 24},
		Right:   &Node{RawPane: RawPane{Left: 81, Top: 0, Width: 80, Height: 48}},
		Bottom:  &Node{RawPane: RawPane{Left: 0, Top: 25, Width: 80, Height: 24}},
	}
	cmds := PlanSplits(root, PlanOptions{})
	if len(cmds) != 2 {
		t.Fatalf("len(cmds) = %d, want 2", len(cmds))
	}
	if cmds[0].Direction != DirRight {
		t.Errorf("cmds[0].Direction = %v, want DirRight", cmds[0].Direction)
	}
	if cmds[1].Direction != DirBottom {
		t.Errorf("cmds[1].Direction = %v, want DirBottom", cmds[1].Direction)
	}

	// Executing: right pane ends up full height (48), bottom full width (80).
	if cmds[0].Node.Height != 48 {
		t.Errorf("right pane height = %d, want 48", cmds[0].Node.Height)
	}
	if cmds[1].Node.Width != 80 {
		t.Errorf("bottom pane width = %d, want 80", cmds[1].Node.Width)
	}
}

func TestPlanSplitsMirrorScenario(t *testing.T) {
	// root (0,0,80,24) right child (81,0,80,24) bottom child (0,25,160,24)
	root := &Node{
		RawPane: RawPane{Left: 0, Top: 0, Width: 80, Height: 24},
		Right:   &Node{RawPane: RawPane{Left: 81, Top: 0, Width: 80, Height: 24}},
		Bottom:  &Node{RawPane: RawPane{Left: 0, Top: 25, Width: 160, Height: 24}},
	}
	cmds := PlanSplits(root, PlanOptions{})
	if len(cmds) != 2 {
		t.Fatalf("len(cmds) = %d, want 2", len(cmds))
	}
	if cmds[0].Direction != DirBottom {
		t.Errorf("cmds[0].Direction = %v, want DirBottom", cmds[0].Direction)
	}
	if cmds[1].Direction != DirRight {
		t.Errorf("cmds[1].Direction = %v, want DirRight", cmds[1].Direction)
	}
	if cmds[0].Node.Width != 160 {
		t.Errorf("bottom pane width = %d, want 160", cmds[0].Node.Width)
	}
}

func TestPlanSplitsRelativeSize(t *testing.T) {
	root := &Node{
		RawPane: RawPane{Left: 0, Top: 0, Width: 80, Height: 24},
		Right:   &Node{RawPane: RawPane{Left: 81, Top: 0, Width: 20, Height: 24}},
	}
	cmds := PlanSplits(root, PlanOptions{SizeMode: SizeRelative})
	if len(cmds) != 1 {
		t.Fatalf("len(cmds) = %d, want 1", len(cmds))
	}
	want := 20.0 / 100.0
	if !cmds[0].HasSize || cmds[0].Size != want {
		t.Errorf("Size = %v (HasSize=%v), want %v", cmds[0].Size, cmds[0].HasSize, want)
	}
}

func TestPlanSplitsAbsoluteSize(t *testing.T) {
	root := &Node{
		RawPane: RawPane{Left: 0, Top: 0, Width: 80, Height: 24},
		Bottom:  &Node{RawPane: RawPane{Left: 0, Top: 25, Width: 80, Height: 10}},
	}
	cmds := PlanSplits(root, PlanOptions{SizeMode: SizeAbsolute})
	if len(cmds) != 1 || !cmds[0].HasSize || cmds[0].Size != 10 {
		t.Fatalf("cmds = %+v, want absolute size 10", cmds)
	}
}

// TestPlanSplitsReproducesGeometry exercises the property of spec §8.2:
// flattening a tree to its raw panes and rebuilding it with Build must
// recover a structurally identical tree, and PlanSplits over that
// rebuilt tree must still choose the correct split order.
func TestPlanSplitsReproducesGeometry(t *testing.T) {
	original := &Node{
		RawPane: RawPane{Left: 0, Top: 0, Width: 80, Height: 24, IsSpawnable: true},
		Right:   &Node{RawPane: RawPane{Left: 81, Top: 0, Width: 80, Height: 48, IsSpawnable: true}},
		Bottom:  &Node{RawPane: RawPane{Left: 0, Top: 25, Width: 80, Height: 24, IsSpawnable: true}},
	}

	var flat []RawPane
	Fold(original, struct{}{}, func(acc struct{}, n *Node) struct{} {
		flat = append(flat, n.RawPane)
		return acc
	})

	rebuilt, warnings := Build(flat)
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	invariantCheck(t, rebuilt)

	cmds := PlanSplits(rebuilt, PlanOptions{})
	if len(cmds) != 2 || cmds[0].Direction != DirRight || cmds[1].Direction != DirBottom {
		t.Fatalf("rebuilt tree planned wrong split order: %+v", cmds)
	}
}
