package panetree

// Direction is the axis of a single split command.
type Direction int

const (
	DirRight Direction = iota
	DirBottom
)

func (d Direction) String() string {
	if d == DirRight {
		return "right"
	}
	return "bottom"
}

// SizeMode selects how SplitCommand.Size is computed.
type SizeMode int

const (
	SizeNone SizeMode = iota
	SizeRelative
	SizeAbsolute
)

// PlanOptions configures PlanSplits.
type PlanOptions struct {
	SizeMode SizeMode
}

// SplitCommand is one step of the ordered sequence that recreates a
// captured pane tree on a fresh host.
type SplitCommand struct {
	Direction Direction
	Cwd       string
	Text      string
	Domain    string
	Process   *ProcessInfo
	// Size is a proportion in [0,1] when SizeMode is SizeRelative, a
	// cell count when SizeAbsolute, and unused (zero value) otherwise.
	Size    float64
	HasSize bool

	// Node is the tree node this command will spawn, so callers (the
	// orchestrator) can thread the resulting live pane back onto it.
	Node *Node
}

// PlanSplits walks tree in depth-first order and emits the ordered
// sequence of SplitCommands that recreate it. A nil tree produces no
// commands.
func PlanSplits(tree *Node, opts PlanOptions) []SplitCommand {
	if tree == nil {
		return nil
	}
	var cmds []SplitCommand
	planNode(tree, opts, &cmds)
	return cmds
}

func planNode(n *Node, opts PlanOptions, cmds *[]SplitCommand) {
	rightFirst := splitRightFirst(n)

	emitRight := func() {
		if n.Right == nil {
			return
		}
		*cmds = append(*cmds, buildCommand(DirRight, n, n.Right, opts))
		planNode(n.Right, opts, cmds)
	}
	emitBottom := func() {
		if n.Bottom == nil {
			return
		}
		*cmds = append(*cmds, buildCommand(DirBottom, n, n.Bottom, opts))
		planNode(n.Bottom, opts, cmds)
	}

	if n.Right != nil && n.Bottom != nil {
		if rightFirst {
			emitRight()
			emitBottom()
		} else {
			emitBottom()
			emitRight()
		}
		return
	}
	// Only one child (or none): order doesn't matter, emit whichever
	// exists.
	emitRight()
	emitBottom()
}

// splitRightFirst reconstructs which child was split first: the right
// child was split first iff it spans (within one divider cell of) the
// parent's full post-split height.
func splitRightFirst(n *Node) bool {
	if n.Right == nil {
		return false
	}
	if n.Bottom == nil {
		return true
	}
	return n.Right.Height >= n.Height+n.Bottom.Height-1
}

func buildCommand(dir Direction, parent, child *Node, opts PlanOptions) SplitCommand {
	cmd := SplitCommand{
		Direction: dir,
		Cwd:       child.Cwd,
		Text:      child.Text,
		Domain:    child.Domain,
		Process:   child.Process,
		Node:      child,
	}
	switch opts.SizeMode {
	case SizeRelative:
		switch dir {
		case DirRight:
			total := parent.Width + child.Width
			if total > 0 {
				cmd.Size = float64(child.Width) / float64(total)
				cmd.HasSize = true
			}
		case DirBottom:
			total := parent.Height + child.Height
			if total > 0 {
				cmd.Size = float64(child.Height) / float64(total)
				cmd.HasSize = true
			}
		}
	case SizeAbsolute:
		switch dir {
		case DirRight:
			cmd.Size = float64(child.Width)
		case DirBottom:
			cmd.Size = float64(child.Height)
		}
		cmd.HasSize = true
	}
	return cmd
}
