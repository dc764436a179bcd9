// Package panetree implements the pane-tree engine: inferring the binary
// split tree that produced a flat set of pane rectangles, and planning the
// ordered sequence of splits that recreates that same tree on a fresh host.
//
// Both directions are pure and deterministic — no host calls, no I/O, no
// randomness. Identical inputs always yield identical output.
package panetree

import "sort"

// RawPane is the extracted-but-not-yet-structured record for a single
// pane, as read off a live host by the host-API adapter.
type RawPane struct {
	Left, Top, Width, Height int

	Cwd          string
	Domain       string
	IsSpawnable  bool
	Text         string
	Process      *ProcessInfo
	IsActive     bool
	IsZoomed     bool
	AltScreenActive bool
}

// ProcessInfo mirrors state.ProcessInfo without importing internal/state,
// keeping this package dependency-free; the orchestrator converts between
// the two at the package boundary.
type ProcessInfo struct {
	Name string
	Argv []string
	Exe  string
	Cwd  string
}

// Node is a node of the binary pane tree. A leaf has neither Right nor
// Bottom set. The geometry on a node describes its own rectangle after
// all descendant splits have taken place.
type Node struct {
	RawPane

	Right  *Node
	Bottom *Node
}

// Build infers the binary pane tree from an unordered list of raw panes
// belonging to a single tab. It returns nil for an empty list. Warnings
// report one message per pane whose domain is not
// spawnable; those panes are still included in the tree, with their
// Domain field cleared to the empty string (restore spawns them in the
// default domain).
func Build(panes []RawPane) (root *Node, warnings []string) {
	if len(panes) == 0 {
		return nil, nil
	}

	sorted := make([]RawPane, len(panes))
	copy(sorted, panes)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Left != sorted[j].Left {
			return sorted[i].Left < sorted[j].Left
		}
		return sorted[i].Top < sorted[j].Top
	})

	nodes := make([]*Node, len(sorted))
	for i, p := range sorted {
		n := &Node{RawPane: p}
		if !n.IsSpawnable {
			warnings = append(warnings, "Domain "+n.Domain+" is not spawnable")
			n.Domain = ""
		}
		nodes[i] = n
	}

	root = nodes[0]
	available := nodes[1:]
	assignChildren(root, &available)
	return root, warnings
}

// assignChildren wires right/bottom children onto n from the shared pool
// of not-yet-placed nodes, per the connected-candidate rule in spec
// §4.1.1. Candidates consumed by n (or by n's own descendants, via the
// recursive calls below) are removed from *available so a later sibling
// recursion never reclaims them. Right is resolved — and fully recursed
// — before bottom is even searched, matching "consumed by whichever
// recursion reaches it first (right before bottom, by construction)".
func assignChildren(n *Node, available *[]*Node) {
	if right, ok := takeConnected(available, func(c *Node) bool {
		return c.Left > n.Left+n.Width
	}, func(c *Node) bool {
		return c.Top == n.Top && c.Left == n.Left+n.Width+1
	}); ok {
		n.Right = right
		assignChildren(right, available)
	}

	if bottom, ok := takeConnected(available, func(c *Node) bool {
		return c.Top > n.Top+n.Height
	}, func(c *Node) bool {
		return c.Left == n.Left && c.Top == n.Top+n.Height+1
	}); ok {
		n.Bottom = bottom
		assignChildren(bottom, available)
	}
}

// takeConnected scans *available for the unique node satisfying both
// isCandidate and isConnected, removes it from *available, and returns
// it. A candidate set that is non-empty but contains no connected node
// leaves the pool untouched — those panes belong deeper in the
// structure and are picked up by a descendant's own recursion.
func takeConnected(available *[]*Node, isCandidate, isConnected func(*Node) bool) (*Node, bool) {
	for i, c := range *available {
		if isCandidate(c) && isConnected(c) {
			rest := make([]*Node, 0, len(*available)-1)
			rest = append(rest, (*available)[:i]...)
			rest = append(rest, (*available)[i+1:]...)
			*available = rest
			return c, true
		}
	}
	return nil, false
}
