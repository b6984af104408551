// Package placement resolves where a dragged or resized widget lands on a
// canvas grid and whether it collides with its siblings.
package placement

import "grid-canvas/grid"

// Kind distinguishes plain widgets from nodes that host a nested canvas.
type Kind string

const (
	KindWidget Kind = "widget"
	KindCanvas Kind = "canvas"
)

// Node is a widget placed on a canvas. X, Y, W and H are in cells of the
// parent canvas.
type Node struct {
	ID       string `yaml:"id"`
	ParentID string `yaml:"parent,omitempty"`
	Kind     Kind   `yaml:"kind"`
	Title    string `yaml:"title,omitempty"`
	X        int    `yaml:"x"`
	Y        int    `yaml:"y"`
	W        int    `yaml:"w"`
	H        int    `yaml:"h"`
	// VerticalOnly nodes always sit in column 0 and only resize vertically.
	VerticalOnly bool `yaml:"vertical_only,omitempty"`
}

// Rect returns the cells the node covers.
func (n Node) Rect() grid.Rect {
	return grid.Rect{X: n.X, Y: n.Y, W: n.W, H: n.H}
}

// IsCanvas reports whether the node hosts a nested canvas.
func (n Node) IsCanvas() bool {
	return n.Kind == KindCanvas
}

// Origin tells the resolvers how a drag started.
type Origin int

const (
	// External items come from outside any canvas, such as a palette.
	External Origin = iota
	// Existing items are already placed and carry their pre-drag cell.
	Existing
)

func (o Origin) String() string {
	if o == External {
		return "external"
	}
	return "existing"
}

// Candidate is a node in flight.
type Candidate struct {
	Node
	Origin Origin
}

// Result is the outcome of resolving a drag against a canvas.
type Result struct {
	// CellX and CellY are the snapped, clamped destination.
	CellX, CellY int
	// RenderX and RenderY are the unclamped grid-local pixels used to draw
	// the live preview.
	RenderX, RenderY float64
}

// Rect returns the destination rectangle for an item of the given size.
func (r Result) Rect(w, h int) grid.Rect {
	return grid.Rect{X: r.CellX, Y: r.CellY, W: w, H: h}
}

// clamp keeps a cell coordinate within [0, limit-span]. When the item is
// larger than the grid the upper bound collapses to 0.
func clamp(v, span, limit int) int {
	hi := limit - span
	if hi < 0 {
		hi = 0
	}
	return min(max(v, 0), hi)
}
