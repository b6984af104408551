package canvas

import (
	"grid-canvas/grid"
	"grid-canvas/placement"
)

// DragEvent is delivered on every pointer move and on release while an
// item is dragged.
type DragEvent struct {
	// Client is the pointer in client coordinates.
	Client grid.Point
	// Offset is the pointer displacement since the drag started.
	Offset grid.Point
	Item   placement.Candidate
	// Over reports whether the pointer is directly over a canvas, not over
	// one of its nested canvases. It must be shallow: true for at most one
	// canvas. Nil uses the board's own hit testing.
	Over func(canvasID string) bool
}

// ResizeEvent is delivered while a resize handle is dragged.
type ResizeEvent struct {
	Client grid.Point
	NodeID string
	Handle placement.Handle
}

// Commit describes a placement written to the store.
type Commit struct {
	Node     placement.Node
	CanvasID string
	// Conflicts lists siblings the committed node overlaps.
	Conflicts []string
}

// Drag follows one pointer gesture from press to release.
type Drag struct {
	Item  placement.Candidate
	Start grid.Point
}

// BeginMove starts dragging a node that is already placed.
func BeginMove(n placement.Node, at grid.Point) Drag {
	return Drag{Item: placement.Candidate{Node: n, Origin: placement.Existing}, Start: at}
}

// BeginPlace starts dragging a new node from outside every canvas. The node
// has no position until it is dropped.
func BeginPlace(n placement.Node, at grid.Point) Drag {
	n.X, n.Y = -1, -1
	n.ParentID = ""
	return Drag{Item: placement.Candidate{Node: n, Origin: placement.External}, Start: at}
}

// Event builds the drag event for the pointer at client.
func (d Drag) Event(client grid.Point) DragEvent {
	return DragEvent{Client: client, Offset: client.Sub(d.Start), Item: d.Item}
}
