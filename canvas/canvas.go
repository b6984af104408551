// Package canvas ties the placement core to a tree of nested canvases: it
// mounts each canvas at a client box, keeps its geometry and preview state,
// and routes hover, drop and resize events to the canvas under the pointer.
package canvas

import (
	"grid-canvas/grid"
	"grid-canvas/placement"
	"grid-canvas/preview"
)

// Canvas is one mounted grid. It exclusively owns its geometry tracker and
// its preview tables.
type Canvas struct {
	id       string
	parentID string
	depth    int

	tracker *grid.Tracker
	preview *preview.Manager

	box        grid.Box
	scroll     grid.Scroll
	unitHeight float64
	mounted    bool
}

func newCanvas(id, parentID string, depth int, cal grid.Calibration) *Canvas {
	return &Canvas{
		id:       id,
		parentID: parentID,
		depth:    depth,
		tracker:  grid.NewTracker(cal),
		preview:  preview.NewManager(),
	}
}

func (c *Canvas) ID() string       { return c.id }
func (c *Canvas) ParentID() string { return c.parentID }
func (c *Canvas) Depth() int       { return c.depth }
func (c *Canvas) Box() grid.Box    { return c.box }
func (c *Canvas) Mounted() bool    { return c.mounted }

func (c *Canvas) Scroll() grid.Scroll { return c.scroll }

// Preview returns the canvas's shadow and outline tables.
func (c *Canvas) Preview() *preview.Manager { return c.preview }

// Geometry returns the current geometry. The flag is false while the canvas
// is unmounted or too small to hold a grid.
func (c *Canvas) Geometry() (grid.Geometry, bool) {
	if !c.mounted {
		return grid.Geometry{}, false
	}
	return c.tracker.Geometry()
}

// Origin returns the client position of cell (0, 0).
func (c *Canvas) Origin() grid.Point {
	edge := c.tracker.Calibration().EdgePadding
	return grid.Point{
		X: c.box.Left + edge - c.scroll.Left,
		Y: c.box.Top + edge - c.scroll.Top,
	}
}

// CellBox returns the client box covered by a cell rectangle.
func (c *Canvas) CellBox(r grid.Rect) grid.Box {
	geo, _ := c.tracker.Geometry()
	o := c.Origin()
	px, py := grid.CellToPixel(r.X, r.Y, geo.Unit)
	return grid.Box{
		Left:   o.X + px,
		Top:    o.Y + py,
		Width:  float64(r.W) * geo.Unit.Width,
		Height: float64(r.H) * geo.Unit.Height,
	}
}

// NodeBox returns the client box of a node placed on this canvas.
func (c *Canvas) NodeBox(n placement.Node) grid.Box {
	return c.CellBox(n.Rect())
}

// mount places the canvas at box and re-measures when anything the geometry
// depends on changed. It reports whether a measurement happened.
func (c *Canvas) mount(box grid.Box, unitHeight float64) bool {
	if c.mounted && box == c.box && unitHeight == c.unitHeight {
		return false
	}
	c.box = box
	c.unitHeight = unitHeight
	c.mounted = true
	c.tracker.Measure(c.box, c.scroll, c.unitHeight)
	return true
}

func (c *Canvas) unmount() {
	c.mounted = false
	c.tracker.Reset()
}

func (c *Canvas) setScroll(s grid.Scroll) {
	c.scroll = s
	if c.mounted {
		c.tracker.Measure(c.box, c.scroll, c.unitHeight)
	}
}

// resolve picks the resolver for item. New items from outside every canvas
// land under the pointer. Placed items, on this canvas or a sibling, follow
// the pointer displacement from their pre-drag cell; the commit moves them
// to this canvas.
func (c *Canvas) resolve(item placement.Candidate, ev DragEvent, geo grid.Geometry) placement.Result {
	if item.Origin == placement.External && item.ParentID != c.id {
		return placement.ResolveDrop(placement.DropInput{
			Box:          c.box,
			Client:       ev.Client,
			Geometry:     geo,
			W:            item.W,
			H:            item.H,
			VerticalOnly: item.VerticalOnly,
		})
	}
	return placement.ResolveReposition(placement.RepositionInput{
		Geometry:     geo,
		X:            item.X,
		Y:            item.Y,
		Offset:       ev.Offset,
		W:            item.W,
		H:            item.H,
		VerticalOnly: item.VerticalOnly,
	})
}
