package placement

import "grid-canvas/grid"

// DropInput describes an item entering a canvas from outside.
type DropInput struct {
	// Box is the client-space box of the canvas element.
	Box grid.Box
	// Client is the pointer position in client coordinates.
	Client   grid.Point
	Geometry grid.Geometry
	W, H     int
	// VerticalOnly pins the item to column 0.
	VerticalOnly bool
}

// ResolveDrop returns the cell under the pointer, clamped so the item stays
// inside the grid.
func ResolveDrop(in DropInput) Result {
	geo := in.Geometry
	local := grid.ToLocal(in.Box, in.Client, geo.Scroll, geo.EdgePadding)
	cx, cy := grid.PixelToCell(local.X, local.Y, geo.Unit)

	res := Result{
		CellX:   clamp(cx, in.W, geo.Columns),
		CellY:   clamp(cy, in.H, geo.Rows),
		RenderX: local.X,
		RenderY: local.Y,
	}
	if in.VerticalOnly {
		res.CellX = 0
		res.RenderX = 0
	}
	return res
}

// RepositionInput describes a placed item being moved.
type RepositionInput struct {
	Geometry grid.Geometry
	// X and Y are the item's cell before the drag started.
	X, Y int
	// Offset is the pointer displacement since the drag started.
	Offset       grid.Point
	W, H         int
	VerticalOnly bool
}

// ResolveReposition applies the pointer displacement to the item's pre-drag
// pixel position and returns the cell it now covers, clamped to the grid.
func ResolveReposition(in RepositionInput) Result {
	geo := in.Geometry
	ox, oy := grid.CellToPixel(in.X, in.Y, geo.Unit)
	px := ox + in.Offset.X
	py := oy + in.Offset.Y
	cx, cy := grid.PixelToCell(px, py, geo.Unit)

	res := Result{
		CellX:   clamp(cx, in.W, geo.Columns),
		CellY:   clamp(cy, in.H, geo.Rows),
		RenderX: px,
		RenderY: py,
	}
	if in.VerticalOnly {
		res.CellX = 0
		res.RenderX = 0
	}
	return res
}
