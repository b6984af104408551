package render

import "grid-canvas/grid"

// Viewport maps client coordinates, in which canvases are laid out, to
// screen pixels. Client (0, 0) is drawn at (OriginX, OriginY) and every
// client unit covers Scale screen pixels.
type Viewport struct {
	OriginX, OriginY float64
	Scale            float64
}

func (v Viewport) scale() float64 {
	if v.Scale <= 0 {
		return 1
	}
	return v.Scale
}

// ClientToScreen converts a client point to screen pixels.
func (v Viewport) ClientToScreen(p grid.Point) (float64, float64) {
	s := v.scale()
	return v.OriginX + p.X*s, v.OriginY + p.Y*s
}

// ScreenToClient converts screen pixels to a client point.
func (v Viewport) ScreenToClient(sx, sy float64) grid.Point {
	s := v.scale()
	return grid.Point{X: (sx - v.OriginX) / s, Y: (sy - v.OriginY) / s}
}

// Box converts a client box to screen x, y, width and height.
func (v Viewport) Box(b grid.Box) (x, y, w, h float32) {
	sx, sy := v.ClientToScreen(grid.Point{X: b.Left, Y: b.Top})
	s := v.scale()
	return float32(sx), float32(sy), float32(b.Width * s), float32(b.Height * s)
}

// Len converts a client length to screen pixels.
func (v Viewport) Len(l float64) float32 {
	return float32(l * v.scale())
}
