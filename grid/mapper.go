package grid

import "math"

// Unit is the pixel size of one grid cell.
type Unit struct {
	Width, Height float64
}

// Valid reports whether both dimensions are positive.
func (u Unit) Valid() bool {
	return u.Width > 0 && u.Height > 0
}

// CellToPixel returns the pixel offset of the top-left corner of a cell,
// relative to the grid origin.
func CellToPixel(cellX, cellY int, u Unit) (float64, float64) {
	return float64(cellX) * u.Width, float64(cellY) * u.Height
}

// PixelToNearestCell snaps a grid-local pixel position to the nearest grid
// line on each axis. Used for resize handles.
func PixelToNearestCell(px, py float64, u Unit) (int, int) {
	return divide(px, u.Width, math.Round), divide(py, u.Height, math.Round)
}

// PixelToCell returns the cell containing a grid-local pixel position.
func PixelToCell(px, py float64, u Unit) (int, int) {
	return divide(px, u.Width, math.Floor), divide(py, u.Height, math.Floor)
}

// ToLocal converts a client-space point into grid-local pixels for a canvas
// whose element occupies box, is scrolled by scroll and insets its grid by
// edge on every side.
func ToLocal(box Box, client Point, scroll Scroll, edge float64) Point {
	return Point{
		X: client.X - box.Left + scroll.Left - edge,
		Y: client.Y - box.Top + scroll.Top - edge,
	}
}

func divide(v, unit float64, snap func(float64) float64) int {
	if unit <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return int(snap(v / unit))
}
