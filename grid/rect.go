package grid

// Rect is a rectangle measured in grid cells.
// X and Y are the top-left cell; W and H are the span in cells.
type Rect struct {
	X, Y int
	W, H int
}

// Right returns the column just past the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the row just past the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// IsEmpty reports whether the rectangle covers no cells.
func (r Rect) IsEmpty() bool {
	return r.W <= 0 || r.H <= 0
}

// Overlaps reports whether r and other share at least one cell.
// Rectangles that only touch along an edge do not overlap.
func (r Rect) Overlaps(other Rect) bool {
	return r.X < other.Right() && r.Right() > other.X &&
		r.Y < other.Bottom() && r.Bottom() > other.Y
}

// Within reports whether r lies entirely inside a grid of the given size.
func (r Rect) Within(columns, rows int) bool {
	return r.X >= 0 && r.Y >= 0 && r.Right() <= columns && r.Bottom() <= rows
}

// Point is a position in pixels.
type Point struct {
	X, Y float64
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Box is a pixel rectangle in client coordinates, such as the measured
// bounding box of a canvas element.
type Box struct {
	Left, Top     float64
	Width, Height float64
}

// Right returns the x coordinate of the right edge.
func (b Box) Right() float64 {
	return b.Left + b.Width
}

// Bottom returns the y coordinate of the bottom edge.
func (b Box) Bottom() float64 {
	return b.Top + b.Height
}

// Contains reports whether p falls inside the box. The right and bottom
// edges are outside.
func (b Box) Contains(p Point) bool {
	return p.X >= b.Left && p.X < b.Right() && p.Y >= b.Top && p.Y < b.Bottom()
}

// Scroll is the scroll offset of a canvas container.
type Scroll struct {
	Left, Top float64
}
