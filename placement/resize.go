package placement

import "grid-canvas/grid"

// Handle identifies which resize handle of a node is being dragged.
type Handle int

const (
	HandleNone Handle = iota
	HandleTopLeft
	HandleTop
	HandleTopRight
	HandleRight
	HandleBottomRight
	HandleBottom
	HandleBottomLeft
	HandleLeft
)

var handleNames = map[Handle]string{
	HandleNone:        "none",
	HandleTopLeft:     "top-left",
	HandleTop:         "top",
	HandleTopRight:    "top-right",
	HandleRight:       "right",
	HandleBottomRight: "bottom-right",
	HandleBottom:      "bottom",
	HandleBottomLeft:  "bottom-left",
	HandleLeft:        "left",
}

func (h Handle) String() string {
	if s, ok := handleNames[h]; ok {
		return s
	}
	return "unknown"
}

// ParseHandle returns the handle with the given name.
func ParseHandle(s string) (Handle, bool) {
	for h, name := range handleNames {
		if name == s && h != HandleNone {
			return h, true
		}
	}
	return HandleNone, false
}

// Handles lists every draggable handle, corners first.
func Handles() []Handle {
	return []Handle{
		HandleTopLeft, HandleTopRight, HandleBottomRight, HandleBottomLeft,
		HandleTop, HandleRight, HandleBottom, HandleLeft,
	}
}

func (h Handle) moves() (left, top, right, bottom bool) {
	switch h {
	case HandleTopLeft:
		return true, true, false, false
	case HandleTop:
		return false, true, false, false
	case HandleTopRight:
		return false, true, true, false
	case HandleRight:
		return false, false, true, false
	case HandleBottomRight:
		return false, false, true, true
	case HandleBottom:
		return false, false, false, true
	case HandleBottomLeft:
		return true, false, false, true
	case HandleLeft:
		return true, false, false, false
	}
	return false, false, false, false
}

// On returns the position of the handle on box.
func (h Handle) On(box grid.Box) grid.Point {
	left, top, right, bottom := h.moves()
	p := grid.Point{X: box.Left + box.Width/2, Y: box.Top + box.Height/2}
	switch {
	case left:
		p.X = box.Left
	case right:
		p.X = box.Right()
	}
	switch {
	case top:
		p.Y = box.Top
	case bottom:
		p.Y = box.Bottom()
	}
	return p
}

// ResizeInput describes the pointer while a resize handle is dragged.
type ResizeInput struct {
	Box         grid.Box
	Client      grid.Point
	Scroll      grid.Scroll
	Unit        grid.Unit
	EdgePadding float64
}

// SnapResize returns the grid line nearest the pointer on each axis. The
// caller enforces size limits.
func SnapResize(in ResizeInput) (int, int) {
	local := grid.ToLocal(in.Box, in.Client, in.Scroll, in.EdgePadding)
	return grid.PixelToNearestCell(local.X, local.Y, in.Unit)
}

// Limits bounds the result of ApplyResize. A zero Rows disables the
// vertical bound.
type Limits struct {
	Columns, Rows int
	MinW, MinH    int
}

// ApplyResize moves the edges named by handle to the grid lines (x, y) and
// reports whether the node changed. A change on one axis is dropped when it
// would shrink the node below the minimum size on that axis.
func ApplyResize(n Node, h Handle, x, y int, lim Limits) (Node, bool) {
	minW := max(lim.MinW, 1)
	minH := max(lim.MinH, 1)
	if lim.Columns > 0 {
		x = min(max(x, 0), lim.Columns)
	}
	y = max(y, 0)
	if lim.Rows > 0 {
		y = min(y, lim.Rows)
	}

	left, top, right, bottom := h.moves()
	if n.VerticalOnly {
		left, right = false, false
	}

	out := n
	switch {
	case left:
		if w := n.X + n.W - x; w >= minW {
			out.X, out.W = x, w
		}
	case right:
		if w := x - n.X; w >= minW {
			out.W = w
		}
	}
	switch {
	case top:
		if hh := n.Y + n.H - y; hh >= minH {
			out.Y, out.H = y, hh
		}
	case bottom:
		if hh := y - n.Y; hh >= minH {
			out.H = hh
		}
	}
	return out, out != n
}
