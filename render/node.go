package render

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"

	"grid-canvas/canvas"
	"grid-canvas/grid"
	"grid-canvas/placement"
)

const (
	// HandleSize is the side of a resize handle square in client pixels.
	HandleSize   = 6.0
	borderOffset = 2.0
)

// NodeState is how a node should look this frame.
type NodeState struct {
	Hovered bool
	// Resizing is the handle being dragged, or HandleNone.
	Resizing placement.Handle
}

// Node paints a node placed on c: body, title, hover border and, while the
// node is hovered or resized, its resize handles.
func Node(screen *ebiten.Image, v Viewport, c *canvas.Canvas, n placement.Node, st NodeState, face font.Face, p Palette) {
	box := c.NodeBox(n)
	x, y, w, h := v.Box(box)

	fill := p.Widget
	if n.IsCanvas() {
		fill = p.NestedCanvas
	}
	vector.DrawFilledRect(screen, x, y, w, h, fill, false)

	title := n.Title
	if title == "" {
		title = n.ID
	}
	if !n.IsCanvas() || h > 18 {
		DrawTextLines(screen, face, fmt.Sprintf("%s (%d,%d)", title, n.X, n.Y), int(x)+4, int(y)+2, p.Title)
	}

	active := st.Hovered || st.Resizing != placement.HandleNone
	if !active {
		return
	}
	off := v.Len(borderOffset)
	vector.StrokeRect(screen, x-off, y-off, w+2*off, h+2*off, 1, p.Hover, false)
	drawHandles(screen, v, box, n.VerticalOnly, st.Resizing, p)
}

func drawHandles(screen *ebiten.Image, v Viewport, box grid.Box, verticalOnly bool, resizing placement.Handle, p Palette) {
	size := v.Len(HandleSize)
	for _, hd := range placement.Handles() {
		if verticalOnly && hd != placement.HandleTop && hd != placement.HandleBottom {
			continue
		}
		sx, sy := v.ClientToScreen(hd.On(box))
		clr := p.Handle
		if hd == resizing {
			clr = p.Hover
		}
		vector.DrawFilledRect(screen, float32(sx)-size/2, float32(sy)-size/2, size, size, clr, false)
		vector.StrokeRect(screen, float32(sx)-size/2, float32(sy)-size/2, size, size, 1, p.Hover, false)
	}
}
