// Package render paints a canvas board with ebiten: canvas frames, the dot
// grid, placed nodes, drag shadows and dashed outlines.
package render

import (
	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/font"

	"grid-canvas/canvas"
	"grid-canvas/placement"
)

// Scene is what the painter reads besides the board itself.
type Scene interface {
	Children(parentID string) []placement.Node
	ShowDots() bool
}

// Board paints every mounted canvas of b, parents first, then the drag
// previews on top. state reports how each node should look.
func Board(screen *ebiten.Image, v Viewport, b *canvas.Board, scene Scene, state func(placement.Node) NodeState, face font.Face, p Palette) {
	canvases := b.Canvases()
	root := b.Root()
	if root.Mounted() {
		Frame(screen, v, root, p.Canvas, p.CanvasBorder)
	}

	for _, c := range canvases {
		if !c.Mounted() {
			continue
		}
		if scene.ShowDots() {
			Dots(screen, v, c, p.Dot)
		}
		for _, n := range scene.Children(c.ID()) {
			if b.Dragging(n.ID) {
				continue
			}
			Node(screen, v, c, n, state(n), face, p)
		}
	}

	for _, c := range canvases {
		if c.Mounted() {
			Previews(screen, v, c, p)
		}
	}
}
