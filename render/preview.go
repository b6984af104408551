package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"grid-canvas/canvas"
	"grid-canvas/grid"
	"grid-canvas/preview"
)

// Palette holds the colors used to paint a board.
type Palette struct {
	Canvas         color.RGBA
	CanvasBorder   color.RGBA
	Dot            color.RGBA
	Widget         color.RGBA
	NestedCanvas   color.RGBA
	Hover          color.RGBA
	Handle         color.RGBA
	Title          color.RGBA
	Shadow         color.RGBA
	ShadowConflict color.RGBA
	Outline        color.RGBA
}

// Previews paints the shadows and outlines held by c.
func Previews(screen *ebiten.Image, v Viewport, c *canvas.Canvas, p Palette) {
	if _, ok := c.Geometry(); !ok {
		return
	}
	origin := c.Origin()

	for _, s := range c.Preview().Shadows() {
		clr := p.Shadow
		if s.Conflict {
			clr = p.ShadowConflict
		}
		x, y, w, h := v.Box(grid.Box{Left: origin.X + s.RenderX, Top: origin.Y + s.RenderY, Width: s.W, Height: s.H})
		vector.DrawFilledRect(screen, x, y, w, h, clr, false)
	}

	for _, o := range c.Preview().Outlines() {
		box := c.CellBox(grid.Rect{X: o.CellX, Y: o.CellY, W: o.W, H: o.H})
		DashedRect(screen, v, box, p.Outline)
	}
}

// DashedRect strokes box with the outline dash pattern. Dash lengths are in
// screen pixels so the pattern looks the same at every scale.
func DashedRect(screen *ebiten.Image, v Viewport, box grid.Box, clr color.Color) {
	x, y, w, h := v.Box(box)
	for _, s := range preview.OutlineDash.Rect(float64(x), float64(y), float64(w), float64(h)) {
		vector.StrokeLine(screen, float32(s.X0), float32(s.Y0), float32(s.X1), float32(s.Y1), 1, clr, false)
	}
}
