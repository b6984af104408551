package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"grid-canvas/canvas"
	"grid-canvas/grid"
)

// DotSize is the side of one grid dot in client pixels.
const DotSize = 2.0

// Dots draws one dot at every grid intersection of c that falls inside its
// box. Nothing is drawn while c has no geometry.
func Dots(screen *ebiten.Image, v Viewport, c *canvas.Canvas, clr color.Color) {
	geo, ok := c.Geometry()
	if !ok {
		return
	}
	box := c.Box()
	origin := c.Origin()
	size := v.Len(DotSize)

	for i := 0; i <= geo.Rows; i++ {
		y := origin.Y + float64(i)*geo.Unit.Height + 1
		if y < box.Top || y >= box.Bottom() {
			continue
		}
		for j := 0; j <= geo.Columns; j++ {
			x := origin.X + float64(j)*geo.Unit.Width + 1
			if x < box.Left || x >= box.Right() {
				continue
			}
			sx, sy := v.ClientToScreen(grid.Point{X: x, Y: y})
			vector.DrawFilledRect(screen, float32(sx)-size/2, float32(sy)-size/2, size, size, clr, false)
		}
	}
}

// Frame fills the box of c and strokes its border.
func Frame(screen *ebiten.Image, v Viewport, c *canvas.Canvas, fill, border color.Color) {
	x, y, w, h := v.Box(c.Box())
	vector.DrawFilledRect(screen, x, y, w, h, fill, false)
	vector.StrokeRect(screen, x, y, w, h, 1, border, false)
}
