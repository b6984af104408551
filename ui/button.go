package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

var (
	buttonColor       = color.RGBA{60, 60, 70, 200}
	buttonActiveColor = color.RGBA{110, 80, 170, 230}
)

type Button struct {
	Label   string
	X, Y    float32
	W, H    float32
	OnClick func()
	// Active reports whether the button shows as switched on.
	Active func() bool
}

func (b *Button) IsMouseOver(mx, my int) bool {
	return float32(mx) >= b.X && float32(mx) <= b.X+b.W &&
		float32(my) >= b.Y && float32(my) <= b.Y+b.H
}

// Draw renders the button and its label.
func (b *Button) Draw(screen *ebiten.Image, face font.Face, drawText TextFunc) {
	clr := buttonColor
	if b.Active != nil && b.Active() {
		clr = buttonActiveColor
	}
	vector.DrawFilledRect(screen, b.X, b.Y, b.W, b.H, clr, false)
	if face == nil || drawText == nil {
		return
	}
	drawText(screen, face, b.Label, int(b.X)+8, int(b.Y)+6, color.White)
}
