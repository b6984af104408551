// Package ui draws the editor chrome around the canvas: the palette, the
// inspector, the debug panel and the toolbar buttons.
package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"

	"grid-canvas/store"
)

// TextFunc draws multiline text with its top-left corner at x, y.
type TextFunc func(screen *ebiten.Image, face font.Face, s string, x, y int, clr color.Color)

// Host is what the UI needs from the window shell.
type Host interface {
	ScreenSize() (int, int)
	PanelOpen(p store.Panel) bool
	TogglePanel(p store.Panel)
	Zoom(factor float64)
	// Pick starts dragging a new node from the palette at screen point sx, sy.
	Pick(e Entry, sx, sy float64)
	// Inspect returns the text shown in the right panel.
	Inspect() string
}

// Rect is a screen rectangle.
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

const (
	buttonSize    = 28
	buttonMargin  = 8
	paletteRowH   = 30
	paletteMargin = 10
	zoomStep      = 1.1
)

var panelColor = color.RGBA{36, 36, 42, 240}

type UISystem struct {
	host     Host
	face     font.Face
	drawText TextFunc

	leftWidth, rightWidth, bottomHeight float64

	toolbar []*Button
	palette []*Button
	Debug   *DebugPanel
}

// NewUISystem builds the chrome. Panel sizes are in screen pixels.
func NewUISystem(host Host, face font.Face, drawText TextFunc, entries []Entry, leftWidth, bottomHeight float64, debug *DebugPanel) *UISystem {
	if debug == nil {
		debug = NewDebugPanel(0)
	}
	ui := &UISystem{
		host:         host,
		face:         face,
		drawText:     drawText,
		leftWidth:    leftWidth,
		rightWidth:   leftWidth,
		bottomHeight: bottomHeight,
		Debug:        debug,
	}
	ui.initButtons(entries)
	return ui
}

func (ui *UISystem) initButtons(entries []Entry) {
	panel := func(p store.Panel) func() bool {
		return func() bool { return ui.host.PanelOpen(p) }
	}
	toggle := func(p store.Panel) func() {
		return func() { ui.host.TogglePanel(p) }
	}
	ui.toolbar = []*Button{
		{Label: "+", W: buttonSize, H: buttonSize, OnClick: func() { ui.host.Zoom(zoomStep) }},
		{Label: "-", W: buttonSize, H: buttonSize, OnClick: func() { ui.host.Zoom(1 / zoomStep) }},
		{Label: "B", W: buttonSize, H: buttonSize, OnClick: toggle(store.PanelBottom), Active: panel(store.PanelBottom)},
		{Label: "R", W: buttonSize, H: buttonSize, OnClick: toggle(store.PanelRight), Active: panel(store.PanelRight)},
		{Label: "L", W: buttonSize, H: buttonSize, OnClick: toggle(store.PanelLeft), Active: panel(store.PanelLeft)},
	}

	ui.palette = make([]*Button, len(entries))
	for i, e := range entries {
		b := &Button{Label: e.String(), H: paletteRowH - 6}
		b.OnClick = func() {
			ui.host.Pick(e, float64(b.X+b.W/2), float64(b.Y+b.H/2))
		}
		ui.palette[i] = b
	}
}

// Regions returns the screen rectangles of the three side panels and of the
// canvas area between them. Closed panels have zero size.
func (ui *UISystem) Regions() (left, right, bottom, canvas Rect) {
	w, h := ui.host.ScreenSize()
	sw, sh := float64(w), float64(h)
	if ui.host.PanelOpen(store.PanelLeft) {
		left = Rect{X: 0, Y: 0, W: ui.leftWidth, H: sh}
	}
	if ui.host.PanelOpen(store.PanelRight) {
		right = Rect{X: sw - ui.rightWidth, Y: 0, W: ui.rightWidth, H: sh}
	}
	mid := sw - left.W - right.W
	if ui.host.PanelOpen(store.PanelBottom) {
		bottom = Rect{X: left.W, Y: sh - ui.bottomHeight, W: mid, H: ui.bottomHeight}
	}
	canvas = Rect{X: left.W, Y: 0, W: mid, H: sh - bottom.H}
	return left, right, bottom, canvas
}

func (ui *UISystem) updateButtonPositions() {
	left, _, _, canvas := ui.Regions()

	x := canvas.X + canvas.W - buttonMargin
	for _, b := range ui.toolbar {
		x -= buttonSize
		b.X, b.Y = float32(x), buttonMargin
		x -= buttonMargin
	}

	for i, b := range ui.palette {
		b.X = float32(paletteMargin)
		b.Y = float32(paletteMargin + 20 + i*paletteRowH)
		b.W = float32(left.W - 2*paletteMargin)
	}
}

func (ui *UISystem) visible() []*Button {
	out := append([]*Button(nil), ui.toolbar...)
	if ui.host.PanelOpen(store.PanelLeft) {
		out = append(out, ui.palette...)
	}
	return out
}

// IsMouseOver reports whether the screen point is over the chrome rather
// than the canvas area.
func (ui *UISystem) IsMouseOver(mx, my int) bool {
	ui.updateButtonPositions()
	for _, b := range ui.visible() {
		if b.IsMouseOver(mx, my) {
			return true
		}
	}
	_, _, _, canvas := ui.Regions()
	return !canvas.Contains(float64(mx), float64(my))
}

func (ui *UISystem) Update() {
	ui.updateButtonPositions()
	mx, my := ebiten.CursorPosition()

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		for _, b := range ui.visible() {
			if b.IsMouseOver(mx, my) {
				if b.OnClick != nil {
					b.OnClick()
				}
				break
			}
		}
	}
}

func (ui *UISystem) Draw(screen *ebiten.Image) {
	ui.updateButtonPositions()
	left, right, bottom, _ := ui.Regions()

	if left.W > 0 {
		vector.DrawFilledRect(screen, float32(left.X), float32(left.Y), float32(left.W), float32(left.H), panelColor, false)
		ui.drawText(screen, ui.face, "Palette", paletteMargin, paletteMargin-4, color.White)
		for _, b := range ui.palette {
			b.Draw(screen, ui.face, ui.drawText)
		}
	}
	if right.W > 0 {
		vector.DrawFilledRect(screen, float32(right.X), float32(right.Y), float32(right.W), float32(right.H), panelColor, false)
		ui.drawText(screen, ui.face, ui.host.Inspect(), int(right.X)+paletteMargin, paletteMargin, color.White)
	}
	if bottom.H > 0 {
		ui.Debug.Draw(screen, float32(bottom.X), float32(bottom.Y), float32(bottom.W), float32(bottom.H), ui.face, ui.drawText)
	}
	for _, b := range ui.toolbar {
		b.Draw(screen, ui.face, ui.drawText)
	}
}
