package main

import (
	"image/color"

	"grid-canvas/render"
)

const (
	// --- View ---
	ZoomLimitMin = 0.25
	ZoomLimitMax = 4.0

	// --- Text ---
	FontSize = 13.0

	// --- Files ---
	DefaultLayoutFile = "layout.yaml"
	ScreenshotFile    = "screenshot.png"
)

var (
	// --- Colors ---
	ColorBackground = color.RGBA{30, 30, 35, 255}

	Theme = render.Palette{
		Canvas:         color.RGBA{24, 24, 28, 255},
		CanvasBorder:   color.RGBA{70, 70, 80, 255},
		Dot:            color.RGBA{110, 110, 125, 255},
		Widget:         color.RGBA{100, 149, 237, 255},
		NestedCanvas:   color.RGBA{45, 45, 55, 255},
		Hover:          color.RGBA{0, 120, 255, 255},
		Handle:         color.RGBA{255, 255, 255, 200},
		Title:          color.RGBA{235, 235, 235, 255},
		Shadow:         color.RGBA{126, 87, 194, 140},
		ShadowConflict: color.RGBA{220, 50, 50, 140},
		Outline:        color.RGBA{180, 160, 255, 255},
	}
)
