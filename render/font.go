package render

import (
	"image/color"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// LoadFace loads the TrueType font at path. An empty path uses Go Regular;
// any failure falls back to basicfont.Face7x13.
func LoadFace(path string, size float64, logger *log.Logger) font.Face {
	data := goregular.TTF
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			logger.Warn("font not readable, using Go Regular", "path", path, "err", err)
		} else {
			data = b
		}
	}
	f, err := opentype.Parse(data)
	if err != nil {
		logger.Warn("font parse failed, using basic font", "path", path, "err", err)
		return basicfont.Face7x13
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		logger.Warn("font face failed, using basic font", "err", err)
		return basicfont.Face7x13
	}
	return face
}

// DrawTextLines draws multiline text with its first line's top at (x, y).
func DrawTextLines(screen *ebiten.Image, face font.Face, s string, x, y int, clr color.Color) {
	if face == nil {
		face = basicfont.Face7x13
	}
	metrics := face.Metrics()
	ascent := metrics.Ascent.Ceil()
	lineHeight := ascent + metrics.Descent.Ceil()
	if lineHeight <= 0 {
		lineHeight = 16
		ascent = 12
	}
	for i, line := range strings.Split(s, "\n") {
		text.Draw(screen, line, face, x, y+ascent+i*lineHeight, clr)
	}
}
