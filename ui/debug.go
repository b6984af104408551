package ui

import (
	"bytes"
	"image/color"
	"strings"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

// DebugPanel shows the most recent log lines and the last error in the
// bottom panel. It is an io.Writer so a logger can write to it directly.
type DebugPanel struct {
	MaxLines int

	mu      sync.Mutex
	lines   []string
	partial []byte
	err     string
}

func NewDebugPanel(maxLines int) *DebugPanel {
	if maxLines <= 0 {
		maxLines = 6
	}
	return &DebugPanel{MaxLines: maxLines}
}

// Write appends complete lines of p to the panel.
func (d *DebugPanel) Write(p []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.partial = append(d.partial, p...)
	for {
		i := bytes.IndexByte(d.partial, '\n')
		if i < 0 {
			break
		}
		d.push(string(d.partial[:i]))
		d.partial = d.partial[i+1:]
	}
	return len(p), nil
}

func (d *DebugPanel) push(line string) {
	line = strings.TrimRight(line, "\r")
	if line == "" {
		return
	}
	d.lines = append(d.lines, line)
	if over := len(d.lines) - d.MaxLines; over > 0 {
		d.lines = append([]string(nil), d.lines[over:]...)
	}
}

// Lines returns the lines currently shown.
func (d *DebugPanel) Lines() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.lines...)
}

func (d *DebugPanel) SetError(msg string) {
	d.mu.Lock()
	d.err = msg
	d.mu.Unlock()
}

func (d *DebugPanel) LastError() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.err
}

func (d *DebugPanel) Clear() {
	d.mu.Lock()
	d.lines = nil
	d.err = ""
	d.mu.Unlock()
}

// Draw fills the panel at x, y and prints the error, if any, above the log
// lines.
func (d *DebugPanel) Draw(screen *ebiten.Image, x, y, w, h float32, face font.Face, drawText TextFunc) {
	if d == nil {
		return
	}
	vector.DrawFilledRect(screen, x, y, w, h, color.RGBA{40, 40, 40, 220}, false)
	if face == nil || drawText == nil {
		return
	}
	ty := int(y) + 6
	if e := d.LastError(); e != "" {
		drawText(screen, face, e, int(x)+8, ty, color.RGBA{255, 200, 50, 255})
		ty += 18
	}
	drawText(screen, face, strings.Join(d.Lines(), "\n"), int(x)+8, ty, color.RGBA{200, 200, 200, 255})
}
