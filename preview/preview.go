// Package preview holds the transient drag feedback of one canvas: a shadow
// that follows the pointer and a dotted outline on the snapped cells.
package preview

import (
	"math"
	"sort"

	"grid-canvas/grid"
	"grid-canvas/placement"
)

// Shadow is the live preview of a dragged item in grid-local pixels.
type Shadow struct {
	ID       string
	RenderX  float64
	RenderY  float64
	W, H     float64
	Conflict bool
}

// Outline marks the cells a dragged item would occupy if dropped now.
type Outline struct {
	ID           string
	CellX, CellY int
	W, H         int
}

// Manager stores the shadows and outlines of one canvas keyed by item id.
type Manager struct {
	shadows  map[string]Shadow
	outlines map[string]Outline
	revision uint64
}

func NewManager() *Manager {
	return &Manager{
		shadows:  make(map[string]Shadow),
		outlines: make(map[string]Outline),
	}
}

// PutShadow inserts or replaces the shadow for s.ID and reports whether the
// stored value changed.
func (m *Manager) PutShadow(s Shadow) bool {
	if old, ok := m.shadows[s.ID]; ok && old == s {
		return false
	}
	m.shadows[s.ID] = s
	m.revision++
	return true
}

// PutOutline inserts or replaces the outline for o.ID and reports whether
// the stored value changed.
func (m *Manager) PutOutline(o Outline) bool {
	if old, ok := m.outlines[o.ID]; ok && old == o {
		return false
	}
	m.outlines[o.ID] = o
	m.revision++
	return true
}

// RemoveShadow deletes the shadow for id if there is one.
func (m *Manager) RemoveShadow(id string) {
	if _, ok := m.shadows[id]; ok {
		delete(m.shadows, id)
		m.revision++
	}
}

// RemoveOutline deletes the outline for id if there is one.
func (m *Manager) RemoveOutline(id string) {
	if _, ok := m.outlines[id]; ok {
		delete(m.outlines, id)
		m.revision++
	}
}

// Clear removes both entries for id.
func (m *Manager) Clear(id string) {
	m.RemoveShadow(id)
	m.RemoveOutline(id)
}

// Has reports whether id has a shadow or an outline.
func (m *Manager) Has(id string) bool {
	_, s := m.shadows[id]
	_, o := m.outlines[id]
	return s || o
}

func (m *Manager) Shadow(id string) (Shadow, bool) {
	s, ok := m.shadows[id]
	return s, ok
}

func (m *Manager) Outline(id string) (Outline, bool) {
	o, ok := m.outlines[id]
	return o, ok
}

// Shadows returns every shadow sorted by id.
func (m *Manager) Shadows() []Shadow {
	out := make([]Shadow, 0, len(m.shadows))
	for _, s := range m.shadows {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Outlines returns every outline sorted by id.
func (m *Manager) Outlines() []Outline {
	out := make([]Outline, 0, len(m.outlines))
	for _, o := range m.outlines {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Len returns the number of ids with at least one entry.
func (m *Manager) Len() int {
	n := len(m.shadows)
	for id := range m.outlines {
		if _, ok := m.shadows[id]; !ok {
			n++
		}
	}
	return n
}

// Revision increases every time the stored entries change.
func (m *Manager) Revision() uint64 {
	return m.revision
}

// BuildShadow sizes a shadow for an item of w x h cells at res. The shadow
// leads the pointer freely but never leaves the drawing surface.
func BuildShadow(id string, res placement.Result, w, h int, geo grid.Geometry, conflict bool) Shadow {
	pw := float64(w) * geo.Unit.Width
	ph := float64(h) * geo.Unit.Height
	return Shadow{
		ID:       id,
		RenderX:  keepInside(res.RenderX, pw, geo.PixelWidth),
		RenderY:  keepInside(res.RenderY, ph, geo.PixelHeight),
		W:        pw,
		H:        ph,
		Conflict: conflict,
	}
}

// BuildOutline returns the outline of an item of w x h cells at res.
func BuildOutline(id string, res placement.Result, w, h int) Outline {
	return Outline{ID: id, CellX: res.CellX, CellY: res.CellY, W: w, H: h}
}

func keepInside(v, size, limit float64) float64 {
	return math.Min(math.Max(v, 0), math.Max(0, limit-size))
}
