package grid

import "math"

// DefaultColumns is the column count of a canvas when none is configured.
const DefaultColumns = 64

// Calibration holds the environment-specific constants used to derive a
// canvas geometry from its measured box.
type Calibration struct {
	Columns     int
	EdgePadding float64
	BorderWidth float64
	// SafeRows are appended below the measured height so there is always
	// somewhere to drop.
	SafeRows int
}

// Geometry is the derived pixel and cell size of one canvas.
type Geometry struct {
	PixelWidth  float64
	PixelHeight float64
	EdgePadding float64
	Columns     int
	Rows        int
	Scroll      Scroll
	Unit        Unit
}

// Ready reports whether the geometry can be used to resolve placements.
func (g Geometry) Ready() bool {
	return g.Columns > 0 && g.Unit.Valid()
}

// Tracker keeps the geometry of one canvas in sync with its container.
type Tracker struct {
	cal      Calibration
	geo      Geometry
	measured bool
}

// NewTracker returns a tracker for the given calibration. A non-positive
// column count falls back to DefaultColumns.
func NewTracker(cal Calibration) *Tracker {
	if cal.Columns <= 0 {
		cal.Columns = DefaultColumns
	}
	return &Tracker{cal: cal}
}

// Calibration returns the constants the tracker was built with.
func (t *Tracker) Calibration() Calibration {
	return t.cal
}

// Measure recomputes the geometry from the container box, its scroll offset
// and the configured unit height, and returns the result.
//
// Rows follow the container height but never drop below the previous count
// while the container is scrolled down.
func (t *Tracker) Measure(box Box, scroll Scroll, unitHeight float64) Geometry {
	cal := t.cal
	columns := float64(cal.Columns)

	containerWidth := box.Width + scroll.Left
	unitWidth := (containerWidth-cal.EdgePadding*2-(columns+1)*cal.BorderWidth)/columns + cal.BorderWidth
	if unitWidth < 0 {
		unitWidth = 0
	}

	rows := 0
	if unitHeight > 0 {
		containerHeight := box.Height + scroll.Top
		rows = int(math.Ceil((containerHeight-cal.EdgePadding)/unitHeight)) + cal.SafeRows
		if rows < 0 {
			rows = 0
		}
		if t.measured && scroll.Top > 0 && rows < t.geo.Rows {
			rows = t.geo.Rows
		}
	}

	t.geo = Geometry{
		PixelWidth:  math.Max(0, containerWidth-cal.EdgePadding*2),
		PixelHeight: float64(rows)*math.Max(0, unitHeight) + cal.BorderWidth,
		EdgePadding: cal.EdgePadding,
		Columns:     cal.Columns,
		Rows:        rows,
		Scroll:      scroll,
		Unit:        Unit{Width: unitWidth, Height: unitHeight},
	}
	t.measured = true
	return t.geo
}

// Geometry returns the last measured geometry. The flag is false before the
// first Measure and after Reset, and when the geometry is not Ready.
func (t *Tracker) Geometry() (Geometry, bool) {
	return t.geo, t.measured && t.geo.Ready()
}

// Reset forgets the measured geometry, as when a canvas is unmounted.
func (t *Tracker) Reset() {
	t.geo = Geometry{}
	t.measured = false
}
