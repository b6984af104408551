package preview

import "math"

// Dash describes a stroke pattern as on and off lengths in pixels.
type Dash struct {
	On, Off float64
}

// OutlineDash is the pattern used for outlines.
var OutlineDash = Dash{On: 4, Off: 2}

// Segment is one visible piece of a dashed line.
type Segment struct {
	X0, Y0, X1, Y1 float64
}

// Line splits the line from (x0, y0) to (x1, y1) into visible dash segments.
// The last dash is cut at the end point.
func (d Dash) Line(x0, y0, x1, y1 float64) []Segment {
	length := math.Hypot(x1-x0, y1-y0)
	if length == 0 || d.On <= 0 {
		return nil
	}
	if d.Off <= 0 {
		return []Segment{{x0, y0, x1, y1}}
	}
	ux, uy := (x1-x0)/length, (y1-y0)/length

	var out []Segment
	for pos := 0.0; pos < length; pos += d.On + d.Off {
		end := math.Min(pos+d.On, length)
		out = append(out, Segment{
			X0: x0 + ux*pos, Y0: y0 + uy*pos,
			X1: x0 + ux*end, Y1: y0 + uy*end,
		})
	}
	return out
}

// Rect returns the dash segments of a rectangle's border, clockwise from the
// top-left corner.
func (d Dash) Rect(x, y, w, h float64) []Segment {
	var out []Segment
	out = append(out, d.Line(x, y, x+w, y)...)
	out = append(out, d.Line(x+w, y, x+w, y+h)...)
	out = append(out, d.Line(x+w, y+h, x, y+h)...)
	out = append(out, d.Line(x, y+h, x, y)...)
	return out
}
