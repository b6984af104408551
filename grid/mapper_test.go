package grid

import (
	"math"
	"testing"
)

func TestCellToPixel(t *testing.T) {
	u := Unit{Width: 12.5, Height: 8}
	px, py := CellToPixel(4, 3, u)
	if px != 50 || py != 24 {
		t.Errorf("Expected (50, 24), got (%v, %v)", px, py)
	}
}

func TestPixelToNearestCell(t *testing.T) {
	u := Unit{Width: 10, Height: 10}
	tests := map[string]struct {
		px, py       float64
		wantX, wantY int
	}{
		"exact":        {px: 30, py: 40, wantX: 3, wantY: 4},
		"round down":   {px: 34.9, py: 44, wantX: 3, wantY: 4},
		"round up":     {px: 35.1, py: 46, wantX: 4, wantY: 5},
		"negative":     {px: -12, py: -4, wantX: -1, wantY: 0},
		"origin":       {px: 0, py: 0, wantX: 0, wantY: 0},
		"half rounds+": {px: 25, py: 15, wantX: 3, wantY: 2},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			x, y := PixelToNearestCell(tt.px, tt.py, u)
			if x != tt.wantX || y != tt.wantY {
				t.Errorf("Expected (%d, %d), got (%d, %d)", tt.wantX, tt.wantY, x, y)
			}
		})
	}
}

func TestPixelToCellFloors(t *testing.T) {
	u := Unit{Width: 10, Height: 10}
	x, y := PixelToCell(19.99, -0.5, u)
	if x != 1 || y != -1 {
		t.Errorf("Expected (1, -1), got (%d, %d)", x, y)
	}
}

func TestInvalidUnitMapsToZero(t *testing.T) {
	x, y := PixelToCell(100, 100, Unit{})
	if x != 0 || y != 0 {
		t.Errorf("Expected (0, 0) for zero unit, got (%d, %d)", x, y)
	}
	x, y = PixelToNearestCell(math.Inf(1), 5, Unit{Width: 10, Height: 10})
	if x != 0 || y != 1 {
		t.Errorf("Expected (0, 1), got (%d, %d)", x, y)
	}
}

// Snapping a pixel back onto the grid never moves it by more than half a unit.
func TestNearestCellRoundTrip(t *testing.T) {
	units := []Unit{{Width: 10, Height: 10}, {Width: 9.8125, Height: 8}, {Width: 2.53, Height: 13.7}}
	for _, u := range units {
		for px := 0.0; px < 300; px += 1.37 {
			py := px * 0.61
			cx, cy := PixelToNearestCell(px, py, u)
			bx, by := CellToPixel(cx, cy, u)
			if math.Abs(bx-px) > u.Width/2+1e-9 || math.Abs(by-py) > u.Height/2+1e-9 {
				t.Fatalf("unit %+v: (%v, %v) snapped to (%v, %v)", u, px, py, bx, by)
			}
		}
	}
}

func TestToLocal(t *testing.T) {
	box := Box{Left: 100, Top: 50, Width: 600, Height: 400}
	got := ToLocal(box, Point{X: 140, Y: 90}, Scroll{Left: 5, Top: 30}, 18)
	want := Point{X: 27, Y: 52}
	if got != want {
		t.Errorf("Expected %+v, got %+v", want, got)
	}
}

func TestRectOverlaps(t *testing.T) {
	tests := map[string]struct {
		a, b Rect
		want bool
	}{
		"same":          {a: Rect{0, 0, 4, 4}, b: Rect{0, 0, 4, 4}, want: true},
		"partial":       {a: Rect{0, 0, 4, 2}, b: Rect{2, 1, 4, 2}, want: true},
		"touching edge": {a: Rect{0, 0, 4, 2}, b: Rect{4, 0, 4, 2}, want: false},
		"below":         {a: Rect{0, 0, 4, 2}, b: Rect{0, 2, 4, 2}, want: false},
		"contained":     {a: Rect{0, 0, 10, 10}, b: Rect{3, 3, 1, 1}, want: true},
		"empty":         {a: Rect{0, 0, 0, 4}, b: Rect{0, 0, 4, 4}, want: false},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := tt.a.Overlaps(tt.b); got != tt.want {
				t.Errorf("a.Overlaps(b) = %v, want %v", got, tt.want)
			}
			if got := tt.b.Overlaps(tt.a); got != tt.want {
				t.Errorf("b.Overlaps(a) = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBoxContains(t *testing.T) {
	b := Box{Left: 10, Top: 10, Width: 20, Height: 20}
	if !b.Contains(Point{X: 10, Y: 29.9}) {
		t.Error("Expected top-left inclusive point to be inside")
	}
	if b.Contains(Point{X: 30, Y: 15}) {
		t.Error("Expected right edge to be outside")
	}
}
