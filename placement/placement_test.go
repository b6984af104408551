package placement

import (
	"reflect"
	"testing"

	"grid-canvas/grid"
)

func testGeometry() grid.Geometry {
	return grid.Geometry{
		PixelWidth:  640,
		PixelHeight: 402,
		EdgePadding: 18,
		Columns:     64,
		Rows:        40,
		Unit:        grid.Unit{Width: 10, Height: 10},
	}
}

func TestResolveDropAtOrigin(t *testing.T) {
	res := ResolveDrop(DropInput{
		Client:   grid.Point{X: 22, Y: 22},
		Geometry: testGeometry(),
		W:        4,
		H:        2,
	})
	if res.CellX != 0 || res.CellY != 0 {
		t.Errorf("Expected cell (0, 0), got (%d, %d)", res.CellX, res.CellY)
	}
	if res.RenderX != 4 || res.RenderY != 4 {
		t.Errorf("Expected render (4, 4), got (%v, %v)", res.RenderX, res.RenderY)
	}
}

func TestResolveDropAccountsForBoxAndScroll(t *testing.T) {
	geo := testGeometry()
	geo.Scroll = grid.Scroll{Top: 200}
	res := ResolveDrop(DropInput{
		Box:      grid.Box{Left: 300, Top: 100, Width: 678, Height: 400},
		Client:   grid.Point{X: 373, Y: 150},
		Geometry: geo,
		W:        2,
		H:        2,
	})
	// local = (373-300-18, 150-100+200-18) = (55, 232)
	if res.CellX != 5 || res.CellY != 23 {
		t.Errorf("Expected cell (5, 23), got (%d, %d)", res.CellX, res.CellY)
	}
}

func TestResolveDropClamps(t *testing.T) {
	geo := testGeometry()
	tests := map[string]struct {
		client       grid.Point
		w, h         int
		wantX, wantY int
	}{
		"left of grid":     {client: grid.Point{X: -500, Y: 40}, w: 4, h: 2, wantX: 0, wantY: 2},
		"right of grid":    {client: grid.Point{X: 5000, Y: 40}, w: 4, h: 2, wantX: 60, wantY: 2},
		"below grid":       {client: grid.Point{X: 40, Y: 9000}, w: 4, h: 3, wantX: 2, wantY: 37},
		"wider than grid":  {client: grid.Point{X: 300, Y: 40}, w: 80, h: 2, wantX: 0, wantY: 2},
		"taller than grid": {client: grid.Point{X: 40, Y: 300}, w: 2, h: 99, wantX: 2, wantY: 0},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			res := ResolveDrop(DropInput{Client: tt.client, Geometry: geo, W: tt.w, H: tt.h})
			if res.CellX != tt.wantX || res.CellY != tt.wantY {
				t.Errorf("Expected (%d, %d), got (%d, %d)", tt.wantX, tt.wantY, res.CellX, res.CellY)
			}
		})
	}
}

func TestResolveDropAlwaysInBounds(t *testing.T) {
	geo := testGeometry()
	for x := -200.0; x < 900; x += 37 {
		for y := -200.0; y < 700; y += 41 {
			for _, size := range [][2]int{{1, 1}, {4, 2}, {64, 40}, {10, 39}} {
				res := ResolveDrop(DropInput{Client: grid.Point{X: x, Y: y}, Geometry: geo, W: size[0], H: size[1]})
				if !res.Rect(size[0], size[1]).Within(geo.Columns, geo.Rows) {
					t.Fatalf("pointer (%v, %v) size %v resolved out of bounds: %+v", x, y, size, res)
				}
			}
		}
	}
}

func TestResolveDropVerticalOnly(t *testing.T) {
	res := ResolveDrop(DropInput{
		Client:       grid.Point{X: 250, Y: 80},
		Geometry:     testGeometry(),
		W:            4,
		H:            2,
		VerticalOnly: true,
	})
	if res.CellX != 0 || res.RenderX != 0 {
		t.Errorf("Expected column 0 and render x 0, got %d and %v", res.CellX, res.RenderX)
	}
	if res.CellY != 6 {
		t.Errorf("Expected row 6, got %d", res.CellY)
	}
}

func TestResolveReposition(t *testing.T) {
	res := ResolveReposition(RepositionInput{
		Geometry: testGeometry(),
		X:        10,
		Y:        5,
		Offset:   grid.Point{X: 23, Y: -7},
		W:        4,
		H:        2,
	})
	if res.CellX != 12 || res.CellY != 4 {
		t.Errorf("Expected cell (12, 4), got (%d, %d)", res.CellX, res.CellY)
	}
	if res.RenderX != 123 || res.RenderY != 43 {
		t.Errorf("Expected render (123, 43), got (%v, %v)", res.RenderX, res.RenderY)
	}
}

func TestResolveRepositionClamps(t *testing.T) {
	res := ResolveReposition(RepositionInput{
		Geometry: testGeometry(),
		X:        58,
		Y:        1,
		Offset:   grid.Point{X: 400, Y: -300},
		W:        4,
		H:        2,
	})
	if res.CellX != 60 || res.CellY != 0 {
		t.Errorf("Expected clamp to (60, 0), got (%d, %d)", res.CellX, res.CellY)
	}
	if res.RenderY >= 0 {
		t.Errorf("Expected render y to stay unclamped, got %v", res.RenderY)
	}
}

func TestFindConflicts(t *testing.T) {
	a := Node{ID: "A", X: 0, Y: 0, W: 4, H: 2}
	b := Node{ID: "B", X: 2, Y: 1, W: 4, H: 2}
	c := Node{ID: "C", X: 4, Y: 0, W: 4, H: 2}

	if !FindConflicts(b.Rect(), []Node{a}, b.ID) {
		t.Error("Expected B to conflict with A")
	}
	if !FindConflicts(a.Rect(), []Node{b}, a.ID) {
		t.Error("Expected A to conflict with B")
	}
	if FindConflicts(c.Rect(), []Node{a}, c.ID) {
		t.Error("Expected C not to conflict with A")
	}
	if FindConflicts(a.Rect(), []Node{a, c}, a.ID) {
		t.Error("Expected A to ignore itself")
	}

	got := Conflicting(grid.Rect{X: 3, Y: 0, W: 2, H: 2}, []Node{a, b, c}, "")
	want := []string{"A", "B", "C"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestFindConflictsOverlapScenario(t *testing.T) {
	a := Node{ID: "A", X: 0, Y: 0, W: 2, H: 2}
	b := Node{ID: "B", X: 1, Y: 1, W: 2, H: 2}
	c := Node{ID: "C", X: 5, Y: 5, W: 1, H: 1}

	tests := map[string]struct {
		item    Node
		sibling Node
		want    bool
	}{
		"B over A":    {item: b, sibling: a, want: true},
		"A over B":    {item: a, sibling: b, want: true},
		"C next to A": {item: c, sibling: a, want: false},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := FindConflicts(tt.item.Rect(), []Node{tt.sibling}, tt.item.ID); got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}

	got := Conflicting(b.Rect(), []Node{a, c}, b.ID)
	want := []string{"A"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestSnapResize(t *testing.T) {
	x, y := SnapResize(ResizeInput{
		Box:         grid.Box{Left: 100, Top: 50},
		Client:      grid.Point{X: 174, Y: 121},
		Unit:        grid.Unit{Width: 10, Height: 10},
		EdgePadding: 18,
	})
	// local = (56, 53)
	if x != 6 || y != 5 {
		t.Errorf("Expected (6, 5), got (%d, %d)", x, y)
	}
}

func TestApplyResize(t *testing.T) {
	base := Node{ID: "n", X: 10, Y: 10, W: 6, H: 4}
	lim := Limits{Columns: 64, Rows: 40, MinW: 2, MinH: 2}
	tests := map[string]struct {
		node   Node
		handle Handle
		x, y   int
		want   grid.Rect
	}{
		"bottom right grows": {node: base, handle: HandleBottomRight, x: 20, y: 18, want: grid.Rect{X: 10, Y: 10, W: 10, H: 8}},
		"top left grows":     {node: base, handle: HandleTopLeft, x: 8, y: 7, want: grid.Rect{X: 8, Y: 7, W: 8, H: 7}},
		"top right":          {node: base, handle: HandleTopRight, x: 12, y: 12, want: grid.Rect{X: 10, Y: 12, W: 2, H: 2}},
		"left side only":     {node: base, handle: HandleLeft, x: 4, y: 99, want: grid.Rect{X: 4, Y: 10, W: 12, H: 4}},
		"bottom side only":   {node: base, handle: HandleBottom, x: 0, y: 20, want: grid.Rect{X: 10, Y: 10, W: 6, H: 10}},
		"below minimum":      {node: base, handle: HandleBottomRight, x: 11, y: 13, want: grid.Rect{X: 10, Y: 10, W: 6, H: 3}},
		"clamped to columns": {node: base, handle: HandleRight, x: 90, y: 0, want: grid.Rect{X: 10, Y: 10, W: 54, H: 4}},
		"clamped to origin":  {node: base, handle: HandleTopLeft, x: -3, y: -3, want: grid.Rect{X: 0, Y: 0, W: 16, H: 14}},
		"vertical only": {
			node:   Node{ID: "v", X: 0, Y: 10, W: 6, H: 4, VerticalOnly: true},
			handle: HandleBottomRight, x: 30, y: 16,
			want: grid.Rect{X: 0, Y: 10, W: 6, H: 6},
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, _ := ApplyResize(tt.node, tt.handle, tt.x, tt.y, lim)
			if got.Rect() != tt.want {
				t.Errorf("Expected %+v, got %+v", tt.want, got.Rect())
			}
		})
	}
}

func TestApplyResizeUnchanged(t *testing.T) {
	n := Node{ID: "n", X: 2, Y: 2, W: 4, H: 4}
	if _, changed := ApplyResize(n, HandleBottomRight, 6, 6, Limits{Columns: 64}); changed {
		t.Error("Expected no change when the handle stays on its grid line")
	}
	if _, changed := ApplyResize(n, HandleNone, 20, 20, Limits{Columns: 64}); changed {
		t.Error("Expected no change for HandleNone")
	}
}

func TestParseHandle(t *testing.T) {
	for _, h := range Handles() {
		got, ok := ParseHandle(h.String())
		if !ok || got != h {
			t.Errorf("ParseHandle(%q) = %v, %v", h.String(), got, ok)
		}
	}
	if _, ok := ParseHandle("none"); ok {
		t.Error("Expected none not to parse")
	}
}

func TestHandleOn(t *testing.T) {
	box := grid.Box{Left: 10, Top: 20, Width: 40, Height: 10}
	tests := map[Handle]grid.Point{
		HandleTopLeft:     {X: 10, Y: 20},
		HandleTop:         {X: 30, Y: 20},
		HandleRight:       {X: 50, Y: 25},
		HandleBottomRight: {X: 50, Y: 30},
		HandleBottomLeft:  {X: 10, Y: 30},
		HandleLeft:        {X: 10, Y: 25},
	}
	for h, want := range tests {
		if got := h.On(box); got != want {
			t.Errorf("%s: Expected %v, got %v", h, want, got)
		}
	}
}
