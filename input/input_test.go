package input

import (
	"testing"

	"grid-canvas/canvas"
	"grid-canvas/grid"
	"grid-canvas/placement"
	"grid-canvas/store"
)

type fakeHost struct {
	removed []string
	zoom    float64
}

func (f *fakeHost) ScreenToClient(sx, sy float64) grid.Point { return grid.Point{X: sx, Y: sy} }
func (f *fakeHost) IsMouseOver(mx, my int) bool { return false }
func (f *fakeHost) RequestScreenshot() {}
func (f *fakeHost) SaveLayout() error { return nil }
func (f *fakeHost) Remove(id string) { f.removed = append(f.removed, id) }
func (f *fakeHost) Zoom(factor float64) { f.zoom = factor }

func setup(t *testing.T) (*InputSystem, *store.Store, *canvas.Board) {
	t.Helper()
	s := store.New(placement.Node{ID: "root"}, store.Settings{UnitHeight: 10})
	s.AddOrUpdate(placement.Node{ID: "A", ParentID: "root", Kind: placement.KindWidget, W: 4, H: 2})
	b := canvas.NewBoard(s, canvas.Options{
		Calibration: grid.Calibration{Columns: 64, EdgePadding: 18, BorderWidth: 2},
		MinW:        1,
		MinH:        1,
	})
	b.Layout(grid.Box{Width: 678, Height: 500})
	return NewInputSystem(&fakeHost{}, b, 24, nil), s, b
}

func press(x, y float64) Frame {
	return Frame{Client: grid.Point{X: x, Y: y}, Pressed: true, JustPressed: true}
}

func hold(x, y float64) Frame {
	return Frame{Client: grid.Point{X: x, Y: y}, Pressed: true}
}

func release(x, y float64) Frame {
	return Frame{Client: grid.Point{X: x, Y: y}}
}

func TestDragMovesNode(t *testing.T) {
	is, s, b := setup(t)
	var commits []canvas.Commit
	is.OnCommit = func(cm canvas.Commit) { commits = append(commits, cm) }

	is.Step(press(30, 25))
	if _, ok := is.Dragging(); !ok {
		t.Fatal("Expected a drag to start on the node body")
	}
	is.Step(hold(130, 65))
	if !b.Dragging("A") {
		t.Error("Expected A to be hidden while dragged")
	}
	is.Step(release(130, 65))

	n, _ := s.Node("A")
	if n.X != 10 || n.Y != 4 {
		t.Errorf("Expected A at (10, 4), got (%d, %d)", n.X, n.Y)
	}
	if len(commits) != 1 || commits[0].CanvasID != "root" {
		t.Errorf("Expected one commit on root, got %v", commits)
	}
	if _, ok := is.Dragging(); ok {
		t.Error("Expected the drag to end on release")
	}
}

func TestHandleStartsResize(t *testing.T) {
	is, s, _ := setup(t)

	is.Step(press(58, 38))
	if r, ok := is.Resizing(); !ok || r.Handle != placement.HandleBottomRight {
		t.Fatalf("Expected a bottom-right resize, got %v %v", r, ok)
	}
	is.Step(hold(79, 57))
	is.Step(release(79, 57))

	n, _ := s.Node("A")
	if n.W != 6 || n.H != 4 {
		t.Errorf("Expected A resized to 6x4, got %dx%d", n.W, n.H)
	}
	if _, ok := is.Resizing(); ok {
		t.Error("Expected the resize to end on release")
	}
	if s.ShowDots() {
		t.Error("Expected dots to be hidden after the resize")
	}
}

func TestPlaceFromPalette(t *testing.T) {
	is, s, b := setup(t)
	is.BeginPlace(placement.Node{ID: "new", Kind: placement.KindWidget, W: 2, H: 2}, grid.Point{X: -100, Y: 40})

	is.Step(hold(200, 200))
	root := b.Root()
	if root.Preview().Len() != 1 {
		t.Fatalf("Expected a preview on root, got %d", root.Preview().Len())
	}
	is.Step(release(200, 200))

	n, ok := s.Node("new")
	if !ok || n.ParentID != "root" {
		t.Fatalf("Expected the new node on root, got %+v", n)
	}
	if n.X != 18 || n.Y != 18 {
		t.Errorf("Expected new at (18, 18), got (%d, %d)", n.X, n.Y)
	}
}

func TestCancelClearsPreview(t *testing.T) {
	is, s, b := setup(t)
	is.BeginPlace(placement.Node{ID: "new", W: 2, H: 2}, grid.Point{})
	is.Step(hold(200, 200))
	is.Cancel()

	if b.Root().Preview().Len() != 0 {
		t.Error("Expected the preview to be cleared")
	}
	if _, ok := s.Node("new"); ok {
		t.Error("Expected nothing to be placed")
	}
	if s.ShowDots() {
		t.Error("Expected dots to be hidden")
	}
}

func TestWheel(t *testing.T) {
	is, _, b := setup(t)
	is.Step(Frame{Client: grid.Point{X: 300, Y: 300}, Wheel: -1})
	if top := b.Root().Scroll().Top; top != 24 {
		t.Errorf("Expected scroll top 24, got %v", top)
	}

	host := is.host.(*fakeHost)
	is.Step(Frame{Client: grid.Point{X: 300, Y: 300}, Wheel: 1, ZoomKey: true})
	if host.zoom != 1.1 {
		t.Errorf("Expected zoom factor 1.1, got %v", host.zoom)
	}
}

func TestHover(t *testing.T) {
	is, _, _ := setup(t)
	is.Step(release(30, 25))
	if n, ok := is.HoveredNode(); !ok || n.ID != "A" {
		t.Errorf("Expected A hovered, got %v %v", n.ID, ok)
	}
	is.Step(release(400, 400))
	if _, ok := is.HoveredNode(); ok {
		t.Error("Expected nothing hovered")
	}
}
