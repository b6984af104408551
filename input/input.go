// Package input turns polled mouse and keyboard state into board calls:
// drags, resizes, cancellation and scrolling.
package input

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"grid-canvas/canvas"
	"grid-canvas/grid"
	"grid-canvas/placement"
)

// HandleThreshold is how close, in client pixels, the pointer must be to a
// node edge to grab a resize handle.
const HandleThreshold = 5.0

// Host defines the callbacks the input system needs from the window shell.
type Host interface {
	ScreenToClient(sx, sy float64) grid.Point
	IsMouseOver(mx, my int) bool
	RequestScreenshot()
	SaveLayout() error
	Remove(id string)
	Zoom(factor float64)
}

// Frame is the pointer state of one update tick.
type Frame struct {
	Client      grid.Point
	Pressed     bool
	JustPressed bool
	OverUI      bool
	// Wheel is the vertical wheel delta; positive scrolls up.
	Wheel float64
	// ZoomKey is held while the wheel should zoom instead of scroll.
	ZoomKey bool
}

type InputSystem struct {
	host   Host
	board  *canvas.Board
	logger *log.Logger

	scrollStep float64

	drag   *canvas.Drag
	resize *canvas.ResizeEvent

	// Hovered is the node under the pointer when nothing is being dragged.
	Hovered       placement.Node
	HoveredHandle placement.Handle
	hovering      bool

	// OnCommit is called after a drop writes a node.
	OnCommit func(canvas.Commit)
}

func NewInputSystem(h Host, b *canvas.Board, scrollStep float64, logger *log.Logger) *InputSystem {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &InputSystem{host: h, board: b, scrollStep: scrollStep, logger: logger}
}

// Dragging returns the drag in progress.
func (is *InputSystem) Dragging() (canvas.Drag, bool) {
	if is.drag == nil {
		return canvas.Drag{}, false
	}
	return *is.drag, true
}

// Resizing returns the resize gesture in progress.
func (is *InputSystem) Resizing() (canvas.ResizeEvent, bool) {
	if is.resize == nil {
		return canvas.ResizeEvent{}, false
	}
	return *is.resize, true
}

// HoveredNode returns the node under the pointer, if any.
func (is *InputSystem) HoveredNode() (placement.Node, bool) {
	return is.Hovered, is.hovering
}

// BeginPlace starts dragging a node that is not on any canvas yet, such as
// a palette entry. It replaces any gesture in progress.
func (is *InputSystem) BeginPlace(n placement.Node, at grid.Point) {
	is.Cancel()
	d := canvas.BeginPlace(n, at)
	is.drag = &d
	is.logger.Debug("drag started", "item", n.ID, "origin", d.Item.Origin)
}

// Cancel abandons the gesture in progress.
func (is *InputSystem) Cancel() {
	if is.drag != nil {
		is.board.Cancel(is.drag.Item.ID)
		is.logger.Debug("drag cancelled", "item", is.drag.Item.ID)
		is.drag = nil
	}
	if is.resize != nil {
		is.board.ResizeDrop(*is.resize)
		is.resize = nil
	}
}

func (is *InputSystem) Update() {
	mx, my := ebiten.CursorPosition()
	_, wheel := ebiten.Wheel()
	is.handleControlKeys()
	is.Step(Frame{
		Client:      is.host.ScreenToClient(float64(mx), float64(my)),
		Pressed:     ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		JustPressed: inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		OverUI:      is.host.IsMouseOver(mx, my),
		Wheel:       wheel,
		ZoomKey:     ebiten.IsKeyPressed(ebiten.KeyControl),
	})
}

func (is *InputSystem) handleControlKeys() {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		is.Cancel()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		is.host.RequestScreenshot()
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) && inpututil.IsKeyJustPressed(ebiten.KeyS) {
		if err := is.host.SaveLayout(); err != nil {
			is.logger.Error("save failed", "err", err)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDelete) && is.drag == nil && is.resize == nil && is.hovering {
		is.host.Remove(is.Hovered.ID)
		is.hovering = false
	}
}

// Step advances the gesture state machine by one frame.
func (is *InputSystem) Step(f Frame) {
	switch {
	case is.drag != nil:
		is.handleDragging(f)
	case is.resize != nil:
		is.handleResizing(f)
	default:
		is.handlePress(f)
		is.handleWheel(f)
	}
}

func (is *InputSystem) handlePress(f Frame) {
	is.hovering = false
	is.HoveredHandle = placement.HandleNone
	if f.OverUI {
		return
	}
	if n, h, ok := is.board.HandleAt(f.Client, HandleThreshold); ok {
		is.Hovered, is.HoveredHandle, is.hovering = n, h, true
	} else if n, ok := is.board.NodeAt(f.Client); ok {
		is.Hovered, is.hovering = n, true
	}
	if !f.JustPressed || !is.hovering {
		return
	}

	if is.HoveredHandle != placement.HandleNone {
		is.resize = &canvas.ResizeEvent{Client: f.Client, NodeID: is.Hovered.ID, Handle: is.HoveredHandle}
		is.logger.Debug("resize started", "item", is.Hovered.ID, "handle", is.HoveredHandle)
		return
	}
	d := canvas.BeginMove(is.Hovered, f.Client)
	is.drag = &d
	is.logger.Debug("drag started", "item", is.Hovered.ID, "origin", d.Item.Origin)
}

func (is *InputSystem) handleDragging(f Frame) {
	ev := is.drag.Event(f.Client)
	if f.Pressed {
		is.board.Hover(ev)
		return
	}
	cm, ok := is.board.Drop(ev)
	is.drag = nil
	if !ok {
		return
	}
	is.logger.Info("placed", "item", cm.Node.ID, "canvas", cm.CanvasID, "x", cm.Node.X, "y", cm.Node.Y, "conflicts", len(cm.Conflicts))
	if is.OnCommit != nil {
		is.OnCommit(cm)
	}
}

func (is *InputSystem) handleResizing(f Frame) {
	is.resize.Client = f.Client
	if f.Pressed {
		if n, changed := is.board.ResizeHover(*is.resize); changed {
			is.logger.Debug("resized", "item", n.ID, "w", n.W, "h", n.H)
		}
		return
	}
	is.board.ResizeDrop(*is.resize)
	is.resize = nil
}

func (is *InputSystem) handleWheel(f Frame) {
	if f.Wheel == 0 || f.OverUI {
		return
	}
	if f.ZoomKey {
		is.host.Zoom(1 + 0.1*f.Wheel)
		return
	}
	if id, ok := is.board.Innermost(f.Client); ok {
		is.board.ScrollBy(id, -f.Wheel*is.scrollStep)
	}
}
