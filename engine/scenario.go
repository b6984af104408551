// Package engine replays pointer interactions written as Starlark scripts
// against a canvas board, for headless checks of drag and resize behavior.
//
//	layout(678, 500)
//	place("btn", w=4, h=2, x=22, y=22)
//	move(40, 30)
//	result = drop(40, 30)
package engine

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"go.starlark.net/starlark"

	"grid-canvas/canvas"
	"grid-canvas/errors"
	"grid-canvas/grid"
	"grid-canvas/placement"
	"grid-canvas/store"
)

// Step records one call a script made.
type Step struct {
	Action string
	Detail string
}

// Scenario exposes a board to scripts. One drag or resize gesture can be in
// progress at a time.
type Scenario struct {
	board  *canvas.Board
	store  *store.Store
	logger *log.Logger
	out    io.Writer

	drag   *canvas.Drag
	resize *canvas.ResizeEvent
	steps  []Step
}

// NewScenario returns a scenario driving b and s. Script print output goes
// to out when it is not nil.
func NewScenario(b *canvas.Board, s *store.Store, logger *log.Logger, out io.Writer) *Scenario {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Scenario{board: b, store: s, logger: logger, out: out}
}

// Steps returns the calls recorded so far.
func (sc *Scenario) Steps() []Step {
	return sc.steps
}

// Run executes a script and returns its global variables.
func (sc *Scenario) Run(name, script string) (map[string]any, error) {
	var print func(string)
	if sc.out != nil {
		print = func(msg string) { fmt.Fprintln(sc.out, msg) }
	}
	globals, err := ExecuteStarlark(name, script, sc.builtins(), print)
	if err != nil {
		if evalErr, ok := err.(*starlark.EvalError); ok {
			return nil, errors.Wrap(errors.ErrCodeScript, err, "%s", evalErr.Backtrace())
		}
		return nil, errors.Wrap(errors.ErrCodeScript, err, "run %s", name)
	}
	if sc.drag != nil {
		sc.logger.Warn("script ended mid-drag, cancelling", "item", sc.drag.Item.ID)
		sc.board.Cancel(sc.drag.Item.ID)
		sc.drag = nil
	}
	return globals, nil
}

func (sc *Scenario) record(action, format string, args ...any) {
	step := Step{Action: action, Detail: fmt.Sprintf(format, args...)}
	sc.steps = append(sc.steps, step)
	sc.logger.Debug("scenario step", "action", step.Action, "detail", step.Detail)
}

type builtinFunc func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error)

func (sc *Scenario) builtins() starlark.StringDict {
	fns := map[string]builtinFunc{
		"layout":   sc.layout,
		"place":    sc.place,
		"grab":     sc.grab,
		"move":     sc.move,
		"drop":     sc.drop,
		"cancel":   sc.cancel,
		"resize":   sc.resizeTo,
		"release":  sc.release,
		"scroll":   sc.scroll,
		"node":     sc.node,
		"children": sc.children,
		"preview":  sc.preview,
		"geometry": sc.geometry,
	}
	out := make(starlark.StringDict, len(fns))
	for name, fn := range fns {
		out[name] = starlark.NewBuiltin(name, fn)
	}
	return out
}

func (sc *Scenario) layout(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var width, height, left, top number
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "width", &width, "height", &height, "left?", &left, "top?", &top); err != nil {
		return nil, err
	}
	sc.board.Layout(grid.Box{Left: float64(left), Top: float64(top), Width: float64(width), Height: float64(height)})
	sc.record("layout", "%vx%v at (%v, %v)", width, height, left, top)
	return starlark.None, nil
}

func (sc *Scenario) place(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var (
		id           string
		w, h         int
		x, y         number
		kind         = string(placement.KindWidget)
		title        string
		verticalOnly bool
	)
	if err := starlark.UnpackArgs(b.Name(), args, kwargs,
		"id", &id, "w", &w, "h", &h, "x", &x, "y", &y,
		"kind?", &kind, "title?", &title, "vertical_only?", &verticalOnly); err != nil {
		return nil, err
	}
	if err := sc.idle(b.Name()); err != nil {
		return nil, err
	}
	if _, exists := sc.store.Node(id); exists {
		return nil, fmt.Errorf("%s: node %q already exists", b.Name(), id)
	}
	n := placement.Node{ID: id, Kind: placement.Kind(kind), Title: title, W: w, H: h, VerticalOnly: verticalOnly}
	d := canvas.BeginPlace(n, pt(x, y))
	sc.drag = &d
	sc.record("place", "%s %dx%d at (%v, %v)", id, w, h, x, y)
	return starlark.None, nil
}

func (sc *Scenario) grab(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var (
		id   string
		x, y number
	)
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "id", &id, "x", &x, "y", &y); err != nil {
		return nil, err
	}
	if err := sc.idle(b.Name()); err != nil {
		return nil, err
	}
	n, ok := sc.store.Node(id)
	if !ok {
		return nil, fmt.Errorf("%s: no node %q", b.Name(), id)
	}
	d := canvas.BeginMove(n, pt(x, y))
	sc.drag = &d
	sc.record("grab", "%s at (%v, %v)", id, x, y)
	return starlark.None, nil
}

func (sc *Scenario) move(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var x, y number
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "x", &x, "y", &y); err != nil {
		return nil, err
	}
	if sc.drag == nil {
		return nil, fmt.Errorf("%s: nothing is being dragged", b.Name())
	}
	sc.board.Hover(sc.drag.Event(pt(x, y)))
	sc.record("move", "%s to (%v, %v)", sc.drag.Item.ID, x, y)
	return starlark.None, nil
}

func (sc *Scenario) drop(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var x, y number
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "x", &x, "y", &y); err != nil {
		return nil, err
	}
	if sc.drag == nil {
		return nil, fmt.Errorf("%s: nothing is being dragged", b.Name())
	}
	id := sc.drag.Item.ID
	cm, ok := sc.board.Drop(sc.drag.Event(pt(x, y)))
	sc.drag = nil
	sc.record("drop", "%s at (%v, %v) committed=%v", id, x, y, ok)

	result := map[string]any{"committed": ok, "id": id}
	if ok {
		result["canvas"] = cm.CanvasID
		result["x"] = cm.Node.X
		result["y"] = cm.Node.Y
		result["conflicts"] = append([]string{}, cm.Conflicts...)
	}
	return ToStarlarkValue(result)
}

func (sc *Scenario) cancel(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackArgs(b.Name(), args, kwargs); err != nil {
		return nil, err
	}
	if sc.drag != nil {
		sc.board.Cancel(sc.drag.Item.ID)
		sc.record("cancel", "%s", sc.drag.Item.ID)
		sc.drag = nil
	}
	return starlark.None, nil
}

func (sc *Scenario) resizeTo(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var (
		id, handle string
		x, y       number
	)
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "id", &id, "handle", &handle, "x", &x, "y", &y); err != nil {
		return nil, err
	}
	if sc.drag != nil {
		return nil, fmt.Errorf("%s: a drag is in progress", b.Name())
	}
	h, ok := placement.ParseHandle(handle)
	if !ok {
		return nil, fmt.Errorf("%s: unknown handle %q", b.Name(), handle)
	}
	ev := canvas.ResizeEvent{Client: pt(x, y), NodeID: id, Handle: h}
	sc.resize = &ev
	n, changed := sc.board.ResizeHover(ev)
	sc.record("resize", "%s %s to (%v, %v) changed=%v", id, h, x, y, changed)
	return ToStarlarkValue(nodeMap(n))
}

func (sc *Scenario) release(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackArgs(b.Name(), args, kwargs); err != nil {
		return nil, err
	}
	if sc.resize != nil {
		sc.board.ResizeDrop(*sc.resize)
		sc.record("release", "%s", sc.resize.NodeID)
		sc.resize = nil
	}
	return starlark.None, nil
}

func (sc *Scenario) scroll(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var (
		id string
		dy number
	)
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "canvas", &id, "dy", &dy); err != nil {
		return nil, err
	}
	sc.board.ScrollBy(id, float64(dy))
	sc.record("scroll", "%s by %v", id, dy)
	return starlark.None, nil
}

func (sc *Scenario) node(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var id string
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "id", &id); err != nil {
		return nil, err
	}
	n, ok := sc.store.Node(id)
	if !ok {
		return starlark.None, nil
	}
	return ToStarlarkValue(nodeMap(n))
}

func (sc *Scenario) children(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var id string
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "canvas", &id); err != nil {
		return nil, err
	}
	var ids []string
	for _, n := range sc.store.Children(id) {
		ids = append(ids, n.ID)
	}
	return ToStarlarkValue(ids)
}

func (sc *Scenario) preview(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var id string
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "canvas", &id); err != nil {
		return nil, err
	}
	c, ok := sc.board.Canvas(id)
	if !ok {
		return nil, fmt.Errorf("%s: no canvas %q", b.Name(), id)
	}
	var items []any
	for _, o := range c.Preview().Outlines() {
		sh, _ := c.Preview().Shadow(o.ID)
		items = append(items, map[string]any{
			"id": o.ID, "x": o.CellX, "y": o.CellY, "w": o.W, "h": o.H, "conflict": sh.Conflict,
		})
	}
	return ToStarlarkValue(items)
}

func (sc *Scenario) geometry(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var id string
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "canvas", &id); err != nil {
		return nil, err
	}
	c, ok := sc.board.Canvas(id)
	if !ok {
		return starlark.None, nil
	}
	geo, ready := c.Geometry()
	if !ready {
		return starlark.None, nil
	}
	return ToStarlarkValue(map[string]any{
		"columns": geo.Columns,
		"rows":    geo.Rows,
		"unit_w":  geo.Unit.Width,
		"unit_h":  geo.Unit.Height,
		"width":   geo.PixelWidth,
		"height":  geo.PixelHeight,
	})
}

func (sc *Scenario) idle(name string) error {
	if sc.drag != nil {
		return fmt.Errorf("%s: %q is still being dragged", name, sc.drag.Item.ID)
	}
	return nil
}

// number accepts both ints and floats from scripts.
type number float64

func (n *number) Unpack(v starlark.Value) error {
	f, ok := starlark.AsFloat(v)
	if !ok {
		return fmt.Errorf("got %s, want number", v.Type())
	}
	*n = number(f)
	return nil
}

func pt(x, y number) grid.Point {
	return grid.Point{X: float64(x), Y: float64(y)}
}

func nodeMap(n placement.Node) map[string]any {
	return map[string]any{
		"id":     n.ID,
		"parent": n.ParentID,
		"kind":   string(n.Kind),
		"x":      n.X,
		"y":      n.Y,
		"w":      n.W,
		"h":      n.H,
	}
}
