package canvas

import (
	"io"
	"math"
	"sort"

	"github.com/charmbracelet/log"

	"grid-canvas/config"
	"grid-canvas/grid"
	"grid-canvas/placement"
	"grid-canvas/preview"
)

// Store is the component tree and editor state the board works against.
// The board only writes placed nodes through AddOrUpdate.
type Store interface {
	RootID() string
	Node(id string) (placement.Node, bool)
	Children(parentID string) []placement.Node
	Canvases() []placement.Node
	IsDescendant(id, ancestor string) bool
	AddOrUpdate(n placement.Node)
	UnitHeight() float64
	ShowDots() bool
	SetShowDots(on bool)
}

// Options configures a Board.
type Options struct {
	Calibration       grid.Calibration
	NestedCalibration grid.Calibration
	Policy            config.ConflictPolicy
	MinW, MinH        int
	Logger            *log.Logger
}

// OptionsFromConfig derives board options from the editor configuration.
func OptionsFromConfig(cfg config.Config, logger *log.Logger) Options {
	return Options{
		Calibration:       cfg.Calibration(),
		NestedCalibration: cfg.NestedCalibration(),
		Policy:            cfg.ConflictPolicy,
		MinW:              cfg.MinWidgetW,
		MinH:              cfg.MinWidgetH,
		Logger:            logger,
	}
}

// Board owns one Canvas per canvas node of the store, keyed by node id, and
// dispatches pointer events to them. All methods run on the event loop.
type Board struct {
	store  Store
	opts   Options
	logger *log.Logger

	canvases map[string]*Canvas
	order    []string

	// active maps a dragged id to the canvas currently showing its preview.
	active   map[string]string
	dragging map[string]bool
}

func NewBoard(s Store, opts Options) *Board {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if opts.Policy == "" {
		opts.Policy = config.PolicyAllow
	}
	return &Board{
		store:    s,
		opts:     opts,
		logger:   logger,
		canvases: make(map[string]*Canvas),
		active:   make(map[string]string),
		dragging: make(map[string]bool),
	}
}

// Canvas returns the canvas instance for a canvas node.
func (b *Board) Canvas(id string) (*Canvas, bool) {
	c, ok := b.canvases[id]
	return c, ok
}

// Canvases returns every canvas instance, parents first.
func (b *Board) Canvases() []*Canvas {
	out := make([]*Canvas, 0, len(b.order))
	for _, id := range b.order {
		out = append(out, b.canvases[id])
	}
	return out
}

// Root returns the root canvas, creating it if Layout has not run yet.
func (b *Board) Root() *Canvas {
	b.sync()
	return b.canvases[b.store.RootID()]
}

// Dragging reports whether id is being dragged and should be hidden from
// normal rendering.
func (b *Board) Dragging(id string) bool {
	return b.dragging[id]
}

// sync creates a canvas for every canvas node in the store and drops the
// canvases whose node is gone.
func (b *Board) sync() {
	nodes := b.store.Canvases()
	depth := make(map[string]int, len(nodes))
	seen := make(map[string]bool, len(nodes))
	order := make([]string, 0, len(nodes))

	for _, n := range nodes {
		d := 0
		if pd, ok := depth[n.ParentID]; ok {
			d = pd + 1
		}
		depth[n.ID] = d
		seen[n.ID] = true
		order = append(order, n.ID)

		cal := b.opts.NestedCalibration
		if n.ID == b.store.RootID() {
			cal = b.opts.Calibration
		}
		c, ok := b.canvases[n.ID]
		if !ok || c.parentID != n.ParentID {
			if ok {
				c.unmount()
			}
			b.canvases[n.ID] = newCanvas(n.ID, n.ParentID, d, cal)
			continue
		}
		c.depth = d
	}

	for id, c := range b.canvases {
		if !seen[id] {
			c.unmount()
			delete(b.canvases, id)
			for item, at := range b.active {
				if at == id {
					delete(b.active, item)
				}
			}
		}
	}
	b.order = order
}

// Layout mounts the root canvas at root and every nested canvas at the box
// of its node inside the parent canvas. Canvases being dragged, or whose
// parent has no usable geometry, are unmounted.
func (b *Board) Layout(root grid.Box) {
	b.sync()
	unitHeight := b.store.UnitHeight()
	rootID := b.store.RootID()

	for _, id := range b.order {
		c := b.canvases[id]
		if id == rootID {
			b.mount(c, root, unitHeight)
			continue
		}
		parent, ok := b.canvases[c.parentID]
		if !ok || b.dragging[id] {
			c.unmount()
			continue
		}
		if _, ready := parent.Geometry(); !ready {
			c.unmount()
			continue
		}
		n, _ := b.store.Node(id)
		b.mount(c, parent.NodeBox(n), unitHeight)
	}
}

func (b *Board) mount(c *Canvas, box grid.Box, unitHeight float64) {
	if !c.mount(box, unitHeight) {
		return
	}
	geo, ok := c.Geometry()
	if !ok {
		b.logger.Debug("canvas has no usable geometry", "canvas", c.id, "width", box.Width, "height", box.Height)
		return
	}
	b.logger.Debug("geometry recomputed",
		"canvas", c.id, "columns", geo.Columns, "rows", geo.Rows,
		"unit_w", math.Round(geo.Unit.Width*100)/100, "unit_h", geo.Unit.Height)
}

// ScrollBy scrolls a canvas vertically and re-measures it. Scrolling stops
// at the top and at the bottom of the current grid; reaching the bottom
// grows the grid.
func (b *Board) ScrollBy(id string, dy float64) {
	c, ok := b.canvases[id]
	if !ok || !c.mounted {
		return
	}
	geo, _ := c.tracker.Geometry()
	limit := math.Max(0, geo.PixelHeight+2*geo.EdgePadding-c.box.Height)
	s := c.scroll
	s.Top = math.Min(math.Max(0, s.Top+dy), limit+math.Max(0, dy))
	if s == c.scroll {
		return
	}
	c.setScroll(s)
	geo, _ = c.Geometry()
	b.logger.Debug("canvas scrolled", "canvas", id, "top", s.Top, "rows", geo.Rows)
}

// Innermost returns the deepest mounted canvas whose box contains p.
func (b *Board) Innermost(p grid.Point) (string, bool) {
	best, depth := "", -1
	for _, id := range b.order {
		c := b.canvases[id]
		if c.mounted && c.box.Contains(p) && c.depth >= depth {
			best, depth = id, c.depth
		}
	}
	return best, depth >= 0
}

// ShallowOver returns a predicate that is true only for the innermost
// canvas under p.
func (b *Board) ShallowOver(p grid.Point) func(string) bool {
	id, ok := b.Innermost(p)
	return func(canvasID string) bool {
		return ok && canvasID == id
	}
}

func (b *Board) over(ev DragEvent) func(string) bool {
	if ev.Over != nil {
		return ev.Over
	}
	return b.ShallowOver(ev.Client)
}

// forbidden reports whether dropping item on canvasID would place a canvas
// inside itself.
func (b *Board) forbidden(canvasID string, item placement.Candidate) bool {
	if !item.IsCanvas() {
		return false
	}
	return canvasID == item.ID || b.store.IsDescendant(canvasID, item.ID)
}

// Hover updates the live preview of a dragged item on the canvas the
// pointer is over.
func (b *Board) Hover(ev DragEvent) {
	over := b.over(ev)
	for _, id := range b.order {
		if over(id) {
			b.hover(b.canvases[id], ev)
			return
		}
	}
}

func (b *Board) hover(c *Canvas, ev DragEvent) {
	item := ev.Item
	if !b.store.ShowDots() {
		b.store.SetShowDots(true)
	}
	if item.Origin == placement.Existing {
		b.dragging[item.ID] = true
	}
	if b.forbidden(c.id, item) {
		b.clearOutside(item.ID, "")
		return
	}
	geo, ok := c.Geometry()
	if !ok {
		b.logger.Debug("hover skipped", "canvas", c.id, "item", item.ID, "reason", "no geometry")
		return
	}

	res := c.resolve(item, ev, geo)
	conflict := placement.FindConflicts(res.Rect(item.W, item.H), b.store.Children(c.id), item.ID)

	b.clearOutside(item.ID, c.id)
	b.active[item.ID] = c.id
	c.preview.PutShadow(preview.BuildShadow(item.ID, res, item.W, item.H, geo, conflict))
	c.preview.PutOutline(preview.BuildOutline(item.ID, res, item.W, item.H))
}

// clearOutside removes the preview of id from the canvas that showed it last
// unless that canvas is keep.
func (b *Board) clearOutside(id, keep string) {
	prev, ok := b.active[id]
	if !ok || prev == keep {
		return
	}
	if pc, ok := b.canvases[prev]; ok {
		pc.preview.Clear(id)
	}
	delete(b.active, id)
}

// Drop commits the dragged item to the canvas under the pointer. Only the
// first canvas, parents before children, that the event's Over accepts is
// used. Preview state for the item is cleared on every canvas whether or
// not anything was committed.
func (b *Board) Drop(ev DragEvent) (Commit, bool) {
	over := b.over(ev)
	var (
		result    Commit
		committed bool
	)
	for _, id := range b.order {
		if !over(id) {
			continue
		}
		b.store.SetShowDots(false)
		result, committed = b.commit(b.canvases[id], ev)
		break
	}
	b.finish(ev.Item.ID)
	if !committed {
		b.logger.Debug("drop skipped", "item", ev.Item.ID)
	}
	return result, committed
}

func (b *Board) commit(c *Canvas, ev DragEvent) (Commit, bool) {
	item := ev.Item
	if b.forbidden(c.id, item) {
		b.logger.Debug("drop refused", "canvas", c.id, "item", item.ID, "reason", "canvas inside itself")
		return Commit{}, false
	}
	geo, ok := c.Geometry()
	if !ok {
		b.logger.Debug("drop skipped", "canvas", c.id, "item", item.ID, "reason", "no geometry")
		return Commit{}, false
	}

	res := c.resolve(item, ev, geo)
	conflicts := placement.Conflicting(res.Rect(item.W, item.H), b.store.Children(c.id), item.ID)
	if len(conflicts) > 0 && b.opts.Policy == config.PolicyReject {
		b.logger.Debug("drop rejected", "canvas", c.id, "item", item.ID, "conflicts", conflicts)
		return Commit{}, false
	}

	n := item.Node
	n.X, n.Y = res.CellX, res.CellY
	n.ParentID = c.id
	b.store.AddOrUpdate(n)
	return Commit{Node: n, CanvasID: c.id, Conflicts: conflicts}, true
}

// Cancel abandons a drag and clears its preview everywhere.
func (b *Board) Cancel(id string) {
	b.finish(id)
}

func (b *Board) finish(id string) {
	for _, c := range b.canvases {
		c.preview.Clear(id)
	}
	delete(b.active, id)
	delete(b.dragging, id)
	if len(b.active) == 0 && b.store.ShowDots() {
		b.store.SetShowDots(false)
	}
}

// ResizeHover snaps the dragged handle of a node to the nearest grid line
// of the canvas that owns it and writes the resized node. It returns the
// node as stored afterwards.
func (b *Board) ResizeHover(ev ResizeEvent) (placement.Node, bool) {
	n, ok := b.store.Node(ev.NodeID)
	if !ok {
		return placement.Node{}, false
	}
	c, ok := b.canvases[n.ParentID]
	if !ok {
		return n, false
	}
	if !b.store.ShowDots() {
		b.store.SetShowDots(true)
	}
	geo, ok := c.Geometry()
	if !ok {
		b.logger.Debug("resize skipped", "canvas", c.id, "item", n.ID, "reason", "no geometry")
		return n, false
	}

	x, y := placement.SnapResize(placement.ResizeInput{
		Box:         c.box,
		Client:      ev.Client,
		Scroll:      c.scroll,
		Unit:        geo.Unit,
		EdgePadding: geo.EdgePadding,
	})
	resized, changed := placement.ApplyResize(n, ev.Handle, x, y, placement.Limits{
		Columns: geo.Columns,
		Rows:    geo.Rows,
		MinW:    b.opts.MinW,
		MinH:    b.opts.MinH,
	})
	if !changed {
		return n, false
	}
	if b.opts.Policy == config.PolicyReject &&
		placement.FindConflicts(resized.Rect(), b.store.Children(c.id), n.ID) {
		return n, false
	}
	b.store.AddOrUpdate(resized)
	return resized, true
}

// ResizeDrop ends a resize gesture.
func (b *Board) ResizeDrop(ResizeEvent) {
	b.store.SetShowDots(false)
}

// byDepth returns mounted canvases, deepest first.
func (b *Board) byDepth() []*Canvas {
	var out []*Canvas
	for _, id := range b.order {
		if c := b.canvases[id]; c.mounted {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].depth > out[j].depth })
	return out
}

// NodeAt returns the topmost visible node under p. Widgets on a nested
// canvas win over the canvas node that hosts them.
func (b *Board) NodeAt(p grid.Point) (placement.Node, bool) {
	for _, c := range b.byDepth() {
		if _, ok := c.Geometry(); !ok {
			continue
		}
		kids := b.store.Children(c.id)
		for i := len(kids) - 1; i >= 0; i-- {
			n := kids[i]
			if !b.dragging[n.ID] && c.NodeBox(n).Contains(p) {
				return n, true
			}
		}
	}
	return placement.Node{}, false
}

// HandleAt returns the node and resize handle within threshold pixels of p.
// Vertical-only nodes expose only their top and bottom handles.
func (b *Board) HandleAt(p grid.Point, threshold float64) (placement.Node, placement.Handle, bool) {
	for _, c := range b.byDepth() {
		if _, ok := c.Geometry(); !ok {
			continue
		}
		kids := b.store.Children(c.id)
		for i := len(kids) - 1; i >= 0; i-- {
			n := kids[i]
			if b.dragging[n.ID] {
				continue
			}
			if h := handleAt(c.NodeBox(n), p, threshold, n.VerticalOnly); h != placement.HandleNone {
				return n, h, true
			}
		}
	}
	return placement.Node{}, placement.HandleNone, false
}

func handleAt(box grid.Box, p grid.Point, th float64, verticalOnly bool) placement.Handle {
	if p.X < box.Left-th || p.X > box.Right()+th || p.Y < box.Top-th || p.Y > box.Bottom()+th {
		return placement.HandleNone
	}
	left := math.Abs(p.X-box.Left) <= th
	right := math.Abs(p.X-box.Right()) <= th
	top := math.Abs(p.Y-box.Top) <= th
	bottom := math.Abs(p.Y-box.Bottom()) <= th
	if verticalOnly {
		left, right = false, false
	}

	switch {
	case top && left:
		return placement.HandleTopLeft
	case top && right:
		return placement.HandleTopRight
	case bottom && right:
		return placement.HandleBottomRight
	case bottom && left:
		return placement.HandleBottomLeft
	case top:
		return placement.HandleTop
	case bottom:
		return placement.HandleBottom
	case left:
		return placement.HandleLeft
	case right:
		return placement.HandleRight
	}
	return placement.HandleNone
}
