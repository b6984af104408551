package main

import (
	"fmt"
	"image"
	"image/png"
	"math"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/font"

	"grid-canvas/canvas"
	"grid-canvas/config"
	"grid-canvas/grid"
	"grid-canvas/input"
	"grid-canvas/placement"
	"grid-canvas/render"
	"grid-canvas/store"
	"grid-canvas/ui"
)

type Game struct {
	cfg        config.Config
	store      *store.Store
	board      *canvas.Board
	logger     *log.Logger
	layoutPath string

	screenWidth  int
	screenHeight int
	face         font.Face

	// Sub-systems
	input *input.InputSystem
	ui    *ui.UISystem

	screenshotRequested bool
	// done closes when the window should shut down.
	done <-chan struct{}
}

// NewGame builds the window shell around s. Ctrl+S writes the tree back to
// layoutPath.
func NewGame(cfg config.Config, s *store.Store, layoutPath string, logger *log.Logger, debug *ui.DebugPanel) *Game {
	g := &Game{
		cfg:          cfg,
		store:        s,
		board:        canvas.NewBoard(s, canvas.OptionsFromConfig(cfg, logger)),
		logger:       logger,
		layoutPath:   layoutPath,
		screenWidth:  cfg.Window.Width,
		screenHeight: cfg.Window.Height,
		face:         render.LoadFace(cfg.FontPath, FontSize, logger),
	}

	g.input = input.NewInputSystem(g, g.board, cfg.ScrollStep, logger)
	g.input.OnCommit = func(cm canvas.Commit) {
		if len(cm.Conflicts) > 0 {
			g.ui.Debug.SetError(fmt.Sprintf("%s overlaps %s", cm.Node.ID, strings.Join(cm.Conflicts, ", ")))
			return
		}
		g.ui.Debug.SetError("")
	}
	g.ui = ui.NewUISystem(g, g.face, render.DrawTextLines, ui.DefaultEntries(), cfg.LeftPanelWidth, cfg.BottomPanelHeight, debug)
	return g
}

func (g *Game) Update() error {
	select {
	case <-g.done:
		return ebiten.Termination
	default:
	}
	g.board.Layout(g.rootBox())
	g.ui.Update()
	g.input.Update()
	return nil
}

// rootBox is the client box of the root canvas: the area between the open
// panels, divided by the display scale.
func (g *Game) rootBox() grid.Box {
	_, _, _, area := g.ui.Regions()
	scale := g.store.Scale()
	return grid.Box{Width: area.W / scale, Height: area.H / scale}
}

func (g *Game) viewport() render.Viewport {
	_, _, _, area := g.ui.Regions()
	return render.Viewport{OriginX: area.X, OriginY: area.Y, Scale: g.store.Scale()}
}

func (g *Game) nodeState(n placement.Node) render.NodeState {
	var st render.NodeState
	if h, ok := g.input.HoveredNode(); ok && h.ID == n.ID {
		st.Hovered = true
	}
	if r, ok := g.input.Resizing(); ok && r.NodeID == n.ID {
		st.Resizing = r.Handle
	}
	return st
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(ColorBackground)

	_, _, _, area := g.ui.Regions()
	clip := image.Rect(int(area.X), int(area.Y), int(area.X+area.W), int(area.Y+area.H))
	if sub, ok := screen.SubImage(clip).(*ebiten.Image); ok && !clip.Empty() {
		render.Board(sub, g.viewport(), g.board, g.store, g.nodeState, g.face, Theme)
	}

	g.ui.Draw(screen)

	// --- Save Screenshot ---
	if g.screenshotRequested {
		g.screenshotRequested = false
		if err := saveScreenshot(screen); err != nil {
			g.logger.Error("screenshot failed", "err", err)
		} else {
			g.logger.Info("screenshot saved", "path", ScreenshotFile)
		}
	}
}

func saveScreenshot(screen *ebiten.Image) error {
	f, err := os.Create(ScreenshotFile)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.screenWidth = outsideWidth
	g.screenHeight = outsideHeight
	return outsideWidth, outsideHeight
}

// --- input.Host ---

func (g *Game) ScreenToClient(sx, sy float64) grid.Point {
	return g.viewport().ScreenToClient(sx, sy)
}

func (g *Game) IsMouseOver(mx, my int) bool {
	return g.ui.IsMouseOver(mx, my)
}

func (g *Game) RequestScreenshot() {
	g.screenshotRequested = true
}

func (g *Game) SaveLayout() error {
	if err := store.SaveFile(g.layoutPath, g.store); err != nil {
		return err
	}
	g.logger.Info("layout saved", "path", g.layoutPath, "nodes", g.store.Len())
	return nil
}

func (g *Game) Remove(id string) {
	removed := g.store.Remove(id)
	if len(removed) > 0 {
		g.logger.Info("removed", "item", id, "count", len(removed))
	}
}

func (g *Game) Zoom(factor float64) {
	scale := math.Min(math.Max(g.store.Scale()*factor, ZoomLimitMin), ZoomLimitMax)
	g.store.SetScale(scale)
}

// --- ui.Host ---

func (g *Game) ScreenSize() (int, int) {
	return g.screenWidth, g.screenHeight
}

func (g *Game) PanelOpen(p store.Panel) bool {
	return g.store.PanelOpen(p)
}

func (g *Game) TogglePanel(p store.Panel) {
	g.store.TogglePanel(p)
}

func (g *Game) Pick(e ui.Entry, sx, sy float64) {
	g.input.BeginPlace(e.New(), g.ScreenToClient(sx, sy))
}

func (g *Game) Inspect() string {
	var b strings.Builder
	if n, ok := g.input.HoveredNode(); ok {
		title := n.Title
		if title == "" {
			title = n.ID
		}
		fmt.Fprintf(&b, "%s\nkind: %s\nparent: %s\ncell: %d,%d\nsize: %dx%d\n\n", title, n.Kind, n.ParentID, n.X, n.Y, n.W, n.H)
	}
	fmt.Fprintf(&b, "nodes: %d\nscale: %.2f", g.store.Len(), g.store.Scale())
	if geo, ok := g.board.Root().Geometry(); ok {
		fmt.Fprintf(&b, "\ngrid: %dx%d", geo.Columns, geo.Rows)
	}
	return b.String()
}
