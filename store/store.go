// Package store is the in-memory component tree and editor state that the
// canvas board reads from and commits to.
package store

import (
	"sort"

	"grid-canvas/graph"
	"grid-canvas/placement"
)

// DefaultRootID is the id of the root canvas when a layout names none.
const DefaultRootID = "root"

// Panel identifies one of the editor panels around the root canvas.
type Panel int

const (
	PanelLeft Panel = iota
	PanelRight
	PanelBottom
)

// Settings is editor state shared by every canvas.
type Settings struct {
	UnitHeight      float64 `yaml:"unit_height"`
	Scale           float64 `yaml:"scale"`
	LeftPanelOpen   bool    `yaml:"left_panel_open"`
	RightPanelOpen  bool    `yaml:"right_panel_open"`
	BottomPanelOpen bool    `yaml:"bottom_panel_open"`
	// ShowDots is on while something is dragged over a canvas.
	ShowDots bool `yaml:"-"`
}

// Store holds placed nodes indexed by id plus the child lists of every
// parent, in insertion order.
type Store struct {
	root     string
	nodes    map[string]placement.Node
	children map[string][]string
	settings Settings
}

// New returns a store whose root canvas is root. The root never has a
// parent and is always a canvas.
func New(root placement.Node, settings Settings) *Store {
	if root.ID == "" {
		root.ID = DefaultRootID
	}
	root.ParentID = ""
	root.Kind = placement.KindCanvas
	if settings.Scale <= 0 {
		settings.Scale = 1
	}
	return &Store{
		root:     root.ID,
		nodes:    map[string]placement.Node{root.ID: root},
		children: make(map[string][]string),
		settings: settings,
	}
}

// RootID returns the id of the root canvas.
func (s *Store) RootID() string {
	return s.root
}

// Node returns a copy of the node with the given id.
func (s *Store) Node(id string) (placement.Node, bool) {
	n, ok := s.nodes[id]
	return n, ok
}

// Children returns copies of the nodes placed directly on parentID.
func (s *Store) Children(parentID string) []placement.Node {
	ids := s.children[parentID]
	out := make([]placement.Node, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.nodes[id])
	}
	return out
}

// AddOrUpdate inserts n or replaces the node with the same id, moving it
// between child lists when its parent changed. A node cannot be its own
// parent, and the root keeps no parent.
func (s *Store) AddOrUpdate(n placement.Node) {
	if n.ID == "" || n.ID == n.ParentID {
		return
	}
	if n.ID == s.root {
		n.ParentID = ""
		n.Kind = placement.KindCanvas
	}
	old, exists := s.nodes[n.ID]
	s.nodes[n.ID] = n
	if exists && old.ParentID == n.ParentID {
		return
	}
	if exists {
		s.unlink(old.ParentID, n.ID)
	}
	if n.ParentID != "" {
		s.children[n.ParentID] = append(s.children[n.ParentID], n.ID)
	}
}

// Remove deletes a node and everything placed on it, returning the removed
// ids. The root cannot be removed.
func (s *Store) Remove(id string) []string {
	n, ok := s.nodes[id]
	if !ok || id == s.root {
		return nil
	}
	s.unlink(n.ParentID, id)

	var removed []string
	stack := []string{id}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		removed = append(removed, cur)
		stack = append(stack, s.children[cur]...)
		delete(s.children, cur)
		delete(s.nodes, cur)
	}
	return removed
}

func (s *Store) unlink(parentID, id string) {
	kids := s.children[parentID]
	for i, k := range kids {
		if k == id {
			s.children[parentID] = append(kids[:i:i], kids[i+1:]...)
			break
		}
	}
	if len(s.children[parentID]) == 0 {
		delete(s.children, parentID)
	}
}

// Len returns the number of nodes including the root.
func (s *Store) Len() int {
	return len(s.nodes)
}

// Order returns node ids parents-first. Nodes caught in a parent cycle are
// left out and reported through a *graph.CycleError.
func (s *Store) Order() ([]string, error) {
	nodes, links := s.Graph()
	return graph.Order(nodes, links)
}

// Graph returns the tree as graph nodes and parent links, sorted by id.
func (s *Store) Graph() ([]graph.Node, []graph.Link) {
	ids := make([]string, 0, len(s.nodes))
	for id := range s.nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	nodes := make([]graph.Node, 0, len(ids))
	var links []graph.Link
	for _, id := range ids {
		n := s.nodes[id]
		nodes = append(nodes, graph.Node{ID: id, Label: n.Title, Canvas: n.IsCanvas()})
	}
	for _, id := range ids {
		for _, child := range s.children[id] {
			links = append(links, graph.Link{ParentID: id, ChildID: child})
		}
	}
	return nodes, links
}

// Nodes returns every node reachable from the root, parents-first.
func (s *Store) Nodes() []placement.Node {
	order, _ := s.Order()
	out := make([]placement.Node, 0, len(order))
	for _, id := range order {
		if s.reachable(id) {
			out = append(out, s.nodes[id])
		}
	}
	return out
}

// Canvases returns every canvas node reachable from the root, parents-first.
func (s *Store) Canvases() []placement.Node {
	var out []placement.Node
	for _, n := range s.Nodes() {
		if n.IsCanvas() {
			out = append(out, n)
		}
	}
	return out
}

func (s *Store) reachable(id string) bool {
	seen := make(map[string]bool)
	for id != "" && !seen[id] {
		if id == s.root {
			return true
		}
		seen[id] = true
		n, ok := s.nodes[id]
		if !ok {
			return false
		}
		id = n.ParentID
	}
	return false
}

// IsDescendant reports whether id sits somewhere below ancestor.
func (s *Store) IsDescendant(id, ancestor string) bool {
	seen := make(map[string]bool)
	for n, ok := s.nodes[id]; ok && !seen[n.ID]; n, ok = s.nodes[n.ParentID] {
		seen[n.ID] = true
		if n.ParentID == ancestor {
			return true
		}
	}
	return false
}

// Settings returns a copy of the editor settings.
func (s *Store) Settings() Settings {
	return s.settings
}

// UnitHeight returns the configured cell height in pixels.
func (s *Store) UnitHeight() float64 {
	return s.settings.UnitHeight
}

func (s *Store) SetUnitHeight(h float64) {
	s.settings.UnitHeight = h
}

func (s *Store) ShowDots() bool {
	return s.settings.ShowDots
}

func (s *Store) SetShowDots(on bool) {
	s.settings.ShowDots = on
}

// Scale returns the display scale, 1 when unset.
func (s *Store) Scale() float64 {
	return s.settings.Scale
}

// SetScale changes the display scale. Non-positive values are ignored.
func (s *Store) SetScale(scale float64) {
	if scale > 0 {
		s.settings.Scale = scale
	}
}

// PanelOpen reports whether p is open.
func (s *Store) PanelOpen(p Panel) bool {
	switch p {
	case PanelLeft:
		return s.settings.LeftPanelOpen
	case PanelRight:
		return s.settings.RightPanelOpen
	case PanelBottom:
		return s.settings.BottomPanelOpen
	}
	return false
}

// TogglePanel opens or closes p and returns its new state.
func (s *Store) TogglePanel(p Panel) bool {
	switch p {
	case PanelLeft:
		s.settings.LeftPanelOpen = !s.settings.LeftPanelOpen
	case PanelRight:
		s.settings.RightPanelOpen = !s.settings.RightPanelOpen
	case PanelBottom:
		s.settings.BottomPanelOpen = !s.settings.BottomPanelOpen
	}
	return s.PanelOpen(p)
}
