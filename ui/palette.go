package ui

import (
	"fmt"

	"github.com/google/uuid"

	"grid-canvas/placement"
)

// Entry is one item of the palette that can be dragged onto a canvas.
type Entry struct {
	Label        string
	Kind         placement.Kind
	W, H         int
	VerticalOnly bool
}

// DefaultEntries is the palette shown in the left panel.
func DefaultEntries() []Entry {
	return []Entry{
		{Label: "Button", Kind: placement.KindWidget, W: 4, H: 2},
		{Label: "Label", Kind: placement.KindWidget, W: 8, H: 2},
		{Label: "Image", Kind: placement.KindWidget, W: 12, H: 8},
		{Label: "Row", Kind: placement.KindWidget, W: 32, H: 3, VerticalOnly: true},
		{Label: "Canvas", Kind: placement.KindCanvas, W: 24, H: 12},
	}
}

// New returns a fresh, unplaced node for the entry.
func (e Entry) New() placement.Node {
	return placement.Node{
		ID:           uuid.NewString(),
		Kind:         e.Kind,
		Title:        e.Label,
		W:            e.W,
		H:            e.H,
		VerticalOnly: e.VerticalOnly,
	}
}

func (e Entry) String() string {
	return fmt.Sprintf("%s %dx%d", e.Label, e.W, e.H)
}
