// Package tooltip models the single floating tooltip shown while the pointer
// rests on a treemap tile.
//
// The tooltip is either hidden or shown with some content at some position.
// [Tooltip.HandleHover] and [Tooltip.HandleUnhover] are the only transitions
// driven by the tree renderers; the HTML artifact embeds the same offsets and
// opacity so the browser behaves identically.
package tooltip

import (
	"fmt"

	"github.com/matzehuels/treemap/pkg/hierarchy"
)

const (
	// OffsetX and OffsetY move the tooltip away from the pointer.
	OffsetX = 10.0
	OffsetY = -28.0

	ShownOpacity  = 0.9
	HiddenOpacity = 0.0
)

// State is the observable tooltip state.
type State struct {
	Visible bool
	Opacity float64
	Content string
	// Left and Top are the tooltip position, already offset from the pointer.
	Left, Top float64
	// Value mirrors the data-value attribute of the hovered tile.
	Value string
}

// HoverEvent is raised when the pointer enters a tile.
type HoverEvent struct {
	Name     string
	Category string
	Value    string
	X, Y     float64
}

// NewHoverEvent builds the event for a leaf hovered at pointer position (x, y).
func NewHoverEvent(leaf *hierarchy.Node, x, y float64) HoverEvent {
	return HoverEvent{
		Name:     leaf.Name,
		Category: leaf.Category,
		Value:    hierarchy.FormatValue(leaf.Value),
		X:        x,
		Y:        y,
	}
}

// Tooltip holds the state of the one tooltip of a rendering. It is not safe
// for concurrent use; events are handled one at a time.
type Tooltip struct {
	state State
}

// New returns a hidden tooltip.
func New() *Tooltip {
	return &Tooltip{}
}

// Show makes the tooltip visible with content at pointer position (x, y).
func (t *Tooltip) Show(content, value string, x, y float64) {
	t.state = State{
		Visible: true,
		Opacity: ShownOpacity,
		Content: content,
		Left:    x + OffsetX,
		Top:     y + OffsetY,
		Value:   value,
	}
}

// Hide makes the tooltip fully transparent and clears its content.
func (t *Tooltip) Hide() {
	t.state = State{Opacity: HiddenOpacity}
}

func (t *Tooltip) HandleHover(e HoverEvent) {
	t.Show(Content(e.Name, e.Category, e.Value), e.Value, e.X, e.Y)
}

func (t *Tooltip) HandleUnhover() {
	t.Hide()
}

// State returns a copy of the current state.
func (t *Tooltip) State() State {
	return t.state
}

// Content formats the tooltip text for a leaf. Lines are separated by
// HTML line breaks.
func Content(name, category, value string) string {
	return fmt.Sprintf("Name: %s <br/> Category: %s <br/> US$%s", name, category, value)
}
