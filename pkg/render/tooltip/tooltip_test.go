package tooltip

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/matzehuels/treemap/pkg/hierarchy"
)

func TestHoverUnhover(t *testing.T) {
	tip := New()
	assert.False(t, tip.State().Visible)
	assert.Equal(t, HiddenOpacity, tip.State().Opacity)

	leaf := &hierarchy.Node{Name: "Inception", Category: "Action", Value: 825532764}
	tip.HandleHover(NewHoverEvent(leaf, 200, 100))

	s := tip.State()
	assert.True(t, s.Visible)
	assert.Equal(t, 0.9, s.Opacity)
	assert.Equal(t, "Name: Inception <br/> Category: Action <br/> US$825532764", s.Content)
	assert.Equal(t, "825532764", s.Value)
	assert.Equal(t, 210.0, s.Left)
	assert.Equal(t, 72.0, s.Top)

	tip.HandleUnhover()
	s = tip.State()
	assert.False(t, s.Visible)
	assert.Equal(t, 0.0, s.Opacity)
	assert.Empty(t, s.Value)
}

func TestHoverReplacesContent(t *testing.T) {
	tip := New()
	tip.Show(Content("A", "x", "1"), "1", 0, 0)
	tip.Show(Content("B", "y", "2"), "2", 50, 50)

	s := tip.State()
	assert.Equal(t, "Name: B <br/> Category: y <br/> US$2", s.Content)
	assert.Equal(t, 60.0, s.Left)
	assert.Equal(t, 22.0, s.Top)
}

func TestHideWhenHidden(t *testing.T) {
	tip := New()
	tip.Hide()
	tip.Hide()
	assert.Equal(t, State{}, tip.State())
}
