package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/treemap/pkg/hierarchy"
	"github.com/matzehuels/treemap/pkg/render/palette"
	"github.com/matzehuels/treemap/pkg/treemap"
)

func newTestBrowser(t *testing.T) BrowseModel {
	t.Helper()
	root, err := hierarchy.Decode([]byte(moviesFixture), hierarchy.RootSelector)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	l := treemap.Compute(root, treemap.DefaultOptions())
	return NewBrowseModel(l, palette.Assign(l.Categories, nil), "Movie Sales")
}

func press(m BrowseModel, key string) BrowseModel {
	var msg tea.KeyMsg
	switch key {
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		msg = tea.KeyMsg{Type: tea.KeyUp}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	next, _ := m.Update(msg)
	return next.(BrowseModel)
}

func TestBrowseStartsHidden(t *testing.T) {
	m := newTestBrowser(t)
	if m.Cursor != -1 {
		t.Errorf("Cursor = %d, want -1", m.Cursor)
	}
	if m.Tooltip.State().Visible {
		t.Error("tooltip should start hidden")
	}
	if !strings.Contains(m.View(), "(hover a tile)") {
		t.Error("view should prompt for a hover")
	}
}

func TestBrowseCursorShowsTooltip(t *testing.T) {
	m := press(newTestBrowser(t), "down")

	if m.Cursor != 0 {
		t.Fatalf("Cursor = %d, want 0", m.Cursor)
	}
	tile := m.Layout.Tiles[0]
	st := m.Tooltip.State()
	if !st.Visible || st.Opacity != 0.9 {
		t.Errorf("state = %+v, want visible at 0.9", st)
	}
	if st.Value != hierarchy.FormatValue(tile.Node.Value) {
		t.Errorf("Value = %q", st.Value)
	}
	if !strings.Contains(st.Content, "Name: "+tile.Node.Name) {
		t.Errorf("Content = %q", st.Content)
	}
	if want := (tile.X0+tile.X1)/2 + 10; st.Left != want {
		t.Errorf("Left = %g, want %g", st.Left, want)
	}

	view := m.View()
	if !strings.Contains(view, "Category: "+tile.Node.Category) {
		t.Errorf("view should show the tooltip content:\n%s", view)
	}
	if strings.Contains(view, "<br/>") {
		t.Error("line breaks should be applied in the terminal view")
	}
}

func TestBrowseCursorWraps(t *testing.T) {
	m := newTestBrowser(t)
	n := len(m.Layout.Tiles)
	for range n {
		m = press(m, "j")
	}
	if m.Cursor != n-1 {
		t.Fatalf("Cursor = %d, want %d", m.Cursor, n-1)
	}
	m = press(m, "j")
	if m.Cursor != 0 {
		t.Errorf("Cursor = %d, want wrap to 0", m.Cursor)
	}
	m = press(m, "k")
	if m.Cursor != n-1 {
		t.Errorf("Cursor = %d, want wrap to %d", m.Cursor, n-1)
	}
}

func TestBrowseEscHidesThenQuits(t *testing.T) {
	m := press(newTestBrowser(t), "down")
	m = press(m, "esc")
	if m.Tooltip.State().Visible || m.Tooltip.State().Opacity != 0 {
		t.Errorf("esc should hide the tooltip, state = %+v", m.Tooltip.State())
	}
	if m.Tooltip.State().Value != "" {
		t.Error("hidden tooltip should drop its value")
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Error("esc with no tooltip should quit")
	}
}

func TestBrowseMouseHover(t *testing.T) {
	m := newTestBrowser(t)

	next, _ := m.Update(tea.MouseMsg{X: 0, Y: browseHeaderLines})
	m = next.(BrowseModel)
	if m.Cursor < 0 {
		t.Fatal("mouse over the top-left cell should hover a tile")
	}
	x, y, _ := m.canvasPoint(0, 0)
	want, _ := m.Layout.TileAt(x, y)
	if m.Layout.Tiles[m.Cursor].Node != want.Node {
		t.Errorf("hovered %q, want %q", m.Layout.Tiles[m.Cursor].Node.Name, want.Node.Name)
	}

	next, _ = m.Update(tea.MouseMsg{X: 0, Y: 0})
	m = next.(BrowseModel)
	if m.Cursor != -1 || m.Tooltip.State().Visible {
		t.Error("leaving the grid should unhover")
	}
}

func TestBrowseResize(t *testing.T) {
	m := newTestBrowser(t)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 10, Height: 10})
	m = next.(BrowseModel)
	if m.Cols != browseMinCols || m.Rows != browseMinRows {
		t.Errorf("grid = %dx%d, want minimum %dx%d", m.Cols, m.Rows, browseMinCols, browseMinRows)
	}
	if len(m.cells) != m.Rows || len(m.cells[0]) != m.Cols {
		t.Error("cell grid should match the new size")
	}
}

func TestBrowseLegend(t *testing.T) {
	view := newTestBrowser(t).legendView()
	for _, want := range []string{"Category", "Action", "Drama", "Movies"} {
		if !strings.Contains(view, want) {
			t.Errorf("legend missing %q", want)
		}
	}
}
