package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/matzehuels/treemap/pkg/hierarchy"
	"github.com/matzehuels/treemap/pkg/pipeline"
	"github.com/matzehuels/treemap/pkg/render/palette"
	"github.com/matzehuels/treemap/pkg/render/sink"
	"github.com/matzehuels/treemap/pkg/render/tooltip"
	"github.com/matzehuels/treemap/pkg/treemap"
)

// Browser grid bounds, in terminal cells.
const (
	browseDefaultCols = 80
	browseDefaultRows = 20
	browseMinCols     = 20
	browseMinRows     = 5

	// browseChromeLines is the space kept free for the header, tooltip and legend.
	browseChromeLines = 16

	// browseHeaderLines is the number of lines above the grid.
	browseHeaderLines = 3
)

var (
	browseTooltipStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorDim).
				Padding(0, 1)
	browseHintStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// browseCommand creates the browse command, an interactive terminal view of
// the treemap.
func (c *CLI) browseCommand() *cobra.Command {
	var (
		paletteStr string
		sf         sourceFlags
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Explore the treemap interactively in the terminal",
		Long: `Explore the treemap interactively in the terminal.

Move between tiles with the arrow keys or the mouse. The hovered tile's name,
category and value are shown in a tooltip, as in the HTML page.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("palette") {
				opts.Palette = parseList(paletteStr)
			}
			if err := applyConfig(cmd, sf.config, &opts); err != nil {
				return err
			}
			return c.runBrowse(cmd.Context(), opts, sf)
		},
	}

	bindSourceFlags(cmd, &opts, &sf)
	bindLayoutFlags(cmd, &opts)
	cmd.Flags().StringVar(&paletteStr, "palette", "", "comma-separated category colors (default: Pastel1)")

	return cmd
}

func (c *CLI) runBrowse(ctx context.Context, opts pipeline.Options, sf sourceFlags) error {
	runner, err := c.newRunner(sf)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger
	warnIgnoredFlags(opts, sf)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	spinner := newSpinnerWithContext(ctx, stderr, "Fetching document...")
	spinner.Start()
	root, err := runner.Fetch(ctx, opts)
	if err != nil {
		spinner.StopWithError("Fetch failed")
		return fmt.Errorf("fetch: %w", err)
	}
	l, err := runner.ComputeLayout(ctx, root, opts)
	spinner.Stop()
	if err != nil {
		return fmt.Errorf("layout: %w", err)
	}

	model := NewBrowseModel(l, palette.Assign(l.Categories, opts.Palette), opts.Title)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	_, err = p.Run()
	return err
}

// =============================================================================
// BrowseModel - Interactive treemap explorer
// =============================================================================

// BrowseModel is the bubbletea model of the treemap browser. The cursor and
// the mouse raise hover events on tiles; the single Tooltip reacts to them
// exactly as the HTML tooltip does.
type BrowseModel struct {
	Layout  treemap.Layout
	Colors  palette.Assignment
	Title   string
	Tooltip *tooltip.Tooltip

	// Cursor indexes Layout.Tiles; -1 when the pointer is off the tiles.
	Cursor int
	Cols   int
	Rows   int

	// cells maps each grid cell to a tile index, or -1 for gaps.
	cells [][]int
	index map[*hierarchy.Node]int
}

// NewBrowseModel creates a browser over l with the tooltip hidden.
func NewBrowseModel(l treemap.Layout, colors palette.Assignment, title string) BrowseModel {
	m := BrowseModel{
		Layout:  l,
		Colors:  colors,
		Title:   title,
		Tooltip: tooltip.New(),
		Cursor:  -1,
		index:   make(map[*hierarchy.Node]int, len(l.Tiles)),
	}
	for i, t := range l.Tiles {
		m.index[t.Node] = i
	}
	return m.resize(browseDefaultCols, browseDefaultRows)
}

func (m BrowseModel) Init() tea.Cmd {
	return nil
}

func (m BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "esc":
			if !m.Tooltip.State().Visible {
				return m, tea.Quit
			}
			m.Cursor = -1
			m.Tooltip.HandleUnhover()
		case "up", "k", "left", "h", "shift+tab":
			m = m.hoverTile(m.step(-1))
		case "down", "j", "right", "l", "tab":
			m = m.hoverTile(m.step(1))
		}
	case tea.MouseMsg:
		m = m.hoverCell(msg.X, msg.Y-browseHeaderLines)
	case tea.WindowSizeMsg:
		m = m.resize(msg.Width-2, msg.Height-browseChromeLines)
	}
	return m, nil
}

// step returns the tile index delta positions from the cursor, skipping
// zero-area tiles since they cannot be hovered.
func (m BrowseModel) step(delta int) int {
	n := len(m.Layout.Tiles)
	if n == 0 {
		return -1
	}
	i := m.Cursor
	if i < 0 && delta < 0 {
		i = 0
	}
	for range n {
		i = ((i+delta)%n + n) % n
		if m.Layout.Tiles[i].Area() > 0 {
			return i
		}
	}
	return -1
}

// hoverTile moves the pointer to the centre of tile i.
func (m BrowseModel) hoverTile(i int) BrowseModel {
	if i < 0 {
		m.Cursor = -1
		m.Tooltip.HandleUnhover()
		return m
	}
	t := m.Layout.Tiles[i]
	m.Cursor = i
	m.Tooltip.HandleHover(sink.TileEvents(t, (t.X0+t.X1)/2, (t.Y0+t.Y1)/2))
	return m
}

// hoverCell moves the pointer to grid cell (col, row). Leaving the tiles
// hides the tooltip.
func (m BrowseModel) hoverCell(col, row int) BrowseModel {
	x, y, ok := m.canvasPoint(col, row)
	if !ok {
		return m.hoverTile(-1)
	}
	t, ok := m.Layout.TileAt(x, y)
	if !ok {
		return m.hoverTile(-1)
	}
	i := m.index[t.Node]
	if i == m.Cursor {
		return m
	}
	m.Cursor = i
	m.Tooltip.HandleHover(sink.TileEvents(t, x, y))
	return m
}

// canvasPoint maps the centre of a grid cell to canvas coordinates.
func (m BrowseModel) canvasPoint(col, row int) (float64, float64, bool) {
	if col < 0 || row < 0 || col >= m.Cols || row >= m.Rows {
		return 0, 0, false
	}
	x := (float64(col) + 0.5) * m.Layout.Width / float64(m.Cols)
	y := (float64(row) + 0.5) * m.Layout.Height / float64(m.Rows)
	return x, y, true
}

// resize rebuilds the cell grid for a cols x rows viewport.
func (m BrowseModel) resize(cols, rows int) BrowseModel {
	m.Cols = max(cols, browseMinCols)
	m.Rows = max(rows, browseMinRows)
	m.cells = make([][]int, m.Rows)
	for r := range m.cells {
		m.cells[r] = make([]int, m.Cols)
		for c := range m.cells[r] {
			m.cells[r][c] = -1
			if x, y, ok := m.canvasPoint(c, r); ok {
				if t, found := m.Layout.TileAt(x, y); found {
					m.cells[r][c] = m.index[t.Node]
				}
			}
		}
	}
	return m
}

func (m BrowseModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString("\n")
	b.WriteString(browseHintStyle.Render("↑/↓ or mouse: hover  esc: hide tooltip  q: quit"))
	b.WriteString("\n\n")

	b.WriteString(m.grid())
	b.WriteString("\n")
	b.WriteString(m.tooltipView())
	b.WriteString("\n")
	b.WriteString(m.legendView())

	return b.String()
}

// grid draws every cell in its tile's fill color. The hovered tile is shaded.
func (m BrowseModel) grid() string {
	styles := make(map[string]lipgloss.Style)
	style := func(fill string) lipgloss.Style {
		s, ok := styles[fill]
		if !ok {
			s = lipgloss.NewStyle().
				Background(lipgloss.Color(fill)).
				Foreground(lipgloss.Color(palette.TextColor(fill)))
			styles[fill] = s
		}
		return s
	}

	var b strings.Builder
	for _, row := range m.cells {
		for _, i := range row {
			if i < 0 {
				b.WriteString(" ")
				continue
			}
			glyph := " "
			if i == m.Cursor {
				glyph = "░"
			}
			b.WriteString(style(m.Colors.Color(m.Layout.Tiles[i].Node.Category)).Render(glyph))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// tooltipView renders the tooltip content with its line breaks applied.
func (m BrowseModel) tooltipView() string {
	st := m.Tooltip.State()
	if !st.Visible {
		return browseHintStyle.Render("(hover a tile)") + "\n"
	}
	content := strings.ReplaceAll(st.Content, " <br/> ", "\n")
	pos := browseHintStyle.Render(fmt.Sprintf("at (%g, %g)", st.Left, st.Top))
	return browseTooltipStyle.Render(content) + "\n" + pos + "\n"
}

// legendView renders one row per category with its swatch, movie count and
// total revenue.
func (m BrowseModel) legendView() string {
	counts := make(map[string]int)
	totals := make(map[string]float64)
	for _, t := range m.Layout.Tiles {
		counts[t.Node.Category]++
		totals[t.Node.Category] += t.Node.Value
	}

	categories := m.Colors.Categories()
	rows := make([][]string, 0, len(categories))
	for _, cat := range categories {
		rows = append(rows, []string{
			"  ",
			cat,
			humanize.Comma(int64(counts[cat])),
			"US$" + humanize.Commaf(totals[cat]),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	hovered := ""
	if m.Cursor >= 0 {
		hovered = m.Layout.Tiles[m.Cursor].Node.Category
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Category", "Movies", "Revenue").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if row < 0 || row >= len(categories) {
				return lipgloss.NewStyle()
			}
			cat := categories[row]
			if col == 0 {
				return lipgloss.NewStyle().Background(lipgloss.Color(m.Colors.Color(cat)))
			}
			if cat == hovered {
				return lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	return t.Render()
}
