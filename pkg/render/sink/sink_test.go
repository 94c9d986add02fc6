package sink

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"errors"
	"io"
	"slices"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/matzehuels/treemap/pkg/hierarchy"
	"github.com/matzehuels/treemap/pkg/render/palette"
	"github.com/matzehuels/treemap/pkg/render/tooltip"
	"github.com/matzehuels/treemap/pkg/treemap"
)

func testTree() *hierarchy.Node {
	leaf := func(name, cat string, v float64) *hierarchy.Node {
		return &hierarchy.Node{Name: name, Category: cat, Value: v}
	}
	return &hierarchy.Node{Name: "Movies", Children: []*hierarchy.Node{
		{Name: "Action", Children: []*hierarchy.Node{
			leaf("Inception", "Action", 825532764),
			leaf("ActionAdventure", "Action", 500000000),
		}},
		{Name: "Drama", Children: []*hierarchy.Node{leaf("Titanic", "Drama", 658672302)}},
		{Name: "Comedy", Children: []*hierarchy.Node{leaf("Ted", "Comedy", 218815487)}},
		{Name: "Horror", Children: []*hierarchy.Node{leaf("It", "Horror", 127481748)}},
		{Name: "Family", Children: []*hierarchy.Node{leaf("Cats & Dogs", "Family", 100000000)}},
	}}
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func hasClass(n *html.Node, class string) bool {
	v, _ := attr(n, "class")
	return n.Type == html.ElementNode && slices.Contains(strings.Fields(v), class)
}

func findAll(root *html.Node, match func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if match(n) {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return out
}

func byID(id string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		v, ok := attr(n, "id")
		return n.Type == html.ElementNode && ok && v == id
	}
}

func parseHTML(t *testing.T, data []byte) *html.Node {
	t.Helper()
	doc, err := html.Parse(bytes.NewReader(data))
	require.NoError(t, err)
	return doc
}

func TestRenderHTMLContract(t *testing.T) {
	l := treemap.Compute(testTree(), treemap.DefaultOptions())
	colors := palette.Assign(l.Categories, nil)
	doc := parseHTML(t, RenderHTML(l, WithColors(colors), WithTitle("Movie Sales", "Top movies")))

	tiles := findAll(doc, func(n *html.Node) bool { return hasClass(n, "tile") })
	require.Len(t, tiles, len(l.Tiles))
	for i, tile := range tiles {
		want := l.Tiles[i]
		name, _ := attr(tile, "data-name")
		category, _ := attr(tile, "data-category")
		value, _ := attr(tile, "data-value")
		fill, _ := attr(tile, "fill")
		assert.Equal(t, want.Node.Name, name)
		assert.Equal(t, want.Node.Category, category)
		assert.Equal(t, hierarchy.FormatValue(want.Node.Value), value)
		assert.Equal(t, colors.Color(category), fill)

		w, _ := attr(tile, "width")
		h, _ := attr(tile, "height")
		wf, err := strconv.ParseFloat(w, 64)
		require.NoError(t, err)
		hf, err := strconv.ParseFloat(h, 64)
		require.NoError(t, err)
		assert.InDelta(t, want.Width(), wf, 1e-3)
		assert.InDelta(t, want.Height(), hf, 1e-3)
	}

	tips := findAll(doc, byID("tooltip"))
	require.Len(t, tips, 1)
	style, _ := attr(tips[0], "style")
	assert.Equal(t, "opacity: 0;", style)

	require.Len(t, findAll(doc, byID("tree-map")), 1)
	require.Len(t, findAll(doc, byID("legend")), 1)
	require.Len(t, findAll(doc, byID("title")), 1)

	items := findAll(doc, func(n *html.Node) bool { return hasClass(n, "legend-item") })
	require.Len(t, items, len(l.Categories))
	for i, item := range items {
		fill, _ := attr(item, "fill")
		assert.Equal(t, colors.Color(l.Categories[i]), fill)
	}
}

func TestRenderHTMLScript(t *testing.T) {
	l := treemap.Compute(testTree(), treemap.DefaultOptions())
	out := string(RenderHTML(l))

	assert.Contains(t, out, "tip.style.opacity = 0.9;")
	assert.Contains(t, out, "event.pageX + (10)")
	assert.Contains(t, out, "event.pageY + (-28)")
	assert.Contains(t, out, "' <br/> Category: '")
	assert.Equal(t, 1, strings.Count(out, `id="tooltip"`))
}

func TestRenderHTMLWithoutTooltipOrLegend(t *testing.T) {
	l := treemap.Compute(testTree(), treemap.DefaultOptions())
	doc := parseHTML(t, RenderHTML(l, WithoutTooltip(), WithoutLegend()))
	assert.Empty(t, findAll(doc, byID("tooltip")))
	assert.Empty(t, findAll(doc, byID("legend")))
	assert.Empty(t, findAll(doc, func(n *html.Node) bool { return n.Type == html.ElementNode && n.Data == "script" }))
}

func TestTileLabels(t *testing.T) {
	l := treemap.Compute(testTree(), treemap.DefaultOptions())
	var buf bytes.Buffer
	RenderTree(&buf, l, palette.Assign(l.Categories, nil))
	doc := parseHTML(t, []byte("<svg>"+buf.String()+"</svg>"))

	texts := findAll(doc, func(n *html.Node) bool { return hasClass(n, "tile-text") })
	require.Len(t, texts, len(l.Tiles))

	labels := map[string][]string{}
	for i, text := range texts {
		var lines []string
		for c := text.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode || c.Data != "tspan" {
				continue
			}
			x, _ := attr(c, "x")
			dy, _ := attr(c, "dy")
			assert.Equal(t, "5", x)
			assert.Equal(t, "1.2em", dy)
			lines = append(lines, c.FirstChild.Data)
		}
		labels[l.Tiles[i].Node.Name] = lines
	}
	assert.Equal(t, []string{"Action", "Adventure"}, labels["ActionAdventure"])
	assert.Equal(t, []string{"Titanic"}, labels["Titanic"])
	assert.Equal(t, []string{"Cats & ", "Dogs"}, labels["Cats & Dogs"])
}

func TestCellTransform(t *testing.T) {
	l := treemap.Compute(&hierarchy.Node{Name: "Solo", Category: "Drama", Value: 1}, treemap.DefaultOptions())
	var buf bytes.Buffer
	RenderTree(&buf, l, palette.Assign(l.Categories, nil))
	assert.Contains(t, buf.String(), `<g class="cell" transform="translate(0, 0)">`)
	assert.Contains(t, buf.String(), `width="1000" height="600" fill="#fbb4ae"`)
}

func TestLegendPosition(t *testing.T) {
	opts := DefaultLegendOptions()
	tests := []struct {
		i    int
		x, y float64
	}{
		{0, 0, 0},
		{1, 200, 0},
		{2, 400, 0},
		{3, 0, 25},
		{4, 200, 25},
		{7, 200, 50},
	}
	for _, tt := range tests {
		x, y := LegendPosition(tt.i, opts)
		assert.Equal(t, tt.x, x, "x of item %d", tt.i)
		assert.Equal(t, tt.y, y, "y of item %d", tt.i)
	}

	x, y := LegendPosition(5, LegendOptions{Width: 100, Size: 10, Gap: 5})
	assert.Equal(t, 0.0, x)
	assert.Equal(t, 75.0, y)
}

func TestRenderLegend(t *testing.T) {
	cats := []string{"Action", "Drama", "Adventure", "Horror"}
	var buf bytes.Buffer
	RenderLegend(&buf, cats, palette.Assign(cats, nil), DefaultLegendOptions())
	out := buf.String()

	assert.Contains(t, out, `<g transform="translate(90, 0)">`)
	assert.Contains(t, out, `<g transform="translate(0, 25)"><rect class="legend-item" width="15" height="15" fill="#decbe4"/><text x="18" y="12">Horror</text></g>`)
	assert.Equal(t, 50.0, LegendHeight(len(cats), DefaultLegendOptions()))
	assert.Equal(t, 0.0, LegendHeight(0, DefaultLegendOptions()))
}

func TestRenderSVGWellFormed(t *testing.T) {
	l := treemap.Compute(testTree(), treemap.DefaultOptions())
	out := RenderSVG(l)

	dec := xml.NewDecoder(bytes.NewReader(out))
	var tiles, titles int
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		if se, ok := tok.(xml.StartElement); ok {
			switch se.Name.Local {
			case "rect":
				for _, a := range se.Attr {
					if a.Name.Local == "class" && a.Value == "tile" {
						tiles++
					}
				}
			case "title":
				titles++
			}
		}
	}
	assert.Equal(t, len(l.Tiles), tiles)
	assert.Equal(t, len(l.Tiles), titles)
	assert.Contains(t, string(out), `height="670"`)
}

func TestRenderJSON(t *testing.T) {
	l := treemap.Compute(testTree(), treemap.DefaultOptions())
	data, err := RenderJSON(l)
	require.NoError(t, err)

	var got LayoutJSON
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, 1000.0, got.Width)
	require.Len(t, got.Tiles, len(l.Tiles))
	assert.Equal(t, "Inception", got.Tiles[0].Name)
	assert.Equal(t, "825532764", got.Tiles[0].Value)
	assert.Equal(t, "#fbb4ae", got.Tiles[0].Fill)
	require.Len(t, got.Categories, len(l.Categories))
	assert.Equal(t, "Action", got.Categories[0].Name)
}

func TestTileEvents(t *testing.T) {
	l := treemap.Compute(testTree(), treemap.DefaultOptions())
	tip := tooltip.New()

	tip.HandleHover(TileEvents(l.Tiles[0], 40, 50))
	s := tip.State()
	assert.Equal(t, "Name: Inception <br/> Category: Action <br/> US$825532764", s.Content)
	assert.Equal(t, 0.9, s.Opacity)
	assert.Equal(t, "825532764", s.Value)

	tip.HandleUnhover()
	assert.Equal(t, 0.0, tip.State().Opacity)
}
