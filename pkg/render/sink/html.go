package sink

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/treemap/pkg/render/styles"
	"github.com/matzehuels/treemap/pkg/render/tooltip"
	"github.com/matzehuels/treemap/pkg/treemap"
)

const htmlCSS = `
    body { font-family: sans-serif; margin: 20px; }
    #title, #description { text-align: center; }
    .canvas { display: flex; flex-direction: column; align-items: center; }
    .tile-text { font-size: 10px; pointer-events: none; }
    #legend text { font-size: 12px; }
    #tooltip {
      position: absolute; pointer-events: none; padding: 6px 8px;
      background: #fff; border: 1px solid #999; border-radius: 4px; font-size: 12px;
    }`

// tooltipJS mirrors tooltip.Tooltip: hover shows the tile's data with the
// pointer offset, unhover hides.
const tooltipJS = `
    (function () {
      var tip = document.getElementById('tooltip');
      var esc = function (s) {
        return s.replace(/&/g, '&amp;').replace(/</g, '&lt;').replace(/>/g, '&gt;');
      };
      document.querySelectorAll('#tree-map .tile').forEach(function (tile) {
        tile.addEventListener('mouseover', function (event) {
          var d = tile.dataset;
          tip.innerHTML = 'Name: ' + esc(d.name) + ' <br/> Category: ' + esc(d.category) + ' <br/> US$' + esc(d.value);
          tip.setAttribute('data-value', d.value);
          tip.style.opacity = %[1]s;
          tip.style.left = (event.pageX + (%[2]s)) + 'px';
          tip.style.top = (event.pageY + (%[3]s)) + 'px';
        });
        tile.addEventListener('mouseout', function () {
          tip.style.opacity = %[4]s;
          tip.removeAttribute('data-value');
        });
      });
    })();`

// RenderHTML renders a standalone page: heading, tree, legend and the
// single tooltip element with its hover script.
func RenderHTML(l treemap.Layout, opts ...Option) []byte {
	r := newRenderer(l, opts...)

	var buf bytes.Buffer
	buf.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n")
	buf.WriteString("  <meta charset=\"utf-8\">\n")
	fmt.Fprintf(&buf, "  <title>%s</title>\n", styles.EscapeXML(pageTitle(r.title)))
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", htmlCSS)
	buf.WriteString("</head>\n<body>\n")

	if r.title != "" {
		fmt.Fprintf(&buf, "<h1 id=\"title\">%s</h1>\n", styles.EscapeXML(r.title))
	}
	if r.description != "" {
		fmt.Fprintf(&buf, "<div id=\"description\">%s</div>\n", styles.EscapeXML(r.description))
	}

	buf.WriteString("<div class=\"canvas\">\n")
	fmt.Fprintf(&buf, `<svg id="tree-map" xmlns="http://www.w3.org/2000/svg" width="%s" height="%s">`+"\n",
		num(l.Width), num(l.Height))
	RenderTree(&buf, l, r.colors)
	buf.WriteString("</svg>\n")

	if r.showLegend {
		fmt.Fprintf(&buf, `<svg id="legend" xmlns="http://www.w3.org/2000/svg" width="%s" height="%s">`+"\n",
			num(r.legend.Width), num(LegendHeight(len(l.Categories), r.legend)))
		RenderLegend(&buf, l.Categories, r.colors, r.legend)
		buf.WriteString("</svg>\n")
	}
	buf.WriteString("</div>\n")

	if r.tooltip {
		fmt.Fprintf(&buf, "<div id=\"tooltip\" class=\"tooltip\" style=\"opacity: %s;\"></div>\n", num(tooltip.HiddenOpacity))
		fmt.Fprintf(&buf, "<script>%s\n</script>\n", fmt.Sprintf(tooltipJS,
			num(tooltip.ShownOpacity), num(tooltip.OffsetX), num(tooltip.OffsetY), num(tooltip.HiddenOpacity)))
	}

	buf.WriteString("</body>\n</html>\n")
	return buf.Bytes()
}

func pageTitle(title string) string {
	if title == "" {
		return "Treemap"
	}
	return title
}
