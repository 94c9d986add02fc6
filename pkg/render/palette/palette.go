// Package palette maps leaf categories to fill colors.
//
// Assignment is ordinal: the i-th distinct category receives the i-th
// palette color, wrapping around when there are more categories than
// colors. The same category list always produces the same mapping.
package palette

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	errs "github.com/matzehuels/treemap/pkg/errors"
)

// Pastel1 is the default nine-color qualitative scheme.
var Pastel1 = []string{
	"#fbb4ae", "#b3cde3", "#ccebc5", "#decbe4", "#fed9a6",
	"#ffffcc", "#e5d8bd", "#fddaec", "#f2f2f2",
}

// Fallback is returned by [Assignment.Color] for categories that were not
// part of the assignment.
const Fallback = "#cccccc"

// Assignment is a total mapping from the assigned categories to colors.
type Assignment struct {
	order  []string
	colors map[string]string
}

// Assign maps categories, in order, onto colors. Duplicate categories keep
// their first color. An empty colors slice selects [Pastel1].
func Assign(categories []string, colors []string) Assignment {
	if len(colors) == 0 {
		colors = Pastel1
	}
	a := Assignment{colors: make(map[string]string, len(categories))}
	for _, c := range categories {
		if _, ok := a.colors[c]; ok {
			continue
		}
		a.colors[c] = colors[len(a.order)%len(colors)]
		a.order = append(a.order, c)
	}
	return a
}

// Color returns the fill color for category.
func (a Assignment) Color(category string) string {
	if c, ok := a.colors[category]; ok {
		return c
	}
	return Fallback
}

// Categories returns the assigned categories in assignment order.
func (a Assignment) Categories() []string {
	return append([]string(nil), a.order...)
}

func (a Assignment) Len() int { return len(a.order) }

// TextColor picks black or white label text for the given fill, whichever
// contrasts better. Unparseable fills get black.
func TextColor(fill string) string {
	c, err := colorful.Hex(fill)
	if err != nil {
		return "#000000"
	}
	l, _, _ := c.Lab()
	if l < 0.55 {
		return "#ffffff"
	}
	return "#000000"
}

// Parse validates and normalizes a list of hex colors, as given in a
// configuration file or on the command line.
func Parse(colors []string) ([]string, error) {
	out := make([]string, 0, len(colors))
	for i, s := range colors {
		s = strings.TrimSpace(s)
		if !strings.HasPrefix(s, "#") {
			s = "#" + s
		}
		c, err := colorful.Hex(s)
		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidConfig, err, "palette color %d: %q is not a hex color", i, colors[i])
		}
		out = append(out, c.Hex())
	}
	if len(out) == 0 {
		return nil, errs.New(errs.ErrCodeInvalidConfig, "palette is empty")
	}
	return out, nil
}

// String renders the assignment as "category=color" pairs, for logs.
func (a Assignment) String() string {
	parts := make([]string, len(a.order))
	for i, c := range a.order {
		parts[i] = fmt.Sprintf("%s=%s", c, a.colors[c])
	}
	return strings.Join(parts, " ")
}
