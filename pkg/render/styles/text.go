// Package styles holds the text helpers shared by the treemap renderers.
package styles

import (
	"bytes"
	"encoding/xml"
)

// SplitLabel breaks a tile name into display lines. A new line starts at
// every ASCII uppercase letter that is followed by a character other than
// an ASCII uppercase letter, except at the very start of the name. Line
// content, whitespace included, is kept as is.
//
//	SplitLabel("ActionAdventure") // ["Action", "Adventure"]
//	SplitLabel("Romance")         // ["Romance"]
func SplitLabel(name string) []string {
	runes := []rune(name)
	var (
		lines []string
		start int
	)
	for i := 1; i+1 < len(runes); i++ {
		if isUpper(runes[i]) && !isUpper(runes[i+1]) {
			lines = append(lines, string(runes[start:i]))
			start = i
		}
	}
	return append(lines, string(runes[start:]))
}

func isUpper(r rune) bool { return r >= 'A' && r <= 'Z' }

// EscapeXML escapes s for use in SVG/HTML text and attribute values.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
