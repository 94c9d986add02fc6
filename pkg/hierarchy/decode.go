package hierarchy

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ohler55/ojg/jp"

	errs "github.com/matzehuels/treemap/pkg/errors"
)

// RootSelector selects the document itself.
const RootSelector = "$"

// Decode parses a JSON document and builds the tree rooted at the node
// matched by selector. The selector must match exactly one object.
func Decode(data []byte, selector string) (*Node, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidDocument, err, "parse JSON")
	}
	if dec.More() {
		return nil, errs.New(errs.ErrCodeInvalidDocument, "parse JSON: trailing data after document")
	}

	root, path, err := selectRoot(doc, selector)
	if err != nil {
		return nil, err
	}
	n, err := build(root, path)
	if err != nil {
		return nil, err
	}
	if total := n.Sum(); math.IsInf(total, 0) {
		return nil, invalid(path, "total value overflows")
	}
	return n, nil
}

func selectRoot(doc any, selector string) (any, string, error) {
	selector = strings.TrimSpace(selector)
	if selector == "" || selector == RootSelector {
		return doc, RootSelector, nil
	}

	x, err := jp.ParseString(selector)
	if err != nil {
		return nil, "", errs.Wrap(errs.ErrCodeInvalidSelector, err, "invalid JSONPath %q", selector)
	}

	matches := x.Get(doc)
	switch len(matches) {
	case 0:
		return nil, "", errs.New(errs.ErrCodeInvalidSelector, "JSONPath %q matched nothing", selector)
	case 1:
		return matches[0], selector, nil
	default:
		return nil, "", errs.New(errs.ErrCodeInvalidSelector, "JSONPath %q matched %d values, want 1", selector, len(matches))
	}
}

func build(v any, path string) (*Node, error) {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, invalid(path, "expected object, got %s", kindOf(v))
	}

	name, ok := obj["name"].(string)
	if !ok {
		return nil, invalid(path, "missing string field \"name\"")
	}

	if raw, ok := obj["children"]; ok {
		items, ok := raw.([]any)
		if !ok {
			return nil, invalid(path, "\"children\" must be an array, got %s", kindOf(raw))
		}
		n := &Node{Name: name, Children: make([]*Node, 0, len(items))}
		for i, item := range items {
			child, err := build(item, fmt.Sprintf("%s.children[%d]", path, i))
			if err != nil {
				return nil, err
			}
			n.Children = append(n.Children, child)
		}
		return n, nil
	}

	category, ok := obj["category"].(string)
	if !ok {
		return nil, invalid(path, "leaf %q: missing string field \"category\"", name)
	}
	raw, ok := obj["value"]
	if !ok {
		return nil, invalid(path, "leaf %q: missing field \"value\"", name)
	}
	value, err := parseValue(raw)
	if err != nil {
		return nil, invalid(path, "leaf %q: %v", name, err)
	}
	return &Node{Name: name, Category: category, Value: value}, nil
}

// parseValue accepts JSON numbers and numeric strings. Negative, NaN and
// infinite values are rejected since they have no area.
func parseValue(raw any) (float64, error) {
	var (
		v   float64
		err error
	)
	switch x := raw.(type) {
	case json.Number:
		v, err = x.Float64()
	case string:
		v, err = strconv.ParseFloat(strings.TrimSpace(x), 64)
	default:
		return 0, fmt.Errorf("value must be a number or numeric string, got %s", kindOf(raw))
	}
	if err != nil {
		return 0, fmt.Errorf("value %v is not numeric", raw)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("value %v is not finite", raw)
	}
	if v < 0 {
		return 0, fmt.Errorf("value %v is negative", raw)
	}
	return v, nil
}

func invalid(path, format string, args ...any) error {
	return errs.New(errs.ErrCodeInvalidDocument, "%s: %s", path, fmt.Sprintf(format, args...))
}

func kindOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case json.Number:
		return "number"
	case bool:
		return "boolean"
	default:
		return fmt.Sprintf("%T", v)
	}
}
