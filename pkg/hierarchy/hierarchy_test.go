package hierarchy

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/matzehuels/treemap/pkg/errors"
)

const movies = `{
  "name": "Movies",
  "children": [
    {"name": "Action", "children": [
      {"name": "Avatar", "category": "Action", "value": "760505847"},
      {"name": "Inception", "category": "Action", "value": 825532764}
    ]},
    {"name": "Drama", "children": [
      {"name": "Titanic", "category": "Drama", "value": "658672302"}
    ]}
  ]
}`

func TestDecode(t *testing.T) {
	root, err := Decode([]byte(movies), "")
	require.NoError(t, err)

	assert.Equal(t, "Movies", root.Name)
	assert.False(t, root.IsLeaf())
	require.Len(t, root.Children, 2)

	leaves := root.Leaves()
	require.Len(t, leaves, 3)
	assert.Equal(t, "Avatar", leaves[0].Name)
	assert.Equal(t, 760505847.0, leaves[0].Value)
	assert.Equal(t, 825532764.0, leaves[1].Value)
	assert.True(t, leaves[2].IsLeaf())

	assert.Equal(t, 760505847.0+825532764+658672302, root.Sum())
	assert.Equal(t, []string{"Action", "Drama"}, root.Categories())
}

func TestDecodeSelector(t *testing.T) {
	doc := `{"meta": {"source": "test"}, "data": ` + movies + `}`

	root, err := Decode([]byte(doc), "$.data.children[1]")
	require.NoError(t, err)
	assert.Equal(t, "Drama", root.Name)
	assert.Len(t, root.Leaves(), 1)

	_, err = Decode([]byte(doc), "$.missing")
	assert.True(t, errs.Is(err, errs.ErrCodeInvalidSelector), "got %v", err)

	_, err = Decode([]byte(doc), "$.data.children[*]")
	assert.True(t, errs.Is(err, errs.ErrCodeInvalidSelector), "got %v", err)
}

func TestDecodeSingleLeaf(t *testing.T) {
	root, err := Decode([]byte(`{"name":"Solo","category":"Drama","value":100}`), RootSelector)
	require.NoError(t, err)
	assert.True(t, root.IsLeaf())
	assert.Equal(t, []*Node{root}, root.Leaves())
	assert.Equal(t, 100.0, root.Sum())
}

func TestDecodeEmptyChildren(t *testing.T) {
	root, err := Decode([]byte(`{"name":"Empty","children":[]}`), "")
	require.NoError(t, err)
	assert.False(t, root.IsLeaf())
	assert.Empty(t, root.Leaves())
	assert.Zero(t, root.Sum())
}

func TestDecodeInvalid(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantMsg string
	}{
		{"not json", `{"name":`, "parse JSON"},
		{"trailing data", `{"name":"a","category":"x","value":1} {}`, "trailing data"},
		{"root array", `[]`, "expected object, got array"},
		{"missing name", `{"children":[]}`, `"name"`},
		{"children not array", `{"name":"a","children":{}}`, "must be an array"},
		{"missing category", `{"name":"a","children":[{"name":"b","value":1}]}`, `$.children[0]: leaf "b": missing string field "category"`},
		{"missing value", `{"name":"b","category":"x"}`, `missing field "value"`},
		{"non-numeric string", `{"name":"b","category":"x","value":"lots"}`, "not numeric"},
		{"boolean value", `{"name":"b","category":"x","value":true}`, "got boolean"},
		{"negative", `{"name":"b","category":"x","value":-5}`, "negative"},
		{"infinite", `{"name":"b","category":"x","value":"Inf"}`, "not finite"},
		{"total overflows", `{"name":"r","children":[{"name":"A","category":"x","value":1e308},{"name":"B","category":"y","value":1e308}]}`, "$: total value overflows"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.doc), "")
			require.Error(t, err)
			assert.True(t, errs.Is(err, errs.ErrCodeInvalidDocument), "code = %v", errs.GetCode(err))
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "825532764", FormatValue(825532764))
	assert.Equal(t, "0", FormatValue(0))
	assert.Equal(t, "12.5", FormatValue(12.5))
	assert.Equal(t, "100000000000", FormatValue(1e11))
}

func TestWalkSkipsChildren(t *testing.T) {
	root, err := Decode([]byte(movies), "")
	require.NoError(t, err)

	var visited []string
	root.Walk(func(n *Node, depth int) bool {
		visited = append(visited, n.Name)
		return n.Name != "Action"
	})
	assert.Equal(t, []string{"Movies", "Action", "Drama", "Titanic"}, visited)
}

type stubFetcher struct {
	data []byte
	err  error
	url  string
}

func (s *stubFetcher) Fetch(_ context.Context, url string) ([]byte, error) {
	s.url = url
	return s.data, s.err
}

func TestLoad(t *testing.T) {
	f := &stubFetcher{data: []byte(movies)}
	root, err := Load(context.Background(), f, DefaultURL, "")
	require.NoError(t, err)
	assert.Equal(t, DefaultURL, f.url)
	assert.Len(t, root.Leaves(), 3)

	fetchErr := errs.New(errs.ErrCodeNetwork, "boom")
	_, err = Load(context.Background(), &stubFetcher{err: fetchErr}, DefaultURL, "")
	assert.True(t, errors.Is(err, fetchErr))
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "movies.json")
	require.NoError(t, os.WriteFile(path, []byte(movies), 0o644))

	root, err := ReadFile(path, "")
	require.NoError(t, err)
	assert.Equal(t, "Movies", root.Name)

	_, err = ReadFile(filepath.Join(dir, "missing.json"), "")
	assert.True(t, errs.Is(err, errs.ErrCodeFileNotFound), "got %v", err)
}
