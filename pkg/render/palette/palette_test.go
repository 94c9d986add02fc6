package palette

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/matzehuels/treemap/pkg/errors"
)

func TestAssignOrdinal(t *testing.T) {
	a := Assign([]string{"Action", "Drama", "Adventure"}, nil)
	assert.Equal(t, "#fbb4ae", a.Color("Action"))
	assert.Equal(t, "#b3cde3", a.Color("Drama"))
	assert.Equal(t, "#ccebc5", a.Color("Adventure"))
	assert.Equal(t, Fallback, a.Color("Unknown"))
	assert.Equal(t, 3, a.Len())
}

func TestAssignDeterministic(t *testing.T) {
	cats := []string{"Action", "Drama", "Adventure", "Family", "Animation"}
	first := Assign(cats, nil)
	for range 5 {
		again := Assign(cats, nil)
		for _, c := range cats {
			assert.Equal(t, first.Color(c), again.Color(c), c)
		}
	}
}

func TestAssignWraps(t *testing.T) {
	cats := make([]string, len(Pastel1)+2)
	for i := range cats {
		cats[i] = fmt.Sprintf("c%d", i)
	}
	a := Assign(cats, nil)
	assert.Equal(t, a.Color("c0"), a.Color(fmt.Sprintf("c%d", len(Pastel1))))
	assert.Equal(t, a.Color("c1"), a.Color(fmt.Sprintf("c%d", len(Pastel1)+1)))
}

func TestAssignDuplicates(t *testing.T) {
	a := Assign([]string{"x", "y", "x", "z"}, []string{"#111111", "#222222", "#333333"})
	assert.Equal(t, []string{"x", "y", "z"}, a.Categories())
	assert.Equal(t, "#333333", a.Color("z"))
	assert.Equal(t, "x=#111111 y=#222222 z=#333333", a.String())
}

func TestTextColor(t *testing.T) {
	assert.Equal(t, "#000000", TextColor("#fbb4ae"))
	assert.Equal(t, "#000000", TextColor("#ffffcc"))
	assert.Equal(t, "#ffffff", TextColor("#1b1b3a"))
	assert.Equal(t, "#000000", TextColor("not-a-color"))
}

func TestParse(t *testing.T) {
	got, err := Parse([]string{"#FBB4AE", " b3cde3 "})
	require.NoError(t, err)
	assert.Equal(t, []string{"#fbb4ae", "#b3cde3"}, got)

	_, err = Parse([]string{"#zzzzzz"})
	assert.True(t, errs.Is(err, errs.ErrCodeInvalidConfig))

	_, err = Parse(nil)
	assert.True(t, errs.Is(err, errs.ErrCodeInvalidConfig))
}
