package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBindings_InsertionOrder(t *testing.T) {
	b := NewBindings()
	b.Add("zeta", "z1")
	b.Add("alpha", "a1")
	b.Add("zeta", "z2", "z3")

	assert.Equal(t, []string{"zeta", "alpha"}, b.Keys())
	assert.Equal(t, []string{"z1", "z2", "z3"}, b.Get("zeta"))
	assert.Equal(t, 2, b.Len())
	assert.Nil(t, b.Get("missing"))
}

func TestBindings_Nil(t *testing.T) {
	var b *Bindings
	assert.Nil(t, b.Keys())
	assert.Nil(t, b.Get("x"))
	assert.Zero(t, b.Len())
}

func TestSet_InsertionOrderAndReplace(t *testing.T) {
	s := NewSet()
	s.Add(&Template{Name: "b", Markup: "1"})
	s.Add(&Template{Name: "a", Markup: "2"})
	s.Add(&Template{Name: "b", Markup: "3"})

	require.Equal(t, 2, s.Len())
	got := s.Templates()
	assert.Equal(t, "b", got[0].Name)
	assert.Equal(t, "3", got[0].Markup)
	assert.Equal(t, "a", got[1].Name)

	tmpl, ok := s.Get("a")
	require.True(t, ok)
	assert.Equal(t, "2", tmpl.Markup)
}

func TestParserFunc(t *testing.T) {
	p := ParserFunc(func(markup, key string) (*Set, error) {
		s := NewSet()
		s.Add(&Template{Name: key, Markup: markup})
		return s, nil
	})

	set, err := p.Parse("<p></p>", "k")
	require.NoError(t, err)
	assert.Equal(t, 1, set.Len())
}
