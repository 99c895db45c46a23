package collection

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

type pair struct {
	key   string
	value int
}

func newPairs() *Collection[string, pair] {
	return New(func(p pair) string { return p.key })
}

func TestCollection_AddFindList(t *testing.T) {
	c := newPairs()
	c.Add(pair{"a", 1})
	c.Add(pair{"b", 2})
	c.Add(pair{"a", 3})

	got, ok := c.Find("a")
	assert.True(t, ok)
	assert.Equal(t, 1, got.value, "Find returns the first match")

	_, ok = c.Find("z")
	assert.False(t, ok)

	want := []pair{{"a", 1}, {"b", 2}, {"a", 3}}
	if diff := cmp.Diff(want, c.List(), cmp.AllowUnexported(pair{})); diff != "" {
		t.Fatalf("List mismatch (-want +got):\n%s", diff)
	}
}

func TestCollection_RemoveAllMatches(t *testing.T) {
	c := newPairs()
	c.Add(pair{"a", 1})
	c.Add(pair{"b", 2})
	c.Add(pair{"a", 3})

	assert.Equal(t, 2, c.Remove("a"))
	assert.Equal(t, 1, c.Len())
	assert.Equal(t, 0, c.Remove("a"))

	if diff := cmp.Diff([]pair{{"b", 2}}, c.List(), cmp.AllowUnexported(pair{})); diff != "" {
		t.Fatalf("List mismatch (-want +got):\n%s", diff)
	}
}

func TestCollection_ListIsCopy(t *testing.T) {
	c := newPairs()
	c.Add(pair{"a", 1})

	list := c.List()
	list[0].value = 99

	got, _ := c.Find("a")
	assert.Equal(t, 1, got.value)
}
