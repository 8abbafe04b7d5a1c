package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type record struct {
	ID   string
	Name string
}

func newRecords(ids ...string) []record {
	out := make([]record, len(ids))
	for i, id := range ids {
		out[i] = record{ID: id}
	}
	return out
}

func ids(items []record) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.ID
	}
	return out
}

func TestCollection_ReplaceKeepsOrder(t *testing.T) {
	c := newCollection(func(r record) string { return r.ID })
	c.replace(newRecords("b", "a", "c"))

	assert.Equal(t, []string{"b", "a", "c"}, ids(c.items()))
	assert.Equal(t, 3, c.len())
}

func TestCollection_PrependAndAppend(t *testing.T) {
	c := newCollection(func(r record) string { return r.ID })
	c.replace(newRecords("a"))

	c.prepend(record{ID: "front"})
	c.append(record{ID: "back"})
	assert.Equal(t, []string{"front", "a", "back"}, ids(c.items()))

	// Re-inserting an existing id replaces in place, order unchanged.
	c.prepend(record{ID: "back", Name: "renamed"})
	assert.Equal(t, []string{"front", "a", "back"}, ids(c.items()))
	got, _ := c.get("back")
	assert.Equal(t, "renamed", got.Name)
}

func TestCollection_PrependIfAbsent(t *testing.T) {
	c := newCollection(func(r record) string { return r.ID })
	c.replace(newRecords("a"))

	assert.True(t, c.prependIfAbsent(record{ID: "b"}))
	assert.False(t, c.prependIfAbsent(record{ID: "b", Name: "dup"}), "duplicate delivery is a no-op")

	assert.Equal(t, []string{"b", "a"}, ids(c.items()))
	got, _ := c.get("b")
	assert.Empty(t, got.Name, "duplicate insert must not overwrite")
}

func TestCollection_SetIgnoresUnknownIDs(t *testing.T) {
	c := newCollection(func(r record) string { return r.ID })
	c.replace(newRecords("a"))

	assert.False(t, c.set(record{ID: "ghost"}))
	assert.Equal(t, 1, c.len())

	assert.True(t, c.set(record{ID: "a", Name: "updated"}))
	got, _ := c.get("a")
	assert.Equal(t, "updated", got.Name)
}

func TestCollection_Remove(t *testing.T) {
	c := newCollection(func(r record) string { return r.ID })
	c.replace(newRecords("a", "b", "c"))

	assert.True(t, c.remove("b"))
	assert.False(t, c.remove("b"))
	assert.Equal(t, []string{"a", "c"}, ids(c.items()))

	_, ok := c.get("b")
	assert.False(t, ok)
}

func TestCollection_RemoveWhere(t *testing.T) {
	c := newCollection(func(r record) string { return r.ID })
	c.replace([]record{
		{ID: "1", Name: "keep"},
		{ID: "2", Name: "drop"},
		{ID: "3", Name: "keep"},
		{ID: "4", Name: "drop"},
	})

	removed := c.removeWhere(func(r record) bool { return r.Name == "drop" })
	assert.Equal(t, 2, removed)
	assert.Equal(t, []string{"1", "3"}, ids(c.items()))
}
