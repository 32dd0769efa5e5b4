package listing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollection(t *testing.T) {
	c := NewCollection()
	a := parseWithID("A 1", "a")
	b := parseWithID("B 2", "b")
	d := parseWithID("D 3", "d")

	c.Append(a)
	c.Append(b)
	c.Append(d)
	require.Equal(t, 3, c.Len())

	t.Run("insertion order", func(t *testing.T) {
		got := c.Records()
		assert.Equal(t, []string{"a", "b", "d"}, []string{got[0].ID, got[1].ID, got[2].ID})
	})

	t.Run("records is a copy", func(t *testing.T) {
		got := c.Records()
		got[0].Title = "changed"
		assert.Equal(t, "A", c.Records()[0].Title)
	})

	t.Run("remove by id", func(t *testing.T) {
		assert.True(t, c.Remove("b"))
		assert.False(t, c.Remove("b"))
		got := c.Records()
		require.Len(t, got, 2)
		assert.Equal(t, "a", got[0].ID)
		assert.Equal(t, "d", got[1].ID)
	})

	t.Run("duplicates allowed", func(t *testing.T) {
		c.Append(a)
		assert.Equal(t, 3, c.Len())
	})

	t.Run("reset", func(t *testing.T) {
		c.Reset()
		assert.Equal(t, 0, c.Len())
		assert.Empty(t, c.Records())
	})
}

func TestBusinessFieldsWithDefaults(t *testing.T) {
	f := BusinessFields{Condition: "Excellent"}.WithDefaults()
	assert.Equal(t, "Excellent", f.Condition)
	assert.Equal(t, "Bags & Accessories", f.Category)
	assert.Equal(t, "Not Hazardous", f.Hazmat)

	assert.Equal(t, DefaultBusinessFields(), BusinessFields{}.WithDefaults())
}
