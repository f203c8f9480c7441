package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNamespaceLRU_SetAndGet(t *testing.T) {
	// Arrange
	c := NewNamespaceLRU(4)

	// Act
	c.Set("RENDER", "a", []byte("png-a"))

	// Assert
	value, found := c.Get("RENDER", "a")
	assert.True(t, found)
	assert.Equal(t, []byte("png-a"), value)

	_, found = c.Get("RENDER", "missing")
	assert.False(t, found)
}

func TestNamespaceLRU_NamespacesAreIsolated(t *testing.T) {
	// Arrange
	c := NewNamespaceLRU(4)
	c.Set("RENDER", "same-key", "render-value")
	c.Set("THUMB", "same-key", "thumb-value")

	// Act / Assert
	renderValue, _ := c.Get("RENDER", "same-key")
	thumbValue, _ := c.Get("THUMB", "same-key")
	assert.Equal(t, "render-value", renderValue)
	assert.Equal(t, "thumb-value", thumbValue)
}

func TestNamespaceLRU_EvictsLeastRecentlyUsed(t *testing.T) {
	// Arrange
	c := NewNamespaceLRU(2)
	c.Set("NS", "a", 1)
	c.Set("NS", "b", 2)

	// Touch "a" so "b" becomes the eviction candidate
	_, found := c.Get("NS", "a")
	assert.True(t, found)

	// Act
	c.Set("NS", "c", 3)

	// Assert
	_, found = c.Get("NS", "b")
	assert.False(t, found)
	_, found = c.Get("NS", "a")
	assert.True(t, found)
	_, found = c.Get("NS", "c")
	assert.True(t, found)
	assert.Equal(t, 2, c.Size())
}

func TestNamespaceLRU_Invalidate(t *testing.T) {
	// Arrange
	c := NewNamespaceLRU(4)
	c.Set("THUMB", "entry-1", []byte("png"))

	// Act
	c.Invalidate("THUMB", "entry-1")

	// Assert
	_, found := c.Get("THUMB", "entry-1")
	assert.False(t, found)
	assert.Equal(t, 0, c.Size())
}

func TestNamespaceLRU_InvalidateNamespace(t *testing.T) {
	// Arrange
	c := NewNamespaceLRU(8)
	c.Set("THUMB", "a", 1)
	c.Set("THUMB", "b", 2)
	c.Set("RENDER", "a", 3)

	// Act
	c.InvalidateNamespace("THUMB")

	// Assert
	_, found := c.Get("THUMB", "a")
	assert.False(t, found)
	_, found = c.Get("THUMB", "b")
	assert.False(t, found)
	_, found = c.Get("RENDER", "a")
	assert.True(t, found)
	assert.Equal(t, 1, c.Size())
}

func TestNamespaceLRU_UpdateExistingKey(t *testing.T) {
	// Arrange
	c := NewNamespaceLRU(2)
	c.Set("NS", "a", "old")

	// Act
	c.Set("NS", "a", "new")

	// Assert
	value, found := c.Get("NS", "a")
	assert.True(t, found)
	assert.Equal(t, "new", value)
	assert.Equal(t, 1, c.Size())
}
