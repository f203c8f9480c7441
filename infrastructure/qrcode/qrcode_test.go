package qrcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewGenerator_DefaultSize(t *testing.T) {
	assert.Equal(t, 256, NewGenerator(0).size)
	assert.Equal(t, 128, NewGenerator(128).size)
}

func TestThumbnail(t *testing.T) {
	// Arrange
	g := NewGenerator(256)

	// Act
	png, err := g.Thumbnail("WIFI:S:Home;T:WPA;P:secret1;;")

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG\r\n\x1a\n"), png[:8])
}
