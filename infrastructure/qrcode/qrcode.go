package qrcode

import (
	"github.com/skip2/go-qrcode"
)

// Generator produces small, unstyled QR previews for history list entries.
// Full styled rendering lives in the renderer package; thumbnails skip the
// styling pipeline entirely.
type Generator struct {
	size int
}

// NewGenerator creates a thumbnail generator emitting size x size PNGs.
func NewGenerator(size int) *Generator {
	if size <= 0 {
		size = 256
	}
	return &Generator{size: size}
}

// Thumbnail renders the encoded payload as a plain black-on-white PNG.
func (g *Generator) Thumbnail(value string) ([]byte, error) {
	png, err := qrcode.Encode(value, qrcode.Medium, g.size)
	if err != nil {
		return nil, err
	}

	return png, nil
}
