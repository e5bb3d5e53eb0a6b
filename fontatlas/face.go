// Package fontatlas rasterizes font glyphs into a texture atlas for the
// rig render interface.
//
// Text is shaped with go-text/typesetting (kerning, ligatures, complex
// scripts) and rasterized with golang.org/x/image/font. Rasterized
// glyphs are shelf-packed into a single RGBA8 atlas that uploads through
// RenderInterface.GenerateTexture; shaped glyph positions plus atlas UV
// rectangles are everything a host needs to emit textured quads.
package fontatlas

import (
	"bytes"
	"fmt"

	gotextfont "github.com/go-text/typesetting/font"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
)

// Face is a font loaded at a fixed pixel size. It carries two views of
// the same font data: a typesetting font for shaping and an x/image
// face for rasterization.
//
// A Face is not safe for concurrent use; the x/image face has internal
// caches without locking.
type Face struct {
	data   []byte
	shaped *gotextfont.Font
	raster xfont.Face
	size   float64
}

// NewFace parses TTF or OTF font data at the given size in pixels per em.
func NewFace(data []byte, size float64) (*Face, error) {
	if size <= 0 {
		return nil, fmt.Errorf("fontatlas: invalid size %v", size)
	}

	gotextFace, err := gotextfont.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("fontatlas: parse for shaping: %w", err)
	}

	otFont, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("fontatlas: parse for rasterization: %w", err)
	}
	raster, err := opentype.NewFace(otFont, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: xfont.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("fontatlas: create face: %w", err)
	}

	return &Face{
		data:   data,
		shaped: gotextFace.Font,
		raster: raster,
		size:   size,
	}, nil
}

// Size returns the face's pixel size.
func (f *Face) Size() float64 { return f.size }

// Metrics returns the face's ascent, descent, and line height in pixels.
func (f *Face) Metrics() (ascent, descent, lineHeight float64) {
	m := f.raster.Metrics()
	return fixedToFloat(m.Ascent), fixedToFloat(m.Descent), fixedToFloat(m.Height)
}

// Close releases the rasterization face's internal buffers.
func (f *Face) Close() error {
	if closer, ok := f.raster.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}
