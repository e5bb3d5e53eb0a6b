// Package software provides a pure-Go software rasterizer implementing
// the rig render interface. It needs no GPU and no cgo, renders into an
// RGBA8 pixel buffer, and serves as the reference implementation the
// other backends are checked against.
//
// Import for side effects to register with the backend registry:
//
//	import _ "github.com/gogui/rig/backend/software"
package software

import (
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/gogui/rig"
)

// Pixmap represents a rectangular pixel buffer.
type Pixmap struct {
	width  int
	height int
	data   []uint8 // RGBA format, 4 bytes per pixel
}

// NewPixmap creates a new pixmap with the given dimensions.
func NewPixmap(width, height int) *Pixmap {
	return &Pixmap{
		width:  width,
		height: height,
		data:   make([]uint8, width*height*4),
	}
}

// Width returns the width of the pixmap.
func (p *Pixmap) Width() int {
	return p.width
}

// Height returns the height of the pixmap.
func (p *Pixmap) Height() int {
	return p.height
}

// Data returns the raw pixel data (RGBA format).
func (p *Pixmap) Data() []uint8 {
	return p.data
}

// SetPixel sets the color of a single pixel, replacing what was there.
func (p *Pixmap) SetPixel(x, y int, c rig.Colour) {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return
	}
	i := (y*p.width + x) * 4
	p.data[i+0] = c.R
	p.data[i+1] = c.G
	p.data[i+2] = c.B
	p.data[i+3] = c.A
}

// GetPixel returns the color of a single pixel.
func (p *Pixmap) GetPixel(x, y int) rig.Colour {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return rig.ColourTransparent
	}
	i := (y*p.width + x) * 4
	return rig.Colour{
		R: p.data[i+0],
		G: p.data[i+1],
		B: p.data[i+2],
		A: p.data[i+3],
	}
}

// BlendPixel composites a source colour over the pixel using standard
// source-over alpha blending.
func (p *Pixmap) BlendPixel(x, y int, c rig.Colour) {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return
	}
	switch c.A {
	case 0:
		return
	case 255:
		p.SetPixel(x, y, c)
		return
	}

	i := (y*p.width + x) * 4
	sa := uint32(c.A)
	inv := 255 - sa
	p.data[i+0] = uint8((uint32(c.R)*sa + uint32(p.data[i+0])*inv) / 255)
	p.data[i+1] = uint8((uint32(c.G)*sa + uint32(p.data[i+1])*inv) / 255)
	p.data[i+2] = uint8((uint32(c.B)*sa + uint32(p.data[i+2])*inv) / 255)
	p.data[i+3] = uint8(sa + uint32(p.data[i+3])*inv/255)
}

// Clear fills the entire pixmap with a color.
func (p *Pixmap) Clear(c rig.Colour) {
	for i := 0; i < len(p.data); i += 4 {
		p.data[i+0] = c.R
		p.data[i+1] = c.G
		p.data[i+2] = c.B
		p.data[i+3] = c.A
	}
}

// Sample returns the texel at normalized coordinates (u, v), clamping
// to the edge outside [0, 1].
func (p *Pixmap) Sample(u, v float32) rig.Colour {
	x := int(u * float32(p.width))
	y := int(v * float32(p.height))
	x = min(max(x, 0), p.width-1)
	y = min(max(y, 0), p.height-1)
	return p.GetPixel(x, y)
}

// ToImage converts the pixmap to an image.RGBA.
func (p *Pixmap) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, p.width, p.height))
	copy(img.Pix, p.data)
	return img
}

// FromImage creates a pixmap from an image.
func FromImage(img image.Image) *Pixmap {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	pm := NewPixmap(width, height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, a := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			i := (y*width + x) * 4
			pm.data[i+0] = uint8(r >> 8)
			pm.data[i+1] = uint8(g >> 8)
			pm.data[i+2] = uint8(b >> 8)
			pm.data[i+3] = uint8(a >> 8)
		}
	}

	return pm
}

// SavePNG saves the pixmap to a PNG file.
func (p *Pixmap) SavePNG(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()

	img := p.ToImage()
	return png.Encode(f, img)
}

// At implements the image.Image interface.
func (p *Pixmap) At(x, y int) color.Color {
	c := p.GetPixel(x, y)
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// Bounds implements the image.Image interface.
func (p *Pixmap) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.width, p.height)
}

// ColorModel implements the image.Image interface.
func (p *Pixmap) ColorModel() color.Model {
	return color.RGBAModel
}
