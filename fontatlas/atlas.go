package fontatlas

import (
	"image"

	xfont "golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/gogui/rig"
)

// glyphPadding is the gap in pixels between packed glyphs, preventing
// samples from bleeding into neighbours when filtering.
const glyphPadding = 1

// Glyph is a rasterized glyph's placement in the atlas.
type Glyph struct {
	// U0, V0, U1, V1 are the glyph's normalized texture rectangle.
	U0, V0, U1, V1 float32
	// Width and Height are the bitmap size in pixels.
	Width, Height int
	// BearingX is the offset from the pen to the bitmap's left edge.
	BearingX float64
	// BearingY is the offset from the baseline up to the bitmap's top edge.
	BearingY float64
	// Advance is the unkerned pen advance in pixels.
	Advance float64
}

// Atlas shelf-packs rasterized glyphs into one RGBA8 texture. Glyphs
// are white with shaped alpha, so vertex colours tint text for free.
//
// Packing is first-fit by shelf: glyphs fill the current row left to
// right and open a new row when the current one is full. Not optimal,
// but stable and fast, and UI glyph sets are small.
type Atlas struct {
	width, height int
	pixels        []byte

	penX, penY  int
	shelfHeight int

	glyphs map[rune]Glyph

	texture  rig.TextureHandle
	uploaded bool
}

// NewAtlas creates an empty atlas of the given pixel dimensions.
func NewAtlas(width, height int) *Atlas {
	return &Atlas{
		width:  width,
		height: height,
		pixels: make([]byte, width*height*4),
		glyphs: make(map[rune]Glyph),
	}
}

// Size returns the atlas dimensions in pixels.
func (a *Atlas) Size() rig.Vector2i {
	return rig.Vector2i{X: a.width, Y: a.height}
}

// Pixels returns the tightly packed RGBA8 atlas contents.
func (a *Atlas) Pixels() []byte { return a.pixels }

// GlyphCount returns the number of packed glyphs.
func (a *Atlas) GlyphCount() int { return len(a.glyphs) }

// Glyph returns the atlas entry for a rune, rasterizing and packing it
// on first request. Returns false if the face has no glyph for the rune
// or the atlas is full.
func (a *Atlas) Glyph(face *Face, r rune) (Glyph, bool) {
	if g, ok := a.glyphs[r]; ok {
		return g, true
	}

	bounds, advance, ok := face.raster.GlyphBounds(r)
	if !ok {
		return Glyph{}, false
	}

	minX := bounds.Min.X.Floor()
	minY := bounds.Min.Y.Floor()
	maxX := bounds.Max.X.Ceil()
	maxY := bounds.Max.Y.Ceil()
	width := maxX - minX
	height := maxY - minY

	g := Glyph{
		Width:    width,
		Height:   height,
		BearingX: float64(minX),
		BearingY: float64(-minY),
		Advance:  fixedToFloat(advance),
	}

	// Whitespace rasterizes to nothing but still carries an advance.
	if width <= 0 || height <= 0 {
		a.glyphs[r] = g
		return g, true
	}

	x, y, ok := a.pack(width, height)
	if !ok {
		rig.Logger().Warn("glyph atlas full", "rune", string(r),
			"width", a.width, "height", a.height)
		return Glyph{}, false
	}

	mask := image.NewAlpha(image.Rect(0, 0, width, height))
	drawer := &xfont.Drawer{
		Dst:  mask,
		Src:  image.White,
		Face: face.raster,
		Dot:  fixed.Point26_6{X: -bounds.Min.X, Y: -bounds.Min.Y},
	}
	drawer.DrawString(string(r))

	a.blitMask(mask, x, y)

	g.U0 = float32(x) / float32(a.width)
	g.V0 = float32(y) / float32(a.height)
	g.U1 = float32(x+width) / float32(a.width)
	g.V1 = float32(y+height) / float32(a.height)

	a.glyphs[r] = g
	a.uploaded = false
	return g, true
}

// pack reserves a width x height region, returning its top-left corner.
func (a *Atlas) pack(width, height int) (int, int, bool) {
	if width > a.width || height > a.height {
		return 0, 0, false
	}
	if a.penX+width > a.width {
		a.penX = 0
		a.penY += a.shelfHeight + glyphPadding
		a.shelfHeight = 0
	}
	if a.penY+height > a.height {
		return 0, 0, false
	}

	x, y := a.penX, a.penY
	a.penX += width + glyphPadding
	if height > a.shelfHeight {
		a.shelfHeight = height
	}
	return x, y, true
}

// blitMask writes an alpha mask into the atlas as white RGBA.
func (a *Atlas) blitMask(mask *image.Alpha, x, y int) {
	bounds := mask.Bounds()
	for my := bounds.Min.Y; my < bounds.Max.Y; my++ {
		for mx := bounds.Min.X; mx < bounds.Max.X; mx++ {
			alpha := mask.AlphaAt(mx, my).A
			i := ((y+my-bounds.Min.Y)*a.width + x + mx - bounds.Min.X) * 4
			a.pixels[i+0] = 255
			a.pixels[i+1] = 255
			a.pixels[i+2] = 255
			a.pixels[i+3] = alpha
		}
	}
}

// Texture uploads the atlas through the render interface if needed and
// returns the texture handle. New glyphs invalidate the upload; the
// next call regenerates the texture.
func (a *Atlas) Texture(ri rig.RenderInterface) rig.TextureHandle {
	if a.uploaded {
		return a.texture
	}
	if a.texture.IsValid() {
		ri.ReleaseTexture(a.texture)
		a.texture = rig.InvalidTextureHandle
	}

	handle, ok := ri.GenerateTexture(a.pixels, a.Size())
	if !ok {
		rig.Logger().Warn("glyph atlas upload failed",
			"width", a.width, "height", a.height)
		return rig.InvalidTextureHandle
	}
	a.texture = handle
	a.uploaded = true
	return handle
}

// Release frees the uploaded texture, if any.
func (a *Atlas) Release(ri rig.RenderInterface) {
	if a.texture.IsValid() {
		ri.ReleaseTexture(a.texture)
		a.texture = rig.InvalidTextureHandle
	}
	a.uploaded = false
}

// AppendText shapes text and appends one textured quad per visible
// glyph to the geometry. origin is the baseline start. Returns the pen
// position after the last glyph, so runs can continue where the
// previous one ended.
//
// The geometry must be rendered with the atlas texture; pass
// Texture(ri) as the geometry's texture handle.
func (a *Atlas) AppendText(g *rig.Geometry, face *Face, text string, origin rig.Vector2f, colour rig.Colour) rig.Vector2f {
	pen := origin
	for _, sg := range Shape(face, text) {
		glyph, ok := a.Glyph(face, sg.Rune)
		if !ok {
			continue
		}
		if glyph.Width > 0 && glyph.Height > 0 {
			g.GenerateQuad(
				rig.Vector2f{
					X: origin.X + float32(sg.X+glyph.BearingX),
					Y: origin.Y + float32(sg.Y-glyph.BearingY),
				},
				rig.Vector2f{X: float32(glyph.Width), Y: float32(glyph.Height)},
				colour,
				rig.Vector2f{X: glyph.U0, Y: glyph.V0},
				rig.Vector2f{X: glyph.U1, Y: glyph.V1},
			)
		}
		pen.X = origin.X + float32(sg.X+sg.XAdvance)
	}
	return pen
}
