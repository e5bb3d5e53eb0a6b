// Package ebiten renders the interface triangle list through an ebiten
// offscreen image, for hosts embedding the interface in an ebiten game
// loop. The render target is an *ebiten.Image the host can compose into
// its own draw pass; Target reads the pixels back for headless use.
//
// Register by blank import:
//
//	import _ "github.com/gogui/rig/backend/ebiten"
package ebiten

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	// Image formats decodable by LoadTexture.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	eb "github.com/hajimehoshi/ebiten/v2"

	"github.com/gogui/rig"
	"github.com/gogui/rig/backend"
)

func init() {
	backend.Register(backend.BackendEbiten, func() backend.RenderBackend {
		return New()
	})
}

// compiledGeometry is a triangle list pre-converted to ebiten's vertex
// layout, minus the per-draw translation.
type compiledGeometry struct {
	vertices []eb.Vertex
	indices  []uint16
	texture  rig.TextureHandle
}

// Backend renders through ebiten. It implements backend.RenderBackend;
// the zero value is not usable, construct with New and call Init.
type Backend struct {
	rig.ZeroTexelOffset

	target *eb.Image
	white  *eb.Image

	textures    map[rig.TextureHandle]*eb.Image
	nextTexture rig.TextureHandle

	geometries   map[rig.GeometryHandle]*compiledGeometry
	nextGeometry rig.GeometryHandle

	scissorEnabled bool
	scissorRegion  rig.Rect

	clearColour rig.Colour
}

// New creates an uninitialized ebiten backend.
func New() *Backend {
	return &Backend{
		textures:     make(map[rig.TextureHandle]*eb.Image),
		nextTexture:  1,
		geometries:   make(map[rig.GeometryHandle]*compiledGeometry),
		nextGeometry: 1,
		clearColour:  rig.ColourWhite,
	}
}

// Name implements backend.RenderBackend.
func (b *Backend) Name() string { return backend.BackendEbiten }

// Init implements backend.RenderBackend.
func (b *Backend) Init(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("ebiten: invalid target size %dx%d", width, height)
	}
	b.target = eb.NewImage(width, height)
	b.white = eb.NewImage(1, 1)
	b.white.Fill(color.White)
	b.clear()
	rig.Logger().Info("ebiten backend initialized", "width", width, "height", height)
	return nil
}

// Close implements backend.RenderBackend.
func (b *Backend) Close() {
	if b.target != nil {
		b.target.Deallocate()
		b.target = nil
	}
	if b.white != nil {
		b.white.Deallocate()
		b.white = nil
	}
	for _, img := range b.textures {
		img.Deallocate()
	}
	b.textures = make(map[rig.TextureHandle]*eb.Image)
	b.geometries = make(map[rig.GeometryHandle]*compiledGeometry)
}

// SetClearColour sets the colour BeginFrame fills the target with.
func (b *Backend) SetClearColour(c rig.Colour) { b.clearColour = c }

func (b *Backend) clear() {
	b.target.Fill(color.RGBA{
		R: b.clearColour.R,
		G: b.clearColour.G,
		B: b.clearColour.B,
		A: b.clearColour.A,
	})
}

// BeginFrame implements backend.RenderBackend.
func (b *Backend) BeginFrame() {
	if b.target != nil {
		b.clear()
	}
}

// EndFrame implements backend.RenderBackend. Draws hit the target image
// directly; nothing to submit.
func (b *Backend) EndFrame() error { return nil }

// Target implements backend.RenderBackend, reading the target image
// back as tightly packed RGBA8.
func (b *Backend) Target() ([]byte, int, int) {
	if b.target == nil {
		return nil, 0, 0
	}
	bounds := b.target.Bounds()
	pixels := make([]byte, 4*bounds.Dx()*bounds.Dy())
	b.target.ReadPixels(pixels)
	return pixels, bounds.Dx(), bounds.Dy()
}

// TargetImage returns the render target for composition into a host's
// draw pass.
func (b *Backend) TargetImage() *eb.Image { return b.target }

// dst returns the image draws render into, restricted to the scissor
// region when one is active.
func (b *Backend) dst() *eb.Image {
	if !b.scissorEnabled {
		return b.target
	}
	bounds := b.target.Bounds()
	clip := rig.Rect{Width: bounds.Dx(), Height: bounds.Dy()}.Intersect(b.scissorRegion)
	if clip.Empty() {
		return nil
	}
	sub := b.target.SubImage(image.Rect(clip.X, clip.Y, clip.X+clip.Width, clip.Y+clip.Height))
	return sub.(*eb.Image)
}

// source resolves a texture handle to the image triangles sample,
// falling back to the white pixel for untextured draws.
func (b *Backend) source(texture rig.TextureHandle) *eb.Image {
	if texture.IsValid() {
		if img, ok := b.textures[texture]; ok {
			return img
		}
		rig.Logger().Warn("draw with unknown texture", "handle", uint64(texture))
	}
	return b.white
}

// RenderGeometry implements rig.RenderInterface.
func (b *Backend) RenderGeometry(vertices []rig.Vertex, indices []int, texture rig.TextureHandle, translation rig.Vector2f) {
	if b.target == nil || len(indices) == 0 {
		return
	}
	dst := b.dst()
	if dst == nil {
		return
	}
	is, ok := convertIndices(indices)
	if !ok {
		rig.Logger().Warn("geometry index out of range", "indices", len(indices))
		return
	}
	src := b.source(texture)
	srcBounds := src.Bounds()
	vs := convertVertices(vertices, translation, srcBounds.Dx(), srcBounds.Dy())
	dst.DrawTriangles(vs, is, src, nil)
}

// CompileGeometry implements rig.RenderInterface. Vertex conversion is
// done once here; rendering only re-applies the translation.
func (b *Backend) CompileGeometry(vertices []rig.Vertex, indices []int, texture rig.TextureHandle) rig.GeometryHandle {
	if b.target == nil || len(indices) == 0 {
		return rig.InvalidGeometryHandle
	}
	is, ok := convertIndices(indices)
	if !ok {
		return rig.InvalidGeometryHandle
	}
	src := b.source(texture)
	srcBounds := src.Bounds()

	handle := b.nextGeometry
	b.nextGeometry++
	b.geometries[handle] = &compiledGeometry{
		vertices: convertVertices(vertices, rig.Vector2f{}, srcBounds.Dx(), srcBounds.Dy()),
		indices:  is,
		texture:  texture,
	}
	return handle
}

// RenderCompiledGeometry implements rig.RenderInterface.
func (b *Backend) RenderCompiledGeometry(geometry rig.GeometryHandle, translation rig.Vector2f) {
	cg, ok := b.geometries[geometry]
	if !ok {
		rig.Logger().Warn("render of unknown compiled geometry", "handle", uint64(geometry))
		return
	}
	dst := b.dst()
	if dst == nil {
		return
	}

	vs := make([]eb.Vertex, len(cg.vertices))
	copy(vs, cg.vertices)
	for i := range vs {
		vs[i].DstX += translation.X
		vs[i].DstY += translation.Y
	}
	dst.DrawTriangles(vs, cg.indices, b.source(cg.texture), nil)
}

// ReleaseCompiledGeometry implements rig.RenderInterface.
func (b *Backend) ReleaseCompiledGeometry(geometry rig.GeometryHandle) {
	delete(b.geometries, geometry)
}

// EnableScissorRegion implements rig.RenderInterface.
func (b *Backend) EnableScissorRegion(enable bool) {
	b.scissorEnabled = enable
}

// SetScissorRegion implements rig.RenderInterface.
func (b *Backend) SetScissorRegion(region rig.Rect) {
	b.scissorRegion = region
}

// LoadTexture implements rig.RenderInterface. The source name is a path
// read through the installed file interface; format is sniffed from the
// contents.
func (b *Backend) LoadTexture(source string) (rig.TextureHandle, rig.Vector2i, bool) {
	data, err := rig.ReadFile(source)
	if err != nil {
		rig.Logger().Warn("texture load failed", "source", source, "err", err)
		return rig.InvalidTextureHandle, rig.Vector2i{}, false
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		rig.Logger().Warn("texture decode failed", "source", source, "err", err)
		return rig.InvalidTextureHandle, rig.Vector2i{}, false
	}

	ebImg := eb.NewImageFromImage(img)
	handle := b.nextTexture
	b.nextTexture++
	b.textures[handle] = ebImg

	bounds := ebImg.Bounds()
	rig.Logger().Debug("texture loaded", "source", source, "format", format,
		"width", bounds.Dx(), "height", bounds.Dy())
	return handle, rig.Vector2i{X: bounds.Dx(), Y: bounds.Dy()}, true
}

// GenerateTexture implements rig.RenderInterface.
func (b *Backend) GenerateTexture(source []byte, dimensions rig.Vector2i) (rig.TextureHandle, bool) {
	if dimensions.X <= 0 || dimensions.Y <= 0 || len(source) != dimensions.X*dimensions.Y*4 {
		rig.Logger().Warn("generate texture with mismatched data",
			"bytes", len(source), "width", dimensions.X, "height", dimensions.Y)
		return rig.InvalidTextureHandle, false
	}

	img := eb.NewImage(dimensions.X, dimensions.Y)
	img.WritePixels(source)

	handle := b.nextTexture
	b.nextTexture++
	b.textures[handle] = img
	return handle, true
}

// ReleaseTexture implements rig.RenderInterface.
func (b *Backend) ReleaseTexture(texture rig.TextureHandle) {
	img, ok := b.textures[texture]
	if !ok {
		return
	}
	img.Deallocate()
	delete(b.textures, texture)
}
