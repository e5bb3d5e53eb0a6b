package software

import (
	"github.com/gogui/rig"
	"github.com/gogui/rig/backend"
)

func init() {
	backend.Register(backend.BackendSoftware, func() backend.RenderBackend {
		return New()
	})
}

// compiledGeometry is a retained copy of a triangle list. The software
// rasterizer gains nothing from retained mode, but keeping the copy
// exercises the compiled path for hosts that test against this backend.
type compiledGeometry struct {
	vertices []rig.Vertex
	indices  []int
	texture  rig.TextureHandle
}

// Backend is the software rasterizer. It implements
// backend.RenderBackend; the zero value is not usable, construct with
// New and call Init.
type Backend struct {
	rig.ZeroTexelOffset

	target *Pixmap

	textures    map[rig.TextureHandle]*Pixmap
	nextTexture rig.TextureHandle

	geometries   map[rig.GeometryHandle]*compiledGeometry
	nextGeometry rig.GeometryHandle

	scissorEnabled bool
	scissorRegion  rig.Rect

	clearColour rig.Colour
}

// New creates an uninitialized software backend.
func New() *Backend {
	return &Backend{
		textures:     make(map[rig.TextureHandle]*Pixmap),
		nextTexture:  1,
		geometries:   make(map[rig.GeometryHandle]*compiledGeometry),
		nextGeometry: 1,
		clearColour:  rig.ColourWhite,
	}
}

// Name implements backend.RenderBackend.
func (b *Backend) Name() string { return backend.BackendSoftware }

// Init implements backend.RenderBackend.
func (b *Backend) Init(width, height int) error {
	b.target = NewPixmap(width, height)
	b.target.Clear(b.clearColour)
	rig.Logger().Info("software backend initialized", "width", width, "height", height)
	return nil
}

// Close implements backend.RenderBackend.
func (b *Backend) Close() {
	b.target = nil
	b.textures = make(map[rig.TextureHandle]*Pixmap)
	b.geometries = make(map[rig.GeometryHandle]*compiledGeometry)
}

// SetClearColour sets the colour BeginFrame fills the target with.
func (b *Backend) SetClearColour(c rig.Colour) { b.clearColour = c }

// BeginFrame implements backend.RenderBackend.
func (b *Backend) BeginFrame() {
	if b.target != nil {
		b.target.Clear(b.clearColour)
	}
}

// EndFrame implements backend.RenderBackend. The software target is
// always readable; nothing to submit.
func (b *Backend) EndFrame() error { return nil }

// Target implements backend.RenderBackend.
func (b *Backend) Target() ([]byte, int, int) {
	if b.target == nil {
		return nil, 0, 0
	}
	return b.target.Data(), b.target.Width(), b.target.Height()
}

// TargetPixmap returns the render target for direct inspection.
func (b *Backend) TargetPixmap() *Pixmap { return b.target }

// clipRect returns the pixel rectangle rendering may touch.
func (b *Backend) clipRect() rig.Rect {
	bounds := rig.Rect{Width: b.target.Width(), Height: b.target.Height()}
	if !b.scissorEnabled {
		return bounds
	}
	return bounds.Intersect(b.scissorRegion)
}

// RenderGeometry implements rig.RenderInterface.
func (b *Backend) RenderGeometry(vertices []rig.Vertex, indices []int, texture rig.TextureHandle, translation rig.Vector2f) {
	if b.target == nil {
		return
	}
	clip := b.clipRect()
	if clip.Empty() {
		return
	}

	var tex *Pixmap
	if texture.IsValid() {
		tex = b.textures[texture]
	}

	for i := 0; i+2 < len(indices); i += 3 {
		fillTriangle(b.target,
			translated(vertices[indices[i]], translation),
			translated(vertices[indices[i+1]], translation),
			translated(vertices[indices[i+2]], translation),
			tex, clip)
	}
}

func translated(v rig.Vertex, translation rig.Vector2f) point {
	return point{
		x: v.Position.X + translation.X,
		y: v.Position.Y + translation.Y,
		c: v.Colour,
		u: v.TexCoord.X,
		v: v.TexCoord.Y,
	}
}

// CompileGeometry implements rig.RenderInterface. The triangle list is
// copied so callers may reuse their slices.
func (b *Backend) CompileGeometry(vertices []rig.Vertex, indices []int, texture rig.TextureHandle) rig.GeometryHandle {
	cg := &compiledGeometry{
		vertices: append([]rig.Vertex(nil), vertices...),
		indices:  append([]int(nil), indices...),
		texture:  texture,
	}
	handle := b.nextGeometry
	b.nextGeometry++
	b.geometries[handle] = cg
	return handle
}

// RenderCompiledGeometry implements rig.RenderInterface.
func (b *Backend) RenderCompiledGeometry(geometry rig.GeometryHandle, translation rig.Vector2f) {
	cg, ok := b.geometries[geometry]
	if !ok {
		rig.Logger().Warn("render of unknown compiled geometry", "handle", uint64(geometry))
		return
	}
	b.RenderGeometry(cg.vertices, cg.indices, cg.texture, translation)
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

// GenerateTexture implements rig.RenderInterface.
func (b *Backend) GenerateTexture(source []byte, dimensions rig.Vector2i) (rig.TextureHandle, bool) {
	if dimensions.X <= 0 || dimensions.Y <= 0 || len(source) != dimensions.X*dimensions.Y*4 {
		rig.Logger().Warn("generate texture with mismatched data",
			"bytes", len(source), "width", dimensions.X, "height", dimensions.Y)
		return rig.InvalidTextureHandle, false
	}

	pm := NewPixmap(dimensions.X, dimensions.Y)
	copy(pm.Data(), source)

	handle := b.nextTexture
	b.nextTexture++
	b.textures[handle] = pm
	return handle, true
}

// ReleaseTexture implements rig.RenderInterface.
func (b *Backend) ReleaseTexture(texture rig.TextureHandle) {
	delete(b.textures, texture)
}

// TextureCount returns the number of live textures.
func (b *Backend) TextureCount() int { return len(b.textures) }
