package rig

// RenderInterface is implemented by the host to draw the core's output.
// The core emits triangle lists in pixel coordinates; the host maps them
// onto its graphics API. All calls arrive on the goroutine driving the
// core's render loop.
//
// Reference implementations live under backend/. Hosts that do not
// support retained geometry embed NoCompileSupport; hosts whose
// rasterizer samples texel centers exactly embed ZeroTexelOffset.
type RenderInterface interface {
	// RenderGeometry draws an indexed triangle list in immediate mode.
	// indices come in groups of three, each indexing vertices.
	// translation is added to every vertex position before rasterization.
	// texture is the texture to sample, or InvalidTextureHandle for
	// untextured geometry.
	RenderGeometry(vertices []Vertex, indices []int, texture TextureHandle, translation Vector2f)

	// CompileGeometry uploads an indexed triangle list into a
	// host-optimized form for repeated rendering. Returns
	// InvalidGeometryHandle if the host declines compilation, in which
	// case the core falls back to RenderGeometry for that geometry.
	CompileGeometry(vertices []Vertex, indices []int, texture TextureHandle) GeometryHandle

	// RenderCompiledGeometry draws geometry previously returned by
	// CompileGeometry at the given translation.
	RenderCompiledGeometry(geometry GeometryHandle, translation Vector2f)

	// ReleaseCompiledGeometry frees a compiled geometry batch. The
	// handle is dead afterwards.
	ReleaseCompiledGeometry(geometry GeometryHandle)

	// EnableScissorRegion toggles scissor testing. While enabled, the
	// region set by the most recent SetScissorRegion applies; rendering
	// outside it is discarded.
	EnableScissorRegion(enable bool)

	// SetScissorRegion sets the scissor rectangle in pixel coordinates.
	// The region takes effect only while scissoring is enabled, but the
	// host must retain it across enable/disable transitions.
	SetScissorRegion(region Rect)

	// LoadTexture loads a texture from a source name, typically a file
	// path resolved through the FileInterface. Returns the handle and
	// the texture dimensions in pixels; ok is false on failure.
	LoadTexture(source string) (handle TextureHandle, dimensions Vector2i, ok bool)

	// GenerateTexture creates a texture from tightly packed RGBA8 pixel
	// data, len(source) == dimensions.X*dimensions.Y*4. Returns false on
	// failure.
	GenerateTexture(source []byte, dimensions Vector2i) (TextureHandle, bool)

	// ReleaseTexture frees a texture created by LoadTexture or
	// GenerateTexture.
	ReleaseTexture(texture TextureHandle)

	// GetHorizontalTexelOffset returns the horizontal offset the host's
	// rasterizer needs for pixel-exact texture sampling. Zero for APIs
	// that sample texel centers; legacy APIs that sample texel corners
	// report 0.5.
	GetHorizontalTexelOffset() float32

	// GetVerticalTexelOffset is the vertical counterpart of
	// GetHorizontalTexelOffset.
	GetVerticalTexelOffset() float32
}

// NoCompileSupport is an embeddable partial implementation for hosts
// without retained geometry. CompileGeometry declines every request, so
// the core renders through the immediate path instead.
type NoCompileSupport struct{}

// CompileGeometry declines compilation.
func (NoCompileSupport) CompileGeometry([]Vertex, []int, TextureHandle) GeometryHandle {
	return InvalidGeometryHandle
}

// RenderCompiledGeometry is a no-op; no handle this host issued can
// reach it.
func (NoCompileSupport) RenderCompiledGeometry(GeometryHandle, Vector2f) {}

// ReleaseCompiledGeometry is a no-op.
func (NoCompileSupport) ReleaseCompiledGeometry(GeometryHandle) {}

// ZeroTexelOffset is an embeddable partial implementation for hosts
// whose rasterizer samples texel centers exactly.
type ZeroTexelOffset struct{}

// GetHorizontalTexelOffset returns 0.
func (ZeroTexelOffset) GetHorizontalTexelOffset() float32 { return 0 }

// GetVerticalTexelOffset returns 0.
func (ZeroTexelOffset) GetVerticalTexelOffset() float32 { return 0 }
