// Package wgpu renders the interface triangle list on the GPU through
// wgpu/hal. Draws are gathered per frame and encoded into a single
// render pass against an offscreen target; EndFrame submits, waits, and
// reads the target back as tightly packed RGBA8 pixels.
//
// Register by blank import:
//
//	import _ "github.com/gogui/rig/backend/wgpu"
package wgpu

import (
	"fmt"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	_ "github.com/gogpu/wgpu/hal/vulkan" // HAL backend used for device creation.

	"github.com/gogui/rig"
	"github.com/gogui/rig/backend"
)

func init() {
	backend.Register(backend.BackendWGPU, func() backend.RenderBackend {
		return New()
	})
}

// gpuWaitTimeout bounds the fence wait after frame submission.
const gpuWaitTimeout = 5 * time.Second

// compiledGeometry is a triangle list retained in GPU buffers. Compiled
// draws skip the per-frame vertex upload.
type compiledGeometry struct {
	vertexBuf  hal.Buffer
	indexBuf   hal.Buffer
	indexCount uint32
	texture    rig.TextureHandle
}

// drawOp is one recorded draw, deferred until EndFrame so all buffer
// uploads happen before the render pass is encoded.
type drawOp struct {
	// vertexData and indexData are set for immediate draws; compiled
	// draws reference retained buffers instead.
	vertexData []byte
	indexData  []byte
	compiled   *compiledGeometry
	indexCount uint32

	texture     rig.TextureHandle
	translation rig.Vector2f

	scissorEnabled bool
	scissor        rig.Rect
}

// Backend is the GPU renderer. It implements backend.RenderBackend; the
// zero value is not usable, construct with New and call Init.
type Backend struct {
	rig.ZeroTexelOffset

	instance       hal.Instance
	device         hal.Device
	queue          hal.Queue
	externalDevice bool
	adapterName    string

	pipeline *quadPipeline

	width, height int
	targetTex     hal.Texture
	targetView    hal.TextureView
	pixels        []byte

	textures     map[rig.TextureHandle]*gpuTexture
	nextTexture  rig.TextureHandle
	whiteTexture *gpuTexture

	geometries   map[rig.GeometryHandle]*compiledGeometry
	nextGeometry rig.GeometryHandle

	scissorEnabled bool
	scissorRegion  rig.Rect

	clearColour rig.Colour
	draws       []drawOp
}

// New creates an uninitialized GPU backend.
func New() *Backend {
	return &Backend{
		textures:     make(map[rig.TextureHandle]*gpuTexture),
		nextTexture:  1,
		geometries:   make(map[rig.GeometryHandle]*compiledGeometry),
		nextGeometry: 1,
		clearColour:  rig.ColourWhite,
	}
}

// Name implements backend.RenderBackend.
func (b *Backend) Name() string { return backend.BackendWGPU }

// Init implements backend.RenderBackend. A device is created unless
// SetDeviceProvider installed a shared one beforehand.
func (b *Backend) Init(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("wgpu: invalid target size %dx%d", width, height)
	}

	if b.device == nil {
		if err := b.initDevice(); err != nil {
			return err
		}
	}

	pipeline, err := newQuadPipeline(b.device)
	if err != nil {
		b.releaseDevice()
		return err
	}
	b.pipeline = pipeline

	if err := b.createTarget(width, height); err != nil {
		b.pipeline.destroy(b.device)
		b.pipeline = nil
		b.releaseDevice()
		return err
	}

	white, err := b.createTexture("rig_white", []byte{255, 255, 255, 255}, 1, 1)
	if err != nil {
		b.Close()
		return err
	}
	b.whiteTexture = white

	rig.Logger().Info("wgpu backend initialized",
		"width", width, "height", height, "adapter", b.adapterName)
	return nil
}

// createTarget creates the offscreen render target. BGRA8 matches the
// pipeline's colour target; readback converts to RGBA.
func (b *Backend) createTarget(width, height int) error {
	tex, err := b.device.CreateTexture(&hal.TextureDescriptor{
		Label: "rig_target",
		Size: hal.Extent3D{
			Width:              uint32(width),
			Height:             uint32(height),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatBGRA8Unorm,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc,
	})
	if err != nil {
		return fmt.Errorf("wgpu: create render target: %w", err)
	}

	view, err := b.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label: "rig_target_view",
	})
	if err != nil {
		b.device.DestroyTexture(tex)
		return fmt.Errorf("wgpu: create target view: %w", err)
	}

	b.targetTex = tex
	b.targetView = view
	b.width = width
	b.height = height
	b.pixels = make([]byte, width*height*4)
	return nil
}

// Close implements backend.RenderBackend.
func (b *Backend) Close() {
	if b.device == nil {
		return
	}
	for _, cg := range b.geometries {
		b.device.DestroyBuffer(cg.vertexBuf)
		b.device.DestroyBuffer(cg.indexBuf)
	}
	b.geometries = make(map[rig.GeometryHandle]*compiledGeometry)
	for _, tex := range b.textures {
		b.destroyTexture(tex)
	}
	b.textures = make(map[rig.TextureHandle]*gpuTexture)
	b.destroyTexture(b.whiteTexture)
	b.whiteTexture = nil
	if b.targetView != nil {
		b.device.DestroyTextureView(b.targetView)
		b.targetView = nil
	}
	if b.targetTex != nil {
		b.device.DestroyTexture(b.targetTex)
		b.targetTex = nil
	}
	if b.pipeline != nil {
		b.pipeline.destroy(b.device)
		b.pipeline = nil
	}
	b.releaseDevice()
	b.draws = nil
}

// SetClearColour sets the colour the render pass clears the target with.
func (b *Backend) SetClearColour(c rig.Colour) { b.clearColour = c }

// BeginFrame implements backend.RenderBackend.
func (b *Backend) BeginFrame() {
	b.draws = b.draws[:0]
}

// RenderGeometry implements rig.RenderInterface. The draw is recorded
// and encoded at EndFrame.
func (b *Backend) RenderGeometry(vertices []rig.Vertex, indices []int, texture rig.TextureHandle, translation rig.Vector2f) {
	if b.device == nil || len(indices) == 0 {
		return
	}
	if len(vertices) > maxVertices {
		rig.Logger().Warn("geometry exceeds vertex limit", "vertices", len(vertices))
		return
	}
	indexData, ok := encodeIndices(indices)
	if !ok {
		rig.Logger().Warn("geometry index out of range", "indices", len(indices))
		return
	}
	b.draws = append(b.draws, drawOp{
		vertexData:     encodeVertices(vertices),
		indexData:      indexData,
		indexCount:     uint32(len(indices)),
		texture:        texture,
		translation:    translation,
		scissorEnabled: b.scissorEnabled,
		scissor:        b.scissorRegion,
	})
}

// CompileGeometry implements rig.RenderInterface. The triangle list is
// uploaded into retained vertex and index buffers.
func (b *Backend) CompileGeometry(vertices []rig.Vertex, indices []int, texture rig.TextureHandle) rig.GeometryHandle {
	if b.device == nil || len(indices) == 0 || len(vertices) > maxVertices {
		return rig.InvalidGeometryHandle
	}
	indexData, ok := encodeIndices(indices)
	if !ok {
		return rig.InvalidGeometryHandle
	}

	vertexBuf, err := b.uploadBuffer("rig_compiled_verts", encodeVertices(vertices),
		gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst)
	if err != nil {
		rig.Logger().Warn("compile geometry failed", "err", err)
		return rig.InvalidGeometryHandle
	}
	indexBuf, err := b.uploadBuffer("rig_compiled_indices", indexData,
		gputypes.BufferUsageIndex|gputypes.BufferUsageCopyDst)
	if err != nil {
		b.device.DestroyBuffer(vertexBuf)
		rig.Logger().Warn("compile geometry failed", "err", err)
		return rig.InvalidGeometryHandle
	}

	handle := b.nextGeometry
	b.nextGeometry++
	b.geometries[handle] = &compiledGeometry{
		vertexBuf:  vertexBuf,
		indexBuf:   indexBuf,
		indexCount: uint32(len(indices)),
		texture:    texture,
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
	b.draws = append(b.draws, drawOp{
		compiled:       cg,
		indexCount:     cg.indexCount,
		texture:        cg.texture,
		translation:    translation,
		scissorEnabled: b.scissorEnabled,
		scissor:        b.scissorRegion,
	})
}

// ReleaseCompiledGeometry implements rig.RenderInterface.
func (b *Backend) ReleaseCompiledGeometry(geometry rig.GeometryHandle) {
	cg, ok := b.geometries[geometry]
	if !ok {
		return
	}
	b.device.DestroyBuffer(cg.vertexBuf)
	b.device.DestroyBuffer(cg.indexBuf)
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

// Target implements backend.RenderBackend. The pixels are the RGBA8
// readback of the last submitted frame.
func (b *Backend) Target() ([]byte, int, int) {
	if b.device == nil {
		return nil, 0, 0
	}
	return b.pixels, b.width, b.height
}

func (b *Backend) uploadBuffer(label string, data []byte, usage gputypes.BufferUsage) (hal.Buffer, error) {
	buf, err := b.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  uint64(len(data)),
		Usage: usage,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", label, err)
	}
	b.queue.WriteBuffer(buf, 0, data)
	return buf, nil
}
