package wgpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogui/rig"
)

// frameResources holds the transient GPU objects built for one frame's
// draws, destroyed after the fence signals.
type frameResources struct {
	buffers    []hal.Buffer
	bindGroups []hal.BindGroup
}

func (f *frameResources) destroy(device hal.Device) {
	for _, bg := range f.bindGroups {
		device.DestroyBindGroup(bg)
	}
	for _, buf := range f.buffers {
		device.DestroyBuffer(buf)
	}
	f.bindGroups = nil
	f.buffers = nil
}

// builtDraw is a drawOp resolved to GPU objects, ready to record.
type builtDraw struct {
	vertexBuf  hal.Buffer
	indexBuf   hal.Buffer
	indexCount uint32
	bindGroup  hal.BindGroup
	scissor    rig.Rect
}

// EndFrame implements backend.RenderBackend. All recorded draws are
// encoded into one render pass, submitted, and the target read back
// into the pixel buffer.
func (b *Backend) EndFrame() error {
	if b.device == nil {
		return fmt.Errorf("wgpu: backend not initialized")
	}

	res := &frameResources{}
	defer res.destroy(b.device)

	built, err := b.buildDraws(res)
	if err != nil {
		return err
	}

	if err := b.encodeSubmitReadback(built); err != nil {
		return err
	}
	return nil
}

// buildDraws uploads per-draw buffers and creates bind groups before any
// encoding starts.
func (b *Backend) buildDraws(res *frameResources) ([]builtDraw, error) {
	built := make([]builtDraw, 0, len(b.draws))
	for i := range b.draws {
		op := &b.draws[i]

		vertexBuf := op.compiledVertexBuf()
		indexBuf := op.compiledIndexBuf()
		if vertexBuf == nil {
			var err error
			vertexBuf, err = b.uploadBuffer("rig_frame_verts", op.vertexData,
				gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst)
			if err != nil {
				return nil, fmt.Errorf("wgpu: %w", err)
			}
			res.buffers = append(res.buffers, vertexBuf)

			indexBuf, err = b.uploadBuffer("rig_frame_indices", op.indexData,
				gputypes.BufferUsageIndex|gputypes.BufferUsageCopyDst)
			if err != nil {
				return nil, fmt.Errorf("wgpu: %w", err)
			}
			res.buffers = append(res.buffers, indexBuf)
		}

		uniformData := encodeUniform(float32(b.width), float32(b.height),
			op.translation.X, op.translation.Y)
		uniformBuf, err := b.uploadBuffer("rig_frame_uniform", uniformData,
			gputypes.BufferUsageUniform|gputypes.BufferUsageCopyDst)
		if err != nil {
			return nil, fmt.Errorf("wgpu: %w", err)
		}
		res.buffers = append(res.buffers, uniformBuf)

		bindGroup, err := b.device.CreateBindGroup(&hal.BindGroupDescriptor{
			Label:  "rig_frame_bind",
			Layout: b.pipeline.bindLayout,
			Entries: []gputypes.BindGroupEntry{
				{Binding: 0, Resource: gputypes.BufferBinding{
					Buffer: uniformBuf.NativeHandle(), Offset: 0, Size: uniformSize,
				}},
				{Binding: 1, Resource: gputypes.TextureViewBinding{
					TextureView: b.textureView(op.texture).NativeHandle(),
				}},
				{Binding: 2, Resource: gputypes.SamplerBinding{
					Sampler: b.pipeline.sampler.NativeHandle(),
				}},
			},
		})
		if err != nil {
			return nil, fmt.Errorf("wgpu: create bind group: %w", err)
		}
		res.bindGroups = append(res.bindGroups, bindGroup)

		scissor := rig.Rect{Width: b.width, Height: b.height}
		if op.scissorEnabled {
			scissor = clampScissor(op.scissor, b.width, b.height)
		}

		built = append(built, builtDraw{
			vertexBuf:  vertexBuf,
			indexBuf:   indexBuf,
			indexCount: op.indexCount,
			bindGroup:  bindGroup,
			scissor:    scissor,
		})
	}
	return built, nil
}

func (op *drawOp) compiledVertexBuf() hal.Buffer {
	if op.compiled != nil {
		return op.compiled.vertexBuf
	}
	return nil
}

func (op *drawOp) compiledIndexBuf() hal.Buffer {
	if op.compiled != nil {
		return op.compiled.indexBuf
	}
	return nil
}

// encodeSubmitReadback encodes the frame's render pass, copies the
// target to a staging buffer, submits, waits, and reads back pixels.
func (b *Backend) encodeSubmitReadback(built []builtDraw) error {
	encoder, err := b.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "rig_frame_encoder",
	})
	if err != nil {
		return fmt.Errorf("wgpu: create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("rig_frame"); err != nil {
		return fmt.Errorf("wgpu: begin encoding: %w", err)
	}

	clear := b.clearColour
	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "rig_frame_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:    b.targetView,
			LoadOp:  gputypes.LoadOpClear,
			StoreOp: gputypes.StoreOpStore,
			ClearValue: gputypes.Color{
				R: float64(clear.R) / 255,
				G: float64(clear.G) / 255,
				B: float64(clear.B) / 255,
				A: float64(clear.A) / 255,
			},
		}},
	})

	rp.SetPipeline(b.pipeline.pipeline)
	for _, d := range built {
		if d.scissor.Empty() {
			continue
		}
		rp.SetScissorRect(uint32(d.scissor.X), uint32(d.scissor.Y),
			uint32(d.scissor.Width), uint32(d.scissor.Height))
		rp.SetBindGroup(0, d.bindGroup, nil)
		rp.SetVertexBuffer(0, d.vertexBuf, 0)
		rp.SetIndexBuffer(d.indexBuf, gputypes.IndexFormatUint16, 0)
		rp.DrawIndexed(d.indexCount, 1, 0, 0, 0)
	}
	rp.End()

	// The copy below needs the target in a transfer-source layout; the
	// pass leaves it as a render attachment.
	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: b.targetTex,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageRenderAttachment,
			NewUsage: gputypes.TextureUsageCopySrc,
		},
	}})

	// Staging rows must be 256-byte aligned for texture-to-buffer copies.
	alignedRow := alignedBytesPerRow(b.width)
	stagingSize := uint64(alignedRow) * uint64(b.height)

	stagingBuf, err := b.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "rig_frame_staging",
		Size:  stagingSize,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		encoder.DiscardEncoding()
		return fmt.Errorf("wgpu: create staging buffer: %w", err)
	}
	defer b.device.DestroyBuffer(stagingBuf)

	encoder.CopyTextureToBuffer(b.targetTex, stagingBuf, []hal.BufferTextureCopy{{
		BufferLayout: hal.ImageDataLayout{
			Offset:       0,
			BytesPerRow:  uint32(alignedRow),
			RowsPerImage: uint32(b.height),
		},
		TextureBase: hal.ImageCopyTexture{Texture: b.targetTex, MipLevel: 0},
		Size: hal.Extent3D{
			Width:              uint32(b.width),
			Height:             uint32(b.height),
			DepthOrArrayLayers: 1,
		},
	}})

	// Back to render attachment so the next frame's pass is valid.
	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: b.targetTex,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageCopySrc,
			NewUsage: gputypes.TextureUsageRenderAttachment,
		},
	}})

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("wgpu: end encoding: %w", err)
	}
	defer b.device.FreeCommandBuffer(cmdBuf)

	fence, err := b.device.CreateFence()
	if err != nil {
		return fmt.Errorf("wgpu: create fence: %w", err)
	}
	defer b.device.DestroyFence(fence)

	if err := b.queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return fmt.Errorf("wgpu: submit: %w", err)
	}
	fenceOK, err := b.device.Wait(fence, 1, gpuWaitTimeout)
	if err != nil || !fenceOK {
		return fmt.Errorf("wgpu: wait for GPU: ok=%v err=%w", fenceOK, err)
	}

	readback := make([]byte, stagingSize)
	if err := b.queue.ReadBuffer(stagingBuf, 0, readback); err != nil {
		return fmt.Errorf("wgpu: readback: %w", err)
	}

	unpackBGRA(b.pixels, readback, b.width, b.height, alignedRow)
	return nil
}
