package wgpu

import (
	"bytes"
	"fmt"
	"image"

	// Image formats decodable by LoadTexture.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogui/rig"
)

// gpuTexture is an uploaded RGBA8 texture and its sampling view.
type gpuTexture struct {
	texture hal.Texture
	view    hal.TextureView
	width   int
	height  int
}

// createTexture uploads tightly packed RGBA8 pixels as a sampled texture.
func (b *Backend) createTexture(label string, source []byte, width, height int) (*gpuTexture, error) {
	size := hal.Extent3D{
		Width:              uint32(width),
		Height:             uint32(height),
		DepthOrArrayLayers: 1,
	}

	tex, err := b.device.CreateTexture(&hal.TextureDescriptor{
		Label:         label,
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create texture: %w", err)
	}

	view, err := b.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         label + "_view",
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		b.device.DestroyTexture(tex)
		return nil, fmt.Errorf("wgpu: create texture view: %w", err)
	}

	b.queue.WriteTexture(
		&hal.ImageCopyTexture{Texture: tex, MipLevel: 0},
		source,
		&hal.ImageDataLayout{
			Offset:       0,
			BytesPerRow:  uint32(width * 4),
			RowsPerImage: uint32(height),
		},
		&size,
	)

	return &gpuTexture{texture: tex, view: view, width: width, height: height}, nil
}

func (b *Backend) destroyTexture(t *gpuTexture) {
	if t == nil {
		return
	}
	if t.view != nil {
		b.device.DestroyTextureView(t.view)
	}
	if t.texture != nil {
		b.device.DestroyTexture(t.texture)
	}
}

// LoadTexture implements rig.RenderInterface. The source name is a path
// read through the installed file interface; format is sniffed from the
// contents.
func (b *Backend) LoadTexture(source string) (rig.TextureHandle, rig.Vector2i, bool) {
	if b.device == nil {
		return rig.InvalidTextureHandle, rig.Vector2i{}, false
	}

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

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	pixels := make([]byte, width*height*4)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, bl, a := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			i := (y*width + x) * 4
			pixels[i+0] = byte(r >> 8)
			pixels[i+1] = byte(g >> 8)
			pixels[i+2] = byte(bl >> 8)
			pixels[i+3] = byte(a >> 8)
		}
	}

	handle, ok := b.GenerateTexture(pixels, rig.Vector2i{X: width, Y: height})
	if !ok {
		return rig.InvalidTextureHandle, rig.Vector2i{}, false
	}

	rig.Logger().Debug("texture loaded", "source", source, "format", format,
		"width", width, "height", height)
	return handle, rig.Vector2i{X: width, Y: height}, true
}

// GenerateTexture implements rig.RenderInterface.
func (b *Backend) GenerateTexture(source []byte, dimensions rig.Vector2i) (rig.TextureHandle, bool) {
	if b.device == nil {
		return rig.InvalidTextureHandle, false
	}
	if dimensions.X <= 0 || dimensions.Y <= 0 || len(source) != dimensions.X*dimensions.Y*4 {
		rig.Logger().Warn("generate texture with mismatched data",
			"bytes", len(source), "width", dimensions.X, "height", dimensions.Y)
		return rig.InvalidTextureHandle, false
	}

	tex, err := b.createTexture("rig_texture", source, dimensions.X, dimensions.Y)
	if err != nil {
		rig.Logger().Warn("texture upload failed", "err", err)
		return rig.InvalidTextureHandle, false
	}

	handle := b.nextTexture
	b.nextTexture++
	b.textures[handle] = tex
	return handle, true
}

// ReleaseTexture implements rig.RenderInterface.
func (b *Backend) ReleaseTexture(texture rig.TextureHandle) {
	tex, ok := b.textures[texture]
	if !ok {
		return
	}
	b.destroyTexture(tex)
	delete(b.textures, texture)
}

// textureView resolves a handle to its sampling view, falling back to
// the white default so untextured draws share the one pipeline.
func (b *Backend) textureView(handle rig.TextureHandle) hal.TextureView {
	if handle.IsValid() {
		if tex, ok := b.textures[handle]; ok {
			return tex.view
		}
		rig.Logger().Warn("draw with unknown texture", "handle", uint64(handle))
	}
	return b.whiteTexture.view
}
