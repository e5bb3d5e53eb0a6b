package software

import (
	"bytes"
	"image"

	// Image formats decodable by LoadTexture.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/gogui/rig"
)

// LoadTexture implements rig.RenderInterface. The source name is a path
// read through the installed file interface, so textures resolve the
// same way documents do. Format is sniffed from the contents.
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

	pm := FromImage(img)
	handle := b.nextTexture
	b.nextTexture++
	b.textures[handle] = pm

	rig.Logger().Debug("texture loaded", "source", source, "format", format,
		"width", pm.Width(), "height", pm.Height())
	return handle, rig.Vector2i{X: pm.Width(), Y: pm.Height()}, true
}
