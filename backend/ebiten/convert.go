package ebiten

import (
	eb "github.com/hajimehoshi/ebiten/v2"

	"github.com/gogui/rig"
)

// convertVertices translates interface vertices into ebiten's layout.
// ebiten source coordinates are texels, so normalized texture
// coordinates scale by the source image size. The translation is baked
// into the destination positions.
func convertVertices(vertices []rig.Vertex, translation rig.Vector2f, srcW, srcH int) []eb.Vertex {
	out := make([]eb.Vertex, len(vertices))
	for i, v := range vertices {
		out[i] = eb.Vertex{
			DstX:   v.Position.X + translation.X,
			DstY:   v.Position.Y + translation.Y,
			SrcX:   v.TexCoord.X * float32(srcW),
			SrcY:   v.TexCoord.Y * float32(srcH),
			ColorR: float32(v.Colour.R) / 255,
			ColorG: float32(v.Colour.G) / 255,
			ColorB: float32(v.Colour.B) / 255,
			ColorA: float32(v.Colour.A) / 255,
		}
	}
	return out
}

// convertIndices widens interface indices to ebiten's index type.
// Returns false when an index does not fit.
func convertIndices(indices []int) ([]uint16, bool) {
	out := make([]uint16, len(indices))
	for i, idx := range indices {
		if idx < 0 || idx > 0xFFFF {
			return nil, false
		}
		out[i] = uint16(idx)
	}
	return out, true
}
