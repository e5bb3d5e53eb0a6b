package wgpu

import (
	"encoding/binary"
	"math"

	"github.com/gogui/rig"
)

const (
	// vertexStride is the byte size of one GPU vertex: position vec2,
	// colour vec4, texcoord vec2, all 32-bit floats.
	vertexStride = 32

	// uniformSize is the byte size of the per-draw uniform block:
	// screen size vec2 plus translation vec2.
	uniformSize = 16

	// maxVertices is the largest vertex count a single draw can carry
	// with 16-bit indices.
	maxVertices = 1 << 16

	// rowAlignment is the required staging buffer row pitch alignment
	// for texture-to-buffer copies.
	rowAlignment = 256
)

func putFloat32(dst []byte, v float32) {
	binary.LittleEndian.PutUint32(dst, math.Float32bits(v))
}

// encodeVertices packs vertices into the shader's interleaved layout.
// Colours widen from 8-bit channels to normalized floats.
func encodeVertices(vertices []rig.Vertex) []byte {
	data := make([]byte, len(vertices)*vertexStride)
	for i, v := range vertices {
		o := i * vertexStride
		putFloat32(data[o+0:], v.Position.X)
		putFloat32(data[o+4:], v.Position.Y)
		putFloat32(data[o+8:], float32(v.Colour.R)/255)
		putFloat32(data[o+12:], float32(v.Colour.G)/255)
		putFloat32(data[o+16:], float32(v.Colour.B)/255)
		putFloat32(data[o+20:], float32(v.Colour.A)/255)
		putFloat32(data[o+24:], v.TexCoord.X)
		putFloat32(data[o+28:], v.TexCoord.Y)
	}
	return data
}

// encodeIndices packs indices as little-endian uint16, the index format
// the pipeline binds. Returns false when an index exceeds the format.
func encodeIndices(indices []int) ([]byte, bool) {
	data := make([]byte, len(indices)*2)
	for i, idx := range indices {
		if idx < 0 || idx >= maxVertices {
			return nil, false
		}
		binary.LittleEndian.PutUint16(data[i*2:], uint16(idx))
	}
	return data, true
}

// encodeUniform packs the per-draw uniform block.
func encodeUniform(screenW, screenH, translateX, translateY float32) []byte {
	data := make([]byte, uniformSize)
	putFloat32(data[0:], screenW)
	putFloat32(data[4:], screenH)
	putFloat32(data[8:], translateX)
	putFloat32(data[12:], translateY)
	return data
}

// alignedBytesPerRow rounds a tightly packed RGBA8 row up to the copy
// alignment the staging buffer requires.
func alignedBytesPerRow(width int) int {
	return (width*4 + rowAlignment - 1) &^ (rowAlignment - 1)
}

// unpackBGRA converts padded BGRA8 readback rows into tightly packed
// RGBA8 pixels. The render target is BGRA; host pixels are RGBA.
func unpackBGRA(dst, src []byte, width, height, srcStride int) {
	for y := 0; y < height; y++ {
		row := src[y*srcStride:]
		out := dst[y*width*4:]
		for x := 0; x < width; x++ {
			out[x*4+0] = row[x*4+2]
			out[x*4+1] = row[x*4+1]
			out[x*4+2] = row[x*4+0]
			out[x*4+3] = row[x*4+3]
		}
	}
}

// clampScissor clips a scissor region to the target bounds. Hardware
// scissor rectangles must lie within the attachment.
func clampScissor(region rig.Rect, width, height int) rig.Rect {
	return rig.Rect{Width: width, Height: height}.Intersect(region)
}
