package software

import (
	"math"

	"github.com/gogui/rig"
)

// point is a vertex after translation, in target pixel coordinates.
type point struct {
	x, y float32
	c    rig.Colour
	u, v float32
}

// edge returns twice the signed area of the triangle (a, b, p). Positive
// when p lies to the left of the directed edge a->b.
func edge(ax, ay, bx, by, px, py float32) float32 {
	return (bx-ax)*(py-ay) - (by-ay)*(px-ax)
}

// fillTriangle rasterizes one triangle into the target with per-vertex
// colour and texture coordinate interpolation. texture is nil for
// untextured geometry. clip bounds the touched pixels; callers pass the
// intersection of the target bounds and the active scissor region.
func fillTriangle(target *Pixmap, v0, v1, v2 point, texture *Pixmap, clip rig.Rect) {
	area := edge(v0.x, v0.y, v1.x, v1.y, v2.x, v2.y)
	if area == 0 {
		return
	}
	// Normalize to counter-clockwise so both windings draw.
	if area < 0 {
		v1, v2 = v2, v1
		area = -area
	}

	minX := int(math.Floor(float64(min(v0.x, v1.x, v2.x))))
	minY := int(math.Floor(float64(min(v0.y, v1.y, v2.y))))
	maxX := int(math.Ceil(float64(max(v0.x, v1.x, v2.x))))
	maxY := int(math.Ceil(float64(max(v0.y, v1.y, v2.y))))

	minX = max(minX, clip.X)
	minY = max(minY, clip.Y)
	maxX = min(maxX, clip.X+clip.Width)
	maxY = min(maxY, clip.Y+clip.Height)
	if minX >= maxX || minY >= maxY {
		return
	}

	invArea := 1 / area
	for y := minY; y < maxY; y++ {
		py := float32(y) + 0.5
		for x := minX; x < maxX; x++ {
			px := float32(x) + 0.5

			w0 := edge(v1.x, v1.y, v2.x, v2.y, px, py)
			w1 := edge(v2.x, v2.y, v0.x, v0.y, px, py)
			w2 := edge(v0.x, v0.y, v1.x, v1.y, px, py)
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}

			b0 := w0 * invArea
			b1 := w1 * invArea
			b2 := w2 * invArea

			c := rig.Colour{
				R: uint8(b0*float32(v0.c.R) + b1*float32(v1.c.R) + b2*float32(v2.c.R)),
				G: uint8(b0*float32(v0.c.G) + b1*float32(v1.c.G) + b2*float32(v2.c.G)),
				B: uint8(b0*float32(v0.c.B) + b1*float32(v1.c.B) + b2*float32(v2.c.B)),
				A: uint8(b0*float32(v0.c.A) + b1*float32(v1.c.A) + b2*float32(v2.c.A)),
			}

			if texture != nil {
				u := b0*v0.u + b1*v1.u + b2*v2.u
				v := b0*v0.v + b1*v1.v + b2*v2.v
				c = modulate(texture.Sample(u, v), c)
			}

			target.BlendPixel(x, y, c)
		}
	}
}

// modulate multiplies a texel by the interpolated vertex colour,
// channel by channel.
func modulate(texel, tint rig.Colour) rig.Colour {
	return rig.Colour{
		R: uint8(uint32(texel.R) * uint32(tint.R) / 255),
		G: uint8(uint32(texel.G) * uint32(tint.G) / 255),
		B: uint8(uint32(texel.B) * uint32(tint.B) / 255),
		A: uint8(uint32(texel.A) * uint32(tint.A) / 255),
	}
}
