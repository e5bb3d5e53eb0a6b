package rig

// Vector2f is a two-dimensional point or offset in pixel coordinates.
type Vector2f struct {
	X, Y float32
}

// Add returns the component-wise sum of two vectors.
func (v Vector2f) Add(o Vector2f) Vector2f {
	return Vector2f{X: v.X + o.X, Y: v.Y + o.Y}
}

// Vector2i is a two-dimensional integer size or position.
type Vector2i struct {
	X, Y int
}

// Rect is an axis-aligned integer rectangle, used for scissor regions.
// X and Y are the top-left corner in pixel coordinates.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Contains reports whether the pixel at (x, y) lies inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Empty reports whether the rectangle covers no pixels.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Intersect returns the intersection of two rectangles. The result is
// empty if they do not overlap.
func (r Rect) Intersect(o Rect) Rect {
	x0 := max(r.X, o.X)
	y0 := max(r.Y, o.Y)
	x1 := min(r.X+r.Width, o.X+o.Width)
	y1 := min(r.Y+r.Height, o.Y+o.Height)
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Colour is an 8-bit-per-channel RGBA colour, matching the tightly
// packed RGBA8 pixel format used across the render interface.
type Colour struct {
	R, G, B, A uint8
}

// Common colours.
var (
	ColourWhite       = Colour{255, 255, 255, 255}
	ColourBlack       = Colour{0, 0, 0, 255}
	ColourTransparent = Colour{0, 0, 0, 0}
)

// Vertex is a single element of a geometry submission. Positions are
// pixel offsets from the render context's top-left corner, before the
// per-call translation is applied. TexCoord is in normalized [0, 1]
// texture space and is ignored for untextured geometry.
type Vertex struct {
	Position Vector2f
	Colour   Colour
	TexCoord Vector2f
}
