package rig

// Geometry is a core-side triangle list that renders through the
// installed RenderInterface. It asks the host to compile itself at most
// once: if CompileGeometry declines, the geometry remembers the refusal
// and uses the immediate path from then on.
type Geometry struct {
	vertices []Vertex
	indices  []int
	texture  TextureHandle

	compiled       GeometryHandle
	compileAttempt bool
}

// NewGeometry creates a geometry over the given triangle list. The
// slices are retained, not copied; callers must not mutate them while
// the geometry is alive.
func NewGeometry(vertices []Vertex, indices []int, texture TextureHandle) *Geometry {
	return &Geometry{vertices: vertices, indices: indices, texture: texture}
}

// GenerateQuad appends an axis-aligned textured quad as two triangles.
// origin is the top-left corner, dimensions the size in pixels, and
// topLeftTexcoord/bottomRightTexcoord the corners of the sampled
// texture region in normalized coordinates.
func (g *Geometry) GenerateQuad(origin, dimensions Vector2f, colour Colour, topLeftTexcoord, bottomRightTexcoord Vector2f) {
	base := len(g.vertices)
	g.vertices = append(g.vertices,
		Vertex{Position: origin, Colour: colour, TexCoord: topLeftTexcoord},
		Vertex{
			Position: Vector2f{X: origin.X + dimensions.X, Y: origin.Y},
			Colour:   colour,
			TexCoord: Vector2f{X: bottomRightTexcoord.X, Y: topLeftTexcoord.Y},
		},
		Vertex{Position: origin.Add(dimensions), Colour: colour, TexCoord: bottomRightTexcoord},
		Vertex{
			Position: Vector2f{X: origin.X, Y: origin.Y + dimensions.Y},
			Colour:   colour,
			TexCoord: Vector2f{X: topLeftTexcoord.X, Y: bottomRightTexcoord.Y},
		},
	)
	g.indices = append(g.indices, base, base+1, base+2, base+2, base+3, base)
}

// Vertices returns the vertex list.
func (g *Geometry) Vertices() []Vertex { return g.vertices }

// Indices returns the index list.
func (g *Geometry) Indices() []int { return g.indices }

// Texture returns the texture sampled by this geometry.
func (g *Geometry) Texture() TextureHandle { return g.texture }

// Render draws the geometry at the given translation. The first call
// offers the triangle list to the host for compilation; compiled
// geometry renders through RenderCompiledGeometry, declined geometry
// through RenderGeometry. CompileGeometry is called at most once per
// Geometry until Release.
func (g *Geometry) Render(translation Vector2f) {
	if len(g.indices) == 0 {
		return
	}
	ri := GetRenderInterface()

	if !g.compileAttempt {
		g.compileAttempt = true
		g.compiled = ri.CompileGeometry(g.vertices, g.indices, g.texture)
	}

	if g.compiled.IsValid() {
		ri.RenderCompiledGeometry(g.compiled, translation)
		return
	}
	ri.RenderGeometry(g.vertices, g.indices, g.texture, translation)
}

// Release frees the compiled form, if any, and re-arms compilation so
// the next Render may offer the geometry to the host again.
func (g *Geometry) Release() {
	if g.compiled.IsValid() {
		GetRenderInterface().ReleaseCompiledGeometry(g.compiled)
		g.compiled = InvalidGeometryHandle
	}
	g.compileAttempt = false
}
