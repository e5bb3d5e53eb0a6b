package software

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
	"testing/fstest"

	"github.com/gogui/rig"
	"github.com/gogui/rig/backend"
)

func initBackend(t *testing.T, width, height int) *Backend {
	t.Helper()
	b := New()
	if err := b.Init(width, height); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	t.Cleanup(b.Close)
	return b
}

// quad builds a solid quad covering [x0,y0)..[x1,y1).
func quad(x0, y0, x1, y1 float32, c rig.Colour) ([]rig.Vertex, []int) {
	vertices := []rig.Vertex{
		{Position: rig.Vector2f{X: x0, Y: y0}, Colour: c, TexCoord: rig.Vector2f{X: 0, Y: 0}},
		{Position: rig.Vector2f{X: x1, Y: y0}, Colour: c, TexCoord: rig.Vector2f{X: 1, Y: 0}},
		{Position: rig.Vector2f{X: x1, Y: y1}, Colour: c, TexCoord: rig.Vector2f{X: 1, Y: 1}},
		{Position: rig.Vector2f{X: x0, Y: y1}, Colour: c, TexCoord: rig.Vector2f{X: 0, Y: 1}},
	}
	return vertices, []int{0, 1, 2, 2, 3, 0}
}

func TestBackendRegistered(t *testing.T) {
	if !backend.IsRegistered(backend.BackendSoftware) {
		t.Error("software backend should be auto-registered")
	}
	b := backend.Get(backend.BackendSoftware)
	if b == nil {
		t.Fatal("Get(software) returned nil")
	}
	if b.Name() != backend.BackendSoftware {
		t.Errorf("Name() = %q, want %q", b.Name(), backend.BackendSoftware)
	}
}

func TestRenderGeometrySolidQuad(t *testing.T) {
	b := initBackend(t, 64, 64)
	b.SetClearColour(rig.ColourBlack)
	b.BeginFrame()

	red := rig.Colour{R: 255, A: 255}
	vertices, indices := quad(8, 8, 56, 56, red)
	b.RenderGeometry(vertices, indices, rig.InvalidTextureHandle, rig.Vector2f{})

	if got := b.TargetPixmap().GetPixel(32, 32); got != red {
		t.Errorf("center pixel = %+v, want %+v", got, red)
	}
	if got := b.TargetPixmap().GetPixel(2, 2); got != rig.ColourBlack {
		t.Errorf("outside pixel = %+v, want untouched %+v", got, rig.ColourBlack)
	}
}

func TestRenderGeometryTranslation(t *testing.T) {
	b := initBackend(t, 64, 64)
	b.SetClearColour(rig.ColourBlack)
	b.BeginFrame()

	red := rig.Colour{R: 255, A: 255}
	vertices, indices := quad(0, 0, 16, 16, red)
	b.RenderGeometry(vertices, indices, rig.InvalidTextureHandle, rig.Vector2f{X: 32, Y: 32})

	if got := b.TargetPixmap().GetPixel(40, 40); got != red {
		t.Errorf("translated pixel = %+v, want %+v", got, red)
	}
	if got := b.TargetPixmap().GetPixel(8, 8); got != rig.ColourBlack {
		t.Errorf("untranslated position = %+v, want untouched", got)
	}
}

func TestRenderGeometryBothWindings(t *testing.T) {
	b := initBackend(t, 32, 32)
	b.SetClearColour(rig.ColourBlack)
	b.BeginFrame()

	red := rig.Colour{R: 255, A: 255}
	vertices := []rig.Vertex{
		{Position: rig.Vector2f{X: 0, Y: 0}, Colour: red},
		{Position: rig.Vector2f{X: 32, Y: 0}, Colour: red},
		{Position: rig.Vector2f{X: 32, Y: 32}, Colour: red},
	}
	// Clockwise winding.
	b.RenderGeometry(vertices, []int{0, 1, 2}, rig.InvalidTextureHandle, rig.Vector2f{})
	if got := b.TargetPixmap().GetPixel(24, 8); got != red {
		t.Errorf("clockwise triangle pixel = %+v, want %+v", got, red)
	}

	b.BeginFrame()
	b.SetClearColour(rig.ColourBlack)
	// Counter-clockwise winding.
	b.RenderGeometry(vertices, []int{2, 1, 0}, rig.InvalidTextureHandle, rig.Vector2f{})
	if got := b.TargetPixmap().GetPixel(24, 8); got != red {
		t.Errorf("counter-clockwise triangle pixel = %+v, want %+v", got, red)
	}
}

func TestScissorClipsRendering(t *testing.T) {
	b := initBackend(t, 64, 64)
	b.SetClearColour(rig.ColourBlack)
	b.BeginFrame()

	red := rig.Colour{R: 255, A: 255}
	vertices, indices := quad(0, 0, 64, 64, red)

	b.EnableScissorRegion(true)
	b.SetScissorRegion(rig.Rect{X: 16, Y: 16, Width: 16, Height: 16})
	b.RenderGeometry(vertices, indices, rig.InvalidTextureHandle, rig.Vector2f{})

	if got := b.TargetPixmap().GetPixel(20, 20); got != red {
		t.Errorf("pixel inside scissor = %+v, want %+v", got, red)
	}
	if got := b.TargetPixmap().GetPixel(40, 40); got != rig.ColourBlack {
		t.Errorf("pixel outside scissor = %+v, want untouched", got)
	}

	// Disabling the scissor restores full-target rendering while the
	// region is retained.
	b.EnableScissorRegion(false)
	b.RenderGeometry(vertices, indices, rig.InvalidTextureHandle, rig.Vector2f{})
	if got := b.TargetPixmap().GetPixel(40, 40); got != red {
		t.Errorf("pixel after disabling scissor = %+v, want %+v", got, red)
	}
}

func TestGenerateTexture(t *testing.T) {
	b := initBackend(t, 8, 8)

	// 2x2 texture: red, green / blue, white.
	pixels := []byte{
		255, 0, 0, 255, 0, 255, 0, 255,
		0, 0, 255, 255, 255, 255, 255, 255,
	}
	handle, ok := b.GenerateTexture(pixels, rig.Vector2i{X: 2, Y: 2})
	if !ok {
		t.Fatal("GenerateTexture() failed")
	}
	if !handle.IsValid() {
		t.Fatal("GenerateTexture() returned invalid handle on success")
	}
	if b.TextureCount() != 1 {
		t.Errorf("TextureCount() = %d, want 1", b.TextureCount())
	}

	b.ReleaseTexture(handle)
	if b.TextureCount() != 0 {
		t.Errorf("TextureCount() after release = %d, want 0", b.TextureCount())
	}
}

func TestGenerateTextureRejectsMismatchedData(t *testing.T) {
	b := initBackend(t, 8, 8)

	if _, ok := b.GenerateTexture(make([]byte, 5), rig.Vector2i{X: 2, Y: 2}); ok {
		t.Error("GenerateTexture() accepted short pixel data")
	}
	if _, ok := b.GenerateTexture(nil, rig.Vector2i{X: 0, Y: 0}); ok {
		t.Error("GenerateTexture() accepted zero dimensions")
	}
}

func TestRenderTexturedQuad(t *testing.T) {
	b := initBackend(t, 16, 16)
	b.SetClearColour(rig.ColourBlack)
	b.BeginFrame()

	// Solid green texture modulated by white vertices.
	pixels := bytes.Repeat([]byte{0, 255, 0, 255}, 4)
	handle, ok := b.GenerateTexture(pixels, rig.Vector2i{X: 2, Y: 2})
	if !ok {
		t.Fatal("GenerateTexture() failed")
	}

	vertices, indices := quad(0, 0, 16, 16, rig.ColourWhite)
	b.RenderGeometry(vertices, indices, handle, rig.Vector2f{})

	want := rig.Colour{G: 255, A: 255}
	if got := b.TargetPixmap().GetPixel(8, 8); got != want {
		t.Errorf("textured pixel = %+v, want %+v", got, want)
	}
}

func TestCompiledGeometryMatchesImmediate(t *testing.T) {
	red := rig.Colour{R: 255, A: 255}
	vertices, indices := quad(4, 4, 28, 28, red)

	immediate := initBackend(t, 32, 32)
	immediate.SetClearColour(rig.ColourBlack)
	immediate.BeginFrame()
	immediate.RenderGeometry(vertices, indices, rig.InvalidTextureHandle, rig.Vector2f{X: 2, Y: 2})

	compiled := initBackend(t, 32, 32)
	compiled.SetClearColour(rig.ColourBlack)
	compiled.BeginFrame()
	handle := compiled.CompileGeometry(vertices, indices, rig.InvalidTextureHandle)
	if !handle.IsValid() {
		t.Fatal("CompileGeometry() declined")
	}
	compiled.RenderCompiledGeometry(handle, rig.Vector2f{X: 2, Y: 2})

	if !bytes.Equal(immediate.TargetPixmap().Data(), compiled.TargetPixmap().Data()) {
		t.Error("compiled rendering differs from immediate rendering")
	}

	compiled.ReleaseCompiledGeometry(handle)
	// Rendering a released handle is a logged no-op.
	compiled.RenderCompiledGeometry(handle, rig.Vector2f{})
}

func TestCompileGeometryCopiesInput(t *testing.T) {
	b := initBackend(t, 32, 32)
	b.SetClearColour(rig.ColourBlack)
	b.BeginFrame()

	red := rig.Colour{R: 255, A: 255}
	vertices, indices := quad(0, 0, 32, 32, red)
	handle := b.CompileGeometry(vertices, indices, rig.InvalidTextureHandle)

	// Mutating the caller's slices must not affect the compiled copy.
	vertices[0].Colour = rig.ColourBlack
	indices[0] = 2

	b.RenderCompiledGeometry(handle, rig.Vector2f{})
	if got := b.TargetPixmap().GetPixel(1, 1); got != red {
		t.Errorf("pixel = %+v after caller mutation, want %+v", got, red)
	}
}

func TestLoadTexture(t *testing.T) {
	// Encode a 3x2 PNG into an in-memory file system.
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			img.SetRGBA(x, y, color.RGBA{R: 255, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}

	rig.SetFileInterface(rig.NewFSFileInterface(fstest.MapFS{
		"textures/red.png": {Data: buf.Bytes()},
	}))
	defer rig.SetFileInterface(nil)

	b := initBackend(t, 8, 8)
	handle, dimensions, ok := b.LoadTexture("textures/red.png")
	if !ok {
		t.Fatal("LoadTexture() failed")
	}
	if !handle.IsValid() {
		t.Fatal("LoadTexture() returned invalid handle on success")
	}
	if dimensions != (rig.Vector2i{X: 3, Y: 2}) {
		t.Errorf("dimensions = %+v, want {3 2}", dimensions)
	}

	if _, _, ok := b.LoadTexture("textures/missing.png"); ok {
		t.Error("LoadTexture() succeeded for missing file")
	}
}

func BenchmarkRenderGeometryQuad(b *testing.B) {
	be := New()
	_ = be.Init(800, 600)
	defer be.Close()

	vertices, indices := quad(0, 0, 800, 600, rig.Colour{R: 128, G: 64, B: 32, A: 255})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		be.RenderGeometry(vertices, indices, rig.InvalidTextureHandle, rig.Vector2f{})
	}
}
