// Command rigdemo renders a demonstration scene through the render
// interface and saves it as a PNG.
package main

import (
	"flag"
	"log"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogui/rig"
	"github.com/gogui/rig/backend/software"
	"github.com/gogui/rig/fontatlas"
)

func main() {
	var (
		width  = flag.Int("width", 800, "image width")
		height = flag.Int("height", 600, "image height")
		output = flag.String("output", "rigdemo.png", "output file")
	)
	flag.Parse()

	sw := software.New()
	if err := sw.Init(*width, *height); err != nil {
		log.Fatalf("init backend: %v", err)
	}
	defer sw.Close()

	rig.SetRenderInterface(sw)
	if err := rig.Initialise(); err != nil {
		log.Fatalf("initialise: %v", err)
	}
	defer rig.Shutdown()

	sw.BeginFrame()
	drawPanels()
	drawClippedPattern()
	drawText(sw)
	if err := sw.EndFrame(); err != nil {
		log.Fatalf("end frame: %v", err)
	}

	if err := sw.TargetPixmap().SavePNG(*output); err != nil {
		log.Fatalf("save: %v", err)
	}
	log.Printf("Demo saved to %s (%dx%d)", *output, *width, *height)
}

// drawPanels lays down overlapping translucent quads.
func drawPanels() {
	panels := []struct {
		pos    rig.Vector2f
		size   rig.Vector2f
		colour rig.Colour
	}{
		{rig.Vector2f{X: 60, Y: 60}, rig.Vector2f{X: 240, Y: 160}, rig.Colour{R: 204, G: 51, B: 51, A: 230}},
		{rig.Vector2f{X: 180, Y: 120}, rig.Vector2f{X: 240, Y: 160}, rig.Colour{R: 51, G: 204, B: 51, A: 180}},
		{rig.Vector2f{X: 300, Y: 80}, rig.Vector2f{X: 240, Y: 160}, rig.Colour{R: 51, G: 51, B: 204, A: 130}},
	}

	for _, p := range panels {
		g := rig.NewGeometry(nil, nil, rig.InvalidTextureHandle)
		g.GenerateQuad(p.pos, p.size, p.colour, rig.Vector2f{}, rig.Vector2f{X: 1, Y: 1})
		g.Render(rig.Vector2f{})
		g.Release()
	}
}

// drawClippedPattern renders a checkerboard through a scissor region, so
// the pattern is cut to a window.
func drawClippedPattern() {
	state := rig.NewRenderState()
	state.SetScissor(rig.Rect{X: 420, Y: 300, Width: 280, Height: 200})
	state.EnableScissor(true)

	g := rig.NewGeometry(nil, nil, rig.InvalidTextureHandle)
	const cell = 40
	for row := 0; row < 8; row++ {
		for col := 0; col < 10; col++ {
			if (row+col)%2 == 0 {
				continue
			}
			g.GenerateQuad(
				rig.Vector2f{X: float32(380 + col*cell), Y: float32(260 + row*cell)},
				rig.Vector2f{X: cell, Y: cell},
				rig.Colour{R: 40, G: 40, B: 40, A: 255},
				rig.Vector2f{}, rig.Vector2f{X: 1, Y: 1},
			)
		}
	}
	g.Render(rig.Vector2f{})
	g.Release()

	state.EnableScissor(false)
}

// drawText shapes and rasterizes a caption with the bundled face.
func drawText(ri rig.RenderInterface) {
	face, err := fontatlas.NewFace(goregular.TTF, 28)
	if err != nil {
		log.Fatalf("load face: %v", err)
	}
	defer face.Close()

	atlas := fontatlas.NewAtlas(512, 512)
	staging := rig.NewGeometry(nil, nil, rig.InvalidTextureHandle)
	atlas.AppendText(staging, face, "rig interface demo", rig.Vector2f{X: 60, Y: 540}, rig.ColourBlack)

	textured := rig.NewGeometry(staging.Vertices(), staging.Indices(), atlas.Texture(ri))
	textured.Render(rig.Vector2f{})
	textured.Release()
	atlas.Release(ri)
}
