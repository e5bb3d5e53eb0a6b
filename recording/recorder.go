package recording

import "github.com/gogui/rig"

// Recorder implements rig.RenderInterface by appending a typed command
// for every call. Draw commands carry a snapshot of the scissor state
// in effect at the time, so tests can assert on clipping without
// replaying the command stream.
//
// Handles are issued from independent counters per handle space,
// starting at 1. Construct with NewRecorder; the zero value is not
// usable. A new Recorder records compiled geometry; use
// SetCompileSupported(false) to model a host without retained mode.
type Recorder struct {
	rig.ZeroTexelOffset

	commands []Command

	compileSupported bool
	failingSources   map[string]bool

	nextTexture  rig.TextureHandle
	nextGeometry rig.GeometryHandle

	scissor ScissorState

	liveTextures   map[rig.TextureHandle]bool
	liveGeometries map[rig.GeometryHandle]bool
}

// NewRecorder creates an empty recorder with compiled geometry enabled.
func NewRecorder() *Recorder {
	return &Recorder{
		compileSupported: true,
		failingSources:   make(map[string]bool),
		nextTexture:      1,
		nextGeometry:     1,
		liveTextures:     make(map[rig.TextureHandle]bool),
		liveGeometries:   make(map[rig.GeometryHandle]bool),
	}
}

// SetCompileSupported controls whether CompileGeometry issues handles
// or declines, modeling hosts without retained geometry.
func (r *Recorder) SetCompileSupported(supported bool) {
	r.compileSupported = supported
}

// FailSource scripts LoadTexture to fail for the given source name.
func (r *Recorder) FailSource(source string) {
	r.failingSources[source] = true
}

// Commands returns the recorded command stream in call order.
func (r *Recorder) Commands() []Command { return r.commands }

// Reset clears the command stream. Issued handles and scissor state are
// kept, so a reset mid-scene stays consistent with the host's view.
func (r *Recorder) Reset() { r.commands = nil }

// CommandsOfType returns the recorded commands with the given type.
func (r *Recorder) CommandsOfType(t CommandType) []Command {
	var out []Command
	for _, cmd := range r.commands {
		if cmd.Type() == t {
			out = append(out, cmd)
		}
	}
	return out
}

// CompileCount returns how many CompileGeometry calls were recorded.
func (r *Recorder) CompileCount() int {
	return len(r.CommandsOfType(CmdCompileGeometry))
}

// LiveTextures returns the number of issued textures not yet released.
func (r *Recorder) LiveTextures() int { return len(r.liveTextures) }

// LiveGeometries returns the number of issued compiled geometry batches
// not yet released.
func (r *Recorder) LiveGeometries() int { return len(r.liveGeometries) }

// RenderGeometry implements rig.RenderInterface.
func (r *Recorder) RenderGeometry(vertices []rig.Vertex, indices []int, texture rig.TextureHandle, translation rig.Vector2f) {
	r.commands = append(r.commands, &RenderGeometryCommand{
		Vertices:    append([]rig.Vertex(nil), vertices...),
		Indices:     append([]int(nil), indices...),
		Texture:     texture,
		Translation: translation,
		Scissor:     r.scissor,
	})
}

// CompileGeometry implements rig.RenderInterface.
func (r *Recorder) CompileGeometry(vertices []rig.Vertex, indices []int, texture rig.TextureHandle) rig.GeometryHandle {
	result := rig.InvalidGeometryHandle
	if r.compileSupported {
		result = r.nextGeometry
		r.nextGeometry++
		r.liveGeometries[result] = true
	}
	r.commands = append(r.commands, &CompileGeometryCommand{
		Vertices: append([]rig.Vertex(nil), vertices...),
		Indices:  append([]int(nil), indices...),
		Texture:  texture,
		Result:   result,
	})
	return result
}

// RenderCompiledGeometry implements rig.RenderInterface.
func (r *Recorder) RenderCompiledGeometry(geometry rig.GeometryHandle, translation rig.Vector2f) {
	r.commands = append(r.commands, &RenderCompiledGeometryCommand{
		Geometry:    geometry,
		Translation: translation,
		Scissor:     r.scissor,
	})
}

// ReleaseCompiledGeometry implements rig.RenderInterface.
func (r *Recorder) ReleaseCompiledGeometry(geometry rig.GeometryHandle) {
	delete(r.liveGeometries, geometry)
	r.commands = append(r.commands, &ReleaseCompiledGeometryCommand{Geometry: geometry})
}

// EnableScissorRegion implements rig.RenderInterface.
func (r *Recorder) EnableScissorRegion(enable bool) {
	r.scissor.Enabled = enable
	r.commands = append(r.commands, &EnableScissorRegionCommand{Enable: enable})
}

// SetScissorRegion implements rig.RenderInterface.
func (r *Recorder) SetScissorRegion(region rig.Rect) {
	r.scissor.Region = region
	r.commands = append(r.commands, &SetScissorRegionCommand{Region: region})
}

// LoadTexture implements rig.RenderInterface. Loads succeed with 1x1
// dimensions unless the source was scripted to fail with FailSource.
func (r *Recorder) LoadTexture(source string) (rig.TextureHandle, rig.Vector2i, bool) {
	if r.failingSources[source] {
		r.commands = append(r.commands, &LoadTextureCommand{
			Source: source,
			Result: rig.InvalidTextureHandle,
		})
		return rig.InvalidTextureHandle, rig.Vector2i{}, false
	}

	handle := r.nextTexture
	r.nextTexture++
	r.liveTextures[handle] = true
	r.commands = append(r.commands, &LoadTextureCommand{Source: source, Result: handle})
	return handle, rig.Vector2i{X: 1, Y: 1}, true
}

// GenerateTexture implements rig.RenderInterface.
func (r *Recorder) GenerateTexture(source []byte, dimensions rig.Vector2i) (rig.TextureHandle, bool) {
	if dimensions.X <= 0 || dimensions.Y <= 0 || len(source) != dimensions.X*dimensions.Y*4 {
		return rig.InvalidTextureHandle, false
	}

	handle := r.nextTexture
	r.nextTexture++
	r.liveTextures[handle] = true
	r.commands = append(r.commands, &GenerateTextureCommand{
		Source:     append([]byte(nil), source...),
		Dimensions: dimensions,
		Result:     handle,
	})
	return handle, true
}

// ReleaseTexture implements rig.RenderInterface.
func (r *Recorder) ReleaseTexture(texture rig.TextureHandle) {
	delete(r.liveTextures, texture)
	r.commands = append(r.commands, &ReleaseTextureCommand{Texture: texture})
}
