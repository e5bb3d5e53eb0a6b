// Package recording provides a render interface that records every call
// as a typed command instead of drawing.
//
// The recorder is the test double for host integrations: tests drive
// rendering against it and assert on the recorded command stream, the
// scissor state captured alongside each draw, and the handles issued.
// Typed command structs keep recordings inspectable and debuggable.
//
// # Example
//
//	rec := recording.NewRecorder()
//	rig.SetRenderInterface(rec)
//
//	// ... exercise rendering ...
//
//	for _, cmd := range rec.Commands() {
//	    if draw, ok := cmd.(*recording.RenderGeometryCommand); ok {
//	        // assert on draw.Scissor, draw.Vertices, ...
//	    }
//	}
package recording

import "github.com/gogui/rig"

// CommandType identifies the type of a command.
// Each command type corresponds to one render interface call.
type CommandType uint8

const (
	// Drawing commands
	CmdRenderGeometry         CommandType = iota // Immediate-mode draw
	CmdCompileGeometry                           // Retained geometry upload
	CmdRenderCompiledGeometry                    // Retained geometry draw
	CmdReleaseCompiledGeometry                   // Retained geometry free

	// Scissor commands
	CmdEnableScissorRegion // Scissor toggle
	CmdSetScissorRegion    // Scissor rectangle

	// Texture commands
	CmdLoadTexture     // Texture load by source name
	CmdGenerateTexture // Texture creation from pixels
	CmdReleaseTexture  // Texture free
)

// commandTypeNames maps CommandType values to their string representation.
var commandTypeNames = [...]string{
	CmdRenderGeometry:          "RenderGeometry",
	CmdCompileGeometry:         "CompileGeometry",
	CmdRenderCompiledGeometry:  "RenderCompiledGeometry",
	CmdReleaseCompiledGeometry: "ReleaseCompiledGeometry",
	CmdEnableScissorRegion:     "EnableScissorRegion",
	CmdSetScissorRegion:        "SetScissorRegion",
	CmdLoadTexture:             "LoadTexture",
	CmdGenerateTexture:         "GenerateTexture",
	CmdReleaseTexture:          "ReleaseTexture",
}

// String returns the string representation of a CommandType.
func (c CommandType) String() string {
	if int(c) < len(commandTypeNames) {
		return commandTypeNames[c]
	}
	return "Unknown"
}

// Command is the interface implemented by all command types.
type Command interface {
	// Type returns the CommandType for this command.
	Type() CommandType
}

// ScissorState is the scissor configuration in effect when a command
// was recorded. Draw commands carry a snapshot so tests can verify
// clipping without replaying state commands.
type ScissorState struct {
	// Enabled reports whether scissor testing was on.
	Enabled bool
	// Region is the most recently set scissor rectangle.
	Region rig.Rect
}

// RenderGeometryCommand records an immediate-mode draw.
type RenderGeometryCommand struct {
	// Vertices is a copy of the submitted vertex list.
	Vertices []rig.Vertex
	// Indices is a copy of the submitted index list.
	Indices []int
	// Texture is the texture handle, or rig.InvalidTextureHandle.
	Texture rig.TextureHandle
	// Translation is the per-call position offset.
	Translation rig.Vector2f
	// Scissor is the scissor state at the time of the draw.
	Scissor ScissorState
}

// Type implements Command.
func (*RenderGeometryCommand) Type() CommandType { return CmdRenderGeometry }

// CompileGeometryCommand records a retained geometry upload.
type CompileGeometryCommand struct {
	// Vertices is a copy of the submitted vertex list.
	Vertices []rig.Vertex
	// Indices is a copy of the submitted index list.
	Indices []int
	// Texture is the texture handle, or rig.InvalidTextureHandle.
	Texture rig.TextureHandle
	// Result is the handle the recorder issued.
	Result rig.GeometryHandle
}

// Type implements Command.
func (*CompileGeometryCommand) Type() CommandType { return CmdCompileGeometry }

// RenderCompiledGeometryCommand records a retained geometry draw.
type RenderCompiledGeometryCommand struct {
	// Geometry is the compiled geometry being drawn.
	Geometry rig.GeometryHandle
	// Translation is the per-call position offset.
	Translation rig.Vector2f
	// Scissor is the scissor state at the time of the draw.
	Scissor ScissorState
}

// Type implements Command.
func (*RenderCompiledGeometryCommand) Type() CommandType { return CmdRenderCompiledGeometry }

// ReleaseCompiledGeometryCommand records a retained geometry free.
type ReleaseCompiledGeometryCommand struct {
	// Geometry is the handle being released.
	Geometry rig.GeometryHandle
}

// Type implements Command.
func (*ReleaseCompiledGeometryCommand) Type() CommandType { return CmdReleaseCompiledGeometry }

// EnableScissorRegionCommand records a scissor toggle.
type EnableScissorRegionCommand struct {
	// Enable is the requested scissor state.
	Enable bool
}

// Type implements Command.
func (*EnableScissorRegionCommand) Type() CommandType { return CmdEnableScissorRegion }

// SetScissorRegionCommand records a scissor rectangle change.
type SetScissorRegionCommand struct {
	// Region is the new scissor rectangle.
	Region rig.Rect
}

// Type implements Command.
func (*SetScissorRegionCommand) Type() CommandType { return CmdSetScissorRegion }

// LoadTextureCommand records a texture load.
type LoadTextureCommand struct {
	// Source is the requested source name.
	Source string
	// Result is the handle the recorder issued, or
	// rig.InvalidTextureHandle when the load was scripted to fail.
	Result rig.TextureHandle
}

// Type implements Command.
func (*LoadTextureCommand) Type() CommandType { return CmdLoadTexture }

// GenerateTextureCommand records a texture creation from pixel data.
type GenerateTextureCommand struct {
	// Source is a copy of the submitted RGBA8 pixel data.
	Source []byte
	// Dimensions is the texture size in pixels.
	Dimensions rig.Vector2i
	// Result is the handle the recorder issued.
	Result rig.TextureHandle
}

// Type implements Command.
func (*GenerateTextureCommand) Type() CommandType { return CmdGenerateTexture }

// ReleaseTextureCommand records a texture free.
type ReleaseTextureCommand struct {
	// Texture is the handle being released.
	Texture rig.TextureHandle
}

// Type implements Command.
func (*ReleaseTextureCommand) Type() CommandType { return CmdReleaseTexture }
