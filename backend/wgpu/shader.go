package wgpu

import (
	"fmt"

	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"
)

// quadShaderSource draws the interface triangle list. Positions arrive in
// pixels; the vertex stage shifts them by the draw translation and maps
// to clip space with Y down. The fragment stage modulates the vertex
// colour with the bound texture and premultiplies for blending; draws
// without a texture bind the 1x1 white default, making modulation an
// identity.
const quadShaderSource = `
struct Uniforms {
    screen: vec2<f32>,
    translation: vec2<f32>,
}

@group(0) @binding(0) var<uniform> uniforms: Uniforms;
@group(0) @binding(1) var tex: texture_2d<f32>;
@group(0) @binding(2) var tex_sampler: sampler;

struct VertexOut {
    @builtin(position) position: vec4<f32>,
    @location(0) colour: vec4<f32>,
    @location(1) uv: vec2<f32>,
}

@vertex
fn vs_main(
    @location(0) pos: vec2<f32>,
    @location(1) colour: vec4<f32>,
    @location(2) uv: vec2<f32>,
) -> VertexOut {
    let p = pos + uniforms.translation;
    let ndc = vec2<f32>(
        p.x / uniforms.screen.x * 2.0 - 1.0,
        1.0 - p.y / uniforms.screen.y * 2.0,
    );
    var out: VertexOut;
    out.position = vec4<f32>(ndc, 0.0, 1.0);
    out.colour = colour;
    out.uv = uv;
    return out;
}

@fragment
fn fs_main(in: VertexOut) -> @location(0) vec4<f32> {
    let c = in.colour * textureSample(tex, tex_sampler, in.uv);
    return vec4<f32>(c.rgb * c.a, c.a);
}
`

// compileShaderModule compiles WGSL through naga to SPIR-V and creates
// the HAL module. The Vulkan backend consumes SPIR-V directly.
func compileShaderModule(device hal.Device, label, source string) (hal.ShaderModule, error) {
	spirvBytes, err := naga.Compile(source)
	if err != nil {
		return nil, fmt.Errorf("wgpu: compile %s: %w", label, err)
	}

	// SPIR-V is little-endian 32-bit words.
	spirvCode := make([]uint32, len(spirvBytes)/4)
	for i := range spirvCode {
		spirvCode[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}

	module, err := device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  label,
		Source: hal.ShaderSource{SPIRV: spirvCode},
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create %s module: %w", label, err)
	}
	return module, nil
}
