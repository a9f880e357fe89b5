package shader

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
)

const testSource = `
struct CameraUniform {
    view_proj: mat4x4<f32>,
    position: vec3<f32>,
    aspect: f32,
}

struct ObjectUniform {
    model: mat4x4<f32>,
    color: vec4<f32>,
    params: vec4<f32>,
}

@group(0) @binding(0) var<uniform> camera: CameraUniform;
@group(1) @binding(0) var<uniform> object: ObjectUniform;

struct VertexInput {
    @location(0) corner: vec3<f32>,
}

struct ParticleInstance {
    @location(1) center: vec3<f32>,
    @location(2) size: f32,
    @location(3) color: vec4<f32>,
}

struct VertexOutput {
    @builtin(position) clip: vec4<f32>,
    @location(0) color: vec4<f32>,
}

// @fragment fn commented_out() {}

@vertex
fn vs_main(in: VertexInput, inst: ParticleInstance) -> VertexOutput {
    var out: VertexOutput;
    return out;
}

@fragment
fn fs_main(in: VertexOutput) -> @location(0) vec4<f32> {
    return in.color;
}
`

func TestNewShaderEntryPoints(t *testing.T) {
	vs := NewShader("particles_vs", ShaderTypeVertex, testSource)
	if got := vs.EntryPoint(); got != "vs_main" {
		t.Errorf("vertex EntryPoint() = %q, want vs_main", got)
	}
	fs := NewShader("particles_fs", ShaderTypeFragment, testSource)
	if got := fs.EntryPoint(); got != "fs_main" {
		t.Errorf("fragment EntryPoint() = %q, want fs_main", got)
	}
	if got := fs.Module().Label; got != "particles_fs" {
		t.Errorf("Module().Label = %q, want particles_fs", got)
	}
}

func TestVertexLayouts(t *testing.T) {
	vs := NewShader("particles_vs", ShaderTypeVertex, testSource)
	layouts := vs.VertexLayouts()
	if len(layouts) != 2 {
		t.Fatalf("len(VertexLayouts()) = %d, want 2", len(layouts))
	}

	if layouts[0].StepMode != wgpu.VertexStepModeVertex {
		t.Errorf("slot 0 step mode = %v, want vertex", layouts[0].StepMode)
	}
	if layouts[0].ArrayStride != 12 {
		t.Errorf("slot 0 stride = %d, want 12", layouts[0].ArrayStride)
	}

	inst := layouts[1]
	if inst.StepMode != wgpu.VertexStepModeInstance {
		t.Errorf("slot 1 step mode = %v, want instance", inst.StepMode)
	}
	if inst.ArrayStride != 32 {
		t.Errorf("slot 1 stride = %d, want 32", inst.ArrayStride)
	}
	wantOffsets := []uint64{0, 12, 16}
	wantLocations := []uint32{1, 2, 3}
	for i, a := range inst.Attributes {
		if a.Offset != wantOffsets[i] || a.ShaderLocation != wantLocations[i] {
			t.Errorf("attribute %d = (offset %d, location %d), want (%d, %d)",
				i, a.Offset, a.ShaderLocation, wantOffsets[i], wantLocations[i])
		}
	}

	fs := NewShader("particles_fs", ShaderTypeFragment, testSource)
	if got := len(fs.VertexLayouts()); got != 0 {
		t.Errorf("fragment VertexLayouts() len = %d, want 0", got)
	}
}

func TestBindGroupLayouts(t *testing.T) {
	vs := NewShader("particles_vs", ShaderTypeVertex, testSource)
	descs := vs.BindGroupLayoutDescriptors()
	if len(descs) != 2 {
		t.Fatalf("len(BindGroupLayoutDescriptors()) = %d, want 2", len(descs))
	}

	cam := vs.BindGroupLayoutDescriptor(0).Entries
	if len(cam) != 1 {
		t.Fatalf("group 0 entries = %d, want 1", len(cam))
	}
	if cam[0].Buffer.Type != wgpu.BufferBindingTypeUniform {
		t.Errorf("group 0 binding type = %v, want uniform", cam[0].Buffer.Type)
	}
	if cam[0].Buffer.MinBindingSize != 80 {
		t.Errorf("camera MinBindingSize = %d, want 80", cam[0].Buffer.MinBindingSize)
	}
	if cam[0].Visibility != wgpu.ShaderStageVertex {
		t.Errorf("camera visibility = %v, want vertex", cam[0].Visibility)
	}

	obj := vs.BindGroupLayoutDescriptor(1).Entries
	if len(obj) != 1 || obj[0].Buffer.MinBindingSize != 96 {
		t.Errorf("object entries = %+v, want one entry of 96 bytes", obj)
	}

	if got := vs.BindGroupVarName(1, 0); got != "object" {
		t.Errorf("BindGroupVarName(1, 0) = %q, want object", got)
	}
	if got := vs.BindGroupVarName(3, 0); got != "" {
		t.Errorf("BindGroupVarName(3, 0) = %q, want empty", got)
	}
}

func TestStructLayoutPadding(t *testing.T) {
	structs := parseStructs(`struct Padded { a: f32, b: vec3<f32>, }`)
	layouts := structLayouts(structs)
	// b aligns to 16, so the struct spans 28 bytes rounded up to 32.
	if got := layouts["Padded"].size; got != 32 {
		t.Errorf("Padded size = %d, want 32", got)
	}
}

func TestNewShaderPanics(t *testing.T) {
	cases := map[string]struct {
		shaderType ShaderType
		source     string
	}{
		"empty source":   {ShaderTypeVertex, ""},
		"no entry point": {ShaderTypeFragment, "@vertex fn vs_main() {}"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("NewShader did not panic")
				}
			}()
			NewShader(name, tc.shaderType, tc.source)
		})
	}
}
