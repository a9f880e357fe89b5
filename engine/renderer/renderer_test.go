package renderer

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-folio/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-folio/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/lucasb-eyer/go-colorful"
)

const wireSource = `
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
    @location(0) position: vec3<f32>,
}

@vertex
fn vs_main(in: VertexInput) -> @builtin(position) vec4<f32> {
    return camera.view_proj * object.model * vec4<f32>(in.position, 1.0);
}

@fragment
fn fs_main() -> @location(0) vec4<f32> {
    return object.color;
}
`

func uniformEntry(binding uint32, visibility wgpu.ShaderStage, size uint64) wgpu.BindGroupLayoutEntry {
	return wgpu.BindGroupLayoutEntry{
		Binding:    binding,
		Visibility: visibility,
		Buffer: wgpu.BufferBindingLayout{
			Type:           wgpu.BufferBindingTypeUniform,
			MinBindingSize: size,
		},
	}
}

func TestMergeBindGroupLayouts(t *testing.T) {
	vertex := map[int]wgpu.BindGroupLayoutDescriptor{
		0: {Entries: []wgpu.BindGroupLayoutEntry{uniformEntry(0, wgpu.ShaderStageVertex, 80)}},
		1: {Entries: []wgpu.BindGroupLayoutEntry{uniformEntry(1, wgpu.ShaderStageVertex, 16)}},
	}
	fragment := map[int]wgpu.BindGroupLayoutDescriptor{
		1: {Entries: []wgpu.BindGroupLayoutEntry{
			uniformEntry(1, wgpu.ShaderStageFragment, 16),
			uniformEntry(0, wgpu.ShaderStageFragment, 96),
		}},
		2: {Entries: []wgpu.BindGroupLayoutEntry{uniformEntry(0, wgpu.ShaderStageFragment, 4)}},
	}

	merged := mergeBindGroupLayouts(vertex, fragment)
	if len(merged) != 3 {
		t.Fatalf("len(merged) = %d, want 3", len(merged))
	}

	if got := merged[0].Entries[0].Visibility; got != wgpu.ShaderStageVertex {
		t.Errorf("group 0 visibility = %v, want vertex", got)
	}

	g1 := merged[1].Entries
	if len(g1) != 2 {
		t.Fatalf("group 1 entries = %d, want 2", len(g1))
	}
	if g1[0].Binding != 0 || g1[1].Binding != 1 {
		t.Errorf("group 1 bindings = %d,%d, want sorted 0,1", g1[0].Binding, g1[1].Binding)
	}
	if got, want := g1[1].Visibility, wgpu.ShaderStageVertex|wgpu.ShaderStageFragment; got != want {
		t.Errorf("shared binding visibility = %v, want %v", got, want)
	}
	if got := g1[0].Visibility; got != wgpu.ShaderStageFragment {
		t.Errorf("fragment-only binding visibility = %v, want fragment", got)
	}

	if got := merged[2].Entries[0].Buffer.MinBindingSize; got != 4 {
		t.Errorf("group 2 MinBindingSize = %d, want 4", got)
	}
}

func TestMergeBindGroupLayoutsNil(t *testing.T) {
	if merged := mergeBindGroupLayouts(nil, nil); len(merged) != 0 {
		t.Errorf("len(merged) = %d, want 0", len(merged))
	}
}

func TestPipelineBindGroupLayout(t *testing.T) {
	p := pipeline.NewPipeline("wire",
		pipeline.WithVertexShader(shader.NewShader("wire_vs", shader.ShaderTypeVertex, wireSource)),
		pipeline.WithFragmentShader(shader.NewShader("wire_fs", shader.ShaderTypeFragment, wireSource)),
	)

	both := wgpu.ShaderStageVertex | wgpu.ShaderStageFragment
	for group, size := range map[int]uint64{0: 80, 1: 96} {
		desc, ok := pipelineBindGroupLayout(p, group)
		if !ok {
			t.Fatalf("group %d missing", group)
		}
		if len(desc.Entries) != 1 {
			t.Fatalf("group %d entries = %d, want 1", group, len(desc.Entries))
		}
		e := desc.Entries[0]
		if e.Visibility != both {
			t.Errorf("group %d visibility = %v, want %v", group, e.Visibility, both)
		}
		if e.Buffer.MinBindingSize != size {
			t.Errorf("group %d MinBindingSize = %d, want %d", group, e.Buffer.MinBindingSize, size)
		}
	}

	if _, ok := pipelineBindGroupLayout(p, 2); ok {
		t.Error("group 2 should not exist")
	}
}

func TestWGPUPresentMode(t *testing.T) {
	if got := wgpuPresentMode(PresentModeVSync); got != wgpu.PresentModeFifo {
		t.Errorf("VSync = %v, want fifo", got)
	}
	if got := wgpuPresentMode(PresentModeUncapped); got != wgpu.PresentModeImmediate {
		t.Errorf("Uncapped = %v, want immediate", got)
	}
}

func TestClearColorFor(t *testing.T) {
	bg, err := colorful.Hex("#0a0a0f")
	if err != nil {
		t.Fatal(err)
	}
	got := clearColorFor(bg)
	if got.A != 1 {
		t.Errorf("A = %v, want 1", got.A)
	}
	// sRGB 10/255 is about 0.003035 in linear light.
	if math.Abs(got.R-0.003035) > 1e-4 || got.R != got.G {
		t.Errorf("R,G = %v,%v, want ~0.003035 each", got.R, got.G)
	}
	if got.B <= got.R {
		t.Errorf("B = %v, want > R", got.B)
	}

	white := clearColorFor(colorful.Color{R: 2, G: 1, B: 1})
	if white.R != 1 {
		t.Errorf("out-of-gamut R = %v, want clamped 1", white.R)
	}
}
