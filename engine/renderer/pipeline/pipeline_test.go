package pipeline

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
)

func TestNewPipelineDefaults(t *testing.T) {
	p := NewPipeline("default")
	if !p.DepthTestEnabled() || !p.DepthWriteEnabled() {
		t.Errorf("depth test/write = %v/%v, want true/true", p.DepthTestEnabled(), p.DepthWriteEnabled())
	}
	if p.BlendMode() != BlendModeNone {
		t.Errorf("BlendMode() = %v, want none", p.BlendMode())
	}
	if p.BlendState() != nil {
		t.Errorf("BlendState() = %+v, want nil", p.BlendState())
	}
	if p.Topology() != wgpu.PrimitiveTopologyTriangleList {
		t.Errorf("Topology() = %v, want triangle list", p.Topology())
	}
	if p.RenderPipeline() != nil {
		t.Errorf("RenderPipeline() should be nil before creation")
	}
	// Release without a GPU pipeline is a no-op.
	p.Release()
}

func TestPipelineOptions(t *testing.T) {
	p := NewPipeline("shapes",
		WithTopology(wgpu.PrimitiveTopologyLineList),
		WithBlendMode(BlendModeAlpha),
		WithDepthWriteEnabled(false),
		WithCullMode(wgpu.CullModeBack),
		WithFrontFace(wgpu.FrontFaceCW),
		WithWriteMask(wgpu.ColorWriteMaskRed),
	)
	if p.PipelineKey() != "shapes" {
		t.Errorf("PipelineKey() = %q, want shapes", p.PipelineKey())
	}
	if p.Topology() != wgpu.PrimitiveTopologyLineList {
		t.Errorf("Topology() = %v, want line list", p.Topology())
	}
	if p.DepthWriteEnabled() {
		t.Errorf("DepthWriteEnabled() = true, want false")
	}
	if p.CullMode() != wgpu.CullModeBack || p.FrontFace() != wgpu.FrontFaceCW {
		t.Errorf("cull/front = %v/%v, want back/cw", p.CullMode(), p.FrontFace())
	}
	if p.WriteMask() != wgpu.ColorWriteMaskRed {
		t.Errorf("WriteMask() = %v, want red", p.WriteMask())
	}
}

func TestBlendStates(t *testing.T) {
	alpha := NewPipeline("a", WithBlendMode(BlendModeAlpha)).BlendState()
	if alpha == nil || alpha.Color.DstFactor != wgpu.BlendFactorOneMinusSrcAlpha {
		t.Errorf("alpha blend = %+v, want dst factor one-minus-src-alpha", alpha)
	}
	additive := NewPipeline("b", WithBlendMode(BlendModeAdditive)).BlendState()
	if additive == nil {
		t.Fatal("additive BlendState() = nil")
	}
	if additive.Color.SrcFactor != wgpu.BlendFactorSrcAlpha || additive.Color.DstFactor != wgpu.BlendFactorOne {
		t.Errorf("additive color = %+v, want src-alpha + one", additive.Color)
	}
}

func TestBlendModeString(t *testing.T) {
	cases := map[BlendMode]string{
		BlendModeNone:     "none",
		BlendModeAlpha:    "alpha",
		BlendModeAdditive: "additive",
	}
	for mode, want := range cases {
		if got := mode.String(); got != want {
			t.Errorf("BlendMode(%d).String() = %q, want %q", mode, got, want)
		}
	}
}
