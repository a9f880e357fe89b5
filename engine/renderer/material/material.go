package material

import (
	"github.com/Carmen-Shannon/oxy-folio/engine/renderer/pipeline"
	"github.com/lucasb-eyer/go-colorful"
)

// material is the implementation of the Material interface.
type material struct {
	name        string
	color       colorful.Color
	opacity     float32
	sizeScale   float32
	blendMode   pipeline.BlendMode
	pipelineKey string
}

// Material describes the surface of a drawable: its sRGB color, opacity, the pipeline it is
// drawn with and the blend mode that pipeline must use. Materials are immutable after
// construction; the values reach the GPU through the owning GameObject's uniform.
type Material interface {
	// Name retrieves the material identifier.
	//
	// Returns:
	//   - string: the name of the material
	Name() string

	// Color retrieves the material color as an sRGB colorful.Color.
	//
	// Returns:
	//   - colorful.Color: the color
	Color() colorful.Color

	// Opacity retrieves the material opacity in [0, 1].
	//
	// Returns:
	//   - float32: the opacity
	Opacity() float32

	// LinearRGBA returns the color converted to linear space with opacity in the alpha
	// channel, ready for an sRGB render target.
	//
	// Returns:
	//   - [4]float32: linear RGB plus opacity
	LinearRGBA() [4]float32

	// SizeScale retrieves the point size multiplier, used by instanced billboards.
	//
	// Returns:
	//   - float32: the size scale
	SizeScale() float32

	// BlendMode retrieves the blend mode the material requires.
	//
	// Returns:
	//   - pipeline.BlendMode: the blend mode
	BlendMode() pipeline.BlendMode

	// PipelineKey retrieves the key identifying the render pipeline this material uses.
	//
	// Returns:
	//   - string: the pipeline key
	PipelineKey() string
}

var _ Material = &material{}

// NewMaterial creates a new Material instance configured with the provided options.
// Defaults to opaque white with a size scale of 1.
//
// Parameters:
//   - options: variadic list of MaterialBuilderOption functions to configure the material
//
// Returns:
//   - Material: a new Material instance
func NewMaterial(options ...MaterialBuilderOption) Material {
	m := &material{
		color:     colorful.Color{R: 1, G: 1, B: 1},
		opacity:   1,
		sizeScale: 1,
	}
	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *material) Name() string {
	return m.name
}

func (m *material) Color() colorful.Color {
	return m.color
}

func (m *material) Opacity() float32 {
	return m.opacity
}

func (m *material) LinearRGBA() [4]float32 {
	r, g, b := m.color.Clamped().LinearRgb()
	return [4]float32{float32(r), float32(g), float32(b), m.opacity}
}

func (m *material) SizeScale() float32 {
	return m.sizeScale
}

func (m *material) BlendMode() pipeline.BlendMode {
	return m.blendMode
}

func (m *material) PipelineKey() string {
	return m.pipelineKey
}
