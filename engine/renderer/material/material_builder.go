package material

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-folio/common"
	"github.com/Carmen-Shannon/oxy-folio/engine/renderer/pipeline"
	"github.com/lucasb-eyer/go-colorful"
)

// MaterialBuilderOption is a function that configures a material instance during construction.
type MaterialBuilderOption func(*material)

// WithName is an option builder that sets the name of the material.
//
// Parameters:
//   - name: the identifier for the material
//
// Returns:
//   - MaterialBuilderOption: a function that applies the name option to a material
func WithName(name string) MaterialBuilderOption {
	return func(m *material) {
		m.name = name
	}
}

// WithColor is an option builder that sets the sRGB color of the material.
//
// Parameters:
//   - color: the color
//
// Returns:
//   - MaterialBuilderOption: a function that applies the color option to a material
func WithColor(color colorful.Color) MaterialBuilderOption {
	return func(m *material) {
		m.color = color
	}
}

// WithHexColor is an option builder that sets the color from a "#rrggbb" string.
// It panics on a malformed string; user supplied colors are validated by the config layer.
//
// Parameters:
//   - hex: the color as "#rrggbb" or "#rgb"
//
// Returns:
//   - MaterialBuilderOption: a function that applies the color option to a material
func WithHexColor(hex string) MaterialBuilderOption {
	c, err := colorful.Hex(hex)
	if err != nil {
		panic(fmt.Sprintf("material: invalid color %q: %v", hex, err))
	}
	return WithColor(c)
}

// WithOpacity is an option builder that sets the opacity, clamped to [0, 1].
//
// Parameters:
//   - opacity: the opacity
//
// Returns:
//   - MaterialBuilderOption: a function that applies the opacity option to a material
func WithOpacity(opacity float32) MaterialBuilderOption {
	return func(m *material) {
		m.opacity = common.Clamp(opacity, 0, 1)
	}
}

// WithSizeScale is an option builder that sets the point size multiplier.
//
// Parameters:
//   - scale: the multiplier applied to per-instance sizes
//
// Returns:
//   - MaterialBuilderOption: a function that applies the size scale option to a material
func WithSizeScale(scale float32) MaterialBuilderOption {
	return func(m *material) {
		m.sizeScale = scale
	}
}

// WithBlendMode is an option builder that sets the blend mode the material requires.
//
// Parameters:
//   - mode: the blend mode
//
// Returns:
//   - MaterialBuilderOption: a function that applies the blend mode option to a material
func WithBlendMode(mode pipeline.BlendMode) MaterialBuilderOption {
	return func(m *material) {
		m.blendMode = mode
	}
}

// WithPipelineKey is an option builder that sets the render pipeline key for the material.
//
// Parameters:
//   - key: the pipeline key to associate with the material
//
// Returns:
//   - MaterialBuilderOption: a function that applies the pipeline key option to a material
func WithPipelineKey(key string) MaterialBuilderOption {
	return func(m *material) {
		m.pipelineKey = key
	}
}
