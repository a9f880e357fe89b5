package scene

import (
	"github.com/Carmen-Shannon/oxy-folio/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-folio/field"
	"github.com/lucasb-eyer/go-colorful"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithName sets the scene's identifier.
//
// Parameters:
//   - name: the scene name
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithName(name string) SceneBuilderOption {
	return func(s *scene) {
		s.name = name
	}
}

// WithParticleMaterial replaces the material the particle set is drawn with.
// The material's pipeline key names the particle pipeline.
//
// Parameters:
//   - m: the particle material
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithParticleMaterial(m material.Material) SceneBuilderOption {
	return func(s *scene) {
		if m != nil {
			s.particleMaterial = m
		}
	}
}

// WithShapeMaterial replaces the material the wireframe shapes are drawn with.
//
// Parameters:
//   - m: the shape material
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithShapeMaterial(m material.Material) SceneBuilderOption {
	return func(s *scene) {
		if m != nil {
			s.shapeMaterial = m
		}
	}
}

// WithShapeRadius overrides the circumscribed radius of one shape kind.
//
// Parameters:
//   - kind: the shape kind
//   - radius: the radius in world units, ignored when not positive
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithShapeRadius(kind field.ShapeKind, radius float64) SceneBuilderOption {
	return func(s *scene) {
		if radius > 0 {
			s.shapeRadii[kind] = radius
		}
	}
}

// WithShapeColor recolors the default wireframe material, keeping its opacity and blending.
//
// Parameters:
//   - c: the sRGB wireframe color
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithShapeColor(c colorful.Color) SceneBuilderOption {
	return func(s *scene) {
		s.shapeMaterial = shapeMaterial(material.WithColor(c))
	}
}

// WithPixelSize sets where the scene reads the surface size from when it reconfigures
// the surface. Viewports are in screen coordinates, which on high-DPI displays are
// smaller than the framebuffer. Without it the surface follows the viewport.
//
// Parameters:
//   - size: function returning the framebuffer width and height in pixels
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithPixelSize(size func() (width, height int)) SceneBuilderOption {
	return func(s *scene) {
		s.pixelSize = size
	}
}
