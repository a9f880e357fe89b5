package field

import (
	"errors"
	"math"
)

var (
	// ErrDisabled is returned by Init when no 3D rendering context is available.
	// It is the graceful "no backdrop" outcome, not a failure.
	ErrDisabled = errors.New("field: 3D rendering unavailable")

	// ErrContextLost is reported by a Renderer when the underlying rendering context
	// went away mid-session. The field disables itself when it sees it.
	ErrContextLost = errors.New("field: rendering context lost")
)

// Vec3 is an (x, y, z) triple.
type Vec3 [3]float64

// Viewport is the host's drawable area in logical pixels.
type Viewport struct {
	Width  int
	Height int
}

// Clamped returns the viewport with both dimensions raised to at least 1.
func (v Viewport) Clamped() Viewport {
	return Viewport{Width: max(v.Width, 1), Height: max(v.Height, 1)}
}

// Aspect returns width / height of the clamped viewport.
func (v Viewport) Aspect() float64 {
	c := v.Clamped()
	return float64(c.Width) / float64(c.Height)
}

// NormalizePointer maps a pointer position in viewport pixels to device-normalized
// coordinates: x grows rightward in [-1, 1], y grows upward in [-1, 1].
//
// Parameters:
//   - px, py: pointer position in pixels, origin top-left
//   - viewport: the viewport the pointer is reported against
//
// Returns:
//   - x, y: normalized coordinates
func NormalizePointer(px, py float64, viewport Viewport) (x, y float64) {
	v := viewport.Clamped()
	x = px/float64(v.Width)*2 - 1
	y = -(py/float64(v.Height))*2 + 1
	return x, y
}

// Particle is one point of the particle set. Its attributes never change after Init.
type Particle struct {
	Position Vec3
	Color    Vec3
	Size     float64
}

// ShapeKind tags the polyhedron drawn for a Shape.
type ShapeKind int

const (
	ShapeOctahedron ShapeKind = iota
	ShapeTetrahedron
	ShapeIcosahedron

	shapeKindCount = 3
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeOctahedron:
		return "octahedron"
	case ShapeTetrahedron:
		return "tetrahedron"
	case ShapeIcosahedron:
		return "icosahedron"
	default:
		return "unknown"
	}
}

// Shape is a floating wireframe polyhedron. Kind, base position, rotation velocity,
// float speed and float phase are fixed at creation; position and rotation are
// recomputed every frame from them.
type Shape struct {
	kind             ShapeKind
	base             Vec3
	rotationVelocity Vec3
	floatSpeed       float64
	floatPhase       float64

	position Vec3
	rotation Vec3
}

// Kind returns the polyhedron kind.
func (s *Shape) Kind() ShapeKind { return s.kind }

// Base returns the creation-time position the bob oscillates around.
func (s *Shape) Base() Vec3 { return s.base }

// RotationVelocity returns the per-frame rotation increment for each axis.
func (s *Shape) RotationVelocity() Vec3 { return s.rotationVelocity }

// FloatSpeed returns the angular frequency of the vertical bob, in radians per second.
func (s *Shape) FloatSpeed() float64 { return s.floatSpeed }

// FloatPhase returns the phase offset of the vertical bob.
func (s *Shape) FloatPhase() float64 { return s.floatPhase }

// Position returns the current position.
func (s *Shape) Position() Vec3 { return s.position }

// Rotation returns the current Euler rotation.
func (s *Shape) Rotation() Vec3 { return s.rotation }

// BobPeriod returns the period of the vertical bob in seconds.
func (s *Shape) BobPeriod() float64 {
	return 2 * math.Pi / s.floatSpeed
}

// bobOffset is a pure function of elapsed time; it never accumulates.
func (s *Shape) bobOffset(elapsedSeconds, amplitude float64) float64 {
	return math.Sin(elapsedSeconds*s.floatSpeed+s.floatPhase) * amplitude
}

// Transform is a position and Euler rotation (X, then Y, then Z).
type Transform struct {
	Position Vec3
	Rotation Vec3
}

// Camera is the fixed viewpoint the field is rendered from.
type Camera struct {
	Position Vec3
	Target   Vec3
	Fov      float64
	Aspect   float64
	Near     float64
	Far      float64
}

// Frame is the scene description handed to the Renderer each frame. ShapeTransforms is
// indexed like State.Shapes(). The slice is reused between frames; renderers must not
// retain it.
type Frame struct {
	Elapsed         float64
	Particles       Transform
	Shapes          Transform
	ShapeTransforms []Transform
}

// Renderer consumes the field's scene description and produces pixels.
type Renderer interface {
	// Render draws one frame. An error wrapping ErrContextLost disables the field.
	Render(frame *Frame) error

	// Resize changes the output resolution and camera aspect.
	Resize(viewport Viewport, camera Camera)

	// Release frees every resource acquired by the renderer.
	Release()
}

// RendererFactory allocates a Renderer for an initialized State. It is called once
// per Start, after the capability probe succeeded.
type RendererFactory func(state *State) (Renderer, error)

// CapabilityProbe reports whether a 3D rendering context is available.
type CapabilityProbe func() bool

// Scheduler is the host's per-frame callback scheduler. RequestFrame runs cb once on
// the next frame with the monotonic elapsed time in seconds and returns a token for
// CancelFrame. Callbacks fire in submission order and never concurrently.
type Scheduler interface {
	RequestFrame(cb func(elapsedSeconds float64)) uint64
	CancelFrame(token uint64)
}
