package field

import (
	"errors"
	"fmt"
	"log"
	"math"
	"math/rand/v2"

	"github.com/Carmen-Shannon/oxy-folio/common"
)

// State is the full runtime state of an initialized field. It is owned by the frame
// loop; all methods must be called from one goroutine at a time.
type State struct {
	config   Config
	variant  Variant
	viewport Viewport
	camera   Camera

	particles []Particle
	shapes    []Shape

	particleTransform Transform
	shapeTransform    Transform

	frame    Frame
	renderer Renderer
	disabled bool
	frames   uint64
}

// Init constructs the field for the given viewport and variant.
//
// Parameters:
//   - config: the calibration constants, normally DefaultConfig()
//   - viewport: the host viewport; dimensions below 1 are clamped to 1
//   - variant: reduced or full cardinality
//   - probe: capability probe; nil means "available"
//   - rng: random source for particle and shape generation
//
// Returns:
//   - *State: the initialized field
//   - error: ErrDisabled when the probe reports no 3D context, or a configuration error
func Init(config Config, viewport Viewport, variant Variant, probe CapabilityProbe, rng *rand.Rand) (*State, error) {
	if probe != nil && !probe() {
		return nil, ErrDisabled
	}
	if rng == nil {
		return nil, errors.New("field: nil random source")
	}
	if len(config.Palette) == 0 {
		return nil, errors.New("field: empty palette")
	}
	vc := config.Variant(variant)
	if vc.ParticleCount < 0 || config.ShapeCount < 0 {
		return nil, fmt.Errorf("field: negative cardinality (particles %d, shapes %d)", vc.ParticleCount, config.ShapeCount)
	}

	s := &State{
		config:   config,
		variant:  variant,
		viewport: viewport.Clamped(),
	}
	s.camera = Camera{
		Position: Vec3{0, 0, config.CameraDistance},
		Fov:      config.CameraFov,
		Aspect:   s.viewport.Aspect(),
		Near:     config.CameraNear,
		Far:      config.CameraFar,
	}
	s.particles = generateParticles(vc, config.Palette, rng)
	s.shapes = generateShapes(config, rng)
	s.frame.ShapeTransforms = make([]Transform, len(s.shapes))
	for i := range s.shapes {
		s.frame.ShapeTransforms[i] = Transform{Position: s.shapes[i].position, Rotation: s.shapes[i].rotation}
	}

	return s, nil
}

func generateParticles(vc VariantConfig, palette [][3]float64, rng *rand.Rand) []Particle {
	particles := make([]Particle, vc.ParticleCount)
	for i := range particles {
		p := &particles[i]
		p.Position = Vec3{
			(rng.Float64() - 0.5) * vc.SpreadX,
			(rng.Float64() - 0.5) * vc.SpreadY,
			(rng.Float64()-0.5)*vc.Depth - vc.DepthOffset,
		}
		c := palette[rng.IntN(len(palette))]
		p.Color = Vec3{c[0], c[1], c[2]}
		p.Size = rng.Float64()*vc.SizeRange + vc.MinSize
	}
	return particles
}

func generateShapes(config Config, rng *rand.Rand) []Shape {
	shapes := make([]Shape, config.ShapeCount)
	for i := range shapes {
		s := &shapes[i]
		s.kind = ShapeKind(rng.IntN(shapeKindCount))
		s.base = Vec3{
			(rng.Float64() - 0.5) * config.ShapeSpread[0],
			(rng.Float64() - 0.5) * config.ShapeSpread[1],
			(rng.Float64()-0.5)*config.ShapeSpread[2] - config.ShapeDepthOffset,
		}
		s.position = s.base
		s.rotation = Vec3{rng.Float64() * math.Pi, rng.Float64() * math.Pi, rng.Float64() * math.Pi}
		s.rotationVelocity = Vec3{
			(rng.Float64() - 0.5) * config.ShapeRotationSpeed,
			(rng.Float64() - 0.5) * config.ShapeRotationSpeed,
			(rng.Float64() - 0.5) * config.ShapeRotationSpeed,
		}
		s.floatSpeed = rng.Float64()*config.FloatSpeedRange + config.FloatSpeedMin
		s.floatPhase = rng.Float64() * 2 * math.Pi
	}
	return shapes
}

// Advance steps the field by one frame and hands the result to the attached renderer.
// A no-op once the field is disabled.
//
// Parameters:
//   - elapsedSeconds: monotonic time since the field started
//   - pointer: the pointer state; its smoothed value is damped toward raw
//   - scrollY: current vertical scroll offset in pixels, clamped at 0
func (s *State) Advance(elapsedSeconds float64, pointer *PointerState, scrollY float64) {
	if s.disabled {
		return
	}
	if !common.IsFinite(elapsedSeconds) {
		elapsedSeconds = s.frame.Elapsed
	}
	if !common.IsFinite(scrollY) || scrollY < 0 {
		scrollY = 0
	}

	var mx, my float64
	if pointer != nil {
		mx, my = pointer.Damp(s.config.PointerDamping)
	}

	c := &s.config
	pt := &s.particleTransform
	pt.Rotation[1] = mx*c.ParticlePointerYaw + c.ParticleDriftY
	pt.Rotation[0] = my * c.ParticlePointerPitch
	pt.Rotation[2] += c.ParticleDriftZ
	pt.Position[1] = -scrollY * c.ParticleScroll

	st := &s.shapeTransform
	st.Rotation[1] = mx * c.ShapePointerYaw
	st.Rotation[0] = my * c.ShapePointerPitch
	st.Position[1] = -scrollY * c.ShapeScroll

	for i := range s.shapes {
		sh := &s.shapes[i]
		for axis := range 3 {
			sh.rotation[axis] += sh.rotationVelocity[axis]
		}
		sh.position = sh.base
		sh.position[1] = sh.base[1] + sh.bobOffset(elapsedSeconds, c.BobAmplitude)
		s.frame.ShapeTransforms[i] = Transform{Position: sh.position, Rotation: sh.rotation}
	}

	s.frame.Elapsed = elapsedSeconds
	s.frame.Particles = s.particleTransform
	s.frame.Shapes = s.shapeTransform
	s.frames++

	if s.renderer == nil {
		return
	}
	if err := s.renderer.Render(&s.frame); err != nil {
		if errors.Is(err, ErrContextLost) {
			log.Printf("[Field] rendering context lost after %d frames, disabling: %v", s.frames, err)
			s.disabled = true
			return
		}
		log.Printf("[Field] frame %d render failed: %v", s.frames, err)
	}
}

// OnResize updates the viewport and camera aspect and forwards them to the renderer.
//
// Parameters:
//   - viewport: the new viewport; dimensions below 1 are clamped to 1
func (s *State) OnResize(viewport Viewport) {
	s.viewport = viewport.Clamped()
	s.camera.Aspect = s.viewport.Aspect()
	if s.renderer != nil && !s.disabled {
		s.renderer.Resize(s.viewport, s.camera)
	}
}

// Attach binds a renderer to the state. Frames advanced afterwards are rendered.
func (s *State) Attach(r Renderer) {
	s.renderer = r
}

// Detach releases and forgets the attached renderer.
func (s *State) Detach() {
	if s.renderer != nil {
		s.renderer.Release()
		s.renderer = nil
	}
}

// Disabled reports whether the field stopped after losing its rendering context.
func (s *State) Disabled() bool { return s.disabled }

// Variant returns the variant the field was initialized with.
func (s *State) Variant() Variant { return s.variant }

// Config returns the calibration constants.
func (s *State) Config() Config { return s.config }

// Viewport returns the current, clamped viewport.
func (s *State) Viewport() Viewport { return s.viewport }

// Camera returns the fixed camera with the current aspect.
func (s *State) Camera() Camera { return s.camera }

// Particles returns the particle set. The slice must not be modified.
func (s *State) Particles() []Particle { return s.particles }

// Shapes returns the shape set. The slice must not be modified.
func (s *State) Shapes() []Shape { return s.shapes }

// ParticleTransform returns the aggregate transform of the particle set.
func (s *State) ParticleTransform() Transform { return s.particleTransform }

// ShapeTransform returns the aggregate transform of the shape group.
func (s *State) ShapeTransform() Transform { return s.shapeTransform }

// Frames returns the number of frames advanced so far.
func (s *State) Frames() uint64 { return s.frames }
