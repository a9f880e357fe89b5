package scene

import (
	_ "embed"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/Carmen-Shannon/oxy-folio/engine/camera"
	"github.com/Carmen-Shannon/oxy-folio/engine/game_object"
	"github.com/Carmen-Shannon/oxy-folio/engine/model"
	"github.com/Carmen-Shannon/oxy-folio/engine/renderer"
	"github.com/Carmen-Shannon/oxy-folio/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-folio/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-folio/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-folio/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-folio/field"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/lucasb-eyer/go-colorful"
)

const (
	// ParticlePipelineKey is the pipeline the particle set is drawn with.
	ParticlePipelineKey = "particles"

	// ShapePipelineKey is the pipeline the wireframe polyhedra are drawn with.
	ShapePipelineKey = "shapes"

	cameraGroup = 0
	objectGroup = 1
)

//go:embed assets/particles.wgsl
var particlesShaderBody string

//go:embed assets/shapes.wgsl
var shapesShaderBody string

// Scene renders a field.State with the WebGPU renderer. It mirrors the field's
// transforms onto a small game object graph: one object for the particle set, a group
// object for the shapes and one child per shape.
// Thread-safe for concurrent access.
type Scene interface {
	field.Renderer

	// Name returns the scene's identifier.
	Name() string

	// Camera returns the scene's camera.
	Camera() camera.Camera

	// Renderer returns the scene's renderer. The scene owns it; callers must not release it.
	Renderer() renderer.Renderer

	// Particles returns the object the particle set is drawn through.
	Particles() game_object.GameObject

	// ShapeGroup returns the parent object of every shape.
	ShapeGroup() game_object.GameObject

	// Shapes returns the shape objects, indexed like field.State.Shapes().
	Shapes() []game_object.GameObject

	// Frames returns the number of frames presented.
	Frames() uint64
}

type scene struct {
	mu   *sync.Mutex
	name string

	cam camera.Camera
	r   renderer.Renderer

	particleMaterial material.Material
	shapeMaterial    material.Material
	shapeRadii       map[field.ShapeKind]float64

	quad          model.Model
	particleCount int
	wireframes    map[field.ShapeKind]model.Model

	particles  game_object.GameObject
	shapeGroup game_object.GameObject
	shapes     []game_object.GameObject

	// Pre-allocated slice reused each frame to avoid per-frame allocations.
	writePool []bind_group_provider.BufferWrite

	viewport field.Viewport
	// pixelSize reports the surface size in pixels; nil uses the viewport.
	pixelSize func() (int, int)
	frames    uint64
	released  bool
}

// Ensure scene implements Scene interface.
var _ Scene = &scene{}

// NewScene builds every GPU resource needed to draw state and returns the scene ready to
// Render. The renderer must be non-nil; NewScene panics otherwise. The scene takes
// ownership of r: Release frees it, and so does a failed NewScene.
//
// Parameters:
//   - r: the renderer to draw with (must not be nil)
//   - state: the initialized field to draw (must not be nil)
//   - options: functional options to further configure the scene
//
// Returns:
//   - Scene: the newly created scene
//   - error: an error if pipeline or buffer creation fails
func NewScene(r renderer.Renderer, state *field.State, options ...SceneBuilderOption) (Scene, error) {
	if r == nil {
		panic("scene: NewScene requires a non-nil Renderer")
	}
	if state == nil {
		panic("scene: NewScene requires a non-nil field state")
	}

	s := &scene{
		mu:   &sync.Mutex{},
		name: "ambient",
		r:    r,
		particleMaterial: material.NewMaterial(
			material.WithName("particles"),
			material.WithOpacity(0.2),
			material.WithBlendMode(pipeline.BlendModeAdditive),
			material.WithPipelineKey(ParticlePipelineKey),
		),
		shapeMaterial: shapeMaterial(material.WithHexColor("#d4af37")),
		shapeRadii: map[field.ShapeKind]float64{
			field.ShapeOctahedron:  0.3,
			field.ShapeTetrahedron: 0.3,
			field.ShapeIcosahedron: 0.2,
		},
		wireframes: make(map[field.ShapeKind]model.Model),
		viewport:   state.Viewport(),
	}
	for _, option := range options {
		option(s)
	}

	if err := s.registerPipelines(); err != nil {
		s.Release()
		return nil, err
	}
	if err := s.initCamera(state.Camera()); err != nil {
		s.Release()
		return nil, err
	}
	if err := s.initParticles(state.Particles()); err != nil {
		s.Release()
		return nil, err
	}
	if err := s.initShapes(state.Shapes()); err != nil {
		s.Release()
		return nil, err
	}
	log.Printf("[Scene] %s: %d particles, %d shapes", s.name, s.particleCount, len(s.shapes))
	return s, nil
}

// shapeMaterial builds the translucent wireframe material in the given color.
func shapeMaterial(color material.MaterialBuilderOption) material.Material {
	return material.NewMaterial(
		material.WithName("shapes"),
		color,
		material.WithOpacity(0.08),
		material.WithBlendMode(pipeline.BlendModeAlpha),
		material.WithPipelineKey(ShapePipelineKey),
	)
}

// ShaderSource prefixes a WGSL body with the shared camera and object uniform structs.
//
// Parameters:
//   - body: WGSL declaring the bindings, vertex inputs and entry points
//
// Returns:
//   - string: the complete shader source
func ShaderSource(body string) string {
	return camera.GPUCameraUniformSource + "\n" + game_object.GPUObjectUniformSource + "\n" + body
}

// newPipeline builds the render pipeline for one material from a WGSL body.
func newPipeline(key, body string, topology wgpu.PrimitiveTopology, mat material.Material) pipeline.Pipeline {
	src := ShaderSource(body)
	return pipeline.NewPipeline(key,
		pipeline.WithVertexShader(shader.NewShader(key+"_vs", shader.ShaderTypeVertex, src)),
		pipeline.WithFragmentShader(shader.NewShader(key+"_fs", shader.ShaderTypeFragment, src)),
		pipeline.WithTopology(topology),
		pipeline.WithBlendMode(mat.BlendMode()),
		pipeline.WithCullMode(wgpu.CullModeNone),
		pipeline.WithDepthWriteEnabled(false),
	)
}

func (s *scene) registerPipelines() error {
	return s.r.RegisterPipelines(
		newPipeline(s.particleMaterial.PipelineKey(), particlesShaderBody, wgpu.PrimitiveTopologyTriangleList, s.particleMaterial),
		newPipeline(s.shapeMaterial.PipelineKey(), shapesShaderBody, wgpu.PrimitiveTopologyLineList, s.shapeMaterial),
	)
}

func (s *scene) layout(pipelineKey string, group int) (wgpu.BindGroupLayoutDescriptor, error) {
	desc, ok := s.r.BindGroupLayoutDescriptor(pipelineKey, group)
	if !ok {
		return wgpu.BindGroupLayoutDescriptor{}, fmt.Errorf("scene: pipeline %q has no bind group %d", pipelineKey, group)
	}
	return desc, nil
}

func (s *scene) initCamera(fc field.Camera) error {
	s.cam = camera.NewCamera(
		camera.WithPerspective(float32(fc.Fov), float32(fc.Aspect), float32(fc.Near), float32(fc.Far)),
		camera.WithController(camera.NewCameraController(
			camera.WithPosition(float32(fc.Position[0]), float32(fc.Position[1]), float32(fc.Position[2])),
			camera.WithTarget(float32(fc.Target[0]), float32(fc.Target[1]), float32(fc.Target[2])),
		)),
	)
	desc, err := s.layout(s.particleMaterial.PipelineKey(), cameraGroup)
	if err != nil {
		return err
	}
	if err := s.r.InitBindGroup(s.cam.BindGroupProvider(), desc); err != nil {
		return fmt.Errorf("scene: failed to init camera bind group: %w", err)
	}
	return nil
}

// ParticleInstances converts the particle set to GPU instance records. Colors are
// converted from sRGB to linear.
//
// Parameters:
//   - particles: the particle set
//
// Returns:
//   - []model.GPUParticleInstance: one record per particle
func ParticleInstances(particles []field.Particle) []model.GPUParticleInstance {
	out := make([]model.GPUParticleInstance, len(particles))
	for i, p := range particles {
		r, g, b := colorful.Color{R: p.Color[0], G: p.Color[1], B: p.Color[2]}.Clamped().LinearRgb()
		out[i] = model.GPUParticleInstance{
			Position:  [3]float32{float32(p.Position[0]), float32(p.Position[1]), float32(p.Position[2])},
			PointSize: float32(p.Size),
			Color:     [4]float32{float32(r), float32(g), float32(b), 1},
		}
	}
	return out
}

func (s *scene) initParticles(particles []field.Particle) error {
	s.quad = model.NewBillboardQuad()
	mesh := s.quad.MeshProvider()
	if err := s.r.InitMeshBuffers(mesh, s.quad.VertexData(), s.quad.IndexData(), s.quad.IndexCount()); err != nil {
		return err
	}
	s.particleCount = len(particles)
	if err := s.r.InitInstanceBuffer(mesh, model.MarshalParticleInstances(ParticleInstances(particles)), len(particles)); err != nil {
		return err
	}

	s.particles = game_object.NewGameObject(
		game_object.WithLabel("particles"),
		game_object.WithModel(s.quad),
		game_object.WithMaterial(s.particleMaterial),
	)
	desc, err := s.layout(s.particleMaterial.PipelineKey(), objectGroup)
	if err != nil {
		return err
	}
	return s.r.InitBindGroup(s.particles.ObjectProvider(), desc)
}

// PolyhedronFor maps a field shape kind to the wireframe solid drawn for it.
func PolyhedronFor(kind field.ShapeKind) model.Polyhedron {
	switch kind {
	case field.ShapeTetrahedron:
		return model.PolyhedronTetrahedron
	case field.ShapeIcosahedron:
		return model.PolyhedronIcosahedron
	default:
		return model.PolyhedronOctahedron
	}
}

func (s *scene) wireframe(kind field.ShapeKind) (model.Model, error) {
	if m, ok := s.wireframes[kind]; ok {
		return m, nil
	}
	radius, ok := s.shapeRadii[kind]
	if !ok {
		radius = 0.3
	}
	m := model.NewWireframe(PolyhedronFor(kind), radius)
	if err := s.r.InitMeshBuffers(m.MeshProvider(), m.VertexData(), m.IndexData(), m.IndexCount()); err != nil {
		return nil, err
	}
	s.wireframes[kind] = m
	return m, nil
}

func (s *scene) initShapes(shapes []field.Shape) error {
	s.shapeGroup = game_object.NewGameObject(game_object.WithLabel("shape_group"))
	desc, err := s.layout(s.shapeMaterial.PipelineKey(), objectGroup)
	if err != nil {
		return err
	}

	s.shapes = make([]game_object.GameObject, len(shapes))
	for i := range shapes {
		sh := &shapes[i]
		m, err := s.wireframe(sh.Kind())
		if err != nil {
			return err
		}
		p, r := sh.Position(), sh.Rotation()
		obj := game_object.NewGameObject(
			game_object.WithID(uint64(i+1)),
			game_object.WithLabel(fmt.Sprintf("shape_%d_%s", i, sh.Kind())),
			game_object.WithModel(m),
			game_object.WithMaterial(s.shapeMaterial),
			game_object.WithParent(s.shapeGroup),
			game_object.WithPosition(float32(p[0]), float32(p[1]), float32(p[2])),
			game_object.WithRotation(float32(r[0]), float32(r[1]), float32(r[2])),
		)
		if err := s.r.InitBindGroup(obj.ObjectProvider(), desc); err != nil {
			return err
		}
		s.shapes[i] = obj
	}
	return nil
}

func applyTransform(obj game_object.GameObject, t field.Transform) {
	obj.SetPosition(float32(t.Position[0]), float32(t.Position[1]), float32(t.Position[2]))
	obj.SetRotation(float32(t.Rotation[0]), float32(t.Rotation[1]), float32(t.Rotation[2]))
}

func (s *scene) Render(frame *field.Frame) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.released {
		return errors.New("scene: render after release")
	}
	if frame == nil {
		return nil
	}

	applyTransform(s.particles, frame.Particles)
	applyTransform(s.shapeGroup, frame.Shapes)
	for i, t := range frame.ShapeTransforms {
		if i < len(s.shapes) {
			applyTransform(s.shapes[i], t)
		}
	}

	writes := s.writePool[:0]
	writes = append(writes,
		bind_group_provider.BufferWrite{Provider: s.cam.BindGroupProvider(), Binding: 0, Data: s.cam.UniformData()},
		bind_group_provider.BufferWrite{Provider: s.particles.ObjectProvider(), Binding: 0, Data: s.particles.UniformData()},
	)
	for _, obj := range s.shapes {
		writes = append(writes, bind_group_provider.BufferWrite{Provider: obj.ObjectProvider(), Binding: 0, Data: obj.UniformData()})
	}
	s.writePool = writes
	s.r.WriteBuffers(writes)

	if err := s.beginFrame(); err != nil {
		return err
	}

	if s.particleCount > 0 && s.particles.Enabled() {
		s.r.DrawCall(s.particleMaterial.PipelineKey(), s.quad.MeshProvider(), s.cam.BindGroupProvider(), s.particles.ObjectProvider())
	}
	for _, obj := range s.shapes {
		if !obj.Enabled() {
			continue
		}
		s.r.DrawCall(s.shapeMaterial.PipelineKey(), obj.Model().MeshProvider(), s.cam.BindGroupProvider(), obj.ObjectProvider())
	}

	if err := s.r.EndFrame(); err != nil {
		return err
	}
	s.r.Present()
	s.frames++
	return nil
}

// beginFrame opens the frame, reconfiguring the surface once if it was lost. A second
// failure is reported as a lost rendering context. Caller must hold the mutex.
func (s *scene) beginFrame() error {
	err := s.r.BeginFrame()
	if err == nil {
		return nil
	}
	if !errors.Is(err, renderer.ErrSurfaceLost) {
		return err
	}
	width, height := s.surfaceSize()
	if rerr := s.r.Resize(width, height); rerr != nil {
		return fmt.Errorf("%w: %w", field.ErrContextLost, rerr)
	}
	if err = s.r.BeginFrame(); err != nil {
		if errors.Is(err, renderer.ErrSurfaceLost) {
			return fmt.Errorf("%w: %w", field.ErrContextLost, err)
		}
		return err
	}
	return nil
}

func (s *scene) Resize(viewport field.Viewport, fc field.Camera) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.released {
		return
	}
	s.viewport = viewport.Clamped()
	s.cam.SetPerspective(float32(fc.Fov), float32(fc.Aspect), float32(fc.Near), float32(fc.Far))
	width, height := s.surfaceSize()
	if err := s.r.Resize(width, height); err != nil {
		log.Printf("[Scene] resize to %dx%d failed: %v", width, height, err)
	}
}

// surfaceSize returns the size to configure the surface at. Caller must hold the mutex.
func (s *scene) surfaceSize() (int, int) {
	if s.pixelSize == nil {
		return s.viewport.Width, s.viewport.Height
	}
	width, height := s.pixelSize()
	return max(width, 1), max(height, 1)
}

// Release frees the scene's buffers and bind groups, then the renderer and the
// pipelines it caches.
func (s *scene) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.released {
		return
	}
	s.released = true
	if s.quad != nil {
		s.quad.Release()
	}
	for _, m := range s.wireframes {
		m.Release()
	}
	if s.particles != nil {
		s.particles.ObjectProvider().Release()
	}
	for _, obj := range s.shapes {
		if obj != nil {
			obj.ObjectProvider().Release()
		}
	}
	if s.cam != nil {
		s.cam.BindGroupProvider().Release()
	}
	s.r.Release()
	log.Printf("[Scene] %s released after %d frames", s.name, s.frames)
}

func (s *scene) Name() string {
	return s.name
}

func (s *scene) Camera() camera.Camera {
	return s.cam
}

func (s *scene) Renderer() renderer.Renderer {
	return s.r
}

func (s *scene) Particles() game_object.GameObject {
	return s.particles
}

func (s *scene) ShapeGroup() game_object.GameObject {
	return s.shapeGroup
}

func (s *scene) Shapes() []game_object.GameObject {
	return s.shapes
}

func (s *scene) Frames() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frames
}
