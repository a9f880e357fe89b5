package renderer

import (
	"fmt"
	"log"
	"sync"

	"github.com/Carmen-Shannon/oxy-folio/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-folio/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-folio/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/lucasb-eyer/go-colorful"
)

// SurfaceSource is anything a Renderer can present into. window.Window satisfies it.
type SurfaceSource interface {
	SurfaceDescriptor() *wgpu.SurfaceDescriptor
	Width() int
	Height() int
}

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	pipelineCache map[string]pipeline.Pipeline

	backendType RendererBackendType
	backend     RendererBackend

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	presentMode          PresentMode
	msaa                 MSAASampleCount
	clearColor           colorful.Color
}

// Renderer defines the interface for the rendering system.
//
// This is a high-level API designed to simplify rendering tasks into a streamlined and idiomatic flow.
// The Renderer manages a cache of pipelines and one backend which owns the device, the surface
// and the per-frame command encoding.
type Renderer interface {
	// Pipeline retrieves the cached Pipeline associated with the given key.
	// If the Pipeline does not exist, this will return nil.
	//
	// Parameters:
	//   - key: the unique identifier for the Pipeline to retrieve
	//
	// Returns:
	//   - pipeline.Pipeline: the Pipeline associated with the key, or nil if not found
	Pipeline(key string) pipeline.Pipeline

	// Pipelines retrieves the entire cache of Pipelines.
	//
	// Returns:
	//   - map[string]pipeline.Pipeline: a map of pipeline keys to their corresponding Pipeline objects
	Pipelines() map[string]pipeline.Pipeline

	// RegisterPipelines creates the GPU pipeline objects via the backend, then caches them by
	// PipelineKey. Pipelines whose keys are already registered are skipped.
	//
	// Parameters:
	//   - pipelines: the Pipelines to register
	//
	// Returns:
	//   - error: an error if pipeline creation fails
	RegisterPipelines(pipelines ...pipeline.Pipeline) error

	// BindGroupLayoutDescriptor returns the layout of one bind group of a cached pipeline, with
	// the vertex and fragment visibilities merged. Bind groups must be created from this
	// descriptor to be compatible with the pipeline layout.
	//
	// Parameters:
	//   - pipelineKey: the key of a cached pipeline
	//   - group: the bind group index
	//
	// Returns:
	//   - wgpu.BindGroupLayoutDescriptor: the merged descriptor
	//   - bool: false if the pipeline or group does not exist
	BindGroupLayoutDescriptor(pipelineKey string, group int) (wgpu.BindGroupLayoutDescriptor, bool)

	// Resize reconfigures the surface for a new framebuffer size.
	// Non-positive sizes are ignored, which happens while the window is minimized.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	//
	// Returns:
	//   - error: an error if the surface could not be configured
	Resize(width, height int) error

	// SetPresentMode changes the present mode and reconfigures the surface.
	//
	// Parameters:
	//   - mode: the PresentMode to use
	SetPresentMode(mode PresentMode)

	// SetClearColor sets the background color the frame is cleared to.
	//
	// Parameters:
	//   - c: the clear color in sRGB
	SetClearColor(c colorful.Color)

	// InitMeshBuffers creates GPU vertex and index buffers from raw byte data and stores them
	// on the given BindGroupProvider for later use in draw calls.
	//
	// Parameters:
	//   - provider: the BindGroupProvider to store the created buffers on
	//   - vertexData: the raw vertex data bytes to upload to the GPU
	//   - indexData: the raw index data bytes to upload to the GPU
	//   - indexCount: the number of indices, used for draw calls
	//
	// Returns:
	//   - error: an error if buffer creation fails
	InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error

	// InitInstanceBuffer uploads per-instance vertex data onto the provider. The buffer is
	// reused while it is large enough and recreated otherwise.
	//
	// Parameters:
	//   - provider: the mesh BindGroupProvider
	//   - data: the packed instance data
	//   - count: the number of instances in data
	//
	// Returns:
	//   - error: an error if buffer creation fails
	InitInstanceBuffer(provider bind_group_provider.BindGroupProvider, data []byte, count int) error

	// InitBindGroup creates GPU buffers and a bind group from a layout descriptor and stores them
	// on the given BindGroupProvider.
	//
	// Parameters:
	//   - provider: the BindGroupProvider to store the created bind group on
	//   - descriptor: the layout descriptor defining the bind group entries
	//
	// Returns:
	//   - error: an error if bind group creation fails
	InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor) error

	// WriteBuffers writes all staged buffer writes to the GPU queue.
	//
	// Parameters:
	//   - writes: a slice of BufferWrite structs describing the data to write
	WriteBuffers(writes []bind_group_provider.BufferWrite)

	// BeginFrame acquires the next surface texture and opens the main render pass.
	//
	// Returns:
	//   - error: wraps ErrSurfaceLost when the surface can no longer be rendered to
	BeginFrame() error

	// DrawCall records a draw of the mesh with the pipeline registered under pipelineKey.
	// bindGroups are bound in order starting at group 0.
	//
	// Parameters:
	//   - pipelineKey: the key of a registered pipeline
	//   - meshProvider: the provider holding vertex, index and optional instance buffers
	//   - bindGroups: the providers holding the bind groups
	DrawCall(pipelineKey string, meshProvider bind_group_provider.BindGroupProvider, bindGroups ...bind_group_provider.BindGroupProvider)

	// EndFrame closes the render pass and submits the recorded commands.
	//
	// Returns:
	//   - error: an error if command encoding failed
	EndFrame() error

	// Present presents the frame to the surface.
	Present()

	// Release releases every cached pipeline and the backend.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a Renderer presenting into source, then configures the surface at the
// source's current size.
//
// Parameters:
//   - source: the surface to present into
//   - options: builder options
//
// Returns:
//   - Renderer: the renderer
//   - error: an error if no adapter or device is available
func NewRenderer(source SurfaceSource, options ...RendererBuilderOption) (Renderer, error) {
	r := &renderer{
		mu:            &sync.Mutex{},
		pipelineCache: make(map[string]pipeline.Pipeline),
		backendType:   BackendTypeWGPU,
		presentMode:   PresentModeVSync,
		msaa:          MSAA4x,
		clearColor:    colorful.Color{},
	}
	for _, opt := range options {
		opt(r)
	}

	backend, err := newWGPURendererBackend(source.SurfaceDescriptor(), r.forceFallbackAdapter, r.msaa)
	if err != nil {
		return nil, err
	}
	r.backend = backend
	r.backend.SetPresentMode(r.presentMode)
	r.backend.SetClearColor(clearColorFor(r.clearColor))

	if err := r.backend.ConfigureSurface(max(source.Width(), 1), max(source.Height(), 1)); err != nil {
		r.backend.Release()
		return nil, err
	}
	log.Printf("[Renderer] configured %dx%d, msaa %d", source.Width(), source.Height(), r.msaa)
	return r, nil
}

// Probe reports whether a WebGPU adapter can be obtained on this machine. It never panics.
//
// Returns:
//   - bool: true if an adapter is available
func Probe() (ok bool) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("[Renderer] adapter probe panicked: %v", rec)
			ok = false
		}
	}()
	instance := wgpu.CreateInstance(nil)
	if instance == nil {
		return false
	}
	defer instance.Release()
	adapter, err := instance.RequestAdapter(&wgpu.RequestAdapterOptions{})
	if err != nil || adapter == nil {
		return false
	}
	adapter.Release()
	return true
}

// clearColorFor converts an sRGB color to the linear clear value of an sRGB surface.
func clearColorFor(c colorful.Color) wgpu.Color {
	r, g, b := c.Clamped().LinearRgb()
	return wgpu.Color{R: r, G: g, B: b, A: 1}
}

func (r *renderer) Pipeline(key string) pipeline.Pipeline {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pipelineCache[key]
}

func (r *renderer) Pipelines() map[string]pipeline.Pipeline {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]pipeline.Pipeline, len(r.pipelineCache))
	for k, p := range r.pipelineCache {
		out[k] = p
	}
	return out
}

func (r *renderer) RegisterPipelines(pipelines ...pipeline.Pipeline) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range pipelines {
		if _, exists := r.pipelineCache[p.PipelineKey()]; exists {
			continue
		}
		if err := r.backend.RegisterRenderPipeline(p); err != nil {
			return fmt.Errorf("failed to register pipeline %q: %w", p.PipelineKey(), err)
		}
		r.pipelineCache[p.PipelineKey()] = p
	}
	return nil
}

func (r *renderer) BindGroupLayoutDescriptor(pipelineKey string, group int) (wgpu.BindGroupLayoutDescriptor, bool) {
	r.mu.Lock()
	p, ok := r.pipelineCache[pipelineKey]
	r.mu.Unlock()
	if !ok {
		return wgpu.BindGroupLayoutDescriptor{}, false
	}
	return pipelineBindGroupLayout(p, group)
}

// pipelineBindGroupLayout merges the stage layouts of p and returns one group.
func pipelineBindGroupLayout(p pipeline.Pipeline, group int) (wgpu.BindGroupLayoutDescriptor, bool) {
	var vertex, fragment map[int]wgpu.BindGroupLayoutDescriptor
	if vs := p.Shader(shader.ShaderTypeVertex); vs != nil {
		vertex = vs.BindGroupLayoutDescriptors()
	}
	if fs := p.Shader(shader.ShaderTypeFragment); fs != nil {
		fragment = fs.BindGroupLayoutDescriptors()
	}
	desc, ok := mergeBindGroupLayouts(vertex, fragment)[group]
	return desc, ok
}

func (r *renderer) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return nil
	}
	return r.backend.ConfigureSurface(width, height)
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.mu.Lock()
	r.presentMode = mode
	r.mu.Unlock()
	r.backend.SetPresentMode(mode)
}

func (r *renderer) SetClearColor(c colorful.Color) {
	r.mu.Lock()
	r.clearColor = c
	r.mu.Unlock()
	r.backend.SetClearColor(clearColorFor(c))
}

func (r *renderer) InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error {
	return r.backend.InitMeshBuffers(provider, vertexData, indexData, indexCount)
}

func (r *renderer) InitInstanceBuffer(provider bind_group_provider.BindGroupProvider, data []byte, count int) error {
	return r.backend.InitInstanceBuffer(provider, data, count)
}

func (r *renderer) InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor) error {
	return r.backend.InitBindGroup(provider, descriptor)
}

func (r *renderer) WriteBuffers(writes []bind_group_provider.BufferWrite) {
	r.backend.WriteBuffers(writes)
}

func (r *renderer) BeginFrame() error {
	return r.backend.BeginFrame()
}

func (r *renderer) DrawCall(pipelineKey string, meshProvider bind_group_provider.BindGroupProvider, bindGroups ...bind_group_provider.BindGroupProvider) {
	p := r.Pipeline(pipelineKey)
	if p == nil {
		panic(fmt.Sprintf("renderer: pipeline %q is not registered", pipelineKey))
	}
	r.backend.DrawCall(p, meshProvider, bindGroups)
}

func (r *renderer) EndFrame() error {
	return r.backend.EndFrame()
}

func (r *renderer) Present() {
	r.backend.Present()
}

func (r *renderer) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key, p := range r.pipelineCache {
		p.Release()
		delete(r.pipelineCache, key)
	}
	if r.backend != nil {
		r.backend.Release()
		r.backend = nil
	}
}
