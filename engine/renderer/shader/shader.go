package shader

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// ShaderType is the pipeline stage a Shader is compiled for.
type ShaderType int

const (
	// ShaderTypeVertex is a vertex stage shader.
	ShaderTypeVertex ShaderType = iota

	// ShaderTypeFragment is a fragment stage shader.
	ShaderTypeFragment
)

type shader struct {
	key        string
	source     string
	shaderType ShaderType
	entryPoint string

	vertexLayouts              []wgpu.VertexBufferLayout
	bindGroupLayoutDescriptors map[int]wgpu.BindGroupLayoutDescriptor
	bindingVarNames            map[int]map[int]string
	module                     *wgpu.ShaderModuleDescriptor
}

// Shader is one stage of a WGSL program together with the resource layout reflected from
// its source: the stage entry point, the vertex buffer layouts (vertex stage only) and the
// bind group layouts of every buffer binding it declares.
type Shader interface {
	// Key returns the unique key of the shader, used as its module label.
	//
	// Returns:
	//   - string: the shader key
	Key() string

	// Source returns the WGSL source code.
	//
	// Returns:
	//   - string: the source
	Source() string

	// ShaderType returns the stage of the shader.
	//
	// Returns:
	//   - ShaderType: the stage
	ShaderType() ShaderType

	// EntryPoint returns the name of the stage entry function.
	//
	// Returns:
	//   - string: the entry point name
	EntryPoint() string

	// VertexLayouts returns the vertex buffer layouts in slot order. Empty for fragment shaders.
	//
	// Returns:
	//   - []wgpu.VertexBufferLayout: the layouts
	VertexLayouts() []wgpu.VertexBufferLayout

	// BindGroupLayoutDescriptor returns the layout descriptor for one bind group.
	//
	// Parameters:
	//   - group: the @group index
	//
	// Returns:
	//   - wgpu.BindGroupLayoutDescriptor: the descriptor, empty if the group is unused
	BindGroupLayoutDescriptor(group int) wgpu.BindGroupLayoutDescriptor

	// BindGroupLayoutDescriptors returns every bind group layout keyed by @group index.
	//
	// Returns:
	//   - map[int]wgpu.BindGroupLayoutDescriptor: the descriptors
	BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor

	// BindGroupVarName returns the WGSL variable bound at group/binding, or "".
	//
	// Parameters:
	//   - group: the @group index
	//   - binding: the @binding index
	//
	// Returns:
	//   - string: the variable name
	BindGroupVarName(group, binding int) string

	// Module returns the shader module descriptor for GPU compilation.
	//
	// Returns:
	//   - *wgpu.ShaderModuleDescriptor: the descriptor
	Module() *wgpu.ShaderModuleDescriptor
}

var _ Shader = &shader{}

// NewShader reflects a WGSL stage from source. It panics if the source is empty or declares
// no entry point for the requested stage.
//
// Parameters:
//   - key: unique identifier for the shader
//   - shaderType: the stage to reflect
//   - source: WGSL source code, usually embedded
//
// Returns:
//   - Shader: the reflected shader
func NewShader(key string, shaderType ShaderType, source string) Shader {
	if source == "" {
		panic(fmt.Sprintf("shader: %s has no source", key))
	}
	cleaned := stripComments(source)
	s := &shader{
		key:        key,
		source:     source,
		shaderType: shaderType,
		entryPoint: reflectEntryPoint(cleaned, shaderType),
		module: &wgpu.ShaderModuleDescriptor{
			Label:          key,
			WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: source},
		},
	}
	if s.entryPoint == "" {
		panic(fmt.Sprintf("shader: %s declares no entry point for stage %d", key, shaderType))
	}

	visibility := wgpu.ShaderStageFragment
	if shaderType == ShaderTypeVertex {
		visibility = wgpu.ShaderStageVertex
		s.vertexLayouts = reflectVertexLayouts(cleaned)
	}
	s.bindGroupLayoutDescriptors, s.bindingVarNames = reflectBindGroups(cleaned, visibility)
	return s
}

func (s *shader) Key() string {
	return s.key
}

func (s *shader) Source() string {
	return s.source
}

func (s *shader) ShaderType() ShaderType {
	return s.shaderType
}

func (s *shader) EntryPoint() string {
	return s.entryPoint
}

func (s *shader) VertexLayouts() []wgpu.VertexBufferLayout {
	return s.vertexLayouts
}

func (s *shader) BindGroupLayoutDescriptor(group int) wgpu.BindGroupLayoutDescriptor {
	return s.bindGroupLayoutDescriptors[group]
}

func (s *shader) BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor {
	return s.bindGroupLayoutDescriptors
}

func (s *shader) BindGroupVarName(group, binding int) string {
	return s.bindingVarNames[group][binding]
}

func (s *shader) Module() *wgpu.ShaderModuleDescriptor {
	return s.module
}
