package model

import (
	"fmt"
	"math"

	"github.com/Carmen-Shannon/oxy-folio/common"
	"github.com/Carmen-Shannon/oxy-folio/engine/renderer/bind_group_provider"
	"github.com/cogentcore/webgpu/wgpu"
)

// model is the implementation of the Model interface.
type model struct {
	name                  string
	topology              wgpu.PrimitiveTopology
	meshProvider          bind_group_provider.BindGroupProvider
	boundingRadius        float32
	vertexCount           int
	vertexData, indexData []byte
	indexCount            int
}

// Model is a GPU-ready mesh: packed vertex and index data, the primitive topology the data
// is laid out for and a BindGroupProvider that receives the GPU buffers once the Renderer
// uploads them.
type Model interface {
	// Name retrieves the model identifier.
	//
	// Returns:
	//   - string: the model name
	Name() string

	// Topology returns the primitive topology the index data is built for.
	//
	// Returns:
	//   - wgpu.PrimitiveTopology: line list for wireframes, triangle list otherwise
	Topology() wgpu.PrimitiveTopology

	// MeshProvider retrieves the BindGroupProvider holding GPU mesh resources.
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the mesh provider
	MeshProvider() bind_group_provider.BindGroupProvider

	// VertexData returns the packed GPUVertex data.
	//
	// Returns:
	//   - []byte: the vertex data
	VertexData() []byte

	// IndexData returns the packed uint32 index data.
	//
	// Returns:
	//   - []byte: the index data
	IndexData() []byte

	// IndexCount returns the number of indices in the model's mesh.
	//
	// Returns:
	//   - int: the index count
	IndexCount() int

	// VertexCount returns the number of vertices in the model's mesh.
	//
	// Returns:
	//   - int: the vertex count
	VertexCount() int

	// BoundingRadius returns the maximum vertex distance from the origin.
	//
	// Returns:
	//   - float32: the bounding radius
	BoundingRadius() float32

	// Release releases the GPU mesh buffers.
	Release()
}

var _ Model = &model{}

// NewModel creates a Model from vertices and indices. The mesh provider is created with the
// index count preset so draw calls can be issued as soon as buffers are uploaded.
// It panics if an index is out of range.
//
// Parameters:
//   - name: the model identifier, also used as the provider label
//   - vertices: the mesh vertices
//   - indices: the index stream for the chosen topology
//   - options: a variadic list of ModelBuilderOption
//
// Returns:
//   - Model: the new model
func NewModel(name string, vertices []GPUVertex, indices []uint32, options ...ModelBuilderOption) Model {
	for _, idx := range indices {
		if int(idx) >= len(vertices) {
			panic(fmt.Sprintf("model: %s index %d out of range for %d vertices", name, idx, len(vertices)))
		}
	}

	var radius float64
	for _, v := range vertices {
		p := v.Position
		radius = math.Max(radius, math.Sqrt(float64(p[0]*p[0]+p[1]*p[1]+p[2]*p[2])))
	}

	m := &model{
		name:           name,
		topology:       wgpu.PrimitiveTopologyTriangleList,
		vertexCount:    len(vertices),
		vertexData:     common.SliceToBytes(vertices),
		indexData:      common.SliceToBytes(indices),
		indexCount:     len(indices),
		boundingRadius: float32(radius),
	}
	for _, opt := range options {
		opt(m)
	}
	if m.meshProvider == nil {
		m.meshProvider = bind_group_provider.NewBindGroupProvider(name+"_mesh", bind_group_provider.WithIndexCount(m.indexCount))
	}
	return m
}

// NewWireframe builds a line-list mesh of a regular solid with every vertex on the sphere
// of the given radius.
//
// Parameters:
//   - kind: the solid to build
//   - radius: the circumscribed radius
//
// Returns:
//   - Model: the wireframe model
func NewWireframe(kind Polyhedron, radius float64) Model {
	data, ok := polyhedra[kind]
	if !ok {
		panic(fmt.Sprintf("model: unknown polyhedron %d", kind))
	}
	return NewModel(
		fmt.Sprintf("%s_%g", kind, radius),
		scaledVertices(data.vertices, radius),
		wireframeEdges(data.faces),
		WithTopology(wgpu.PrimitiveTopologyLineList),
	)
}

// NewBillboardQuad builds the unit quad expanded per instance by the particle shader.
// Corners span [-1, 1] on x and y.
//
// Returns:
//   - Model: the quad model
func NewBillboardQuad() Model {
	vertices := []GPUVertex{
		{Position: [3]float32{-1, -1, 0}},
		{Position: [3]float32{1, -1, 0}},
		{Position: [3]float32{1, 1, 0}},
		{Position: [3]float32{-1, 1, 0}},
	}
	return NewModel("billboard_quad", vertices, []uint32{0, 1, 2, 0, 2, 3})
}

func (m *model) Name() string {
	return m.name
}

func (m *model) Topology() wgpu.PrimitiveTopology {
	return m.topology
}

func (m *model) MeshProvider() bind_group_provider.BindGroupProvider {
	return m.meshProvider
}

func (m *model) VertexData() []byte {
	return m.vertexData
}

func (m *model) IndexData() []byte {
	return m.indexData
}

func (m *model) IndexCount() int {
	return m.indexCount
}

func (m *model) VertexCount() int {
	return m.vertexCount
}

func (m *model) BoundingRadius() float32 {
	return m.boundingRadius
}

func (m *model) Release() {
	if m.meshProvider != nil {
		m.meshProvider.Release()
	}
}
