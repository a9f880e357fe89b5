package model

import (
	"github.com/Carmen-Shannon/oxy-folio/engine/renderer/bind_group_provider"
	"github.com/cogentcore/webgpu/wgpu"
)

// ModelBuilderOption is a functional option for configuring a Model via NewModel.
type ModelBuilderOption func(*model)

// WithTopology is an option builder that sets the primitive topology of the index data.
//
// Parameters:
//   - topology: the primitive topology
//
// Returns:
//   - ModelBuilderOption: a function that applies the topology option to a model
func WithTopology(topology wgpu.PrimitiveTopology) ModelBuilderOption {
	return func(m *model) {
		m.topology = topology
	}
}

// WithMeshProvider is an option builder that supplies the mesh BindGroupProvider instead of
// letting NewModel create one.
//
// Parameters:
//   - provider: the provider to receive the GPU buffers
//
// Returns:
//   - ModelBuilderOption: a function that applies the provider option to a model
func WithMeshProvider(provider bind_group_provider.BindGroupProvider) ModelBuilderOption {
	return func(m *model) {
		m.meshProvider = provider
	}
}
