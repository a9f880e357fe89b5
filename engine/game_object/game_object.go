package game_object

import (
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-folio/common"
	"github.com/Carmen-Shannon/oxy-folio/engine/model"
	"github.com/Carmen-Shannon/oxy-folio/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-folio/engine/renderer/material"
)

type gameObject struct {
	id       uint64
	enabled  atomic.Bool
	mdl      model.Model
	mat      material.Material
	parent   GameObject
	provider bind_group_provider.BindGroupProvider

	mu       sync.RWMutex
	position [3]float32
	rotation [3]float32
	scale    [3]float32
}

// GameObject is a node in the scene graph: a local transform (position, Euler XYZ rotation
// and scale) composed onto an optional parent, plus the Model and Material it is drawn with.
// Objects without a Model are pure transform groups.
type GameObject interface {
	// ID returns the object's unique identifier.
	//
	// Returns:
	//   - uint64: the object ID
	ID() uint64

	// Enabled returns whether this object is enabled for rendering.
	//
	// Returns:
	//   - bool: true if enabled
	Enabled() bool

	// Model returns the Model associated with this object, or nil for a group.
	//
	// Returns:
	//   - model.Model: the associated model or nil
	Model() model.Model

	// Material returns the Material the object is drawn with, or nil.
	//
	// Returns:
	//   - material.Material: the material or nil
	Material() material.Material

	// Parent returns the parent node, or nil for a root.
	//
	// Returns:
	//   - GameObject: the parent or nil
	Parent() GameObject

	// ObjectProvider returns the provider holding the per-object uniform.
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the object provider
	ObjectProvider() bind_group_provider.BindGroupProvider

	// Position returns the local position.
	//
	// Returns:
	//   - x, y, z: position components
	Position() (x, y, z float32)

	// Rotation returns the local Euler rotation in radians, applied X then Y then Z.
	//
	// Returns:
	//   - rx, ry, rz: rotation angles
	Rotation() (rx, ry, rz float32)

	// Scale returns the local scale.
	//
	// Returns:
	//   - sx, sy, sz: scale components
	Scale() (sx, sy, sz float32)

	// ModelMatrix composes the parent chain with the local transform.
	//
	// Returns:
	//   - [16]float32: the column-major world matrix
	ModelMatrix() [16]float32

	// UniformData packs the world matrix and material values into the object uniform.
	//
	// Returns:
	//   - []byte: the GPUObjectUniform bytes
	UniformData() []byte

	// SetID sets the object's unique identifier.
	//
	// Parameters:
	//   - id: the ID to assign
	SetID(id uint64)

	// SetEnabled sets whether the object is enabled for rendering.
	//
	// Parameters:
	//   - enabled: true to enable
	SetEnabled(enabled bool)

	// SetParent reparents the object. Pass nil to make it a root.
	//
	// Parameters:
	//   - parent: the new parent
	SetParent(parent GameObject)

	// SetPosition updates the local position.
	//
	// Parameters:
	//   - x, y, z: new position components
	SetPosition(x, y, z float32)

	// SetRotation updates the local rotation.
	//
	// Parameters:
	//   - rx, ry, rz: new rotation angles
	SetRotation(rx, ry, rz float32)

	// SetScale updates the local scale.
	//
	// Parameters:
	//   - sx, sy, sz: new scale factors
	SetScale(sx, sy, sz float32)
}

var _ GameObject = &gameObject{}

// NewGameObject creates a new, enabled GameObject with unit scale.
//
// Parameters:
//   - options: functional options to configure the object
//
// Returns:
//   - GameObject: the newly created object
func NewGameObject(options ...GameObjectBuilderOption) GameObject {
	obj := &gameObject{
		scale: [3]float32{1, 1, 1},
	}
	obj.enabled.Store(true)
	for _, option := range options {
		option(obj)
	}
	if obj.provider == nil {
		obj.provider = bind_group_provider.NewBindGroupProvider("object")
	}
	return obj
}

func (g *gameObject) ID() uint64 {
	return g.id
}

func (g *gameObject) Enabled() bool {
	return g.enabled.Load()
}

func (g *gameObject) Model() model.Model {
	return g.mdl
}

func (g *gameObject) Material() material.Material {
	return g.mat
}

func (g *gameObject) Parent() GameObject {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.parent
}

func (g *gameObject) ObjectProvider() bind_group_provider.BindGroupProvider {
	return g.provider
}

func (g *gameObject) Position() (x, y, z float32) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.position[0], g.position[1], g.position[2]
}

func (g *gameObject) Rotation() (rx, ry, rz float32) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.rotation[0], g.rotation[1], g.rotation[2]
}

func (g *gameObject) Scale() (sx, sy, sz float32) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.scale[0], g.scale[1], g.scale[2]
}

func (g *gameObject) ModelMatrix() [16]float32 {
	g.mu.RLock()
	p, r, s := g.position, g.rotation, g.scale
	parent := g.parent
	g.mu.RUnlock()

	var local [16]float32
	common.BuildModelMatrix(local[:], p[0], p[1], p[2], r[0], r[1], r[2], s[0], s[1], s[2])
	if parent == nil {
		return local
	}
	world := parent.ModelMatrix()
	var out [16]float32
	common.Mul4(out[:], world[:], local[:])
	return out
}

func (g *gameObject) UniformData() []byte {
	u := GPUObjectUniform{
		Model:  g.ModelMatrix(),
		Color:  [4]float32{1, 1, 1, 1},
		Params: [4]float32{1, 1, 0, 0},
	}
	if g.mat != nil {
		u.Color = g.mat.LinearRGBA()
		u.Params[1] = g.mat.SizeScale()
	}
	if !g.Enabled() {
		u.Params[0] = 0
	}
	return u.Marshal()
}

func (g *gameObject) SetID(id uint64) {
	g.id = id
}

func (g *gameObject) SetEnabled(enabled bool) {
	g.enabled.Store(enabled)
}

func (g *gameObject) SetParent(parent GameObject) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.parent = parent
}

func (g *gameObject) SetPosition(x, y, z float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.position = [3]float32{x, y, z}
}

func (g *gameObject) SetRotation(rx, ry, rz float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.rotation = [3]float32{rx, ry, rz}
}

func (g *gameObject) SetScale(sx, sy, sz float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.scale = [3]float32{sx, sy, sz}
}
