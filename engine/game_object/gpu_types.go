package game_object

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUObjectUniformSource is the canonical WGSL definition of the ObjectUniform struct.
// Matches GPUObjectUniform layout exactly (96 bytes).
//
//go:embed assets/object_uniform.wgsl
var GPUObjectUniformSource string

// GPUObjectUniform is the per-object uniform bound at group 1 of the particle and shape
// shaders. Params.x is visibility (0 hides the object), Params.y is the point size scale.
// Size: 96 bytes.
type GPUObjectUniform struct {
	Model  [16]float32 // offset  0: column-major world matrix (64 bytes)
	Color  [4]float32  // offset 64: linear RGB plus opacity (16 bytes)
	Params [4]float32  // offset 80: visibility, size scale, unused, unused (16 bytes)
}

// Size returns the size of the GPUObjectUniform struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUObjectUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUObjectUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 96-byte buffer ready for GPU upload.
func (g *GPUObjectUniform) Marshal() []byte {
	buf := make([]byte, 96)
	for i, v := range g.Model {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	for i, v := range g.Color {
		binary.LittleEndian.PutUint32(buf[64+i*4:], math.Float32bits(v))
	}
	for i, v := range g.Params {
		binary.LittleEndian.PutUint32(buf[80+i*4:], math.Float32bits(v))
	}
	return buf
}
