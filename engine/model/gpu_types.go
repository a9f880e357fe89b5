package model

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUVertex is the GPU-aligned representation of a single mesh vertex.
// Matches the WGSL VertexInput struct of the particle and shape shaders.
// Size: 12 bytes.
type GPUVertex struct {
	Position [3]float32 // offset 0: vertex position in model space (12 bytes)
}

// Size returns the size of the GPUVertex struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUVertex) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUVertex struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 12-byte buffer ready for GPU upload.
func (g *GPUVertex) Marshal() []byte {
	buf := make([]byte, 12)
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(g.Position[0]))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(g.Position[1]))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(g.Position[2]))
	return buf
}

// GPUParticleInstance is the per-instance attribute block of one particle billboard.
// Matches the WGSL ParticleInstance struct: center at location 1, size at 2, color at 3.
// Size: 32 bytes.
type GPUParticleInstance struct {
	Position  [3]float32 // offset  0: particle center in field space (12 bytes)
	PointSize float32    // offset 12: world-space billboard size (4 bytes)
	Color     [4]float32 // offset 16: linear RGB plus alpha (16 bytes)
}

// Size returns the size of the GPUParticleInstance struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUParticleInstance) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUParticleInstance struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 32-byte buffer ready for GPU upload.
func (g *GPUParticleInstance) Marshal() []byte {
	buf := make([]byte, 32)
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(g.Position[0]))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(g.Position[1]))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(g.Position[2]))
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(g.PointSize))
	binary.LittleEndian.PutUint32(buf[16:20], math.Float32bits(g.Color[0]))
	binary.LittleEndian.PutUint32(buf[20:24], math.Float32bits(g.Color[1]))
	binary.LittleEndian.PutUint32(buf[24:28], math.Float32bits(g.Color[2]))
	binary.LittleEndian.PutUint32(buf[28:32], math.Float32bits(g.Color[3]))
	return buf
}

// MarshalParticleInstances packs a slice of instances back to back.
//
// Parameters:
//   - instances: the instances to pack
//
// Returns:
//   - []byte: len(instances)*32 bytes
func MarshalParticleInstances(instances []GPUParticleInstance) []byte {
	buf := make([]byte, 0, len(instances)*32)
	for i := range instances {
		buf = append(buf, instances[i].Marshal()...)
	}
	return buf
}
