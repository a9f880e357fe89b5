package field

import "math"

// ReducedWidthThreshold is the viewport width, in logical pixels, below which the
// reduced-load variant of the field is used.
const ReducedWidthThreshold = 768

// Variant selects between the reduced-load (constrained device) and full field.
type Variant int

const (
	// VariantReduced allocates fewer, smaller particles in a tighter box.
	VariantReduced Variant = iota

	// VariantFull is the desktop field.
	VariantFull
)

// VariantFor derives the variant from a viewport width.
//
// Parameters:
//   - width: viewport width in logical pixels
//
// Returns:
//   - Variant: VariantReduced below ReducedWidthThreshold, VariantFull otherwise
func VariantFor(width int) Variant {
	if width < ReducedWidthThreshold {
		return VariantReduced
	}
	return VariantFull
}

func (v Variant) String() string {
	switch v {
	case VariantReduced:
		return "reduced"
	case VariantFull:
		return "full"
	default:
		return "unknown"
	}
}

// VariantConfig holds the particle cardinality and spread for one Variant.
// Particle positions are drawn from
//
//	x ∈ [-SpreadX/2, SpreadX/2)
//	y ∈ [-SpreadY/2, SpreadY/2)
//	z ∈ [-Depth/2 - DepthOffset, Depth/2 - DepthOffset)
//
// and sizes from [MinSize, MinSize+SizeRange).
type VariantConfig struct {
	ParticleCount int
	SpreadX       float64
	SpreadY       float64
	Depth         float64
	DepthOffset   float64
	MinSize       float64
	SizeRange     float64
}

// MaxSize returns the exclusive upper bound of particle sizes for this variant.
func (vc VariantConfig) MaxSize() float64 {
	return vc.MinSize + vc.SizeRange
}

// Config collects every calibration constant of the field. The values returned by
// DefaultConfig are tuned by eye and should be treated as fixed.
type Config struct {
	Reduced VariantConfig
	Full    VariantConfig

	// Palette is the set of particle colors, picked uniformly per particle.
	Palette [][3]float64

	ShapeCount int
	// ShapeSpread is the full width of the box shapes are placed in, per axis.
	ShapeSpread [3]float64
	// ShapeDepthOffset pushes shapes behind the origin.
	ShapeDepthOffset float64
	// ShapeRotationSpeed is the full range of per-axis angular speed, in radians per frame.
	ShapeRotationSpeed float64
	FloatSpeedMin      float64
	FloatSpeedRange    float64
	BobAmplitude       float64

	CameraDistance float64
	CameraFov      float64 // radians
	CameraNear     float64
	CameraFar      float64

	// PointerDamping is the per-frame fraction of the remaining distance the smoothed
	// pointer covers toward the raw pointer.
	PointerDamping float64

	ParticlePointerYaw   float64
	ParticlePointerPitch float64
	ParticleDriftY       float64
	ParticleDriftZ       float64
	ParticleScroll       float64

	ShapePointerYaw   float64
	ShapePointerPitch float64
	ShapeScroll       float64
}

// DefaultConfig returns the calibrated field configuration.
//
// Returns:
//   - Config: the default configuration
func DefaultConfig() Config {
	return Config{
		Reduced: VariantConfig{
			ParticleCount: 30,
			SpreadX:       30,
			SpreadY:       40,
			Depth:         30,
			DepthOffset:   15,
			MinSize:       0.5,
			SizeRange:     1.5,
		},
		Full: VariantConfig{
			ParticleCount: 150,
			SpreadX:       60,
			SpreadY:       60,
			Depth:         30,
			DepthOffset:   10,
			MinSize:       0.5,
			SizeRange:     2.5,
		},
		Palette: [][3]float64{
			{0.831, 0.686, 0.216}, // primary gold
			{0.722, 0.588, 0.047}, // dark gold
		},

		ShapeCount:         5,
		ShapeSpread:        [3]float64{25, 20, 10},
		ShapeDepthOffset:   5,
		ShapeRotationSpeed: 0.002,
		FloatSpeedMin:      0.1,
		FloatSpeedRange:    0.2,
		BobAmplitude:       0.3,

		CameraDistance: 15,
		CameraFov:      75 * math.Pi / 180,
		CameraNear:     0.1,
		CameraFar:      1000,

		PointerDamping: 0.02,

		ParticlePointerYaw:   0.1,
		ParticlePointerPitch: 0.05,
		ParticleDriftY:       0.0001,
		ParticleDriftZ:       0.00005,
		ParticleScroll:       0.002,

		ShapePointerYaw:   0.05,
		ShapePointerPitch: 0.02,
		ShapeScroll:       0.001,
	}
}

// Variant returns the VariantConfig for v.
func (c Config) Variant(v Variant) VariantConfig {
	if v == VariantReduced {
		return c.Reduced
	}
	return c.Full
}
