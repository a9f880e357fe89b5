package field

import "math/rand/v2"

// FieldBuilderOption configures a Field created by NewField.
type FieldBuilderOption func(*field)

// WithConfig replaces the default calibration constants.
//
// Parameters:
//   - config: the configuration to use
//
// Returns:
//   - FieldBuilderOption: a function that applies the configuration option
func WithConfig(config Config) FieldBuilderOption {
	return func(f *field) {
		f.config = config
	}
}

// WithProbe sets the capability probe run at Start.
//
// Parameters:
//   - probe: reports whether a 3D rendering context is available
//
// Returns:
//   - FieldBuilderOption: a function that applies the probe option
func WithProbe(probe CapabilityProbe) FieldBuilderOption {
	return func(f *field) {
		f.probe = probe
	}
}

// WithRendererFactory sets the factory that allocates GPU resources at Start. Without
// one the field animates headless.
//
// Parameters:
//   - factory: the renderer factory
//
// Returns:
//   - FieldBuilderOption: a function that applies the factory option
func WithRendererFactory(factory RendererFactory) FieldBuilderOption {
	return func(f *field) {
		f.factory = factory
	}
}

// WithSeed makes particle and shape generation deterministic.
//
// Parameters:
//   - seed: the PCG seed
//
// Returns:
//   - FieldBuilderOption: a function that applies the seed option
func WithSeed(seed uint64) FieldBuilderOption {
	return func(f *field) {
		f.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
}

// WithVariant forces a variant instead of deriving it from the viewport width at Start.
//
// Parameters:
//   - variant: the variant to use
//
// Returns:
//   - FieldBuilderOption: a function that applies the variant option
func WithVariant(variant Variant) FieldBuilderOption {
	return func(f *field) {
		f.variant = &variant
	}
}
