package navigation

// NavigationBuilderOption is a functional option for configuring a Navigation.
type NavigationBuilderOption func(n *navigation)

// WithSpring tunes the smooth-scroll spring.
//
// Parameters:
//   - frequency: angular frequency; higher settles faster
//   - damping: damping ratio; 1 is critically damped, below 1 overshoots
//
// Returns:
//   - NavigationBuilderOption: option function to apply
func WithSpring(frequency, damping float64) NavigationBuilderOption {
	return func(n *navigation) {
		if frequency > 0 {
			n.frequency = frequency
		}
		if damping >= 0 {
			n.damping = damping
		}
	}
}

// WithFrameRate sets the step used when Update is called without a delta.
//
// Parameters:
//   - fps: frames per second (must be positive)
//
// Returns:
//   - NavigationBuilderOption: option function to apply
func WithFrameRate(fps int) NavigationBuilderOption {
	return func(n *navigation) {
		if fps > 0 {
			n.fps = fps
		}
	}
}
