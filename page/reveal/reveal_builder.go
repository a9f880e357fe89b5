package reveal

import "time"

// RevealerBuilderOption is a functional option for configuring a Revealer.
type RevealerBuilderOption func(r *revealer)

// WithElements registers elements before the first scroll check.
//
// Parameters:
//   - elements: the elements, in page order
//
// Returns:
//   - RevealerBuilderOption: option function to apply
func WithElements(elements ...Element) RevealerBuilderOption {
	return func(r *revealer) {
		r.initial = append(r.initial, elements...)
	}
}

// WithClock replaces the time source used for reveal delays.
//
// Parameters:
//   - now: the clock
//
// Returns:
//   - RevealerBuilderOption: option function to apply
func WithClock(now func() time.Time) RevealerBuilderOption {
	return func(r *revealer) {
		if now != nil {
			r.now = now
		}
	}
}
