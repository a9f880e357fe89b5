package field

import (
	"math"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-folio/common"
)

// PointerState holds the raw pointer, written by input handlers on any goroutine, and
// the smoothed pointer, which only the frame loop reads and writes.
type PointerState struct {
	rawX atomic.Uint64
	rawY atomic.Uint64

	smoothedX float64
	smoothedY float64
}

// SetRaw stores the latest normalized pointer position. Non-finite input is ignored.
//
// Parameters:
//   - x, y: normalized pointer coordinates in [-1, 1]
func (p *PointerState) SetRaw(x, y float64) {
	if !common.IsFinite(x, y) {
		return
	}
	p.rawX.Store(math.Float64bits(x))
	p.rawY.Store(math.Float64bits(y))
}

// Raw returns the latest normalized pointer position.
func (p *PointerState) Raw() (x, y float64) {
	return math.Float64frombits(p.rawX.Load()), math.Float64frombits(p.rawY.Load())
}

// Smoothed returns the damped pointer position as of the last Damp call.
func (p *PointerState) Smoothed() (x, y float64) {
	return p.smoothedX, p.smoothedY
}

// Damp moves the smoothed pointer toward the raw pointer by factor of the remaining
// distance and returns the new smoothed position. With factor in (0, 1] the smoothed
// value converges geometrically and never overshoots.
//
// Parameters:
//   - factor: fraction of the remaining distance covered this frame
//
// Returns:
//   - x, y: the updated smoothed position
func (p *PointerState) Damp(factor float64) (x, y float64) {
	rx, ry := p.Raw()
	p.smoothedX += (rx - p.smoothedX) * factor
	p.smoothedY += (ry - p.smoothedY) * factor
	return p.smoothedX, p.smoothedY
}
