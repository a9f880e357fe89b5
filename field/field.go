package field

import (
	"errors"
	"log"
	"math"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"
)

// Field drives a State from a host Scheduler: it starts and stops the frame loop and
// funnels pointer, scroll and resize input into the next frame.
type Field interface {
	// Start initializes the field and schedules the first frame. Calling Start on a
	// running field is a no-op. A missing 3D context is not an error: the field logs
	// it, stays disabled and Start returns nil.
	Start(viewport Viewport) error

	// Stop cancels the pending frame and releases the renderer.
	Stop()

	// Running reports whether frames are being scheduled.
	Running() bool

	// Disabled reports whether the field gave up, either at Start or after losing
	// its rendering context.
	Disabled() bool

	// OnPointerMove records a pointer position in viewport pixels.
	OnPointerMove(px, py float64)

	// OnScroll records the vertical scroll offset in pixels.
	OnScroll(scrollY float64)

	// OnResize records a new viewport; it is applied at the next frame.
	OnResize(viewport Viewport)

	// State returns the current field state, or nil before a successful Start.
	State() *State
}

var _ Field = &field{}

type field struct {
	scheduler Scheduler
	config    Config
	probe     CapabilityProbe
	factory   RendererFactory
	rng       *rand.Rand
	variant   *Variant

	pointer  PointerState
	scrollY  atomic.Uint64
	viewport atomic.Pointer[Viewport]
	resized  atomic.Bool

	mu       sync.Mutex
	state    *State
	running  bool
	disabled bool
	token    uint64
	origin   float64
	started  bool
}

// NewField creates a field bound to a frame scheduler.
//
// Parameters:
//   - scheduler: the host frame scheduler
//   - options: builder options
//
// Returns:
//   - Field: the field, not yet started
func NewField(scheduler Scheduler, options ...FieldBuilderOption) Field {
	if scheduler == nil {
		panic("field: nil scheduler")
	}
	f := &field{
		scheduler: scheduler,
		config:    DefaultConfig(),
	}
	for _, opt := range options {
		opt(f)
	}
	if f.rng == nil {
		seed := uint64(time.Now().UnixNano())
		f.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
	return f
}

func (f *field) Start(viewport Viewport) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.running {
		return nil
	}

	viewport = viewport.Clamped()
	f.viewport.Store(&viewport)
	f.resized.Store(false)

	variant := VariantFor(viewport.Width)
	if f.variant != nil {
		variant = *f.variant
	}

	state, err := Init(f.config, viewport, variant, f.probe, f.rng)
	if errors.Is(err, ErrDisabled) {
		log.Println("[Field] 3D rendering unavailable, running without backdrop")
		f.disabled = true
		return nil
	}
	if err != nil {
		return err
	}

	if f.factory != nil {
		r, err := f.factory(state)
		if err != nil {
			log.Printf("[Field] renderer unavailable, running without backdrop: %v", err)
			f.disabled = true
			return nil
		}
		state.Attach(r)
	}

	f.state = state
	f.disabled = false
	f.running = true
	f.started = false
	f.token = f.scheduler.RequestFrame(f.frame)
	log.Printf("[Field] started %s variant: %d particles, %d shapes", variant, len(state.particles), len(state.shapes))
	return nil
}

func (f *field) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.running {
		return
	}
	f.scheduler.CancelFrame(f.token)
	f.running = false
	f.state.Detach()
	log.Printf("[Field] stopped after %d frames", f.state.frames)
}

func (f *field) frame(elapsedSeconds float64) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.running {
		return
	}
	if !f.started {
		f.origin = elapsedSeconds
		f.started = true
	}

	if f.resized.Swap(false) {
		f.state.OnResize(*f.viewport.Load())
	}

	scrollY := math.Float64frombits(f.scrollY.Load())
	f.state.Advance(elapsedSeconds-f.origin, &f.pointer, scrollY)

	if f.state.Disabled() {
		f.running = false
		f.disabled = true
		f.state.Detach()
		return
	}
	f.token = f.scheduler.RequestFrame(f.frame)
}

func (f *field) Running() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.running
}

func (f *field) Disabled() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.disabled
}

func (f *field) OnPointerMove(px, py float64) {
	vp := f.viewport.Load()
	if vp == nil {
		return
	}
	f.pointer.SetRaw(NormalizePointer(px, py, *vp))
}

func (f *field) OnScroll(scrollY float64) {
	if math.IsNaN(scrollY) || math.IsInf(scrollY, 0) {
		return
	}
	f.scrollY.Store(math.Float64bits(max(scrollY, 0)))
}

func (f *field) OnResize(viewport Viewport) {
	viewport = viewport.Clamped()
	f.viewport.Store(&viewport)
	f.resized.Store(true)
}

func (f *field) State() *State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}
