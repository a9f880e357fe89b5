package field

import (
	"errors"
	"testing"
)

type fakeScheduler struct {
	next      uint64
	pending   map[uint64]func(float64)
	order     []uint64
	cancelled int
}

func newFakeScheduler() *fakeScheduler {
	return &fakeScheduler{pending: make(map[uint64]func(float64))}
}

func (s *fakeScheduler) RequestFrame(cb func(elapsedSeconds float64)) uint64 {
	s.next++
	s.pending[s.next] = cb
	s.order = append(s.order, s.next)
	return s.next
}

func (s *fakeScheduler) CancelFrame(token uint64) {
	if _, ok := s.pending[token]; ok {
		delete(s.pending, token)
		s.cancelled++
	}
}

// step runs every callback pending at the start of the frame.
func (s *fakeScheduler) step(elapsed float64) {
	order := s.order
	s.order = nil
	for _, token := range order {
		cb, ok := s.pending[token]
		if !ok {
			continue
		}
		delete(s.pending, token)
		cb(elapsed)
	}
}

func TestFieldStartRunsFrames(t *testing.T) {
	sched := newFakeScheduler()
	r := &fakeRenderer{}
	f := NewField(sched, WithSeed(1), WithRendererFactory(func(*State) (Renderer, error) { return r, nil }))

	if err := f.Start(Viewport{1920, 1080}); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if !f.Running() {
		t.Fatal("Running() = false after Start")
	}
	for n := range 10 {
		sched.step(float64(n) / 60)
	}
	if r.renders != 10 {
		t.Errorf("renders = %d, want 10", r.renders)
	}
	if got := len(f.State().Particles()); got != 150 {
		t.Errorf("particles = %d, want 150 for 1920 wide viewport", got)
	}
}

func TestFieldStartIdempotent(t *testing.T) {
	sched := newFakeScheduler()
	factoryCalls := 0
	f := NewField(sched, WithSeed(1), WithRendererFactory(func(*State) (Renderer, error) {
		factoryCalls++
		return &fakeRenderer{}, nil
	}))

	for range 3 {
		if err := f.Start(Viewport{1024, 768}); err != nil {
			t.Fatalf("Start() error = %v", err)
		}
	}
	if factoryCalls != 1 {
		t.Errorf("factory calls = %d, want 1", factoryCalls)
	}
	if len(sched.pending) != 1 {
		t.Errorf("pending frames = %d, want 1", len(sched.pending))
	}
}

func TestFieldStartWithoutCapability(t *testing.T) {
	sched := newFakeScheduler()
	factoryCalls := 0
	f := NewField(sched,
		WithProbe(func() bool { return false }),
		WithRendererFactory(func(*State) (Renderer, error) {
			factoryCalls++
			return &fakeRenderer{}, nil
		}),
	)

	if err := f.Start(Viewport{1024, 768}); err != nil {
		t.Fatalf("Start() error = %v, want nil", err)
	}
	if f.Running() {
		t.Error("Running() = true without capability")
	}
	if !f.Disabled() {
		t.Error("Disabled() = false without capability")
	}
	if factoryCalls != 0 {
		t.Errorf("factory calls = %d, want 0", factoryCalls)
	}
	if len(sched.pending) != 0 {
		t.Errorf("frames requested = %d, want 0", len(sched.pending))
	}
	if f.State() != nil {
		t.Error("State() != nil without capability")
	}
	f.Stop()
}

func TestFieldRendererFactoryFailureDisables(t *testing.T) {
	sched := newFakeScheduler()
	f := NewField(sched, WithRendererFactory(func(*State) (Renderer, error) {
		return nil, errors.New("no adapter")
	}))
	if err := f.Start(Viewport{1024, 768}); err != nil {
		t.Fatalf("Start() error = %v, want nil", err)
	}
	if !f.Disabled() || f.Running() {
		t.Errorf("Disabled() = %v Running() = %v, want true false", f.Disabled(), f.Running())
	}
}

func TestFieldStopCancelsAndReleases(t *testing.T) {
	sched := newFakeScheduler()
	r := &fakeRenderer{}
	f := NewField(sched, WithSeed(2), WithRendererFactory(func(*State) (Renderer, error) { return r, nil }))
	if err := f.Start(Viewport{1024, 768}); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	sched.step(0)
	sched.step(1.0 / 60)

	f.Stop()
	if sched.cancelled != 1 {
		t.Errorf("cancelled = %d, want 1", sched.cancelled)
	}
	if r.releases != 1 {
		t.Errorf("releases = %d, want 1", r.releases)
	}
	for n := range 5 {
		sched.step(float64(n))
	}
	if r.renders != 2 {
		t.Errorf("renders after stop = %d, want 2", r.renders)
	}
	f.Stop()
	if r.releases != 1 {
		t.Errorf("releases after second Stop = %d, want 1", r.releases)
	}
}

func TestFieldRestartAfterStop(t *testing.T) {
	sched := newFakeScheduler()
	calls := 0
	f := NewField(sched, WithRendererFactory(func(*State) (Renderer, error) {
		calls++
		return &fakeRenderer{}, nil
	}))
	_ = f.Start(Viewport{1024, 768})
	f.Stop()
	_ = f.Start(Viewport{1024, 768})
	if calls != 2 {
		t.Errorf("factory calls = %d, want 2", calls)
	}
	if !f.Running() {
		t.Error("Running() = false after restart")
	}
}

func TestFieldContextLossStopsScheduling(t *testing.T) {
	sched := newFakeScheduler()
	r := &fakeRenderer{failAt: 2, err: ErrContextLost}
	f := NewField(sched, WithRendererFactory(func(*State) (Renderer, error) { return r, nil }))
	_ = f.Start(Viewport{1024, 768})

	for n := range 5 {
		sched.step(float64(n))
	}
	if r.renders != 2 {
		t.Errorf("renders = %d, want 2", r.renders)
	}
	if !f.Disabled() || f.Running() {
		t.Errorf("Disabled() = %v Running() = %v, want true false", f.Disabled(), f.Running())
	}
	if r.releases != 1 {
		t.Errorf("releases = %d, want 1", r.releases)
	}
	if len(sched.pending) != 0 {
		t.Errorf("pending frames = %d, want 0", len(sched.pending))
	}
}

func TestFieldInputReachesNextFrame(t *testing.T) {
	sched := newFakeScheduler()
	r := &fakeRenderer{}
	cfg := DefaultConfig()
	f := NewField(sched, WithSeed(4), WithRendererFactory(func(*State) (Renderer, error) { return r, nil }))
	_ = f.Start(Viewport{800, 600})

	f.OnScroll(500)
	f.OnPointerMove(800, 0)
	f.OnResize(Viewport{400, 200})
	sched.step(0)

	if want := -500 * cfg.ParticleScroll; r.last.Particles.Position[1] != want {
		t.Errorf("particle offset = %v, want %v", r.last.Particles.Position[1], want)
	}
	if r.resizes != 1 || r.lastViewport != (Viewport{400, 200}) {
		t.Errorf("resize = %d %v, want 1 400x200", r.resizes, r.lastViewport)
	}
	if got := f.State().Camera().Aspect; got != 2 {
		t.Errorf("aspect = %v, want 2", got)
	}
	// pointer moved to the top-right corner: smoothed moves toward (+1, +1)
	if r.last.Particles.Rotation[1] <= cfg.ParticleDriftY || r.last.Particles.Rotation[0] <= 0 {
		t.Errorf("particle rotation %v did not follow pointer", r.last.Particles.Rotation)
	}
}

func TestFieldNegativeScrollClamped(t *testing.T) {
	sched := newFakeScheduler()
	r := &fakeRenderer{}
	f := NewField(sched, WithRendererFactory(func(*State) (Renderer, error) { return r, nil }))
	_ = f.Start(Viewport{800, 600})
	f.OnScroll(-300)
	sched.step(0)
	if got := r.last.Particles.Position[1]; got != 0 {
		t.Errorf("particle offset = %v, want 0", got)
	}
}

func TestFieldElapsedRelativeToFirstFrame(t *testing.T) {
	sched := newFakeScheduler()
	r := &fakeRenderer{}
	f := NewField(sched, WithRendererFactory(func(*State) (Renderer, error) { return r, nil }))
	_ = f.Start(Viewport{800, 600})
	sched.step(100)
	sched.step(101.5)
	if r.last.Elapsed != 1.5 {
		t.Errorf("elapsed = %v, want 1.5", r.last.Elapsed)
	}
}

func TestFieldForcedVariant(t *testing.T) {
	sched := newFakeScheduler()
	f := NewField(sched, WithVariant(VariantReduced))
	_ = f.Start(Viewport{1920, 1080})
	if got := f.State().Variant(); got != VariantReduced {
		t.Errorf("Variant() = %v, want reduced", got)
	}
	if got := len(f.State().Particles()); got != 30 {
		t.Errorf("particles = %d, want 30", got)
	}
}

func TestFieldVariantFromWidth(t *testing.T) {
	sched := newFakeScheduler()
	f := NewField(sched)
	_ = f.Start(Viewport{600, 900})
	if got := f.State().Variant(); got != VariantReduced {
		t.Errorf("Variant() = %v, want reduced for 600 wide viewport", got)
	}
}

func TestNewFieldNilSchedulerPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("NewField(nil) did not panic")
		}
	}()
	NewField(nil)
}
