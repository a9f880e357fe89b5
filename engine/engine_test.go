package engine

import (
	"strings"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-folio/field"
)

var _ field.Scheduler = NewEngine()

type stepClock struct {
	t    time.Time
	step time.Duration
}

// now advances by step on every read after the first.
func (c *stepClock) now() time.Time {
	t := c.t
	c.t = c.t.Add(c.step)
	return t
}

func TestFramesRunInSubmissionOrder(t *testing.T) {
	e := NewEngine()
	var order []int
	for i := 1; i <= 3; i++ {
		e.RequestFrame(func(float64) { order = append(order, i) })
	}
	if got := e.PendingFrames(); got != 3 {
		t.Fatalf("PendingFrames() = %d, want 3", got)
	}
	if err := e.RunFrames(1); err != nil {
		t.Fatalf("RunFrames() error = %v", err)
	}
	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Errorf("order = %v, want [1 2 3]", order)
	}
	if got := e.PendingFrames(); got != 0 {
		t.Errorf("PendingFrames() after frame = %d, want 0", got)
	}
}

func TestRequestsFireOnce(t *testing.T) {
	e := NewEngine()
	calls := 0
	e.RequestFrame(func(float64) { calls++ })
	_ = e.RunFrames(3)
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if e.Frames() != 3 {
		t.Errorf("Frames() = %d, want 3", e.Frames())
	}
}

func TestRequestDuringFrameWaitsForNextFrame(t *testing.T) {
	e := NewEngine()
	var frames []uint64
	var loop func(float64)
	loop = func(float64) {
		frames = append(frames, e.Frames())
		e.RequestFrame(loop)
	}
	e.RequestFrame(loop)

	_ = e.RunFrames(4)
	if len(frames) != 4 {
		t.Fatalf("loop ran %d times, want 4", len(frames))
	}
	for i, f := range frames {
		if f != uint64(i+1) {
			t.Errorf("run %d happened in frame %d, want %d", i, f, i+1)
		}
	}
}

func TestCancelFrame(t *testing.T) {
	e := NewEngine()
	ran := false
	token := e.RequestFrame(func(float64) { ran = true })
	e.CancelFrame(token)
	e.CancelFrame(token)
	e.CancelFrame(12345)
	_ = e.RunFrames(1)
	if ran {
		t.Error("cancelled callback ran")
	}
}

func TestCancelLaterCallbackInSameFrame(t *testing.T) {
	e := NewEngine()
	var second uint64
	ran := false
	e.RequestFrame(func(float64) { e.CancelFrame(second) })
	second = e.RequestFrame(func(float64) { ran = true })
	_ = e.RunFrames(1)
	if ran {
		t.Error("callback cancelled earlier in the same frame still ran")
	}
}

func TestTokensAreUniqueAndNonZero(t *testing.T) {
	e := NewEngine()
	seen := map[uint64]bool{}
	for range 10 {
		tok := e.RequestFrame(func(float64) {})
		if tok == 0 || seen[tok] {
			t.Fatalf("token %d is zero or repeated", tok)
		}
		seen[tok] = true
	}
}

func TestElapsedIsMonotonic(t *testing.T) {
	clock := &stepClock{t: time.Unix(100, 0), step: 16 * time.Millisecond}
	e := NewEngine(WithClock(clock.now))

	var got []float64
	var loop func(float64)
	loop = func(elapsed float64) {
		got = append(got, elapsed)
		e.RequestFrame(loop)
	}
	e.RequestFrame(loop)
	_ = e.RunFrames(5)

	if len(got) != 5 {
		t.Fatalf("got %d samples, want 5", len(got))
	}
	if got[0] <= 0 {
		t.Errorf("first elapsed = %v, want > 0", got[0])
	}
	for i := 1; i < len(got); i++ {
		if got[i] <= got[i-1] {
			t.Errorf("elapsed[%d] = %v not after %v", i, got[i], got[i-1])
		}
	}
}

func TestRunFramesRecoversPanics(t *testing.T) {
	e := NewEngine()
	e.RequestFrame(func(float64) { panic("boom") })
	err := e.RunFrames(2)
	if err == nil || !strings.Contains(err.Error(), "boom") {
		t.Fatalf("RunFrames() error = %v, want panic message", err)
	}

	ran := false
	e.RequestFrame(func(float64) { ran = true })
	if err := e.RunFrames(1); err != nil || !ran {
		t.Errorf("engine unusable after recovered panic: err = %v, ran = %v", err, ran)
	}
}

func TestRequestFrameNilPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("RequestFrame(nil) did not panic")
		}
	}()
	NewEngine().RequestFrame(nil)
}

func TestResizeListeners(t *testing.T) {
	e := NewEngine().(*engine)
	var got [][2]int
	e.AddResizeListener(func(w, h int) { got = append(got, [2]int{w, h}) })
	e.AddResizeListener(nil)
	e.notifyResize(800, 600)
	if len(got) != 1 || got[0] != [2]int{800, 600} {
		t.Errorf("listener calls = %v, want [[800 600]]", got)
	}
}

func TestHeadlessRunUntilQuit(t *testing.T) {
	e := NewEngine(WithRenderFrameLimit(1000), WithTickRate(1000))
	ticks := make(chan struct{}, 1)
	e.SetTickCallback(func(float32) {
		select {
		case ticks <- struct{}{}:
		default:
		}
	})
	frame := make(chan struct{}, 1)
	e.RequestFrame(func(float64) { frame <- struct{}{} })

	done := make(chan struct{})
	go func() {
		e.Run()
		close(done)
	}()

	select {
	case <-frame:
	case <-time.After(2 * time.Second):
		t.Fatal("frame callback never ran")
	}
	select {
	case <-ticks:
	case <-time.After(2 * time.Second):
		t.Fatal("tick callback never ran")
	}
	e.Quit()
	e.Quit()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after Quit")
	}
	select {
	case <-e.Done():
	default:
		t.Error("Done() not closed after Quit")
	}
}

func TestIntervals(t *testing.T) {
	if got := tickInterval(0); got != time.Second/60 {
		t.Errorf("tickInterval(0) = %v, want 60Hz", got)
	}
	if got := tickInterval(120); got != time.Second/120 {
		t.Errorf("tickInterval(120) = %v, want %v", got, time.Second/120)
	}
	if got := frameInterval(-1); got != 0 {
		t.Errorf("frameInterval(-1) = %v, want 0", got)
	}
	if got := frameInterval(50); got != 20*time.Millisecond {
		t.Errorf("frameInterval(50) = %v, want 20ms", got)
	}
}
