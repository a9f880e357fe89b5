package profiler

import (
	"math"
	"testing"
	"time"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func TestTickSamplesOncePerInterval(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	p := NewProfiler(WithClock(clock.now), WithInterval(490*time.Millisecond), WithQuiet(true))

	for i := 0; i < 29; i++ {
		clock.t = clock.t.Add(time.Second / 60)
		if p.Tick() {
			t.Fatalf("Tick() sampled early at frame %d", i+1)
		}
	}
	clock.t = clock.t.Add(time.Second / 60)
	if !p.Tick() {
		t.Fatal("Tick() did not sample after the interval")
	}

	if got := p.Last().FPS; math.Abs(got-60) > 0.5 {
		t.Errorf("FPS = %.2f, want ~60", got)
	}
	if p.Last().SysMB <= 0 {
		t.Errorf("SysMB = %v, want > 0", p.Last().SysMB)
	}

	clock.t = clock.t.Add(time.Millisecond)
	if p.Tick() {
		t.Error("Tick() sampled again right after a sample")
	}
}

func TestDefaults(t *testing.T) {
	p := NewProfiler(WithInterval(-1))
	if p.updateInterval != time.Second {
		t.Errorf("updateInterval = %v, want 1s", p.updateInterval)
	}
	if (p.Last() != Stats{}) {
		t.Errorf("Last() = %+v, want zero before the first sample", p.Last())
	}
}
