package page

import (
	"math"
	"testing"
)

func newTestDocument() Document {
	return NewDocument(
		WithViewport(1280, 800),
		WithSections(
			Section{ID: "hero", Top: 0, Height: 800},
			Section{ID: "about", Top: 800, Height: 1000},
			Section{ID: "gallery", Top: 1800, Height: 1200},
		),
	)
}

func TestNewDocumentHeight(t *testing.T) {
	d := newTestDocument()
	if got := d.Height(); got != 3000 {
		t.Errorf("Height() = %v, want 3000", got)
	}
	if got := d.MaxScroll(); got != 2200 {
		t.Errorf("MaxScroll() = %v, want 2200", got)
	}

	short := NewDocument(WithViewport(100, 500), WithHeight(200))
	if got := short.Height(); got != 500 {
		t.Errorf("short Height() = %v, want viewport height 500", got)
	}
}

func TestScrollClamps(t *testing.T) {
	d := newTestDocument()
	tests := []struct {
		to   float64
		want float64
	}{
		{500, 500},
		{-10, 0},
		{99999, 2200},
		{math.NaN(), 2200},
	}
	for _, tt := range tests {
		d.ScrollTo(tt.to)
		if got := d.ScrollY(); got != tt.want {
			t.Errorf("ScrollTo(%v): ScrollY() = %v, want %v", tt.to, got, tt.want)
		}
	}
}

func TestScrollListeners(t *testing.T) {
	d := newTestDocument()
	var got []float64
	d.OnScroll(func(y float64) { got = append(got, y) })
	d.OnScroll(nil)

	d.ScrollTo(100)
	d.ScrollTo(100)
	d.ScrollBy(50)
	if len(got) != 2 || got[0] != 100 || got[1] != 150 {
		t.Errorf("listener saw %v, want [100 150]", got)
	}
}

func TestScrollLock(t *testing.T) {
	d := newTestDocument()
	d.SetScrollLocked(true)
	if d.ScrollTo(300) {
		t.Error("ScrollTo while locked reported a change")
	}
	if d.ScrollY() != 0 {
		t.Errorf("ScrollY() = %v, want 0 while locked", d.ScrollY())
	}
	d.SetScrollLocked(false)
	if !d.ScrollTo(300) || d.ScrollY() != 300 {
		t.Errorf("ScrollY() = %v after unlock, want 300", d.ScrollY())
	}
}

func TestProgress(t *testing.T) {
	d := newTestDocument()
	d.ScrollTo(1100)
	if got := d.Progress(); got != 0.5 {
		t.Errorf("Progress() = %v, want 0.5", got)
	}
	if got := NewDocument().Progress(); got != 0 {
		t.Errorf("Progress() of unscrollable document = %v, want 0", got)
	}
}

func TestResizeReclampsScroll(t *testing.T) {
	d := newTestDocument()
	d.ScrollTo(2200)
	var notified float64 = -1
	d.OnScroll(func(y float64) { notified = y })

	d.SetViewport(1280, 1000)
	if got := d.ScrollY(); got != 2000 {
		t.Errorf("ScrollY() = %v after taller viewport, want 2000", got)
	}
	if notified != 2000 {
		t.Errorf("listener saw %v, want 2000", notified)
	}
}

func TestSectionsOrdered(t *testing.T) {
	d := newTestDocument()
	d.AddSection(Section{ID: "contact", Top: 3000, Height: 400})
	got := d.Sections()
	want := []string{"hero", "about", "gallery", "contact"}
	if len(got) != len(want) {
		t.Fatalf("len(Sections()) = %d, want %d", len(got), len(want))
	}
	for i, s := range got {
		if s.ID != want[i] {
			t.Errorf("Sections()[%d] = %q, want %q", i, s.ID, want[i])
		}
	}
	if d.Height() != 3400 {
		t.Errorf("Height() = %v, want 3400 after adding a lower section", d.Height())
	}
	if _, ok := d.Section("missing"); ok {
		t.Error("Section(missing) reported ok")
	}
}

func TestFooterText(t *testing.T) {
	got := FooterText("© 2025 Portfolio. Built 2025.", 2026)
	if want := "© 2026 Portfolio. Built 2025."; got != want {
		t.Errorf("FooterText() = %q, want %q", got, want)
	}
}

func TestParallaxOffset(t *testing.T) {
	x, y := ParallaxOffset(640, 360, 1280, 720, 0)
	if x != 0 || y != 0 {
		t.Errorf("center offset = (%v, %v), want (0, 0)", x, y)
	}
	x, y = ParallaxOffset(1280, 0, 1280, 720, 0)
	if x != 10 || y != -10 {
		t.Errorf("corner offset = (%v, %v), want (10, -10)", x, y)
	}
	x, _ = ParallaxOffset(0, 0, 1280, 720, 25)
	if x != -25 {
		t.Errorf("custom speed x = %v, want -25", x)
	}
}

func TestCardTilt(t *testing.T) {
	rx, ry := CardTilt(0, 0, 200, 100)
	if rx != -2.5 || ry != 5 {
		t.Errorf("CardTilt(corner) = (%v, %v), want (-2.5, 5)", rx, ry)
	}
}
