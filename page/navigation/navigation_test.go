package navigation

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-folio/page"
)

func newTestDocument() page.Document {
	return page.NewDocument(
		page.WithViewport(1280, 800),
		page.WithSections(
			page.Section{ID: "hero", Top: 0, Height: 800},
			page.Section{ID: "about", Top: 800, Height: 1000},
			page.Section{ID: "gallery", Top: 1800, Height: 1200},
		),
	)
}

// settle steps the navigation until the smooth scroll ends or the budget runs out.
func settle(t *testing.T, n Navigation) int {
	t.Helper()
	for i := 0; i < 600; i++ {
		if !n.Animating() {
			return i
		}
		n.Update(1.0 / 60.0)
	}
	t.Fatal("smooth scroll did not settle within 600 ticks")
	return 0
}

func TestScrolledThreshold(t *testing.T) {
	doc := newTestDocument()
	n := NewNavigation(doc)
	tests := []struct {
		y    float64
		want bool
	}{
		{0, false},
		{50, false},
		{51, true},
		{10, false},
	}
	for _, tt := range tests {
		doc.ScrollTo(tt.y)
		if got := n.Scrolled(); got != tt.want {
			t.Errorf("Scrolled() at %v = %v, want %v", tt.y, got, tt.want)
		}
	}
}

func TestActiveSection(t *testing.T) {
	doc := newTestDocument()
	n := NewNavigation(doc)
	if got := n.Active(); got != "hero" {
		t.Errorf("Active() at top = %q, want hero", got)
	}
	tests := []struct {
		y    float64
		want string
	}{
		{699, "hero"},
		{700, "hero"},
		{701, "about"},
		{1700, "about"},
		{1701, "gallery"},
		{2200, "gallery"},
	}
	for _, tt := range tests {
		doc.ScrollTo(tt.y)
		if got := n.Active(); got != tt.want {
			t.Errorf("Active() at %v = %q, want %q", tt.y, got, tt.want)
		}
	}
}

func TestToggleMenu(t *testing.T) {
	n := NewNavigation(newTestDocument())
	n.ToggleMenu()
	if !n.MenuOpen() {
		t.Fatal("menu closed after first toggle")
	}
	n.ToggleMenu()
	if n.MenuOpen() {
		t.Fatal("menu open after second toggle")
	}
}

func TestClickClosesMenu(t *testing.T) {
	n := NewNavigation(newTestDocument())
	n.ToggleMenu()
	if n.Click("https://example.com") {
		t.Error("external link started a smooth scroll")
	}
	if n.MenuOpen() {
		t.Error("menu still open after a link click")
	}
}

func TestClickScrollsToAnchor(t *testing.T) {
	doc := newTestDocument()
	n := NewNavigation(doc)
	if !n.Click("#about") {
		t.Fatal("Click(#about) did not start a smooth scroll")
	}
	if ticks := settle(t, n); ticks < 2 {
		t.Errorf("smooth scroll settled in %d ticks, want an animation", ticks)
	}
	if got := doc.ScrollY(); got != 720 {
		t.Errorf("ScrollY() = %v, want 720", got)
	}
	if got := n.Active(); got != "about" {
		t.Errorf("Active() = %q, want about", got)
	}
}

func TestClickClampsToMaxScroll(t *testing.T) {
	doc := newTestDocument()
	doc.AddSection(page.Section{ID: "contact", Top: 3000, Height: 100})
	n := NewNavigation(doc)
	n.Click("#contact")
	settle(t, n)
	if got, want := doc.ScrollY(), doc.MaxScroll(); got != want {
		t.Errorf("ScrollY() = %v, want MaxScroll %v", got, want)
	}
}

func TestClickUnknownAnchor(t *testing.T) {
	doc := newTestDocument()
	n := NewNavigation(doc)
	for _, href := range []string{"#missing", "#", ""} {
		if n.Click(href) {
			t.Errorf("Click(%q) started a smooth scroll", href)
		}
	}
	n.Update(1.0 / 60.0)
	if doc.ScrollY() != 0 {
		t.Errorf("ScrollY() = %v, want 0", doc.ScrollY())
	}
}

func TestCancel(t *testing.T) {
	doc := newTestDocument()
	n := NewNavigation(doc)
	n.Click("#gallery")
	n.Update(1.0 / 60.0)
	n.Cancel()
	y := doc.ScrollY()
	n.Update(1.0 / 60.0)
	if n.Animating() {
		t.Error("Animating() after Cancel")
	}
	if doc.ScrollY() != y {
		t.Errorf("ScrollY() moved from %v to %v after Cancel", y, doc.ScrollY())
	}
}
