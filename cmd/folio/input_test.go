package main

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-folio/common"
	"github.com/Carmen-Shannon/oxy-folio/engine/window"
	"github.com/Carmen-Shannon/oxy-folio/field"
	"github.com/Carmen-Shannon/oxy-folio/page"
	"github.com/Carmen-Shannon/oxy-folio/page/gallery"
	"github.com/Carmen-Shannon/oxy-folio/page/navigation"
)

// fakeBackdrop records what the controls forward to the field.
type fakeBackdrop struct {
	pointers  [][2]float64
	scrolls   []float64
	viewports []field.Viewport
}

func (b *fakeBackdrop) OnPointerMove(px, py float64) {
	b.pointers = append(b.pointers, [2]float64{px, py})
}

func (b *fakeBackdrop) OnScroll(scrollY float64) { b.scrolls = append(b.scrolls, scrollY) }

func (b *fakeBackdrop) OnResize(viewport field.Viewport) {
	b.viewports = append(b.viewports, viewport)
}

// newTestControls builds a page scrolled to its gallery: two 470px columns of 300px
// tiles starting 100px into the section, with 20px gutters.
func newTestControls(t *testing.T) (*fakeBackdrop, *controls) {
	t.Helper()
	doc := page.NewDocument(
		page.WithViewport(1000, 800),
		page.WithSections(
			page.Section{ID: "home", Top: 0, Height: 800},
			page.Section{ID: "gallery", Top: 800, Height: 1500},
		),
	)
	gal := gallery.NewGallery(doc,
		gallery.WithItems(
			gallery.Item{ID: "a", Category: "web"},
			gallery.Item{ID: "b", Category: "print"},
			gallery.Item{ID: "c", Category: "web"},
		),
		gallery.WithGrid(gallery.Grid{Section: "gallery", Offset: 100, Columns: 2, TileHeight: 300, Gap: 20}),
	)
	b := &fakeBackdrop{}
	c := newControls(b, doc, navigation.NewNavigation(doc), gal)
	doc.ScrollTo(800)
	return b, c
}

func TestClickOpensTileAndBackdropCloses(t *testing.T) {
	_, c := newTestControls(t)

	c.click(window.MouseButtonLeft, true, 30, 110)
	if _, open := c.gal.Lightbox(); open {
		t.Fatal("lightbox opened on press, want release")
	}
	c.click(window.MouseButtonRight, false, 30, 110)
	if _, open := c.gal.Lightbox(); open {
		t.Fatal("lightbox opened on a right click")
	}

	c.click(window.MouseButtonLeft, false, 30, 110)
	item, open := c.gal.Lightbox()
	if !open || item.ID != "a" {
		t.Fatalf("Lightbox() = %q, %v, want a, true", item.ID, open)
	}
	if !c.doc.ScrollLocked() {
		t.Error("page scrolling not locked behind the lightbox")
	}

	c.click(window.MouseButtonLeft, false, 500, 500)
	if _, open := c.gal.Lightbox(); open {
		t.Error("backdrop click did not close the lightbox")
	}
	if c.doc.ScrollLocked() {
		t.Error("page scrolling still locked after closing")
	}
}

func TestClickOutsideGridDoesNothing(t *testing.T) {
	_, c := newTestControls(t)
	for _, pos := range [][2]float64{{30, 50}, {495, 110}, {30, 405}, {520, 500}} {
		c.click(window.MouseButtonLeft, false, pos[0], pos[1])
		if item, open := c.gal.Lightbox(); open {
			t.Errorf("click at %v opened %q", pos, item.ID)
			c.gal.Close()
		}
	}
}

func TestFilterKeyCyclesCategories(t *testing.T) {
	_, c := newTestControls(t)

	c.key(common.KeyF)
	if got := c.gal.ActiveFilter(); got != "web" {
		t.Fatalf("ActiveFilter() = %q, want web", got)
	}
	// The second visible tile is now the third item.
	c.click(window.MouseButtonLeft, false, 520, 110)
	if item, _ := c.gal.Lightbox(); item.ID != "c" {
		t.Errorf("Lightbox() = %q, want c", item.ID)
	}

	c.key(common.KeyF)
	if got := c.gal.ActiveFilter(); got != "web" {
		t.Errorf("ActiveFilter() = %q, want web kept while the lightbox is open", got)
	}
	c.key(common.KeyEsc)
	if _, open := c.gal.Lightbox(); open {
		t.Fatal("Escape did not close the lightbox")
	}
	c.key(common.KeyF)
	c.key(common.KeyF)
	if got := c.gal.ActiveFilter(); got != gallery.FilterAll {
		t.Errorf("ActiveFilter() = %q, want %q after wrapping", got, gallery.FilterAll)
	}
}

func TestScrollInput(t *testing.T) {
	b, c := newTestControls(t)
	c.doc.ScrollTo(0)

	c.scroll(-1)
	if got := c.doc.ScrollY(); got != wheelStep {
		t.Errorf("ScrollY() after one notch down = %v, want %v", got, wheelStep)
	}
	c.key(common.KeyPageDown)
	if got := c.doc.ScrollY(); got != wheelStep+800 {
		t.Errorf("ScrollY() after PageDown = %v, want %v", got, wheelStep+800)
	}
	if got := b.scrolls[len(b.scrolls)-1]; got != c.doc.ScrollY() {
		t.Errorf("backdrop scroll = %v, want %v", got, c.doc.ScrollY())
	}

	c.key(common.Key2)
	if !c.nav.Animating() {
		t.Error("section key did not start a smooth scroll")
	}
	c.scroll(1)
	if c.nav.Animating() {
		t.Error("wheel input did not cancel the smooth scroll")
	}
}

func TestMenuKey(t *testing.T) {
	_, c := newTestControls(t)
	c.key(common.KeyM)
	if !c.nav.MenuOpen() {
		t.Error("M did not open the menu")
	}
}

func TestResizeForwardsScreenSize(t *testing.T) {
	b, c := newTestControls(t)
	c.resize(640, 480)

	if len(b.viewports) != 1 || b.viewports[0] != (field.Viewport{Width: 640, Height: 480}) {
		t.Errorf("backdrop viewports = %v, want one 640x480", b.viewports)
	}
	if w, h := c.doc.Viewport(); w != 640 || h != 480 {
		t.Errorf("document viewport = %vx%v, want 640x480", w, h)
	}
}
