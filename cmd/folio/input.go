package main

import (
	"log"

	"github.com/Carmen-Shannon/oxy-folio/common"
	"github.com/Carmen-Shannon/oxy-folio/engine"
	"github.com/Carmen-Shannon/oxy-folio/engine/window"
	"github.com/Carmen-Shannon/oxy-folio/field"
	"github.com/Carmen-Shannon/oxy-folio/page"
	"github.com/Carmen-Shannon/oxy-folio/page/gallery"
	"github.com/Carmen-Shannon/oxy-folio/page/navigation"
)

// wheelStep is the scroll distance of one mouse wheel notch, in pixels.
const wheelStep = 60

// backdrop is the part of the field the page input drives.
type backdrop interface {
	OnPointerMove(px, py float64)
	OnScroll(scrollY float64)
	OnResize(viewport field.Viewport)
}

// controls routes window input to the page and the backdrop. Every position and size
// it handles is in screen coordinates.
type controls struct {
	backdrop backdrop
	doc      page.Document
	nav      navigation.Navigation
	gal      gallery.Gallery
	sections []page.Section
}

func newControls(b backdrop, doc page.Document, nav navigation.Navigation, gal gallery.Gallery) *controls {
	doc.OnScroll(b.OnScroll)
	return &controls{
		backdrop: b,
		doc:      doc,
		nav:      nav,
		gal:      gal,
		sections: doc.Sections(),
	}
}

// wire subscribes the controls to the window and the engine's resize fan-out.
func (c *controls) wire(eng engine.Engine, win window.Window) {
	win.SetScrollCallback(func(_, dy float64) { c.scroll(dy) })
	win.SetMouseMoveCallback(c.backdrop.OnPointerMove)
	win.SetMouseButtonCallback(c.click)
	win.SetKeyDownCallback(c.key)
	eng.AddResizeListener(c.resize)
}

// scroll handles a wheel notch; positive dy scrolls up.
func (c *controls) scroll(dy float64) {
	c.nav.Cancel()
	c.doc.ScrollBy(-dy * wheelStep)
}

// click handles a pointer button. A release over a tile opens it in the lightbox; any
// release while the lightbox is open lands on its backdrop.
func (c *controls) click(button window.MouseButton, pressed bool, x, y float64) {
	if button != window.MouseButtonLeft || pressed {
		return
	}
	if _, open := c.gal.Lightbox(); open {
		c.gal.ClickBackdrop()
		return
	}
	index, ok := c.gal.ItemAt(x, y)
	if !ok {
		return
	}
	if err := c.gal.Open(index); err != nil {
		log.Printf("[Gallery] %v", err)
	}
}

func (c *controls) key(keyCode uint32) {
	if c.gal.HandleKey(keyCode) {
		return
	}
	if _, open := c.gal.Lightbox(); open {
		return
	}
	_, vh := c.doc.Viewport()
	switch keyCode {
	case common.KeyM:
		c.nav.ToggleMenu()
	case common.KeyF:
		log.Printf("[Gallery] filter %s", c.gal.CycleFilter())
	case common.KeyUp:
		c.nav.Cancel()
		c.doc.ScrollBy(-wheelStep)
	case common.KeyDown:
		c.nav.Cancel()
		c.doc.ScrollBy(wheelStep)
	case common.KeyPageUp:
		c.nav.Cancel()
		c.doc.ScrollBy(-vh)
	case common.KeyPageDown, common.KeySpace:
		c.nav.Cancel()
		c.doc.ScrollBy(vh)
	case common.KeyHome:
		c.nav.Click("#" + c.sections[0].ID)
	case common.KeyEnd:
		c.nav.Click("#" + c.sections[len(c.sections)-1].ID)
	case common.Key1, common.Key2, common.Key3, common.Key4, common.Key5:
		if i := int(keyCode - common.Key1); i < len(c.sections) {
			c.nav.Click("#" + c.sections[i].ID)
		}
	}
}

// resize follows a window resize.
func (c *controls) resize(width, height int) {
	c.backdrop.OnResize(field.Viewport{Width: width, Height: height})
	c.doc.SetViewport(float64(width), float64(height))
}
