// Package page models the portfolio page the backdrop sits behind: a scrollable
// document with sections, and the UI behaviour wired to it.
package page

import (
	"math"
	"sort"
	"sync"

	"github.com/Carmen-Shannon/oxy-folio/common"
)

// Section is a navigable block of the page, positioned in document pixels.
type Section struct {
	ID     string
	Top    float64
	Height float64
}

// Bottom returns the document y just below the section.
func (s Section) Bottom() float64 {
	return s.Top + s.Height
}

// Document is a virtual page: a viewport scrolling over a taller document.
// Thread-safe for concurrent access. Scroll listeners run on the goroutine that
// changed the scroll position, without the document lock held.
type Document interface {
	// Viewport returns the viewport size in pixels.
	Viewport() (width, height float64)

	// SetViewport changes the viewport size and re-clamps the scroll position.
	SetViewport(width, height float64)

	// Height returns the document height in pixels.
	Height() float64

	// SetHeight changes the document height and re-clamps the scroll position.
	SetHeight(height float64)

	// AddSection adds or replaces a section by ID.
	AddSection(s Section)

	// Section looks a section up by ID.
	Section(id string) (Section, bool)

	// Sections returns every section ordered by Top.
	Sections() []Section

	// ScrollY returns the current scroll offset.
	ScrollY() float64

	// MaxScroll returns the largest reachable scroll offset.
	MaxScroll() float64

	// ScrollTo moves the viewport to y, clamped to [0, MaxScroll]. Ignored while
	// scrolling is locked.
	//
	// Returns:
	//   - bool: true if the scroll position changed
	ScrollTo(y float64) bool

	// ScrollBy moves the viewport by dy; see ScrollTo.
	ScrollBy(dy float64) bool

	// Progress returns how far the page is scrolled, in [0, 1]. 0 when the document
	// fits in the viewport.
	Progress() float64

	// SetScrollLocked prevents or allows scrolling, like overflow hidden on the body.
	SetScrollLocked(locked bool)

	// ScrollLocked reports whether scrolling is locked.
	ScrollLocked() bool

	// OnScroll registers a listener called with the new offset after every change.
	OnScroll(listener func(scrollY float64))
}

type document struct {
	mu             sync.Mutex
	viewportWidth  float64
	viewportHeight float64
	height         float64
	scrollY        float64
	locked         bool
	sections       map[string]Section
	listeners      []func(scrollY float64)
}

var _ Document = &document{}

// NewDocument creates a Document. Defaults to a 1280x720 viewport over a document of
// the same height.
//
// Parameters:
//   - options: builder options
//
// Returns:
//   - Document: the document, scrolled to the top
func NewDocument(options ...DocumentBuilderOption) Document {
	d := &document{
		viewportWidth:  1280,
		viewportHeight: 720,
		sections:       make(map[string]Section),
	}
	for _, opt := range options {
		opt(d)
	}
	d.height = max(d.height, d.viewportHeight)
	return d
}

func (d *document) Viewport() (width, height float64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.viewportWidth, d.viewportHeight
}

func (d *document) SetViewport(width, height float64) {
	d.mu.Lock()
	d.viewportWidth = common.ClampMin(width, 1)
	d.viewportHeight = common.ClampMin(height, 1)
	changed := d.reclamp()
	d.mu.Unlock()
	if changed {
		d.notify()
	}
}

func (d *document) Height() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.height
}

func (d *document) SetHeight(height float64) {
	d.mu.Lock()
	d.height = common.ClampMin(height, 0)
	changed := d.reclamp()
	d.mu.Unlock()
	if changed {
		d.notify()
	}
}

// reclamp pulls the scroll offset back into range. Caller must hold the mutex.
func (d *document) reclamp() bool {
	y := common.Clamp(d.scrollY, 0, d.maxScroll())
	if y == d.scrollY {
		return false
	}
	d.scrollY = y
	return true
}

func (d *document) maxScroll() float64 {
	return max(d.height-d.viewportHeight, 0)
}

func (d *document) AddSection(s Section) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sections[s.ID] = s
	d.height = max(d.height, s.Bottom())
}

func (d *document) Section(id string) (Section, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	s, ok := d.sections[id]
	return s, ok
}

func (d *document) Sections() []Section {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]Section, 0, len(d.sections))
	for _, s := range d.sections {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Top == out[j].Top {
			return out[i].ID < out[j].ID
		}
		return out[i].Top < out[j].Top
	})
	return out
}

func (d *document) ScrollY() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.scrollY
}

func (d *document) MaxScroll() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.maxScroll()
}

func (d *document) ScrollTo(y float64) bool {
	if math.IsNaN(y) {
		return false
	}
	d.mu.Lock()
	if d.locked {
		d.mu.Unlock()
		return false
	}
	y = common.Clamp(y, 0, d.maxScroll())
	if y == d.scrollY {
		d.mu.Unlock()
		return false
	}
	d.scrollY = y
	d.mu.Unlock()
	d.notify()
	return true
}

func (d *document) ScrollBy(dy float64) bool {
	return d.ScrollTo(d.ScrollY() + dy)
}

func (d *document) Progress() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	m := d.maxScroll()
	if m <= 0 {
		return 0
	}
	return d.scrollY / m
}

func (d *document) SetScrollLocked(locked bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.locked = locked
}

func (d *document) ScrollLocked() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.locked
}

func (d *document) OnScroll(listener func(scrollY float64)) {
	if listener == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.listeners = append(d.listeners, listener)
}

func (d *document) notify() {
	d.mu.Lock()
	y := d.scrollY
	listeners := append([]func(float64){}, d.listeners...)
	d.mu.Unlock()
	for _, l := range listeners {
		l(y)
	}
}
