// Package navigation implements the navbar: the scrolled style, the mobile menu, the
// active-link highlight and spring-driven smooth scrolling to anchors.
package navigation

import (
	"log"
	"math"
	"strings"
	"sync"

	"github.com/Carmen-Shannon/oxy-folio/common"
	"github.com/Carmen-Shannon/oxy-folio/page"
	"github.com/charmbracelet/harmonica"
)

const (
	// ScrolledThreshold is the scroll offset past which the navbar takes its scrolled style.
	ScrolledThreshold = 50

	// HighlightOffset shifts every section up when deciding which one is active.
	HighlightOffset = 100

	// AnchorOffset keeps the target section clear of the fixed navbar after an anchor jump.
	AnchorOffset = 80

	// settleDistance and settleVelocity end an animation once it is visually at rest.
	settleDistance = 0.5
	settleVelocity = 0.5
)

// Navigation is the navbar state. It follows the document's scroll position.
// Thread-safe for concurrent access.
type Navigation interface {
	// Scrolled reports whether the page is scrolled past ScrolledThreshold.
	Scrolled() bool

	// Active returns the ID of the highlighted section, or "" before any section matched.
	Active() string

	// MenuOpen reports whether the mobile menu is open.
	MenuOpen() bool

	// ToggleMenu opens or closes the mobile menu.
	ToggleMenu()

	// Click follows a nav link. The mobile menu closes on any link; an href of the form
	// "#id" naming a known section starts a smooth scroll to it.
	//
	// Parameters:
	//   - href: the link target
	//
	// Returns:
	//   - bool: true if a smooth scroll started
	Click(href string) bool

	// Update advances the smooth scroll by deltaTime seconds. A non-positive deltaTime
	// steps by the configured frame rate.
	Update(deltaTime float32)

	// Animating reports whether a smooth scroll is in progress.
	Animating() bool

	// Cancel stops a smooth scroll where it is, as a user scroll does.
	Cancel()
}

type navigation struct {
	mu  sync.Mutex
	doc page.Document

	scrolled bool
	active   string
	menuOpen bool

	spring    harmonica.Spring
	step      float64
	fps       int
	frequency float64
	damping   float64
	animating bool
	position  float64
	velocity  float64
	target    float64
}

var _ Navigation = &navigation{}

// NewNavigation attaches a Navigation to doc and evaluates the current scroll position.
//
// Parameters:
//   - doc: the page document (must not be nil)
//   - options: builder options
//
// Returns:
//   - Navigation: the navigation
func NewNavigation(doc page.Document, options ...NavigationBuilderOption) Navigation {
	if doc == nil {
		panic("navigation: NewNavigation requires a non-nil Document")
	}
	n := &navigation{
		doc:       doc,
		fps:       60,
		frequency: 5.0,
		damping:   1.0,
	}
	for _, opt := range options {
		opt(n)
	}
	n.step = harmonica.FPS(n.fps)
	n.spring = harmonica.NewSpring(n.step, n.frequency, n.damping)

	doc.OnScroll(n.onScroll)
	n.onScroll(doc.ScrollY())
	return n
}

// onScroll updates the scrolled flag and the highlighted section.
func (n *navigation) onScroll(scrollY float64) {
	sections := n.doc.Sections()

	n.mu.Lock()
	defer n.mu.Unlock()
	n.scrolled = scrollY > ScrolledThreshold
	for _, s := range sections {
		if id, ok := highlighted(s, scrollY); ok {
			n.active = id
		}
	}
}

// highlighted reports whether s is the active section at scrollY. The window is
// half-open: (top-HighlightOffset, top-HighlightOffset+height].
func highlighted(s page.Section, scrollY float64) (string, bool) {
	top := s.Top - HighlightOffset
	return s.ID, scrollY > top && scrollY <= top+s.Height
}

func (n *navigation) Scrolled() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.scrolled
}

func (n *navigation) Active() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.active
}

func (n *navigation) MenuOpen() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.menuOpen
}

func (n *navigation) ToggleMenu() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.menuOpen = !n.menuOpen
}

func (n *navigation) Click(href string) bool {
	n.mu.Lock()
	n.menuOpen = false
	n.mu.Unlock()

	id, ok := strings.CutPrefix(href, "#")
	if !ok || id == "" {
		return false
	}
	s, ok := n.doc.Section(id)
	if !ok {
		log.Printf("[Nav] ignoring link to unknown section %q", id)
		return false
	}

	target := common.Clamp(s.Top-AnchorOffset, 0, n.doc.MaxScroll())
	n.mu.Lock()
	defer n.mu.Unlock()
	if !n.animating {
		n.position = n.doc.ScrollY()
		n.velocity = 0
	}
	n.target = target
	n.animating = true
	return true
}

func (n *navigation) Update(deltaTime float32) {
	n.mu.Lock()
	if !n.animating {
		n.mu.Unlock()
		return
	}
	if step := float64(deltaTime); step > 0 && step != n.step {
		n.step = step
		n.spring = harmonica.NewSpring(step, n.frequency, n.damping)
	}
	n.position, n.velocity = n.spring.Update(n.position, n.velocity, n.target)
	if math.Abs(n.position-n.target) < settleDistance && math.Abs(n.velocity) < settleVelocity {
		n.position, n.velocity = n.target, 0
		n.animating = false
	}
	y := n.position
	n.mu.Unlock()

	// Outside the lock: scrolling notifies listeners, including onScroll above.
	n.doc.ScrollTo(y)
}

func (n *navigation) Animating() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.animating
}

func (n *navigation) Cancel() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.animating = false
	n.velocity = 0
}
