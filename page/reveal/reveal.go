// Package reveal fades page elements in as they scroll into view.
package reveal

import (
	"log"
	"sort"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-folio/page"
)

// Kind selects the trigger line and delay rule of an element.
type Kind int

const (
	// KindElement reveals 150px before the element reaches the viewport bottom, after
	// its own delay.
	KindElement Kind = iota

	// KindSection reveals 100px before the section reaches the viewport bottom.
	KindSection

	// KindTimeline reveals like a section, staggered by TimelineStagger per position.
	KindTimeline
)

const (
	// ElementMargin is the distance above the viewport bottom that triggers KindElement.
	ElementMargin = 150

	// SectionMargin is the distance above the viewport bottom that triggers KindSection
	// and KindTimeline.
	SectionMargin = 100

	// TimelineStagger is the delay added per timeline position.
	TimelineStagger = 200 * time.Millisecond
)

// Element is something on the page that starts hidden.
type Element struct {
	ID    string
	Kind  Kind
	Top   float64
	Delay time.Duration
}

// margin returns the trigger distance above the viewport bottom.
func (k Kind) margin() float64 {
	if k == KindElement {
		return ElementMargin
	}
	return SectionMargin
}

// Revealer tracks which elements have been revealed. Reveal is one-way.
// Thread-safe for concurrent access.
type Revealer interface {
	// Add registers elements and immediately checks them against the current scroll.
	// Timeline elements are staggered in the order they are added.
	Add(elements ...Element)

	// Revealed reports whether the element with id is visible.
	Revealed(id string) bool

	// Visible returns the IDs of every revealed element, sorted.
	Visible() []string

	// Pending returns how many triggered elements are still waiting on their delay.
	Pending() int

	// Update reveals triggered elements whose delay has elapsed.
	Update()

	// OnReveal registers a listener called with each element ID as it is revealed.
	OnReveal(listener func(id string))
}

type entry struct {
	element   Element
	triggered bool
	due       time.Time
	revealed  bool
}

type revealer struct {
	mu        sync.Mutex
	doc       page.Document
	now       func() time.Time
	initial   []Element
	entries   map[string]*entry
	order     []string
	timeline  int
	listeners []func(id string)
}

var _ Revealer = &revealer{}

// NewRevealer attaches a Revealer to doc. Elements are checked on every scroll.
//
// Parameters:
//   - doc: the page document (must not be nil)
//   - options: builder options
//
// Returns:
//   - Revealer: the revealer
func NewRevealer(doc page.Document, options ...RevealerBuilderOption) Revealer {
	if doc == nil {
		panic("reveal: NewRevealer requires a non-nil Document")
	}
	r := &revealer{
		doc:     doc,
		now:     time.Now,
		entries: make(map[string]*entry),
	}
	for _, opt := range options {
		opt(r)
	}
	for _, e := range r.initial {
		r.add(e)
	}
	r.initial = nil
	doc.OnScroll(func(scrollY float64) { r.check(scrollY) })
	r.check(doc.ScrollY())
	return r
}

func (r *revealer) Add(elements ...Element) {
	r.mu.Lock()
	for _, e := range elements {
		r.add(e)
	}
	r.mu.Unlock()
	r.check(r.doc.ScrollY())
}

// add registers one element. Caller must hold the mutex or own r exclusively.
func (r *revealer) add(e Element) {
	if _, ok := r.entries[e.ID]; ok {
		log.Printf("[Reveal] duplicate element %q ignored", e.ID)
		return
	}
	if e.Kind == KindTimeline {
		e.Delay = time.Duration(r.timeline) * TimelineStagger
		r.timeline++
	}
	r.entries[e.ID] = &entry{element: e}
	r.order = append(r.order, e.ID)
}

// check triggers every element whose top crossed its trigger line and reveals the
// ones without a remaining delay.
func (r *revealer) check(scrollY float64) {
	_, viewportHeight := r.doc.Viewport()
	now := r.now()

	r.mu.Lock()
	for _, id := range r.order {
		en := r.entries[id]
		if en.triggered {
			continue
		}
		if en.element.Top-scrollY < viewportHeight-en.element.Kind.margin() {
			en.triggered = true
			en.due = now.Add(en.element.Delay)
		}
	}
	revealed := r.revealDue(now)
	r.mu.Unlock()
	r.notify(revealed)
}

func (r *revealer) Update() {
	now := r.now()
	r.mu.Lock()
	revealed := r.revealDue(now)
	r.mu.Unlock()
	r.notify(revealed)
}

// revealDue marks triggered elements whose time has come. Caller must hold the mutex.
func (r *revealer) revealDue(now time.Time) []string {
	var revealed []string
	for _, id := range r.order {
		en := r.entries[id]
		if en.triggered && !en.revealed && !now.Before(en.due) {
			en.revealed = true
			revealed = append(revealed, id)
		}
	}
	return revealed
}

func (r *revealer) notify(ids []string) {
	if len(ids) == 0 {
		return
	}
	r.mu.Lock()
	listeners := append([]func(string){}, r.listeners...)
	r.mu.Unlock()
	for _, id := range ids {
		for _, l := range listeners {
			l(id)
		}
	}
}

func (r *revealer) Revealed(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	en, ok := r.entries[id]
	return ok && en.revealed
}

func (r *revealer) Visible() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ids []string
	for id, en := range r.entries {
		if en.revealed {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

func (r *revealer) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, en := range r.entries {
		if en.triggered && !en.revealed {
			n++
		}
	}
	return n
}

func (r *revealer) OnReveal(listener func(id string)) {
	if listener == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listeners = append(r.listeners, listener)
}
