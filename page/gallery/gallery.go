// Package gallery implements the filterable image grid and its lightbox.
package gallery

import (
	"errors"
	"fmt"
	"log"
	"slices"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-folio/common"
	"github.com/Carmen-Shannon/oxy-folio/page"
)

// FilterAll is the filter that shows every item.
const FilterAll = "all"

// ErrUnknownItem is returned when an item index is out of range.
var ErrUnknownItem = errors.New("gallery: unknown item")

// Item is a single gallery entry.
type Item struct {
	ID       string
	Category string
	Caption  string
	Image    common.ImageSource
}

// Decoded is a preloaded image.
type Decoded struct {
	Pixels []byte
	Width  uint32
	Height uint32
}

// Gallery is the image grid state: the active filter, the lightbox and the decoded
// images. Thread-safe for concurrent access.
type Gallery interface {
	// Items returns every item in page order.
	Items() []Item

	// Filter shows only items of category. FilterAll shows everything. Exactly one
	// filter is active at a time.
	Filter(category string)

	// ActiveFilter returns the active filter.
	ActiveFilter() string

	// Visible returns the indices of the items the active filter shows.
	Visible() []int

	// Categories returns the filter buttons: FilterAll, then each item category in
	// page order of first appearance.
	Categories() []string

	// CycleFilter activates the filter after the active one in Categories, wrapping
	// back to FilterAll.
	//
	// Returns:
	//   - string: the new active filter
	CycleFilter() string

	// ItemAt hit-tests the grid at a viewport position. Only visible items occupy tiles,
	// laid out in filter order.
	//
	// Parameters:
	//   - x, y: the position in viewport pixels
	//
	// Returns:
	//   - int: the item index under the position
	//   - bool: false if the position is not over a tile
	ItemAt(x, y float64) (int, bool)

	// Open shows item index in the lightbox and locks page scrolling.
	//
	// Parameters:
	//   - index: the item index
	//
	// Returns:
	//   - error: ErrUnknownItem if index is out of range
	Open(index int) error

	// Close hides the lightbox and unlocks page scrolling. No-op when already closed.
	Close()

	// ClickBackdrop handles a click on the lightbox outside the image.
	ClickBackdrop()

	// HandleKey handles a key press. Escape closes an open lightbox.
	//
	// Returns:
	//   - bool: true if the key was consumed
	HandleKey(keyCode uint32) bool

	// Lightbox returns the item in the lightbox.
	//
	// Returns:
	//   - Item: the open item
	//   - bool: false if the lightbox is closed
	Lightbox() (Item, bool)

	// Preload decodes every item image on a worker pool and waits for them, then stops
	// the pool. Failures are logged and returned joined; the successful images remain
	// available.
	Preload() error

	// Image returns a preloaded image by item ID.
	Image(id string) (Decoded, bool)
}

type gallery struct {
	mu      sync.Mutex
	doc     page.Document
	items   []Item
	filter  string
	open    int
	decoded map[string]Decoded
	grid    Grid

	workers     int
	queueSize   int
	idleTimeout time.Duration
}

var _ Gallery = &gallery{}

// NewGallery creates a Gallery showing every item with the lightbox closed.
//
// Parameters:
//   - doc: the page document whose scrolling the lightbox locks (must not be nil)
//   - options: builder options
//
// Returns:
//   - Gallery: the gallery
func NewGallery(doc page.Document, options ...GalleryBuilderOption) Gallery {
	if doc == nil {
		panic("gallery: NewGallery requires a non-nil Document")
	}
	g := &gallery{
		doc:         doc,
		filter:      FilterAll,
		open:        -1,
		decoded:     make(map[string]Decoded),
		grid:        DefaultGrid(),
		workers:     4,
		queueSize:   64,
		idleTimeout: time.Second,
	}
	for _, opt := range options {
		opt(g)
	}
	return g
}

func (g *gallery) Items() []Item {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]Item(nil), g.items...)
}

func (g *gallery) Filter(category string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.filter = common.Coalesce(category, FilterAll)
}

func (g *gallery) ActiveFilter() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.filter
}

func (g *gallery) Visible() []int {
	g.mu.Lock()
	defer g.mu.Unlock()
	visible := make([]int, 0, len(g.items))
	for i, it := range g.items {
		if g.filter == FilterAll || it.Category == g.filter {
			visible = append(visible, i)
		}
	}
	return visible
}

func (g *gallery) Categories() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	categories := []string{FilterAll}
	for _, it := range g.items {
		if !slices.Contains(categories, it.Category) {
			categories = append(categories, it.Category)
		}
	}
	return categories
}

func (g *gallery) CycleFilter() string {
	categories := g.Categories()

	g.mu.Lock()
	defer g.mu.Unlock()
	next := (slices.Index(categories, g.filter) + 1) % len(categories)
	g.filter = categories[next]
	return g.filter
}

func (g *gallery) Open(index int) error {
	g.mu.Lock()
	if index < 0 || index >= len(g.items) {
		g.mu.Unlock()
		return fmt.Errorf("%w: index %d", ErrUnknownItem, index)
	}
	g.open = index
	g.mu.Unlock()
	g.doc.SetScrollLocked(true)
	return nil
}

func (g *gallery) Close() {
	g.mu.Lock()
	if g.open < 0 {
		g.mu.Unlock()
		return
	}
	g.open = -1
	g.mu.Unlock()
	g.doc.SetScrollLocked(false)
}

func (g *gallery) ClickBackdrop() {
	g.Close()
}

func (g *gallery) HandleKey(keyCode uint32) bool {
	if keyCode != common.KeyEsc {
		return false
	}
	if _, ok := g.Lightbox(); !ok {
		return false
	}
	g.Close()
	return true
}

func (g *gallery) Lightbox() (Item, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.open < 0 {
		return Item{}, false
	}
	return g.items[g.open], true
}

func (g *gallery) Preload() error {
	items := g.Items()
	if len(items) == 0 {
		return nil
	}

	pool := worker.NewDynamicWorkerPool(g.workers, g.queueSize, g.idleTimeout)
	defer pool.Stop()

	errs := make([]error, len(items))
	var wg sync.WaitGroup
	for i := range items {
		wg.Add(1)
		idx := i
		pool.SubmitTask(worker.Task{
			ID: idx,
			Do: func() (any, error) {
				defer wg.Done()
				img := items[idx].Image
				pixels, w, h, err := img.Decode()
				if err != nil {
					errs[idx] = fmt.Errorf("item %q: %w", items[idx].ID, err)
					return nil, errs[idx]
				}
				g.mu.Lock()
				g.decoded[items[idx].ID] = Decoded{Pixels: pixels, Width: w, Height: h}
				g.mu.Unlock()
				return nil, nil
			},
		})
	}
	wg.Wait()

	err := errors.Join(errs...)
	if err != nil {
		log.Printf("[Gallery] preload: %v", err)
	}
	return err
}

func (g *gallery) Image(id string) (Decoded, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	d, ok := g.decoded[id]
	return d, ok
}
