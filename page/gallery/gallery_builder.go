package gallery

import "time"

// GalleryBuilderOption is a functional option for configuring a Gallery.
type GalleryBuilderOption func(g *gallery)

// WithItems adds items to the gallery in page order.
//
// Parameters:
//   - items: the items
//
// Returns:
//   - GalleryBuilderOption: option function to apply
func WithItems(items ...Item) GalleryBuilderOption {
	return func(g *gallery) {
		g.items = append(g.items, items...)
	}
}

// WithPreloadWorkers sizes the decode worker pool.
//
// Parameters:
//   - workers: number of concurrent decoders (must be positive)
//   - idleTimeout: how long an idle worker lingers before exiting
//
// Returns:
//   - GalleryBuilderOption: option function to apply
func WithPreloadWorkers(workers int, idleTimeout time.Duration) GalleryBuilderOption {
	return func(g *gallery) {
		if workers > 0 {
			g.workers = workers
		}
		if idleTimeout > 0 {
			g.idleTimeout = idleTimeout
		}
	}
}

// WithGrid sets the tile layout used to hit-test clicks.
//
// Parameters:
//   - grid: the layout
//
// Returns:
//   - GalleryBuilderOption: option function to apply
func WithGrid(grid Grid) GalleryBuilderOption {
	return func(g *gallery) {
		g.grid = grid
	}
}
