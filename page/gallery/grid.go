package gallery

// Grid is the tile layout of the gallery inside its page section, in viewport pixels.
// Tiles fill the viewport width in Columns equal columns separated and surrounded by Gap.
type Grid struct {
	// Section is the document section holding the grid.
	Section string
	// Offset is the distance from the section top to the first row.
	Offset     float64
	Columns    int
	TileHeight float64
	Gap        float64
}

// DefaultGrid returns the layout of the "gallery" section.
func DefaultGrid() Grid {
	return Grid{
		Section:    "gallery",
		Offset:     160,
		Columns:    3,
		TileHeight: 280,
		Gap:        24,
	}
}

// cell returns the tile slot under a point relative to the grid's top-left corner.
func (gr Grid) cell(x, y, viewportWidth float64) (int, bool) {
	if gr.Columns <= 0 || gr.TileHeight <= 0 {
		return 0, false
	}
	tileWidth := (viewportWidth - gr.Gap*float64(gr.Columns+1)) / float64(gr.Columns)
	x -= gr.Gap
	if tileWidth <= 0 || x < 0 || y < 0 {
		return 0, false
	}
	col := int(x / (tileWidth + gr.Gap))
	row := int(y / (gr.TileHeight + gr.Gap))
	if col >= gr.Columns {
		return 0, false
	}
	// Points in the gutters hit nothing.
	if x-float64(col)*(tileWidth+gr.Gap) > tileWidth || y-float64(row)*(gr.TileHeight+gr.Gap) > gr.TileHeight {
		return 0, false
	}
	return row*gr.Columns + col, true
}

func (g *gallery) ItemAt(x, y float64) (int, bool) {
	g.mu.Lock()
	grid := g.grid
	g.mu.Unlock()

	s, ok := g.doc.Section(grid.Section)
	if !ok {
		return -1, false
	}
	width, _ := g.doc.Viewport()
	slot, ok := grid.cell(x, y+g.doc.ScrollY()-s.Top-grid.Offset, width)
	if !ok {
		return -1, false
	}
	visible := g.Visible()
	if slot >= len(visible) {
		return -1, false
	}
	return visible[slot], true
}
