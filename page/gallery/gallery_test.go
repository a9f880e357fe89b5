package gallery

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-folio/common"
	"github.com/Carmen-Shannon/oxy-folio/page"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 212, G: 175, B: 55, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

func testItems() []Item {
	return []Item{
		{ID: "a", Category: "web", Caption: "Site"},
		{ID: "b", Category: "print", Caption: "Poster"},
		{ID: "c", Category: "web", Caption: "App"},
	}
}

func TestFilter(t *testing.T) {
	g := NewGallery(page.NewDocument(), WithItems(testItems()...))
	if got := g.ActiveFilter(); got != FilterAll {
		t.Errorf("ActiveFilter() = %q, want %q", got, FilterAll)
	}
	tests := []struct {
		filter string
		want   []int
	}{
		{"web", []int{0, 2}},
		{"print", []int{1}},
		{"video", []int{}},
		{FilterAll, []int{0, 1, 2}},
		{"", []int{0, 1, 2}},
	}
	for _, tt := range tests {
		g.Filter(tt.filter)
		if got := g.Visible(); !slices.Equal(got, tt.want) {
			t.Errorf("Filter(%q): Visible() = %v, want %v", tt.filter, got, tt.want)
		}
	}
	if got := g.ActiveFilter(); got != FilterAll {
		t.Errorf("ActiveFilter() after empty filter = %q, want %q", got, FilterAll)
	}
}

func TestLightboxLocksScroll(t *testing.T) {
	doc := page.NewDocument(page.WithHeight(3000))
	g := NewGallery(doc, WithItems(testItems()...))

	if err := g.Open(1); err != nil {
		t.Fatalf("Open(1): %v", err)
	}
	it, ok := g.Lightbox()
	if !ok || it.Caption != "Poster" {
		t.Errorf("Lightbox() = %+v, %v; want Poster, true", it, ok)
	}
	if !doc.ScrollLocked() {
		t.Error("scrolling not locked with the lightbox open")
	}

	g.ClickBackdrop()
	if _, ok := g.Lightbox(); ok {
		t.Error("lightbox still open after backdrop click")
	}
	if doc.ScrollLocked() {
		t.Error("scrolling still locked after close")
	}
}

func TestOpenUnknownItem(t *testing.T) {
	doc := page.NewDocument()
	g := NewGallery(doc, WithItems(testItems()...))
	for _, idx := range []int{-1, 3} {
		if err := g.Open(idx); !errors.Is(err, ErrUnknownItem) {
			t.Errorf("Open(%d) = %v, want ErrUnknownItem", idx, err)
		}
	}
	if doc.ScrollLocked() {
		t.Error("failed Open locked scrolling")
	}
}

func TestEscapeClosesLightbox(t *testing.T) {
	doc := page.NewDocument()
	g := NewGallery(doc, WithItems(testItems()...))
	if g.HandleKey(common.KeyEsc) {
		t.Error("Escape consumed with the lightbox closed")
	}
	g.Open(0)
	if g.HandleKey(common.KeyM) {
		t.Error("M consumed by the lightbox")
	}
	if !g.HandleKey(common.KeyEsc) {
		t.Error("Escape not consumed with the lightbox open")
	}
	if _, ok := g.Lightbox(); ok || doc.ScrollLocked() {
		t.Error("Escape did not close the lightbox")
	}
}

func TestCloseDoesNotUnlockForeignLock(t *testing.T) {
	doc := page.NewDocument()
	g := NewGallery(doc)
	doc.SetScrollLocked(true)
	g.Close()
	if !doc.ScrollLocked() {
		t.Error("Close on a closed lightbox unlocked scrolling")
	}
}

func TestPreload(t *testing.T) {
	items := []Item{
		{ID: "ok", Image: common.ImageSource{Name: "ok", Data: pngBytes(t, 3, 2)}},
		{ID: "bad", Image: common.ImageSource{Name: "bad", Data: []byte("not an image")}},
		{ID: "empty"},
	}
	g := NewGallery(page.NewDocument(), WithItems(items...), WithPreloadWorkers(2, 100*time.Millisecond))

	err := g.Preload()
	if err == nil {
		t.Fatal("Preload() = nil, want errors for bad and empty")
	}
	d, ok := g.Image("ok")
	if !ok {
		t.Fatal("Image(ok) missing after Preload")
	}
	if d.Width != 3 || d.Height != 2 || len(d.Pixels) != 3*2*4 {
		t.Errorf("Image(ok) = %dx%d with %d bytes, want 3x2 with 24", d.Width, d.Height, len(d.Pixels))
	}
	if _, ok := g.Image("bad"); ok {
		t.Error("Image(bad) present after a failed decode")
	}
}

func TestPreloadRepeats(t *testing.T) {
	items := []Item{{ID: "ok", Image: common.ImageSource{Name: "ok", Data: pngBytes(t, 2, 2)}}}
	g := NewGallery(page.NewDocument(), WithItems(items...), WithPreloadWorkers(1, 50*time.Millisecond))

	for i := range 2 {
		if err := g.Preload(); err != nil {
			t.Fatalf("Preload() #%d error = %v", i+1, err)
		}
	}
	if _, ok := g.Image("ok"); !ok {
		t.Error("Image(ok) missing after a second Preload")
	}
}

func TestCycleFilter(t *testing.T) {
	g := NewGallery(page.NewDocument(), WithItems(testItems()...))

	if got, want := g.Categories(), []string{FilterAll, "web", "print"}; !slices.Equal(got, want) {
		t.Errorf("Categories() = %v, want %v", got, want)
	}
	for _, want := range []string{"web", "print", FilterAll, "web"} {
		if got := g.CycleFilter(); got != want {
			t.Errorf("CycleFilter() = %q, want %q", got, want)
		}
	}

	g.Filter("video")
	if got := g.CycleFilter(); got != FilterAll {
		t.Errorf("CycleFilter() from an unknown filter = %q, want %q", got, FilterAll)
	}
}

func TestItemAt(t *testing.T) {
	doc := page.NewDocument(
		page.WithViewport(1000, 800),
		page.WithSections(
			page.Section{ID: "intro", Top: 0, Height: 2000},
			page.Section{ID: "gallery", Top: 2000, Height: 1500},
		),
	)
	doc.ScrollTo(2000)
	// Three 300px columns with 25px gutters, the first row 100px into the section.
	g := NewGallery(doc, WithItems(testItems()...), WithGrid(Grid{
		Section:    "gallery",
		Offset:     100,
		Columns:    3,
		TileHeight: 200,
		Gap:        25,
	}))

	tests := []struct {
		name   string
		x, y   float64
		filter string
		want   int
		wantOK bool
	}{
		{"first tile", 35, 110, FilterAll, 0, true},
		{"second tile", 360, 110, FilterAll, 1, true},
		{"third tile", 990 - 30, 299, FilterAll, 2, true},
		{"gutter", 330, 110, FilterAll, -1, false},
		{"above grid", 35, 90, FilterAll, -1, false},
		{"empty slot", 35, 335, FilterAll, -1, false},
		{"filtered layout", 360, 110, "web", 2, true},
		{"filtered past end", 690, 110, "web", -1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g.Filter(tt.filter)
			got, ok := g.ItemAt(tt.x, tt.y)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ItemAt(%v, %v) = %d, %v, want %d, %v", tt.x, tt.y, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestItemAtWithoutSection(t *testing.T) {
	g := NewGallery(page.NewDocument(page.WithViewport(1000, 800)), WithItems(testItems()...))
	if i, ok := g.ItemAt(100, 200); ok {
		t.Errorf("ItemAt() = %d, true without a gallery section", i)
	}
}

func TestPreloadEmpty(t *testing.T) {
	if err := NewGallery(page.NewDocument()).Preload(); err != nil {
		t.Errorf("Preload() on an empty gallery = %v", err)
	}
}

func TestItemsFromDir(t *testing.T) {
	dir := t.TempDir()
	write := func(rel string, data []byte) {
		t.Helper()
		path := filepath.Join(dir, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	img := pngBytes(t, 1, 1)
	write("web/landing-page.png", img)
	write("print/tour_poster.JPG", img)
	write("cover.png", img)
	write("web/notes.txt", []byte("skip"))

	items, err := ItemsFromDir(dir)
	if err != nil {
		t.Fatalf("ItemsFromDir: %v", err)
	}
	var got []string
	for _, it := range items {
		got = append(got, it.Category+":"+it.Caption)
	}
	want := []string{"misc:cover", "print:tour poster", "web:landing page"}
	if !slices.Equal(got, want) {
		t.Errorf("items = %v, want %v", got, want)
	}

	if _, err := ItemsFromDir(filepath.Join(dir, "missing")); err == nil {
		t.Error("ItemsFromDir(missing) = nil error")
	}
}
