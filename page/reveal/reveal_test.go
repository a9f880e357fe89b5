package reveal

import (
	"slices"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-folio/page"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestDocument() page.Document {
	return page.NewDocument(page.WithViewport(1280, 800), page.WithHeight(4000))
}

func TestInitialCheck(t *testing.T) {
	doc := newTestDocument()
	r := NewRevealer(doc, WithElements(
		Element{ID: "above", Kind: KindElement, Top: 649},
		Element{ID: "edge", Kind: KindElement, Top: 650},
		Element{ID: "section", Kind: KindSection, Top: 699},
	))
	if !r.Revealed("above") {
		t.Error("element above the trigger line not revealed at attach")
	}
	if r.Revealed("edge") {
		t.Error("element on the trigger line revealed")
	}
	if !r.Revealed("section") {
		t.Error("section above its trigger line not revealed at attach")
	}
}

func TestRevealOnScroll(t *testing.T) {
	doc := newTestDocument()
	r := NewRevealer(doc)
	var seen []string
	r.OnReveal(func(id string) { seen = append(seen, id) })
	r.Add(
		Element{ID: "card", Kind: KindElement, Top: 1000},
		Element{ID: "about", Kind: KindSection, Top: 1000},
	)
	if len(seen) != 0 {
		t.Fatalf("revealed %v before scrolling", seen)
	}

	doc.ScrollTo(301)
	if want := []string{"about"}; !slices.Equal(seen, want) {
		t.Errorf("after 301px revealed %v, want %v", seen, want)
	}
	doc.ScrollTo(351)
	if want := []string{"about", "card"}; !slices.Equal(seen, want) {
		t.Errorf("after 351px revealed %v, want %v", seen, want)
	}
}

func TestRevealIsOneWay(t *testing.T) {
	doc := newTestDocument()
	r := NewRevealer(doc, WithElements(Element{ID: "card", Top: 1000}))
	doc.ScrollTo(500)
	doc.ScrollTo(0)
	if !r.Revealed("card") {
		t.Error("element hidden again after scrolling back up")
	}
}

func TestElementDelay(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	doc := newTestDocument()
	r := NewRevealer(doc,
		WithClock(clock.now),
		WithElements(Element{ID: "card", Top: 100, Delay: 300 * time.Millisecond}),
	)
	if r.Revealed("card") || r.Pending() != 1 {
		t.Fatalf("Revealed = %v, Pending = %d; want hidden and pending", r.Revealed("card"), r.Pending())
	}
	clock.advance(299 * time.Millisecond)
	r.Update()
	if r.Revealed("card") {
		t.Error("revealed before its delay")
	}
	clock.advance(time.Millisecond)
	r.Update()
	if !r.Revealed("card") || r.Pending() != 0 {
		t.Error("not revealed once its delay elapsed")
	}
}

func TestTimelineStagger(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	doc := newTestDocument()
	r := NewRevealer(doc,
		WithClock(clock.now),
		WithElements(
			Element{ID: "t0", Kind: KindTimeline, Top: 100},
			Element{ID: "t1", Kind: KindTimeline, Top: 200},
			Element{ID: "t2", Kind: KindTimeline, Top: 300, Delay: time.Hour},
		),
	)
	want := [][]string{
		{"t0"},
		{"t0", "t1"},
		{"t0", "t1", "t2"},
	}
	for i, w := range want {
		if got := r.Visible(); !slices.Equal(got, w) {
			t.Errorf("at %v visible = %v, want %v", time.Duration(i)*TimelineStagger, got, w)
		}
		clock.advance(TimelineStagger)
		r.Update()
	}
}

func TestDuplicateIgnored(t *testing.T) {
	doc := newTestDocument()
	r := NewRevealer(doc)
	r.Add(Element{ID: "x", Top: 2000}, Element{ID: "x", Top: 0})
	if r.Revealed("x") {
		t.Error("duplicate element replaced the original")
	}
}
