package main

import (
	"fmt"
	"log"
	"time"

	"github.com/Carmen-Shannon/oxy-folio/config"
	"github.com/Carmen-Shannon/oxy-folio/page"
	"github.com/Carmen-Shannon/oxy-folio/page/gallery"
	"github.com/Carmen-Shannon/oxy-folio/page/navigation"
	"github.com/Carmen-Shannon/oxy-folio/page/reveal"
)

// buildPage lays out the portfolio page for a viewport in screen coordinates.
func buildPage(cfg config.Config, width, height float64) (page.Document, navigation.Navigation, reveal.Revealer, gallery.Gallery) {
	sections := []page.Section{
		{ID: "home", Top: 0, Height: height},
		{ID: "about", Top: height, Height: 900},
		{ID: "experience", Top: height + 900, Height: 1200},
		{ID: "gallery", Top: height + 2100, Height: 1400},
		{ID: "contact", Top: height + 3500, Height: 700},
	}
	doc := page.NewDocument(page.WithViewport(width, height), page.WithSections(sections...))

	var elements []reveal.Element
	for _, s := range sections[1:] {
		elements = append(elements,
			reveal.Element{ID: s.ID, Kind: reveal.KindSection, Top: s.Top},
			reveal.Element{ID: s.ID + "-title", Kind: reveal.KindElement, Top: s.Top + 40},
		)
	}
	for i := range 4 {
		elements = append(elements, reveal.Element{
			ID:   fmt.Sprintf("experience-%d", i),
			Kind: reveal.KindTimeline,
			Top:  sections[2].Top + 150 + float64(i)*250,
		})
	}
	rev := reveal.NewRevealer(doc, reveal.WithElements(elements...))
	rev.OnReveal(func(id string) { log.Printf("[Reveal] %s", id) })

	var items []gallery.Item
	if cfg.GalleryDir != "" {
		var err error
		if items, err = gallery.ItemsFromDir(cfg.GalleryDir); err != nil {
			log.Printf("[Gallery] %v", err)
		}
	}
	gal := gallery.NewGallery(doc, gallery.WithItems(items...))

	log.Printf("[Folio] %s", page.FooterText("© 2025 Portfolio. All rights reserved.", time.Now().Year()))
	return doc, navigation.NewNavigation(doc), rev, gal
}
