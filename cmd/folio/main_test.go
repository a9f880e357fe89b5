package main

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-folio/config"
	"github.com/Carmen-Shannon/oxy-folio/field"
)

func TestRunHeadless(t *testing.T) {
	tests := []struct {
		name   string
		width  int
		height int
	}{
		{"desktop", 1280, 720},
		{"mobile", 390, 844},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Width, cfg.Height = tt.width, tt.height
			cfg.Seed, cfg.HasSeed = 7, true

			got, err := runHeadless(cfg, 12)
			if err != nil {
				t.Fatalf("runHeadless() error = %v", err)
			}
			if got != 12 {
				t.Errorf("runHeadless() rendered %d frames, want 12", got)
			}
		})
	}
}

func TestFieldOptions(t *testing.T) {
	cfg := config.Default()
	if got := len(fieldOptions(cfg)); got != 1 {
		t.Errorf("fieldOptions() without seed or variant = %d options, want 1", got)
	}
	cfg.Seed, cfg.HasSeed = 3, true
	cfg.Variant, cfg.HasVariant = field.VariantReduced, true
	if got := len(fieldOptions(cfg)); got != 3 {
		t.Errorf("fieldOptions() with seed and variant = %d options, want 3", got)
	}
}

func TestBuildPage(t *testing.T) {
	doc, nav, rev, gal := buildPage(config.Default(), 1000, 800)

	sections := doc.Sections()
	if len(sections) != 5 || sections[0].ID != "home" || sections[4].ID != "contact" {
		t.Fatalf("Sections() = %v, want home through contact", sections)
	}
	if s, _ := doc.Section("about"); s.Top != 800 {
		t.Errorf("about top = %v, want the viewport height 800", s.Top)
	}
	if got := nav.Active(); got != "home" {
		t.Errorf("Active() = %q, want home", got)
	}
	if got := len(rev.Visible()); got != 0 {
		t.Errorf("Visible() at the top = %d elements, want 0", got)
	}
	if got := len(gal.Items()); got != 0 {
		t.Errorf("Items() without a gallery dir = %d, want 0", got)
	}
}
