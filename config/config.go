// Package config loads runtime settings from an optional .env file and FOLIO_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/Carmen-Shannon/oxy-folio/engine/renderer"
	"github.com/Carmen-Shannon/oxy-folio/field"
	"github.com/joho/godotenv"
	"github.com/lucasb-eyer/go-colorful"
)

// Environment variable names.
const (
	EnvTitle       = "FOLIO_TITLE"
	EnvWidth       = "FOLIO_WIDTH"
	EnvHeight      = "FOLIO_HEIGHT"
	EnvFrameLimit  = "FOLIO_FRAME_LIMIT"
	EnvTickRate    = "FOLIO_TICK_RATE"
	EnvProfiling   = "FOLIO_PROFILING"
	EnvMSAA        = "FOLIO_MSAA"
	EnvPresentMode = "FOLIO_PRESENT_MODE"
	EnvSeed        = "FOLIO_SEED"
	EnvVariant     = "FOLIO_VARIANT"
	EnvGalleryDir  = "FOLIO_GALLERY_DIR"
	EnvClearColor  = "FOLIO_CLEAR_COLOR"
	EnvShapeColor  = "FOLIO_SHAPE_COLOR"
	EnvPalette     = "FOLIO_PALETTE"
)

// Config holds the runtime settings of the folio binary.
type Config struct {
	Title      string
	Width      int
	Height     int
	FrameLimit float64
	TickRate   float64
	Profiling  bool

	MSAA        renderer.MSAASampleCount
	PresentMode renderer.PresentMode

	// Seed fixes the field's random source when HasSeed is set.
	Seed    uint64
	HasSeed bool

	// Variant forces the field variant when HasVariant is set.
	Variant    field.Variant
	HasVariant bool

	GalleryDir string

	ClearColor colorful.Color
	ShapeColor colorful.Color
	// Palette overrides the particle palette when non-empty.
	Palette []colorful.Color
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		Title:       "Portfolio",
		Width:       1280,
		Height:      720,
		FrameLimit:  60,
		TickRate:    60,
		MSAA:        renderer.MSAA4x,
		PresentMode: renderer.PresentModeVSync,
		ClearColor:  mustHex("#0a0a0f"),
		ShapeColor:  mustHex("#d4af37"),
	}
}

// Load reads path into the process environment, when it exists, then overlays every
// set FOLIO_* variable onto Default. Variables already in the environment win over the
// file. An empty path skips the file.
//
// Parameters:
//   - path: the .env file
//
// Returns:
//   - Config: the settings
//   - error: error if the file is unreadable or a variable does not parse
func Load(path string) (Config, error) {
	if path != "" {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("config: failed to load %s: %w", path, err)
		}
	}
	return FromEnv(os.Getenv)
}

// FromEnv overlays the variables returned by getenv onto Default. Unset and empty
// variables keep the default.
//
// Parameters:
//   - getenv: the variable lookup
//
// Returns:
//   - Config: the settings
//   - error: every malformed variable, joined
func FromEnv(getenv func(string) string) (Config, error) {
	c := Default()
	p := parser{getenv: getenv}

	p.str(EnvTitle, &c.Title)
	p.str(EnvGalleryDir, &c.GalleryDir)
	p.positiveInt(EnvWidth, &c.Width)
	p.positiveInt(EnvHeight, &c.Height)
	p.nonNegativeFloat(EnvFrameLimit, &c.FrameLimit)
	p.nonNegativeFloat(EnvTickRate, &c.TickRate)
	p.boolean(EnvProfiling, &c.Profiling)
	p.color(EnvClearColor, &c.ClearColor)
	p.color(EnvShapeColor, &c.ShapeColor)

	if v := p.get(EnvMSAA); v != "" {
		switch v {
		case "1", "off":
			c.MSAA = renderer.MSAAOff
		case "4":
			c.MSAA = renderer.MSAA4x
		case "8":
			c.MSAA = renderer.MSAA8x
		case "16":
			c.MSAA = renderer.MSAA16x
		default:
			p.fail(EnvMSAA, v, errors.New("want 1, 4, 8 or 16"))
		}
	}

	if v := p.get(EnvPresentMode); v != "" {
		switch strings.ToLower(v) {
		case "vsync":
			c.PresentMode = renderer.PresentModeVSync
		case "uncapped":
			c.PresentMode = renderer.PresentModeUncapped
		default:
			p.fail(EnvPresentMode, v, errors.New("want vsync or uncapped"))
		}
	}

	if v := p.get(EnvSeed); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			p.fail(EnvSeed, v, err)
		} else {
			c.Seed, c.HasSeed = seed, true
		}
	}

	if v := p.get(EnvVariant); v != "" {
		variant, err := ParseVariant(v)
		if err != nil {
			p.fail(EnvVariant, v, err)
		} else {
			c.Variant, c.HasVariant = variant, true
		}
	}

	if v := p.get(EnvPalette); v != "" {
		for _, hex := range strings.Split(v, ",") {
			col, err := colorful.Hex(strings.TrimSpace(hex))
			if err != nil {
				p.fail(EnvPalette, v, err)
				c.Palette = nil
				break
			}
			c.Palette = append(c.Palette, col)
		}
	}

	return c, errors.Join(p.errs...)
}

// ParseVariant parses "reduced" or "full".
func ParseVariant(s string) (field.Variant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case field.VariantReduced.String():
		return field.VariantReduced, nil
	case field.VariantFull.String():
		return field.VariantFull, nil
	}
	return 0, fmt.Errorf("unknown variant %q", s)
}

// FieldConfig returns the field calibration with the configured palette applied.
func (c Config) FieldConfig() field.Config {
	fc := field.DefaultConfig()
	if len(c.Palette) == 0 {
		return fc
	}
	fc.Palette = make([][3]float64, len(c.Palette))
	for i, col := range c.Palette {
		fc.Palette[i] = [3]float64{col.R, col.G, col.B}
	}
	return fc
}

// parser collects errors while reading variables.
type parser struct {
	getenv func(string) string
	errs   []error
}

func (p *parser) get(key string) string {
	return strings.TrimSpace(p.getenv(key))
}

func (p *parser) fail(key, value string, err error) {
	p.errs = append(p.errs, fmt.Errorf("config: %s=%q: %w", key, value, err))
}

func (p *parser) str(key string, dst *string) {
	if v := p.get(key); v != "" {
		*dst = v
	}
}

func (p *parser) positiveInt(key string, dst *int) {
	v := p.get(key)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err == nil && n <= 0 {
		err = errors.New("must be positive")
	}
	if err != nil {
		p.fail(key, v, err)
		return
	}
	*dst = n
}

func (p *parser) nonNegativeFloat(key string, dst *float64) {
	v := p.get(key)
	if v == "" {
		return
	}
	f, err := strconv.ParseFloat(v, 64)
	if err == nil && f < 0 {
		err = errors.New("must not be negative")
	}
	if err != nil {
		p.fail(key, v, err)
		return
	}
	*dst = f
}

func (p *parser) boolean(key string, dst *bool) {
	v := p.get(key)
	if v == "" {
		return
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		p.fail(key, v, err)
		return
	}
	*dst = b
}

func (p *parser) color(key string, dst *colorful.Color) {
	v := p.get(key)
	if v == "" {
		return
	}
	col, err := colorful.Hex(v)
	if err != nil {
		p.fail(key, v, err)
		return
	}
	*dst = col
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(fmt.Sprintf("config: bad built-in color %q", s))
	}
	return c
}
