package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/Carmen-Shannon/oxy-folio/config"
	"github.com/Carmen-Shannon/oxy-folio/engine"
	"github.com/Carmen-Shannon/oxy-folio/engine/renderer"
	"github.com/Carmen-Shannon/oxy-folio/engine/scene"
	"github.com/Carmen-Shannon/oxy-folio/engine/window"
	"github.com/Carmen-Shannon/oxy-folio/field"
)

func main() {
	var (
		envPath  string
		headless bool
		frames   int
		seed     int64
		reduced  bool
		profile  bool
	)
	flag.StringVar(&envPath, "env", ".env", "Path to an optional .env file.")
	flag.BoolVar(&headless, "headless", false, "Simulate the backdrop without a window.")
	flag.IntVar(&frames, "frames", 0, "Stop after N frames (0 = run until the window closes; headless defaults to 600).")
	flag.Int64Var(&seed, "seed", -1, "Fixed random seed for the backdrop (-1 = configured or random).")
	flag.BoolVar(&reduced, "reduced", false, "Force the reduced-load backdrop.")
	flag.BoolVar(&profile, "profile", false, "Log frame statistics.")
	flag.Parse()

	cfg, err := config.Load(envPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if seed >= 0 {
		cfg.Seed, cfg.HasSeed = uint64(seed), true
	}
	if reduced {
		cfg.Variant, cfg.HasVariant = field.VariantReduced, true
	}
	cfg.Profiling = cfg.Profiling || profile

	if headless {
		if frames <= 0 {
			frames = 600
		}
		if _, err := runHeadless(cfg, frames); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}
	if err := runWindow(cfg, frames); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// fieldOptions maps the configuration onto field options.
func fieldOptions(cfg config.Config) []field.FieldBuilderOption {
	opts := []field.FieldBuilderOption{field.WithConfig(cfg.FieldConfig())}
	if cfg.HasSeed {
		opts = append(opts, field.WithSeed(cfg.Seed))
	}
	if cfg.HasVariant {
		opts = append(opts, field.WithVariant(cfg.Variant))
	}
	return opts
}

// runHeadless drives the field simulation for a fixed number of frames with a
// renderer that only counts what it is given.
//
// Returns:
//   - int: the number of frames rendered
//   - error: error if the field could not start or a frame callback panicked
func runHeadless(cfg config.Config, frames int) (int, error) {
	eng := engine.NewEngine(engine.WithProfiling(cfg.Profiling))
	counter := &countingRenderer{}
	f := field.NewField(eng, append(fieldOptions(cfg),
		field.WithProbe(func() bool { return true }),
		field.WithRendererFactory(func(*field.State) (field.Renderer, error) { return counter, nil }),
	)...)

	if err := f.Start(field.Viewport{Width: cfg.Width, Height: cfg.Height}); err != nil {
		return 0, err
	}
	defer f.Stop()

	if err := eng.RunFrames(frames); err != nil {
		return counter.frames, err
	}
	st := f.State()
	log.Printf("[Folio] headless run: %d frames, %d particles, %d shapes, variant %s",
		counter.frames, len(st.Particles()), len(st.Shapes()), st.Variant())
	return counter.frames, nil
}

// countingRenderer stands in for the GPU scene in headless runs.
type countingRenderer struct {
	frames int
}

func (c *countingRenderer) Render(*field.Frame) error           { c.frames++; return nil }
func (c *countingRenderer) Resize(field.Viewport, field.Camera) {}
func (c *countingRenderer) Release()                            {}

// runWindow opens the page window and runs until it closes or frames have been drawn.
// The backdrop and the page work in screen coordinates; only the surface is sized in
// framebuffer pixels.
func runWindow(cfg config.Config, frames int) error {
	win, err := window.NewWindow(
		window.WithTitle(cfg.Title),
		window.WithSize(cfg.Width, cfg.Height),
	)
	if err != nil {
		return err
	}

	eng := engine.NewEngine(
		engine.WithWindow(win),
		engine.WithTickRate(cfg.TickRate),
		engine.WithRenderFrameLimit(cfg.FrameLimit),
		engine.WithProfiling(cfg.Profiling),
	)

	// The scene owns the renderer from here on and releases it with itself, whether
	// the field stops or drops it after a lost context.
	factory := func(state *field.State) (field.Renderer, error) {
		r, err := renderer.NewRenderer(win,
			renderer.WithMSAA(cfg.MSAA),
			renderer.WithPresentMode(cfg.PresentMode),
			renderer.WithClearColor(cfg.ClearColor),
		)
		if err != nil {
			return nil, err
		}
		return scene.NewScene(r, state,
			scene.WithName("backdrop"),
			scene.WithShapeColor(cfg.ShapeColor),
			scene.WithPixelSize(func() (int, int) { return win.Width(), win.Height() }),
		)
	}

	f := field.NewField(eng, append(fieldOptions(cfg),
		field.WithProbe(renderer.Probe),
		field.WithRendererFactory(factory),
	)...)

	width, height := win.Size()
	doc, nav, rev, gal := buildPage(cfg, float64(width), float64(height))
	newControls(f, doc, nav, gal).wire(eng, win)

	eng.SetTickCallback(func(dt float32) {
		nav.Update(dt)
		rev.Update()
	})

	if err := f.Start(field.Viewport{Width: width, Height: height}); err != nil {
		return err
	}

	go func() {
		if err := gal.Preload(); err != nil {
			log.Printf("[Folio] some gallery images failed to load")
		}
	}()

	if frames > 0 {
		go stopAfter(eng, frames)
	}
	eng.Run()

	f.Stop()
	log.Printf("[Folio] closed with %d sections revealed", len(rev.Visible()))
	return nil
}

// stopAfter quits the engine once it has drawn n frames.
func stopAfter(eng engine.Engine, n int) {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-eng.Done():
			return
		case <-ticker.C:
			if eng.Frames() >= uint64(n) {
				eng.Quit()
				return
			}
		}
	}
}
