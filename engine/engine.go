package engine

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-folio/engine/profiler"
	"github.com/Carmen-Shannon/oxy-folio/engine/window"
)

// FrameCallback receives the monotonic time since the engine started, in seconds.
type FrameCallback func(elapsedSeconds float64)

type frameRequest struct {
	token uint64
	cb    FrameCallback
}

// engine implements the Engine interface.
// Coordinates engine, render, and window threads.
type engine struct {
	tickRateChannel chan time.Duration // Channel for dynamic tick rate updates

	running bool
	wg      sync.WaitGroup

	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once

	window window.Window

	profiler         *profiler.Profiler
	profilingEnabled bool

	engineTickRate time.Duration
	tickCallback   func(deltaTime float32)

	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped

	now   func() time.Time
	start time.Time

	// mu guards the frame queue and the resize listeners. It is never held while a
	// callback runs, so callbacks may request or cancel frames.
	mu              sync.Mutex
	nextToken       uint64
	pending         []frameRequest
	current         []frameRequest
	frames          uint64
	resizeListeners []func(width, height int)
}

// Engine is the main entry point for the engine.
// It orchestrates the tick loop, the frame scheduler and window management.
type Engine interface {
	// Window returns the underlying window, nil when running headless.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// Profiler returns the engine's profiler.
	Profiler() *profiler.Profiler

	// SetTickRate sets the engine tick rate in frames per second.
	// The tick callback will be called at this rate for page logic updates.
	//
	// Parameters:
	//   - fps: target frames per second (defaults to 60 if <= 0)
	SetTickRate(fps float64)

	// SetTickCallback registers the function called each engine tick.
	//
	// Parameters:
	//   - callback: function to call at the configured tick rate, receiving the delta time in seconds
	SetTickCallback(callback func(deltaTime float32))

	// SetRenderFrameLimit sets an optional render frame rate cap in frames per second.
	// Pass 0 to uncap the render loop.
	//
	// Parameters:
	//   - fps: maximum render frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// RequestFrame schedules cb to run once on the next frame. Callbacks run in
	// submission order, one at a time; a callback requested while a frame is running
	// waits for the following frame.
	//
	// Parameters:
	//   - cb: the callback
	//
	// Returns:
	//   - uint64: a token for CancelFrame, never 0
	RequestFrame(cb func(elapsedSeconds float64)) uint64

	// CancelFrame drops a pending request. Unknown or already-run tokens are ignored.
	//
	// Parameters:
	//   - token: the token returned by RequestFrame
	CancelFrame(token uint64)

	// PendingFrames returns the number of requests waiting for the next frame.
	PendingFrames() int

	// Frames returns the number of frames run.
	Frames() uint64

	// AddResizeListener registers a function called with the window size, in screen
	// coordinates, whenever the window or its framebuffer is resized.
	AddResizeListener(listener func(width, height int))

	// RunFrames runs n frames synchronously on the calling goroutine.
	//
	// Parameters:
	//   - n: the number of frames
	//
	// Returns:
	//   - error: non-nil if a frame callback panicked; remaining frames are skipped
	RunFrames(n int) error

	// Run starts the engine loops. With a window it blocks in the window message loop
	// until the window closes; headless it blocks until Quit.
	Run()

	// Quit signals all engine goroutines to stop and shuts down the engine.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()

	// Done is closed once Quit has been called.
	Done() <-chan struct{}
}

var _ Engine = &engine{}

// NewEngine creates a new Engine instance with the provided options.
// Options are applied directly to the engine struct via the option-builder pattern.
//
// Parameters:
//   - options: functional options for engine configuration (profiling, tick rate, etc.)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		tickRateChannel:  make(chan time.Duration, 1),
		quitChannel:      make(chan struct{}),
		running:          false,
		wg:               sync.WaitGroup{},
		profilingEnabled: false,
		engineTickRate:   time.Second / 60,
		now:              time.Now,
	}

	for _, opt := range options {
		opt(e)
	}
	e.start = e.now()
	if e.profiler == nil {
		e.profiler = profiler.NewProfiler(profiler.WithClock(e.now))
	}

	if e.window != nil {
		e.window.SetResizeCallback(e.notifyResize)
	}

	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Profiler() *profiler.Profiler {
	return e.profiler
}

func (e *engine) RequestFrame(cb func(elapsedSeconds float64)) uint64 {
	if cb == nil {
		panic("engine: RequestFrame requires a non-nil callback")
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.nextToken++
	e.pending = append(e.pending, frameRequest{token: e.nextToken, cb: cb})
	return e.nextToken
}

func (e *engine) CancelFrame(token uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i := range e.pending {
		if e.pending[i].token == token {
			e.pending = append(e.pending[:i], e.pending[i+1:]...)
			return
		}
	}
	// The request may belong to the frame that is running right now.
	for i := range e.current {
		if e.current[i].token == token {
			e.current[i].cb = nil
			return
		}
	}
}

func (e *engine) PendingFrames() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.pending)
}

func (e *engine) Frames() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.frames
}

func (e *engine) AddResizeListener(listener func(width, height int)) {
	if listener == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.resizeListeners = append(e.resizeListeners, listener)
}

// notifyResize fans a window resize out to every listener.
func (e *engine) notifyResize(width, height int) {
	e.mu.Lock()
	listeners := append([]func(int, int){}, e.resizeListeners...)
	e.mu.Unlock()
	for _, l := range listeners {
		l(width, height)
	}
}

// runFrame runs every callback requested before the frame started.
func (e *engine) runFrame() {
	elapsed := e.now().Sub(e.start).Seconds()

	e.mu.Lock()
	e.current, e.pending = e.pending, e.current[:0]
	e.frames++
	e.mu.Unlock()

	for i := 0; ; i++ {
		e.mu.Lock()
		if i >= len(e.current) {
			e.current = e.current[:0]
			e.mu.Unlock()
			break
		}
		cb := e.current[i].cb
		e.mu.Unlock()
		if cb != nil {
			cb(elapsed)
		}
	}

	if e.profilingEnabled && e.profiler != nil {
		e.profiler.Tick()
	}
}

func (e *engine) RunFrames(n int) (err error) {
	defer func() {
		if r := recover(); r != nil {
			e.mu.Lock()
			e.current = e.current[:0]
			e.mu.Unlock()
			err = fmt.Errorf("engine: frame callback panicked: %v", r)
		}
	}()
	for range n {
		e.runFrame()
	}
	return nil
}

func (e *engine) Run() {
	e.running = true
	e.handle()
	if e.window != nil {
		// GLFW calls must stay on the thread that created the window, so a Quit from
		// another goroutine is picked up by the message loop.
		e.window.SetUpdateCallback(func() {
			select {
			case <-e.quitChannel:
				_ = e.window.Close()
			default:
			}
		})
		e.window.ProcessMessages()
		e.signalQuit()
	} else {
		<-e.quitChannel
	}
	e.wg.Wait()
	e.running = false
}

// Quit signals all engine goroutines to stop and shuts down the engine.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.signalQuit()
}

func (e *engine) Done() <-chan struct{} {
	return e.quitChannel
}

// signalQuit closes the quit channel to signal all goroutines to exit.
// Uses sync.Once to ensure the channel is only closed once.
func (e *engine) signalQuit() {
	e.quitOnce.Do(func() {
		close(e.quitChannel)
	})
}

// handle launches the engine and render goroutines.
// Each goroutine is tracked by the engine's WaitGroup.
func (e *engine) handle() {
	e.wg.Add(2)
	go e.handleEngine()
	go e.handleRender()
}

// handleEngine runs the fixed-rate engine tick loop in its own goroutine.
// Fires the tick callback at the configured tick rate and listens for dynamic rate changes
// via tickRateChannel. Exits when the quit channel is closed.
func (e *engine) handleEngine() {
	defer e.wg.Done()

	ticker := time.NewTicker(e.engineTickRate)
	defer ticker.Stop()

	lastTick := e.now()

	for {
		select {
		case <-e.quitChannel:
			return
		case <-ticker.C:
			now := e.now()
			dt := float32(now.Sub(lastTick).Seconds())
			lastTick = now

			if e.tickCallback != nil {
				e.tickCallback(dt)
			}
		case newRate := <-e.tickRateChannel:
			ticker.Reset(newRate)
			e.engineTickRate = newRate
		}
	}
}

// handleRender runs the frame scheduler loop in its own goroutine.
// Recovers from panics to avoid crashing the process and signals quit on recovery.
func (e *engine) handleRender() {
	defer e.wg.Done()
	// Recover from panics inside the render goroutine to avoid crashing the whole process.
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[Engine] render goroutine recovered from panic: %v", r)
			e.signalQuit()
		}
	}()

	for {
		select {
		case <-e.quitChannel:
			return
		default:
			frameStart := e.now()
			e.runFrame()

			if e.renderFrameLimit > 0 {
				if remaining := e.renderFrameLimit - e.now().Sub(frameStart); remaining > 0 {
					time.Sleep(remaining)
				}
			}
		}
	}
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

// SetTickRate sets the engine tick rate in frames per second.
// If the engine is running, the change takes effect immediately.
func (e *engine) SetTickRate(fps float64) {
	newRate := tickInterval(fps)

	if e.running {
		// Non-blocking send - if channel is full, replace the pending value
		select {
		case e.tickRateChannel <- newRate:
		default:
			select {
			case <-e.tickRateChannel:
			default:
			}
			e.tickRateChannel <- newRate
		}
	} else {
		e.engineTickRate = newRate
	}
}

// SetTickCallback registers the function called each engine tick.
func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.tickCallback = callback
}

// SetRenderFrameLimit sets an optional render frame rate cap.
// Pass 0 to uncap the render loop.
func (e *engine) SetRenderFrameLimit(fps float64) {
	e.renderFrameLimit = frameInterval(fps)
}

// tickInterval converts a tick rate to a period, defaulting to 60Hz.
func tickInterval(fps float64) time.Duration {
	if fps <= 0 {
		fps = 60
	}
	return time.Duration(float64(time.Second) / fps)
}

// frameInterval converts a frame cap to a minimum frame duration; 0 means uncapped.
func frameInterval(fps float64) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / fps)
}
