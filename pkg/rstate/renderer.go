// Package rstate carries the renderer's lifecycle state machine. The state
// lives on an explicit Renderer value rather than process-global storage;
// "uninitialized" is the absence of that value.
package rstate

import (
	"context"
	"fmt"
	"image"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"

	"github.com/elixir-render/elixir/pkg/camera"
	"github.com/elixir-render/elixir/pkg/core"
	"github.com/elixir-render/elixir/pkg/film"
	"github.com/elixir-render/elixir/pkg/integrator"
	"github.com/elixir-render/elixir/pkg/sampler"
	"github.com/elixir-render/elixir/pkg/scenegraph"
)

// tileSize is the edge length of the square film tiles handed to workers.
const tileSize = 16

// State is the renderer's position in its lifecycle.
type State int

const (
	// StateOptions allows camera setup; the scene has not been described.
	StateOptions State = iota
	// StateScene has a described scene with a built accelerator.
	StateScene
	// StateRendering is in-flight; no API calls are legal.
	StateRendering
	// StateDone follows Cleanup; the renderer value is spent.
	StateDone
)

func (s State) String() string {
	switch s {
	case StateOptions:
		return "options"
	case StateScene:
		return "scene"
	case StateRendering:
		return "rendering"
	default:
		return "done"
	}
}

// DefaultLogger prints progress to stdout.
type DefaultLogger struct{}

// Printf implements core.Logger.
func (DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// Stats summarizes a completed (or cancelled) render.
type Stats struct {
	TotalSamples      int64
	DegenerateSamples int64
	TilesRendered     int
	TilesTotal        int
	Workers           int
	Elapsed           time.Duration
}

// Result is the outcome of a render: the film, its statistics, and whether
// the render was cut short. A cancelled render is not an error; the film
// holds whatever samples were written.
type Result struct {
	Film      *film.Film
	Stats     Stats
	Cancelled bool
}

// Renderer drives a render job through its lifecycle. It is not safe for
// concurrent API calls; parallelism lives inside Render.
type Renderer struct {
	opts   Options
	state  State
	scene  *scenegraph.Scene
	camera *camera.Camera
	logger core.Logger
}

// New validates the options and creates a renderer in the options state. A
// nil logger silences progress output.
func New(opts Options, logger core.Logger) (*Renderer, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Renderer{
		opts:   opts,
		state:  StateOptions,
		logger: logger,
	}, nil
}

// Options returns the renderer's configuration.
func (r *Renderer) Options() Options { return r.opts }

// CurrentState returns the lifecycle state, for tests and diagnostics.
func (r *Renderer) CurrentState() State { return r.state }

func (r *Renderer) requireState(want State, op string) error {
	if r.state != want {
		return errors.Wrapf(ErrConfiguration, "%s is illegal in state %s", op, r.state)
	}
	return nil
}

// SetCamera places the camera. Legal only before the scene is described.
func (r *Renderer) SetCamera(cfg camera.Config) error {
	if err := r.requireState(StateOptions, "SetCamera"); err != nil {
		return err
	}
	if cfg.Aspect <= 0 {
		cfg.Aspect = float64(r.opts.OutputWidth) / float64(r.opts.OutputHeight)
	}
	r.camera = camera.New(cfg)
	return nil
}

// DescribeScene runs the builder against a fresh scene, then builds the
// accelerator and advances to the scene state. Construction errors abort
// the transition and leave the renderer in the options state.
func (r *Renderer) DescribeScene(build func(*scenegraph.Scene) error) error {
	if err := r.requireState(StateOptions, "DescribeScene"); err != nil {
		return err
	}
	if r.camera == nil {
		return errors.Wrap(ErrConfiguration, "DescribeScene before SetCamera")
	}

	scene := scenegraph.New()
	if err := build(scene); err != nil {
		return err
	}
	scene.InitAccelerator()

	r.scene = scene
	r.state = StateScene
	return nil
}

// Scene exposes the described scene, e.g. for a re-build after mutation.
func (r *Renderer) Scene() *scenegraph.Scene { return r.scene }

// Render runs the tile-parallel render loop. The context cancels between
// tiles: in-flight tiles run to completion and the partially populated film
// is returned with the cancelled flag set. On completion the renderer
// returns to the scene state so the job can render again or clean up.
func (r *Renderer) Render(ctx context.Context, integ integrator.Integrator) (*Result, error) {
	if err := r.requireState(StateScene, "Render"); err != nil {
		return nil, err
	}
	if r.scene.Dirty() {
		return nil, errors.Wrap(ErrConfiguration, "Render before InitAccelerator on a mutated scene")
	}
	r.state = StateRendering
	defer func() { r.state = StateScene }()

	start := time.Now()
	frame := film.New(r.opts.OutputWidth, r.opts.OutputHeight)
	tiles := frame.Tiles(tileSize)

	workers := r.opts.WorkerCount
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	r.logf("rendering %dx%d, %d samples/pixel, %d tiles, %d workers\n",
		r.opts.OutputWidth, r.opts.OutputHeight, r.opts.SamplesPerPixel, len(tiles), workers)

	tileCh := make(chan image.Rectangle)
	var wg sync.WaitGroup
	var totalSamples, degenerateSamples, tilesRendered int64

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for tile := range tileCh {
				// Cancellation is checked between tiles only; a taken
				// tile always runs to completion.
				if ctx.Err() != nil {
					continue
				}
				samples, degenerate := r.renderTile(tile, frame, integ)
				atomic.AddInt64(&totalSamples, samples)
				atomic.AddInt64(&degenerateSamples, degenerate)
				atomic.AddInt64(&tilesRendered, 1)
			}
		}()
	}

	for _, tile := range tiles {
		tileCh <- tile
	}
	close(tileCh)
	wg.Wait()

	result := &Result{
		Film: frame,
		Stats: Stats{
			TotalSamples:      totalSamples,
			DegenerateSamples: degenerateSamples,
			TilesRendered:     int(tilesRendered),
			TilesTotal:        len(tiles),
			Workers:           workers,
			Elapsed:           time.Since(start),
		},
		Cancelled: ctx.Err() != nil,
	}

	if result.Cancelled {
		r.logf("render cancelled after %d/%d tiles in %v\n",
			result.Stats.TilesRendered, result.Stats.TilesTotal, result.Stats.Elapsed)
	} else {
		r.logf("render complete: %d samples, %d degenerate, %v\n",
			result.Stats.TotalSamples, result.Stats.DegenerateSamples, result.Stats.Elapsed)
	}
	return result, nil
}

// renderTile samples every pixel in the tile. The tile's film region is
// owned exclusively by this call, so writes need no synchronization.
func (r *Renderer) renderTile(tile image.Rectangle, frame *film.Film, integ integrator.Integrator) (samples, degenerate int64) {
	width := float64(r.opts.OutputWidth)
	height := float64(r.opts.OutputHeight)

	for y := tile.Min.Y; y < tile.Max.Y; y++ {
		for x := tile.Min.X; x < tile.Max.X; x++ {
			smp := sampler.NewStratified(x, y, r.opts.RNGSeed, r.opts.SamplesPerPixel)
			for s := 0; s < r.opts.SamplesPerPixel; s++ {
				jitter := smp.SamplePixel(s)
				u := (float64(x) + jitter.X) / width
				// Film rows run top to bottom; camera t runs bottom to top.
				v := 1 - (float64(y)+jitter.Y)/height

				ray := r.camera.GenerateRay(u, v, smp.SampleLens())
				li, bad := integ.Li(ray, r.scene, smp)
				if bad {
					degenerate++
				}
				frame.AddSample(x, y, li)
				samples++
			}
		}
	}
	return samples, degenerate
}

// Cleanup releases the scene and retires the renderer. Further API calls
// fail; start over with New.
func (r *Renderer) Cleanup() error {
	if r.state == StateRendering {
		return errors.Wrap(ErrConfiguration, "Cleanup during an active render")
	}
	if r.state == StateDone {
		return errors.Wrap(ErrConfiguration, "Cleanup on a spent renderer")
	}
	r.scene = nil
	r.camera = nil
	r.state = StateDone
	return nil
}

func (r *Renderer) logf(format string, args ...interface{}) {
	if r.logger != nil {
		r.logger.Printf(format, args...)
	}
}
