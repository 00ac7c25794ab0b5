// Package film accumulates per-pixel radiance. During a render each tile of
// the film is written by exactly one worker, so no locking is needed.
package film

import (
	"image"

	"github.com/elixir-render/elixir/pkg/core"
)

// Pixel is one accumulator cell: the radiance sum and how many samples went
// into it.
type Pixel struct {
	Color   core.Vec3
	Samples int
}

// Film is a 2D grid of radiance accumulators.
type Film struct {
	width  int
	height int
	pixels []Pixel
}

// New creates a black film of the given dimensions.
func New(width, height int) *Film {
	return &Film{
		width:  width,
		height: height,
		pixels: make([]Pixel, width*height),
	}
}

// Width returns the film width in pixels.
func (f *Film) Width() int { return f.width }

// Height returns the film height in pixels.
func (f *Film) Height() int { return f.height }

// AddSample accumulates one radiance sample into pixel (x, y).
func (f *Film) AddSample(x, y int, radiance core.Vec3) {
	p := &f.pixels[y*f.width+x]
	p.Color = p.Color.Add(radiance)
	p.Samples++
}

// Average returns the mean radiance at pixel (x, y), or black if no samples
// have landed there.
func (f *Film) Average(x, y int) core.Vec3 {
	p := f.pixels[y*f.width+x]
	if p.Samples == 0 {
		return core.Vec3{}
	}
	return p.Color.Multiply(1.0 / float64(p.Samples))
}

// SampleCount returns how many samples pixel (x, y) has received.
func (f *Film) SampleCount(x, y int) int {
	return f.pixels[y*f.width+x].Samples
}

// Tiles partitions the film into disjoint rectangles of at most
// tileSize x tileSize pixels, the unit of work the render loop hands to
// workers.
func (f *Film) Tiles(tileSize int) []image.Rectangle {
	if tileSize <= 0 {
		tileSize = 16
	}
	var tiles []image.Rectangle
	for y := 0; y < f.height; y += tileSize {
		for x := 0; x < f.width; x += tileSize {
			tiles = append(tiles, image.Rect(
				x, y,
				core.Min(x+tileSize, f.width),
				core.Min(y+tileSize, f.height),
			))
		}
	}
	return tiles
}
