// Package sampler supplies the random numbers a render consumes. Samplers
// are seeded per pixel from the pixel coordinates and a global seed, so the
// final image is a deterministic function of the scene and the seed no
// matter how tiles are scheduled across workers.
package sampler

import (
	"math"
	"math/rand"

	"github.com/elixir-render/elixir/pkg/core"
)

// Stratified jitters pixel samples within a sqrt(n) x sqrt(n) stratum grid
// and falls back to plain jitter for the remainder that does not fill a
// grid. It also serves as the core.Sampler the integrator and materials
// draw from.
type Stratified struct {
	rng      *rand.Rand
	gridSize int
	samples  int
}

// NewStratified creates a sampler for one pixel.
func NewStratified(pixelX, pixelY int, globalSeed int64, samplesPerPixel int) *Stratified {
	grid := int(math.Sqrt(float64(samplesPerPixel)))
	return &Stratified{
		rng:      rand.New(rand.NewSource(pixelSeed(pixelX, pixelY, globalSeed))),
		gridSize: grid,
		samples:  samplesPerPixel,
	}
}

// pixelSeed mixes the pixel coordinates into the global seed. The exact
// constants only need to decorrelate neighboring pixels.
func pixelSeed(x, y int, globalSeed int64) int64 {
	h := uint64(globalSeed)
	h ^= uint64(x) * 0x9e3779b97f4a7c15
	h ^= uint64(y) * 0xc2b2ae3d27d4eb4f
	h ^= h >> 33
	h *= 0xff51afd7ed558ccd
	h ^= h >> 33
	return int64(h)
}

// Get1D returns a uniform sample in [0,1).
func (s *Stratified) Get1D() float64 {
	return s.rng.Float64()
}

// Get2D returns a uniform sample in [0,1)^2.
func (s *Stratified) Get2D() core.Vec2 {
	return core.NewVec2(s.rng.Float64(), s.rng.Float64())
}

// SamplePixel returns the jittered offset within the pixel for the given
// sample index. Indices inside the stratum grid jitter within their cell;
// the remainder jitters across the whole pixel.
func (s *Stratified) SamplePixel(index int) core.Vec2 {
	g := s.gridSize
	if g > 1 && index < g*g {
		cellX := index % g
		cellY := index / g
		return core.NewVec2(
			(float64(cellX)+s.rng.Float64())/float64(g),
			(float64(cellY)+s.rng.Float64())/float64(g),
		)
	}
	return s.Get2D()
}

// SampleLens returns a jittered lens sample for depth of field.
func (s *Stratified) SampleLens() core.Vec2 {
	return s.Get2D()
}

// SamplesPerPixel returns the sample budget this sampler was built for.
func (s *Stratified) SamplesPerPixel() int {
	return s.samples
}
