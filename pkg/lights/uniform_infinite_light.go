package lights

import (
	"math"

	"github.com/elixir-render/elixir/pkg/core"
)

// UniformInfiniteLight surrounds the scene with a constant-radiance
// environment. It learns the scene's extent in Preprocess so its visibility
// probes can park their far endpoint outside all geometry.
type UniformInfiniteLight struct {
	emission    core.Vec3
	worldCenter core.Vec3
	worldRadius float64
}

// NewUniformInfiniteLight creates a uniform environment light.
func NewUniformInfiniteLight(emission core.Vec3) *UniformInfiniteLight {
	// A placeholder radius until Preprocess sees the real scene bounds.
	return &UniformInfiniteLight{emission: emission, worldRadius: 1e4}
}

// SampleLi samples the visible hemisphere cosine-weighted, since the cosine
// term of the rendering equation cancels against that density.
func (il *UniformInfiniteLight) SampleLi(point, normal core.Vec3, sampler core.Sampler) core.LightSample {
	direction := core.RandomCosineHemisphere(normal, sampler.Get2D())
	cosTheta := direction.Dot(normal)

	// A point far enough along the direction to clear all scene geometry.
	farPoint := point.Add(direction.Multiply(2 * il.worldRadius))

	return core.LightSample{
		Point:     farPoint,
		Normal:    direction.Negate(),
		Direction: direction,
		Distance:  math.Inf(1),
		Emission:  il.emission,
		PDF:       cosTheta / math.Pi,
		Visibility: core.VisibilityTester{
			P0:       point,
			P0Normal: normal,
			P1:       farPoint,
		},
	}
}

// PDF returns the cosine-weighted hemisphere density.
func (il *UniformInfiniteLight) PDF(point, normal, direction core.Vec3) float64 {
	cosTheta := direction.Dot(normal)
	if cosTheta <= 0 {
		return 0
	}
	return cosTheta / math.Pi
}

// Emit returns the environment radiance for any escaped ray.
func (il *UniformInfiniteLight) Emit(ray core.Ray) core.Vec3 {
	return il.emission
}

// Preprocess inflates the light's working radius from the scene bounds.
func (il *UniformInfiniteLight) Preprocess(worldCenter core.Vec3, worldRadius float64) {
	il.worldCenter = worldCenter
	if worldRadius > 0 {
		il.worldRadius = worldRadius
	}
}
