// Package lights implements the light sources the integrators sample for
// direct illumination. Every light satisfies core.Light; the integrator
// never sees a concrete light type.
package lights

import (
	"github.com/elixir-render/elixir/pkg/core"
)

// PointLight emits uniformly in all directions from a single point, with
// inverse-square falloff. It is a delta light: SampleLi always returns the
// one possible direction with PDF 1, and PDF reports 0 because no sampled
// direction can hit a point.
type PointLight struct {
	Position  core.Vec3
	Intensity core.Vec3 // radiant intensity, per unit solid angle
}

// NewPointLight creates a point light.
func NewPointLight(position, intensity core.Vec3) *PointLight {
	return &PointLight{Position: position, Intensity: intensity}
}

// SampleLi returns the single direction towards the light.
func (pl *PointLight) SampleLi(point, normal core.Vec3, sampler core.Sampler) core.LightSample {
	toLight := pl.Position.Subtract(point)
	distance := toLight.Length()
	if distance < 1e-9 {
		return core.LightSample{}
	}
	direction := toLight.Multiply(1.0 / distance)

	return core.LightSample{
		Point:     pl.Position,
		Normal:    direction.Negate(),
		Direction: direction,
		Distance:  distance,
		Emission:  pl.Intensity.Multiply(1.0 / (distance * distance)),
		PDF:       1,
		Visibility: core.VisibilityTester{
			P0:       point,
			P0Normal: normal,
			P1:       pl.Position,
		},
	}
}

// PDF is zero: a sampled direction has no chance of hitting a point.
func (pl *PointLight) PDF(point, normal, direction core.Vec3) float64 {
	return 0
}

// Emit is zero: escaping rays cannot hit a point light.
func (pl *PointLight) Emit(ray core.Ray) core.Vec3 {
	return core.Vec3{}
}

// Preprocess is a no-op for finite lights.
func (pl *PointLight) Preprocess(worldCenter core.Vec3, worldRadius float64) {
}
