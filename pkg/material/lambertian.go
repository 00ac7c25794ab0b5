// Package material implements the surface BSDFs the renderer ships with.
// Lambertian diffuse is the reference implementation; Metal and Dielectric
// cover the specular branch, and Emissive backs area lights.
package material

import (
	"math"

	"github.com/elixir-render/elixir/pkg/core"
)

// Lambertian is a perfectly diffuse surface.
type Lambertian struct {
	Albedo core.Vec3
}

// NewLambertian creates a diffuse material with the given reflectance.
func NewLambertian(albedo core.Vec3) *Lambertian {
	return &Lambertian{Albedo: albedo}
}

// Scatter samples a cosine-weighted direction in the hemisphere around the
// hit normal. It fails only when the sampled direction degenerates into the
// surface.
func (l *Lambertian) Scatter(rayIn core.Ray, si core.SurfaceInteraction, sampler core.Sampler) (core.ScatterResult, bool) {
	direction := core.RandomCosineHemisphere(si.Normal, sampler.Get2D())
	cosTheta := direction.Dot(si.Normal)
	if cosTheta <= 0 {
		return core.ScatterResult{}, false
	}

	return core.ScatterResult{
		Incoming:    rayIn,
		Scattered:   core.SpawnRay(si.Point, si.Normal, direction),
		Attenuation: l.Albedo.Multiply(1.0 / math.Pi),
		PDF:         cosTheta / math.Pi,
	}, true
}

// EvaluateBRDF returns albedo/pi for directions in the upper hemisphere.
func (l *Lambertian) EvaluateBRDF(incomingDir, outgoingDir, normal core.Vec3) core.Vec3 {
	if outgoingDir.Dot(normal) <= 0 {
		return core.Vec3{}
	}
	return l.Albedo.Multiply(1.0 / math.Pi)
}

// PDF returns the cosine-weighted hemisphere density.
func (l *Lambertian) PDF(incomingDir, outgoingDir, normal core.Vec3) (float64, bool) {
	cosTheta := outgoingDir.Dot(normal)
	if cosTheta <= 0 {
		return 0, false
	}
	return cosTheta / math.Pi, false
}
