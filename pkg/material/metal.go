package material

import (
	"github.com/elixir-render/elixir/pkg/core"
)

// Metal is a specular reflector. Fuzz above zero perturbs the reflection
// vector for a brushed look; zero is a perfect mirror.
type Metal struct {
	Albedo core.Vec3
	Fuzz   float64
}

// NewMetal creates a metal material. Fuzz is clamped to [0, 1].
func NewMetal(albedo core.Vec3, fuzz float64) *Metal {
	return &Metal{Albedo: albedo, Fuzz: core.Clamp(fuzz, 0.0, 1.0)}
}

// Scatter mirrors the incoming ray about the normal. Rays fuzzed below the
// surface are absorbed.
func (m *Metal) Scatter(rayIn core.Ray, si core.SurfaceInteraction, sampler core.Sampler) (core.ScatterResult, bool) {
	reflected := core.Reflect(rayIn.Direction.Normalize(), si.Normal)
	if m.Fuzz > 0 {
		reflected = reflected.Add(core.RandomUnitVector(sampler.Get2D()).Multiply(m.Fuzz))
	}
	if reflected.Dot(si.Normal) <= 0 {
		return core.ScatterResult{}, false
	}

	return core.ScatterResult{
		Incoming:    rayIn,
		Scattered:   core.SpawnRay(si.Point, si.Normal, reflected.Normalize()),
		Attenuation: m.Albedo,
		PDF:         0, // delta distribution
	}, true
}

// EvaluateBRDF is nonzero only for the mirror direction.
func (m *Metal) EvaluateBRDF(incomingDir, outgoingDir, normal core.Vec3) core.Vec3 {
	reflected := core.Reflect(incomingDir.Normalize(), normal)
	if outgoingDir.Normalize().Subtract(reflected).Length() < 1e-3 {
		return m.Albedo
	}
	return core.Vec3{}
}

// PDF reports the delta distribution; specular surfaces cannot be sampled
// towards a light.
func (m *Metal) PDF(incomingDir, outgoingDir, normal core.Vec3) (float64, bool) {
	return 0, true
}
