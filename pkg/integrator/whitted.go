package integrator

import (
	"github.com/elixir-render/elixir/pkg/core"
)

// Whitted is the classic recursive integrator: direct lighting at every
// surface, with recursion only along specular reflection and refraction.
// Diffuse interreflection is not gathered, which keeps it cheap and
// noise-free at the cost of global illumination.
type Whitted struct {
	MaxDepth int
}

// NewWhitted creates a Whitted integrator with the given recursion budget.
func NewWhitted(maxDepth int) *Whitted {
	return &Whitted{MaxDepth: maxDepth}
}

// Li evaluates the radiance along the ray.
func (w *Whitted) Li(ray core.Ray, scene core.Scene, sampler core.Sampler) (core.Vec3, bool) {
	return guard(w.li(ray, scene, sampler, w.MaxDepth))
}

func (w *Whitted) li(ray core.Ray, scene core.Scene, sampler core.Sampler, depth int) core.Vec3 {
	if depth <= 0 {
		return core.Vec3{}
	}

	si, ok := scene.Intersect(ray)
	if !ok {
		return scene.SkyRadiance(ray)
	}

	// Surface emission plus sampled direct lighting over every light.
	radiance := emittedAt(ray, si)
	for _, light := range scene.Lights() {
		sample := light.SampleLi(si.Point, si.Normal, sampler)
		radiance = radiance.Add(lightContribution(scene, si, sample))
	}

	// Specular materials additionally recurse along their scattered ray.
	scatter, scattered := si.Material.Scatter(ray, si, sampler)
	if scattered && scatter.IsSpecular() {
		incoming := w.li(scatter.Scattered, scene, sampler, depth-1)
		radiance = radiance.Add(scatter.Attenuation.MultiplyVec(incoming))
	}

	return radiance
}
