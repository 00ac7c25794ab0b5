// Package integrator implements the light-transport algorithms that turn a
// primary ray into a radiance estimate.
package integrator

import "github.com/elixir-render/elixir/pkg/core"

// Integrator evaluates the radiance arriving along a primary ray.
type Integrator interface {
	// Li returns the incoming radiance. The bool reports a numeric
	// degeneracy (NaN or Inf) in the estimate; the radiance is then zero
	// and the caller counts the sample rather than crashing the render.
	Li(ray core.Ray, scene core.Scene, sampler core.Sampler) (core.Vec3, bool)
}

// guard localizes numeric degeneracies: a non-finite estimate contributes
// black and is flagged for the post-render report.
func guard(radiance core.Vec3) (core.Vec3, bool) {
	if !radiance.IsFinite() {
		return core.Vec3{}, true
	}
	return radiance, false
}

// emittedAt returns the material's own radiance if the hit surface emits.
func emittedAt(ray core.Ray, si core.SurfaceInteraction) core.Vec3 {
	if emitter, ok := si.Material.(core.Emitter); ok {
		return emitter.Emit(ray)
	}
	return core.Vec3{}
}

// lightContribution weighs one light sample at the hit point:
// f(wo,wi) * Li * |n.wi| / pdf. The shadow ray is deferred until everything
// else about the sample is known to be usable.
func lightContribution(scene core.Scene, si core.SurfaceInteraction, sample core.LightSample) core.Vec3 {
	if sample.PDF <= 0 || sample.Emission.IsZero() {
		return core.Vec3{}
	}

	cosTheta := sample.Direction.Dot(si.Normal)
	if cosTheta <= 0 {
		return core.Vec3{}
	}

	brdf := si.Material.EvaluateBRDF(si.Wo.Negate(), sample.Direction, si.Normal)
	if brdf.IsZero() {
		return core.Vec3{}
	}

	if sample.Visibility.IsOccluded(scene) {
		return core.Vec3{}
	}

	return brdf.MultiplyVec(sample.Emission).Multiply(cosTheta / sample.PDF)
}
