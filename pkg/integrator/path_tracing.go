package integrator

import (
	"math"

	"github.com/elixir-render/elixir/pkg/core"
)

// PathTracing is an iterative unidirectional path tracer with next event
// estimation: one light sample at every diffuse bounce, with emitted
// surfaces counted only when reached through the camera or a specular
// chain, so light is never gathered twice.
type PathTracing struct {
	MaxBounces int

	// RussianRouletteMinBounces is how many bounces run before stochastic
	// termination may kick in.
	RussianRouletteMinBounces int
}

// NewPathTracing creates a path tracer with the given bounce budget.
func NewPathTracing(maxBounces int) *PathTracing {
	return &PathTracing{
		MaxBounces:                maxBounces,
		RussianRouletteMinBounces: 3,
	}
}

// Li evaluates the radiance along the ray.
func (pt *PathTracing) Li(ray core.Ray, scene core.Scene, sampler core.Sampler) (core.Vec3, bool) {
	result := core.Vec3{}
	throughput := core.NewVec3(1, 1, 1)

	// The camera ray behaves like a specular predecessor: whatever it hits
	// first reports its own emission.
	prevSpecular := true

	for bounce := 0; bounce < pt.MaxBounces; bounce++ {
		si, ok := scene.Intersect(ray)
		if !ok {
			// The sky gradient is never light-sampled, so it always
			// contributes. Explicit infinite lights are handled by next
			// event estimation and only count after a specular chain.
			result = result.Add(throughput.MultiplyVec(scene.SkyRadiance(ray)))
			if prevSpecular {
				for _, light := range scene.Lights() {
					result = result.Add(throughput.MultiplyVec(light.Emit(ray)))
				}
			}
			break
		}

		if prevSpecular {
			result = result.Add(throughput.MultiplyVec(emittedAt(ray, si)))
		}

		scatter, scattered := si.Material.Scatter(ray, si, sampler)
		if !scattered {
			break // absorbed
		}

		if scatter.IsSpecular() {
			throughput = throughput.MultiplyVec(scatter.Attenuation)
			prevSpecular = true
			ray = scatter.Scattered
			continue
		}

		// Diffuse bounce: next event estimation with one light sample.
		if sample, ok := core.SampleLight(scene.Lights(), si.Point, si.Normal, sampler); ok {
			result = result.Add(throughput.MultiplyVec(lightContribution(scene, si, sample)))
		}

		cosTheta := scatter.Scattered.Direction.Dot(si.Normal)
		if cosTheta <= 0 || scatter.PDF <= 0 {
			break
		}
		throughput = throughput.MultiplyVec(scatter.Attenuation).Multiply(cosTheta / scatter.PDF)
		prevSpecular = false

		terminate, compensation := pt.russianRoulette(bounce, throughput, sampler.Get1D())
		if terminate {
			break
		}
		throughput = throughput.Multiply(compensation)

		ray = scatter.Scattered
	}

	return guard(result)
}

// russianRoulette decides whether to cut the path short once it has run its
// minimum bounces. Survival probability follows the path throughput,
// clamped to [0.5, 0.95] so the compensation factor stays within 2x.
func (pt *PathTracing) russianRoulette(bounce int, throughput core.Vec3, sample float64) (bool, float64) {
	if bounce < pt.RussianRouletteMinBounces {
		return false, 1
	}

	survival := math.Min(0.95, math.Max(0.5, throughput.Luminance()))
	if sample > survival {
		return true, 0
	}
	return false, 1 / survival
}
