package material

import (
	"math"

	"github.com/elixir-render/elixir/pkg/core"
)

// Dielectric is a clear refractive material such as glass. Each scatter
// chooses between reflection and refraction by the Fresnel reflectance.
type Dielectric struct {
	RefractiveIndex float64
}

// NewDielectric creates a dielectric with the given index of refraction
// (1.5 is typical window glass).
func NewDielectric(refractiveIndex float64) *Dielectric {
	return &Dielectric{RefractiveIndex: refractiveIndex}
}

// Scatter refracts the ray through the surface, or reflects it on total
// internal reflection or a Fresnel coin flip.
func (d *Dielectric) Scatter(rayIn core.Ray, si core.SurfaceInteraction, sampler core.Sampler) (core.ScatterResult, bool) {
	etaRatio := d.RefractiveIndex
	if si.FrontFace {
		etaRatio = 1.0 / d.RefractiveIndex
	}

	unitDirection := rayIn.Direction.Normalize()
	cosTheta := math.Min(unitDirection.Negate().Dot(si.Normal), 1.0)

	direction, refracted := core.Refract(unitDirection, si.Normal, etaRatio)
	if !refracted || core.SchlickReflectance(cosTheta, etaRatio) > sampler.Get1D() {
		direction = core.Reflect(unitDirection, si.Normal)
	}

	return core.ScatterResult{
		Incoming:    rayIn,
		Scattered:   core.SpawnRay(si.Point, si.Normal, direction),
		Attenuation: core.NewVec3(1, 1, 1), // clear glass absorbs nothing
		PDF:         0,                     // delta distribution
	}, true
}

// EvaluateBRDF is zero everywhere: both lobes are delta functions.
func (d *Dielectric) EvaluateBRDF(incomingDir, outgoingDir, normal core.Vec3) core.Vec3 {
	return core.Vec3{}
}

// PDF reports the delta distribution.
func (d *Dielectric) PDF(incomingDir, outgoingDir, normal core.Vec3) (float64, bool) {
	return 0, true
}
