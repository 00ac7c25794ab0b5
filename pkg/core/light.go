package core

// Light is a source of direct illumination a surface can sample. Concrete
// lights live in pkg/lights; the interface lives here so pkg/scenegraph and
// the sampling helpers below can operate on a scene's lights without either
// package importing the other.
type Light interface {
	// SampleLi samples a direction from point towards the light for direct
	// lighting. normal constrains infinite/area lights to the visible
	// hemisphere.
	SampleLi(point, normal Vec3, sampler Sampler) LightSample

	// PDF returns the solid-angle probability density of sampling direction
	// towards the light from point.
	PDF(point, normal, direction Vec3) float64

	// Emit evaluates the light's radiance along a ray that escaped the
	// scene without hitting any geometry. Finite lights return zero.
	Emit(ray Ray) Vec3

	// Preprocess is called once after the scene's geometric bounds are
	// known, letting infinite lights size themselves to the scene.
	Preprocess(worldCenter Vec3, worldRadius float64)
}

// LightSample is the result of sampling a light from a shading point.
type LightSample struct {
	Point      Vec3
	Normal     Vec3
	Direction  Vec3 // from the shading point towards the light
	Distance   float64
	Emission   Vec3
	PDF        float64
	Visibility VisibilityTester
}

// VisibilityTester is a deferred occlusion probe between a shading point and
// a sampled light point. The light fills it in during SampleLi; the
// integrator decides whether to pay for the shadow ray.
type VisibilityTester struct {
	P0       Vec3 // the shading point
	P0Normal Vec3 // surface normal at P0, used to spawn off the surface
	P1       Vec3 // the sampled point on the light
}

// IsOccluded reports whether any geometry blocks the segment P0 -> P1. The
// shadow ray leaves P0 offset along the normal and stops just short of P1,
// so neither endpoint surface occludes itself.
func (v VisibilityTester) IsOccluded(scene Scene) bool {
	origin := v.P0.Add(v.P0Normal.Multiply(ShadowEpsilon))
	return scene.HasIntersect(SpawnRayTo(origin, v.P1))
}
