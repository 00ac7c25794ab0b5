package core

// Sampler supplies the random numbers an integrator and its materials
// consume for a single pixel sample. Implementations seed deterministically
// from (pixelX, pixelY, globalSeed) so a render is reproducible.
type Sampler interface {
	Get1D() float64
	Get2D() Vec2
}

// SurfaceInteraction describes a ray-primitive intersection. It is
// material-agnostic coming out of a Shape; pkg/primitive stamps the Material
// field before handing the interaction to an integrator.
type SurfaceInteraction struct {
	Point     Vec3
	Normal    Vec3
	Wo        Vec3 // direction back towards the ray origin
	T         float64
	UV        Vec2
	FrontFace bool
	Material  Material
}

// SetFaceNormal orients Normal against the incoming ray and records which
// face was hit.
func (si *SurfaceInteraction) SetFaceNormal(ray Ray, outwardNormal Vec3) {
	si.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if si.FrontFace {
		si.Normal = outwardNormal
	} else {
		si.Normal = outwardNormal.Negate()
	}
}

// Material is a surface BSDF: it scatters an incoming ray into an outgoing
// one, and can evaluate its own BRDF and PDF for a chosen direction so an
// integrator can weigh a sampled light direction against the surface.
type Material interface {
	Scatter(rayIn Ray, si SurfaceInteraction, sampler Sampler) (ScatterResult, bool)
	EvaluateBRDF(incomingDir, outgoingDir, normal Vec3) Vec3
	// PDF returns the solid-angle probability density of sampling
	// outgoingDir, and whether this material is a delta distribution
	// (specular), which has no well-defined PDF and cannot be lit directly.
	PDF(incomingDir, outgoingDir, normal Vec3) (pdf float64, isDelta bool)
}

// Emitter is implemented by materials that radiate light on their own,
// independent of any incoming illumination.
type Emitter interface {
	Emit(rayIn Ray) Vec3
}

// ScatterResult is the outcome of Material.Scatter.
type ScatterResult struct {
	Incoming    Ray
	Scattered   Ray
	Attenuation Vec3
	PDF         float64 // 0 for specular (delta) scattering
}

// IsSpecular reports whether this scatter event has no well-defined PDF.
func (s ScatterResult) IsSpecular() bool {
	return s.PDF <= 0
}
