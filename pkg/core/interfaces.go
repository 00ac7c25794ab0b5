package core

// Scene is the read-only view of a finalized scene that integrators and
// lights query during a render. pkg/scenegraph provides the owning
// implementation; the interface lives here so neither pkg/integrator nor
// pkg/lights has to import it.
type Scene interface {
	// Intersect returns the nearest surface interaction along the ray.
	Intersect(ray Ray) (SurfaceInteraction, bool)

	// HasIntersect reports whether anything occludes the ray within its
	// TMax, without finding the nearest hit. Shadow rays use this.
	HasIntersect(ray Ray) bool

	// SkyRadiance is the radiance carried by a ray that escaped all
	// geometry.
	SkyRadiance(ray Ray) Vec3

	// Lights returns the scene's light list for direct-light sampling.
	Lights() []Light
}

// Logger receives render progress output. A nil Logger silences it.
type Logger interface {
	Printf(format string, args ...interface{})
}
