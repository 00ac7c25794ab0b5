package lights

import (
	"math"

	"github.com/elixir-render/elixir/pkg/core"
	"github.com/elixir-render/elixir/pkg/geometry"
	"github.com/elixir-render/elixir/pkg/material"
)

// QuadLight is a rectangular area light. It samples points uniformly on its
// quad and converts the area density to a solid-angle PDF at the shading
// point. The backing quad and emissive material are exposed so the scene
// can register a matching primitive for camera rays to hit.
type QuadLight struct {
	quad     *geometry.Quad
	emissive *material.Emissive
	area     float64
}

// NewQuadLight creates an area light over the quad described by the corner,
// edge vectors, and transform.
func NewQuadLight(corner, u, v core.Vec3, objectToWorld core.Mat4, radiance core.Vec3) (*QuadLight, error) {
	quad, err := geometry.NewQuad(corner, u, v, objectToWorld)
	if err != nil {
		return nil, err
	}
	return &QuadLight{
		quad:     quad,
		emissive: material.NewEmissive(radiance),
		area:     quad.Area(),
	}, nil
}

// Shape returns the backing quad.
func (ql *QuadLight) Shape() geometry.Shape { return ql.quad }

// Material returns the emissive material for the backing primitive.
func (ql *QuadLight) Material() core.Material { return ql.emissive }

// SampleLi samples a point uniformly on the quad surface.
func (ql *QuadLight) SampleLi(point, normal core.Vec3, sampler core.Sampler) core.LightSample {
	u := sampler.Get2D()
	samplePoint := ql.quad.PointAt(u.X, u.Y)

	toLight := samplePoint.Subtract(point)
	distance := toLight.Length()
	if distance < 1e-9 {
		return core.LightSample{}
	}
	direction := toLight.Multiply(1.0 / distance)

	sample := core.LightSample{
		Point:     samplePoint,
		Normal:    ql.quad.Normal,
		Direction: direction,
		Distance:  distance,
		Visibility: core.VisibilityTester{
			P0:       point,
			P0Normal: normal,
			P1:       samplePoint,
		},
	}

	// Convert the 1/area density to solid angle: pdf * d^2 / |cos|.
	cosTheta := math.Abs(ql.quad.Normal.Dot(direction))
	if cosTheta < 1e-8 {
		return sample // edge-on, PDF stays zero
	}
	sample.PDF = distance * distance / (cosTheta * ql.area)

	// The light emits from its front face only.
	if direction.Dot(ql.quad.Normal) < 0 {
		sample.Emission = ql.emissive.Radiance
	}
	return sample
}

// PDF returns the solid-angle density of sampling the given direction from
// point, or zero if the direction misses the quad.
func (ql *QuadLight) PDF(point, normal, direction core.Vec3) float64 {
	ray := core.NewRay(point, direction)
	si, ok := ql.quad.Intersect(ray, core.ShadowEpsilon, math.Inf(1))
	if !ok {
		return 0
	}

	cosTheta := math.Abs(ql.quad.Normal.Dot(direction))
	if cosTheta < 1e-8 {
		return 0
	}
	return si.T * si.T / (cosTheta * ql.area)
}

// Emit is zero for escaped rays; the backing primitive handles rays that
// actually strike the quad.
func (ql *QuadLight) Emit(ray core.Ray) core.Vec3 {
	return core.Vec3{}
}

// Preprocess is a no-op for finite lights.
func (ql *QuadLight) Preprocess(worldCenter core.Vec3, worldRadius float64) {
}
