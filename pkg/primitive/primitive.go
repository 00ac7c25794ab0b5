// Package primitive binds a shape to a material. Primitives are what the
// scene owns and what the accelerator is built over.
package primitive

import (
	"github.com/elixir-render/elixir/pkg/core"
	"github.com/elixir-render/elixir/pkg/geometry"
)

// Primitive pairs one shape with one material. Intersection queries forward
// to the shape; a successful hit comes back stamped with the material so the
// integrator can scatter off it.
type Primitive struct {
	Shape    geometry.Shape
	Material core.Material
}

// New creates a primitive from a shape and a material.
func New(shape geometry.Shape, material core.Material) Primitive {
	return Primitive{Shape: shape, Material: material}
}

// Intersect forwards to the shape and records the material on the
// interaction.
func (p Primitive) Intersect(ray core.Ray, tMin, tMax float64) (core.SurfaceInteraction, bool) {
	si, ok := p.Shape.Intersect(ray, tMin, tMax)
	if !ok {
		return core.SurfaceInteraction{}, false
	}
	si.Material = p.Material
	return si, true
}

// HasIntersect forwards the occlusion query to the shape.
func (p Primitive) HasIntersect(ray core.Ray, tMin, tMax float64) bool {
	return p.Shape.HasIntersect(ray, tMin, tMax)
}

// BoundingBox forwards to the shape.
func (p Primitive) BoundingBox() core.AABB {
	return p.Shape.BoundingBox()
}
