// Package geometry provides the intersectable surfaces a scene is built
// from. Shapes solve their intersection in object space; a core.Mat4 placed
// on the shape at construction carries them into the world.
package geometry

import "github.com/elixir-render/elixir/pkg/core"

// Shape is a surface that rays can be tested against. All three operations
// take and return world-space values.
type Shape interface {
	// Intersect returns the nearest interaction in (tMin, tMax].
	Intersect(ray core.Ray, tMin, tMax float64) (core.SurfaceInteraction, bool)

	// HasIntersect reports whether the ray hits the shape at all within
	// (tMin, tMax], skipping the work of building an interaction record.
	HasIntersect(ray core.Ray, tMin, tMax float64) bool

	// BoundingBox returns the shape's world-space bounds.
	BoundingBox() core.AABB
}

// transformRay maps a world-space ray into another space. The parametric
// range is preserved: m(ray).At(t) == m(ray.At(t)) for an affine m, so t
// values found in object space are valid on the world ray.
func transformRay(m core.Mat4, ray core.Ray) core.Ray {
	return core.Ray{
		Origin:    m.Point(ray.Origin),
		Direction: m.Vector(ray.Direction),
		TMax:      ray.TMax,
	}
}

// transformBounds re-bounds the eight corners of box under m.
func transformBounds(m core.Mat4, box core.AABB) core.AABB {
	world := make([]core.Vec3, 0, 8)
	for _, c := range box.Corners() {
		world = append(world, m.Point(c))
	}
	return core.NewAABBFromPoints(world...)
}
