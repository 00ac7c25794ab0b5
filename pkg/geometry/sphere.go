package geometry

import (
	"math"

	"github.com/pkg/errors"

	"github.com/elixir-render/elixir/pkg/core"
)

// Sphere is a sphere of the given radius centered at the object-space
// origin. The transform is expected to carry the sphere to its world
// position; the object-space bounds are always [-r,r]^3, so a sphere built
// with the identity transform sits at the world origin.
type Sphere struct {
	objectToWorld core.Mat4
	worldToObject core.Mat4
	normalToWorld core.Mat4
	radius        float64
}

// NewSphere creates a sphere. The radius must be positive.
func NewSphere(objectToWorld core.Mat4, radius float64) (*Sphere, error) {
	if radius <= 0 {
		return nil, errors.Errorf("sphere radius must be positive, got %g", radius)
	}
	return &Sphere{
		objectToWorld: objectToWorld,
		worldToObject: objectToWorld.Inverse(),
		normalToWorld: objectToWorld.InverseTranspose(),
		radius:        radius,
	}, nil
}

// solve finds the nearest quadratic root in (tMin, tMax] for the
// object-space ray, preferring the closer intersection.
func (s *Sphere) solve(objRay core.Ray, tMin, tMax float64) (float64, bool) {
	oc := objRay.Origin
	a := objRay.Direction.LengthSquared()
	halfB := oc.Dot(objRay.Direction)
	c := oc.LengthSquared() - s.radius*s.radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return 0, false
	}

	sqrtD := math.Sqrt(discriminant)
	root := (-halfB - sqrtD) / a
	if root <= tMin || root > tMax {
		root = (-halfB + sqrtD) / a
		if root <= tMin || root > tMax {
			return 0, false
		}
	}
	return root, true
}

// Intersect tests the world-space ray against the sphere.
func (s *Sphere) Intersect(ray core.Ray, tMin, tMax float64) (core.SurfaceInteraction, bool) {
	objRay := transformRay(s.worldToObject, ray)
	root, ok := s.solve(objRay, tMin, tMax)
	if !ok {
		return core.SurfaceInteraction{}, false
	}

	objPoint := objRay.At(root)
	objNormal := objPoint.Multiply(1.0 / s.radius)

	si := core.SurfaceInteraction{
		T:     root,
		Point: s.objectToWorld.Point(objPoint),
		Wo:    ray.Direction.Normalize().Negate(),
		UV:    sphereUV(objNormal),
	}
	si.SetFaceNormal(ray, s.normalToWorld.Vector(objNormal).Normalize())
	return si, true
}

// HasIntersect reports whether the ray hits the sphere at all.
func (s *Sphere) HasIntersect(ray core.Ray, tMin, tMax float64) bool {
	_, ok := s.solve(transformRay(s.worldToObject, ray), tMin, tMax)
	return ok
}

// BoundingBox transforms the eight corners of the object-space box [-r,r]^3
// and re-bounds them.
func (s *Sphere) BoundingBox() core.AABB {
	r := core.NewVec3(s.radius, s.radius, s.radius)
	return transformBounds(s.objectToWorld, core.NewAABB(r.Negate(), r))
}

// sphereUV maps a unit-sphere normal to spherical coordinates.
func sphereUV(n core.Vec3) core.Vec2 {
	theta := math.Acos(core.Clamp(-n.Y, -1, 1))
	phi := math.Atan2(-n.Z, n.X) + math.Pi
	return core.NewVec2(phi/(2*math.Pi), theta/math.Pi)
}
