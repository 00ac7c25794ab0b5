package geometry

import (
	"github.com/pkg/errors"

	"github.com/elixir-render/elixir/pkg/core"
)

// Box is a rectangular solid composed of six quads. The quads live in the
// box's object space, centered at the origin with precomputed outward
// normals; intersection transforms the ray into that space, walks the six
// faces, and carries the nearest hit back to the world.
type Box struct {
	objectToWorld core.Mat4
	worldToObject core.Mat4
	normalToWorld core.Mat4
	extents       core.Vec3
	faces         [6]*Quad
}

// NewBox creates a box with the given object-space extents, centered at the
// object-space origin. All extents must be positive.
func NewBox(objectToWorld core.Mat4, extents core.Vec3) (*Box, error) {
	if extents.X <= 0 || extents.Y <= 0 || extents.Z <= 0 {
		return nil, errors.Errorf("box extents must be positive, got %v", extents)
	}

	h := extents.Multiply(0.5)
	dx := core.NewVec3(extents.X, 0, 0)
	dy := core.NewVec3(0, extents.Y, 0)
	dz := core.NewVec3(0, 0, extents.Z)

	b := &Box{
		objectToWorld: objectToWorld,
		worldToObject: objectToWorld.Inverse(),
		normalToWorld: objectToWorld.InverseTranspose(),
		extents:       extents,
	}

	// Each face's edges are ordered so U x V is the outward normal.
	identity := core.Identity()
	corners := []struct{ corner, u, v core.Vec3 }{
		{core.NewVec3(h.X, -h.Y, -h.Z), dy, dz},  // +X
		{core.NewVec3(-h.X, -h.Y, -h.Z), dz, dy}, // -X
		{core.NewVec3(-h.X, h.Y, -h.Z), dz, dx},  // +Y
		{core.NewVec3(-h.X, -h.Y, -h.Z), dx, dz}, // -Y
		{core.NewVec3(-h.X, -h.Y, h.Z), dx, dy},  // +Z
		{core.NewVec3(-h.X, -h.Y, -h.Z), dy, dx}, // -Z
	}
	for i, c := range corners {
		face, err := NewQuad(c.corner, c.u, c.v, identity)
		if err != nil {
			return nil, err
		}
		b.faces[i] = face
	}
	return b, nil
}

// Intersect walks the six faces in object space, tightening tMax on each
// hit so the loop yields the nearest face.
func (b *Box) Intersect(ray core.Ray, tMin, tMax float64) (core.SurfaceInteraction, bool) {
	objRay := transformRay(b.worldToObject, ray)

	var nearest core.SurfaceInteraction
	hit := false
	for _, face := range b.faces {
		if si, ok := face.Intersect(objRay, tMin, tMax); ok {
			nearest = si
			tMax = si.T
			hit = true
		}
	}
	if !hit {
		return core.SurfaceInteraction{}, false
	}

	si := core.SurfaceInteraction{
		T:         nearest.T,
		Point:     b.objectToWorld.Point(nearest.Point),
		Wo:        ray.Direction.Normalize().Negate(),
		UV:        nearest.UV,
		FrontFace: nearest.FrontFace,
		Normal:    b.normalToWorld.Vector(nearest.Normal).Normalize(),
	}
	return si, true
}

// HasIntersect reports whether the ray hits any face.
func (b *Box) HasIntersect(ray core.Ray, tMin, tMax float64) bool {
	objRay := transformRay(b.worldToObject, ray)
	for _, face := range b.faces {
		if face.HasIntersect(objRay, tMin, tMax) {
			return true
		}
	}
	return false
}

// BoundingBox transforms the object-space extents into world space.
func (b *Box) BoundingBox() core.AABB {
	h := b.extents.Multiply(0.5)
	return transformBounds(b.objectToWorld, core.NewAABB(h.Negate(), h))
}
