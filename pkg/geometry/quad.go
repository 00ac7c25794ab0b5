package geometry

import (
	"math"

	"github.com/pkg/errors"

	"github.com/elixir-render/elixir/pkg/core"
)

// Quad is a parallelogram defined by a corner and two edge vectors. The
// shape is flat, so the object-to-world transform is folded into the edges
// once at construction and intersection runs directly in world space.
type Quad struct {
	Corner core.Vec3 // one corner of the quad
	U      core.Vec3 // first edge vector
	V      core.Vec3 // second edge vector
	Normal core.Vec3 // unit normal, U x V

	d float64   // plane equation constant: normal . x = d
	w core.Vec3 // cached for edge-coordinate checks
}

// NewQuad creates a quad from an object-space corner and edge vectors placed
// by the given transform. The edges must not be parallel.
func NewQuad(corner, u, v core.Vec3, objectToWorld core.Mat4) (*Quad, error) {
	corner = objectToWorld.Point(corner)
	u = objectToWorld.Vector(u)
	v = objectToWorld.Vector(v)

	cross := u.Cross(v)
	if cross.LengthSquared() < 1e-16 {
		return nil, errors.New("quad edge vectors are parallel or zero length")
	}

	normal := cross.Normalize()
	return &Quad{
		Corner: corner,
		U:      u,
		V:      v,
		Normal: normal,
		d:      normal.Dot(corner),
		w:      normal.Multiply(1.0 / normal.Dot(cross)),
	}, nil
}

// Intersect solves the ray-plane intersection and checks the two edge
// coordinates.
func (q *Quad) Intersect(ray core.Ray, tMin, tMax float64) (core.SurfaceInteraction, bool) {
	t, alpha, beta, ok := q.solve(ray, tMin, tMax)
	if !ok {
		return core.SurfaceInteraction{}, false
	}

	si := core.SurfaceInteraction{
		T:     t,
		Point: ray.At(t),
		Wo:    ray.Direction.Normalize().Negate(),
		UV:    core.NewVec2(alpha, beta),
	}
	si.SetFaceNormal(ray, q.Normal)
	return si, true
}

// HasIntersect reports whether the ray hits the quad at all.
func (q *Quad) HasIntersect(ray core.Ray, tMin, tMax float64) bool {
	_, _, _, ok := q.solve(ray, tMin, tMax)
	return ok
}

func (q *Quad) solve(ray core.Ray, tMin, tMax float64) (t, alpha, beta float64, ok bool) {
	denominator := ray.Direction.Dot(q.Normal)
	if math.Abs(denominator) < 1e-12 {
		return 0, 0, 0, false // parallel to the plane
	}

	t = (q.d - ray.Origin.Dot(q.Normal)) / denominator
	if t <= tMin || t > tMax {
		return 0, 0, 0, false
	}

	hitVector := ray.At(t).Subtract(q.Corner)
	alpha = q.w.Dot(hitVector.Cross(q.V))
	beta = q.w.Dot(q.U.Cross(hitVector))
	if alpha < 0 || alpha > 1 || beta < 0 || beta > 1 {
		return 0, 0, 0, false
	}
	return t, alpha, beta, true
}

// Area returns the quad's surface area, used by area lights for their PDF.
func (q *Quad) Area() float64 {
	return q.U.Cross(q.V).Length()
}

// PointAt returns the surface point at edge coordinates (alpha, beta) in
// [0,1]^2.
func (q *Quad) PointAt(alpha, beta float64) core.Vec3 {
	return q.Corner.Add(q.U.Multiply(alpha)).Add(q.V.Multiply(beta))
}

// BoundingBox bounds the four corners, padded so a flat quad still has a
// box with volume the BVH slab test cannot miss.
func (q *Quad) BoundingBox() core.AABB {
	const pad = 1e-4
	return core.NewAABBFromPoints(
		q.Corner,
		q.Corner.Add(q.U),
		q.Corner.Add(q.V),
		q.Corner.Add(q.U).Add(q.V),
	).Expand(pad)
}
