// Package accel implements the spatial acceleration structure used to cut
// ray-scene intersection from O(n) to O(log n).
package accel

import (
	"sort"

	"github.com/elixir-render/elixir/pkg/core"
)

// Primitive is the narrow surface the BVH needs from a scene primitive. It
// lets the accelerator stay decoupled from pkg/primitive's concrete type.
type Primitive interface {
	BoundingBox() core.AABB
	Intersect(ray core.Ray, tMin, tMax float64) (core.SurfaceInteraction, bool)
	HasIntersect(ray core.Ray, tMin, tMax float64) bool
}

// leafThreshold bounds how many primitives a leaf may hold before the
// builder tries to split it further.
const leafThreshold = 4

// node is a BVH tree node. Leaves store a [start, end) range into the BVH's
// own index slice rather than primitive pointers, so the tree can be
// rebuilt or serialized without carrying dangling references into the
// scene's primitive slice.
type node struct {
	bounds      core.AABB
	left, right int32 // child node indices, -1 if this is a leaf
	start, end  int32 // primitive index range, valid only for leaves
	axis        int8  // split axis, used to order traversal
}

// BVH is a bounding volume hierarchy over a fixed set of primitives.
type BVH struct {
	primitives []Primitive
	indices    []int32
	nodes      []node

	// WorldCenter/WorldRadius summarize the finite scene bounds (shapes
	// with extreme extent, e.g. unbounded planes, are excluded) for
	// infinite lights to size themselves against.
	WorldCenter core.Vec3
	WorldRadius float64
}

// Build constructs a BVH over the given primitives. The BVH keeps a
// reference to the primitive slice and reorders only its own index slice,
// so the caller must not modify the primitives afterwards.
func Build(primitives []Primitive) *BVH {
	b := &BVH{primitives: primitives}
	if len(primitives) == 0 {
		return b
	}

	b.indices = make([]int32, len(primitives))
	bounds := make([]core.AABB, len(primitives))
	centers := make([]core.Vec3, len(primitives))
	for i, p := range primitives {
		b.indices[i] = int32(i)
		bounds[i] = p.BoundingBox()
		centers[i] = bounds[i].Center()
	}

	b.nodes = make([]node, 0, 2*len(primitives))
	b.build(0, int32(len(primitives)), bounds, centers)
	b.WorldCenter, b.WorldRadius = finiteWorldBounds(bounds)
	return b
}

// build recursively partitions indices[start:end] in place and appends the
// resulting subtree to b.nodes, returning the new node's index.
func (b *BVH) build(start, end int32, bounds []core.AABB, centers []core.Vec3) int32 {
	nodeIdx := int32(len(b.nodes))
	b.nodes = append(b.nodes, node{})

	var box core.AABB
	for i := start; i < end; i++ {
		box = unionOrSelf(box, bounds[b.indices[i]], i == start)
	}

	count := end - start
	if count <= leafThreshold {
		b.nodes[nodeIdx] = node{bounds: box, left: -1, right: -1, start: start, end: end}
		return nodeIdx
	}

	axis, ok := chooseSplitAxis(b.indices[start:end], centers)
	if !ok {
		b.nodes[nodeIdx] = node{bounds: box, left: -1, right: -1, start: start, end: end}
		return nodeIdx
	}

	// Equal-counts median split: sort the index range by centroid on the
	// chosen axis and divide it evenly. This bounds tree depth to O(log n)
	// regardless of how primitives cluster in space.
	slice := b.indices[start:end]
	sort.Slice(slice, func(i, j int) bool {
		return centers[slice[i]].Component(axis) < centers[slice[j]].Component(axis)
	})

	mid := start + count/2
	left := b.build(start, mid, bounds, centers)
	right := b.build(mid, end, bounds, centers)
	b.nodes[nodeIdx] = node{bounds: box, left: left, right: right, axis: int8(axis)}
	return nodeIdx
}

func unionOrSelf(acc, box core.AABB, first bool) core.AABB {
	if first {
		return box
	}
	return acc.Union(box)
}

// chooseSplitAxis picks the longest axis of the centroid bounds of the given
// indices. It falls back across axes if the longest one is degenerate
// (all centroids coincide), and reports false only if every axis is.
func chooseSplitAxis(indices []int32, centers []core.Vec3) (int, bool) {
	var centroidBounds core.AABB
	for i, idx := range indices {
		p := centers[idx]
		if i == 0 {
			centroidBounds = core.NewAABB(p, p)
			continue
		}
		centroidBounds = centroidBounds.Union(core.NewAABB(p, p))
	}

	size := centroidBounds.Size()
	axes := []int{centroidBounds.LongestAxis()}
	for _, a := range []int{0, 1, 2} {
		if a != axes[0] {
			axes = append(axes, a)
		}
	}
	for _, axis := range axes {
		if size.Component(axis) > 1e-12 {
			return axis, true
		}
	}
	return 0, false
}

// stackCap bounds the explicit traversal stack. A balanced tree over even
// a billion primitives never approaches this depth.
const stackCap = 64

// Intersect returns the nearest primitive intersection within [tMin, tMax].
func (b *BVH) Intersect(ray core.Ray, tMin, tMax float64) (core.SurfaceInteraction, bool) {
	if len(b.nodes) == 0 {
		return core.SurfaceInteraction{}, false
	}

	var stack [stackCap]int32
	sp := 0
	stack[sp] = 0
	sp++

	var closest core.SurfaceInteraction
	hitAnything := false
	closestSoFar := tMax

	for sp > 0 {
		sp--
		n := &b.nodes[stack[sp]]
		if !n.bounds.Hit(ray, tMin, closestSoFar) {
			continue
		}

		if n.left < 0 {
			for i := n.start; i < n.end; i++ {
				if si, ok := b.primitives[b.indices[i]].Intersect(ray, tMin, closestSoFar); ok {
					hitAnything = true
					closestSoFar = si.T
					closest = si
				}
			}
			continue
		}

		// Push the far child first so the near child (by ray direction
		// sign on the split axis) is processed first and tightens
		// closestSoFar before the far child's box test.
		near, far := n.left, n.right
		if ray.Direction.Component(int(n.axis)) < 0 {
			near, far = far, near
		}
		stack[sp] = far
		sp++
		stack[sp] = near
		sp++
	}

	return closest, hitAnything
}

// AnyHit reports whether any primitive occludes the ray within [tMin, tMax],
// without finding the nearest one. Used for shadow/occlusion queries where
// the exact hit point is irrelevant.
func (b *BVH) AnyHit(ray core.Ray, tMin, tMax float64) bool {
	if len(b.nodes) == 0 {
		return false
	}

	var stack [stackCap]int32
	sp := 0
	stack[sp] = 0
	sp++

	for sp > 0 {
		sp--
		n := &b.nodes[stack[sp]]
		if !n.bounds.Hit(ray, tMin, tMax) {
			continue
		}

		if n.left < 0 {
			for i := n.start; i < n.end; i++ {
				if b.primitives[b.indices[i]].HasIntersect(ray, tMin, tMax) {
					return true
				}
			}
			continue
		}

		stack[sp] = n.right
		sp++
		stack[sp] = n.left
		sp++
	}

	return false
}

// finiteWorldBounds bounds the scene's finite geometry only, skipping
// shapes with extreme extent (e.g. ground planes modeled as huge boxes)
// that would otherwise blow up the radius infinite lights size against.
func finiteWorldBounds(bounds []core.AABB) (core.Vec3, float64) {
	var finite core.AABB
	has := false
	for _, box := range bounds {
		size := box.Size()
		if size.X > 1e5 || size.Y > 1e5 || size.Z > 1e5 {
			continue
		}
		if !has {
			finite = box
			has = true
		} else {
			finite = finite.Union(box)
		}
	}
	if !has {
		return core.Vec3{}, 0
	}
	center := finite.Center()
	return center, finite.Max.Subtract(center).Length()
}
