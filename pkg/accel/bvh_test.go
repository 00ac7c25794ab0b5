package accel

import (
	"math"
	"math/rand"
	"testing"

	"github.com/elixir-render/elixir/pkg/core"
)

// mockPrimitive is a sphere-like primitive cheap enough to brute force,
// used to check the BVH against a linear scan.
type mockPrimitive struct {
	center core.Vec3
	radius float64
}

func (m mockPrimitive) BoundingBox() core.AABB {
	r := core.NewVec3(m.radius, m.radius, m.radius)
	return core.NewAABB(m.center.Subtract(r), m.center.Add(r))
}

func (m mockPrimitive) Intersect(ray core.Ray, tMin, tMax float64) (core.SurfaceInteraction, bool) {
	oc := ray.Origin.Subtract(m.center)
	a := ray.Direction.LengthSquared()
	halfB := oc.Dot(ray.Direction)
	c := oc.LengthSquared() - m.radius*m.radius
	disc := halfB*halfB - a*c
	if disc < 0 {
		return core.SurfaceInteraction{}, false
	}
	sqrtD := math.Sqrt(disc)
	root := (-halfB - sqrtD) / a
	if root < tMin || root > tMax {
		root = (-halfB + sqrtD) / a
		if root < tMin || root > tMax {
			return core.SurfaceInteraction{}, false
		}
	}
	p := ray.At(root)
	return core.SurfaceInteraction{Point: p, T: root}, true
}

func (m mockPrimitive) HasIntersect(ray core.Ray, tMin, tMax float64) bool {
	_, ok := m.Intersect(ray, tMin, tMax)
	return ok
}

func TestBVH_EmptyAndSingle(t *testing.T) {
	bvh := Build(nil)
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0))
	if _, ok := bvh.Intersect(ray, 0.001, 1000); ok {
		t.Error("expected no hit for empty BVH")
	}
	if bvh.AnyHit(ray, 0.001, 1000) {
		t.Error("expected no occlusion for empty BVH")
	}

	single := Build([]Primitive{mockPrimitive{center: core.NewVec3(5, 0, 0), radius: 1}})
	si, ok := single.Intersect(ray, 0.001, 1000)
	if !ok {
		t.Fatal("expected hit against single primitive")
	}
	if math.Abs(si.T-4) > 1e-6 {
		t.Errorf("expected t=4, got %f", si.T)
	}
}

func bruteForce(prims []Primitive, ray core.Ray, tMin, tMax float64) (core.SurfaceInteraction, bool) {
	var best core.SurfaceInteraction
	found := false
	closest := tMax
	for _, p := range prims {
		if si, ok := p.Intersect(ray, tMin, closest); ok {
			found = true
			closest = si.T
			best = si
		}
	}
	return best, found
}

func TestBVH_MatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	prims := make([]Primitive, 0, 1000)
	for i := 0; i < 1000; i++ {
		center := core.NewVec3(rng.Float64()*40-20, rng.Float64()*40-20, rng.Float64()*40-20)
		prims = append(prims, mockPrimitive{center: center, radius: 0.2 + rng.Float64()})
	}

	bvh := Build(prims)

	for i := 0; i < 10000; i++ {
		origin := core.NewVec3(rng.Float64()*40-20, rng.Float64()*40-20, rng.Float64()*40-20)
		dir := core.NewVec3(rng.Float64()*2-1, rng.Float64()*2-1, rng.Float64()*2-1).Normalize()
		ray := core.NewRay(origin, dir)

		gotSI, gotHit := bvh.Intersect(ray, 0.001, math.Inf(1))
		wantSI, wantHit := bruteForce(prims, ray, 0.001, math.Inf(1))

		if gotHit != wantHit {
			t.Fatalf("hit mismatch on ray %d: bvh=%v brute=%v", i, gotHit, wantHit)
		}
		if gotHit && math.Abs(gotSI.T-wantSI.T) > 1e-4 {
			t.Fatalf("t mismatch on ray %d: bvh=%f brute=%f", i, gotSI.T, wantSI.T)
		}

		gotAny := bvh.AnyHit(ray, 0.001, math.Inf(1))
		if gotAny != wantHit {
			t.Fatalf("AnyHit mismatch on ray %d: bvh=%v want=%v", i, gotAny, wantHit)
		}
	}
}

func TestBVH_SplitsBeyondLeafThreshold(t *testing.T) {
	prims := make([]Primitive, leafThreshold+4)
	for i := range prims {
		prims[i] = mockPrimitive{center: core.NewVec3(float64(i)*3, 0, 0), radius: 1}
	}
	bvh := Build(prims)
	if len(bvh.nodes) <= 1 {
		t.Errorf("expected tree to split beyond leaf threshold, got %d nodes", len(bvh.nodes))
	}
}

func TestBVH_AllCentroidsCoincide(t *testing.T) {
	// Primitives sharing one centroid cannot be partitioned; the builder
	// must emit a single leaf instead of recursing forever.
	prims := make([]Primitive, 10)
	for i := range prims {
		prims[i] = mockPrimitive{center: core.NewVec3(1, 2, 3), radius: 0.5 + float64(i)*0.1}
	}
	bvh := Build(prims)
	if len(bvh.nodes) != 1 {
		t.Errorf("coincident centroids: got %d nodes, expected a single leaf", len(bvh.nodes))
	}

	ray := core.NewRay(core.NewVec3(1, 2, -10), core.NewVec3(0, 0, 1))
	if _, ok := bvh.Intersect(ray, 0.001, math.Inf(1)); !ok {
		t.Error("forced leaf missed its primitives")
	}
}

func TestBVH_NodeBoundsContainSubtrees(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	prims := make([]Primitive, 0, 100)
	for i := 0; i < 100; i++ {
		center := core.NewVec3(rng.Float64()*20-10, rng.Float64()*20-10, rng.Float64()*20-10)
		prims = append(prims, mockPrimitive{center: center, radius: 0.1 + rng.Float64()*0.5})
	}
	bvh := Build(prims)

	contains := func(outer, inner core.AABB) bool {
		return outer.Min.X <= inner.Min.X+1e-9 && outer.Min.Y <= inner.Min.Y+1e-9 &&
			outer.Min.Z <= inner.Min.Z+1e-9 && outer.Max.X >= inner.Max.X-1e-9 &&
			outer.Max.Y >= inner.Max.Y-1e-9 && outer.Max.Z >= inner.Max.Z-1e-9
	}

	for idx, n := range bvh.nodes {
		if n.left < 0 {
			for i := n.start; i < n.end; i++ {
				if box := bvh.primitives[bvh.indices[i]].BoundingBox(); !contains(n.bounds, box) {
					t.Fatalf("leaf %d does not contain primitive %d", idx, bvh.indices[i])
				}
			}
			continue
		}
		if !contains(n.bounds, bvh.nodes[n.left].bounds) || !contains(n.bounds, bvh.nodes[n.right].bounds) {
			t.Fatalf("internal node %d does not contain its children", idx)
		}
	}
}

func TestBVH_RebuildIsDeterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(13))
	prims := make([]Primitive, 0, 64)
	for i := 0; i < 64; i++ {
		center := core.NewVec3(rng.Float64()*20-10, rng.Float64()*20-10, rng.Float64()*20-10)
		prims = append(prims, mockPrimitive{center: center, radius: 0.3})
	}

	a := Build(prims)
	b := Build(prims)
	if len(a.nodes) != len(b.nodes) {
		t.Fatalf("rebuild changed the node count: %d vs %d", len(a.nodes), len(b.nodes))
	}
	for i := range a.indices {
		if a.indices[i] != b.indices[i] {
			t.Fatalf("rebuild permuted primitive order at %d", i)
		}
	}
}

func TestBVH_FiniteWorldBoundsSkipsHugeExtent(t *testing.T) {
	prims := []Primitive{
		mockPrimitive{center: core.NewVec3(0, 0, 0), radius: 1},
		mockPrimitive{center: core.NewVec3(0, -1e6, 0), radius: 1e6},
	}
	bvh := Build(prims)
	if bvh.WorldRadius > 10 {
		t.Errorf("expected finite world radius to ignore huge-extent primitive, got %f", bvh.WorldRadius)
	}
}
