// Package scenegraph owns the renderable world: primitives, lights,
// materials, and the acceleration structure built over them. The scene is
// mutable only during setup; InitAccelerator freezes it for rendering.
package scenegraph

import (
	"github.com/pkg/errors"

	"github.com/elixir-render/elixir/pkg/accel"
	"github.com/elixir-render/elixir/pkg/core"
	"github.com/elixir-render/elixir/pkg/geometry"
	"github.com/elixir-render/elixir/pkg/lights"
	"github.com/elixir-render/elixir/pkg/primitive"
)

// ErrSceneConstruction marks geometry rejected at add-time: degenerate
// bounds, nil shapes or materials.
var ErrSceneConstruction = errors.New("scene construction error")

// Scene owns every primitive, light, and material in the world, plus the
// BVH built over the primitives. Any mutation marks the scene dirty;
// rendering requires a clean scene, re-established by InitAccelerator.
type Scene struct {
	primitives  []primitive.Primitive
	lights      []core.Light
	materials   []core.Material
	accelerator *accel.BVH
	dirty       bool

	horizon core.Vec3
	zenith  core.Vec3
}

// New creates an empty, dirty scene with the default sky gradient.
// InitAccelerator must run before the first render even when no geometry
// is added.
func New() *Scene {
	return &Scene{
		dirty:   true,
		horizon: core.NewVec3(1, 1, 1),
		zenith:  core.NewVec3(0.5, 0.7, 1.0),
	}
}

// AddMaterial registers a material with the scene, which keeps it alive for
// the primitives that borrow it. The material is returned for convenience
// so setup code can pass it straight to AddPrimitive.
func (s *Scene) AddMaterial(m core.Material) core.Material {
	s.materials = append(s.materials, m)
	s.dirty = true
	return m
}

// AddPrimitive attaches a shape and material pair to the scene. Shapes with
// invalid or degenerate world bounds are rejected.
func (s *Scene) AddPrimitive(shape geometry.Shape, m core.Material) error {
	if shape == nil {
		return errors.Wrap(ErrSceneConstruction, "nil shape")
	}
	if m == nil {
		return errors.Wrap(ErrSceneConstruction, "nil material")
	}

	box := shape.BoundingBox()
	if !box.IsValid() {
		return errors.Wrapf(ErrSceneConstruction, "shape bounds are inverted: %v %v", box.Min, box.Max)
	}
	if box.IsDegenerate() {
		return errors.Wrapf(ErrSceneConstruction, "shape bounds have zero extent: %v %v", box.Min, box.Max)
	}

	s.primitives = append(s.primitives, primitive.New(shape, m))
	s.dirty = true
	return nil
}

// AddLight registers a light. The scene is the light's single owner; there
// is no borrowing entry point.
func (s *Scene) AddLight(light core.Light) error {
	if light == nil {
		return errors.Wrap(ErrSceneConstruction, "nil light")
	}
	s.lights = append(s.lights, light)
	s.dirty = true
	return nil
}

// AddQuadLight registers an area light together with the backing emissive
// primitive camera rays see when they strike the panel directly.
func (s *Scene) AddQuadLight(corner, u, v core.Vec3, objectToWorld core.Mat4, radiance core.Vec3) error {
	light, err := lights.NewQuadLight(corner, u, v, objectToWorld, radiance)
	if err != nil {
		return errors.Wrap(ErrSceneConstruction, err.Error())
	}
	if err := s.AddPrimitive(light.Shape(), s.AddMaterial(light.Material())); err != nil {
		return err
	}
	return s.AddLight(light)
}

// SetSky replaces the gradient colors rays receive when they miss all
// geometry.
func (s *Scene) SetSky(horizon, zenith core.Vec3) {
	s.horizon = horizon
	s.zenith = zenith
}

// InitAccelerator builds the BVH over the current primitive set, lets every
// light size itself against the finite scene bounds, and clears the dirty
// flag.
func (s *Scene) InitAccelerator() {
	prims := make([]accel.Primitive, len(s.primitives))
	for i := range s.primitives {
		prims[i] = s.primitives[i]
	}
	s.accelerator = accel.Build(prims)

	for _, light := range s.lights {
		light.Preprocess(s.accelerator.WorldCenter, s.accelerator.WorldRadius)
	}
	s.dirty = false
}

// Dirty reports whether a mutation has invalidated the accelerator.
func (s *Scene) Dirty() bool { return s.dirty }

// Lights returns the scene's lights.
func (s *Scene) Lights() []core.Light { return s.lights }

// PrimitiveCount returns how many primitives the scene owns.
func (s *Scene) PrimitiveCount() int { return len(s.primitives) }

// Intersect returns the nearest surface interaction along the ray, walking
// the BVH.
func (s *Scene) Intersect(ray core.Ray) (core.SurfaceInteraction, bool) {
	if s.accelerator == nil {
		return core.SurfaceInteraction{}, false
	}
	return s.accelerator.Intersect(ray, core.ShadowEpsilon, ray.TMax)
}

// HasIntersect reports whether anything occludes the ray within its TMax.
func (s *Scene) HasIntersect(ray core.Ray) bool {
	if s.accelerator == nil {
		return false
	}
	return s.accelerator.AnyHit(ray, core.ShadowEpsilon, ray.TMax)
}

// SkyRadiance evaluates the directional gradient for rays that escaped all
// geometry.
func (s *Scene) SkyRadiance(ray core.Ray) core.Vec3 {
	dir := ray.Direction.Normalize()
	t := core.Clamp((dir.Y+0.5)/1.2, 0.0, 1.0)
	return s.horizon.Multiply(1 - t).Add(s.zenith.Multiply(t))
}
