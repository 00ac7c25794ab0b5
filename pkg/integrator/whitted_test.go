package integrator

import (
	"math"
	"testing"

	"github.com/elixir-render/elixir/pkg/core"
	"github.com/elixir-render/elixir/pkg/geometry"
	"github.com/elixir-render/elixir/pkg/lights"
	"github.com/elixir-render/elixir/pkg/material"
	"github.com/elixir-render/elixir/pkg/sampler"
	"github.com/elixir-render/elixir/pkg/scenegraph"
)

// floorScene is a diffuse ground quad at y=0 with a point light overhead.
func floorScene(t *testing.T) *scenegraph.Scene {
	t.Helper()
	scene := scenegraph.New()
	scene.SetSky(core.Vec3{}, core.Vec3{})

	floor, err := geometry.NewQuad(
		core.NewVec3(-10, 0, -10),
		core.NewVec3(20, 0, 0),
		core.NewVec3(0, 0, 20),
		core.Identity(),
	)
	if err != nil {
		t.Fatal(err)
	}
	mat := scene.AddMaterial(material.NewLambertian(core.NewVec3(0.8, 0.8, 0.8)))
	if err := scene.AddPrimitive(floor, mat); err != nil {
		t.Fatal(err)
	}
	if err := scene.AddLight(lights.NewPointLight(core.NewVec3(0, 5, 0), core.NewVec3(50, 50, 50))); err != nil {
		t.Fatal(err)
	}
	return scene
}

func TestWhitted_DirectLighting(t *testing.T) {
	scene := floorScene(t)
	scene.InitAccelerator()

	w := NewWhitted(2)
	smp := sampler.NewStratified(0, 0, 5, 1)

	// Straight down at the lit floor under the light.
	li, degenerate := w.Li(core.NewRay(core.NewVec3(0, 3, 0), core.NewVec3(0, -1, 0)), scene, smp)
	if degenerate {
		t.Fatal("degenerate")
	}
	if li.IsZero() {
		t.Fatal("lit floor is black")
	}

	// Expected: (albedo/pi) * I/d^2 * cos, with the light straight above.
	want := 0.8 / math.Pi * 50.0 / 25.0 * 1.0
	if math.Abs(li.X-want) > 1e-9 {
		t.Errorf("direct lighting: got %f, expected %f", li.X, want)
	}
}

func TestWhitted_ShadowedPointIsDark(t *testing.T) {
	scene := floorScene(t)

	// A blocker between the floor point and the light.
	blocker, err := geometry.NewSphere(core.Translate(core.NewVec3(0, 2.5, 0)), 0.5)
	if err != nil {
		t.Fatal(err)
	}
	if err := scene.AddPrimitive(blocker, scene.AddMaterial(material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))); err != nil {
		t.Fatal(err)
	}
	scene.InitAccelerator()

	w := NewWhitted(2)
	smp := sampler.NewStratified(0, 0, 5, 1)

	// A slanted ray reaches the floor at the origin without touching the
	// blocker; the light above is occluded there.
	li, _ := w.Li(core.NewRay(core.NewVec3(3, 3, 0), core.NewVec3(-1, -1, 0).Normalize()), scene, smp)
	if !li.IsZero() {
		t.Errorf("shadowed floor point not dark: %v", li)
	}
}

func TestWhitted_MirrorRecursion(t *testing.T) {
	// Two facing mirrors: the specular recursion must stop at the depth
	// budget instead of bouncing forever.
	facing := scenegraph.New()
	facing.SetSky(core.Vec3{}, core.Vec3{})
	mirrorMat := facing.AddMaterial(material.NewMetal(core.NewVec3(0.9, 0.9, 0.9), 0))
	for _, z := range []float64{-1, 1} {
		q, err := geometry.NewQuad(
			core.NewVec3(-5, -5, 0),
			core.NewVec3(10, 0, 0),
			core.NewVec3(0, 10, 0),
			core.Translate(core.NewVec3(0, 0, z)),
		)
		if err != nil {
			t.Fatal(err)
		}
		if err := facing.AddPrimitive(q, mirrorMat); err != nil {
			t.Fatal(err)
		}
	}
	facing.InitAccelerator()

	w := NewWhitted(8)
	smp := sampler.NewStratified(0, 0, 5, 1)
	li, degenerate := w.Li(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1)), facing, smp)
	if degenerate {
		t.Fatal("mirror corridor degenerate")
	}
	// Black sky, no lights: the corridor converges to black instead of
	// recursing forever.
	if !li.IsZero() {
		t.Errorf("mirror corridor radiance: %v", li)
	}
}

func TestWhitted_DepthZeroIsBlack(t *testing.T) {
	scene := floorScene(t)
	scene.InitAccelerator()

	w := NewWhitted(0)
	smp := sampler.NewStratified(0, 0, 5, 1)
	li, _ := w.Li(core.NewRay(core.NewVec3(0, 3, 0), core.NewVec3(0, -1, 0)), scene, smp)
	if !li.IsZero() {
		t.Errorf("depth 0: got %v", li)
	}
}

func TestWhitted_EmissiveSurfaceShowsItsRadiance(t *testing.T) {
	scene := scenegraph.New()
	scene.SetSky(core.Vec3{}, core.Vec3{})
	if err := scene.AddQuadLight(
		core.NewVec3(-1, -1, 0),
		core.NewVec3(0, 2, 0),
		core.NewVec3(2, 0, 0),
		core.Identity(),
		core.NewVec3(3, 3, 3),
	); err != nil {
		t.Fatal(err)
	}
	scene.InitAccelerator()

	w := NewWhitted(2)
	smp := sampler.NewStratified(0, 0, 5, 1)
	li, _ := w.Li(core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1)), scene, smp)
	if !li.Equals(core.NewVec3(3, 3, 3)) {
		t.Errorf("looking at the panel: got %v, expected its radiance", li)
	}
}
