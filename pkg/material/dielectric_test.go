package material

import (
	"testing"

	"github.com/elixir-render/elixir/pkg/core"
)

func TestDielectric_NormalIncidencePassesThrough(t *testing.T) {
	d := NewDielectric(1.5)
	sampler := newTestSampler(11)

	rayIn := core.NewRay(core.NewVec3(0, 5, 0), core.NewVec3(0, -1, 0))
	passed := 0
	for i := 0; i < 200; i++ {
		scatter, ok := d.Scatter(rayIn, surfaceHit(core.NewVec3(0, 1, 0)), sampler)
		if !ok {
			t.Fatal("dielectric absorbed a ray")
		}
		if !scatter.IsSpecular() {
			t.Fatal("dielectric scatter not specular")
		}
		if scatter.Scattered.Direction.Y < 0 {
			passed++
			// Straight-on refraction does not bend.
			if scatter.Scattered.Direction.Subtract(core.NewVec3(0, -1, 0)).Length() > 1e-9 {
				t.Fatalf("normal-incidence refraction bent: %v", scatter.Scattered.Direction)
			}
		}
	}
	// Schlick at normal incidence for n=1.5 reflects only 4%.
	if passed < 150 {
		t.Errorf("only %d/200 rays refracted at normal incidence", passed)
	}
}

func TestDielectric_TotalInternalReflection(t *testing.T) {
	d := NewDielectric(1.5)
	sampler := newTestSampler(13)

	// Exiting glass at a grazing angle, beyond the critical angle
	// (~41.8 degrees): every sample must reflect back inside.
	si := core.SurfaceInteraction{
		Point:     core.Vec3{},
		Normal:    core.NewVec3(0, -1, 0), // oriented against the ray by SetFaceNormal
		FrontFace: false,                  // hitting the surface from inside
	}
	rayIn := core.NewRay(core.NewVec3(-10, -10, 0), core.NewVec3(1, 0.2, 0).Normalize())

	for i := 0; i < 100; i++ {
		scatter, ok := d.Scatter(rayIn, si, sampler)
		if !ok {
			t.Fatal("dielectric absorbed a ray")
		}
		if !scatter.Scattered.Direction.IsFinite() {
			t.Fatalf("non-finite direction %v", scatter.Scattered.Direction)
		}
		if scatter.Scattered.Direction.Y > 0 {
			t.Fatalf("ray escaped despite total internal reflection: %v", scatter.Scattered.Direction)
		}
	}
}

func TestDielectric_AttenuationIsWhite(t *testing.T) {
	d := NewDielectric(1.5)
	sampler := newTestSampler(17)
	rayIn := core.NewRay(core.NewVec3(0, 5, 0), core.NewVec3(0, -1, 0))

	scatter, ok := d.Scatter(rayIn, surfaceHit(core.NewVec3(0, 1, 0)), sampler)
	if !ok {
		t.Fatal("dielectric absorbed a ray")
	}
	if !scatter.Attenuation.Equals(core.NewVec3(1, 1, 1)) {
		t.Errorf("clear glass attenuation: got %v", scatter.Attenuation)
	}
}

func TestEmissive(t *testing.T) {
	radiance := core.NewVec3(4, 4, 4)
	e := NewEmissive(radiance)
	sampler := newTestSampler(19)

	if _, ok := e.Scatter(core.Ray{}, surfaceHit(core.NewVec3(0, 1, 0)), sampler); ok {
		t.Error("emissive material scattered a ray")
	}
	if got := e.Emit(core.Ray{}); !got.Equals(radiance) {
		t.Errorf("emit: got %v, expected %v", got, radiance)
	}

	var _ core.Emitter = e // compile-time check

	pdf, isDelta := e.PDF(core.Vec3{}, core.Vec3{}, core.NewVec3(0, 1, 0))
	if pdf != 0 || isDelta {
		t.Errorf("emissive pdf: got (%f, %v)", pdf, isDelta)
	}
}
