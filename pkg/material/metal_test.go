package material

import (
	"testing"

	"github.com/elixir-render/elixir/pkg/core"
)

func TestMetal_PerfectMirror(t *testing.T) {
	m := NewMetal(core.NewVec3(0.9, 0.9, 0.9), 0)
	sampler := newTestSampler(1)

	// 45 degree incidence on a +Y surface.
	rayIn := core.NewRay(core.NewVec3(-1, 1, 0), core.NewVec3(1, -1, 0).Normalize())
	scatter, ok := m.Scatter(rayIn, surfaceHit(core.NewVec3(0, 1, 0)), sampler)
	if !ok {
		t.Fatal("mirror absorbed a valid reflection")
	}
	want := core.NewVec3(1, 1, 0).Normalize()
	if scatter.Scattered.Direction.Subtract(want).Length() > 1e-9 {
		t.Errorf("reflected direction: got %v, expected %v", scatter.Scattered.Direction, want)
	}
	if !scatter.IsSpecular() {
		t.Error("mirror scatter not reported specular")
	}
	if _, isDelta := m.PDF(rayIn.Direction, want, core.NewVec3(0, 1, 0)); !isDelta {
		t.Error("metal PDF not reported as delta")
	}
}

func TestMetal_FuzzClampedAndAbsorbs(t *testing.T) {
	if m := NewMetal(core.Vec3{}, 2.5); m.Fuzz != 1 {
		t.Errorf("fuzz not clamped: %f", m.Fuzz)
	}

	// Strong fuzz at grazing incidence sends some rays below the surface;
	// those must be absorbed, never returned.
	m := NewMetal(core.NewVec3(0.9, 0.9, 0.9), 1.0)
	sampler := newTestSampler(3)
	rayIn := core.NewRay(core.NewVec3(-10, 0.1, 0), core.NewVec3(1, -0.01, 0).Normalize())
	normal := core.NewVec3(0, 1, 0)

	absorbed := 0
	for i := 0; i < 500; i++ {
		scatter, ok := m.Scatter(rayIn, surfaceHit(normal), sampler)
		if !ok {
			absorbed++
			continue
		}
		if scatter.Scattered.Direction.Dot(normal) <= 0 {
			t.Fatalf("returned direction below surface: %v", scatter.Scattered.Direction)
		}
	}
	if absorbed == 0 {
		t.Error("expected some grazing fuzzed rays to be absorbed")
	}
}

func TestMetal_EvaluateBRDF(t *testing.T) {
	m := NewMetal(core.NewVec3(0.8, 0.8, 0.8), 0)
	normal := core.NewVec3(0, 1, 0)
	in := core.NewVec3(1, -1, 0).Normalize()
	mirror := core.NewVec3(1, 1, 0).Normalize()

	if got := m.EvaluateBRDF(in, mirror, normal); !got.Equals(m.Albedo) {
		t.Errorf("mirror direction brdf: got %v", got)
	}
	if got := m.EvaluateBRDF(in, core.NewVec3(0, 1, 0), normal); !got.IsZero() {
		t.Errorf("off-mirror brdf: got %v", got)
	}
}
