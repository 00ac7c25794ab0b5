package material

import (
	"math"
	"math/rand"
	"testing"

	"github.com/elixir-render/elixir/pkg/core"
)

// testSampler adapts math/rand to core.Sampler for material tests.
type testSampler struct {
	rng *rand.Rand
}

func newTestSampler(seed int64) *testSampler {
	return &testSampler{rng: rand.New(rand.NewSource(seed))}
}

func (s *testSampler) Get1D() float64   { return s.rng.Float64() }
func (s *testSampler) Get2D() core.Vec2 { return core.NewVec2(s.rng.Float64(), s.rng.Float64()) }

func surfaceHit(normal core.Vec3) core.SurfaceInteraction {
	return core.SurfaceInteraction{
		Point:     core.NewVec3(0, 0, 0),
		Normal:    normal,
		FrontFace: true,
	}
}

func TestLambertian_ScatterStaysAboveSurface(t *testing.T) {
	l := NewLambertian(core.NewVec3(0.7, 0.5, 0.3))
	sampler := newTestSampler(42)
	normal := core.NewVec3(0, 1, 0)
	rayIn := core.NewRay(core.NewVec3(0, 5, 0), core.NewVec3(0, -1, 0))

	for i := 0; i < 1000; i++ {
		scatter, ok := l.Scatter(rayIn, surfaceHit(normal), sampler)
		if !ok {
			t.Fatal("diffuse scatter failed on clean geometry")
		}
		if scatter.Scattered.Direction.Dot(normal) <= 0 {
			t.Fatalf("scattered direction below surface: %v", scatter.Scattered.Direction)
		}
		if scatter.PDF <= 0 {
			t.Fatalf("diffuse scatter with non-positive pdf %f", scatter.PDF)
		}
		if scatter.IsSpecular() {
			t.Fatal("diffuse scatter reported specular")
		}
		// The spawn origin is pushed off the surface along the normal.
		if scatter.Scattered.Origin.Y <= 0 {
			t.Fatalf("scattered origin %v not offset off the surface", scatter.Scattered.Origin)
		}
	}
}

func TestLambertian_BRDFAndPDF(t *testing.T) {
	albedo := core.NewVec3(0.8, 0.6, 0.4)
	l := NewLambertian(albedo)
	normal := core.NewVec3(0, 1, 0)
	up := core.NewVec3(0, 1, 0)

	brdf := l.EvaluateBRDF(core.NewVec3(0, -1, 0), up, normal)
	want := albedo.Multiply(1.0 / math.Pi)
	if !brdf.Equals(want) {
		t.Errorf("brdf: got %v, expected %v", brdf, want)
	}

	pdf, isDelta := l.PDF(core.NewVec3(0, -1, 0), up, normal)
	if isDelta {
		t.Error("lambertian reported as delta distribution")
	}
	if math.Abs(pdf-1.0/math.Pi) > 1e-12 {
		t.Errorf("pdf straight up: got %f, expected %f", pdf, 1.0/math.Pi)
	}

	// Below the surface both are zero.
	if got := l.EvaluateBRDF(core.NewVec3(0, -1, 0), core.NewVec3(0, -1, 0), normal); !got.IsZero() {
		t.Errorf("brdf below surface: got %v", got)
	}
	if pdf, _ := l.PDF(core.NewVec3(0, -1, 0), core.NewVec3(0, -1, 0), normal); pdf != 0 {
		t.Errorf("pdf below surface: got %f", pdf)
	}
}

func TestLambertian_ThroughputEqualsAlbedo(t *testing.T) {
	// attenuation * cos / pdf must collapse to the albedo, or the path
	// tracer gains or loses energy on every diffuse bounce.
	albedo := core.NewVec3(0.5, 0.5, 0.5)
	l := NewLambertian(albedo)
	sampler := newTestSampler(7)
	rayIn := core.NewRay(core.NewVec3(0, 5, 0), core.NewVec3(0, -1, 0))
	normal := core.NewVec3(0, 1, 0)

	for i := 0; i < 100; i++ {
		scatter, ok := l.Scatter(rayIn, surfaceHit(normal), sampler)
		if !ok {
			continue
		}
		cos := scatter.Scattered.Direction.Dot(normal)
		weight := scatter.Attenuation.Multiply(cos / scatter.PDF)
		if weight.Subtract(albedo).Length() > 1e-9 {
			t.Fatalf("throughput weight %v != albedo %v", weight, albedo)
		}
	}
}
