package camera

import (
	"math"
	"testing"

	"github.com/elixir-render/elixir/pkg/core"
)

func pinholeAt(position, lookAt core.Vec3) *Camera {
	return New(Config{
		Position: position,
		LookAt:   lookAt,
		Up:       core.NewVec3(0, 1, 0),
		FOV:      40,
		Aspect:   1,
		Aperture: 0,
	})
}

func TestPinhole_CenterRayHitsLookAt(t *testing.T) {
	c := pinholeAt(core.NewVec3(0, 0, 10), core.NewVec3(0, 0, 0))

	ray := c.GenerateRay(0.5, 0.5, core.NewVec2(0.3, 0.7))
	if !ray.Origin.Equals(core.NewVec3(0, 0, 10)) {
		t.Errorf("pinhole origin: got %v", ray.Origin)
	}
	if ray.Direction.Subtract(core.NewVec3(0, 0, -1)).Length() > 1e-9 {
		t.Errorf("center ray direction: got %v, expected -Z", ray.Direction)
	}
	if math.Abs(ray.Direction.Length()-1) > 1e-12 {
		t.Errorf("direction not normalized: %f", ray.Direction.Length())
	}
}

func TestPinhole_CornersDiverge(t *testing.T) {
	c := pinholeAt(core.NewVec3(0, 0, 10), core.NewVec3(0, 0, 0))

	left := c.GenerateRay(0, 0.5, core.Vec2{})
	right := c.GenerateRay(1, 0.5, core.Vec2{})
	if left.Direction.X >= 0 || right.Direction.X <= 0 {
		t.Errorf("horizontal rays do not diverge: %v %v", left.Direction, right.Direction)
	}

	bottom := c.GenerateRay(0.5, 0, core.Vec2{})
	top := c.GenerateRay(0.5, 1, core.Vec2{})
	if bottom.Direction.Y >= 0 || top.Direction.Y <= 0 {
		t.Errorf("vertical rays do not diverge: %v %v", bottom.Direction, top.Direction)
	}

	// The half-angle between the center and the top edge matches FOV/2.
	angle := math.Acos(top.Direction.Dot(core.NewVec3(0, 0, -1)))
	if math.Abs(angle-20*math.Pi/180) > 1e-9 {
		t.Errorf("vertical half-angle: got %f deg", angle*180/math.Pi)
	}
}

func TestThinLens_FocusPlaneIsSharp(t *testing.T) {
	cfg := Config{
		Position:  core.NewVec3(0, 0, 10),
		LookAt:    core.NewVec3(0, 0, 0),
		Up:        core.NewVec3(0, 1, 0),
		FOV:       40,
		Aspect:    1,
		Aperture:  0.5,
		FocusDist: 10,
	}
	c := New(cfg)

	// Rays through different lens points all pass through the same point
	// on the focus plane.
	lensSamples := []core.Vec2{{X: 0.1, Y: 0.2}, {X: 0.9, Y: 0.8}, {X: 0.5, Y: 0.01}}
	var focusPoints []core.Vec3
	for _, uv := range lensSamples {
		ray := c.GenerateRay(0.25, 0.75, uv)
		// Solve for z = 0, the focus plane.
		tt := -ray.Origin.Z / ray.Direction.Z
		focusPoints = append(focusPoints, ray.At(tt))
	}
	for _, p := range focusPoints[1:] {
		if p.Subtract(focusPoints[0]).Length() > 1e-9 {
			t.Errorf("lens rays do not converge on the focus plane: %v vs %v", p, focusPoints[0])
		}
	}

	// The lens actually displaces ray origins.
	a := c.GenerateRay(0.5, 0.5, core.NewVec2(0.9, 0.1))
	b := c.GenerateRay(0.5, 0.5, core.NewVec2(0.1, 0.9))
	if a.Origin.Subtract(b.Origin).Length() == 0 {
		t.Error("aperture has no effect on ray origins")
	}
}

func TestCamera_DefaultFocusDistance(t *testing.T) {
	// FocusDist 0 focuses on the look-at point.
	c := New(Config{
		Position:  core.NewVec3(0, 0, 5),
		LookAt:    core.NewVec3(0, 0, 0),
		Up:        core.NewVec3(0, 1, 0),
		FOV:       60,
		Aspect:    2,
		Aperture:  0.2,
		FocusDist: 0,
	})

	ray := c.GenerateRay(0.5, 0.5, core.NewVec2(0.8, 0.3))
	tt := -ray.Origin.Z / ray.Direction.Z
	hit := ray.At(tt)
	if hit.Subtract(core.NewVec3(0, 0, 0)).Length() > 1e-9 {
		t.Errorf("center rays should converge on the look-at point, got %v", hit)
	}
}
