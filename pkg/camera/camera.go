// Package camera generates primary rays through film-plane coordinates
// with thin-lens depth of field.
package camera

import (
	"math"

	"github.com/elixir-render/elixir/pkg/core"
)

// Config describes a camera placement. FOV is the vertical field of view in
// degrees. Aperture 0 collapses the lens to a pinhole; FocusDist 0 focuses
// on the look-at point.
type Config struct {
	Position  core.Vec3
	LookAt    core.Vec3
	Up        core.Vec3
	FOV       float64
	Aspect    float64
	Aperture  float64
	FocusDist float64
}

// Camera precomputes the film-plane basis so GenerateRay is pure
// arithmetic, shareable read-only across render workers.
type Camera struct {
	origin          core.Vec3
	lowerLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
	u, v            core.Vec3
	lensRadius      float64
}

// New creates a camera from the given configuration.
func New(cfg Config) *Camera {
	focusDist := cfg.FocusDist
	if focusDist <= 0 {
		focusDist = cfg.LookAt.Subtract(cfg.Position).Length()
	}

	theta := cfg.FOV * math.Pi / 180
	halfHeight := math.Tan(theta / 2)
	halfWidth := cfg.Aspect * halfHeight

	w := cfg.Position.Subtract(cfg.LookAt).Normalize()
	u := cfg.Up.Cross(w).Normalize()
	v := w.Cross(u)

	origin := cfg.Position
	horizontal := u.Multiply(2 * halfWidth * focusDist)
	vertical := v.Multiply(2 * halfHeight * focusDist)
	lowerLeftCorner := origin.
		Subtract(horizontal.Multiply(0.5)).
		Subtract(vertical.Multiply(0.5)).
		Subtract(w.Multiply(focusDist))

	return &Camera{
		origin:          origin,
		lowerLeftCorner: lowerLeftCorner,
		horizontal:      horizontal,
		vertical:        vertical,
		u:               u,
		v:               v,
		lensRadius:      cfg.Aperture / 2,
	}
}

// GenerateRay returns the primary ray through film coordinates (s, t) in
// [0,1)^2, with (0,0) the lower-left corner. The lens sample picks a point
// on the aperture disk; with a zero aperture it is ignored.
func (c *Camera) GenerateRay(s, t float64, lensUV core.Vec2) core.Ray {
	offset := core.Vec3{}
	if c.lensRadius > 0 {
		d := sampleUnitDisk(lensUV).Multiply(c.lensRadius)
		offset = c.u.Multiply(d.X).Add(c.v.Multiply(d.Y))
	}

	origin := c.origin.Add(offset)
	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t)).
		Subtract(origin)
	return core.NewRay(origin, direction.Normalize())
}

// sampleUnitDisk maps a uniform [0,1)^2 sample onto the unit disk.
func sampleUnitDisk(u core.Vec2) core.Vec2 {
	r := math.Sqrt(u.X)
	theta := 2 * math.Pi * u.Y
	return core.NewVec2(r*math.Cos(theta), r*math.Sin(theta))
}
