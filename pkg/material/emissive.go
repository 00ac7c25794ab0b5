package material

import (
	"github.com/elixir-render/elixir/pkg/core"
)

// Emissive radiates a constant spectrum and absorbs everything that lands
// on it. Area lights attach this material to their backing shape.
type Emissive struct {
	Radiance core.Vec3
}

// NewEmissive creates an emissive material.
func NewEmissive(radiance core.Vec3) *Emissive {
	return &Emissive{Radiance: radiance}
}

// Scatter absorbs the ray; emissive surfaces only emit.
func (e *Emissive) Scatter(rayIn core.Ray, si core.SurfaceInteraction, sampler core.Sampler) (core.ScatterResult, bool) {
	return core.ScatterResult{}, false
}

// Emit implements core.Emitter.
func (e *Emissive) Emit(rayIn core.Ray) core.Vec3 {
	return e.Radiance
}

// EvaluateBRDF is zero: emitters do not reflect.
func (e *Emissive) EvaluateBRDF(incomingDir, outgoingDir, normal core.Vec3) core.Vec3 {
	return core.Vec3{}
}

// PDF reports no scattering distribution at all.
func (e *Emissive) PDF(incomingDir, outgoingDir, normal core.Vec3) (float64, bool) {
	return 0, false
}
