package core

import (
	"math"
)

// SampleLight uniformly selects one light and samples it for direct
// lighting toward point, folding the 1/N selection probability into the
// returned PDF.
func SampleLight(lights []Light, point, normal Vec3, sampler Sampler) (LightSample, bool) {
	if len(lights) == 0 {
		return LightSample{}, false
	}

	idx := int(sampler.Get1D() * float64(len(lights)))
	if idx >= len(lights) {
		idx = len(lights) - 1
	}

	sample := lights[idx].SampleLi(point, normal, sampler)
	sample.PDF *= 1.0 / float64(len(lights))
	return sample, true
}

// CoordinateSystem builds an orthonormal basis (tangent, bitangent) around a
// unit normal, using the branchless construction of Duff et al.
func CoordinateSystem(n Vec3) (tangent, bitangent Vec3) {
	sign := math.Copysign(1, n.Z)
	a := -1.0 / (sign + n.Z)
	b := n.X * n.Y * a
	tangent = Vec3{1 + sign*n.X*n.X*a, sign * b, -sign * n.X}
	bitangent = Vec3{b, sign + n.Y*n.Y*a, -n.Y}
	return tangent, bitangent
}

// RandomCosineDirection returns a cosine-weighted random direction in the
// local hemisphere around +Z, via Malley's method.
func RandomCosineDirection(u Vec2) Vec3 {
	r := math.Sqrt(u.X)
	theta := 2 * math.Pi * u.Y
	x := r * math.Cos(theta)
	y := r * math.Sin(theta)
	z := math.Sqrt(math.Max(0, 1-u.X))
	return Vec3{x, y, z}
}

// RandomCosineHemisphere returns a cosine-weighted direction around the
// given surface normal.
func RandomCosineHemisphere(normal Vec3, u Vec2) Vec3 {
	t, b := CoordinateSystem(normal)
	local := RandomCosineDirection(u)
	return t.Multiply(local.X).Add(b.Multiply(local.Y)).Add(normal.Multiply(local.Z)).Normalize()
}

// RandomUnitVector returns a uniformly distributed direction on the unit
// sphere, used to fuzz specular reflections.
func RandomUnitVector(u Vec2) Vec3 {
	z := 1 - 2*u.X
	r := math.Sqrt(math.Max(0, 1-z*z))
	phi := 2 * math.Pi * u.Y
	return Vec3{X: r * math.Cos(phi), Y: r * math.Sin(phi), Z: z}
}

// Reflect returns v reflected about the unit normal n.
func Reflect(v, n Vec3) Vec3 {
	return v.Subtract(n.Multiply(2 * v.Dot(n)))
}

// Refract returns the refracted direction of unit vector v through a
// surface with unit normal n and relative index of refraction etaRatio
// (eta_incident / eta_transmitted). The second return value is false on
// total internal reflection.
func Refract(v, n Vec3, etaRatio float64) (Vec3, bool) {
	cosTheta := math.Min(v.Negate().Dot(n), 1.0)
	sinTheta2 := etaRatio * etaRatio * (1 - cosTheta*cosTheta)
	if sinTheta2 > 1.0 {
		return Vec3{}, false
	}
	rOutPerp := v.Add(n.Multiply(cosTheta)).Multiply(etaRatio)
	rOutParallel := n.Multiply(-math.Sqrt(math.Abs(1.0 - rOutPerp.LengthSquared())))
	return rOutPerp.Add(rOutParallel), true
}

// SchlickReflectance approximates the Fresnel reflectance of a dielectric
// boundary as a function of the cosine of the incident angle and the
// relative index of refraction.
func SchlickReflectance(cosine, refIdx float64) float64 {
	r0 := (1 - refIdx) / (1 + refIdx)
	r0 = r0 * r0
	return r0 + (1-r0)*math.Pow(1-cosine, 5)
}
