package core

import "math"

// Mat4 is a 4x4 affine transform matrix stored in row-major order. Shapes in
// pkg/geometry are defined in object space and carry a Mat4 to place them in
// the world.
type Mat4 struct {
	m [4][4]float64
}

// Identity returns the identity transform.
func Identity() Mat4 {
	var t Mat4
	for i := 0; i < 4; i++ {
		t.m[i][i] = 1
	}
	return t
}

// Translate returns a transform that translates by v.
func Translate(v Vec3) Mat4 {
	t := Identity()
	t.m[0][3] = v.X
	t.m[1][3] = v.Y
	t.m[2][3] = v.Z
	return t
}

// Scale returns a transform that scales independently along each axis.
func Scale(v Vec3) Mat4 {
	t := Identity()
	t.m[0][0] = v.X
	t.m[1][1] = v.Y
	t.m[2][2] = v.Z
	return t
}

// RotateY returns a transform that rotates by theta radians around Y.
func RotateY(theta float64) Mat4 {
	t := Identity()
	c, s := math.Cos(theta), math.Sin(theta)
	t.m[0][0], t.m[0][2] = c, s
	t.m[2][0], t.m[2][2] = -s, c
	return t
}

// Mul composes two transforms: (a.Mul(b)).Point(p) == a.Point(b.Point(p)).
func (a Mat4) Mul(b Mat4) Mat4 {
	var r Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += a.m[i][k] * b.m[k][j]
			}
			r.m[i][j] = sum
		}
	}
	return r
}

// Point transforms a point (implicit w=1), applying translation.
func (a Mat4) Point(p Vec3) Vec3 {
	x := a.m[0][0]*p.X + a.m[0][1]*p.Y + a.m[0][2]*p.Z + a.m[0][3]
	y := a.m[1][0]*p.X + a.m[1][1]*p.Y + a.m[1][2]*p.Z + a.m[1][3]
	z := a.m[2][0]*p.X + a.m[2][1]*p.Y + a.m[2][2]*p.Z + a.m[2][3]
	w := a.m[3][0]*p.X + a.m[3][1]*p.Y + a.m[3][2]*p.Z + a.m[3][3]
	if w != 1 && w != 0 {
		return Vec3{x / w, y / w, z / w}
	}
	return Vec3{x, y, z}
}

// Vector transforms a direction vector (implicit w=0), ignoring translation.
func (a Mat4) Vector(v Vec3) Vec3 {
	return Vec3{
		X: a.m[0][0]*v.X + a.m[0][1]*v.Y + a.m[0][2]*v.Z,
		Y: a.m[1][0]*v.X + a.m[1][1]*v.Y + a.m[1][2]*v.Z,
		Z: a.m[2][0]*v.X + a.m[2][1]*v.Y + a.m[2][2]*v.Z,
	}
}

// Inverse computes the inverse of the affine transform via Gauss-Jordan
// elimination on the augmented 4x4 matrix. Panics if the matrix is singular;
// scene construction is expected to reject non-invertible transforms before
// they reach a shape.
func (a Mat4) Inverse() Mat4 {
	aug := a.m
	inv := Identity().m

	for col := 0; col < 4; col++ {
		pivot := col
		for row := col + 1; row < 4; row++ {
			if math.Abs(aug[row][col]) > math.Abs(aug[pivot][col]) {
				pivot = row
			}
		}
		if math.Abs(aug[pivot][col]) < 1e-14 {
			panic("core: singular transform has no inverse")
		}
		aug[col], aug[pivot] = aug[pivot], aug[col]
		inv[col], inv[pivot] = inv[pivot], inv[col]

		pivotVal := aug[col][col]
		for k := 0; k < 4; k++ {
			aug[col][k] /= pivotVal
			inv[col][k] /= pivotVal
		}

		for row := 0; row < 4; row++ {
			if row == col {
				continue
			}
			factor := aug[row][col]
			for k := 0; k < 4; k++ {
				aug[row][k] -= factor * aug[col][k]
				inv[row][k] -= factor * inv[col][k]
			}
		}
	}

	return Mat4{m: inv}
}

// Transpose returns the matrix transpose.
func (a Mat4) Transpose() Mat4 {
	var r Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			r.m[i][j] = a.m[j][i]
		}
	}
	return r
}

// InverseTranspose returns the inverse-transpose of the matrix, the correct
// transform for surface normals under non-uniform scale.
func (a Mat4) InverseTranspose() Mat4 {
	return a.Inverse().Transpose()
}
