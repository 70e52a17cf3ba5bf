package vec

import "github.com/chewxy/math32"

// Mat4 is a 4x4 matrix in homogeneous coordinates. Points are row vectors;
// transforms compose as p' = p * M.
type Mat4 [4][4]float32

func Mat4Identity() Mat4 {
	return Mat4{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

func Mat4Zero() Mat4 {
	return Mat4{}
}

func (m Mat4) Mul(other Mat4) Mat4 {
	result := Mat4Zero()
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			for k := 0; k < 4; k++ {
				result[i][j] += m[i][k] * other[k][j]
			}
		}
	}
	return result
}

func (m Mat4) MulVec(v Vec4) Vec4 {
	return v.MulMat(m)
}

// Det returns the determinant of m, computed by cofactor expansion along
// the first row.
func (m Mat4) Det() float32 {
	return m.cofactor(0, 0)*m[0][0] - m.cofactor(0, 1)*m[0][1] +
		m.cofactor(0, 2)*m[0][2] - m.cofactor(0, 3)*m[0][3]
}

// cofactor returns the determinant of the 3x3 matrix left after striking
// row r and column c from m (the minor, without the (-1)^(r+c) sign; callers
// apply the sign).
func (m Mat4) cofactor(r, c int) float32 {
	var sub [3][3]float32
	si := 0
	for i := 0; i < 4; i++ {
		if i == r {
			continue
		}
		sj := 0
		for j := 0; j < 4; j++ {
			if j == c {
				continue
			}
			sub[si][sj] = m[i][j]
			sj++
		}
		si++
	}
	return sub[0][0]*(sub[1][1]*sub[2][2]-sub[1][2]*sub[2][1]) -
		sub[0][1]*(sub[1][0]*sub[2][2]-sub[1][2]*sub[2][0]) +
		sub[0][2]*(sub[1][0]*sub[2][1]-sub[1][1]*sub[2][0])
}

// inverseEpsilon bounds how close to singular a matrix may be before
// Invert refuses to produce a result.
const inverseEpsilon = 1e-8

// Invert returns the inverse of m and true, or an undefined matrix and
// false if m is singular or ill-conditioned below inverseEpsilon.
func (m Mat4) Invert() (Mat4, bool) {
	det := m.Det()
	// Written as a negated >= so that a NaN determinant (from Inf or NaN
	// entries) is also rejected.
	if !(math32.Abs(det) >= inverseEpsilon) {
		return Mat4{}, false
	}
	invDet := 1 / det
	var inv Mat4
	sign := func(i, j int) float32 {
		if (i+j)%2 == 0 {
			return 1
		}
		return -1
	}
	// inv[j][i] = cofactor(i,j) / det — the transposed cofactor matrix
	// (adjugate), matching the row-vector * matrix convention used here.
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			inv[j][i] = sign(i, j) * m.cofactor(i, j) * invDet
		}
	}
	return inv, true
}

func Mat4Translation(t Vec3) Mat4 {
	m := Mat4Identity()
	m[3][0] = t.X
	m[3][1] = t.Y
	m[3][2] = t.Z
	return m
}

func Mat4Scale(s Vec3) Mat4 {
	m := Mat4Identity()
	m[0][0] = s.X
	m[1][1] = s.Y
	m[2][2] = s.Z
	return m
}

// Transpose returns the transpose of m.
func (m Mat4) Transpose() Mat4 {
	var t Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			t[j][i] = m[i][j]
		}
	}
	return t
}

// rotationAxisColumn builds the column-vector rotation matrix (v' = R*v) of
// theta radians about axis, via the quaternion-equivalent formula in
// original_source/volpy/homogeneous.py:rotate_axis.
func rotationAxisColumn(axis Vec3, theta float32) Mat4 {
	axis = axis.Normalize()
	half := theta / 2
	a := math32.Cos(half)
	s := -math32.Sin(half)
	b, c, d := axis.X*s, axis.Y*s, axis.Z*s

	return Mat4{
		{a*a + b*b - c*c - d*d, 2 * (b*c + a*d), 2 * (b*d - a*c), 0},
		{2 * (b*c - a*d), a*a + c*c - b*b - d*d, 2 * (c*d + a*b), 0},
		{2 * (b*d + a*c), 2 * (c*d - a*b), a*a + d*d - b*b - c*c, 0},
		{0, 0, 0, 1},
	}
}

// Mat4RotationAxis builds the rotation of theta radians about axis, for use
// with this package's row-vector convention (p' = p * M). It is the
// transpose of the reference implementation's column-vector matrix, since
// for an orthogonal matrix R, v*R^T == R*v.
func Mat4RotationAxis(axis Vec3, theta float32) Mat4 {
	return rotationAxisColumn(axis, theta).Transpose()
}

func Mat4RotationX(theta float32) Mat4 { return Mat4RotationAxis(Vec3{1, 0, 0}, theta) }
func Mat4RotationY(theta float32) Mat4 { return Mat4RotationAxis(Vec3{0, 1, 0}, theta) }
func Mat4RotationZ(theta float32) Mat4 { return Mat4RotationAxis(Vec3{0, 0, 1}, theta) }

// Mat4RotationXYZ composes the Rz . Ry . Rx rotation specified in spec.md §6
// (original_source/volpy/homogeneous.py:rotatexyz), expressed in this
// package's row-vector convention: p * Rx * Ry * Rz.
func Mat4RotationXYZ(alpha, beta, gamma float32) Mat4 {
	return Mat4RotationX(gamma).Mul(Mat4RotationY(beta)).Mul(Mat4RotationZ(alpha))
}
