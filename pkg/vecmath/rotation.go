package vecmath

import "math"

// Euler holds rotation angles in radians applied in X, Y, Z order
// (R = Rx * Ry * Rz).
type Euler struct {
	X, Y, Z float64
}

// Mat3 is a row-major 3x3 matrix. Only rotations are stored in it.
type Mat3 [3][3]float64

// Identity3 returns the identity matrix.
func Identity3() Mat3 {
	return Mat3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
}

// Matrix builds the rotation matrix for e.
func (e Euler) Matrix() Mat3 {
	a, b := math.Cos(e.X), math.Sin(e.X)
	c, d := math.Cos(e.Y), math.Sin(e.Y)
	ce, f := math.Cos(e.Z), math.Sin(e.Z)

	ae, af, be, bf := a*ce, a*f, b*ce, b*f

	return Mat3{
		{c * ce, -c * f, d},
		{af + be*d, ae - bf*d, -b * c},
		{bf - ae*d, be + af*d, a * c},
	}
}

// EulerFromMatrix decomposes a pure rotation matrix into XYZ Euler angles.
func EulerFromMatrix(m Mat3) Euler {
	y := math.Asin(Clamp(m[0][2], -1, 1))
	if math.Abs(m[0][2]) < 0.9999999 {
		return Euler{
			X: math.Atan2(-m[1][2], m[2][2]),
			Y: y,
			Z: math.Atan2(-m[0][1], m[0][0]),
		}
	}
	return Euler{X: math.Atan2(m[2][1], m[1][1]), Y: y}
}

// Mul returns m * o.
func (m Mat3) Mul(o Mat3) Mat3 {
	var r Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i][j] = m[i][0]*o[0][j] + m[i][1]*o[1][j] + m[i][2]*o[2][j]
		}
	}
	return r
}

// Apply returns m * v.
func (m Mat3) Apply(v Vec3) Vec3 {
	return Vec3{
		m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z,
		m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z,
		m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z,
	}
}

// Transpose is also the inverse for rotation matrices.
func (m Mat3) Transpose() Mat3 {
	var r Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i][j] = m[j][i]
		}
	}
	return r
}

// Transform is a rigid transform: rotate by Basis, then translate by Origin.
type Transform struct {
	Basis  Mat3
	Origin Vec3
}

// IdentityTransform returns a transform that changes nothing.
func IdentityTransform() Transform {
	return Transform{Basis: Identity3()}
}

// Compose returns t * o, i.e. o applied first.
func (t Transform) Compose(o Transform) Transform {
	return Transform{
		Basis:  t.Basis.Mul(o.Basis),
		Origin: t.Basis.Apply(o.Origin).Add(t.Origin),
	}
}

// Point maps a local point to the parent frame.
func (t Transform) Point(p Vec3) Vec3 {
	return t.Basis.Apply(p).Add(t.Origin)
}

// Direction maps a local direction to the parent frame.
func (t Transform) Direction(d Vec3) Vec3 {
	return t.Basis.Apply(d)
}

// Inverse returns the transform mapping parent coordinates back to local.
func (t Transform) Inverse() Transform {
	inv := t.Basis.Transpose()
	return Transform{Basis: inv, Origin: inv.Apply(t.Origin).Scale(-1)}
}

// Clamp limits x to [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
