package math

import "math"

// Quat represents a quaternion for 3D rotations.
// Components are stored as X, Y, Z, W where W is the scalar part.
type Quat struct {
	X, Y, Z, W float32
}

// QuatIdentity returns an identity quaternion (no rotation).
func QuatIdentity() Quat {
	return Quat{X: 0, Y: 0, Z: 0, W: 1}
}

// QuatFromAxisAngle creates a quaternion from axis-angle rotation.
// axis should be normalized, angle is in radians.
func QuatFromAxisAngle(axis Vec3, angle float32) Quat {
	halfAngle := angle / 2
	s := float32(math.Sin(float64(halfAngle)))
	return Quat{
		X: axis.X * s,
		Y: axis.Y * s,
		Z: axis.Z * s,
		W: float32(math.Cos(float64(halfAngle))),
	}
}

// QuatFromEulerXYZ builds the rotation Rx(x) * Ry(y) * Rz(z). Angles are in radians.
func QuatFromEulerXYZ(x, y, z float32) Quat {
	qx := QuatFromAxisAngle(Vec3{X: 1}, x)
	qy := QuatFromAxisAngle(Vec3{Y: 1}, y)
	qz := QuatFromAxisAngle(Vec3{Z: 1}, z)
	return qx.Mul(qy).Mul(qz)
}

// QuatFromMat4 extracts the rotation of a matrix whose linear part is orthonormal.
func QuatFromMat4(m Mat4) Quat {
	r00, r11, r22 := m[0], m[5], m[10]
	r01, r02 := m[4], m[8]
	r10, r12 := m[1], m[9]
	r20, r21 := m[2], m[6]

	var q Quat
	trace := r00 + r11 + r22
	switch {
	case trace > 0:
		s := sqrt32(trace+1) * 2
		q = Quat{W: 0.25 * s, X: (r21 - r12) / s, Y: (r02 - r20) / s, Z: (r10 - r01) / s}
	case r00 > r11 && r00 > r22:
		s := sqrt32(1+r00-r11-r22) * 2
		q = Quat{W: (r21 - r12) / s, X: 0.25 * s, Y: (r01 + r10) / s, Z: (r02 + r20) / s}
	case r11 > r22:
		s := sqrt32(1+r11-r00-r22) * 2
		q = Quat{W: (r02 - r20) / s, X: (r01 + r10) / s, Y: 0.25 * s, Z: (r12 + r21) / s}
	default:
		s := sqrt32(1+r22-r00-r11) * 2
		q = Quat{W: (r10 - r01) / s, X: (r02 + r20) / s, Y: (r12 + r21) / s, Z: 0.25 * s}
	}
	return q.Normalize()
}

// EulerXYZ returns the angles (radians) such that QuatFromEulerXYZ(x, y, z) equals q.
// At gimbal lock (|y| = 90 degrees) z is reported as 0.
func (q Quat) EulerXYZ() (x, y, z float32) {
	q = q.Normalize()
	xx, yy, zz := q.X*q.X, q.Y*q.Y, q.Z*q.Z
	xy, xz, yz := q.X*q.Y, q.X*q.Z, q.Y*q.Z
	xw, yw, zw := q.X*q.W, q.Y*q.W, q.Z*q.W

	r02 := 2 * (xz + yw)
	if r02 > 1 {
		r02 = 1
	} else if r02 < -1 {
		r02 = -1
	}
	y = float32(math.Asin(float64(r02)))

	if abs32(r02) < 0.999999 {
		r12 := 2 * (yz - xw)
		r22 := 1 - 2*(xx+yy)
		r01 := 2 * (xy - zw)
		r00 := 1 - 2*(yy+zz)
		x = float32(math.Atan2(float64(-r12), float64(r22)))
		z = float32(math.Atan2(float64(-r01), float64(r00)))
		return x, y, z
	}

	r21 := 2 * (yz + xw)
	r11 := 1 - 2*(xx+zz)
	x = float32(math.Atan2(float64(r21), float64(r11)))
	return x, y, 0
}

// Normalize returns a normalized quaternion.
func (q Quat) Normalize() Quat {
	length := sqrt32(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)
	if length < 0.0001 {
		return QuatIdentity()
	}
	invLen := 1.0 / length
	return Quat{
		X: q.X * invLen,
		Y: q.Y * invLen,
		Z: q.Z * invLen,
		W: q.W * invLen,
	}
}

// Conjugate returns the inverse rotation of a unit quaternion.
func (q Quat) Conjugate() Quat {
	return Quat{X: -q.X, Y: -q.Y, Z: -q.Z, W: q.W}
}

// Dot returns the dot product of two quaternions.
func (q Quat) Dot(other Quat) float32 {
	return q.X*other.X + q.Y*other.Y + q.Z*other.Z + q.W*other.W
}

// ToMat4 converts the quaternion to a 4x4 rotation matrix.
func (q Quat) ToMat4() Mat4 {
	q = q.Normalize()

	xx := q.X * q.X
	xy := q.X * q.Y
	xz := q.X * q.Z
	xw := q.X * q.W
	yy := q.Y * q.Y
	yz := q.Y * q.Z
	yw := q.Y * q.W
	zz := q.Z * q.Z
	zw := q.Z * q.W

	return Mat4{
		1 - 2*(yy+zz), 2 * (xy + zw), 2 * (xz - yw), 0,
		2 * (xy - zw), 1 - 2*(xx+zz), 2 * (yz + xw), 0,
		2 * (xz + yw), 2 * (yz - xw), 1 - 2*(xx+yy), 0,
		0, 0, 0, 1,
	}
}

// Mul multiplies two quaternions (combines rotations).
func (q Quat) Mul(other Quat) Quat {
	return Quat{
		X: q.W*other.X + q.X*other.W + q.Y*other.Z - q.Z*other.Y,
		Y: q.W*other.Y - q.X*other.Z + q.Y*other.W + q.Z*other.X,
		Z: q.W*other.Z + q.X*other.Y - q.Y*other.X + q.Z*other.W,
		W: q.W*other.W - q.X*other.X - q.Y*other.Y - q.Z*other.Z,
	}
}

// Rotate applies the rotation to v.
func (q Quat) Rotate(v Vec3) Vec3 {
	return q.ToMat4().TransformVec3(v)
}

func sqrt32(x float32) float32 {
	return float32(math.Sqrt(float64(x)))
}
