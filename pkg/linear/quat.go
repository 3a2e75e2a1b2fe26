package linear

import "github.com/chewxy/math32"

// Quat is a rotation quaternion stored as (x, y, z, w).
type Quat [4]float32

// Identity is the quaternion of no rotation.
var Identity = Quat{0, 0, 0, 1}

// AxisAngle returns the rotation of angle radians around axis.
func AxisAngle(axis Vec3, angle float32) Quat {
	a := axis.Norm()
	s, c := math32.Sincos(angle / 2)
	return Quat{a[0] * s, a[1] * s, a[2] * s, c}
}

// Mul returns q ⋅ r (r applied first).
func (q Quat) Mul(r Quat) Quat {
	return Quat{
		q[3]*r[0] + q[0]*r[3] + q[1]*r[2] - q[2]*r[1],
		q[3]*r[1] - q[0]*r[2] + q[1]*r[3] + q[2]*r[0],
		q[3]*r[2] + q[0]*r[1] - q[1]*r[0] + q[2]*r[3],
		q[3]*r[3] - q[0]*r[0] - q[1]*r[1] - q[2]*r[2],
	}
}

// Norm returns q normalized.
func (q Quat) Norm() Quat {
	l := math32.Sqrt(q[0]*q[0] + q[1]*q[1] + q[2]*q[2] + q[3]*q[3])
	if l == 0 {
		return Identity
	}
	return Quat{q[0] / l, q[1] / l, q[2] / l, q[3] / l}
}

// Rotate returns v rotated by q.
func (q Quat) Rotate(v Vec3) Vec3 {
	u := Vec3{q[0], q[1], q[2]}
	t := u.Cross(v).Scale(2)
	return v.Add(t.Scale(q[3])).Add(u.Cross(t))
}

// String formats q as "x y z w".
func (q Quat) String() string {
	return formatFloats(q[:])
}

// ParseQuat parses four float components.
func ParseQuat(s string) (Quat, error) {
	var q Quat
	err := parseFloats(s, q[:])
	return q, err
}
