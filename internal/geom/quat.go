package geom

import "math"

// Quat is a unit quaternion (w, x, y, z) describing a body's orientation.
// Rods in this module carry their own axis rather than a full rotation
// matrix, so Quat only needs to answer "which way does the axis point".
type Quat struct {
	W, X, Y, Z float64
}

// IdentityQuat is the zero-rotation orientation (rod axis along +Z).
var IdentityQuat = Quat{W: 1}

// Axis returns the unit vector the local +Z axis is rotated to, i.e. the
// rod's long axis in lab frame.
func (q Quat) Axis() Vec3 {
	w, x, y, z := q.W, q.X, q.Y, q.Z
	return Vec3{
		X: 2 * (x*z + w*y),
		Y: 2 * (y*z - w*x),
		Z: 1 - 2*(x*x+y*y),
	}
}

// Normalize returns q scaled to unit length, or IdentityQuat if q is
// degenerate.
func (q Quat) Normalize() Quat {
	n := math.Sqrt(q.W*q.W + q.X*q.X + q.Y*q.Y + q.Z*q.Z)
	if n < 1e-12 {
		return IdentityQuat
	}
	inv := 1.0 / n
	return Quat{q.W * inv, q.X * inv, q.Y * inv, q.Z * inv}
}

// FromAxisAngle builds the unit quaternion for a rotation by angle
// (radians) about axis. axis is normalised first; a zero axis is taken
// as +Z.
func FromAxisAngle(axis Vec3, angle float64) Quat {
	axis = axis.Unit(Vec3{Z: 1})
	half := angle / 2
	s := math.Sin(half)
	return Quat{
		W: math.Cos(half),
		X: axis.X * s,
		Y: axis.Y * s,
		Z: axis.Z * s,
	}.Normalize()
}
