package geom

import (
	"math"
	"testing"
)

func TestIdentityQuatAxis(t *testing.T) {
	axis := IdentityQuat.Axis()
	if math.Abs(axis.Z-1) > 1e-12 || math.Abs(axis.X) > 1e-12 || math.Abs(axis.Y) > 1e-12 {
		t.Errorf("identity axis: got %+v, want {0 0 1}", axis)
	}
}

func TestFromAxisAngleRotatesZOntoAxis(t *testing.T) {
	// A quarter turn about +Y carries the rod axis from +Z onto +X.
	target := Vec3{X: 1}
	q := FromAxisAngle(Vec3{Y: 1}, math.Pi/2)

	axis := q.Axis()
	if math.Abs(axis.X-target.X) > 1e-9 || math.Abs(axis.Y-target.Y) > 1e-9 || math.Abs(axis.Z-target.Z) > 1e-9 {
		t.Errorf("rotated axis: got %+v, want %+v", axis, target)
	}
}

func TestQuatNormalize(t *testing.T) {
	q := Quat{W: 2, X: 0, Y: 0, Z: 0}.Normalize()
	if math.Abs(q.W-1) > 1e-12 {
		t.Errorf("normalize: got W=%v, want 1", q.W)
	}

	degenerate := Quat{}.Normalize()
	if degenerate != IdentityQuat {
		t.Errorf("degenerate normalize: got %+v, want IdentityQuat", degenerate)
	}
}
