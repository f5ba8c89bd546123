package body

import (
	"math"
	"testing"

	"github.com/san-kum/rodconstraint/internal/geom"
)

func TestHeadTailStraightRod(t *testing.T) {
	b := Body{
		Position:    geom.Vec3{X: 1, Y: 2, Z: 3},
		Orientation: geom.IdentityQuat,
		Length:      2,
		Radius:      0.1,
	}

	head := b.Head()
	tail := b.Tail()

	wantHead := geom.Vec3{X: 1, Y: 2, Z: 4}
	wantTail := geom.Vec3{X: 1, Y: 2, Z: 2}

	if math.Abs(head.X-wantHead.X) > 1e-12 || math.Abs(head.Z-wantHead.Z) > 1e-12 {
		t.Errorf("Head: got %+v, want %+v", head, wantHead)
	}
	if math.Abs(tail.X-wantTail.X) > 1e-12 || math.Abs(tail.Z-wantTail.Z) > 1e-12 {
		t.Errorf("Tail: got %+v, want %+v", tail, wantTail)
	}

	if got := head.Sub(tail).Norm(); math.Abs(got-b.Length) > 1e-9 {
		t.Errorf("head-tail separation: got %v, want %v", got, b.Length)
	}
}

func TestAxisMatchesOrientation(t *testing.T) {
	b := Body{Orientation: geom.IdentityQuat}
	axis := b.Axis()
	if axis != (geom.Vec3{Z: 1}) {
		t.Errorf("Axis: got %+v, want {0 0 1}", axis)
	}
}
