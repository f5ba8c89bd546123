package contactgen

import (
	"math"
	"testing"

	"github.com/san-kum/rodconstraint/internal/geom"
)

func TestClosestPointsParallelSegmentsOffset(t *testing.T) {
	// Two parallel segments along X, offset by 2 in Y.
	p1, q1 := geom.Vec3{X: 0}, geom.Vec3{X: 1}
	p2, q2 := geom.Vec3{X: 0, Y: 2}, geom.Vec3{X: 1, Y: 2}

	c1, c2, _, _ := closestPointsSegments(p1, q1, p2, q2)
	d := c2.Sub(c1).Norm()
	if math.Abs(d-2) > 1e-9 {
		t.Errorf("distance = %v, want 2", d)
	}
}

func TestClosestPointsCrossingSegments(t *testing.T) {
	// Perpendicular segments crossing through the origin at different Z.
	p1, q1 := geom.Vec3{X: -1}, geom.Vec3{X: 1}
	p2, q2 := geom.Vec3{Y: -1, Z: 1}, geom.Vec3{Y: 1, Z: 1}

	c1, c2, s, _ := closestPointsSegments(p1, q1, p2, q2)
	if math.Abs(s-0.5) > 1e-9 {
		t.Errorf("s = %v, want 0.5 (midpoint)", s)
	}
	d := c2.Sub(c1).Norm()
	if math.Abs(d-1) > 1e-9 {
		t.Errorf("distance = %v, want 1 (the Z offset)", d)
	}
}

func TestClosestPointsDegenerateSegments(t *testing.T) {
	// Both "segments" are single points (zero length).
	p1 := geom.Vec3{X: 0}
	p2 := geom.Vec3{X: 5}

	c1, c2, s, tt := closestPointsSegments(p1, p1, p2, p2)
	if s != 0 || tt != 0 {
		t.Errorf("degenerate s,t = %v,%v, want 0,0", s, tt)
	}
	if c1 != p1 || c2 != p2 {
		t.Errorf("degenerate closest points = %+v,%+v, want %+v,%+v", c1, c2, p1, p2)
	}
}

func TestClamp01(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{-1, 0}, {0, 0}, {0.5, 0.5}, {1, 1}, {2, 1},
	}
	for _, tt := range tests {
		if got := clamp01(tt.in); got != tt.want {
			t.Errorf("clamp01(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
