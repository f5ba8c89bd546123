package mobility

import (
	"math"
	"testing"

	"github.com/san-kum/rodconstraint/internal/body"
	"github.com/san-kum/rodconstraint/internal/geom"
)

func TestSlenderBodyAxisAlignedBlockIsDiagonal(t *testing.T) {
	bodies := []body.Body{{
		Position:    geom.Vec3{},
		Orientation: geom.IdentityQuat, // axis +Z
		Length:      1,
		Radius:      0.05,
	}}
	sb := NewSlenderBody(bodies, 1.0)

	d := 2 * bodies[0].Radius
	logAR := math.Log(bodies[0].Length / d)
	wantZetaPar := 2 * math.Pi * 1.0 * bodies[0].Length / (logAR - 0.20)
	wantZetaPerp := 4 * math.Pi * 1.0 * bodies[0].Length / (logAR + 0.84)

	x := []float64{0, 0, 1, 0, 0, 0} // unit force along axis (Z)
	y := make([]float64, 6)
	sb.Apply(x, y)

	wantVz := 1.0 / wantZetaPar
	if math.Abs(y[2]-wantVz) > 1e-9 {
		t.Errorf("axial response y[2] = %v, want %v", y[2], wantVz)
	}
	if math.Abs(y[0]) > 1e-12 || math.Abs(y[1]) > 1e-12 {
		t.Errorf("axial force should not couple into x/y: got %v,%v", y[0], y[1])
	}

	x2 := []float64{1, 0, 0, 0, 0, 0} // unit force perpendicular to axis
	y2 := make([]float64, 6)
	sb.Apply(x2, y2)
	wantVx := 1.0 / wantZetaPerp
	if math.Abs(y2[0]-wantVx) > 1e-9 {
		t.Errorf("perpendicular response y2[0] = %v, want %v", y2[0], wantVx)
	}
}

func TestSlenderBodyRotationDecoupled(t *testing.T) {
	bodies := []body.Body{{Orientation: geom.IdentityQuat, Length: 1, Radius: 0.05}}
	sb := NewSlenderBody(bodies, 1.0)

	x := []float64{0, 0, 0, 1, 2, 3}
	y := make([]float64, 6)
	sb.Apply(x, y)

	if y[0] != 0 || y[1] != 0 || y[2] != 0 {
		t.Errorf("angular input should not couple into translation: got %v", y[:3])
	}
	if y[3] <= 0 || y[4] <= 0 || y[5] <= 0 {
		t.Errorf("angular response should be positive (same sign as torque): got %v", y[3:])
	}
	// same zetaR scalar for all three rotational axes
	ratio1 := y[4] / x[4]
	ratio2 := y[5] / x[5]
	if math.Abs(ratio1-ratio2) > 1e-9 {
		t.Errorf("rotational mobility should be isotropic: %v vs %v", ratio1, ratio2)
	}
}

func TestSlenderBodyMultiBodyIndependence(t *testing.T) {
	bodies := []body.Body{
		{Orientation: geom.IdentityQuat, Length: 1, Radius: 0.05},
		{Orientation: geom.IdentityQuat, Length: 2, Radius: 0.1},
	}
	sb := NewSlenderBody(bodies, 1.0)
	if sb.NumBodies() != 2 {
		t.Fatalf("NumBodies = %d, want 2", sb.NumBodies())
	}

	x := make([]float64, 12)
	x[2] = 1 // force on body 0 only
	y := make([]float64, 12)
	sb.Apply(x, y)

	for i := 6; i < 12; i++ {
		if y[i] != 0 {
			t.Errorf("body 1 should be unaffected by a force on body 0: y[%d]=%v", i, y[i])
		}
	}
}
