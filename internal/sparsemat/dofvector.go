package sparsemat

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// DofVector is a distributed-DOF vector: 6 entries per body (3 translation,
// 3 rotation), concatenated across all local bodies. It is the module's
// stand-in for Trilinos's Tpetra::Vector (adapted from the teacher's
// dynamo.State: Clone/IsValid carry over unchanged in spirit, Dot/AXPY/Norm
// are new, backed by gonum/floats rather than hand-rolled loops).
type DofVector []float64

// NewDofVector allocates a zeroed vector for n bodies (6 DOF each).
func NewDofVector(nBodies int) DofVector {
	return make(DofVector, 6*nBodies)
}

func (v DofVector) Clone() DofVector {
	c := make(DofVector, len(v))
	copy(c, v)
	return c
}

func (v DofVector) IsValid() bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

// Dot returns the Euclidean inner product <v, o>.
func (v DofVector) Dot(o DofVector) float64 {
	return floats.Dot(v, o)
}

// Norm returns the L2 norm of v.
func (v DofVector) Norm() float64 {
	return floats.Norm(v, 2)
}

// AXPY computes v += alpha*o in place, mirroring gonum's floats.AddScaled.
func (v DofVector) AXPY(alpha float64, o DofVector) {
	floats.AddScaled(v, alpha, o)
}

// Sub returns v - o as a new vector.
func (v DofVector) Sub(o DofVector) DofVector {
	out := v.Clone()
	floats.Sub(out, o)
	return out
}

// Scale returns v*f as a new vector.
func (v DofVector) Scale(f float64) DofVector {
	out := v.Clone()
	floats.Scale(f, out)
	return out
}

// Zero resets every entry to 0 in place.
func (v DofVector) Zero() {
	for i := range v {
		v[i] = 0
	}
}
