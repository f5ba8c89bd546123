// Package mobility implements MobilityOperator: the opaque linear map
// from generalised force to generalised velocity over the 6-DOF-per-body
// space (spec.md §4.3). The core only ever calls Apply; construction
// details live entirely in this package.
package mobility

// Operator is the contract the constraint-resolution core depends on:
// apply(x, y): y = M*x, block-diagonal per body, O(N) work. Implementations
// may be tagged variants, not necessarily a class hierarchy (spec.md §9,
// "Operator-as-interface").
type Operator interface {
	// Apply computes y = M*x in place. x and y are both length 6N,
	// ordered [body0: vx,vy,vz,wx,wy,wz, body1: ...].
	Apply(x, y []float64)
	// NumBodies reports N, so callers can size x/y without reaching into
	// the implementation.
	NumBodies() int
}
