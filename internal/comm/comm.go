// Package comm abstracts the collective operations the constraint solver
// needs (all-reduce and barrier) behind an interface, standing in for the
// MPI communicator the original implementation threads through every
// call (spec.md §5, §9 "distributed maps are values, not globals"). No Go
// MPI binding usable without cgo appears anywhere in the retrieved
// example pack or the wider ecosystem, so collectives are modeled
// directly on sync primitives (a mutex and a condition variable); see
// DESIGN.md.
package comm

// Comm is the collective-operation surface the core depends on. Every
// rank participating in a step must call each method the same number of
// times in the same order (spec.md §5, "BCQPSolver iterates are
// identical across ranks by construction").
type Comm interface {
	// AllReduceSum returns the sum of v across all ranks.
	AllReduceSum(v float64) float64
	// Barrier blocks until every rank has called Barrier.
	Barrier()
	// Rank returns this communicator's 0-based rank id, for diagnostics.
	Rank() int
	// Size returns the number of ranks participating.
	Size() int
}

// Local is the single-rank Comm: every reduction is a no-op identity and
// Barrier returns immediately. Used for single-process runs and as the
// default in tests that don't care about multi-rank semantics.
type Local struct{}

func (Local) AllReduceSum(v float64) float64 { return v }
func (Local) Barrier()                       {}
func (Local) Rank() int                      { return 0 }
func (Local) Size() int                      { return 1 }
