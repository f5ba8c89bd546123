package solversvc

import "errors"

// Domain errors for the constraint-solver lifecycle (spec.md §7).
var (
	// ErrInvalidInput indicates a malformed setup call: mismatched
	// lengths, a nil mobility operator, or a non-positive Δt.
	ErrInvalidInput = errors.New("solversvc: invalid input")

	// ErrAssemblyInconsistency indicates a block referenced a body the
	// mobility map could not resolve; wraps collector.ErrAssemblyInconsistency.
	ErrAssemblyInconsistency = errors.New("solversvc: assembly inconsistency")

	// ErrNumericFailure indicates BCQPSolver hit persistent NaN/Inf; fatal,
	// unlike NonConvergenceError which is reported but non-fatal.
	ErrNumericFailure = errors.New("solversvc: numeric failure")

	// ErrLifecycle indicates a method was called out of the state-machine
	// order described in spec.md §4.6.
	ErrLifecycle = errors.New("solversvc: invalid lifecycle transition")
)

// SolverError wraps a domain error with the state the solver was in when
// it occurred, in the shape of the teacher's dynamo.SimulationError.
type SolverError struct {
	State   State
	Wrapped error
}

func (e *SolverError) Error() string { return e.Wrapped.Error() }
func (e *SolverError) Unwrap() error { return e.Wrapped }

// NonConvergenceError is returned as a value alongside a successful
// solved-state transition, never via the error return (spec.md §7: "it is
// reported but non-fatal").
type NonConvergenceError struct {
	Residual   float64
	Iterations int
}

func (e *NonConvergenceError) Error() string {
	return "solversvc: did not converge"
}
