// Package solversvc implements ConstraintSolver, the orchestrator that
// ties ConstraintCollector, MobilityOperator, ConstraintOperator, and
// BCQPSolver together behind the setup/solveConstraints/writebackGamma
// lifecycle (spec.md §4.6).
package solversvc

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/san-kum/rodconstraint/internal/bcqp"
	"github.com/san-kum/rodconstraint/internal/collector"
	"github.com/san-kum/rodconstraint/internal/comm"
	"github.com/san-kum/rodconstraint/internal/constraintop"
	"github.com/san-kum/rodconstraint/internal/mobility"
	"github.com/san-kum/rodconstraint/internal/sparsemat"
)

// Params are the per-step control knobs set before setup (spec.md §4.6,
// "configured after setControlParams").
type Params struct {
	Dt     float64
	Res    float64
	MaxIte int
}

// Output carries solveConstraints' four 6N vectors plus the BCQP
// convergence report.
type Output struct {
	VelU, VelB   sparsemat.DofVector
	ForceU, ForceB sparsemat.DofVector
	BCQP         bcqp.Result
}

// Solver is ConstraintSolver: one instance per rank, reused step to step.
type Solver struct {
	cm  comm.Comm
	log *logrus.Entry

	state  State
	params Params

	uniColl, biColl *collector.Collector
	mob             mobility.Operator
	mobMap          sparsemat.DofMap

	du, db     *sparsemat.DTranspose
	delta0u    []float64
	delta0b    []float64
	kappas     []float64
	q          []float64
	op         *constraintop.Operator
	gamma      []float64
	nUni, nBi  int

	output Output
}

// New constructs a fresh solver in state Fresh.
func New(cm comm.Comm, log *logrus.Entry) *Solver {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Solver{cm: cm, log: log, state: Fresh}
}

// SetControlParams transitions Fresh -> Configured.
func (s *Solver) SetControlParams(p Params) error {
	if s.state != Fresh {
		return &SolverError{State: s.state, Wrapped: fmt.Errorf("%w: setControlParams requires fresh, got %s", ErrLifecycle, s.state)}
	}
	if p.Dt <= 0 {
		return &SolverError{State: s.state, Wrapped: fmt.Errorf("%w: dt must be positive, got %g", ErrInvalidInput, p.Dt)}
	}
	if p.Res <= 0 || p.MaxIte <= 0 {
		return &SolverError{State: s.state, Wrapped: fmt.Errorf("%w: res and maxIte must be positive", ErrInvalidInput)}
	}
	s.params = p
	s.state = Configured
	return nil
}

// Setup transitions Configured -> SetupDone, assembling D_u^T, D_b^T, q,
// and the initial feasible gamma (spec.md §4.6, step "setup").
func (s *Solver) Setup(uniColl, biColl *collector.Collector, mob mobility.Operator, mobMap sparsemat.DofMap, vNC sparsemat.DofVector) error {
	if s.state != Configured {
		return &SolverError{State: s.state, Wrapped: fmt.Errorf("%w: setup requires configured, got %s", ErrLifecycle, s.state)}
	}
	if mob == nil || mobMap == nil {
		errState := s.state
		s.state = Fresh
		return &SolverError{State: errState, Wrapped: fmt.Errorf("%w: mobility operator and DOF map are required", ErrInvalidInput)}
	}
	if len(vNC) != mobMap.NumLocalDOF() {
		errState := s.state
		s.state = Fresh
		return &SolverError{State: errState, Wrapped: fmt.Errorf("%w: v_nc has length %d, DOF map has %d", ErrInvalidInput, len(vNC), mobMap.NumLocalDOF())}
	}

	s.uniColl, s.biColl, s.mob, s.mobMap = uniColl, biColl, mob, mobMap

	du, delta0u, err := uniColl.BuildMatrix(mobMap)
	if err != nil {
		errState := s.state
		s.state = Fresh
		return &SolverError{State: errState, Wrapped: fmt.Errorf("%w: %v", ErrAssemblyInconsistency, err)}
	}
	db, delta0b, err := biColl.BuildMatrix(mobMap)
	if err != nil {
		errState := s.state
		s.state = Fresh
		return &SolverError{State: errState, Wrapped: fmt.Errorf("%w: %v", ErrAssemblyInconsistency, err)}
	}
	s.du, s.db = du, db
	s.delta0u, s.delta0b = delta0u, delta0b
	s.nUni, s.nBi = len(delta0u), len(delta0b)

	biBlocks := biColl.BlocksView()
	s.kappas = make([]float64, len(biBlocks))
	for i, b := range biBlocks {
		s.kappas[i] = b.Kappa
	}

	deltaNCu := du.ApplyTranspose(vNC)
	deltaNCb := db.ApplyTranspose(vNC)

	q := make([]float64, s.nUni+s.nBi)
	for i := 0; i < s.nUni; i++ {
		q[i] = delta0u[i] + deltaNCu[i]
	}
	for i := 0; i < s.nBi; i++ {
		q[s.nUni+i] = delta0b[i] + deltaNCb[i]
	}
	s.q = q

	s.op = constraintop.New(du, db, mob, s.params.Dt, s.kappas)

	gamma := make([]float64, s.nUni+s.nBi)
	uniBlocks := uniColl.BlocksView()
	for i, b := range uniBlocks {
		g := b.GammaInit
		if g < 0 {
			g = 0
		}
		gamma[i] = g
	}
	for i, b := range biBlocks {
		gamma[s.nUni+i] = b.GammaInit
	}
	s.gamma = gamma

	s.log.WithFields(logrus.Fields{
		"n_uni": s.nUni,
		"n_bi":  s.nBi,
	}).Debug("constraint solver setup complete")

	s.state = SetupDone
	return nil
}

// SolveConstraints transitions SetupDone -> Solved. It runs BCQPSolver and
// derives the four 6N output vectors (spec.md §4.6).
func (s *Solver) SolveConstraints() (Output, error) {
	if s.state != SetupDone && s.state != Solved {
		return Output{}, &SolverError{State: s.state, Wrapped: fmt.Errorf("%w: solveConstraints requires setup_done, got %s", ErrLifecycle, s.state)}
	}

	result := bcqp.Solve(s.op, s.q, s.gamma, s.nUni, s.params.Res, s.params.MaxIte, s.cm)
	if result.Reason == bcqp.NumericFailure {
		return Output{}, &SolverError{State: s.state, Wrapped: fmt.Errorf("%w: residual=%g after %d iterations", ErrNumericFailure, result.Residual, result.Iterations)}
	}
	s.gamma = result.Gamma

	gammaU := result.Gamma[:s.nUni]
	gammaB := result.Gamma[s.nUni:]

	var forceU, forceB, velU, velB sparsemat.DofVector
	nBodies := s.mob.NumBodies()
	if s.du != nil {
		forceU = s.du.Apply(gammaU)
	} else {
		forceU = sparsemat.NewDofVector(nBodies)
	}
	if s.db != nil {
		forceB = s.db.Apply(gammaB)
	} else {
		forceB = sparsemat.NewDofVector(nBodies)
	}

	velU = sparsemat.NewDofVector(nBodies)
	s.mob.Apply(forceU, velU)
	velB = sparsemat.NewDofVector(nBodies)
	s.mob.Apply(forceB, velB)

	s.output = Output{VelU: velU, VelB: velB, ForceU: forceU, ForceB: forceB, BCQP: result}

	if result.Reason == bcqp.MaxIterations {
		s.log.WithFields(logrus.Fields{
			"residual":   result.Residual,
			"iterations": result.Iterations,
		}).Warn("constraint solve did not converge")
	}

	s.state = Solved
	return s.output, nil
}

// WritebackGamma transitions Solved -> Written, pushing post-solve gamma
// back into the two collectors' block records.
func (s *Solver) WritebackGamma() error {
	if s.state != Solved && s.state != Written {
		return &SolverError{State: s.state, Wrapped: fmt.Errorf("%w: writebackGamma requires solved, got %s", ErrLifecycle, s.state)}
	}
	s.uniColl.WritebackGamma(s.gamma[:s.nUni])
	s.biColl.WritebackGamma(s.gamma[s.nUni:])
	s.state = Written
	return nil
}

// Reset transitions Written -> Fresh, dropping all per-step state.
func (s *Solver) Reset() {
	*s = Solver{cm: s.cm, log: s.log, state: Fresh}
}

// State reports the current lifecycle stage.
func (s *Solver) State() State { return s.state }

// NonConvergence reports the last solve's non-convergence detail, or nil
// if the last solve converged (or hasn't run).
func (s *Solver) NonConvergence() *NonConvergenceError {
	if s.output.BCQP.Reason != bcqp.MaxIterations {
		return nil
	}
	return &NonConvergenceError{Residual: s.output.BCQP.Residual, Iterations: s.output.BCQP.Iterations}
}
