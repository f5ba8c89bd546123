// Package bcqp solves the bound-constrained quadratic program
// min 1/2 gamma^T M_total gamma + gamma^T q  s.t.  gamma_u >= 0, gamma_b free
// with the projected Barzilai-Borwein method (spec.md §4.5).
package bcqp

import (
	"math"

	"github.com/san-kum/rodconstraint/internal/comm"
)

// Reason names why iteration stopped.
type Reason int

const (
	Converged Reason = iota
	MaxIterations
	NumericFailure
)

func (r Reason) String() string {
	switch r {
	case Converged:
		return "converged"
	case MaxIterations:
		return "max_iterations"
	case NumericFailure:
		return "numeric_failure"
	default:
		return "unknown"
	}
}

// Operator is the subset of constraintop.Operator the solver depends on,
// kept as an interface so this package never imports constraintop
// (spec.md §9, "Operator-as-interface").
type Operator interface {
	Apply(y []float64) []float64
}

const (
	alphaMin = 1e-12
	alphaMax = 1e12
	epsilon  = 1e-300
)

// Result carries everything spec.md §4.5 names as BCQPSolver output.
type Result struct {
	Gamma      []float64
	Residual   float64
	Iterations int
	Reason     Reason

	// ResidualHistory holds the per-iteration residual, one entry per
	// completed iterate, for diagnostics/visualisation (not part of
	// spec.md §4.5's required output, but cheap given the residual is
	// already computed every iteration).
	ResidualHistory []float64
}

// Solve runs projected BBPGD (spec.md §4.5). On NaN/Inf it restarts once
// from the spectral step alpha0 and otherwise reports NumericFailure; there
// is no projected-conjugate-residual fallback. nUnilateral is the count of
// leading entries in gamma0/q subject to gamma>=0; the remainder are free.
// cm is used to all-reduce every norm, matching the distributed semantics
// of spec.md §5.
func Solve(op Operator, q, gamma0 []float64, nUnilateral int, res float64, maxIte int, cm comm.Comm) Result {
	n := len(q)
	gamma := make([]float64, n)
	copy(gamma, gamma0)
	project(gamma, nUnilateral)

	gamma0Norm := norm2(cm, gamma)

	g := residualGradient(op, gamma, q)
	if !allFinite(g) {
		return Result{Gamma: gamma, Residual: math.Inf(1), Iterations: 0, Reason: NumericFailure}
	}

	alpha0 := spectralAlpha(op, q, cm)
	alpha := alpha0
	restarted := false
	var prevGamma, prevG []float64
	history := make([]float64, 0, maxIte)

	for it := 0; it < maxIte; it++ {
		if prevGamma != nil {
			alpha = barzilaiBorwein(prevGamma, gamma, prevG, g, cm)
		}

		next := make([]float64, n)
		for i := range next {
			next[i] = gamma[i] - alpha*g[i]
		}
		project(next, nUnilateral)

		if !allFinite(next) {
			// NaN/Inf: restart once with the spectral bound, then fail.
			if restarted {
				return Result{Gamma: gamma, Residual: math.Inf(1), Iterations: it, Reason: NumericFailure}
			}
			alpha = alpha0
			restarted = true
			prevGamma, prevG = nil, nil
			continue
		}

		nextG := residualGradient(op, next, q)
		if !allFinite(nextG) {
			if restarted {
				return Result{Gamma: gamma, Residual: math.Inf(1), Iterations: it, Reason: NumericFailure}
			}
			alpha = alpha0
			restarted = true
			prevGamma, prevG = nil, nil
			continue
		}

		proj := make([]float64, n)
		for i := range proj {
			proj[i] = next[i] - nextG[i]
		}
		project(proj, nUnilateral)
		diff := make([]float64, n)
		for i := range diff {
			diff[i] = next[i] - proj[i]
		}
		residual := norm2(cm, diff) / math.Max(1, gamma0Norm)
		history = append(history, residual)

		if residual <= res {
			return Result{Gamma: next, Residual: residual, Iterations: it + 1, Reason: Converged, ResidualHistory: history}
		}

		prevGamma, prevG = gamma, g
		gamma, g = next, nextG
	}

	finalG := residualGradient(op, gamma, q)
	proj := make([]float64, n)
	for i := range proj {
		proj[i] = gamma[i] - finalG[i]
	}
	project(proj, nUnilateral)
	diff := make([]float64, n)
	for i := range diff {
		diff[i] = gamma[i] - proj[i]
	}
	residual := norm2(cm, diff) / math.Max(1, gamma0Norm)
	return Result{Gamma: gamma, Residual: residual, Iterations: maxIte, Reason: MaxIterations, ResidualHistory: history}
}

// project applies P componentwise: max(x,0) on the unilateral prefix,
// identity on the bilateral remainder (spec.md §4.5).
func project(x []float64, nUnilateral int) {
	for i := 0; i < nUnilateral && i < len(x); i++ {
		if x[i] < 0 {
			x[i] = 0
		}
	}
}

func residualGradient(op Operator, gamma, q []float64) []float64 {
	mg := op.Apply(gamma)
	g := make([]float64, len(q))
	for i := range g {
		g[i] = mg[i] + q[i]
	}
	return g
}

// spectralAlpha is the first-iterate bound alpha0 = ||q|| / (||M*q|| + eps).
func spectralAlpha(op Operator, q []float64, cm comm.Comm) float64 {
	mq := op.Apply(q)
	a := norm2(cm, q) / (norm2(cm, mq) + epsilon)
	return clamp(a)
}

// barzilaiBorwein derives alpha_k from (gamma_k - gamma_{k-1}) and
// (g_k - g_{k-1}).
func barzilaiBorwein(prevGamma, gamma, prevG, g []float64, cm comm.Comm) float64 {
	n := len(gamma)
	sy, ss := 0.0, 0.0
	for i := 0; i < n; i++ {
		s := gamma[i] - prevGamma[i]
		y := g[i] - prevG[i]
		sy += s * y
		ss += s * s
	}
	sy = cm.AllReduceSum(sy)
	ss = cm.AllReduceSum(ss)
	if sy <= epsilon {
		return alphaMax
	}
	return clamp(ss / sy)
}

func clamp(a float64) float64 {
	if math.IsNaN(a) || math.IsInf(a, 0) {
		return alphaMax
	}
	if a < alphaMin {
		return alphaMin
	}
	if a > alphaMax {
		return alphaMax
	}
	return a
}

func norm2(cm comm.Comm, x []float64) float64 {
	local := 0.0
	for _, v := range x {
		local += v * v
	}
	return math.Sqrt(cm.AllReduceSum(local))
}

func allFinite(x []float64) bool {
	for _, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
