// Package constraintop implements ConstraintOperator, the M_total action
// described in spec.md §3/§4.4: f = D_u*y_u + D_b*y_b; u = M*f;
// out_u = D_u^T*u; out_b = D_b^T*u + (dt*diag(1/kappa))*y_b.
package constraintop

import (
	"github.com/san-kum/rodconstraint/internal/mobility"
	"github.com/san-kum/rodconstraint/internal/sparsemat"
)

// Operator wraps the unilateral and bilateral D^T blocks, the shared
// mobility operator, the step size, and the per-bilateral-row 1/kappa
// diagonal into a single symmetric linear map over [y_u; y_b].
//
// The kappa^-1 vector is built once at construction (spec.md §4.4,
// "materialised once per setup") rather than recomputed per apply.
type Operator struct {
	Du, Db *sparsemat.DTranspose // nil Db means no bilateral block exists
	M      mobility.Operator
	Dt     float64
	invKa  []float64 // length len(Db.Rows); dt/kappa per bilateral row
}

// New builds the operator. kappas holds one spring constant per bilateral
// row, parallel to db.Rows; it is ignored if db is nil.
func New(du, db *sparsemat.DTranspose, m mobility.Operator, dt float64, kappas []float64) *Operator {
	op := &Operator{Du: du, Db: db, M: m, Dt: dt}
	if db != nil {
		op.invKa = make([]float64, len(db.Rows))
		for i, k := range kappas {
			if k > 0 {
				op.invKa[i] = dt / k
			}
		}
	}
	return op
}

// NumUnilateral and NumBilateral report the row counts of the two blocks.
func (op *Operator) NumUnilateral() int {
	if op.Du == nil {
		return 0
	}
	return len(op.Du.Rows)
}

func (op *Operator) NumBilateral() int {
	if op.Db == nil {
		return 0
	}
	return len(op.Db.Rows)
}

// Apply computes out = M_total*y for y = [y_u; y_b] given as one combined
// slice of length NumUnilateral()+NumBilateral(), in that order. It
// executes the three steps of spec.md §3 in sequence.
func (op *Operator) Apply(y []float64) []float64 {
	nu, nb := op.NumUnilateral(), op.NumBilateral()
	yu := y[:nu]
	yb := y[nu : nu+nb]

	// Step 1: f = D_u*y_u + D_b*y_b.
	f := sparsemat.NewDofVector(op.M.NumBodies())
	if op.Du != nil && nu > 0 {
		f.AXPY(1, op.Du.Apply(yu))
	}
	if op.Db != nil && nb > 0 {
		f.AXPY(1, op.Db.Apply(yb))
	}

	// Step 2: u = M*f.
	u := sparsemat.NewDofVector(op.M.NumBodies())
	op.M.Apply(f, u)

	// Step 3: out_u = D_u^T*u; out_b = D_b^T*u + dt*diag(1/kappa)*y_b.
	out := make([]float64, nu+nb)
	if op.Du != nil && nu > 0 {
		copy(out[:nu], op.Du.ApplyTranspose(u))
	}
	if op.Db != nil && nb > 0 {
		ob := op.Db.ApplyTranspose(u)
		for i := 0; i < nb; i++ {
			out[nu+i] = ob[i] + op.invKa[i]*yb[i]
		}
	}
	return out
}
