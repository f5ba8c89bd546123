package sparsemat

import (
	"sync"

	"github.com/san-kum/rodconstraint/internal/parallelutil"
)

// ColEntry is the 6 non-zero entries one constraint block contributes to
// one participating body's column: 3 for translation*norm, 3 for
// (pos x norm) (spec.md §3, "Constraint matrix D").
type ColEntry struct {
	Offset int // 6*localIndex, start of this body's DOF range
	Values [6]float64
}

// Row is one assembled row of D^T: the I-side entry, and the J-side entry
// unless the block is OneSide (a wall), in which case J is nil.
type Row struct {
	I ColEntry
	J *ColEntry
}

// DTranspose is the block-CSR representation of D^T described in
// spec.md §3: rows are constraint blocks in deterministic pool order,
// columns are the 6-DOF-per-body mobility space. It never materializes
// the dense N_constraints x 6N matrix.
type DTranspose struct {
	Rows    []Row
	NumCols int
	workers int
}

// NewDTranspose wraps rows already assembled by the collector, recording
// the worker count to use for parallel Apply/ApplyTranspose.
func NewDTranspose(rows []Row, numCols, workers int) *DTranspose {
	if workers < 1 {
		workers = 1
	}
	return &DTranspose{Rows: rows, NumCols: numCols, workers: workers}
}

// ApplyTranspose computes y = D^T * v (rows = constraints, v is a
// 6N-length DofVector). This is embarrassingly parallel: each row writes
// exactly one output entry.
func (d *DTranspose) ApplyTranspose(v DofVector) []float64 {
	y := make([]float64, len(d.Rows))
	minChunk := 64
	parallelutil.For(len(d.Rows), d.workers, minChunk, func(_, start, end int) {
		for r := start; r < end; r++ {
			row := d.Rows[r]
			sum := dot6(row.I.Values, v[row.I.Offset:row.I.Offset+6])
			if row.J != nil {
				sum += dot6(row.J.Values, v[row.J.Offset:row.J.Offset+6])
			}
			y[r] = sum
		}
	})
	return y
}

// Apply computes y = D * gamma (gamma is one multiplier per row, y is a
// 6N-length DofVector). Several rows may touch the same body's columns,
// so each worker accumulates into a private y and the partials are
// summed after the fan-out, the same worker-partitioned-reduction shape
// used throughout the solver's parallel assembly paths.
func (d *DTranspose) Apply(gamma []float64) DofVector {
	y := NewDofVector(d.NumCols / 6)
	if len(d.Rows) == 0 {
		return y
	}

	var mu sync.Mutex
	minChunk := 64
	n := len(d.Rows)
	parallelutil.For(n, d.workers, minChunk, func(_, start, end int) {
		local := NewDofVector(d.NumCols / 6)
		for r := start; r < end; r++ {
			row := d.Rows[r]
			g := gamma[r]
			addScaled6(local, row.I.Offset, g, row.I.Values)
			if row.J != nil {
				addScaled6(local, row.J.Offset, g, row.J.Values)
			}
		}
		mu.Lock()
		y.AXPY(1, local)
		mu.Unlock()
	})
	return y
}

func dot6(a [6]float64, b DofVector) float64 {
	var s float64
	for i := 0; i < 6; i++ {
		s += a[i] * b[i]
	}
	return s
}

func addScaled6(dst DofVector, offset int, alpha float64, a [6]float64) {
	for i := 0; i < 6; i++ {
		dst[offset+i] += alpha * a[i]
	}
}
