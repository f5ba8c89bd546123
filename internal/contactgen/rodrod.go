package contactgen

import (
	"math"
	"sync"
	"sync/atomic"

	"github.com/san-kum/rodconstraint/internal/body"
	"github.com/san-kum/rodconstraint/internal/collector"
	"github.com/san-kum/rodconstraint/internal/geom"
	"github.com/san-kum/rodconstraint/internal/parallelutil"
	"github.com/san-kum/rodconstraint/internal/rodconstraint"
)

// Pair identifies two bodies whose AABBs overlap, as supplied by the
// collaborator's neighbour-search tree (out of scope here, spec.md §1).
type Pair struct {
	I, J int // indices into the bodies slice
}

// minChunkPairs mirrors the teacher's compute.CPUBackend worker-partition
// threshold: below this many candidate pairs, generation runs serially.
const minChunkPairs = 64

// CollectRodRod evaluates every candidate pair's segment-segment
// distance and appends a unilateral block to coll for every overlapping
// pair. It also returns sepMin, the minimum separation observed per body
// (spec.md §4.2, "The routine also records sepmin[i]"), and the count of
// degenerate (near-zero-distance) pairs that fell back to a canonical
// normal (spec.md §4.2, "Numeric policy").
func CollectRodRod(bodies []body.Body, pairs []Pair, opts Options, coll *collector.Collector) (sepMin []float64, degenerate int) {
	sepMin = make([]float64, len(bodies))
	for i := range sepMin {
		sepMin[i] = math.Inf(1)
	}
	if len(pairs) == 0 {
		return sepMin, 0
	}

	nThreads := coll.NumThreads()
	var warnings atomic.Int64
	var sepMu sync.Mutex
	parallelutil.For(len(pairs), nThreads, minChunkPairs, func(worker, start, end int) {
		localSep := make([]float64, len(bodies))
		for i := range localSep {
			localSep[i] = math.Inf(1)
		}
		for k := start; k < end; k++ {
			pr := pairs[k]
			bi, bj := bodies[pr.I], bodies[pr.J]

			pi, qi := bi.Tail(), bi.Head()
			pj, qj := bj.Tail(), bj.Head()
			ci, cj, _, _ := closestPointsSegments(pi, qi, pj, qj)

			d := cj.Sub(ci).Norm()

			if d < localSep[pr.I] {
				localSep[pr.I] = d
			}
			if d < localSep[pr.J] {
				localSep[pr.J] = d
			}

			effRadius := (bi.Radius + bj.Radius) * (1 + opts.SeparationBufferContacts)
			if d > effRadius {
				continue
			}

			normI := cj.Sub(ci).Unit(geom.Vec3{Z: 1})
			if d < degenerateThreshold {
				warnings.Add(1)
			}
			normJ := normI.Neg()

			posI := ci.Sub(bi.Position)
			posJ := cj.Sub(bj.Position)

			delta0 := d - effRadius
			blk := rodconstraint.Block{
				Kind:          rodconstraint.Contact,
				GIDI:          bi.GID,
				GIDJ:          bj.GID,
				GlobalIndexI:  bi.GlobalIndex,
				GlobalIndexJ:  bj.GlobalIndex,
				Delta0:        delta0,
				GammaInit:     -delta0,
				NormI:         normI,
				NormJ:         normJ,
				PosI:          posI,
				PosJ:          posJ,
				LocI:          ci,
				LocJ:          cj,
				Kappa:         rodconstraint.NoKappa,
			}
			blk.Stress = addStress(rodconstraint.OuterStress(posI, normI.Scale(blk.GammaInit)),
				rodconstraint.OuterStress(posJ, normJ.Scale(blk.GammaInit)))

			coll.Append(worker, blk)
		}

		sepMu.Lock()
		for i, d := range localSep {
			if d < sepMin[i] {
				sepMin[i] = d
			}
		}
		sepMu.Unlock()
	})
	return sepMin, int(warnings.Load())
}

func addStress(a, b [3][3]float64) [3][3]float64 {
	var out [3][3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = a[i][j] + b[i][j]
		}
	}
	return out
}
