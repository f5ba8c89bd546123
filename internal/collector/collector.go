// Package collector implements ConstraintCollector: thread-partitioned,
// append-only pools of rodconstraint.Block that are later merged into a
// distributed sparse D^T and its companion delta0 vector (spec.md §4.1).
package collector

import (
	"fmt"
	"sync"

	"github.com/san-kum/rodconstraint/internal/comm"
	"github.com/san-kum/rodconstraint/internal/geom"
	"github.com/san-kum/rodconstraint/internal/parallelutil"
	"github.com/san-kum/rodconstraint/internal/rodconstraint"
	"github.com/san-kum/rodconstraint/internal/sparsemat"
)

// Collector holds one append-only pool per worker thread. Appends never
// lock: each thread only ever touches its own pool (spec.md §5, "Shared-
// resource policy").
type Collector struct {
	pools [][]rodconstraint.Block
}

// New allocates a Collector with nThreads independent pools.
func New(nThreads int) *Collector {
	if nThreads < 1 {
		nThreads = 1
	}
	return &Collector{pools: make([][]rodconstraint.Block, nThreads)}
}

// Clear drops all blocks but keeps the pool structure (size = worker
// thread count), matching the teacher's sim.StatePool reset-not-realloc
// idiom.
func (c *Collector) Clear() {
	for i := range c.pools {
		c.pools[i] = c.pools[i][:0]
	}
}

// Append adds block to threadId's pool. O(1) amortised, no lock.
func (c *Collector) Append(threadID int, block rodconstraint.Block) {
	c.pools[threadID] = append(c.pools[threadID], block)
}

// NumThreads returns the pool count.
func (c *Collector) NumThreads() int { return len(c.pools) }

// Count returns the local total across all pools.
func (c *Collector) Count() int {
	n := 0
	for _, p := range c.pools {
		n += len(p)
	}
	return n
}

// GlobalCount all-reduces Count() across ranks.
func (c *Collector) GlobalCount(cm comm.Comm) int {
	return int(cm.AllReduceSum(float64(c.Count())))
}

// orderedBlocks returns the deterministic concatenation of pools in
// ascending thread index, fixing delta0, gamma, and D^T row indexing
// consistently (spec.md §4.1, §5).
func (c *Collector) orderedBlocks() []rodconstraint.Block {
	total := c.Count()
	out := make([]rodconstraint.Block, 0, total)
	for _, p := range c.pools {
		out = append(out, p...)
	}
	return out
}

// BuildMatrix assembles the local block-CSR D^T and the initial-gap
// vector delta0, in deterministic pool order. mobMap resolves each
// block's participating bodies to their 6-DOF column offset; a block
// referencing a GlobalIndex mobMap cannot resolve is an assembly
// inconsistency (spec.md §7, AssemblyInconsistency) and is reported via
// the returned error rather than silently dropped.
func (c *Collector) BuildMatrix(mobMap sparsemat.DofMap) (*sparsemat.DTranspose, []float64, error) {
	blocks := c.orderedBlocks()
	rows := make([]sparsemat.Row, len(blocks))
	delta0 := make([]float64, len(blocks))

	workers := len(c.pools)
	var errMu sync.Mutex
	var firstErr error
	minChunk := 64
	parallelutil.For(len(blocks), workers, minChunk, func(_, start, end int) {
		for i := start; i < end; i++ {
			b := blocks[i]
			delta0[i] = b.Delta0

			iOff, ok := mobMap.LocalOffset(b.GlobalIndexI)
			if !ok {
				errMu.Lock()
				if firstErr == nil {
					firstErr = fmt.Errorf("%w: unresolvable globalIndex %d (gidI=%s, gidJ=%s)",
						ErrAssemblyInconsistency, b.GlobalIndexI, b.GIDI, b.GIDJ)
				}
				errMu.Unlock()
				continue
			}
			row := sparsemat.Row{I: sparsemat.ColEntry{Offset: iOff, Values: forceTorque6(b.PosI, b.NormI)}}

			if !b.OneSide {
				jOff, ok := mobMap.LocalOffset(b.GlobalIndexJ)
				if !ok {
					errMu.Lock()
					if firstErr == nil {
						firstErr = fmt.Errorf("%w: unresolvable globalIndex %d (gidI=%s, gidJ=%s)",
							ErrAssemblyInconsistency, b.GlobalIndexJ, b.GIDI, b.GIDJ)
					}
					errMu.Unlock()
					continue
				}
				jEntry := sparsemat.ColEntry{Offset: jOff, Values: forceTorque6(b.PosJ, b.NormJ)}
				row.J = &jEntry
			}
			rows[i] = row
		}
	})
	if firstErr != nil {
		return nil, nil, firstErr
	}

	return sparsemat.NewDTranspose(rows, mobMap.NumLocalDOF(), workers), delta0, nil
}

// forceTorque6 packs the 6 non-zero entries a block contributes for one
// participating body: 3 translation*norm, 3 (pos x norm) torque arm.
func forceTorque6(pos, norm geom.Vec3) [6]float64 {
	arm := pos.Cross(norm)
	return [6]float64{norm.X, norm.Y, norm.Z, arm.X, arm.Y, arm.Z}
}
