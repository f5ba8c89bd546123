package collector

import (
	"github.com/san-kum/rodconstraint/internal/comm"
	"github.com/san-kum/rodconstraint/internal/rodconstraint"
)

// SumStress sums gamma*stress over all non-oneSide blocks, writes the
// result into out, and all-reduces it across ranks (spec.md §4.1).
// gamma must be in the same pool order BuildMatrix produced its rows in.
func (c *Collector) SumStress(gamma []float64, cm comm.Comm, out *[3][3]float64) {
	var local [3][3]float64
	blocks := c.orderedBlocks()
	for i, b := range blocks {
		if b.OneSide {
			continue
		}
		b.Gamma = gamma[i]
		s := b.VirialStress()
		for r := 0; r < 3; r++ {
			for col := 0; col < 3; col++ {
				local[r][col] += s[r][col]
			}
		}
	}
	for r := 0; r < 3; r++ {
		for col := 0; col < 3; col++ {
			out[r][col] = cm.AllReduceSum(local[r][col])
		}
	}
}

// WritebackGamma stores each block's post-solve multiplier back into its
// own record, in the same deterministic pool order BuildMatrix used, so
// it can be exported or fed into the next step's warm start.
func (c *Collector) WritebackGamma(gamma []float64) {
	idx := 0
	for p := range c.pools {
		for i := range c.pools[p] {
			c.pools[p][i].Gamma = gamma[idx]
			idx++
		}
	}
}

// BlocksView exposes the pools in deterministic order for export and
// inspection, as a flattened copy (callers must not assume this reflects
// later mutation of the collector's internal pools).
func (c *Collector) BlocksView() []rodconstraint.Block {
	return c.orderedBlocks()
}
