package contactgen

import (
	"errors"
	"fmt"

	"github.com/san-kum/rodconstraint/internal/body"
	"github.com/san-kum/rodconstraint/internal/collector"
	"github.com/san-kum/rodconstraint/internal/geom"
	"github.com/san-kum/rodconstraint/internal/rodconstraint"
)

// defaultLinkNormal is the canonical fallback direction used when a
// linkage's two endpoints coincide exactly (gap length ~0).
var defaultLinkNormal = geom.Vec3{Z: 1}

// ErrPeriodicLinkage is returned when a body's declared NextGID resolves
// to a partner living in a different periodic image. The source library
// leaves this case unhandled; this package refuses to emit the block
// rather than produce a silently wrong bilateral constraint (spec.md §9,
// open question on periodic boundary conditions).
var ErrPeriodicLinkage = errors.New("contactgen: linkage crosses periodic image")

// ErrUnresolvedLinkage is returned when a body's NextGID does not match
// any GID in the supplied bodies slice (e.g. the partner lives on another
// rank and no cross-rank directory was consulted; out of scope here,
// spec.md §1).
var ErrUnresolvedLinkage = errors.New("contactgen: linkage partner not found")

// CollectLinkages walks every body with a declared NextGID and emits a
// bilateral block for the head-to-tail spring closure between it and its
// partner (spec.md §4.2, "Linkages"). Linkages are generated serially:
// the expected count is small relative to rod-rod pairs, and each lookup
// needs the full gidIndex, so there is little to gain from partitioning.
func CollectLinkages(bodies []body.Body, opts Options, coll *collector.Collector) error {
	if len(bodies) == 0 {
		return nil
	}

	gidIndex := make(map[string]int, len(bodies))
	for i, b := range bodies {
		gidIndex[b.GID] = i
	}

	for _, bi := range bodies {
		if bi.NextGID == nil {
			continue
		}
		j, ok := gidIndex[*bi.NextGID]
		if !ok {
			return fmt.Errorf("%w: gid=%s next=%s", ErrUnresolvedLinkage, bi.GID, *bi.NextGID)
		}
		bj := bodies[j]
		if bi.Image != bj.Image {
			return fmt.Errorf("%w: gid=%s (image %v) -> gid=%s (image %v)",
				ErrPeriodicLinkage, bi.GID, bi.Image, bj.GID, bj.Image)
		}

		head := bi.Head()
		tail := bj.Tail()
		gap := head.Sub(tail)
		d := gap.Norm()

		effRadius := (bi.Radius + bj.Radius) * (1 + opts.SeparationBufferLinkages)
		delta0 := d - effRadius

		normI := gap.Unit(defaultLinkNormal)
		normJ := normI.Neg()

		posI := head.Sub(bi.Position)
		posJ := tail.Sub(bj.Position)

		gammaInit := -opts.LinkKappa * delta0
		blk := rodconstraint.Block{
			Kind:         rodconstraint.Linkage,
			GIDI:         bi.GID,
			GIDJ:         bj.GID,
			GlobalIndexI: bi.GlobalIndex,
			GlobalIndexJ: bj.GlobalIndex,
			Delta0:       delta0,
			GammaInit:    gammaInit,
			NormI:        normI,
			NormJ:        normJ,
			PosI:         posI,
			PosJ:         posJ,
			LocI:         head,
			LocJ:         tail,
			Kappa:        opts.LinkKappa,
		}
		blk.Stress = addStress(rodconstraint.OuterStress(posI, normI.Scale(gammaInit)),
			rodconstraint.OuterStress(posJ, normJ.Scale(gammaInit)))

		// Single-threaded producer: every linkage lands in pool 0.
		coll.Append(0, blk)
	}
	return nil
}
