package contactgen

import (
	"github.com/san-kum/rodconstraint/internal/body"
	"github.com/san-kum/rodconstraint/internal/collector"
	"github.com/san-kum/rodconstraint/internal/geom"
	"github.com/san-kum/rodconstraint/internal/parallelutil"
	"github.com/san-kum/rodconstraint/internal/rodconstraint"
)

// wallPlane names one of the two planar walls contactgen knows about. The
// outward normal always points away from the simulation interior, so a
// positive signed distance means the endpoint is clear of the wall.
type wallPlane struct {
	z      float64
	normal geom.Vec3 // outward, unit
}

// CollectRodWall evaluates every rod's two endpoints against each enabled
// planar wall and appends one oneSide unilateral block per (rod, wall)
// pair in which an endpoint lies within the rod radius of the wall,
// placed at the nearer endpoint, or at the midpoint when both are
// equally near (spec.md §4.2, "Rod-wall contacts"). Wall blocks
// always have normJ the zero vector and normI = +-z-hat.
func CollectRodWall(bodies []body.Body, opts Options, coll *collector.Collector) {
	var planes []wallPlane
	if opts.WallLowZ {
		planes = append(planes, wallPlane{z: opts.ZLow, normal: geom.Vec3{Z: 1}})
	}
	if opts.WallHighZ {
		planes = append(planes, wallPlane{z: opts.ZHigh, normal: geom.Vec3{Z: -1}})
	}
	if len(planes) == 0 || len(bodies) == 0 {
		return
	}

	nThreads := coll.NumThreads()
	minChunk := 64
	parallelutil.For(len(bodies), nThreads, minChunk, func(worker, start, end int) {
		for i := start; i < end; i++ {
			b := bodies[i]
			head, tail := b.Head(), b.Tail()
			for _, pl := range planes {
				blk, ok := wallBlockForRod(b, head, tail, pl, opts)
				if !ok {
					continue
				}
				coll.Append(worker, blk)
			}
		}
	})
}

// signedDistance returns a point's signed distance from the wall plane
// along the plane's outward normal.
func signedDistance(p geom.Vec3, pl wallPlane) float64 {
	// normal is +-z-hat, so the plane equation reduces to a Z comparison.
	if pl.normal.Z > 0 {
		return p.Z - pl.z
	}
	return pl.z - p.Z
}

func wallBlockForRod(b body.Body, head, tail geom.Vec3, pl wallPlane, opts Options) (rodconstraint.Block, bool) {
	dHead := signedDistance(head, pl)
	dTail := signedDistance(tail, pl)
	if dHead > b.Radius && dTail > b.Radius {
		return rodconstraint.Block{}, false
	}

	var loc geom.Vec3
	var d float64
	switch {
	case dHead < dTail:
		loc, d = head, dHead
	case dTail < dHead:
		loc, d = tail, dTail
	default:
		loc, d = head.Add(tail).Scale(0.5), dHead
	}

	effRadius := b.Radius * (1 + opts.SeparationBufferContacts)
	delta0 := d - effRadius
	pos := loc.Sub(b.Position)

	blk := rodconstraint.Block{
		Kind:         rodconstraint.Contact,
		OneSide:      true,
		GIDI:         b.GID,
		GlobalIndexI: b.GlobalIndex,
		Delta0:       delta0,
		GammaInit:    -delta0,
		NormI:        pl.normal,
		PosI:         pos,
		LocI:         loc,
		Kappa:        rodconstraint.NoKappa,
	}
	blk.Stress = rodconstraint.OuterStress(pos, pl.normal.Scale(blk.GammaInit))
	return blk, true
}
