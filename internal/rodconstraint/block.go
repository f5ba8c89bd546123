// Package rodconstraint defines ConstraintBlock, the self-describing
// record for one scalar contact or linkage constraint (spec.md §3).
package rodconstraint

import "github.com/san-kum/rodconstraint/internal/geom"

// Kind distinguishes a unilateral non-penetration constraint from a
// bilateral Hookean linkage.
type Kind int

const (
	// Contact is a unilateral rod-rod or rod-wall non-penetration
	// constraint; its multiplier must stay non-negative.
	Contact Kind = iota
	// Linkage is a bilateral spring constraint between two rod
	// endpoints; its multiplier is unrestricted in sign.
	Linkage
)

func (k Kind) String() string {
	if k == Linkage {
		return "linkage"
	}
	return "contact"
}

// NoKappa marks a unilateral block, which carries no spring constant.
const NoKappa = 0

// Block is one scalar constraint. All six ℝ³ fields are always set
// (zero-valued when not meaningful, e.g. posJ/locJ/normJ on a oneSide
// wall block) so every block is self-describing without consulting its
// Kind first.
type Block struct {
	Kind    Kind
	OneSide bool // J is a virtual wall: its columns are never assembled.

	GIDI, GIDJ                   string
	GlobalIndexI, GlobalIndexJ   int

	// Delta0 is the signed gap at the reference configuration; negative
	// means penetration.
	Delta0 float64

	// GammaInit is the initial multiplier estimate used to seed BCQP.
	GammaInit float64

	// NormI, NormJ are unit force directions on I and J respectively.
	// NormJ = -NormI for contacts (zero for oneSide wall blocks).
	NormI, NormJ geom.Vec3

	// PosI, PosJ are contact points relative to each body's centre,
	// used to build the torque arm (PosI x NormI contributes 3 of the
	// 6 per-body DOF entries).
	PosI, PosJ geom.Vec3

	// LocI, LocJ are lab-frame contact points, carried through for
	// export only; the solver never reads them.
	LocI, LocJ geom.Vec3

	// Kappa is the linkage spring constant; NoKappa for unilateral
	// contacts. Kappa > 0 iff the block is bilateral.
	Kappa float64

	// Stress is the virial contribution for reporting, filled in by
	// the producer at append time and summed by the collector.
	Stress [3][3]float64

	// Gamma holds the post-solve multiplier once writebackGamma has
	// run; zero until then.
	Gamma float64
}

// Bilateral reports whether the block carries a spring compliance term.
func (b Block) Bilateral() bool { return b.Kappa > 0 }

// VirialStress returns gamma * Stress, the block's contribution to the
// global virial stress tensor (spec.md §4.1 sumStress). OneSide blocks
// contribute nothing (a wall is not part of the system whose internal
// stress is being measured).
func (b Block) VirialStress() [3][3]float64 {
	var out [3][3]float64
	if b.OneSide {
		return out
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = b.Gamma * b.Stress[i][j]
		}
	}
	return out
}

// OuterStress computes (r (x) f) symmetrized, the standard
// virial contribution of a single contact force f = gamma*norm acting
// at lever arm r relative to a body centre. Producers call this once
// per participating body and sum the two halves into Stress.
func OuterStress(r, f geom.Vec3) [3][3]float64 {
	var out [3][3]float64
	rf := [3]float64{r.X, r.Y, r.Z}
	ff := [3]float64{f.X, f.Y, f.Z}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = 0.5 * (rf[i]*ff[j] + rf[j]*ff[i])
		}
	}
	return out
}
