// Package scenario builds the deterministic fixtures named in spec.md §8:
// inputs fully specified bodies, candidate contact pairs (normally the
// collaborator's neighbour-search output, here supplied directly since
// that search is out of scope per spec.md §1), and per-body non-constraint
// velocity. Shared by tests and by cmd/rodsim.
package scenario

import (
	"fmt"
	"sort"

	"github.com/san-kum/rodconstraint/internal/body"
	"github.com/san-kum/rodconstraint/internal/contactgen"
	"github.com/san-kum/rodconstraint/internal/geom"
	"github.com/san-kum/rodconstraint/internal/sparsemat"
)

// Fixture bundles everything one of spec.md §8's six end-to-end scenarios
// needs to drive a full setup/solveConstraints/writebackGamma cycle.
type Fixture struct {
	Name      string
	Bodies    []body.Body
	Pairs     []contactgen.Pair
	Options   contactgen.Options
	VNC       sparsemat.DofVector // non-constraint velocity, 6 per body
	Viscosity float64
	Dt        float64
	Res       float64
	MaxIte    int
}

const (
	defaultDt     = 0.01
	defaultRes    = 1e-6
	defaultMaxIte = 500
)

func gidPtr(s string) *string { return &s }

func straightRod(gid string, idx int, pos geom.Vec3, length, radius float64) body.Body {
	return body.Body{
		Position:    pos,
		Orientation: geom.IdentityQuat,
		Length:      length,
		Radius:      radius,
		GlobalIndex: idx,
		GID:         gid,
	}
}

// vncFor builds a flat per-body [vx,vy,vz,wx,wy,wz] velocity vector from a
// sparse map of body index -> translational velocity; everything else
// stays zero.
func vncFor(n int, linVel map[int]geom.Vec3) sparsemat.DofVector {
	v := sparsemat.NewDofVector(n)
	for i, vel := range linVel {
		off := 6 * i
		v[off+0] = vel.X
		v[off+1] = vel.Y
		v[off+2] = vel.Z
	}
	return v
}

// TwoRodsNoContact: two widely separated rods, no unilateral block should
// be generated (spec.md §8, scenario 1).
func TwoRodsNoContact() Fixture {
	bodies := []body.Body{
		straightRod("r0", 0, geom.Vec3{X: 0, Y: 0, Z: 0}, 1, 0.5),
		straightRod("r1", 1, geom.Vec3{X: 10, Y: 0, Z: 0}, 1, 0.5),
	}
	return Fixture{
		Name:    "two_rods_no_contact",
		Bodies:  bodies,
		Pairs:   []contactgen.Pair{{I: 0, J: 1}},
		Options: contactgen.Options{LinkKappa: 100},
		VNC:     sparsemat.NewDofVector(len(bodies)),
		Viscosity: 1, Dt: defaultDt, Res: defaultRes, MaxIte: defaultMaxIte,
	}
}

// TwoRodsHeadToHead: rods close enough to overlap, pushed together
// (spec.md §8, scenario 2). Expect exactly one unilateral block with
// delta0 = -0.1.
func TwoRodsHeadToHead() Fixture {
	bodies := []body.Body{
		straightRod("r0", 0, geom.Vec3{X: 0, Y: 0, Z: 0}, 1, 0.5),
		straightRod("r1", 1, geom.Vec3{X: 0.9, Y: 0, Z: 0}, 1, 0.5),
	}
	vnc := vncFor(len(bodies), map[int]geom.Vec3{
		0: {X: 0.5},
		1: {X: -0.5},
	})
	return Fixture{
		Name:    "two_rods_head_to_head",
		Bodies:  bodies,
		Pairs:   []contactgen.Pair{{I: 0, J: 1}},
		Options: contactgen.Options{LinkKappa: 100},
		VNC:     vnc,
		Viscosity: 1, Dt: defaultDt, Res: defaultRes, MaxIte: defaultMaxIte,
	}
}

// RodBetweenWalls: one rod between two Z-planar walls, pushed down
// (spec.md §8, scenario 3). Expect one wall block (lower), gamma > 0.
func RodBetweenWalls() Fixture {
	bodies := []body.Body{
		straightRod("r0", 0, geom.Vec3{X: 0, Y: 0, Z: 0.4}, 0.6, 0.1),
	}
	vnc := vncFor(len(bodies), map[int]geom.Vec3{0: {Z: -0.5}})
	return Fixture{
		Name:   "rod_between_walls",
		Bodies: bodies,
		Pairs:  nil,
		Options: contactgen.Options{
			WallLowZ: true, WallHighZ: true, ZLow: 0, ZHigh: 1,
			LinkKappa: 100,
		},
		VNC:       vnc,
		Viscosity: 1, Dt: defaultDt, Res: defaultRes, MaxIte: defaultMaxIte,
	}
}

// ThreeLinkedRodsChain: three collinear rods head-to-tail linked with
// kappa=100, each stretched 0.01 past natural length (spec.md §8,
// scenario 4). Expect two bilateral blocks, gamma ~= -kappa*0.01 each.
func ThreeLinkedRodsChain() Fixture {
	const kappa = 100.0
	const stretch = 0.01
	length, radius := 1.0, 0.1
	gap := radius + radius + stretch // head-to-tail separation including stretch

	b0 := straightRod("c0", 0, geom.Vec3{Z: 0}, length, radius)
	b0.NextGID = gidPtr("c1")
	z1 := length/2 + gap + length/2
	b1 := straightRod("c1", 1, geom.Vec3{Z: z1}, length, radius)
	b1.NextGID = gidPtr("c2")
	z2 := z1 + length/2 + gap + length/2
	b2 := straightRod("c2", 2, geom.Vec3{Z: z2}, length, radius)

	bodies := []body.Body{b0, b1, b2}
	return Fixture{
		Name:    "three_linked_rods_chain",
		Bodies:  bodies,
		Pairs:   nil,
		Options: contactgen.Options{LinkKappa: kappa, SeparationBufferLinkages: 0},
		VNC:       sparsemat.NewDofVector(len(bodies)),
		Viscosity: 1, Dt: defaultDt, Res: defaultRes, MaxIte: defaultMaxIte,
	}
}

// Mixed combines the head-to-head contact and the linked chain in one
// system (spec.md §8, scenario 5).
func Mixed() Fixture {
	contact := TwoRodsHeadToHead()
	chain := ThreeLinkedRodsChain()

	bodies := make([]body.Body, 0, len(contact.Bodies)+len(chain.Bodies))
	bodies = append(bodies, contact.Bodies...)
	offset := len(contact.Bodies)
	for _, b := range chain.Bodies {
		b.GlobalIndex += offset
		b.GID = fmt.Sprintf("mix-%s", b.GID)
		if b.NextGID != nil {
			next := fmt.Sprintf("mix-%s", *b.NextGID)
			b.NextGID = &next
		}
		// shift the chain far away on Y so it never overlaps the contact pair
		b.Position.Y += 20
		bodies = append(bodies, b)
	}

	pairs := []contactgen.Pair{{I: 0, J: 1}}

	vnc := sparsemat.NewDofVector(len(bodies))
	copy(vnc[:6*len(contact.Bodies)], contact.VNC)

	return Fixture{
		Name:      "mixed",
		Bodies:    bodies,
		Pairs:     pairs,
		Options:   contactgen.Options{LinkKappa: 100},
		VNC:       vnc,
		Viscosity: 1, Dt: defaultDt, Res: defaultRes, MaxIte: defaultMaxIte,
	}
}

// IllConditionedNonConvergence: a linkage with an extreme kappa and a
// very small maxIte, engineered to exercise the NonConvergence reporting
// path rather than genuinely solve (spec.md §8, scenario 6).
func IllConditionedNonConvergence() Fixture {
	const kappa = 1e9
	const stretch = 0.5
	length, radius := 1.0, 0.1
	gap := radius + radius + stretch

	b0 := straightRod("s0", 0, geom.Vec3{Z: 0}, length, radius)
	b0.NextGID = gidPtr("s1")
	b1 := straightRod("s1", 1, geom.Vec3{Z: length/2 + gap + length/2}, length, radius)

	return Fixture{
		Name:      "ill_conditioned_non_convergence",
		Bodies:    []body.Body{b0, b1},
		Pairs:     nil,
		Options:   contactgen.Options{LinkKappa: kappa},
		VNC:       sparsemat.NewDofVector(2),
		Viscosity: 1, Dt: defaultDt, Res: defaultRes, MaxIte: 5,
	}
}

// registry maps scenario name to its builder, for the CLI's
// `list-scenarios`/`run --scenario` lookup.
var registry = map[string]func() Fixture{
	"two_rods_no_contact":             TwoRodsNoContact,
	"two_rods_head_to_head":           TwoRodsHeadToHead,
	"rod_between_walls":               RodBetweenWalls,
	"three_linked_rods_chain":         ThreeLinkedRodsChain,
	"mixed":                           Mixed,
	"ill_conditioned_non_convergence": IllConditionedNonConvergence,
}

// Build looks up a named scenario, returning an error for an unknown name.
func Build(name string) (Fixture, error) {
	fn, ok := registry[name]
	if !ok {
		return Fixture{}, fmt.Errorf("scenario: unknown scenario %q", name)
	}
	return fn(), nil
}

// Names returns every registered scenario name, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
