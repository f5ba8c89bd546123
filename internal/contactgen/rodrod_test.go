package contactgen

import (
	"math"
	"testing"

	"github.com/san-kum/rodconstraint/internal/body"
	"github.com/san-kum/rodconstraint/internal/collector"
	"github.com/san-kum/rodconstraint/internal/geom"
)

func straightRod(idx int, pos geom.Vec3, length, radius float64) body.Body {
	return body.Body{
		Position:    pos,
		Orientation: geom.IdentityQuat, // axis +Z
		Length:      length,
		Radius:      radius,
		GlobalIndex: idx,
	}
}

func TestCollectRodRodNoOverlapEmitsNoBlocks(t *testing.T) {
	bodies := []body.Body{
		straightRod(0, geom.Vec3{X: 0}, 1, 0.5),
		straightRod(1, geom.Vec3{X: 10}, 1, 0.5),
	}
	coll := collector.New(1)
	sepMin, degenerate := CollectRodRod(bodies, []Pair{{I: 0, J: 1}}, Options{}, coll)

	if coll.Count() != 0 {
		t.Errorf("expected no blocks for widely separated rods, got %d", coll.Count())
	}
	if degenerate != 0 {
		t.Errorf("degenerate = %d, want 0", degenerate)
	}
	if sepMin[0] < 9 {
		t.Errorf("sepMin[0] = %v, want >= 9", sepMin[0])
	}
}

func TestCollectRodRodOverlapEmitsBlock(t *testing.T) {
	bodies := []body.Body{
		straightRod(0, geom.Vec3{X: 0}, 1, 0.5),
		straightRod(1, geom.Vec3{X: 0.9}, 1, 0.5),
	}
	coll := collector.New(1)
	_, _ = CollectRodRod(bodies, []Pair{{I: 0, J: 1}}, Options{}, coll)

	if coll.Count() != 1 {
		t.Fatalf("expected one block, got %d", coll.Count())
	}
	blk := coll.BlocksView()[0]
	wantDelta0 := 0.9 - 1.0 // separation - (radius+radius)
	if math.Abs(blk.Delta0-wantDelta0) > 1e-9 {
		t.Errorf("Delta0 = %v, want %v", blk.Delta0, wantDelta0)
	}
	if blk.OneSide {
		t.Error("rod-rod block should not be OneSide")
	}
	if blk.Kappa != 0 {
		t.Errorf("Kappa = %v, want 0 (unilateral)", blk.Kappa)
	}
}

func TestCollectRodRodSepMinAcrossWorkerChunks(t *testing.T) {
	// Enough pairs to force a multi-chunk partition, with body 1 shared
	// across pairs that may land in different chunks, exercising the
	// per-chunk-then-merge sepMin reduction.
	bodies := []body.Body{
		straightRod(0, geom.Vec3{X: 0}, 1, 0.1),
		straightRod(1, geom.Vec3{X: 5}, 1, 0.1),
		straightRod(2, geom.Vec3{X: 5.3}, 1, 0.1),
	}
	pairs := make([]Pair, 0, 200)
	for i := 0; i < 199; i++ {
		pairs = append(pairs, Pair{I: 0, J: 1})
	}
	pairs = append(pairs, Pair{I: 1, J: 2})

	coll := collector.New(4)
	sepMin, _ := CollectRodRod(bodies, pairs, Options{}, coll)

	if sepMin[1] > 0.31 {
		t.Errorf("sepMin[1] = %v, want close to 0.3 (the 1-2 gap)", sepMin[1])
	}
}
