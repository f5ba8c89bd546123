package contactgen

import (
	"math"
	"testing"

	"github.com/san-kum/rodconstraint/internal/body"
	"github.com/san-kum/rodconstraint/internal/collector"
	"github.com/san-kum/rodconstraint/internal/geom"
)

func TestCollectRodWallNoWallsEnabled(t *testing.T) {
	bodies := []body.Body{straightRod(0, geom.Vec3{Z: 0.5}, 1, 0.1)}
	coll := collector.New(1)
	CollectRodWall(bodies, Options{}, coll)
	if coll.Count() != 0 {
		t.Errorf("expected no blocks with walls disabled, got %d", coll.Count())
	}
}

func TestCollectRodWallLowerWallPenetration(t *testing.T) {
	// Rod centered at z=0.4, length 0.6 -> tail at z=0.1, head at z=0.7.
	// Low wall at z=0, so tail (0.1) is within radius 0.2 of the wall.
	bodies := []body.Body{straightRod(0, geom.Vec3{Z: 0.4}, 0.6, 0.2)}
	opts := Options{WallLowZ: true, ZLow: 0}
	coll := collector.New(1)
	CollectRodWall(bodies, opts, coll)

	if coll.Count() != 1 {
		t.Fatalf("expected one wall block, got %d", coll.Count())
	}
	blk := coll.BlocksView()[0]
	if !blk.OneSide {
		t.Error("wall block should be OneSide")
	}
	wantDelta0 := 0.1 - 0.2
	if math.Abs(blk.Delta0-wantDelta0) > 1e-9 {
		t.Errorf("Delta0 = %v, want %v", blk.Delta0, wantDelta0)
	}
	if blk.NormI.Z <= 0 {
		t.Errorf("low-wall normal should point +Z, got %+v", blk.NormI)
	}
}

func TestCollectRodWallClearOfBothWalls(t *testing.T) {
	bodies := []body.Body{straightRod(0, geom.Vec3{Z: 0.5}, 0.2, 0.05)}
	opts := Options{WallLowZ: true, WallHighZ: true, ZLow: 0, ZHigh: 1}
	coll := collector.New(1)
	CollectRodWall(bodies, opts, coll)
	if coll.Count() != 0 {
		t.Errorf("expected no blocks, rod is clear of both walls, got %d", coll.Count())
	}
}

func TestSignedDistanceHighWall(t *testing.T) {
	pl := wallPlane{z: 1, normal: geom.Vec3{Z: -1}}
	d := signedDistance(geom.Vec3{Z: 0.8}, pl)
	if math.Abs(d-0.2) > 1e-12 {
		t.Errorf("signedDistance = %v, want 0.2", d)
	}
}
